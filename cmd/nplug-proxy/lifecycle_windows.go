package main

/*
#include <stdbool.h>
*/
import "C"

//export InitDll
func InitDll() C.bool {
	return true
}

//export ExitDll
func ExitDll() C.bool {
	return true
}
