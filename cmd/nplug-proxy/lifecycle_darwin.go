package main

/*
#include <stdbool.h>
*/
import "C"

//export BundleEntry
func BundleEntry() C.bool {
	return true
}

//export BundleExit
func BundleExit() C.bool {
	return true
}
