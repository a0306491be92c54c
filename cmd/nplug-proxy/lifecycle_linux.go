package main

/*
#include <stdbool.h>
*/
import "C"

import "unsafe"

//export ModuleEntry
func ModuleEntry(sharedLibraryHandle unsafe.Pointer) C.bool {
	return true
}

//export ModuleExit
func ModuleExit(sharedLibraryHandle unsafe.Pointer) C.bool {
	return true
}
