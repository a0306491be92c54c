//go:build windows

package native

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// char_t is UTF-16 on Windows.
func encodeString(s string) (unsafe.Pointer, error) {
	u, err := windows.UTF16FromString(s)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(&u[0]), nil
}

func decodeString(p uintptr) string {
	return windows.UTF16PtrToString((*uint16)(unsafe.Pointer(p)))
}

func allocChars(n int) unsafe.Pointer {
	u := make([]uint16, n)
	return unsafe.Pointer(&u[0])
}
