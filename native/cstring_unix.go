//go:build unix

package native

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// char_t is UTF-8 on unix.
func encodeString(s string) (unsafe.Pointer, error) {
	b, err := unix.ByteSliceFromString(s)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(&b[0]), nil
}

func decodeString(p uintptr) string {
	return unix.BytePtrToString((*byte)(unsafe.Pointer(p)))
}

func allocChars(n int) unsafe.Pointer {
	b := make([]byte, n)
	return unsafe.Pointer(&b[0])
}
