//go:build !unix && !windows

package native

import (
	"fmt"
	"strings"
	"unsafe"
)

func encodeString(s string) (unsafe.Pointer, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, fmt.Errorf("string contains NUL byte")
	}
	b := append([]byte(s), 0)
	return unsafe.Pointer(&b[0]), nil
}

func decodeString(p uintptr) string {
	var b []byte
	for ptr := unsafe.Pointer(p); *(*byte)(ptr) != 0; ptr = unsafe.Add(ptr, 1) {
		b = append(b, *(*byte)(ptr))
	}
	return string(b)
}

func allocChars(n int) unsafe.Pointer {
	b := make([]byte, n)
	return unsafe.Pointer(&b[0])
}
