package native

import (
	"runtime"
	"unsafe"
)

// Arena pins Go memory passed to native code. The zero value is ready to use.
// Free must be called once the native calls using the arena have returned.
type Arena struct {
	pinner runtime.Pinner
}

// String encodes s as a NUL-terminated platform char_t string and returns its address.
func (a *Arena) String(s string) (uintptr, error) {
	p, err := encodeString(s)
	if err != nil {
		return 0, err
	}
	a.pinner.Pin(p)
	return uintptr(p), nil
}

// Buffer returns a pinned, zeroed buffer of n char_t units.
func (a *Arena) Buffer(n int) uintptr {
	if n < 1 {
		n = 1
	}
	p := allocChars(n)
	a.pinner.Pin(p)
	return uintptr(p)
}

// Slot returns a pinned pointer-sized out-parameter.
func (a *Arena) Slot() *uintptr {
	p := new(uintptr)
	a.pinner.Pin(p)
	return p
}

// Free unpins everything pinned by the arena.
func (a *Arena) Free() {
	a.pinner.Unpin()
}

// Addr returns the address of an out-parameter slot.
func Addr(slot *uintptr) uintptr {
	return uintptr(unsafe.Pointer(slot))
}

// GoString decodes a NUL-terminated platform char_t string. A zero address yields "".
func GoString(p uintptr) string {
	if p == 0 {
		return ""
	}
	return decodeString(p)
}
