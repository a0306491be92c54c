package native

import "testing"

func TestArena_StringRoundTrip(t *testing.T) {
	var a Arena
	defer a.Free()

	tests := []string{
		"",
		"/opt/plugins/Delay.runtimeconfig.json",
		"NPlug.Interop.NPlugFactoryExport, Délai",
	}
	for _, s := range tests {
		p, err := a.String(s)
		if err != nil {
			t.Fatalf("String(%q): %v", s, err)
		}
		if p == 0 {
			t.Fatalf("String(%q) returned null", s)
		}
		if got := GoString(p); got != s {
			t.Errorf("GoString = %q, want %q", got, s)
		}
	}
}

func TestArena_StringRejectsNUL(t *testing.T) {
	var a Arena
	defer a.Free()

	if _, err := a.String("bad\x00path"); err == nil {
		t.Error("expected error for embedded NUL")
	}
}

func TestArena_Slot(t *testing.T) {
	var a Arena
	defer a.Free()

	slot := a.Slot()
	if *slot != 0 {
		t.Fatalf("slot should start zeroed, got %#x", *slot)
	}
	*(*uintptr)(ptrOf(Addr(slot))) = 0xdead
	if *slot != 0xdead {
		t.Errorf("slot = %#x, want 0xdead", *slot)
	}
}

func TestGoString_Null(t *testing.T) {
	if GoString(0) != "" {
		t.Error("GoString(0) should be empty")
	}
}

func TestArena_Buffer(t *testing.T) {
	var a Arena
	defer a.Free()

	buf := a.Buffer(16)
	if buf == 0 {
		t.Fatal("Buffer returned null")
	}
	if GoString(buf) != "" {
		t.Error("fresh buffer should decode as empty string")
	}
}
