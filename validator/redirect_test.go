package validator

import (
	"fmt"
	"testing"
)

func TestRedirect_ForwardsEachByte(t *testing.T) {
	var got []int
	w := NewRedirect(func(c int) { got = append(got, c) })

	n, err := fmt.Fprint(w, "ok\n")
	if err != nil || n != 3 {
		t.Fatalf("Fprint = %d, %v", n, err)
	}
	want := []int{'o', 'k', '\n'}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRedirect_Utf8Bytes(t *testing.T) {
	var calls int
	w := NewRedirect(func(int) { calls++ })
	fmt.Fprint(w, "é")
	if calls != 2 {
		t.Errorf("calls = %d, want one per byte", calls)
	}
}

func TestRedirect_Nil(t *testing.T) {
	if _, err := NewRedirect(nil).Write([]byte("dropped")); err != nil {
		t.Errorf("Write: %v", err)
	}
}
