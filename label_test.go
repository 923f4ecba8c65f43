package x64asm

import "testing"

func TestSetLabelResolvesBackwardReference(t *testing.T) {
	asm := NewAssembler()
	top := asm.SetLabel()
	if err := asm.Not(Rcx); err != nil {
		t.Fatal(err)
	}
	if err := asm.Jcc(NotEqual, top); err != nil {
		t.Fatal(err)
	}
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	// jne back to top: disp = 0 - (slot+4) = -9 for a 3-byte not + 6-byte jcc
	got := asm.Code()
	want := []byte{0x48, 0xf7, 0xd1, 0x0f, 0x85, 0xf7, 0xff, 0xff, 0xff}
	if len(got) != len(want) {
		t.Fatalf("got % x, want % x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got % x, want % x", got, want)
		}
	}
}

func TestSetLabelLastWriteWins(t *testing.T) {
	asm := NewAssembler()
	l := asm.NewLabel()
	asm.SetLabel(l)
	first := asm.Code()
	_ = first
	if err := asm.Nop(); err != nil {
		t.Fatal(err)
	}
	// Redefining the same handle moves its offset forward; this is the
	// documented last-write-wins behavior for the unexercised "multiple
	// set_label calls on one handle" case (see DESIGN.md).
	asm.SetLabel(l)
	if asm.Err() != nil {
		t.Fatal(asm.Err())
	}
	if got := asm.labels[l.id].offset; got != 1 {
		t.Fatalf("label offset = %d, want 1 (the second definition)", got)
	}
}

func TestForwardLabelPatchedAtDefinition(t *testing.T) {
	asm := NewAssembler()
	target := asm.NewLabel()
	if err := asm.Jmp(target); err != nil {
		t.Fatal(err)
	}
	if err := asm.Nop(); err != nil {
		t.Fatal(err)
	}
	asm.SetLabel(target)
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	want := []byte{0xe9, 0x01, 0x00, 0x00, 0x00, 0x90}
	got := asm.Code()
	if len(got) != len(want) {
		t.Fatalf("got % x, want % x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got % x, want % x", got, want)
		}
	}
}
