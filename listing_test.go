package x64asm

import "testing"

func TestListingLabelNames(t *testing.T) {
	asm := NewAssembler(Options{LogText: true})
	top := asm.NewLabel()
	asm.SetLabel(top)
	if err := asm.Jmp(top); err != nil {
		t.Fatal(err)
	}
	got := asm.Text()
	want := ".L1:\n jmp         .L1\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestListingMemoryOperand(t *testing.T) {
	asm := NewAssembler(Options{LogText: true})
	if err := asm.Add(Rax, Qword(Base(Rsp), Disp(0x1b))); err != nil {
		t.Fatal(err)
	}
	got := asm.Text()
	want := " add         rax,qword ptr [rsp+1Bh]\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestListingConstantPoolReference(t *testing.T) {
	asm := NewAssembler(Options{LogText: true})
	if err := asm.Vmovsd(Xmm3, asm.F64(1.0)); err != nil {
		t.Fatal(err)
	}
	got := asm.Text()
	want := " vmovsd      xmm3,qword ptr [.start-8]\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHexImmFormatting(t *testing.T) {
	cases := map[int64]string{
		0:    "0h",
		8:    "8h",
		27:   "1Bh",
		255:  "0FFh",
		-1:   "-1h",
		4096: "1000h",
	}
	for v, want := range cases {
		if got := hexImm(v); got != want {
			t.Fatalf("hexImm(%d) = %q, want %q", v, got, want)
		}
	}
}
