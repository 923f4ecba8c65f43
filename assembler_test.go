package x64asm

import (
	"bytes"
	"testing"

	"golang.org/x/arch/x86/x86asm"
)

// Hard-coded golden byte vectors below come from spec.md §6/§8's worked
// examples and from original_source/tests/AssemblyBuilderX64.test.cpp.

func checkBytes(t *testing.T, asm *Assembler, want ...byte) {
	t.Helper()
	if err := asm.Err(); err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if got := asm.Code(); !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

// expectIntel decodes asm's code with x86asm and compares against the
// expected Intel-syntax text, the same verification style as the teacher's
// assembler_test.go.
func expectIntel(t *testing.T, asm *Assembler, want string) {
	t.Helper()
	if err := asm.Err(); err != nil {
		t.Fatalf("encode error: %v", err)
	}
	decoded, err := x86asm.Decode(asm.Code(), 64)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := x86asm.IntelSyntax(decoded, 0, nil)
	if got != want {
		t.Fatalf("decoded %q, want %q (bytes % x)", got, want, asm.Code())
	}
}

func TestAluGoldenVectors(t *testing.T) {
	cases := []struct {
		name string
		run  func(a *Assembler) error
		want []byte
	}{
		{"add rax,rcx", func(a *Assembler) error { return a.Add(Rax, Rcx) }, []byte{0x48, 0x03, 0xc1}},
		{"add rax,qword[rsp+0x1b]", func(a *Assembler) error {
			return a.Add(Rax, Qword(Base(Rsp), Disp(0x1b)))
		}, []byte{0x48, 0x03, 0x44, 0x24, 0x1b}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			asm := NewAssembler()
			if err := c.run(asm); err != nil {
				t.Fatal(err)
			}
			checkBytes(t, asm, c.want...)
		})
	}
}

func TestMov64AlwaysTenBytes(t *testing.T) {
	asm := NewAssembler()
	if err := asm.Mov64(Rcx, 1); err != nil {
		t.Fatal(err)
	}
	checkBytes(t, asm, 0x48, 0xb9, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00)
}

func TestLabelCallSequence(t *testing.T) {
	asm := NewAssembler()
	fnB := asm.NewLabel()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(asm.And(Rcx, Imm32(0x3e)))
	must(asm.Call(fnB))
	must(asm.Ret())
	asm.SetLabel(fnB)
	must(asm.Lea(Rax, Qword(Base(Rcx), Disp(0x1f))))
	must(asm.Ret())

	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	checkBytes(t, asm,
		0x48, 0x83, 0xe1, 0x3e,
		0xe8, 0x01, 0x00, 0x00, 0x00,
		0xc3,
		0x48, 0x8d, 0x41, 0x1f,
		0xc3,
	)
}

func TestUndefinedLabelAtFinalizeFails(t *testing.T) {
	asm := NewAssembler()
	target := asm.NewLabel()
	if err := asm.Jmp(target); err != nil {
		t.Fatal(err)
	}
	if err := asm.Finalize(); err == nil {
		t.Fatal("expected an error for an undefined label at finalize")
	}
}

func TestEmitAfterFinalizeFails(t *testing.T) {
	asm := NewAssembler()
	if err := asm.Ret(); err != nil {
		t.Fatal(err)
	}
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	if err := asm.Nop(); err == nil {
		t.Fatal("expected an error emitting after finalize")
	}
}

// Grounded on original_source/tests/AssemblyBuilderX64.test.cpp's
// "Constants" case, same call sequence. The disp32 values below pin down
// the sign convention resolveConstPatches must use: data is treated as
// laid out immediately before code, so every RIP-relative constant
// reference resolves to a negative displacement.
func TestMixedConstantPool(t *testing.T) {
	asm := NewAssembler()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(asm.Xor(Rax, Rax))
	must(asm.Add(Rax, asm.I64(0x1234567887654321)))
	must(asm.Vmovss(Xmm2, asm.F32(1.0)))
	must(asm.Vmovsd(Xmm3, asm.F64(1.0)))
	must(asm.Vmovaps(Xmm4, asm.F32x4(1, 2, 4, 8)))
	must(asm.Vmovupd(Xmm5, asm.Bytes([]byte("hello world!123\x00"), 8)))
	must(asm.Ret())

	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}

	checkBytes(t, asm,
		0x48, 0x33, 0xc0,
		0x48, 0x03, 0x05, 0xc6, 0xff, 0xff, 0xff,
		0xc4, 0xe1, 0xfa, 0x10, 0x15, 0xdd, 0xff, 0xff, 0xff,
		0xc4, 0xe1, 0xfb, 0x10, 0x1d, 0xbc, 0xff, 0xff, 0xff,
		0xc4, 0xe1, 0xf8, 0x28, 0x25, 0x9b, 0xff, 0xff, 0xff,
		0xc4, 0xe1, 0xf9, 0x10, 0x2d, 0xb2, 0xff, 0xff, 0xff,
		0xc3,
	)

	data := asm.Data()
	want := []byte{
		0x00, 0x00, 0x80, 0x3f, // f32x4[0] = 1.0
		0x00, 0x00, 0x00, 0x40, // f32x4[1] = 2.0
		0x00, 0x00, 0x80, 0x40, // f32x4[2] = 4.0
		0x00, 0x00, 0x00, 0x41, // f32x4[3] = 8.0
		0x21, 0x43, 0x65, 0x87, 0x78, 0x56, 0x34, 0x12, // i64
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f, // f64 = 1.0
		'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd', '!', '1', '2', '3', 0x00,
		0x00, 0x00, 0x80, 0x3f, // f32 = 1.0
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // padding to 16
	}
	if len(data) != len(want) {
		t.Fatalf("data len = %d, want %d", len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("data[%d] = %#x, want %#x (full: % x)", i, data[i], want[i], data)
		}
	}
}

// Lea's source parameter is statically typed as Mem, so "lea with a
// register source" (spec.md §7) is rejected by the Go type system at
// compile time rather than at runtime; only the shapes that remain
// expressible through Arg need a runtime check here.
func TestInvalidOperandShapesFailAtCallSite(t *testing.T) {
	t.Run("rsp as SIB index", func(t *testing.T) {
		asm := NewAssembler()
		if err := asm.Add(Rax, Qword(Base(Rcx), Index(Rsp, 2))); err == nil {
			t.Fatal("expected an error using rsp as a SIB index")
		}
	})
	t.Run("mismatched operand widths", func(t *testing.T) {
		asm := NewAssembler()
		if err := asm.Add(Al, Rax); err == nil {
			t.Fatal("expected an error for mismatched operand widths")
		}
	})
}

func TestJccAndSetcc(t *testing.T) {
	asm := NewAssembler()
	target := asm.NewLabel()
	if err := asm.Jcc(GreaterEqual, target); err != nil {
		t.Fatal(err)
	}
	asm.SetLabel(target)
	if err := asm.Setcc(Equal, Al); err != nil {
		t.Fatal(err)
	}
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	checkBytes(t, asm, 0x0f, 0x8d, 0x00, 0x00, 0x00, 0x00, 0x0f, 0x94, 0xc0)
}

func TestDecodeVerifiedMoves(t *testing.T) {
	asm := NewAssembler()
	if err := asm.Mov(Rax, R13); err != nil {
		t.Fatal(err)
	}
	expectIntel(t, asm, "mov rax, r13")
}

func TestVaddpdGoldenVector(t *testing.T) {
	asm := NewAssembler()
	if err := asm.Vaddpd(Xmm8, Xmm10, Xmm14); err != nil {
		t.Fatal(err)
	}
	checkBytes(t, asm, 0xc4, 0x41, 0xa9, 0x58, 0xc6)
}

func TestTextListing(t *testing.T) {
	asm := NewAssembler(Options{LogText: true})
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(asm.Add(Rcx, Imm32(8)))
	must(asm.Ret())
	got := asm.Text()
	want := " add         rcx,8h\n ret\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
