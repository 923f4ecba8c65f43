package x64asm

import "testing"

func TestConstantCallsAlwaysGetFreshSlots(t *testing.T) {
	asm := NewAssembler()
	a := asm.I64(42)
	b := asm.I64(42)
	if a.ref.slot == b.ref.slot {
		t.Fatal("two independent calls, even with identical content, must not share a slot")
	}
	c := asm.I64(43)
	if a.ref.slot == c.ref.slot || b.ref.slot == c.ref.slot {
		t.Fatal("distinct constants must not share a slot")
	}
}

// Grounded on original_source/tests/AssemblyBuilderX64.test.cpp's
// "ConstantStorage" case: 3001 independent f32(1.0) calls must stage 3001
// distinct 4-byte slots, not collapse into one deduplicated slot.
func TestConstantStorageManyIdenticalCalls(t *testing.T) {
	asm := NewAssembler()
	for i := 0; i <= 3000; i++ {
		if err := asm.Vaddss(Xmm0, Xmm0, asm.F32(1.0)); err != nil {
			t.Fatal(err)
		}
	}
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	data := asm.Data()
	if len(data) != 12004 {
		t.Fatalf("data.len = %d, want 12004", len(data))
	}
	for i := 0; i <= 3000; i++ {
		got := data[i*4 : i*4+4]
		want := []byte{0x00, 0x00, 0x80, 0x3f}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("slot %d byte %d = %#x, want %#x", i, j, got[j], want[j])
			}
		}
	}
}

func TestConstantLayoutDescendingAlignment(t *testing.T) {
	asm := NewAssembler()
	// Request the smallest-alignment constant first; layout must still place
	// the 16-byte-aligned entry before the 4-byte one.
	i32ref := asm.I32(7)
	f32x4ref := asm.F32x4(1, 2, 4, 8)

	if err := asm.Add(Eax, i32ref); err != nil {
		t.Fatal(err)
	}
	if err := asm.Vmovaps(Xmm0, f32x4ref); err != nil {
		t.Fatal(err)
	}
	if err := asm.Ret(); err != nil {
		t.Fatal(err)
	}
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}

	data := asm.Data()
	f32x4Offset := asm.constants[f32x4ref.ref.slot].offset
	i32Offset := asm.constants[i32ref.ref.slot].offset
	if f32x4Offset != 0 {
		t.Fatalf("expected the 16-byte constant first at offset 0, got %d", f32x4Offset)
	}
	if i32Offset%4 != 0 {
		t.Fatalf("4-byte constant at offset %d is not 4-byte aligned", i32Offset)
	}
	if len(data)%16 != 0 {
		t.Fatalf("data length %d is not padded to the max alignment", len(data))
	}
}

func TestBytesConstantPreservesContent(t *testing.T) {
	asm := NewAssembler()
	ref := asm.Bytes([]byte("abc"), 1)
	if err := asm.Vmovupd(Xmm1, ref); err != nil {
		t.Fatal(err)
	}
	if err := asm.Ret(); err != nil {
		t.Fatal(err)
	}
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	off := asm.constants[ref.ref.slot].offset
	if string(asm.Data()[off:off+3]) != "abc" {
		t.Fatalf("constant content corrupted: %q", asm.Data()[off:off+3])
	}
}
