package x64asm

import "math"

// constKind distinguishes the literal shapes spec.md §4.5 names. Bytes
// carries an explicit, caller-chosen alignment; the others carry a fixed
// alignment matching their natural width.
type constKind uint8

const (
	constI32 constKind = iota
	constI64
	constF32
	constF64
	constF32x4
	constBytes
)

// constSlot is a handle into the constant-pool staging list, assigned at
// request time and resolved to an absolute offset in `data` by finalize.
type constSlot uint32

type constEntry struct {
	kind    constKind
	bytes   []byte
	align   uint8
	offset  uint32 // absolute offset within `data`, set by layoutConstants
}

// constPatch is a deferred RIP-relative relocation against a constant-pool
// slot, resolved only once the pool's final layout is known (finalize).
// Grounded on spec.md §4.5's two-phase staging/layout design.
type constPatch struct {
	slot uint32 // offset of the 32-bit displacement slot in code
	end  uint32 // address the RIP-relative displacement is measured from
	ref  constSlot
}

// internConst always appends a fresh entry. Each call to I32/I64/F32/F64/
// F32x4/Bytes stages its own independent slot, even if an earlier call
// staged byte-identical content — per spec.md §8's ConstantStorage scenario
// (3001 independent f32(1.0) calls must produce data.len==12004, not a
// single deduplicated 4-byte slot). A caller wanting to share one constant
// across multiple instruction operands does so by reusing the Mem value
// already returned from a single call, not by calling the constructor again.
func (a *Assembler) internConst(kind constKind, bytes []byte, align uint8) constSlot {
	slot := constSlot(len(a.constants))
	a.constants = append(a.constants, constEntry{kind: kind, bytes: bytes, align: align})
	return slot
}

// I32 interns a 4-byte, 4-aligned constant and returns a dword RIP-relative
// memory operand referencing it.
func (a *Assembler) I32(v int32) Mem {
	slot := a.internConst(constI32, leBytes(uint64(uint32(v)), 4), 4)
	return ripConst(slot, wDword)
}

// I64 interns an 8-byte, 8-aligned constant and returns a qword RIP-relative
// memory operand referencing it.
func (a *Assembler) I64(v int64) Mem {
	slot := a.internConst(constI64, leBytes(uint64(v), 8), 8)
	return ripConst(slot, wQword)
}

// F32 interns a 4-byte, 4-aligned IEEE-754 single-precision constant and
// returns a dword RIP-relative memory operand referencing it.
func (a *Assembler) F32(v float32) Mem {
	slot := a.internConst(constF32, leBytes(uint64(math.Float32bits(v)), 4), 4)
	return ripConst(slot, wDword)
}

// F64 interns an 8-byte, 8-aligned IEEE-754 double-precision constant and
// returns a qword RIP-relative memory operand referencing it.
func (a *Assembler) F64(v float64) Mem {
	slot := a.internConst(constF64, leBytes(math.Float64bits(v), 8), 8)
	return ripConst(slot, wQword)
}

// F32x4 interns a 16-byte, 16-aligned packed-single constant and returns an
// xmmword RIP-relative memory operand referencing it.
func (a *Assembler) F32x4(a0, a1, a2, a3 float32) Mem {
	buf := make([]byte, 0, 16)
	for _, v := range [4]float32{a0, a1, a2, a3} {
		buf = append(buf, leBytes(uint64(math.Float32bits(v)), 4)...)
	}
	slot := a.internConst(constF32x4, buf, 16)
	return ripConst(slot, wXmmword)
}

// Bytes interns an arbitrary-length constant with an explicit alignment
// (default 8, per spec.md §4.5) and returns a RIP-relative memory operand
// referencing it. The returned Mem's Width equals len(b), capped at 255.
func (a *Assembler) Bytes(b []byte, align ...uint8) Mem {
	al := uint8(8)
	if len(align) > 0 {
		al = align[0]
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	slot := a.internConst(constBytes, cp, al)
	width := len(b)
	if width > 255 {
		width = 255 // Mem.Width is a byte; wider constants are still addressed correctly, just not self-describing
	}
	return ripConst(slot, uint8(width))
}

func leBytes(v uint64, n int) []byte {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

// constOrder returns the permutation of constant indices in the order they
// are laid into `data`: stable descending sort by alignment (insertion
// sort: pool sizes are small and this keeps request order otherwise
// unchanged, matching the spec's "or any equivalent ordering satisfying
// per-slot alignment") so each slot's absolute offset is automatically a
// multiple of its own alignment once the run is padded up from the
// previous boundary.
func constOrder(constants []constEntry) []int {
	order := make([]int, len(constants))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && constants[order[j]].align > constants[order[j-1]].align; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}

// constLayout is a pure, non-mutating re-derivation of the final `data`
// length and every constant's absolute offset within it. layoutConstants
// uses it to actually write `data`; the text listing uses it too, to render
// a constant reference's `[.start-N]` distance without waiting for
// Finalize to have run.
func constLayout(constants []constEntry) (dataLen int, offsets []int) {
	offsets = make([]int, len(constants))
	pos := 0
	for _, idx := range constOrder(constants) {
		pos += padding(pos, int(constants[idx].align))
		offsets[idx] = pos
		pos += len(constants[idx].bytes)
	}
	maxAlign := 1
	for _, e := range constants {
		if int(e.align) > maxAlign {
			maxAlign = int(e.align)
		}
	}
	pos += padding(pos, maxAlign)
	return pos, offsets
}

// layoutConstants appends every staged constant's bytes into `data` at the
// offsets constLayout computes, and records each entry's absolute offset.
// Grounded on spec.md §4.5's layout rule.
func (a *Assembler) layoutConstants() {
	dataLen, offsets := constLayout(a.constants)
	for _, idx := range constOrder(a.constants) {
		e := &a.constants[idx]
		a.data.PadZero(offsets[idx] - a.data.Len())
		e.offset = uint32(offsets[idx])
		a.data.Bytes(e.bytes)
	}
	a.data.PadZero(dataLen - a.data.Len())
}

func padding(offset, align int) int {
	if align <= 1 {
		return 0
	}
	rem := offset % align
	if rem == 0 {
		return 0
	}
	return align - rem
}

// resolveConstPatches rewrites every deferred constant-pool relocation now
// that layoutConstants has assigned absolute offsets. Per spec.md §4.5, the
// consumer lays `data` immediately before `code`, ending exactly at code's
// start, so a slot at data-relative offset o sits at address `o - len(data)`
// relative to the start of code — always negative, matching every golden
// disp32 in the corpus (RIP-relative constant loads always displace
// backward from the instruction following the reference).
func (a *Assembler) resolveConstPatches() {
	dataLen := int32(a.data.Len())
	for _, p := range a.constPatches {
		target := int32(a.constants[p.ref].offset) - dataLen
		a.code.patchInt32(int(p.slot), target-int32(p.end))
	}
	a.constPatches = nil
}
