package x64asm

// Internal width constants, in bytes, used wherever register/memory widths
// are compared or packed. Kept unexported so the public Mem builders below
// (Byte, Word, Dword, Qword, Xmmword, Ymmword) can use the names spec.md's
// memory-operand grammar uses (`qword[rax]`, etc.) without colliding with
// anything in the public API.
const (
	wByte    = 1
	wWord    = 2
	wDword   = 4
	wQword   = 8
	wXmmword = 16
	wYmmword = 32
)

// refKind distinguishes the two things a Mem's displacement can stand in
// for once a label or constant hasn't been resolved yet: a code label (used
// by `lea` and other RIP-relative code references) or a constant-pool slot
// (returned by the i32/i64/f32/f64/f32x4/bytes entry points).
type refKind uint8

const (
	refNone refKind = iota
	refLabel
	refConst
)

type memRef struct {
	kind  refKind
	label labelID
	slot  constSlot
}

// Mem is a memory-reference operand: an optional base register, an optional
// scaled index register, a 32-bit displacement, and a size tag. Grounded on
// spec.md §3's memory-operand data model and wdamron/x64/args.go's Mem
// struct (same field set, narrowed to a single concrete displacement or
// patch reference instead of the teacher's generalized DispArg).
type Mem struct {
	Base     Reg
	hasBase  bool
	Index    Reg
	hasIndex bool
	Scale    uint8
	Disp     int32
	Width    uint8
	ref      *memRef
}

// AddrOpt configures a Mem built by Byte/Word/Dword/Qword/Xmmword/Ymmword.
// Construction is side-effect-free per spec.md §4.1: invalid combinations
// (bad scale, rsp as index, ...) are not rejected here but at encode time.
type AddrOpt func(*Mem)

// Base sets the memory operand's base register.
func Base(r Reg) AddrOpt {
	return func(m *Mem) { m.Base, m.hasBase = r, true }
}

// Index sets the memory operand's scaled index register. scale must be one
// of 1, 2, 4, or 8 — enforced by the encoder, not by this builder.
func Index(r Reg, scale uint8) AddrOpt {
	return func(m *Mem) { m.Index, m.hasIndex, m.Scale = r, true, scale }
}

// Disp sets the memory operand's 32-bit signed displacement.
func Disp(d int32) AddrOpt {
	return func(m *Mem) { m.Disp = d }
}

// RipLabel anchors the memory operand to a code label via RIP-relative
// addressing, for forms like `lea reg, [label]`. The base becomes the RIP
// sentinel automatically; no explicit Base/Index may also be supplied.
func RipLabel(l Label) AddrOpt {
	return func(m *Mem) {
		m.Base, m.hasBase = ripReg, true
		m.ref = &memRef{kind: refLabel, label: l.id}
	}
}

func ripConst(slot constSlot, width uint8) Mem {
	return Mem{Base: ripReg, hasBase: true, Width: width, ref: &memRef{kind: refConst, slot: slot}}
}

func buildMem(width uint8, opts []AddrOpt) Mem {
	m := Mem{Width: width}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Byte builds an 8-bit-wide memory operand: `byte[...]`.
func Byte(opts ...AddrOpt) Mem { return buildMem(wByte, opts) }

// Word builds a 16-bit-wide memory operand: `word[...]`.
func Word(opts ...AddrOpt) Mem { return buildMem(wWord, opts) }

// Dword builds a 32-bit-wide memory operand: `dword[...]`.
func Dword(opts ...AddrOpt) Mem { return buildMem(wDword, opts) }

// Qword builds a 64-bit-wide memory operand: `qword[...]`.
func Qword(opts ...AddrOpt) Mem { return buildMem(wQword, opts) }

// Xmmword builds a 128-bit-wide memory operand: `xmmword[...]`.
func Xmmword(opts ...AddrOpt) Mem { return buildMem(wXmmword, opts) }

// Ymmword builds a 256-bit-wide memory operand: `ymmword[...]`.
func Ymmword(opts ...AddrOpt) Mem { return buildMem(wYmmword, opts) }

// Imm is a signed integer immediate, carried with the caller's intended
// width. Emitters may downsize to an 8-bit sign-extended form when the
// instruction supports it and the value fits in -128..=127 (spec.md §3).
type Imm struct {
	Value int64
	Width uint8
}

// Imm8 builds an 8-bit immediate.
func Imm8(v int8) Imm { return Imm{Value: int64(v), Width: 1} }

// Imm16 builds a 16-bit immediate.
func Imm16(v int16) Imm { return Imm{Value: int64(v), Width: 2} }

// Imm32 builds a 32-bit immediate.
func Imm32(v int32) Imm { return Imm{Value: int64(v), Width: 4} }

// Imm64 builds a 64-bit immediate.
func Imm64(v int64) Imm { return Imm{Value: v, Width: 8} }

// fitsInt8 reports whether v can be represented as a sign-extended imm8.
func fitsInt8(v int64) bool { return v >= -128 && v <= 127 }

// fitsInt32 reports whether v can be represented as a sign-extended imm32.
func fitsInt32(v int64) bool { return v >= -(1<<31) && v <= (1<<31)-1 }
