package x64asm

// regFamily distinguishes the legacy 8-bit high-byte registers (ah/ch/dh/bh)
// from the uniformly-addressable low-byte registers (al/bpl/sil/dil/...),
// since the two can never be combined with REX in the same instruction.
type regFamily uint8

const (
	famLegacy regFamily = iota
	famHighByte
	famXMM
	famYMM
	famRIP
)

// Reg is a packed register reference: width in bytes in bits 16-23, family
// in bits 8-15, encoding index (0-15) in bits 0-7. Grounded directly on
// wdamron/x64/args.go's Reg type (Reg uint32, identical bit layout),
// narrowed to the families spec.md's operand model names (general-purpose,
// high-byte, XMM, YMM, plus a RIP sentinel).
type Reg uint32

func makeReg(family regFamily, width uint8, index uint8) Reg {
	return Reg(uint32(width)<<16 | uint32(family)<<8 | uint32(index))
}

// Width returns the register's size class in bytes.
func (r Reg) Width() uint8 { return uint8(r >> 16) }

// Index returns the register's encoding index (0-15).
func (r Reg) Index() uint8 { return uint8(r) & 0xf }

func (r Reg) family() regFamily { return regFamily(uint8(r >> 8)) }

// Extended reports whether the register's index is 8 or higher, which
// drives REX.B/REX.R/REX.X (or the inverted VEX equivalents).
func (r Reg) Extended() bool { return r.Index() >= 8 }

func (r Reg) isHighByte() bool { return r.family() == famHighByte }
func (r Reg) isXMM() bool      { return r.family() == famXMM }
func (r Reg) isYMM() bool      { return r.family() == famYMM }
func (r Reg) isVector() bool   { return r.isXMM() || r.isYMM() }
func (r Reg) isRIP() bool      { return r.family() == famRIP }

// String returns the assembly-syntax register name, used by the listing.
func (r Reg) String() string {
	if name, ok := regNames[r]; ok {
		return name
	}
	return "?reg?"
}

// Named 8-bit registers (low byte). Exported per spec.md §3's register
// name constants, grounded on wdamron/x64/regs.go's exported RAX/AL/...
// naming (this module lowercases the assembly mnemonic only in listing
// text, via Reg.String).
var (
	Al   = makeReg(famLegacy, wByte, 0)
	Cl   = makeReg(famLegacy, wByte, 1)
	Dl   = makeReg(famLegacy, wByte, 2)
	Bl   = makeReg(famLegacy, wByte, 3)
	Spl  = makeReg(famLegacy, wByte, 4)
	Bpl  = makeReg(famLegacy, wByte, 5)
	Sil  = makeReg(famLegacy, wByte, 6)
	Dil  = makeReg(famLegacy, wByte, 7)
	R8b  = makeReg(famLegacy, wByte, 8)
	R9b  = makeReg(famLegacy, wByte, 9)
	R10b = makeReg(famLegacy, wByte, 10)
	R11b = makeReg(famLegacy, wByte, 11)
	R12b = makeReg(famLegacy, wByte, 12)
	R13b = makeReg(famLegacy, wByte, 13)
	R14b = makeReg(famLegacy, wByte, 14)
	R15b = makeReg(famLegacy, wByte, 15)

	// High-byte registers share an encoding index with a low-byte register
	// but can never appear alongside REX.
	Ah = makeReg(famHighByte, wByte, 4)
	Ch = makeReg(famHighByte, wByte, 5)
	Dh = makeReg(famHighByte, wByte, 6)
	Bh = makeReg(famHighByte, wByte, 7)
)

// Named 16-bit registers.
var (
	Ax   = makeReg(famLegacy, wWord, 0)
	Cx   = makeReg(famLegacy, wWord, 1)
	Dx   = makeReg(famLegacy, wWord, 2)
	Bx   = makeReg(famLegacy, wWord, 3)
	Sp   = makeReg(famLegacy, wWord, 4)
	Bp   = makeReg(famLegacy, wWord, 5)
	Si   = makeReg(famLegacy, wWord, 6)
	Di   = makeReg(famLegacy, wWord, 7)
	R8w  = makeReg(famLegacy, wWord, 8)
	R9w  = makeReg(famLegacy, wWord, 9)
	R10w = makeReg(famLegacy, wWord, 10)
	R11w = makeReg(famLegacy, wWord, 11)
	R12w = makeReg(famLegacy, wWord, 12)
	R13w = makeReg(famLegacy, wWord, 13)
	R14w = makeReg(famLegacy, wWord, 14)
	R15w = makeReg(famLegacy, wWord, 15)
)

// Named 32-bit registers.
var (
	Eax  = makeReg(famLegacy, wDword, 0)
	Ecx  = makeReg(famLegacy, wDword, 1)
	Edx  = makeReg(famLegacy, wDword, 2)
	Ebx  = makeReg(famLegacy, wDword, 3)
	Esp  = makeReg(famLegacy, wDword, 4)
	Ebp  = makeReg(famLegacy, wDword, 5)
	Esi  = makeReg(famLegacy, wDword, 6)
	Edi  = makeReg(famLegacy, wDword, 7)
	R8d  = makeReg(famLegacy, wDword, 8)
	R9d  = makeReg(famLegacy, wDword, 9)
	R10d = makeReg(famLegacy, wDword, 10)
	R11d = makeReg(famLegacy, wDword, 11)
	R12d = makeReg(famLegacy, wDword, 12)
	R13d = makeReg(famLegacy, wDword, 13)
	R14d = makeReg(famLegacy, wDword, 14)
	R15d = makeReg(famLegacy, wDword, 15)
)

// Named 64-bit registers.
var (
	Rax = makeReg(famLegacy, wQword, 0)
	Rcx = makeReg(famLegacy, wQword, 1)
	Rdx = makeReg(famLegacy, wQword, 2)
	Rbx = makeReg(famLegacy, wQword, 3)
	Rsp = makeReg(famLegacy, wQword, 4)
	Rbp = makeReg(famLegacy, wQword, 5)
	Rsi = makeReg(famLegacy, wQword, 6)
	Rdi = makeReg(famLegacy, wQword, 7)
	R8  = makeReg(famLegacy, wQword, 8)
	R9  = makeReg(famLegacy, wQword, 9)
	R10 = makeReg(famLegacy, wQword, 10)
	R11 = makeReg(famLegacy, wQword, 11)
	R12 = makeReg(famLegacy, wQword, 12)
	R13 = makeReg(famLegacy, wQword, 13)
	R14 = makeReg(famLegacy, wQword, 14)
	R15 = makeReg(famLegacy, wQword, 15)

	// ripReg is a sentinel base register for RIP-relative memory operands;
	// it is never emitted as a ModRM reg/rm index and never takes an index,
	// so it is never constructed directly by callers (see RipLabel/ripConst).
	ripReg = makeReg(famRIP, wQword, 5)
)

// Named XMM registers.
var (
	Xmm0  = makeReg(famXMM, wXmmword, 0)
	Xmm1  = makeReg(famXMM, wXmmword, 1)
	Xmm2  = makeReg(famXMM, wXmmword, 2)
	Xmm3  = makeReg(famXMM, wXmmword, 3)
	Xmm4  = makeReg(famXMM, wXmmword, 4)
	Xmm5  = makeReg(famXMM, wXmmword, 5)
	Xmm6  = makeReg(famXMM, wXmmword, 6)
	Xmm7  = makeReg(famXMM, wXmmword, 7)
	Xmm8  = makeReg(famXMM, wXmmword, 8)
	Xmm9  = makeReg(famXMM, wXmmword, 9)
	Xmm10 = makeReg(famXMM, wXmmword, 10)
	Xmm11 = makeReg(famXMM, wXmmword, 11)
	Xmm12 = makeReg(famXMM, wXmmword, 12)
	Xmm13 = makeReg(famXMM, wXmmword, 13)
	Xmm14 = makeReg(famXMM, wXmmword, 14)
	Xmm15 = makeReg(famXMM, wXmmword, 15)
)

// Named YMM registers.
var (
	Ymm0  = makeReg(famYMM, wYmmword, 0)
	Ymm1  = makeReg(famYMM, wYmmword, 1)
	Ymm2  = makeReg(famYMM, wYmmword, 2)
	Ymm3  = makeReg(famYMM, wYmmword, 3)
	Ymm4  = makeReg(famYMM, wYmmword, 4)
	Ymm5  = makeReg(famYMM, wYmmword, 5)
	Ymm6  = makeReg(famYMM, wYmmword, 6)
	Ymm7  = makeReg(famYMM, wYmmword, 7)
	Ymm8  = makeReg(famYMM, wYmmword, 8)
	Ymm9  = makeReg(famYMM, wYmmword, 9)
	Ymm10 = makeReg(famYMM, wYmmword, 10)
	Ymm11 = makeReg(famYMM, wYmmword, 11)
	Ymm12 = makeReg(famYMM, wYmmword, 12)
	Ymm13 = makeReg(famYMM, wYmmword, 13)
	Ymm14 = makeReg(famYMM, wYmmword, 14)
	Ymm15 = makeReg(famYMM, wYmmword, 15)
)

var regNames = map[Reg]string{
	Al: "al", Cl: "cl", Dl: "dl", Bl: "bl", Spl: "spl", Bpl: "bpl", Sil: "sil", Dil: "dil",
	R8b: "r8b", R9b: "r9b", R10b: "r10b", R11b: "r11b", R12b: "r12b", R13b: "r13b", R14b: "r14b", R15b: "r15b",
	Ah: "ah", Ch: "ch", Dh: "dh", Bh: "bh",
	Ax: "ax", Cx: "cx", Dx: "dx", Bx: "bx", Sp: "sp", Bp: "bp", Si: "si", Di: "di",
	R8w: "r8w", R9w: "r9w", R10w: "r10w", R11w: "r11w", R12w: "r12w", R13w: "r13w", R14w: "r14w", R15w: "r15w",
	Eax: "eax", Ecx: "ecx", Edx: "edx", Ebx: "ebx", Esp: "esp", Ebp: "ebp", Esi: "esi", Edi: "edi",
	R8d: "r8d", R9d: "r9d", R10d: "r10d", R11d: "r11d", R12d: "r12d", R13d: "r13d", R14d: "r14d", R15d: "r15d",
	Rax: "rax", Rcx: "rcx", Rdx: "rdx", Rbx: "rbx", Rsp: "rsp", Rbp: "rbp", Rsi: "rsi", Rdi: "rdi",
	R8: "r8", R9: "r9", R10: "r10", R11: "r11", R12: "r12", R13: "r13", R14: "r14", R15: "r15",
	Xmm0: "xmm0", Xmm1: "xmm1", Xmm2: "xmm2", Xmm3: "xmm3", Xmm4: "xmm4", Xmm5: "xmm5", Xmm6: "xmm6", Xmm7: "xmm7",
	Xmm8: "xmm8", Xmm9: "xmm9", Xmm10: "xmm10", Xmm11: "xmm11", Xmm12: "xmm12", Xmm13: "xmm13", Xmm14: "xmm14", Xmm15: "xmm15",
	Ymm0: "ymm0", Ymm1: "ymm1", Ymm2: "ymm2", Ymm3: "ymm3", Ymm4: "ymm4", Ymm5: "ymm5", Ymm6: "ymm6", Ymm7: "ymm7",
	Ymm8: "ymm8", Ymm9: "ymm9", Ymm10: "ymm10", Ymm11: "ymm11", Ymm12: "ymm12", Ymm13: "ymm13", Ymm14: "ymm14", Ymm15: "ymm15",
}
