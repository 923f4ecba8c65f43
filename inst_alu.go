package x64asm

// Opcode-extension values for the eight base ALU operations, shared across
// the 00/08/10/.../38 opcode-byte families and the 80/81/83 immediate
// group. Grounded on spec.md §4.3's base-binary-ALU family description and
// the Intel manual's standard extension assignment.
const (
	extAdd uint8 = 0
	extOr  uint8 = 1
	extAdc uint8 = 2
	extSbb uint8 = 3
	extAnd uint8 = 4
	extSub uint8 = 5
	extXor uint8 = 6
	extCmp uint8 = 7
)

// Add encodes an ADD instruction: `Add(dst, src)` accepts (reg, reg/mem),
// (mem, reg), or (reg/mem, imm).
func (a *Assembler) Add(dst, src Arg) error { return a.aluBinary("add", extAdd, dst, src) }

// Or encodes an OR instruction.
func (a *Assembler) Or(dst, src Arg) error { return a.aluBinary("or", extOr, dst, src) }

// Adc encodes an ADC (add with carry) instruction.
func (a *Assembler) Adc(dst, src Arg) error { return a.aluBinary("adc", extAdc, dst, src) }

// Sbb encodes an SBB (subtract with borrow) instruction.
func (a *Assembler) Sbb(dst, src Arg) error { return a.aluBinary("sbb", extSbb, dst, src) }

// And encodes an AND instruction.
func (a *Assembler) And(dst, src Arg) error { return a.aluBinary("and", extAnd, dst, src) }

// Sub encodes a SUB instruction.
func (a *Assembler) Sub(dst, src Arg) error { return a.aluBinary("sub", extSub, dst, src) }

// Xor encodes an XOR instruction.
func (a *Assembler) Xor(dst, src Arg) error { return a.aluBinary("xor", extXor, dst, src) }

// Cmp encodes a CMP instruction.
func (a *Assembler) Cmp(dst, src Arg) error { return a.aluBinary("cmp", extCmp, dst, src) }

// aluBinary implements the shared four-shape ALU encoding of spec.md §4.3:
// when dst is a register the `reg, reg/mem` opcode (base+2/+3) is used with
// dst in the ModR/M.reg field; when dst is memory the `reg/mem, reg`
// opcode (base+0/+1) is used with src in the ModR/M.reg field; an
// immediate source always uses the 80/81/83 group with ext selecting the
// operation.
func (a *Assembler) aluBinary(mnemonic string, ext uint8, dst, src Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	if err := checkWidthsMatch(mnemonic, dst, src); err != nil {
		return a.fail(err)
	}

	base := ext * 8
	var err error
	switch d := dst.(type) {
	case Reg:
		w := d.Width() == wQword
		wordSize := d.Width() == wWord
		switch s := src.(type) {
		case Reg, Mem:
			op := base + 3
			if d.Width() == wByte {
				op = base + 2
			}
			err = a.emitRM(mnemonic, []byte{op}, wordSize, w, d, true, 0, false, s)
		case Imm:
			err = a.aluImm(mnemonic, ext, d, d.Width(), s)
		default:
			err = a.fail(errBadOperand(mnemonic, dst, src))
		}
	case Mem:
		switch s := src.(type) {
		case Reg:
			op := base + 1
			if d.Width == wByte {
				op = base + 0
			}
			err = a.emitRM(mnemonic, []byte{op}, d.Width == wWord, s.Width() == wQword, s, true, 0, false, d)
		case Imm:
			err = a.aluImm(mnemonic, ext, d, d.Width, s)
		default:
			err = a.fail(errBadOperand(mnemonic, dst, src))
		}
	default:
		err = a.fail(errBadOperand(mnemonic, dst, src))
	}
	if err != nil {
		return err
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst(mnemonic, argText(a.listing, dst), argText(a.listing, src))
	}
	return nil
}

// aluImm encodes the 80/81/83 immediate-group form against a register or
// memory r/m operand of the given width.
func (a *Assembler) aluImm(mnemonic string, ext uint8, rm Arg, width uint8, imm Imm) error {
	w := width == wQword
	wordSize := width == wWord

	if width == wByte {
		if !fitsInt8(imm.Value) {
			return a.fail(errImmRange(1))
		}
		if err := a.emitRM(mnemonic, []byte{0x80}, false, false, Reg(0), false, ext, true, rm); err != nil {
			return err
		}
		a.emitImm(1, imm.Value)
		return nil
	}

	if fitsInt8(imm.Value) {
		if err := a.emitRM(mnemonic, []byte{0x83}, wordSize, w, Reg(0), false, ext, true, rm); err != nil {
			return err
		}
		a.emitImm(1, imm.Value)
		return nil
	}

	if width == wWord {
		if imm.Value < -(1<<15) || imm.Value > (1<<15)-1 {
			return a.fail(errImmRange(2))
		}
		if err := a.emitRM(mnemonic, []byte{0x81}, true, false, Reg(0), false, ext, true, rm); err != nil {
			return err
		}
		a.emitImm(2, imm.Value)
		return nil
	}

	if !fitsInt32(imm.Value) {
		return a.fail(errImmRange(4))
	}
	if err := a.emitRM(mnemonic, []byte{0x81}, false, w, Reg(0), false, ext, true, rm); err != nil {
		return err
	}
	a.emitImm(4, imm.Value)
	return nil
}
