package x64asm

// Mov encodes a MOV instruction across the shapes spec.md §4.3 names:
// `reg, imm` (B8+r/B0+r, immediate width following the register),
// `reg, reg/mem` (8B/8A), `reg/mem, reg` (89/88), and `reg/mem, imm`
// (C7/C6 ext 0).
func (a *Assembler) Mov(dst, src Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	var err error
	switch d := dst.(type) {
	case Reg:
		switch s := src.(type) {
		case Reg:
			if err = checkWidthsMatch("mov", d, s); err == nil {
				op := byte(0x8b)
				if d.Width() == wByte {
					op = 0x8a
				}
				err = a.emitRM("mov", []byte{op}, d.Width() == wWord, d.Width() == wQword, d, true, 0, false, s)
			}
		case Mem:
			if err = checkWidthsMatch("mov", d, s); err == nil {
				op := byte(0x8b)
				if d.Width() == wByte {
					op = 0x8a
				}
				err = a.emitRM("mov", []byte{op}, d.Width() == wWord, d.Width() == wQword, d, true, 0, false, s)
			}
		case Imm:
			err = a.movRegImm(d, s)
		default:
			err = errBadOperand("mov", dst, src)
		}
	case Mem:
		switch s := src.(type) {
		case Reg:
			if err = checkWidthsMatch("mov", d, s); err == nil {
				op := byte(0x89)
				if s.Width() == wByte {
					op = 0x88
				}
				err = a.emitRM("mov", []byte{op}, s.Width() == wWord, s.Width() == wQword, s, true, 0, false, d)
			}
		case Imm:
			err = a.movMemImm(d, s)
		default:
			err = errBadOperand("mov", dst, src)
		}
	default:
		err = errBadOperand("mov", dst, src)
	}
	if err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst("mov", argText(a.listing, dst), argText(a.listing, src))
	}
	return nil
}

// Mov64 always encodes the 10-byte `REX.W B8+r imm64` form, regardless of
// whether a shorter encoding of the same value would fit, per spec.md
// §4.3's "mov64 (always B8+r imm64)" entry point.
func (a *Assembler) Mov64(dst Reg, imm int64) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	if err := a.emitMovImm64(dst, imm); err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst("mov64", argText(a.listing, dst), hexImm(imm))
	}
	return nil
}

// movRegImm encodes the `reg, imm` shape: B0+r (byte) or B8+r (word/dword/
// qword), with the immediate width following the register's width. For a
// 64-bit destination this is always the full 10-byte imm64 form, matching
// spec.md §4.3's ABI-stability note and the `mov rcx, 1` golden vector.
func (a *Assembler) movRegImm(dst Reg, imm Imm) error {
	if dst.Width() == wQword {
		return a.emitMovImm64(dst, imm.Value)
	}

	width := dst.Width()
	op := byte(0xb8) + dst.Index()&7
	if width == wByte {
		op = 0xb0 + dst.Index()&7
	}
	wordSize := width == wWord

	if wordSize {
		a.code.Byte(0x66)
	}
	emitRex(a.code, Reg(0), false, dst, true, Reg(0), false, false)
	a.code.Byte(op)
	switch width {
	case wByte:
		a.emitImm(1, imm.Value)
	case wWord:
		a.emitImm(2, imm.Value)
	default:
		a.emitImm(4, imm.Value)
	}
	return nil
}

func (a *Assembler) emitMovImm64(dst Reg, value int64) error {
	op := byte(0xb8) + dst.Index()&7
	emitRex(a.code, Reg(0), false, dst, true, Reg(0), false, true)
	a.code.Byte(op)
	a.emitImm(8, value)
	return nil
}

// movMemImm encodes the `reg/mem, imm` shape: C7 (word/dword/qword) or C6
// (byte), opcode-extension 0, with the immediate sign-extended to the
// operand's width (imm8 for byte, imm16 for word, imm32 otherwise).
func (a *Assembler) movMemImm(dst Mem, imm Imm) error {
	width := dst.Width
	op := byte(0xc7)
	if width == wByte {
		op = 0xc6
	}
	if err := a.emitRM("mov", []byte{op}, width == wWord, width == wQword, Reg(0), false, 0, true, dst); err != nil {
		return err
	}
	switch width {
	case wByte:
		if !fitsInt8(imm.Value) {
			return errImmRange(1)
		}
		a.emitImm(1, imm.Value)
	case wWord:
		a.emitImm(2, imm.Value)
	default:
		if !fitsInt32(imm.Value) {
			return errImmRange(4)
		}
		a.emitImm(4, imm.Value)
	}
	return nil
}

// Movsx encodes a sign-extending move: `0F BE` from an 8-bit source, `0F BF`
// from a 16-bit source.
func (a *Assembler) Movsx(dst Reg, src Arg) error { return a.movExtend("movsx", 0xbe, 0xbf, dst, src) }

// Movzx encodes a zero-extending move: `0F B6` from an 8-bit source, `0F B7`
// from a 16-bit source.
func (a *Assembler) Movzx(dst Reg, src Arg) error { return a.movExtend("movzx", 0xb6, 0xb7, dst, src) }

func (a *Assembler) movExtend(mnemonic string, opByte, opWord byte, dst Reg, src Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	srcWidth, ok := argWidth(src)
	if !ok {
		return a.fail(errBadOperand(mnemonic, dst, src))
	}
	var op byte
	switch srcWidth {
	case wByte:
		op = opByte
	case wWord:
		op = opWord
	default:
		return a.fail(errBadOperand(mnemonic, dst, src))
	}
	if err := a.emitRM(mnemonic, []byte{0x0f, op}, false, dst.Width() == wQword, dst, true, 0, false, src); err != nil {
		return err
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst(mnemonic, argText(a.listing, dst), argText(a.listing, src))
	}
	return nil
}
