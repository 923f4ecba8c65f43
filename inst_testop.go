package x64asm

// Test encodes a TEST instruction (bitwise AND discarding the result, flags
// only). Accepts (reg/mem, reg) via 84/85 and (reg/mem, imm) via F6/F7
// ext=0; since TEST is symmetric, (reg, mem) is also accepted and encoded
// with the memory operand in the r/m position. The A8/A9 AL/EAX/RAX-
// specific short forms from spec.md §4.3 are not emitted — F6/F7 already
// covers every (reg, imm) case this module needs, so the shorter encoding
// was not wired in (see DESIGN.md).
func (a *Assembler) Test(dst, src Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	var err error
	switch d := dst.(type) {
	case Reg:
		switch s := src.(type) {
		case Reg:
			op := byte(0x85)
			if d.Width() == wByte {
				op = 0x84
			}
			err = checkWidthsMatch("test", d, s)
			if err == nil {
				err = a.emitRM("test", []byte{op}, d.Width() == wWord, d.Width() == wQword, s, true, 0, false, d)
			}
		case Mem:
			op := byte(0x85)
			if d.Width() == wByte {
				op = 0x84
			}
			err = checkWidthsMatch("test", d, s)
			if err == nil {
				err = a.emitRM("test", []byte{op}, d.Width() == wWord, d.Width() == wQword, d, true, 0, false, s)
			}
		case Imm:
			err = a.testImm(d.Width(), d, s)
		default:
			err = errBadOperand("test", dst, src)
		}
	case Mem:
		switch s := src.(type) {
		case Reg:
			op := byte(0x85)
			if s.Width() == wByte {
				op = 0x84
			}
			err = a.emitRM("test", []byte{op}, s.Width() == wWord, s.Width() == wQword, s, true, 0, false, d)
		case Imm:
			err = a.testImm(d.Width, d, s)
		default:
			err = errBadOperand("test", dst, src)
		}
	default:
		err = errBadOperand("test", dst, src)
	}
	if err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst("test", argText(a.listing, dst), argText(a.listing, src))
	}
	return nil
}

func (a *Assembler) testImm(width uint8, rm Arg, imm Imm) error {
	op := byte(0xf7)
	if width == wByte {
		op = 0xf6
	}
	if err := a.emitRM("test", []byte{op}, width == wWord, width == wQword, Reg(0), false, 0, true, rm); err != nil {
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
