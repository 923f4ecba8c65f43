package x64asm

// Imul encodes a signed multiply. With no immediate, it emits the two-
// operand `reg, reg/mem` form (`0F AF`). With an immediate, it emits the
// three-operand `reg, reg/mem, imm` form: `6B` (imm8, sign-extended) when
// the value fits in -128..=127, otherwise `69` (imm32, or imm16 for a
// 16-bit destination).
func (a *Assembler) Imul(dst Reg, src Arg, imm ...Imm) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	w := dst.Width() == wQword
	wordSize := dst.Width() == wWord

	var err error
	if len(imm) == 0 {
		err = a.emitRM("imul", []byte{0x0f, 0xaf}, wordSize, w, dst, true, 0, false, src)
	} else {
		v := imm[0]
		if fitsInt8(v.Value) {
			if err = a.emitRM("imul", []byte{0x6b}, wordSize, w, dst, true, 0, false, src); err == nil {
				a.emitImm(1, v.Value)
			}
		} else if wordSize {
			if v.Value < -(1<<15) || v.Value > (1<<15)-1 {
				err = errImmRange(2)
			} else if err = a.emitRM("imul", []byte{0x69}, true, false, dst, true, 0, false, src); err == nil {
				a.emitImm(2, v.Value)
			}
		} else {
			if !fitsInt32(v.Value) {
				err = errImmRange(4)
			} else if err = a.emitRM("imul", []byte{0x69}, false, w, dst, true, 0, false, src); err == nil {
				a.emitImm(4, v.Value)
			}
		}
	}
	if err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		if len(imm) == 0 {
			a.logInst("imul", argText(a.listing, dst), argText(a.listing, src))
		} else {
			a.logInst("imul", argText(a.listing, dst), argText(a.listing, src), hexImm(imm[0].Value))
		}
	}
	return nil
}
