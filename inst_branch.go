package x64asm

// JmpIndirect encodes an absolute indirect jump through a 64-bit register
// or memory operand (`FF /4`). No REX.W is ever emitted: 64-bit operand
// size is already the default for this form in 64-bit mode, per spec.md
// §4.3.
func (a *Assembler) JmpIndirect(rm Arg) error { return a.indirectBranch("jmp", 4, rm) }

// CallIndirect encodes an absolute indirect call through a 64-bit register
// or memory operand (`FF /2`).
func (a *Assembler) CallIndirect(rm Arg) error { return a.indirectBranch("call", 2, rm) }

func (a *Assembler) indirectBranch(mnemonic string, ext uint8, rm Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	width, ok := argWidth(rm)
	if !ok || width != wQword {
		return a.fail(errBadOperand(mnemonic, rm))
	}
	if err := a.emitRM(mnemonic, []byte{0xff}, false, false, Reg(0), false, ext, true, rm); err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst(mnemonic, argText(a.listing, rm))
	}
	return nil
}

// Jmp encodes a near unconditional jump to a label: `E9` + disp32. The
// 32-bit displacement is always used; there is no short-form optimization
// in this encoder, per spec.md §4.3.
func (a *Assembler) Jmp(target Label) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	a.code.Byte(0xe9)
	a.emitLabelDisp32(target)
	if a.listing != nil {
		a.logInst("jmp", a.listing.labelName(target.id))
	}
	return nil
}

// Call encodes a near call to a label: `E8` + disp32.
func (a *Assembler) Call(target Label) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	a.code.Byte(0xe8)
	a.emitLabelDisp32(target)
	if a.listing != nil {
		a.logInst("call", a.listing.labelName(target.id))
	}
	return nil
}

// Jcc encodes a near conditional jump to a label: `0F 8x` + disp32, where x
// is cc's low nibble.
func (a *Assembler) Jcc(cc ConditionCode, target Label) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	a.code.Byte(0x0f)
	a.code.Byte(0x80 | byte(cc))
	a.emitLabelDisp32(target)
	if a.listing != nil {
		a.logInst("j"+cc.String(), a.listing.labelName(target.id))
	}
	return nil
}

// Setcc encodes a byte-sized conditional set: `0F 9x /0`.
func (a *Assembler) Setcc(cc ConditionCode, dst Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	width, ok := argWidth(dst)
	if !ok || width != wByte {
		return a.fail(errBadOperand("setcc", dst))
	}
	mnemonic := "set" + cc.String()
	if err := a.emitRM(mnemonic, []byte{0x0f, 0x90 | byte(cc)}, false, false, Reg(0), false, 0, true, dst); err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst(mnemonic, argText(a.listing, dst))
	}
	return nil
}

// Cmovcc encodes a conditional move: `0F 4x /r`.
func (a *Assembler) Cmovcc(cc ConditionCode, dst Reg, src Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	mnemonic := "cmov" + cc.String()
	w := dst.Width() == wQword
	if err := a.emitRM(mnemonic, []byte{0x0f, 0x40 | byte(cc)}, dst.Width() == wWord, w, dst, true, 0, false, src); err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst(mnemonic, argText(a.listing, dst), argText(a.listing, src))
	}
	return nil
}

// Push encodes a 64-bit register push: `50+r`.
func (a *Assembler) Push(r Reg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	emitRex(a.code, Reg(0), false, r, true, Reg(0), false, false)
	a.code.Byte(0x50 + r.Index()&7)
	if a.listing != nil {
		a.logInst("push", argText(a.listing, r))
	}
	return nil
}

// Pop encodes a 64-bit register pop: `58+r`.
func (a *Assembler) Pop(r Reg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	emitRex(a.code, Reg(0), false, r, true, Reg(0), false, false)
	a.code.Byte(0x58 + r.Index()&7)
	if a.listing != nil {
		a.logInst("pop", argText(a.listing, r))
	}
	return nil
}

// Ret encodes a near return.
func (a *Assembler) Ret() error {
	if err := a.checkReady(); err != nil {
		return err
	}
	a.code.Byte(0xc3)
	if a.listing != nil {
		a.logInst("ret")
	}
	return nil
}

// Int3 encodes a breakpoint trap.
func (a *Assembler) Int3() error {
	if err := a.checkReady(); err != nil {
		return err
	}
	a.code.Byte(0xcc)
	if a.listing != nil {
		a.logInst("int3")
	}
	return nil
}

// Nop encodes a single-byte no-op.
func (a *Assembler) Nop() error {
	if err := a.checkReady(); err != nil {
		return err
	}
	a.code.Byte(0x90)
	if a.listing != nil {
		a.logInst("nop")
	}
	return nil
}
