package x64asm

// Lea encodes a LEA (load effective address) instruction. The source must
// be a memory operand; no memory access is actually performed, but the
// displacement/SIB encoding rules are identical to any other memory form,
// per spec.md §4.3.
func (a *Assembler) Lea(dst Reg, src Mem) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	w := dst.Width() == wQword
	if err := a.emitRM("lea", []byte{0x8d}, dst.Width() == wWord, w, dst, true, 0, false, src); err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst("lea", argText(a.listing, dst), argText(a.listing, src))
	}
	return nil
}
