package x64asm

// VEX.map_select values, per spec.md §4.2.
const (
	map0F   uint8 = 1
	map0F38 uint8 = 2
	map0F3A uint8 = 3
)

// VEX.pp values, selecting the legacy SIMD-prefix equivalent.
const (
	ppNone uint8 = 0
	pp66   uint8 = 1
	ppF3   uint8 = 2
	ppF2   uint8 = 3
)

// emitVexRM writes a 3-byte VEX prefix, an opcode byte, and a ModR/M(+SIB+
// disp) encoding for (regField, rm), optionally merging a second source via
// VEX.vvvv. Grounded on spec.md §4.2's VEX primitive and wdamron/x64's
// emitVexXop dispatch, restated over this module's Mem/Reg operand types.
func (a *Assembler) emitVexRM(mnemonic string, opcode, mapSel, pp uint8, w, l bool, regField Reg, vvvv Reg, hasVvvv bool, rm Arg) error {
	var rmReg Reg
	var rmIsReg bool
	var rmMem Mem
	switch v := rm.(type) {
	case Reg:
		rmReg, rmIsReg = v, true
	case Mem:
		rmMem = v
	default:
		return a.fail(errBadOperand(mnemonic, rm))
	}
	if !rmIsReg && rmMem.hasIndex {
		if rmMem.Index.Index() == 4 {
			return a.fail(errRspAsIndex())
		}
		if rmMem.Scale != 1 && rmMem.Scale != 2 && rmMem.Scale != 4 && rmMem.Scale != 8 {
			return a.fail(errBadScale(rmMem.Scale))
		}
	}

	if rmIsReg {
		emitVex3(a.code, regField, true, rmReg, true, Reg(0), false, vvvv, hasVvvv, mapSel, pp, w, l)
	} else {
		emitVex3(a.code, regField, true, rmMem.Base, rmMem.hasBase, rmMem.Index, rmMem.hasIndex, vvvv, hasVvvv, mapSel, pp, w, l)
	}
	a.code.Byte(opcode)
	if rmIsReg {
		emitModRM(a.code, modDirect, regField.Index(), rmReg.Index())
	} else {
		a.emitMemOperand(a.code, regField.Index(), rmMem)
	}
	return nil
}

func vecL(r Reg) bool { return r.isYMM() }

// avxBinary implements the "binary merge" family (vaddpd, vaddps, vaddsd,
// vaddss, vsubsd, vmulsd, vdivsd, vxorpd): dst and src1 are xmm/ymm, src1 is
// carried in VEX.vvvv, src2 is a register or memory operand of the same
// width as dst.
func (a *Assembler) avxBinary(mnemonic string, opcode, pp uint8, dst, src1 Reg, src2 Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	if err := a.emitVexRM(mnemonic, opcode, map0F, pp, true, vecL(dst), dst, src1, true, src2); err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst(mnemonic, argText(a.listing, dst), argText(a.listing, src1), argText(a.listing, src2))
	}
	return nil
}

func (a *Assembler) Vaddpd(dst, src1 Reg, src2 Arg) error { return a.avxBinary("vaddpd", 0x58, pp66, dst, src1, src2) }
func (a *Assembler) Vaddps(dst, src1 Reg, src2 Arg) error { return a.avxBinary("vaddps", 0x58, ppNone, dst, src1, src2) }
func (a *Assembler) Vaddsd(dst, src1 Reg, src2 Arg) error { return a.avxBinary("vaddsd", 0x58, ppF2, dst, src1, src2) }
func (a *Assembler) Vaddss(dst, src1 Reg, src2 Arg) error { return a.avxBinary("vaddss", 0x58, ppF3, dst, src1, src2) }
func (a *Assembler) Vsubsd(dst, src1 Reg, src2 Arg) error { return a.avxBinary("vsubsd", 0x5c, ppF2, dst, src1, src2) }
func (a *Assembler) Vmulsd(dst, src1 Reg, src2 Arg) error { return a.avxBinary("vmulsd", 0x59, ppF2, dst, src1, src2) }
func (a *Assembler) Vdivsd(dst, src1 Reg, src2 Arg) error { return a.avxBinary("vdivsd", 0x5e, ppF2, dst, src1, src2) }
func (a *Assembler) Vxorpd(dst, src1 Reg, src2 Arg) error { return a.avxBinary("vxorpd", 0x57, pp66, dst, src1, src2) }

// avxUnary implements the "unary merge" family: single-source pd/ps forms
// (vvvv=1111, i.e. hasVvvv=false) and two-source sd/ss forms (src1 carried
// in vvvv) for vsqrtpd/ps/sd/ss, vcomisd, vucomisd.
func (a *Assembler) avxUnary(mnemonic string, opcode, pp uint8, dst Reg, src1 Reg, hasSrc1 bool, src2 Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	if err := a.emitVexRM(mnemonic, opcode, map0F, pp, true, vecL(dst), dst, src1, hasSrc1, src2); err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		if hasSrc1 {
			a.logInst(mnemonic, argText(a.listing, dst), argText(a.listing, src1), argText(a.listing, src2))
		} else {
			a.logInst(mnemonic, argText(a.listing, dst), argText(a.listing, src2))
		}
	}
	return nil
}

func (a *Assembler) Vsqrtpd(dst Reg, src Arg) error { return a.avxUnary("vsqrtpd", 0x51, pp66, dst, Reg(0), false, src) }
func (a *Assembler) Vsqrtps(dst Reg, src Arg) error { return a.avxUnary("vsqrtps", 0x51, ppNone, dst, Reg(0), false, src) }
func (a *Assembler) Vsqrtsd(dst, src1 Reg, src2 Arg) error {
	return a.avxUnary("vsqrtsd", 0x51, ppF2, dst, src1, true, src2)
}
func (a *Assembler) Vsqrtss(dst, src1 Reg, src2 Arg) error {
	return a.avxUnary("vsqrtss", 0x51, ppF3, dst, src1, true, src2)
}
func (a *Assembler) Vcomisd(dst Reg, src Arg) error  { return a.avxUnary("vcomisd", 0x2f, pp66, dst, Reg(0), false, src) }
func (a *Assembler) Vucomisd(dst Reg, src Arg) error { return a.avxUnary("vucomisd", 0x2e, pp66, dst, Reg(0), false, src) }

// avxMove implements the "move" family: two opcodes differing by direction
// (load when dst is a register, store when dst is memory), per spec.md
// §4.3. pd/ps aligned-move and unaligned-move forms never carry a vvvv
// second source; sd/ss forms do when both operands are registers (the
// 3-operand merge-into-high-bits shape), but take none when either side is
// memory.
func (a *Assembler) avxMove(mnemonic string, loadOp, storeOp, pp uint8, args ...Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	var err error
	switch len(args) {
	case 2:
		dst, src := args[0], args[1]
		if d, ok := dst.(Reg); ok {
			err = a.emitVexRM(mnemonic, loadOp, map0F, pp, true, vecL(d), d, Reg(0), false, src)
		} else if m, ok := dst.(Mem); ok {
			s, ok := src.(Reg)
			if !ok {
				err = errBadOperand(mnemonic, args)
			} else {
				err = a.emitVexRM(mnemonic, storeOp, map0F, pp, true, vecL(s), s, Reg(0), false, m)
			}
		} else {
			err = errBadOperand(mnemonic, args)
		}
	case 3:
		dst, src1, src2 := args[0].(Reg), args[1].(Reg), args[2]
		err = a.emitVexRM(mnemonic, loadOp, map0F, pp, true, vecL(dst), dst, src1, true, src2)
	default:
		err = errBadOperand(mnemonic, args)
	}
	if err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		texts := make([]string, len(args))
		for i, arg := range args {
			texts[i] = argText(a.listing, arg)
		}
		a.logInst(mnemonic, texts...)
	}
	return nil
}

// Vmovsd encodes vmovsd: (dst, src) for the load/store forms, or
// (dst, src1, src2) for the register-merge form.
func (a *Assembler) Vmovsd(args ...Arg) error { return a.avxMove("vmovsd", 0x10, 0x11, ppF2, args...) }

// Vmovss encodes vmovss, with the same load/store/merge shapes as Vmovsd.
func (a *Assembler) Vmovss(args ...Arg) error { return a.avxMove("vmovss", 0x10, 0x11, ppF3, args...) }

// Vmovapd encodes an aligned packed-double move.
func (a *Assembler) Vmovapd(dst, src Arg) error { return a.avxMove("vmovapd", 0x28, 0x29, pp66, dst, src) }

// Vmovaps encodes an aligned packed-single move.
func (a *Assembler) Vmovaps(dst, src Arg) error { return a.avxMove("vmovaps", 0x28, 0x29, ppNone, dst, src) }

// Vmovupd encodes an unaligned packed-double move.
func (a *Assembler) Vmovupd(dst, src Arg) error { return a.avxMove("vmovupd", 0x10, 0x11, pp66, dst, src) }

// Vmovups encodes an unaligned packed-single move.
func (a *Assembler) Vmovups(dst, src Arg) error { return a.avxMove("vmovups", 0x10, 0x11, ppNone, dst, src) }

// Vcvttsd2si encodes a truncating scalar-double-to-integer conversion.
// W (destination integer width) is selected by dst's register width.
func (a *Assembler) Vcvttsd2si(dst Reg, src Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	w := dst.Width() == wQword
	if err := a.emitVexRM("vcvttsd2si", 0x2c, map0F, ppF2, w, false, dst, Reg(0), false, src); err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst("vcvttsd2si", argText(a.listing, dst), argText(a.listing, src))
	}
	return nil
}

// Vcvtsi2sd encodes an integer-to-scalar-double conversion. W (source
// integer width) is selected by src's register/memory width.
func (a *Assembler) Vcvtsi2sd(dst, src1 Reg, src2 Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	width, ok := argWidth(src2)
	if !ok {
		return a.fail(errBadOperand("vcvtsi2sd", src2))
	}
	w := width == wQword
	if err := a.emitVexRM("vcvtsi2sd", 0x2a, map0F, ppF2, w, false, dst, src1, true, src2); err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst("vcvtsi2sd", argText(a.listing, dst), argText(a.listing, src1), argText(a.listing, src2))
	}
	return nil
}

// Vroundsd encodes vroundsd: VEX.map=0F3A, a trailing imm8 rounding-mode
// control.
func (a *Assembler) Vroundsd(dst, src1 Reg, src2 Arg, mode uint8) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	if err := a.emitVexRM("vroundsd", 0x0b, map0F3A, pp66, true, false, dst, src1, true, src2); err != nil {
		return a.fail(err)
	}
	a.code.Int8(int8(mode))
	a.flushPending()
	if a.listing != nil {
		a.logInst("vroundsd", argText(a.listing, dst), argText(a.listing, src1), argText(a.listing, src2), hexImm(int64(mode)))
	}
	return nil
}
