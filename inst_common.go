package x64asm

// Arg is the closed set of operand kinds accepted by an instruction method:
// a register, a memory reference, or an immediate. Mirrors the C++
// AssemblyBuilderX64 API's overload set (OperandX64/register/immediate)
// through a small closed interface, since Go has no operand-shape
// overloading of its own.
type Arg interface{ isArg() }

func (Reg) isArg() {}
func (Mem) isArg() {}
func (Imm) isArg() {}

// argWidth returns the operand-size class (in bytes) of a register or
// memory Arg. Immediates have no fixed operand width of their own — the
// destination determines the encoded width — so ok is false for them.
func argWidth(arg Arg) (width uint8, ok bool) {
	switch v := arg.(type) {
	case Reg:
		return v.Width(), true
	case Mem:
		return v.Width, true
	default:
		return 0, false
	}
}

// emitRM writes an optional 0x66 operand-size prefix, a REX prefix (only if
// required), the given opcode bytes, and a ModR/M(+SIB+disp) encoding for a
// (regField, rm) pair — rm is either a register (mod=11, direct) or a
// memory operand (indirect, via emitMemOperand). The reg field of the
// ModR/M byte carries regField's encoding index unless useExt is set, in
// which case it carries the fixed opcode-extension bits used by
// immediate-group and unary-group instructions. Any trailing immediate is
// left for the caller to emit, followed by a call to flushPending.
//
// Grounded on wdamron/x64/emit_inst.go's shared "direct ModRM" / "indirect
// ModRM (+SIB)" dispatch, restated as one helper shared by every
// instruction family in this module instead of the teacher's generic
// argument-matcher.
func (a *Assembler) emitRM(mnemonic string, opBytes []byte, wordSize, w bool, regField Reg, hasReg bool, extField uint8, useExt bool, rm Arg) error {
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

	highByteConflict := (hasReg && regField.isHighByte()) || (rmIsReg && rmReg.isHighByte())
	if highByteConflict {
		extended := w
		if hasReg && regField.Extended() {
			extended = true
		}
		if rmIsReg && rmReg.Extended() {
			extended = true
		}
		if !rmIsReg && (rmMem.hasBase && rmMem.Base.Extended() || rmMem.hasIndex && rmMem.Index.Extended()) {
			extended = true
		}
		if extended {
			return a.fail(errHighByteConflict(mnemonic))
		}
	}
	if !rmIsReg && rmMem.hasIndex && rmMem.Index.Index()&7 == 4 && !rmMem.Index.Extended() {
		return a.fail(errRspAsIndex())
	}
	if !rmIsReg && rmMem.hasIndex && rmMem.Scale != 1 && rmMem.Scale != 2 && rmMem.Scale != 4 && rmMem.Scale != 8 {
		return a.fail(errBadScale(rmMem.Scale))
	}

	if wordSize {
		a.code.Byte(0x66)
	}
	if rmIsReg {
		emitRex(a.code, regField, hasReg, rmReg, true, Reg(0), false, w)
	} else {
		emitRex(a.code, regField, hasReg, rmMem.Base, rmMem.hasBase, rmMem.Index, rmMem.hasIndex, w)
	}
	a.code.Bytes(opBytes)

	var regIdx uint8
	if useExt {
		regIdx = extField
	} else if hasReg {
		regIdx = regField.Index()
	}
	if rmIsReg {
		emitModRM(a.code, modDirect, regIdx, rmReg.Index())
	} else {
		a.emitMemOperand(a.code, regIdx, rmMem)
	}
	return nil
}

// emitImm writes a little-endian immediate of the requested width.
func (a *Assembler) emitImm(width uint8, value int64) {
	switch width {
	case 1:
		a.code.Int8(int8(value))
	case 2:
		a.code.Int16(int16(value))
	case 4:
		a.code.Int32(int32(value))
	case 8:
		a.code.Int64(value)
	}
}

// checkWidthsMatch fails if two register/memory operand widths disagree,
// per spec.md §7's "mismatched operand widths" invalid-shape case.
func checkWidthsMatch(mnemonic string, a, b Arg) error {
	wa, oka := argWidth(a)
	wb, okb := argWidth(b)
	if oka && okb && wa != wb {
		return errBadOperand(mnemonic, a, b)
	}
	return nil
}
