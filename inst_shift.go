package x64asm

// Opcode-extension values for the D0-D3/C0-C1 shift group. SAL and SHL
// share extension 4, per the Intel manual's ModR/M.reg assignment.
const (
	extShl uint8 = 4
	extShr uint8 = 5
	extSar uint8 = 7
)

// Shl encodes a logical left shift. count must be an Imm (1 selects the
// bare D0/D1 form; any other value selects the C0/C1 imm8 form) or the cl
// register (selecting the D2/D3 variable-count form).
func (a *Assembler) Shl(rm, count Arg) error { return a.shiftOp("shl", extShl, rm, count) }

// Sal is an alias for Shl: SAL and SHL encode identically.
func (a *Assembler) Sal(rm, count Arg) error { return a.shiftOp("sal", extShl, rm, count) }

// Shr encodes a logical right shift.
func (a *Assembler) Shr(rm, count Arg) error { return a.shiftOp("shr", extShr, rm, count) }

// Sar encodes an arithmetic (sign-preserving) right shift.
func (a *Assembler) Sar(rm, count Arg) error { return a.shiftOp("sar", extSar, rm, count) }

func (a *Assembler) shiftOp(mnemonic string, ext uint8, rm, count Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	width, ok := argWidth(rm)
	if !ok {
		return a.fail(errBadOperand(mnemonic, rm))
	}
	wordSize := width == wWord
	w := width == wQword

	var err error
	switch c := count.(type) {
	case Imm:
		if c.Value == 1 {
			op := byte(0xd1)
			if width == wByte {
				op = 0xd0
			}
			err = a.emitRM(mnemonic, []byte{op}, wordSize, w, Reg(0), false, ext, true, rm)
		} else {
			if !fitsInt8(c.Value) {
				err = errImmRange(1)
			} else {
				op := byte(0xc1)
				if width == wByte {
					op = 0xc0
				}
				if err = a.emitRM(mnemonic, []byte{op}, wordSize, w, Reg(0), false, ext, true, rm); err == nil {
					a.emitImm(1, c.Value)
				}
			}
		}
	case Reg:
		if c != Cl {
			err = errBadOperand(mnemonic, rm, count)
		} else {
			op := byte(0xd3)
			if width == wByte {
				op = 0xd2
			}
			err = a.emitRM(mnemonic, []byte{op}, wordSize, w, Reg(0), false, ext, true, rm)
		}
	default:
		err = errBadOperand(mnemonic, rm, count)
	}
	if err != nil {
		return a.fail(err)
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst(mnemonic, argText(a.listing, rm), argText(a.listing, count))
	}
	return nil
}
