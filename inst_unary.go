package x64asm

// Opcode-extension values for the F6/F7 unary group, per spec.md §4.3's
// base-unary family (div, idiv, mul, imul-1op, neg, not).
const (
	extNot   uint8 = 2
	extNeg   uint8 = 3
	extMul   uint8 = 4
	extImul1 uint8 = 5
	extDiv   uint8 = 6
	extIdiv  uint8 = 7
)

// Not encodes a one's-complement NOT instruction.
func (a *Assembler) Not(rm Arg) error { return a.unaryOp("not", extNot, rm) }

// Neg encodes a two's-complement negation instruction.
func (a *Assembler) Neg(rm Arg) error { return a.unaryOp("neg", extNeg, rm) }

// Mul encodes an unsigned single-operand multiply (result in AX/EAX:EDX/
// RAX:RDX, per the operand's width).
func (a *Assembler) Mul(rm Arg) error { return a.unaryOp("mul", extMul, rm) }

// Imul1 encodes the single-operand (signed) form of IMUL.
func (a *Assembler) Imul1(rm Arg) error { return a.unaryOp("imul", extImul1, rm) }

// Div encodes an unsigned divide instruction.
func (a *Assembler) Div(rm Arg) error { return a.unaryOp("div", extDiv, rm) }

// Idiv encodes a signed divide instruction.
func (a *Assembler) Idiv(rm Arg) error { return a.unaryOp("idiv", extIdiv, rm) }

// unaryOp encodes the shared F6 (byte) / F7 (word/dword/qword) form, with
// the operation selected by the ModR/M.reg opcode-extension bits.
func (a *Assembler) unaryOp(mnemonic string, ext uint8, rm Arg) error {
	if err := a.checkReady(); err != nil {
		return err
	}
	width, ok := argWidth(rm)
	if !ok {
		return a.fail(errBadOperand(mnemonic, rm))
	}
	op := byte(0xf7)
	if width == wByte {
		op = 0xf6
	}
	if err := a.emitRM(mnemonic, []byte{op}, width == wWord, width == wQword, Reg(0), false, ext, true, rm); err != nil {
		return err
	}
	a.flushPending()
	if a.listing != nil {
		a.logInst(mnemonic, argText(a.listing, rm))
	}
	return nil
}
