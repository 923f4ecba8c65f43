package x64asm

import "fmt"

// Sentinel and constructed errors. Plain fmt.Errorf/errors.New throughout,
// grounded on the teacher's style (wdamron/x64 returns fmt.Errorf messages
// rather than custom error types for every encode-time failure).
var (
	errUndefinedLabel    = fmt.Errorf("x64asm: label referenced but never defined at Finalize")
	errEmitAfterFinalize = fmt.Errorf("x64asm: instruction emitted after Finalize")
	errFinalizeTwice     = fmt.Errorf("x64asm: Finalize called more than once")
)

func errDispRange(width uint8) error {
	return fmt.Errorf("x64asm: relative displacement exceeds range for %d-bit field", width*8)
}

func errImmRange(width uint8) error {
	return fmt.Errorf("x64asm: immediate does not fit in %d-bit field", width*8)
}

func errBadOperand(mnemonic string, args ...interface{}) error {
	return fmt.Errorf("x64asm: no encoding of %s for operands %v", mnemonic, args)
}

func errHighByteConflict(mnemonic string) error {
	return fmt.Errorf("x64asm: %s combines a high-byte register with an extended register or 64-bit operand size", mnemonic)
}

func errBadScale(scale uint8) error {
	return fmt.Errorf("x64asm: invalid memory-operand scale %d (must be 1, 2, 4, or 8)", scale)
}

func errRspAsIndex() error {
	return fmt.Errorf("x64asm: rsp cannot be used as a memory-operand index register")
}
