// package x64asm provides an in-memory x86-64 machine-code assembler
// suitable for building a JIT compiler backend: one Go method per
// mnemonic, a label/patch system for forward and backward branches, and a
// constant pool for RIP-relative literals (each constant call stages its
// own slot; identical values are not merged).
//
// usage example:
//
// 	package example
//
// 	import (
// 		"fmt"
//
// 		x64 "github.com/jitbackend/x64asm"
// 	)
//
// 	// CompileAbs emits a function equivalent to:
// 	//
// 	//   int64_t abs(int64_t x) {
// 	//       if (x < 0) return -x;
// 	//       return x;
// 	//   }
// 	func CompileAbs() ([]byte, error) {
// 		asm := x64.NewAssembler()
//
// 		nonNegative := asm.NewLabel()
//
// 		asm.Mov(x64.Rax, x64.Rdi)
// 		asm.Cmp(x64.Rax, x64.Imm32(0))
// 		asm.Jcc(x64.GreaterEqual, nonNegative)
// 		asm.Neg(x64.Rax)
// 		asm.SetLabel(nonNegative)
// 		asm.Ret()
//
// 		if err := asm.Finalize(); err != nil {
// 			return nil, fmt.Errorf("assemble abs: %w", err)
// 		}
// 		return asm.Code(), nil
// 	}
//
// The assembled bytes in asm.Code() (plus, if the function references any
// constants, asm.Data() laid out immediately before them, ending where the
// code starts) are ready to be
// copied into an executable mapping and called through a function pointer
// of the matching Go type.
package x64asm
