package vm

import "errors"

// Construction errors (spec §7 tier 1): surfaced synchronously from the
// parser/constructor. The emulator is never built when one of these fires.
var (
	errBadHeader        = errors.New("missing or malformed TinyRAM header line")
	errUnsupportedArch  = errors.New("unsupported architecture: only Harvard (M=hv) is supported")
	errUnsupportedVer   = errors.New("unsupported spec version: only 2.0 is supported")
	errBadWordSize      = errors.New("word size must be 8, 16, 32 or 64")
	errNoRegisters      = errors.New("register count must be greater than zero")
	errRegisterOOB      = errors.New("register index out of bounds")
	errUndefinedLabel   = errors.New("undefined label")
	errDuplicateLabel   = errors.New("duplicate label")
	errInvalidLine      = errors.New("invalid program line")
	errBadArity         = errors.New("wrong number of operands for opcode")
	errUnknownOpcode    = errors.New("unknown opcode")
	errBadTapeValue     = errors.New("tape file contains a non-numeric or negative line")
)

// segfaultInstruction is the execution fault (spec §7 tier 2) synthesized
// whenever pc runs off the end of the program list or a load reads past the
// end of memory. It never propagates as a Go error; it is folded back into
// the instruction stream as "answer 1".
func segfaultInstruction() Instruction {
	return Instruction{Op: OpAnswer, Arg: Argument{Kind: ArgImmediate, Immediate: 1}}
}
