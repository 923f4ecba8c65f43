package x64asm

// ConditionCode is the low nibble of a Jcc/Setcc/Cmovcc opcode, encoding one
// of the 16 condition-flag tests defined by the x86-64 status flags. Named
// per spec.md's condition vocabulary rather than the Intel mnemonic suffix;
// Below/Above test CF/ZF (unsigned), Less/Greater test SF/OF/ZF (signed).
//
// Grounded on wdamron/x64/condition_codes.go's ConditionCode type and
// Jcc/Setcc/Cmovcc/Invcc dispatch tables, restated over the full 16-entry
// Intel encoding instead of the teacher's signed/unsigned-only subset.
type ConditionCode uint8

const (
	Overflow     ConditionCode = 0x0
	NotOverflow  ConditionCode = 0x1
	Below        ConditionCode = 0x2
	AboveEqual   ConditionCode = 0x3
	Equal        ConditionCode = 0x4
	NotEqual     ConditionCode = 0x5
	BelowEqual   ConditionCode = 0x6
	Above        ConditionCode = 0x7
	Sign         ConditionCode = 0x8
	NotSign      ConditionCode = 0x9
	ParityEven   ConditionCode = 0xA
	ParityOdd    ConditionCode = 0xB
	Less         ConditionCode = 0xC
	GreaterEqual ConditionCode = 0xD
	LessEqual    ConditionCode = 0xE
	Greater      ConditionCode = 0xF
)

// Invert returns the condition that holds exactly when cc does not, per the
// standard pairing of adjacent even/odd nibble values.
func (cc ConditionCode) Invert() ConditionCode { return cc ^ 1 }

var ccNames = map[ConditionCode]string{
	Overflow: "o", NotOverflow: "no", Below: "b", AboveEqual: "ae",
	Equal: "e", NotEqual: "ne", BelowEqual: "be", Above: "a",
	Sign: "s", NotSign: "ns", ParityEven: "pe", ParityOdd: "po",
	Less: "l", GreaterEqual: "ge", LessEqual: "le", Greater: "g",
}

func (cc ConditionCode) String() string {
	if name, ok := ccNames[cc]; ok {
		return name
	}
	return "?cc?"
}
