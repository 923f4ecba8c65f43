package x64asm

import (
	"fmt"
	"strconv"
	"strings"
)

// listing accumulates the optional textual trace described by spec.md §4.6:
// one line per emitted instruction, hex literals in uppercase with a
// trailing `h` (and a leading `0` when the first digit would otherwise read
// as a letter), memory operands prefixed with their size, and synthetic
// names for labels (`.L1`, `.L2`, ...) and constant-pool references
// (`[.start-OFFSET]`).
type listing struct {
	buf        strings.Builder
	labelNames map[labelID]string
	nextLabel  int
	asm        *Assembler
}

func newListing(asm *Assembler) *listing {
	return &listing{labelNames: make(map[labelID]string), asm: asm}
}

func (l *listing) String() string { return l.buf.String() }

func (l *listing) labelName(id labelID) string {
	if name, ok := l.labelNames[id]; ok {
		return name
	}
	l.nextLabel++
	name := fmt.Sprintf(".L%d", l.nextLabel)
	l.labelNames[id] = name
	return name
}

// line appends one instruction's listing entry, matching the source
// project's layout: a leading space, the mnemonic left-justified to a
// fixed column, then its operands comma-joined with no surrounding space.
func (l *listing) line(mnemonic string, operands ...string) {
	l.buf.WriteByte(' ')
	l.buf.WriteString(mnemonic)
	if len(operands) > 0 {
		for i := len(mnemonic); i < 12; i++ {
			l.buf.WriteByte(' ')
		}
		l.buf.WriteString(strings.Join(operands, ","))
	}
	l.buf.WriteByte('\n')
}

func (l *listing) labelDef(id labelID) {
	l.buf.WriteString(l.labelName(id))
	l.buf.WriteString(":\n")
}

// hexImm formats a signed value in spec.md §4.6's hex-literal style.
func hexImm(v int64) string {
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	s := strings.ToUpper(strconv.FormatUint(u, 16))
	if len(s) > 0 && (s[0] < '0' || s[0] > '9') {
		s = "0" + s
	}
	s += "h"
	if neg {
		s = "-" + s
	}
	return s
}

func sizeName(width uint8) string {
	switch width {
	case wByte:
		return "byte"
	case wWord:
		return "word"
	case wDword:
		return "dword"
	case wQword:
		return "qword"
	case wXmmword:
		return "xmmword"
	case wYmmword:
		return "ymmword"
	default:
		return fmt.Sprintf("size%d", width)
	}
}

func regText(r Reg) string { return r.String() }

func immText(imm Imm) string { return hexImm(imm.Value) }

// memText renders a memory operand in the syntax spec.md §4.6 describes.
// RIP-relative operands referencing a label or constant-pool slot render as
// `[.L1]` or `[.start-N]` respectively, per the spec's exemplar; other RIP
// operands render as a literal `[rip+disp]`.
func (l *listing) memText(m Mem) string {
	prefix := sizeName(m.Width) + " ptr "

	if m.hasBase && m.Base.isRIP() {
		if m.ref != nil {
			switch m.ref.kind {
			case refLabel:
				return prefix + "[" + l.labelName(m.ref.label) + "]"
			case refConst:
				dataLen, offsets := constLayout(l.asm.constants)
				n := dataLen - offsets[m.ref.slot]
				return prefix + fmt.Sprintf("[.start-%d]", n)
			}
		}
		return prefix + "[rip" + signedSuffix(int64(m.Disp)) + "]"
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte('[')
	wrote := false
	if m.hasBase {
		sb.WriteString(m.Base.String())
		wrote = true
	}
	if m.hasIndex {
		if wrote {
			sb.WriteByte('+')
		}
		sb.WriteString(m.Index.String())
		sb.WriteByte('*')
		sb.WriteString(strconv.Itoa(int(m.Scale)))
		wrote = true
	}
	if m.Disp != 0 || !wrote {
		sb.WriteString(signedSuffix(int64(m.Disp)))
	}
	sb.WriteByte(']')
	return sb.String()
}

// argText renders any instruction operand for the listing.
func argText(l *listing, arg Arg) string {
	switch v := arg.(type) {
	case Reg:
		return regText(v)
	case Mem:
		return l.memText(v)
	case Imm:
		return immText(v)
	default:
		return "?"
	}
}

func signedSuffix(v int64) string {
	if v < 0 {
		return hexImm(v)
	}
	return "+" + hexImm(v)
}
