package x64asm

// labelID is the internal handle type for a label; Label wraps it so the
// public API can't be constructed except through NewLabel.
type labelID int32

// labelState tracks a label's definition lifecycle per spec.md §3: a label
// is undefined (no site), defined (known code offset), or reused (a later
// SetLabel call on an already-defined handle overrides the site, per the
// "single-definition assumption" Open Question in spec.md §9 — treated as
// last-write-wins, grounded on wdamron/x64/assembler.go's SetLabelPC, which
// unconditionally overwrites the label's offset).
type labelState uint8

const (
	labelUndefined labelState = iota
	labelDefined
)

type labelEntry struct {
	state  labelState
	offset uint32
}

// Label is a handle to a (possibly not-yet-defined) code offset. Grounded
// on wdamron/x64/assembler.go's Label/NewLabel/SetLabel trio.
type Label struct {
	id labelID
}

// patch32 is a pending relocation: a 32-bit little-endian slot in the code
// buffer at `slot`, awaiting the final offset of `label`. Grounded on
// spec.md §3's "Patch record" and wdamron/x64/assembler.go's `reloc` struct
// (same {loc, label, addend-implied-by-width} shape).
type patch32 struct {
	slot  uint32 // offset of the 32-bit slot to rewrite
	end   uint32 // address the RIP-relative displacement is measured from
	label labelID
}

// NewLabel allocates a new, undefined label handle.
func (a *Assembler) NewLabel() Label {
	id := labelID(len(a.labels))
	a.labels = append(a.labels, labelEntry{state: labelUndefined})
	return Label{id: id}
}

// SetLabel resolves a label at the current code offset. If no label is
// passed, a new label is allocated and immediately defined; otherwise the
// given handle is (re)defined. Every outstanding patch referencing this
// label is rewritten immediately with `def_offset - end`, where end is the
// address the displacement is measured from (`slot + 4` for jmp/call/jcc),
// satisfying spec.md §3's round-trip invariant without waiting for Finalize.
func (a *Assembler) SetLabel(label ...Label) Label {
	var l Label
	if len(label) == 0 {
		l = a.NewLabel()
	} else {
		l = label[0]
	}
	a.labels[l.id] = labelEntry{state: labelDefined, offset: uint32(a.code.Len())}
	a.resolvePatchesFor(l.id)
	if a.listing != nil {
		a.listing.labelDef(l.id)
	}
	return l
}

// resolvePatchesFor rewrites and drops every pending patch referencing a
// now-defined label, leaving only patches against labels still undefined.
func (a *Assembler) resolvePatchesFor(id labelID) {
	offset := a.labels[id].offset
	kept := a.patches[:0]
	for _, p := range a.patches {
		if p.label == id {
			a.code.patchInt32(int(p.slot), int32(offset)-int32(p.end))
			continue
		}
		kept = append(kept, p)
	}
	a.patches = kept
}

// emitLabelDisp32 emits a disp32 referencing label: the resolved
// displacement if the label is already defined, otherwise a zero
// placeholder plus a patch record for that slot.
func (a *Assembler) emitLabelDisp32(l Label) {
	slot := a.code.Len()
	entry := a.labels[l.id]
	if entry.state == labelDefined {
		a.code.Int32(int32(entry.offset) - int32(slot+4))
		return
	}
	a.code.Int32(0)
	a.patches = append(a.patches, patch32{slot: uint32(slot), end: uint32(slot + 4), label: l.id})
}

// resolveOrDeferLabel rewrites the 4-byte slot immediately if id is already
// defined, otherwise queues a patch to run when SetLabel (or Finalize) later
// resolves it. Used for RIP-relative label references embedded in a Mem
// operand, where the end of the instruction (and thus the RIP base) may be
// past the displacement slot itself (e.g. a trailing immediate byte).
func (a *Assembler) resolveOrDeferLabel(slot, end uint32, id labelID) {
	entry := a.labels[id]
	if entry.state == labelDefined {
		a.code.patchInt32(int(slot), int32(entry.offset)-int32(end))
		return
	}
	a.patches = append(a.patches, patch32{slot: slot, end: end, label: id})
}

// finalizeLabels fails if any patch still references an undefined label,
// per spec.md §7 ("Undefined label at finalize: fail").
func (a *Assembler) finalizeLabels() error {
	if len(a.patches) > 0 {
		return errUndefinedLabel
	}
	return nil
}
