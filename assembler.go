package x64asm

// Options configures an Assembler at construction time.
type Options struct {
	// LogText enables inline text-listing generation alongside encoding, per
	// spec.md §5's assembly-syntax trace of every emitted instruction.
	LogText bool
}

// Assembler encodes x86-64 machine code into an in-memory code buffer, with
// a companion data buffer for the constant pool. Labels and constant-pool
// references may be used before they are defined; Finalize must be called
// once, after every instruction has been emitted, to resolve them.
//
// Grounded on wdamron/x64's Assembler (single mutable encoder over a byte
// buffer, sticky first-error field, label/patch bookkeeping), generalized
// with a constant pool and text listing per spec.md §4.4-§4.6.
type Assembler struct {
	code *buffer
	data *buffer

	labels  []labelEntry
	patches []patch32

	constants    []constEntry
	constPatches []constPatch

	pending *pendingRef

	listing *listing

	err       error
	finalized bool
}

// NewAssembler creates an empty Assembler. Passing an Options value with
// LogText set enables the inline text listing retrievable via Text().
func NewAssembler(opts ...Options) *Assembler {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	a := &Assembler{
		code: newBuffer(256),
		data: newBuffer(64),
	}
	if o.LogText {
		a.listing = newListing(a)
	}
	return a
}

// Err returns the first error encountered while encoding or finalizing,
// or nil if none has occurred.
func (a *Assembler) Err() error { return a.err }

// Code returns the encoded instruction bytes. Valid to call at any time;
// RIP-relative references embedded in it are only correct after Finalize.
func (a *Assembler) Code() []byte { return a.code.Get() }

// Data returns the constant-pool bytes, laid out by Finalize. Empty (and
// meaningless) before Finalize has run.
func (a *Assembler) Data() []byte { return a.data.Get() }

// Text returns the accumulated instruction listing, or the empty string if
// the assembler was constructed without Options.LogText.
func (a *Assembler) Text() string {
	if a.listing == nil {
		return ""
	}
	return a.listing.String()
}

// fail records err as the sticky error if none has been recorded yet, and
// returns the (possibly earlier) sticky error.
func (a *Assembler) fail(err error) error {
	if a.err == nil {
		a.err = err
	}
	return a.err
}

// checkReady returns the sticky error, if one is already set, or an
// emission-after-finalize error once Finalize has succeeded. Every
// instruction-emitting method calls this before writing any bytes, so a
// single bad instruction leaves the buffer's length unchanged for
// everything encoded afterward but does not roll back bytes already
// written for the failing instruction itself.
func (a *Assembler) checkReady() error {
	if a.err != nil {
		return a.err
	}
	if a.finalized {
		return a.fail(errEmitAfterFinalize)
	}
	return nil
}

// logInst appends an instruction's listing line, if a listing is enabled.
func (a *Assembler) logInst(mnemonic string, operands ...string) {
	if a.listing == nil {
		return
	}
	a.listing.line(mnemonic, operands...)
}

// Finalize resolves every outstanding label and constant-pool reference:
// it fails if any label was referenced but never defined, then lays out the
// constant pool (ordered by descending alignment) into Data and patches
// every RIP-relative constant reference. After Finalize returns nil, no
// further instructions may be emitted.
func (a *Assembler) Finalize() error {
	if a.err != nil {
		return a.err
	}
	if a.finalized {
		return a.fail(errFinalizeTwice)
	}
	if err := a.finalizeLabels(); err != nil {
		return a.fail(err)
	}
	a.layoutConstants()
	a.resolveConstPatches()
	a.finalized = true
	return nil
}
