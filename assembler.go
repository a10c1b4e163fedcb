package thumbasm

// Assembler emits a Thumb-1 (and minimal ARM-state interworking)
// instruction stream. The zero value is not usable; construct one with
// New. N is the symbol-name type shared with every Symbol/Immediate the
// caller builds: string for readable labels, or a small integer type
// for compact numeric labels. Grounded on the overall shape of
// original_source's divided_thumb_assembler, split across files the way
// the teacher splits its encoder into branch.go/data_processing.go/
// memory.go/other.go.
type Assembler[N comparable] struct {
	obj *object[N]
}

// New creates an empty assembler.
func New[N comparable]() *Assembler[N] {
	return &Assembler[N]{obj: newObject[N]()}
}

// CurrentLC returns the current location counter: the offset of the next
// emitted byte, relative to the eventual Link origin.
func (a *Assembler[N]) CurrentLC() Address {
	return a.obj.currentLC()
}

// Label binds name to the current location counter. Returns an error if
// name was already bound.
func (a *Assembler[N]) Label(name N) error {
	return a.obj.addSymbol(name)
}

// Align pads with zero bytes until the location counter is a multiple of
// 1<<shift. shift must be in [0, 31].
func (a *Assembler[N]) Align(shift Imm) error {
	return a.obj.align(shift)
}

// Pool flushes every literal queued by an ldr-with-immediate call since
// the last Pool (or since the start of assembly) as a run of 4-byte
// words at the current, word-aligned location counter. Link implicitly
// flushes any literals left pending, so a final Pool call is optional.
func (a *Assembler[N]) Pool() error {
	return a.obj.emitLiteralPool()
}

// Link resolves every label and literal reference against origin — the
// address the first emitted byte will run at — and returns the final
// byte image. The assembler must not be used for further emission
// afterward.
func (a *Assembler[N]) Link(origin Address) ([]byte, error) {
	return a.obj.link(origin)
}

// Byte emits each argument as a single byte.
func (a *Assembler[N]) Byte(vs ...byte) {
	for _, v := range vs {
		a.obj.emit8(v)
	}
}

// ByteSym emits a single byte holding imm, which may reference a symbol
// and is resolved at Link, unlike Byte's plain literal values. Patched
// as an 8-bit field, not the generic 16-bit path, since a byte directive
// may sit at the very last byte of the buffer.
func (a *Assembler[N]) ByteSym(imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit8(0)
	a.obj.addReference(KindAbs8Byte, off, imm)
}

// Hword emits each argument as a little-endian 16-bit halfword.
func (a *Assembler[N]) Hword(vs ...uint16) {
	for _, v := range vs {
		a.obj.emit16(v)
	}
}

// Word emits each argument as a little-endian 32-bit word.
func (a *Assembler[N]) Word(vs ...uint32) {
	for _, v := range vs {
		a.obj.emit32(v)
	}
}

// WordSym emits a 4-byte word holding imm, which may reference a symbol
// and is resolved at Link, unlike Word's plain literal values.
func (a *Assembler[N]) WordSym(imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit32(0)
	a.obj.addReference(KindAbs32, off, imm)
}

// HwordSym emits a 2-byte halfword holding imm, which may reference a
// symbol and is resolved at Link, unlike Hword's plain literal values.
func (a *Assembler[N]) HwordSym(imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(0)
	a.obj.addReference(KindAbs16, off, imm)
}

// Incbin appends raw bytes verbatim, unmodified.
func (a *Assembler[N]) Incbin(data []byte) {
	a.obj.buf = append(a.obj.buf, data...)
}

// Asciz emits s followed by a single NUL terminator byte.
func (a *Assembler[N]) Asciz(s string) {
	for i := 0; i < len(s); i++ {
		a.obj.emit8(s[i])
	}
	a.obj.emit8(0)
}

// Nop emits the canonical Thumb no-op, "mov r8, r8".
func (a *Assembler[N]) Nop() {
	a.emitMovHiReg(R8, R8)
}
