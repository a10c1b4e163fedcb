package thumbasm

import "fmt"

// object is the mutable state shared by every emitter method: the growing
// byte buffer, the symbol table, and the three fixup worklists consumed
// by link. Grounded on
// _examples/original_source/include/lzasm/arm/arm32/detail/object.hpp,
// restructured as two phases (emit, then link) instead of the original's
// single templated class, since Go has no equivalent of deferring the
// whole resolution step to a later method call on the same object is
// exactly what link here does explicitly.
type object[N comparable] struct {
	buf []byte

	symbols map[N]Address

	refs        []reference[N]
	literalRefs []literalReference
	literals    []literal[N]

	// literalsFlushed is how many entries of literals already have a
	// final address assigned by an emitLiteralPool call.
	literalsFlushed int
}

func newObject[N comparable]() *object[N] {
	return &object[N]{
		symbols: make(map[N]Address),
	}
}

// currentLC returns the current location counter: the byte offset of the
// next emitted byte, relative to the eventual link origin.
func (o *object[N]) currentLC() Address {
	return Address(len(o.buf))
}

func (o *object[N]) emit8(v byte) {
	o.buf = append(o.buf, v)
}

func (o *object[N]) emit16(v uint16) {
	o.buf = append(o.buf, byte(v), byte(v>>8))
}

func (o *object[N]) emit32(v uint32) {
	o.buf = append(o.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (o *object[N]) peek8(offset Address) byte {
	return o.buf[offset]
}

func (o *object[N]) peek16(offset Address) uint16 {
	return uint16(o.buf[offset]) | uint16(o.buf[offset+1])<<8
}

func (o *object[N]) poke8(offset Address, v byte) {
	o.buf[offset] = v
}

func (o *object[N]) poke16(offset Address, v uint16) {
	o.buf[offset] = byte(v)
	o.buf[offset+1] = byte(v >> 8)
}

func (o *object[N]) poke32(offset Address, v uint32) {
	o.buf[offset] = byte(v)
	o.buf[offset+1] = byte(v >> 8)
	o.buf[offset+2] = byte(v >> 16)
	o.buf[offset+3] = byte(v >> 24)
}

// align pads the buffer with zero bytes until currentLC is a multiple of
// 1<<shift.
func (o *object[N]) align(shift Imm) error {
	if shift < 0 || shift > MaxAlignment {
		return newError(AlignmentOutOfRange, fmt.Sprintf("alignment shift %d outside [0, %d]", shift, MaxAlignment))
	}
	a := byteAlignment(shift)
	for o.currentLC()%a != 0 {
		o.emit8(0)
	}
	return nil
}

// addSymbol binds name to the current location counter. Fails if name
// was already bound by an earlier call.
func (o *object[N]) addSymbol(name N) error {
	if _, exists := o.symbols[name]; exists {
		return newError(SymbolAlreadyDefined, fmt.Sprintf("symbol %v already defined", name))
	}
	o.symbols[name] = o.currentLC()
	return nil
}

// addReference records a pending fixup of the given kind at fixupOffset,
// resolving to value once the object is linked.
func (o *object[N]) addReference(kind ReferenceKind, fixupOffset Address, value Immediate[N]) {
	o.refs = append(o.refs, reference[N]{kind: kind, fixupOffset: fixupOffset, value: value})
}

// addFlaggedReference is addReference plus the requested-opcode bit the
// sign-selecting kinds resolve against (see reference[N].flag).
func (o *object[N]) addFlaggedReference(kind ReferenceKind, fixupOffset Address, value Immediate[N], flag bool) {
	o.refs = append(o.refs, reference[N]{kind: kind, fixupOffset: fixupOffset, value: value, flag: flag})
}

// addReferenceToLiteral records value in the pending literal pool,
// reusing an existing entry with an structurally equal value, and
// records a pending literal fixup at fixupOffset pointing at it.
func (o *object[N]) addReferenceToLiteral(fixupOffset Address, value Immediate[N]) {
	idx := -1
	for i := o.literalsFlushed; i < len(o.literals); i++ {
		if o.literals[i].value.Equal(value) {
			idx = i
			break
		}
	}
	if idx == -1 {
		idx = len(o.literals)
		o.literals = append(o.literals, literal[N]{value: value})
	}
	o.literalRefs = append(o.literalRefs, literalReference{fixupOffset: fixupOffset, literalIdx: idx})
}

// emitLiteralPool flushes every pending literal as a 4-byte word,
// recording each one's final address, and marks them flushed (via
// literalsFlushed) so a second pool()/link() call only emits what has
// accumulated since.
func (o *object[N]) emitLiteralPool() error {
	if o.literalsFlushed == len(o.literals) {
		return nil
	}
	if err := o.align(2); err != nil {
		return err
	}
	for i := o.literalsFlushed; i < len(o.literals); i++ {
		o.literals[i].address = o.currentLC()
		o.emit32(0)
	}
	o.literalsFlushed = len(o.literals)
	return nil
}

// link resolves every pending reference against origin, patches the
// buffer in place, and returns the final byte image. The object must not
// be used for further emission afterward.
func (o *object[N]) link(origin Address) ([]byte, error) {
	if err := o.checkOrigin(origin); err != nil {
		return nil, err
	}

	// Any literals never flushed by an explicit Pool call are emitted
	// now, trailing the program, mirroring the teacher's convention of
	// an implicit final pool at end of assembly.
	if err := o.emitLiteralPool(); err != nil {
		return nil, err
	}
	if err := o.checkOrigin(origin); err != nil {
		return nil, err
	}

	for _, l := range o.literals {
		resolved, err := o.resolveValue(origin, l.value)
		if err != nil {
			return nil, err
		}
		o.poke32(l.address, uint32(resolved))
	}

	for _, ref := range o.refs {
		if err := o.fixReference(origin, ref); err != nil {
			return nil, err
		}
	}
	for _, lref := range o.literalRefs {
		if err := o.fixLiteralReference(origin, lref); err != nil {
			return nil, err
		}
	}

	out := make([]byte, len(o.buf))
	copy(out, o.buf)
	return out, nil
}

func (o *object[N]) checkOrigin(origin Address) error {
	end := uint64(origin) + uint64(len(o.buf))
	if end > uint64(MaxAddress) {
		return newError(OriginTooLarge, fmt.Sprintf("origin 0x%x plus length 0x%x overflows the address space", origin, len(o.buf)))
	}
	return nil
}

func (o *object[N]) resolveValue(origin Address, v Immediate[N]) (Imm, error) {
	if !v.IsSymbol() {
		return v.Value(), nil
	}
	addr, ok := o.symbols[v.Sym().Name]
	if !ok {
		return 0, newError(UndefinedSymbol, fmt.Sprintf("symbol %v is never defined", v.Sym().Name))
	}
	return Imm(origin + addr), nil
}

// fixReference resolves one pending reference and patches its opcode
// field in place, dispatching on the reference kind's descriptor the way
// original_source's object::fix_address does. The four sign-selecting
// kinds (abs3, abs8_add_sub, abs9_add_sub_sp, abs5_asr_lsr) need to
// rewrite an opcode bit chosen at emit time, not just drop a magnitude
// into a fixed field, so they dispatch to their own fixers.
func (o *object[N]) fixReference(origin Address, ref reference[N]) error {
	switch ref.kind {
	case KindAbs3:
		return o.fixAddSubImm3(origin, ref)
	case KindAbs8AddSub:
		return o.fixAddSubImm8(origin, ref)
	case KindAbs9AddSubSP:
		return o.fixAddSubSP(origin, ref)
	case KindAbs5AsrLsr:
		return o.fixAsrLsr(origin, ref)
	}

	d, err := descriptorFor(ref.kind)
	if err != nil {
		return err
	}

	resolved, err := o.resolveValue(origin, ref.value)
	if err != nil {
		return err
	}

	var field Imm
	if d.pcRelative {
		sourceAddr := origin + ref.fixupOffset
		if d.clearPCBit1 {
			sourceAddr = clearBit1(sourceAddr)
		}
		offset := resolved - Imm(sourceAddr+d.pcOffset)
		if err := checkImmediateRange(ref.kind, d, offset); err != nil {
			return err
		}
		field = offset >> uint(d.align)
	} else {
		if err := checkImmediateRange(ref.kind, d, resolved); err != nil {
			return err
		}
		field = resolved >> uint(d.align)
	}

	return o.pokeField(ref.kind, d, ref.fixupOffset, field)
}

// fixAddSubImm3 resolves an AddImm3/SubImm3 operand and rewrites the
// format-2 sub bit (bit 9) and 3-bit magnitude (bits 8-6) to match the
// resolved value's actual sign, folding the sign reported by
// invertIfNegative against ref.flag (true if the caller asked for sub).
func (o *object[N]) fixAddSubImm3(origin Address, ref reference[N]) error {
	d, _ := descriptorFor(KindAbs3)
	resolved, err := o.resolveValue(origin, ref.value)
	if err != nil {
		return err
	}
	if err := checkImmediateRange(KindAbs3, d, resolved); err != nil {
		return err
	}
	mag, neg := invertIfNegative(resolved)
	actualSub := ref.flag != neg

	v := o.peek16(ref.fixupOffset)
	v &^= 1 << 9
	v &^= 0x7 << 6
	if actualSub {
		v |= 1 << 9
	}
	v |= uint16(mag&0x7) << 6
	o.poke16(ref.fixupOffset, v)
	return nil
}

// fixAddSubImm8 is fixAddSubImm3's counterpart for AddImm8/SubImm8: the
// format-3 opcode field (bits 12-11) only differs between add and sub in
// bit 11 (ADD=0b10, SUB=0b11), so only that bit needs rewriting.
func (o *object[N]) fixAddSubImm8(origin Address, ref reference[N]) error {
	d, _ := descriptorFor(KindAbs8AddSub)
	resolved, err := o.resolveValue(origin, ref.value)
	if err != nil {
		return err
	}
	if err := checkImmediateRange(KindAbs8AddSub, d, resolved); err != nil {
		return err
	}
	mag, neg := invertIfNegative(resolved)
	actualSub := ref.flag != neg

	v := o.peek16(ref.fixupOffset)
	v &^= 1 << 11
	v &^= 0xFF
	if actualSub {
		v |= 1 << 11
	}
	v |= uint16(mag) & 0xFF
	o.poke16(ref.fixupOffset, v)
	return nil
}

// fixAddSubSP is fixAddSubImm3's counterpart for AddSP: format-13's sign
// bit sits at bit 7, with the word-count magnitude in bits 6-0.
func (o *object[N]) fixAddSubSP(origin Address, ref reference[N]) error {
	d, _ := descriptorFor(KindAbs9AddSubSP)
	resolved, err := o.resolveValue(origin, ref.value)
	if err != nil {
		return err
	}
	if err := checkImmediateRange(KindAbs9AddSubSP, d, resolved); err != nil {
		return err
	}
	mag, neg := invertIfNegative(resolved)
	actualSub := ref.flag != neg

	v := o.peek16(ref.fixupOffset)
	v &^= 1 << 7
	v &^= 0x7F
	if actualSub {
		v |= 1 << 7
	}
	v |= uint16(mag>>2) & 0x7F
	o.poke16(ref.fixupOffset, v)
	return nil
}

// fixAsrLsr resolves an Asr/Lsr shift count. A resolved count of 0 is
// rewritten to the equivalent lsl #0 (clearing both the shift-op field
// and the shift-amount field), since Thumb has no direct zero-shift
// asr/lsr encoding; 32 is encoded as 0, Thumb's "shift amount 0 means 32"
// convention. ref.flag is unused here (asr versus lsr was already fixed
// into the opcode at emit time and only the zero case ever changes it).
func (o *object[N]) fixAsrLsr(origin Address, ref reference[N]) error {
	d, _ := descriptorFor(KindAbs5AsrLsr)
	resolved, err := o.resolveValue(origin, ref.value)
	if err != nil {
		return err
	}
	if err := checkImmediateRange(KindAbs5AsrLsr, d, resolved); err != nil {
		return err
	}

	v := o.peek16(ref.fixupOffset)
	if resolved == 0 {
		v &^= 0x3 << 11
		v &^= 0x1F << 6
		o.poke16(ref.fixupOffset, v)
		return nil
	}
	enc := resolved
	if enc == 32 {
		enc = 0
	}
	v &^= 0x1F << 6
	v |= uint16(enc&0x1F) << 6
	o.poke16(ref.fixupOffset, v)
	return nil
}

func (o *object[N]) fixLiteralReference(origin Address, lref literalReference) error {
	d, _ := descriptorFor(KindLiteral)
	target := o.literals[lref.literalIdx].address

	sourceAddr := clearBit1(origin + lref.fixupOffset)
	offset := Imm(origin+target) - Imm(sourceAddr+d.pcOffset)
	if err := checkImmediateRange(KindLiteral, d, offset); err != nil {
		return err
	}
	field := offset >> uint(d.align)
	return o.pokeField(KindLiteral, d, lref.fixupOffset, field)
}

// checkImmediateRange enforces both the descriptor's [min, max] bound and
// its required alignment.
func checkImmediateRange(kind ReferenceKind, d referenceDescriptor, v Imm) error {
	if v < d.min || v > d.max {
		return newError(OutOfRange, fmt.Sprintf("value %d outside [%d, %d] for reference kind %d", v, d.min, d.max, kind))
	}
	if d.align > 0 {
		mask := Imm(byteAlignment(d.align)) - 1
		if v&mask != 0 {
			return newError(Misaligned, fmt.Sprintf("value %d is not aligned to %d bytes", v, byteAlignment(d.align)))
		}
	}
	return nil
}

// pokeField writes field into the opcode at fixupOffset, at the bit
// position and width the descriptor specifies. bl is the one kind that
// spans two 16-bit halfwords, split 11 high bits / 11 low bits across
// the pair, handled separately from the generic single-field case.
func (o *object[N]) pokeField(kind ReferenceKind, d referenceDescriptor, fixupOffset Address, field Imm) error {
	if kind == KindBL {
		hi := (field >> 11) & 0x7FF
		lo := field & 0x7FF
		first := o.peek16(fixupOffset)
		second := o.peek16(fixupOffset + 2)
		first = (first &^ 0x7FF) | uint16(hi)
		second = (second &^ 0x7FF) | uint16(lo)
		o.poke16(fixupOffset, first)
		o.poke16(fixupOffset+2, second)
		return nil
	}

	if kind == KindArmBranch {
		v := o.peekOpcode32(fixupOffset)
		v = (v &^ uint32(d.bitMask<<d.bitPos)) | (uint32(field&d.bitMask) << uint(d.bitPos))
		o.poke32(fixupOffset, v)
		return nil
	}

	if kind == KindAbs32 {
		o.poke32(fixupOffset, uint32(field))
		return nil
	}
	if kind == KindAbs16 {
		o.poke16(fixupOffset, uint16(field))
		return nil
	}
	if kind == KindAbs8Byte {
		// A single-byte patch, not the generic 16-bit path below: a byte
		// directive may sit at the very last byte of the buffer, where
		// peek16 would read one byte past the end.
		o.poke8(fixupOffset, byte(field))
		return nil
	}

	v := o.peek16(fixupOffset)
	v = (v &^ (uint16(d.bitMask) << uint(d.bitPos))) | (uint16(field&d.bitMask) << uint(d.bitPos))
	o.poke16(fixupOffset, v)
	return nil
}

func (o *object[N]) peekOpcode32(offset Address) uint32 {
	return uint32(o.buf[offset]) | uint32(o.buf[offset+1])<<8 | uint32(o.buf[offset+2])<<16 | uint32(o.buf[offset+3])<<24
}
