package thumbasm

import "fmt"

// Adr sets rd to the address of imm, a word-aligned label or literal
// value within [0, 1020] of the current instruction's word-aligned PC.
// Resolved at Link.
func (a *Assembler[N]) Adr(rd LowReg, imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat12(basePC, rd))
	a.obj.addReference(KindAdr, off, imm)
}

// Ldr loads rd from a queued literal pool entry holding imm (the
// "ldr rd, =imm" pseudo-instruction). The literal is deduplicated
// against any structurally equal value already queued, and is placed by
// the next Pool call or, if none, by Link.
func (a *Assembler[N]) Ldr(rd LowReg, imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat6(rd))
	a.obj.addReferenceToLiteral(off, imm)
}

// LdrLabel loads rd from the word stored at a label, via the same
// PC-relative word-load encoding as Ldr, but without going through the
// literal pool: the target must be word-aligned and within [0, 1020] of
// the current instruction's word-aligned PC.
func (a *Assembler[N]) LdrLabel(rd LowReg, target Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat6(rd))
	a.obj.addReference(KindLiteral, off, target)
}

// LdrReg loads rd from the word at [rb + ro].
func (a *Assembler[N]) LdrReg(rd, rb, ro LowReg) {
	a.obj.emit16(encodeFormat7(opLoad, false, ro, rb, rd))
}

// StrReg stores rd to the word at [rb + ro].
func (a *Assembler[N]) StrReg(rd, rb, ro LowReg) {
	a.obj.emit16(encodeFormat7(opStore, false, ro, rb, rd))
}

// LdrbReg loads rd from the byte at [rb + ro], zero-extended.
func (a *Assembler[N]) LdrbReg(rd, rb, ro LowReg) {
	a.obj.emit16(encodeFormat7(opLoad, true, ro, rb, rd))
}

// StrbReg stores the low byte of rd to [rb + ro].
func (a *Assembler[N]) StrbReg(rd, rb, ro LowReg) {
	a.obj.emit16(encodeFormat7(opStore, true, ro, rb, rd))
}

// LdrhReg loads rd from the halfword at [rb + ro], zero-extended.
func (a *Assembler[N]) LdrhReg(rd, rb, ro LowReg) {
	a.obj.emit16(encodeFormat8(seLDRH, ro, rb, rd))
}

// StrhReg stores the low halfword of rd to [rb + ro].
func (a *Assembler[N]) StrhReg(rd, rb, ro LowReg) {
	a.obj.emit16(encodeFormat8(seSTRH, ro, rb, rd))
}

// Ldrsb loads rd from the byte at [rb + ro], sign-extended.
func (a *Assembler[N]) Ldrsb(rd, rb, ro LowReg) {
	a.obj.emit16(encodeFormat8(seLDRSB, ro, rb, rd))
}

// Ldrsh loads rd from the halfword at [rb + ro], sign-extended.
func (a *Assembler[N]) Ldrsh(rd, rb, ro LowReg) {
	a.obj.emit16(encodeFormat8(seLDRSH, ro, rb, rd))
}

// LdrImm loads rd from the word at [rb + offset], offset a multiple of
// 4 in [0, 124]. offset may reference a symbol, resolved at Link.
func (a *Assembler[N]) LdrImm(rd, rb LowReg, offset Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat9(opLoad, false, 0, rb.N(), rd.N()))
	a.obj.addReference(KindAbs7, off, offset)
}

// StrImm stores rd to the word at [rb + offset], offset a multiple of 4
// in [0, 124].
func (a *Assembler[N]) StrImm(rd, rb LowReg, offset Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat9(opStore, false, 0, rb.N(), rd.N()))
	a.obj.addReference(KindAbs7, off, offset)
}

// LdrbImm loads rd from the byte at [rb + offset], offset in [0, 31].
func (a *Assembler[N]) LdrbImm(rd, rb LowReg, offset Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat9(opLoad, true, 0, rb.N(), rd.N()))
	a.obj.addReference(KindAbs5, off, offset)
}

// StrbImm stores the low byte of rd to [rb + offset], offset in [0, 31].
func (a *Assembler[N]) StrbImm(rd, rb LowReg, offset Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat9(opStore, true, 0, rb.N(), rd.N()))
	a.obj.addReference(KindAbs5, off, offset)
}

// LdrhImm loads rd from the halfword at [rb + offset], offset a
// multiple of 2 in [0, 62].
func (a *Assembler[N]) LdrhImm(rd, rb LowReg, offset Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat10(opLoad, 0, rb.N(), rd.N()))
	a.obj.addReference(KindAbs6, off, offset)
}

// StrhImm stores the low halfword of rd to [rb + offset], offset a
// multiple of 2 in [0, 62].
func (a *Assembler[N]) StrhImm(rd, rb LowReg, offset Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat10(opStore, 0, rb.N(), rd.N()))
	a.obj.addReference(KindAbs6, off, offset)
}

// LdrSP loads rd from the word at [sp + offset], offset a multiple of 4
// in [0, 1020].
func (a *Assembler[N]) LdrSP(rd LowReg, offset Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat11(opLoad, rd))
	a.obj.addReference(KindAbs10, off, offset)
}

// StrSP stores rd to the word at [sp + offset], offset a multiple of 4
// in [0, 1020].
func (a *Assembler[N]) StrSP(rd LowReg, offset Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat11(opStore, rd))
	a.obj.addReference(KindAbs10, off, offset)
}

// Ldmia loads the registers in list from memory starting at [rb],
// advancing rb past the loaded registers.
func (a *Assembler[N]) Ldmia(rb LowReg, list LowRegList) {
	a.obj.emit16(encodeFormat15(opLoad, rb) | uint16(list.N()))
}

// Stmia stores the registers in list to memory starting at [rb],
// advancing rb past the stored registers. Returns an error if rb's
// writeback register is also present in list at any position other
// than the lowest, which the architecture defines as unpredictable.
func (a *Assembler[N]) Stmia(rb WritebackLowReg, list LowRegList) error {
	if list.Contains(rb.Low()) && !list.IsLowest(rb.Low()) {
		return newError(Unpredictable, fmt.Sprintf("stmia writeback register r%d is in the list but not lowest", rb.N()))
	}
	a.obj.emit16(encodeFormat15(opStore, rb.Low()) | uint16(list.N()))
	return nil
}

// Push saves list (low registers, plus lr if list was built with it) to
// the stack, predecrementing sp.
func (a *Assembler[N]) Push(list PushList) {
	a.obj.emit16(encodeFormat14(false) | uint16(list.N()))
}

// Pop restores list (low registers, plus pc if list was built with it)
// from the stack, postincrementing sp; a function epilogue's usual form
// when list includes pc.
func (a *Assembler[N]) Pop(list PopList) {
	a.obj.emit16(encodeFormat14(true) | uint16(list.N()))
}
