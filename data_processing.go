package thumbasm

// Lsl emits a logical-shift-left of rs by shift, in [0, 31]. shift may
// reference a symbol, resolved and range-checked at Link the same as any
// other deferred operand.
func (a *Assembler[N]) Lsl(rd, rs LowReg, shift Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat1(shiftLSL, 0, rs, rd))
	a.obj.addReference(KindAbs5, off, shift)
}

// LslReg emits a register-controlled logical-shift-left: rd = rd shifted
// left by the amount held in the low byte of rs (format 4 ALU form).
func (a *Assembler[N]) LslReg(rd, rs LowReg) {
	a.obj.emit16(encodeFormat4(aluLSL, rs, rd))
}

// Lsr emits a logical-shift-right by shift, in [0, 32]. A shift of 32 is
// requested by passing 32, encoded the same as Thumb's "shift amount 0
// means 32" convention; a shift of 0 is rewritten as the equivalent
// "lsl #0" (a no-op move), since Thumb has no direct zero-shift lsr/asr
// encoding. For a symbolic shift count this rewrite cannot be done until
// Link resolves the value, so both the literal and symbolic cases are
// always deferred through the same reference fixup.
func (a *Assembler[N]) Lsr(rd, rs LowReg, shift Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat1(shiftLSR, 0, rs, rd))
	a.obj.addReference(KindAbs5AsrLsr, off, shift)
}

// LsrReg emits a register-controlled logical-shift-right.
func (a *Assembler[N]) LsrReg(rd, rs LowReg) {
	a.obj.emit16(encodeFormat4(aluLSR, rs, rd))
}

// Asr emits an arithmetic-shift-right by shift, with the same 0/32
// handling and deferred resolution as Lsr.
func (a *Assembler[N]) Asr(rd, rs LowReg, shift Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat1(shiftASR, 0, rs, rd))
	a.obj.addReference(KindAbs5AsrLsr, off, shift)
}

// AsrReg emits a register-controlled arithmetic-shift-right.
func (a *Assembler[N]) AsrReg(rd, rs LowReg) {
	a.obj.emit16(encodeFormat4(aluASR, rs, rd))
}

// Ror emits a register-controlled rotate-right; Thumb-1 has no
// immediate-shift rotate.
func (a *Assembler[N]) Ror(rd, rs LowReg) {
	a.obj.emit16(encodeFormat4(aluROR, rs, rd))
}

// invertIfNegative returns the magnitude of v and whether it was
// negative, the same to_abs/invert_if_negative pairing the add/sub
// immediate forms use to fold a signed delta into an unsigned field plus
// an opcode bit.
func invertIfNegative(v Imm) (Imm, bool) {
	if v < 0 {
		return -v, true
	}
	return v, false
}

// AddReg emits rd = rs + rn, all low registers.
func (a *Assembler[N]) AddReg(rd, rs, rn LowReg) {
	a.obj.emit16(encodeFormat2Reg(false, rn, rs, rd))
}

// SubReg emits rd = rs - rn, all low registers.
func (a *Assembler[N]) SubReg(rd, rs, rn LowReg) {
	a.obj.emit16(encodeFormat2Reg(true, rn, rs, rd))
}

// AddImm3 emits rd = rs + imm, imm in [-7, 7]. A negative imm emits the
// equivalent sub encoding, matching how the reference assembler folds
// sign into opcode choice for this format. imm may reference a symbol;
// the sign fold is then deferred to Link, once the resolved value's sign
// is actually known.
func (a *Assembler[N]) AddImm3(rd, rs LowReg, imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat2Imm(false, 0, rs.N(), rd.N()))
	a.obj.addFlaggedReference(KindAbs3, off, imm, false)
}

// SubImm3 emits rd = rs - imm, with the same sign-folding as AddImm3.
func (a *Assembler[N]) SubImm3(rd, rs LowReg, imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat2Imm(true, 0, rs.N(), rd.N()))
	a.obj.addFlaggedReference(KindAbs3, off, imm, true)
}

// AddImm8 emits rd = rd + imm, imm in [-255, 255]. imm may reference a
// symbol; see AddImm3.
func (a *Assembler[N]) AddImm8(rd LowReg, imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat3(f3ADD, rd, 0))
	a.obj.addFlaggedReference(KindAbs8AddSub, off, imm, false)
}

// SubImm8 emits rd = rd - imm, imm in [-255, 255]. imm may reference a
// symbol; see AddImm3.
func (a *Assembler[N]) SubImm8(rd LowReg, imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat3(f3SUB, rd, 0))
	a.obj.addFlaggedReference(KindAbs8AddSub, off, imm, true)
}

// AddHiReg emits rd = rd + rs using any register, including r8-r15. If
// both registers happen to be low (r0-r7), the any-register encoding is
// architecturally unpredictable and is rewritten to the equivalent
// low-register add (rd = rd + rs, format 2).
func (a *Assembler[N]) AddHiReg(rd, rs Reg) {
	if areAllLow(rd, rs) {
		low := NewLowReg(rd.N())
		a.AddReg(low, low, NewLowReg(rs.N()))
		return
	}
	a.obj.emit16(encodeFormat5(hiADD, rs, rd))
}

// AddSP adjusts the stack pointer by imm, a multiple of 4 in
// [-508, 508]. A negative imm emits the "sub sp" encoding. imm may
// reference a symbol; see AddImm3.
func (a *Assembler[N]) AddSP(imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat13())
	a.obj.addFlaggedReference(KindAbs9AddSubSP, off, imm, false)
}

// AddRegSP sets rd = sp + imm, a non-negative multiple of 4 up to 1020.
// imm may reference a symbol, resolved at Link.
func (a *Assembler[N]) AddRegSP(rd LowReg, imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat12(baseSP, rd))
	a.obj.addReference(KindAbs10, off, imm)
}

// And emits rd &= rs.
func (a *Assembler[N]) And(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluAND, rs, rd)) }

// Eor emits rd ^= rs.
func (a *Assembler[N]) Eor(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluEOR, rs, rd)) }

// Adc emits rd += rs + carry.
func (a *Assembler[N]) Adc(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluADC, rs, rd)) }

// Sbc emits rd -= rs + (1 - carry).
func (a *Assembler[N]) Sbc(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluSBC, rs, rd)) }

// Tst emits flag-setting rd & rs, discarding the result.
func (a *Assembler[N]) Tst(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluTST, rs, rd)) }

// Neg emits rd = 0 - rs.
func (a *Assembler[N]) Neg(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluNEG, rs, rd)) }

// Cmn emits flag-setting rd + rs, discarding the result.
func (a *Assembler[N]) Cmn(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluCMN, rs, rd)) }

// Orr emits rd |= rs.
func (a *Assembler[N]) Orr(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluORR, rs, rd)) }

// Mul emits rd *= rs.
func (a *Assembler[N]) Mul(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluMUL, rs, rd)) }

// Bic emits rd &^= rs.
func (a *Assembler[N]) Bic(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluBIC, rs, rd)) }

// Mvn emits rd = ^rs.
func (a *Assembler[N]) Mvn(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluMVN, rs, rd)) }

// CmpReg emits flag-setting rd - rs for two low registers, discarding
// the result.
func (a *Assembler[N]) CmpReg(rd, rs LowReg) { a.obj.emit16(encodeFormat4(aluCMP, rs, rd)) }

// CmpHiReg emits flag-setting rd - rs for any register pair where at
// least one of rd, rs is r8-r15. If both happen to be low, the
// any-register encoding is architecturally unpredictable and is
// rewritten to the equivalent low-register cmp (format 4).
func (a *Assembler[N]) CmpHiReg(rd, rs Reg) {
	if areAllLow(rd, rs) {
		a.CmpReg(NewLowReg(rd.N()), NewLowReg(rs.N()))
		return
	}
	a.emitHiRegOp(hiCMP, rd, rs)
}

// CmpImm8 emits flag-setting rd - imm, imm in [0, 255]. imm may
// reference a symbol, resolved at Link.
func (a *Assembler[N]) CmpImm8(rd LowReg, imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat3(f3CMP, rd, 0))
	a.obj.addReference(KindAbs8Unsigned, off, imm)
}

// MovHiReg emits rd = rs for any register pair where at least one of
// rd, rs is r8-r15. If both happen to be low, the any-register encoding
// is architecturally unpredictable and is rewritten to the equivalent
// "add rd, rs, #0" (format 2).
func (a *Assembler[N]) MovHiReg(rd, rs Reg) {
	if areAllLow(rd, rs) {
		a.AddImm3(NewLowReg(rd.N()), NewLowReg(rs.N()), Val[N](0))
		return
	}
	a.emitMovHiReg(rd, rs)
}

func (a *Assembler[N]) emitMovHiReg(rd, rs Reg) {
	a.obj.emit16(encodeFormat5(hiMOV, rs, rd))
}

func (a *Assembler[N]) emitHiRegOp(op hiRegOp, rd, rs Reg) {
	a.obj.emit16(encodeFormat5(op, rs, rd))
}

// MovImm8 sets rd = imm, imm in [0, 255]. imm may reference a symbol,
// resolved at Link.
func (a *Assembler[N]) MovImm8(rd LowReg, imm Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat3(f3MOV, rd, 0))
	a.obj.addReference(KindAbs8Unsigned, off, imm)
}
