package thumbasm

import "fmt"

// condition is an ARM/Thumb condition code, used by the fourteen
// conditional branch mnemonics (format 16). al and nv are deliberately
// absent: unconditional branching uses the dedicated format 18
// encoding (B), and nv is reserved/undefined from ARMv3 onward.
type condition RegNumber

const (
	condEQ condition = 0x0
	condNE condition = 0x1
	condCS condition = 0x2
	condCC condition = 0x3
	condMI condition = 0x4
	condPL condition = 0x5
	condVS condition = 0x6
	condVC condition = 0x7
	condHI condition = 0x8
	condLS condition = 0x9
	condGE condition = 0xA
	condLT condition = 0xB
	condGT condition = 0xC
	condLE condition = 0xD
)

func (a *Assembler[N]) emitConditionalBranch(cond condition, target Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat16(RegNumber(cond)))
	a.obj.addReference(KindConditionalBranch, off, target)
}

// Beq emits "branch if equal" to target.
func (a *Assembler[N]) Beq(target Immediate[N]) { a.emitConditionalBranch(condEQ, target) }

// Bne emits "branch if not equal" to target.
func (a *Assembler[N]) Bne(target Immediate[N]) { a.emitConditionalBranch(condNE, target) }

// Bcs emits "branch if carry set" to target.
func (a *Assembler[N]) Bcs(target Immediate[N]) { a.emitConditionalBranch(condCS, target) }

// Bcc emits "branch if carry clear" to target.
func (a *Assembler[N]) Bcc(target Immediate[N]) { a.emitConditionalBranch(condCC, target) }

// Bmi emits "branch if negative" to target.
func (a *Assembler[N]) Bmi(target Immediate[N]) { a.emitConditionalBranch(condMI, target) }

// Bpl emits "branch if positive or zero" to target.
func (a *Assembler[N]) Bpl(target Immediate[N]) { a.emitConditionalBranch(condPL, target) }

// Bvs emits "branch if overflow set" to target.
func (a *Assembler[N]) Bvs(target Immediate[N]) { a.emitConditionalBranch(condVS, target) }

// Bvc emits "branch if overflow clear" to target.
func (a *Assembler[N]) Bvc(target Immediate[N]) { a.emitConditionalBranch(condVC, target) }

// Bhi emits "branch if higher (unsigned)" to target.
func (a *Assembler[N]) Bhi(target Immediate[N]) { a.emitConditionalBranch(condHI, target) }

// Bls emits "branch if lower or same (unsigned)" to target.
func (a *Assembler[N]) Bls(target Immediate[N]) { a.emitConditionalBranch(condLS, target) }

// Bge emits "branch if greater or equal (signed)" to target.
func (a *Assembler[N]) Bge(target Immediate[N]) { a.emitConditionalBranch(condGE, target) }

// Blt emits "branch if less than (signed)" to target.
func (a *Assembler[N]) Blt(target Immediate[N]) { a.emitConditionalBranch(condLT, target) }

// Bgt emits "branch if greater than (signed)" to target.
func (a *Assembler[N]) Bgt(target Immediate[N]) { a.emitConditionalBranch(condGT, target) }

// Ble emits "branch if less or equal (signed)" to target.
func (a *Assembler[N]) Ble(target Immediate[N]) { a.emitConditionalBranch(condLE, target) }

// B emits an unconditional branch to target.
func (a *Assembler[N]) B(target Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat18())
	a.obj.addReference(KindUnconditionalBranch, off, target)
}

// Bl emits a branch-with-link to target: a fixed two-halfword sequence
// whose 22-bit offset is split high-11/low-11 across the pair and
// resolved as a single fixup at Link.
func (a *Assembler[N]) Bl(target Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit16(encodeFormat19(false))
	a.obj.emit16(encodeFormat19(true))
	a.obj.addReference(KindBL, off, target)
}

// Bx emits a branch-and-exchange to rs: a plain register branch, used
// both for ordinary returns (Bx(LR)) and Thumb/ARM state switches.
func (a *Assembler[N]) Bx(rs Reg) {
	a.obj.emit16(encodeFormat5(hiBX, rs, R0.Reg))
}

// Swi emits a software interrupt with an 8-bit immediate operand.
func (a *Assembler[N]) Swi(value Imm) error {
	if value < 0 || value > 255 {
		return newError(OutOfRange, fmt.Sprintf("swi value %d outside [0, 255]", value))
	}
	a.obj.emit16(encodeFormat17() | uint16(value))
	return nil
}

// ArmBranch emits a 4-byte ARM-state (not Thumb) unconditional branch to
// target, for use in mixed ARM/Thumb veneers placed ahead of a Thumb
// entry point.
func (a *Assembler[N]) ArmBranch(target Immediate[N]) {
	off := a.obj.currentLC()
	a.obj.emit32(0xEA000000)
	a.obj.addReference(KindArmBranch, off, target)
}

// ArmToThumb emits the two-instruction ARM-state interworking sequence
// that switches execution to Thumb state at the address right after this
// pair: "add r, pc, #1" (bit 0 set selects Thumb state per the
// architecture's interworking rule, since pc here already reads as this
// instruction's address + 8) followed by "bx r".
func (a *Assembler[N]) ArmToThumb(r Reg) {
	n := uint32(r.N())
	a.obj.emit32(0xE28F0000 | n<<12 | 1)
	a.obj.emit32(0xE12FFF10 | n)
}
