package thumbasm

// This file holds the bit-composition helpers shared by every mnemonic
// file (branch.go, data_processing.go, memory.go): one function per
// Thumb-1 instruction format, each taking already-validated field values
// and returning the packed halfword. Mirrors the teacher's own split of
// "how to pack an opcode" from "which opcode a mnemonic selects" between
// encoder/constants.go and encoder/*.go.

// shiftOp selects the operation encoded by Thumb format 1 (move shifted
// register). The register-controlled shifts of format 4 use aluOp.
type shiftOp RegNumber

const (
	shiftLSL shiftOp = 0
	shiftLSR shiftOp = 1
	shiftASR shiftOp = 2
	shiftROR shiftOp = 3
)

// aluOp selects one of the sixteen format 4 (ALU operations) opcodes.
type aluOp RegNumber

const (
	aluAND aluOp = 0x0
	aluEOR aluOp = 0x1
	aluLSL aluOp = 0x2
	aluLSR aluOp = 0x3
	aluASR aluOp = 0x4
	aluADC aluOp = 0x5
	aluSBC aluOp = 0x6
	aluROR aluOp = 0x7
	aluTST aluOp = 0x8
	aluNEG aluOp = 0x9
	aluCMP aluOp = 0xA
	aluCMN aluOp = 0xB
	aluORR aluOp = 0xC
	aluMUL aluOp = 0xD
	aluBIC aluOp = 0xE
	aluMVN aluOp = 0xF
)

// hiRegOp selects one of the four format 5 (hi register operations /
// branch exchange) opcodes.
type hiRegOp RegNumber

const (
	hiADD hiRegOp = 0
	hiCMP hiRegOp = 1
	hiMOV hiRegOp = 2
	hiBX  hiRegOp = 3
)

// encodeFormat1 packs "move shifted register": op, a 5-bit immediate
// shift amount, Rs and Rd.
func encodeFormat1(op shiftOp, shift RegNumber, rs, rd LowReg) uint16 {
	return 0x0000 | uint16(op)<<11 | uint16(shift&0x1F)<<6 | uint16(rs.N())<<3 | uint16(rd.N())
}

// encodeFormat2Reg packs "add/subtract" with a register third operand.
func encodeFormat2Reg(sub bool, rn, rs, rd LowReg) uint16 {
	v := uint16(0x1800) | uint16(rn.N())<<6 | uint16(rs.N())<<3 | uint16(rd.N())
	if sub {
		v |= 1 << 9
	}
	return v
}

// encodeFormat2Imm packs "add/subtract" with a 3-bit immediate third
// operand.
func encodeFormat2Imm(sub bool, imm3, rs, rd RegNumber) uint16 {
	v := uint16(0x1C00) | uint16(imm3&0x7)<<6 | uint16(rs)<<3 | uint16(rd)
	if sub {
		v |= 1 << 9
	}
	return v
}

// format3Op selects one of the four format 3 (move/compare/add/subtract
// immediate) opcodes.
type format3Op RegNumber

const (
	f3MOV format3Op = 0
	f3CMP format3Op = 1
	f3ADD format3Op = 2
	f3SUB format3Op = 3
)

func encodeFormat3(op format3Op, rd LowReg, imm8 RegNumber) uint16 {
	return 0x2000 | uint16(op)<<11 | uint16(rd.N())<<8 | uint16(imm8&0xFF)
}

func encodeFormat4(op aluOp, rs, rd LowReg) uint16 {
	return 0x4000 | uint16(op)<<6 | uint16(rs.N())<<3 | uint16(rd.N())
}

func encodeFormat5(op hiRegOp, rs, rd Reg) uint16 {
	return 0x4400 | uint16(op)<<8 | uint16(rs.HighBit())<<6 | uint16(rd.HighBit())<<7 | uint16(rs.LowBits())<<3 | uint16(rd.LowBits())
}

// encodeFormat6 packs "PC-relative load" (the same layout also used by
// the literal-pool pseudo-op, since both place an 8-bit word offset
// against Rd).
func encodeFormat6(rd LowReg) uint16 {
	return 0x4800 | uint16(rd.N())<<8
}

// loadStoreOp selects load versus store for the formats that share one
// bit for it.
type loadStoreOp bool

const (
	opStore loadStoreOp = false
	opLoad  loadStoreOp = true
)

func encodeFormat7(load loadStoreOp, byteWidth bool, ro, rb, rd LowReg) uint16 {
	v := uint16(0x5000) | uint16(ro.N())<<6 | uint16(rb.N())<<3 | uint16(rd.N())
	if load {
		v |= 1 << 11
	}
	if byteWidth {
		v |= 1 << 10
	}
	return v
}

// signExtendedOp selects one of the four format 8 operations: strh,
// ldrh, ldrsb, ldrsh.
type signExtendedOp RegNumber

const (
	seSTRH  signExtendedOp = 0
	seLDRH  signExtendedOp = 1
	seLDRSB signExtendedOp = 2
	seLDRSH signExtendedOp = 3
)

func encodeFormat8(op signExtendedOp, ro, rb, rd LowReg) uint16 {
	v := uint16(0x5200) | uint16(ro.N())<<6 | uint16(rb.N())<<3 | uint16(rd.N())
	if op == seLDRH || op == seLDRSH {
		v |= 1 << 11
	}
	if op == seLDRSB || op == seLDRSH {
		v |= 1 << 10
	}
	return v
}

func encodeFormat9(load loadStoreOp, byteWidth bool, offset5, rb, rd RegNumber) uint16 {
	v := uint16(0x6000) | uint16(offset5&0x1F)<<6 | uint16(rb)<<3 | uint16(rd)
	if load {
		v |= 1 << 11
	}
	if byteWidth {
		v |= 1 << 12
	}
	return v
}

func encodeFormat10(load loadStoreOp, offset5, rb, rd RegNumber) uint16 {
	v := uint16(0x8000) | uint16(offset5&0x1F)<<6 | uint16(rb)<<3 | uint16(rd)
	if load {
		v |= 1 << 11
	}
	return v
}

func encodeFormat11(load loadStoreOp, rd LowReg) uint16 {
	v := uint16(0x9000) | uint16(rd.N())<<8
	if load {
		v |= 1 << 11
	}
	return v
}

// loadAddressBase selects whether format 12 (load address) computes its
// result from PC or from SP.
type loadAddressBase bool

const (
	baseSP loadAddressBase = true
	basePC loadAddressBase = false
)

func encodeFormat12(base loadAddressBase, rd LowReg) uint16 {
	v := uint16(0xA000) | uint16(rd.N())<<8
	if base == baseSP {
		v |= 1 << 11
	}
	return v
}

func encodeFormat13() uint16 {
	return 0xB000
}

// encodeFormat14 packs "push/pop register list". The lr/pc bit (bit 8)
// is not a parameter here: PushList and PopList already fold it into
// their own 9-bit mask, so the caller ORs list.N() straight into the
// result.
func encodeFormat14(pop bool) uint16 {
	v := uint16(0xB400)
	if pop {
		v |= 1 << 11
	}
	return v
}

func encodeFormat15(load loadStoreOp, rb LowReg) uint16 {
	v := uint16(0xC000) | uint16(rb.N())<<8
	if load {
		v |= 1 << 11
	}
	return v
}

func encodeFormat16(cond RegNumber) uint16 {
	return 0xD000 | uint16(cond)<<8
}

func encodeFormat17() uint16 {
	return 0xDF00
}

func encodeFormat18() uint16 {
	return 0xE000
}

func encodeFormat19(second bool) uint16 {
	v := uint16(0xF000)
	if second {
		v |= 1 << 11
	}
	return v
}
