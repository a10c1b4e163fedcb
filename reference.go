package thumbasm

// ReferenceKind identifies one of the 18 ways a deferred value can be
// placed into an opcode at link time. Values are used as an index into
// the descriptor table below, so the order here must track the order of
// that table exactly.
type ReferenceKind int

const (
	KindAbs3 ReferenceKind = iota
	KindAbs5
	KindAbs5AsrLsr
	KindAbs6
	KindAbs7
	KindAbs8AddSub
	KindAbs8Byte
	KindAbs8Unsigned
	KindAbs9AddSubSP
	KindAbs10
	KindAbs16
	KindAbs32
	KindAdr
	KindArmBranch
	KindBL
	KindConditionalBranch
	KindUnconditionalBranch
	KindLiteral

	numReferenceKinds
)

// referenceDescriptor holds the fixed numeric parameters of one
// reference kind: legal value range, required alignment, the opcode
// bit field the value is placed into, and the PC-relative behavior (if
// any) needed to resolve it. Grounded on
// _examples/original_source/include/lzasm/arm/arm32/detail/reference.hpp.
type referenceDescriptor struct {
	kind ReferenceKind

	min Imm
	max Imm

	// align is the number of low bits of a resolved value that must be
	// zero; the effective byte alignment is 1<<align.
	align Imm

	// bitWidth and bitPos locate the value's field within the opcode
	// this reference patches.
	bitWidth Imm
	bitPos   Imm

	// bitMask is (1<<bitWidth)-1, precomputed for convenience.
	bitMask Imm

	// pcRelative is true for the six kinds whose resolved value is a
	// signed offset from an instruction-relative source address rather
	// than an absolute value.
	pcRelative bool

	// pcOffset is the prefetch offset added to the fixup address to form
	// the source address for PC-relative kinds: 8 for ARM-state
	// branches, 4 for every other PC-relative kind.
	pcOffset Address

	// clearPCBit1 is true for the two kinds (adr, literal) whose source
	// address must have bit 1 forced to zero before computing the
	// relative offset.
	clearPCBit1 bool
}

func newAbsDescriptor(kind ReferenceKind, min, max, align, width, pos Imm) referenceDescriptor {
	return referenceDescriptor{
		kind: kind, min: min, max: max, align: align,
		bitWidth: width, bitPos: pos, bitMask: (1 << uint(width)) - 1,
	}
}

func newPCRelativeDescriptor(kind ReferenceKind, min, max, align, width, pos Imm, pcOffset Address, clearBit1 bool) referenceDescriptor {
	d := newAbsDescriptor(kind, min, max, align, width, pos)
	d.pcRelative = true
	d.pcOffset = pcOffset
	d.clearPCBit1 = clearBit1
	return d
}

// referenceDescriptors is the fixed, indexable catalog of all 18
// reference kinds. Values match spec.md section 4.1 exactly (and, in
// turn, original_source's reference_type_descriptors::descriptors).
var referenceDescriptors = [numReferenceKinds]referenceDescriptor{
	KindAbs3:                newAbsDescriptor(KindAbs3, -7, 7, 0, 3, 6),
	KindAbs5:                newAbsDescriptor(KindAbs5, 0, 31, 0, 5, 6),
	KindAbs5AsrLsr:          newAbsDescriptor(KindAbs5AsrLsr, 0, 32, 0, 5, 6),
	KindAbs6:                newAbsDescriptor(KindAbs6, 0, 62, 1, 5, 6),
	KindAbs7:                newAbsDescriptor(KindAbs7, 0, 124, 2, 5, 6),
	KindAbs8AddSub:          newAbsDescriptor(KindAbs8AddSub, -255, 255, 0, 8, 0),
	KindAbs8Byte:            newAbsDescriptor(KindAbs8Byte, -128, 255, 0, 8, 0),
	KindAbs8Unsigned:        newAbsDescriptor(KindAbs8Unsigned, 0, 255, 0, 8, 0),
	KindAbs9AddSubSP:        newAbsDescriptor(KindAbs9AddSubSP, -508, 508, 2, 7, 0),
	KindAbs10:               newAbsDescriptor(KindAbs10, 0, 1020, 2, 8, 0),
	KindAbs16:               newAbsDescriptor(KindAbs16, -32768, 65535, 0, 16, 0),
	KindAbs32:               newAbsDescriptor(KindAbs32, -2147483648, 2147483647, 0, 32, 0),
	KindAdr:                 newPCRelativeDescriptor(KindAdr, 0, 1020, 2, 8, 0, 4, true),
	KindArmBranch:           newPCRelativeDescriptor(KindArmBranch, -33554432, 33554428, 2, 24, 0, 8, false),
	KindBL:                  newPCRelativeDescriptor(KindBL, -4194304, 4194302, 1, 22, 0, 4, false),
	KindConditionalBranch:   newPCRelativeDescriptor(KindConditionalBranch, -256, 254, 1, 8, 0, 4, false),
	KindUnconditionalBranch: newPCRelativeDescriptor(KindUnconditionalBranch, -2048, 2046, 1, 11, 0, 4, false),
	KindLiteral:             newPCRelativeDescriptor(KindLiteral, 0, 1020, 2, 8, 0, 4, true),
}

func init() {
	for i, d := range referenceDescriptors {
		if int(d.kind) != i {
			panic("thumbasm: reference descriptor table is out of order")
		}
	}
}

func descriptorFor(kind ReferenceKind) (referenceDescriptor, error) {
	if kind < 0 || kind >= numReferenceKinds {
		return referenceDescriptor{}, newError(Internal, "reference kind outside the known catalog")
	}
	return referenceDescriptors[kind], nil
}

// reference is a pending fixup: a reference kind, the byte offset within
// the buffer where the opcode to patch begins, and the (possibly still
// symbolic) value it resolves to. flag carries the one extra bit the
// add/sub sign-selecting kinds (abs3, abs8_add_sub, abs9_add_sub_sp) need
// alongside the resolved value: whether the caller originally asked for
// sub rather than add, since the actual opcode bit can only be chosen once
// the value's sign is known, and for a symbolic value that is not until
// link time. abs5_asr_lsr references leave flag unset.
type reference[N comparable] struct {
	kind        ReferenceKind
	fixupOffset Address
	value       Immediate[N]
	flag        bool
}

// literalReference is a pending ldr Rd,=value placeholder: the byte
// offset of the placeholder instruction, plus the index into the
// assembler's pending-literal list that it names.
type literalReference struct {
	fixupOffset Address
	literalIdx  int
}

// literal is one pending entry of a literal pool: its value, and (once
// the pool has been emitted) the address it was placed at.
type literal[N comparable] struct {
	value   Immediate[N]
	address Address
}
