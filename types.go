package thumbasm

// Address is a 32-bit byte address: either a location counter offset
// within an in-progress buffer, or (after adding an origin) a runtime
// address.
type Address = uint32

// Imm is a 32-bit signed immediate value.
type Imm = int32

const (
	// MaxAddress is the largest representable Address.
	MaxAddress Address = 0xFFFFFFFF

	// MaxAlignment is the largest alignment shift accepted by Align:
	// more than 31 is pointless, since 1<<32 overflows a 32-bit byte
	// alignment and has no meaningful interpretation here.
	MaxAlignment = 31
)

// clearBit1 forces bit 1 of an address to zero. Used for PC-relative
// addressing modes (adr, literal loads) where the source PC value is
// defined to have bit 1 cleared regardless of actual execution state.
func clearBit1(v Address) Address {
	return v &^ 2
}

// byteAlignment converts an alignment shift (number of low bits that
// must be zero) into the equivalent byte alignment.
func byteAlignment(shift Imm) Address {
	return Address(1) << uint(shift)
}
