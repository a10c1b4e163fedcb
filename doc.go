// Package thumbasm is a runtime assembler for the ARM Thumb instruction
// set (ARMv4T baseline, plus the two documented ARM-state helpers used to
// switch into Thumb state).
//
// A caller builds machine code by calling one method per mnemonic on an
// Assembler, defines labels with Label, and calls Link once to resolve
// every pending forward reference against a chosen origin address and
// obtain the finished little-endian byte image. Emission and linking are
// two separate phases: during emission, any value that is not yet known
// (a symbol, or a PC-relative offset) is recorded as a Reference and a
// zero placeholder is written in its place; Link walks those references,
// computes final values, range- and alignment-checks them, and patches
// the opcode bytes in place.
package thumbasm
