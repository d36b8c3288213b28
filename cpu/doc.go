// Package cpu implements the instruction set and assembler for the Khepra CPU.
//
// The CPU has eight registers (a-f, p and s), 32 opcodes and fifteen
// addressing modes. Instructions encode in one to four bytes: an opcode
// byte carrying the size flag and the top of the mode, a mode and register
// byte, and an optional byte or word of data.
//
// The assembler classifies each source line, declares every label, assigns
// addresses bank by bank until the label values converge, and then encodes
// each record. Values may be numeric literals ($hex or decimal), labels,
// predefined names, or $(...) expressions evaluated at assembly time.
package cpu
