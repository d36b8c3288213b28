package cpu

// Mnemonic is an instruction opcode. The value is the 5-bit opcode field.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	OP_NOP = Mnemonic(0)  // nop
	OP_INT = Mnemonic(1)  // int
	OP_RTI = Mnemonic(2)  // rti
	OP_RTS = Mnemonic(3)  // rts
	OP_JP  = Mnemonic(4)  // jp
	OP_CL  = Mnemonic(5)  // cl
	OP_JZ  = Mnemonic(6)  // jz
	OP_CZ  = Mnemonic(7)  // cz
	OP_JC  = Mnemonic(8)  // jc
	OP_CC  = Mnemonic(9)  // cc
	OP_JO  = Mnemonic(10) // jo
	OP_CO  = Mnemonic(11) // co
	OP_JN  = Mnemonic(12) // jn
	OP_CN  = Mnemonic(13) // cn
	OP_NOT = Mnemonic(14) // not
	OP_INC = Mnemonic(15) // inc
	OP_DEC = Mnemonic(16) // dec
	OP_IND = Mnemonic(17) // ind
	OP_DED = Mnemonic(18) // ded
	OP_MV  = Mnemonic(19) // mv
	OP_CMP = Mnemonic(20) // cmp
	OP_TST = Mnemonic(21) // tst
	OP_ADD = Mnemonic(22) // add
	OP_SUB = Mnemonic(23) // sub
	OP_MUL = Mnemonic(24) // mul
	OP_DIV = Mnemonic(25) // div
	OP_LSL = Mnemonic(26) // lsl
	OP_LSR = Mnemonic(27) // lsr
	OP_ASR = Mnemonic(28) // asr
	OP_AND = Mnemonic(29) // and
	OP_OR  = Mnemonic(30) // or
	OP_XOR = Mnemonic(31) // xor
)

const MNEMONIC_COUNT = 32

// Control returns true for the operand-less control instructions, which
// always encode as a single byte.
func (mn Mnemonic) Control() bool {
	switch mn {
	case OP_NOP, OP_INT, OP_RTI, OP_RTS:
		return true
	}
	return false
}

var mnemonicMap = func() map[string]Mnemonic {
	names := make(map[string]Mnemonic, MNEMONIC_COUNT)
	for mn := range Mnemonic(MNEMONIC_COUNT) {
		names[mn.String()] = mn
	}
	return names
}()

// ParseMnemonic looks up a lowercase mnemonic.
func ParseMnemonic(word string) (mn Mnemonic, err error) {
	mn, ok := mnemonicMap[word]
	if !ok {
		err = ErrOpcodeUnknown(word)
	}
	return
}

// Register is a CPU register index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A = Register(0) // a
	REG_B = Register(1) // b
	REG_C = Register(2) // c
	REG_D = Register(3) // d
	REG_E = Register(4) // e
	REG_F = Register(5) // f
	REG_P = Register(6) // p
	REG_S = Register(7) // s
)

const REGISTER_COUNT = 8

var registerMap = func() map[string]Register {
	names := make(map[string]Register, REGISTER_COUNT)
	for reg := range Register(REGISTER_COUNT) {
		names[reg.String()] = reg
	}
	return names
}()

// ParseRegister looks up a register name.
func ParseRegister(word string) (reg Register, ok bool) {
	reg, ok = registerMap[word]
	return
}

// Mode is the 4-bit addressing mode of an instruction.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_R    = Mode(0)  // r
	MODE_RI   = Mode(1)  // [r]
	MODE_B    = Mode(2)  // b
	MODE_BI   = Mode(3)  // [b]
	MODE_W    = Mode(4)  // w
	MODE_WI   = Mode(5)  // [w]
	MODE_R_R  = Mode(6)  // r,r
	MODE_R_RI = Mode(7)  // r,[r]
	MODE_RI_R = Mode(8)  // [r],r
	MODE_R_B  = Mode(9)  // r,b
	MODE_R_BI = Mode(10) // r,[b]
	MODE_R_W  = Mode(11) // r,w
	MODE_R_WI = Mode(12) // r,[w]
	MODE_BI_R = Mode(13) // [b],r
	MODE_WI_R = Mode(14) // [w],r
)

const MODE_COUNT = 15

// Operands returns the number of operands an instruction in this mode carries.
// Mode 0 is shared by register-direct and operand-less instructions; it
// reports one.
func (mode Mode) Operands() int {
	if mode >= MODE_R_R {
		return 2
	}
	return 1
}

// Wide returns true if the mode carries a 16-bit data word.
func (mode Mode) Wide() bool {
	switch mode {
	case MODE_W, MODE_WI, MODE_R_W, MODE_R_WI, MODE_WI_R:
		return true
	}
	return false
}

// Data returns the number of data bytes following the two instruction bytes.
func (mode Mode) Data() int {
	switch mode {
	case MODE_B, MODE_BI, MODE_R_B, MODE_R_BI, MODE_BI_R:
		return 1
	case MODE_W, MODE_WI, MODE_R_W, MODE_R_WI, MODE_WI_R:
		return 2
	}
	return 0
}

// DataFirst returns true if the data bytes belong to the first operand.
func (mode Mode) DataFirst() bool {
	switch mode {
	case MODE_B, MODE_BI, MODE_W, MODE_WI, MODE_BI_R, MODE_WI_R:
		return true
	}
	return false
}

// HasReg1 returns true if the first register field (bits 5..3 of the
// second byte) is used.
func (mode Mode) HasReg1() bool {
	switch mode {
	case MODE_R, MODE_RI, MODE_R_R, MODE_R_RI, MODE_RI_R,
		MODE_R_B, MODE_R_BI, MODE_R_W, MODE_R_WI:
		return true
	}
	return false
}

// HasReg2 returns true if the second register field (bits 2..0 of the
// second byte) is used.
func (mode Mode) HasReg2() bool {
	switch mode {
	case MODE_R_R, MODE_R_RI, MODE_RI_R, MODE_BI_R, MODE_WI_R:
		return true
	}
	return false
}

// Widen returns the word-sized variant of a byte-sized mode.
func (mode Mode) Widen() Mode {
	switch mode {
	case MODE_B:
		return MODE_W
	case MODE_BI:
		return MODE_WI
	case MODE_R_B:
		return MODE_R_W
	case MODE_R_BI:
		return MODE_R_WI
	case MODE_BI_R:
		return MODE_WI_R
	}
	return mode
}

// InstructionSize is the number of address bytes an instruction occupies.
//
// Register-indirect modes (1, 7, 8) encode in two bytes but are laid out as
// four; the trailing two bytes are zero filled and decode as nop.
func InstructionSize(mn Mnemonic, nops int, mode Mode) int {
	if mn.Control() || nops == 0 {
		return 1
	}

	switch mode {
	case MODE_R, MODE_R_R:
		return 2
	case MODE_B, MODE_BI, MODE_R_B, MODE_R_BI, MODE_BI_R:
		return 3
	}

	return 4
}
