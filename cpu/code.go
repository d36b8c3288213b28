// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"strings"
)

// Code is a single encoded Khepra instruction.
type Code struct {
	Op    Mnemonic
	Byte  bool // .b size suffix; clear for the default word size.
	Mode  Mode
	Reg1  Register
	Reg2  Register
	Value uint16 // Data byte or word, for modes that carry one.
}

// Operands returns the number of operands of the instruction.
func (code Code) Operands() int {
	if code.Op.Control() {
		return 0
	}
	return code.Mode.Operands()
}

// Size returns the number of address bytes the instruction occupies.
func (code Code) Size() int {
	return InstructionSize(code.Op, code.Operands(), code.Mode)
}

// Bytes returns the encoding of the instruction, zero padded to Size().
//
//	byte 0: oooooSmm  opcode, size flag, mode bits 3..2
//	byte 1: mm111222  mode bits 1..0, register 1, register 2
//	data:   low byte, then high byte for word modes
func (code Code) Bytes() (data []byte) {
	size_flag := byte(1)
	if code.Byte {
		size_flag = 0
	}

	mode := byte(code.Mode)

	data = make([]byte, 1, 4)
	data[0] = (byte(code.Op) << 3) | (size_flag << 2) | ((mode >> 2) & 0x3)

	if code.Operands() == 0 {
		return
	}

	b1 := (mode << 6) & 0xff
	if code.Mode.HasReg1() {
		b1 |= byte(code.Reg1&7) << 3
	}
	if code.Mode.HasReg2() {
		b1 |= byte(code.Reg2 & 7)
	}
	data = append(data, b1)

	switch code.Mode.Data() {
	case 1:
		data = append(data, byte(code.Value))
	case 2:
		data = append(data, byte(code.Value), byte(code.Value>>8))
	}

	for len(data) < code.Size() {
		data = append(data, 0)
	}

	return
}

// DecodeCode decodes the instruction at the start of data, returning the
// number of bytes it occupies. Only encodings that Bytes() would produce
// are accepted.
func DecodeCode(data []byte) (code Code, n int, err error) {
	if len(data) < 1 {
		err = ErrCodeTruncated
		return
	}

	b0 := data[0]
	code.Op = Mnemonic(b0 >> 3)
	code.Byte = (b0 & 0x4) == 0

	if code.Op.Control() {
		if (b0 & 0x3) != 0 {
			err = ErrCodeDecode
			return
		}
		n = 1
		return
	}

	if len(data) < 2 {
		err = ErrCodeTruncated
		return
	}

	b1 := data[1]
	code.Mode = Mode(((b0 & 0x3) << 2) | (b1 >> 6))
	if code.Mode >= MODE_COUNT {
		err = ErrCodeDecode
		return
	}

	reg1 := Register((b1 >> 3) & 0x7)
	reg2 := Register(b1 & 0x7)
	if code.Mode.HasReg1() {
		code.Reg1 = reg1
	} else if reg1 != 0 {
		err = ErrCodeDecode
		return
	}
	if code.Mode.HasReg2() {
		code.Reg2 = reg2
	} else if reg2 != 0 {
		err = ErrCodeDecode
		return
	}

	n = code.Size()
	if len(data) < n {
		err = ErrCodeTruncated
		return
	}

	switch code.Mode.Data() {
	case 1:
		code.Value = uint16(data[2])
	case 2:
		code.Value = uint16(data[2]) | (uint16(data[3]) << 8)
	}

	for _, pad := range data[2+code.Mode.Data() : n] {
		if pad != 0 {
			err = ErrCodeDecode
			return
		}
	}

	return
}

// String returns the assembly language representation of the instruction.
func (code Code) String() string {
	var out strings.Builder

	out.WriteString(code.Op.String())
	if code.Byte {
		out.WriteString(".b")
	}

	if code.Operands() == 0 {
		return out.String()
	}

	byteValue := fmt.Sprintf("%d", int8(code.Value))
	wordValue := fmt.Sprintf("$%04x", code.Value)
	reg1 := code.Reg1.String()
	reg2 := code.Reg2.String()

	var ops []string
	switch code.Mode {
	case MODE_R:
		ops = []string{reg1}
	case MODE_RI:
		ops = []string{"[" + reg1 + "]"}
	case MODE_B:
		ops = []string{byteValue}
	case MODE_BI:
		ops = []string{"[" + byteValue + "]"}
	case MODE_W:
		ops = []string{wordValue}
	case MODE_WI:
		ops = []string{"[" + wordValue + "]"}
	case MODE_R_R:
		ops = []string{reg1, reg2}
	case MODE_R_RI:
		ops = []string{reg1, "[" + reg2 + "]"}
	case MODE_RI_R:
		ops = []string{"[" + reg1 + "]", reg2}
	case MODE_R_B:
		ops = []string{reg1, byteValue}
	case MODE_R_BI:
		ops = []string{reg1, "[" + byteValue + "]"}
	case MODE_R_W:
		ops = []string{reg1, wordValue}
	case MODE_R_WI:
		ops = []string{reg1, "[" + wordValue + "]"}
	case MODE_BI_R:
		ops = []string{"[" + byteValue + "]", reg2}
	case MODE_WI_R:
		ops = []string{"[" + wordValue + "]", reg2}
	}

	out.WriteString(" ")
	out.WriteString(strings.Join(ops, ", "))

	return out.String()
}
