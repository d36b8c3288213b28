package cpu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OperandKind is the syntactic class of an operand.
type OperandKind int

const (
	OPERAND_REGISTER   = OperandKind(iota) // Register name.
	OPERAND_IMMEDIATE                      // Numeric literal.
	OPERAND_SYMBOL                         // Label or predefined name.
	OPERAND_EXPRESSION                     // $(...) expression.
)

// Operand is a single parsed instruction operand or directive value.
type Operand struct {
	Kind     OperandKind
	Indirect bool     // Enclosed in [...]
	Register Register // OPERAND_REGISTER
	Value    int      // OPERAND_IMMEDIATE
	Name     string   // OPERAND_SYMBOL name, or OPERAND_EXPRESSION text
}

var reSymbol = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// ParseNumber parses a numeric literal: '$' prefixed hexadecimal, or
// decimal. Either may carry a leading '-'.
func ParseNumber(word string) (value int, err error) {
	text := word
	negative := strings.HasPrefix(text, "-")
	if negative {
		text = text[1:]
	}

	var v64 uint64
	if hex, ok := strings.CutPrefix(text, "$"); ok {
		v64, err = strconv.ParseUint(hex, 16, 31)
	} else {
		v64, err = strconv.ParseUint(text, 10, 31)
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	if negative {
		value = -value
	}
	return
}

// ParseOperand classifies the text of a single operand.
func ParseOperand(text string) (op Operand, err error) {
	word := strings.TrimSpace(text)
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	if strings.HasPrefix(word, "[") {
		if !strings.HasSuffix(word, "]") {
			err = ErrOperandInvalid(word)
			return
		}
		op.Indirect = true
		word = strings.TrimSpace(word[1 : len(word)-1])
	}

	if reg, ok := ParseRegister(word); ok {
		op.Kind = OPERAND_REGISTER
		op.Register = reg
		return
	}

	if expr, ok := strings.CutPrefix(word, "$("); ok {
		if !strings.HasSuffix(expr, ")") {
			err = ErrParseExpression(expr)
			return
		}
		op.Kind = OPERAND_EXPRESSION
		op.Name = expr[:len(expr)-1]
		return
	}

	if reSymbol.MatchString(word) {
		op.Kind = OPERAND_SYMBOL
		op.Name = word
		return
	}

	value, err := ParseNumber(word)
	if err != nil {
		err = ErrOperandInvalid(strings.TrimSpace(text))
		return
	}
	op.Kind = OPERAND_IMMEDIATE
	op.Value = value
	return
}

// String renders the operand in assembler syntax.
func (op Operand) String() (text string) {
	switch op.Kind {
	case OPERAND_REGISTER:
		text = op.Register.String()
	case OPERAND_IMMEDIATE:
		text = fmt.Sprintf("%d", op.Value)
	case OPERAND_SYMBOL:
		text = op.Name
	case OPERAND_EXPRESSION:
		text = "$(" + op.Name + ")"
	}
	if op.Indirect {
		text = "[" + text + "]"
	}
	return
}

// FitsByte returns true if the value can be carried in a single signed
// data byte.
func FitsByte(value int) bool {
	return value >= -128 && value <= 127
}

// FitsWord returns true if the value can be carried in a data word, either
// signed or unsigned.
func FitsWord(value int) bool {
	return value >= -32768 && value <= 0xffff
}

// ModeOf derives the addressing mode of an instruction from its operands.
// values holds the resolved value of each non-register operand, in the same
// position as the operand, and is ignored for register operands.
func ModeOf(ops []Operand, values []int) (mode Mode, err error) {
	// sized picks the byte or word variant of a mode, and checks the range.
	sized := func(n int, byteMode Mode) (Mode, error) {
		value := values[n]
		if FitsByte(value) {
			return byteMode, nil
		}
		if !FitsWord(value) {
			return byteMode.Widen(), ErrValueRange
		}
		return byteMode.Widen(), nil
	}

	isReg := func(n int) bool { return ops[n].Kind == OPERAND_REGISTER }

	switch len(ops) {
	case 0:
		mode = MODE_R
	case 1:
		op1 := ops[0]
		switch {
		case isReg(0) && !op1.Indirect:
			mode = MODE_R
		case isReg(0) && op1.Indirect:
			mode = MODE_RI
		case !op1.Indirect:
			mode, err = sized(0, MODE_B)
		default:
			mode, err = sized(0, MODE_BI)
		}
	case 2:
		op1, op2 := ops[0], ops[1]
		switch {
		case isReg(0) && !op1.Indirect && isReg(1) && !op2.Indirect:
			mode = MODE_R_R
		case isReg(0) && !op1.Indirect && isReg(1) && op2.Indirect:
			mode = MODE_R_RI
		case isReg(0) && op1.Indirect && isReg(1) && !op2.Indirect:
			mode = MODE_RI_R
		case isReg(0) && !op1.Indirect && !op2.Indirect:
			mode, err = sized(1, MODE_R_B)
		case isReg(0) && !op1.Indirect:
			mode, err = sized(1, MODE_R_BI)
		case !isReg(0) && op1.Indirect && isReg(1) && !op2.Indirect:
			mode, err = sized(0, MODE_BI_R)
		case isReg(0):
			err = ErrOperandInvalid(op2.String())
		default:
			err = ErrOperandInvalid(op1.String())
		}
	default:
		err = ErrOpcodeExtraArgs
	}

	return
}
