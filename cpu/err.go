package cpu

import (
	"errors"

	"github.com/ezrec/khepra/translate"
)

var f = translate.From

var (
	// Line errors
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrLabelInvalid       = errors.New(f("label invalid"))

	// Layout errors
	ErrOrgRange       = errors.New(f(".org outside of bank"))
	ErrBankOverflow   = errors.New(f("bank overflow"))
	ErrOverlap        = errors.New(f("overlaps previous output"))
	ErrLayoutUnstable = errors.New(f("layout did not converge"))
	ErrValueRange     = errors.New(f("value out of range"))

	// Instruction decode errors
	ErrCodeTruncated = errors.New(f("code truncated"))
	ErrCodeDecode    = errors.New(f("decode"))
)

type ErrOpcodeUnknown string

func (err ErrOpcodeUnknown) Error() string {
	return f("opcode '%v' unknown", string(err))
}

type ErrDirectiveUnknown string

func (err ErrDirectiveUnknown) Error() string {
	return f("directive '%v' unknown", string(err))
}

type ErrOperandInvalid string

func (err ErrOperandInvalid) Error() string {
	return f("operand '%v' invalid", string(err))
}

type ErrBankUnknown string

func (err ErrBankUnknown) Error() string {
	return f("bank '%v' unknown", string(err))
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
