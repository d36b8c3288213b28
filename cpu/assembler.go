// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/golang/glog"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// LAYOUT_PASS_LIMIT bounds the number of address assignment passes.
const LAYOUT_PASS_LIMIT = 16

// Assembler is a two pass assembler for the Khepra CPU.
type Assembler struct {
	predefine map[string]int // Predefines
}

// Predefine defines a new constant or redefines an existing one.
func (asm *Assembler) Predefine(name string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Parse assembles an input stream.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var text []string
	for scanner.Scan() {
		text = append(text, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	prog, err = asm.Assemble(text)
	return
}

// Assemble assembles a sequence of source lines.
//
// Malformed lines are skipped and reported; the returned Program always
// holds every record that could be assembled, and err joins one ErrSyntax
// per reported line.
func (asm *Assembler) Assemble(text []string) (prog *Program, err error) {
	ctx := &assembly{}
	for name, value := range asm.predefine {
		ctx.symbols.Predefine(name, value)
	}

	ctx.prescan(text)

	var placed []Record
	var errs []error
	stable := false
	for pass := range LAYOUT_PASS_LIMIT {
		before := ctx.symbols.Labels()
		placed, errs = ctx.place()
		glog.V(1).Infof("address pass %d: %d records", pass+1, len(placed))
		if maps.Equal(before, ctx.symbols.Labels()) {
			stable = true
			break
		}
	}
	ctx.errs = append(ctx.errs, errs...)
	if !stable {
		ctx.errs = append(ctx.errs, ErrLayoutUnstable)
	}

	records := ctx.emit(placed)

	slices.SortStableFunc(ctx.errs, func(a, b error) int {
		return cmp.Compare(lineOf(a), lineOf(b))
	})

	prog = &Program{
		Records: records,
		Symbols: ctx.symbols.Symbols(),
	}
	err = errors.Join(ctx.errs...)

	return
}

// lineOf returns the source line of an error, or 0.
func lineOf(err error) int {
	var syntax_err *ErrSyntax
	if errors.As(err, &syntax_err) {
		return syntax_err.LineNo
	}
	return 0
}

// assembly is the state of a single assembly run.
type assembly struct {
	symbols SymbolTable
	layout  Layout
	lines   []Line
	wide    []bool // Sticky word sizing, per line.
	errs    []error
}

// lineError records a diagnostic against a line.
func lineError(line *Line, err error) error {
	return &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
}

// prescan classifies every line, and declares every label at address 0.
func (ctx *assembly) prescan(text []string) {
	ctx.lines = make([]Line, len(text))
	ctx.wide = make([]bool, len(text))

	seen := map[string]int{}
	for n, str := range text {
		line, err := ParseLine(str, n+1)
		if err != nil {
			ctx.errs = append(ctx.errs, lineError(&line, err))
		}

		if len(line.Label) != 0 {
			prev, ok := seen[line.Label]
			if ok {
				glog.Warningf("line %d: label %v redefined, previously line %d", line.LineNo, line.Label, prev)
			}
			seen[line.Label] = line.LineNo
			ctx.symbols.Declare(line.Label)
		}

		ctx.lines[n] = line
	}
}

// place runs one address assignment pass, defining every label and sizing
// every record.
func (ctx *assembly) place() (records []Record, errs []error) {
	ctx.layout.Reset()

	for n := range ctx.lines {
		line := &ctx.lines[n]

		if len(line.Label) != 0 {
			ctx.symbols.Define(line.Label, ctx.layout.Org)
		}

		var rec *Record
		var err error
		switch line.Kind {
		case LINE_DIRECTIVE:
			rec, err = ctx.placeDirective(line)
		case LINE_INSTRUCTION:
			rec, err = ctx.placeInstruction(n, line)
		}
		if err != nil {
			errs = append(errs, lineError(line, err))
			continue
		}
		if rec != nil {
			records = append(records, *rec)
		}
	}

	return
}

// placeDirective runs a directive.
func (ctx *assembly) placeDirective(line *Line) (rec *Record, err error) {
	switch line.Directive {
	case DIRECTIVE_BANK:
		ctx.layout.Select(line.Bank)
	case DIRECTIVE_ORG:
		var addr int
		addr, err = ctx.value(line.Operands[0])
		if err != nil {
			return
		}
		err = ctx.layout.SetOrg(addr)
	case DIRECTIVE_DB:
		data := make([]byte, len(line.Operands))
		for n, op := range line.Operands {
			var value int
			value, err = ctx.value(op)
			if err != nil {
				return
			}
			data[n] = byte(value)
		}
		var addr int
		addr, err = ctx.layout.Place(len(data))
		if err != nil {
			return
		}
		rec = &Record{
			LineNo: line.LineNo,
			Line:   line.Text,
			Bank:   ctx.layout.Bank,
			Addr:   addr,
			Size:   len(data),
			Data:   data,
		}
	}

	return
}

// placeInstruction sizes an instruction at the location counter.
func (ctx *assembly) placeInstruction(n int, line *Line) (rec *Record, err error) {
	code := &Code{Op: line.Mnemonic, Byte: line.Byte}

	if !line.Mnemonic.Control() {
		ops := line.Operands
		values := make([]int, len(ops))
		for i, op := range ops {
			if op.Kind == OPERAND_REGISTER {
				continue
			}
			values[i], err = ctx.value(op)
			if err != nil {
				return
			}
		}

		code.Mode, err = ModeOf(ops, values)
		if err != nil {
			return
		}
		if ctx.wide[n] {
			code.Mode = code.Mode.Widen()
		} else if code.Mode.Wide() {
			ctx.wide[n] = true
		}

		if code.Mode.HasReg1() {
			code.Reg1 = ops[0].Register
		}
		if code.Mode.HasReg2() {
			code.Reg2 = ops[1].Register
		}
		if code.Mode.Data() > 0 {
			if code.Mode.DataFirst() {
				code.Value = uint16(values[0])
			} else {
				code.Value = uint16(values[1])
			}
		}
	}

	size := code.Size()
	addr, err := ctx.layout.Place(size)
	if err != nil {
		return
	}

	rec = &Record{
		LineNo: line.LineNo,
		Line:   line.Text,
		Bank:   ctx.layout.Bank,
		Addr:   addr,
		Size:   size,
		Code:   code,
	}

	return
}

// emit encodes the placed records, dropping any that overlap output
// already emitted in the same bank.
func (ctx *assembly) emit(placed []Record) (records []Record) {
	var written [BANK_COUNT]int
	for bank := range Bank(BANK_COUNT) {
		written[bank] = bank.Base()
	}

	for _, rec := range placed {
		if rec.Addr < written[rec.Bank] {
			ctx.errs = append(ctx.errs, &ErrSyntax{LineNo: rec.LineNo, Line: rec.Line, Err: ErrOverlap})
			continue
		}

		if rec.Code != nil {
			rec.Data = rec.Code.Bytes()
		}
		written[rec.Bank] = rec.End()

		glog.V(2).Infof("%v:%04x: % x\t%v", rec.Bank, rec.Addr, rec.Data, rec.Line)
		records = append(records, rec)
	}

	return
}

// value resolves a non-register operand.
func (ctx *assembly) value(op Operand) (value int, err error) {
	switch op.Kind {
	case OPERAND_IMMEDIATE:
		value = op.Value
	case OPERAND_SYMBOL:
		var ok bool
		value, ok = ctx.symbols.Resolve(op.Name)
		if !ok {
			value, err = ParseNumber(op.Name)
			if err != nil {
				err = ErrLabelMissing(op.Name)
			}
		}
	case OPERAND_EXPRESSION:
		value, err = ctx.evaluate(op.Name)
	default:
		err = ErrOperandInvalid(op.String())
	}
	return
}

// evaluate does compile-time $(...) evaluations
func (ctx *assembly) evaluate(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, symbol := range ctx.symbols.All() {
		pred[name] = starlark.MakeInt(symbol)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}
