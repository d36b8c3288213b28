package cpu

import (
	"regexp"
	"strings"
)

// LineKind is the classification of a source line.
type LineKind int

const (
	LINE_EMPTY       = LineKind(iota) // Blank or comment only.
	LINE_LABEL                        // Label declaration only.
	LINE_DIRECTIVE                    // .bank, .db or .org
	LINE_INSTRUCTION                  // Mnemonic and operands.
)

// Directive is an assembler directive.
type Directive int

const (
	DIRECTIVE_BANK = Directive(iota) // .bank NAME
	DIRECTIVE_DB                     // .db V1[,V2,V3,V4]
	DIRECTIVE_ORG                    // .org ADDR
)

// DB_VALUES_MAX is the most values a single .db may carry.
const DB_VALUES_MAX = 4

var directiveMap = map[string]Directive{
	".bank": DIRECTIVE_BANK,
	".db":   DIRECTIVE_DB,
	".org":  DIRECTIVE_ORG,
}

// Line is a classified source line.
type Line struct {
	LineNo int    // Line number, from 1.
	Text   string // Original line text.
	Label  string // Leading label, if any.
	Kind   LineKind

	Directive Directive // LINE_DIRECTIVE
	Bank      Bank      // DIRECTIVE_BANK

	Mnemonic Mnemonic // LINE_INSTRUCTION
	Byte     bool     // LINE_INSTRUCTION with a .b suffix

	Operands []Operand // Instruction operands, or .db/.org values.
}

var reLabel = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):`)

// splitOperands splits on commas that are not nested in brackets or
// parentheses.
func splitOperands(text string) (words []string) {
	depth := 0
	start := 0
	for n, ch := range text {
		switch ch {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				words = append(words, text[start:n])
				start = n + 1
			}
		}
	}
	words = append(words, text[start:])
	return
}

// parseOperands parses a comma separated operand list.
func parseOperands(text string) (ops []Operand, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	for _, word := range splitOperands(text) {
		var op Operand
		op, err = ParseOperand(word)
		if err != nil {
			return
		}
		ops = append(ops, op)
	}

	return
}

// ParseLine classifies a single line of source text.
//
// On error the returned line keeps its label, if one was found, so that
// the label is still declared, but carries no instruction or directive.
func ParseLine(text string, lineno int) (line Line, err error) {
	line.LineNo = lineno
	line.Text = text

	defer func() {
		if err != nil {
			line.Operands = nil
			if len(line.Label) != 0 {
				line.Kind = LINE_LABEL
			} else {
				line.Kind = LINE_EMPTY
			}
		}
	}()

	code, _, _ := strings.Cut(text, ";")
	code = strings.TrimSpace(code)

	if match := reLabel.FindStringSubmatch(code); match != nil {
		line.Label = match[1]
		code = strings.TrimSpace(code[len(match[0]):])
	}

	if len(code) == 0 {
		if len(line.Label) != 0 {
			line.Kind = LINE_LABEL
		}
		return
	}

	word, rest := code, ""
	if n := strings.IndexAny(code, " \t"); n >= 0 {
		word, rest = code[:n], code[n+1:]
	}

	if strings.HasSuffix(word, ":") {
		err = ErrLabelInvalid
		return
	}

	if strings.HasPrefix(word, ".") {
		line.Kind = LINE_DIRECTIVE
		err = line.parseDirective(word, rest)
		return
	}

	line.Kind = LINE_INSTRUCTION
	err = line.parseInstruction(word, rest)
	return
}

// parseDirective fills in a directive line.
func (line *Line) parseDirective(word string, rest string) (err error) {
	directive, ok := directiveMap[word]
	if !ok {
		err = ErrDirectiveUnknown(word)
		return
	}
	line.Directive = directive

	if directive == DIRECTIVE_BANK {
		name := strings.TrimSpace(rest)
		if len(name) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		if strings.ContainsAny(name, " \t,") {
			err = ErrOpcodeExtraArgs
			return
		}
		line.Bank, err = ParseBank(name)
		return
	}

	ops, err := parseOperands(rest)
	if err != nil {
		return
	}

	for _, op := range ops {
		if op.Kind == OPERAND_REGISTER || op.Indirect {
			err = ErrOperandInvalid(op.String())
			return
		}
	}

	limit := 1
	if directive == DIRECTIVE_DB {
		limit = DB_VALUES_MAX
	}

	switch {
	case len(ops) == 0:
		err = ErrOpcodeValueMissing
	case len(ops) > limit:
		err = ErrOpcodeExtraArgs
	default:
		line.Operands = ops
	}

	return
}

// parseInstruction fills in an instruction line.
func (line *Line) parseInstruction(word string, rest string) (err error) {
	name, suffix, has_suffix := strings.Cut(word, ".")
	if has_suffix {
		switch suffix {
		case "b":
			line.Byte = true
		case "w":
			line.Byte = false
		default:
			err = ErrOpcodeUnknown(word)
			return
		}
	}

	line.Mnemonic, err = ParseMnemonic(name)
	if err != nil {
		return
	}

	ops, err := parseOperands(rest)
	if err != nil {
		return
	}

	switch {
	case line.Mnemonic.Control() && len(ops) > 0:
		err = ErrOpcodeExtraArgs
	case !line.Mnemonic.Control() && len(ops) == 0:
		err = ErrOpcodeValueMissing
	case len(ops) > 2:
		err = ErrOpcodeExtraArgs
	default:
		line.Operands = ops
	}

	return
}
