package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assemble is a helper that assembles program lines.
func assemble(t *testing.T, program ...string) (prog *Program, err error) {
	asm := &Assembler{}
	prog, err = asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NotNil(t, prog)
	return
}

// recordBytes returns the encoded bytes of every record, in order.
func recordBytes(prog *Program) (data [][]byte) {
	for _, rec := range prog.Records {
		data = append(data, rec.Data)
	}
	return
}

func TestAssemblerEmpty(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t, "", "; nothing here", "   ")
	assert.NoError(err)
	assert.Equal(0, len(prog.Records))
	assert.Equal(0, len(prog.Symbols))

	for range prog.Used() {
		assert.Fail("no banks should be used")
	}
}

func TestAssemblerControl(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t, "nop", "int", "rti", "rts", "nop.b")
	require.NoError(t, err)

	expected := [][]byte{{0x04}, {0x0c}, {0x14}, {0x1c}, {0x00}}
	assert.Equal(expected, recordBytes(prog))

	for n, rec := range prog.Records {
		assert.Equal(1, rec.Size)
		assert.Equal(n, rec.Addr)
		assert.Equal(byte(0), rec.Data[0]&0x3)
	}
}

func TestAssemblerRegisters(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"add a, b",
		"sub c, d",
		"mv e,f",
		"xor p, s",
	}

	prog, err := assemble(t, program...)
	require.NoError(t, err)

	for n, rec := range prog.Records {
		assert.Equal(2, rec.Size, program[n])
		assert.Equal(2*n, rec.Addr, program[n])
		assert.Equal(MODE_R_R, rec.Code.Mode, program[n])
	}

	assert.Equal([]byte{0xb5, 0x81}, prog.Records[0].Data)
	assert.Equal([]byte{0xbd, 0x93}, prog.Records[1].Data)
	assert.Equal([]byte{0x9d, 0xa5}, prog.Records[2].Data)
	assert.Equal([]byte{0xfd, 0xb7}, prog.Records[3].Data)
}

func TestAssemblerImmediate(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t, "mv a, $10", "mv b, 300")
	require.NoError(t, err)
	require.Equal(t, 2, len(prog.Records))

	first := prog.Records[0]
	assert.Equal(MODE_R_B, first.Code.Mode)
	assert.Equal(3, first.Size)
	assert.Equal([]byte{0x9e, 0x40, 0x10}, first.Data)

	second := prog.Records[1]
	assert.Equal(MODE_R_W, second.Code.Mode)
	assert.Equal(4, second.Size)
	assert.Equal(3, second.Addr)
	assert.Equal([]byte{0x9e, 0xc8, 0x2c, 0x01}, second.Data)
}

func TestAssemblerBoundary(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text string
		mode Mode
		data []byte
	}{
		{"jp 127", MODE_B, []byte{0x24, 0x80, 0x7f}},
		{"jp 128", MODE_W, []byte{0x25, 0x00, 0x80, 0x00}},
		{"jp -128", MODE_B, []byte{0x24, 0x80, 0x80}},
		{"jp -129", MODE_W, []byte{0x25, 0x00, 0x7f, 0xff}},
		{"jp [127]", MODE_BI, []byte{0x24, 0xc0, 0x7f}},
		{"jp [128]", MODE_WI, []byte{0x25, 0x40, 0x80, 0x00}},
		{"mv a, [127]", MODE_R_BI, []byte{0x9e, 0x80, 0x7f}},
		{"mv a, [128]", MODE_R_WI, []byte{0x9f, 0x00, 0x80, 0x00}},
		{"mv [127], a", MODE_BI_R, []byte{0x9f, 0x40, 0x7f}},
		{"mv [128], a", MODE_WI_R, []byte{0x9f, 0x80, 0x80, 0x00}},
	}

	for _, entry := range table {
		prog, err := assemble(t, entry.text)
		if !assert.NoError(err, entry.text) {
			continue
		}
		if assert.Equal(1, len(prog.Records), entry.text) {
			assert.Equal(entry.mode, prog.Records[0].Code.Mode, entry.text)
			assert.Equal(entry.data, prog.Records[0].Data, entry.text)
		}
	}
}

func TestAssemblerIndirect(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"inc [a]",
		"mv [b], c",
		"mv.b a, [c]",
		"nop",
	)
	require.NoError(t, err)

	expected := [][]byte{
		{0x7c, 0x40, 0x00, 0x00},
		{0x9e, 0x0a, 0x00, 0x00},
		{0x99, 0xc2, 0x00, 0x00},
		{0x04},
	}
	assert.Equal(expected, recordBytes(prog))
	assert.Equal(12, prog.Records[3].Addr)
}

func TestAssemblerForwardReference(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t, "jp skip", " .db 1", "skip: nop")
	require.NoError(t, err)
	require.Equal(t, 3, len(prog.Records))

	nop := prog.Records[2]
	assert.Equal(4, nop.Addr)
	assert.Equal([]byte{0x24, 0x80, byte(nop.Addr)}, prog.Records[0].Data)

	backward, err := assemble(t, "skip: nop", "jp skip")
	require.NoError(t, err)
	assert.Equal([]byte{0x24, 0x80, 0x00}, backward.Records[1].Data)

	assert.Equal([]Symbol{{Name: "skip", Value: 4, Label: true}}, prog.Symbols)
}

func TestAssemblerForwardWiden(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"start: jp far",
		"jz start",
		".org $100",
		"far: rts",
	)
	require.NoError(t, err)
	require.Equal(t, 3, len(prog.Records))

	assert.Equal(MODE_W, prog.Records[0].Code.Mode)
	assert.Equal([]byte{0x25, 0x00, 0x00, 0x01}, prog.Records[0].Data)
	assert.Equal(4, prog.Records[1].Addr)
	assert.Equal([]byte{0x34, 0x80, 0x00}, prog.Records[1].Data)
	assert.Equal(0x100, prog.Records[2].Addr)
}

func TestAssemblerBanks(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"nop",
		".bank ram_fixed",
		"counter: .db 0",
		".bank audio_swap",
		".db 1, 2",
		".bank rom_swap",
		"mv a, [counter]",
	)
	require.NoError(t, err)
	require.Equal(t, 4, len(prog.Records))

	assert.Equal(BANK_ROM_FIXED, prog.Records[0].Bank)
	assert.Equal(BANK_RAM_FIXED, prog.Records[1].Bank)
	assert.Equal(0x8000, prog.Records[1].Addr)
	assert.Equal(BANK_AUDIO_SWAP, prog.Records[2].Bank)
	assert.Equal(0xf000, prog.Records[2].Addr)
	assert.Equal(BANK_ROM_SWAP, prog.Records[3].Bank)
	assert.Equal(0x4000, prog.Records[3].Addr)
	assert.Equal([]byte{0x9f, 0x00, 0x00, 0x80}, prog.Records[3].Data)

	var used []Bank
	for bank := range prog.Used() {
		used = append(used, bank)
	}
	assert.Equal([]Bank{BANK_ROM_FIXED, BANK_ROM_SWAP, BANK_RAM_FIXED, BANK_AUDIO_SWAP}, used)
}

func TestAssemblerData(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".org $20",
		"tbl: .db 10,20,30",
		".db tbl, 256, -1, $1ff",
		"end:",
	)
	require.NoError(t, err)
	require.Equal(t, 2, len(prog.Records))

	assert.Equal(0x20, prog.Records[0].Addr)
	assert.Equal([]byte{0x0a, 0x14, 0x1e}, prog.Records[0].Data)
	assert.Equal(0x23, prog.Records[1].Addr)
	assert.Equal([]byte{0x20, 0x00, 0xff, 0xff}, prog.Records[1].Data)
	assert.Nil(prog.Records[1].Code)

	image := prog.Image(BANK_ROM_FIXED)
	assert.Equal([]byte{0x0a, 0x14, 0x1e}, image[0x20:0x23])
	assert.Equal(make([]byte, 0x20), image[:0x20])

	rec, ok := prog.Debug(BANK_ROM_FIXED, 0x26)
	assert.True(ok)
	assert.Equal(3, rec.LineNo)

	_, ok = prog.Debug(BANK_ROM_FIXED, 0x27)
	assert.False(ok)

	assert.Equal([]Symbol{
		{Name: "tbl", Value: 0x20, Label: true},
		{Name: "end", Value: 0x27, Label: true},
	}, prog.Symbols)
}

func TestAssemblerExpression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", 0x20)

	prog, err := asm.Assemble([]string{
		"mv a, [$(BASE * 2)]",
		"mv b, BASE",
		".db $(len([1, 2, 3])), $(next - 1)",
		"next: .org $(BASE + 0x80)",
		"jp $(next)",
	})
	require.NoError(t, err)
	require.Equal(t, 4, len(prog.Records))

	assert.Equal([]byte{0x9e, 0x80, 0x40}, prog.Records[0].Data)
	assert.Equal([]byte{0x9e, 0x48, 0x20}, prog.Records[1].Data)
	assert.Equal([]byte{0x03, 0x07}, prog.Records[2].Data)
	assert.Equal(0xa0, prog.Records[3].Addr)
	assert.Equal([]byte{0x24, 0x80, 0x08}, prog.Records[3].Data)

	_, err = asm.Assemble([]string{"jp $(1 +)"})
	var expr_err ErrParseExpression
	assert.True(errors.As(err, &expr_err))

	_, err = asm.Assemble([]string{`jp $("text")`})
	assert.ErrorIs(err, ErrParseExpression(`"text"`))
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"nop",
		"foo r0",
		"rts",
	)
	assert.Error(err)

	var opcode_err ErrOpcodeUnknown
	assert.True(errors.As(err, &opcode_err))
	assert.Equal(ErrOpcodeUnknown("foo"), opcode_err)

	var syntax_err *ErrSyntax
	if assert.True(errors.As(err, &syntax_err)) {
		assert.Equal(2, syntax_err.LineNo)
		assert.Equal("foo r0", syntax_err.Line)
	}

	assert.Equal([][]byte{{0x04}, {0x1c}}, recordBytes(prog))
	assert.Equal(1, prog.Records[1].Addr)

	table := []struct {
		program []string
		err     error
	}{
		{[]string{"jp nowhere"}, ErrLabelMissing("nowhere")},
		{[]string{"mv 5, a"}, ErrOperandInvalid("5")},
		{[]string{"jp $10000"}, ErrValueRange},
		{[]string{".dw 5"}, ErrDirectiveUnknown(".dw")},
		{[]string{".bank vram"}, ErrBankUnknown("vram")},
		{[]string{".org $4001"}, ErrOrgRange},
		{[]string{".bank audio_swap", ".org $f7ff", ".db 1, 2"}, ErrBankOverflow},
		{[]string{".db 1, 2", ".org 0", ".db 3"}, ErrOverlap},
		{[]string{".org $(4 - here)", "here: nop"}, ErrLayoutUnstable},
	}

	for _, entry := range table {
		_, err := assemble(t, entry.program...)
		assert.ErrorIs(err, entry.err, strings.Join(entry.program, "; "))
	}
}

func TestAssemblerErrorOrder(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(t,
		"jp nowhere",
		"bogus",
		".db 1",
		".org 0",
		".db 2",
	)

	type unwrapper interface {
		Unwrap() []error
	}
	errset, ok := err.(unwrapper)
	require.True(t, ok)

	var lines []int
	for _, e := range errset.Unwrap() {
		var syntax_err *ErrSyntax
		if assert.True(errors.As(e, &syntax_err)) {
			lines = append(lines, syntax_err.LineNo)
		}
	}
	assert.Equal([]int{1, 2, 5}, lines)
}

func TestAssemblerIdempotent(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"start: mv a, 1",
		"loop: add a, a",
		"cmp a, 200",
		"jn loop",
		"jp [vector]",
		".bank ram_fixed",
		"vector: .db 0, 0",
	}

	asm := &Assembler{}
	first, err := asm.Assemble(program)
	require.NoError(t, err)

	second, err := asm.Assemble(program)
	require.NoError(t, err)

	assert.Equal(first, second)
	for bank, image := range first.Images() {
		assert.Equal(image, second.Image(bank), bank.String())
	}
}
