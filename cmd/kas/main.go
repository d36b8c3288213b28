// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command kas assembles Khepra assembly source into a KHPR rom.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"

	"github.com/ezrec/khepra/cpu"
	kio "github.com/ezrec/khepra/io"
	"github.com/ezrec/khepra/translate"
)

var f = translate.From

var (
	ErrMissingInput = errors.New(f("missing input file"))
	ErrDefineSyntax = errors.New(f("define must be NAME or NAME=VALUE"))
)

type ErrDiagnostics int

func (err ErrDiagnostics) Error() string {
	return f("%d errors", int(err))
}

var (
	OutputFlag = &cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output rom file. Default: SOURCE with a .kpr extension",
	}
	HeaderFlag = &cli.PathFlag{
		Name:  "header",
		Usage: "YAML file with the rom name, description and version",
	}
	DefineFlag = &cli.StringSliceFlag{
		Name:    "define",
		Aliases: []string{"D"},
		Usage:   "Predefine a symbol, as NAME or NAME=VALUE",
	}
	VerboseFlag = &cli.IntFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Log verbosity: 1 for passes and banks, 2 for every record",
	}
	SymbolsFlag = &cli.BoolFlag{
		Name:  "symbols",
		Usage: "Dump the symbol table after assembly",
	}
	LangFlag = &cli.StringFlag{
		Name:  "lang",
		Usage: "Language of diagnostics, e.g. en-US",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "kas"
	app.Usage = "Khepra assembler"
	app.ArgsUsage = "SOURCE"
	app.Flags = []cli.Flag{
		OutputFlag,
		HeaderFlag,
		DefineFlag,
		VerboseFlag,
		SymbolsFlag,
		LangFlag,
	}
	app.Action = Assemble
	return app
}

func main() {
	// glog is configured through the standard flag set.
	_ = flag.CommandLine.Parse(nil)
	_ = flag.Set("logtostderr", "true")
	defer glog.Flush()

	err := newApp().RunContext(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", filepath.Base(os.Args[0]), err)
		glog.Flush()
		os.Exit(1)
	}
}

// parseDefine splits a NAME or NAME=VALUE predefine.
func parseDefine(define string) (name string, value int, err error) {
	name, text, has_value := strings.Cut(define, "=")
	if len(name) == 0 {
		err = ErrDefineSyntax
		return
	}

	value = 1
	if has_value {
		value, err = cpu.ParseNumber(text)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrDefineSyntax, err)
		}
	}
	return
}

// loadHeader reads the rom header metadata file.
func loadHeader(path string) (header kio.Header, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	header, err = kio.LoadHeader(inf)
	return
}

// writeRom writes the rom file.
func writeRom(path string, rom *kio.Rom) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}

	_, err = rom.WriteTo(ouf)
	err = errors.Join(err, ouf.Close())
	return
}

// Assemble is the kas action.
func Assemble(ctx *cli.Context) (err error) {
	if ctx.NArg() != 1 {
		_ = cli.ShowAppHelp(ctx)
		return ErrMissingInput
	}

	if lang := ctx.String(LangFlag.Name); len(lang) != 0 {
		translate.Use(lang)
	}
	if ctx.IsSet(VerboseFlag.Name) {
		_ = flag.Set("v", strconv.Itoa(ctx.Int(VerboseFlag.Name)))
	}

	source := ctx.Args().First()
	output := ctx.Path(OutputFlag.Name)
	if len(output) == 0 {
		output = strings.TrimSuffix(source, filepath.Ext(source)) + ".kpr"
	}

	header := kio.DefaultHeader()
	if path := ctx.Path(HeaderFlag.Name); len(path) != 0 {
		header, err = loadHeader(path)
		if err != nil {
			return fmt.Errorf("error loading header: %w", err)
		}
	}

	asm := &cpu.Assembler{}
	for _, define := range ctx.StringSlice(DefineFlag.Name) {
		name, value, err := parseDefine(define)
		if err != nil {
			return fmt.Errorf("%v: %w", define, err)
		}
		asm.Predefine(name, value)
	}

	inf, err := os.Open(source)
	if err != nil {
		return
	}
	defer inf.Close()

	glog.V(1).Infof("assembling %v to %v", source, output)

	prog, asm_err := asm.Parse(inf)
	if prog == nil {
		return fmt.Errorf("%v: %w", source, asm_err)
	}

	if ctx.Bool(SymbolsFlag.Name) {
		printer := pp.New()
		printer.SetColoringEnabled(false)
		_, _ = printer.Fprintln(ctx.App.Writer, prog.Symbols)
	}

	rom := kio.NewRom(header, prog)
	err = writeRom(output, rom)
	if err != nil {
		return fmt.Errorf("unable to write rom: %w", err)
	}

	if asm_err != nil {
		type unwrapper interface {
			Unwrap() []error
		}
		errs := []error{asm_err}
		if errset, ok := asm_err.(unwrapper); ok {
			errs = errset.Unwrap()
		}
		for _, e := range errs {
			fmt.Fprintf(ctx.App.ErrWriter, "%v: %v\n", source, e)
		}
		return ErrDiagnostics(len(errs))
	}

	return
}
