// Command kdis lists the contents of a KHPR rom as assembly source.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/urfave/cli/v2"

	"github.com/ezrec/khepra/cpu"
	kio "github.com/ezrec/khepra/io"
	"github.com/ezrec/khepra/translate"
)

// ZERO_RUN is the shortest run of zero bytes listed as a .org gap.
const ZERO_RUN = 4

var ErrMissingRom = errors.New(translate.From("missing rom file"))

var (
	BankFlag = &cli.StringFlag{
		Name:  "bank",
		Usage: "List only the named bank",
	}
	LangFlag = &cli.StringFlag{
		Name:  "lang",
		Usage: "Language of diagnostics, e.g. en-US",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "kdis"
	app.Usage = "Khepra rom lister"
	app.ArgsUsage = "ROM"
	app.Flags = []cli.Flag{
		BankFlag,
		LangFlag,
	}
	app.Action = List
	return app
}

func main() {
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

// zeroRun returns the number of zero bytes at the start of data.
func zeroRun(data []byte) (n int) {
	for n < len(data) && data[n] == 0 {
		n++
	}
	return
}

// listBank writes the listing of a single bank image.
func listBank(w io.Writer, bank cpu.Bank, data []byte) {
	fmt.Fprintf(w, ".bank %v\n", bank)

	base := bank.Base()
	for offset := 0; offset < len(data); {
		zeros := zeroRun(data[offset:])
		if offset+zeros == len(data) {
			break
		}
		if zeros >= ZERO_RUN {
			offset += zeros
			fmt.Fprintf(w, ".org $%04x\n", base+offset)
			continue
		}

		code, n, err := cpu.DecodeCode(data[offset:])
		if err != nil {
			glog.V(1).Infof("%v:%04x: %v", bank, base+offset, err)
			fmt.Fprintf(w, "\t.db $%02x\t; $%04x\n", data[offset], base+offset)
			offset++
			continue
		}

		hex := make([]string, n)
		for i, b := range data[offset : offset+n] {
			hex[i] = fmt.Sprintf("%02x", b)
		}
		fmt.Fprintf(w, "\t%v\t; $%04x: %v\n", code, base+offset, strings.Join(hex, " "))
		offset += n
	}
}

// List is the kdis action.
func List(ctx *cli.Context) (err error) {
	if ctx.NArg() != 1 {
		_ = cli.ShowAppHelp(ctx)
		return ErrMissingRom
	}

	if lang := ctx.String(LangFlag.Name); len(lang) != 0 {
		translate.Use(lang)
	}

	only := -1
	if name := ctx.String(BankFlag.Name); len(name) != 0 {
		var bank cpu.Bank
		bank, err = cpu.ParseBank(name)
		if err != nil {
			return
		}
		only = int(bank)
	}

	path := ctx.Args().First()
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	rom, err := kio.ReadRom(inf)
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}

	w := ctx.App.Writer
	version := rom.Header.Version
	fmt.Fprintf(w, "; name: %v\n", rom.Header.Name)
	fmt.Fprintf(w, "; description: %v\n", rom.Header.Description)
	fmt.Fprintf(w, "; version: %d.%d.%d.%d\n", version[0], version[1], version[2], version[3])

	for _, chunk := range rom.Chunks {
		if only >= 0 && int(chunk.Bank) != only {
			continue
		}
		listBank(w, chunk.Bank, chunk.Data)
	}

	return
}
