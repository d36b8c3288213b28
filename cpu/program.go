package cpu

import (
	"iter"
)

// Record is one placed instruction or .db directive.
type Record struct {
	LineNo int    // Source line number.
	Line   string // Source line text.
	Bank   Bank
	Addr   int
	Size   int
	Code   *Code  // nil for .db
	Data   []byte // Encoded bytes, Size in length.
}

// End returns the address following the record.
func (rec *Record) End() int {
	return rec.Addr + rec.Size
}

// Program is the result of an assembly.
type Program struct {
	Records []Record
	Symbols []Symbol
}

// Used iterates over the banks that hold at least one record, in ascending
// bank order.
func (prog *Program) Used() iter.Seq[Bank] {
	return func(yield func(bank Bank) bool) {
		var used [BANK_COUNT]bool
		for _, rec := range prog.Records {
			used[rec.Bank] = true
		}
		for bank := range Bank(BANK_COUNT) {
			if !used[bank] {
				continue
			}
			if !yield(bank) {
				return
			}
		}
	}
}

// Image returns the full content of a bank, zero filled where no record
// was placed.
func (prog *Program) Image(bank Bank) (image []byte) {
	image = make([]byte, bank.Size())
	for _, rec := range prog.Records {
		if rec.Bank != bank {
			continue
		}
		copy(image[rec.Addr-bank.Base():], rec.Data)
	}
	return
}

// Images iterates over the images of all used banks.
func (prog *Program) Images() iter.Seq2[Bank, []byte] {
	return func(yield func(bank Bank, image []byte) bool) {
		for bank := range prog.Used() {
			if !yield(bank, prog.Image(bank)) {
				return
			}
		}
	}
}

// Debug finds the record covering an address of a bank.
func (prog *Program) Debug(bank Bank, addr int) (rec *Record, ok bool) {
	for n := range prog.Records {
		r := &prog.Records[n]
		if r.Bank == bank && addr >= r.Addr && addr < r.End() {
			rec = r
			ok = true
			return
		}
	}
	return
}
