package io

import (
	"errors"

	"github.com/ezrec/khepra/translate"
)

var f = translate.From

var (
	// Header errors
	ErrHeaderName        = errors.New(f("rom name longer than 15 bytes"))
	ErrHeaderDescription = errors.New(f("rom description longer than 31 bytes"))
	ErrHeaderVersion     = errors.New(f("rom version must be four bytes"))

	// Rom errors
	ErrRomMagic     = errors.New(f("not a KHPR rom"))
	ErrRomTruncated = errors.New(f("rom truncated"))
	ErrChunkSize    = errors.New(f("chunk size does not match bank"))
	ErrChunkOrder   = errors.New(f("chunks out of order"))
)

type ErrChunkBank int

func (err ErrChunkBank) Error() string {
	return f("chunk bank %d unknown", int(err))
}
