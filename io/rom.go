// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/golang/glog"

	"github.com/ezrec/khepra/cpu"
)

const (
	// ROM_MAGIC starts every rom file.
	ROM_MAGIC = "KHPR"
	// HEADER_SIZE is the size of the fixed file header.
	HEADER_SIZE = 68
	// CHUNK_HEADER_SIZE is the size of the header preceding each bank image.
	CHUNK_HEADER_SIZE = 4

	// NAME_MAX is the longest name, leaving room for a NUL.
	NAME_MAX = 15
	// DESCRIPTION_MAX is the longest description, leaving room for a NUL.
	DESCRIPTION_MAX = 31
)

// Header holds the descriptive fields of a rom.
type Header struct {
	Version     [4]uint8
	Name        string
	Description string
}

// DefaultHeader returns the header used when none is configured.
func DefaultHeader() Header {
	return Header{
		Version:     [4]uint8{1, 1, 1, 1},
		Name:        "Khepra test ROM",
		Description: "Simple ROM testing ops",
	}
}

// Validate checks that the header fields fit the file format.
func (header Header) Validate() (err error) {
	switch {
	case len(header.Name) > NAME_MAX:
		err = ErrHeaderName
	case len(header.Description) > DESCRIPTION_MAX:
		err = ErrHeaderDescription
	}
	return
}

// Chunk is the full image of a single bank.
type Chunk struct {
	Bank cpu.Bank
	Data []byte
}

// Rom is a cartridge image: a header, and one chunk per used bank in
// ascending bank order.
type Rom struct {
	Header Header
	Chunks []Chunk
}

// NewRom builds a rom from an assembled program.
func NewRom(header Header, prog *cpu.Program) (rom *Rom) {
	rom = &Rom{Header: header}

	for bank, image := range prog.Images() {
		glog.V(1).Infof("bank %v: base $%04x, %d bytes", bank, bank.Base(), len(image))
		rom.Chunks = append(rom.Chunks, Chunk{Bank: bank, Data: image})
	}

	return
}

// Size returns the size of the rom file in bytes.
func (rom *Rom) Size() (size int) {
	size = HEADER_SIZE
	for _, chunk := range rom.Chunks {
		size += CHUNK_HEADER_SIZE + len(chunk.Data)
	}
	return
}

// Chunk returns the image of a bank, if present.
func (rom *Rom) Chunk(bank cpu.Bank) (data []byte, ok bool) {
	for _, chunk := range rom.Chunks {
		if chunk.Bank == bank {
			data = chunk.Data
			ok = true
			return
		}
	}
	return
}

// MarshalBinary encodes the rom file.
func (rom *Rom) MarshalBinary() (data []byte, err error) {
	err = rom.Header.Validate()
	if err != nil {
		return
	}

	size := rom.Size()

	data = make([]byte, HEADER_SIZE, size)
	copy(data[0:4], ROM_MAGIC)
	binary.LittleEndian.PutUint32(data[4:8], uint32(size))
	copy(data[12:16], rom.Header.Version[:])
	copy(data[20:36], rom.Header.Name)
	copy(data[36:68], rom.Header.Description)

	last := -1
	for _, chunk := range rom.Chunks {
		if int(chunk.Bank) <= last {
			err = ErrChunkOrder
			return
		}
		last = int(chunk.Bank)

		if len(chunk.Data) != chunk.Bank.Size() {
			err = ErrChunkSize
			return
		}
		data = append(data, byte(chunk.Bank), 0)
		data = binary.LittleEndian.AppendUint16(data, uint16(len(chunk.Data)))
		data = append(data, chunk.Data...)
	}

	return
}

// WriteTo writes the rom file.
func (rom *Rom) WriteTo(w io.Writer) (n int64, err error) {
	data, err := rom.MarshalBinary()
	if err != nil {
		return
	}

	written, err := w.Write(data)
	n = int64(written)
	return
}

// cString returns the text up to the first NUL.
func cString(data []byte) string {
	text, _, _ := bytes.Cut(data, []byte{0})
	return string(text)
}

// UnmarshalBinary decodes a rom file.
func (rom *Rom) UnmarshalBinary(data []byte) (err error) {
	if len(data) < HEADER_SIZE {
		err = ErrRomTruncated
		return
	}
	if string(data[0:4]) != ROM_MAGIC {
		err = ErrRomMagic
		return
	}

	size := int(binary.LittleEndian.Uint32(data[4:8]))
	if size > len(data) || size < HEADER_SIZE {
		err = ErrRomTruncated
		return
	}
	data = data[:size]

	*rom = Rom{}
	copy(rom.Header.Version[:], data[12:16])
	rom.Header.Name = cString(data[20:36])
	rom.Header.Description = cString(data[36:68])

	last := -1
	for offset := HEADER_SIZE; offset < size; {
		if offset+CHUNK_HEADER_SIZE > size {
			err = ErrRomTruncated
			return
		}
		index := int(data[offset])
		length := int(binary.LittleEndian.Uint16(data[offset+2:]))
		offset += CHUNK_HEADER_SIZE

		if index >= cpu.BANK_COUNT {
			err = ErrChunkBank(index)
			return
		}
		if index <= last {
			err = ErrChunkOrder
			return
		}
		last = index

		bank := cpu.Bank(index)
		if length != bank.Size() {
			err = ErrChunkSize
			return
		}
		if offset+length > size {
			err = ErrRomTruncated
			return
		}

		rom.Chunks = append(rom.Chunks, Chunk{
			Bank: bank,
			Data: bytes.Clone(data[offset : offset+length]),
		})
		offset += length
	}

	return
}

// ReadRom reads a rom file.
func ReadRom(r io.Reader) (rom *Rom, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	rom = &Rom{}
	err = rom.UnmarshalBinary(data)
	if err != nil {
		rom = nil
	}
	return
}
