// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/beevik/asm65/isa"
)

// A Chunk is a run of machine code starting at an address.
type Chunk struct {
	Address int
	Code    []byte
}

func (c *Chunk) end() int {
	return c.Address + len(c.Code)
}

// A ListingLine pairs a source line with the code generated for it.
type ListingLine struct {
	Address int       // address assigned to the line
	Code    []byte    // generated machine code, if any
	Kind    LineKind  // line category
	Unit    string    // source unit name
	Row     int       // line number within the unit
	Text    string    // original source text
	Cycles  int       // base cycle count of an instruction
	Flags   isa.Flags // conditional cycle penalties
}

// A Program is the result of an assembly.
type Program struct {
	Profile     isa.Profile   // profile the program was assembled for
	Origin      int           // address of the first byte
	Chunks      []Chunk       // machine code in address order
	Symbols     SymbolTable   // resolved labels
	Diagnostics Diagnostics   // errors and warnings
	Listing     []ListingLine // one entry per assembled source line

	files       []string
	sourceLines []SourceLine
}

// Size returns the number of bytes spanned by the program's code.
func (p *Program) Size() int {
	if len(p.Chunks) == 0 {
		return 0
	}
	return p.Chunks[len(p.Chunks)-1].end() - p.Chunks[0].Address
}

// Code returns the program's machine code as a single image starting at
// the first chunk's address. Gaps between chunks are zero-filled.
func (p *Program) Code() []byte {
	if len(p.Chunks) == 0 {
		return nil
	}
	start := p.Chunks[0].Address
	b := make([]byte, p.Size())
	for _, c := range p.Chunks {
		copy(b[c.Address-start:], c.Code)
	}
	return b
}

// WriteTo saves machine code as binary data into an output writer.
func (p *Program) WriteTo(w io.Writer) (n int64, err error) {
	nn, err := w.Write(p.Code())
	return int64(nn), err
}

// WriteListing writes an assembly listing showing the address, code bytes
// and cycle count of every source line.
func (p *Program) WriteListing(w io.Writer) error {
	bw := bufio.NewWriter(w)
	aw := addressWidth(p.Profile)

	for _, l := range p.Listing {
		addr := hexDigits(l.Address, aw)
		if l.Kind == Blank {
			addr = fmt.Sprintf("%*s", aw*2, "")
		}

		cycles := ""
		if l.Kind == Instruction {
			cycles = fmt.Sprintf("%d", l.Cycles)
			if l.Flags != 0 {
				cycles += "+"
			}
		}

		fmt.Fprintf(bw, "%s  %-11s  %-3s  %s\n", addr, byteString(l.Code), cycles, l.Text)
	}
	return bw.Flush()
}

// SourceMap returns the mapping between the program's addresses and the
// source lines that produced them.
func (p *Program) SourceMap() *SourceMap {
	code := p.Code()

	exports := make([]Export, 0, len(p.Symbols))
	for _, sym := range p.Symbols.Sorted() {
		exports = append(exports, Export{Label: sym.Name, Address: sym.Address})
	}

	return &SourceMap{
		Profile: p.Profile.String(),
		Origin:  p.Origin,
		Size:    len(code),
		CRC:     crc32.ChecksumIEEE(code),
		Files:   p.files,
		Lines:   p.sourceLines,
		Exports: exports,
	}
}
