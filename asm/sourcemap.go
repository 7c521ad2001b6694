// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"encoding/json"
	"io"
	"sort"
)

// A SourceMap describes the mapping between source code line numbers and
// assembly code addresses.
type SourceMap struct {
	Profile string       // processor profile name
	Origin  int          // address of the first code byte
	Size    int          // size of the machine code in bytes
	CRC     uint32       // CRC-32 (IEEE) of the machine code
	Files   []string     // source unit names
	Lines   []SourceLine // address-ordered line mappings
	Exports []Export     // label addresses
}

// A SourceLine represents a mapping between a machine code address and
// the source unit and line number used to generate it.
type SourceLine struct {
	Address   int // Machine code address
	FileIndex int // Source unit index
	Line      int // Source code line number
}

// An Export describes a label and its address.
type Export struct {
	Label   string
	Address int
}

// Search searches the source map for a mapping with the requested address.
func (s *SourceMap) Search(addr int) (filename string, line int) {
	i := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].Address >= addr
	})
	if i < len(s.Lines) && s.Lines[i].Address == addr {
		return s.Files[s.Lines[i].FileIndex], s.Lines[i].Line
	}
	return "", -1
}

// Label returns the name of the exported label at an address.
func (s *SourceMap) Label(addr int) (string, bool) {
	for _, e := range s.Exports {
		if e.Address == addr {
			return e.Label, true
		}
	}
	return "", false
}

// ReadFrom reads the contents of an exported source map file.
func (s *SourceMap) ReadFrom(r io.Reader) (n int64, err error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	err = json.Unmarshal(b, s)
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

// WriteTo writes the contents of the source map to an output stream.
func (s *SourceMap) WriteTo(w io.Writer) (n int64, err error) {
	b, err := json.MarshalIndent(*s, "", "\t")
	if err != nil {
		return 0, err
	}

	nn, err := w.Write(b)
	return int64(nn), err
}
