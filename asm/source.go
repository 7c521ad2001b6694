// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"io"
	"strings"
)

// A SourceUnit is a named body of assembly text, typically the contents
// of one source file. Units may include each other by name.
type SourceUnit struct {
	Name  string
	Lines []string
}

// NewUnit creates a source unit from a block of text.
func NewUnit(name, text string) SourceUnit {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return SourceUnit{Name: name, Lines: strings.Split(text, "\n")}
}

// ReadUnit reads a source unit from r.
func ReadUnit(name string, r io.Reader) (SourceUnit, error) {
	u := SourceUnit{Name: name}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		u.Lines = append(u.Lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return SourceUnit{}, err
	}
	return u, nil
}

// A unit is the working form of a source unit during preprocessing. Its
// lines carry their original positions even after being spliced into
// another unit.
type unit struct {
	name  string
	lines []fstring
}

// Convert the caller's source units into working units, registering each
// unit name in the assembler's file list.
func (a *assembler) loadUnits(units []SourceUnit) {
	a.units = make([]*unit, 0, len(units))
	for _, su := range units {
		fileIndex := len(a.files)
		a.files = append(a.files, su.Name)

		u := &unit{name: su.Name, lines: make([]fstring, len(su.Lines))}
		for i, s := range su.Lines {
			u.lines[i] = newFstring(fileIndex, i+1, s).clean()
		}
		a.units = append(a.units, u)
	}
}

// Return the lines of all remaining units concatenated in unit order.
func (a *assembler) flatten() []fstring {
	var lines []fstring
	for _, u := range a.units {
		lines = append(lines, u.lines...)
	}
	return lines
}
