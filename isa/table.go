// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isa

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Flags describe conditional cycle penalties of an instruction.
type Flags byte

// Cycle penalty flags.
const (
	PageCross   Flags = 1 << iota // +1 cycle when indexing crosses a page
	BranchTaken                   // +1 cycle when the branch is taken
)

// An Entry describes a single (mnemonic, addressing mode) pair of an
// instruction table.
type Entry struct {
	Mnemonic string // upper-case instruction name
	Mode     Mode   // addressing mode
	Opcode   byte   // encoded opcode value
	Cycles   int    // base cycle count
	Flags    Flags  // conditional cycle penalties
}

// Length returns the encoded length of the instruction in bytes.
func (e *Entry) Length() int {
	return 1 + e.Mode.Width()
}

// A Table is the immutable instruction table of a single profile. It is
// safe for concurrent use.
type Table struct {
	profile  Profile
	decode   [256]*Entry
	variants map[string]map[Mode]*Entry
}

var tables struct {
	once sync.Once
	t    [profileCount]*Table
	err  error
}

// Get returns the instruction table for a profile. Tables are built and
// validated once and shared by all callers.
func Get(p Profile) (*Table, error) {
	if p >= profileCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProfile, byte(p))
	}

	tables.once.Do(func() {
		for _, q := range Profiles() {
			t, err := newTable(q, data)
			if err != nil {
				tables.err = err
				return
			}
			tables.t[q] = t
		}
	})

	if tables.err != nil {
		return nil, tables.err
	}
	return tables.t[p], nil
}

// Known returns true if the mnemonic exists in any profile's table.
func Known(mnemonic string) bool {
	for _, p := range Profiles() {
		t, err := Get(p)
		if err == nil && t.Has(mnemonic) {
			return true
		}
	}
	return false
}

// newTable builds the table for profile p from the rows valid on p. It
// fails if any (mnemonic, mode) pair appears more than once.
func newTable(p Profile, rows []opcodeData) (*Table, error) {
	t := &Table{
		profile:  p,
		variants: make(map[string]map[Mode]*Entry),
	}

	for i := range rows {
		r := &rows[i]
		if r.cpus&(1<<p) == 0 {
			continue
		}

		modes := t.variants[r.name]
		if modes == nil {
			modes = make(map[Mode]*Entry)
			t.variants[r.name] = modes
		}
		if prev, ok := modes[r.mode]; ok {
			return nil, fmt.Errorf("%w: %s %s ($%02X and $%02X) in %s table",
				ErrDuplicateEntry, r.name, r.mode, prev.Opcode, r.opcode, p)
		}

		e := &Entry{
			Mnemonic: r.name,
			Mode:     r.mode,
			Opcode:   r.opcode,
			Cycles:   int(r.cycles),
			Flags:    r.flags,
		}
		modes[r.mode] = e

		// The first row for an opcode is its canonical decoding. Wide
		// immediates share their opcode with the 8-bit form.
		if r.mode != IMW && t.decode[r.opcode] == nil {
			t.decode[r.opcode] = e
		}
	}
	return t, nil
}

// Profile returns the profile the table describes.
func (t *Table) Profile() Profile {
	return t.profile
}

// Lookup returns the entry for a mnemonic and addressing mode. The
// mnemonic is matched case-insensitively.
func (t *Table) Lookup(mnemonic string, mode Mode) (*Entry, bool) {
	e, ok := t.variants[strings.ToUpper(mnemonic)][mode]
	return e, ok
}

// Has returns true if the mnemonic exists in the table in any mode.
func (t *Table) Has(mnemonic string) bool {
	_, ok := t.variants[strings.ToUpper(mnemonic)]
	return ok
}

// Modes returns the addressing modes supported by a mnemonic, in
// ascending mode order.
func (t *Table) Modes(mnemonic string) []Mode {
	var modes []Mode
	for m := range t.variants[strings.ToUpper(mnemonic)] {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}

// Decode returns the canonical entry for an opcode value.
func (t *Table) Decode(opcode byte) (*Entry, bool) {
	e := t.decode[opcode]
	return e, e != nil
}

// Mnemonics returns all mnemonics in the table, sorted.
func (t *Table) Mnemonics() []string {
	names := make([]string, 0, len(t.variants))
	for n := range t.variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of (mnemonic, mode) entries in the table.
func (t *Table) Len() int {
	n := 0
	for _, modes := range t.variants {
		n += len(modes)
	}
	return n
}
