// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isa

import (
	"errors"
	"sort"
	"testing"
)

func mustGet(t *testing.T, p Profile) *Table {
	t.Helper()
	tbl, err := Get(p)
	if err != nil {
		t.Fatalf("Get(%v): %v", p, err)
	}
	return tbl
}

func checkOpcode(t *testing.T, tbl *Table, name string, mode Mode, opcode byte) {
	t.Helper()
	e, ok := tbl.Lookup(name, mode)
	if !ok {
		t.Errorf("%v: %s %v missing", tbl.Profile(), name, mode)
		return
	}
	if e.Opcode != opcode {
		t.Errorf("%v: %s %v opcode $%02X, expected $%02X", tbl.Profile(), name, mode, e.Opcode, opcode)
	}
}

func TestTableSizes(t *testing.T) {
	sizes := map[Profile]int{NMOS: 151, CMOS: 212, W65816: 271}
	for p, n := range sizes {
		if got := mustGet(t, p).Len(); got != n {
			t.Errorf("%v table has %d entries, expected %d", p, got, n)
		}
	}
}

func TestNMOS(t *testing.T) {
	tbl := mustGet(t, NMOS)
	checkOpcode(t, tbl, "LDA", IMM, 0xa9)
	checkOpcode(t, tbl, "lda", ABS, 0xad)
	checkOpcode(t, tbl, "JMP", IND, 0x6c)
	checkOpcode(t, tbl, "BMI", REL, 0x30)
	checkOpcode(t, tbl, "BNE", REL, 0xd0)
	checkOpcode(t, tbl, "ROR", ACC, 0x6a)
	checkOpcode(t, tbl, "STX", ZPY, 0x96)

	for _, name := range []string{"STZ", "BRA", "PHX", "TSB", "RMB0", "JSL"} {
		if tbl.Has(name) {
			t.Errorf("6502 table unexpectedly contains %s", name)
		}
	}
	if _, ok := tbl.Lookup("LDA", ZPI); ok {
		t.Error("6502 table unexpectedly supports LDA (zp)")
	}
}

func TestCMOS(t *testing.T) {
	tbl := mustGet(t, CMOS)
	checkOpcode(t, tbl, "STZ", ZPG, 0x64)
	checkOpcode(t, tbl, "LDA", ZPI, 0xb2)
	checkOpcode(t, tbl, "JMP", IAX, 0x7c)
	checkOpcode(t, tbl, "INC", ACC, 0x1a)
	checkOpcode(t, tbl, "RMB3", ZPG, 0x37)
	checkOpcode(t, tbl, "SMB7", ZPG, 0xf7)
	checkOpcode(t, tbl, "BBR0", ZPR, 0x0f)
	checkOpcode(t, tbl, "BBS5", ZPR, 0xdf)

	if tbl.Has("JML") || tbl.Has("XCE") {
		t.Error("65C02 table unexpectedly contains 65816 instructions")
	}
}

func TestW65816(t *testing.T) {
	tbl := mustGet(t, W65816)
	checkOpcode(t, tbl, "JSL", ABL, 0x22)
	checkOpcode(t, tbl, "JML", ABL, 0x5c)
	checkOpcode(t, tbl, "STA", ABL, 0x8f)
	checkOpcode(t, tbl, "LDA", SRY, 0xb3)
	checkOpcode(t, tbl, "LDA", IMW, 0xa9)
	checkOpcode(t, tbl, "REP", IMM, 0xc2)
	checkOpcode(t, tbl, "SEP", IMM, 0xe2)
	checkOpcode(t, tbl, "MVN", BLK, 0x54)
	checkOpcode(t, tbl, "BRL", RLL, 0x82)
	checkOpcode(t, tbl, "STZ", ABX, 0x9e)

	if tbl.Has("BBR0") || tbl.Has("SMB1") {
		t.Error("65816 table unexpectedly contains Rockwell bit instructions")
	}
}

func TestDecode(t *testing.T) {
	tbl := mustGet(t, W65816)
	for op := 0; op < 256; op++ {
		e, ok := tbl.Decode(byte(op))
		if !ok {
			t.Errorf("65816 opcode $%02X not decodable", op)
			continue
		}
		if e.Opcode != byte(op) {
			t.Errorf("opcode $%02X decoded as $%02X", op, e.Opcode)
		}
		if e.Mode == IMW {
			t.Errorf("opcode $%02X decoded as wide immediate", op)
		}
	}

	cases := []struct {
		opcode byte
		name   string
		mode   Mode
	}{
		{0x82, "BRL", RLL},
		{0x5c, "JML", ABL},
		{0xdc, "JML", IAL},
		{0xa9, "LDA", IMM},
	}
	for _, c := range cases {
		e, _ := tbl.Decode(c.opcode)
		if e.Mnemonic != c.name || e.Mode != c.mode {
			t.Errorf("opcode $%02X decoded as %s %v, expected %s %v", c.opcode, e.Mnemonic, e.Mode, c.name, c.mode)
		}
	}

	nmos := mustGet(t, NMOS)
	if _, ok := nmos.Decode(0x02); ok {
		t.Error("6502 table decoded undocumented opcode $02")
	}
}

func TestDuplicateEntry(t *testing.T) {
	rows := []opcodeData{
		{"BMI", REL, 0x30, 2, br, all},
		{"BMI", REL, 0xd0, 2, br, all},
	}
	_, err := newTable(NMOS, rows)
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("expected ErrDuplicateEntry, got %v", err)
	}

	// Rows for other profiles do not collide.
	rows[1].cpus = w816
	if _, err := newTable(NMOS, rows); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTablesShared(t *testing.T) {
	a := mustGet(t, CMOS)
	b := mustGet(t, CMOS)
	if a != b {
		t.Error("Get returned distinct tables for the same profile")
	}
	if _, err := Get(Profile(9)); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestParseProfile(t *testing.T) {
	cases := []struct {
		in   string
		want Profile
	}{
		{"6502", NMOS},
		{"NES", NMOS},
		{"famicom", NMOS},
		{"65C02", CMOS},
		{"cmos", CMOS},
		{"65816", W65816},
		{"SNES", W65816},
		{"Super Famicom", W65816},
	}
	for _, c := range cases {
		p, err := ParseProfile(c.in)
		if err != nil {
			t.Errorf("ParseProfile(%q): %v", c.in, err)
			continue
		}
		if p != c.want {
			t.Errorf("ParseProfile(%q) = %v, expected %v", c.in, p, c.want)
		}
	}

	if _, err := ParseProfile("z80"); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestKnown(t *testing.T) {
	for _, name := range []string{"LDA", "stz", "XCE", "BBS7"} {
		if !Known(name) {
			t.Errorf("Known(%q) = false", name)
		}
	}
	if Known("MOV") {
		t.Error("Known(\"MOV\") = true")
	}
}

func TestModes(t *testing.T) {
	tbl := mustGet(t, NMOS)
	modes := tbl.Modes("LDX")
	expected := []Mode{IMM, ZPG, ZPY, ABS, ABY}
	if len(modes) != len(expected) {
		t.Fatalf("LDX modes %v, expected %v", modes, expected)
	}
	for i := range modes {
		if modes[i] != expected[i] {
			t.Errorf("LDX modes %v, expected %v", modes, expected)
			break
		}
	}
}

func TestMnemonics(t *testing.T) {
	names := mustGet(t, NMOS).Mnemonics()
	if !sort.StringsAreSorted(names) {
		t.Error("mnemonics not sorted")
	}
	if len(names) != 56 {
		t.Errorf("6502 has %d mnemonics, expected 56", len(names))
	}

	has := func(names []string, s string) bool {
		i := sort.SearchStrings(names, s)
		return i < len(names) && names[i] == s
	}
	if has(names, "STZ") || !has(mustGet(t, CMOS).Mnemonics(), "STZ") {
		t.Error("STZ should exist only on the 65C02 and later")
	}
}
