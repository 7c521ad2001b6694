// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isa

// Mode describes an operand addressing mode.
type Mode byte

// All addressing modes known to any profile. Not every profile supports
// every mode.
const (
	IMP Mode = iota // Implied (no operand)
	ACC             // Accumulator (no operand)
	IMM             // Immediate
	IMW             // Immediate, 16-bit (65816)
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ZPI             // (Zero Page)
	ZPR             // Zero Page,Relative (bit test and branch)
	REL             // Relative
	RLL             // Relative long (65816)
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y
	IAX             // (Absolute,X)
	ABL             // Absolute long (65816)
	ALX             // Absolute long,X (65816)
	ILZ             // [Direct] (65816)
	ILY             // [Direct],Y (65816)
	IAL             // [Absolute] (65816)
	SR              // Stack,S (65816)
	SRY             // (Stack,S),Y (65816)
	BLK             // Block move src,dst (65816)

	modeCount
)

var modeName = [modeCount]string{
	"IMP", "ACC", "IMM", "IMW", "ZPG", "ZPX", "ZPY", "ZPI", "ZPR", "REL",
	"RLL", "ABS", "ABX", "ABY", "IND", "IDX", "IDY", "IAX", "ABL", "ALX",
	"ILZ", "ILY", "IAL", "SR", "SRY", "BLK",
}

// Operand size in bytes for each mode.
var modeWidth = [modeCount]int{
	IMP: 0, ACC: 0,
	IMM: 1, IMW: 2,
	ZPG: 1, ZPX: 1, ZPY: 1, ZPI: 1,
	ZPR: 2,
	REL: 1, RLL: 2,
	ABS: 2, ABX: 2, ABY: 2, IND: 2,
	IDX: 1, IDY: 1,
	IAX: 2,
	ABL: 3, ALX: 3,
	ILZ: 1, ILY: 1,
	IAL: 2,
	SR: 1, SRY: 1,
	BLK: 2,
}

// Canonical operand syntax for each mode. The %s verbs receive hex digits.
var modeFormat = [modeCount]string{
	"",          // IMP
	"A",         // ACC
	"#$%s",      // IMM
	"#$%s",      // IMW
	"$%s",       // ZPG
	"$%s,X",     // ZPX
	"$%s,Y",     // ZPY
	"($%s)",     // ZPI
	"$%s,$%s",   // ZPR
	"$%s",       // REL
	"$%s",       // RLL
	"$%s",       // ABS
	"$%s,X",     // ABX
	"$%s,Y",     // ABY
	"($%s)",     // IND
	"($%s,X)",   // IDX
	"($%s),Y",   // IDY
	"($%s,X)",   // IAX
	"$%s",       // ABL
	"$%s,X",     // ALX
	"[$%s]",     // ILZ
	"[$%s],Y",   // ILY
	"[$%s]",     // IAL
	"$%s,S",     // SR
	"($%s,S),Y", // SRY
	"$%s,$%s",   // BLK
}

func (m Mode) String() string {
	if m < modeCount {
		return modeName[m]
	}
	return "???"
}

// Width returns the number of operand bytes that follow the opcode.
func (m Mode) Width() int {
	if m < modeCount {
		return modeWidth[m]
	}
	return 0
}

// Format returns a fmt format string describing the canonical operand
// syntax of the mode.
func (m Mode) Format() string {
	if m < modeCount {
		return modeFormat[m]
	}
	return ""
}

// IsRelative returns true if the mode encodes a displacement from the
// address of the following instruction.
func (m Mode) IsRelative() bool {
	return m == REL || m == RLL || m == ZPR
}
