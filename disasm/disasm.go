// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a disassembler for the 6502 family
// instruction sets.
package disasm

import (
	"fmt"

	"github.com/beevik/asm65/isa"
)

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the byte slice,
// most significant byte first.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Return an address as a string of hex digits sized for the profile.
func addrString(p isa.Profile, addr int) string {
	if p == isa.W65816 {
		return fmt.Sprintf("%06X", addr&0xffffff)
	}
	return fmt.Sprintf("%04X", addr&0xffff)
}

// Return the absolute target of a branch from the instruction at addr.
// Branches wrap within the current bank.
func branchTarget(addr, length, disp int) int {
	return (addr & 0xff0000) | ((addr + length + disp) & 0xffff)
}

// Disassemble the instruction at address 'addr' of 'code', which is loaded
// at 'origin'. Return a 'line' string representing the disassembled
// instruction and a 'next' address that starts the following line of
// machine code. Bytes that do not form a valid instruction are shown as
// a .byte line.
//
// The width of a 65816 immediate operand depends on the M and X processor
// flags at run time, which the code bytes do not record. Immediates always
// decode as 8-bit, so code assembled with 16-bit immediates (after REP)
// lists out of step until the next instruction boundary is found.
func Disassemble(t *isa.Table, code []byte, origin, addr int) (line string, next int) {
	i := addr - origin
	if i < 0 || i >= len(code) {
		return "", addr
	}

	e, ok := t.Decode(code[i])
	if !ok || i+e.Length() > len(code) {
		return fmt.Sprintf(".byte $%02X", code[i]), addr + 1
	}

	operand := code[i+1 : i+e.Length()]
	p := t.Profile()
	format := e.Mnemonic + " " + e.Mode.Format()

	switch e.Mode {
	case isa.IMP:
		line = e.Mnemonic
	case isa.ACC:
		line = format
	case isa.REL:
		target := branchTarget(addr, e.Length(), int(int8(operand[0])))
		line = fmt.Sprintf(format, addrString(p, target))
	case isa.RLL:
		disp := int(int16(uint16(operand[0]) | uint16(operand[1])<<8))
		target := branchTarget(addr, e.Length(), disp)
		line = fmt.Sprintf(format, addrString(p, target))
	case isa.ZPR:
		target := branchTarget(addr, e.Length(), int(int8(operand[1])))
		line = fmt.Sprintf(format, hexString(operand[:1]), addrString(p, target))
	case isa.BLK:
		line = fmt.Sprintf(format, hexString(operand[1:2]), hexString(operand[:1]))
	default:
		line = fmt.Sprintf(format, hexString(operand))
	}

	next = addr + e.Length()
	return
}
