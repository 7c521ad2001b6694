// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "github.com/beevik/asm65/isa"

// A ResolvedLine is a classified line with its final address and, for
// instructions, its final addressing mode.
type ResolvedLine struct {
	Line
	Address int      // address of the line's first byte
	Mode    isa.Mode // selected addressing mode
	Offset  int      // branch displacement of relative modes

	sel    int  // index of the selected mode in Line.Modes
	pinned bool // widened after shrinking and may not shrink again
	failed bool // already reported by the resolver
}

// Length returns the encoded size of the line in bytes.
func (r *ResolvedLine) Length() int {
	if r.Kind != Instruction {
		return 0
	}
	return 1 + r.Mode.Width()
}

// Return the argument whose value determines the instruction's encoded
// width. For two-argument operands this is the branch target.
func (r *ResolvedLine) target() Arg {
	return r.Args[len(r.Args)-1]
}

// Resolve assigns addresses to classified lines starting at origin,
// choosing the narrowest encoding of every instruction whose width
// depends on a label. It returns the resolved lines, the symbol table and
// any diagnostics produced.
func Resolve(lines []Line, t *isa.Table, origin int) ([]ResolvedLine, SymbolTable, Diagnostics) {
	a := newAssembler(Options{Profile: t.Profile(), Origin: origin})
	a.table = t
	a.classified = lines

	a.defineSymbols()
	a.resolve()
	return a.resolved, a.symbols, a.diags
}

// Record every label definition, rejecting duplicates.
func (a *assembler) defineSymbols() error {
	a.symbols = make(SymbolTable)
	for i := range a.classified {
		l := &a.classified[i]
		if l.Kind != Label {
			continue
		}
		if prev, ok := a.symbols[l.Label]; ok {
			a.addLineError(l, DuplicateSymbol, "label '%s' already defined at %s L%d", l.Label, prev.Unit, prev.Row)
			continue
		}
		a.symbols[l.Label] = &Symbol{Name: l.Label, Address: -1, Unit: l.Unit, Row: l.Row}
	}
	return nil
}

// Assign addresses until no instruction changes width. Instructions start
// at their widest candidate mode and shrink while the narrower form can
// still reach its operand. Shrinking only moves code closer together, but
// on the 65816 it can move a label across a bank boundary. An instruction
// that no longer fits is widened again and never shrinks afterward, which
// bounds the number of passes.
func (a *assembler) resolve() error {
	a.logSection("Resolving addresses")

	a.resolved = make([]ResolvedLine, len(a.classified))
	for i := range a.classified {
		r := &a.resolved[i]
		r.Line = a.classified[i]
		r.sel = len(r.Modes) - 1
	}

	for pass := 1; ; pass++ {
		a.assignAddresses()
		changed := a.relax()
		a.log("pass %d: end=$%X changed=%d", pass, a.pc, changed)
		if changed == 0 {
			break
		}
	}

	a.checkOperands()
	return nil
}

func (a *assembler) assignAddresses() {
	a.pc = a.origin
	for i := range a.resolved {
		r := &a.resolved[i]
		r.Address = a.pc
		switch r.Kind {
		case Label:
			if sym := a.symbols[r.Label]; sym.Row == r.Row && sym.Unit == r.Unit {
				sym.Address = a.pc
			}
		case Instruction:
			r.Mode = r.Modes[r.sel]
			a.pc += r.Length()
		}
	}
}

// Perform one relaxation sweep and return the number of instructions whose
// mode changed.
func (a *assembler) relax() int {
	changed := 0
	for i := range a.resolved {
		r := &a.resolved[i]
		if r.Kind != Instruction || len(r.Modes) < 2 {
			continue
		}

		last := len(r.Modes) - 1
		switch {
		case r.sel < last && !a.fits(r, r.Modes[r.sel]):
			r.sel++
			r.pinned = true
			changed++

		case !r.pinned:
			for j := 0; j < r.sel; j++ {
				if a.fits(r, r.Modes[j]) {
					r.sel = j
					changed++
					break
				}
			}
		}
	}
	return changed
}

// Return true if the instruction's operand can be encoded in mode m at
// the instruction's current address.
func (a *assembler) fits(r *ResolvedLine, m isa.Mode) bool {
	arg := r.target()
	v, ok := a.argValue(arg)
	if !ok {
		return false
	}
	if m.IsRelative() {
		_, ok = displacement(m, v, r.Address)
		return ok
	}
	_, ok = operandValue(a.profile, m, v, r.Address, arg.Symbol != "")
	return ok
}

func (a *assembler) argValue(arg Arg) (int, bool) {
	if arg.Symbol == "" {
		return arg.Value, true
	}
	return a.symbols.Lookup(arg.Symbol)
}

// Report undefined labels and out-of-range branches once addresses have
// settled.
func (a *assembler) checkOperands() {
	for i := range a.resolved {
		r := &a.resolved[i]
		if r.Kind != Instruction {
			continue
		}

		undefined := false
		for _, arg := range r.Args {
			if arg.Symbol == "" {
				continue
			}
			if _, ok := a.symbols.Lookup(arg.Symbol); !ok {
				a.addLineError(&r.Line, UndefinedSymbol, "undefined label '%s'", arg.Symbol)
				undefined = true
			}
		}
		if undefined {
			r.failed = true
			continue
		}
		if !r.Mode.IsRelative() {
			continue
		}

		v, _ := a.argValue(r.target())
		d, ok := displacement(r.Mode, v, r.Address)
		r.Offset = d
		if !ok {
			r.failed = true
			a.addLineError(&r.Line, BranchOutOfRange, "branch to %s is out of range (%+d bytes)", r.target(), d)
		}
	}
}

// Compute the displacement from the instruction following a relative
// branch at addr to target. It returns false if the displacement does
// not fit the mode's operand.
func displacement(m isa.Mode, target, addr int) (int, bool) {
	d := target - (addr + 1 + m.Width())
	if m == isa.RLL {
		return d, inRange(d, -32768, 32767)
	}
	return d, inRange(d, -128, 127)
}

// Modes whose 16-bit operand is an offset into the current bank on the
// 65816.
func bankRelative(m isa.Mode) bool {
	switch m {
	case isa.ABS, isa.ABX, isa.ABY, isa.IAX:
		return true
	default:
		return false
	}
}

// Return the value stored in the operand field of mode m for argument
// value v of an instruction at addr. It returns false if v does not fit.
// On the 65816 a 16-bit label operand must lie in the instruction's bank.
func operandValue(p isa.Profile, m isa.Mode, v, addr int, symbolic bool) (int, bool) {
	switch m.Width() {
	case 1:
		return v, v <= 0xff
	case 2:
		if p == isa.W65816 && symbolic && bankRelative(m) {
			return v & 0xffff, v>>16 == addr>>16
		}
		return v, v <= 0xffff
	default:
		return v, v <= 0xffffff
	}
}
