// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"

	"github.com/beevik/asm65/isa"
)

// Encode returns the machine code for a resolved line. Lines that are not
// instructions encode to nothing. A failure is returned as a *Diagnostic.
func Encode(r *ResolvedLine, symbols SymbolTable, t *isa.Table) ([]byte, error) {
	if r.Kind != Instruction {
		return nil, nil
	}

	e, ok := t.Lookup(r.Mnemonic, r.Mode)
	if !ok {
		return nil, r.diag(UnsupportedMode, "%s does not support %s addressing on the %s", r.Mnemonic, r.Mode, t.Profile())
	}

	values := make([]int, len(r.Args))
	for i, arg := range r.Args {
		if arg.Symbol == "" {
			values[i] = arg.Value
			continue
		}
		v, ok := symbols.Lookup(arg.Symbol)
		if !ok {
			return nil, r.diag(UndefinedSymbol, "undefined label '%s'", arg.Symbol)
		}
		values[i] = v
	}

	b := make([]byte, 1, e.Length())
	b[0] = e.Opcode

	switch r.Mode {
	case isa.IMP, isa.ACC:

	case isa.BLK:
		src, dst := values[0], values[1]
		if src > 0xff || dst > 0xff {
			return nil, r.diag(OperandOverflow, "block move bank does not fit in a byte")
		}
		b = append(b, byte(dst), byte(src))

	case isa.REL, isa.RLL, isa.ZPR:
		if r.Mode == isa.ZPR {
			if values[0] > 0xff {
				return nil, r.diag(OperandOverflow, "%s at $%X is not in zero page", r.Args[0], values[0])
			}
			b = append(b, byte(values[0]))
		}
		target := values[len(values)-1]
		d, ok := displacement(r.Mode, target, r.Address)
		if !ok {
			return nil, r.diag(BranchOutOfRange, "branch to %s is out of range (%+d bytes)", r.target(), d)
		}
		width := 1
		if r.Mode == isa.RLL {
			width = 2
		}
		b = append(b, toBytes(width, d)...)

	default:
		arg := r.Args[0]
		v, ok := operandValue(t.Profile(), r.Mode, values[0], r.Address, arg.Symbol != "")
		if !ok {
			return nil, r.diag(OperandOverflow, "operand %s ($%X) does not fit %s addressing", arg, values[0], r.Mode)
		}
		b = append(b, toBytes(r.Mode.Width(), v)...)
	}
	return b, nil
}

func (r *ResolvedLine) diag(kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Unit:     r.Unit,
		Line:     r.Row,
		Severity: Error,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Encode every resolved line and collect the output into contiguous
// chunks, a listing and source line mappings. Lines the resolver rejected
// are skipped. The output is discarded if any line failed.
func (a *assembler) generateCode() error {
	a.logSection("Generating code")

	for i := range a.resolved {
		r := &a.resolved[i]
		if r.failed {
			continue
		}
		b, err := Encode(r, a.symbols, a.table)
		if err != nil {
			a.addDiagnostic(r.src, err.(*Diagnostic))
			continue
		}
		if end := r.Address + len(b) - 1; len(b) > 0 && end > a.profile.MaxAddress() {
			a.addLineError(&r.Line, OperandOverflow, "code at $%X exceeds the %s address space", end, a.profile)
			continue
		}
		a.emit(r, b)
	}
	return nil
}

func (a *assembler) emit(r *ResolvedLine, b []byte) {
	ll := ListingLine{
		Address: r.Address,
		Code:    b,
		Kind:    r.Kind,
		Unit:    r.Unit,
		Row:     r.Row,
		Text:    r.src.full,
	}
	if e, ok := a.table.Lookup(r.Mnemonic, r.Mode); ok && r.Kind == Instruction {
		ll.Cycles, ll.Flags = e.Cycles, e.Flags
	}
	a.listing = append(a.listing, ll)

	if len(b) == 0 {
		return
	}

	a.sourceLines = append(a.sourceLines, SourceLine{
		Address:   r.Address,
		FileIndex: r.src.fileIndex,
		Line:      r.Row,
	})

	n := len(a.chunks)
	if n > 0 && a.chunks[n-1].end() == r.Address {
		a.chunks[n-1].Code = append(a.chunks[n-1].Code, b...)
	} else {
		a.chunks = append(a.chunks, Chunk{Address: r.Address, Code: append([]byte(nil), b...)})
	}

	a.logBytes(r.Address, b)
}
