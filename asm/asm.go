// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a multi-unit assembler for the 6502 family of
// processors. Source units are preprocessed, classified line by line,
// resolved to addresses and encoded to machine code.
package asm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/asm65/isa"
)

// Errors returned by Assemble.
var (
	ErrAssembly = errors.New("assembly failed")
	ErrOrigin   = errors.New("origin outside the address space")
)

// DefaultOrigin is the load address used when none is configured. It is
// the start of cartridge program ROM on the NES.
const DefaultOrigin = 0x8000

// Options control an assembly.
type Options struct {
	Profile isa.Profile // processor instruction set
	Origin  int         // address of the first emitted byte
	Verbose bool        // log each assembly stage to Out
	Out     io.Writer   // verbose output, os.Stdout if nil
}

// The assembler is a state object used during the assembly of
// machine code from assembly code.
type assembler struct {
	profile     isa.Profile    // requested profile
	table       *isa.Table     // instructions of the profile
	origin      int            // requested origin
	pc          int            // the program counter
	files       []string       // unit names by file index
	units       []*unit        // unit set during preprocessing
	lines       []fstring      // preprocessed lines
	classified  []Line         // classified lines
	resolved    []ResolvedLine // resolved lines
	symbols     SymbolTable    // label -> symbol
	chunks      []Chunk        // generated machine code
	listing     []ListingLine  // generated listing
	sourceLines []SourceLine   // source code line mappings
	diags       Diagnostics    // errors and warnings
	out         io.Writer      // output used for verbose output
	verbose     bool           // verbose output
}

func newAssembler(opts Options) *assembler {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &assembler{
		profile: opts.Profile,
		origin:  opts.Origin,
		pc:      -1,
		symbols: make(SymbolTable),
		out:     out,
		verbose: opts.Verbose,
	}
}

// Assemble preprocesses, resolves and encodes a set of source units. Units
// not included by another unit are assembled in the order given. On
// failure the returned program holds the diagnostics but no code, and the
// error is ErrAssembly.
func Assemble(units []SourceUnit, opts Options) (*Program, error) {
	table, err := isa.Get(opts.Profile)
	if err != nil {
		return nil, err
	}
	if opts.Origin < 0 || opts.Origin > opts.Profile.MaxAddress() {
		return nil, fmt.Errorf("%w: $%X", ErrOrigin, opts.Origin)
	}

	a := newAssembler(opts)
	a.table = table
	a.loadUnits(units)

	// Assembly consists of the following steps
	steps := []func(a *assembler) error{
		(*assembler).preprocess,    // Apply .define and .include
		(*assembler).classify,      // Categorize each line
		(*assembler).defineSymbols, // Build the label table
		(*assembler).resolve,       // Assign addresses and select modes
		(*assembler).generateCode,  // Generate the machine code
	}

	// Execute assembler steps, breaking only on a structural error. Line
	// errors accumulate so every stage reports on every line.
	for _, step := range steps {
		err = step(a)
		if err != nil {
			break
		}
	}
	if err == nil && a.diags.HasErrors() {
		err = ErrAssembly
	}

	p := &Program{
		Profile:     a.profile,
		Origin:      a.origin,
		Symbols:     a.symbols,
		Diagnostics: a.diags,
		files:       a.files,
	}
	if err != nil {
		return p, err
	}

	p.Chunks = a.chunks
	p.Listing = a.listing
	p.sourceLines = a.sourceLines
	return p, nil
}

// Add an error and return ErrAssembly, which halts assembly.
func (a *assembler) fatal(l fstring, kind Kind, format string, args ...any) error {
	a.addError(l, kind, format, args...)
	return ErrAssembly
}

// Append an error message to the assembler's diagnostics.
func (a *assembler) addError(l fstring, kind Kind, format string, args ...any) {
	a.report(a.unitName(l), l, Error, kind, fmt.Sprintf(format, args...))
}

// Append a warning to the assembler's diagnostics.
func (a *assembler) addWarning(l fstring, kind Kind, format string, args ...any) {
	a.report(a.unitName(l), l, Warning, kind, fmt.Sprintf(format, args...))
}

// Append an error attributed to a classified line.
func (a *assembler) addLineError(l *Line, kind Kind, format string, args ...any) {
	a.report(l.Unit, l.src, Error, kind, fmt.Sprintf(format, args...))
}

func (a *assembler) addDiagnostic(l fstring, d *Diagnostic) {
	a.diags = append(a.diags, d)
	a.logDiagnostic(l, d)
}

func (a *assembler) report(unit string, l fstring, sev Severity, kind Kind, msg string) {
	a.addDiagnostic(l, &Diagnostic{
		Unit:     unit,
		Line:     l.row,
		Severity: sev,
		Kind:     kind,
		Message:  msg,
	})
}

func (a *assembler) unitName(l fstring) string {
	if l.fileIndex < len(a.files) {
		return a.files[l.fileIndex]
	}
	return ""
}

// In verbose mode, log a diagnostic with a marker under the offending
// column.
func (a *assembler) logDiagnostic(l fstring, d *Diagnostic) {
	if a.verbose {
		fmt.Fprintf(a.out, "%s: %s\n", d.Severity, d)
		fmt.Fprintln(a.out, l.full)
		fmt.Fprintf(a.out, "%s^\n", strings.Repeat("-", l.column))
	}
}

// In verbose mode, log a string to standard output.
func (a *assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintf(a.out, "\n")
	}
}

// In verbose mode, log a string and its associated line
// of assembly code.
func (a *assembler) logLine(line fstring, format string, args ...any) {
	if a.verbose {
		detail := fmt.Sprintf(format, args...)
		fmt.Fprintf(a.out, "%-3d %-3d | %-20s | %s\n", line.row, line.column+1, detail, line.str)
	}
}

// In verbose mode, log a series of bytes with starting address.
func (a *assembler) logBytes(addr int, b []byte) {
	if a.verbose {
		a.log("%s-  %s", hexDigits(addr, addressWidth(a.profile)), byteString(b))
	}
}

// In verbose mode, log a section header to the standard output.
func (a *assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}

// Return the number of bytes used to display an address.
func addressWidth(p isa.Profile) int {
	if p == isa.W65816 {
		return 3
	}
	return 2
}
