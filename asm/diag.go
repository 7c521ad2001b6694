// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"io"
)

// Severity indicates whether a diagnostic prevents code generation.
type Severity byte

// Diagnostic severities.
const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Kind categorizes a diagnostic.
type Kind byte

// Diagnostic kinds.
const (
	MalformedDirective Kind = iota // bad or unknown preprocessor directive
	MissingInclude                 // include of a unit not in the unit set
	UnusedDefine                   // define whose keyword never appears
	SyntaxError                    // line matches no grammar
	UnsupportedMode                // no table entry for mnemonic and mode
	DuplicateSymbol                // label defined more than once
	UndefinedSymbol                // operand names an unknown label
	BranchOutOfRange               // displacement does not fit the branch
	OperandOverflow                // value does not fit the operand field
)

var kindName = []string{
	"MalformedDirective",
	"MissingInclude",
	"UnusedDefine",
	"SyntaxError",
	"UnsupportedMode",
	"DuplicateSymbol",
	"UndefinedSymbol",
	"BranchOutOfRange",
	"OperandOverflow",
}

func (k Kind) String() string {
	if int(k) < len(kindName) {
		return kindName[k]
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// A Diagnostic is an error or warning attributed to a line of a source
// unit.
type Diagnostic struct {
	Unit     string   // name of the source unit
	Line     int      // 1-based line number within the unit
	Severity Severity // error or warning
	Kind     Kind     // diagnostic category
	Message  string   // human-readable description
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s L%d: %s", d.Unit, d.Line, d.Message)
}

func (d *Diagnostic) Error() string {
	return d.String()
}

// Diagnostics is an ordered list of diagnostics.
type Diagnostics []*Diagnostic

// HasErrors returns true if any diagnostic has Error severity.
func (d Diagnostics) HasErrors() bool {
	for _, x := range d {
		if x.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns the diagnostics with Error severity.
func (d Diagnostics) Errors() Diagnostics {
	return d.filter(func(x *Diagnostic) bool { return x.Severity == Error })
}

// Warnings returns the diagnostics with Warning severity.
func (d Diagnostics) Warnings() Diagnostics {
	return d.filter(func(x *Diagnostic) bool { return x.Severity == Warning })
}

// OfKind returns the diagnostics of the requested kind.
func (d Diagnostics) OfKind(k Kind) Diagnostics {
	return d.filter(func(x *Diagnostic) bool { return x.Kind == k })
}

func (d Diagnostics) filter(fn func(x *Diagnostic) bool) Diagnostics {
	var r Diagnostics
	for _, x := range d {
		if fn(x) {
			r = append(r, x)
		}
	}
	return r
}

// WriteTo writes one diagnostic per line to w.
func (d Diagnostics) WriteTo(w io.Writer) (n int64, err error) {
	for _, x := range d {
		prefix := ""
		if x.Severity == Warning {
			prefix = "warning: "
		}
		nn, err := fmt.Fprintf(w, "%s%s\n", prefix, x)
		n += int64(nn)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
