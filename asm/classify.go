// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/asm65/isa"
)

// LineKind identifies the category of a classified source line.
type LineKind byte

// Line kinds.
const (
	Blank LineKind = iota
	Label
	Instruction
	Invalid
)

func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Label:
		return "label"
	case Instruction:
		return "instruction"
	default:
		return "invalid"
	}
}

// An Arg is one operand value: either a hexadecimal literal or a
// reference to a label.
type Arg struct {
	Symbol string // referenced label, empty for literals
	Value  int    // literal value
	Width  int    // literal width in bytes, from its digit count
}

func (a Arg) String() string {
	if a.Symbol != "" {
		return a.Symbol
	}
	return "$" + hexDigits(a.Value, a.Width)
}

// A Line is a classified line of assembly source.
type Line struct {
	Unit     string     // source unit name
	Row      int        // 1-based line number within the unit
	Text     string     // source text without comments
	Kind     LineKind   // line category
	Label    string     // defined label (Label lines)
	Mnemonic string     // upper-case mnemonic (Instruction lines)
	Modes    []isa.Mode // candidate addressing modes, narrowest first
	Args     []Arg      // operand values

	src fstring
}

// Mode returns the widest candidate addressing mode of an instruction
// line. Literal operands always have exactly one candidate.
func (l *Line) Mode() isa.Mode {
	if len(l.Modes) == 0 {
		return isa.IMP
	}
	return l.Modes[len(l.Modes)-1]
}

// The syntactic shape of an operand.
type syntax byte

const (
	synNone  syntax = iota // (nothing)
	synAcc                 // A
	synImm                 // #v
	synBare                // v
	synX                   // v,X
	synY                   // v,Y
	synS                   // v,S
	synInd                 // (v)
	synIndX                // (v,X)
	synIndY                // (v),Y
	synIndSY               // (v,S),Y
	synLong                // [v]
	synLongY               // [v],Y
	synPair                // v,v
)

// Addressing modes each operand shape may encode, narrowest first.
var syntaxModes = [...][]isa.Mode{
	synNone:  {isa.IMP, isa.ACC},
	synAcc:   {isa.ACC},
	synImm:   {isa.IMM, isa.IMW},
	synBare:  {isa.ZPG, isa.ABS, isa.ABL},
	synX:     {isa.ZPX, isa.ABX, isa.ALX},
	synY:     {isa.ZPY, isa.ABY},
	synS:     {isa.SR},
	synInd:   {isa.ZPI, isa.IND},
	synIndX:  {isa.IDX, isa.IAX},
	synIndY:  {isa.IDY},
	synIndSY: {isa.SRY},
	synLong:  {isa.ILZ, isa.IAL},
	synLongY: {isa.ILY},
	synPair:  {isa.ZPR, isa.BLK},
}

var branchModes = []isa.Mode{isa.REL, isa.RLL}

// Register names that may not be used as labels.
var reserved = map[string]bool{"A": true, "X": true, "Y": true, "S": true}

// A lineError describes why a line failed to classify.
type lineError struct {
	at   fstring
	kind Kind
	msg  string
}

func errorf(at fstring, kind Kind, format string, args ...any) *lineError {
	return &lineError{at, kind, fmt.Sprintf(format, args...)}
}

// Classify categorizes a single line of preprocessed source text for the
// instruction table t. A line that cannot be classified is returned with
// kind Invalid along with a *Diagnostic error.
func Classify(text string, t *isa.Table) (Line, error) {
	l, lerr := classify(newFstring(0, 1, text).clean(), t)
	if lerr != nil {
		return l, &Diagnostic{Line: 1, Severity: Error, Kind: lerr.kind, Message: lerr.msg}
	}
	return l, nil
}

// Classify every preprocessed line and record each label it defines.
func (a *assembler) classify() error {
	a.logSection("Classifying lines")

	a.classified = make([]Line, len(a.lines))
	for i, src := range a.lines {
		l, lerr := classify(src, a.table)
		l.Unit = a.files[src.fileIndex]
		a.classified[i] = l

		switch {
		case lerr != nil:
			a.addError(lerr.at, lerr.kind, "%s", lerr.msg)
		case l.Kind == Instruction:
			a.logLine(src, "%s %v", l.Mnemonic, l.Modes)
		case l.Kind == Label:
			a.logLine(src, "label %s", l.Label)
		}
	}
	return nil
}

func classify(src fstring, t *isa.Table) (Line, *lineError) {
	l := Line{Row: src.row, Text: src.str, src: src}
	if src.isEmpty() {
		l.Kind = Blank
		return l, nil
	}

	l.Kind = Invalid
	if !src.startsWith(identifierStartChar) {
		return l, errorf(src, SyntaxError, "unexpected character '%c'", src.str[0])
	}

	word, remain := src.consumeWhile(identifierChar)

	// label:
	if remain.startsWithChar(':') {
		rest := remain.consume(1).consumeWhitespace()
		switch {
		case !rest.isEmpty():
			return l, errorf(rest, SyntaxError, "unexpected '%s' after label", rest.str)
		case reserved[strings.ToUpper(word.str)]:
			return l, errorf(word, SyntaxError, "'%s' is a reserved name", word.str)
		}
		l.Kind, l.Label = Label, word.str
		return l, nil
	}

	if !remain.isEmpty() && !remain.startsWith(whitespace) {
		return l, errorf(remain, SyntaxError, "unexpected character '%c'", remain.str[0])
	}
	if !validMnemonic(word.str) {
		return l, errorf(word, SyntaxError, "invalid mnemonic '%s'", word.str)
	}

	name := strings.ToUpper(word.str)
	if !t.Has(name) {
		if isa.Known(name) {
			return l, errorf(word, UnsupportedMode, "%s is not available on the %s", name, t.Profile())
		}
		return l, errorf(word, SyntaxError, "unknown mnemonic '%s'", word.str)
	}

	operand := remain.consumeWhitespace()
	syn, argStrs, lerr := parseOperand(operand)
	if lerr != nil {
		return l, lerr
	}

	args := make([]Arg, len(argStrs))
	for i, s := range argStrs {
		if args[i], lerr = parseArg(s); lerr != nil {
			return l, lerr
		}
	}

	modes := selectModes(t, name, syn)
	if len(modes) == 0 {
		return l, errorf(operand, UnsupportedMode, "%s does not support operand '%s'", name, operand.str)
	}

	modes, lerr = narrowModes(operand, syn, modes, args)
	if lerr != nil {
		return l, lerr
	}

	l.Kind, l.Mnemonic, l.Modes, l.Args = Instruction, name, modes, args
	return l, nil
}

// A mnemonic has three letters and an optional fourth letter or digit.
func validMnemonic(s string) bool {
	if len(s) < 3 || len(s) > 4 {
		return false
	}
	for i := 0; i < 3; i++ {
		if !alpha(s[i]) {
			return false
		}
	}
	return len(s) == 3 || alpha(s[3]) || decimal(s[3])
}

// Determine the operand's syntactic shape and split out its argument
// substrings.
func parseOperand(l fstring) (syn syntax, args []fstring, err *lineError) {
	var inner, remain fstring

	switch {
	case l.isEmpty():
		return synNone, nil, nil

	case strings.EqualFold(l.str, "A"):
		return synAcc, nil, nil

	case l.startsWithChar('#'):
		return synImm, []fstring{l.consume(1).trim()}, nil

	case l.startsWithChar('('):
		inner, remain = l.consume(1).consumeUntil(func(c byte) bool { return c == ',' || c == ')' })
		switch {
		case remain.startsWithFold(",X)"):
			syn, remain = synIndX, remain.consume(3)
		case remain.startsWithFold(",S),Y"):
			syn, remain = synIndSY, remain.consume(5)
		case remain.startsWithFold("),Y"):
			syn, remain = synIndY, remain.consume(3)
		case remain.startsWithChar(')'):
			syn, remain = synInd, remain.consume(1)
		default:
			return 0, nil, errorf(l, SyntaxError, "unknown addressing mode format '%s'", l.str)
		}
		args = []fstring{inner.trim()}

	case l.startsWithChar('['):
		inner, remain = l.consume(1).consumeUntilChar(']')
		switch {
		case remain.startsWithFold("],Y"):
			syn, remain = synLongY, remain.consume(3)
		case remain.startsWithChar(']'):
			syn, remain = synLong, remain.consume(1)
		default:
			return 0, nil, errorf(l, SyntaxError, "unknown addressing mode format '%s'", l.str)
		}
		args = []fstring{inner.trim()}

	default:
		first, rest := l.consumeUntilChar(',')
		if rest.isEmpty() {
			return synBare, []fstring{first.trim()}, nil
		}
		second := rest.consume(1).trim()
		switch strings.ToUpper(second.str) {
		case "X":
			syn = synX
		case "Y":
			syn = synY
		case "S":
			syn = synS
		default:
			return synPair, []fstring{first.trim(), second}, nil
		}
		return syn, []fstring{first.trim()}, nil
	}

	remain = remain.consumeWhitespace()
	if !remain.isEmpty() {
		return 0, nil, errorf(remain, SyntaxError, "unexpected '%s' after operand", remain.str)
	}
	return syn, args, nil
}

// Parse a single argument: a "$" hex literal of up to six digits or a
// label identifier.
func parseArg(s fstring) (Arg, *lineError) {
	switch {
	case s.isEmpty():
		return Arg{}, errorf(s, SyntaxError, "missing operand value")

	case s.startsWithChar('$'):
		digits := s.consume(1)
		n := digits.scanWhile(hexadecimal)
		switch {
		case n == 0 || n != len(digits.str):
			return Arg{}, errorf(s, SyntaxError, "invalid hex literal '%s'", s.str)
		case n > 6:
			return Arg{}, errorf(s, OperandOverflow, "literal '%s' exceeds 24 bits", s.str)
		}
		v, _ := strconv.ParseUint(digits.str, 16, 32)
		return Arg{Value: int(v), Width: (n + 1) / 2}, nil

	case s.startsWith(identifierStartChar):
		if s.scanWhile(identifierChar) != len(s.str) {
			return Arg{}, errorf(s, SyntaxError, "invalid operand '%s'", s.str)
		}
		if reserved[strings.ToUpper(s.str)] {
			return Arg{}, errorf(s, SyntaxError, "'%s' is a reserved name", s.str)
		}
		return Arg{Symbol: s.str}, nil

	default:
		return Arg{}, errorf(s, SyntaxError, "invalid operand '%s'", s.str)
	}
}

// Return the addressing modes the mnemonic supports for an operand shape.
func selectModes(t *isa.Table, name string, syn syntax) []isa.Mode {
	candidates := syntaxModes[syn]
	if syn == synBare {
		for _, m := range branchModes {
			if _, ok := t.Lookup(name, m); ok {
				candidates = branchModes
				break
			}
		}
	}

	var modes []isa.Mode
	for _, m := range candidates {
		if _, ok := t.Lookup(name, m); ok {
			modes = append(modes, m)
		}
	}
	return modes
}

// Narrow the candidate modes using the operand's arguments. Literal
// operands settle on a single mode. Label operands keep every candidate so
// the resolver can pick the narrowest once addresses are known.
func narrowModes(operand fstring, syn syntax, modes []isa.Mode, args []Arg) ([]isa.Mode, *lineError) {
	switch {
	case len(args) == 0:
		return modes[:1], nil

	case modes[0] == isa.BLK:
		for _, arg := range args {
			switch {
			case arg.Symbol != "":
				return nil, errorf(operand, SyntaxError, "block move banks must be literals")
			case arg.Value > 0xff:
				return nil, errorf(operand, OperandOverflow, "bank %s does not fit in a byte", arg)
			}
		}
		return modes, nil

	case modes[0].IsRelative():
		return modes, nil

	case args[0].Symbol != "":
		if syn == synImm {
			return nil, errorf(operand, SyntaxError, "immediate operand must be a literal")
		}
		return modes, nil
	}

	arg := args[0]
	for _, w := range []int{arg.Width, valueWidth(arg.Value)} {
		for _, m := range modes {
			if m.Width() >= w {
				return []isa.Mode{m}, nil
			}
		}
	}
	return nil, errorf(operand, OperandOverflow, "literal %s is too wide for the operand", arg)
}
