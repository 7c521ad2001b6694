// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"slices"
	"strings"
)

// A directive is a parsed preprocessor line of the form ".name args".
type directive struct {
	line fstring // the full directive line
	name string  // lower-case directive name
	args fstring // argument text, never empty
}

type directiveFunc func(a *assembler, ui, li int, d directive) error

var directives map[string]directiveFunc

func init() {
	directives = map[string]directiveFunc{
		"define":  (*assembler).applyDefine,
		"include": (*assembler).applyInclude,
	}
}

// Preprocess applies all .define and .include directives in the units and
// returns the units that remain afterward, in their original order.
func Preprocess(units []SourceUnit) ([]SourceUnit, Diagnostics, error) {
	a := newAssembler(Options{})
	a.loadUnits(units)
	if err := a.preprocess(); err != nil {
		return nil, a.diags, err
	}

	out := make([]SourceUnit, len(a.units))
	for i, u := range a.units {
		out[i].Name = u.name
		for _, l := range u.lines {
			out[i].Lines = append(out[i].Lines, l.str)
		}
	}
	return out, a.diags, nil
}

// Repeatedly apply the first directive found in the unit set until none
// remain. Every applied directive removes exactly one line from the unit
// set, so the loop runs at most once per input line.
func (a *assembler) preprocess() error {
	a.logSection("Preprocessing")

	for {
		ui, li := a.nextDirective()
		if ui < 0 {
			break
		}

		d, err := a.parseDirective(a.units[ui].lines[li])
		if err != nil {
			return err
		}
		if err := directives[d.name](a, ui, li, d); err != nil {
			return err
		}
	}

	a.lines = a.flatten()
	a.log("%d unit(s) remain with %d line(s)", len(a.units), len(a.lines))
	return nil
}

// Return the unit and line indices of the first directive line in the
// unit set, or -1 if there are none.
func (a *assembler) nextDirective() (ui, li int) {
	for ui, u := range a.units {
		for li := range u.lines {
			if u.lines[li].startsWithChar('.') {
				return ui, li
			}
		}
	}
	return -1, -1
}

func (a *assembler) parseDirective(line fstring) (directive, error) {
	name, remain := line.consume(1).consumeUntil(whitespace)
	if name.isEmpty() {
		return directive{}, a.fatal(line, MalformedDirective, "missing directive name")
	}

	key := strings.ToLower(name.str)
	if _, ok := directives[key]; !ok {
		return directive{}, a.fatal(name, MalformedDirective, "unknown directive '.%s'", name.str)
	}

	args := remain.consumeWhitespace()
	if args.isEmpty() {
		return directive{}, a.fatal(line, MalformedDirective, "directive '.%s' requires an argument", key)
	}

	return directive{line: line, name: key, args: args}, nil
}

// Handle a ".define KEY replacement" line by removing it and replacing
// KEY in every line of every unit.
func (a *assembler) applyDefine(ui, li int, d directive) error {
	key, rest := d.args.consumeUntil(whitespace)
	for _, tok := range strings.Fields(d.args.str) {
		if strings.HasPrefix(tok, ".") {
			return a.fatal(d.args, MalformedDirective, "more than one directive on line")
		}
	}
	repl := rest.trim().str

	a.removeLine(ui, li)

	uses := 0
	for _, u := range a.units {
		for i := range u.lines {
			var n int
			u.lines[i], n = u.lines[i].replaceToken(key.str, repl)
			uses += n
		}
	}

	a.logLine(d.line, "define %s (%d uses)", key.str, uses)
	if uses == 0 {
		a.addWarning(d.line, UnusedDefine, "'%s' is defined but never used", key.str)
	}
	return nil
}

// Handle an ".include NAME" line by replacing it with the lines of the
// named unit and removing that unit from the unit set.
func (a *assembler) applyInclude(ui, li int, d directive) error {
	name := d.args.str
	for _, tok := range strings.Fields(name)[1:] {
		if strings.HasPrefix(tok, ".") {
			return a.fatal(d.args, MalformedDirective, "more than one directive on line")
		}
	}

	ti := a.findUnit(name)
	switch {
	case ti < 0:
		return a.fatal(d.args, MissingInclude, "unit '%s' not found", name)
	case ti == ui:
		return a.fatal(d.args, MalformedDirective, "unit '%s' includes itself", name)
	}

	u, inc := a.units[ui], a.units[ti]
	lines := make([]fstring, 0, len(u.lines)+len(inc.lines)-1)
	lines = append(lines, u.lines[:li]...)
	lines = append(lines, inc.lines...)
	lines = append(lines, u.lines[li+1:]...)
	u.lines = lines

	a.units = slices.Delete(a.units, ti, ti+1)

	a.logLine(d.line, "include %s (%d lines)", name, len(inc.lines))
	return nil
}

func (a *assembler) findUnit(name string) int {
	for i, u := range a.units {
		if u.name == name {
			return i
		}
	}
	return -1
}

func (a *assembler) removeLine(ui, li int) {
	u := a.units[ui]
	u.lines = slices.Delete(u.lines, li, li+1)
}
