// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements a command shell around the assembler. The shell
// reads source files, assembles them, writes the resulting binary, source
// map and listing files, and displays the labels, diagnostics and
// disassembly of the last program it built.
package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/beevik/asm65/asm"
	"github.com/beevik/asm65/disasm"
	"github.com/beevik/asm65/isa"
	"github.com/beevik/cmd"
)

var (
	errQuit        = errors.New("exiting program")
	errMapMismatch = errors.New("source map does not match the binary")
)

// Maximum nesting of execute commands.
const maxScriptDepth = 8

// A lineReader supplies command lines to the host.
type lineReader interface {
	ReadLine() (string, error)
}

type scanner struct {
	*bufio.Scanner
}

func (s scanner) ReadLine() (string, error) {
	if s.Scan() {
		return s.Text(), nil
	}
	if err := s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// A Host is a command shell that assembles source files.
type Host struct {
	input       lineReader
	output      *bufio.Writer
	interactive bool
	width       int
	depth       int
	lastCmd     *cmd.Selection
	exprParser  *exprParser
	settings    *settings
	program     *asm.Program   // last assembly, nil after a load
	code        []byte         // code image shown by list
	sourceMap   *asm.SourceMap // addresses, labels and source lines of code
}

// New creates a new host with default settings.
func New() *Host {
	return &Host{
		width:      80,
		exprParser: newExprParser(),
		settings:   newSettings(),
		output:     bufio.NewWriter(io.Discard),
	}
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.run(scanner{bufio.NewScanner(r)}, w, interactive)
}

func (h *Host) run(in lineReader, w io.Writer, interactive bool) error {
	h.input = in
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	for {
		h.prompt()

		line, err := h.input.ReadLine()
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(*command).handler
		if err := handler(h, c); err != nil {
			h.flush()
			return err
		}
		h.flush()
	}
}

// Set assigns a value to a host setting. Numeric values may be
// expressions.
func (h *Host) Set(key, value string) error {
	var err error
	switch h.settings.Kind(key) {
	case reflect.Invalid:
		err = fmt.Errorf("setting '%s' not found", key)
	case reflect.String:
		err = h.settings.Set(key, value)
	case reflect.Bool:
		var v bool
		if v, err = stringToBool(value); err == nil {
			err = h.settings.Set(key, v)
		}
	default:
		var v int
		if v, err = h.parseExpr(value); err == nil {
			err = h.settings.Set(key, v)
		}
	}

	h.onSettingsUpdate()
	return err
}

// AssembleFiles assembles source files and writes the output files,
// reporting progress and diagnostics to w.
func (h *Host) AssembleFiles(w io.Writer, filenames ...string) error {
	h.output = bufio.NewWriter(w)
	defer h.flush()
	return h.assemble(filenames)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) onSettingsUpdate() {
	h.exprParser.hexMode = h.settings.HexMode
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.displayCommands()
		return nil
	}

	s, err := cmds.Lookup(strings.Join(c.Args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	cm := s.Command.Data.(*command)
	h.printf("Syntax: %s\n\n", cm.usage)
	switch {
	case cm.description != "":
		h.printf("Description:\n%s\n\n", indentWrap(3, h.width, cm.description))
	case cm.brief != "":
		h.printf("Description:\n%s.\n\n", indentWrap(3, h.width, cm.brief))
	}
	return nil
}

func (h *Host) cmdAssemble(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}
	h.assemble(c.Args)
	return nil
}

func (h *Host) assemble(args []string) error {
	filenames := make([]string, len(args))
	for i, a := range args {
		filenames[i] = sourceFilename(a)
	}

	units, err := loadUnits(context.Background(), filenames)
	if err != nil {
		h.printf("Failed to read source: %v\n", err)
		return err
	}

	opts, err := h.settings.options(h.output)
	if err != nil {
		h.printf("%v\n", err)
		return err
	}

	prog, err := asm.Assemble(units, opts)
	if prog != nil {
		h.program = prog
	}
	h.code, h.sourceMap = nil, nil
	if err != nil {
		h.printf("Failed to assemble: %s\n", strings.Join(args, ", "))
		if prog != nil {
			prog.Diagnostics.WriteTo(h.output)
		} else {
			h.printf("%v\n", err)
		}
		h.flush()
		return err
	}
	prog.Diagnostics.WriteTo(h.output)

	binFilename := outputFilename(filenames[0], h.settings.OutputExt)
	if err := h.writeFile(binFilename, func(w io.Writer) error {
		_, err := prog.WriteTo(w)
		return err
	}); err != nil {
		return err
	}

	sm := prog.SourceMap()
	if err := h.writeFile(outputFilename(filenames[0], ".map"), func(w io.Writer) error {
		_, err := sm.WriteTo(w)
		return err
	}); err != nil {
		return err
	}

	if h.settings.Listing {
		if err := h.writeFile(outputFilename(filenames[0], ".lst"), prog.WriteListing); err != nil {
			return err
		}
	}

	h.code, h.sourceMap = prog.Code(), sm
	h.settings.NextList = uint32(prog.Origin)
	h.printf("Assembled '%s' to '%s' (%d bytes).\n",
		filepath.Base(filenames[0]), filepath.Base(binFilename), prog.Size())
	return nil
}

func (h *Host) writeFile(filename string, write func(w io.Writer) error) error {
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		h.printf("Failed to create '%s': %v\n", filepath.Base(filename), err)
		return err
	}
	defer file.Close()

	if err := write(file); err != nil {
		h.printf("Failed to write '%s': %v\n", filepath.Base(filename), err)
		return err
	}
	return nil
}

func (h *Host) cmdDiagnostics(c cmd.Selection) error {
	switch {
	case h.program == nil:
		h.println("Nothing has been assembled.")
	case len(h.program.Diagnostics) == 0:
		h.println("No diagnostics.")
	default:
		h.program.Diagnostics.WriteTo(h.output)
	}
	return nil
}

func (h *Host) cmdExecute(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}
	if h.depth >= maxScriptDepth {
		h.println("Scripts are nested too deeply.")
		return nil
	}

	file, err := os.Open(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	defer file.Close()

	input, output, interactive, lastCmd := h.input, h.output, h.interactive, h.lastCmd
	h.depth++
	err = h.run(scanner{bufio.NewScanner(file)}, output, false)
	h.depth--
	h.input, h.output, h.interactive, h.lastCmd = input, output, interactive, lastCmd

	if err != nil && err != io.EOF && err != errQuit {
		h.printf("%v\n", err)
	}
	return nil
}

func (h *Host) cmdList(c cmd.Selection) error {
	if h.sourceMap == nil || len(h.code) == 0 {
		h.println("No program has been assembled or loaded.")
		return nil
	}

	addr, lines := int(h.settings.NextList), h.settings.ListLines
	if len(c.Args) > 0 {
		v, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = v
	}
	if len(c.Args) > 1 {
		v, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = v
	}

	sm := h.sourceMap
	p, err := isa.ParseProfile(sm.Profile)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	t, err := isa.Get(p)
	if err != nil {
		return err
	}

	origin := sm.Origin
	if addr < origin || addr >= origin+len(h.code) {
		h.printf("Address $%s is outside the program.\n", addrString(p, addr))
		return nil
	}

	for n := 0; n < lines; n++ {
		line, next := disasm.Disassemble(t, h.code, origin, addr)
		if next == addr {
			break
		}
		if label, ok := sm.Label(addr); ok {
			h.printf("%s:\n", label)
		}
		code := codeString(h.code[addr-origin : next-origin])
		if file, row := sm.Search(addr); row > 0 {
			h.printf("%s-  %-11s  %-16s  ; %s L%d\n", addrString(p, addr), code, line, filepath.Base(file), row)
		} else {
			h.printf("%s-  %-11s  %s\n", addrString(p, addr), code, line)
		}
		addr = next
	}

	h.settings.NextList = uint32(addr)
	if h.lastCmd != nil {
		h.lastCmd.Args = nil
	}
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename = outputFilename(filename, h.settings.OutputExt)
	}
	h.load(filename)
	return nil
}

// Load a binary and the source map written beside it.
func (h *Host) load(filename string) error {
	code, err := os.ReadFile(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return err
	}

	mapFilename := outputFilename(filename, ".map")
	file, err := os.Open(mapFilename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(mapFilename), err)
		return err
	}
	defer file.Close()

	sm := &asm.SourceMap{}
	if _, err := sm.ReadFrom(file); err != nil {
		h.printf("Failed to read '%s': %v\n", filepath.Base(mapFilename), err)
		return err
	}
	if sm.Size != len(code) || sm.CRC != crc32.ChecksumIEEE(code) {
		h.printf("Failed to load '%s': %v.\n", filepath.Base(filename), errMapMismatch)
		return errMapMismatch
	}
	p, err := isa.ParseProfile(sm.Profile)
	if err != nil {
		h.printf("Failed to read '%s': %v\n", filepath.Base(mapFilename), err)
		return err
	}

	h.program, h.code, h.sourceMap = nil, code, sm
	h.settings.NextList = uint32(sm.Origin)
	h.printf("Loaded '%s' to $%s..$%s\n", filepath.Base(filename),
		addrString(p, sm.Origin), addrString(p, sm.Origin+len(code)-1))
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errQuit
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)

	case 1:
		h.displayHelpText(c)

	default:
		key, value := c.Args[0], strings.Join(c.Args[1:], " ")
		if err := h.Set(key, value); err != nil {
			h.printf("%v\n", err)
			return nil
		}
		name, _ := h.settings.Name(key)
		h.printf("%s updated.\n", name)
	}
	return nil
}

func (h *Host) cmdSymbols(c cmd.Selection) error {
	switch {
	case h.program != nil && len(h.program.Symbols) > 0:
		for _, sym := range h.program.Symbols.Sorted() {
			h.printf("    $%s  %-20s %s L%d\n", addrString(h.program.Profile, sym.Address), sym.Name, sym.Unit, sym.Row)
		}

	case h.program == nil && h.sourceMap != nil && len(h.sourceMap.Exports) > 0:
		p, _ := isa.ParseProfile(h.sourceMap.Profile)
		for _, e := range h.sourceMap.Exports {
			h.printf("    $%s  %s\n", addrString(p, e.Address), e.Label)
		}

	default:
		h.println("No labels defined.")
	}
	return nil
}

func (h *Host) displayHelpText(c cmd.Selection) {
	h.printf("Syntax: %s\n", c.Command.Data.(*command).usage)
}

func (h *Host) displayCommands() {
	h.println("Commands:")
	for _, c := range commands {
		if c.brief != "" {
			h.printf("    %-15s  %s\n", c.name, c.brief)
		}
	}
}

// Resolve an expression identifier to the address of an assembled label.
func (h *Host) resolveIdentifier(s string) (int64, error) {
	if h.program != nil {
		if addr, ok := h.program.Symbols.Lookup(s); ok {
			return int64(addr), nil
		}
	}
	return 0, fmt.Errorf("identifier '%s' not found", s)
}

func (h *Host) parseExpr(expr string) (int, error) {
	v, err := h.exprParser.Parse(expr, h)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xffffffff {
		return 0, fmt.Errorf("value %d out of range", v)
	}
	return int(v), nil
}
