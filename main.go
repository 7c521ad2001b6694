// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/beevik/asm65/host"
)

var (
	assemble bool
	profile  string
	origin   string
	verbose  bool
	listing  bool
)

func init() {
	flag.BoolVar(&assemble, "a", false, "assemble the source files named by the arguments and exit")
	flag.StringVar(&profile, "p", "", "processor profile (6502, 65C02, 65816, or an alias such as nes or snes)")
	flag.StringVar(&origin, "o", "", "origin address of the assembled code (default $8000)")
	flag.BoolVar(&verbose, "v", false, "trace each assembly stage")
	flag.BoolVar(&listing, "l", false, "write a listing file beside the binary")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: asm65 [script] ..\n       asm65 -a [options] file.asm ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	h := host.New()
	configure(h)

	// Do command-line assemble if requested.
	if assemble {
		if flag.NArg() == 0 {
			flag.CommandLine.Usage()
			os.Exit(2)
		}
		if err := h.AssembleFiles(os.Stdout, flag.Args()...); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Run commands interactively.
	if host.IsTerminal(os.Stdin) {
		if err := h.RunTerminal(os.Stdin, os.Stdout); err != nil {
			exitOnError(err)
		}
		return
	}
	h.RunCommands(os.Stdin, os.Stdout, false)
}

func configure(h *host.Host) {
	settings := []struct {
		key, value string
		set        bool
	}{
		{"profile", profile, profile != ""},
		{"origin", origin, origin != ""},
		{"verbose", "true", verbose},
		{"listing", "true", listing},
	}
	for _, s := range settings {
		if !s.set {
			continue
		}
		if err := h.Set(s.key, s.value); err != nil {
			exitOnError(fmt.Errorf("-%c: %w", s.key[0], err))
		}
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
