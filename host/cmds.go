// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

// A command describes one shell command and the handler that runs it.
type command struct {
	name        string
	brief       string
	description string
	usage       string
	handler     func(h *Host, c cmd.Selection) error
}

var (
	cmds     *cmd.Tree
	commands []*command
)

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "asm65"})
	add := func(c *command) {
		commands = append(commands, c)
		root.AddCommand(cmd.CommandDescriptor{
			Name:        c.name,
			Brief:       c.brief,
			Description: c.description,
			Usage:       c.usage,
			Data:        c,
		})
	}

	add(&command{
		name:        "help",
		description: "Display help for a command.",
		usage:       "help [<command>]",
		handler:     (*Host).cmdHelp,
	})
	add(&command{
		name:  "assemble",
		brief: "Assemble source files",
		description: "Run the assembler on one or more source files. Files" +
			" are assembled in the order given, except for files pulled" +
			" into another by an .include directive. On success the" +
			" binary and source map are written next to the first file," +
			" along with a listing when the Listing setting is true.",
		usage:   "assemble <filename> [<filename> ...]",
		handler: (*Host).cmdAssemble,
	})
	add(&command{
		name:  "diagnostics",
		brief: "Display diagnostics of the last assembly",
		description: "Display the errors and warnings produced by the most" +
			" recent assembly.",
		usage:   "diagnostics",
		handler: (*Host).cmdDiagnostics,
	})
	add(&command{
		name:  "execute",
		brief: "Execute a command script",
		description: "Load a script file from disk and execute the" +
			" commands it contains.",
		usage:   "execute <filename>",
		handler: (*Host).cmdExecute,
	})
	add(&command{
		name:  "list",
		brief: "Disassemble the assembled program",
		description: "Disassemble the most recently assembled program" +
			" starting at the requested address. The number of lines to" +
			" list may be specified as an option. If no address is" +
			" specified, the listing continues from where the last one" +
			" left off.",
		usage:   "list [<address>] [<lines>]",
		handler: (*Host).cmdList,
	})
	add(&command{
		name:  "load",
		brief: "Load an assembled binary",
		description: "Load a binary written by the assemble command along" +
			" with the source map beside it, so that it may be listed." +
			" If the filename has no extension, the OutputExt setting is" +
			" used.",
		usage:   "load <filename>",
		handler: (*Host).cmdLoad,
	})
	add(&command{
		name:        "quit",
		brief:       "Quit the program",
		description: "Quit the program.",
		usage:       "quit",
		handler:     (*Host).cmdQuit,
	})
	add(&command{
		name:  "set",
		brief: "Set a configuration variable",
		description: "Set the value of a configuration variable. To see the" +
			" current values of all variables, type set without any" +
			" arguments. Variable names may be abbreviated to any unique" +
			" prefix.",
		usage:   "set [<var> <value>]",
		handler: (*Host).cmdSet,
	})
	add(&command{
		name:  "symbols",
		brief: "Display labels of the last assembly",
		description: "Display every label defined by the most recent" +
			" assembly and its address.",
		usage:   "symbols",
		handler: (*Host).cmdSymbols,
	})

	root.AddShortcut("a", "assemble")
	root.AddShortcut("diag", "diagnostics")
	root.AddShortcut("l", "list")
	root.AddShortcut("q", "quit")
	root.AddShortcut("sym", "symbols")
	root.AddShortcut("?", "help")

	cmds = root
}
