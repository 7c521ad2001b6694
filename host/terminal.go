// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RunTerminal runs commands interactively on a terminal with line editing
// and command history. It returns when the user quits or enters ctrl-D on
// an empty line.
func (h *Host) RunTerminal(in, out *os.File) error {
	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, state)

	restoreConsole := prepareConsole(out)
	defer restoreConsole()

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "* ")

	if width, height, err := term.GetSize(int(out.Fd())); err == nil {
		t.SetSize(width, height)
		h.width = width
	}

	err = h.run(t, t, false)
	if err == io.EOF || err == errQuit {
		return nil
	}
	return err
}
