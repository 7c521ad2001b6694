// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package host

import (
	"os"

	"github.com/beevik/term"
)

// prepareConsole enables virtual terminal processing on the Windows console
// so the line editor's escape sequences render.
func prepareConsole(out *os.File) func() {
	fd := int(out.Fd())
	state, err := term.MakeRawOutput(fd)
	if err != nil {
		return func() {}
	}
	return func() { term.Restore(fd, state) }
}
