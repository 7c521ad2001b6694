// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows

package host

import "os"

func prepareConsole(out *os.File) func() {
	return func() {}
}
