// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strings"

	"github.com/beevik/asm65/isa"
)

func codeString(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

func addrString(p isa.Profile, addr int) string {
	if p == isa.W65816 {
		return fmt.Sprintf("%06X", addr)
	}
	return fmt.Sprintf("%04X", addr)
}

func stringToBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}

// Word-wrap text to a column width, indenting every line.
func indentWrap(indent, width int, s string) string {
	prefix := strings.Repeat(" ", indent)

	var lines []string
	line := prefix
	for _, word := range strings.Fields(s) {
		if len(line) > indent && len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = prefix
		}
		if len(line) > indent {
			line += " "
		}
		line += word
	}
	if len(line) > indent {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
