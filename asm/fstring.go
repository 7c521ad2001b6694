// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// An fstring is a string that keeps track of its position within the
// source unit from which it was read.
type fstring struct {
	fileIndex int    // index of the unit in the assembly
	row       int    // 1-based line number of substring
	column    int    // 0-based column of start of substring
	str       string // the actual substring of interest
	full      string // the full line as originally read from the unit
}

func newFstring(fileIndex, row int, str string) fstring {
	return fstring{fileIndex, row, 0, str, str}
}

func (l fstring) String() string {
	return l.str
}

func (l fstring) advanceColumn(n int) int {
	c := l.column
	for i := 0; i < n; i++ {
		if l.str[i] == '\t' {
			c += 8 - (c % 8)
		} else {
			c++
		}
	}
	return c
}

func (l fstring) consume(n int) fstring {
	col := l.advanceColumn(n)
	return fstring{l.fileIndex, l.row, col, l.str[n:], l.full}
}

func (l fstring) trunc(n int) fstring {
	return fstring{l.fileIndex, l.row, l.column, l.str[:n], l.full}
}

// rewrite returns a copy of the fstring holding new text at the same
// position.
func (l fstring) rewrite(s string) fstring {
	return fstring{l.fileIndex, l.row, l.column, s, l.full}
}

func (l fstring) isEmpty() bool {
	return len(l.str) == 0
}

func (l fstring) startsWith(fn func(c byte) bool) bool {
	return len(l.str) > 0 && fn(l.str[0])
}

func (l fstring) startsWithChar(c byte) bool {
	return len(l.str) > 0 && l.str[0] == c
}

// startsWithFold returns true if the string begins with s, ignoring case.
func (l fstring) startsWithFold(s string) bool {
	return len(l.str) >= len(s) && strings.EqualFold(l.str[:len(s)], s)
}

func (l fstring) consumeWhitespace() fstring {
	return l.consume(l.scanWhile(whitespace))
}

// trim strips leading and trailing whitespace.
func (l fstring) trim() fstring {
	l = l.consumeWhitespace()
	return l.trunc(len(strings.TrimRight(l.str, " \t")))
}

func (l fstring) scanWhile(fn func(c byte) bool) int {
	i := 0
	for ; i < len(l.str) && fn(l.str[i]); i++ {
	}
	return i
}

func (l fstring) scanUntil(fn func(c byte) bool) int {
	i := 0
	for ; i < len(l.str) && !fn(l.str[i]); i++ {
	}
	return i
}

func (l fstring) consumeWhile(fn func(c byte) bool) (consumed, remain fstring) {
	i := l.scanWhile(fn)
	consumed, remain = l.trunc(i), l.consume(i)
	return
}

func (l fstring) consumeUntil(fn func(c byte) bool) (consumed, remain fstring) {
	i := l.scanUntil(fn)
	consumed, remain = l.trunc(i), l.consume(i)
	return
}

func (l fstring) consumeUntilChar(c byte) (consumed, remain fstring) {
	return l.consumeUntil(func(b byte) bool { return b == c })
}

// clean strips the trailing comment and surrounding whitespace from a
// freshly read line.
func (l fstring) clean() fstring {
	l = l.consumeWhitespace()
	lastNonWS := 0
	for i := 0; i < len(l.str); i++ {
		if comment(l.str[i]) {
			break
		}
		if !whitespace(l.str[i]) {
			lastNonWS = i + 1
		}
	}
	return l.trunc(lastNonWS)
}

// replaceToken replaces every whole-token occurrence of key with repl. An
// occurrence is whole when it is not bordered by identifier characters.
// The name of a directive line is never rewritten. It returns the
// rewritten string and the number of replacements made.
func (l fstring) replaceToken(key, repl string) (fstring, int) {
	s := l.str
	prefix := ""
	if l.startsWithChar('.') {
		n := l.scanUntil(whitespace)
		prefix, s = s[:n], s[n:]
	}

	var b strings.Builder
	count, start := 0, 0
	for pos := 0; ; {
		i := strings.Index(s[pos:], key)
		if i < 0 {
			break
		}
		i += pos
		j := i + len(key)
		before := i > 0 && identifierChar(s[i-1])
		after := j < len(s) && identifierChar(s[j])
		if before || after {
			pos = i + 1
			continue
		}
		b.WriteString(s[start:i])
		b.WriteString(repl)
		start, pos = j, j
		count++
	}
	if count == 0 {
		return l, 0
	}
	b.WriteString(s[start:])
	return l.rewrite(prefix + b.String()), count
}

//
// character helper functions
//

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

func alpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func decimal(c byte) bool {
	return (c >= '0' && c <= '9')
}

func comment(c byte) bool {
	return c == ';'
}

func hexadecimal(c byte) bool {
	return decimal(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func identifierStartChar(c byte) bool {
	return alpha(c) || c == '_'
}

func identifierChar(c byte) bool {
	return alpha(c) || decimal(c) || c == '_'
}
