// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "sort"

// A Symbol is a label defined in the source.
type Symbol struct {
	Name    string // label name, case-sensitive
	Address int    // resolved address, or -1 before resolution
	Unit    string // unit defining the label
	Row     int    // line defining the label
}

// A SymbolTable maps label names to symbols.
type SymbolTable map[string]*Symbol

// Lookup returns the address of a resolved label.
func (s SymbolTable) Lookup(name string) (addr int, ok bool) {
	sym, ok := s[name]
	if !ok || sym.Address < 0 {
		return 0, false
	}
	return sym.Address, true
}

// Sorted returns all symbols ordered by address and then by name.
func (s SymbolTable) Sorted() []*Symbol {
	syms := make([]*Symbol, 0, len(s))
	for _, sym := range s {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].Address != syms[j].Address {
			return syms[i].Address < syms[j].Address
		}
		return syms[i].Name < syms[j].Name
	})
	return syms
}
