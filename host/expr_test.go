// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"testing"
)

type testResolver map[string]int64

func (r testResolver) resolveIdentifier(s string) (int64, error) {
	if v, ok := r[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("identifier '%s' not found", s)
}

func TestExpressions(t *testing.T) {
	r := testResolver{"start": 0x8000, "table": 0x12345}

	tests := []struct {
		expr string
		v    int64
	}{
		{"1", 1},
		{"$ff", 255},
		{"0x10", 16},
		{"0b101", 5},
		{"%1010", 10},
		{"'A'", 65},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10-4-3", 3},
		{"100/10/5", 2},
		{"7%4", 3},
		{"1<<4|1", 17},
		{"$f0>>4", 15},
		{"$ff&~$0f", 0xf0},
		{"$0f^$ff", 0xf0},
		{"-5+10", 5},
		{"--5", 5},
		{"start+4", 0x8004},
		{"<table", 0x45},
		{">table", 0x23},
		{"^table", 0x01},
		{" start + $10 ", 0x8010},
	}

	p := newExprParser()
	for _, test := range tests {
		v, err := p.Parse(test.expr, r)
		if err != nil {
			t.Errorf("%q: unexpected error %v", test.expr, err)
			continue
		}
		if v != test.v {
			t.Errorf("%q: got %d, expected %d", test.expr, v, test.v)
		}
	}
}

func TestExpressionErrors(t *testing.T) {
	r := testResolver{}
	p := newExprParser()
	for _, expr := range []string{"", "$", "(1+2", "1+2)", "1+", "1 2", "'A", "missing", "4/0", "@"} {
		if v, err := p.Parse(expr, r); err == nil {
			t.Errorf("%q: expected error, got %d", expr, v)
		}
	}
}

func TestHexMode(t *testing.T) {
	p := newExprParser()
	p.hexMode = true
	v, err := p.Parse("10+ff", testResolver{})
	if err != nil || v != 0x10f {
		t.Errorf("got %d, %v", v, err)
	}
}
