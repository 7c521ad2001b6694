// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"strconv"
)

var errExprSyntax = errors.New("expression syntax error")

// Numeric command arguments are expressions such as "$8000", "start+4"
// or "(table+$10)&$FFFF". Identifiers are resolved against the labels of
// the most recent assembly.

type exprKind byte

const (
	exprNone exprKind = iota
	exprValue
	exprIdent
	exprOp
	exprLParen
	exprRParen
)

type exprToken struct {
	kind  exprKind
	value int64
	ident string
	op    *operator
}

type operator struct {
	symbol     string
	precedence byte
	unary      bool
	eval       func(a, b int64) int64
}

var (
	opMul    = &operator{"*", 6, false, func(a, b int64) int64 { return a * b }}
	opDiv    = &operator{"/", 6, false, func(a, b int64) int64 { return a / b }}
	opMod    = &operator{"%", 6, false, func(a, b int64) int64 { return a % b }}
	opAdd    = &operator{"+", 5, false, func(a, b int64) int64 { return a + b }}
	opSub    = &operator{"-", 5, false, func(a, b int64) int64 { return a - b }}
	opShl    = &operator{"<<", 4, false, func(a, b int64) int64 { return a << uint(b) }}
	opShr    = &operator{">>", 4, false, func(a, b int64) int64 { return a >> uint(b) }}
	opAnd    = &operator{"&", 3, false, func(a, b int64) int64 { return a & b }}
	opXor    = &operator{"^", 2, false, func(a, b int64) int64 { return a ^ b }}
	opOr     = &operator{"|", 1, false, func(a, b int64) int64 { return a | b }}
	opNot    = &operator{"~", 7, true, func(a, _ int64) int64 { return ^a }}
	opNeg    = &operator{"-", 7, true, func(a, _ int64) int64 { return -a }}
	opPlus   = &operator{"+", 7, true, func(a, _ int64) int64 { return a }}
	opLowB   = &operator{"<", 7, true, func(a, _ int64) int64 { return a & 0xff }}
	opHighB  = &operator{">", 7, true, func(a, _ int64) int64 { return (a >> 8) & 0xff }}
	opBankB  = &operator{"^", 7, true, func(a, _ int64) int64 { return (a >> 16) & 0xff }}
	binaryOp = map[byte]*operator{
		'*': opMul, '/': opDiv, '%': opMod, '+': opAdd, '-': opSub,
		'&': opAnd, '^': opXor, '|': opOr,
	}
	unaryOp = map[byte]*operator{
		'~': opNot, '-': opNeg, '+': opPlus, '<': opLowB, '>': opHighB, '^': opBankB,
	}
)

type resolver interface {
	resolveIdentifier(s string) (int64, error)
}

// An exprParser evaluates expressions with the shunting-yard algorithm.
type exprParser struct {
	output    []exprToken
	operators []exprToken
	prev      exprKind
	hexMode   bool
}

func newExprParser() *exprParser {
	return &exprParser{}
}

func (p *exprParser) reset() {
	p.output = p.output[:0]
	p.operators = p.operators[:0]
	p.prev = exprNone
}

// Parse evaluates an expression, looking up identifiers with r.
func (p *exprParser) Parse(expr string, r resolver) (int64, error) {
	defer p.reset()

	s := expr
	for {
		tok, remain, err := p.next(s)
		if err != nil {
			return 0, err
		}
		if tok.kind == exprNone {
			break
		}
		s = remain

		switch tok.kind {
		case exprValue:
			p.output = append(p.output, tok)

		case exprIdent:
			v, err := r.resolveIdentifier(tok.ident)
			if err != nil {
				return 0, err
			}
			p.output = append(p.output, exprToken{kind: exprValue, value: v})

		case exprLParen:
			p.operators = append(p.operators, tok)

		case exprRParen:
			found := false
			for len(p.operators) > 0 {
				top := p.popOperator()
				if top.kind == exprLParen {
					found = true
					break
				}
				p.output = append(p.output, top)
			}
			if !found {
				return 0, errExprSyntax
			}

		case exprOp:
			for p.collapsible(tok.op) {
				p.output = append(p.output, p.popOperator())
			}
			p.operators = append(p.operators, tok)
		}
		p.prev = tok.kind
	}

	for len(p.operators) > 0 {
		top := p.popOperator()
		if top.kind == exprLParen {
			return 0, errExprSyntax
		}
		p.output = append(p.output, top)
	}

	v, err := p.eval()
	if err != nil {
		return 0, err
	}
	if len(p.output) != 0 {
		return 0, errExprSyntax
	}
	return v, nil
}

// An operator is unary when it follows nothing, another operator or a
// left parenthesis.
func (p *exprParser) expectOperand() bool {
	return p.prev == exprNone || p.prev == exprOp || p.prev == exprLParen
}

func (p *exprParser) next(s string) (tok exprToken, remain string, err error) {
	for len(s) > 0 && whitespace(s[0]) {
		s = s[1:]
	}
	if s == "" {
		return exprToken{}, s, nil
	}

	c := s[0]
	switch {
	case c == '(':
		return exprToken{kind: exprLParen}, s[1:], nil
	case c == ')':
		return exprToken{kind: exprRParen}, s[1:], nil
	case c == '\'':
		if len(s) < 3 || s[2] != '\'' {
			return exprToken{}, s, errExprSyntax
		}
		return exprToken{kind: exprValue, value: int64(s[1])}, s[3:], nil
	case c == '$' || decimal(c) || (c == '%' && p.expectOperand()):
		return p.number(s)
	case p.hexMode && hexadecimal(c):
		return p.number(s)
	case identifierStart(c):
		n := scanWhile(s, identifierChar)
		return exprToken{kind: exprIdent, ident: s[:n]}, s[n:], nil
	}

	if p.expectOperand() {
		if op, ok := unaryOp[c]; ok {
			return exprToken{kind: exprOp, op: op}, s[1:], nil
		}
		return exprToken{}, s, errExprSyntax
	}
	if (c == '<' || c == '>') && len(s) > 1 && s[1] == c {
		op := opShl
		if c == '>' {
			op = opShr
		}
		return exprToken{kind: exprOp, op: op}, s[2:], nil
	}
	if op, ok := binaryOp[c]; ok {
		return exprToken{kind: exprOp, op: op}, s[1:], nil
	}
	return exprToken{}, s, errExprSyntax
}

func (p *exprParser) number(s string) (tok exprToken, remain string, err error) {
	base, fn, num := 10, decimal, s
	if p.hexMode {
		base, fn = 16, hexadecimal
	}

	switch {
	case num[0] == '$':
		base, fn, num = 16, hexadecimal, num[1:]
	case num[0] == '%':
		base, fn, num = 2, binary, num[1:]
	case len(num) > 2 && num[0] == '0' && (num[1] == 'x' || num[1] == 'b' || num[1] == 'd'):
		switch num[1] {
		case 'x':
			base, fn = 16, hexadecimal
		case 'b':
			base, fn = 2, binary
		case 'd':
			base, fn = 10, decimal
		}
		num = num[2:]
	}

	n := scanWhile(num, fn)
	if n == 0 {
		return exprToken{}, s, errExprSyntax
	}
	v, err := strconv.ParseInt(num[:n], base, 64)
	if err != nil {
		return exprToken{}, s, errExprSyntax
	}
	return exprToken{kind: exprValue, value: v}, num[n:], nil
}

func (p *exprParser) popOperator() exprToken {
	top := p.operators[len(p.operators)-1]
	p.operators = p.operators[:len(p.operators)-1]
	return top
}

// Binary operators are left-associative; unary operators bind right.
func (p *exprParser) collapsible(op *operator) bool {
	if len(p.operators) == 0 || op.unary {
		return false
	}
	top := p.operators[len(p.operators)-1]
	return top.kind == exprOp && top.op.precedence >= op.precedence
}

func (p *exprParser) eval() (int64, error) {
	if len(p.output) == 0 {
		return 0, errExprSyntax
	}
	tok := p.output[len(p.output)-1]
	p.output = p.output[:len(p.output)-1]

	switch tok.kind {
	case exprValue:
		return tok.value, nil
	case exprOp:
	default:
		return 0, errExprSyntax
	}

	if tok.op.unary {
		a, err := p.eval()
		if err != nil {
			return 0, err
		}
		return tok.op.eval(a, 0), nil
	}

	b, err := p.eval()
	if err != nil {
		return 0, err
	}
	a, err := p.eval()
	if err != nil {
		return 0, err
	}
	if b == 0 && (tok.op == opDiv || tok.op == opMod) {
		return 0, fmt.Errorf("division by zero")
	}
	return tok.op.eval(a, b), nil
}

func scanWhile(s string, fn func(c byte) bool) int {
	i := 0
	for ; i < len(s) && fn(s[i]); i++ {
	}
	return i
}

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

func decimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexadecimal(c byte) bool {
	return decimal(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func binary(c byte) bool {
	return c == '0' || c == '1'
}

func identifierStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func identifierChar(c byte) bool {
	return identifierStart(c) || decimal(c)
}
