// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"errors"
	"hash/crc32"
	"io"
	"strings"
	"testing"

	"github.com/beevik/asm65/isa"
)

func assemble(p isa.Profile, code string) (*Program, error) {
	units := []SourceUnit{NewUnit("test", code)}
	return Assemble(units, Options{Profile: p, Origin: 0x1000, Out: io.Discard})
}

func codeHex(code []byte) string {
	b := make([]byte, len(code)*2)
	for i, j := 0, 0; i < len(code); i, j = i+1, j+2 {
		v := code[i]
		b[j+0] = hex[v>>4]
		b[j+1] = hex[v&0x0f]
	}
	return string(b)
}

func checkASM(t *testing.T, asm string, expected string) {
	t.Helper()
	checkASMProfile(t, isa.NMOS, asm, expected)
}

func checkASMProfile(t *testing.T, p isa.Profile, asm string, expected string) {
	t.Helper()
	prog, err := assemble(p, asm)
	if err != nil {
		t.Error(err)
		for _, d := range prog.Diagnostics {
			t.Error(d)
		}
		return
	}

	s := codeHex(prog.Code())
	if s != expected {
		t.Error("code doesn't match expected")
		t.Errorf("got: %s\n", s)
		t.Errorf("exp: %s\n", expected)
	}
}

func checkASMError(t *testing.T, p isa.Profile, asm string, kind Kind) {
	t.Helper()
	prog, err := assemble(p, asm)
	if !errors.Is(err, ErrAssembly) {
		t.Errorf("Expected assembly error on %q, got %v\n", asm, err)
		return
	}
	if len(prog.Chunks) != 0 || len(prog.Code()) != 0 {
		t.Errorf("Failed assembly of %q produced code\n", asm)
	}
	if len(prog.Diagnostics.OfKind(kind)) == 0 {
		t.Errorf("Expected %v diagnostic on %q, got %v\n", kind, asm, prog.Diagnostics)
	}
}

func TestAddressingIMM(t *testing.T) {
	asm := `
	LDA #$20
	LDX #$20
	LDY #$20
	ADC #$20
	SBC #$20
	CMP #$20
	CPX #$20
	CPY #$20
	AND #$20
	ORA #$20
	EOR #$20`

	checkASM(t, asm, "A920A220A0206920E920C920E020C020292009204920")
}

func TestAddressingABS(t *testing.T) {
	asm := `
	LDA $2000
	LDX $2000
	LDY $2000
	STA $2000
	STX $2000
	STY $2000
	ADC $2000
	SBC $2000
	CMP $2000
	CPX $2000
	CPY $2000
	BIT $2000
	AND $2000
	ORA $2000
	EOR $2000
	INC $2000
	DEC $2000
	JMP $2000
	JSR $2000
	ASL $2000
	LSR $2000
	ROL $2000
	ROR $2000
	LDA $0020`

	checkASM(t, asm, "AD0020AE0020AC00208D00208E00208C00206D0020ED0020CD0020"+
		"EC0020CC00202C00202D00200D00204D0020EE0020CE00204C00202000200E0020"+
		"4E00202E00206E0020AD2000")
}

func TestAddressingABX(t *testing.T) {
	asm := `
	LDA $2000,X
	LDY $2000,X
	STA $2000,X
	ADC $2000,X
	SBC $2000,X
	CMP $2000,X
	AND $2000,X
	ORA $2000,X
	EOR $2000,X
	INC $2000,X
	DEC $2000,X
	ASL $2000,X
	LSR $2000,X
	ROL $2000,X
	ROR $2000,X`

	checkASM(t, asm, "BD0020BC00209D00207D0020FD0020DD00203D00201D00205D0020"+
		"FE0020DE00201E00205E00203E00207E0020")
}

func TestAddressingABY(t *testing.T) {
	asm := `
	LDA $2000,Y
	LDX $2000,Y
	STA $2000,Y
	ADC $2000,Y
	SBC $2000,Y
	CMP $2000,Y
	AND $2000,Y
	ORA $2000,Y
	EOR $2000,Y`

	checkASM(t, asm, "B90020BE0020990020790020F90020D90020390020190020590020")
}

func TestAddressingZPG(t *testing.T) {
	asm := `
	LDA $20
	LDX $20
	LDY $20
	STA $20
	STX $20
	STY $20
	ADC $20
	SBC $20
	CMP $20
	CPX $20
	CPY $20
	BIT $20
	AND $20
	ORA $20
	EOR $20
	INC $20
	DEC $20
	ASL $20
	LSR $20
	ROL $20
	ROR $20`

	checkASM(t, asm, "A520A620A4208520862084206520E520C520E420C42024202520"+
		"05204520E620C6200620462026206620")
}

func TestAddressingZPXY(t *testing.T) {
	asm := `
	LDA $20,X
	LDX $20,Y
	STX $20,Y
	STY $20,X`

	checkASM(t, asm, "B520B62096209420")
}

func TestAddressingIND(t *testing.T) {
	asm := `
	JMP ($20)
	JMP ($2000)
	LDA ($20,X)
	STA ($20),Y
	lda ($20),y`

	checkASM(t, asm, "6C20006C0020A1209120B120")
}

func TestAddressingACC(t *testing.T) {
	asm := `
	ASL A
	LSR a
	ROL
	ROR`

	checkASM(t, asm, "0A4A2A6A")
}

func TestLiteralPromotion(t *testing.T) {
	// A short literal takes the narrowest mode at least as wide as its
	// digits, promoting when the narrow mode doesn't exist.
	asm := `
	JMP $10
	JSR $0010
	LDA #$0005
	LDX $0010,Y`

	checkASM(t, asm, "4C1000201000A905BE1000")
}

func TestLabels(t *testing.T) {
	asm := `
start:
	LDX #$05
loop:
	DEX
	BNE loop
	JMP start
	RTS`

	checkASM(t, asm, "A205CAD0FD4C001060")
}

func TestForwardBranch(t *testing.T) {
	asm := `
	BEQ done   ; skip the NOP
	NOP
done:
	RTS`

	checkASM(t, asm, "F001EA60")
}

func TestBranchRange(t *testing.T) {
	fwd := func(n int) string {
		return "\tBNE target\n" + strings.Repeat("\tNOP\n", n) + "target:\n\tRTS\n"
	}
	back := func(n int) string {
		return "target:\n" + strings.Repeat("\tNOP\n", n) + "\tBNE target\n"
	}

	checkASM(t, fwd(127), "D07F"+strings.Repeat("EA", 127)+"60")
	checkASMError(t, isa.NMOS, fwd(128), BranchOutOfRange)

	checkASM(t, back(126), strings.Repeat("EA", 126)+"D080")
	checkASMError(t, isa.NMOS, back(127), BranchOutOfRange)
}

func TestIndirectLabelOverflow(t *testing.T) {
	asm := `
ptr:
	LDA (ptr),Y`

	checkASMError(t, isa.NMOS, asm, OperandOverflow)
	checkASMError(t, isa.NMOS, "\tLDA $123456", OperandOverflow)
}

func TestUndefinedSymbol(t *testing.T) {
	checkASMError(t, isa.NMOS, "\tJMP nowhere", UndefinedSymbol)
	checkASMError(t, isa.NMOS, "\tBNE nowhere", UndefinedSymbol)
}

func TestDuplicateSymbol(t *testing.T) {
	asm := `
here:
	NOP
here:
	RTS`

	checkASMError(t, isa.NMOS, asm, DuplicateSymbol)
}

func TestSyntaxErrorsCollected(t *testing.T) {
	asm := `
	LDA #$
	NOP
	!!!
	FOOBAR $10
	RTS`

	prog, err := assemble(isa.NMOS, asm)
	if !errors.Is(err, ErrAssembly) {
		t.Fatalf("expected ErrAssembly, got %v", err)
	}
	if n := len(prog.Diagnostics.OfKind(SyntaxError)); n != 3 {
		t.Errorf("got %d syntax errors, expected 3: %v", n, prog.Diagnostics)
	}
	if len(prog.Code()) != 0 {
		t.Error("failed assembly produced code")
	}

	rows := []int{2, 4, 5}
	for i, d := range prog.Diagnostics {
		if d.Unit != "test" || d.Line != rows[i] {
			t.Errorf("diagnostic %d at %s L%d, expected test L%d", i, d.Unit, d.Line, rows[i])
		}
	}
}

func TestErrorsFromEveryStage(t *testing.T) {
	tests := []struct {
		asm   string
		kinds map[Kind]int
	}{
		{"\t!!!\n\tJMP nowhere", map[Kind]int{SyntaxError: 1, UndefinedSymbol: 1}},
		{"\tBEQ nowhere\nptr:\n\tLDA (ptr),Y", map[Kind]int{UndefinedSymbol: 1, OperandOverflow: 1}},
		{
			"\tLDA #$\n\tBNE far\n" + strings.Repeat("\tNOP\n", 130) + "far:\n\tJMP nowhere\n\tSTZ $10",
			map[Kind]int{SyntaxError: 1, BranchOutOfRange: 1, UndefinedSymbol: 1, UnsupportedMode: 1},
		},
	}

	for _, test := range tests {
		prog, err := assemble(isa.NMOS, test.asm)
		if !errors.Is(err, ErrAssembly) {
			t.Errorf("expected ErrAssembly, got %v", err)
			continue
		}
		if len(prog.Code()) != 0 {
			t.Error("failed assembly produced code")
		}

		total := 0
		for kind, n := range test.kinds {
			if got := len(prog.Diagnostics.OfKind(kind)); got != n {
				t.Errorf("got %d %v diagnostics, expected %d: %v", got, kind, n, prog.Diagnostics)
			}
			total += n
		}
		if len(prog.Diagnostics) != total {
			t.Errorf("got %d diagnostics, expected %d: %v", len(prog.Diagnostics), total, prog.Diagnostics)
		}
	}
}

var asm65c02 = `	PHX
	PHY
	PLX
	PLY
	BRA $1000
	STZ $01
	STZ $1234
	STZ $0001
	STZ $01,X
	STZ $1234,X
	INC
	DEC
	JMP ($1234,X)
	BIT #$12
	BIT $12,X
	BIT $1234,X
	TRB $01
	TRB $1234
	TSB $01
	TSB $1234
	ADC ($01)
	SBC ($01)
	CMP ($01)
	AND ($01)
	ORA ($01)
	EOR ($01)
	LDA ($01)
	STA ($01)`

func Test65c02(t *testing.T) {
	checkASMProfile(t, isa.CMOS, asm65c02, "DA5AFA7A80FA64019C34129C010074019E3412"+
		"1A3A7C3412891234123C341214011C341204010C34127201F201D201320112015201B2019201")
}

func Test65c02FailOn6502(t *testing.T) {
	for _, line := range strings.Split(asm65c02, "\n") {
		checkASMError(t, isa.NMOS, line, UnsupportedMode)
	}
}

func TestRockwellBitInstructions(t *testing.T) {
	asm := `
loop:
	BBR0 $12,loop
	RMB3 $12
	SMB7 $34
	BBS7 $34,done
done:
	RTS`

	checkASMProfile(t, isa.CMOS, asm, "0F12FD3712F734FF340060")
	checkASMError(t, isa.W65816, "\tRMB3 $12", UnsupportedMode)
}

func Test65816(t *testing.T) {
	asm := `
	CLC
	XCE
	REP #$30
	LDA #$1234
	LDX #$00FF
	SEP #$20
	LDA #$12
	JSL $123456
	LDA $123456,X
	STA $7E0000
	LDA [$10]
	LDA [$10],Y
	LDA $03,S
	LDA ($03,S),Y
	MVN $01,$02
	PEA $1234
	RTL`

	checkASMProfile(t, isa.W65816, asm, "18FBC230A93412A2FF00E220A912"+
		"22563412BF5634128F00007EA710B710A303B303540201F434126B")
}

func assembleAt(p isa.Profile, origin int, code string) (*Program, error) {
	units := []SourceUnit{NewUnit("test", code)}
	return Assemble(units, Options{Profile: p, Origin: origin, Out: io.Discard})
}

func checkCodeAt(t *testing.T, p isa.Profile, origin int, asm, expected string) {
	t.Helper()
	prog, err := assembleAt(p, origin, asm)
	if err != nil {
		t.Fatalf("%v: %v", err, prog.Diagnostics)
	}
	if s := codeHex(prog.Code()); s != expected {
		t.Errorf("got: %s\nexp: %s", s, expected)
	}
}

func TestRelaxSameBank(t *testing.T) {
	asm := `
start:
	JMP start
	LDA data
	BRA start
data:
	RTS`

	checkCodeAt(t, isa.W65816, 0x8000, asm, "4C0080AD088080F860")
}

func TestRelaxLongBranch(t *testing.T) {
	asm := "\tBRA far\n" + strings.Repeat("\tNOP\n", 200) + "far:\n\tRTS\n"
	checkCodeAt(t, isa.W65816, 0x8000, asm, "82C800"+strings.Repeat("EA", 200)+"60")

	// The 65C02 has no long branch.
	checkASMError(t, isa.CMOS, asm, BranchOutOfRange)
}

func TestRelaxAcrossBank(t *testing.T) {
	asm := "\tLDA data\n" + strings.Repeat("\tNOP\n", 20) + "data:\n\tRTS\n"
	checkCodeAt(t, isa.W65816, 0xfff0, asm, "AF080001"+strings.Repeat("EA", 20)+"60")
}

func TestZeroPageLabels(t *testing.T) {
	checkCodeAt(t, isa.NMOS, 0, "zp:\n\tNOP\n\tLDA zp\n\tLDA zp,X", "EAA500B500")
	checkCodeAt(t, isa.NMOS, 0, "\tLDA zp\n\tRTS\nzp:\n\tNOP", "A50360EA")
	checkCodeAt(t, isa.W65816, 0, "zp:\n\tNOP\n\tLDA zp\n\tLDX zp,Y", "EAA500B600")

	// A label just past the zero page keeps the absolute form.
	checkCodeAt(t, isa.NMOS, 0xfd, "\tLDA data\n\tRTS\ndata:\n\tNOP", "AD010160EA")
}

func TestMultipleUnits(t *testing.T) {
	units := []SourceUnit{
		NewUnit("main", "\tJSR sub\n\tRTS"),
		NewUnit("sub", "sub:\n\tNOP\n\tRTS"),
	}
	prog, err := Assemble(units, Options{Profile: isa.NMOS, Origin: 0x0600, Out: io.Discard})
	if err != nil {
		t.Fatal(err)
	}
	if s := codeHex(prog.Code()); s != "20040660EA60" {
		t.Errorf("got %s", s)
	}
	if addr, ok := prog.Symbols.Lookup("sub"); !ok || addr != 0x0604 {
		t.Errorf("sub at $%04X, expected $0604", addr)
	}
}

func TestDiagnosticAttribution(t *testing.T) {
	units := []SourceUnit{
		NewUnit("main", "\tNOP\n.include lib"),
		NewUnit("lib", "\tNOP\n\tJMP nowhere"),
	}
	prog, err := Assemble(units, Options{Profile: isa.NMOS, Origin: 0x1000, Out: io.Discard})
	if !errors.Is(err, ErrAssembly) {
		t.Fatalf("expected ErrAssembly, got %v", err)
	}
	d := prog.Diagnostics.OfKind(UndefinedSymbol)
	if len(d) != 1 {
		t.Fatalf("expected one UndefinedSymbol, got %v", prog.Diagnostics)
	}
	if got := d[0].String(); got != "lib L2: undefined label 'nowhere'" {
		t.Errorf("got %q", got)
	}
}

func TestDeterminism(t *testing.T) {
	asm := "\tBRA far\n" + strings.Repeat("\tLDA far\n", 100) + "far:\n\tRTS\n"
	a, err1 := assembleAt(isa.W65816, 0x8000, asm)
	b, err2 := assembleAt(isa.W65816, 0x8000, asm)
	if err1 != nil || err2 != nil {
		t.Fatal(err1, err2)
	}
	if !bytes.Equal(a.Code(), b.Code()) {
		t.Error("repeated assembly produced different code")
	}
}

func TestOrigin(t *testing.T) {
	_, err := assembleAt(isa.NMOS, 0x10000, "\tNOP")
	if !errors.Is(err, ErrOrigin) {
		t.Errorf("expected ErrOrigin, got %v", err)
	}

	_, err = assembleAt(isa.W65816, 0x10000, "\tNOP")
	if err != nil {
		t.Errorf("65816 origin in bank 1 rejected: %v", err)
	}
}

func TestAddressSpaceOverflow(t *testing.T) {
	prog, err := assembleAt(isa.NMOS, 0xfffe, "\tNOP\n\tJMP $1000")
	if !errors.Is(err, ErrAssembly) {
		t.Fatalf("expected ErrAssembly, got %v", err)
	}
	if len(prog.Diagnostics.OfKind(OperandOverflow)) != 1 {
		t.Errorf("expected OperandOverflow, got %v", prog.Diagnostics)
	}
}

func TestSourceMap(t *testing.T) {
	asm := `
start:
	LDA #$01
	STA $0200
	RTS`

	prog, err := assemble(isa.NMOS, asm)
	if err != nil {
		t.Fatal(err)
	}

	sm := prog.SourceMap()
	if sm.Origin != 0x1000 || sm.Size != 6 {
		t.Errorf("origin=$%X size=%d", sm.Origin, sm.Size)
	}
	if sm.CRC != crc32.ChecksumIEEE(prog.Code()) {
		t.Error("source map CRC mismatch")
	}
	if file, line := sm.Search(0x1002); file != "test" || line != 4 {
		t.Errorf("Search($1002) = %s L%d, expected test L4", file, line)
	}
	if _, line := sm.Search(0x1001); line != -1 {
		t.Error("Search found a mapping for an operand byte")
	}
	if label, ok := sm.Label(0x1000); !ok || label != "start" {
		t.Errorf("Label($1000) = %q", label)
	}

	var buf bytes.Buffer
	if _, err := sm.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	var sm2 SourceMap
	if _, err := sm2.ReadFrom(&buf); err != nil {
		t.Fatal(err)
	}
	if sm2.CRC != sm.CRC || len(sm2.Lines) != len(sm.Lines) || sm2.Profile != "6502" {
		t.Error("source map did not survive a write and read")
	}
}

func TestListing(t *testing.T) {
	prog, err := assemble(isa.NMOS, "loop:\n\tLDA $10,X\n\tBNE loop")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := prog.WriteListing(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"1000  ", "1000  B5 10        4    \tLDA $10,X", "1002  D0 FC        2+"} {
		if !strings.Contains(out, s) {
			t.Errorf("listing missing %q:\n%s", s, out)
		}
	}
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	units := []SourceUnit{NewUnit("test", "\tLDA #$01\n\tBNE nowhere")}
	_, err := Assemble(units, Options{Profile: isa.NMOS, Verbose: true, Out: &buf})
	if !errors.Is(err, ErrAssembly) {
		t.Fatalf("expected ErrAssembly, got %v", err)
	}
	for _, s := range []string{"-- Preprocessing --", "-- Resolving addresses --", "undefined label 'nowhere'"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("verbose output missing %q", s)
		}
	}
}

func TestEncode(t *testing.T) {
	tbl, _ := isa.Get(isa.NMOS)
	r := &ResolvedLine{
		Line: Line{
			Unit:     "unit",
			Row:      7,
			Kind:     Instruction,
			Mnemonic: "BEQ",
			Modes:    []isa.Mode{isa.REL},
			Args:     []Arg{{Symbol: "far"}},
		},
		Address: 0x1000,
		Mode:    isa.REL,
	}
	syms := SymbolTable{"far": {Name: "far", Address: 0x1100}}

	_, err := Encode(r, syms, tbl)
	var d *Diagnostic
	if !errors.As(err, &d) || d.Kind != BranchOutOfRange || d.Line != 7 {
		t.Errorf("expected BranchOutOfRange at line 7, got %v", err)
	}

	syms["far"].Address = 0x1010
	b, err := Encode(r, syms, tbl)
	if err != nil || codeHex(b) != "F00E" {
		t.Errorf("got %s, %v", codeHex(b), err)
	}

	r.Mnemonic, r.Mode, r.Args = "STZ", isa.ZPG, []Arg{{Value: 0x10, Width: 1}}
	if _, err := Encode(r, syms, tbl); !errors.As(err, &d) || d.Kind != UnsupportedMode {
		t.Errorf("expected UnsupportedMode, got %v", err)
	}

	blank := &ResolvedLine{Line: Line{Kind: Blank}}
	if b, err := Encode(blank, syms, tbl); b != nil || err != nil {
		t.Error("blank line encoded to something")
	}
}

func TestDiagnosticString(t *testing.T) {
	d := &Diagnostic{Unit: "main.asm", Line: 3, Severity: Error, Kind: UndefinedSymbol, Message: "undefined label 'foo'"}
	if s := d.String(); s != "main.asm L3: undefined label 'foo'" {
		t.Errorf("got %q", s)
	}

	diags := Diagnostics{d, {Unit: "x", Line: 1, Severity: Warning, Kind: UnusedDefine, Message: "unused"}}
	if !diags.HasErrors() || len(diags.Warnings()) != 1 || len(diags.Errors()) != 1 {
		t.Error("diagnostic filtering failed")
	}
	if diags[1:].HasErrors() {
		t.Error("warnings counted as errors")
	}

	var buf bytes.Buffer
	diags.WriteTo(&buf)
	if buf.String() != "main.asm L3: undefined label 'foo'\nwarning: x L1: unused\n" {
		t.Errorf("got %q", buf.String())
	}
}
