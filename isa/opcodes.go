// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isa

// Bit masks selecting the profiles an opcode row is valid on.
const (
	nmos = 1 << NMOS
	cmos = 1 << CMOS
	w816 = 1 << W65816

	all = nmos | cmos | w816 // every profile
	c02 = cmos | w816        // 65C02 additions inherited by the 65816
	rwc = cmos               // Rockwell bit instructions (65C02 only)
)

const (
	pg = PageCross
	br = BranchTaken | PageCross
)

// Opcode data for an (opcode, mode) pair
type opcodeData struct {
	name   string // instruction mnemonic
	mode   Mode   // addressing mode
	opcode byte   // opcode hex value
	cycles byte   // number of CPU cycles to execute the instruction
	flags  Flags  // conditional cycle penalties
	cpus   byte   // mask of profiles supporting the pair
}

// All valid (opcode, mode) pairs. When two rows share an opcode, the
// first is used when decoding.
var data = []opcodeData{
	{"LDA", IMM, 0xa9, 2, 0, all},
	{"LDA", ZPG, 0xa5, 3, 0, all},
	{"LDA", ZPX, 0xb5, 4, 0, all},
	{"LDA", ABS, 0xad, 4, 0, all},
	{"LDA", ABX, 0xbd, 4, pg, all},
	{"LDA", ABY, 0xb9, 4, pg, all},
	{"LDA", IDX, 0xa1, 6, 0, all},
	{"LDA", IDY, 0xb1, 5, pg, all},
	{"LDA", ZPI, 0xb2, 5, 0, c02},
	{"LDA", IMW, 0xa9, 3, 0, w816},
	{"LDA", ABL, 0xaf, 5, 0, w816},
	{"LDA", ALX, 0xbf, 5, 0, w816},
	{"LDA", ILZ, 0xa7, 6, 0, w816},
	{"LDA", ILY, 0xb7, 6, 0, w816},
	{"LDA", SR, 0xa3, 4, 0, w816},
	{"LDA", SRY, 0xb3, 7, 0, w816},

	{"LDX", IMM, 0xa2, 2, 0, all},
	{"LDX", ZPG, 0xa6, 3, 0, all},
	{"LDX", ZPY, 0xb6, 4, 0, all},
	{"LDX", ABS, 0xae, 4, 0, all},
	{"LDX", ABY, 0xbe, 4, pg, all},
	{"LDX", IMW, 0xa2, 3, 0, w816},

	{"LDY", IMM, 0xa0, 2, 0, all},
	{"LDY", ZPG, 0xa4, 3, 0, all},
	{"LDY", ZPX, 0xb4, 4, 0, all},
	{"LDY", ABS, 0xac, 4, 0, all},
	{"LDY", ABX, 0xbc, 4, pg, all},
	{"LDY", IMW, 0xa0, 3, 0, w816},

	{"STA", ZPG, 0x85, 3, 0, all},
	{"STA", ZPX, 0x95, 4, 0, all},
	{"STA", ABS, 0x8d, 4, 0, all},
	{"STA", ABX, 0x9d, 5, 0, all},
	{"STA", ABY, 0x99, 5, 0, all},
	{"STA", IDX, 0x81, 6, 0, all},
	{"STA", IDY, 0x91, 6, 0, all},
	{"STA", ZPI, 0x92, 5, 0, c02},
	{"STA", ABL, 0x8f, 5, 0, w816},
	{"STA", ALX, 0x9f, 5, 0, w816},
	{"STA", ILZ, 0x87, 6, 0, w816},
	{"STA", ILY, 0x97, 6, 0, w816},
	{"STA", SR, 0x83, 4, 0, w816},
	{"STA", SRY, 0x93, 7, 0, w816},

	{"STX", ZPG, 0x86, 3, 0, all},
	{"STX", ZPY, 0x96, 4, 0, all},
	{"STX", ABS, 0x8e, 4, 0, all},

	{"STY", ZPG, 0x84, 3, 0, all},
	{"STY", ZPX, 0x94, 4, 0, all},
	{"STY", ABS, 0x8c, 4, 0, all},

	{"STZ", ZPG, 0x64, 3, 0, c02},
	{"STZ", ZPX, 0x74, 4, 0, c02},
	{"STZ", ABS, 0x9c, 4, 0, c02},
	{"STZ", ABX, 0x9e, 5, 0, c02},

	{"ADC", IMM, 0x69, 2, 0, all},
	{"ADC", ZPG, 0x65, 3, 0, all},
	{"ADC", ZPX, 0x75, 4, 0, all},
	{"ADC", ABS, 0x6d, 4, 0, all},
	{"ADC", ABX, 0x7d, 4, pg, all},
	{"ADC", ABY, 0x79, 4, pg, all},
	{"ADC", IDX, 0x61, 6, 0, all},
	{"ADC", IDY, 0x71, 5, pg, all},
	{"ADC", ZPI, 0x72, 5, 0, c02},
	{"ADC", IMW, 0x69, 3, 0, w816},
	{"ADC", ABL, 0x6f, 5, 0, w816},
	{"ADC", ALX, 0x7f, 5, 0, w816},
	{"ADC", ILZ, 0x67, 6, 0, w816},
	{"ADC", ILY, 0x77, 6, 0, w816},
	{"ADC", SR, 0x63, 4, 0, w816},
	{"ADC", SRY, 0x73, 7, 0, w816},

	{"SBC", IMM, 0xe9, 2, 0, all},
	{"SBC", ZPG, 0xe5, 3, 0, all},
	{"SBC", ZPX, 0xf5, 4, 0, all},
	{"SBC", ABS, 0xed, 4, 0, all},
	{"SBC", ABX, 0xfd, 4, pg, all},
	{"SBC", ABY, 0xf9, 4, pg, all},
	{"SBC", IDX, 0xe1, 6, 0, all},
	{"SBC", IDY, 0xf1, 5, pg, all},
	{"SBC", ZPI, 0xf2, 5, 0, c02},
	{"SBC", IMW, 0xe9, 3, 0, w816},
	{"SBC", ABL, 0xef, 5, 0, w816},
	{"SBC", ALX, 0xff, 5, 0, w816},
	{"SBC", ILZ, 0xe7, 6, 0, w816},
	{"SBC", ILY, 0xf7, 6, 0, w816},
	{"SBC", SR, 0xe3, 4, 0, w816},
	{"SBC", SRY, 0xf3, 7, 0, w816},

	{"CMP", IMM, 0xc9, 2, 0, all},
	{"CMP", ZPG, 0xc5, 3, 0, all},
	{"CMP", ZPX, 0xd5, 4, 0, all},
	{"CMP", ABS, 0xcd, 4, 0, all},
	{"CMP", ABX, 0xdd, 4, pg, all},
	{"CMP", ABY, 0xd9, 4, pg, all},
	{"CMP", IDX, 0xc1, 6, 0, all},
	{"CMP", IDY, 0xd1, 5, pg, all},
	{"CMP", ZPI, 0xd2, 5, 0, c02},
	{"CMP", IMW, 0xc9, 3, 0, w816},
	{"CMP", ABL, 0xcf, 5, 0, w816},
	{"CMP", ALX, 0xdf, 5, 0, w816},
	{"CMP", ILZ, 0xc7, 6, 0, w816},
	{"CMP", ILY, 0xd7, 6, 0, w816},
	{"CMP", SR, 0xc3, 4, 0, w816},
	{"CMP", SRY, 0xd3, 7, 0, w816},

	{"CPX", IMM, 0xe0, 2, 0, all},
	{"CPX", ZPG, 0xe4, 3, 0, all},
	{"CPX", ABS, 0xec, 4, 0, all},
	{"CPX", IMW, 0xe0, 3, 0, w816},

	{"CPY", IMM, 0xc0, 2, 0, all},
	{"CPY", ZPG, 0xc4, 3, 0, all},
	{"CPY", ABS, 0xcc, 4, 0, all},
	{"CPY", IMW, 0xc0, 3, 0, w816},

	{"BIT", IMM, 0x89, 2, 0, c02},
	{"BIT", ZPG, 0x24, 3, 0, all},
	{"BIT", ZPX, 0x34, 4, 0, c02},
	{"BIT", ABS, 0x2c, 4, 0, all},
	{"BIT", ABX, 0x3c, 4, pg, c02},
	{"BIT", IMW, 0x89, 3, 0, w816},

	{"CLC", IMP, 0x18, 2, 0, all},
	{"SEC", IMP, 0x38, 2, 0, all},
	{"CLI", IMP, 0x58, 2, 0, all},
	{"SEI", IMP, 0x78, 2, 0, all},
	{"CLD", IMP, 0xd8, 2, 0, all},
	{"SED", IMP, 0xf8, 2, 0, all},
	{"CLV", IMP, 0xb8, 2, 0, all},

	{"BCC", REL, 0x90, 2, br, all},
	{"BCS", REL, 0xb0, 2, br, all},
	{"BEQ", REL, 0xf0, 2, br, all},
	{"BNE", REL, 0xd0, 2, br, all},
	{"BMI", REL, 0x30, 2, br, all},
	{"BPL", REL, 0x10, 2, br, all},
	{"BVC", REL, 0x50, 2, br, all},
	{"BVS", REL, 0x70, 2, br, all},
	{"BRA", REL, 0x80, 3, pg, c02},
	{"BRL", RLL, 0x82, 4, 0, w816},
	{"BRA", RLL, 0x82, 4, 0, w816},

	{"BRK", IMP, 0x00, 7, 0, all},
	{"COP", IMM, 0x02, 7, 0, w816},
	{"WDM", IMM, 0x42, 2, 0, w816},

	{"AND", IMM, 0x29, 2, 0, all},
	{"AND", ZPG, 0x25, 3, 0, all},
	{"AND", ZPX, 0x35, 4, 0, all},
	{"AND", ABS, 0x2d, 4, 0, all},
	{"AND", ABX, 0x3d, 4, pg, all},
	{"AND", ABY, 0x39, 4, pg, all},
	{"AND", IDX, 0x21, 6, 0, all},
	{"AND", IDY, 0x31, 5, pg, all},
	{"AND", ZPI, 0x32, 5, 0, c02},
	{"AND", IMW, 0x29, 3, 0, w816},
	{"AND", ABL, 0x2f, 5, 0, w816},
	{"AND", ALX, 0x3f, 5, 0, w816},
	{"AND", ILZ, 0x27, 6, 0, w816},
	{"AND", ILY, 0x37, 6, 0, w816},
	{"AND", SR, 0x23, 4, 0, w816},
	{"AND", SRY, 0x33, 7, 0, w816},

	{"ORA", IMM, 0x09, 2, 0, all},
	{"ORA", ZPG, 0x05, 3, 0, all},
	{"ORA", ZPX, 0x15, 4, 0, all},
	{"ORA", ABS, 0x0d, 4, 0, all},
	{"ORA", ABX, 0x1d, 4, pg, all},
	{"ORA", ABY, 0x19, 4, pg, all},
	{"ORA", IDX, 0x01, 6, 0, all},
	{"ORA", IDY, 0x11, 5, pg, all},
	{"ORA", ZPI, 0x12, 5, 0, c02},
	{"ORA", IMW, 0x09, 3, 0, w816},
	{"ORA", ABL, 0x0f, 5, 0, w816},
	{"ORA", ALX, 0x1f, 5, 0, w816},
	{"ORA", ILZ, 0x07, 6, 0, w816},
	{"ORA", ILY, 0x17, 6, 0, w816},
	{"ORA", SR, 0x03, 4, 0, w816},
	{"ORA", SRY, 0x13, 7, 0, w816},

	{"EOR", IMM, 0x49, 2, 0, all},
	{"EOR", ZPG, 0x45, 3, 0, all},
	{"EOR", ZPX, 0x55, 4, 0, all},
	{"EOR", ABS, 0x4d, 4, 0, all},
	{"EOR", ABX, 0x5d, 4, pg, all},
	{"EOR", ABY, 0x59, 4, pg, all},
	{"EOR", IDX, 0x41, 6, 0, all},
	{"EOR", IDY, 0x51, 5, pg, all},
	{"EOR", ZPI, 0x52, 5, 0, c02},
	{"EOR", IMW, 0x49, 3, 0, w816},
	{"EOR", ABL, 0x4f, 5, 0, w816},
	{"EOR", ALX, 0x5f, 5, 0, w816},
	{"EOR", ILZ, 0x47, 6, 0, w816},
	{"EOR", ILY, 0x57, 6, 0, w816},
	{"EOR", SR, 0x43, 4, 0, w816},
	{"EOR", SRY, 0x53, 7, 0, w816},

	{"INC", ZPG, 0xe6, 5, 0, all},
	{"INC", ZPX, 0xf6, 6, 0, all},
	{"INC", ABS, 0xee, 6, 0, all},
	{"INC", ABX, 0xfe, 7, 0, all},
	{"INC", ACC, 0x1a, 2, 0, c02},

	{"DEC", ZPG, 0xc6, 5, 0, all},
	{"DEC", ZPX, 0xd6, 6, 0, all},
	{"DEC", ABS, 0xce, 6, 0, all},
	{"DEC", ABX, 0xde, 7, 0, all},
	{"DEC", ACC, 0x3a, 2, 0, c02},

	{"INX", IMP, 0xe8, 2, 0, all},
	{"INY", IMP, 0xc8, 2, 0, all},
	{"DEX", IMP, 0xca, 2, 0, all},
	{"DEY", IMP, 0x88, 2, 0, all},

	{"JMP", ABS, 0x4c, 3, 0, all},
	{"JMP", IND, 0x6c, 5, 0, all},
	{"JMP", IAX, 0x7c, 6, 0, c02},
	{"JML", ABL, 0x5c, 4, 0, w816},
	{"JML", IAL, 0xdc, 6, 0, w816},
	{"JMP", ABL, 0x5c, 4, 0, w816},
	{"JMP", IAL, 0xdc, 6, 0, w816},

	{"JSR", ABS, 0x20, 6, 0, all},
	{"JSR", IAX, 0xfc, 8, 0, w816},
	{"JSL", ABL, 0x22, 8, 0, w816},
	{"RTS", IMP, 0x60, 6, 0, all},
	{"RTL", IMP, 0x6b, 6, 0, w816},
	{"RTI", IMP, 0x40, 6, 0, all},

	{"NOP", IMP, 0xea, 2, 0, all},
	{"WAI", IMP, 0xcb, 3, 0, c02},
	{"STP", IMP, 0xdb, 3, 0, c02},

	{"TAX", IMP, 0xaa, 2, 0, all},
	{"TXA", IMP, 0x8a, 2, 0, all},
	{"TAY", IMP, 0xa8, 2, 0, all},
	{"TYA", IMP, 0x98, 2, 0, all},
	{"TXS", IMP, 0x9a, 2, 0, all},
	{"TSX", IMP, 0xba, 2, 0, all},
	{"TCD", IMP, 0x5b, 2, 0, w816},
	{"TDC", IMP, 0x7b, 2, 0, w816},
	{"TCS", IMP, 0x1b, 2, 0, w816},
	{"TSC", IMP, 0x3b, 2, 0, w816},
	{"TXY", IMP, 0x9b, 2, 0, w816},
	{"TYX", IMP, 0xbb, 2, 0, w816},
	{"XBA", IMP, 0xeb, 3, 0, w816},
	{"XCE", IMP, 0xfb, 2, 0, w816},

	{"TRB", ZPG, 0x14, 5, 0, c02},
	{"TRB", ABS, 0x1c, 6, 0, c02},
	{"TSB", ZPG, 0x04, 5, 0, c02},
	{"TSB", ABS, 0x0c, 6, 0, c02},

	{"PHA", IMP, 0x48, 3, 0, all},
	{"PLA", IMP, 0x68, 4, 0, all},
	{"PHP", IMP, 0x08, 3, 0, all},
	{"PLP", IMP, 0x28, 4, 0, all},
	{"PHX", IMP, 0xda, 3, 0, c02},
	{"PLX", IMP, 0xfa, 4, 0, c02},
	{"PHY", IMP, 0x5a, 3, 0, c02},
	{"PLY", IMP, 0x7a, 4, 0, c02},
	{"PHB", IMP, 0x8b, 3, 0, w816},
	{"PLB", IMP, 0xab, 4, 0, w816},
	{"PHD", IMP, 0x0b, 4, 0, w816},
	{"PLD", IMP, 0x2b, 5, 0, w816},
	{"PHK", IMP, 0x4b, 3, 0, w816},
	{"PEA", ABS, 0xf4, 5, 0, w816},
	{"PEI", ZPI, 0xd4, 6, 0, w816},
	{"PER", RLL, 0x62, 6, 0, w816},

	{"REP", IMM, 0xc2, 3, 0, w816},
	{"SEP", IMM, 0xe2, 3, 0, w816},
	{"MVN", BLK, 0x54, 7, 0, w816},
	{"MVP", BLK, 0x44, 7, 0, w816},

	{"ASL", ACC, 0x0a, 2, 0, all},
	{"ASL", ZPG, 0x06, 5, 0, all},
	{"ASL", ZPX, 0x16, 6, 0, all},
	{"ASL", ABS, 0x0e, 6, 0, all},
	{"ASL", ABX, 0x1e, 7, 0, all},

	{"LSR", ACC, 0x4a, 2, 0, all},
	{"LSR", ZPG, 0x46, 5, 0, all},
	{"LSR", ZPX, 0x56, 6, 0, all},
	{"LSR", ABS, 0x4e, 6, 0, all},
	{"LSR", ABX, 0x5e, 7, 0, all},

	{"ROL", ACC, 0x2a, 2, 0, all},
	{"ROL", ZPG, 0x26, 5, 0, all},
	{"ROL", ZPX, 0x36, 6, 0, all},
	{"ROL", ABS, 0x2e, 6, 0, all},
	{"ROL", ABX, 0x3e, 7, 0, all},

	{"ROR", ACC, 0x6a, 2, 0, all},
	{"ROR", ZPG, 0x66, 5, 0, all},
	{"ROR", ZPX, 0x76, 6, 0, all},
	{"ROR", ABS, 0x6e, 6, 0, all},
	{"ROR", ABX, 0x7e, 7, 0, all},

	{"RMB0", ZPG, 0x07, 5, 0, rwc},
	{"RMB1", ZPG, 0x17, 5, 0, rwc},
	{"RMB2", ZPG, 0x27, 5, 0, rwc},
	{"RMB3", ZPG, 0x37, 5, 0, rwc},
	{"RMB4", ZPG, 0x47, 5, 0, rwc},
	{"RMB5", ZPG, 0x57, 5, 0, rwc},
	{"RMB6", ZPG, 0x67, 5, 0, rwc},
	{"RMB7", ZPG, 0x77, 5, 0, rwc},

	{"SMB0", ZPG, 0x87, 5, 0, rwc},
	{"SMB1", ZPG, 0x97, 5, 0, rwc},
	{"SMB2", ZPG, 0xa7, 5, 0, rwc},
	{"SMB3", ZPG, 0xb7, 5, 0, rwc},
	{"SMB4", ZPG, 0xc7, 5, 0, rwc},
	{"SMB5", ZPG, 0xd7, 5, 0, rwc},
	{"SMB6", ZPG, 0xe7, 5, 0, rwc},
	{"SMB7", ZPG, 0xf7, 5, 0, rwc},

	{"BBR0", ZPR, 0x0f, 5, br, rwc},
	{"BBR1", ZPR, 0x1f, 5, br, rwc},
	{"BBR2", ZPR, 0x2f, 5, br, rwc},
	{"BBR3", ZPR, 0x3f, 5, br, rwc},
	{"BBR4", ZPR, 0x4f, 5, br, rwc},
	{"BBR5", ZPR, 0x5f, 5, br, rwc},
	{"BBR6", ZPR, 0x6f, 5, br, rwc},
	{"BBR7", ZPR, 0x7f, 5, br, rwc},

	{"BBS0", ZPR, 0x8f, 5, br, rwc},
	{"BBS1", ZPR, 0x9f, 5, br, rwc},
	{"BBS2", ZPR, 0xaf, 5, br, rwc},
	{"BBS3", ZPR, 0xbf, 5, br, rwc},
	{"BBS4", ZPR, 0xcf, 5, br, rwc},
	{"BBS5", ZPR, 0xdf, 5, br, rwc},
	{"BBS6", ZPR, 0xef, 5, br, rwc},
	{"BBS7", ZPR, 0xff, 5, br, rwc},
}
