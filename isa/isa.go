// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package isa describes the instruction sets of the 6502 processor family.
// Each supported processor profile has an immutable instruction table
// mapping (mnemonic, addressing mode) pairs to opcodes and cycle counts.
package isa

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the isa package.
var (
	ErrUnknownProfile = errors.New("unknown cpu profile")
	ErrDuplicateEntry = errors.New("duplicate instruction table entry")
)

// Profile identifies a processor instruction set.
type Profile byte

// Supported processor profiles.
const (
	NMOS   Profile = iota // 6502 as used by the NES/Famicom
	CMOS                  // 65C02 with Rockwell/WDC bit extensions
	W65816                // 65816 as used by the SNES/Super Famicom

	profileCount
)

var profileName = [profileCount]string{"6502", "65C02", "65816"}

// Alternate names accepted by ParseProfile.
var profileAlias = map[string]Profile{
	"6502":         NMOS,
	"nmos":         NMOS,
	"nes":          NMOS,
	"famicom":      NMOS,
	"65c02":        CMOS,
	"cmos":         CMOS,
	"65816":        W65816,
	"65c816":       W65816,
	"snes":         W65816,
	"superfamicom": W65816,
}

func (p Profile) String() string {
	if p < profileCount {
		return profileName[p]
	}
	return fmt.Sprintf("Profile(%d)", byte(p))
}

// MaxAddress returns the highest address the profile's address bus can
// reach.
func (p Profile) MaxAddress() int {
	if p == W65816 {
		return 0xffffff
	}
	return 0xffff
}

// ParseProfile converts a processor or console name into a Profile.
// Matching is case-insensitive.
func ParseProfile(s string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	if p, ok := profileAlias[key]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProfile, s)
}

// Profiles returns all supported profiles in ascending order.
func Profiles() []Profile {
	return []Profile{NMOS, CMOS, W65816}
}
