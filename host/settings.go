// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/asm65/asm"
	"github.com/beevik/asm65/isa"
	"github.com/beevik/prefixtree/v2"
)

type settings struct {
	Profile   string `doc:"processor profile (6502, 65C02, 65816)"`
	Origin    uint32 `doc:"address of the first assembled byte"`
	Verbose   bool   `doc:"trace each assembly stage"`
	HexMode   bool   `doc:"hexadecimal input mode"`
	OutputExt string `doc:"extension of the binary output file"`
	Listing   bool   `doc:"write a .lst listing beside the binary"`
	ListLines int    `doc:"default number of lines to list"`
	NextList  uint32 `doc:"address of the next listed line"`
}

func newSettings() *settings {
	return &settings{
		Profile:   isa.NMOS.String(),
		Origin:    asm.DefaultOrigin,
		OutputExt: ".bin",
		ListLines: 10,
		NextList:  asm.DefaultOrigin,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := range settingsFields {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

// Display writes every setting, its value and its description.
func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var str string
		switch f.kind {
		case reflect.String:
			str = fmt.Sprintf("    %-12s \"%s\"", f.name, v.String())
		case reflect.Uint32:
			str = fmt.Sprintf("    %-12s $%04X", f.name, v.Uint())
		default:
			str = fmt.Sprintf("    %-12s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-32s (%s)\n", str, f.doc)
	}
}

// Name returns the full name of the setting matching a key prefix.
func (s *settings) Name(key string) (string, error) {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return "", err
	}
	return f.name, nil
}

// Kind returns the kind of the setting matching a key prefix, or
// reflect.Invalid if no single setting matches.
func (s *settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

// Set assigns a value to the setting matching a key prefix.
func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	in := reflect.ValueOf(value)
	if (f.kind == reflect.String) != (in.Kind() == reflect.String) || !in.Type().ConvertibleTo(f.typ) {
		return errors.New("invalid type")
	}

	if f.name == "Profile" {
		p, err := isa.ParseProfile(in.String())
		if err != nil {
			return err
		}
		in = reflect.ValueOf(p.String())
	}

	out := reflect.ValueOf(s).Elem().Field(f.index)
	out.Set(in.Convert(f.typ))
	return nil
}

// Return the assembly options described by the settings.
func (s *settings) options(out io.Writer) (asm.Options, error) {
	p, err := isa.ParseProfile(s.Profile)
	if err != nil {
		return asm.Options{}, err
	}
	return asm.Options{
		Profile: p,
		Origin:  int(s.Origin),
		Verbose: s.Verbose,
		Out:     out,
	}, nil
}
