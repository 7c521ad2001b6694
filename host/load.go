// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/asm65/asm"
	"golang.org/x/sync/errgroup"
)

// Maximum number of source files read at once.
const maxOpenFiles = 8

// loadUnits reads source files concurrently and returns one unit per file
// in the order the files were named. A unit is named by its path as given,
// which is the name an .include directive uses to refer to it.
func loadUnits(ctx context.Context, filenames []string) ([]asm.SourceUnit, error) {
	units := make([]asm.SourceUnit, len(filenames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxOpenFiles)
	for i, filename := range filenames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			file, err := os.Open(filename)
			if err != nil {
				return err
			}
			defer file.Close()

			u, err := asm.ReadUnit(filename, file)
			if err != nil {
				return fmt.Errorf("reading '%s': %w", filepath.Base(filename), err)
			}
			units[i] = u
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// Add the default source extension to a filename that has none.
func sourceFilename(filename string) string {
	if filepath.Ext(filename) == "" {
		return filename + ".asm"
	}
	return filename
}

// Return the output filename that shares the first source file's path and
// base name.
func outputFilename(source, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.TrimSuffix(source, filepath.Ext(source)) + ext
}
