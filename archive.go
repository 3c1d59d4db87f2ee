// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// names of the logical subtrees a container can hold
const (
	subtreeAssets = "assets"
	subtreeData   = "data"
)

// archiveWalker is an interface that represents a file walker in an archive
type archiveWalker interface {
	Type() string
	Next() (archiveEntry, error)
}

// archiveEntry is an interface that represents a file in an archive
type archiveEntry interface {
	IsDir() bool
	Mode() fs.FileMode
	Name() string
	Open() (io.ReadCloser, error)
	Size() int64
}

// extractEntries reads all entries from src and extracts the selected
// subtrees to dst. Any entry-level failure aborts the whole pass: a
// corrupt container more likely indicates a systemic problem than an
// isolated missing file.
func extractEntries(ctx context.Context, src archiveWalker, dst string, cfg *Config, td *TelemetryData) error {

	// drain the walker first; the common-root filter and the progress
	// total both need the full entry list
	var entries []archiveEntry
	for {
		ae, err := src.Next()

		switch {
		case err == io.EOF:
			return processEntries(ctx, entries, dst, cfg, td)
		case err != nil:
			return fmt.Errorf("cannot read %s entry: %w", src.Type(), err)
		case ae == nil:
			continue
		}

		entries = append(entries, ae)
	}
}

// processEntries classifies each entry against the selected subtrees and
// writes the matches below dst.
func processEntries(ctx context.Context, entries []archiveEntry, dst string, cfg *Config, td *TelemetryData) error {
	root := commonRoot(entries)
	if root != "" {
		cfg.Logger().Debug("stripping common root", "root", root)
	}

	total := len(entries)
	for i, ae := range entries {

		// check if context is canceled
		if err := ctx.Err(); err != nil {
			return err
		}

		cfg.Progress()(i+1, total)

		rel, ok := strippedName(ae.Name(), root)
		if !ok {
			// the root directory entry itself
			continue
		}

		sub := matchSubtree(rel, cfg)
		if sub == "" {
			cfg.Logger().Debug("skipping entry (outside selection)", "name", ae.Name())
			td.SkippedEntries++
			continue
		}

		if cfg.IgnoreTopLevel() {
			rel = strings.TrimPrefix(strings.TrimPrefix(rel, sub), "/")
			if rel == "" {
				// the subtree directory maps onto dst itself
				continue
			}
		}

		if err := writeEntry(ae, filepath.Join(dst, filepath.FromSlash(rel)), td); err != nil {
			return fmt.Errorf("cannot extract %q: %w", ae.Name(), err)
		}
	}

	return nil
}

// writeEntry materializes one entry at outputPath, overwriting an existing
// file at that path.
func writeEntry(ae archiveEntry, outputPath string, td *TelemetryData) error {
	if ae.IsDir() {
		if err := os.MkdirAll(outputPath, defaultDirPerm); err != nil {
			return err
		}
		td.ExtractedDirs++
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), defaultDirPerm); err != nil {
		return err
	}

	fin, err := ae.Open()
	if err != nil {
		return err
	}
	defer fin.Close()

	fout, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fout, fin); err != nil {
		fout.Close()
		return err
	}
	if err := fout.Close(); err != nil {
		return err
	}

	// propagate stored permission bits; entries without them keep the
	// create default
	if perm := ae.Mode().Perm(); perm != 0 {
		if err := os.Chmod(outputPath, perm); err != nil {
			return err
		}
	}

	td.ExtractedFiles++
	return nil
}

// matchSubtree returns the enabled subtree the slash-separated path rel
// belongs to, or the empty string.
func matchSubtree(rel string, cfg *Config) string {
	if cfg.Assets() && inSubtree(rel, subtreeAssets) {
		return subtreeAssets
	}
	if cfg.Data() && inSubtree(rel, subtreeData) {
		return subtreeData
	}
	return ""
}

// inSubtree returns true if rel is the subtree directory itself or sits
// below it.
func inSubtree(rel, sub string) bool {
	return rel == sub || rel == sub+"/" || strings.HasPrefix(rel, sub+"/")
}

// commonRoot detects a single top-level directory shared by every entry.
// A top-level regular file rules a shared root out; the root directory's
// own entry does not.
func commonRoot(entries []archiveEntry) string {
	root := ""
	for _, ae := range entries {
		name := strings.TrimSuffix(ae.Name(), "/")
		first, _, nested := strings.Cut(name, "/")
		if first == "" {
			return ""
		}
		if !nested && !ae.IsDir() {
			return ""
		}
		if root == "" {
			root = first
			continue
		}
		if first != root {
			return ""
		}
	}
	return root
}

// strippedName removes the shared root from a slash-separated entry name.
// The second return value is false for the root directory entry itself,
// which maps to no output path.
func strippedName(name, root string) (string, bool) {
	if root == "" {
		return name, true
	}
	if name == root || name == root+"/" {
		return "", false
	}
	return strings.TrimPrefix(name, root+"/"), true
}
