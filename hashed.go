// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// extractedTypeHashed is the pass type reported for hashed extraction.
const extractedTypeHashed = "hashed"

// permission bits for output not described by the source representation
const (
	defaultDirPerm  fs.FileMode = 0755
	defaultFilePerm fs.FileMode = 0644
)

// ExtractHashed copies every hashed object named by an asset index to its
// logical path below dst.
//
// assetsDir is the hashed-assets directory holding indexes/ and objects/;
// if empty, the platform default `<game dir>/assets` is used. The index is
// chosen through [Config.Index]. Unless [WithIgnoreTopLevel] is set, the
// output is nested below an assets/ folder inside dst.
//
// Failures to read one object or to write one output file are logged and
// do not abort the batch; every index entry is attempted exactly once.
// Missing input directories and index parse failures are fatal.
func ExtractHashed(ctx context.Context, assetsDir string, dst string, cfg *Config) error {

	// prepare telemetry data collection and emit
	td := &TelemetryData{ExtractedType: extractedTypeHashed}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureExtractionDuration(td, now())

	inputDir, err := hashedAssetsDir(assetsDir, cfg)
	if err != nil {
		return err
	}

	indexPath, err := resolveIndexFile(filepath.Join(inputDir, "indexes"), cfg.Index())
	if err != nil {
		return err
	}

	index, err := loadIndexFile(indexPath)
	if err != nil {
		return err
	}

	cfg.Logger().Info("extracting hashed assets", "index", indexPath, "objects", len(index.Objects))
	objectsDir := filepath.Join(inputDir, "objects")
	return extractObjects(ctx, index, objectsDir, hashedOutputDir(dst, cfg), cfg, td)
}

// hashedAssetsDir resolves the hashed-assets input directory from the
// explicit argument, the config override, or the platform default.
func hashedAssetsDir(assetsDir string, cfg *Config) (string, error) {
	dir := assetsDir
	if dir == "" {
		dir = cfg.HashedAssetsDir()
	}
	if dir == "" {
		gameDir, ok := cfg.Platform().GameDir()
		if !ok {
			return "", fmt.Errorf("%w: no game directory on this platform", ErrNoInputDir)
		}
		dir = filepath.Join(gameDir, "assets")
	}
	if !isDir(dir) {
		return "", fmt.Errorf("%w: %s", ErrNoInputDir, dir)
	}
	return dir, nil
}

// hashedOutputDir nests the output below an assets/ folder, matching where
// the extracted files would sit inside a container.
func hashedOutputDir(dst string, cfg *Config) string {
	if cfg.IgnoreTopLevel() {
		return dst
	}
	return filepath.Join(dst, subtreeAssets)
}

// extractObjects runs the per-entry copy loop. Iteration order is the
// index's map order, stable within one run but not sorted.
func extractObjects(ctx context.Context, index *IndexFile, objectsDir string, dst string, cfg *Config, td *TelemetryData) error {
	total := len(index.Objects)
	counter := 0

	for logicalPath, object := range index.Objects {

		// check if context is canceled
		if err := ctx.Err(); err != nil {
			return err
		}

		counter++
		cfg.Progress()(counter, total)

		contents, err := os.ReadFile(filepath.Join(objectsDir, filepath.FromSlash(object.StoragePath())))
		if err != nil {
			warn(cfg, td, "cannot read hashed object", logicalPath, err)
			continue
		}

		outputFile := filepath.Join(dst, filepath.FromSlash(logicalPath))
		if err := os.MkdirAll(filepath.Dir(outputFile), defaultDirPerm); err != nil {
			warn(cfg, td, "cannot create parent directories", logicalPath, err)
			continue
		}

		if err := os.WriteFile(outputFile, contents, defaultFilePerm); err != nil {
			warn(cfg, td, "cannot write file", logicalPath, err)
			continue
		}

		td.ExtractedFiles++
	}

	return nil
}

// warn records a per-entry failure and lets the batch continue.
func warn(cfg *Config, td *TelemetryData, msg string, logicalPath string, err error) {
	td.Warnings++
	td.LastWarning = fmt.Errorf("%s %q: %w", msg, logicalPath, err)
	cfg.Logger().Warn(msg, "path", logicalPath, "error", err)
}
