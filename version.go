// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileExtensionJar is the file extension of a version's container.
const fileExtensionJar = "jar"

// VersionDirectory is a directory holding one version's container and
// manifest. The directory's own name is authoritative for both file
// names, regardless of how the directory was specified.
type VersionDirectory struct {
	dir string
}

// Name returns the file-system name of the version directory.
func (v VersionDirectory) Name() string {
	return filepath.Base(v.dir)
}

// ContainerPath returns the path of the version's jar container,
// `<dir>/<name>.jar`.
func (v VersionDirectory) ContainerPath() string {
	return filepath.Join(v.dir, v.Name()+"."+fileExtensionJar)
}

// ManifestPath returns the path of the version's manifest,
// `<dir>/<name>.json`.
func (v VersionDirectory) ManifestPath() string {
	return filepath.Join(v.dir, v.Name()+".json")
}

// ResolveVersion resolves a version specifier to its directory. The
// specifier is used directly if it is an existing directory, and is
// otherwise treated as the name of a child directory below the platform's
// default versions root.
func ResolveVersion(spec string, cfg *Config) (VersionDirectory, error) {
	if isDir(spec) {
		return VersionDirectory{dir: spec}, nil
	}

	if gameDir, ok := cfg.Platform().GameDir(); ok {
		path := filepath.Join(gameDir, "versions", spec)
		if isDir(path) {
			return VersionDirectory{dir: path}, nil
		}
	}

	return VersionDirectory{}, fmt.Errorf("%w %q: no directory of that path or name within the versions root", ErrInvalidVersion, spec)
}

// VersionManifest is the part of a version's manifest document consumed
// here. The real document is much larger; unknown fields are ignored.
type VersionManifest struct {
	// IndexVersion is the label of the asset index this version uses.
	IndexVersion string `json:"assets"`
}

// loadManifest reads and parses the manifest file at path.
func loadManifest(path string) (*VersionManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest: %w", err)
	}

	var manifest VersionManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("cannot parse manifest %s: %w", path, err)
	}
	return &manifest, nil
}

// ExtractVersion extracts a version's selected subtrees to dst.
//
// The container is always extracted first. If assets are selected, the
// version's manifest names the asset index, and hashed extraction runs
// afterwards against the resolved hashed-assets directory. The order
// matters: hashed-store content is the authoritative source for assets
// that are hash-addressed outside the container, so its writes win over
// container writes to the same logical path.
//
// Each step reports its own progress and telemetry stream; the container
// pass fully completes before hashed extraction begins.
func ExtractVersion(ctx context.Context, spec string, dst string, cfg *Config) error {

	// empty selection is defined as a no-op success
	if !cfg.Assets() && !cfg.Data() {
		return nil
	}

	version, err := ResolveVersion(spec, cfg)
	if err != nil {
		return err
	}

	if err := ExtractArchive(ctx, version.ContainerPath(), dst, cfg); err != nil {
		return err
	}

	if !cfg.Assets() {
		return nil
	}
	return extractVersionAssets(ctx, version, dst, cfg)
}

// extractVersionAssets runs the hashed-asset step of a version
// extraction: manifest, index lookup, object copy loop.
func extractVersionAssets(ctx context.Context, version VersionDirectory, dst string, cfg *Config) error {
	manifest, err := loadManifest(version.ManifestPath())
	if err != nil {
		return err
	}

	assetsDir, err := hashedAssetsDir("", cfg)
	if err != nil {
		return err
	}

	indexPath := filepath.Join(assetsDir, "indexes", manifest.IndexVersion+".json")
	if !isFile(indexPath) {
		return fmt.Errorf("%w: %s", ErrMissingIndexFile, indexPath)
	}

	index, err := loadIndexFile(indexPath)
	if err != nil {
		return err
	}

	// own telemetry stream, separate from the container pass
	td := &TelemetryData{ExtractedType: extractedTypeHashed}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureExtractionDuration(td, now())

	cfg.Logger().Info("extracting hashed assets", "index", indexPath, "objects", len(index.Objects))
	objectsDir := filepath.Join(assetsDir, "objects")
	return extractObjects(ctx, index, objectsDir, hashedOutputDir(dst, cfg), cfg, td)
}
