// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcasset/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestVersion builds a game directory with one version below
// versions/: a jar container with the given entries and a manifest
// declaring indexLabel as its asset index.
func createTestVersion(t *testing.T, name, indexLabel string, entries []zipTestEntry) string {
	t.Helper()
	gameDir := t.TempDir()
	versionDir := filepath.Join(gameDir, "versions", name)
	require.NoError(t, os.MkdirAll(versionDir, 0755))

	jar := createTestZip(t, entries)
	require.NoError(t, os.Rename(jar, filepath.Join(versionDir, name+".jar")))

	manifest := `{"id":"` + name + `","assets":"` + indexLabel + `","complianceLevel":1}`
	require.NoError(t, os.WriteFile(filepath.Join(versionDir, name+".json"), []byte(manifest), 0644))
	return gameDir
}

func TestResolveVersion(t *testing.T) {
	gameDir := createTestVersion(t, "1.20.1", "7", versionJarEntries)

	t.Run("existing directory path", func(t *testing.T) {
		dir := filepath.Join(gameDir, "versions", "1.20.1")
		cfg := extract.NewConfig(extract.WithPlatform(noPlatform{}))

		v, err := extract.ResolveVersion(dir, cfg)
		require.NoError(t, err)
		assert.Equal(t, "1.20.1", v.Name())
		assert.Equal(t, filepath.Join(dir, "1.20.1.jar"), v.ContainerPath())
		assert.Equal(t, filepath.Join(dir, "1.20.1.json"), v.ManifestPath())
	})

	t.Run("bare name below the versions root", func(t *testing.T) {
		cfg := extract.NewConfig(extract.WithPlatform(fixedPlatform{dir: gameDir}))

		v, err := extract.ResolveVersion("1.20.1", cfg)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(gameDir, "versions", "1.20.1", "1.20.1.jar"), v.ContainerPath())
	})

	t.Run("unresolved specifier", func(t *testing.T) {
		cfg := extract.NewConfig(extract.WithPlatform(fixedPlatform{dir: gameDir}))

		_, err := extract.ResolveVersion("1.99.0", cfg)
		require.ErrorIs(t, err, extract.ErrInvalidVersion)
		assert.Contains(t, err.Error(), "1.99.0")
	})

	t.Run("unresolved specifier without platform default", func(t *testing.T) {
		cfg := extract.NewConfig(extract.WithPlatform(noPlatform{}))

		_, err := extract.ResolveVersion("1.20.1", cfg)
		require.ErrorIs(t, err, extract.ErrInvalidVersion)
	})
}

func TestExtractVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("container and hashed assets compose", func(t *testing.T) {
		gameDir := createTestVersion(t, "1.20.1", "7", versionJarEntries)
		store := createTestStore(t, "7", map[string]string{
			"sounds/a.ogg": "hashed sound",
			"x.txt":        "hashed wins",
		})
		require.NoError(t, os.Rename(store, filepath.Join(gameDir, "assets")))
		dst := t.TempDir()

		cfg := extract.NewConfig(
			extract.WithPlatform(fixedPlatform{dir: gameDir}),
			extract.WithAssets(true),
			extract.WithData(true),
		)
		require.NoError(t, extract.ExtractVersion(ctx, "1.20.1", dst, cfg))

		// container contents
		assert.FileExists(t, filepath.Join(dst, "data", "y.txt"))

		// hashed contents
		got, err := os.ReadFile(filepath.Join(dst, "assets", "sounds", "a.ogg"))
		require.NoError(t, err)
		assert.Equal(t, []byte("hashed sound"), got)

		// the hashed store is authoritative for paths both steps wrote
		got, err = os.ReadFile(filepath.Join(dst, "assets", "x.txt"))
		require.NoError(t, err)
		assert.Equal(t, []byte("hashed wins"), got)
	})

	t.Run("hashed assets dir override", func(t *testing.T) {
		gameDir := createTestVersion(t, "1.20.1", "7", versionJarEntries)
		store := createTestStore(t, "7", map[string]string{"a.txt": "aa"})
		dst := t.TempDir()

		cfg := extract.NewConfig(
			extract.WithPlatform(fixedPlatform{dir: gameDir}),
			extract.WithHashedAssetsDir(store),
			extract.WithAssets(true),
		)
		require.NoError(t, extract.ExtractVersion(ctx, "1.20.1", dst, cfg))
		assert.FileExists(t, filepath.Join(dst, "assets", "a.txt"))
	})

	t.Run("missing index is fatal after container extraction", func(t *testing.T) {
		gameDir := createTestVersion(t, "1.20.1", "8", versionJarEntries)
		store := createTestStore(t, "7", nil) // has 7.json, manifest wants 8
		require.NoError(t, os.Rename(store, filepath.Join(gameDir, "assets")))
		dst := t.TempDir()

		cfg := extract.NewConfig(
			extract.WithPlatform(fixedPlatform{dir: gameDir}),
			extract.WithAssets(true),
			extract.WithData(true),
		)
		err := extract.ExtractVersion(ctx, "1.20.1", dst, cfg)
		require.ErrorIs(t, err, extract.ErrMissingIndexFile)
		assert.Contains(t, err.Error(), "8.json")

		// the container pass had already completed
		assert.FileExists(t, filepath.Join(dst, "data", "y.txt"))
	})

	t.Run("data only needs no manifest", func(t *testing.T) {
		gameDir := createTestVersion(t, "1.20.1", "7", versionJarEntries)
		versionDir := filepath.Join(gameDir, "versions", "1.20.1")
		require.NoError(t, os.Remove(filepath.Join(versionDir, "1.20.1.json")))
		dst := t.TempDir()

		cfg := extract.NewConfig(
			extract.WithPlatform(fixedPlatform{dir: gameDir}),
			extract.WithData(true),
		)
		require.NoError(t, extract.ExtractVersion(ctx, "1.20.1", dst, cfg))
		assert.FileExists(t, filepath.Join(dst, "data", "y.txt"))
		assert.NoDirExists(t, filepath.Join(dst, "assets"))
	})

	t.Run("unparsable manifest is fatal", func(t *testing.T) {
		gameDir := createTestVersion(t, "1.20.1", "7", versionJarEntries)
		versionDir := filepath.Join(gameDir, "versions", "1.20.1")
		require.NoError(t, os.WriteFile(filepath.Join(versionDir, "1.20.1.json"), []byte("{"), 0644))

		cfg := extract.NewConfig(
			extract.WithPlatform(fixedPlatform{dir: gameDir}),
			extract.WithAssets(true),
		)
		err := extract.ExtractVersion(ctx, "1.20.1", t.TempDir(), cfg)
		require.Error(t, err)
	})

	t.Run("empty selection succeeds without work", func(t *testing.T) {
		cfg := extract.NewConfig(extract.WithPlatform(noPlatform{}))
		require.NoError(t, extract.ExtractVersion(ctx, "does-not-exist", t.TempDir(), cfg))
	})
}
