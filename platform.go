// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

import "os"

// Platform resolves OS-specific default locations of the game
// installation. Implementations report absence rather than failing, since
// a missing default is recoverable whenever the caller supplied an
// explicit directory.
type Platform interface {
	// GameDir returns the default game directory (the one holding
	// assets/ and versions/) and whether it exists.
	GameDir() (string, bool)
}

// hostPlatform resolves directories on the running OS. The per-OS lookup
// lives in the build-tagged platform_*.go files.
type hostPlatform struct{}

// GameDir returns the default game directory of the host OS.
func (hostPlatform) GameDir() (string, bool) {
	dir, ok := defaultGameDir()
	if !ok || !isDir(dir) {
		return "", false
	}
	return dir, true
}

// isDir returns true if path exists and is a directory.
func isDir(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// isFile returns true if path exists and is a regular file.
func isFile(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.Mode().IsRegular()
}
