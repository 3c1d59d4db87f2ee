// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

//go:build darwin

package extract

import (
	"os"
	"path/filepath"
)

// defaultGameDir returns the default location of the `minecraft`
// directory, which sits in the user's application support folder.
// Note the missing dot prefix on this platform.
func defaultGameDir() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, "Library", "Application Support", "minecraft"), true
}
