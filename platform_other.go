// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

//go:build !windows && !darwin

package extract

import (
	"os"
	"path/filepath"
)

// defaultGameDir returns the default location of the `.minecraft`
// directory, which sits directly in the user's home directory.
func defaultGameDir() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".minecraft"), true
}
