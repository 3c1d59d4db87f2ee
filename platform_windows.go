// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

//go:build windows

package extract

import (
	"os"
	"path/filepath"
)

// defaultGameDir returns the default location of the `.minecraft`
// directory, which sits in the roaming application data folder.
func defaultGameDir() (string, bool) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return "", false
	}
	return filepath.Join(appData, ".minecraft"), true
}
