// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

import "errors"

var (
	// ErrMissingIndexFile indicates that no asset index file could be
	// located for the requested version or label.
	ErrMissingIndexFile = errors.New("no index file found")

	// ErrInvalidVersion indicates that a version specifier is neither an
	// existing directory nor the name of a directory under the default
	// versions root.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrNoInputDir indicates that no hashed-assets input directory was
	// given and no platform default exists.
	ErrNoInputDir = errors.New("no input directory found")

	// ErrNotAnArchive indicates that the container file does not start
	// with a known zip signature.
	ErrNotAnArchive = errors.New("not a zip archive")
)
