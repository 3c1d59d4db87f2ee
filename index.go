// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IndexFile represents the contents of an asset index file found in the
// indexes/ folder of the hashed-assets directory. Unknown top-level fields
// are ignored.
type IndexFile struct {
	// Objects maps logical asset paths to their hashed-object metadata.
	Objects map[string]ObjectEntry `json:"objects"`
}

// ObjectEntry is the metadata of one hashed object.
type ObjectEntry struct {
	// Hash is the content hash the object is stored under.
	Hash string `json:"hash"`

	// Size is the declared size of the object in bytes.
	Size int64 `json:"size"`
}

// Bucket returns the name of the folder the object lives in inside the
// objects/ directory. The folder name is always the first two characters
// of the hash.
func (o ObjectEntry) Bucket() string {
	return o.Hash[:2]
}

// StoragePath returns the object's slash-separated path relative to the
// objects/ directory.
func (o ObjectEntry) StoragePath() string {
	return o.Bucket() + "/" + o.Hash
}

// IndexSelector is a two-case sum type that selects an asset index either
// by an explicit file path or by a version label. The zero value selects
// neither and falls back to the last index file in the indexes/ folder, in
// the order the filesystem lists them. That fallback is a best effort
// default, not a guarantee of the newest version.
type IndexSelector struct {
	path  string
	label string
}

// IndexFilePath selects an index by explicit file path.
func IndexFilePath(path string) IndexSelector {
	return IndexSelector{path: path}
}

// IndexVersion selects an index by version label, resolved to
// `<indexes-dir>/<label>.json`.
func IndexVersion(label string) IndexSelector {
	return IndexSelector{label: label}
}

// ParseIndexSelector interprets input as a file path if a file of that
// name exists, and as a version label otherwise.
func ParseIndexSelector(input string) IndexSelector {
	if isFile(input) {
		return IndexFilePath(input)
	}
	return IndexVersion(input)
}

// resolveIndexFile locates the index file selected by sel inside
// indexesDir and returns its path.
func resolveIndexFile(indexesDir string, sel IndexSelector) (string, error) {
	switch {
	case sel.path != "":
		return sel.path, nil

	case sel.label != "":
		path := filepath.Join(indexesDir, sel.label+".json")
		if !isFile(path) {
			return "", fmt.Errorf("%w: %s", ErrMissingIndexFile, path)
		}
		return path, nil

	default:
		return lastIndexFile(indexesDir)
	}
}

// lastIndexFile returns the last file in indexesDir in the order the
// filesystem reports them. Readdirnames is used instead of os.ReadDir to
// keep the directory's natural listing order, which os.ReadDir would sort.
func lastIndexFile(indexesDir string) (string, error) {
	dir, err := os.Open(indexesDir)
	if err != nil {
		return "", fmt.Errorf("cannot open indexes directory: %w", err)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return "", fmt.Errorf("cannot list indexes directory: %w", err)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrMissingIndexFile, indexesDir)
	}
	return filepath.Join(indexesDir, names[len(names)-1]), nil
}

// loadIndexFile reads and parses the index file at path. Parse failures
// are fatal for the whole run, there is no partial-index recovery.
func loadIndexFile(path string) (*IndexFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read index file: %w", err)
	}

	var index IndexFile
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("cannot parse index file %s: %w", path, err)
	}

	// a hash shorter than its bucket name cannot be addressed
	for logicalPath, object := range index.Objects {
		if len(object.Hash) < 2 {
			return nil, fmt.Errorf("cannot parse index file %s: object %q has invalid hash %q", path, logicalPath, object.Hash)
		}
	}

	return &index, nil
}
