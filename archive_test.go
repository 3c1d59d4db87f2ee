// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeEntry is a minimal archiveEntry for path logic tests.
type fakeEntry struct {
	name string
	dir  bool
}

func (f fakeEntry) Name() string                 { return f.name }
func (f fakeEntry) IsDir() bool                  { return f.dir }
func (f fakeEntry) Mode() fs.FileMode            { return 0 }
func (f fakeEntry) Size() int64                  { return 0 }
func (f fakeEntry) Open() (io.ReadCloser, error) { return nil, nil }

func TestCommonRoot(t *testing.T) {
	tests := []struct {
		name    string
		entries []archiveEntry
		want    string
	}{
		{
			name: "single shared root",
			entries: []archiveEntry{
				fakeEntry{"1.20.1/", true},
				fakeEntry{"1.20.1/assets/x.txt", false},
				fakeEntry{"1.20.1/data/y.txt", false},
			},
			want: "1.20.1",
		},
		{
			name: "shared root without its own entry",
			entries: []archiveEntry{
				fakeEntry{"root/assets/a", false},
				fakeEntry{"root/data/b", false},
			},
			want: "root",
		},
		{
			name: "diverging top level",
			entries: []archiveEntry{
				fakeEntry{"assets/x.txt", false},
				fakeEntry{"data/y.txt", false},
			},
			want: "",
		},
		{
			name: "top-level file blocks root",
			entries: []archiveEntry{
				fakeEntry{"1.20.1/assets/x.txt", false},
				fakeEntry{"1.20.1", false},
			},
			want: "",
		},
		{
			name:    "single top-level file",
			entries: []archiveEntry{fakeEntry{"readme.txt", false}},
			want:    "",
		},
		{
			name:    "no entries",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commonRoot(tt.entries))
		})
	}
}

func TestStrippedName(t *testing.T) {
	got, ok := strippedName("1.20.1/assets/x.txt", "1.20.1")
	assert.True(t, ok)
	assert.Equal(t, "assets/x.txt", got)

	_, ok = strippedName("1.20.1/", "1.20.1")
	assert.False(t, ok)

	got, ok = strippedName("assets/x.txt", "")
	assert.True(t, ok)
	assert.Equal(t, "assets/x.txt", got)
}

func TestMatchSubtree(t *testing.T) {
	both := NewConfig(WithAssets(true), WithData(true))
	assetsOnly := NewConfig(WithAssets(true))

	tests := []struct {
		rel  string
		cfg  *Config
		want string
	}{
		{"assets/x.txt", both, "assets"},
		{"assets/", both, "assets"},
		{"assets", both, "assets"},
		{"data/y.txt", both, "data"},
		{"data/y.txt", assetsOnly, ""},
		{"assetsy/x.txt", both, ""},
		{"net/minecraft/client.class", both, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchSubtree(tt.rel, tt.cfg), "rel=%s", tt.rel)
	}
}
