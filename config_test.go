// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/mcasset/extract"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := extract.NewConfig()

	assert.False(t, cfg.Assets())
	assert.False(t, cfg.Data())
	assert.False(t, cfg.IgnoreTopLevel())
	assert.Empty(t, cfg.HashedAssetsDir())
	assert.NotNil(t, cfg.Logger())
	assert.NotNil(t, cfg.Platform())
	assert.NotNil(t, cfg.Progress())
	assert.NotNil(t, cfg.TelemetryHook())
}

func TestNewConfigOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := extract.NewConfig(
		extract.WithAssets(true),
		extract.WithData(true),
		extract.WithIgnoreTopLevel(true),
		extract.WithHashedAssetsDir("/tmp/assets"),
		extract.WithLogger(logger),
		extract.WithPlatform(noPlatform{}),
	)

	assert.True(t, cfg.Assets())
	assert.True(t, cfg.Data())
	assert.True(t, cfg.IgnoreTopLevel())
	assert.Equal(t, "/tmp/assets", cfg.HashedAssetsDir())

	_, ok := cfg.Platform().GameDir()
	assert.False(t, ok)
}

func TestTelemetryDataString(t *testing.T) {
	td := &extract.TelemetryData{
		ExtractedType:  "zip",
		ExtractedFiles: 3,
	}

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal([]byte(td.String()), &decoded))
	assert.Equal(t, "zip", decoded["ExtractedType"])
	assert.Equal(t, float64(3), decoded["ExtractedFiles"])
	assert.Equal(t, "", decoded["LastWarning"])
}

func TestNoopHooks(t *testing.T) {
	// both must be safe with arbitrary input
	extract.NoopProgress(1, 10)
	extract.NoopTelemetryHook(context.Background(), &extract.TelemetryData{})
}
