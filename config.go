// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"io"
	"log/slog"
)

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// Config provides a configuration struct and options to adjust the
// configuration of an extraction pass.
//
// The default configuration extracts nothing from containers (neither
// assets nor data is selected), keeps the subtree folders in the output,
// discards logs and progress events, and resolves default directories
// through the host platform.
type Config struct {
	// assets selects the assets/ subtree for container extraction
	assets bool

	// data selects the data/ subtree for container extraction
	data bool

	// ignoreTopLevel places subtree contents directly into the output
	// directory instead of below an assets/ or data/ folder
	ignoreTopLevel bool

	// hashedAssetsDir overrides the platform-default hashed-assets
	// directory (the one holding indexes/ and objects/)
	hashedAssetsDir string

	// index selects which asset index file to use
	index IndexSelector

	// logger stream for extraction
	logger logger

	// platform resolves OS-specific default directories
	platform Platform

	// progress is called once per entry before the entry is processed
	progress ProgressFunc

	// telemetryHook is a function to consume telemetry data after a
	// finished extraction pass
	telemetryHook TelemetryHook
}

// default values for [NewConfig]
var (
	defaultAssets          = false
	defaultData            = false
	defaultIgnoreTopLevel  = false
	defaultHashedAssetsDir = ""
	defaultLogger          = slog.New(slog.NewTextHandler(io.Discard, nil))
	defaultPlatform        = Platform(hostPlatform{})
	defaultProgress        = ProgressFunc(NoopProgress)
	defaultTelemetryHook   = TelemetryHook(NoopTelemetryHook)
)

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style.
func NewConfig(opts ...ConfigOption) *Config {

	// setup default values
	config := &Config{
		assets:          defaultAssets,
		data:            defaultData,
		ignoreTopLevel:  defaultIgnoreTopLevel,
		hashedAssetsDir: defaultHashedAssetsDir,
		logger:          defaultLogger,
		platform:        defaultPlatform,
		progress:        defaultProgress,
		telemetryHook:   defaultTelemetryHook,
	}

	// apply adjustments
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// Assets returns true if the assets/ subtree is selected.
func (c *Config) Assets() bool {
	return c.assets
}

// Data returns true if the data/ subtree is selected.
func (c *Config) Data() bool {
	return c.data
}

// IgnoreTopLevel returns true if subtree contents are placed directly into
// the output directory.
func (c *Config) IgnoreTopLevel() bool {
	return c.ignoreTopLevel
}

// HashedAssetsDir returns the hashed-assets directory override, or the
// empty string if the platform default should be used.
func (c *Config) HashedAssetsDir() string {
	return c.hashedAssetsDir
}

// Index returns the configured index selector.
func (c *Config) Index() IndexSelector {
	return c.index
}

// Logger returns the logger.
func (c *Config) Logger() logger {
	return c.logger
}

// Platform returns the platform default-directory resolver.
func (c *Config) Platform() Platform {
	return c.platform
}

// Progress returns the progress hook.
func (c *Config) Progress() ProgressFunc {
	return c.progress
}

// TelemetryHook returns the telemetry hook.
func (c *Config) TelemetryHook() TelemetryHook {
	return c.telemetryHook
}

// WithAssets options pattern function to select the assets/ subtree.
func WithAssets(selected bool) ConfigOption {
	return func(c *Config) {
		c.assets = selected
	}
}

// WithData options pattern function to select the data/ subtree.
func WithData(selected bool) ConfigOption {
	return func(c *Config) {
		c.data = selected
	}
}

// WithIgnoreTopLevel options pattern function to place subtree contents
// directly into the output directory. If not set, assets/ and data/
// folders are created in the output directory.
func WithIgnoreTopLevel(ignore bool) ConfigOption {
	return func(c *Config) {
		c.ignoreTopLevel = ignore
	}
}

// WithHashedAssetsDir options pattern function to override the
// hashed-assets directory (the one holding indexes/ and objects/).
func WithHashedAssetsDir(dir string) ConfigOption {
	return func(c *Config) {
		c.hashedAssetsDir = dir
	}
}

// WithIndex options pattern function to select the asset index file.
func WithIndex(sel IndexSelector) ConfigOption {
	return func(c *Config) {
		c.index = sel
	}
}

// WithLogger options pattern function to set a custom logger.
func WithLogger(logger logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithPlatform options pattern function to set a custom platform
// default-directory resolver.
func WithPlatform(p Platform) ConfigOption {
	return func(c *Config) {
		c.platform = p
	}
}

// WithProgress options pattern function to set a progress hook.
func WithProgress(f ProgressFunc) ConfigOption {
	return func(c *Config) {
		c.progress = f
	}
}

// WithTelemetryHook options pattern function to set a telemetry hook.
// Important: do not adjust this value after extraction started.
func WithTelemetryHook(hook TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}
