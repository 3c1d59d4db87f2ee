// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"context"
	"encoding/json"
	"time"
)

// now is a function pointer that returns time.Now to the caller.
var now = time.Now

// TelemetryData holds all telemetry data of one extraction pass.
type TelemetryData struct {
	// ExtractedDirs is the number of created directories
	ExtractedDirs int64

	// ExtractedFiles is the number of extracted files
	ExtractedFiles int64

	// ExtractionDuration is the time the pass took
	ExtractionDuration time.Duration

	// ExtractedType is the kind of pass (e.g. "zip", "hashed")
	ExtractedType string

	// SkippedEntries is the number of container entries outside the
	// selected subtrees
	SkippedEntries int64

	// Warnings is the number of per-entry failures that did not abort
	// the pass
	Warnings int64

	// LastWarning is the most recent per-entry failure
	LastWarning error
}

// String returns a string representation of [TelemetryData].
func (d TelemetryData) String() string {
	b, _ := json.Marshal(d)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (d TelemetryData) MarshalJSON() ([]byte, error) {
	var lastWarning string
	if d.LastWarning != nil {
		lastWarning = d.LastWarning.Error()
	}

	type Alias TelemetryData
	return json.Marshal(&struct {
		LastWarning string `json:"LastWarning"`
		*Alias
	}{
		LastWarning: lastWarning,
		Alias:       (*Alias)(&d),
	})
}

// TelemetryHook is a function type that consumes [TelemetryData] after an
// extraction pass has finished, for example to log a summary.
type TelemetryHook func(context.Context, *TelemetryData)

// NoopTelemetryHook is a no operation telemetry hook.
func NoopTelemetryHook(ctx context.Context, d *TelemetryData) {
	// noop
}

// captureExtractionDuration captures the duration of the extraction
func captureExtractionDuration(d *TelemetryData, start time.Time) {
	stop := now()
	d.ExtractionDuration = stop.Sub(start)
}
