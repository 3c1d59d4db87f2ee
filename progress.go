// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

// ProgressFunc receives one event per entry before the entry is processed.
// index starts at 1 and increases monotonically up to total, which stays
// constant for the whole pass. Events are delivered synchronously; the
// extractor blocks until the function returns.
type ProgressFunc func(index, total int)

// NoopProgress is a progress hook that discards all events.
func NoopProgress(index, total int) {
	// noop
}
