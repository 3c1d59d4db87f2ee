// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package extract reproduces a game's logical asset tree from its on-disk
// storage representations.
//
// Most assets ship inside a version's jar (or zip) container with their
// logical paths intact, while others live in a content-addressed object
// store whose files are named by hash and located through a JSON index.
// [ExtractArchive] handles the former, [ExtractHashed] the latter, and
// [ExtractVersion] composes both by resolving a version directory to its
// container and manifest.
//
// Configuration is done using the [Config], which selects the extracted
// subtrees, the logger, the progress hook and the telemetry hook.
// [TelemetryData] is captured during every extraction pass.
package extract
