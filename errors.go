// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

package xpress

import "errors"

// Sentinel errors for compression.
var (
	// ErrOutputOverrun is returned when the destination buffer cannot hold the
	// compressed stream. Size destinations with MaxCompressedSize to avoid it.
	// After this error the destination contents are undefined.
	ErrOutputOverrun = errors.New("output overrun")

	// ErrCompressInternal is returned when the compressor hits an internal
	// invariant violation. Callers can use errors.Is(err, xpress.ErrCompressInternal).
	ErrCompressInternal = errors.New("internal compressor error")
)
