// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package eegprep

import "errors"

var (
	// ErrNoSessions indicates an empty session set was passed where at
	// least one recording is required.
	ErrNoSessions = errors.New("eegprep: session set must contain at least one recording")
	// ErrSessionTooShort indicates the final session cannot be split
	// into two non-empty halves.
	ErrSessionTooShort = errors.New("eegprep: final session needs at least 2 samples to split")
	// ErrShapeMismatch indicates recordings with inconsistent channel
	// counts, sample counts, or sampling rates.
	ErrShapeMismatch = errors.New("eegprep: recording shape and sampling rate must be consistent")
	// ErrFrequencyRange indicates a filter frequency outside the valid
	// (0, rate/2) range or a non-increasing passband.
	ErrFrequencyRange = errors.New("eegprep: filter frequency must lie strictly between 0 and the Nyquist frequency")
	// ErrChannelAllNaN indicates a channel with no finite sample, which
	// leaves interpolation without an anchor.
	ErrChannelAllNaN = errors.New("eegprep: channel has no finite samples to interpolate from")
	// ErrUnknownReference indicates a re-referencing mode that is
	// neither "average" nor an existing channel label.
	ErrUnknownReference = errors.New("eegprep: reference must be \"average\" or a channel label")
	// ErrBadEpochWindow indicates an epoch that does not fit inside the
	// recording, or a non-positive epoch duration.
	ErrBadEpochWindow = errors.New("eegprep: epoch window must lie inside the recording")
)
