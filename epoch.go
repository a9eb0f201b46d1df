// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package eegprep

import (
	"fmt"
	"math"
)

// Epochs segments a recording into fixed-duration windows beginning at
// the given start times (seconds from the start of the recording).
// Each epoch spans duration*SampleRate samples, end-exclusive, so
// back-to-back epochs do not share a sample. Windows must lie entirely
// inside the recording and duration must be positive.
func Epochs(rec *Recording, startTimes []float64, duration float64) ([]*Recording, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration %g s: %w", duration, ErrBadEpochWindow)
	}
	length := int(math.Round(duration * float64(rec.SampleRate)))
	if length < 1 {
		return nil, fmt.Errorf("duration %g s is shorter than one sample at %d Hz: %w",
			duration, rec.SampleRate, ErrBadEpochWindow)
	}

	epochs := make([]*Recording, 0, len(startTimes))
	for _, st := range startTimes {
		start := int(math.Round(st * float64(rec.SampleRate)))
		if start < 0 || start+length > rec.Samples() {
			return nil, fmt.Errorf("epoch at %g s (+%g s) outside %d samples: %w",
				st, duration, rec.Samples(), ErrBadEpochWindow)
		}
		epochs = append(epochs, rec.slice(start, start+length))
	}
	return epochs, nil
}
