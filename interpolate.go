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

// InterpolateNaNs replaces every non-finite sample by linear
// interpolation between the nearest finite samples of the same
// channel. Non-finite runs at the start or end of a channel are filled
// with the nearest finite value rather than extrapolated, so edge
// values stay bounded. A channel without a single finite sample fails
// with ErrChannelAllNaN.
func InterpolateNaNs(rec *Recording) (*Recording, error) {
	out := rec.Clone()
	for i, ch := range out.Data {
		if err := interpolateChannel(ch); err != nil {
			return nil, fmt.Errorf("channel %q: %w", out.Labels[i], err)
		}
	}
	return out, nil
}

// interpolateChannel fills non-finite samples of a single channel in
// place. Channels are independent; no state crosses this call.
func interpolateChannel(ch []float64) error {
	first := -1
	for i, v := range ch {
		if isFinite(v) {
			first = i
			break
		}
	}
	if first == -1 {
		return ErrChannelAllNaN
	}

	// Leading gap: constant extension of the first finite value.
	for i := 0; i < first; i++ {
		ch[i] = ch[first]
	}

	prev := first
	for i := first + 1; i < len(ch); i++ {
		if !isFinite(ch[i]) {
			continue
		}
		if i > prev+1 {
			step := (ch[i] - ch[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				ch[j] = ch[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}

	// Trailing gap: constant extension of the last finite value.
	for i := prev + 1; i < len(ch); i++ {
		ch[i] = ch[prev]
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
