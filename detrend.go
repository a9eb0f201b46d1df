// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package eegprep

// Detrend subtracts the least-squares straight line from each channel
// independently, removing slow drifts and constant offsets. It is not
// part of the fixed conditioning chain.
func Detrend(rec *Recording) *Recording {
	out := rec.Clone()
	for _, ch := range out.Data {
		detrendChannel(ch)
	}
	return out
}

func detrendChannel(ch []float64) {
	n := len(ch)
	if n == 0 {
		return
	}

	var sum float64
	for _, v := range ch {
		sum += v
	}
	mean := sum / float64(n)

	// Centered index mean is (n-1)/2; fit slope around it.
	tMean := float64(n-1) / 2
	var num, den float64
	for i, v := range ch {
		dt := float64(i) - tMean
		num += dt * (v - mean)
		den += dt * dt
	}

	slope := 0.0
	if den > 0 {
		slope = num / den
	}
	for i := range ch {
		ch[i] -= mean + slope*(float64(i)-tMean)
	}
}
