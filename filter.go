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

// notchQ is the quality factor of the line-noise notch. Q = f0/bw, so
// a 50 Hz notch suppresses roughly a 1.7 Hz band around the line.
const notchQ = 30.0

// butterworthQ yields a maximally flat second-order response.
const butterworthQ = 1 / math.Sqrt2

// maxEdgePad bounds the reflected ramp prepended and appended before
// zero-phase filtering to damp startup transients.
const maxEdgePad = 256

// NotchFilter suppresses the narrow band around freq and each integer
// harmonic below the Nyquist frequency, using a zero-phase
// forward-backward biquad so no time delay is introduced. freq must
// lie strictly between 0 and SampleRate/2.
func NotchFilter(rec *Recording, freq float64) (*Recording, error) {
	nyquist := float64(rec.SampleRate) / 2
	if freq <= 0 || freq >= nyquist {
		return nil, fmt.Errorf("notch at %g Hz with %d Hz sampling: %w", freq, rec.SampleRate, ErrFrequencyRange)
	}

	out := rec.Clone()
	for line := freq; line < nyquist; line += freq {
		f := notchBiquad(line, float64(rec.SampleRate), notchQ)
		for _, ch := range out.Data {
			filtfilt(f, ch)
		}
	}
	return out, nil
}

// BandpassFilter retains frequency content in [low, high] Hz using a
// zero-phase Butterworth low-pass at high cascaded with a high-pass at
// low. A low of 0 degrades to a pure low-pass. The passband must
// satisfy 0 <= low < high < SampleRate/2.
func BandpassFilter(rec *Recording, low, high float64) (*Recording, error) {
	nyquist := float64(rec.SampleRate) / 2
	if low < 0 || low >= high || high >= nyquist {
		return nil, fmt.Errorf("passband [%g, %g] Hz with %d Hz sampling: %w", low, high, rec.SampleRate, ErrFrequencyRange)
	}

	out := rec.Clone()
	lp := lowpassBiquad(high, float64(rec.SampleRate))
	for _, ch := range out.Data {
		filtfilt(lp, ch)
	}
	if low > 0 {
		hp := highpassBiquad(low, float64(rec.SampleRate))
		for _, ch := range out.Data {
			filtfilt(hp, ch)
		}
	}
	return out, nil
}

// biquad is a normalized second-order IIR section (a0 folded into the
// remaining coefficients).
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// notchBiquad places a unit-gain zero pair on the unit circle at freq,
// with pole radius set by the quality factor q.
func notchBiquad(freq, rate, q float64) biquad {
	w0 := 2 * math.Pi * freq / rate
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)
	a0 := 1 + alpha
	return biquad{
		b0: 1 / a0,
		b1: -2 * cosw0 / a0,
		b2: 1 / a0,
		a1: -2 * cosw0 / a0,
		a2: (1 - alpha) / a0,
	}
}

// lowpassBiquad is a second-order Butterworth low-pass at freq.
func lowpassBiquad(freq, rate float64) biquad {
	w0 := 2 * math.Pi * freq / rate
	alpha := math.Sin(w0) / (2 * butterworthQ)
	cosw0 := math.Cos(w0)
	a0 := 1 + alpha
	return biquad{
		b0: (1 - cosw0) / 2 / a0,
		b1: (1 - cosw0) / a0,
		b2: (1 - cosw0) / 2 / a0,
		a1: -2 * cosw0 / a0,
		a2: (1 - alpha) / a0,
	}
}

// highpassBiquad is a second-order Butterworth high-pass at freq.
func highpassBiquad(freq, rate float64) biquad {
	w0 := 2 * math.Pi * freq / rate
	alpha := math.Sin(w0) / (2 * butterworthQ)
	cosw0 := math.Cos(w0)
	a0 := 1 + alpha
	return biquad{
		b0: (1 + cosw0) / 2 / a0,
		b1: -(1 + cosw0) / a0,
		b2: (1 + cosw0) / 2 / a0,
		a1: -2 * cosw0 / a0,
		a2: (1 - alpha) / a0,
	}
}

// apply runs the section over x in place (direct form II transposed),
// starting from a zero state.
func (f biquad) apply(x []float64) {
	var z1, z2 float64
	for i, v := range x {
		y := f.b0*v + z1
		z1 = f.b1*v - f.a1*y + z2
		z2 = f.b2*v - f.a2*y
		x[i] = y
	}
}

// filtfilt applies the section forward and backward over x in place,
// cancelling the section's phase response. The signal is extended at
// both ends with an odd reflection so the filter state has settled by
// the time the real samples begin.
func filtfilt(f biquad, x []float64) {
	if len(x) < 2 {
		return
	}
	pad := len(x) - 1
	if pad > maxEdgePad {
		pad = maxEdgePad
	}

	n := len(x)
	ext := make([]float64, pad+n+pad)
	for i := 0; i < pad; i++ {
		ext[i] = 2*x[0] - x[pad-i]
	}
	copy(ext[pad:], x)
	for i := 0; i < pad; i++ {
		ext[pad+n+i] = 2*x[n-1] - x[n-2-i]
	}

	f.apply(ext)
	reverse(ext)
	f.apply(ext)
	reverse(ext)

	copy(x, ext[pad:pad+n])
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
