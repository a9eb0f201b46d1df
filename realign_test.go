// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package eegprep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenPSG/eegprep"
)

// rampRecording builds a recording whose sample values encode their
// channel and time index, so slices can be checked exactly.
func rampRecording(t *testing.T, channels, samples, rate int) *eegprep.Recording {
	t.Helper()

	labels := make([]string, channels)
	data := make([][]float64, channels)
	for c := range data {
		labels[c] = []string{"EEG Fpz-Cz", "EEG Pz-Oz", "EEG C3-A2", "EEG C4-A1"}[c%4]
		data[c] = make([]float64, samples)
		for s := range data[c] {
			data[c][s] = float64(c*100000 + s)
		}
	}

	rec, err := eegprep.NewRecording(labels, rate, data)
	require.NoError(t, err)
	return rec
}

func TestRealignFinalSession(t *testing.T) {
	sessions := eegprep.SessionSet{
		rampRecording(t, 2, 1000, 250),
		rampRecording(t, 2, 1000, 250),
		rampRecording(t, 2, 1000, 250),
	}

	out, err := eegprep.RealignFinalSession(sessions)
	require.NoError(t, err)
	require.Len(t, out, 4)

	// Preceding sessions pass through untouched.
	assert.Same(t, sessions[0], out[0])
	assert.Same(t, sessions[1], out[1])

	// The last session is split into two equal halves.
	assert.Equal(t, 500, out[2].Samples())
	assert.Equal(t, 500, out[3].Samples())
	for _, half := range out[2:] {
		assert.Equal(t, sessions[2].Labels, half.Labels)
		assert.Equal(t, sessions[2].SampleRate, half.SampleRate)
	}

	// Concatenating the halves reproduces the original final session.
	for c := 0; c < 2; c++ {
		joined := append(append([]float64(nil), out[2].Data[c]...), out[3].Data[c]...)
		assert.Equal(t, sessions[2].Data[c], joined)
	}

	// The input set keeps its original length and contents.
	require.Len(t, sessions, 3)
	assert.Equal(t, 1000, sessions[2].Samples())
}

func TestRealignFinalSessionOddSamples(t *testing.T) {
	sessions := eegprep.SessionSet{rampRecording(t, 2, 11, 250)}

	out, err := eegprep.RealignFinalSession(sessions)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// The second half takes the extra sample.
	assert.Equal(t, 5, out[0].Samples())
	assert.Equal(t, 6, out[1].Samples())
}

func TestRealignFinalSessionErrors(t *testing.T) {
	_, err := eegprep.RealignFinalSession(nil)
	require.ErrorIs(t, err, eegprep.ErrNoSessions)

	_, err = eegprep.RealignFinalSession(eegprep.SessionSet{rampRecording(t, 2, 1, 250)})
	require.ErrorIs(t, err, eegprep.ErrSessionTooShort)

	// Mismatched sessions are rejected before any splitting.
	mixed := eegprep.SessionSet{
		rampRecording(t, 2, 100, 250),
		rampRecording(t, 3, 100, 250),
	}
	_, err = eegprep.RealignFinalSession(mixed)
	require.ErrorIs(t, err, eegprep.ErrShapeMismatch)
}
