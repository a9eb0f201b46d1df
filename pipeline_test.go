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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenPSG/eegprep"
)

// noisySession builds a two-channel session with mixed-frequency
// content and a few missing samples, as raw exports tend to have.
func noisySession(t *testing.T, samples, rate int) *eegprep.Recording {
	t.Helper()

	data := make([][]float64, 2)
	for c := range data {
		data[c] = make([]float64, samples)
		for s := range data[c] {
			tt := float64(s) / float64(rate)
			data[c][s] = 20*math.Sin(2*math.Pi*10*tt) + 5*math.Sin(2*math.Pi*50*tt) + float64(c)
		}
	}
	data[0][samples/3] = math.NaN()
	data[1][0] = math.NaN()
	data[1][samples-1] = math.Inf(1)

	rec, err := eegprep.NewRecording([]string{"EEG Fpz-Cz", "EEG Pz-Oz"}, rate, data)
	require.NoError(t, err)
	return rec
}

func TestPipelineFlaggedSubject(t *testing.T) {
	sessions := eegprep.SessionSet{
		noisySession(t, 1000, 250),
		noisySession(t, 1000, 250),
		noisySession(t, 1000, 250),
	}

	pipe := eegprep.Pipeline{
		Cohort:      eegprep.NewCohort("sub-03"),
		Conditioner: eegprep.DefaultConditioner(),
	}

	out, err := pipe.Run("sub-03", sessions)
	require.NoError(t, err)
	require.Len(t, out, 4)

	wantSamples := []int{1000, 1000, 500, 500}
	for i, rec := range out {
		assert.Equal(t, wantSamples[i], rec.Samples(), "session %d", i+1)
		assert.Equal(t, 2, rec.Channels(), "session %d", i+1)
		assert.Equal(t, 250, rec.SampleRate, "session %d", i+1)

		// Conditioning leaves no gaps and a zero cross-channel mean.
		for _, ch := range rec.Data {
			for _, v := range ch {
				require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			}
		}
		for s := 0; s < rec.Samples(); s++ {
			var sum float64
			for _, ch := range rec.Data {
				sum += ch[s]
			}
			assert.InDelta(t, 0, sum, 1e-9)
		}
	}

	// The raw sessions are left as loaded.
	require.Len(t, sessions, 3)
	assert.True(t, math.IsNaN(sessions[1].Data[0][333]))
}

func TestPipelineUnflaggedSubject(t *testing.T) {
	sessions := eegprep.SessionSet{
		noisySession(t, 1000, 250),
		noisySession(t, 1000, 250),
	}

	pipe := eegprep.Pipeline{
		Cohort:      eegprep.NewCohort("sub-03"),
		Conditioner: eegprep.DefaultConditioner(),
	}

	out, err := pipe.Run("sub-01", sessions)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 1000, out[0].Samples())
}

func TestPipelineEmptySessionSet(t *testing.T) {
	pipe := eegprep.Pipeline{Conditioner: eegprep.DefaultConditioner()}

	_, err := pipe.Run("sub-01", nil)
	require.ErrorIs(t, err, eegprep.ErrNoSessions)
}

func TestConditionerBadReference(t *testing.T) {
	c := eegprep.DefaultConditioner()
	c.Reference = "EEG Oz-A1"

	_, err := c.Condition(noisySession(t, 1000, 250))
	require.ErrorIs(t, err, eegprep.ErrUnknownReference)
}
