// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenPSG/eegprep"
	"github.com/OpenPSG/eegprep/edf"
)

func TestRoundTrip(t *testing.T) {
	const rate = 128
	const samples = 2 * rate

	data := make([][]float64, 2)
	for c := range data {
		data[c] = make([]float64, samples)
		for s := range data[c] {
			data[c][s] = 100 * math.Sin(2*math.Pi*float64(c+1)*10*float64(s)/rate)
		}
	}
	rec, err := eegprep.NewRecording([]string{"EEG Fpz-Cz", "EEG Pz-Oz"}, rate, data)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, edf.Save(rec, dir, "sub-01_ses-01_raw.edf"))

	got, err := edf.Load(dir, "sub-01_ses-01_raw.edf")
	require.NoError(t, err)

	require.Equal(t, rec.Labels, got.Labels)
	require.Equal(t, rec.SampleRate, got.SampleRate)
	require.Equal(t, rec.Channels(), got.Channels())
	require.Equal(t, rec.Samples(), got.Samples())

	// Values survive within the 16-bit quantization step.
	for c := range data {
		for s := range data[c] {
			assert.InDelta(t, rec.Data[c][s], got.Data[c][s], 0.05)
		}
	}
}

func TestWritePadsFinalRecord(t *testing.T) {
	const rate = 128

	data := [][]float64{make([]float64, 300)}
	for s := range data[0] {
		data[0][s] = math.Sin(2 * math.Pi * float64(s) / 64)
	}
	rec, err := eegprep.NewRecording([]string{"EEG Fpz-Cz"}, rate, data)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, edf.Save(rec, dir, "padded.edf"))

	got, err := edf.Load(dir, "padded.edf")
	require.NoError(t, err)

	// 300 samples at 128 Hz round up to three one-second records.
	require.Equal(t, 3*rate, got.Samples())
	for s := 0; s < 300; s++ {
		assert.InDelta(t, rec.Data[0][s], got.Data[0][s], 0.001)
	}
	for s := 300; s < got.Samples(); s++ {
		assert.InDelta(t, 0, got.Data[0][s], 0.001)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := edf.Load(t.TempDir(), "absent.edf")
	require.Error(t, err)
}
