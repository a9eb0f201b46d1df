// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package eegprep preprocesses multi-session EEG recordings: it
// normalizes session counts across subjects by splitting an irregular
// final session, and conditions each recording with a fixed chain of
// NaN interpolation, notch filtering, bandpass filtering, and spatial
// re-referencing.
//
// All operations are pure: they return new Recordings and never mutate
// their inputs, so a failed call leaves the caller's data intact.
package eegprep

import "fmt"

// Recording holds a continuous multi-channel signal as a channels x
// samples buffer, together with its sampling rate and channel labels.
// Channel count, labels, and sampling rate are never changed by any
// operation in this package.
type Recording struct {
	Labels     []string    // One label per channel (e.g. "EEG Fpz-Cz").
	SampleRate int         // Samples per second, > 0.
	Data       [][]float64 // Data[channel][sample].
}

// NewRecording validates the shape of data against labels and rate and
// wraps them in a Recording. Every channel must have the same length.
func NewRecording(labels []string, sampleRate int, data [][]float64) (*Recording, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate %d: %w", sampleRate, ErrShapeMismatch)
	}
	if len(labels) == 0 || len(data) != len(labels) {
		return nil, fmt.Errorf("%d labels for %d channels: %w", len(labels), len(data), ErrShapeMismatch)
	}
	for i, ch := range data {
		if len(ch) != len(data[0]) {
			return nil, fmt.Errorf("channel %q has %d samples, expected %d: %w",
				labels[i], len(ch), len(data[0]), ErrShapeMismatch)
		}
	}
	return &Recording{Labels: labels, SampleRate: sampleRate, Data: data}, nil
}

// Channels returns the number of channels.
func (r *Recording) Channels() int {
	return len(r.Data)
}

// Samples returns the number of samples per channel.
func (r *Recording) Samples() int {
	if len(r.Data) == 0 {
		return 0
	}
	return len(r.Data[0])
}

// ChannelIndex returns the index of the channel with the given label,
// or -1 if no channel carries it.
func (r *Recording) ChannelIndex(label string) int {
	for i, l := range r.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the recording. The copy shares no
// memory with the original.
func (r *Recording) Clone() *Recording {
	data := make([][]float64, len(r.Data))
	for i, ch := range r.Data {
		data[i] = append([]float64(nil), ch...)
	}
	return &Recording{
		Labels:     append([]string(nil), r.Labels...),
		SampleRate: r.SampleRate,
		Data:       data,
	}
}

// slice copies the sample range [from, to) of every channel into a new
// recording with the same labels and rate.
func (r *Recording) slice(from, to int) *Recording {
	data := make([][]float64, len(r.Data))
	for i, ch := range r.Data {
		data[i] = append([]float64(nil), ch[from:to]...)
	}
	return &Recording{
		Labels:     append([]string(nil), r.Labels...),
		SampleRate: r.SampleRate,
		Data:       data,
	}
}

// SessionSet is the ordered sequence of one subject's per-session
// recordings. All entries share the same channel count and sampling
// rate.
type SessionSet []*Recording

// validate checks the uniform channel count and sampling rate
// invariant across the set.
func (s SessionSet) validate() error {
	if len(s) == 0 {
		return nil
	}
	channels, rate := s[0].Channels(), s[0].SampleRate
	for i, rec := range s[1:] {
		if rec.Channels() != channels || rec.SampleRate != rate {
			return fmt.Errorf("session %d has %d channels at %d Hz, expected %d at %d Hz: %w",
				i+2, rec.Channels(), rec.SampleRate, channels, rate, ErrShapeMismatch)
		}
	}
	return nil
}
