// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package eegprep

import "fmt"

// Conditioner holds the parameters of the signal-conditioning chain.
// Condition applies its stages in a fixed order: interpolation first
// (filters are undefined on missing values), the notch before the
// bandpass (remove the narrow interference line before broad shaping),
// and re-referencing last, so the spatial reference is computed from
// already-cleaned signals.
type Conditioner struct {
	NotchHz   float64 // Line frequency to suppress, including harmonics.
	LowHz     float64 // Passband lower edge; 0 disables the high-pass.
	HighHz    float64 // Passband upper edge.
	Reference string  // AverageReference or a channel label.
}

// DefaultConditioner returns the conventional EEG cleaning parameters:
// a 50 Hz line notch, a 1-40 Hz passband, and an average reference.
func DefaultConditioner() Conditioner {
	return Conditioner{
		NotchHz:   50,
		LowHz:     1,
		HighHz:    40,
		Reference: AverageReference,
	}
}

// Condition runs the full chain over a recording and returns the
// cleaned copy. The input is never modified, also when a stage fails.
func (c Conditioner) Condition(rec *Recording) (*Recording, error) {
	out, err := InterpolateNaNs(rec)
	if err != nil {
		return nil, fmt.Errorf("interpolate: %w", err)
	}
	out, err = NotchFilter(out, c.NotchHz)
	if err != nil {
		return nil, fmt.Errorf("notch: %w", err)
	}
	out, err = BandpassFilter(out, c.LowHz, c.HighHz)
	if err != nil {
		return nil, fmt.Errorf("bandpass: %w", err)
	}
	out, err = ReReference(out, c.Reference)
	if err != nil {
		return nil, fmt.Errorf("re-reference: %w", err)
	}
	return out, nil
}

// Cohort is the set of subjects whose final session must be split to
// match the session count of the rest of the study. Membership is
// supplied by the caller; this package keeps no subject state.
type Cohort map[string]struct{}

// NewCohort builds a Cohort from subject identifiers.
func NewCohort(subjects ...string) Cohort {
	c := make(Cohort, len(subjects))
	for _, s := range subjects {
		c[s] = struct{}{}
	}
	return c
}

// Contains reports whether the subject needs realignment.
func (c Cohort) Contains(subject string) bool {
	_, ok := c[subject]
	return ok
}

// Pipeline preprocesses one subject at a time: realignment for cohort
// members, then independent conditioning of every session.
type Pipeline struct {
	Cohort      Cohort
	Conditioner Conditioner
}

// Run returns the subject's cleaned sessions. Cohort members gain one
// session from the final-session split; everyone else keeps their
// session count. The input set and its recordings are left untouched.
func (p Pipeline) Run(subject string, sessions SessionSet) (SessionSet, error) {
	if len(sessions) == 0 {
		return nil, fmt.Errorf("subject %s: %w", subject, ErrNoSessions)
	}

	var err error
	if p.Cohort.Contains(subject) {
		sessions, err = RealignFinalSession(sessions)
		if err != nil {
			return nil, fmt.Errorf("subject %s: realign: %w", subject, err)
		}
	}

	out := make(SessionSet, 0, len(sessions))
	for i, rec := range sessions {
		cleaned, err := p.Conditioner.Condition(rec)
		if err != nil {
			return nil, fmt.Errorf("subject %s session %d: %w", subject, i+1, err)
		}
		out = append(out, cleaned)
	}
	return out, nil
}
