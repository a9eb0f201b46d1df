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

// RealignFinalSession splits the last recording of a session set at
// its temporal midpoint so that the set grows from N to N+1 sessions.
// The first half keeps samples [0, T/2), the second half samples
// [T/2, T); for an odd sample count the second half is one sample
// longer. All preceding sessions are passed through unmodified, and
// the input set itself is never mutated.
func RealignFinalSession(sessions SessionSet) (SessionSet, error) {
	if len(sessions) == 0 {
		return nil, ErrNoSessions
	}
	if err := sessions.validate(); err != nil {
		return nil, err
	}

	last := sessions[len(sessions)-1]
	total := last.Samples()
	if total < 2 {
		return nil, fmt.Errorf("final session has %d samples: %w", total, ErrSessionTooShort)
	}
	mid := total / 2

	out := make(SessionSet, 0, len(sessions)+1)
	out = append(out, sessions[:len(sessions)-1]...)
	out = append(out, last.slice(0, mid), last.slice(mid, total))
	return out, nil
}
