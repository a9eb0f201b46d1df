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

// AverageReference selects the cross-channel average as the spatial
// reference.
const AverageReference = "average"

// ReReference recomputes every channel relative to the given
// reference. With AverageReference, the mean across all channels is
// subtracted at each sample, so the cross-channel mean of the result
// is zero everywhere. With a channel label, that channel's signal is
// subtracted from all channels (leaving the reference channel itself
// at zero). Any other value fails with ErrUnknownReference.
func ReReference(rec *Recording, ref string) (*Recording, error) {
	if ref == AverageReference {
		out := rec.Clone()
		channels := float64(out.Channels())
		for t := 0; t < out.Samples(); t++ {
			var sum float64
			for _, ch := range out.Data {
				sum += ch[t]
			}
			mean := sum / channels
			for _, ch := range out.Data {
				ch[t] -= mean
			}
		}
		return out, nil
	}

	idx := rec.ChannelIndex(ref)
	if idx < 0 {
		return nil, fmt.Errorf("reference %q: %w", ref, ErrUnknownReference)
	}

	out := rec.Clone()
	refSignal := append([]float64(nil), out.Data[idx]...)
	for _, ch := range out.Data {
		for t := range ch {
			ch[t] -= refSignal[t]
		}
	}
	return out, nil
}
