// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/OpenPSG/eegprep"
)

const (
	digitalMin = -32768
	digitalMax = 32767
)

// Write stores a recording as an EDF file using one-second data
// records. The record count is known up front, so the header is
// written once and never revisited. If the sample count is not a
// multiple of the sampling rate, the final record is padded with
// zeros; readers then see the recording rounded up to a whole second.
func Write(w io.Writer, rec *eegprep.Recording) error {
	spr := rec.SampleRate
	total := rec.Samples()
	records := (total + spr - 1) / spr
	signalCount := rec.Channels()

	// Per-channel calibration spanning the observed amplitude range.
	physMin := make([]float64, signalCount)
	physMax := make([]float64, signalCount)
	for i, ch := range rec.Data {
		lo, hi := 0.0, 0.0
		for _, v := range ch {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		// The header stores calibration with two decimals; convert
		// with the same rounded bounds so reads invert writes.
		lo = math.Floor(lo*100) / 100
		hi = math.Ceil(hi*100) / 100
		if hi == lo {
			hi = lo + 1 // Avoid a zero calibration range.
		}
		physMin[i], physMax[i] = lo, hi
	}

	bw := bufio.NewWriter(w)
	now := time.Now().UTC()

	// Fixed 256-byte header.
	fmt.Fprintf(bw, "%-8s", "0")
	fmt.Fprintf(bw, "%-80s", "X")
	fmt.Fprintf(bw, "%-80s", "Startdate X X X X")
	fmt.Fprintf(bw, "%-8s", now.Format("02.01.06"))
	fmt.Fprintf(bw, "%-8s", now.Format("15.04.05"))
	fmt.Fprintf(bw, "%-8d", 256+signalCount*256)
	fmt.Fprintf(bw, "%-44s", "")
	fmt.Fprintf(bw, "%-8d", records)
	fmt.Fprintf(bw, "%-8d", 1)
	fmt.Fprintf(bw, "%-4d", signalCount)

	// Per-signal fields, each field contiguous for all signals.
	for _, label := range rec.Labels {
		fmt.Fprintf(bw, "%-16s", label)
	}
	for i := 0; i < signalCount; i++ {
		fmt.Fprintf(bw, "%-80s", "")
	}
	for i := 0; i < signalCount; i++ {
		fmt.Fprintf(bw, "%-8s", "uV")
	}
	for i := 0; i < signalCount; i++ {
		bw.WriteString(formatPhysical(physMin[i]))
	}
	for i := 0; i < signalCount; i++ {
		bw.WriteString(formatPhysical(physMax[i]))
	}
	for i := 0; i < signalCount; i++ {
		fmt.Fprintf(bw, "%-8d", digitalMin)
	}
	for i := 0; i < signalCount; i++ {
		fmt.Fprintf(bw, "%-8d", digitalMax)
	}
	for i := 0; i < signalCount; i++ {
		fmt.Fprintf(bw, "%-80s", "")
	}
	for i := 0; i < signalCount; i++ {
		fmt.Fprintf(bw, "%-8d", spr)
	}
	for i := 0; i < signalCount; i++ {
		fmt.Fprintf(bw, "%-32s", "")
	}

	for record := 0; record < records; record++ {
		for i, ch := range rec.Data {
			for s := 0; s < spr; s++ {
				var v float64
				if idx := record*spr + s; idx < total {
					v = ch[idx]
				}
				digital := digitalValue(v, physMin[i], physMax[i])
				if err := binary.Write(bw, binary.LittleEndian, digital); err != nil {
					return fmt.Errorf("error writing record %d: %w", record, err)
				}
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}
	return nil
}

// Save writes the recording to dir/filename, creating dir if needed.
func Save(rec *eegprep.Recording, dir, filename string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return err
	}
	if err := Write(f, rec); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", filename, err)
	}
	return f.Close()
}

// digitalValue converts a physical value to its stored digital sample
// using the calibration factors.
func digitalValue(physical, pmin, pmax float64) int16 {
	if pmax == pmin {
		return 0 // Avoid division by zero
	}
	digital := (physical-pmin)*float64(digitalMax-digitalMin)/(pmax-pmin) + float64(digitalMin)
	if digital < float64(digitalMin) {
		return digitalMin
	}
	if digital > float64(digitalMax) {
		return digitalMax
	}
	return int16(digital)
}

// formatPhysical renders a calibration bound into its fixed 8-byte
// field, dropping decimals when the value would not fit.
func formatPhysical(val float64) string {
	s := fmt.Sprintf("%.2f", val)
	if len(s) > 8 {
		s = fmt.Sprintf("%.0f", val)
	}
	return fmt.Sprintf("%-8s", s)
}
