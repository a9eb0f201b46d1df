// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package edf reads and writes EEG recordings as EDF (European Data
// Format) files. Unlike a general-purpose EDF library it loads and
// stores whole recordings at once: every signal must share one
// sampling rate, which is what the preprocessing pipeline requires.
package edf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/OpenPSG/eegprep"
)

// Read parses an EDF file and loads every signal into one Recording.
// All signals must have the same samples-per-record count, and the
// resulting sampling rate must be a whole number of Hz.
func Read(r io.Reader) (*eegprep.Recording, error) {
	br := bufio.NewReader(r)

	b := make([]byte, 256)
	if _, err := io.ReadFull(br, b); err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	headerBytes, err := strconv.Atoi(strings.TrimSpace(string(b[184:192])))
	if err != nil {
		return nil, fmt.Errorf("error parsing header bytes: %w", err)
	}
	dataRecords, err := strconv.Atoi(strings.TrimSpace(string(b[236:244])))
	if err != nil {
		return nil, fmt.Errorf("error parsing number of data records: %w", err)
	}
	if dataRecords < 0 {
		return nil, fmt.Errorf("file has an unknown number of data records")
	}
	recordSeconds, err := strconv.ParseFloat(strings.TrimSpace(string(b[244:252])), 64)
	if err != nil || recordSeconds <= 0 {
		return nil, fmt.Errorf("error parsing data record duration %q", strings.TrimSpace(string(b[244:252])))
	}
	signalCount, err := strconv.Atoi(strings.TrimSpace(string(b[252:256])))
	if err != nil {
		return nil, fmt.Errorf("error parsing signal count: %w", err)
	}
	if signalCount < 1 {
		return nil, fmt.Errorf("file contains no signals")
	}

	// The signal header stores each field contiguously for all
	// signals: ns labels, then ns transducer types, and so on.
	sig := make([]byte, signalCount*256)
	if _, err := io.ReadFull(br, sig); err != nil {
		return nil, fmt.Errorf("error reading signal headers: %w", err)
	}
	off := 0
	field := func(size int) []string {
		vals := make([]string, signalCount)
		for i := range vals {
			vals[i] = strings.TrimSpace(string(sig[off : off+size]))
			off += size
		}
		return vals
	}

	labels := field(16)
	field(80) // transducer type
	field(8)  // physical dimension
	physMin := parseFloats(field(8))
	physMax := parseFloats(field(8))
	digMin := parseInts(field(8))
	digMax := parseInts(field(8))
	field(80) // prefiltering
	samplesPerRecord := parseInts(field(8))
	field(32) // reserved

	spr := samplesPerRecord[0]
	for i, s := range samplesPerRecord {
		if s != spr {
			return nil, fmt.Errorf("signal %q has %d samples per record, expected %d", labels[i], s, spr)
		}
	}
	if spr < 1 {
		return nil, fmt.Errorf("invalid samples per record: %d", spr)
	}
	rate := float64(spr) / recordSeconds
	sampleRate := int(math.Round(rate))
	if sampleRate < 1 || math.Abs(rate-float64(sampleRate)) > 1e-9 {
		return nil, fmt.Errorf("non-integral sampling rate %g Hz", rate)
	}

	// Skip any extra header bytes beyond the standard layout.
	if extra := headerBytes - 256 - signalCount*256; extra > 0 {
		if _, err := io.CopyN(io.Discard, br, int64(extra)); err != nil {
			return nil, fmt.Errorf("error skipping header padding: %w", err)
		}
	}

	data := make([][]float64, signalCount)
	for i := range data {
		data[i] = make([]float64, 0, dataRecords*spr)
	}

	buf := make([]byte, spr*2)
	for record := 0; record < dataRecords; record++ {
		for i := 0; i < signalCount; i++ {
			if _, err := io.ReadFull(br, buf); err != nil {
				return nil, fmt.Errorf("error reading record %d: %w", record, err)
			}
			for s := 0; s < spr; s++ {
				digital := int16(binary.LittleEndian.Uint16(buf[s*2:]))
				data[i] = append(data[i], physicalValue(digital, digMin[i], digMax[i], physMin[i], physMax[i]))
			}
		}
	}

	return eegprep.NewRecording(labels, sampleRate, data)
}

// Load reads the named EDF file from dir.
func Load(dir, filename string) (*eegprep.Recording, error) {
	f, err := os.Open(filepath.Join(dir, filename))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rec, nil
}

// physicalValue converts a stored digital sample to a physical value
// using the per-signal calibration factors.
func physicalValue(digital int16, dmin, dmax int, pmin, pmax float64) float64 {
	if dmax == dmin {
		return 0 // Avoid division by zero
	}
	return pmin + (float64(digital)-float64(dmin))*(pmax-pmin)/float64(dmax-dmin)
}

func parseFloats(fields []string) []float64 {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			v = 0
		}
		vals[i] = v
	}
	return vals
}

func parseInts(fields []string) []int {
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			v = 0
		}
		vals[i] = v
	}
	return vals
}
