// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package config loads the JSON run configuration for the
// preprocessing CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config describes one preprocessing run: where the raw session files
// live, which subjects to process, which of them need their final
// session realigned, and the conditioning parameters.
type Config struct {
	DataDir         string   `json:"data_dir"`
	OutDir          string   `json:"out_dir"`
	Subjects        []string `json:"subjects"`
	Sessions        int      `json:"sessions_per_subject"`
	RealignSubjects []string `json:"realign_subjects,omitempty"`
	NotchHz         float64  `json:"notch_hz,omitempty"`
	LowHz           float64  `json:"low_hz,omitempty"`
	HighHz          float64  `json:"high_hz,omitempty"`
	Reference       string   `json:"reference,omitempty"`
}

// Load reads and validates a configuration file, filling in the
// conventional EEG defaults (50 Hz notch, 1-40 Hz passband, average
// reference) for omitted filter parameters.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.NotchHz == 0 {
		cfg.NotchHz = 50
	}
	if cfg.LowHz == 0 && cfg.HighHz == 0 {
		cfg.LowHz, cfg.HighHz = 1, 40
	}
	if cfg.Reference == "" {
		cfg.Reference = "average"
	}

	if cfg.DataDir == "" || cfg.OutDir == "" {
		return nil, fmt.Errorf("config must set data_dir and out_dir")
	}
	if len(cfg.Subjects) == 0 {
		return nil, fmt.Errorf("config must list at least one subject")
	}
	if cfg.Sessions < 1 {
		return nil, fmt.Errorf("config must set sessions_per_subject to at least 1")
	}
	return &cfg, nil
}
