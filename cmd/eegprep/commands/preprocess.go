// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/OpenPSG/eegprep"
	"github.com/OpenPSG/eegprep/edf"
	"github.com/OpenPSG/eegprep/internal/config"
)

func preprocessCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "preprocess",
		Short: "Realign, clean, and filter every subject's sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			pipe := eegprep.Pipeline{
				Cohort: eegprep.NewCohort(cfg.RealignSubjects...),
				Conditioner: eegprep.Conditioner{
					NotchHz:   cfg.NotchHz,
					LowHz:     cfg.LowHz,
					HighHz:    cfg.HighHz,
					Reference: cfg.Reference,
				},
			}

			for _, subject := range cfg.Subjects {
				sessions := make(eegprep.SessionSet, 0, cfg.Sessions)
				for i := 1; i <= cfg.Sessions; i++ {
					rec, err := edf.Load(cfg.DataDir, rawName(subject, i))
					if err != nil {
						return fmt.Errorf("subject %s: %w", subject, err)
					}
					sessions = append(sessions, rec)
				}

				cleaned, err := pipe.Run(subject, sessions)
				if err != nil {
					return err
				}

				for i, rec := range cleaned {
					if err := edf.Save(rec, cfg.OutDir, preprocName(subject, i+1)); err != nil {
						return fmt.Errorf("subject %s: %w", subject, err)
					}
				}
				color.Green("%s: %d sessions preprocessed", subject, len(cleaned))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "eegprep.json", "path to the run configuration")
	return cmd
}

func rawName(subject string, session int) string {
	return fmt.Sprintf("%s_ses-%02d_raw.edf", subject, session)
}

func preprocName(subject string, session int) string {
	return fmt.Sprintf("%s_ses-%02d_preproc.edf", subject, session)
}
