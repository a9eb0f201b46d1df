// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package commands wires up the eegprep command line interface.
package commands

import "github.com/spf13/cobra"

func Execute() error {
	root := &cobra.Command{
		Use:          "eegprep",
		Short:        "Preprocess multi-session EEG recordings",
		SilenceUsage: true,
	}

	root.AddCommand(preprocessCmd())
	return root.Execute()
}
