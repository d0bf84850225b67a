// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"github.com/spf13/cobra"

	"github.com/AleutianAI/aoc/cmd/aoc/config"
	"github.com/AleutianAI/aoc/pkg/ux"
)

func (c *cli) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the aoc.yaml configuration file",
		// The file may not exist or may be invalid yet, so the root setup
		// is skipped for every config subcommand.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to --config",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := config.WriteDefault(c.fsys, c.configPath); err != nil {
				return err
			}
			ux.NewTheme(c.stderr).Status(c.stderr, ux.IconSuccess, "wrote "+c.configPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check --config without running anything",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if _, err := config.LoadFile(c.fsys, c.configPath); err != nil {
				return err
			}
			ux.NewTheme(c.stderr).Status(c.stderr, ux.IconSuccess, c.configPath+" is valid")
			return nil
		},
	})
	return cmd
}
