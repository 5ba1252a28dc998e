// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sigil-dev/lattice/internal/config"
)

func newActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the actions the configured store registers",
		Long:  "Load configuration, register the configured document store, and print its registry entries.",
		RunE:  runActions,
	}
}

func runActions(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	log := newLogger(verbose)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	rt, err := WireRuntime(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tKEY\tACTION")
	for _, e := range rt.Registry.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Category, e.Key, e.Action.Name())
	}
	return w.Flush()
}
