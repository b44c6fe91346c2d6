package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCatalogCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the clip catalog",
	}
	cmd.AddCommand(newCatalogImportCommand(cmdCtx))
	cmd.AddCommand(newCatalogStatsCommand(cmdCtx))
	return cmd
}

func newCatalogImportCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <manifest.json>",
		Short: "Import exercises and clips from a manifest file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := cmdCtx.openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := store.ImportManifest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d exercises and %d clips into %s\n",
				summary.Exercises, summary.Clips, store.Path())
			return nil
		},
	}
}

func newCatalogStatsCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show active clip coverage per kind and archetype",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := cmdCtx.openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			counts, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty.")
				return nil
			}

			rows := make([][]string, 0, len(counts))
			for _, row := range counts {
				rows = append(rows, []string{
					string(row.Kind),
					string(row.Archetype),
					strconv.Itoa(row.Count),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Kind", "Archetype", "Clips"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}
