package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"fitcoach/internal/catalog"
	"fitcoach/internal/logging"
	"fitcoach/internal/playlist"
)

func newBuildCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		workoutPath string
		archetype   string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build one playlist from a workout file",
		Long: `Build resolves a playlist for a workout described in a JSON file and
prints the ordered items. The same workout, week, day, and archetype always
produce the same playlist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			workout, err := loadWorkout(workoutPath)
			if err != nil {
				return err
			}
			parsed, err := catalog.ParseArchetype(archetype)
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			store, err := cmdCtx.openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			registry := cmdCtx.openRegistry(cmd.Context(), cfg, logger)
			builder := playlist.New(store, registry, playlist.OptionsFromConfig(cfg), nil, logger)

			items, err := builder.Build(cmd.Context(), workout, parsed)
			if err != nil {
				return err
			}

			if jsonOutput || !isatty.IsTerminal(os.Stdout.Fd()) {
				return printItemsJSON(cmd, items)
			}
			printItemsTable(cmd, items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workoutPath, "workout", "w", "", "Workout JSON file (required)")
	cmd.Flags().StringVarP(&archetype, "archetype", "a", "", "Coach archetype: mentor, professional, or peer (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON even on a terminal")
	_ = cmd.MarkFlagRequired("workout")
	_ = cmd.MarkFlagRequired("archetype")

	return cmd
}

func loadWorkout(path string) (catalog.Workout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Workout{}, fmt.Errorf("read workout %s: %w", path, err)
	}
	var workout catalog.Workout
	if err := json.Unmarshal(data, &workout); err != nil {
		return catalog.Workout{}, fmt.Errorf("parse workout %s: %w", path, err)
	}
	if err := workout.Validate(); err != nil {
		return catalog.Workout{}, err
	}
	return workout, nil
}

func printItemsJSON(cmd *cobra.Command, items []playlist.Item) error {
	if items == nil {
		items = []playlist.Item{}
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}

func printItemsTable(cmd *cobra.Command, items []playlist.Item) {
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Empty playlist: no matching clips in the catalog.")
		return
	}

	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(item.Type),
			item.Title,
			string(item.ExerciseID),
			string(item.Provider),
			strconv.Itoa(item.DurationSeconds) + "s",
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"#", "Segment", "Title", "Exercise", "Provider", "Duration"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	))
}
