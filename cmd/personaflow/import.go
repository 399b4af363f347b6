package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/finwellhq/personaflow/internal/cli"
	"github.com/finwellhq/personaflow/internal/config"
	"github.com/finwellhq/personaflow/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <snapshots.json>",
		Short: "Import feature snapshots produced by the aggregator",
		Long: `Load a JSON array of feature snapshots exported by the upstream
feature-aggregation service. The engine never computes signals itself; this
is how externally computed snapshots reach it.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	path := config.ExpandPath(args[0])

	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied import path
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var snapshots []model.FeatureSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("%s contains no snapshots", path)
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	imported := 0
	for i := range snapshots {
		s := &snapshots[i]

		// The variable-income criteria need these contract fields; the
		// upstream aggregator not supplying them is worth flagging loudly
		// rather than silently scoring against zeros.
		if s.Income.VariationCoefficient == 0 && s.Income.DistinctSources == 0 {
			slog.Warn("Snapshot missing income-variability contract fields",
				"user_id", s.UserID,
				"window_days", s.WindowDays)
		}

		if err := store.SaveFeatureSnapshot(cmd.Context(), s); err != nil {
			return fmt.Errorf("failed to import snapshot for %s: %w", s.UserID, err)
		}
		imported++
	}

	cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Imported %d snapshot(s) from %s", imported, path)))
	return nil
}
