package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finwellhq/personaflow/internal/cli"
)

func traceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <user-id>",
		Short: "Show decision traces for a user",
		Long: `Read back the audit trail for a user's persona assignments, newest first.
Each trace carries the full feature snapshot and per-persona matching
results the decision was made from, so it can be replayed exactly.`,
		Args: cobra.ExactArgs(1),
		RunE: runTrace,
	}

	cmd.Flags().Int("limit", 1, "number of traces to show (0 for all)")
	cmd.Flags().Bool("json", false, "emit raw JSON")
	cmd.Flags().Bool("stats", false, "show trace counts only")

	return cmd
}

func runTrace(cmd *cobra.Command, args []string) error {
	userID := args[0]
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")
	statsOnly, _ := cmd.Flags().GetBool("stats")

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if statsOnly {
		count, err := store.CountTraces(cmd.Context(), userID)
		if err != nil {
			return err
		}
		cmd.Printf("%d trace(s) recorded for %s\n", count, userID)
		return nil
	}

	traces, err := store.GetTraceHistory(cmd.Context(), userID, limit)
	if err != nil {
		return err
	}
	if len(traces) == 0 {
		cmd.Println(cli.WarningStyle.Render(fmt.Sprintf("No traces recorded for %s", userID)))
		return nil
	}

	if asJSON {
		out, err := json.MarshalIndent(traces, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode traces: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	for i := range traces {
		t := &traces[i]
		cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("%s @ %s", t.UserID, t.RecordedAt.Format("2006-01-02 15:04:05"))))
		cmd.Printf("  trace:   %s\n", cli.SubtleStyle.Render(t.TraceID))
		cmd.Printf("  window:  %d days\n", t.WindowDays)
		cmd.Printf("  primary: %s\n", cli.BoldStyle.Render(t.PrimaryPersona))
		for id, r := range t.MatchingResults {
			marker := " "
			if r.Matched {
				marker = cli.SuccessStyle.Render("*")
			}
			cmd.Printf("  %s %-20s [%s] %d/%d\n", marker, id, cli.RenderRiskTier(r.RiskTier), r.MatchedCriteria, r.TotalCriteria)
		}
		cmd.Println(cli.SubtleStyle.Render("  " + t.Rationale))
	}

	return nil
}
