package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/finwellhq/personaflow/internal/cli"
)

func assignAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign-all",
		Short: "Assign personas to every known user",
		Long: `Run persona assignment for all users in parallel. Users whose snapshot is
missing or whose assignment fails are skipped and logged; the batch always
runs to completion.`,
		RunE: runAssignAll,
	}

	cmd.Flags().Int("window", 0, "signal window in days (30 or 180; default from config)")

	return cmd
}

func runAssignAll(cmd *cobra.Command, _ []string) error {
	windowDays := windowFlag(cmd)

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	eng, cat, err := buildEngine(store)
	if err != nil {
		return err
	}

	userIDs, err := store.ListUserIDs(cmd.Context())
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(userIDs),
		progressbar.OptionSetDescription("Assigning personas"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	result, err := eng.AssignAllUsersProgress(cmd.Context(), windowDays, func(string, error) {
		_ = bar.Add(1)
	})
	if err != nil {
		return err
	}

	cmd.Println(cli.TitleStyle.Render("Batch assignment complete"))
	cmd.Printf("  users:    %d\n", result.Stats.TotalUsers)
	cmd.Printf("  assigned: %s\n", cli.SuccessStyle.Render(fmt.Sprintf("%d", result.Stats.Assigned)))
	if result.Stats.Failed > 0 {
		cmd.Printf("  skipped:  %s\n", cli.WarningStyle.Render(fmt.Sprintf("%d", result.Stats.Failed)))
	}
	cmd.Printf("  duration: %s\n", result.Stats.Duration.Round(time.Millisecond))

	for i := range result.Assignments {
		a := &result.Assignments[i]
		cmd.Printf("  %s -> %s (%d%%)", a.UserID, personaName(cat, a.Primary.PersonaID), a.PrimaryPercentage)
		if a.Secondary != nil {
			cmd.Printf(" + %s (%d%%)", personaName(cat, a.Secondary.PersonaID), a.SecondaryPercentage)
		}
		cmd.Println()
	}

	return nil
}
