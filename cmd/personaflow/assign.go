package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/finwellhq/personaflow/internal/cli"
	"github.com/finwellhq/personaflow/internal/model"
)

func assignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <user-id>",
		Short: "Assign personas to one user",
		Long: `Score the user's feature snapshot against every catalog persona, assign
the top one or two with a percentage split, and record a decision trace.`,
		Args: cobra.ExactArgs(1),
		RunE: runAssign,
	}

	cmd.Flags().Int("window", 0, "signal window in days (30 or 180; default from config)")

	return cmd
}

func runAssign(cmd *cobra.Command, args []string) error {
	userID := args[0]
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

	assignment, err := eng.AssignPersona(cmd.Context(), userID, windowDays)
	if err != nil {
		return err
	}

	printAssignment(cmd, cat, assignment)
	return nil
}

func windowFlag(cmd *cobra.Command) int {
	windowDays, _ := cmd.Flags().GetInt("window")
	if windowDays == 0 {
		windowDays = viper.GetInt("assignment.window_days")
	}
	return windowDays
}

func printAssignment(cmd *cobra.Command, cat catalogNamer, a *model.PersonaAssignment) {
	cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("Persona assignment for %s (%d-day window)", a.UserID, a.WindowDays)))

	printScore(cmd, cat, a.Primary, a.PrimaryPercentage, "primary")
	if a.Secondary != nil {
		printScore(cmd, cat, *a.Secondary, a.SecondaryPercentage, "secondary")
	}

	if a.UsedFallback {
		cmd.Println(cli.WarningStyle.Render("No persona matched; default persona assigned."))
	}
	cmd.Println(cli.SubtleStyle.Render(a.Rationale))
}

func printScore(cmd *cobra.Command, cat catalogNamer, s model.PersonaScore, pct int, role string) {
	cmd.Printf("  %s %s [%s] %d/%d signals, %d%%\n",
		cli.BoldStyle.Render(personaName(cat, s.PersonaID)),
		cli.SubtleStyle.Render("("+role+")"),
		cli.RenderRiskTier(s.RiskTier),
		s.MatchedCount, s.TotalCriteria, pct)
	for _, reason := range s.Reasons {
		cmd.Printf("    - %s\n", reason)
	}
}

// catalogNamer resolves persona ids to display names for output.
type catalogNamer interface {
	Get(id string) (*model.PersonaDefinition, error)
}

func personaName(cat catalogNamer, id string) string {
	p, err := cat.Get(id)
	if err != nil {
		return id
	}
	return p.Name
}
