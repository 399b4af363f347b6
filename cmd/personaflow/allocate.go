package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/finwellhq/personaflow/internal/cli"
)

func allocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate <user-id>",
		Short: "Allocate recommendation slots for a user",
		Long: `Assign personas to the user and distribute the education and offer slot
budgets between them, weighted by match percentage and risk tier. The
higher-risk persona is listed first in each channel.`,
		Args: cobra.ExactArgs(1),
		RunE: runAllocate,
	}

	cmd.Flags().Int("window", 0, "signal window in days (30 or 180; default from config)")
	cmd.Flags().Int("education", 0, "education slot budget (default from config)")
	cmd.Flags().Int("offers", 0, "offer slot budget (default from config)")

	return cmd
}

func runAllocate(cmd *cobra.Command, args []string) error {
	userID := args[0]
	windowDays := windowFlag(cmd)

	educationSlots, _ := cmd.Flags().GetInt("education")
	if educationSlots == 0 {
		educationSlots = viper.GetInt("recommendations.education_slots")
	}
	offerSlots, _ := cmd.Flags().GetInt("offers")
	if offerSlots == 0 {
		offerSlots = viper.GetInt("recommendations.offer_slots")
	}

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

	// Each recommendation channel gets its own budget and allocation.
	channels := []struct {
		name  string
		slots int
	}{
		{"education", educationSlots},
		{"offers", offerSlots},
	}

	for _, ch := range channels {
		alloc, err := eng.AllocateRecommendationSlots(assignment, ch.slots)
		if err != nil {
			return fmt.Errorf("allocate %s slots: %w", ch.name, err)
		}

		cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("%s (%d slots)", ch.name, alloc.TotalSlots)))
		for _, e := range alloc.Entries {
			cmd.Printf("  %-20s [%s] %d slot(s)\n",
				personaName(cat, e.PersonaID), cli.RenderRiskTier(e.RiskTier), e.Slots)
		}
	}

	return nil
}
