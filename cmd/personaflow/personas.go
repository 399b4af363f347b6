package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/finwellhq/personaflow/internal/catalog"
	"github.com/finwellhq/personaflow/internal/cli"
)

func personasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List the persona catalog",
		RunE:  runPersonas,
	}
}

func runPersonas(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.New(catalog.Config{
		FallbackPersonaID: viper.GetString("assignment.fallback_persona"),
	})
	if err != nil {
		return fmt.Errorf("failed to build persona catalog: %w", err)
	}

	cmd.Println(cli.TitleStyle.Render("Persona catalog"))
	for _, p := range cat.Personas() {
		marker := ""
		if p.ID == cat.Fallback().ID {
			marker = cli.SubtleStyle.Render(" (fallback)")
		}
		cmd.Printf("%s [%s]%s\n", cli.BoldStyle.Render(p.Name), cli.RenderRiskTier(p.RiskTier), marker)
		cmd.Printf("  id:    %s\n", p.ID)
		cmd.Printf("  focus: %s\n", p.FocusArea)
		cmd.Printf("  %s\n", cli.SubtleStyle.Render(p.Description))
		for _, c := range p.Criteria {
			cmd.Printf("    - %s\n", c.Name)
		}
	}

	return nil
}
