// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/finwellhq/personaflow/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7C9EF5")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats errors or failure messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().Bold(true)
)

// riskTierStyles maps each tier to a color that matches its urgency.
var riskTierStyles = map[model.RiskTier]lipgloss.Style{
	model.RiskMinimal:  lipgloss.NewStyle().Foreground(SuccessColor),
	model.RiskLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1D3")),
	model.RiskMedium:   lipgloss.NewStyle().Foreground(WarningColor),
	model.RiskHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA94D")),
	model.RiskCritical: lipgloss.NewStyle().Foreground(ErrorColor).Bold(true),
}

// RenderRiskTier renders a tier name in its urgency color.
func RenderRiskTier(tier model.RiskTier) string {
	style, ok := riskTierStyles[tier]
	if !ok {
		return tier.String()
	}
	return style.Render(tier.String())
}
