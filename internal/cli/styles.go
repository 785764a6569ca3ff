// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/Veraticus/destiny-recharge/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (stormlight blue).
	PrimaryColor = lipgloss.Color("#7FB8FF")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

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

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)
)

// SectionColors gives every ledger section its own terminal colour.
var SectionColors = map[string]lipgloss.Color{
	model.SectionElsecaller:        lipgloss.Color("139"),
	model.SectionVainDeath:         lipgloss.Color("179"),
	model.SectionPremonitionOfWar:  lipgloss.Color("173"),
	model.SectionMindAndBody:       lipgloss.Color("3"),
	model.SectionInnerPeace:        lipgloss.Color("2"),
	model.SectionMasteryOfGames:    lipgloss.Color("4"),
	model.SectionExpressionsOfSelf: lipgloss.Color("6"),
	model.SectionWaysOfTheWorld:    lipgloss.Color("43"),
	model.SectionIzzetScholarship:  lipgloss.Color("5"),
	model.SectionUniteThem:         lipgloss.Color("3"),
}

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	BoltIcon    = "⚡"
	GiftIcon    = "🎁"
	DebtIcon    = "💸"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the bolt icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(BoltIcon + " " + title)
}

// FormatSection renders a section name in its colour. Names outside the
// fixed set are rendered plain.
func FormatSection(name string) string {
	color, ok := SectionColors[name]
	if !ok {
		return name
	}
	return lipgloss.NewStyle().Foreground(color).Render(name)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
