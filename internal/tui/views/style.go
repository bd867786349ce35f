package views

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#f56a96")

	sectionTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#15202b")).
				Background(accent).
				Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#A49FA5"})

	selectedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	disabledStyle = lipgloss.NewStyle().Faint(true)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#56FF4E"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#A49FA5"}).
			Padding(0, 1)

	selectedCardStyle = cardStyle.BorderForeground(accent)

	codeStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1f6feb", Dark: "#79c0ff"})

	faint = lipgloss.NewStyle().Faint(true)
)

// Button renders an action label, dimmed when disabled.
func Button(label string, enabled bool) string {
	text := "[ " + label + " ]"
	if !enabled {
		return disabledStyle.Render(text)
	}
	return buttonStyle.Render(text)
}

// SectionTitle renders a section heading.
func SectionTitle(title string) string {
	return sectionTitleStyle.Render(title)
}

// Empty renders a placeholder for a section without data.
func Empty(text string) string {
	return subtitleStyle.Render(text)
}
