package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: project titles, directories, template names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorYellow is used for warnings and commands in the next steps block.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed matches the ERROR log level.
	ColorBoldRed = lipgloss.Color("204")

	// ColorDimGray is used for comments and structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs and headings.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleCommand styles shell commands the user is asked to run.
	StyleCommand = lipgloss.NewStyle().Foreground(ColorYellow)
)

// Styles groups the styles used by composite renderers such as the file tree.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultStyles = &Styles{
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(ColorDimGray),
	Success: lipgloss.NewStyle().Foreground(ColorGreenCheck),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed),
	Warning: lipgloss.NewStyle().Foreground(ColorYellow),
}

// GetStyles returns the shared style set.
func GetStyles() *Styles {
	return defaultStyles
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// NextStep is one command of the post-creation instructions.
type NextStep struct {
	Command string
	Comment string
}

// FormatNextSteps renders the commands a user runs after creation.
func FormatNextSteps(steps []NextStep) string {
	if len(steps) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleAction.Render("Next steps:"))
	sb.WriteString("\n")
	for _, step := range steps {
		sb.WriteString("  ")
		sb.WriteString(StyleCommand.Render(step.Command))
		if step.Comment != "" {
			sb.WriteString(" ")
			sb.WriteString(StyleDim.Render("# " + step.Comment))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatKeyValue renders an aligned "label  value" line with a styled value.
func FormatKeyValue(label, value string, width int) string {
	pad := width - len(label)
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + StyleNoun.Render(value)
}
