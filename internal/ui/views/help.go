package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Navigation", []helpEntry{
		{"↑/↓, j/k", "Move up/down"},
		{"PgUp/PgDn", "Scroll one screen"},
		{"gg/G", "Go to top/bottom"},
		{"n/p", "Next/previous page"},
	}},
	{"Selection", []helpEntry{
		{"Space", "Toggle item"},
		{"Shift+↑/↓, J/K", "Extend selection from the anchor"},
		{"a", "Select all shown"},
		{"A, Esc", "Clear shown"},
		{"Ctrl+A", "Select every item, hidden ones included"},
		{"x", "Clear every item"},
	}},
	{"Filter & Views", []helpEntry{
		{"/, F", "Filter items"},
		{"s", "Cycle sort order"},
		{"w", "Save selection as a view"},
		{"o", "Restore a saved view"},
		{"r", "Reload the catalog"},
		{"L", "Selection report in pager"},
	}},
	{"Other", []helpEntry{
		{"Enter", "Confirm and print selection"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}},
}

// HelpContent renders the full help text
func HelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	keyWidth := 0
	for _, section := range helpSections {
		for _, e := range section.entries {
			if w := lipgloss.Width(e.keys); w > keyWidth {
				keyWidth = w
			}
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("pickwise Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(e.keys)+2)
			help.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(e.keys), pad, descStyle.Render(e.desc)))
		}
	}

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render("  Filter examples: group:prod, tag:http, key:web-1"))

	return help.String()
}

// RenderHelpContent renders the help text clipped to height with scroll indicators
func RenderHelpContent(height int, scrollOffset int) string {
	lines := strings.Split(HelpContent(), "\n")
	totalLines := len(lines)

	// Account for popup border and padding
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if totalLines <= visibleHeight {
		return strings.Join(lines, "\n")
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	endLine := scrollOffset + visibleHeight
	lines = lines[scrollOffset:endLine]

	if scrollOffset > 0 {
		lines[0] = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("↑ (more above)")
	}
	if endLine < totalLines {
		lines[len(lines)-1] = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("↓ (more below)")
	}

	return strings.Join(lines, "\n")
}
