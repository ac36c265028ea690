package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pickwise/internal/domain"
)

// ItemRenderer handles rendering of a single list row
type ItemRenderer struct {
	styles          *Styles
	showGroups      bool
	showDescription bool
}

// NewItemRenderer creates a new item renderer
func NewItemRenderer(styles *Styles, showGroups, showDescription bool) *ItemRenderer {
	return &ItemRenderer{
		styles:          styles,
		showGroups:      showGroups,
		showDescription: showDescription,
	}
}

// RenderItem renders one row: checkbox, name, optional group badge and description
func (r *ItemRenderer) RenderItem(item domain.Item, isCursor, isChecked bool, filterQuery string, width int) string {
	var parts []string

	if isChecked {
		parts = append(parts, r.styles.Checked.Render("[x]"))
	} else {
		parts = append(parts, r.styles.Unchecked.Render("[ ]"))
	}
	parts = append(parts, " ")

	name := item.DisplayName()
	parts = append(parts, highlightMatch(name, plainTerm(filterQuery), r.styles.Highlight, lipgloss.NewStyle()))

	if item.Label != "" && item.Label != item.Key {
		parts = append(parts, r.styles.Dim.Render(" ("+item.Key+")"))
	}

	if r.showGroups && item.Group != "" {
		badge := lipgloss.NewStyle().Foreground(lipgloss.Color(GetGroupColor(item.Group)))
		parts = append(parts, " ", badge.Render("#"+item.Group))
	}

	if r.showDescription && item.Description != "" {
		parts = append(parts, " ", r.styles.Description.Render(truncate(item.Description, 60)))
	}

	line := strings.Join(parts, "")
	if !isCursor {
		return line
	}

	// Pad the cursor row to full width so the background spans it
	if width > 0 {
		if lineLen := lipgloss.Width(line); lineLen < width {
			line += strings.Repeat(" ", width-lineLen)
		}
	}
	return r.styles.Cursor.Render(line)
}

// plainTerm returns the first filter term without a field prefix, for highlighting
func plainTerm(query string) string {
	for _, term := range strings.Fields(query) {
		if !strings.Contains(term, ":") {
			return term
		}
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// highlightMatch highlights the first case-insensitive match of query in text
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	if query == "" {
		return normalStyle.Render(text)
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	// Lowercasing can change byte lengths; only highlight when offsets line up
	if index == -1 || len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}
