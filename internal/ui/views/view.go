package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pickwise/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Items            []domain.Item // the visible page
	Checked          map[string]bool
	SelectedIndex    int
	ViewportOffset   int
	ViewportHeight   int
	MatchCount       int // items passing the filter, across pages
	UniverseCount    int
	LogicalSelected  int
	Page             int
	PageCount        int
	FilterQuery      string
	SortMode         string
	Loading          bool
	StatusMessage    string
	StatusIsError    bool
	InputPrompt      string
	TextInput        string
	ShowHelp         bool
	HelpScrollOffset int
	FooterHints      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	itemRender  *ItemRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showGroups, showDescription bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		itemRender:  NewItemRenderer(styles, showGroups, showDescription),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		helpContent := RenderHelpContent(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopup(helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	if state.InputPrompt != "" {
		content.WriteString(r.styles.Filter.Render(state.InputPrompt))
		content.WriteString(state.TextInput)
		content.WriteString("\n\n")
	}

	switch {
	case state.Loading && state.UniverseCount == 0:
		content.WriteString(r.styles.Dim.Render("Loading items..."))
	case state.UniverseCount == 0:
		content.WriteString(r.styles.Dim.Render("No items. Press r to reload the catalog."))
	case len(state.Items) == 0:
		content.WriteString(r.styles.Dim.Render("No items match the filter."))
	default:
		content.WriteString(r.renderItemList(state))
	}

	footer := r.renderStatusLine(state)
	if state.FooterHints != "" {
		footer += "\n" + state.FooterHints
	}

	// Push the footer to the bottom of the screen
	currentLines := strings.Count(content.String(), "\n") + 1
	footerLines := strings.Count(footer, "\n") + 1
	availableLines := state.Height - 2 // Main style padding
	if availableLines <= 0 {
		availableLines = 22
	}
	if paddingNeeded := availableLines - currentLines - footerLines; paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderTitleLine renders the logo with right-aligned indicators
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("pickwise")

	var indicators []string
	if state.Loading {
		indicators = append(indicators, r.styles.StatusLoading.Render("↻ Loading"))
	}
	if state.SortMode != "" && state.SortMode != "catalog" {
		indicators = append(indicators, r.styles.Dim.Render("sort: "+state.SortMode))
	}
	if state.FilterQuery != "" {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	if len(indicators) == 0 {
		return logo
	}

	rightContent := strings.Join(indicators, "  ")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + rightContent
}

// renderItemList renders the visible rows inside the viewport with scroll indicators
func (r *Renderer) renderItemList(state ViewState) string {
	total := len(state.Items)
	height := state.ViewportHeight
	if height <= 0 {
		height = total
	}

	needsTop := state.ViewportOffset > 0
	needsBottom := state.ViewportOffset+height < total
	effectiveHeight := height
	if needsTop {
		effectiveHeight--
	}
	if needsBottom {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	width := state.Width - 4
	var lines []string
	if needsTop {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.ViewportOffset)))
	}

	end := state.ViewportOffset + effectiveHeight
	if end > total {
		end = total
	}
	for i := state.ViewportOffset; i < end; i++ {
		item := state.Items[i]
		lines = append(lines, r.itemRender.RenderItem(item, i == state.SelectedIndex, state.Checked[item.Key], state.FilterQuery, width))
	}

	if needsBottom {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", total-end)))
	}

	return strings.Join(lines, "\n")
}

// renderStatusLine renders counts, paging and the last status message
func (r *Renderer) renderStatusLine(state ViewState) string {
	parts := []string{
		fmt.Sprintf("%d shown", len(state.Items)),
		fmt.Sprintf("%d/%d match", state.MatchCount, state.UniverseCount),
		fmt.Sprintf("%d selected", state.LogicalSelected),
	}
	if state.PageCount > 1 {
		parts = append(parts, fmt.Sprintf("page %d/%d", state.Page+1, state.PageCount))
	}
	line := r.styles.Status.Render(strings.Join(parts, " • "))

	if state.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		line += "  " + style.Render(state.StatusMessage)
	}
	return line
}
