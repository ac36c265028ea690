package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"pickwise/internal/domain"
)

// keyMap holds the footer hints rendered by bubbles/help. Dispatch itself
// lives in the input handler.
type keyMap struct {
	Move      key.Binding
	Toggle    key.Binding
	Extend    key.Binding
	SelectAll key.Binding
	Filter    key.Binding
	Page      key.Binding
	Views     key.Binding
	Report    key.Binding
	Confirm   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move:      key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "move")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Extend:    key.NewBinding(key.WithKeys("shift+up", "shift+down", "J", "K"), key.WithHelp("J/K", "extend")),
		SelectAll: key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a/A", "all/none")),
		Filter:    key.NewBinding(key.WithKeys("/", "F"), key.WithHelp("/", "filter")),
		Page:      key.NewBinding(key.WithKeys("n", "p"), key.WithHelp("n/p", "page")),
		Views:     key.NewBinding(key.WithKeys("w", "o"), key.WithHelp("w/o", "save/restore")),
		Report:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "report")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Toggle, k.Filter, k.Confirm, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Toggle, k.Extend, k.SelectAll},
		{k.Filter, k.Page, k.Views, k.Report},
		{k.Confirm, k.Help, k.Quit},
	}
}

// RenderSelectionReport renders the logical selection grouped by group name
func RenderSelectionReport(selected []domain.Item, total int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var report strings.Builder
	report.WriteString(titleStyle.Render(fmt.Sprintf("Selection: %d of %d items", len(selected), total)))
	report.WriteString("\n")

	if len(selected) == 0 {
		report.WriteString("\n  nothing selected\n")
		return report.String()
	}

	// Group in order of first appearance
	var groups []string
	byGroup := make(map[string][]domain.Item)
	for _, item := range selected {
		if _, seen := byGroup[item.Group]; !seen {
			groups = append(groups, item.Group)
		}
		byGroup[item.Group] = append(byGroup[item.Group], item)
	}

	for _, group := range groups {
		name := group
		if name == "" {
			name = "Ungrouped"
		}
		report.WriteString("\n")
		report.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d)", name, len(byGroup[group]))))
		report.WriteString("\n")
		for _, item := range byGroup[group] {
			line := "  " + keyStyle.Render(item.Key)
			if item.Label != "" && item.Label != item.Key {
				line += "  " + descStyle.Render(item.Label)
			}
			report.WriteString(line)
			report.WriteString("\n")
		}
	}

	return report.String()
}

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// ShowInPager hands the terminal to ov until the user quits it
func (h *PagerOps) ShowInPager(content string) error {
	if h == nil || h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Give ov time to fully exit before restoring the terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write the content back on exit; it would mess with our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configureVimKeyBindings(&config)

	root.SetConfig(config)

	return root.Run()
}

// configureVimKeyBindings adds j/k on top of ov's default bindings
func configureVimKeyBindings(config *oviewer.Config) {
	if config.Keybind == nil {
		config.Keybind = make(map[string][]string)
	}
	config.Keybind["down"] = []string{"Enter", "Down", "ctrl+N", "j"}
	config.Keybind["up"] = []string{"Up", "ctrl+P", "k"}
}
