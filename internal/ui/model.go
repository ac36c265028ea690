package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pickwise/internal/config"
	"pickwise/internal/domain"
	"pickwise/internal/eventbus"
	"pickwise/internal/ui/handlers"
	"pickwise/internal/ui/input"
	inputtypes "pickwise/internal/ui/input/types"
	"pickwise/internal/ui/logic"
	"pickwise/internal/ui/services/selection"
	"pickwise/internal/ui/views"
)

// statusTimeout is how long a status message stays on screen
const statusTimeout = 4 * time.Second

// chromeHeight is the number of rows taken by everything except the list
const chromeHeight = 9

// ModelOptions configures a new Model
type ModelOptions struct {
	Bus           eventbus.EventBus
	Config        *config.Config
	ConfigService config.ConfigService // nil disables saving views
	Logger        *zap.Logger
	ItemsFile     string
	InitialView   string // applied after the first catalog load
}

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.ConfigService
	logger    *zap.Logger
	itemsFile string

	// Selection state lives in the engine for the whole session
	engine      *selection.Engine[string, domain.Item]
	navigator   *logic.Navigator
	paginator   logic.Paginator
	sortMode    logic.SortMode
	filterQuery string
	matchCount  int
	pendingView string

	width  int
	height int
	help   help.Model
	keys   keyMap

	renderer     *views.Renderer
	inputHandler *input.Handler
	eventHandler *handlers.EventHandler
	pager        *PagerOps

	loading          bool
	statusMessage    string
	statusIsError    bool
	statusSeq        int
	showHelp         bool
	helpScrollOffset int
	quitArmed        bool
	confirmed        bool
}

// NewModel creates a new UI model
func NewModel(opts ModelOptions) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		bus:          opts.Bus,
		config:       cfg,
		configSvc:    opts.ConfigService,
		logger:       logger,
		itemsFile:    opts.ItemsFile,
		navigator:    logic.NewNavigator(),
		paginator:    logic.Paginator{PageSize: cfg.PageSize},
		pendingView:  opts.InitialView,
		help:         help.New(),
		keys:         newKeyMap(),
		renderer:     views.NewRenderer(cfg.UISettings.ShowGroups, cfg.UISettings.ShowDescription),
		inputHandler: input.New(),
	}

	m.engine = selection.NewEngine(domain.ItemKey, m.onSelectionChanged, selection.Options[domain.Item]{
		Logger: logger.Named("selection"),
	})
	m.eventHandler = handlers.NewEventHandler(m.engine, m.refreshVisible, logger)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager = NewPagerOps(p)
}

// Engine exposes the selection engine
func (m *Model) Engine() *selection.Engine[string, domain.Item] {
	return m.engine
}

// Result returns the keys of the logical selection and whether the user
// confirmed it
func (m *Model) Result() ([]string, bool) {
	return domain.Keys(m.engine.AllSelection()), m.confirmed
}

// Init requests the first catalog load
func (m *Model) Init() tea.Cmd {
	if m.itemsFile == "" {
		m.statusMessage = "No items file configured"
		m.statusIsError = true
		return nil
	}
	m.loading = true
	return m.requestLoad()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			return m, m.handleHelpKey(msg)
		}

		ctx := &input.ModelContext{
			Engine:    m.engine,
			Navigator: m.navigator,
			Filter:    m.filterQuery,
		}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if _, isQuit := action.(inputtypes.QuitAction); !isQuit {
				m.quitArmed = false
			}
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}

		return m, tea.Batch(cmds...)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.Error(msg.err))
			return m, m.setError(fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil
	}

	// Non-keyboard messages such as the cursor blink go to the text input
	return m, m.inputHandler.Update(msg)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	items := m.engine.Items()
	checked := make(map[string]bool, len(items))
	for _, item := range items {
		if m.engine.IsKeySelected(item.Key) {
			checked[item.Key] = true
		}
	}

	state := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		Items:            items,
		Checked:          checked,
		SelectedIndex:    m.navigator.GetSelectedIndex(),
		ViewportOffset:   m.navigator.GetViewportOffset(),
		ViewportHeight:   m.navigator.GetViewportHeight(),
		MatchCount:       m.matchCount,
		UniverseCount:    len(m.engine.AllItems()),
		LogicalSelected:  m.engine.AllSelectedCount(),
		Page:             m.paginator.Page,
		PageCount:        m.paginator.PageCount(m.matchCount),
		FilterQuery:      m.filterQuery,
		SortMode:         m.sortMode.String(),
		Loading:          m.loading,
		StatusMessage:    m.statusMessage,
		StatusIsError:    m.statusIsError,
		ShowHelp:         m.showHelp,
		HelpScrollOffset: m.helpScrollOffset,
		FooterHints:      m.help.View(m.keys),
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		state.InputPrompt = m.inputHandler.Prompt()
		state.TextInput = ti.View()
	}

	return m.renderer.Render(state)
}

// processAction applies one input action to the model
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.navigator.Move(-1)
		case "down":
			m.navigator.Move(1)
		case "pageup":
			m.navigator.PageUp()
		case "pagedown":
			m.navigator.PageDown()
		case "home":
			m.navigator.Home()
		case "end":
			m.navigator.End()
		}

	case inputtypes.PageAction:
		var moved bool
		if a.Delta > 0 {
			moved = m.paginator.Next(m.matchCount)
		} else {
			moved = m.paginator.Prev()
		}
		if moved {
			m.refreshVisible()
			m.navigator.Home()
		}

	case inputtypes.SelectAction:
		index := a.Index
		if index < 0 {
			index = m.navigator.GetSelectedIndex()
		}
		m.engine.ToggleIndexSelected(index)

	case inputtypes.ExtendSelectionAction:
		// An unselected cursor row becomes the anchor of the new range
		if cursor := m.navigator.GetSelectedIndex(); !m.engine.IsIndexSelected(cursor) {
			m.engine.SetIndexSelected(cursor, true, true)
		}
		if a.Direction == "up" {
			m.navigator.Move(-1)
		} else {
			m.navigator.Move(1)
		}
		m.engine.SelectToIndex(m.navigator.GetSelectedIndex(), false)

	case inputtypes.SelectAllAction:
		m.engine.SetAllSelected(true)

	case inputtypes.DeselectAllAction:
		m.engine.SetAllSelected(false)

	case inputtypes.SelectEverythingAction:
		m.engine.SetAllSelectionSelected(a.Selected)
		if a.Selected {
			return m.setStatus(fmt.Sprintf("Selected all %d items", m.engine.AllSelectedCount()))
		}
		return m.setStatus("Selection cleared")

	case inputtypes.UpdateTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.applyFilter(a.Text)
		}

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.applyFilter("")
		}

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeFilter:
			m.applyFilter(a.Text)
		case inputtypes.ModeSaveView:
			return m.saveView(strings.TrimSpace(a.Text))
		case inputtypes.ModeRestoreView:
			return m.restoreView(strings.TrimSpace(a.Text))
		}

	case inputtypes.CycleSortAction:
		m.sortMode = m.sortMode.Next()
		m.refreshVisible()
		return m.setStatus("Sorted by " + m.sortMode.String())

	case inputtypes.ReloadAction:
		if m.itemsFile == "" {
			return m.setError("No items file configured")
		}
		m.loading = true
		return m.requestLoad()

	case inputtypes.ShowReportAction:
		if m.pager == nil {
			return m.setError("Pager unavailable")
		}
		content := RenderSelectionReport(m.engine.AllSelection(), len(m.engine.AllItems()))
		pager := m.pager
		return func() tea.Msg {
			return pagerMsg{err: pager.ShowInPager(content)}
		}

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		m.helpScrollOffset = 0

	case inputtypes.ConfirmAction:
		m.confirmed = true
		return tea.Quit

	case inputtypes.QuitAction:
		if a.Force || !m.config.UISettings.ConfirmQuit || m.engine.AllSelectedCount() == 0 || m.quitArmed {
			return tea.Quit
		}
		m.quitArmed = true
		return m.setStatus("Selection will be discarded. Press q again to quit")
	}

	return nil
}

// handleHelpKey handles keys while the help popup is open
func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "?", "esc", "q":
		m.showHelp = false
		m.helpScrollOffset = 0
	case "j", "down":
		m.helpScrollOffset++
	case "k", "up":
		if m.helpScrollOffset > 0 {
			m.helpScrollOffset--
		}
	case "H":
		if m.pager != nil {
			pager := m.pager
			content := views.HelpContent()
			return func() tea.Msg {
				return pagerMsg{err: pager.ShowInPager(content)}
			}
		}
	}
	return nil
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	out := m.eventHandler.HandleEvent(event)
	if !out.Handled {
		return nil
	}
	m.loading = false

	if out.Loaded && m.pendingView != "" {
		name := m.pendingView
		m.pendingView = ""
		return m.restoreView(name)
	}
	if out.IsError {
		return m.setError(out.Status)
	}
	return m.setStatus(out.Status)
}

// applyFilter replaces the filter and returns to the first page
func (m *Model) applyFilter(query string) {
	if query == m.filterQuery {
		return
	}
	m.filterQuery = query
	m.paginator.Page = 0
	m.refreshVisible()
}

// refreshVisible recomputes the visible set from the universe and hands it to
// the engine. The cursor stays on the same item when it is still visible.
func (m *Model) refreshVisible() {
	cursorKey := ""
	if items := m.engine.Items(); m.navigator.GetSelectedIndex() < len(items) {
		cursorKey = items[m.navigator.GetSelectedIndex()].Key
	}

	matches := logic.SortItems(logic.FilterItems(m.engine.AllItems(), m.filterQuery), m.sortMode)
	m.matchCount = len(matches)
	page := logic.Slice(&m.paginator, matches)

	m.engine.SetItems(page, false)

	m.navigator.SetTotal(len(page))
	for i, item := range page {
		if item.Key == cursorKey {
			m.navigator.SetSelectedIndex(i)
			break
		}
	}
}

// saveView stores the logical selection under name
func (m *Model) saveView(name string) tea.Cmd {
	if name == "" {
		return m.setError("View name cannot be empty")
	}
	if m.configSvc == nil {
		return m.setError("Saving views is disabled")
	}

	view := domain.View{
		Name:   name,
		Keys:   domain.Keys(m.engine.AllSelection()),
		Filter: m.filterQuery,
	}
	m.config.SaveView(view)
	if err := m.configSvc.Save(m.config); err != nil {
		m.logger.Error("failed to save view", zap.String("view", name), zap.Error(err))
		return m.setError(fmt.Sprintf("Failed to save view: %v", err))
	}

	if m.bus != nil {
		m.bus.Publish(eventbus.ViewSavedEvent{Name: name})
	}
	return m.setStatus(fmt.Sprintf("Saved view %q (%d items)", name, len(view.Keys)))
}

// restoreView applies a saved view's filter and replaces the logical
// selection with its keys
func (m *Model) restoreView(name string) tea.Cmd {
	if name == "" {
		return m.setError("View name cannot be empty")
	}
	view, err := m.config.View(name)
	if err != nil {
		return m.setError(fmt.Sprintf("No view named %q", name))
	}

	m.filterQuery = view.Filter
	m.paginator.Page = 0
	m.refreshVisible()
	m.engine.ResetAllSelection(view.Keys)

	if m.bus != nil {
		m.bus.Publish(eventbus.ViewRestoredEvent{Name: name, Keys: domain.Keys(m.engine.AllSelection())})
	}

	missing := 0
	seen := make(map[string]bool, len(view.Keys))
	for _, key := range view.Keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		if !m.engine.IsKeyInAllSelection(key) {
			missing++
		}
	}
	if missing > 0 {
		return m.setStatus(fmt.Sprintf("Restored view %q (%d missing from catalog)", name, missing))
	}
	return m.setStatus(fmt.Sprintf("Restored view %q", name))
}

// onSelectionChanged is the engine's change callback
func (m *Model) onSelectionChanged() {
	if m.bus == nil {
		return
	}
	m.bus.Publish(eventbus.SelectionChangedEvent{
		Count: m.engine.AllSelectedCount(),
		Total: len(m.engine.AllItems()),
	})
}

func (m *Model) requestLoad() tea.Cmd {
	bus, source := m.bus, m.itemsFile
	return func() tea.Msg {
		if bus != nil {
			bus.Publish(eventbus.CatalogLoadRequestedEvent{Source: source})
		}
		return nil
	}
}

func (m *Model) updateViewportHeight() {
	height := m.height - chromeHeight
	if height < 3 {
		height = 3
	}
	m.navigator.SetViewportHeight(height)
}

func (m *Model) setStatus(message string) tea.Cmd {
	m.statusMessage = message
	m.statusIsError = false
	return m.scheduleStatusClear()
}

func (m *Model) setError(message string) tea.Cmd {
	m.statusMessage = message
	m.statusIsError = true
	return m.scheduleStatusClear()
}

func (m *Model) scheduleStatusClear() tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
