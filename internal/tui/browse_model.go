package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/pagefeed/internal/controller"
	"github.com/rshade/pagefeed/internal/item"
	"github.com/rshade/pagefeed/internal/logging"
	listview "github.com/rshade/pagefeed/internal/tui/list"
)

// chromeRows is the number of rows used by the header, filter line, status bar and help.
const chromeRows = 4

const (
	filterInputCharLimit = 64
	filterInputWidth     = 40
)

// ViewState represents the current state of the browse TUI.
type ViewState int

const (
	// ViewStateLoading is shown until the first page settles.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the item list.
	ViewStateList
	// ViewStateQuitting indicates the application is exiting.
	ViewStateQuitting
)

// PageLoadedMsg carries the result of one page fetch back to the event loop.
type PageLoadedMsg struct {
	Request controller.Request
	Items   []item.Item
	Err     error
}

// BrowseModel is the Bubble Tea model for the infinite-scroll item browser.
// All load, filter and sort decisions are delegated to the controller; the
// model only translates key presses and viewport positions.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type BrowseModel struct {
	ctx    context.Context
	ctrl   *controller.Controller
	logger zerolog.Logger

	list      *listview.VirtualListModel[item.Item]
	textInput textinput.Model
	loading   *LoadingState
	printer   *message.Printer

	state      ViewState
	showFilter bool
	width      int
	height     int
	source     string
}

// NewBrowseModel creates a browse model over ctrl. source is shown in the
// header, usually the collection URL.
func NewBrowseModel(ctx context.Context, ctrl *controller.Controller, source string) BrowseModel {
	m := BrowseModel{
		ctx:       ctx,
		ctrl:      ctrl,
		logger:    logging.ComponentLogger(*logging.FromContext(ctx), "tui"),
		textInput: newTextInput(),
		loading:   NewLoadingState(),
		printer:   message.NewPrinter(language.English),
		state:     ViewStateLoading,
		width:     defaultWidth,
		height:    defaultHeight,
		source:    source,
	}
	m.list = listview.NewVirtualListModel(ctrl.FilteredItems(), m.listHeight(), m.width, renderItemRow)
	if len(ctrl.Items()) > 0 || ctrl.State() == controller.StateExhausted {
		m.state = ViewStateList
	}
	return m
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "filter by title"
	ti.Prompt = "/ "
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// Init starts the spinner and the first page load.
func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.LoadNextCmd())
}

// LoadNextCmd begins a load on the controller and returns the command that
// performs the fetch. It returns nil when the controller suppresses the load.
func (m BrowseModel) LoadNextCmd() tea.Cmd {
	req, ok := m.ctrl.BeginLoad()
	if !ok {
		return nil
	}
	m.logger.Debug().Int("page", req.Page).Msg("requesting page")

	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		items, err := ctrl.Fetch(ctx, req)
		return PageLoadedMsg{Request: req, Items: items, Err: err}
	}
}

// Update handles messages and updates the model state.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.listHeight())
		return m, m.fillScreenCmd()

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case tea.KeyMsg:
		if m.showFilter {
			return m.handleFilterInput(msg)
		}
		return m.handleKeypress(msg)
	}

	if m.ctrl.IsLoading() {
		return m, m.loading.Update(msg)
	}
	return m, nil
}

func (m BrowseModel) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	outcome := m.ctrl.CompleteLoad(msg.Request, msg.Items, msg.Err)
	if m.state == ViewStateLoading {
		m.state = ViewStateList
	}
	m.syncList()

	if outcome == controller.OutcomeLoaded {
		return m, m.fillScreenCmd()
	}
	return m, nil
}

// fillScreenCmd loads the next page while the unfiltered list is shorter than
// the viewport. Once the screen is full only navigation triggers loads.
func (m BrowseModel) fillScreenCmd() tea.Cmd {
	if m.ctrl.FilterValue() != "" || m.ctrl.State() == controller.StateFailed {
		return nil
	}
	if m.list.ItemCount() >= m.list.Height() {
		return nil
	}
	return m.loadIfNearBottom()
}

func (m BrowseModel) loadIfNearBottom() tea.Cmd {
	if !m.ctrl.NearBottom(m.scrollMetrics()) {
		return nil
	}
	cmd := m.LoadNextCmd()
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.loading.Init())
}

func (m BrowseModel) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.showFilter = false
		m.textInput.Blur()
		return m, nil
	case keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.textInput.Value() != m.ctrl.FilterValue() {
		m.ctrl.ApplyFilter(m.textInput.Value())
		m.syncList()
	}
	return m, cmd
}

func (m BrowseModel) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keySlash:
		m.showFilter = true
		m.textInput.Focus()
		return m, textinput.Blink
	case keyS:
		dir := m.ctrl.ToggleSort()
		m.logger.Debug().Str("direction", dir.String()).Msg("sort toggled")
		m.syncList()
		return m, nil
	case keyEsc:
		if m.ctrl.FilterValue() != "" {
			m.textInput.SetValue("")
			m.ctrl.ApplyFilter("")
			m.syncList()
		}
		return m, nil
	case keyR:
		if m.ctrl.State() == controller.StateFailed {
			return m, tea.Batch(m.LoadNextCmd(), m.loading.Init())
		}
		return m, nil
	}

	_, _ = m.list.Update(msg)
	return m, m.loadIfNearBottom()
}

// syncList pushes the controller's displayed list into the virtual list.
func (m *BrowseModel) syncList() {
	m.list.SetItems(m.ctrl.FilteredItems())
}

func (m BrowseModel) listHeight() int {
	return max(m.height-chromeRows, 1)
}

// scrollMetrics reports the list viewport in rows.
func (m BrowseModel) scrollMetrics() controller.ScrollMetrics {
	vp := m.list.Viewport()
	return controller.ScrollMetrics{
		ScrollTop:    vp.Top,
		ScrollHeight: vp.Total,
		ClientHeight: vp.Height,
	}
}

// State returns the current view state.
func (m BrowseModel) State() ViewState {
	return m.state
}

// ShowingFilter reports whether the filter input has focus.
func (m BrowseModel) ShowingFilter() bool {
	return m.showFilter
}

// Selected returns the selected row index in the displayed list.
func (m BrowseModel) Selected() int {
	return m.list.Selected()
}

// Rows returns the number of rows in the displayed list.
func (m BrowseModel) Rows() int {
	return m.list.ItemCount()
}
