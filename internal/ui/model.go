package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"crmtable/internal/browse"
	"crmtable/internal/pagination"
	"crmtable/internal/theme"
	"crmtable/internal/visibility"
)

// Options tune the interactive session.
type Options struct {
	// LoadDelay is the simulated latency of a page load.
	LoadDelay time.Duration
	// SearchDebounce delays applying the search term after the last keystroke.
	// Zero applies every keystroke immediately.
	SearchDebounce time.Duration
	Logger         zerolog.Logger
}

type focusArea int

const (
	focusSearch focusArea = iota
	focusTable
)

const (
	defaultWidth  = 120
	defaultHeight = 32
	wheelStep     = 3
	searchLabel   = "Search "
)

type pageLoadedMsg struct {
	req pagination.Request
}

type searchSettledMsg struct {
	seq  int
	term string
}

type model struct {
	ctrl    *browse.Controller
	opts    Options
	log     zerolog.Logger
	theme   theme.Theme
	keys    keyMap
	help    help.Model
	printer *message.Printer

	search  textinput.Model
	spinner spinner.Model

	width     int
	height    int
	focus     focusArea
	cursor    int
	top       int
	headerCol int
	dropdown  dropdown

	observer *visibility.Viewport
	trigger  *visibility.Trigger
	revision int
	pending  []tea.Cmd
	schedule func(pagination.Request) tea.Cmd

	searchSeq int
}

func newModel(ctrl *browse.Controller, opts Options) *model {
	t := theme.Default()

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search by name, email or phone"
	ti.CharLimit = 128
	ti.SetValue(ctrl.Search())
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = t.Accent

	m := &model{
		ctrl:      ctrl,
		opts:      opts,
		log:       opts.Logger,
		theme:     t,
		keys:      defaultKeys(),
		help:      help.New(),
		printer:   message.NewPrinter(language.English),
		search:    ti,
		spinner:   sp,
		width:     defaultWidth,
		height:    defaultHeight,
		focus:     focusSearch,
		headerCol: 1,
		observer:  visibility.NewViewport(),
		revision:  -1,
	}
	m.schedule = func(req pagination.Request) tea.Cmd {
		return loadPage(req, m.opts.LoadDelay)
	}
	m.trigger = visibility.NewTrigger(m.observer, m.requestPage)
	m.sync()
	return m
}

func loadPage(req pagination.Request, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return pageLoadedMsg{req: req} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return pageLoadedMsg{req: req}
	})
}

func (m *model) Init() tea.Cmd {
	return batchCmds(append([]tea.Cmd{textinput.Blink}, m.drain()...))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(10, m.layout().button.x-lipgloss.Width(searchLabel)-2)
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))
	case pageLoadedMsg:
		m.ctrl.Complete(msg.req)
	case searchSettledMsg:
		if msg.seq == m.searchSeq {
			m.applySearch(msg.term)
		}
	case spinner.TickMsg:
		if m.ctrl.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	m.sync()
	cmds = append(cmds, m.drain()...)
	return m, batchCmds(cmds)
}

func (m *model) drain() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// requestPage is the trigger's load callback.
func (m *model) requestPage() {
	req, ok := m.ctrl.LoadMore()
	if !ok {
		return
	}
	m.log.Debug().Int("page", req.Page).Msg("last row visible")
	m.pending = append(m.pending, m.schedule(req), m.spinner.Tick)
}

// sync re-points the trigger at the last row whenever the rows or the loading
// state changed, then reports the scroll position to the viewport. The trigger
// is detached before the range moves so a stale target never fires.
func (m *model) sync() {
	height := m.layout().rowsHeight
	for {
		rev := m.ctrl.Revision()
		if rev != m.revision {
			m.revision = rev
			m.trigger.Detach()
			m.clampScroll(height)
			m.observer.SetRange(m.top, height)
			m.trigger.Attach(len(m.ctrl.Rows())-1, m.ctrl.Loading())
			continue
		}
		m.observer.SetRange(m.top, height)
		if m.ctrl.Revision() == rev {
			return
		}
	}
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.focus == focusSearch {
		return m.updateSearch(msg)
	}
	return m.updateTable(msg)
}

func (m *model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		if m.dropdown.open {
			m.dropdown.close()
			return nil
		}
		m.focusTable()
		return nil
	case tea.KeyTab, tea.KeyEnter:
		m.focusTable()
		return nil
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		m.navigate(msg)
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		return batchCmds([]tea.Cmd{cmd, m.searchChanged(value)})
	}
	return cmd
}

func (m *model) updateTable(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Close):
		m.dropdown.close()
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Search):
		return m.focusSearch()
	case key.Matches(msg, m.keys.Filters):
		m.dropdown.toggle()
	case key.Matches(msg, m.keys.Sort):
		col := int(msg.String()[0] - '0')
		m.sortBy(col)
	case key.Matches(msg, m.keys.HeaderLeft):
		if m.headerCol > 1 {
			m.headerCol--
		}
	case key.Matches(msg, m.keys.HeaderRight):
		if m.headerCol < len(columns)-1 {
			m.headerCol++
		}
	case key.Matches(msg, m.keys.HeaderSort):
		m.sortBy(m.headerCol)
	default:
		m.navigate(msg)
	}
	return nil
}

func (m *model) navigate(msg tea.KeyMsg) {
	n := len(m.ctrl.Rows())
	if n == 0 {
		return
	}
	height := m.layout().rowsHeight
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= height
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += height
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = n - 1
	default:
		return
	}
	m.cursor = max(0, min(m.cursor, n-1))
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+height {
		m.top = m.cursor - height + 1
	}
}

func (m *model) scrollBy(delta int) {
	height := m.layout().rowsHeight
	m.top += delta
	m.clampScroll(height)
	if m.cursor < m.top {
		m.cursor = m.top
	}
	if m.cursor >= m.top+height {
		m.cursor = m.top + height - 1
	}
	m.cursor = max(0, min(m.cursor, len(m.ctrl.Rows())-1))
}

func (m *model) clampScroll(height int) {
	n := len(m.ctrl.Rows())
	m.top = max(0, min(m.top, n-height))
	m.cursor = max(0, min(m.cursor, n-1))
}

func (m *model) resetScroll() {
	m.top = 0
	m.cursor = 0
}

func (m *model) focusSearch() tea.Cmd {
	m.focus = focusSearch
	return m.search.Focus()
}

func (m *model) focusTable() {
	m.focus = focusTable
	m.search.Blur()
}

func (m *model) searchChanged(term string) tea.Cmd {
	m.searchSeq++
	if m.opts.SearchDebounce <= 0 {
		m.applySearch(term)
		return nil
	}
	seq := m.searchSeq
	return tea.Tick(m.opts.SearchDebounce, func(time.Time) tea.Msg {
		return searchSettledMsg{seq: seq, term: term}
	})
}

func (m *model) applySearch(term string) {
	if !m.ctrl.SetSearch(term) {
		return
	}
	m.resetScroll()
	m.log.Debug().Str("search", term).Int("matches", m.ctrl.Matches()).Msg("search applied")
}

func (m *model) sortBy(col int) {
	if !sortableColumn(col) {
		return
	}
	m.headerCol = col
	cfg := m.ctrl.ToggleSort(columns[col].field)
	m.resetScroll()
	m.log.Debug().Str("sort", cfg.String()).Msg("sort changed")
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.scrollBy(-wheelStep)
		return nil
	case tea.MouseWheelDown:
		m.scrollBy(wheelStep)
		return nil
	case tea.MouseLeft:
	default:
		return nil
	}

	// Hit testing uses the layout that was on screen when the press happened.
	lay := m.layout()
	if m.dropdown.click(msg.X, msg.Y, lay.button, lay.panel) {
		return nil
	}
	switch {
	case msg.Y == lay.searchY && msg.X < lay.button.x:
		return m.focusSearch()
	case msg.Y == lay.headerY:
		m.sortBy(columnAt(lay.spans, msg.X))
	case msg.Y >= lay.rowsTop && msg.Y < lay.rowsTop+lay.rowsHeight:
		row := m.top + msg.Y - lay.rowsTop
		if row < len(m.ctrl.Rows()) {
			m.cursor = row
			m.focusTable()
		}
	}
	return nil
}

type screenLayout struct {
	spans      []span
	searchY    int
	button     rect
	panel      rect
	headerY    int
	rowsTop    int
	rowsHeight int
}

func (m *model) layout() screenLayout {
	spans := columnSpans(m.width)
	width := tableWidth(spans)
	buttonW := lipgloss.Width(renderFilterButton(m.theme, m.dropdown.open))
	lay := screenLayout{spans: spans, searchY: 2}
	lay.button = rect{x: max(width-buttonW, lipgloss.Width(searchLabel)+20), y: lay.searchY, w: buttonW, h: 1}

	panelH := 0
	if m.dropdown.open {
		panel := renderFilterPanel(m.theme)
		panelH = lipgloss.Height(panel)
		lay.panel = rect{x: lay.button.x, y: lay.searchY + 1, w: lipgloss.Width(panel), h: panelH}
	}
	lay.headerY = lay.searchY + 2 + panelH
	lay.rowsTop = lay.headerY + 2
	lay.rowsHeight = max(1, m.height-lay.rowsTop-3)
	return lay
}

func (m *model) View() string {
	lay := m.layout()
	width := tableWidth(lay.spans)
	rule := m.theme.Border.Render(strings.Repeat("─", width))

	title := m.theme.Title.Render("Customers") + " " +
		m.theme.Count.Render(m.printer.Sprintf("%d of %d", m.ctrl.Matches(), m.ctrl.Total()))
	lines := []string{title, ""}

	left := m.theme.Accent.Render(searchLabel) + m.search.View()
	pad := max(1, lay.button.x-lipgloss.Width(left))
	lines = append(lines, left+strings.Repeat(" ", pad)+renderFilterButton(m.theme, m.dropdown.open))
	if m.dropdown.open {
		indent := strings.Repeat(" ", lay.panel.x)
		for _, l := range strings.Split(renderFilterPanel(m.theme), "\n") {
			lines = append(lines, indent+l)
		}
	}
	lines = append(lines, "")

	focused := -1
	if m.focus == focusTable {
		focused = m.headerCol
	}
	lines = append(lines, renderHeader(m.theme, lay.spans, m.ctrl.Sort(), focused), rule)

	rows := m.ctrl.Rows()
	if len(rows) == 0 {
		lines = append(lines, m.theme.Warning.Render("No customers match."))
	}
	for i := m.top; i < m.top+lay.rowsHeight && i < len(rows); i++ {
		lines = append(lines, renderRow(m.theme, lay.spans, rows[i], i == m.cursor && m.focus == focusTable))
	}
	for len(lines) < lay.rowsTop+lay.rowsHeight {
		lines = append(lines, "")
	}

	lines = append(lines, rule, m.status())
	bindings := m.keys.tableHelp()
	if m.focus == focusSearch {
		bindings = m.keys.searchHelp()
	}
	lines = append(lines, m.help.ShortHelpView(bindings))
	return strings.Join(lines, "\n")
}

func (m *model) status() string {
	parts := []string{m.printer.Sprintf("Showing %d of %d", len(m.ctrl.Rows()), m.ctrl.Matches())}
	if cfg := m.ctrl.Sort(); cfg.Active() {
		parts = append(parts, "sorted by "+string(cfg.Key)+" "+cfg.Direction.String())
	}
	line := m.theme.Secondary.Render(strings.Join(parts, " · "))
	switch {
	case m.ctrl.Loading():
		line += "  " + m.spinner.View() + m.theme.Faint.Render(" loading more")
	case m.ctrl.Exhausted() && m.ctrl.Matches() > 0:
		line += "  " + m.theme.Success.Render("all loaded")
	}
	return line
}

func batchCmds(cmds []tea.Cmd) tea.Cmd {
	filtered := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		return tea.Batch(filtered...)
	}
}
