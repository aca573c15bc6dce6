// Package tui is the interactive terminal front end. It draws the
// controller's document and maps keys to controller actions, running every
// network-bound action as a bubbletea command.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"placebrowser/internal/browser"
	"placebrowser/internal/export"
	"placebrowser/internal/logging"
	"placebrowser/internal/view"
)

type pane int

const (
	paneUsers pane = iota
	paneDetail
)

type usersLoadedMsg struct{ ok bool }

type sectionLoadedMsg struct {
	section view.Section
	ok      bool
}

type commentsToggledMsg struct{ result browser.ToggleResult }

type exportedMsg struct {
	path string
	err  error
}

// Model is the bubbletea model for the browser.
type Model struct {
	ctx        context.Context
	ctrl       *browser.Controller
	logger     *logging.Logger
	exportPath string

	userIDs  []string
	filtered []int
	cursor   int

	filterInput textinput.Model
	filtering   bool

	focus        pane
	detailCursor int

	spinner spinner.Model
	pending int
	status  string
	failed  bool

	width  int
	height int
}

// New creates the model. exportPath is where the "e" key writes the page.
func New(ctx context.Context, ctrl *browser.Controller, logger *logging.Logger, exportPath string) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	filter := textinput.New()
	filter.Prompt = "/"

	return &Model{
		ctx:         ctx,
		ctrl:        ctrl,
		logger:      logger,
		exportPath:  exportPath,
		filterInput: filter,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:       100,
		height:      30,
	}
}

// Init starts the bootstrap load.
func (m *Model) Init() tea.Cmd {
	m.pending++
	return tea.Batch(m.spinner.Tick, bootstrapCmd(m.ctx, m.ctrl))
}

func bootstrapCmd(ctx context.Context, ctrl *browser.Controller) tea.Cmd {
	return func() tea.Msg {
		return usersLoadedMsg{ok: ctrl.Bootstrap(ctx)}
	}
}

func loadSectionCmd(ctx context.Context, ctrl *browser.Controller, section view.Section, userFragment string) tea.Cmd {
	return func() tea.Msg {
		var ok bool
		if section == view.SectionAlbums {
			ok = ctrl.LoadAlbums(ctx, userFragment)
		} else {
			ok = ctrl.LoadPosts(ctx, userFragment)
		}
		return sectionLoadedMsg{section: section, ok: ok}
	}
}

func toggleCommentsCmd(ctx context.Context, ctrl *browser.Controller, postFragment string) tea.Cmd {
	return func() tea.Msg {
		return commentsToggledMsg{result: ctrl.ToggleComments(ctx, postFragment)}
	}
}

func exportCmd(ctrl *browser.Controller, path string) tea.Cmd {
	return func() tea.Msg {
		var err error
		ctrl.Read(func(d *view.Document) {
			err = export.WriteDocument(path, "placebrowser", d)
		})
		return exportedMsg{path: path, err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case usersLoadedMsg:
		m.done()
		m.userIDs = m.ctrl.FragmentIDs(view.SectionUsers)
		m.rebuildFiltered()
		// Fetch failures are logged by the fetcher; the view stays as it was.
		if msg.ok {
			m.setStatus(fmt.Sprintf("Loaded %d users.", len(m.userIDs)))
		}
		return m, nil

	case sectionLoadedMsg:
		m.done()
		if !msg.ok {
			return m, nil
		}
		m.detailCursor = 0
		m.setStatus(fmt.Sprintf("Showing %d %s.", len(m.ctrl.FragmentIDs(msg.section)), msg.section))
		return m, nil

	case commentsToggledMsg:
		m.done()
		m.logger.Debugf("comment toggle: %s", msg.result)
		return m, nil

	case exportedMsg:
		m.done()
		if msg.err != nil {
			m.logger.Errorf("export %s: %v", msg.path, msg.err)
			m.setError(fmt.Sprintf("Export failed: %v", msg.err))
		} else {
			m.setStatus("Exported to " + msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		if msg.String() == "e" {
			m.pending++
			return m, exportCmd(m.ctrl, m.exportPath)
		}
		if m.focus == paneDetail {
			return m.updateDetail(msg)
		}
		return m.updateUsers(msg)
	}

	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.rebuildFiltered()
		return m, cmd
	}
}

func (m *Model) updateUsers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, nil
	case "esc":
		if strings.TrimSpace(m.filterInput.Value()) != "" {
			m.filterInput.SetValue("")
			m.rebuildFiltered()
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		}
	case "p":
		return m.loadSection(view.SectionPosts)
	case "a":
		return m.loadSection(view.SectionAlbums)
	case "tab", "right", "l":
		if m.ctrl.Active() != view.SectionNone {
			m.focus = paneDetail
		}
	}
	return m, nil
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.ctrl.Active()
	ids := m.ctrl.FragmentIDs(active)

	switch msg.String() {
	case "tab", "esc", "left", "h", "b":
		m.focus = paneUsers
	case "up", "k":
		if m.detailCursor > 0 {
			m.detailCursor--
		}
	case "down", "j":
		if m.detailCursor < len(ids)-1 {
			m.detailCursor++
		}
	case "home", "g":
		m.detailCursor = 0
	case "end", "G":
		m.detailCursor = max(0, len(ids)-1)
	case "enter", " ", "c":
		if active != view.SectionPosts || m.detailCursor >= len(ids) {
			return m, nil
		}
		m.pending++
		return m, toggleCommentsCmd(m.ctx, m.ctrl, ids[m.detailCursor])
	}
	return m, nil
}

func (m *Model) loadSection(section view.Section) (tea.Model, tea.Cmd) {
	id, ok := m.currentUser()
	if !ok {
		return m, nil
	}
	m.pending++
	return m, loadSectionCmd(m.ctx, m.ctrl, section, id)
}

func (m *Model) currentUser() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return "", false
	}
	return m.userIDs[m.filtered[m.cursor]], true
}

func (m *Model) rebuildFiltered() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	m.filtered = m.filtered[:0]

	for idx, id := range m.userIDs {
		if query == "" {
			m.filtered = append(m.filtered, idx)
			continue
		}
		u, ok := m.ctrl.User(id)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), query) ||
			strings.Contains(strings.ToLower(u.Username), query) ||
			strings.Contains(strings.ToLower(u.Email), query) {
			m.filtered = append(m.filtered, idx)
		}
	}

	m.cursor = max(0, min(m.cursor, len(m.filtered)-1))
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.failed = s, false
}

func (m *Model) setError(s string) {
	m.status, m.failed = s, true
}

// View renders the two panes, the status line and the key help.
func (m *Model) View() string {
	leftWidth := min(46, max(30, m.width/3))
	rightWidth := max(30, m.width-leftWidth-2)
	bodyHeight := max(6, m.height-5)

	var left, right string
	m.ctrl.Read(func(d *view.Document) {
		left = m.usersPane(d, leftWidth, bodyHeight)
		right = m.detailPane(d, rightWidth, bodyHeight)
	})

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth).Render(left),
		"  ",
		lipgloss.NewStyle().Width(rightWidth).Render(right),
	)
	return strings.Join([]string{titleStyle.Render("placebrowser"), body, m.statusLine(), m.helpLine()}, "\n")
}

func (m *Model) usersPane(d *view.Document, width, height int) string {
	title := paneTitleStyle
	if m.focus == paneUsers {
		title = activePaneTitleStyle
	}
	header := fmt.Sprintf("Users (%d)", len(m.userIDs))
	if m.filtering {
		header += " " + m.filterInput.View()
	} else if q := strings.TrimSpace(m.filterInput.Value()); q != "" {
		header += " /" + q
	}

	if len(m.filtered) == 0 {
		return title.Render(header) + "\n" + helpStyle.Render("No users to show.")
	}

	byID := make(map[string]*view.Node, len(d.Users.Children))
	for _, n := range d.Users.Children {
		byID[n.ID] = n
	}
	blocks := make([]string, 0, len(m.filtered))
	for pos, idx := range m.filtered {
		n, ok := byID[m.userIDs[idx]]
		if !ok {
			continue
		}
		blocks = append(blocks, renderCard(n, width, pos == m.cursor && m.focus == paneUsers))
	}
	return title.Render(header) + "\n" + windowAround(blocks, m.cursor, height-2)
}

func (m *Model) detailPane(d *view.Document, width, height int) string {
	title := paneTitleStyle
	if m.focus == paneDetail {
		title = activePaneTitleStyle
	}

	active := d.Active()
	container := d.Container(active)
	if container == nil {
		return title.Render("Nothing selected") + "\n" + helpStyle.Render("Press p for posts or a for albums.")
	}

	header := fmt.Sprintf("%s (%d)", strings.ToUpper(active.String()[:1])+active.String()[1:], len(container.Children))
	if len(container.Children) == 0 {
		return title.Render(header) + "\n" + helpStyle.Render("Nothing here.")
	}

	blocks := make([]string, 0, len(container.Children))
	for i, n := range container.Children {
		blocks = append(blocks, renderCard(n, width, i == m.detailCursor && m.focus == paneDetail))
	}
	return title.Render(header) + "\n" + windowAround(blocks, m.detailCursor, height-2)
}

func (m *Model) statusLine() string {
	if m.pending > 0 {
		return m.spinner.View() + " Loading..."
	}
	if m.failed {
		return errorStyle.Render(m.status)
	}
	return helpStyle.Render(m.status)
}

func (m *Model) helpLine() string {
	switch {
	case m.filtering:
		return helpStyle.Render("Keys: type filter | Enter/Esc apply | Ctrl+C exit")
	case m.focus == paneDetail:
		return helpStyle.Render("Keys: j/k move | Enter toggle comments | Tab users | e export | q quit")
	default:
		return helpStyle.Render("Keys: j/k move | p posts | a albums | / filter | Tab details | e export | q quit")
	}
}

// Run starts the interactive program on the terminal.
func Run(ctx context.Context, ctrl *browser.Controller, logger *logging.Logger, exportPath string) error {
	m := New(ctx, ctrl, logger, exportPath)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
