package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anazmuhdd/jarvis-acsia/internal/appstate"
	"github.com/anazmuhdd/jarvis-acsia/internal/browser"
	"github.com/anazmuhdd/jarvis-acsia/internal/config"
	"github.com/anazmuhdd/jarvis-acsia/internal/feed"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
	"github.com/anazmuhdd/jarvis-acsia/internal/suggest"
	"github.com/anazmuhdd/jarvis-acsia/internal/tasks"
	"github.com/anazmuhdd/jarvis-acsia/internal/update"
)

type focusPane int

const (
	focusNews focusPane = iota
	focusTasks
)

type mode int

const (
	modeHome mode = iota
	modeDashboard
	modeSearch
	modeNewTask
	modeHelp
)

type App struct {
	cfg       *config.Config
	state     *appstate.Store
	orch      *feed.Orchestrator
	source    *tasks.Client // nil without a Graph token
	collector *tasks.Collector
	mutator   *tasks.Mutator
	completer *suggest.Completer // wired by Run once the program exists

	// Render copies, refreshed from state after every mutation
	articles  []newscache.Article
	topics    []string
	todos     []tasks.Item
	fromCache bool
	noTopics  bool
	cacheLeft int

	cursor     int
	taskCursor int
	focus      focusPane
	mode       mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	taskInput   textinput.Model
	spinner     spinner.Model

	suggestions []string
	sugCursor   suggest.Cursor

	// State
	loadingFeed   bool
	loadingTasks  bool
	banner        string
	warn          string
	updateVersion string
	currentDate   string
	version       string
	refreshStart  bool
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg          *config.Config
	State        *appstate.Store
	Orchestrator *feed.Orchestrator
	TaskSource   *tasks.Client
	Collector    *tasks.Collector
	Mutator      *tasks.Mutator
	Suggest      *suggest.Client
	Version      string
	Refresh      bool // drop the cached feed and fetch live on startup
}

func NewApp(opts RunOpts) *App {
	si := textinput.New()
	si.Placeholder = "Search the web..."
	si.Prompt = searchPromptStyle.Render("/ ")
	si.CharLimit = 100

	ti := textinput.New()
	ti.Placeholder = "New task..."
	ti.Prompt = searchPromptStyle.Render("+ ")
	ti.CharLimit = 255

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:          opts.Cfg,
		state:        opts.State,
		orch:         opts.Orchestrator,
		source:       opts.TaskSource,
		collector:    opts.Collector,
		mutator:      opts.Mutator,
		searchInput:  si,
		taskInput:    ti,
		spinner:      sp,
		sugCursor:    suggest.NewCursor(),
		currentDate:  time.Now().Format("Mon, Jan 2"),
		mode:         modeHome,
		version:      opts.Version,
		refreshStart: opts.Refresh,
	}
}

func (a *App) Init() tea.Cmd {
	a.loadingFeed = true
	cmds := []tea.Cmd{a.loadFeedCmd(a.refreshStart), a.checkUpdateCmd(), a.spinner.Tick}

	if a.collector != nil {
		a.loadingTasks = true
		cmds = append(cmds, a.loadTodosCmd())
	}

	return tea.Batch(cmds...)
}

// loadFeedCmd captures the profile into the closure to avoid races.
func (a *App) loadFeedCmd(refresh bool) tea.Cmd {
	orch := a.orch
	profile := a.state.Profile()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		load := orch.Load
		if refresh {
			load = orch.Refresh
		}
		result, err := load(ctx, profile)
		if err != nil {
			return feedErrMsg{err: err}
		}
		return feedLoadedMsg{result: result}
	}
}

func (a *App) loadTodosCmd() tea.Cmd {
	src := a.source
	col := a.collector
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		lists, err := src.Lists(ctx)
		if err != nil {
			return todosErrMsg{err: err}
		}
		return todosLoadedMsg{result: col.Collect(ctx, lists)}
	}
}

func (a *App) checkUpdateCmd() tea.Cmd {
	v := a.version
	return func() tea.Msg {
		result := update.Check(context.Background(), v)
		if result == nil {
			return nil
		}
		return updateAvailableMsg{version: result.LatestVersion}
	}
}

func openBrowserCmd(rawURL string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(rawURL); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func openSearchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.OpenSearch(query); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func renderSuggestions(items []string, pos int) []string {
	rows := make([]string, 0, len(items))
	for i, s := range items {
		if i == pos {
			rows = append(rows, suggestionSelStyle.Render("› "+s))
		} else {
			rows = append(rows, suggestionStyle.Render("  "+s))
		}
	}
	return rows
}

func (a *App) syncFeed() {
	a.articles, a.topics, a.fromCache = a.state.Feed()
	if a.cursor >= len(a.articles) {
		a.cursor = max(0, len(a.articles)-1)
	}
}

func (a *App) syncTodos() {
	a.todos = a.state.Todos()
	if a.taskCursor >= len(a.todos) {
		a.taskCursor = max(0, len(a.todos)-1)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear transient warnings on any keypress
		a.warn = ""
		return a.handleKey(msg)

	case feedLoadedMsg:
		a.loadingFeed = false
		a.banner = ""
		a.noTopics = msg.result.NoTopics
		a.state.SetFeed(msg.result.Articles, msg.result.Topics, msg.result.FromCache)
		a.syncFeed()
		a.cacheLeft = a.orch.Remaining(a.state.Profile())
		return a, nil

	case feedErrMsg:
		a.loadingFeed = false
		switch {
		case errors.Is(msg.err, feed.ErrAgentUnreachable):
			a.banner = "AI backend unreachable"
		case errors.Is(msg.err, feed.ErrBackendUnreachable):
			a.banner = "News backend unreachable"
		default:
			a.banner = msg.err.Error()
		}
		return a, nil

	case todosLoadedMsg:
		a.loadingTasks = false
		a.state.SetTodos(msg.result.Items)
		a.syncTodos()
		if n := len(msg.result.Errors); n > 0 {
			a.warn = fmt.Sprintf("%d task list(s) failed to sync", n)
		}
		return a, nil

	case todosErrMsg:
		a.loadingTasks = false
		a.warn = "tasks: " + msg.err.Error()
		return a, nil

	case suggestionsMsg:
		a.suggestions = msg.items
		a.sugCursor.SetCount(len(msg.items))
		return a, nil

	case taskCreatedMsg:
		if msg.err != nil {
			a.warn = "create task: " + msg.err.Error()
		}
		a.syncTodos()
		return a, nil

	case toggleFailedMsg:
		// The reverted checkbox is the whole signal; mutation failures
		// never raise a banner.
		a.mutator.RollbackToggle(msg.txn)
		a.syncTodos()
		slog.Warn("toggle rejected upstream", "error", msg.err)
		return a, nil

	case deleteFailedMsg:
		a.mutator.RollbackDelete(msg.txn)
		a.syncTodos()
		slog.Warn("delete rejected upstream", "error", msg.err)
		return a, nil

	case openErrMsg:
		a.warn = msg.err.Error()
		return a, nil

	case updateAvailableMsg:
		a.updateVersion = msg.version
		return a, nil

	case spinner.TickMsg:
		if a.loadingFeed || a.loadingTasks {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeNewTask:
		return a.handleNewTaskKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeDashboard
		}
		return a, nil
	}

	return a.handleDashboardKey(msg)
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "e":
		a.mode = modeDashboard
		return a, nil
	case "q":
		return a, tea.Quit
	case "?":
		a.mode = modeHelp
		return a, nil
	}
	return a, nil
}

func (a *App) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "tab":
		if a.focus == focusNews {
			a.focus = focusTasks
		} else {
			a.focus = focusNews
		}
		return a, nil
	case "j", "down":
		if a.focus == focusNews && a.cursor < len(a.articles)-1 {
			a.cursor++
		} else if a.focus == focusTasks && a.taskCursor < len(a.todos)-1 {
			a.taskCursor++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusNews && a.cursor > 0 {
			a.cursor--
		} else if a.focus == focusTasks && a.taskCursor > 0 {
			a.taskCursor--
		}
		return a, nil
	case "o":
		if a.focus == focusNews {
			return a, a.openSelectedArticle()
		}
		return a, nil
	case "enter":
		if a.focus == focusNews {
			return a, a.openSelectedArticle()
		}
		return a, a.toggleTodo()
	case " ":
		if a.focus == focusTasks {
			return a, a.toggleTodo()
		}
		return a, nil
	case "n":
		if a.focus == focusTasks {
			a.mode = modeNewTask
			a.taskInput.Focus()
			return a, textinput.Blink
		}
		return a, nil
	case "d":
		if a.focus == focusTasks {
			return a, a.deleteTodo()
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "r":
		if !a.loadingFeed {
			a.loadingFeed = true
			cmds := []tea.Cmd{a.loadFeedCmd(true), a.spinner.Tick}
			if a.collector != nil && !a.loadingTasks {
				a.loadingTasks = true
				cmds = append(cmds, a.loadTodosCmd())
			}
			return a, tea.Batch(cmds...)
		}
		return a, nil
	case "h":
		a.mode = modeHome
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) openSelectedArticle() tea.Cmd {
	if len(a.articles) == 0 || a.cursor >= len(a.articles) {
		return nil
	}
	return openBrowserCmd(a.articles[a.cursor].URL)
}

func (a *App) toggleTodo() tea.Cmd {
	if a.taskCursor >= len(a.todos) {
		return nil
	}
	txn, needsRemote := a.mutator.ToggleDone(a.todos[a.taskCursor])
	a.syncTodos()
	if !needsRemote {
		return nil
	}
	m := a.mutator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := m.ConfirmToggle(ctx, txn); err != nil {
			return toggleFailedMsg{txn: txn, err: err}
		}
		return nil
	}
}

func (a *App) deleteTodo() tea.Cmd {
	if a.taskCursor >= len(a.todos) {
		return nil
	}
	txn, needsRemote := a.mutator.Delete(a.todos[a.taskCursor])
	a.syncTodos()
	if !needsRemote {
		return nil
	}
	m := a.mutator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := m.ConfirmDelete(ctx, txn); err != nil {
			return deleteFailedMsg{txn: txn, err: err}
		}
		return nil
	}
}

func (a *App) createTodoCmd(title string) tea.Cmd {
	m := a.mutator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_, err := m.Create(ctx, title)
		return taskCreatedMsg{err: err}
	}
}

func (a *App) leaveSearch() {
	a.mode = modeDashboard
	a.searchInput.SetValue("")
	a.searchInput.Blur()
	a.suggestions = nil
	a.sugCursor.SetCount(0)
	if a.completer != nil {
		a.completer.Cancel()
	}
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.leaveSearch()
		return a, nil
	case "enter":
		query := a.searchInput.Value()
		if a.sugCursor.OnCandidate() && a.sugCursor.Pos() < len(a.suggestions) {
			query = a.suggestions[a.sugCursor.Pos()]
		}
		a.leaveSearch()
		if strings.TrimSpace(query) == "" {
			return a, nil
		}
		return a, openSearchCmd(query)
	case "down":
		a.sugCursor.Down()
		return a, nil
	case "up":
		a.sugCursor.Up()
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	// Only re-query on actual value changes, not cursor moves etc.
	if after := a.searchInput.Value(); after != before && a.completer != nil {
		a.completer.Input(after)
	}
	return a, cmd
}

func (a *App) handleNewTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeDashboard
		a.taskInput.SetValue("")
		a.taskInput.Blur()
		return a, nil
	case "enter":
		title := strings.TrimSpace(a.taskInput.Value())
		a.mode = modeDashboard
		a.taskInput.SetValue("")
		a.taskInput.Blur()
		if title == "" {
			return a, nil
		}
		return a, a.createTodoCmd(title)
	}

	var cmd tea.Cmd
	a.taskInput, cmd = a.taskInput.Update(msg)
	return a, cmd
}

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderBottomBar(a.state.Profile(), hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) feedPlaceholder() string {
	switch {
	case a.loadingFeed:
		return "Loading your feed..."
	case a.noTopics:
		return "No topics for your profile yet"
	default:
		return "No articles"
	}
}

func (a *App) taskPlaceholder() string {
	switch {
	case a.loadingTasks:
		return "Loading tasks..."
	case a.collector == nil:
		return "Set " + config.GraphTokenEnv + " to sync Microsoft To Do"
	default:
		return "Nothing for today"
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  jarvis")
	}

	profile := a.state.Profile()

	if a.mode == modeHome {
		home := renderHomeScreen(a.width, a.height, profile, a.updateVersion)
		return a.withBottomBar(home, "enter dashboard  ? help  q quit")
	}

	if a.mode == modeHelp {
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	}

	// Layout calculations
	headerHeight := 1
	searchHeight := 1
	statusHeight := 1
	sugCount := 0
	if a.mode == modeSearch {
		sugCount = len(a.suggestions)
	}
	bannerHeight := 0
	if a.banner != "" {
		bannerHeight = 1
	}
	contentHeight := a.height - headerHeight - searchHeight - sugCount - bannerHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	newsWidth := int(float64(a.width) * 0.62)
	taskWidth := a.width - newsWidth - 1 // gap

	// Header
	headerLeft := headerStyle.Render("jarvis") + itemTimeStyle.Render(" · "+greeting(time.Now())+", "+profile.DisplayName)
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Search row, replaced by the live input while typing
	var searchRow string
	switch a.mode {
	case modeSearch:
		searchRow = a.searchInput.View()
	case modeNewTask:
		searchRow = a.taskInput.View()
	default:
		searchRow = searchHintStyle.Render("/ search  ·  tab switch pane  ·  r refresh")
	}

	rows := []string{header, searchRow}
	if a.mode == modeSearch {
		rows = append(rows, renderSuggestions(a.suggestions, a.sugCursor.Pos())...)
	}
	if a.banner != "" {
		rows = append(rows, bannerStyle.Render(" ⚠ "+a.banner))
	}

	// News pane
	innerNewsW := newsWidth - 4 // border + padding
	newsContent := renderNewsList(a.articles, a.cursor, contentHeight, innerNewsW, a.focus == focusNews, a.feedPlaceholder())

	newsStyle := newsPaneStyle
	if a.focus == focusNews {
		newsStyle = newsPaneActiveStyle
	}
	newsPane := newsStyle.Width(newsWidth - 2).Height(contentHeight).Render(newsContent)

	// Tasks pane
	innerTaskW := taskWidth - 4
	taskContent := renderTaskList(a.todos, a.taskCursor, contentHeight, innerTaskW, a.focus == focusTasks, a.taskPlaceholder())

	taskStyle := taskPaneStyle
	if a.focus == focusTasks {
		taskStyle = taskPaneActiveStyle
	}
	taskPane := taskStyle.Width(taskWidth - 2).Height(contentHeight).Render(taskContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, newsPane, taskPane)
	rows = append(rows, content)

	// Status bar
	status := renderStatusBar(statusInfo{
		articles:   len(a.articles),
		done:       countDone(a.todos),
		todos:      len(a.todos),
		fromCache:  a.fromCache,
		cacheLeft:  a.cacheLeft,
		searching:  a.mode == modeSearch,
		newTask:    a.mode == modeNewTask,
		refreshing: a.loadingFeed || a.loadingTasks,
	}, a.width)

	if a.loadingFeed || a.loadingTasks {
		status = a.spinner.View() + " " + status
	}

	if a.warn != "" {
		status = warnStyle.Render(a.warn)
	}

	rows = append(rows, status)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func countDone(items []tasks.Item) int {
	n := 0
	for _, it := range items {
		if it.Done {
			n++
		}
	}
	return n
}

func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("jarvis")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move within the focused pane\n" +
		"  tab           Switch focus between news and tasks\n\n" +
		dim.Render("News") + "\n" +
		"  o, enter      Open article in browser\n" +
		"  r             Refresh feed and tasks\n\n" +
		dim.Render("Tasks") + "\n" +
		"  space/enter   Toggle done\n" +
		"  n             New task\n" +
		"  d             Delete task\n\n" +
		dim.Render("Search") + "\n" +
		"  /             Search the web with suggestions\n" +
		"  ↑/↓           Pick a suggestion\n" +
		"  enter         Open search in browser\n" +
		"  esc           Cancel\n\n" +
		dim.Render("General") + "\n" +
		"  h             Go to home screen\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if opts.Suggest != nil {
		app.completer = suggest.NewCompleter(opts.Suggest, func(items []string) {
			p.Send(suggestionsMsg{items: items})
		})
	}
	_, err := p.Run()
	return err
}
