package consolecmder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/LogicalGuy77/memcon/pkg/api"
	"github.com/LogicalGuy77/memcon/pkg/cliui"
	"github.com/LogicalGuy77/memcon/pkg/health"
	"github.com/LogicalGuy77/memcon/pkg/nav"
	"github.com/LogicalGuy77/memcon/pkg/projection"
	"github.com/LogicalGuy77/memcon/pkg/store"
	"github.com/LogicalGuy77/memcon/pkg/upload"
	"github.com/LogicalGuy77/memcon/pkg/utils"
)

func init() {
	// Force TrueColor profile to fix lipgloss color detection issue
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)
}

var (
	consoleTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	consoleMutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	consoleDimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	consoleSectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	consoleDividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	consoleValueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	consoleHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("39")).Bold(true)
	consoleTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	consoleActiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Underline(true)
	consoleOnlineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	consoleOfflineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	consoleCheckingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	consoleErrStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	consoleMatchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
)

type consoleKeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Refresh key.Binding
	Extract key.Binding
	Sort    key.Binding
	Types   key.Binding
	Input   key.Binding
	Quit    key.Binding
}

func (k consoleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Down, k.Up, k.Enter, k.Refresh, k.Extract, k.Sort, k.Types, k.Input, k.Quit}
}

func (k consoleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.NextTab, k.PrevTab, k.Down, k.Up, k.Enter, k.Back}, {k.Refresh, k.Extract, k.Sort, k.Types, k.Input, k.Quit}}
}

func defaultKeyMap() consoleKeyMap {
	return consoleKeyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Extract: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "extract")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Types:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type filter")),
		Input:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "edit input")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type chatsLoadedMsg struct{}

type memoriesLoadedMsg struct{}

type extractDoneMsg struct {
	result *api.ExtractionResult
	err    error
}

type queryDoneMsg struct {
	memories []api.Memory
	query    string
	err      error
}

type uploadDoneMsg struct {
	result *upload.Result
	err    error
}

type healthCheckedMsg struct {
	snap health.Snapshot
}

type healthTickMsg time.Time

type consoleModel struct {
	client   *api.Client
	store    *store.Store
	monitor  *health.Monitor
	pipeline *upload.Pipeline
	interval time.Duration

	nav      nav.State
	snapshot health.Snapshot

	cursor       int
	memoryCursor int
	width        int
	height       int

	sortIndex int
	typeIndex int

	searchInput textinput.Model
	pathInput   textinput.Model
	inputActive bool

	results     []api.Memory
	resultQuery string
	searching   bool

	lastExtract *api.ExtractionResult
	lastUpload  *upload.Result
	flash       string

	keys consoleKeyMap
	help help.Model
	spin spinner.Model
}

func runConsoleTUI(client *api.Client, st *store.Store, monitor *health.Monitor, pipeline *upload.Pipeline, interval time.Duration, sortKey projection.SortKey) error {
	model := newConsoleModel(client, st, monitor, pipeline, interval, sortKey)

	program := bubbletea.NewProgram(model, bubbletea.WithAltScreen())
	_, err := program.Run()
	return err
}

func newConsoleModel(client *api.Client, st *store.Store, monitor *health.Monitor, pipeline *upload.Pipeline, interval time.Duration, sortKey projection.SortKey) consoleModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "query memories..."
	searchInput.CharLimit = 200

	pathInput := textinput.New()
	pathInput.Placeholder = "path/to/transcript.json"
	pathInput.CharLimit = 400

	sortIndex := 0
	for i, k := range projection.SortKeys {
		if k == sortKey {
			sortIndex = i
		}
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = consoleCheckingStyle

	return consoleModel{
		client:      client,
		store:       st,
		monitor:     monitor,
		pipeline:    pipeline,
		interval:    interval,
		snapshot:    monitor.State(),
		sortIndex:   sortIndex,
		searchInput: searchInput,
		pathInput:   pathInput,
		keys:        defaultKeyMap(),
		help:        help.New(),
		spin:        spin,
	}
}

func (m consoleModel) Init() bubbletea.Cmd {
	return bubbletea.Batch(
		checkHealthCmd(m.monitor),
		loadChatsCmd(m.store),
		healthTick(m.interval),
		m.spin.Tick,
	)
}

func (m consoleModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd bubbletea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case healthTickMsg:
		return m, bubbletea.Batch(checkHealthCmd(m.monitor), healthTick(m.interval))

	case healthCheckedMsg:
		m.snapshot = msg.snap
		return m, nil

	case chatsLoadedMsg:
		if m.cursor >= len(m.store.Chats()) {
			m.cursor = clamp(m.cursor, len(m.store.Chats())-1)
		}
		return m, nil

	case memoriesLoadedMsg:
		if m.memoryCursor >= len(m.store.Memories()) {
			m.memoryCursor = clamp(m.memoryCursor, len(m.store.Memories())-1)
		}
		return m, nil

	case extractDoneMsg:
		m.lastExtract = msg.result
		if msg.err != nil && msg.result == nil {
			m.flash = "Extraction failed"
		} else {
			m.flash = ""
		}
		return m, nil

	case queryDoneMsg:
		m.searching = false
		if msg.err != nil {
			m.flash = "Search failed"
			return m, nil
		}
		m.flash = ""
		m.results = msg.memories
		m.resultQuery = msg.query
		return m, nil

	case uploadDoneMsg:
		if msg.err != nil {
			var verr *upload.ValidationError
			if errors.As(msg.err, &verr) {
				m.flash = verr.Error()
			} else {
				m.flash = "Upload failed"
			}
			return m, nil
		}
		m.flash = ""
		m.lastUpload = msg.result
		m.store.ClearErr()
		// An empty batch uploads cleanly but carries no primary chat;
		// stay put instead of selecting a blank chat.
		if msg.result.ChatID == "" {
			return m, loadChatsCmd(m.store)
		}
		m.nav.SelectChat(msg.result.ChatID)
		return m, bubbletea.Batch(
			loadChatsCmd(m.store),
			loadMemoriesCmd(m.store, msg.result.ChatID),
		)

	case bubbletea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m consoleModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	if m.inputActive {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, bubbletea.Quit
	case "tab":
		m.cycleView(1)
		return m, nil
	case "shift+tab":
		m.cycleView(-1)
		return m, nil
	case "j", "down":
		return m.moveCursor(1)
	case "k", "up":
		return m.moveCursor(-1)
	case "enter":
		return m.selectCurrent()
	case "esc":
		if m.nav.Active() != nav.ViewDashboard {
			m.nav.SetView(nav.ViewDashboard)
		}
		return m, nil
	case "r":
		if m.store.Loading() {
			return m, nil
		}
		return m.refresh()
	case "e":
		if m.nav.Active() == nav.ViewChat && m.nav.SelectedChat() != "" && !m.store.Loading() {
			return m, extractCmd(m.store, m.nav.SelectedChat())
		}
		return m, nil
	case "s":
		if m.nav.Active() == nav.ViewMemories {
			m.sortIndex = (m.sortIndex + 1) % len(projection.SortKeys)
			m.memoryCursor = 0
		}
		return m, nil
	case "t":
		if m.nav.Active() == nav.ViewMemories {
			m.typeIndex = (m.typeIndex + 1) % (len(api.MemoryTypes) + 1)
			m.memoryCursor = 0
		}
		return m, nil
	case "/":
		switch m.nav.Active() {
		case nav.ViewQuery:
			m.inputActive = true
			m.searchInput.Focus()
		case nav.ViewUpload:
			m.inputActive = true
			m.pathInput.Focus()
		}
		return m, nil
	}

	return m, nil
}

func (m consoleModel) handleInputKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, bubbletea.Quit
	case "esc":
		m.inputActive = false
		m.searchInput.Blur()
		m.pathInput.Blur()
		return m, nil
	case "enter":
		m.inputActive = false
		switch m.nav.Active() {
		case nav.ViewQuery:
			m.searchInput.Blur()
			query := strings.TrimSpace(m.searchInput.Value())
			if query == "" || m.searching {
				return m, nil
			}
			m.searching = true
			return m, queryCmd(m.client, query)
		case nav.ViewUpload:
			m.pathInput.Blur()
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				return m, nil
			}
			return m, uploadCmd(m.pipeline, path)
		}
		return m, nil
	}

	var cmd bubbletea.Cmd
	switch m.nav.Active() {
	case nav.ViewQuery:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case nav.ViewUpload:
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

func (m *consoleModel) cycleView(delta int) {
	visible := m.nav.Visible()
	active := m.nav.Active()

	idx := 0
	for i, v := range visible {
		if v == active {
			idx = i
		}
	}

	next := visible[((idx+delta)%len(visible)+len(visible))%len(visible)]
	m.nav.SetView(next)
}

func (m consoleModel) moveCursor(delta int) (bubbletea.Model, bubbletea.Cmd) {
	switch m.nav.Active() {
	case nav.ViewDashboard:
		chats := m.store.Chats()
		if len(chats) == 0 {
			return m, nil
		}
		m.cursor = clamp(m.cursor+delta, len(chats)-1)
	case nav.ViewMemories:
		visible := m.visibleMemories()
		if len(visible) == 0 {
			return m, nil
		}
		m.memoryCursor = clamp(m.memoryCursor+delta, len(visible)-1)
	}
	return m, nil
}

func (m consoleModel) selectCurrent() (bubbletea.Model, bubbletea.Cmd) {
	if m.nav.Active() != nav.ViewDashboard {
		return m, nil
	}

	chats := m.store.Chats()
	if len(chats) == 0 || m.cursor >= len(chats) {
		return m, nil
	}

	chat := chats[m.cursor]
	m.nav.SelectChat(chat.ChatID)
	m.lastExtract = nil
	m.memoryCursor = 0
	return m, loadMemoriesCmd(m.store, chat.ChatID)
}

func (m consoleModel) refresh() (bubbletea.Model, bubbletea.Cmd) {
	cmds := []bubbletea.Cmd{loadChatsCmd(m.store), checkHealthCmd(m.monitor)}
	if m.nav.SelectedChat() != "" {
		cmds = append(cmds, loadMemoriesCmd(m.store, m.nav.SelectedChat()))
	}
	return m, bubbletea.Batch(cmds...)
}

// visibleMemories applies the active type filter and sort order.
func (m consoleModel) visibleMemories() []api.Memory {
	var selected []string
	if m.typeIndex > 0 {
		selected = []string{api.MemoryTypes[m.typeIndex-1]}
	}

	filtered := projection.MemoriesByTypes(m.store.Memories(), selected)
	return projection.SortMemories(filtered, projection.SortKeys[m.sortIndex])
}

func (m consoleModel) View() string {
	lines := make([]string, 0, 24)
	lines = append(lines, m.viewHeader(), renderRule(m.width), "")

	if errMsg := m.store.Err(); errMsg != "" {
		lines = append(lines, "  "+consoleErrStyle.Render(errMsg), "")
	}
	if m.flash != "" {
		lines = append(lines, "  "+consoleErrStyle.Render(m.flash), "")
	}

	switch m.nav.Active() {
	case nav.ViewDashboard:
		lines = append(lines, m.viewDashboard())
	case nav.ViewUpload:
		lines = append(lines, m.viewUpload())
	case nav.ViewQuery:
		lines = append(lines, m.viewQuery())
	case nav.ViewChat:
		lines = append(lines, m.viewChat())
	case nav.ViewMemories:
		lines = append(lines, m.viewMemories())
	}

	lines = append(lines, "", consoleMutedStyle.Render(m.help.View(m.keys)))
	return strings.Join(lines, "\n")
}

func (m consoleModel) viewHeader() string {
	tabs := make([]string, 0, 5)
	for _, v := range m.nav.Visible() {
		if v == m.nav.Active() {
			tabs = append(tabs, consoleActiveTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, consoleTabStyle.Render(v.String()))
		}
	}

	left := consoleTitleStyle.Render("memcon") + "  " + strings.Join(tabs, "  ")
	right := m.healthLine()
	return renderHeaderLine(m.width, left, right)
}

func (m consoleModel) healthLine() string {
	var style lipgloss.Style
	switch m.snapshot.Status {
	case health.StatusOnline:
		style = consoleOnlineStyle
	case health.StatusOffline:
		style = consoleOfflineStyle
	default:
		style = consoleCheckingStyle
	}

	label := style.Render("● " + m.snapshot.Status.Label())
	age := m.snapshot.FormatAge(time.Now())
	if age == "" {
		return label
	}
	return label + consoleMutedStyle.Render("  checked "+age)
}

func (m consoleModel) viewDashboard() string {
	chats := m.store.Chats()
	stats := projection.Summarize(chats)

	lines := []string{
		consoleSectionStyle.Render("overview"),
		renderRule(m.width),
		fmt.Sprintf("  %s %s   %s %s   %s %s",
			consoleMutedStyle.Render("chats:"),
			consoleValueStyle.Render(fmt.Sprintf("%d", stats.TotalChats)),
			consoleMutedStyle.Render("messages:"),
			consoleValueStyle.Render(fmt.Sprintf("%d", stats.TotalMessages)),
			consoleMutedStyle.Render("avg/chat:"),
			consoleValueStyle.Render(fmt.Sprintf("%d", stats.AvgMessages)),
		),
		"",
		consoleSectionStyle.Render("chats"),
		renderRule(m.width),
	}

	if m.store.Loading() && len(chats) == 0 {
		lines = append(lines, "  "+m.spin.View()+consoleMutedStyle.Render("loading chats"))
		return strings.Join(lines, "\n")
	}

	if len(chats) == 0 {
		lines = append(lines, consoleMutedStyle.Render("  no chats yet; upload a transcript to get started"))
		return strings.Join(lines, "\n")
	}

	maxVisible := m.listHeight()
	start, end := visibleRange(len(chats), m.cursor, maxVisible)
	for i := start; i < end; i++ {
		chat := chats[i]
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		preview := utils.Truncate(utils.CollapseWhitespace(chat.LastMessage), 60)
		line := fmt.Sprintf("%s %-24s %4d msgs  %s",
			cursor,
			utils.Truncate(chat.ChatID, 24),
			chat.MessageCount,
			preview,
		)

		if chat.ChatID == m.nav.SelectedChat() {
			line += " *"
		}
		if i == m.cursor {
			line = consoleHighlightStyle.Render(line)
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (m consoleModel) viewUpload() string {
	lines := []string{
		consoleSectionStyle.Render("upload transcript"),
		renderRule(m.width),
		"",
		"  " + m.pathInput.View(),
		"",
		consoleMutedStyle.Render("  press / to edit the path, enter to upload"),
	}

	if m.lastUpload != nil {
		lines = append(lines, "",
			fmt.Sprintf("  %s uploaded %d messages to %s",
				cliui.SuccessMark,
				m.lastUpload.MessageCount,
				strings.Join(m.lastUpload.UniqueChatIDs, ", "),
			),
		)
	}

	lines = append(lines, "",
		consoleMutedStyle.Render("  transcripts are JSON arrays of messages with"),
		consoleMutedStyle.Render("  message_id, chat_id, sender, content, timestamp"),
	)

	return strings.Join(lines, "\n")
}

func (m consoleModel) viewQuery() string {
	lines := []string{
		consoleSectionStyle.Render("search memories"),
		renderRule(m.width),
		"",
		"  " + m.searchInput.View(),
		"",
	}

	if m.searching {
		lines = append(lines, "  "+m.spin.View()+consoleMutedStyle.Render("searching"))
		return strings.Join(lines, "\n")
	}

	if m.resultQuery == "" {
		lines = append(lines, consoleMutedStyle.Render("  press / to edit the query, enter to search"))
		return strings.Join(lines, "\n")
	}

	if len(m.results) == 0 {
		lines = append(lines, consoleMutedStyle.Render(fmt.Sprintf("  no memories match %q", m.resultQuery)))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, consoleMutedStyle.Render(fmt.Sprintf("  %d results for %q", len(m.results), m.resultQuery)), "")
	for _, memory := range m.results {
		lines = append(lines, fmt.Sprintf("  %s %s %s",
			cliui.TypeBadge(memory.MemoryType),
			consoleMutedStyle.Render(fmt.Sprintf("%.2f", memory.Confidence)),
			consoleDimStyle.Render(memory.ChatID),
		))
		lines = append(lines, "    "+highlightLine(memory.Content, m.resultQuery))
	}

	return strings.Join(lines, "\n")
}

func (m consoleModel) viewChat() string {
	chatID := m.nav.SelectedChat()

	lines := []string{
		consoleSectionStyle.Render("chat analysis: " + chatID),
		renderRule(m.width),
	}

	for _, chat := range m.store.Chats() {
		if chat.ChatID == chatID {
			lines = append(lines, fmt.Sprintf("  %s %s",
				consoleMutedStyle.Render("messages:"),
				consoleValueStyle.Render(fmt.Sprintf("%d", chat.MessageCount)),
			))
			break
		}
	}

	lines = append(lines, fmt.Sprintf("  %s %s",
		consoleMutedStyle.Render("memories:"),
		consoleValueStyle.Render(fmt.Sprintf("%d", len(m.store.Memories()))),
	))

	lines = append(lines, "", consoleMutedStyle.Render("  press e to run extraction"))

	if m.store.Loading() {
		lines = append(lines, "", "  "+m.spin.View()+consoleMutedStyle.Render("working"))
	}

	if m.lastExtract != nil {
		lines = append(lines, "",
			consoleSectionStyle.Render("last extraction"),
			renderRule(m.width),
			fmt.Sprintf("  created: %d  updated: %d  conflicts resolved: %d",
				m.lastExtract.Created,
				m.lastExtract.Updated,
				m.lastExtract.ConflictsResolved,
			),
		)
	}

	return strings.Join(lines, "\n")
}

func (m consoleModel) viewMemories() string {
	typeLabel := "all"
	if m.typeIndex > 0 {
		typeLabel = api.MemoryTypes[m.typeIndex-1]
	}

	lines := []string{
		consoleSectionStyle.Render(fmt.Sprintf("memories: %s (sort: %s, type: %s)",
			m.nav.SelectedChat(), projection.SortKeys[m.sortIndex], typeLabel)),
		renderRule(m.width),
	}

	visible := m.visibleMemories()
	if len(visible) == 0 {
		lines = append(lines, consoleMutedStyle.Render("  no memories; run extraction from Chat Analysis"))
		return strings.Join(lines, "\n")
	}

	maxVisible := m.listHeight()
	start, end := visibleRange(len(visible), m.memoryCursor, maxVisible)
	for i := start; i < end; i++ {
		memory := visible[i]
		cursor := " "
		if i == m.memoryCursor {
			cursor = ">"
		}

		line := fmt.Sprintf("%s %s %.2f  %s",
			cursor,
			cliui.TypeBadge(memory.MemoryType),
			memory.Confidence,
			utils.Truncate(utils.CollapseWhitespace(memory.Content), 64),
		)
		if i == m.memoryCursor {
			line = consoleHighlightStyle.Render(line)
		}
		lines = append(lines, line)
	}

	if m.memoryCursor < len(visible) {
		memory := visible[m.memoryCursor]
		lines = append(lines, "",
			consoleSectionStyle.Render("detail"),
			renderRule(m.width),
			"  "+consoleValueStyle.Render(memory.Content),
		)
		if memory.Reasoning != "" {
			lines = append(lines, "  "+consoleMutedStyle.Render(memory.Reasoning))
		}
		lines = append(lines, "  "+consoleDimStyle.Render(fmt.Sprintf(
			"%s  %s  created %s  updated %s",
			memory.MemoryID, memory.ExtractionMethod, memory.CreatedAt, memory.UpdatedAt,
		)))
	}

	return strings.Join(lines, "\n")
}

// listHeight is the number of list rows that fit under the chrome.
func (m consoleModel) listHeight() int {
	if m.height <= 0 {
		return 12
	}
	return maxInt(m.height-14, 4)
}

func loadChatsCmd(st *store.Store) bubbletea.Cmd {
	return func() bubbletea.Msg {
		_ = st.LoadChats(context.Background())
		return chatsLoadedMsg{}
	}
}

func loadMemoriesCmd(st *store.Store, chatID string) bubbletea.Cmd {
	return func() bubbletea.Msg {
		_ = st.LoadMemories(context.Background(), chatID)
		return memoriesLoadedMsg{}
	}
}

func extractCmd(st *store.Store, chatID string) bubbletea.Cmd {
	return func() bubbletea.Msg {
		result, err := st.ExtractAndReload(context.Background(), chatID)
		return extractDoneMsg{result: result, err: err}
	}
}

func queryCmd(client *api.Client, query string) bubbletea.Cmd {
	return func() bubbletea.Msg {
		memories, err := client.QueryMemories(context.Background(), api.QueryRequest{Query: query})
		return queryDoneMsg{memories: memories, query: query, err: err}
	}
}

func uploadCmd(pipeline *upload.Pipeline, path string) bubbletea.Cmd {
	return func() bubbletea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		result, err := pipeline.Submit(context.Background(), string(data))
		return uploadDoneMsg{result: result, err: err}
	}
}

func checkHealthCmd(monitor *health.Monitor) bubbletea.Cmd {
	return func() bubbletea.Msg {
		return healthCheckedMsg{snap: monitor.Check(context.Background())}
	}
}

func healthTick(interval time.Duration) bubbletea.Cmd {
	return bubbletea.Tick(interval, func(t time.Time) bubbletea.Msg {
		return healthTickMsg(t)
	})
}

// highlightLine renders content with query matches emphasized.
func highlightLine(content, query string) string {
	var b strings.Builder
	for _, seg := range projection.Highlight(utils.CollapseWhitespace(content), query) {
		if seg.Match {
			b.WriteString(consoleMatchStyle.Render(seg.Text))
		} else {
			b.WriteString(consoleValueStyle.Render(seg.Text))
		}
	}
	return b.String()
}

func renderHeaderLine(width int, left, right string) string {
	lineWidth := width
	if lineWidth <= 0 {
		lineWidth = 80
	}
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	if leftWidth+rightWidth+1 >= lineWidth {
		return strings.TrimSpace(left + " " + right)
	}
	spacing := lineWidth - leftWidth - rightWidth
	return left + strings.Repeat(" ", spacing) + right
}

func renderRule(width int) string {
	lineWidth := width
	if lineWidth <= 0 {
		lineWidth = 80
	}
	return consoleDividerStyle.Render(strings.Repeat("─", lineWidth))
}

func clamp(value, upper int) int {
	if value < 0 {
		return 0
	}
	if upper < 0 {
		return 0
	}
	if value > upper {
		return upper
	}
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func visibleRange(total, cursor, size int) (int, int) {
	if total <= 0 || size <= 0 {
		return 0, 0
	}
	if total <= size {
		return 0, total
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	start := maxInt(cursor-(size/2), 0)
	end := start + size
	if end > total {
		end = total
		start = maxInt(end-size, 0)
	}
	return start, end
}
