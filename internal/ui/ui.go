package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/playall/internal/models"
	"github.com/desertthunder/playall/internal/shared"
	"github.com/desertthunder/playall/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	InputView ViewState = iota
	ResolvingView
	HistoryView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       tasks.Resolver
	openURL      func(string) error
	width        int
	height       int
	input        textinput.Model
	spinner      spinner.Model
	history      list.Model
	progressChan chan tasks.ProgressUpdate
	done         chan models.Result
	progress     tasks.ProgressUpdate
	result       *models.Result
	status       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine tasks.Resolver) *Model {
	input := textinput.New()
	input.Placeholder = "https://youtube.com/@channel, @username, or UC..."
	input.Prompt = "› "
	input.CharLimit = 512
	input.Width = 60
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.title.UnsetMarginBottom()

	history := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	history.Title = "Generated Playlists"

	return &Model{
		ctx:     ctx,
		view:    InputView,
		engine:  engine,
		openURL: shared.OpenBrowser,
		input:   input,
		spinner: sp,
		history: history,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the cursor blinking in the input field.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.history.SetSize(msg.Width-4, msg.Height-6)
		if msg.Width > 10 {
			m.input.Width = min(msg.Width-6, 80)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		switch m.view {
		case InputView:
			return m.handleInputKeys(msg)
		case HistoryView:
			return m.handleHistoryKeys(msg)
		}
		return m, nil

	case spinner.TickMsg:
		if m.view != ResolvingView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgResolveComplete:
		res := msg.data.(models.Result)
		m.view = InputView
		m.progressChan = nil
		m.done = nil
		if !res.OK() {
			m.result = nil
			m.status = ""
			m.err = errors.New(res.Error)
			return m, nil
		}
		m.result = &res
		m.err = nil
		m.status = tasks.SuccessMessage(res.Method)
		return m, m.history.InsertItem(0, resultItem{result: res})

	case MsgBrowserOpened:
		data := msg.data.(struct {
			url string
			err error
		})
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.status = fmt.Sprintf("Opened %s", data.url)
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case InputView:
		return m.renderInput()
	case ResolvingView:
		return m.renderResolving()
	case HistoryView:
		return m.renderHistory()
	default:
		return ""
	}
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.submit):
		raw := m.input.Value()
		if strings.TrimSpace(raw) == "" {
			m.err = shared.ErrEmptyInput
			return m, nil
		}
		m.err = nil
		m.status = ""
		m.view = ResolvingView
		m.progress = tasks.ProgressUpdate{Message: "Starting..."}
		return m, tea.Batch(m.spinner.Tick, m.startResolve(raw))

	case key.Matches(msg, m.keys.open):
		if m.result == nil {
			return m, nil
		}
		return m, m.open(m.result.PlaylistURL)

	case key.Matches(msg, m.keys.reset):
		m.reset()
		return m, nil

	case key.Matches(msg, m.keys.history):
		if len(m.history.Items()) == 0 {
			return m, nil
		}
		m.view = HistoryView
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.history.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.history):
			m.view = InputView
			return m, m.input.Focus()
		case key.Matches(msg, m.keys.submit):
			if item, ok := m.history.SelectedItem().(resultItem); ok {
				return m, m.open(item.result.PlaylistURL)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

// reset clears the input, the current result, and any error.
func (m *Model) reset() {
	m.input.Reset()
	m.result = nil
	m.status = ""
	m.err = nil
	m.progress = tasks.ProgressUpdate{}
}

func (m *Model) startResolve(raw string) tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan models.Result, 1)
	m.progressChan = progress
	m.done = done

	engine, ctx := m.engine, m.ctx
	go func() {
		done <- engine.Run(ctx, raw, progress)
		close(progress)
	}()

	return m.waitForProgress()
}

// waitForProgress relays the next progress update, or the final result once the channel closes.
func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.done
	if progress == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			return resolveCompleteMsg(<-done)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) open(url string) tea.Cmd {
	openURL := m.openURL
	return func() tea.Msg {
		return browserOpenedMsg(url, openURL(url))
	}
}

func (m *Model) renderInput() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("YouTube Uploads Playlist"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(m.err.Error()))
		b.WriteString("\n")
	case m.result != nil:
		b.WriteString(styles.ok.Render("✓ " + m.status))
		b.WriteString("\n")
		b.WriteString(styles.box.Render(styles.link.Render(m.result.PlaylistURL)))
		b.WriteString("\n")
		b.WriteString(styles.help.Render(fmt.Sprintf("channel %s via %s", m.result.ChannelID, m.result.Method)))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(styles.warn.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *Model) renderResolving() string {
	title := styles.title.Render("Generating Playlist URL")

	step := ""
	if m.progress.Total > 0 {
		step = styles.help.Render(fmt.Sprintf(" (%d/%d)", m.progress.Step, m.progress.Total))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n%s %s%s\n\n%s", title, m.spinner.View(), m.progress.Message, step, helpView)
}

func (m *Model) renderHistory() string {
	openKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	helpView := m.help.ShortHelpView([]key.Binding{openKey, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.history.View(), helpView)
}
