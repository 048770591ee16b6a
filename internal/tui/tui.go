package tui

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"launcher/internal/fuzzy"
	"launcher/internal/index"
	"launcher/internal/launch"
)

// redrawInterval is the cadence at which discovered entries are pulled into
// the index while discovery is running.
const redrawInterval = 16 * time.Millisecond

// Config holds what the picker needs from the CLI layer.
type Config struct {
	Index     *index.Index
	Handoff   *launch.Handoff
	BatchSize int
	Theme     string
	Query     string
	Logger    *log.Logger

	// Input and Output default to the controlling terminal.
	Input  io.Reader
	Output io.Writer
}

// redrawMsg drives one drain-and-rerank cycle.
type redrawMsg struct{}

// Model is the Bubble Tea model for the application picker.
type Model struct {
	cfg    Config
	styles styles
	width  int
	height int

	input   textinput.Model
	spinner spinner.Model

	ranked []fuzzy.Ranked

	committed string
	cancelled bool
}

// New creates a picker over cfg.Index.
func New(cfg Config) Model {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = index.DefaultBatchSize
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Index == nil {
		cfg.Index = index.NewIndex(nil, index.KeyBySearch)
	}
	st := newStyles(cfg.Theme)

	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "> "
	ti.PromptStyle = st.prompt
	ti.CharLimit = 256
	ti.SetValue(cfg.Query)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.selected

	m := Model{
		cfg:     cfg,
		styles:  st,
		input:   ti,
		spinner: sp,
	}
	m.rerank()
	return m
}

// Committed returns the command sent for launch, or "" if none was.
func (m Model) Committed() string {
	return m.committed
}

// IsCancelled reports whether the user dismissed the picker.
func (m Model) IsCancelled() bool {
	return m.cancelled
}

// Ranked returns the current ranked candidates.
func (m Model) Ranked() []fuzzy.Ranked {
	return m.ranked
}

func redraw() tea.Cmd {
	return tea.Tick(redrawInterval, func(time.Time) tea.Msg { return redrawMsg{} })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, func() tea.Msg { return redrawMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case redrawMsg:
		return m.handleRedraw()

	case spinner.TickMsg:
		if m.cfg.Index.Done() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.commit()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.rerank()
	}
	return m, cmd
}

// handleRedraw pulls at most one batch of discovered entries into the index
// without waiting for more, then reranks if anything arrived.
func (m Model) handleRedraw() (tea.Model, tea.Cmd) {
	if n := m.cfg.Index.Drain(m.cfg.BatchSize); n > 0 {
		m.rerank()
	}
	if m.cfg.Index.Done() {
		m.cfg.Logger.Debug("index complete", "entries", m.cfg.Index.Len())
		return m, nil
	}
	return m, redraw()
}

// commit hands the top match's command to the coordinator. With no match,
// or a match without a command, it does nothing and the picker stays open.
func (m Model) commit() (tea.Model, tea.Cmd) {
	top, ok := fuzzy.Top(m.ranked)
	if !ok || !top.Item.Entry.Launchable() {
		return m, nil
	}
	if m.cfg.Handoff != nil && !m.cfg.Handoff.Send(top.Item.Entry.Exec) {
		return m, nil
	}
	m.committed = top.Item.Entry.Exec
	m.cfg.Logger.Debug("committed", "name", top.Item.Entry.DisplayName(), "path", top.Item.Path)
	return m, tea.Quit
}

func (m *Model) rerank() {
	m.ranked = fuzzy.Rank(m.input.Value(), m.cfg.Index.Snapshot())
}

// Run starts the picker and blocks until it exits. It opens the controlling
// terminal for the UI when no streams are configured, so stdout stays free.
func Run(cfg Config) (Model, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	var opts []tea.ProgramOption
	opts = append(opts, tea.WithAltScreen())

	in, out := cfg.Input, cfg.Output
	if in == nil || out == nil {
		if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
			defer tty.Close()
			in, out = tty, tty
		} else {
			cfg.Logger.Debug("no controlling terminal, using stdio", "err", err)
			in, out = os.Stdin, os.Stderr
		}
	}
	opts = append(opts, tea.WithInput(in), tea.WithOutput(out))
	lipgloss.SetColorProfile(termenv.NewOutput(out).ColorProfile())

	p := tea.NewProgram(New(cfg), opts...)
	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	m, _ := final.(Model)
	return m, nil
}
