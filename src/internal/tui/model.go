// Package tui is the terminal certificate page: the page viewer and the
// citation panel rendered with bubbletea.
//
// The page counts as fully loaded when the first tea.WindowSizeMsg arrives,
// which bubbletea sends once the terminal is set up and the first frame can be
// drawn. That starts the viewer's auto-advance grace delay.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"certview/src/internal/citation"
	"certview/src/internal/clipboard"
	"certview/src/internal/log"
	"certview/src/internal/panel"
	"certview/src/internal/viewer"
)

// Config wires runtime options into the TUI program.
type Config struct {
	// Title is shown in the header, usually the certificate directory.
	Title string
	// Pages is the ordered page set; a single page disables the viewer.
	Pages []string
	// Source and Service feed the citation panel.
	Source  panel.MetadataSource
	Service citation.Service
	// Clipboard defaults to the system clipboard.
	Clipboard clipboard.Writer
	// Style is applied once the citation is ready.
	Style citation.Style
	// Width is the wrap width before the first WindowSizeMsg.
	Width  int
	Logger *slog.Logger
}

type loadedMsg struct{ err error }

type model struct {
	config  Config
	clock   *loopClock
	panel   *panel.Controller
	viewer  *viewer.Controller
	pview   *panelView
	page    *pageView
	spinner spinner.Model
	loading bool
	sized   bool
	width   int
	err     error
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) (tea.Model, error) {
	return newModel(config)
}

func newModel(config Config) (*model, error) {
	if config.Logger == nil {
		config.Logger = log.Discard()
	}
	if config.Width <= 0 {
		config.Width = 80
	}
	m := &model{
		config: config,
		clock:  newLoopClock(),
		pview:  &panelView{},
		page:   &pageView{},
		width:  config.Width,
	}

	popts := []panel.Option{
		panel.WithClock(m.clock),
		panel.WithDisplay(m.pview),
		panel.WithLogger(config.Logger),
	}
	if config.Clipboard != nil {
		popts = append(popts, panel.WithClipboard(config.Clipboard))
	}
	m.panel = panel.New(config.Source, config.Service, popts...)

	v, err := viewer.New(config.Pages,
		viewer.WithClock(m.clock),
		viewer.WithDisplay(m.page),
		viewer.WithLogger(config.Logger))
	switch {
	case err == nil:
		m.viewer = v
	case errors.Is(err, viewer.ErrSinglePage):
		m.page.ShowPage(config.Pages[0], 0)
	default:
		return nil, err
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	m.spinner = spin
	m.loading = true
	return m, nil
}

func loadCmd(p *panel.Controller) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: p.Load(context.Background())}
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadCmd(m.panel),
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.clock.drain())
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if !m.sized {
			m.sized = true
			if m.viewer != nil {
				m.viewer.PageLoaded()
			}
		}
	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if m.config.Style != "" && m.config.Style != m.panel.Style() {
			m.err = m.panel.SetStyle(m.config.Style)
		}
	case timerMsg:
		m.clock.fire(msg.id)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.viewer != nil {
			m.viewer.Stop()
		}
		m.panel.Close()
		return tea.Quit
	case key.Matches(msg, keys.Prev):
		if m.viewer != nil {
			m.viewer.Navigate(viewer.Previous)
		}
	case key.Matches(msg, keys.Next):
		if m.viewer != nil {
			m.viewer.Navigate(viewer.Next)
		}
	case key.Matches(msg, keys.Click):
		if m.viewer != nil {
			m.viewer.ClickImage()
		}
	case key.Matches(msg, keys.Cycle):
		m.err = m.panel.SetStyle(m.panel.Style().Next())
	case key.Matches(msg, keys.Style):
		n, _ := strconv.Atoi(msg.String())
		styles := citation.Styles()
		if n >= 1 && n <= len(styles) {
			m.err = m.panel.SetStyle(styles[n-1])
		}
	case key.Matches(msg, keys.Copy):
		m.err = m.panel.Copy(context.Background())
	}
	return nil
}
