package tui

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idelchi/filecensus/internal/census"
)

type viewState int

const (
	stateVolumes viewState = iota
	stateMenu
	stateBrowser
	stateScanning
	stateResults
)

// menuItems are the per-volume actions, in display order.
var menuItems = []string{
	"Count files on this volume",
	"Explore subfolders",
	"Back to volume selection",
	"Quit",
}

const (
	menuScan = iota
	menuBrowse
	menuBack
	menuQuit
)

type volumesMsg struct {
	volumes []Volume
	err     error
}

type subdirsMsg struct {
	path    string
	subdirs []string
	err     error
}

type scanStreamMsg struct {
	ch <-chan tea.Msg
}

type scanProgressMsg struct {
	done  int
	total int
}

type scanDoneMsg struct {
	result *census.Result
	err    error
}

type model struct {
	state  viewState
	keys   keyMap
	help   help.Model
	width  int
	height int

	volumes []Volume
	volErr  error
	cursor  int

	base    string
	path    string
	subdirs []string
	status  string

	spinner  spinner.Model
	bar      progress.Model
	done     int
	total    int
	target   string
	cancel   context.CancelFunc
	scanCh   <-chan tea.Msg
	result   *census.Result
	scanErr  error
	canceled bool
}

func newModel() model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	bar := progress.New(progress.WithDefaultGradient())

	return model{
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: sp,
		bar:     bar,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadVolumesCmd)
}

func loadVolumesCmd() tea.Msg {
	volumes, err := listVolumes()

	return volumesMsg{volumes: volumes, err: err}
}

func loadSubdirsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		subdirs, err := listSubdirs(path)

		return subdirsMsg{path: path, subdirs: subdirs, err: err}
	}
}

// startScanCmd launches the scan in its own goroutine and hands the message
// stream back to Update, which pumps it with waitScanCmd.
func startScanCmd(ctx context.Context, path string) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan tea.Msg, 16)

		go func() {
			defer close(ch)

			result, err := census.Scan(ctx, path, func(done, total int) {
				// Drop intermediate updates when the UI lags behind.
				select {
				case ch <- scanProgressMsg{done: done, total: total}:
				default:
				}
			})

			ch <- scanDoneMsg{result: result, err: err}
		}()

		return scanStreamMsg{ch: ch}
	}
}

func waitScanCmd(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}

		return msg
	}
}

func (m *model) startScan(path string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.state = stateScanning
	m.target = path
	m.done = 0
	m.total = 0
	m.result = nil
	m.scanErr = nil
	m.canceled = false
	m.status = ""

	return tea.Batch(m.spinner.Tick, startScanCmd(ctx, path))
}

//nolint:gocognit,cyclop // State machine dispatch
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		barWidth := msg.Width - 8
		if barWidth > 60 {
			barWidth = 60
		}

		if barWidth > 0 {
			m.bar.Width = barWidth
		}

		return m, nil

	case spinner.TickMsg:
		// Spin only while there is something indeterminate going on.
		if m.state == stateScanning && m.total == 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)

			return m, cmd
		}

		return m, nil

	case volumesMsg:
		m.volumes = msg.volumes
		m.volErr = msg.err
		m.cursor = 0

		return m, nil

	case subdirsMsg:
		if msg.err != nil {
			m.status = "cannot open folder: access denied"

			return m, nil
		}

		m.path = msg.path
		m.subdirs = msg.subdirs
		m.cursor = 0
		m.state = stateBrowser
		m.status = ""

		return m, nil

	case scanStreamMsg:
		m.scanCh = msg.ch

		return m, waitScanCmd(msg.ch)

	case scanProgressMsg:
		m.done = msg.done
		m.total = msg.total

		return m, waitScanCmd(m.scanCh)

	case scanDoneMsg:
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}

		m.result = msg.result
		m.scanErr = msg.err
		m.canceled = errors.Is(msg.err, context.Canceled)
		m.state = stateResults

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

//nolint:gocognit,cyclop,funlen // State machine dispatch
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && m.state != stateScanning {
		return m, tea.Quit
	}

	switch m.state {
	case stateVolumes:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.volumes)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.volumes) > 0 {
				m.base = m.volumes[m.cursor].Mountpoint
				m.cursor = 0
				m.state = stateMenu
			}
		}

	case stateMenu:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Back):
			m.cursor = 0
			m.state = stateVolumes
		case key.Matches(msg, m.keys.Select):
			switch m.cursor {
			case menuScan:
				cmd := m.startScan(m.base)

				return m, cmd
			case menuBrowse:
				return m, loadSubdirsCmd(m.base)
			case menuBack:
				m.cursor = 0
				m.state = stateVolumes
			case menuQuit:
				return m, tea.Quit
			}
		}

	case stateBrowser:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.subdirs)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.subdirs) > 0 {
				return m, loadSubdirsCmd(filepath.Join(m.path, m.subdirs[m.cursor]))
			}
		case key.Matches(msg, m.keys.Scan):
			target := m.path
			if len(m.subdirs) > 0 {
				target = filepath.Join(m.path, m.subdirs[m.cursor])
			}

			cmd := m.startScan(target)

			return m, cmd
		case key.Matches(msg, m.keys.Back):
			if m.path == m.base {
				m.cursor = 0
				m.state = stateMenu

				return m, nil
			}

			return m, loadSubdirsCmd(filepath.Dir(m.path))
		}

	case stateScanning:
		if key.Matches(msg, m.keys.Back) && m.cancel != nil {
			m.cancel()
		}

	case stateResults:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Select) {
			m.cursor = 0
			m.state = stateMenu
		}
	}

	return m, nil
}
