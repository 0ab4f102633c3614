// Package tui is the optional operator console (§9's "GUI" collaborator,
// minimally realized as a terminal program instead of a desktop app): a
// bubbletea program that subscribes to supervisor.Event and renders
// connected devices and a scrolling activity log. Grounded on
// guiperry-HASHER's internal/cli/ui.Model (Init/Update/View loop,
// viewport.Model for the scrolling log pane, tea.Tick polling a channel
// fed from elsewhere in the program).
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/friendteaminc/jukebox/supervisor"
)

const maxLogLines = 200

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	deviceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lostStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// eventMsg wraps one supervisor.Event so it flows through bubbletea's
// message loop instead of being touched directly from the supervisor
// goroutine.
type eventMsg struct{ event supervisor.Event }

// Feed is the channel-backed supervisor.Sink the Model polls.
type Feed chan supervisor.Event

func (f Feed) Handle(e supervisor.Event) {
	select {
	case f <- e:
	default:
		// Drop rather than block the supervisor if the console can't keep up.
	}
}

// NewFeed builds a buffered Feed suitable for supervisor.New's sink.
func NewFeed() Feed { return make(Feed, 256) }

// Model is the bubbletea program state.
type Model struct {
	feed     Feed
	devices  map[string]string // uid -> device type label
	log      []string
	viewport viewport.Model
	ready    bool
}

// New builds a Model reading from feed.
func New(feed Feed) Model {
	return Model{feed: feed, devices: make(map[string]string)}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.feed)
}

func waitForEvent(feed Feed) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-feed}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		logHeight := msg.Height - 6
		if logHeight < 3 {
			logHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, logHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = logHeight
		}
		m.viewport.SetContent(strings.Join(m.log, "\n"))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case eventMsg:
		m.apply(msg.event)
		if m.ready {
			m.viewport.SetContent(strings.Join(m.log, "\n"))
			m.viewport.GotoBottom()
		}
		return m, waitForEvent(m.feed)
	}
	return m, nil
}

func (m *Model) apply(e supervisor.Event) {
	ts := time.Now().Format("15:04:05")
	switch ev := e.(type) {
	case supervisor.ConnectedEvent:
		m.devices[ev.UID] = ev.DeviceType.String()
		m.appendLog(fmt.Sprintf("%s  connected   uid=%s type=%s", ts, ev.UID, ev.DeviceType.String()))
	case supervisor.InputEvent:
		// Input polls are too frequent to log individually; the device
		// list line is enough signal that a session is alive.
	case supervisor.LostConnectionEvent:
		delete(m.devices, ev.UID)
		m.appendLog(fmt.Sprintf("%s  lost        uid=%s", ts, ev.UID))
	case supervisor.DisconnectedEvent:
		delete(m.devices, ev.UID)
		m.appendLog(fmt.Sprintf("%s  disconnect  uid=%s", ts, ev.UID))
	}
}

func (m *Model) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("jukeboxd — connected devices"))
	b.WriteString("\n")
	if len(m.devices) == 0 {
		b.WriteString(dimStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for uid, dt := range m.devices {
		b.WriteString(deviceStyle.Render(fmt.Sprintf("  %s  %s", uid, dt)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("activity"))
	b.WriteString("\n")
	if m.ready {
		b.WriteString(lostStyle.Render(m.viewport.View()))
	} else {
		b.WriteString(dimStyle.Render("  (waiting for terminal size)"))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("(press q to quit console; daemon keeps running)"))
	return b.String()
}
