package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	statusGray = "#777777"
	nyaaanRed  = "#FF3B30"

	minLPM = 10
	maxLPM = 1200
)

var (
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(statusGray))
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(nyaaanRed)).Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// tickMsg carries the sequence number of the tick loop that sent it. Only the
// latest loop advances the stream.
type tickMsg struct {
	seq int
}

// model shows the input one line at a time with its transformed form below.
type model struct {
	stream  *previewStream
	title   string
	running bool
	tick    int
	lpm     int
	width   int
	height  int
}

func newModel(stream *previewStream, lpm int) model {
	return model{
		stream:  stream,
		title:   stream.nyaaan.String(),
		running: true,
		lpm:     clampLPM(lpm),
	}
}

func (m model) Init() tea.Cmd {
	if m.stream == nil {
		return nil
	}
	return m.stream.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running {
				return m, m.nextTick()
			}
			return m, nil
		case "+", "=", "up":
			m.lpm = clampLPM(m.lpm + 10)
			return m, nil
		case "-", "_", "down":
			m.lpm = clampLPM(m.lpm - 10)
			return m, nil
		case "right", "l":
			return m, m.stream.Next()
		case "left", "h":
			m.stream.Prev()
			return m, nil
		case "r":
			// stdin cannot be replayed.
			if !m.stream.SupportsRestart() {
				return m, nil
			}
			return m, m.stream.Restart()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.seq != m.tick || !m.running {
			return m, nil
		}
		if !m.stream.CanAdvance() {
			m.running = false
			return m, nil
		}
		if cmd := m.stream.Next(); cmd != nil {
			return m, cmd
		}
		return m, m.nextTick()
	case lineMsg:
		m.stream.Handle(msg)
		if m.running {
			if _, ok := m.stream.Current(); ok && m.stream.CanAdvance() {
				return m, m.nextTick()
			}
			if !m.stream.CanAdvance() {
				m.running = false
			}
		}
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if err := m.stream.Err(); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	line, ok := m.stream.Current()
	if !ok {
		if !m.stream.CanAdvance() {
			return "No input to display."
		}
		return "Loading..."
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	contentHeight := m.height
	if contentHeight > 1 {
		contentHeight--
	}

	block := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(truncate(m.title, m.width)),
		"",
		sourceStyle.Render(truncate(expandTabs(line.source), m.width)),
		renderSegments(line.segments, m.width),
	)
	body := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Center, block)

	total := "?"
	if known, count := m.stream.Total(); known {
		total = fmt.Sprintf("%d", count)
	}
	controls := "space: play/pause  +/-: speed  h/l: back/forward"
	if m.stream.SupportsRestart() {
		controls += "  r: restart"
	}
	controls += "  q: quit"
	status := fmt.Sprintf("LPM %d  %d/%s  %s", m.lpm, m.stream.Pos()+1, total, controls)
	statusLine := sourceStyle.Render(truncate(status, m.width))

	if contentHeight < m.height {
		return body + "\n" + statusLine
	}
	return body
}

func (m model) lineInterval() time.Duration {
	if m.lpm <= 0 {
		return time.Second
	}
	return time.Minute / time.Duration(m.lpm)
}

// nextTick starts a new tick loop; ticks still pending from older loops are
// ignored when they arrive.
func (m *model) nextTick() tea.Cmd {
	m.tick++
	return tickCmd(m.lineInterval(), m.tick)
}

func tickCmd(interval time.Duration, seq int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

func clampLPM(lpm int) int {
	return min(max(lpm, minLPM), maxLPM)
}

// renderSegments styles generated replacements and cuts the line at width
// display cells. Newlines are dropped; the line is shown on its own row.
func renderSegments(segs []segment, width int) string {
	var b strings.Builder
	used := 0
	for _, seg := range segs {
		text := expandTabs(strings.TrimRight(seg.text, "\r\n"))
		if text == "" {
			continue
		}
		room := width - used
		if room <= 0 {
			break
		}
		text = truncate(text, room)
		used += lipgloss.Width(text)
		if seg.word {
			b.WriteString(wordStyle.Render(text))
		} else {
			b.WriteString(text)
		}
	}
	return b.String()
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String()
}
