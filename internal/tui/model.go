// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/morse"
	"github.com/verte-zerg/tuimorse/internal/trainer"
)

// visualPlayer shows the Morse rendering of the current item on screen.
type visualPlayer struct {
	code string
}

func (p *visualPlayer) PlayString(text string) {
	p.code = morse.Encode(text)
}

func (p *visualPlayer) ForceStop() {
	p.code = ""
}

type hydratedMsg struct{}

// Model implements the Bubble Tea practice UI.
type Model struct {
	session *trainer.Session
	player  morse.Player
	visual  *visualPlayer
	input   textinput.Model
	now     func() time.Time

	width  int
	height int

	current  string
	shownAt  time.Time
	attempts int

	hasLast     bool
	lastText    string
	lastSuccess int
	lastTotal   int
	errMsg      string
}

var (
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a practice TUI model over a started session.
func NewModel(session *trainer.Session) *Model {
	input := textinput.New()
	input.Placeholder = "decoded text"
	input.CharLimit = 64
	input.Focus()

	visual := &visualPlayer{}
	m := &Model{
		session: session,
		player:  visual,
		visual:  visual,
		input:   input,
		now:     time.Now,
	}
	m.nextItem()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	hydrated := m.session.Hydrated()
	return tea.Batch(textinput.Blink, func() tea.Msg {
		<-hydrated
		return hydratedMsg{}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case hydratedMsg:
		// Stored bounds may differ from the defaults the first item used.
		if m.attempts == 0 {
			m.nextItem()
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.player.ForceStop()
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{}
	if m.visual.code != "" {
		lines = append(lines, codeStyle.Render(m.visual.code))
	}
	lines = append(lines, "", m.input.View())
	if m.hasLast {
		lines = append(lines, "", m.renderLast())
	}
	content := strings.Join(lines, "\n")
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) nextItem() {
	m.player.ForceStop()
	word, err := m.session.Next()
	if err != nil {
		m.current = ""
		m.errMsg = fmt.Sprintf("no practice item: %v", err)
		return
	}
	m.current = word
	m.shownAt = m.now()
	m.player.PlayString(word)
}

func (m *Model) submit() {
	if m.current == "" {
		return
	}
	typed := m.input.Value()
	var success, total int
	if m.session.Mode() == model.ModeCopy {
		success, total = scoreCopy(m.current, typed)
	} else {
		success, total = scoreRead(m.current, typed)
	}
	attempt := model.Attempt{
		Text:      m.current,
		Success:   success,
		Total:     total,
		ElapsedMs: model.Millis(m.now().Sub(m.shownAt).Milliseconds()),
	}
	m.errMsg = ""
	if err := m.session.Report(context.Background(), attempt); err != nil {
		m.errMsg = err.Error()
		logErrf("failed to record attempt: %v\n", err)
	}
	m.attempts++
	m.hasLast = true
	m.lastText = m.current
	m.lastSuccess = success
	m.lastTotal = total
	m.input.Reset()
	m.nextItem()
}

func (m *Model) renderLast() string {
	style := correctStyle
	if m.lastSuccess < m.lastTotal {
		style = wrongStyle
	}
	return style.Render(fmt.Sprintf("%s  %d/%d", m.lastText, m.lastSuccess, m.lastTotal))
}

func (m *Model) renderFooter() string {
	minLength, maxLength := m.session.Bounds()
	segments := []string{
		fmt.Sprintf("Mode %s", m.session.Mode()),
		fmt.Sprintf("Length %d-%d", minLength, maxLength),
		fmt.Sprintf("Attempts %d", m.attempts),
	}
	if m.hasLast && m.lastTotal > 0 {
		segments = append(segments, fmt.Sprintf("Last %.0f%%", float64(m.lastSuccess)/float64(m.lastTotal)*100))
	}
	if m.errMsg != "" {
		segments = append(segments, m.errMsg)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
