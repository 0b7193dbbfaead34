// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ColonelBlimp/cwtrainer/internal/keyer"
	"github.com/ColonelBlimp/cwtrainer/internal/session"
	"github.com/ColonelBlimp/cwtrainer/internal/wordgen"
)

var (
	targetStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	keyedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AD760"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	bufferStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AD760"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8C55A"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8975A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	keyDownStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#121212")).Background(lipgloss.Color("#E8C55A")).Padding(0, 1)
	keyUpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Padding(0, 1)
)

// SymbolMsg carries a freshly classified dit or dah for live feedback.
type SymbolMsg struct {
	Mark rune
}

// CompleteMsg carries the full code of a finished character.
type CompleteMsg struct {
	Code string
}

// SessionMsg carries a session transition snapshot.
type SessionMsg struct {
	Event session.Event
}

// targetFetchedMsg carries a word-generator result. Responses whose seq is
// not the latest are stale and dropped.
type targetFetchedMsg struct {
	seq     int
	word    string
	warning string
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	keyer *keyer.Keyer
	sess  *session.Session
	gen   *wordgen.Client // nil outside word mode

	keys KeyMap
	help help.Model

	width  int
	height int

	keyDown  bool
	snapshot session.Event
	attempt  string
	hint     string
	warning  string
	fetchSeq int
}

// NewModel constructs the practice model. gen may be nil; when set, a fresh
// word is fetched on start and after each completed sequence.
func NewModel(k *keyer.Keyer, sess *session.Session, gen *wordgen.Client) *Model {
	m := &Model{
		keyer: k,
		sess:  sess,
		gen:   gen,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.snapshot = session.Event{
		State:  sess.State(),
		Target: sess.Target(),
	}
	m.snapshot.Index, m.snapshot.Total = sess.Progress()
	return m
}

// Attach wires the keyer and session callbacks into the running program.
// Callbacks fire on timer goroutines, so they enter the UI via send.
func (m *Model) Attach(send func(tea.Msg)) {
	m.keyer.SetSymbolCallback(func(mark rune) {
		send(SymbolMsg{Mark: mark})
	})
	m.keyer.SetCompleteCallback(func(code string) {
		send(CompleteMsg{Code: code})
	})
	m.sess.SetCallback(func(event session.Event) {
		send(SessionMsg{Event: event})
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.gen != nil {
		return m.fetchTargetCmd()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
			m.keyer.Reset()
			m.sess.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Key):
			m.toggleKey()
			return m, nil
		case key.Matches(msg, m.keys.Hint):
			if hint := m.sess.RequestHint(); hint != "" {
				m.hint = hint
			}
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.keyer.Reset()
			m.keyDown = false
			m.attempt = ""
			return m, nil
		}
		return m, nil

	case SymbolMsg:
		// The buffer is read live in View; the message only triggers a redraw.
		return m, nil

	case CompleteMsg:
		m.attempt = msg.Code
		m.sess.Submit(msg.Code)
		m.keyer.Reset()
		m.keyDown = false
		return m, nil

	case SessionMsg:
		return m.handleSessionEvent(msg.Event)

	case targetFetchedMsg:
		if msg.seq != m.fetchSeq {
			// Stale response from a superseded request.
			return m, nil
		}
		m.warning = msg.warning
		if err := m.sess.SetTargets([]string{msg.word}); err != nil {
			m.warning = fmt.Sprintf("cannot start round: %v", err)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) toggleKey() {
	if m.keyDown {
		m.keyer.Release()
		m.keyDown = false
		return
	}
	m.keyer.Press()
	m.keyDown = true
}

func (m *Model) handleSessionEvent(event session.Event) (tea.Model, tea.Cmd) {
	if event.Target != m.snapshot.Target {
		// New target: stale hint and attempt no longer apply.
		m.hint = ""
		m.attempt = ""
	}
	if event.State == session.StatePresenting && event.Validation == session.ValidationIdle {
		m.attempt = ""
	}
	m.snapshot = event

	if event.State == session.StateComplete && m.gen != nil {
		m.fetchSeq++
		return m, m.fetchTargetCmd()
	}
	return m, nil
}

func (m *Model) fetchTargetCmd() tea.Cmd {
	seq := m.fetchSeq
	client := m.gen
	return func() tea.Msg {
		word, warning := client.FetchTarget(context.Background())
		return targetFetchedMsg{seq: seq, word: word, warning: warning}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var lines []string

	lines = append(lines, m.renderTarget())
	lines = append(lines, "")
	lines = append(lines, m.renderBuffer())
	lines = append(lines, m.renderFeedback())
	if m.hint != "" {
		lines = append(lines, hintStyle.Render("hint: "+m.hint))
	}
	if m.warning != "" {
		lines = append(lines, warningStyle.Render(m.warning))
	}

	content := strings.Join(lines, "\n")
	footer := m.renderFooter()

	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.help.View(m.keys))
	return body + "\n" + footerLine + "\n" + helpLine
}

func (m *Model) renderTarget() string {
	if m.snapshot.State == session.StateComplete {
		if m.gen != nil {
			return targetStyle.Render("Sequence complete, fetching the next word...")
		}
		return targetStyle.Render("Sequence complete, well done!")
	}
	target := m.snapshot.Target
	keyed := m.snapshot.Keyed
	rest := strings.TrimPrefix(target, keyed)
	return keyedStyle.Render(keyed) + targetStyle.Render(rest)
}

func (m *Model) renderBuffer() string {
	indicator := keyUpStyle.Render("key")
	if m.keyDown {
		indicator = keyDownStyle.Render("KEY")
	}
	buffer := m.keyer.Buffer()
	if buffer == "" && m.attempt != "" {
		// Show the finished attempt through the feedback delay.
		buffer = m.attempt
	}
	if buffer == "" {
		return indicator + " " + pendingStyle.Render("tap space to key")
	}
	return indicator + " " + bufferStyle.Render(spaceOut(buffer))
}

func (m *Model) renderFeedback() string {
	switch m.snapshot.Validation {
	case session.ValidationCorrect:
		return correctStyle.Render("correct")
	case session.ValidationIncorrect:
		return incorrectStyle.Render("incorrect, try again")
	default:
		return ""
	}
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Target %d/%d", m.snapshot.Index, m.snapshot.Total)}
	if m.snapshot.State == session.StateComplete {
		segments = append(segments, "complete")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

// spaceOut separates marks for readability: "...-" -> ". . . -".
func spaceOut(code string) string {
	marks := make([]string, 0, len(code))
	for i := 0; i < len(code); i++ {
		marks = append(marks, string(code[i]))
	}
	return strings.Join(marks, " ")
}
