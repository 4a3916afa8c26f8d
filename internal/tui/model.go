// Package tui provides the Bubble Tea password generator interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pwgen/internal/clipboard"
	"github.com/verte-zerg/pwgen/internal/history"
	"github.com/verte-zerg/pwgen/internal/model"
	"github.com/verte-zerg/pwgen/internal/state"
	"github.com/verte-zerg/pwgen/internal/strength"
)

const (
	sliderWidth     = 30
	timestampLayout = "2006-01-02 15:04:05"
	emptyPassword   = "Your password will appear here"
)

type copyResultMsg struct {
	err error
}

type toastExpiredMsg struct {
	token uint64
}

// Model implements the Bubble Tea generator UI.
type Model struct {
	state state.State
	kv    history.KV
	gen   state.Generator
	sink  clipboard.Sink
	now   func() time.Time

	keys keyMap
	help help.Model

	width  int
	height int
}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	toastStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#52C41A")).Padding(0, 1)
	sliderOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	sliderOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	fieldStyle     = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))

	lowerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	upperStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#69B1FF"))
	digitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	symbolStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF85C0"))

	strengthStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7A45")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#BAE637")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true),
	}
)

// NewModel constructs a generator TUI model.
func NewModel(cfg model.GenerationConfig, log history.Log, kv history.KV, gen state.Generator, sink clipboard.Sink) *Model {
	return &Model{
		state: state.New(cfg, log),
		kv:    kv,
		gen:   gen,
		sink:  sink,
		now:   time.Now,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
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
		return m.handleKey(msg)
	case copyResultMsg:
		if msg.err != nil {
			logErrf("failed to copy password: %v\n", msg.err)
			m.state = state.CopyFailed(m.state, msg.err)
			return m, nil
		}
		var eff state.Effect
		m.state, eff = state.CopySucceeded(m.state)
		return m, m.apply(eff)
	case toastExpiredMsg:
		m.state = state.ExpireToast(m.state, msg.token)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Shorter):
		m.state = state.AdjustLength(m.state, -1)
	case key.Matches(msg, m.keys.Longer):
		m.state = state.AdjustLength(m.state, 1)
	case key.Matches(msg, m.keys.ShorterBig):
		m.state = state.AdjustLength(m.state, -8)
	case key.Matches(msg, m.keys.LongerBig):
		m.state = state.AdjustLength(m.state, 8)
	case key.Matches(msg, m.keys.Lower):
		m.state = state.Toggle(m.state, model.Lower)
	case key.Matches(msg, m.keys.Upper):
		m.state = state.Toggle(m.state, model.Upper)
	case key.Matches(msg, m.keys.Digits):
		m.state = state.Toggle(m.state, model.Digit)
	case key.Matches(msg, m.keys.Symbols):
		m.state = state.Toggle(m.state, model.Symbol)
	case key.Matches(msg, m.keys.Generate):
		next, eff, err := state.Generate(m.state, m.gen, m.now())
		if err != nil {
			logErrf("failed to generate password: %v\n", err)
		}
		m.state = next
		return m, m.apply(eff)
	case key.Matches(msg, m.keys.Copy):
		var eff state.Effect
		m.state, eff = state.CopyRequested(m.state)
		return m, m.apply(eff)
	case key.Matches(msg, m.keys.Clear):
		var eff state.Effect
		m.state, eff = state.ClearHistory(m.state)
		return m, m.apply(eff)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// apply runs the side effects requested by a state update.
func (m *Model) apply(eff state.Effect) tea.Cmd {
	if eff.PersistHistory && m.kv != nil {
		if err := history.Save(context.Background(), m.kv, m.state.History); err != nil {
			logErrf("failed to save history: %v\n", err)
		}
	}
	var cmds []tea.Cmd
	if eff.CopyValue != "" {
		cmds = append(cmds, copyCmd(m.sink, eff.CopyValue))
	}
	if eff.ExpireToast != 0 {
		token := eff.ExpireToast
		cmds = append(cmds, tea.Tick(state.ToastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{token: token}
		}))
	}
	return tea.Batch(cmds...)
}

func copyCmd(sink clipboard.Sink, value string) tea.Cmd {
	return func() tea.Msg {
		if sink == nil {
			return copyResultMsg{err: clipboard.ErrUnavailable}
		}
		return copyResultMsg{err: sink.Write(value)}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		titleStyle.Render("pwgen"),
		m.renderLength(),
		m.renderClasses(),
		"",
		m.renderPassword(),
		m.renderStrength(),
		"",
		m.renderHistory(),
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, "", status)
	}
	sections = append(sections, "", m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderLength() string {
	length := m.state.Config.Length
	filled := (length - model.MinLength) * sliderWidth / (model.MaxLength - model.MinLength)
	bar := sliderOnStyle.Render(strings.Repeat("━", filled)) +
		sliderOnStyle.Render("●") +
		sliderOffStyle.Render(strings.Repeat("─", sliderWidth-filled))
	return fmt.Sprintf("%s %s  %s", labelStyle.Render("Length:"), valueStyle.Render(fmt.Sprintf("%2d", length)), bar)
}

func (m *Model) renderClasses() string {
	items := make([]string, 0, len(model.AllClasses))
	for i, class := range model.AllClasses {
		box := "[ ]"
		if m.state.Config.Uses(class) {
			box = "[x]"
		}
		items = append(items, fmt.Sprintf("%s %s %s", mutedStyle.Render(fmt.Sprintf("%d", i+1)), box, class))
	}
	return strings.Join(items, "   ")
}

func (m *Model) renderPassword() string {
	var body string
	switch {
	case m.state.Password != "":
		body = wrapStyledRunes(buildStyledRunes(m.state.Password), m.fieldWidth())
	case m.state.Placeholder != "":
		body = errorStyle.Render(m.state.Placeholder)
	default:
		body = mutedStyle.Render(emptyPassword)
	}
	return fieldStyle.Render(body)
}

func (m *Model) renderStrength() string {
	score, label := state.Strength(m.state)
	idx := score
	if idx > len(strengthStyles)-1 {
		idx = len(strengthStyles) - 1
	}
	line := fmt.Sprintf("%s %s", labelStyle.Render("Strength:"), strengthStyles[idx].Render(label))
	if m.state.Password == "" {
		return line
	}
	est := strength.Evaluate(m.state.Password)
	return line + mutedStyle.Render(fmt.Sprintf("  ·  %.0f bits  ·  cracked in %s", est.Entropy, est.CrackTime))
}

func (m *Model) renderHistory() string {
	lines := []string{labelStyle.Render(fmt.Sprintf("History (%d)", len(m.state.History)))}
	if len(m.state.History) == 0 {
		lines = append(lines, mutedStyle.Render("  History is empty"))
		return strings.Join(lines, "\n")
	}
	now := m.now()
	valueWidth := m.fieldWidth() - len(timestampLayout) - 20
	if valueWidth < 8 {
		valueWidth = 8
	}
	for _, entry := range m.state.History {
		value := runewidth.Truncate(entry.Value, valueWidth, "…")
		value = runewidth.FillRight(value, min(valueWidth, model.MaxLength))
		stamp := entry.CreatedAt.Local().Format(timestampLayout)
		age := humanize.RelTime(entry.CreatedAt, now, "ago", "from now")
		lines = append(lines, fmt.Sprintf("  %s  %s", value, mutedStyle.Render(stamp+" ("+age+")")))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	switch {
	case m.state.Copied:
		return toastStyle.Render("Copied!")
	case m.state.CopyErr != "":
		return errorStyle.Render("Copy failed: " + m.state.CopyErr)
	case m.state.GenerateErr != "":
		return errorStyle.Render("Generation failed: " + m.state.GenerateErr)
	default:
		return ""
	}
}

func (m *Model) fieldWidth() int {
	if m.width == 0 {
		return model.MaxLength
	}
	w := int(float64(m.width)*0.70) - 4
	if w < 1 {
		w = 1
	}
	return w
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
