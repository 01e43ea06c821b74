package main

import (
	"context"
	"strings"
	"time"

	"eventually/internal/flow"
	"eventually/internal/logging"
	"eventually/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Rotating call-to-action texts, cycled on a timer like the web landing page.
var actionTexts = []string{
	"Kick Off",
	"Get Started",
	"Begin Journey",
	"Start Shopping",
	"Launch Assistant",
}

var features = []struct {
	title string
	desc  string
}{
	{"Smart AI Engine", "Advanced AI that learns your style and predicts what you'll love."},
	{"Tailored Recommendations", "Precision-targeted suggestions that match your exact taste."},
	{"Instant Results", "Lightning-fast analysis and instant recommendations."},
	{"Data Export & Import", "Carry your profile between sessions as a single JSON file."},
}

type actionTickMsg time.Time

// sessionReadyMsg reports the session the landing page ensured. The announce
// error is informational only; a failed init-session call never blocks entry.
type sessionReadyMsg struct {
	id          string
	announceErr error
}

type landingModel struct {
	deps      *deps
	actionIdx int
	width     int
	height    int
}

func newLanding(d *deps) landingModel {
	return landingModel{deps: d}
}

func (m landingModel) enter() tea.Cmd {
	return tea.Batch(m.ensureSession(), actionTick())
}

func actionTick() tea.Cmd {
	return tea.Tick(4*time.Second, func(t time.Time) tea.Msg {
		return actionTickMsg(t)
	})
}

// ensureSession creates and announces a session id on first visit. An
// existing id is reused untouched.
func (m landingModel) ensureSession() tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		if id, ok := d.store.Get(); ok {
			return sessionReadyMsg{id: id}
		}

		id := session.NewID()
		if err := d.store.Set(id); err != nil {
			logging.Get(logging.CategorySession).Error("could not persist new session id: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.RequestTimeout())
		defer cancel()
		err := d.client.InitSession(ctx, id)
		return sessionReadyMsg{id: id, announceErr: err}
	}
}

func (m landingModel) Update(msg tea.Msg) (landingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, gotoPage(flow.PageProfile)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case actionTickMsg:
		m.actionIdx = (m.actionIdx + 1) % len(actionTexts)
		return m, actionTick()

	case sessionReadyMsg:
		if msg.announceErr != nil {
			// Matches the web client: the announce failure is swallowed.
			logging.Get(logging.CategorySession).Warn("init-session failed: %v", msg.announceErr)
		}
	}

	return m, nil
}

func (m landingModel) View() string {
	s := m.deps.styles
	var sb strings.Builder

	sb.WriteString(s.Title.Render("Eventually Yours") + "\n")
	sb.WriteString(s.Subtitle.Render("Discover products that will eventually be yours.") + "\n")
	sb.WriteString(s.Body.Render("Get AI-powered recommendations tailored to your unique style and preferences.") + "\n\n")

	for _, f := range features {
		sb.WriteString(s.Success.Render("✓ ") + s.Bold.Render(f.title) + "  " + s.Muted.Render(f.desc) + "\n")
	}

	sb.WriteString("\n")
	button := s.Badge.Render(" " + actionTexts[m.actionIdx] + " ")
	sb.WriteString(button + s.Muted.Render("  press Enter") + "\n")

	content := s.Content.Render(sb.String())
	if m.width > 0 {
		content = lipgloss.NewStyle().MaxWidth(m.width).Render(content)
	}
	return content
}
