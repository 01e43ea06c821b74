// Package main provides the Eventually Yours CLI entry point.
// This file implements the top-level bubbletea application: one model per
// page, with the flow controller deciding which page is active.
package main

import (
	"time"

	"eventually/internal/config"
	"eventually/internal/flow"
	"eventually/internal/gateway"
	"eventually/internal/profile"
	"eventually/internal/session"

	tea "github.com/charmbracelet/bubbletea"

	"eventually/cmd/evy/ui"
)

// deps bundles the explicitly constructed state objects shared by the pages.
// Everything is passed by reference; there is no ambient global lookup.
type deps struct {
	cfg    *config.Config
	styles ui.Styles
	store  *session.Store
	holder *profile.Holder
	client *gateway.Client
	ctrl   *flow.Controller
}

// navMsg asks the app to move to another page. The flow controller has the
// final say on where we actually land.
type navMsg struct {
	to flow.Page
}

func gotoPage(to flow.Page) tea.Cmd {
	return func() tea.Msg { return navMsg{to: to} }
}

// noticeMsg surfaces a transient, dismissible notice line.
type noticeMsg struct {
	notice  flow.Notice
	isError bool
}

func notify(n flow.Notice, isError bool) tea.Cmd {
	return func() tea.Msg { return noticeMsg{notice: n, isError: isError} }
}

// noticeExpireMsg clears the notice after its display window. The seq guards
// against a stale timer wiping a newer notice.
type noticeExpireMsg struct {
	seq int
}

const noticeDuration = 5 * time.Second

type appModel struct {
	deps *deps

	landing  landingModel
	profile  profileModel
	shopping shoppingModel

	notice      *flow.Notice
	noticeIsErr bool
	noticeSeq   int

	width  int
	height int
}

func newApp(d *deps) appModel {
	return appModel{
		deps:     d,
		landing:  newLanding(d),
		profile:  newProfilePage(d),
		shopping: newShoppingPage(d),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.landing.enter()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			if m.notice != nil {
				m.notice = nil
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.landing, cmd = m.landing.Update(msg)
		cmds = append(cmds, cmd)
		m.profile, cmd = m.profile.Update(msg)
		cmds = append(cmds, cmd)
		m.shopping, cmd = m.shopping.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case navMsg:
		return m.navigate(msg.to)

	case noticeMsg:
		m.notice = &msg.notice
		m.noticeIsErr = msg.isError
		m.noticeSeq++
		seq := m.noticeSeq
		return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
			return noticeExpireMsg{seq: seq}
		})

	case noticeExpireMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	// Background results go to the page that requested them even when
	// another page is active, so an in-flight flag is always settled and
	// the triggering control comes back. Display follows the mounted page.
	case profileSubmittedMsg, importDoneMsg:
		var cmd tea.Cmd
		m.profile, cmd = m.profile.Update(msg)
		return m, cmd

	case recsMsg:
		var cmd tea.Cmd
		m.shopping, cmd = m.shopping.Update(msg)
		return m, cmd
	}

	return m.routeToPage(msg)
}

// navigate runs the transition through the flow controller and enters the
// resulting page.
func (m appModel) navigate(to flow.Page) (tea.Model, tea.Cmd) {
	landed, notice := m.deps.ctrl.Goto(to)

	var cmds []tea.Cmd
	if notice != nil {
		cmds = append(cmds, notify(*notice, false))
	}

	switch landed {
	case flow.PageLanding:
		cmds = append(cmds, m.landing.enter())
	case flow.PageProfile:
		cmds = append(cmds, m.profile.enter())
	case flow.PageShopping:
		cmds = append(cmds, m.shopping.enter())
	}

	return m, tea.Batch(cmds...)
}

// routeToPage forwards a message to the active page only. Background results
// never pass through here; they are routed to their owning page above.
func (m appModel) routeToPage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.deps.ctrl.Current() {
	case flow.PageLanding:
		m.landing, cmd = m.landing.Update(msg)
	case flow.PageProfile:
		m.profile, cmd = m.profile.Update(msg)
	case flow.PageShopping:
		m.shopping, cmd = m.shopping.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	var page string
	switch m.deps.ctrl.Current() {
	case flow.PageLanding:
		page = m.landing.View()
	case flow.PageProfile:
		page = m.profile.View()
	case flow.PageShopping:
		page = m.shopping.View()
	default:
		page = m.deps.styles.Error.Render("404 - page not found") + "\n" +
			m.deps.styles.Muted.Render("press esc to return")
	}

	if m.notice != nil {
		style := m.deps.styles.Notice
		if m.noticeIsErr {
			style = m.deps.styles.Error
		}
		bar := style.Render(m.notice.Title+": "+m.notice.Body) +
			m.deps.styles.Muted.Render("  (ctrl+n to dismiss)")
		return bar + "\n" + page
	}
	return page
}
