package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"eventually/internal/flow"
	"eventually/internal/logging"
	"eventually/internal/profile"
	"eventually/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form fields in focus order.
const (
	fieldAge = iota
	fieldGender
	fieldLocation
	fieldBudgetMin
	fieldBudgetMax
	fieldCategories
	fieldInterests
	fieldCount
)

// profileSubmittedMsg reports the backend's answer to a profile submission.
type profileSubmittedMsg struct {
	submitted profile.Profile
	serverID  string
	err       error
}

// importDoneMsg reports the outcome of an import attempt.
type importDoneMsg struct {
	res profile.ImportResult
	err error
}

type profileModel struct {
	deps *deps

	focus       int
	age         textinput.Model
	genderIdx   int // index into profile.Genders, -1 when unset
	locationIdx int // index into profile.Countries, -1 when unset
	budgetMin   textinput.Model
	budgetMax   textinput.Model
	catCursor   int
	selected    map[string]bool
	interests   textarea.Model

	errs       *profile.ValidationError
	submitting bool
	spinner    spinner.Model

	// exportPrompt shows the post-submit export dialog; closing it, with or
	// without exporting, advances to shopping.
	exportPrompt bool
	importPrompt bool
	pathInput    textinput.Model

	width int
}

func newProfilePage(d *deps) profileModel {
	age := textinput.New()
	age.Placeholder = "25"
	age.CharLimit = 3
	age.Width = 6

	bmin := textinput.New()
	bmin.Placeholder = "0"
	bmin.CharLimit = 6
	bmin.Width = 8
	bmin.SetValue("0")

	bmax := textinput.New()
	bmax.Placeholder = "100"
	bmax.CharLimit = 6
	bmax.Width = 8
	bmax.SetValue("100")

	interests := textarea.New()
	interests.Placeholder = "Tell us about your interests, hobbies, and what you're passionate about..."
	interests.SetHeight(4)
	interests.SetWidth(70)
	interests.CharLimit = 2000

	path := textinput.New()
	path.Placeholder = "path/to/shopping-assistant-data.json"
	path.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = d.styles.Spinner

	m := profileModel{
		deps:        d,
		genderIdx:   -1,
		locationIdx: -1,
		selected:    make(map[string]bool),
		age:         age,
		budgetMin:   bmin,
		budgetMax:   bmax,
		interests:   interests,
		pathInput:   path,
		spinner:     sp,
	}
	m.setFocus(fieldAge)
	return m
}

func (m profileModel) enter() tea.Cmd {
	// Returning to the form keeps whatever was typed; only an import
	// overwrites it.
	return textinput.Blink
}

func (m *profileModel) setFocus(f int) {
	m.focus = f
	m.age.Blur()
	m.budgetMin.Blur()
	m.budgetMax.Blur()
	m.interests.Blur()
	switch f {
	case fieldAge:
		m.age.Focus()
	case fieldBudgetMin:
		m.budgetMin.Focus()
	case fieldBudgetMax:
		m.budgetMax.Focus()
	case fieldInterests:
		m.interests.Focus()
	}
}

// buildProfile assembles the form state into a Profile for validation or
// submission.
func (m profileModel) buildProfile() profile.Profile {
	p := profile.Profile{
		Interests: m.interests.Value(),
	}
	if v, err := strconv.Atoi(strings.TrimSpace(m.age.Value())); err == nil {
		p.Age = v
	}
	if m.genderIdx >= 0 {
		p.Gender = profile.Genders[m.genderIdx]
	}
	if m.locationIdx >= 0 {
		p.Location = profile.Countries[m.locationIdx].Name
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(m.budgetMin.Value()), 64); err == nil {
		p.BudgetMin = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(m.budgetMax.Value()), 64); err == nil {
		p.BudgetMax = v
	}
	for _, c := range profile.Catalog {
		if m.selected[c.ID] {
			p.Categories = append(p.Categories, c.ID)
		}
	}
	return p
}

// fillForm loads an imported profile back into the form controls.
func (m *profileModel) fillForm(p profile.Profile) {
	if p.Age > 0 {
		m.age.SetValue(strconv.Itoa(p.Age))
	} else {
		m.age.SetValue("")
	}
	m.genderIdx = -1
	for i, g := range profile.Genders {
		if g == p.Gender {
			m.genderIdx = i
		}
	}
	m.locationIdx = -1
	for i, c := range profile.Countries {
		if c.Name == p.Location {
			m.locationIdx = i
		}
	}
	m.budgetMin.SetValue(strconv.FormatFloat(p.BudgetMin, 'f', -1, 64))
	m.budgetMax.SetValue(strconv.FormatFloat(p.BudgetMax, 'f', -1, 64))
	m.selected = make(map[string]bool)
	for _, id := range p.Categories {
		m.selected[id] = true
	}
	m.interests.SetValue(p.Interests)
	m.errs = nil
}

// submit validates and, when clean, sends the profile to the backend.
// Validation errors never leave the form.
func (m *profileModel) submit() tea.Cmd {
	p := m.buildProfile()
	if errs := p.Validate(); errs != nil {
		m.errs = errs
		return nil
	}
	m.errs = nil
	m.submitting = true

	d := m.deps
	sessionID, ok := d.store.Get()
	if !ok {
		sessionID = session.NewID()
	}

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.RequestTimeout())
		defer cancel()
		serverID, err := d.client.SubmitProfile(ctx, p, sessionID)
		return profileSubmittedMsg{submitted: p, serverID: serverID, err: err}
	})
}

// runImport reads the chosen file through the import codec.
func (m *profileModel) runImport(path string) tea.Cmd {
	d := m.deps
	importer := &profile.Importer{
		Holder:  d.holder,
		Session: d.store,
		Backend: d.client,
		NewID:   session.NewID,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.RequestTimeout())
		defer cancel()
		res, err := importer.ImportFile(ctx, path)
		return importDoneMsg{res: res, err: err}
	}
}

// export writes the current form state to the export file.
func (m *profileModel) export() tea.Cmd {
	p := m.buildProfile()
	path := m.deps.cfg.Storage.ExportFile
	return func() tea.Msg {
		if err := profile.ExportToFile(p, path, time.Now()); err != nil {
			return noticeMsg{notice: flow.Notice{Title: "Export Error", Body: err.Error()}, isError: true}
		}
		return noticeMsg{notice: flow.Notice{Title: "Data Exported", Body: "Your data has been exported to " + path}}
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 12 {
			m.interests.SetWidth(msg.Width - 12)
		}
		return m, nil

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case profileSubmittedMsg:
		return m.handleSubmitted(msg)

	case importDoneMsg:
		return m.handleImported(msg)

	case tea.KeyMsg:
		if m.exportPrompt {
			return m.updateExportPrompt(msg)
		}
		if m.importPrompt {
			return m.updateImportPrompt(msg)
		}
		return m.updateForm(msg)
	}

	return m, nil
}

func (m profileModel) handleSubmitted(msg profileSubmittedMsg) (profileModel, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		return m, notify(flow.Notice{Title: "Error", Body: "Failed to save user info"}, true)
	}

	d := m.deps
	// The session identity becomes the server-issued id when one came back,
	// else a freshly generated one. Never empty.
	id := msg.serverID
	if id == "" {
		id = session.NewID()
	}
	if err := d.store.Set(id); err != nil {
		logging.Get(logging.CategorySession).Error("could not persist session id: %v", err)
	}
	d.holder.Write(msg.submitted)
	d.ctrl.MarkProfileWritten()

	m.exportPrompt = true
	return m, notify(flow.Notice{Title: "Profile Saved", Body: "Your information has been saved successfully!"}, false)
}

func (m profileModel) handleImported(msg importDoneMsg) (profileModel, tea.Cmd) {
	m.importPrompt = false
	if msg.err != nil {
		return m, notify(flow.Notice{Title: "Import Error", Body: "Invalid file format"}, true)
	}
	if !msg.res.Applied {
		// Document without a profile key: nothing changed, nothing to say.
		return m, nil
	}

	m.fillForm(msg.res.Profile)
	m.deps.ctrl.MarkProfileWritten()
	return m, tea.Batch(
		notify(flow.Notice{Title: "Data Imported", Body: "Your data has been imported successfully!"}, false),
		gotoPage(flow.PageShopping),
	)
}

func (m profileModel) updateExportPrompt(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "e", "enter":
		m.exportPrompt = false
		return m, tea.Batch(m.export(), gotoPage(flow.PageShopping))
	case "esc", "c", "x":
		// Closing the prompt advances all the same.
		m.exportPrompt = false
		return m, gotoPage(flow.PageShopping)
	}
	return m, nil
}

func (m profileModel) updateImportPrompt(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			m.importPrompt = false
			return m, nil
		}
		return m, m.runImport(path)
	case "esc":
		m.importPrompt = false
		return m, nil
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m profileModel) updateForm(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, gotoPage(flow.PageLanding)

	case "tab", "shift+tab", "up", "down":
		// The textarea consumes up/down for cursor movement.
		if m.focus == fieldInterests && (msg.String() == "up" || msg.String() == "down") {
			break
		}
		delta := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			delta = fieldCount - 1
		}
		m.setFocus((m.focus + delta) % fieldCount)
		return m, textinput.Blink

	case "ctrl+s":
		if m.submitting {
			return m, nil
		}
		return m, m.submit()

	case "ctrl+e":
		return m, m.export()

	case "ctrl+o":
		m.importPrompt = true
		m.pathInput.SetValue("")
		m.pathInput.Focus()
		return m, textinput.Blink
	}

	switch m.focus {
	case fieldGender:
		switch msg.String() {
		case "left", "h":
			if m.genderIdx > 0 {
				m.genderIdx--
			} else {
				m.genderIdx = len(profile.Genders) - 1
			}
		case "right", "l", " ":
			m.genderIdx = (m.genderIdx + 1) % len(profile.Genders)
		}
		return m, nil

	case fieldLocation:
		n := len(profile.Countries)
		switch msg.String() {
		case "left", "h":
			if m.locationIdx > 0 {
				m.locationIdx--
			} else {
				m.locationIdx = n - 1
			}
		case "right", "l", " ":
			m.locationIdx = (m.locationIdx + 1) % n
		}
		return m, nil

	case fieldCategories:
		switch msg.String() {
		case "left", "h":
			if m.catCursor > 0 {
				m.catCursor--
			}
		case "right", "l":
			if m.catCursor < len(profile.Catalog)-1 {
				m.catCursor++
			}
		case " ", "x":
			id := profile.Catalog[m.catCursor].ID
			m.selected[id] = !m.selected[id]
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldAge:
		m.age, cmd = m.age.Update(msg)
	case fieldBudgetMin:
		m.budgetMin, cmd = m.budgetMin.Update(msg)
	case fieldBudgetMax:
		m.budgetMax, cmd = m.budgetMax.Update(msg)
	case fieldInterests:
		m.interests, cmd = m.interests.Update(msg)
	}
	return m, cmd
}

func (m profileModel) fieldError(field string) string {
	if m.errs == nil {
		return ""
	}
	return m.errs.ByField(field)
}

func (m profileModel) label(field int, text string) string {
	s := m.deps.styles
	if m.focus == field {
		return s.FieldFocused.Render("▸ " + text)
	}
	return s.FieldLabel.Render("  " + text)
}

func (m profileModel) renderError(field string) string {
	if msg := m.fieldError(field); msg != "" {
		return m.deps.styles.FieldError.Render("    " + msg)
	}
	return ""
}

func (m profileModel) View() string {
	s := m.deps.styles

	if m.exportPrompt {
		return s.Modal.Render(
			s.Title.Render("Export Your User Info") + "\n" +
				s.Body.Render("Export your user info to make it easier to add next time!") + "\n\n" +
				s.Bold.Render("[e]") + s.Body.Render(" Export now    ") +
				s.Bold.Render("[esc]") + s.Body.Render(" Continue without exporting"))
	}

	if m.importPrompt {
		return s.Modal.Render(
			s.Title.Render("Import Data") + "\n" +
				s.Prompt.Render("Path to a previously exported JSON file:") + "\n\n" +
				m.pathInput.View() + "\n\n" +
				s.Muted.Render("enter to import · esc to cancel"))
	}

	var sb strings.Builder
	sb.WriteString(s.Header.Render("Enter User Information") + "\n")
	sb.WriteString(s.Subtitle.Render("Help us personalize your shopping experience") + "\n\n")

	writeField := func(label, control, errField string) {
		sb.WriteString(label + " " + control + "\n")
		if e := m.renderError(errField); e != "" {
			sb.WriteString(e + "\n")
		}
	}

	writeField(m.label(fieldAge, "Age *"), m.age.View(), "age")

	gender := "select"
	if m.genderIdx >= 0 {
		gender = profile.Genders[m.genderIdx]
	}
	writeField(m.label(fieldGender, "Gender *"), s.Body.Render("◂ "+gender+" ▸"), "gender")

	location := "select your country"
	if m.locationIdx >= 0 {
		location = profile.Countries[m.locationIdx].Name
	}
	writeField(m.label(fieldLocation, "Location *"), s.Body.Render("◂ "+location+" ▸"), "location")

	currency := "$"
	if m.locationIdx >= 0 {
		currency = profile.Countries[m.locationIdx].Currency
	}
	sb.WriteString("\n" + s.Bold.Render(fmt.Sprintf("Budget Range (%s) *", currency)) + "\n")
	writeField(m.label(fieldBudgetMin, "Min"), m.budgetMin.View(), "budgetMin")
	writeField(m.label(fieldBudgetMax, "Max"), m.budgetMax.View(), "budgetMax")

	sb.WriteString("\n" + m.label(fieldCategories, "Favourite Product Categories *") + "\n")
	if e := m.renderError("categories"); e != "" {
		sb.WriteString(e + "\n")
	}
	sb.WriteString(m.renderCategories() + "\n")

	sb.WriteString("\n" + m.label(fieldInterests, "Interests and Hobbies *") + "\n")
	if e := m.renderError("interests"); e != "" {
		sb.WriteString(e + "\n")
	}
	sb.WriteString(m.interests.View() + "\n\n")

	if m.submitting {
		sb.WriteString(m.spinner.View() + s.Muted.Render(" saving profile...") + "\n")
	} else {
		sb.WriteString(s.Footer.Render("tab next · space toggle · ctrl+s submit · ctrl+e export · ctrl+o import · esc back"))
	}

	return s.Content.Render(sb.String())
}

// renderCategories draws the catalog as a three-column checkbox grid.
func (m profileModel) renderCategories() string {
	s := m.deps.styles
	const cols = 3
	colWidth := 30

	var rows []string
	var row []string
	for i, c := range profile.Catalog {
		mark := "[ ]"
		style := s.Checkbox
		if m.selected[c.ID] {
			mark = "[x]"
			style = s.CheckboxOn
		}
		cell := fmt.Sprintf("%s %s", mark, c.Label)
		if m.focus == fieldCategories && i == m.catCursor {
			cell = "▸" + cell
		} else {
			cell = " " + cell
		}
		if w := lipgloss.Width(cell); w < colWidth {
			cell += strings.Repeat(" ", colWidth-w)
		}
		row = append(row, style.Render(cell))
		if len(row) == cols {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}
