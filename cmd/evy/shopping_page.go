package main

import (
	"context"
	"strings"

	"eventually/internal/flow"
	"eventually/internal/profile"
	"eventually/internal/recommend"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"eventually/cmd/evy/ui"
)

const (
	queryFieldOccasion = iota
	queryFieldBrands
	queryFieldInput
	queryFieldCount
)

// recsMsg carries the outcome of a recommendation request.
type recsMsg struct {
	result recommend.Result
	err    error
}

type shoppingModel struct {
	deps *deps

	focus       int
	occasionIdx int // index into profile.Occasions, -1 when unset
	brands      textinput.Model
	query       textarea.Model

	errs    *profile.ValidationError
	loading bool
	spinner spinner.Model

	result   *recommend.Result
	viewport viewport.Model
	renderer *glamour.TermRenderer
	ready    bool

	width  int
	height int
}

func newShoppingPage(d *deps) shoppingModel {
	brands := textinput.New()
	brands.Placeholder = "Enter preferred brands (optional)"
	brands.Width = 50

	query := textarea.New()
	query.Placeholder = "Describe your shopping needs in detail..."
	query.SetHeight(5)
	query.SetWidth(70)
	query.CharLimit = 4000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = d.styles.Spinner

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(60),
	)

	return shoppingModel{
		deps:        d,
		occasionIdx: -1,
		brands:      brands,
		query:       query,
		spinner:     sp,
		renderer:    renderer,
	}
}

func (m shoppingModel) enter() tea.Cmd {
	return textarea.Blink
}

// submit validates the query and fires the recommendation request. The old
// result is hidden the moment a new query goes out.
func (m *shoppingModel) submit() tea.Cmd {
	q := recommend.Query{
		BrandsPreferred: strings.TrimSpace(m.brands.Value()),
		ShoppingInput:   m.query.Value(),
	}
	if m.occasionIdx >= 0 {
		q.Occasion = profile.Occasions[m.occasionIdx]
	}

	if errs := q.Validate(); errs != nil {
		m.errs = errs
		return nil
	}
	m.errs = nil

	d := m.deps
	sessionID, ok := d.store.Get()
	if !ok {
		// The entry guard should have caught this; treat it as a defect
		// rather than silently inventing a session.
		return notify(flow.Notice{Title: "Session Missing", Body: "Please provide your user information first."}, true)
	}

	m.loading = true
	m.result = nil

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.RequestTimeout())
		defer cancel()
		res, err := d.client.Recommendations(ctx, sessionID, q)
		return recsMsg{result: res, err: err}
	})
}

func (m shoppingModel) Update(msg tea.Msg) (shoppingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 12 {
			m.query.SetWidth(msg.Width - 12)
		}
		vpHeight := msg.Height / 2
		if vpHeight < 8 {
			vpHeight = 8
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = vpHeight
		}
		if m.result != nil {
			m.viewport.SetContent(m.renderResult())
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case recsMsg:
		m.loading = false
		if msg.err != nil {
			body := msg.err.Error()
			if body == "" {
				body = "Failed to generate recommendations"
			}
			return m, notify(flow.Notice{Title: "Error", Body: body}, true)
		}
		res := msg.result
		m.result = &res
		if m.ready {
			m.viewport.SetContent(m.renderResult())
			m.viewport.GotoTop()
		}
		return m, notify(flow.Notice{Title: "Recommendations Generated", Body: "Your personalized recommendations are ready!"}, false)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m shoppingModel) handleKey(msg tea.KeyMsg) (shoppingModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, gotoPage(flow.PageProfile)

	case "tab", "shift+tab":
		m.query.Blur()
		m.brands.Blur()
		delta := 1
		if msg.String() == "shift+tab" {
			delta = queryFieldCount - 1
		}
		m.focus = (m.focus + delta) % queryFieldCount
		switch m.focus {
		case queryFieldBrands:
			m.brands.Focus()
		case queryFieldInput:
			m.query.Focus()
		}
		return m, textinput.Blink

	case "ctrl+s":
		// The submit control is disabled while a request is outstanding;
		// the rest of the page stays interactive.
		if m.loading {
			return m, nil
		}
		return m, m.submit()

	case "pgup", "pgdown":
		if m.result != nil && m.ready {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	switch m.focus {
	case queryFieldOccasion:
		n := len(profile.Occasions)
		switch msg.String() {
		case "left", "h":
			if m.occasionIdx > 0 {
				m.occasionIdx--
			} else {
				m.occasionIdx = n - 1
			}
		case "right", "l", " ":
			m.occasionIdx = (m.occasionIdx + 1) % n
		}
		return m, nil

	case queryFieldBrands:
		var cmd tea.Cmd
		m.brands, cmd = m.brands.Update(msg)
		return m, cmd

	case queryFieldInput:
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m shoppingModel) fieldError(field string) string {
	if m.errs == nil {
		return ""
	}
	return m.errs.ByField(field)
}

func (m shoppingModel) View() string {
	s := m.deps.styles
	var sb strings.Builder

	// Welcome header built from the held profile, like the web page.
	current := m.deps.holder.Read()
	if len(current.Categories) > 0 {
		labels := make([]string, len(current.Categories))
		for i, id := range current.Categories {
			labels[i] = profile.CategoryLabel(id)
		}
		sb.WriteString(s.Title.Render("Welcome! Shopping for: "+strings.Join(labels, ", ")) + "\n")
	}
	sb.WriteString(s.Header.Render("Enter Your Shopping Input") + "\n")
	sb.WriteString(s.Subtitle.Render("Describe what you're looking for and we'll find the perfect recommendations") + "\n\n")

	focusMark := func(field int, text string) string {
		if m.focus == field {
			return s.FieldFocused.Render("▸ " + text)
		}
		return s.FieldLabel.Render("  " + text)
	}

	occasion := "select an occasion"
	if m.occasionIdx >= 0 {
		occasion = profile.Occasions[m.occasionIdx]
	}
	sb.WriteString(focusMark(queryFieldOccasion, "Shopping Occasion *") + " " + s.Body.Render("◂ "+occasion+" ▸") + "\n")
	if e := m.fieldError("occasion"); e != "" {
		sb.WriteString(s.FieldError.Render("    "+e) + "\n")
	}

	sb.WriteString(focusMark(queryFieldBrands, "Brands Preferred") + " " + m.brands.View() + "\n")

	sb.WriteString(focusMark(queryFieldInput, "What are you looking for? *") + "\n")
	sb.WriteString(s.Muted.Render("  You can enter this in any language and the AI will help you find products.") + "\n")
	if e := m.fieldError("shoppingInput"); e != "" {
		sb.WriteString(s.FieldError.Render("    "+e) + "\n")
	}
	sb.WriteString(m.query.View() + "\n\n")

	if m.loading || m.result != nil {
		w := m.width - 8
		if w > 72 {
			w = 72
		}
		sb.WriteString(s.RenderDivider(w) + "\n")
	}

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View() + s.Muted.Render(" Analyzing your preferences and generating recommendations...") + "\n")
	case m.result != nil:
		sb.WriteString(s.Title.Render("AI Recommendations") + "\n")
		if m.ready {
			sb.WriteString(m.viewport.View() + "\n")
			sb.WriteString(s.Footer.Render("pgup/pgdown scroll results"))
			sb.WriteString("\n")
		} else {
			sb.WriteString(m.renderResult() + "\n")
		}
	}

	sb.WriteString(s.Footer.Render("tab next · ctrl+s get recommendations · esc back"))
	return s.Content.Render(sb.String())
}

// renderResult draws the product grid for the latest result, replacing
// whatever was shown before.
func (m shoppingModel) renderResult() string {
	if m.result == nil {
		return ""
	}

	cards := make([]ui.ProductCard, len(m.result.Products))
	for i, p := range m.result.Products {
		reasoning := p.Reasoning
		if m.renderer != nil && reasoning != "" {
			if rendered, err := m.renderer.Render(reasoning); err == nil {
				reasoning = strings.TrimSpace(rendered)
			}
		}
		cards[i] = ui.ProductCard{
			Name:      p.Name,
			Price:     p.Price,
			Currency:  p.Currency,
			Category:  p.Category,
			Rating:    p.Rating,
			Reasoning: reasoning,
			BuyURL:    p.BuyURL,
		}
	}

	out := ui.RenderProductGrid(m.deps.styles, cards, m.width)
	if m.result.Note != "" {
		out += "\n" + m.deps.styles.Warning.Render(m.result.Note)
	}
	return out
}
