package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProductCard is the display shape for one recommendation.
type ProductCard struct {
	Name      string
	Price     float64
	Currency  string
	Category  string
	Rating    float64
	Reasoning string
	BuyURL    string
}

// categoryBadge picks a badge style per backend grouping label.
func categoryBadge(s Styles, category string) lipgloss.Style {
	switch strings.ToLower(category) {
	case "best match":
		return s.Badge
	case "best value":
		return s.Badge.Background(Success).Foreground(lipgloss.Color("#ffffff"))
	case "premium":
		return s.Badge.Background(Info).Foreground(lipgloss.Color("#ffffff"))
	default:
		return s.Badge.Background(s.Theme.Secondary).Foreground(s.Theme.Foreground)
	}
}

// stars renders a compact rating like "★ 4.5".
func stars(s Styles, rating float64) string {
	return s.Rating.Render("★") + " " + s.Muted.Render(fmt.Sprintf("%.1f", rating))
}

// RenderProductCard renders one product as a bordered card of the given
// inner width.
func RenderProductCard(s Styles, p ProductCard, width int) string {
	if width < 24 {
		width = 24
	}

	var sb strings.Builder

	badge := categoryBadge(s, p.Category).Render(p.Category)
	price := s.Price.Render(fmt.Sprintf("%s%.2f", p.Currency, p.Price))
	gap := width - lipgloss.Width(badge) - lipgloss.Width(price)
	if gap < 1 {
		gap = 1
	}
	sb.WriteString(badge + strings.Repeat(" ", gap) + price + "\n")

	sb.WriteString(s.Bold.Width(width).Render(p.Name) + "\n")

	if p.Reasoning != "" {
		sb.WriteString(s.Body.Width(width).Render(p.Reasoning) + "\n")
	}

	sb.WriteString(stars(s, p.Rating))
	if p.BuyURL != "" {
		sb.WriteString("\n" + s.Muted.Width(width).Render(p.BuyURL))
	}

	return s.Card.Width(width).Render(sb.String())
}

// RenderProductGrid lays product cards out in rows, as many columns as the
// total width allows.
func RenderProductGrid(s Styles, products []ProductCard, totalWidth int) string {
	if len(products) == 0 {
		return s.Muted.Render("No recommendations yet.")
	}

	cardWidth := 40
	cols := totalWidth / (cardWidth + 4)
	if cols < 1 {
		cols = 1
		if totalWidth > 8 {
			cardWidth = totalWidth - 8
		}
	}

	var rows []string
	for i := 0; i < len(products); i += cols {
		end := i + cols
		if end > len(products) {
			end = len(products)
		}
		cards := make([]string, 0, end-i)
		for _, p := range products[i:end] {
			cards = append(cards, RenderProductCard(s, p, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return strings.Join(rows, "\n")
}
