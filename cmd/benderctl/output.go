package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/ranking"
	"github.com/tubebenders/backend/internal/scoring"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.String())
	return err
}

func priceCell(p *domain.Product) string {
	if strings.TrimSpace(p.PriceRange) != "" {
		return p.PriceRange
	}
	if start := scoring.StartingPrice(p); start > 0 {
		return scoring.FormatPrice(start)
	}
	return "-"
}

func scoreCell(b domain.ScoreBreakdown) string {
	s := fmt.Sprintf("%d/%d", b.Total, b.MaxTotal)
	if b.Degraded {
		s += " (est.)"
	}
	return s
}

func writeListing(w io.Writer, items []domain.ScoredProduct) error {
	rows := make([][]string, 0, len(items))
	for _, sp := range items {
		p := sp.Product
		rows = append(rows, []string{
			strconv.Itoa(sp.Rank),
			strconv.Itoa(p.ID),
			p.Name,
			p.Brand,
			priceCell(&p),
			ranking.PriceCategory(&p),
			scoreCell(sp.Score),
		})
	}
	return renderTable(w, []string{"Rank", "ID", "Name", "Brand", "Price", "Category", "Score"}, rows)
}

func writeBreakdown(w io.Writer, sp domain.ScoredProduct) error {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)  %s", sp.Product.Name, sp.Product.Brand, scoreCell(sp.Score))))

	rows := make([][]string, 0, len(sp.Score.Criteria))
	for _, c := range sp.Score.Criteria {
		rows = append(rows, []string{c.Name, fmt.Sprintf("%d/%d", c.Points, c.MaxPoints), c.Reasoning})
	}
	return renderTable(w, []string{"Criterion", "Points", "Reasoning"}, rows)
}

func writeMatches(w io.Writer, strategy string, results []domain.MatchResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("No tube benders match these criteria (%s finder).", strategy)))
		return err
	}

	rows := make([][]string, 0, len(results))
	for i, r := range results {
		p := r.Product
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Name,
			priceCell(&p),
			strconv.Itoa(r.Score),
			strings.Join(r.MatchedCriteria, ", "),
		})
	}
	return renderTable(w, []string{"#", "Name", "Price", "Match", "Matched"}, rows)
}
