package recommend

import (
	"fmt"
	"strings"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/ranking"
	"github.com/tubebenders/backend/internal/scoring"
)

// HasMandrel reports whether the product offers mandrel bending in any form.
// The finder accepts "Standard" here; the objective score does not.
func HasMandrel(p *domain.Product) bool {
	m := strings.TrimSpace(p.Mandrel)
	return strings.EqualFold(m, "Available") || strings.EqualFold(m, "Standard")
}

// HasSBend reports an explicit S-bend capability
func HasSBend(p *domain.Product) bool {
	return p.SBend != nil && *p.SBend
}

// checkBudget applies the shared budget elimination rule.
// It returns the starting price and false when the product is over budget.
func checkBudget(e *evaluation, p *domain.Product, budget float64) (float64, bool) {
	start := scoring.StartingPrice(p)
	if start > budget {
		e.eliminate(fmt.Sprintf("Starts at %s, over your %s budget", scoring.FormatPrice(start), scoring.FormatPrice(budget)))
		return start, false
	}
	return start, true
}

// checkDiameter applies the shared capacity elimination rule
func checkDiameter(e *evaluation, p *domain.Product, minDiameter float64) (float64, bool) {
	capacity := scoring.ParseDiameter(p.MaxDiameter)
	if capacity < minDiameter {
		e.eliminate(fmt.Sprintf("Max capacity %s is below your %s requirement", quoteOrUnknown(p.MaxDiameter), formatInches(minDiameter)))
		return capacity, false
	}
	return capacity, true
}

func quoteOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func isUSA(p *domain.Product) bool {
	return ranking.IsUSA(p)
}

func containsFold(values []string, needle string) bool {
	n := strings.ToLower(strings.TrimSpace(needle))
	if n == "" {
		return false
	}
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), n) {
			return true
		}
	}
	return false
}
