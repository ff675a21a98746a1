package recommend

import (
	"fmt"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/scoring"
)

// Basic finder weights
const (
	basicBudgetPoints   = 30
	basicDiameterPoints = 25
	basicUSAPoints      = 20
	basicNonUSAPenalty  = 10
	basicMandrelPoints  = 15
)

// BasicMatcher is the four-question finder: budget, diameter, USA and mandrel
type BasicMatcher struct{}

// NewBasicMatcher creates the basic finder strategy
func NewBasicMatcher() *BasicMatcher {
	return &BasicMatcher{}
}

// Name implements Matcher
func (m *BasicMatcher) Name() string { return "basic" }

// Match implements Matcher
func (m *BasicMatcher) Match(products []domain.Product, criteria domain.FinderCriteria) []domain.MatchResult {
	return Shortlist(m.Evaluate(products, criteria))
}

// Evaluate implements Matcher
func (m *BasicMatcher) Evaluate(products []domain.Product, criteria domain.FinderCriteria) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(products))
	for i := range products {
		p := products[i]
		e := m.evaluate(&p, criteria)
		results = append(results, e.result(p))
	}
	return results
}

func (m *BasicMatcher) evaluate(p *domain.Product, c domain.FinderCriteria) *evaluation {
	e := &evaluation{}

	if c.Budget > 0 {
		start, ok := checkBudget(e, p, c.Budget)
		if !ok {
			return e
		}
		e.add(basicBudgetPoints,
			fmt.Sprintf("Starts at %s, within your %s budget", scoring.FormatPrice(start), scoring.FormatPrice(c.Budget)),
			TagBudget)
	}

	if c.MinDiameter > 0 {
		if _, ok := checkDiameter(e, p, c.MinDiameter); !ok {
			return e
		}
		e.add(basicDiameterPoints, fmt.Sprintf("Bends up to %s tubing", p.MaxDiameter), TagDiameter)
	}

	if c.USAOnly {
		if isUSA(p) {
			e.add(basicUSAPoints, "Made in the USA", TagUSA)
		} else {
			e.penalize(basicNonUSAPenalty)
		}
	}

	if c.MandrelRequired {
		if !HasMandrel(p) {
			e.eliminate("No mandrel bending option")
			return e
		}
		e.add(basicMandrelPoints, fmt.Sprintf("Mandrel option: %s", p.Mandrel), TagMandrel)
	}

	return e
}
