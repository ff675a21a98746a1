// Package scoring computes the transparent 100-point objective score of a tube bender.
//
// Every point is traceable to a rule in an ordered ladder: a criterion walks its
// rules top to bottom and the first satisfied rule awards its points and reasoning.
package scoring

import (
	"math"

	"github.com/tubebenders/backend/internal/domain"
)

// MaxTotal is the sum of all criterion maxima
const MaxTotal = 100

// CriterionOverallRating names the single entry of a degraded breakdown
const CriterionOverallRating = "Overall Rating"

// Score computes the full breakdown for a product. It is pure and deterministic:
// malformed or missing fields fall through to each ladder's default rung.
func Score(p *domain.Product) domain.ScoreBreakdown {
	breakdown := domain.ScoreBreakdown{
		Criteria: make([]domain.CriterionScore, 0, len(criteria)),
		MaxTotal: MaxTotal,
	}
	for _, c := range criteria {
		entry := c.evaluate(p)
		breakdown.Criteria = append(breakdown.Criteria, entry)
		breakdown.Total += entry.Points
	}
	return breakdown
}

// Estimate is the degraded-mode score: the product's 0-10 rating scaled to 100
func Estimate(p *domain.Product) domain.ScoreBreakdown {
	rating := 0.0
	if p != nil {
		rating = p.Rating
	}
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	if rating > 10 {
		rating = 10
	}
	points := int(math.Round(rating * 10))

	return domain.ScoreBreakdown{
		Criteria: []domain.CriterionScore{{
			Name:      CriterionOverallRating,
			Points:    points,
			MaxPoints: MaxTotal,
			Reasoning: "Estimated from overall rating while the full score is unavailable",
		}},
		Total:    points,
		MaxTotal: MaxTotal,
		Degraded: true,
	}
}

// ScoreOrEstimate runs Score and falls back to Estimate if scoring panics.
// Callers can detect the fallback through ScoreBreakdown.Degraded.
func ScoreOrEstimate(p *domain.Product) (breakdown domain.ScoreBreakdown) {
	defer func() {
		if r := recover(); r != nil {
			breakdown = Estimate(p)
		}
	}()
	return Score(p)
}
