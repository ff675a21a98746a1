package domain

// CriterionScore is the accounting for a single scoring rule
type CriterionScore struct {
	Name      string `json:"name"`
	Points    int    `json:"points"`
	MaxPoints int    `json:"maxPoints"`
	Reasoning string `json:"reasoning"`
}

// ScoreBreakdown is the objective score of one product.
// Values are computed on demand and never modified after creation.
type ScoreBreakdown struct {
	Criteria []CriterionScore `json:"criteria"`
	Total    int              `json:"total"`
	MaxTotal int              `json:"maxTotal"`
	Degraded bool             `json:"degraded,omitempty"` // true when produced by the rating estimate
}

// Criterion returns the entry with the given name, if present
func (b ScoreBreakdown) Criterion(name string) (CriterionScore, bool) {
	for _, c := range b.Criteria {
		if c.Name == name {
			return c, true
		}
	}
	return CriterionScore{}, false
}
