package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubebenders/backend/internal/domain"
)

func TestEnhancedMatcher(t *testing.T) {
	m := NewEnhancedMatcher()

	tests := []struct {
		name     string
		criteria domain.FinderCriteria
		want     []int
	}{
		{"budget headroom ranks cheaper first", domain.FinderCriteria{Budget: 1000}, []int{4, 1}},
		{"s-bend is a hard requirement", domain.FinderCriteria{SBendRequired: true}, []int{1}},
		{"modular clamping penalises others below zero", domain.FinderCriteria{ModularClamping: true}, []int{2}},
		{"advanced experience", domain.FinderCriteria{ExperienceLevel: domain.ExperienceAdvanced}, []int{2, 3, 1}},
		{"beginner experience", domain.FinderCriteria{ExperienceLevel: domain.ExperienceBeginner}, []int{1, 4, 5}},
		{"bend angle margin", domain.FinderCriteria{MinBendAngle: 180}, []int{1, 2, 5}},
		{"wall thickness", domain.FinderCriteria{WallThickness: 0.156}, []int{2, 3, 4}},
		{"die shapes with wide-range hint", domain.FinderCriteria{DieShapes: []string{"square"}}, []int{1, 2, 5}},
		{"reliability", domain.FinderCriteria{ReliabilityWeighted: true}, []int{1, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resultIDs(m.Match(finderCatalog(), tt.criteria)))
		})
	}
}

func TestEnhancedMatcher_Scores(t *testing.T) {
	m := NewEnhancedMatcher()

	t.Run("bend angle", func(t *testing.T) {
		all := m.Evaluate(finderCatalog(), domain.FinderCriteria{MinBendAngle: 180})
		assert.Equal(t, enhancedAnglePoints+enhancedAngleMarginBonus, findResult(t, all, 1).Score)
		assert.Equal(t, enhancedAnglePoints, findResult(t, all, 3).Score)
		assert.Equal(t, -enhancedAnglePenalty, findResult(t, all, 4).Score)
	})

	t.Run("wall thickness unknown is neutral", func(t *testing.T) {
		all := m.Evaluate(finderCatalog(), domain.FinderCriteria{WallThickness: 0.156})
		assert.Equal(t, -enhancedWallPenalty, findResult(t, all, 1).Score)
		assert.Equal(t, enhancedWallPoints, findResult(t, all, 2).Score)
		assert.Equal(t, 0, findResult(t, all, 4).Score)
	})

	t.Run("wall thickness gauge sizes are unknown", func(t *testing.T) {
		catalog := []domain.Product{
			{ID: 1, Name: "Gauge", WallThickness: "11ga"},
			{ID: 2, Name: "Fraction", WallThickness: `3/16"`},
			{ID: 3, Name: "Thin fraction", WallThickness: `1/8"`},
		}
		all := m.Evaluate(catalog, domain.FinderCriteria{WallThickness: 0.156})
		assert.Equal(t, 0, findResult(t, all, 1).Score)
		assert.Equal(t, enhancedWallPoints, findResult(t, all, 2).Score)
		assert.Equal(t, -enhancedWallPenalty, findResult(t, all, 3).Score)
	})

	t.Run("die shapes", func(t *testing.T) {
		all := m.Evaluate(finderCatalog(), domain.FinderCriteria{DieShapes: []string{"Round", "Square", " "}})
		jd2 := findResult(t, all, 1)
		assert.Equal(t, 2*enhancedDieShapePoints, jd2.Score)
		assert.Equal(t, []string{TagDieShapes}, jd2.MatchedCriteria)
		assert.Equal(t, []string{"Offers round dies", "Offers square dies"}, jd2.Reasons)

		rogue := findResult(t, all, 2)
		assert.Equal(t, enhancedDieHintPoints, rogue.Score)
		require.Len(t, rogue.Reasons, 1)
		assert.Contains(t, rogue.Reasons[0], "round, square")

		assert.Equal(t, 0, findResult(t, all, 3).Score)
	})

	t.Run("full profile", func(t *testing.T) {
		criteria := domain.FinderCriteria{
			Budget:          1200,
			MinDiameter:     1.5,
			USAOnly:         true,
			MandrelRequired: true,
			SBendRequired:   true,
			MinBendAngle:    180,
		}
		all := m.Evaluate(finderCatalog(), criteria)

		jd2 := findResult(t, all, 1)
		want := enhancedBudgetPoints + enhancedBudgetHeadroom + // 780 is under 75% of 1200
			enhancedDiameterPoints + enhancedDiameterHeadroom +
			enhancedMandrelPoints + enhancedSBendPoints + enhancedUSAPoints +
			enhancedAnglePoints + enhancedAngleMarginBonus
		assert.Equal(t, want, jd2.Score)
		assert.Equal(t, []string{TagBudget, TagDiameter, TagMandrel, TagSBend, TagUSA, TagBendAngle}, jd2.MatchedCriteria)

		assert.Equal(t, []int{1}, resultIDs(m.Match(finderCatalog(), criteria)))
	})
}

func TestMatchers_Diverge(t *testing.T) {
	criteria := domain.FinderCriteria{Budget: 1000}

	basic := NewBasicMatcher().Match(finderCatalog(), criteria)
	enhanced := NewEnhancedMatcher().Match(finderCatalog(), criteria)

	assert.Equal(t, []int{1, 4}, resultIDs(basic))
	assert.Equal(t, []int{4, 1}, resultIDs(enhanced))
}
