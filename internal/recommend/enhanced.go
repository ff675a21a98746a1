package recommend

import (
	"fmt"
	"strings"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/ranking"
	"github.com/tubebenders/backend/internal/scoring"
)

// Enhanced finder weights
const (
	enhancedBudgetPoints       = 25
	enhancedBudgetHeadroom     = 5
	enhancedDiameterPoints     = 20
	enhancedDiameterHeadroom   = 5
	enhancedMandrelPoints      = 10
	enhancedSBendPoints        = 5
	enhancedUSAPoints          = 15
	enhancedNonUSAPenalty      = 5
	enhancedAnglePoints        = 10
	enhancedAngleMarginBonus   = 5
	enhancedAnglePenalty       = 10
	enhancedWallPoints         = 10
	enhancedWallPenalty        = 8
	enhancedDieShapePoints     = 3
	enhancedDieHintPoints      = 2
	enhancedModularPoints      = 12
	enhancedModularPenalty     = 5
	enhancedBeginnerPoints     = 8
	enhancedIntermediatePoints = 6
	enhancedAdvancedPoints     = 8

	// Starting price at or below this share of the budget earns the headroom bonus
	budgetHeadroomRatio = 0.75
	// Capacity this far above the requirement earns the headroom bonus
	diameterHeadroomInches = 0.5
	// Bend angle this far above the minimum earns the margin bonus
	angleMarginDegrees = 15
)

// reliabilityBonus is the brand bonus applied when the user weights reliability
var reliabilityBonus = map[string]int{
	"Hossfeld":  10,
	"JD2":       8,
	"Pro-Tools": 7,
	"Baileigh":  7,
	"RogueFab":  6,
}

// wideDieBrands sell dies for most profiles even when a product listing does not say so
var wideDieBrands = map[string]bool{
	"Hossfeld":  true,
	"RogueFab":  true,
	"Pro-Tools": true,
}

var beginnerBrands = map[string]bool{
	"JD2":           true,
	"Pro-Tools":     true,
	"SWAG Off Road": true,
}

var intermediateBrands = map[string]bool{
	"RogueFab": true,
	"JD2":      true,
}

// EnhancedMatcher is the eleven-question finder
type EnhancedMatcher struct{}

// NewEnhancedMatcher creates the enhanced finder strategy
func NewEnhancedMatcher() *EnhancedMatcher {
	return &EnhancedMatcher{}
}

// Name implements Matcher
func (m *EnhancedMatcher) Name() string { return "enhanced" }

// Match implements Matcher
func (m *EnhancedMatcher) Match(products []domain.Product, criteria domain.FinderCriteria) []domain.MatchResult {
	return Shortlist(m.Evaluate(products, criteria))
}

// Evaluate implements Matcher
func (m *EnhancedMatcher) Evaluate(products []domain.Product, criteria domain.FinderCriteria) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(products))
	for i := range products {
		p := products[i]
		e := m.evaluate(&p, criteria)
		results = append(results, e.result(p))
	}
	return results
}

func (m *EnhancedMatcher) evaluate(p *domain.Product, c domain.FinderCriteria) *evaluation {
	e := &evaluation{}

	// Hard requirements
	if c.Budget > 0 {
		start, ok := checkBudget(e, p, c.Budget)
		if !ok {
			return e
		}
		e.add(enhancedBudgetPoints,
			fmt.Sprintf("Starts at %s, within your %s budget", scoring.FormatPrice(start), scoring.FormatPrice(c.Budget)),
			TagBudget)
		if start <= c.Budget*budgetHeadroomRatio {
			e.add(enhancedBudgetHeadroom,
				fmt.Sprintf("Leaves %s for dies and accessories", scoring.FormatPrice(c.Budget-start)), "")
		}
	}

	if c.MinDiameter > 0 {
		capacity, ok := checkDiameter(e, p, c.MinDiameter)
		if !ok {
			return e
		}
		e.add(enhancedDiameterPoints, fmt.Sprintf("Bends up to %s tubing", p.MaxDiameter), TagDiameter)
		if capacity >= c.MinDiameter+diameterHeadroomInches {
			e.add(enhancedDiameterHeadroom, "Extra capacity beyond your requirement", "")
		}
	}

	if c.MandrelRequired {
		if !HasMandrel(p) {
			e.eliminate("No mandrel bending option")
			return e
		}
		e.add(enhancedMandrelPoints, fmt.Sprintf("Mandrel option: %s", p.Mandrel), TagMandrel)
	}

	if c.SBendRequired {
		if !HasSBend(p) {
			e.eliminate("Cannot produce S-bends")
			return e
		}
		e.add(enhancedSBendPoints, "S-bend capable", TagSBend)
	}

	// Preferences
	if c.USAOnly {
		if isUSA(p) {
			e.add(enhancedUSAPoints, "Made in the USA", TagUSA)
		} else {
			e.penalize(enhancedNonUSAPenalty)
		}
	}

	if c.MinBendAngle > 0 {
		scoreBendAngle(e, p, c.MinBendAngle)
	}

	if c.WallThickness > 0 {
		scoreWallThickness(e, p, c.WallThickness)
	}

	if len(c.DieShapes) > 0 {
		scoreDieShapes(e, p, c.DieShapes)
	}

	if c.ReliabilityWeighted {
		if bonus, ok := reliabilityBonus[p.Brand]; ok {
			e.add(bonus, fmt.Sprintf("%s has a proven reliability record", p.Brand), TagReliability)
		}
	}

	if c.ModularClamping {
		if scoring.HasModularClamping(p) {
			e.add(enhancedModularPoints, "Modular clamping system", TagModularClamp)
		} else {
			e.penalize(enhancedModularPenalty)
		}
	}

	if c.ExperienceLevel != "" {
		scoreExperience(e, p, c.ExperienceLevel)
	}

	return e
}

func scoreBendAngle(e *evaluation, p *domain.Product, minAngle int) {
	if p.BendAngle < minAngle {
		e.penalize(enhancedAnglePenalty)
		return
	}
	e.add(enhancedAnglePoints,
		fmt.Sprintf("Bends to %d°, meets your %d° requirement", p.BendAngle, minAngle), TagBendAngle)
	if p.BendAngle-minAngle >= angleMarginDegrees {
		e.add(enhancedAngleMarginBonus, fmt.Sprintf("%d° of extra bend angle", p.BendAngle-minAngle), "")
	}
}

// Unknown thickness is neither rewarded nor penalised
func scoreWallThickness(e *evaluation, p *domain.Product, required float64) {
	wall, ok := scoring.ParseWallThickness(p.WallThickness)
	if !ok {
		return
	}
	if wall < required {
		e.penalize(enhancedWallPenalty)
		return
	}
	e.add(enhancedWallPoints,
		fmt.Sprintf("Rated for %s wall, meets your %s requirement", formatInches(wall), formatInches(required)),
		TagWallThickness)
}

func scoreDieShapes(e *evaluation, p *domain.Product, shapes []string) {
	var missing []string
	for _, shape := range shapes {
		shape = strings.TrimSpace(shape)
		if shape == "" {
			continue
		}
		if containsFold(p.Features, shape) || containsFold(p.Materials, shape) {
			e.add(enhancedDieShapePoints, fmt.Sprintf("Offers %s dies", strings.ToLower(shape)), TagDieShapes)
			continue
		}
		missing = append(missing, strings.ToLower(shape))
	}

	if len(missing) > 0 && wideDieBrands[p.Brand] {
		e.add(enhancedDieHintPoints,
			fmt.Sprintf("%s sells a wide die range that may cover %s", p.Brand, strings.Join(missing, ", ")),
			TagDieShapes)
	}
}

func scoreExperience(e *evaluation, p *domain.Product, level string) {
	switch strings.ToLower(level) {
	case domain.ExperienceBeginner:
		if beginnerBrands[p.Brand] || strings.EqualFold(p.Category, "budget") {
			e.add(enhancedBeginnerPoints, "Easy to learn for first-time fabricators", TagExperience)
		}
	case domain.ExperienceIntermediate:
		if intermediateBrands[p.Brand] || ranking.PriceCategory(p) == ranking.PriceCategoryMid {
			e.add(enhancedIntermediatePoints, "Room to grow as your projects get more ambitious", TagExperience)
		}
	case domain.ExperienceAdvanced:
		category := strings.ToLower(p.Category)
		if category == "professional" || category == "heavy-duty" || ranking.PowerType(p) == ranking.PowerTypeHydraulic {
			e.add(enhancedAdvancedPoints, "Built for production-level work", TagExperience)
		}
	}
}
