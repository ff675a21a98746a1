package scoring

import (
	"fmt"
	"strings"

	"github.com/tubebenders/backend/internal/domain"
)

// Criterion names as shown in score breakdowns
const (
	CriterionValue         = "Value for Money"
	CriterionEaseOfUse     = "Ease of Use & Setup"
	CriterionCapacity      = "Max Diameter & Radius Capacity"
	CriterionUSA           = "USA Manufacturing"
	CriterionBendAngle     = "Bend Angle Capability"
	CriterionWallThickness = "Wall Thickness Capability"
	CriterionDieSelection  = "Die Selection & Shapes"
	CriterionYears         = "Years in Business"
	CriterionModularClamp  = "Modular Clamping System"
	CriterionMandrel       = "Mandrel Availability"
	CriterionSBend         = "S-Bend Capability"
)

// rule is one rung of a point ladder
type rule struct {
	when   func(p *domain.Product) bool
	points int
	reason func(p *domain.Product) string
}

// criterion is an ordered ladder; the first rule that matches awards its points.
// Every ladder ends with an unconditional rule.
type criterion struct {
	name  string
	max   int
	rules []rule
}

func (c criterion) evaluate(p *domain.Product) domain.CriterionScore {
	for _, r := range c.rules {
		if r.when(p) {
			return domain.CriterionScore{
				Name:      c.name,
				Points:    r.points,
				MaxPoints: c.max,
				Reasoning: r.reason(p),
			}
		}
	}
	return domain.CriterionScore{Name: c.name, MaxPoints: c.max, Reasoning: "No rule matched"}
}

func always(*domain.Product) bool { return true }

// criteria lists the eleven scoring rules in display order. Maxima sum to 100.
var criteria = []criterion{
	valueForMoney,
	easeOfUse,
	capacity,
	usaManufacturing,
	bendAngle,
	wallThickness,
	dieSelection,
	yearsInBusiness,
	modularClamping,
	mandrelAvailability,
	sBendCapability,
}

// Value for Money matches literal price substrings. A price outside the
// known bands (e.g. "$781") scores 0.
var valueForMoney = criterion{
	name: CriterionValue,
	max:  20,
	rules: append(
		priceBandRules([]priceBand{
			{"$780", 20},
			{"$885", 19},
			{"$1,095", 17},
			{"$1,295", 16},
			{"$1,495", 15},
			{"$1,895", 12},
			{"$2,695", 8},
		}),
		rule{always, 0, func(p *domain.Product) string {
			return fmt.Sprintf("Price %q matches no known price band", priceLabel(p))
		}},
	),
}

type priceBand struct {
	token  string
	points int
}

func priceBandRules(bands []priceBand) []rule {
	rules := make([]rule, 0, len(bands))
	for _, b := range bands {
		rules = append(rules, rule{
			when:   func(p *domain.Product) bool { return strings.Contains(priceLabel(p), b.token) },
			points: b.points,
			reason: func(p *domain.Product) string {
				return fmt.Sprintf("Price %q falls in the %s band", priceLabel(p), b.token)
			},
		})
	}
	return rules
}

var easeOfUse = criterion{
	name: CriterionEaseOfUse,
	max:  12,
	rules: append(
		brandRules("%s setup rated %d of 12", []brandPoints{
			{"Pro-Tools", 12},
			{"JD2", 11},
			{"SWAG Off Road", 10},
			{"RogueFab", 10},
			{"Hossfeld", 9},
		}),
		powerTypeRule("Manual", 8),
		powerTypeRule("Hydraulic", 9),
		rule{always, 7, func(p *domain.Product) string {
			return fmt.Sprintf("No setup rating for %s, default applied", p.Brand)
		}},
	),
}

func powerTypeRule(powerType string, points int) rule {
	return rule{
		when:   func(p *domain.Product) bool { return strings.EqualFold(strings.TrimSpace(p.PowerType), powerType) },
		points: points,
		reason: func(p *domain.Product) string {
			return fmt.Sprintf("%s power type rated %d of 12", p.PowerType, points)
		},
	}
}

type brandPoints struct {
	brand  string
	points int
}

// brandRules builds exact-brand rules; format receives the brand and the points
func brandRules(format string, table []brandPoints) []rule {
	rules := make([]rule, 0, len(table))
	for _, b := range table {
		rules = append(rules, rule{
			when:   func(p *domain.Product) bool { return p.Brand == b.brand },
			points: b.points,
			reason: func(*domain.Product) string { return fmt.Sprintf(format, b.brand, b.points) },
		})
	}
	return rules
}

// capacityTier aliases are matched at the start of a number in MaxDiameter
type capacityTier struct {
	label   string
	aliases []string
	points  int
}

var capacity = criterion{
	name: CriterionCapacity,
	max:  12,
	rules: append(
		capacityRules([]capacityTier{
			{`2.5"`, []string{"2.5", "2-1/2"}, 12},
			{`2-3/8"`, []string{"2-3/8", "2.375"}, 11},
			{`2.25"`, []string{"2.25", "2-1/4"}, 10},
			{`2"`, []string{"2.0", `2"`, "2 inch", "2in"}, 9},
			{`1.75"`, []string{"1.75", "1-3/4"}, 7},
			{`1.5"`, []string{"1.5", "1-1/2"}, 5},
		}),
		rule{always, 4, func(p *domain.Product) string {
			return fmt.Sprintf("Capacity %q is below the listed tiers", p.MaxDiameter)
		}},
	),
}

func capacityRules(tiers []capacityTier) []rule {
	rules := make([]rule, 0, len(tiers))
	for _, t := range tiers {
		rules = append(rules, rule{
			when: func(p *domain.Product) bool {
				for _, alias := range t.aliases {
					if containsToken(p.MaxDiameter, alias) {
						return true
					}
				}
				return false
			},
			points: t.points,
			reason: func(p *domain.Product) string {
				return fmt.Sprintf("Capacity %q matches the %s tier", p.MaxDiameter, t.label)
			},
		})
	}
	return rules
}

var usaManufacturing = criterion{
	name: CriterionUSA,
	max:  10,
	rules: []rule{
		{func(p *domain.Product) bool { return p.Country == "USA" }, 10, func(*domain.Product) string {
			return "Made in USA"
		}},
		{always, 0, func(p *domain.Product) string {
			return fmt.Sprintf("Origin %q is not USA", p.Country)
		}},
	},
}

var bendAngle = criterion{
	name: CriterionBendAngle,
	max:  10,
	rules: []rule{
		angleRule(195, 10),
		angleRule(180, 8),
		angleRule(120, 5),
		{always, 3, func(p *domain.Product) string {
			return fmt.Sprintf("Bend angle %d° is below 120°", p.BendAngle)
		}},
	},
}

func angleRule(minDegrees, points int) rule {
	return rule{
		when:   func(p *domain.Product) bool { return p.BendAngle >= minDegrees },
		points: points,
		reason: func(p *domain.Product) string {
			return fmt.Sprintf("Bend angle %d° meets the %d° tier", p.BendAngle, minDegrees)
		},
	}
}

// Absent thickness scores the same as a thin wall
var wallThickness = criterion{
	name: CriterionWallThickness,
	max:  9,
	rules: []rule{
		wallRule(0.156, 9),
		wallRule(0.120, 7),
		wallRule(0.095, 5),
		{always, 3, func(p *domain.Product) string {
			if p.WallThickness == "" {
				return "Wall thickness not listed"
			}
			if _, ok := ParseWallThickness(p.WallThickness); !ok {
				return fmt.Sprintf("Wall thickness %q is not given in inches", p.WallThickness)
			}
			return fmt.Sprintf("Wall thickness %q is below 0.095\"", p.WallThickness)
		}},
	},
}

func wallRule(minInches float64, points int) rule {
	return rule{
		when: func(p *domain.Product) bool {
			v, ok := ParseWallThickness(p.WallThickness)
			return ok && v >= minInches
		},
		points: points,
		reason: func(p *domain.Product) string {
			return fmt.Sprintf("Wall thickness %q meets the %.3f\" tier", p.WallThickness, minInches)
		},
	}
}

// Die selection is keyed on brand only. Features and Materials are part of the
// product record but do not move this score.
var dieSelection = criterion{
	name: CriterionDieSelection,
	max:  8,
	rules: append(
		brandRules("%s die selection rated %d of 8", []brandPoints{
			{"Hossfeld", 8},
			{"RogueFab", 7},
			{"Pro-Tools", 6},
			{"JD2", 5},
			{"SWAG Off Road", 4},
		}),
		rule{always, 3, func(p *domain.Product) string {
			return fmt.Sprintf("Standard die selection for %s", p.Brand)
		}},
	),
}

var yearsInBusiness = criterion{
	name: CriterionYears,
	max:  7,
	rules: append(
		brandRules("%s track record rated %d of 7", []brandPoints{
			{"Hossfeld", 7},
			{"JD2", 6},
			{"Pro-Tools", 5},
			{"Baileigh", 5},
			{"RogueFab", 4},
			{"SWAG Off Road", 3},
		}),
		rule{always, 3, func(p *domain.Product) string {
			return fmt.Sprintf("No track record data for %s, default applied", p.Brand)
		}},
	),
}

var modularClamping = criterion{
	name: CriterionModularClamp,
	max:  6,
	rules: []rule{
		{func(p *domain.Product) bool { return HasModularClamping(p) }, 6, func(p *domain.Product) string {
			return fmt.Sprintf("%s %s has a modular clamping system", p.Brand, p.Model)
		}},
		{always, 0, func(*domain.Product) string { return "No modular clamping system" }},
	},
}

// HasModularClamping reports whether the product is a RogueFab M6-series bender
func HasModularClamping(p *domain.Product) bool {
	return p.Brand == "RogueFab" && strings.Contains(p.Model, "M6")
}

// Only the exact value "Available" earns mandrel points
var mandrelAvailability = criterion{
	name: CriterionMandrel,
	max:  4,
	rules: []rule{
		{func(p *domain.Product) bool { return p.Mandrel == "Available" }, 4, func(*domain.Product) string {
			return "Mandrel bending available"
		}},
		{always, 0, func(p *domain.Product) string {
			return fmt.Sprintf("Mandrel %q is not listed as Available", p.Mandrel)
		}},
	},
}

var sBendCapability = criterion{
	name: CriterionSBend,
	max:  2,
	rules: []rule{
		{func(p *domain.Product) bool { return p.SBend != nil && *p.SBend }, 2, func(*domain.Product) string {
			return "S-bend capable"
		}},
		{always, 0, func(*domain.Product) string { return "No S-bend capability" }},
	},
}
