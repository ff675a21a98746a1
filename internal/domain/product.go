package domain

// Product represents a tube bender catalog entry as supplied by the catalog store.
// Price fields may disagree with each other; consumers must tolerate either form.
type Product struct {
	ID            int      `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Brand         string   `json:"brand" yaml:"brand"`
	Model         string   `json:"model,omitempty" yaml:"model"`
	Category      string   `json:"category,omitempty" yaml:"category"`
	Country       string   `json:"country" yaml:"country"`
	PowerType     string   `json:"powerType,omitempty" yaml:"power_type"`
	PriceRange    string   `json:"priceRange,omitempty" yaml:"price_range"`
	PriceMin      *float64 `json:"priceMin,omitempty" yaml:"price_min"`
	PriceMax      *float64 `json:"priceMax,omitempty" yaml:"price_max"`
	MaxDiameter   string   `json:"maxDiameter,omitempty" yaml:"max_diameter"`
	WallThickness string   `json:"wallThickness,omitempty" yaml:"wall_thickness"`
	BendAngle     int      `json:"bendAngle" yaml:"bend_angle"`
	Mandrel       string   `json:"mandrel,omitempty" yaml:"mandrel"`
	SBend         *bool    `json:"sBend,omitempty" yaml:"s_bend"`
	Features      []string `json:"features,omitempty" yaml:"features"`
	Materials     []string `json:"materials,omitempty" yaml:"materials"`
	Rating        float64  `json:"rating,omitempty" yaml:"rating"`
}

// ScoredProduct pairs a product with its objective score and listing position
type ScoredProduct struct {
	Product Product        `json:"product"`
	Score   ScoreBreakdown `json:"score"`
	Rank    int            `json:"rank"`
}

// MatchResult is a finder candidate annotated with its personalised match score.
// Score is not on the objective 100-point scale.
type MatchResult struct {
	Product         Product  `json:"product"`
	Score           int      `json:"score"`
	Reasons         []string `json:"reasons"`
	MatchedCriteria []string `json:"matchedCriteria"`
}
