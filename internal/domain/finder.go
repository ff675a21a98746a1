package domain

// Experience levels accepted by the finder
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// FinderCriteria holds the constraints collected by the finder wizard.
// Zero values mean "no requirement".
type FinderCriteria struct {
	Budget              float64  `json:"budget" binding:"gte=0,lte=1000000"`
	MinDiameter         float64  `json:"minDiameter" binding:"gte=0,lte=12"`
	USAOnly             bool     `json:"usaOnly"`
	MandrelRequired     bool     `json:"mandrelRequired"`
	SBendRequired       bool     `json:"sBendRequired"`
	ModularClamping     bool     `json:"modularClamping"`
	ReliabilityWeighted bool     `json:"reliabilityWeighted"`
	MinBendAngle        int      `json:"minBendAngle" binding:"gte=0,lte=360"`
	WallThickness       float64  `json:"wallThickness" binding:"gte=0,lt=1"`
	DieShapes           []string `json:"dieShapes,omitempty" binding:"omitempty,dive,required"`
	ExperienceLevel     string   `json:"experienceLevel,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
}
