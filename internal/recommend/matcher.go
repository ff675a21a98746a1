// Package recommend builds the finder's personalised shortlist.
//
// Match scores are independent of the objective 100-point score: each strategy
// walks its own criteria once per product, either eliminating the product or
// adding and subtracting points with human-readable reasons.
package recommend

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/tubebenders/backend/internal/domain"
)

const (
	// EliminatedScore marks a product that violated a hard requirement.
	// It is never shown; Shortlist drops it with every other negative score.
	EliminatedScore = -100

	// TopN is the size of the finder shortlist
	TopN = 3
)

// Matched criteria tags shown as badges
const (
	TagBudget        = "Within Budget"
	TagDiameter      = "Diameter Capacity"
	TagUSA           = "Made in USA"
	TagMandrel       = "Mandrel"
	TagSBend         = "S-Bend"
	TagBendAngle     = "Bend Angle"
	TagWallThickness = "Wall Thickness"
	TagDieShapes     = "Die Shapes"
	TagReliability   = "Proven Reliability"
	TagModularClamp  = "Modular Clamping"
	TagExperience    = "Experience Fit"
)

// Matcher is a finder scoring strategy
type Matcher interface {
	// Name is the strategy key used in routes and the registry
	Name() string

	// Evaluate scores every product, eliminated ones included, in input order
	Evaluate(products []domain.Product, criteria domain.FinderCriteria) []domain.MatchResult

	// Match returns the top TopN surviving products by descending score
	Match(products []domain.Product, criteria domain.FinderCriteria) []domain.MatchResult
}

// Shortlist drops negative scores, sorts by descending score (ties keep input
// order) and keeps the first TopN.
func Shortlist(results []domain.MatchResult) []domain.MatchResult {
	kept := make([]domain.MatchResult, 0, len(results))
	for _, r := range results {
		if r.Score >= 0 {
			kept = append(kept, r)
		}
	}
	slices.SortStableFunc(kept, func(a, b domain.MatchResult) int {
		return b.Score - a.Score
	})
	if len(kept) > TopN {
		kept = kept[:TopN]
	}
	return kept
}

// Eliminated counts results carrying the elimination sentinel
func Eliminated(results []domain.MatchResult) int {
	n := 0
	for _, r := range results {
		if r.Score == EliminatedScore {
			n++
		}
	}
	return n
}

// evaluation accumulates one product's match score
type evaluation struct {
	score      int
	reasons    []string
	tags       []string
	eliminated bool
}

func (e *evaluation) add(points int, reason, tag string) {
	e.score += points
	if reason != "" {
		e.reasons = append(e.reasons, reason)
	}
	if tag != "" && !slices.Contains(e.tags, tag) {
		e.tags = append(e.tags, tag)
	}
}

func (e *evaluation) penalize(points int) {
	e.score -= points
}

// eliminate replaces everything accumulated so far with the sentinel and a single reason
func (e *evaluation) eliminate(reason string) {
	e.score = EliminatedScore
	e.reasons = []string{reason}
	e.tags = []string{}
	e.eliminated = true
}

func (e *evaluation) result(p domain.Product) domain.MatchResult {
	reasons := e.reasons
	if reasons == nil {
		reasons = []string{}
	}
	tags := e.tags
	if tags == nil {
		tags = []string{}
	}
	return domain.MatchResult{Product: p, Score: e.score, Reasons: reasons, MatchedCriteria: tags}
}

// formatInches renders 2.375 as `2.375"`
func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + `"`
}

// Registry resolves finder strategies by name
type Registry struct {
	matchers map[string]Matcher
}

// NewRegistry creates a registry holding the given matchers
func NewRegistry(matchers ...Matcher) *Registry {
	r := &Registry{matchers: make(map[string]Matcher, len(matchers))}
	for _, m := range matchers {
		r.matchers[m.Name()] = m
	}
	return r
}

// DefaultRegistry registers the basic and enhanced strategies
func DefaultRegistry() *Registry {
	return NewRegistry(NewBasicMatcher(), NewEnhancedMatcher())
}

// Get returns the matcher registered under name
func (r *Registry) Get(name string) (Matcher, error) {
	m, ok := r.matchers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, name)
	}
	return m, nil
}

// Names lists registered strategies in alphabetical order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.matchers))
	for name := range r.matchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
