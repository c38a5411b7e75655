package dynamicanswer

import (
	"strings"

	"github.com/civicspath/backend/internal/domain/officials"
	"github.com/civicspath/backend/internal/domain/questionbank"
)

// Kind selects how a dynamic question's answers are derived.
type Kind int

const (
	StateCapital Kind = iota + 1
	StateGovernor
	StateSenators
	DistrictRepresentative
	FederalOfficial
)

func (k Kind) String() string {
	switch k {
	case StateCapital:
		return "state_capital"
	case StateGovernor:
		return "state_governor"
	case StateSenators:
		return "state_senators"
	case DistrictRepresentative:
		return "district_representative"
	case FederalOfficial:
		return "federal_official"
	}
	return "unknown"
}

// Strategy is the resolution rule for one question. Office is set only
// for FederalOfficial.
type Strategy struct {
	Kind   Kind
	Office officials.Office
}

// Registry maps question ids to their resolution strategy.
type Registry map[int]Strategy

// DefaultRegistry covers the dynamic questions of the 2025 civics test.
func DefaultRegistry() Registry {
	return Registry{
		23: {Kind: StateSenators},
		29: {Kind: DistrictRepresentative},
		30: {Kind: FederalOfficial, Office: officials.Speaker},
		38: {Kind: FederalOfficial, Office: officials.President},
		39: {Kind: FederalOfficial, Office: officials.VicePresident},
		57: {Kind: FederalOfficial, Office: officials.ChiefJustice},
		61: {Kind: StateGovernor},
		62: {Kind: StateCapital},
	}
}

const (
	SelectStatePlaceholder = "Select your state in Settings"
	SelectStateHint        = "Go to Settings → Test Options → Your State"
	RepresentativeHint     = "Enter your representative in Settings for personalized answers"
)

// Shown, all accepted, when no representative has been entered.
var representativeDisclaimers = []string{
	"This varies by congressional district",
	"Check your local representative",
}

var (
	senatorDistractors  = []string{"The President", "The Governor"}
	governorDistractors = []string{"The President", "The Mayor", "The Senator"}
	capitalDistractors  = []string{"Washington D.C.", "New York City", "Los Angeles"}
)

// pooledDistractors is how many names are drawn from the federal pool.
const pooledDistractors = 3

// Result is the effective answer set of a dynamic question. Answers always
// contains every entry of CorrectAnswers.
type Result struct {
	Answers             []string
	CorrectAnswers      []string
	NeedsStateSelection bool
	Hint                string
	IsCustom            bool // a user override supplied the correct answer
}

// Resolver derives answers for dynamic questions from state reference data,
// federal officeholders, and user overrides. It is immutable; build a new
// one when the officeholders change.
type Resolver struct {
	registry Registry
	federal  officials.Federal
}

// NewResolver returns a resolver over federal. A nil registry uses
// DefaultRegistry.
func NewResolver(federal officials.Federal, registry Registry) *Resolver {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Resolver{registry: registry, federal: federal}
}

// Federal returns the officeholders the resolver was built with.
func (r *Resolver) Federal() officials.Federal {
	return r.federal
}

// Resolve returns nil for questions that are not dynamic. selectedState
// may be empty; an unknown state is treated the same as no state.
func (r *Resolver) Resolve(q questionbank.Question, selectedState string, custom *officials.Custom) *Result {
	if !q.Dynamic {
		return nil
	}
	strategy, ok := r.registry[q.ID]
	if !ok {
		return nil
	}

	switch strategy.Kind {
	case StateSenators:
		state, ok := officials.LookupState(selectedState)
		if !ok {
			return needsState()
		}
		correct := custom.Senators()
		isCustom := len(correct) > 0
		if !isCustom {
			correct = state.Senators[:]
		}
		return build(correct, senatorDistractors, isCustom)

	case StateGovernor:
		state, ok := officials.LookupState(selectedState)
		if !ok {
			return needsState()
		}
		if g, ok := custom.GovernorOverride(); ok {
			return build([]string{g}, governorDistractors, true)
		}
		return build([]string{state.Governor}, governorDistractors, false)

	case StateCapital:
		state, ok := officials.LookupState(selectedState)
		if !ok {
			return needsState()
		}
		return build([]string{state.Capital}, capitalDistractors, false)

	case DistrictRepresentative:
		if rep, ok := custom.RepresentativeOverride(); ok {
			correct := []string{rep}
			return build(correct, pick(r.federal.DistractorPool, correct, pooledDistractors), true)
		}
		res := build(representativeDisclaimers, nil, false)
		res.Hint = RepresentativeHint
		return res

	case FederalOfficial:
		holder, ok := r.federal.Holder(strategy.Office)
		if !ok {
			return nil
		}
		correct := holder.Accepted()
		return build(correct, pick(r.federal.DistractorPool, correct, pooledDistractors), false)
	}
	return nil
}

func needsState() *Result {
	return &Result{
		Answers:             []string{SelectStatePlaceholder},
		CorrectAnswers:      []string{},
		NeedsStateSelection: true,
		Hint:                SelectStateHint,
	}
}

// build lists correct answers first, then distractors that do not collide
// with any correct answer.
func build(correct, distractors []string, isCustom bool) *Result {
	correct = unique(correct)
	answers := append([]string{}, correct...)
	for _, d := range distractors {
		if !containsFold(answers, d) {
			answers = append(answers, d)
		}
	}
	return &Result{
		Answers:        answers,
		CorrectAnswers: correct,
		IsCustom:       isCustom,
	}
}

// pick takes the first n pool entries not equal to any of exclude.
func pick(pool, exclude []string, n int) []string {
	out := make([]string, 0, n)
	for _, name := range pool {
		if len(out) == n {
			break
		}
		if containsFold(exclude, name) || containsFold(out, name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func unique(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || containsFold(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
