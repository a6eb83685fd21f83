package filtering

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/scribesearch/talent-scout/internal/ranking"
	"github.com/scribesearch/talent-scout/internal/talent"
)

// DefaultResultCount bounds how many ranked profiles a turn shows.
const DefaultResultCount = 10

// State is the accumulated search criteria. It is mutated incrementally by
// interpreted queries or manual edits and read on every search; it is never
// reset implicitly.
type State struct {
	SearchTerm string

	SelectedIndustries  []string
	SelectedSpecialties []string
	SelectedSkills      []string

	MinExperience *int
	MinScore      *int
	MinProjects   *int

	SortOrder   ranking.Order
	ResultCount int

	ContentExamples []string

	StarredOnly bool
}

// NewState returns the session defaults.
func NewState() *State {
	return &State{
		SortOrder:   ranking.OrderRelevance,
		ResultCount: DefaultResultCount,
	}
}

// StarredSet answers membership for the externally tracked starred ids.
type StarredSet interface {
	Has(id int) bool
}

// Filter represents a single matching step applied to profiles. Every step
// narrows by one criterion; a step whose criterion is absent from the state
// reports itself disabled and drops nothing.
type Filter interface {
	Name() string
	Enabled(state *State) bool
	Apply(deps Deps, state *State, p *talent.Profiles) (*talent.Profiles, Step, error)
}

// Deps aggregates dependencies shared across all matching steps.
type Deps struct {
	Logger  *zap.Logger
	Starred StarredSet
}

// Step describes the result of executing a matching step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status(state *State) Status
}

// Steps returns the full matching pipeline in its canonical order. The state
// decides which steps actually constrain; applying all of them sequentially is
// the conjunction across categories.
func Steps() []Filter {
	return []Filter{
		newSearchTerm(),
		newIndustries(),
		newSpecialties(),
		newSkills(),
		newMinExperience(),
		newMinScore(),
		newMinProjects(),
		newStarredOnly(),
	}
}

// Run executes the supplied filters sequentially, returning the surviving
// profiles in their original order. Ordering is the ranking engine's job.
func Run(deps Deps, state *State, steps []Filter, p *talent.Profiles) (*talent.Profiles, error) {
	for _, step := range steps {
		if !step.Enabled(state) {
			if deps.Logger != nil {
				deps.Logger.Debug("filter inactive", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(deps, state, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		p = next
	}

	return p, nil
}

// Match applies the whole canonical pipeline.
func Match(deps Deps, state *State, p *talent.Profiles) (*talent.Profiles, error) {
	return Run(deps, state, Steps(), p)
}

// Describe returns status entries for the provided filters against a state.
func Describe(steps []Filter, state *State) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status(state))
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.Enabled(state),
		})
	}
	return statuses
}
