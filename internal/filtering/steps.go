package filtering

import (
	"strconv"
	"strings"

	"github.com/scribesearch/talent-scout/internal/talent"
)

// keep applies an order-preserving keep-list pass and reports the step counts.
func keep(p *talent.Profiles, pred func(*talent.Profile) bool) (*talent.Profiles, Step) {
	initial := p.Len()
	kept := p.Keep(pred)
	return kept, Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}
}

type searchTermFilter struct{}

// newSearchTerm creates the step matching the profile name against the free
// search term, case-insensitive.
func newSearchTerm() Filter { return &searchTermFilter{} }

func (f *searchTermFilter) Name() string { return "search_term" }

func (f *searchTermFilter) Enabled(state *State) bool {
	return strings.TrimSpace(state.SearchTerm) != ""
}

func (f *searchTermFilter) Apply(_ Deps, state *State, p *talent.Profiles) (*talent.Profiles, Step, error) {
	term := strings.ToLower(strings.TrimSpace(state.SearchTerm))
	next, step := keep(p, func(profile *talent.Profile) bool {
		return strings.Contains(strings.ToLower(profile.Name), term)
	})
	return next, step, nil
}

func (f *searchTermFilter) Status(state *State) Status {
	details := map[string]string{}
	if state.SearchTerm != "" {
		details["term"] = state.SearchTerm
	}
	return Status{Name: f.Name(), Enabled: f.Enabled(state), Details: details}
}

// selectionFilter is the shared shape of the three set-intersection steps:
// the profile's set must share at least one value with the selection.
type selectionFilter struct {
	name     string
	selected func(*State) []string
	set      func(*talent.Profile) []string
}

func newIndustries() Filter {
	return &selectionFilter{
		name:     "industries",
		selected: func(s *State) []string { return s.SelectedIndustries },
		set:      func(p *talent.Profile) []string { return p.Industries },
	}
}

func newSpecialties() Filter {
	return &selectionFilter{
		name:     "specialties",
		selected: func(s *State) []string { return s.SelectedSpecialties },
		set:      func(p *talent.Profile) []string { return p.Specialties },
	}
}

func newSkills() Filter {
	return &selectionFilter{
		name:     "skills",
		selected: func(s *State) []string { return s.SelectedSkills },
		set:      func(p *talent.Profile) []string { return p.Skills },
	}
}

func (f *selectionFilter) Name() string { return f.name }

func (f *selectionFilter) Enabled(state *State) bool {
	return len(f.selected(state)) > 0
}

func (f *selectionFilter) Apply(_ Deps, state *State, p *talent.Profiles) (*talent.Profiles, Step, error) {
	wanted := f.selected(state)
	next, step := keep(p, func(profile *talent.Profile) bool {
		return talent.HasAny(f.set(profile), wanted)
	})
	return next, step, nil
}

func (f *selectionFilter) Status(state *State) Status {
	details := map[string]string{}
	if selected := f.selected(state); len(selected) > 0 {
		details["selected"] = strings.Join(selected, ",")
	}
	return Status{Name: f.name, Enabled: f.Enabled(state), Details: details}
}

// thresholdFilter keeps profiles whose numeric field is at or above the
// configured minimum. A nil threshold means no constraint, never zero.
type thresholdFilter struct {
	name      string
	threshold func(*State) *int
	field     func(*talent.Profile) float64
}

func newMinExperience() Filter {
	return &thresholdFilter{
		name:      "min_experience",
		threshold: func(s *State) *int { return s.MinExperience },
		field:     func(p *talent.Profile) float64 { return float64(p.YearsOfExperience) },
	}
}

func newMinScore() Filter {
	return &thresholdFilter{
		name:      "min_score",
		threshold: func(s *State) *int { return s.MinScore },
		field:     func(p *talent.Profile) float64 { return p.Score },
	}
}

func newMinProjects() Filter {
	return &thresholdFilter{
		name:      "min_projects",
		threshold: func(s *State) *int { return s.MinProjects },
		field:     func(p *talent.Profile) float64 { return float64(p.CompletedProjects) },
	}
}

func (f *thresholdFilter) Name() string { return f.name }

func (f *thresholdFilter) Enabled(state *State) bool {
	return f.threshold(state) != nil
}

func (f *thresholdFilter) Apply(_ Deps, state *State, p *talent.Profiles) (*talent.Profiles, Step, error) {
	minimum := float64(*f.threshold(state))
	next, step := keep(p, func(profile *talent.Profile) bool {
		return f.field(profile) >= minimum
	})
	return next, step, nil
}

func (f *thresholdFilter) Status(state *State) Status {
	details := map[string]string{}
	if threshold := f.threshold(state); threshold != nil {
		details["minimum"] = strconv.Itoa(*threshold)
	}
	return Status{Name: f.name, Enabled: f.Enabled(state), Details: details}
}

type starredOnlyFilter struct{}

// newStarredOnly creates the step restricting results to starred profiles.
// The starred ids are owned by an external collaborator supplied via Deps.
func newStarredOnly() Filter { return &starredOnlyFilter{} }

func (f *starredOnlyFilter) Name() string { return "starred_only" }

func (f *starredOnlyFilter) Enabled(state *State) bool { return state.StarredOnly }

func (f *starredOnlyFilter) Apply(deps Deps, _ *State, p *talent.Profiles) (*talent.Profiles, Step, error) {
	if deps.Starred == nil {
		// No starred set wired means nothing can be starred.
		next, step := keep(p, func(*talent.Profile) bool { return false })
		return next, step, nil
	}

	next, step := keep(p, func(profile *talent.Profile) bool {
		return deps.Starred.Has(profile.ID)
	})
	return next, step, nil
}
