package session

import (
	"github.com/scribesearch/talent-scout/internal/filtering"
	"github.com/scribesearch/talent-scout/internal/interpret"
)

// ApplyDelta folds a partial update into the filter state and returns it.
// Only fields the delta actually carries are touched; interpretation
// accumulates and never clears, so selections union and thresholds replace.
func ApplyDelta(state *filtering.State, delta *interpret.Delta) *filtering.State {
	state.SelectedIndustries = union(state.SelectedIndustries, delta.Industries)
	state.SelectedSpecialties = union(state.SelectedSpecialties, delta.Specialties)
	state.SelectedSkills = union(state.SelectedSkills, delta.Skills)

	if delta.MinExperience != nil && *delta.MinExperience >= 0 {
		state.MinExperience = delta.MinExperience
	}
	if delta.MinScore != nil && *delta.MinScore >= 0 {
		state.MinScore = delta.MinScore
	}
	if delta.MinProjects != nil && *delta.MinProjects >= 0 {
		state.MinProjects = delta.MinProjects
	}

	if delta.ResultCount != nil && *delta.ResultCount >= 1 {
		state.ResultCount = *delta.ResultCount
	}

	if len(delta.ContentExamples) > 0 {
		state.ContentExamples = interpret.NormalizeContentExamples(delta.ContentExamples)
	}

	return state
}

// union appends the additions missing from existing, preserving order.
func union(existing, additions []string) []string {
	for _, add := range additions {
		found := false
		for _, have := range existing {
			if have == add {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, add)
		}
	}
	return existing
}
