package ranking

import (
	"sort"

	"github.com/scribesearch/talent-scout/internal/talent"
)

// Order selects the ranking key for matched profiles.
type Order string

const (
	OrderRelevance  Order = "relevance"
	OrderScore      Order = "score"
	OrderExperience Order = "experience"
	OrderProjects   Order = "projects"
	OrderName       Order = "name"
)

// Orders lists every valid order, relevance first.
func Orders() []Order {
	return []Order{OrderRelevance, OrderScore, OrderExperience, OrderProjects, OrderName}
}

// Valid reports whether the order is one of the known keys.
func (o Order) Valid() bool {
	switch o {
	case OrderRelevance, OrderScore, OrderExperience, OrderProjects, OrderName:
		return true
	default:
		return false
	}
}

// Rank returns a new collection ordered by the requested key. Relevance keeps
// the matching engine's order untouched. All other keys sort stably, so equal
// elements retain their prior relative order. Unknown orders behave like
// relevance.
func Rank(profiles *talent.Profiles, order Order) *talent.Profiles {
	ranked := &talent.Profiles{Items: append([]*talent.Profile(nil), profiles.Items...)}

	var less func(a, b *talent.Profile) bool
	switch order {
	case OrderScore:
		less = func(a, b *talent.Profile) bool { return a.Score > b.Score }
	case OrderExperience:
		less = func(a, b *talent.Profile) bool { return a.YearsOfExperience > b.YearsOfExperience }
	case OrderProjects:
		less = func(a, b *talent.Profile) bool { return a.CompletedProjects > b.CompletedProjects }
	case OrderName:
		less = func(a, b *talent.Profile) bool { return a.Name < b.Name }
	default:
		return ranked
	}

	sort.SliceStable(ranked.Items, func(i, j int) bool {
		return less(ranked.Items[i], ranked.Items[j])
	})

	return ranked
}
