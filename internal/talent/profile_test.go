package talent

import "testing"

func testProfiles() *Profiles {
	return &Profiles{
		Items: []*Profile{
			{ID: 1, Name: "Ada", Role: "Writer", Skills: []string{"SEO", "Editing"}},
			{ID: 2, Name: "Ben", Role: "Writer", Skills: []string{"Copywriting"}},
			{ID: 3, Name: "Cora", Role: "Editor", Skills: []string{"SEO"}},
		},
	}
}

func TestKeepPreservesOrder(t *testing.T) {
	profiles := testProfiles()

	kept := profiles.Keep(func(p *Profile) bool {
		return HasAny(p.Skills, []string{"SEO"})
	})

	if kept.Len() != 2 {
		t.Fatalf("expected 2 profiles, got %d", kept.Len())
	}
	if kept.Items[0].ID != 1 || kept.Items[1].ID != 3 {
		t.Fatalf("expected ids [1 3], got %v", kept.IDs())
	}
	if profiles.Len() != 3 {
		t.Fatalf("original collection must not be mutated")
	}
}

func TestHead(t *testing.T) {
	profiles := testProfiles()

	if got := profiles.Head(2).Len(); got != 2 {
		t.Fatalf("expected 2 profiles, got %d", got)
	}
	if got := profiles.Head(10).Len(); got != 3 {
		t.Fatalf("expected full collection, got %d", got)
	}
	if got := profiles.Head(-1).Len(); got != 3 {
		t.Fatalf("negative n must return full collection, got %d", got)
	}
}

func TestFindByID(t *testing.T) {
	profiles := testProfiles()

	if p := profiles.FindByID(2); p == nil || p.Name != "Ben" {
		t.Fatalf("expected Ben, got %+v", p)
	}
	if p := profiles.FindByID(42); p != nil {
		t.Fatalf("expected nil for unknown id, got %+v", p)
	}
}

func TestHasAny(t *testing.T) {
	if !HasAny([]string{"a", "b"}, []string{"b", "c"}) {
		t.Fatalf("expected intersection")
	}
	if HasAny([]string{"a"}, []string{"b"}) {
		t.Fatalf("expected no intersection")
	}
	if HasAny(nil, []string{"a"}) {
		t.Fatalf("empty set cannot intersect")
	}
}
