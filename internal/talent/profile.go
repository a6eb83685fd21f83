package talent

import (
	"encoding/json"
	"fmt"
	"os"
)

type Profiles struct {
	Items []*Profile
}

// Profile is a single talent profile as returned by the platform. The search
// core treats it as read-only.
type Profile struct {
	ID                int      `json:"id,omitempty"`
	Name              string   `json:"name,omitempty"`
	Role              string   `json:"role,omitempty"`
	Industries        []string `json:"industries,omitempty"`
	Specialties       []string `json:"specialties,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	YearsOfExperience int      `json:"years_of_experience,omitempty"`
	Score             float64  `json:"score,omitempty"`
	CompletedProjects int      `json:"completed_projects,omitempty"`
	Bio               string   `json:"bio,omitempty"`
	SampleWritings    []struct {
		Title   string `json:"title,omitempty"`
		Excerpt string `json:"excerpt,omitempty"`
	} `json:"sample_writings,omitempty"`
}

func (p *Profiles) Len() int {
	return len(p.Items)
}

func (p *Profiles) FindByID(id int) *Profile {
	for _, profile := range p.Items {
		if profile.ID == id {
			return profile
		}
	}
	return nil
}

func (p *Profiles) IDs() []int {
	ids := make([]int, 0, len(p.Items))
	for _, profile := range p.Items {
		ids = append(ids, profile.ID)
	}
	return ids
}

// Keep returns a new collection holding only the profiles the predicate
// accepts, preserving the original order.
func (p *Profiles) Keep(pred func(*Profile) bool) *Profiles {
	kept := make([]*Profile, 0, len(p.Items))
	for _, profile := range p.Items {
		if pred(profile) {
			kept = append(kept, profile)
		}
	}
	return &Profiles{Items: kept}
}

// Head returns a new collection with at most n leading profiles.
func (p *Profiles) Head(n int) *Profiles {
	if n < 0 || n >= len(p.Items) {
		return &Profiles{Items: p.Items}
	}
	return &Profiles{Items: p.Items[:n]}
}

func (p *Profiles) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "talent_profiles_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Report by role.
func (p *Profiles) ReportByRole() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, profile := range p.Items {
		key := profile.Role
		if key == "" {
			key = "unspecified"
		}
		report[key] = append(report[key], map[string]string{
			"name":       profile.Name,
			"score":      fmt.Sprintf("%.1f", profile.Score),
			"experience": fmt.Sprintf("%d years", profile.YearsOfExperience),
			"projects":   fmt.Sprintf("%d", profile.CompletedProjects),
			"bio":        profile.Bio,
		})
	}
	return report
}

// HasAny reports whether set contains at least one of the wanted values.
func HasAny(set []string, wanted []string) bool {
	for _, w := range wanted {
		for _, s := range set {
			if s == w {
				return true
			}
		}
	}
	return false
}
