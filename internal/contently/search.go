package contently

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/scribesearch/talent-scout/internal/talent"
)

const searchPath = "/api/v1/talent_requests"

// SearchCriteria is the talent request payload. Content examples must already
// be normalized by the caller.
type SearchCriteria struct {
	Name            string   `json:"name,omitempty"`
	Description     string   `json:"description,omitempty"`
	BrandProfileID  int      `json:"brand_profile_id,omitempty"`
	StoryFormat     string   `json:"story_format,omitempty"`
	ContentExamples []string `json:"content_examples,omitempty"`
	LanguageID      int      `json:"language_id,omitempty"`
	TopicIDs        []string `json:"topic_ids,omitempty"`
	SkillIDs        []string `json:"skill_ids,omitempty"`
	NeededBy        string   `json:"needed_by,omitempty"`
	BudgetRangeMin  int      `json:"budget_range_min,omitempty"`
	BudgetRangeMax  int      `json:"budget_range_max,omitempty"`
}

type searchRequest struct {
	TalentRequest *SearchCriteria `json:"talent_request"`
}

type searchResponse struct {
	ID    any              `json:"id"`
	Items []map[string]any `json:"items"`
}

// Search creates a talent request and fetches the matched profiles back. The
// platform owns relevance of the returned order; the local engines only narrow
// and reorder it.
func (c *Client) Search(criteria *SearchCriteria) (*talent.Profiles, error) {
	if criteria.NeededBy == "" {
		criteria.NeededBy = time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	}

	apiURLSearch := fmt.Sprintf("%s%s", c.APIURL, searchPath)

	var created searchResponse
	if err := c.sendJSON("POST", apiURLSearch, &searchRequest{TalentRequest: criteria}, &created); err != nil {
		return nil, fmt.Errorf("create talent request: %w", err)
	}

	var fetched searchResponse
	requestURL := fmt.Sprintf("%s/%v", apiURLSearch, created.ID)
	if err := c.getJSON(requestURL, nil, &fetched); err != nil {
		return nil, fmt.Errorf("fetch talent request: %w", err)
	}

	var profiles []*talent.Profile
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &profiles,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("building profile decoder: %w", err)
	}
	if err := decoder.Decode(fetched.Items); err != nil {
		return nil, fmt.Errorf("decoding profiles: %w", err)
	}

	return &talent.Profiles{Items: profiles}, nil
}
