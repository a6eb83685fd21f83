package contently

import "fmt"

const optionsPath = "/api/v1/dropdown_options"

// Option is a value/label pair from a dropdown endpoint.
type Option struct {
	Value string `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
}

// SkillOption uses id/name field names upstream and is remapped to
// value/label by the vocabulary registry.
type SkillOption struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// DropdownOptions is the raw vocabulary payload of the platform.
type DropdownOptions struct {
	Skills        []SkillOption `json:"skills,omitempty"`
	StoryFormats  []Option      `json:"storyFormats,omitempty"`
	Topics        []Option      `json:"topics,omitempty"`
	Languages     []Option      `json:"languages,omitempty"`
	BrandProfiles []Option      `json:"brandProfiles,omitempty"`
}

func (c *Client) GetDropdownOptions() (*DropdownOptions, error) {
	url := fmt.Sprintf("%s%s", c.APIURL, optionsPath)

	var options DropdownOptions
	if err := c.getJSON(url, nil, &options); err != nil {
		return nil, err
	}

	return &options, nil
}
