package contently

import (
	"fmt"
	"net/http"
)

const favoritesPath = "/api/v1/favorites"

type favoriteRequest struct {
	TalentID int `json:"talentId"`
}

func (c *Client) AddFavorite(talentID int) error {
	url := fmt.Sprintf("%s%s", c.APIURL, favoritesPath)
	return c.sendJSON(http.MethodPost, url, &favoriteRequest{TalentID: talentID}, nil)
}

func (c *Client) RemoveFavorite(talentID int) error {
	url := fmt.Sprintf("%s%s", c.APIURL, favoritesPath)
	return c.sendJSON(http.MethodDelete, url, &favoriteRequest{TalentID: talentID}, nil)
}
