package api

import (
	"context"
	"net/url"
	"strconv"
)

// FetchHotSongs lists the most played public works for the home feed.
func (c *Client) FetchHotSongs(ctx context.Context, limit int) ([]Work, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var works []Work
	if err := c.get(ctx, "/api/ui/hot-songs", values, &works); err != nil {
		return nil, err
	}
	return works, nil
}

// FetchRecommendedCreators lists creators suggested on the home feed.
func (c *Client) FetchRecommendedCreators(ctx context.Context, limit int) ([]PublicUser, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var users []PublicUser
	if err := c.get(ctx, "/api/ui/recommended-creators", values, &users); err != nil {
		return nil, err
	}
	return users, nil
}
