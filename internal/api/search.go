package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Search runs a combined song and user search.
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	values := url.Values{}
	values.Set("q", query)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var result SearchResponse
	if err := c.get(ctx, "/api/search", values, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchPublicWork retrieves a published work for the song detail page.
func (c *Client) FetchPublicWork(ctx context.Context, id int64) (*Work, error) {
	var work Work
	if err := c.get(ctx, fmt.Sprintf("/api/works/public/%d", id), nil, &work); err != nil {
		return nil, err
	}
	return &work, nil
}

// FetchPublicWorksByUser lists a user's published works.
func (c *Client) FetchPublicWorksByUser(ctx context.Context, userID int64, limit int) ([]Work, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var works []Work
	if err := c.get(ctx, fmt.Sprintf("/api/works/public/by-user/%d", userID), values, &works); err != nil {
		return nil, err
	}
	return works, nil
}
