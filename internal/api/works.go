package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
)

// WorksQuery filters the works listing.
type WorksQuery struct {
	UserID string
	Status string
	Limit  int
}

// FetchWorks lists the caller's works. A backend 404 means "no works yet"
// and is folded into an empty slice.
func (c *Client) FetchWorks(ctx context.Context, query WorksQuery) ([]Work, error) {
	values := url.Values{}
	if query.UserID != "" {
		values.Set("userId", query.UserID)
	}
	if query.Status != "" {
		values.Set("status", query.Status)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	var works []Work
	if err := c.get(ctx, "/api/works", values, &works); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return works, nil
}

// WorkDraft is the quick-save payload. Only MusicFileID is required; the
// backend fills the rest from the generated file.
type WorkDraft struct {
	MusicFileID int64  `json:"music_file_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
	Mood        string `json:"mood,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	Status      string `json:"status,omitempty"`
}

// CreateWork saves a generated music file as a work.
func (c *Client) CreateWork(ctx context.Context, draft WorkDraft) (*Work, error) {
	if draft.MusicFileID == 0 {
		return nil, fmt.Errorf("缺少音乐文件 ID")
	}
	var work Work
	if err := c.post(ctx, "/api/works/quick-save", draft, &work); err != nil {
		return nil, err
	}
	return &work, nil
}

// UpdateWork applies a partial update to a work.
func (c *Client) UpdateWork(ctx context.Context, id int64, fields map[string]any) (*Work, error) {
	var work Work
	if err := c.put(ctx, fmt.Sprintf("/api/works/%d", id), fields, &work); err != nil {
		return nil, err
	}
	return &work, nil
}

// DeleteWork removes a work.
func (c *Client) DeleteWork(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/works/%d", id), nil)
}

// UploadWorkCover uploads a cover image and returns its stored URL.
func (c *Client) UploadWorkCover(ctx context.Context, filename string, content io.Reader) (string, error) {
	if content == nil {
		return "", fmt.Errorf("请选择封面文件")
	}
	var result struct {
		CoverURL string `json:"cover_url"`
		URL      string `json:"url"`
	}
	upload := &Upload{Filename: filename, Content: content}
	if err := c.post(ctx, "/api/works/upload-cover", upload, &result); err != nil {
		return "", err
	}
	if result.CoverURL != "" {
		return result.CoverURL, nil
	}
	return result.URL, nil
}

// RecordWorkPlay reports a playback event for the hot-songs ranking. It is
// best-effort by contract; callers are expected to ignore failures.
func (c *Client) RecordWorkPlay(ctx context.Context, id int64, source string) error {
	body := map[string]string{}
	if source != "" {
		body["source"] = source
	}
	return c.post(ctx, fmt.Sprintf("/api/works/%d/play", id), body, nil)
}
