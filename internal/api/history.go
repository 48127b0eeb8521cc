package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// HistoryQuery filters the history listing.
type HistoryQuery struct {
	Type  string // "dialogue" or "emotion"
	Limit int
}

// FetchHistory lists the caller's generation and analysis history. A 404
// means "no records yet" and yields an empty page.
func (c *Client) FetchHistory(ctx context.Context, query HistoryQuery) (HistoryPage, error) {
	values := url.Values{}
	if query.Type != "" {
		values.Set("type", query.Type)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	var page HistoryPage
	if err := c.get(ctx, "/api/history", values, &page); err != nil {
		if IsNotFound(err) {
			return HistoryPage{}, nil
		}
		return HistoryPage{}, err
	}
	return page, nil
}

// FetchDialogueDetail retrieves one dialogue history record with its messages.
func (c *Client) FetchDialogueDetail(ctx context.Context, id int64) (HistoryItem, error) {
	var item HistoryItem
	if err := c.get(ctx, fmt.Sprintf("/api/history/dialogues/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// FetchEmotionDetail retrieves one emotion-analysis history record.
func (c *Client) FetchEmotionDetail(ctx context.Context, id int64) (HistoryItem, error) {
	if id == 0 {
		return nil, fmt.Errorf("缺少情绪分析记录 ID")
	}
	var item HistoryItem
	if err := c.get(ctx, fmt.Sprintf("/api/history/emotions/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return item, nil
}
