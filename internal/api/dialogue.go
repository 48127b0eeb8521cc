package api

import (
	"context"
	"fmt"
)

// ChatRequest is the dialogue message that drives music generation.
type ChatRequest struct {
	DialogueID int64  `json:"dialogue_id,omitempty"`
	Message    string `json:"message"`
	Model      string `json:"model,omitempty"`
}

// Chat sends a dialogue message and waits for the synchronous reply.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (HistoryItem, error) {
	var reply HistoryItem
	if err := c.post(ctx, "/api/dialogues/chat", req, &reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// ChatTask submits a dialogue message as an asynchronous generation task.
func (c *Client) ChatTask(ctx context.Context, req ChatRequest) (*Task, error) {
	var task Task
	if err := c.post(ctx, "/api/dialogues/chat-task", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// FetchMusicTask polls a music-generation task.
func (c *Client) FetchMusicTask(ctx context.Context, taskID string) (*Task, error) {
	if taskID == "" {
		return nil, fmt.Errorf("缺少任务 ID")
	}
	var task Task
	if err := c.get(ctx, "/api/music/generate/"+taskID, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CoverRequest asks for an AI-generated cover image.
type CoverRequest struct {
	DialogueID  int64  `json:"dialogue_id,omitempty"`
	MusicFileID int64  `json:"music_file_id,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
}

// GenerateCoverForDialogue requests a cover for a dialogue's generated music.
func (c *Client) GenerateCoverForDialogue(ctx context.Context, req CoverRequest) (HistoryItem, error) {
	var result HistoryItem
	if err := c.post(ctx, "/api/dialogues/generate-cover", req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateCover requests a cover for a standalone music file.
func (c *Client) GenerateCover(ctx context.Context, req CoverRequest) (HistoryItem, error) {
	var result HistoryItem
	if err := c.post(ctx, "/api/music/generate-cover", req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ImitateTask submits a music-imitation task for an uploaded reference file.
func (c *Client) ImitateTask(ctx context.Context, body map[string]any) (*Task, error) {
	var task Task
	if err := c.post(ctx, "/api/music/imitate-task", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
