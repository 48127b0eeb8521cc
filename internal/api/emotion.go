package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// EmotionAnalysis is the flattened result of an emotion analysis. The
// backend nests free-form details under extra and has shipped a "summry"
// typo at least once; normalization irons both out.
type EmotionAnalysis struct {
	AnalysisID  int64
	MusicFileID int64
	Emotion     string
	Confidence  float64
	Summary     string
	CreatedAt   string
	Extra       map[string]any
	Raw         map[string]any
}

// AnalyzeMusic runs a synchronous emotion analysis on an audio file.
func (c *Client) AnalyzeMusic(ctx context.Context, filename string, content io.Reader) (*EmotionAnalysis, error) {
	if content == nil {
		return nil, fmt.Errorf("请选择音频文件")
	}
	var raw map[string]any
	upload := &Upload{Filename: filename, Content: content}
	if err := c.post(ctx, "/api/emotion/analyze", upload, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("后端未返回数据")
	}
	analysis := normalizeAnalysis(raw)
	return &analysis, nil
}

// AnalyzeMusicTask submits an asynchronous emotion analysis and returns the
// task handle to poll.
func (c *Client) AnalyzeMusicTask(ctx context.Context, filename string, content io.Reader) (*Task, error) {
	if content == nil {
		return nil, fmt.Errorf("请选择音频文件")
	}
	var task Task
	upload := &Upload{Filename: filename, Content: content}
	if err := c.post(ctx, "/api/emotion/analyze-task", upload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// FetchEmotionTask polls an emotion-analysis task.
func (c *Client) FetchEmotionTask(ctx context.Context, taskID string) (*Task, error) {
	if taskID == "" {
		return nil, fmt.Errorf("缺少任务 ID")
	}
	var task Task
	if err := c.get(ctx, "/api/emotion/analyze-task/"+taskID, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func normalizeAnalysis(raw map[string]any) EmotionAnalysis {
	merged := map[string]any{}
	if extra, ok := raw["extra"].(map[string]any); ok {
		for k, v := range extra {
			merged[k] = v
		}
	} else {
		for k, v := range raw {
			merged[k] = v
		}
	}
	for _, key := range []string{"analysis_id", "music_file_id", "emotion", "confidence", "created_at", "summary"} {
		if v, ok := raw[key]; ok {
			merged[key] = v
		}
	}
	if _, ok := merged["summary"]; !ok {
		// older backends misspelled the field
		if v, ok := raw["summry"]; ok {
			merged["summary"] = v
		} else if v, ok := merged["summry"]; ok {
			merged["summary"] = v
		}
	}

	analysis := EmotionAnalysis{Extra: merged, Raw: raw}
	analysis.AnalysisID = toInt64(merged["analysis_id"])
	analysis.MusicFileID = toInt64(merged["music_file_id"])
	analysis.Confidence = toFloat64(merged["confidence"])
	if v, ok := merged["emotion"].(string); ok {
		analysis.Emotion = v
	}
	if v, ok := merged["summary"].(string); ok {
		analysis.Summary = v
	}
	if v, ok := merged["created_at"].(string); ok {
		analysis.CreatedAt = v
	}
	return analysis
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case json.Number:
		i, _ := n.Int64()
		return i
	}
	return 0
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	}
	return 0
}
