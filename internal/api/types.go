package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Profile is the loosely shaped user object returned by login and
// /api/profile. The backend has grown fields over time and older
// deployments omit some of them, so the profile is kept as a map and merged
// shallowly instead of being replaced wholesale.
type Profile map[string]any

func (p Profile) str(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// ID returns the user id as a string, tolerating numeric and string ids.
func (p Profile) ID() string {
	switch v := p["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	}
	return ""
}

// Username returns the username field when present.
func (p Profile) Username() string { return p.str("username") }

// Email returns the email field when present.
func (p Profile) Email() string { return p.str("email") }

// DisplayName picks the best available label for the user.
func (p Profile) DisplayName() string {
	for _, key := range []string{"name", "username", "email"} {
		if v := p.str(key); v != "" {
			return v
		}
	}
	return ""
}

// Merge returns a shallow union of p and other; values in other win.
// Neither argument is mutated.
func (p Profile) Merge(other Profile) Profile {
	merged := make(Profile, len(p)+len(other))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// LoginResult mirrors the token response of /api/login.
type LoginResult struct {
	Token     string  `json:"token"`
	TokenType string  `json:"token_type"`
	User      Profile `json:"user"`
}

// Work is a created audio artifact. The backend populates both the
// title/name and cover/cover_url pairs inconsistently across endpoints;
// normalization lives in the works container.
type Work struct {
	ID          int64       `json:"id"`
	MusicFileID int64       `json:"music_file_id"`
	Title       string      `json:"title"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Tags        string      `json:"tags"`
	Status      string      `json:"status"`
	Visibility  string      `json:"visibility"`
	Mood        string      `json:"mood"`
	Cover       string      `json:"cover"`
	CoverURL    string      `json:"cover_url"`
	AudioURL    string      `json:"audio_url"`
	URL         string      `json:"url"`
	LikeCount   int64       `json:"like_count"`
	PlayCount   int64       `json:"play_count"`
	Liked       bool        `json:"liked"`
	Author      *WorkAuthor `json:"author,omitempty"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	PublishedAt string      `json:"published_at"`
}

// WorkAuthor identifies the creator on public work payloads.
type WorkAuthor struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	Followers int64  `json:"followers"`
	Following int64  `json:"following"`
}

// Work visibility and status values.
const (
	VisibilityPublic   = "public"
	VisibilityUnlisted = "unlisted"
	VisibilityPrivate  = "private"

	WorkStatusDraft     = "draft"
	WorkStatusPublished = "published"
)

// HistoryItem is an opaque backend record. The client only shape-checks the
// surrounding payload; items render from whatever fields are present.
type HistoryItem map[string]any

// HistoryPage tolerates both payload shapes the backend has used: a bare
// list and an object wrapping the list under "items".
type HistoryPage struct {
	Total int
	Items []HistoryItem
}

// UnmarshalJSON implements the list-or-wrapped decoding.
func (p *HistoryPage) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Total int           `json:"total"`
		Items []HistoryItem `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		p.Total = wrapped.Total
		p.Items = wrapped.Items
		return nil
	}
	var list []HistoryItem
	if err := json.Unmarshal(data, &list); err == nil {
		p.Total = len(list)
		p.Items = list
		return nil
	}
	return fmt.Errorf("history payload is neither a list nor an items object")
}

// Task statuses used by the asynchronous generation and analysis endpoints.
const (
	TaskPending    = "pending"
	TaskProcessing = "processing"
	TaskCompleted  = "completed"
	TaskFailed     = "failed"
)

// Task mirrors the task records returned when submitting and polling
// asynchronous work. Submission responses carry task_id, detail responses
// carry id; Identifier hides the difference.
type Task struct {
	ID        string          `json:"id"`
	TaskID    string          `json:"task_id"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Result    json.RawMessage `json:"result"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// Identifier returns the task id regardless of payload shape.
func (t Task) Identifier() string {
	if t.TaskID != "" {
		return t.TaskID
	}
	return t.ID
}

// Done reports whether the task reached a terminal status.
func (t Task) Done() bool {
	return t.Status == TaskCompleted || t.Status == TaskFailed
}

// Failed reports whether the task terminated unsuccessfully.
func (t Task) Failed() bool { return t.Status == TaskFailed }

// PublicUser is the public profile returned by the social endpoints.
type PublicUser struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	Bio        string `json:"bio"`
	Followers  int64  `json:"followers"`
	Following  int64  `json:"following"`
	IsFollowed bool   `json:"is_followed"`
}

// SearchResponse mirrors /api/search.
type SearchResponse struct {
	Query string       `json:"query"`
	Songs []SongResult `json:"songs"`
	Users []PublicUser `json:"users"`
}

// SongResult is a search hit for a published work.
type SongResult struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	CoverURL   string `json:"cover_url"`
	AudioURL   string `json:"audio_url"`
	LikeCount  int64  `json:"like_count"`
	PlayCount  int64  `json:"play_count"`
	Tags       string `json:"tags"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name"`
	Liked      bool   `json:"liked"`
}

// ToggleResult is the like/follow toggle acknowledgement.
type ToggleResult struct {
	Liked    *bool `json:"liked"`
	Followed *bool `json:"followed"`
}
