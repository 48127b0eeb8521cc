package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// LoginRequiredMessage is the user-facing message shown when an operation
// needs a valid login. The request core also collapses the backend's raw
// 401 phrasing into it.
const LoginRequiredMessage = "请先进行登录"

// Error is a failed API call: the HTTP status plus a normalized,
// user-facing message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// DecodeError is a 2xx response whose non-empty body was not valid JSON.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string { return "解析响应失败" }

func (e *DecodeError) Unwrap() error { return e.err }

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// API error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is an API error with HTTP 404.
func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

// IsUnauthorized reports whether err is an API error with HTTP 401.
func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }

func normalizeError(status int, body []byte) *Error {
	message := extractMessage(body)
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	if status == http.StatusUnauthorized && isMissingTokenPhrase(message) {
		message = LoginRequiredMessage
	}
	return &Error{Status: status, Message: message}
}

func isMissingTokenPhrase(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "missing token") || strings.Contains(lower, "not authenticated")
}

// extractMessage pulls a human-readable message out of the known error
// payload shapes: message, error, or FastAPI-style detail (a plain string,
// a list of field-validation errors, or a field→message object). Anything
// unrecognized falls back to the raw body text.
func extractMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}
	var envelope struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return text
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	if msg := detailMessage(envelope.Detail); msg != "" {
		return msg
	}
	return text
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var fields []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &fields); err == nil {
		clauses := make([]string, 0, len(fields))
		for _, f := range fields {
			clauses = append(clauses, fieldClause(locField(f.Loc), f.Msg))
		}
		return joinClauses(clauses)
	}
	var byField map[string]any
	if err := json.Unmarshal(raw, &byField); err == nil {
		keys := make([]string, 0, len(byField))
		for k := range byField {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		clauses := make([]string, 0, len(keys))
		for _, k := range keys {
			clauses = append(clauses, fieldClause(k, fmt.Sprint(byField[k])))
		}
		return joinClauses(clauses)
	}
	return ""
}

// locContainers are the request-section markers FastAPI prepends to a
// validation location; they are not field names.
var locContainers = map[string]bool{
	"body":   true,
	"query":  true,
	"path":   true,
	"header": true,
	"cookie": true,
	"form":   true,
}

func locField(loc []any) string {
	for i := len(loc) - 1; i >= 0; i-- {
		s, ok := loc[i].(string)
		if !ok || locContainers[s] {
			continue
		}
		return s
	}
	return ""
}

var fieldNames = map[string]string{
	"password": "密码",
	"email":    "邮箱",
	"username": "用户名",
	"code":     "验证码",
	"name":     "名称",
	"title":    "标题",
	"file":     "文件",
	"bio":      "简介",
	"avatar":   "头像",
}

var validationMessages = map[string]string{
	"field required":                       "必填",
	"value is not a valid email address":   "邮箱格式不正确",
	"ensure this value has at least 6 characters": "长度不足",
}

func fieldClause(field, msg string) string {
	name := fieldNames[strings.ToLower(field)]
	if name == "" {
		name = field
	}
	text := validationMessages[strings.ToLower(msg)]
	if text == "" {
		text = msg
	}
	if name == "" {
		return text
	}
	return name + "：" + text
}

func joinClauses(clauses []string) string {
	seen := make(map[string]bool, len(clauses))
	out := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return strings.Join(out, "；")
}
