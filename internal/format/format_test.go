package format

import (
	"testing"
	"time"
)

func TestBeijingTime_NaiveTimestampsAreUTC(t *testing.T) {
	naive := BeijingTime("2024-01-01T00:00:00")
	zoned := BeijingTime("2024-01-01T00:00:00Z")
	if naive != zoned {
		t.Fatalf("naive %q != zoned %q", naive, zoned)
	}
	if naive != "2024/01/01 08:00:00" {
		t.Fatalf("BeijingTime = %q, want 2024/01/01 08:00:00", naive)
	}
}

func TestBeijingTime_Layouts(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-06-01T12:30:45+08:00", "2024/06/01 12:30:45"},
		{"2024-06-01 04:30:45", "2024/06/01 12:30:45"},
		{"2024-06-01T04:30:45.123456", "2024/06/01 12:30:45"},
		{"", ""},
		{"not a date", "not a date"},
	}
	for _, tc := range cases {
		if got := BeijingTime(tc.in); got != tc.want {
			t.Fatalf("BeijingTime(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBeijingDateAndClock(t *testing.T) {
	if got := BeijingDate("2024-01-01T00:00:00Z"); got != "2024/01/01" {
		t.Fatalf("BeijingDate = %q", got)
	}
	if got := BeijingClock("2024-01-01T00:00:00Z"); got != "08:00:00" {
		t.Fatalf("BeijingClock = %q", got)
	}
}

func TestClock(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{65 * time.Second, "1:05"},
		{3723 * time.Second, "1:02:03"},
		{-5 * time.Second, "0:00"},
	}
	for _, tc := range cases {
		if got := Clock(tc.in); got != tc.want {
			t.Fatalf("Clock(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	origin := "https://music.example.com"
	cases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"https://cdn.example.com/a.mp3", "https://cdn.example.com/a.mp3"},
		{"HTTP://cdn.example.com/a.mp3", "HTTP://cdn.example.com/a.mp3"},
		{"data:image/png;base64,xyz", "data:image/png;base64,xyz"},
		{"blob:abc", "blob:abc"},
		{"/static/covers/1.png", "https://music.example.com/static/covers/1.png"},
		{"media/1.mp3", "https://music.example.com/media/1.mp3"},
	}
	for _, tc := range cases {
		if got := AbsoluteURL(origin, tc.raw); got != tc.want {
			t.Fatalf("AbsoluteURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}

	// /api suffix on the origin is stripped for media assets.
	if got := AbsoluteURL("https://music.example.com/api/", "/static/a.png"); got != "https://music.example.com/static/a.png" {
		t.Fatalf("AbsoluteURL with /api origin = %q", got)
	}
}
