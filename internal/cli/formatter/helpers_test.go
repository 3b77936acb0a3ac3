package formatter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"10 days future", now.Add(10 * 24 * time.Hour), "In 10d"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestHumanDate(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Sep 30, 2022", HumanDate(time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Today", HumanDate(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanDate(now.AddDate(0, 0, -1), now))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", HumanTimestamp(now, now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Feb 1, 2026", HumanTimestamp(now.AddDate(0, 0, -6), now))
}

func TestDueStyled(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	soon := now.Add(24 * time.Hour)

	assert.Equal(t, "--", stripANSI(DueStyled(nil, now)))
	assert.Equal(t, "Tomorrow", stripANSI(DueStyled(&soon, now)))
}

func TestShortDate(t *testing.T) {
	d := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-15", ShortDate(&d))
	assert.Equal(t, "--", ShortDate(nil))
	assert.Equal(t, "--", ShortDate(&time.Time{}))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer title", 8, "a longe…"},
		{"héllo wörld", 5, "héll…"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.limit), "Truncate(%q, %d)", tt.in, tt.limit)
	}
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "--", OrDash("  "))
	assert.Equal(t, "x", OrDash("x"))
}

func TestKeyValues_AlignsLabels(t *testing.T) {
	got := stripANSI(KeyValues([][2]string{{"Name", "Ada"}, {"Tenant slug", "acme"}}))
	assert.Equal(t, "Name         Ada\nTenant slug  acme\n", got)
}

func TestErrorLine(t *testing.T) {
	assert.Equal(t, "Error: boom", stripANSI(ErrorLine(errors.New("boom"))))
	assert.Empty(t, ErrorLine(nil))
}

func TestRenderBox_UppercasesTitle(t *testing.T) {
	got := stripANSI(RenderBox("projects", "body"))
	assert.Contains(t, got, "PROJECTS")
	assert.Contains(t, got, "body")
	assert.Contains(t, got, "╭")
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "ISSUES\n──────", stripANSI(Header("Issues")))
}
