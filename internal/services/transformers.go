package services

import (
	"regexp"
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
)

var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9.]+$`)

const maxTitleLen = 64

// ParseTitles splits a comma-separated tag list. Blank entries are dropped
// and duplicates (case-insensitive) keep their first spelling.
func ParseTitles(raw string) []string {
	var titles []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		title := strings.TrimSpace(part)
		if title == "" || len(title) > maxTitleLen {
			continue
		}
		key := strings.ToLower(title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}

// FormatTitles is the inverse of ParseTitles.
func FormatTitles(tags []models.Tag) string {
	titles := make([]string, len(tags))
	for i, t := range tags {
		titles[i] = t.Title
	}
	return strings.Join(titles, ", ")
}

// ParseNicknames splits a comma-separated nickname list, skipping entries
// that are not valid nicknames.
func ParseNicknames(raw string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if !ValidNickname(name) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func ValidNickname(name string) bool {
	return len(name) <= 40 && nicknamePattern.MatchString(name)
}
