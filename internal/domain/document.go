package domain

import (
	"regexp"
	"strings"
)

// Markdown header lines: "# 2024-01-31" (optional space after the hash)
var headerRegex = regexp.MustCompile(`(?m)^#\s*(\d{4}-\d{2}-\d{2})\r?$`)

// Parse converts document text into entries. Markdown date headers are tried
// first; when the document contains none, lines consisting of a raw date
// (YYYYMMDD, YYYY-MM-DD or YYYY/MM/DD) delimit the entries instead.
// Invalid dates and blank bodies are dropped; a repeated date keeps its last body.
func Parse(text string) EntryMap {
	if entries, ok := parseMarkdown(text); ok {
		return entries
	}
	return parseLineDated(text)
}

func parseMarkdown(text string) (EntryMap, bool) {
	locs := headerRegex.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil, false
	}

	entries := make(EntryMap)
	for i, loc := range locs {
		date := text[loc[2]:loc[3]]
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(text[loc[1]:end])
		if body == "" || !IsValidKey(date) {
			continue
		}
		entries[date] = body
	}
	return entries, true
}

func parseLineDated(text string) EntryMap {
	entries := make(EntryMap)

	var current string
	var lines []string
	flush := func() {
		if current == "" || len(lines) == 0 {
			return
		}
		key := NormalizeDateToken(current)
		if !IsValidKey(key) {
			return
		}
		if body := strings.TrimSpace(strings.Join(lines, "\n")); body != "" {
			entries[key] = body
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if IsDateToken(trimmed) {
			flush()
			current = trimmed
			lines = nil
			continue
		}
		if trimmed != "" && current != "" {
			lines = append(lines, trimmed)
		}
	}
	flush()

	return entries
}

// Serialize renders entries as a markdown document in ascending date order.
// Bodies containing their own "# YYYY-MM-DD" lines do not survive a round trip.
func Serialize(entries EntryMap) string {
	dates := entries.Dates()
	sections := make([]string, 0, len(dates))
	for _, date := range dates {
		sections = append(sections, "# "+date+"\n\n"+entries[date])
	}
	return strings.Join(sections, "\n\n")
}
