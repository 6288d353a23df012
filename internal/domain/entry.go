package domain

import (
	"sort"
	"strings"
)

// EntryMap maps canonical date keys to entry bodies. Absent keys mean no
// entry; bodies are never stored empty.
type EntryMap map[string]string

// Entry is a single dated journal entry
type Entry struct {
	Date string `json:"date"`
	Body string `json:"body"`
}

// Clone returns an independent copy of m
func (m EntryMap) Clone() EntryMap {
	out := make(EntryMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Put stores body under date, deleting the key when body is blank.
// It reports whether the map changed.
func (m EntryMap) Put(date, body string) bool {
	body = strings.TrimSpace(body)
	prev, existed := m[date]
	if body == "" {
		if !existed {
			return false
		}
		delete(m, date)
		return true
	}
	if existed && prev == body {
		return false
	}
	m[date] = body
	return true
}

// Merge copies every entry of other into m, overwriting same-date entries
func (m EntryMap) Merge(other EntryMap) {
	for k, v := range other {
		m[k] = v
	}
}

// Dates returns the keys in ascending order
func (m EntryMap) Dates() []string {
	dates := make([]string, 0, len(m))
	for k := range m {
		dates = append(dates, k)
	}
	sort.Strings(dates)
	return dates
}

// Equal reports whether m and other hold the same entries
func (m EntryMap) Equal(other EntryMap) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// WordCount counts whitespace-separated tokens
func WordCount(body string) int {
	return len(strings.Fields(body))
}

// ActivityLevel buckets an entry body into a 0-4 heat map level
func ActivityLevel(body string) int {
	if strings.TrimSpace(body) == "" {
		return 0
	}
	words := WordCount(body)
	switch {
	case words >= 100:
		return 4
	case words >= 50:
		return 3
	case words >= 20:
		return 2
	default:
		return 1
	}
}

// Truncate shortens text to maxLen runes, appending an ellipsis
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
