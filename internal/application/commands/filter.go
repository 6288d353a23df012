package commands

import (
	"sort"
	"strings"

	"journey/internal/ports"
)

// ScoredFile wraps a discovered file with a relevance score
type ScoredFile struct {
	ports.DiscoveredFile
	Score int
}

// Match tiers. A contiguous hit always outranks a scattered one.
const (
	scorePrefix   = 150
	scoreSegment  = 120
	scoreContains = 100
)

// FuzzyScore rates how well target matches query, case-insensitively.
// Zero means no match.
func FuzzyScore(target, query string) int {
	t := strings.ToLower(target)
	q := strings.ToLower(query)
	if q == "" {
		return 0
	}

	best := 0
	for from := 0; ; {
		i := strings.Index(t[from:], q)
		if i < 0 {
			break
		}
		i += from
		switch {
		case i == 0:
			return scorePrefix
		case isSeparator(rune(t[i-1])):
			best = scoreSegment
		default:
			best = max(best, scoreContains)
		}
		from = i + 1
	}
	if best > 0 {
		return best
	}
	return scatteredScore([]rune(t), []rune(q))
}

// scatteredScore requires every query rune to appear in order and rewards
// runs and matches at the start of a path segment
func scatteredScore(t, q []rune) int {
	score, qi, prev := 0, 0, -2
	for i := 0; i < len(t) && qi < len(q); i++ {
		if t[i] != q[qi] {
			continue
		}
		score++
		if prev == i-1 {
			score += 10
		}
		if i == 0 || isSeparator(t[i-1]) {
			score += 12
		}
		prev = i
		qi++
	}
	if qi < len(q) {
		return 0
	}
	return min(score, scoreContains-1)
}

func isSeparator(r rune) bool {
	switch r {
	case '/', ' ', '.', '-', '_':
		return true
	default:
		return false
	}
}

// FilterFiles narrows discovered files to those matching query, best
// first. An empty query keeps every file in its original order.
func FilterFiles(files []ports.DiscoveredFile, query string) []ScoredFile {
	query = strings.TrimSpace(query)
	scored := make([]ScoredFile, 0, len(files))

	for _, f := range files {
		if query == "" {
			scored = append(scored, ScoredFile{DiscoveredFile: f})
			continue
		}
		best := max(FuzzyScore(f.Name, query), FuzzyScore(f.RelPath, query))
		if best > 0 {
			scored = append(scored, ScoredFile{DiscoveredFile: f, Score: best})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
