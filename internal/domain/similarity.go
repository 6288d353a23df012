package domain

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// MinQueryLength is the shortest query the ranker will score
	MinQueryLength = 3
	// MaxSimilar caps the number of ranked candidates
	MaxSimilar = 5
	// SubstringBoost is the floor applied when the query appears verbatim
	SubstringBoost = 0.8
	// MinSimilarity is the exclusive lower bound for a candidate to be kept
	MinSimilarity = 0.1
)

// Candidate is a ranked similar entry
type Candidate struct {
	Date  string  `json:"date"`
	Body  string  `json:"body"`
	Score float64 `json:"score"`
}

// RankSimilar ranks corpus entries against query text, skipping exclude
func RankSimilar(query string, corpus EntryMap, exclude string) []Candidate {
	return rank(query, corpus, exclude, func(_, body string) KeywordSet {
		return ExtractKeywords(body)
	})
}

func rank(query string, corpus EntryMap, exclude string, keywords func(date, body string) KeywordSet) []Candidate {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil
	}

	queryWords := ExtractKeywords(query)
	needle := strings.ToLower(strings.TrimSpace(query))
	// Pure stop-word queries never get the substring boost
	canBoost := len(queryWords) > 0

	var out []Candidate
	for date, body := range corpus {
		if date == exclude {
			continue
		}
		score := Score(queryWords, keywords(date, body))
		if canBoost && strings.Contains(strings.ToLower(body), needle) {
			score = max(SubstringBoost, score)
		}
		if score > MinSimilarity {
			out = append(out, Candidate{Date: date, Body: body, Score: score})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Date > out[j].Date
	})

	if len(out) > MaxSimilar {
		out = out[:MaxSimilar]
	}
	return out
}

// Ranker ranks like RankSimilar but memoizes corpus keyword sets, which
// change far less often than the query being typed.
type Ranker struct {
	mu    sync.Mutex
	cache map[string]cachedKeywords
}

type cachedKeywords struct {
	body  string
	words KeywordSet
}

// NewRanker creates a Ranker with an empty cache
func NewRanker() *Ranker {
	return &Ranker{cache: make(map[string]cachedKeywords)}
}

// Rank returns the top similar entries for query
func (r *Ranker) Rank(query string, corpus EntryMap, exclude string) []Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()

	for date := range r.cache {
		if _, ok := corpus[date]; !ok {
			delete(r.cache, date)
		}
	}

	return rank(query, corpus, exclude, func(date, body string) KeywordSet {
		if c, ok := r.cache[date]; ok && c.body == body {
			return c.words
		}
		words := ExtractKeywords(body)
		r.cache[date] = cachedKeywords{body: body, words: words}
		return words
	})
}
