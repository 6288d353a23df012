package domain

import (
	"strings"
	"unicode"
)

// stopWords are dropped from keyword sets: articles, pronouns, auxiliaries,
// conjunctions and the most common prepositions.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the a an and or but nor so yet if then than as
		in on at to for of with by from into onto about over under up down out off
		is was are were be been being am
		have has had having do does did doing done
		will would could should may might must can shall
		i you he she it we they me him her us them
		my your his its our their mine yours ours theirs
		this that these those there here
		what which who whom whose
		not no just also very too all any
		other some such own same`) {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether w is in the stop-word list
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// KeywordSet is a set of lowercase keywords
type KeywordSet map[string]struct{}

// Has reports whether w is in the set
func (s KeywordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// ExtractKeywords lowercases text, blanks out punctuation, and keeps the
// tokens longer than one character that are not stop-words.
func ExtractKeywords(text string) KeywordSet {
	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	set := make(KeywordSet)
	for _, tok := range strings.Fields(cleaned) {
		if len([]rune(tok)) <= 1 || IsStopWord(tok) {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Score is the share of query keywords found in the candidate, 0 for an
// empty query. A short query fully contained in a long candidate scores 1.
func Score(query, candidate KeywordSet) float64 {
	if len(query) == 0 {
		return 0
	}
	matches := 0
	for w := range query {
		if candidate.Has(w) {
			matches++
		}
	}
	return float64(matches) / float64(len(query))
}
