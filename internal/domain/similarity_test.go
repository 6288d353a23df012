package domain

import (
	"fmt"
	"testing"
)

func TestRankSimilar(t *testing.T) {
	corpus := EntryMap{
		"2024-01-01": "We saw a blue whale near the harbor",
		"2024-01-02": "Nothing relevant happened today",
		"2024-01-03": "Dreamt about a whale again",
		"2024-01-04": "Wildcats roam the hills",
	}

	t.Run("keyword overlap ordering", func(t *testing.T) {
		got := RankSimilar("blue whale", corpus, "")
		if len(got) != 2 {
			t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
		}
		if got[0].Date != "2024-01-01" || got[0].Score != 1 {
			t.Errorf("unexpected first candidate %+v", got[0])
		}
		if got[1].Date != "2024-01-03" || got[1].Score != 0.5 {
			t.Errorf("unexpected second candidate %+v", got[1])
		}
	})

	t.Run("exclude date is skipped", func(t *testing.T) {
		got := RankSimilar("blue whale", corpus, "2024-01-01")
		if len(got) != 1 || got[0].Date != "2024-01-03" {
			t.Errorf("expected only 2024-01-03, got %+v", got)
		}
	})

	t.Run("substring boost", func(t *testing.T) {
		got := RankSimilar("cats", corpus, "")
		if len(got) != 1 {
			t.Fatalf("expected 1 candidate, got %+v", got)
		}
		if got[0].Date != "2024-01-04" || got[0].Score != SubstringBoost {
			t.Errorf("expected boosted wildcats entry, got %+v", got[0])
		}
	})

	t.Run("short query", func(t *testing.T) {
		if got := RankSimilar("wh", corpus, ""); len(got) != 0 {
			t.Errorf("expected no candidates, got %+v", got)
		}
	})

	t.Run("short query counts characters", func(t *testing.T) {
		accented := EntryMap{
			"2024-02-01": "Notes on éa",
			"2024-02-02": "Un bel été",
		}
		if got := RankSimilar("éa", accented, ""); len(got) != 0 {
			t.Errorf("expected no candidates for a two letter query, got %+v", got)
		}
		got := RankSimilar("été", accented, "")
		if len(got) != 1 || got[0].Date != "2024-02-02" {
			t.Errorf("expected the été entry, got %+v", got)
		}
	})

	t.Run("stop word query gets no boost", func(t *testing.T) {
		got := RankSimilar("the", corpus, "")
		if len(got) != 0 {
			t.Errorf("expected no candidates, got %+v", got)
		}
	})

	t.Run("empty corpus", func(t *testing.T) {
		if got := RankSimilar("blue whale", EntryMap{}, ""); len(got) != 0 {
			t.Errorf("expected no candidates, got %+v", got)
		}
	})
}

func TestRankSimilar_ThresholdIsExclusive(t *testing.T) {
	query := "alpha bravo charlie delta echo foxtrot golf hotel india juliet"
	corpus := EntryMap{
		"2024-01-01": "alpha",
		"2024-01-02": "alpha bravo",
	}

	got := RankSimilar(query, corpus, "")
	if len(got) != 1 || got[0].Date != "2024-01-02" {
		t.Errorf("expected only the 0.2 candidate, got %+v", got)
	}
}

func TestRankSimilar_CapAndTieBreak(t *testing.T) {
	corpus := make(EntryMap)
	for i := 1; i <= 8; i++ {
		corpus[fmt.Sprintf("2024-01-%02d", i)] = "apple pie for dessert"
	}

	got := RankSimilar("apple", corpus, "")
	if len(got) != MaxSimilar {
		t.Fatalf("expected %d candidates, got %d", MaxSimilar, len(got))
	}

	want := []string{"2024-01-08", "2024-01-07", "2024-01-06", "2024-01-05", "2024-01-04"}
	for i, c := range got {
		if c.Date != want[i] {
			t.Errorf("position %d: got %s, want %s", i, c.Date, want[i])
		}
	}
}

func TestRankSimilar_SortedByScore(t *testing.T) {
	corpus := EntryMap{
		"2024-01-01": "rain",
		"2024-01-02": "rain coffee",
		"2024-01-03": "rain coffee walk",
	}

	got := RankSimilar("rain coffee walk", corpus, "")
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("candidates not sorted by score: %+v", got)
		}
	}
	if len(got) != 3 || got[0].Date != "2024-01-03" {
		t.Errorf("unexpected ranking %+v", got)
	}
}

func TestRanker_MatchesRankSimilar(t *testing.T) {
	corpus := EntryMap{
		"2024-01-01": "long walk by the river",
		"2024-01-02": "river cleanup with friends",
		"2024-01-03": "quiet day",
	}
	r := NewRanker()

	for _, q := range []string{"river walk", "friends", "quiet", "xx"} {
		want := RankSimilar(q, corpus, "")
		got := r.Rank(q, corpus, "")
		if len(got) != len(want) {
			t.Fatalf("query %q: got %+v, want %+v", q, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("query %q position %d: got %+v, want %+v", q, i, got[i], want[i])
			}
		}
	}
}

func TestRanker_RefreshesChangedBodies(t *testing.T) {
	r := NewRanker()
	corpus := EntryMap{"2024-01-01": "mountain hike"}

	if got := r.Rank("mountain", corpus, ""); len(got) != 1 {
		t.Fatalf("expected a match before edit, got %+v", got)
	}

	corpus["2024-01-01"] = "beach day"
	if got := r.Rank("mountain", corpus, ""); len(got) != 0 {
		t.Errorf("expected stale keywords to be dropped, got %+v", got)
	}

	delete(corpus, "2024-01-01")
	r.Rank("beach", corpus, "")
	if len(r.cache) != 0 {
		t.Errorf("expected cache eviction, got %d entries", len(r.cache))
	}
}
