package domain

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want EntryMap
	}{
		{
			name: "markdown headers",
			text: "# 2024-01-01\n\nNew year.\n\n# 2024-01-02\n\nBack to work.\n",
			want: EntryMap{"2024-01-01": "New year.", "2024-01-02": "Back to work."},
		},
		{
			name: "preamble before first header is ignored",
			text: "My journal\n\n# 2024-01-01\nFirst",
			want: EntryMap{"2024-01-01": "First"},
		},
		{
			name: "header without space",
			text: "#2024-01-01\nTight",
			want: EntryMap{"2024-01-01": "Tight"},
		},
		{
			name: "multi line body keeps inner lines",
			text: "# 2024-01-01\nline one\n\nline two\n",
			want: EntryMap{"2024-01-01": "line one\n\nline two"},
		},
		{
			name: "empty body dropped",
			text: "# 2024-01-01\n\n# 2024-01-02\nkept",
			want: EntryMap{"2024-01-02": "kept"},
		},
		{
			name: "invalid header date dropped",
			text: "# 2024-02-30\nnope\n# 2024-03-01\nyes",
			want: EntryMap{"2024-03-01": "yes"},
		},
		{
			name: "last duplicate wins",
			text: "# 2024-01-01\nfirst\n# 2024-01-01\nsecond",
			want: EntryMap{"2024-01-01": "second"},
		},
		{
			name: "crlf line endings",
			text: "# 2024-01-01\r\nHello\r\n\r\n# 2024-01-02\r\nWorld\r\n",
			want: EntryMap{"2024-01-01": "Hello", "2024-01-02": "World"},
		},
		{
			name: "line dated mixed forms",
			text: "20240101\n  first line  \n\nsecond line\n2024/01/02\nthird\n2024-01-03\nfourth",
			want: EntryMap{
				"2024-01-01": "first line\nsecond line",
				"2024-01-02": "third",
				"2024-01-03": "fourth",
			},
		},
		{
			name: "line dated invalid date discarded",
			text: "20241301\nbad month\n20240102\ngood",
			want: EntryMap{"2024-01-02": "good"},
		},
		{
			name: "line dated text before first date ignored",
			text: "loose notes\n20240101\nentry",
			want: EntryMap{"2024-01-01": "entry"},
		},
		{
			name: "line dated crlf",
			text: "20240101\r\nhello\r\n",
			want: EntryMap{"2024-01-01": "hello"},
		},
		{
			name: "no dates at all",
			text: "just some text\nwith lines",
			want: EntryMap{},
		},
		{
			name: "empty document",
			text: "",
			want: EntryMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if !got.Equal(tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParse_MarkdownWinsOverLineDates(t *testing.T) {
	text := "# 2024-01-01\nbody\n20240105\nstill part of the body"
	got := Parse(text)

	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d: %#v", len(got), got)
	}
	if got["2024-01-01"] != "body\n20240105\nstill part of the body" {
		t.Errorf("unexpected body: %q", got["2024-01-01"])
	}
}

func TestSerialize(t *testing.T) {
	entries := EntryMap{
		"2024-01-02": "second",
		"2024-01-01": "first",
		"2023-12-31": "zeroth",
	}

	want := "# 2023-12-31\n\nzeroth\n\n# 2024-01-01\n\nfirst\n\n# 2024-01-02\n\nsecond"
	if got := Serialize(entries); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}

	if got := Serialize(EntryMap{}); got != "" {
		t.Errorf("Serialize(empty) = %q, want empty", got)
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	entries := EntryMap{
		"2024-01-01": "single line",
		"2024-02-29": "multi\nline\n\nwith blank",
		"2023-07-04": "punctuation! and #hashtags",
	}

	got := Parse(Serialize(entries))
	if !got.Equal(entries) {
		t.Errorf("round trip = %#v, want %#v", got, entries)
	}
}
