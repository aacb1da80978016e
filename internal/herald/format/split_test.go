package format

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessages(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		limit int
		want  []string
	}{
		{name: "empty", lines: nil, limit: 10, want: nil},
		{name: "single message", lines: []string{"a", "", "b"}, limit: 100, want: []string{"a\n\nb"}},
		{name: "leading blank dropped", lines: []string{"", "", "a"}, limit: 100, want: []string{"a"}},
		{name: "exact fit", lines: []string{"aaaa", "bbbb", "cccc"}, limit: 9, want: []string{"aaaa\nbbbb", "cccc"}},
		{name: "blank at boundary", lines: []string{"aaaa", "", "bbbb"}, limit: 5, want: []string{"aaaa", "bbbb"}},
		{name: "truncated line", lines: []string{"abcdef"}, limit: 4, want: []string{"abc…"}},
		{name: "runes not bytes", lines: []string{"ééé"}, limit: 3, want: []string{"ééé"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitMessages(tt.lines, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitMessages() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitMessages_KeepsLinesWhole(t *testing.T) {
	var lines []string
	for i := 0; i < 500; i++ {
		lines = append(lines, strings.Repeat("x", 37))
	}
	msgs := SplitMessages(lines, MaxMessageLength)
	if len(msgs) < 2 {
		t.Fatalf("expected several messages, got %d", len(msgs))
	}
	total := 0
	for _, m := range msgs {
		if n := utf8.RuneCountInString(m); n > MaxMessageLength {
			t.Errorf("message of %d runes exceeds limit", n)
		}
		for _, l := range strings.Split(m, "\n") {
			if len(l) != 37 {
				t.Errorf("line was split: %q", l)
			}
			total++
		}
	}
	if total != len(lines) {
		t.Errorf("got %d lines, want %d", total, len(lines))
	}
}
