package format

import (
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the Telegram limit for one message.
const MaxMessageLength = 4096

const ellipsis = "…"

// SplitMessages joins lines into messages of at most limit characters. Lines
// are never split; a single line longer than limit is truncated with an
// ellipsis. Blank lines are dropped at the start of a message.
func SplitMessages(lines []string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}

	var (
		msgs   []string
		cur    []string
		curLen int
	)
	flush := func() {
		for len(cur) > 0 && cur[len(cur)-1] == "" {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			msgs = append(msgs, strings.Join(cur, "\n"))
		}
		cur, curLen = nil, 0
	}

	for _, line := range lines {
		if line == "" && len(cur) == 0 {
			continue
		}
		line = truncate(line, limit)
		n := utf8.RuneCountInString(line)
		add := n
		if len(cur) > 0 {
			add++
		}
		if curLen+add > limit {
			flush()
			if line == "" {
				continue
			}
			add = n
		}
		cur = append(cur, line)
		curLen += add
	}
	flush()
	return msgs
}

func truncate(line string, limit int) string {
	if utf8.RuneCountInString(line) <= limit {
		return line
	}
	runes := []rune(line)
	return string(runes[:limit-1]) + ellipsis
}
