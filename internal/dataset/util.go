package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// answerIndex normalizes an answer key into a zero-based index into choices.
// Accepts zero-based numbers, one-based numbers that overflow the zero-based
// range, letter labels (A-D style), and exact choice text.
func answerIndex(answer any, choices []string) (int, error) {
	max := len(choices)
	if max == 0 {
		return -1, errors.New("no choices")
	}
	if max > 26 {
		max = 26
	}

	switch v := answer.(type) {
	case int:
		return normalizeAnswerIndex(v, max)
	case int64:
		return normalizeAnswerIndex(int(v), max)
	case float64:
		return normalizeAnswerIndex(int(v), max)
	case string:
		return parseAnswerString(v, choices, max)
	default:
		return -1, fmt.Errorf("unsupported answer type %T", answer)
	}
}

func normalizeAnswerIndex(idx int, max int) (int, error) {
	switch {
	case idx >= 0 && idx < max:
		return idx, nil
	case idx >= 1 && idx <= max:
		return idx - 1, nil
	default:
		return -1, fmt.Errorf("answer out of range (got %d, max %d)", idx, max)
	}
}

func parseAnswerString(s string, choices []string, max int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1, errors.New("empty answer")
	}

	if len(s) == 1 {
		c := s[0]
		if c >= 'a' && c <= 'z' {
			c = c - 'a' + 'A'
		}
		if c >= 'A' && c <= 'Z' {
			idx := int(c - 'A')
			if idx >= 0 && idx < max {
				return idx, nil
			}
		}
	}

	if n, err := strconv.Atoi(s); err == nil {
		return normalizeAnswerIndex(n, max)
	}

	needle := strings.ToLower(s)
	for i, c := range choices {
		if i >= max {
			break
		}
		if strings.ToLower(strings.TrimSpace(c)) == needle {
			return i, nil
		}
	}

	return -1, fmt.Errorf("could not parse answer %q", s)
}

func compactStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func takeFirstN[T any](in []T, n int) []T {
	if n <= 0 || n >= len(in) {
		return in
	}
	out := make([]T, 0, n)
	return append(out, in[:n]...)
}
