package identify

import (
	"strconv"
	"strings"

	"linkarr/internal/guess"
)

// normalizedGuess is the typed form of a guess.Guess. List-or-scalar fields
// are flattened to slices exactly once here so the resolver never re-checks
// shape.
type normalizedGuess struct {
	mediaType string
	title     string
	year      int
	seasons   []int
	episodes  []int
	date      string
}

func normalizeGuess(g guess.Guess) normalizedGuess {
	n := normalizedGuess{
		mediaType: strings.ToLower(strings.TrimSpace(g.Type)),
		title:     strings.TrimSpace(g.Title),
		date:      strings.TrimSpace(g.Date),
		seasons:   intList(g.Season),
		episodes:  intList(g.Episode),
	}
	if g.Year > 0 {
		n.year = g.Year
	}
	return n
}

func (n normalizedGuess) season() (int, bool) {
	if len(n.seasons) == 0 {
		return 0, false
	}
	// A season list collapses to its first element.
	return n.seasons[0], true
}

// intList coerces a loosely-typed scalar-or-list value into a slice of
// non-negative ints, dropping anything unreadable.
func intList(value any) []int {
	switch v := value.(type) {
	case nil:
		return nil
	case int:
		return keepNonNegative(v)
	case int64:
		return keepNonNegative(int(v))
	case float64:
		return keepNonNegative(int(v))
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return keepNonNegative(n)
		}
		return nil
	case []int:
		out := make([]int, 0, len(v))
		for _, n := range v {
			out = append(out, keepNonNegative(n)...)
		}
		return out
	case []any:
		out := make([]int, 0, len(v))
		for _, item := range v {
			out = append(out, intList(item)...)
		}
		return out
	default:
		return nil
	}
}

func keepNonNegative(n int) []int {
	if n < 0 {
		return nil
	}
	return []int{n}
}
