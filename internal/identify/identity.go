package identify

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Rejection reasons. Resolve wraps these so callers can classify with
// errors.Is while still seeing the offending name in the message.
var (
	ErrNoTitle               = errors.New("no title")
	ErrIncompleteEpisodeInfo = errors.New("incomplete episode info")
	ErrUnknownMediaType      = errors.New("unknown media type")
)

// Kind discriminates the identity union.
type Kind int

const (
	KindMovie Kind = iota
	KindEpisode
)

// Identity is a validated media identity. Movie identities carry Title and
// optionally Year; episode identities carry Title, Season, and a non-empty
// ascending Episodes list.
type Identity struct {
	Kind     Kind
	Title    string
	Year     int
	Season   int
	Episodes []int
}

// NewMovie constructs a movie identity. Year zero means unknown.
func NewMovie(title string, year int) (Identity, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Identity{}, ErrNoTitle
	}
	if year < 0 {
		year = 0
	}
	return Identity{Kind: KindMovie, Title: title, Year: year}, nil
}

// NewEpisode constructs an episode identity. Episode numbers are
// deduplicated and sorted ascending; negatives are rejected.
func NewEpisode(title string, season int, episodes []int) (Identity, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Identity{}, ErrNoTitle
	}
	if season < 0 || len(episodes) == 0 {
		return Identity{}, ErrIncompleteEpisodeInfo
	}

	seen := make(map[int]struct{}, len(episodes))
	ordered := make([]int, 0, len(episodes))
	for _, ep := range episodes {
		if ep < 0 {
			return Identity{}, fmt.Errorf("%w: negative episode number %d", ErrIncompleteEpisodeInfo, ep)
		}
		if _, ok := seen[ep]; ok {
			continue
		}
		seen[ep] = struct{}{}
		ordered = append(ordered, ep)
	}
	sort.Ints(ordered)

	return Identity{Kind: KindEpisode, Title: title, Season: season, Episodes: ordered}, nil
}

// String renders a short diagnostic label, e.g. "Movie Name (2020)" or
// "Show Name S01E01-E02".
func (id Identity) String() string {
	switch id.Kind {
	case KindMovie:
		if id.Year > 0 {
			return fmt.Sprintf("%s (%d)", id.Title, id.Year)
		}
		return id.Title
	case KindEpisode:
		var b strings.Builder
		fmt.Fprintf(&b, "%s S%02d", id.Title, id.Season)
		for i, ep := range id.Episodes {
			if i > 0 {
				b.WriteByte('-')
			}
			fmt.Fprintf(&b, "E%02d", ep)
		}
		return b.String()
	default:
		return id.Title
	}
}
