package identify

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"linkarr/internal/guess"
	"linkarr/internal/logging"
	"linkarr/internal/textutil"
)

var (
	// seasonBatchRe matches residual season/batch annotations in folder
	// names, e.g. "The Show S01 - EP(1-12) [1080p]".
	seasonBatchRe = regexp.MustCompile(`(?i)\bS\d{1,2}\s*-\s*EP\s*\(`)
	// trailingYearRe matches a "(2019) ..." suffix in folder names.
	trailingYearRe = regexp.MustCompile(`\((?:19|20)\d{2}\)`)
	// fallbackEpisodeRe is the last-resort season/episode extraction applied
	// to the raw filename when the guesser came back empty-handed.
	fallbackEpisodeRe = regexp.MustCompile(`(?i)\bS(\d{1,2})E(\d{1,2})\b`)
)

// Request carries everything Resolve needs about one source file.
type Request struct {
	// CleanedName is the normalized filename handed to the guesser.
	CleanedName string
	// ParentFolder is the base name of the file's containing directory.
	ParentFolder string
	// RawFileName is the original, unnormalized filename.
	RawFileName string
	// Guess is the collaborator's loose parse of CleanedName.
	Guess guess.Guess
	// AtSourceRoot is true when the file sits directly under the source
	// root. Files in subdirectories bias toward episode classification:
	// loose folders almost always mean a show, whatever the guesser thinks.
	AtSourceRoot bool
}

// Resolver turns guesses plus folder context into validated identities.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver constructs a resolver. logger may be nil.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logging.NewComponentLogger(logger, "identify")}
}

// Resolve classifies a source file as movie or episode and returns its
// identity, or a rejection wrapping one of the sentinel errors.
func (r *Resolver) Resolve(req Request) (Identity, error) {
	g := normalizeGuess(req.Guess)

	switch {
	case g.mediaType == guess.TypeMovie:
		if g.title == "" {
			return Identity{}, fmt.Errorf("%w: %s", ErrNoTitle, req.RawFileName)
		}
		return NewMovie(g.title, g.year)

	case g.mediaType == guess.TypeEpisode || !req.AtSourceRoot:
		return r.resolveEpisode(req, g)

	default:
		return Identity{}, fmt.Errorf("%w: %s", ErrUnknownMediaType, req.RawFileName)
	}
}

func (r *Resolver) resolveEpisode(req Request, g normalizedGuess) (Identity, error) {
	// Folder names are a far more reliable show-title signal than per-file
	// names, so a folder-derived title always wins over the guesser's.
	title := ""
	if !req.AtSourceRoot {
		title = ShowTitleFromFolder(req.ParentFolder)
	}
	if title == "" {
		title = g.title
	}

	season, haveSeason := g.season()
	episodes := g.episodes

	if !haveSeason || len(episodes) == 0 {
		if s, e, found := fallbackSeasonEpisode(req.RawFileName); found {
			r.logger.Debug("filled season/episode from filename fallback",
				logging.String("file", req.RawFileName),
				logging.Int("season", s),
				logging.Int("episode", e))
			if !haveSeason {
				season, haveSeason = s, true
			}
			if len(episodes) == 0 {
				episodes = []int{e}
			}
		}
	}

	if title == "" || !haveSeason || len(episodes) == 0 {
		return Identity{}, fmt.Errorf("%w: %s", ErrIncompleteEpisodeInfo, req.RawFileName)
	}
	return NewEpisode(title, season, episodes)
}

// ShowTitleFromFolder derives a show title from a containing folder name:
// release tags are stripped, then everything from the first season/batch
// annotation or parenthesized year onward is dropped.
func ShowTitleFromFolder(folder string) string {
	cleaned := Normalize(folder)

	cut := len(cleaned)
	if loc := seasonBatchRe.FindStringIndex(cleaned); loc != nil && loc[0] < cut {
		cut = loc[0]
	}
	if loc := trailingYearRe.FindStringIndex(cleaned); loc != nil && loc[0] < cut {
		cut = loc[0]
	}

	title := textutil.CollapseWhitespace(cleaned[:cut])
	return strings.TrimRight(title, " -")
}

func fallbackSeasonEpisode(name string) (season, episode int, found bool) {
	m := fallbackEpisodeRe.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	season, _ = strconv.Atoi(m[1])
	episode, _ = strconv.Atoi(m[2])
	return season, episode, true
}
