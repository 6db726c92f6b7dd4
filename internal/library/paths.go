package library

import (
	"fmt"
	"path/filepath"
	"strings"

	"linkarr/internal/identify"
	"linkarr/internal/textutil"
)

// Location is a computed destination: a library folder and a filename in it.
type Location struct {
	Dir      string
	Filename string
}

// Path joins the folder and filename.
func (l Location) Path() string {
	return filepath.Join(l.Dir, l.Filename)
}

// PathBuilder maps identities to destination locations. It is pure: no
// filesystem access, same input always yields the same output.
type PathBuilder struct {
	moviesRoot string
	tvRoot     string
}

// NewPathBuilder constructs a builder over the movies and TV roots.
func NewPathBuilder(moviesRoot, tvRoot string) *PathBuilder {
	return &PathBuilder{moviesRoot: moviesRoot, tvRoot: tvRoot}
}

// Locate returns the destination for an identity's main media file. ext keeps
// its leading dot.
func (b *PathBuilder) Locate(id identify.Identity, ext string) Location {
	base := BaseName(id)
	switch id.Kind {
	case identify.KindEpisode:
		return Location{
			Dir:      filepath.Join(b.tvRoot, sanitize(id.Title), fmt.Sprintf("Season %02d", id.Season)),
			Filename: base + ext,
		}
	default:
		return Location{
			Dir:      filepath.Join(b.moviesRoot, base),
			Filename: base + ext,
		}
	}
}

// SubtitleLocation returns the destination for a subtitle belonging to the
// identity: same folder as the media file, base name plus the optional
// language tag and the subtitle extension.
func (b *PathBuilder) SubtitleLocation(id identify.Identity, mediaExt, langTag, subExt string) Location {
	loc := b.Locate(id, mediaExt)
	name := BaseName(id)
	if langTag != "" {
		name += "." + langTag
	}
	loc.Filename = name + subExt
	return loc
}

// BaseName renders an identity's canonical file base name (no extension):
// "Movie Name (2020)" or "Show Name - S01E01-E02". A movie with unknown year
// renders without the parenthetical.
func BaseName(id identify.Identity) string {
	switch id.Kind {
	case identify.KindEpisode:
		var b strings.Builder
		fmt.Fprintf(&b, "%s - S%02d", sanitize(id.Title), id.Season)
		for i, ep := range id.Episodes {
			if i > 0 {
				b.WriteByte('-')
			}
			fmt.Fprintf(&b, "E%02d", ep)
		}
		return b.String()
	default:
		if id.Year > 0 {
			return fmt.Sprintf("%s (%d)", sanitize(id.Title), id.Year)
		}
		return sanitize(id.Title)
	}
}

// EpisodeBaseName renders the base name for a single episode of an identity,
// used for per-episode sidecars of multi-episode files.
func EpisodeBaseName(id identify.Identity, episode int) string {
	return fmt.Sprintf("%s - S%02dE%02d", sanitize(id.Title), id.Season, episode)
}

func sanitize(title string) string {
	return textutil.SanitizeFileName(title)
}
