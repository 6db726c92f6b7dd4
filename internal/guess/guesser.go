package guess

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// seasonEpisodeRe matches "S01E02" plus any run of extra episode numbers
	// ("S01E01E02", "S01E01-E02", "s01.e01").
	seasonEpisodeRe = regexp.MustCompile(`(?i)\bS(\d{1,2})((?:[\s._-]?E\d{1,3})+)`)
	episodeNumRe    = regexp.MustCompile(`(?i)E(\d{1,3})`)
	// altEpisodeRe matches "1x02" style numbering.
	altEpisodeRe = regexp.MustCompile(`\b(\d{1,2})x(\d{2,3})\b`)
	dateRe       = regexp.MustCompile(`\b(\d{4})[-._](\d{2})[-._](\d{2})\b`)
	yearRe       = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	parenYearRe  = regexp.MustCompile(`^\((?:19|20)\d{2}\)$`)

	titleCaser = cases.Title(language.Und)
)

// releaseNoise holds lowercase tokens that mark the start of release
// metadata; everything from the first noise token onward is not title.
var releaseNoise = map[string]struct{}{
	"480p": {}, "720p": {}, "1080p": {}, "2160p": {}, "4k": {},
	"x264": {}, "x265": {}, "h264": {}, "h265": {}, "hevc": {}, "av1": {},
	"bluray": {}, "blu-ray": {}, "bdrip": {}, "brrip": {}, "webrip": {},
	"web-dl": {}, "webdl": {}, "web": {}, "hdtv": {}, "dvdrip": {}, "hdrip": {},
	"remux": {}, "proper": {}, "repack": {}, "extended": {}, "unrated": {},
	"aac": {}, "ac3": {}, "dts": {}, "ddp5": {}, "atmos": {}, "10bit": {},
	"hdr": {}, "multi": {}, "internal": {}, "limited": {},
}

// Parse is the built-in Func implementation. It recognizes SxxEyy and NxNN
// episode numbering (including multi-episode runs), four-digit years, and
// full dates, and derives a display title from whatever precedes the first
// such marker.
func Parse(name string) Guess {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	var g Guess

	if m := dateRe.FindStringSubmatch(base); m != nil {
		g.Date = m[1] + "-" + m[2] + "-" + m[3]
	}

	if loc := seasonEpisodeRe.FindStringSubmatchIndex(base); loc != nil {
		season, _ := strconv.Atoi(base[loc[2]:loc[3]])
		episodes := parseEpisodeRun(base[loc[4]:loc[5]])
		g.Type = TypeEpisode
		g.Season = season
		g.Episode = scalarOrList(episodes)
		g.Title = deriveTitle(base[:loc[0]])
		if m := yearRe.FindStringSubmatch(base[:loc[0]]); m != nil {
			g.Year, _ = strconv.Atoi(m[1])
		}
		return g
	}

	if m := altEpisodeRe.FindStringSubmatchIndex(base); m != nil {
		season, _ := strconv.Atoi(base[m[2]:m[3]])
		episode, _ := strconv.Atoi(base[m[4]:m[5]])
		g.Type = TypeEpisode
		g.Season = season
		g.Episode = episode
		g.Title = deriveTitle(base[:m[0]])
		return g
	}

	if m := yearRe.FindStringSubmatchIndex(base); m != nil {
		// A bare year with no episode numbering reads as a movie release.
		g.Type = TypeMovie
		g.Year, _ = strconv.Atoi(base[m[2]:m[3]])
		g.Title = deriveTitle(base[:m[0]])
		if g.Title == "" {
			g.Type = TypeUnknown
			g.Year = 0
		}
		return g
	}

	g.Type = TypeUnknown
	g.Title = deriveTitle(base)
	return g
}

func parseEpisodeRun(run string) []int {
	matches := episodeNumRe.FindAllStringSubmatch(run, -1)
	episodes := make([]int, 0, len(matches))
	for _, m := range matches {
		if n, err := strconv.Atoi(m[1]); err == nil {
			episodes = append(episodes, n)
		}
	}
	return episodes
}

func scalarOrList(episodes []int) any {
	switch len(episodes) {
	case 0:
		return nil
	case 1:
		return episodes[0]
	default:
		return episodes
	}
}

// deriveTitle converts the pre-marker portion of a release name into a
// display title: separators become spaces, trailing release noise is cut,
// and dotted all-lowercase names get title-cased.
func deriveTitle(raw string) string {
	dotted := strings.ContainsAny(raw, "._")
	replaced := strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(raw)

	words := strings.Fields(replaced)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if _, noise := releaseNoise[strings.ToLower(word)]; noise {
			break
		}
		if parenYearRe.MatchString(word) {
			continue
		}
		kept = append(kept, word)
	}

	title := strings.TrimSpace(strings.Join(kept, " "))
	title = strings.Trim(title, "([{)]}")
	if title == "" {
		return ""
	}
	if dotted && title == strings.ToLower(title) {
		title = titleCaser.String(title)
	}
	return title
}
