package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Subtitle is a subtitle sidecar found next to a media file. LangTag holds
// the dotted segment between the media base name and the extension ("en",
// "en.forced"), or "" for a direct match.
type Subtitle struct {
	Path    string
	LangTag string
	Ext     string
}

// FindSubtitles locates subtitle files sharing mediaPath's base name in its
// immediate directory. No recursion. Two match classes: the exact base name
// with a subtitle extension, and the base name followed by a dotted tag.
// Results are deduplicated and ordered by extension then filename so output
// is deterministic.
func FindSubtitles(mediaPath string, isSubtitleExt func(string) bool) ([]Subtitle, error) {
	dir := filepath.Dir(mediaPath)
	mediaName := filepath.Base(mediaPath)
	base := strings.TrimSuffix(mediaName, filepath.Ext(mediaName))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var found []Subtitle
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if !isSubtitleExt(ext) {
			continue
		}

		stem := strings.TrimSuffix(name, ext)
		var tag string
		switch {
		case stem == base:
			tag = ""
		case strings.HasPrefix(stem, base+"."):
			tag = stem[len(base)+1:]
			if tag == "" {
				continue
			}
		default:
			continue
		}

		path := filepath.Join(dir, name)
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		found = append(found, Subtitle{Path: path, LangTag: tag, Ext: ext})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Ext != found[j].Ext {
			return found[i].Ext < found[j].Ext
		}
		return found[i].Path < found[j].Path
	})
	return found, nil
}
