// Package sidecar writes Kodi/Jellyfin-compatible NFO metadata files next to
// provisioned library links.
package sidecar

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"time"

	"linkarr/internal/fileutil"
	"linkarr/internal/identify"
	"linkarr/internal/library"
	"linkarr/internal/logging"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes" ?>` + "\n"

// movieNFO is the <movie> document scrapers read for films.
type movieNFO struct {
	XMLName   xml.Name `xml:"movie"`
	Title     string   `xml:"title"`
	Year      int      `xml:"year,omitempty"`
	Premiered string   `xml:"premiered,omitempty"`
}

// episodeNFO is the <episodedetails> document scrapers read for episodes.
type episodeNFO struct {
	XMLName xml.Name `xml:"episodedetails"`
	Title   string   `xml:"title"`
	Season  int      `xml:"season"`
	Episode int      `xml:"episode"`
	Aired   string   `xml:"aired,omitempty"`
}

// Writer emits NFO sidecars into library directories. Existing sidecars are
// overwritten unconditionally so metadata tracks the current identity.
type Writer struct {
	logger *slog.Logger
	dryRun bool
	now    func() time.Time
}

// NewWriter constructs a sidecar writer. logger may be nil.
func NewWriter(logger *slog.Logger, dryRun bool) *Writer {
	return &Writer{
		logger: logging.NewComponentLogger(logger, "sidecar"),
		dryRun: dryRun,
		now:    time.Now,
	}
}

// Write emits the sidecar files for one identity into dir. airDate is the
// guessed release date ("2006-01-02") and may be empty; when empty the date
// falls back to January 1 of the identity's year, then to today. Movies get
// one "<base>.nfo"; multi-episode files get one sidecar per episode number.
func (w *Writer) Write(dir string, id identify.Identity, airDate string) error {
	date := w.resolveDate(id, airDate)

	switch id.Kind {
	case identify.KindMovie:
		doc := movieNFO{Title: id.Title, Year: id.Year, Premiered: date}
		return w.writeDoc(dir, library.BaseName(id)+".nfo", doc)

	case identify.KindEpisode:
		for _, episode := range id.Episodes {
			doc := episodeNFO{
				Title:   id.Title,
				Season:  id.Season,
				Episode: episode,
				Aired:   date,
			}
			name := library.EpisodeBaseName(id, episode) + ".nfo"
			if err := w.writeDoc(dir, name, doc); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported identity kind %q", id.Kind)
	}
}

func (w *Writer) writeDoc(dir, name string, doc any) error {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode nfo: %w", err)
	}
	data := append([]byte(xmlHeader), body...)
	data = append(data, '\n')

	if w.dryRun {
		w.logger.Debug("skipping sidecar write in dry run",
			logging.String("file", name))
		return nil
	}
	if err := fileutil.WriteFileAtomic(dir, name, data); err != nil {
		return fmt.Errorf("write nfo: %w", err)
	}
	w.logger.Debug("wrote sidecar",
		logging.String("dir", dir),
		logging.String("file", name))
	return nil
}

func (w *Writer) resolveDate(id identify.Identity, airDate string) string {
	if airDate != "" {
		return airDate
	}
	if id.Year > 0 {
		return fmt.Sprintf("%04d-01-01", id.Year)
	}
	return w.now().Format("2006-01-02")
}
