// Package scan runs the end-to-end organizing pass: sweep the library,
// enumerate candidate source files, identify each one, and provision the
// symlinks and sidecars that make up the library tree.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"linkarr/internal/config"
	"linkarr/internal/guess"
	"linkarr/internal/identify"
	"linkarr/internal/library"
	"linkarr/internal/linker"
	"linkarr/internal/logging"
	"linkarr/internal/sidecar"
	"linkarr/internal/sweep"
)

// FileRef is one candidate media file discovered under the source root.
type FileRef struct {
	Path         string
	Ext          string
	Dir          string
	ParentName   string
	ModTime      time.Time
	AtSourceRoot bool
}

// Record is the outcome of processing one source file.
type Record struct {
	Source      string
	Destination string
	Outcome     linker.Outcome
	Subtitles   int
	Err         error
}

// Rejected reports whether the file was skipped because no identity could be
// resolved, as opposed to failing mid-provision.
func (r Record) Rejected() bool {
	return r.Err != nil && r.Destination == ""
}

// Report summarizes one full pass.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Sweep    sweep.Result
	Records  []Record
}

// Counts tallies records per linker outcome plus rejections and errors.
func (r *Report) Counts() (created, correct, replaced, conflicts, rejected, failed int) {
	for _, rec := range r.Records {
		switch {
		case rec.Rejected():
			rejected++
		case rec.Err != nil:
			failed++
		case rec.Outcome == linker.OutcomeCreated:
			created++
		case rec.Outcome == linker.OutcomeAlreadyCorrect:
			correct++
		case rec.Outcome == linker.OutcomeReplacedStale:
			replaced++
		case rec.Outcome == linker.OutcomeConflictSkipped:
			conflicts++
		}
	}
	return
}

// Orchestrator wires the scan pipeline together. Construct with New.
type Orchestrator struct {
	cfg      *config.Config
	logger   *slog.Logger
	guess    guess.Func
	resolver *identify.Resolver
	paths    *library.PathBuilder
	links    *linker.Provisioner
	sidecars *sidecar.Writer
	sweeper  *sweep.Sweeper
	now      func() time.Time
}

// New builds an orchestrator from configuration. logger may be nil.
func New(cfg *config.Config, logger *slog.Logger, dryRun bool) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "scan"),
		guess:    guess.Parse,
		resolver: identify.NewResolver(logger),
		paths:    library.NewPathBuilder(cfg.MoviesRoot(), cfg.TVRoot()),
		links:    linker.New(logger, dryRun),
		sidecars: sidecar.NewWriter(logger, dryRun),
		sweeper:  sweep.New(logger, dryRun),
		now:      time.Now,
	}
}

// Run executes one pass: reconcile the library, then identify and provision
// every eligible source file. Per-file failures are recorded, not fatal;
// only sweep failures and an unreadable source root abort the pass.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Started: o.now(),
	}
	logger := o.logger.With(logging.String(logging.FieldRunID, report.RunID))
	logger.Info("scan pass starting",
		logging.String("source", o.cfg.Paths.SourceDir),
		logging.String("library", o.cfg.Paths.LibraryDir))

	// The sweep must finish before any provisioning so a file moved at the
	// source is re-linked into a clean tree rather than beside its corpse.
	swept, err := o.sweeper.Sweep(o.cfg.Paths.LibraryDir)
	if err != nil {
		return report, fmt.Errorf("sweep library: %w", err)
	}
	report.Sweep = swept

	files, err := o.enumerate()
	if err != nil {
		return report, fmt.Errorf("enumerate source: %w", err)
	}
	logger.Info("enumerated source files", logging.Int("count", len(files)))

	var (
		mu      sync.Mutex
		records = make([]Record, 0, len(files))
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(o.workers())
	for _, file := range files {
		file := file
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			rec := o.process(file)
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return report, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Source < records[j].Source
	})
	report.Records = records
	report.Duration = o.now().Sub(report.Started)

	created, correct, replaced, conflicts, rejected, failed := report.Counts()
	logger.Info("scan pass complete",
		logging.Int("created", created),
		logging.Int("already_correct", correct),
		logging.Int("replaced_stale", replaced),
		logging.Int("conflicts", conflicts),
		logging.Int("rejected", rejected),
		logging.Int("failed", failed),
		logging.Duration("elapsed", report.Duration))
	return report, nil
}

// enumerate walks the source root collecting media files, applying the
// extension filter and the optional recency gate. Subtitle files are skipped
// here; they ride along with the media file they sit beside.
func (o *Orchestrator) enumerate() ([]FileRef, error) {
	root := o.cfg.Paths.SourceDir
	cutoff := time.Time{}
	if window := o.cfg.RecencyWindow(); window > 0 {
		cutoff = o.now().Add(-window)
	}

	var files []FileRef
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			o.logger.Warn("cannot read source path",
				logging.String("path", path), logging.Error(err))
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if !o.cfg.IsMediaExtension(ext) {
			return nil
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			o.logger.Warn("cannot stat source file",
				logging.String("path", path), logging.Error(infoErr))
			return nil
		}
		if !cutoff.IsZero() && info.ModTime().Before(cutoff) {
			return nil
		}

		dir := filepath.Dir(path)
		files = append(files, FileRef{
			Path:         path,
			Ext:          ext,
			Dir:          dir,
			ParentName:   filepath.Base(dir),
			ModTime:      info.ModTime(),
			AtSourceRoot: dir == filepath.Clean(root),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// process drives one source file through identification, link provisioning,
// sidecar writing, and subtitle companion linking.
func (o *Orchestrator) process(file FileRef) Record {
	rec := Record{Source: file.Path}

	rawName := filepath.Base(file.Path)
	cleaned := identify.Normalize(rawName)
	g := o.guess(cleaned)

	id, err := o.resolver.Resolve(identify.Request{
		CleanedName:  cleaned,
		ParentFolder: file.ParentName,
		RawFileName:  rawName,
		Guess:        g,
		AtSourceRoot: file.AtSourceRoot,
	})
	if err != nil {
		o.logger.Info("skipping unidentifiable file",
			logging.String("file", rawName), logging.Error(err))
		rec.Err = err
		return rec
	}

	loc := o.paths.Locate(id, file.Ext)
	rec.Destination = loc.Path()

	outcome, err := o.links.Link(file.Path, rec.Destination)
	if err != nil {
		rec.Err = err
		return rec
	}
	rec.Outcome = outcome
	if outcome == linker.OutcomeConflictSkipped {
		return rec
	}

	if err := o.sidecars.Write(loc.Dir, id, g.Date); err != nil {
		o.logger.Warn("sidecar write failed",
			logging.String("file", rawName), logging.Error(err))
		rec.Err = err
	}

	rec.Subtitles = o.linkSubtitles(file, id)
	return rec
}

func (o *Orchestrator) linkSubtitles(file FileRef, id identify.Identity) int {
	subs, err := library.FindSubtitles(file.Path, o.cfg.IsSubtitleExtension)
	if err != nil {
		o.logger.Warn("subtitle discovery failed",
			logging.String("file", file.Path), logging.Error(err))
		return 0
	}

	linked := 0
	for _, sub := range subs {
		loc := o.paths.SubtitleLocation(id, file.Ext, sub.LangTag, sub.Ext)
		if _, err := o.links.Link(sub.Path, loc.Path()); err != nil {
			o.logger.Warn("subtitle link failed",
				logging.String("subtitle", sub.Path), logging.Error(err))
			continue
		}
		linked++
	}
	return linked
}

func (o *Orchestrator) workers() int {
	if o.cfg.Scan.Workers > 0 {
		return o.cfg.Scan.Workers
	}
	return 1
}
