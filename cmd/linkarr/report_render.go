package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"linkarr/internal/linker"
	"linkarr/internal/scan"
)

// renderReport formats a scan report as a summary table plus, when anything
// actually changed or failed, a per-file detail table. Files that were
// already correct are summarized but not listed.
func renderReport(out io.Writer, report *scan.Report) string {
	created, correct, replaced, conflicts, rejected, failed := report.Counts()

	summary := renderTable(out,
		[]string{"Metric", "Count"},
		[][]string{
			{"Links created", strconv.Itoa(created)},
			{"Already correct", strconv.Itoa(correct)},
			{"Stale links replaced", strconv.Itoa(replaced)},
			{"Conflicts skipped", strconv.Itoa(conflicts)},
			{"Files rejected", strconv.Itoa(rejected)},
			{"Errors", strconv.Itoa(failed)},
			{"Broken links swept", strconv.Itoa(report.Sweep.RemovedLinks)},
			{"Empty dirs pruned", strconv.Itoa(report.Sweep.PrunedDirs)},
			{"Elapsed", report.Duration.Round(time.Millisecond).String()},
		},
		[]columnAlignment{alignLeft, alignRight})

	details := detailRows(report)
	if len(details) == 0 {
		return summary
	}

	detail := renderTable(out,
		[]string{"File", "Result", "Destination"},
		details,
		[]columnAlignment{alignLeft, alignLeft, alignLeft})
	return summary + "\n\n" + detail
}

func detailRows(report *scan.Report) [][]string {
	var rows [][]string
	for _, rec := range report.Records {
		result, show := recordResult(rec)
		if !show {
			continue
		}
		dest := rec.Destination
		if dest == "" {
			dest = "-"
		}
		rows = append(rows, []string{filepath.Base(rec.Source), result, dest})
	}
	return rows
}

func recordResult(rec scan.Record) (string, bool) {
	switch {
	case rec.Rejected():
		return fmt.Sprintf("rejected (%s)", rootCause(rec.Err)), true
	case rec.Err != nil:
		return fmt.Sprintf("error (%s)", rootCause(rec.Err)), true
	case rec.Outcome == "" || rec.Outcome == linker.OutcomeAlreadyCorrect:
		return "", false
	default:
		return string(rec.Outcome), true
	}
}

// rootCause trims wrapped error chains down to the innermost message so the
// detail table stays readable.
func rootCause(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx >= 0 {
		msg = msg[idx+2:]
	}
	return msg
}
