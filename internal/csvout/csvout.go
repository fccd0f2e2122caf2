// Package csvout persists discovery records to an append-only CSV file.
//
// The file accumulates across runs: the header row is written only when the
// file is new or empty, and every later run appends below the existing rows.
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ddddgit/KOL/internal/discovery"
)

// header defines the column layout. Existing files are assumed to share it.
var header = []string{
	"channel_name",
	"subscribers",
	"country",
	"last_video_date",
	"last_video_views",
	"url",
	"channel_id",
}

const dateLayout = "2006-01-02"

// Writer appends discovery records to a CSV file. It satisfies
// discovery.RecordSink.
type Writer struct {
	file    *os.File
	csv     *csv.Writer
	seen    map[string]bool // channel IDs already written, nil when dedup is off
	log     *logrus.Logger
	written int
}

type WriterOption func(*Writer)

// WithDedupe skips rows whose channel ID already exists in the output file,
// so repeated runs against the same path do not accumulate duplicates.
func WithDedupe() WriterOption {
	return func(w *Writer) { w.seen = make(map[string]bool) }
}

// WithLogger routes the writer's warnings to the given logger.
func WithLogger(log *logrus.Logger) WriterOption {
	return func(w *Writer) { w.log = log }
}

// Open prepares path for appending, creating the file and its parent
// directory if needed.
func Open(path string, opts ...WriterOption) (*Writer, error) {
	w := &Writer{}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logrus.StandardLogger()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if w.seen != nil {
		w.loadExisting(path)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // #nosec G304 -- path comes from the operator's own flags
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat output file: %w", err)
	}

	w.file = file
	w.csv = csv.NewWriter(file)

	if info.Size() == 0 {
		if err := w.writeRow(header); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	return w, nil
}

// loadExisting reads the channel_id column of an existing file so Append can
// skip channels that are already recorded. A missing or unparseable file
// downgrades to an empty seen-set; dedup then only covers the current run.
func (w *Writer) loadExisting(path string) {
	file, err := os.Open(path) // #nosec G304 -- path comes from the operator's own flags
	if err != nil {
		if !os.IsNotExist(err) {
			w.log.WithError(err).Warn("cannot read existing output, dedup covers this run only")
		}
		return
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		w.log.WithError(err).Warn("cannot parse existing output, dedup covers this run only")
		return
	}

	for i, row := range rows {
		if i == 0 || len(row) < len(header) {
			continue
		}
		w.seen[row[len(header)-1]] = true
	}
}

// Append writes one record as a CSV row and flushes it to disk. Records
// without a resolved upload get empty publication fields.
func (w *Writer) Append(rec discovery.Record) error {
	if w.seen != nil {
		if w.seen[rec.Profile.ID] {
			return nil
		}
		w.seen[rec.Profile.ID] = true
	}

	row := []string{
		rec.Profile.Title,
		strconv.FormatInt(rec.Profile.Subscribers, 10),
		rec.Profile.Country,
		"",
		"",
		rec.URL,
		rec.Profile.ID,
	}
	if rec.HasVideo {
		row[3] = rec.VideoDate.Format(dateLayout)
		row[4] = strconv.FormatInt(rec.VideoViews, 10)
	}

	if err := w.writeRow(row); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.written++
	return nil
}

// Written reports how many rows this writer has appended, not counting
// records skipped by dedup.
func (w *Writer) Written() int {
	return w.written
}

// writeRow flushes each row immediately so rows written before a crash or a
// mid-run abort stay on disk.
func (w *Writer) writeRow(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Close releases the file handle.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
