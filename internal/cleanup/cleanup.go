// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cleanup reconciles the media table against the files actually
// present on disk. Uploads and deletions are not transactional with the
// filesystem, so the two drift over time; this is the sole mechanism that
// repairs the drift and it is invoked manually.
package cleanup

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"hackerthink/internal/store"
)

// Report summarizes one reconciliation run.
type Report struct {
	Scanned      int      // media rows examined
	MissingFiles []string // filepaths of rows whose file is gone
	OrphanFiles  []string // files on disk with no media row
	RowsDeleted  int
	FilesDeleted int
}

// Runner walks the media table and the media directory.
type Runner struct {
	media     *store.MediaStore
	mediaRoot string
	dryRun    bool
}

// NewRunner creates a cleanup runner. With dryRun set, Run reports what
// would change without touching anything.
func NewRunner(media *store.MediaStore, mediaRoot string, dryRun bool) *Runner {
	return &Runner{media: media, mediaRoot: mediaRoot, dryRun: dryRun}
}

// Run performs one reconciliation pass: media rows whose file is missing
// are deleted, and files on disk that no row references are removed.
// Thumbnails are treated as part of their parent row.
func (r *Runner) Run() (*Report, error) {
	rows, err := r.media.All()
	if err != nil {
		return nil, err
	}

	report := &Report{Scanned: len(rows)}

	// Paths that a media row legitimately claims, including thumbnails.
	claimed := make(map[string]bool, len(rows)*2)

	for i := range rows {
		m := &rows[i]
		abs := filepath.Join(r.mediaRoot, m.Filepath)
		if _, err := os.Stat(abs); err == nil {
			claimed[filepath.Clean(m.Filepath)] = true
			if m.ThumbPath != nil {
				claimed[filepath.Clean(*m.ThumbPath)] = true
			}
			continue
		}

		report.MissingFiles = append(report.MissingFiles, m.Filepath)
		if r.dryRun {
			continue
		}
		if err := r.media.DeleteByID(m.ID); err != nil {
			slog.Error("cleanup: delete media row", "id", m.ID, "error", err)
			continue
		}
		report.RowsDeleted++
		// Remove a surviving thumbnail of the vanished original.
		if m.ThumbPath != nil {
			removeQuiet(filepath.Join(r.mediaRoot, *m.ThumbPath))
		}
		slog.Info("cleanup: removed stale media row", "id", m.ID, "filepath", m.Filepath)
	}

	orphans, err := r.findOrphans(claimed)
	if err != nil {
		return report, err
	}
	report.OrphanFiles = orphans

	if !r.dryRun {
		for _, rel := range orphans {
			if err := os.Remove(filepath.Join(r.mediaRoot, rel)); err != nil {
				slog.Error("cleanup: delete orphan file", "filepath", rel, "error", err)
				continue
			}
			report.FilesDeleted++
			slog.Info("cleanup: removed orphan file", "filepath", rel)
		}
	}

	return report, nil
}

// findOrphans walks the uploads tree and returns relative paths of files
// that no media row claims. Only uploads/ is scanned; the media root may
// hold other static assets.
func (r *Runner) findOrphans(claimed map[string]bool) ([]string, error) {
	uploadsRoot := filepath.Join(r.mediaRoot, "uploads")
	var orphans []string
	err := filepath.WalkDir(uploadsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == uploadsRoot {
				return filepath.SkipAll // nothing uploaded yet
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.mediaRoot, path)
		if err != nil {
			return err
		}
		if !claimed[filepath.Clean(rel)] {
			orphans = append(orphans, rel)
		}
		return nil
	})
	return orphans, err
}

func removeQuiet(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("cleanup: remove thumbnail", "path", path, "error", err)
	}
}
