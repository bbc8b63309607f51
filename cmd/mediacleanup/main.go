// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the manual media reconciliation command. It deletes
// media rows whose file is gone from disk and removes files no row
// references. Run with -dry-run to see what would change.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"hackerthink/internal/cleanup"
	"hackerthink/internal/config"
	"hackerthink/internal/database"
	"hackerthink/internal/store"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report drift without deleting anything")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	runner := cleanup.NewRunner(store.NewMediaStore(db), cfg.MediaRoot, *dryRun)
	report, err := runner.Run()
	if err != nil {
		slog.Error("cleanup run failed", "error", err)
		os.Exit(1)
	}

	mode := "applied"
	if *dryRun {
		mode = "dry-run"
	}
	fmt.Printf("media cleanup (%s)\n", mode)
	fmt.Printf("  rows scanned:   %d\n", report.Scanned)
	fmt.Printf("  missing files:  %d\n", len(report.MissingFiles))
	for _, f := range report.MissingFiles {
		fmt.Printf("    - %s\n", f)
	}
	fmt.Printf("  orphan files:   %d\n", len(report.OrphanFiles))
	for _, f := range report.OrphanFiles {
		fmt.Printf("    - %s\n", f)
	}
	fmt.Printf("  rows deleted:   %d\n", report.RowsDeleted)
	fmt.Printf("  files deleted:  %d\n", report.FilesDeleted)
}
