// Package main provides a one-shot library scan for inspecting what the
// indexer would produce, without touching the catalog database.
//
// Usage:
//
//	go run ./cmd/scan --library-path ~/TapeVault/library
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tapevault/tapevault-server/internal/catalog"
	"github.com/tapevault/tapevault-server/internal/config"
	"github.com/tapevault/tapevault-server/internal/processor"
	"github.com/tapevault/tapevault-server/internal/tags"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	parser := processor.NewFolderParser(cfg.Library.Artists...)
	classifier := processor.NewClassifier(cfg.Library.OfficialPath, cfg.Library.StudioDirName, parser)
	indexer := catalog.NewIndexer(logger, tags.NewFileReader(), classifier, cfg.Scan.Workers)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	entries, err := indexer.Scan(ctx, catalog.Roots{
		Library:  cfg.Library.Path,
		Official: cfg.Library.OfficialPath,
	})
	if err != nil {
		logger.Error("scan failed", "error", err)
		os.Exit(1)
	}

	for _, e := range entries {
		fmt.Printf("%-8s  %-12s  %3d tracks  %s\n",
			e.Descriptor.Type, e.Descriptor.Date, e.TrackCount, e.Descriptor.AlbumTitle())
	}

	fmt.Printf("\n=== Scan Complete ===\n")
	fmt.Printf("Duration: %s\n", time.Since(start))
	fmt.Printf("Albums: %d\n", len(entries))
}
