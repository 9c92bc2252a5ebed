package cmd

import (
	"context"
	"errors"
	"fmt"

	"stacksync/core/bookstack"
	"stacksync/core/config"
	"stacksync/core/lockfile"
	"stacksync/core/logger"
	"stacksync/feature/hierarchy/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotVerbose bool

// snapshotCmd exports the current hierarchy without reconciling.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export the current wiki hierarchy as JSON",
	Long: `Snapshot fetches the live shelf/book/chapter/page structure and writes
the nested JSON export, including content hints, without mutating anything.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().BoolVarP(&snapshotVerbose, "verbose", "v", false, "Echo log lines to stderr in addition to the log file")

	RootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log, snapshotVerbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()
	l = logger.WithRunID(l)

	// Take the run lock too: the export file is shared with sync.
	lock, err := lockfile.Acquire(cfg.Paths.Lock)
	if errors.Is(err, lockfile.ErrHeld) {
		l.Info("another run is in progress, exiting")
		return nil
	}
	if err != nil {
		return err
	}
	defer lock.Release()

	client, err := bookstack.NewClient(cfg.API, l)
	if err != nil {
		return err
	}

	snap, err := snapshot.Fetch(ctx, client, l)
	if err != nil {
		return err
	}

	if err := snapshot.WriteFile(cfg.Paths.Snapshot, snap); err != nil {
		return err
	}

	l.Info("snapshot exported",
		zap.String("path", cfg.Paths.Snapshot),
		zap.Int("shelves", snap.Stats.Shelves),
		zap.Int("books", snap.Stats.Books),
		zap.Int("chapters", snap.Stats.Chapters),
		zap.Int("pages", snap.Stats.Pages),
		zap.Int("orphan_books", snap.Stats.OrphanBooks),
	)
	return nil
}
