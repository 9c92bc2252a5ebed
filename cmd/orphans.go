package cmd

import (
	"context"
	"errors"
	"fmt"

	"stacksync/core/bookstack"
	"stacksync/core/config"
	"stacksync/core/lockfile"
	"stacksync/core/logger"
	"stacksync/feature/hierarchy/desired"
	"stacksync/feature/hierarchy/orphans"
	"stacksync/feature/hierarchy/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var orphansVerbose bool

// orphansCmd computes the orphan report without reconciling.
var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Report wiki items missing from the hierarchy document",
	Long: `Orphans diffs the live structure against the hierarchy document and
writes the orphan report. Nothing is deleted; when no orphans exist any
previous report file is removed.`,
	RunE: runOrphans,
}

func init() {
	orphansCmd.Flags().BoolVarP(&orphansVerbose, "verbose", "v", false, "Echo log lines to stderr in addition to the log file")

	RootCmd.AddCommand(orphansCmd)
}

func runOrphans(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log, orphansVerbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()
	l = logger.WithRunID(l)

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

	want, err := desired.LoadFile(cfg.Paths.Hierarchy)
	if err != nil {
		return err
	}

	report := orphans.Find(snap, want, client.BaseURL())
	if err := orphans.WriteFile(cfg.Paths.OrphanReport, report); err != nil {
		return err
	}

	if report.Empty() {
		l.Info("no orphans found, report removed")
		return nil
	}
	l.Warn("orphans found",
		zap.String("path", cfg.Paths.OrphanReport),
		zap.Int("shelves", len(report.Shelves)),
		zap.Int("books", len(report.Books)),
		zap.Int("chapters", len(report.Chapters)),
	)
	return nil
}
