package cmd

import (
	"context"
	"errors"
	"fmt"

	"stacksync/core/bookstack"
	"stacksync/core/config"
	"stacksync/core/lockfile"
	"stacksync/core/logger"
	coreReconcile "stacksync/core/reconcile"
	"stacksync/feature/hierarchy/desired"
	"stacksync/feature/hierarchy/orphans"
	hierarchyReconcile "stacksync/feature/hierarchy/reconcile"
	"stacksync/feature/hierarchy/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncDryRun  bool
	syncVerbose bool
)

// syncCmd performs a full reconciliation run.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the wiki structure against the hierarchy document",
	Long: `Sync fetches the current shelf/book/chapter structure from BookStack,
diffs it against the hierarchy document, and creates or updates whatever
is missing or changed. Nothing is ever deleted: items absent from the
hierarchy are written to the orphan report for manual review.

Runs are mutually exclusive via an advisory file lock; a run that finds
the lock held exits immediately without error.

Examples:
  # Simulate without touching the wiki
  stacksync sync --dry-run

  # Full run, echoing the log to stderr
  stacksync sync --verbose`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Simulate: make no mutations, report decisions only")
	syncCmd.Flags().BoolVarP(&syncVerbose, "verbose", "v", false, "Echo log lines to stderr in addition to the log file")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log, syncVerbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()
	l = logger.WithRunID(l)

	// Acquire the run lock. A held lock is a clean no-op, not a failure.
	lock, err := lockfile.Acquire(cfg.Paths.Lock)
	if errors.Is(err, lockfile.ErrHeld) {
		l.Info("another run is in progress, exiting")
		return nil
	}
	if err != nil {
		return err
	}
	defer lock.Release()

	l.Info("starting structure sync", zap.Bool("dry_run", syncDryRun))

	client, err := bookstack.NewClient(cfg.API, l)
	if err != nil {
		return err
	}

	// Fetch phase: fatal on error. The last-good snapshot file is left
	// untouched when this fails.
	snap, err := snapshot.Fetch(ctx, client, l)
	if err != nil {
		return err
	}

	// Parse the desired state before any mutation.
	want, err := desired.LoadFile(cfg.Paths.Hierarchy)
	if err != nil {
		return err
	}

	mutator := hierarchyReconcile.NewAPIMutator(client)
	if syncDryRun {
		mutator = hierarchyReconcile.NewDryRunMutator()
	}

	summary, err := hierarchyReconcile.Run(ctx, l, snap, want, mutator)
	if err != nil {
		return err
	}

	printSyncSummary(l, summary, syncDryRun)

	// Re-fetch before export so items created this run appear in the
	// snapshot. Pointless after a dry run or a no-op run.
	if summary.Changed() && !syncDryRun {
		snap, err = snapshot.Fetch(ctx, client, l)
		if err != nil {
			return err
		}
	}

	if err := snapshot.WriteFile(cfg.Paths.Snapshot, snap); err != nil {
		return err
	}
	l.Info("snapshot exported", zap.String("path", cfg.Paths.Snapshot))

	report := orphans.Find(snap, want, client.BaseURL())
	if err := orphans.WriteFile(cfg.Paths.OrphanReport, report); err != nil {
		return err
	}
	if report.Empty() {
		l.Info("no orphans found")
	} else {
		l.Warn("orphans found, review the report",
			zap.String("path", cfg.Paths.OrphanReport),
			zap.Int("shelves", len(report.Shelves)),
			zap.Int("books", len(report.Books)),
			zap.Int("chapters", len(report.Chapters)),
		)
	}

	// Per-item mutation failures never change the exit code.
	return nil
}

// printSyncSummary logs the per-level outcome of a run.
func printSyncSummary(l *zap.Logger, summary *coreReconcile.Summary, dryRun bool) {
	for _, level := range []string{"shelf", "book", "chapter"} {
		c, ok := summary.Levels[level]
		if !ok {
			continue
		}
		l.Info("level reconciled",
			zap.String("level", level),
			zap.Bool("dry_run", dryRun),
			zap.Int("created", c.Created),
			zap.Int("updated", c.Updated),
			zap.Int("unchanged", c.Unchanged),
			zap.Int("attached", c.Attached),
			zap.Int("errors", c.Errors),
		)
	}
	if n := summary.Errored(); n > 0 {
		l.Warn("run finished with item errors", zap.Int("errors", n))
	}
}
