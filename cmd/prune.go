package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"stacksync/core/bookstack"
	"stacksync/core/config"
	"stacksync/core/lockfile"
	"stacksync/core/logger"
	"stacksync/feature/hierarchy/orphans"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	pruneDryRun  bool
	pruneVerbose bool
	pruneYes     bool
)

// pruneCmd deletes orphans listed in the report. This is the only command
// that ever deletes remote content, and it requires explicit confirmation.
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete the items listed in the orphan report",
	Long: `Prune consumes the orphan report written by sync/orphans and deletes
the listed shelves, books, and chapters from BookStack. It does not
refetch remote state: review the report first, then prune.

Deletion order is chapters, then books, then shelves, so children go
before their containers.

Examples:
  # Show what would be deleted
  stacksync prune --dry-run

  # Delete with interactive confirmation
  stacksync prune

  # Delete non-interactively
  stacksync prune --yes`,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "List deletions without performing them")
	pruneCmd.Flags().BoolVarP(&pruneVerbose, "verbose", "v", false, "Echo log lines to stderr in addition to the log file")
	pruneCmd.Flags().BoolVar(&pruneYes, "yes", false, "Auto-confirm deletion (non-interactive)")

	RootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log, pruneVerbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()
	l = logger.WithRunID(l)

	lock, err := lockfile.Acquire(cfg.Paths.Lock)
	if err != nil {
		return err
	}
	defer lock.Release()

	report, err := orphans.ReadFile(cfg.Paths.OrphanReport)
	if os.IsNotExist(err) {
		l.Info("no orphan report found, nothing to prune")
		return nil
	}
	if err != nil {
		return err
	}
	if report.Empty() {
		l.Info("orphan report is empty, nothing to prune")
		return nil
	}

	l.Info("orphans to prune",
		zap.Int("shelves", len(report.Shelves)),
		zap.Int("books", len(report.Books)),
		zap.Int("chapters", len(report.Chapters)),
	)

	if pruneDryRun {
		for _, it := range report.Chapters {
			l.Info("would delete chapter", zap.Int64("id", it.ID), zap.String("name", it.Name))
		}
		for _, it := range report.Books {
			l.Info("would delete book", zap.Int64("id", it.ID), zap.String("name", it.Name))
		}
		for _, it := range report.Shelves {
			l.Info("would delete shelf", zap.Int64("id", it.ID), zap.String("name", it.Name))
		}
		l.Info("dry-run mode: no changes were made")
		return nil
	}

	if !confirmPrune(report.Total()) {
		l.Warn("operation cancelled by user, no changes were made")
		return nil
	}

	client, err := bookstack.NewClient(cfg.API, l)
	if err != nil {
		return err
	}

	deleted, failed := 0, 0
	remove := func(kind string, it orphans.Item, fn func(context.Context, int64) error) {
		if err := fn(ctx, it.ID); err != nil {
			failed++
			l.Error("delete failed",
				zap.String("kind", kind),
				zap.Int64("id", it.ID),
				zap.String("name", it.Name),
				zap.Error(err),
			)
			return
		}
		deleted++
		l.Info("deleted", zap.String("kind", kind), zap.Int64("id", it.ID), zap.String("name", it.Name))
	}

	// Children first so containers empty out before removal.
	for _, it := range report.Chapters {
		remove("chapter", it, client.DeleteChapter)
	}
	for _, it := range report.Books {
		remove("book", it, client.DeleteBook)
	}
	for _, it := range report.Shelves {
		remove("shelf", it, client.DeleteShelf)
	}

	l.Info("prune finished", zap.Int("deleted", deleted), zap.Int("failed", failed))

	// The report no longer reflects reality; the next sync rewrites it.
	if failed == 0 {
		_ = os.Remove(cfg.Paths.OrphanReport)
	}
	return nil
}

// confirmPrune prompts the user for confirmation or uses the --yes flag.
func confirmPrune(count int) bool {
	if pruneYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  About to delete %d item(s) from BookStack. Type 'yes' to confirm: ", count)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
