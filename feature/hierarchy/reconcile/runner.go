// Package reconcile binds the generic level engine to the BookStack
// hierarchy: shelf, book and chapter levels over a shared run index.
package reconcile

import (
	"context"

	"stacksync/core/reconcile"
	"stacksync/feature/hierarchy/desired"
	"stacksync/feature/hierarchy/snapshot"

	"go.uber.org/zap"
)

// Run reconciles the desired tree against the snapshot using the given
// mutator. Pass NewDryRunMutator to simulate: the decision sequence is
// identical, only the side effects differ.
func Run(ctx context.Context, log *zap.Logger, snap *snapshot.Snapshot, want *desired.Tree, m Mutator) (*reconcile.Summary, error) {
	idx := newRunIndex(snap)

	return reconcile.Run(ctx, log,
		&shelfLevel{idx: idx, want: want, m: m},
		&bookLevel{idx: idx, want: want, m: m},
		&chapterLevel{idx: idx, want: want, m: m},
	)
}
