package reconcile

import (
	"context"

	"go.uber.org/zap"
)

// Run reconciles every level in order. Levels must be passed shelf-first:
// book creation needs a resolved shelf ID and chapter creation needs a
// resolved book ID, so a later level may only start once the previous one
// finished.
//
// Failures are isolated per item: a create or update error is counted and
// logged, then processing continues with the next sibling. Run only returns
// an error when the context is cancelled.
func Run(ctx context.Context, log *zap.Logger, levels ...Level) (*Summary, error) {
	summary := &Summary{
		Levels: make(map[string]*Counters, len(levels)),
	}

	for _, lvl := range levels {
		counters := &Counters{}
		summary.Levels[lvl.Name()] = counters

		for _, it := range lvl.Items() {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			runItem(ctx, log, lvl, it, counters, summary)
		}
	}

	return summary, nil
}

func runItem(ctx context.Context, log *zap.Logger, lvl Level, it Item, counters *Counters, summary *Summary) {
	decision := Decision{
		Level:  lvl.Name(),
		Name:   it.Name,
		Parent: it.ParentName,
	}

	if it.NeedsParent && !it.ParentOK {
		counters.Errors++
		decision.Op = OpSkip
		decision.Error = "parent not resolved"
		summary.Decisions = append(summary.Decisions, decision)
		log.Error("skipping item, parent not resolved",
			zap.String("level", lvl.Name()),
			zap.String("name", it.Name),
			zap.String("parent", it.ParentName),
		)
		return
	}

	cur, ok := lvl.Current(it)
	switch {
	case !ok:
		decision.Op = OpCreate
		id, err := lvl.Create(ctx, it)
		if err != nil {
			counters.Errors++
			decision.Error = err.Error()
			summary.Decisions = append(summary.Decisions, decision)
			log.Error("create failed",
				zap.String("level", lvl.Name()),
				zap.String("name", it.Name),
				zap.Error(err),
			)
			return
		}
		counters.Created++
		lvl.Register(it, id)
		log.Info("created",
			zap.String("level", lvl.Name()),
			zap.String("name", it.Name),
			zap.Int64("id", id),
		)
		attach(ctx, log, lvl, it, id, counters, &decision)

	case cur.Description != it.Description:
		decision.Op = OpUpdate
		if err := lvl.Update(ctx, it, cur.ID); err != nil {
			counters.Errors++
			decision.Error = err.Error()
			summary.Decisions = append(summary.Decisions, decision)
			log.Error("update failed",
				zap.String("level", lvl.Name()),
				zap.String("name", it.Name),
				zap.Int64("id", cur.ID),
				zap.Error(err),
			)
			return
		}
		counters.Updated++
		lvl.Register(it, cur.ID)
		log.Info("updated description",
			zap.String("level", lvl.Name()),
			zap.String("name", it.Name),
			zap.Int64("id", cur.ID),
		)
		attach(ctx, log, lvl, it, cur.ID, counters, &decision)

	default:
		decision.Op = OpNoop
		counters.Unchanged++
		lvl.Register(it, cur.ID)
		attach(ctx, log, lvl, it, cur.ID, counters, &decision)
	}

	summary.Decisions = append(summary.Decisions, decision)
}

// attach binds a confirmed item into its parent collection when the level
// supports it. An attach failure counts as an item error but does not undo
// the create or update that preceded it.
func attach(ctx context.Context, log *zap.Logger, lvl Level, it Item, id int64, counters *Counters, decision *Decision) {
	a, ok := lvl.(Attacher)
	if !ok {
		return
	}
	changed, err := a.Attach(ctx, it, id)
	if err != nil {
		counters.Errors++
		decision.Error = err.Error()
		log.Error("attach failed",
			zap.String("level", lvl.Name()),
			zap.String("name", it.Name),
			zap.String("parent", it.ParentName),
			zap.Error(err),
		)
		return
	}
	if changed {
		counters.Attached++
		log.Info("attached to parent",
			zap.String("level", lvl.Name()),
			zap.String("name", it.Name),
			zap.String("parent", it.ParentName),
		)
	}
}
