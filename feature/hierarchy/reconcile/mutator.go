package reconcile

import (
	"context"

	"stacksync/core/bookstack"
)

// Mutator is the mutation surface the levels drive. The live implementation
// forwards to the BookStack client; the dry-run implementation only counts
// and hands out sentinel IDs.
type Mutator interface {
	CreateShelf(ctx context.Context, name, description string) (int64, error)
	UpdateShelfDescription(ctx context.Context, id int64, description string) error
	UpdateShelfBooks(ctx context.Context, id int64, bookIDs []int64) error
	CreateBook(ctx context.Context, name, description string) (int64, error)
	UpdateBookDescription(ctx context.Context, id int64, description string) error
	CreateChapter(ctx context.Context, bookID int64, name, description string) (int64, error)
	UpdateChapterDescription(ctx context.Context, id int64, description string) error
}

// NewAPIMutator wires mutations to the live BookStack API.
func NewAPIMutator(c *bookstack.Client) Mutator {
	return c
}

// dryMutator simulates mutations. Created items receive negative sentinel
// IDs, decreasing per creation, so lower levels can still resolve parents
// that were "created" earlier in the same simulated run.
type dryMutator struct {
	next int64
}

// NewDryRunMutator returns a mutator that performs no I/O.
func NewDryRunMutator() Mutator {
	return &dryMutator{next: -1}
}

func (d *dryMutator) sentinel() int64 {
	id := d.next
	d.next--
	return id
}

func (d *dryMutator) CreateShelf(context.Context, string, string) (int64, error) {
	return d.sentinel(), nil
}

func (d *dryMutator) UpdateShelfDescription(context.Context, int64, string) error {
	return nil
}

func (d *dryMutator) UpdateShelfBooks(context.Context, int64, []int64) error {
	return nil
}

func (d *dryMutator) CreateBook(context.Context, string, string) (int64, error) {
	return d.sentinel(), nil
}

func (d *dryMutator) UpdateBookDescription(context.Context, int64, string) error {
	return nil
}

func (d *dryMutator) CreateChapter(context.Context, int64, string, string) (int64, error) {
	return d.sentinel(), nil
}

func (d *dryMutator) UpdateChapterDescription(context.Context, int64, string) error {
	return nil
}
