// Package reconcile implements the generic level-by-level reconciliation
// pass over a declared hierarchy.
//
// The engine walks each Level (shelf, book, chapter) in strict order and,
// for every desired item, matches a current item by exact name within the
// item's scope. No match creates the item; a match with a differing
// description updates it; otherwise nothing happens. The engine never
// deletes anything: items present remotely but absent from the desired
// tree are left for the orphan reporter.
//
// # Design
//
// Model-specific behavior lives in Level implementations so the algorithm
// is written once instead of per entity type. Levels share a run index
// that Register updates as items are created or confirmed; a book created
// mid-run is immediately attachable to its shelf and accepts its chapters.
//
// # Failure Isolation
//
// Mutation errors are counted per item and never abort the pass. Fetch
// errors cannot occur here: the engine operates on a snapshot taken before
// the run and on IDs it resolved itself.
//
// # Dry Runs
//
// Dry-run handling is a property of the mutator wired into the levels, not
// of the engine. A dry mutator hands out negative sentinel IDs so lower
// levels still resolve their parents, which keeps the decision sequence
// identical to a live run.
package reconcile
