// Package snapshot builds and exports the nested view of the live
// hierarchy.
//
// Fetch pulls the four flat collections through the BookStack client and
// Build assembles them into shelf -> books -> chapters -> pages, computing
// the derived hints downstream tools rely on: needs_content (visible text
// under the threshold), a best-effort content_type classification, and the
// orphan book set (books referenced by no shelf).
//
// The exported JSON is an observational cache, re-derivable at any time.
// WriteFile is atomic so consumers never see a truncated export.
package snapshot
