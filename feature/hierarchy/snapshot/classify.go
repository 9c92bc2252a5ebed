package snapshot

import "strings"

// contentLengthThreshold is the visible-text length below which a page is
// flagged as needing content.
const contentLengthThreshold = 100

// Content type classifications derived from page names.
const (
	ContentProcedural = "procedural"
	ContentStandard   = "standard"
	ContentTraining   = "training"
	ContentTemplate   = "template"
	ContentReference  = "reference"
)

// classifyContent guesses a page's content type from its name. It is a
// heuristic for LLM seeding tools; "reference" is the catch-all.
func classifyContent(name string) string {
	n := strings.ToLower(name)

	switch {
	case containsAny(n, "how to", "procedure", "install", "setup", "configur", "step-by-step"):
		return ContentProcedural
	case containsAny(n, "standard", "specification", "spec ", "code ", "requirement", "compliance"):
		return ContentStandard
	case containsAny(n, "training", "course", "exercise", "onboarding", "tutorial"):
		return ContentTraining
	case containsAny(n, "template", "checklist", "form ", "boilerplate"):
		return ContentTemplate
	default:
		return ContentReference
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
