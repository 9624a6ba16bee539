package search

// categoryKeywords maps query categories to synonym terms. When a category
// name appears anywhere in the lowercased query, every synonym found in a
// rule's content adds its own +3 to that rule's score.
var categoryKeywords = map[string][]string{
	"defense":       {"defense", "dissertation defense"},
	"registration":  {"register", "registration", "enroll"},
	"opt":           {"opt", "optional practical training"},
	"prospectus":    {"prospectus", "proposal"},
	"deadline":      {"deadline", "due"},
	"international": {"international", "f-1", "j-1", "visa"},
	"algorithm":     {"algorithm", "algorithms", "analysis of algorithms"},
	"prerequisite":  {"prerequisite", "prerequisites", "required course"},
	"course":        {"course", "courses", "credit"},
}

// categoryNames fixes the iteration order so scoring is deterministic.
var categoryNames = []string{
	"defense",
	"registration",
	"opt",
	"prospectus",
	"deadline",
	"international",
	"algorithm",
	"prerequisite",
	"course",
}
