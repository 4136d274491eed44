package summarize

import "strings"

// Summary is the parsed form of a summarizer reply. The external model is
// asked for a two-line "Title: <t>\nSummary: <s>" reply but is not trusted to
// follow it, so single-line or unlabeled replies degrade to a body-only value.
type Summary struct {
	Title string // empty when the reply carried no title line
	Body  string
}

// Parse splits a raw reply using the two-line convention, defensively. Parse
// is the single place replies are interpreted; downstream consumers work
// from the tagged result.
func Parse(raw string) Summary {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Summary{}
	}

	first, rest, found := strings.Cut(raw, "\n")
	if !found {
		return Summary{Body: stripLabel(raw, "Summary:")}
	}
	return Summary{
		Title: stripLabel(first, "Title:"),
		Body:  stripLabel(rest, "Summary:"),
	}
}

func stripLabel(s, label string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimPrefix(s, label))
}
