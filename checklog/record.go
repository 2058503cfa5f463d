package checklog

import "strings"

// record is the bookkeeping for a single logical check, from its
// outermost sentinel's construction to its destruction.
type record struct {
	topLevelIndex int
	description   string
	failureText   strings.Builder
	critical      bool
	depth         int
}

// indented renders the record's own failure text, with r.description as
// its header, indented by one level: a nested check's failure text is
// appended to the enclosing check's text, indented one level.
func (r *record) indented() string {
	text := r.failureText.String()
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.description)
	b.WriteByte('\n')
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
