package marker

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	includeRe = regexp.MustCompile(`<!--\s+include:([a-z]+)\(([^)]+)\)\s+-->`)
	excludeRe = regexp.MustCompile(`<!--\s+!include:([a-z]+)\(([^)]+)\)\s+-->`)
)

// Kind distinguishes include from exclude markers.
type Kind int

const (
	KindInclude Kind = iota
	KindExclude
)

func (k Kind) String() string {
	if k == KindExclude {
		return "exclude"
	}
	return "include"
}

// LineEndings selects how the exclude pass splits the document into lines.
type LineEndings int

const (
	// LineEndingsCRLF splits on "\r\n" only.
	LineEndingsCRLF LineEndings = iota
	// LineEndingsAny splits on "\r\n", "\n" and "\r".
	LineEndingsAny
)

// ParseLineEndings maps the configuration spelling to a LineEndings value.
func ParseLineEndings(s string) (LineEndings, error) {
	switch s {
	case "", "crlf":
		return LineEndingsCRLF, nil
	case "any":
		return LineEndingsAny, nil
	default:
		return LineEndingsCRLF, fmt.Errorf("unknown line ending mode %q (want crlf or any)", s)
	}
}

// Marker is one directive found in a document. Start and End are byte
// offsets of Raw in the text it was parsed from; Line is 1-based.
type Marker struct {
	Kind  Kind
	Type  string
	Spec  string
	Raw   string
	Start int
	End   int
	Line  int
}

func (m Marker) String() string {
	if m.Kind == KindExclude {
		return fmt.Sprintf("!include:%s(%s)", m.Type, m.Spec)
	}
	return fmt.Sprintf("include:%s(%s)", m.Type, m.Spec)
}

// ParseIncludes returns every include marker in text, in document order.
func ParseIncludes(text string) []Marker {
	locs := includeRe.FindAllStringSubmatchIndex(text, -1)
	markers := make([]Marker, 0, len(locs))
	for _, loc := range locs {
		markers = append(markers, newMarker(KindInclude, text, loc, 0))
	}
	return markers
}

// ParseExcludes returns the first exclude marker of every line of text.
func ParseExcludes(text string, mode LineEndings) []Marker {
	var markers []Marker
	for _, line := range lineSpans(text, mode) {
		loc := excludeRe.FindStringSubmatchIndex(text[line[0]:line[1]])
		if loc == nil {
			continue
		}
		markers = append(markers, newMarker(KindExclude, text, loc, line[0]))
	}
	return markers
}

func newMarker(kind Kind, text string, loc []int, offset int) Marker {
	start, end := offset+loc[0], offset+loc[1]
	return Marker{
		Kind:  kind,
		Type:  text[offset+loc[2] : offset+loc[3]],
		Spec:  text[offset+loc[4] : offset+loc[5]],
		Raw:   text[start:end],
		Start: start,
		End:   end,
		Line:  strings.Count(text[:start], "\n") + 1,
	}
}

// lineSpans returns [start, end) offsets of every line, separators excluded.
func lineSpans(text string, mode LineEndings) [][2]int {
	var spans [][2]int
	start := 0
	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], "\r\n"):
			spans = append(spans, [2]int{start, i})
			i += 2
			start = i
		case mode == LineEndingsAny && (text[i] == '\n' || text[i] == '\r'):
			spans = append(spans, [2]int{start, i})
			i++
			start = i
		default:
			i++
		}
	}
	return append(spans, [2]int{start, len(text)})
}

// cut returns text without the given markers, which must be sorted and
// non-overlapping. Each marker is removed at its own span, not at the first
// occurrence of the same text elsewhere in the document.
func cut(text string, markers []Marker) string {
	if len(markers) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range markers {
		b.WriteString(text[last:m.Start])
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}
