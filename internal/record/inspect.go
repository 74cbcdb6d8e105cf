package record

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Issue describes one way a record file departs from the record layout.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Inspection is the structural reading of a record file.
type Inspection struct {
	// HeaderDate is the date in the top-level heading; zero if absent or unparsable.
	HeaderDate time.Time
	// Sections counts the section headings found per field.
	Sections [len(Fields)]int
	// Undetailed counts section headings not directly followed by a blockquote.
	Undetailed [len(Fields)]int
	// Misformed counts section headings whose source line is not exactly
	// "## <heading>", so Decode does not see them.
	Misformed [len(Fields)]int

	rewrites []headingRewrite
}

// headingRewrite is a misformed section heading line, by byte span.
type headingRewrite struct {
	start, end int
	field      Field
}

// Inspect parses record text as markdown and reports its headings and detail
// blocks.
func (c *Codec) Inspect(source []byte) Inspection {
	var ins Inspection
	headings := make(map[string]Field, len(Fields))
	for _, f := range Fields {
		headings[c.layout.Heading(f)] = f
	}

	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok {
			continue
		}
		title := strings.TrimSpace(headingText(heading, source))

		switch heading.Level {
		case 1:
			if !ins.HeaderDate.IsZero() {
				continue
			}
			if d, err := time.Parse(HeaderLayout, title); err == nil {
				ins.HeaderDate = d
			}
		case 2:
			f, known := headings[title]
			if !known {
				continue
			}
			ins.Sections[f]++
			if start, end, ok := sourceLine(heading, source); ok &&
				string(bytes.TrimSuffix(source[start:end], []byte("\r"))) != sectionMarker+c.layout.Heading(f) {
				ins.Misformed[f]++
				ins.rewrites = append(ins.rewrites, headingRewrite{start: start, end: end, field: f})
			}
			if next := heading.NextSibling(); next == nil || next.Kind() != ast.KindBlockquote {
				ins.Undetailed[f]++
			}
		}
	}

	return ins
}

// headingText concatenates the text segments of a heading.
func headingText(heading *ast.Heading, source []byte) string {
	var b strings.Builder
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
	}
	return b.String()
}

// sourceLine returns the byte span of the source line a heading starts on,
// without the newline.
func sourceLine(heading *ast.Heading, source []byte) (int, int, bool) {
	lines := heading.Lines()
	if lines.Len() == 0 {
		return 0, 0, false
	}
	pos := lines.At(0).Start
	start := bytes.LastIndexByte(source[:pos], '\n') + 1
	end := len(source)
	if i := bytes.IndexByte(source[pos:], '\n'); i >= 0 {
		end = pos + i
	}
	return start, end, true
}

// Repair decodes source after rewriting misformed section headings into
// their standard form, so details under them are kept.
func (c *Codec) Repair(source []byte) Details {
	ins := c.Inspect(source)
	if len(ins.rewrites) == 0 {
		return c.Decode(source)
	}

	var b bytes.Buffer
	prev := 0
	for _, r := range ins.rewrites {
		b.Write(source[prev:r.start])
		b.WriteString(sectionMarker + c.layout.Heading(r.field))
		prev = r.end
	}
	b.Write(source[prev:])
	return c.Decode(b.Bytes())
}

// Check inspects the record stored for date and lists its problems: a header date
// that disagrees with the file name, a missing section or one that appears more
// than once, headings Decode cannot read, and sections without a detail line.
func (c *Codec) Check(date time.Time, source []byte) []Issue {
	ins := c.Inspect(source)
	var issues []Issue

	switch {
	case ins.HeaderDate.IsZero():
		issues = append(issues, Issue{Message: "missing or unreadable date heading"})
	case !ins.HeaderDate.Equal(date):
		issues = append(issues, Issue{Message: fmt.Sprintf(
			"heading date %s does not match file date %s",
			ins.HeaderDate.Format(HeaderLayout), date.Format(HeaderLayout))})
	}

	for _, f := range Fields {
		switch n := ins.Sections[f]; {
		case n == 0:
			issues = append(issues, Issue{Field: f.Key(), Message: "section missing"})
		case n > 1:
			issues = append(issues, Issue{Field: f.Key(), Message: fmt.Sprintf("section appears %d times", n)})
		}
		if ins.Misformed[f] > 0 {
			issues = append(issues, Issue{Field: f.Key(), Message: "heading not in standard form"})
		}
		if ins.Undetailed[f] > 0 {
			issues = append(issues, Issue{Field: f.Key(), Message: "section has no detail line"})
		}
	}

	return issues
}
