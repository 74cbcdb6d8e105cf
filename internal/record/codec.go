package record

import "strings"

// Layout holds the locale-specific text of a record: one section heading per
// field and the label that prefixes each detail line.
type Layout struct {
	Tech    string `yaml:"tech"    json:"tech"`
	Fitness string `yaml:"fitness" json:"fitness"`
	English string `yaml:"english" json:"english"`
	Label   string `yaml:"label"   json:"label"`
}

// DefaultLayout is the layout records have always been written in.
func DefaultLayout() Layout {
	return Layout{
		Tech:    "技术",
		Fitness: "健身",
		English: "英语",
		Label:   "细节：",
	}
}

// Heading returns the section heading text for f.
func (l Layout) Heading(f Field) string {
	switch f {
	case Tech:
		return l.Tech
	case Fitness:
		return l.Fitness
	case English:
		return l.English
	default:
		return ""
	}
}

// WithDefaults fills empty headings and label from DefaultLayout.
func (l Layout) WithDefaults() Layout {
	def := DefaultLayout()
	if l.Tech == "" {
		l.Tech = def.Tech
	}
	if l.Fitness == "" {
		l.Fitness = def.Fitness
	}
	if l.English == "" {
		l.English = def.English
	}
	if l.Label == "" {
		l.Label = def.Label
	}
	return l
}

const (
	titleMarker   = "# "
	sectionMarker = "## "
	quoteMarker   = ">"
)

// Codec converts between record text and field values for one Layout.
type Codec struct {
	layout   Layout
	sections map[string]Field
}

// NewCodec creates a Codec for layout. Empty parts of layout take their defaults.
func NewCodec(layout Layout) *Codec {
	layout = layout.WithDefaults()
	sections := make(map[string]Field, len(Fields))
	for _, f := range Fields {
		sections[sectionMarker+layout.Heading(f)] = f
	}
	return &Codec{layout: layout, sections: sections}
}

// Layout returns the codec's layout.
func (c *Codec) Layout() Layout {
	return c.layout
}

// Encode renders entry as record text. Output depends only on entry, so saving
// the same entry twice produces identical bytes.
func (c *Codec) Encode(entry Entry) []byte {
	var b strings.Builder

	b.WriteString(titleMarker + entry.Date.Format(HeaderLayout) + "\n")
	for _, f := range Fields {
		b.WriteString("\n")
		b.WriteString(sectionMarker + c.layout.Heading(f) + "\n")
		b.WriteString("\n")
		b.WriteString(quoteMarker + " " + c.layout.Label + entry.Get(f) + "\n")
	}

	return []byte(b.String())
}

// Decode extracts the field values from record text.
//
// A line equal to a section heading arms that field; the next line starting with
// ">" is its detail line, read with the marker, surrounding space and label
// removed. A heading with no detail line before the next heading leaves its field
// absent. Decode never fails: text it does not recognize is skipped.
func (c *Codec) Decode(text []byte) Details {
	var details Details
	armed, pending := Field(0), false

	for _, line := range splitLines(string(text)) {
		if f, ok := c.sections[line]; ok {
			armed, pending = f, true
			continue
		}
		if pending && strings.HasPrefix(line, quoteMarker) {
			details.Set(armed, c.detailText(line))
			pending = false
		}
	}

	return details
}

// detailText strips the quote marker and label from a detail line.
func (c *Codec) detailText(line string) string {
	text := strings.TrimSpace(strings.TrimLeft(line, quoteMarker))
	text = strings.TrimPrefix(text, strings.TrimSpace(c.layout.Label))
	return strings.TrimSpace(text)
}

// splitLines splits text into lines. Any line break ends a line: \n, \r, \r\n,
// \v, \f, the file, group and record separators, NEL, and the Unicode line and
// paragraph separators. Empty lines are dropped; Decode never matches them.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, isLineBreak)
}

// isLineBreak reports whether r ends a line.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
