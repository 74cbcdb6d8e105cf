package record

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorewood/dailylog/internal/output"
)

// Date layouts used by records.
const (
	// InputLayout is the form dates are typed in and shown in commit messages.
	InputLayout = "2006-01-02"
	// HeaderLayout is the form of the date in a record's top-level heading.
	HeaderLayout = "2006/01/02"
	// FileLayout is the form of the date in a record's file name.
	FileLayout = "2006_01_02"
	// Ext is the record file extension.
	Ext = ".md"
)

// Entry is the full content of one record.
type Entry struct {
	Date    time.Time `json:"-"`
	Tech    string    `json:"tech"`
	Fitness string    `json:"fitness"`
	English string    `json:"english"`
}

// Get returns the text for f.
func (e Entry) Get(f Field) string {
	switch f {
	case Tech:
		return e.Tech
	case Fitness:
		return e.Fitness
	case English:
		return e.English
	default:
		return ""
	}
}

// Set stores text for f.
func (e *Entry) Set(f Field, text string) {
	switch f {
	case Tech:
		e.Tech = text
	case Fitness:
		e.Fitness = text
	case English:
		e.English = text
	}
}

// Merge overlays input on defaults: a non-empty input field wins, an empty one
// keeps the default (or the empty string when there is none). Input text is
// normalized first. The result takes its date from input.
func Merge(defaults Details, input Entry) Entry {
	merged := Entry{Date: input.Date}
	for _, f := range Fields {
		text := Normalize(input.Get(f))
		if text == "" {
			text = defaults.Get(f).Or("")
		}
		merged.Set(f, text)
	}
	return merged
}

// Normalize folds line breaks into spaces and trims surrounding space, so the
// text fits on a single detail line and decodes back unchanged.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Map(func(r rune) rune {
		if isLineBreak(r) {
			return ' '
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}

// ParseDate parses a YYYY-MM-DD date. A malformed date is a user error.
func ParseDate(text string) (time.Time, error) {
	d, err := time.Parse(InputLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, output.NewUserErrorf("invalid date %q: expected YYYY-MM-DD", text)
	}
	return d, nil
}

// Day truncates t to its calendar date in t's location, returned as UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FileName returns the record file name for date, e.g. 2024_03_05.md.
func FileName(date time.Time) string {
	return date.Format(FileLayout) + Ext
}

// ParseFileName returns the date encoded in a record file name.
// The second result is false for names that are not record files.
func ParseFileName(name string) (time.Time, bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, Ext) {
		return time.Time{}, false
	}
	d, err := time.Parse(FileLayout, strings.TrimSuffix(base, Ext))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// CommitMessage returns the message used when publishing the record for date.
func CommitMessage(date time.Time) string {
	return fmt.Sprintf("chore: daily log %s", date.Format(InputLayout))
}
