package record

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/dailylog/internal/output"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2024-03-05", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{input: " 2024-03-05 ", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{input: "03/05/2024", wantErr: true},
		{input: "2024/03/05", wantErr: true},
		{input: "2024-3-5", wantErr: true},
		{input: "2024-02-30", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				var exitErr *output.ExitError
				if !errors.As(err, &exitErr) || exitErr.Code != output.ExitUserError {
					t.Fatalf("ParseDate(%q) error = %v, want user error", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if got := FileName(date); got != "2024_03_05.md" {
		t.Errorf("FileName() = %q, want %q", got, "2024_03_05.md")
	}

	parsed, ok := ParseFileName("/some/dir/2024_03_05.md")
	if !ok || !parsed.Equal(date) {
		t.Errorf("ParseFileName() = %v, %v; want %v, true", parsed, ok, date)
	}

	for _, name := range []string{"README.md", "2024-03-05.md", "2024_03_05.txt", ".tmp-123.md"} {
		if _, ok := ParseFileName(name); ok {
			t.Errorf("ParseFileName(%q) ok = true, want false", name)
		}
	}
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	got := Day(time.Date(2024, 3, 5, 23, 30, 0, 0, loc))
	if want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("Day() = %v, want %v", got, want)
	}
}

func TestCommitMessage(t *testing.T) {
	got := CommitMessage(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	if got != "chore: daily log 2024-03-05" {
		t.Errorf("CommitMessage() = %q", got)
	}
}

func TestMerge(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	var defaults Details
	defaults.Set(Tech, "refactor cache")
	defaults.Set(English, "20 new words")

	tests := []struct {
		name  string
		input Entry
		want  Entry
	}{
		{
			name:  "empty input keeps defaults",
			input: Entry{Date: date},
			want:  Entry{Date: date, Tech: "refactor cache", English: "20 new words"},
		},
		{
			name:  "non-empty input wins",
			input: Entry{Date: date, Tech: "write tests", Fitness: "5k run"},
			want:  Entry{Date: date, Tech: "write tests", Fitness: "5k run", English: "20 new words"},
		},
		{
			name:  "whitespace-only input counts as empty",
			input: Entry{Date: date, Tech: "   "},
			want:  Entry{Date: date, Tech: "refactor cache", English: "20 new words"},
		},
		{
			name:  "line breaks are folded",
			input: Entry{Date: date, Fitness: "run\nswim\r\nbike"},
			want:  Entry{Date: date, Tech: "refactor cache", Fitness: "run swim bike", English: "20 new words"},
		},
		{
			name:  "unicode line separators are folded",
			input: Entry{Date: date, English: "one\u2028two\u2029three\u0085four"},
			want:  Entry{Date: date, Tech: "refactor cache", English: "one two three four"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(defaults, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, ok := ParseField(f.Key())
		if !ok || got != f {
			t.Errorf("ParseField(%q) = %v, %v", f.Key(), got, ok)
		}
	}
	if _, ok := ParseField("music"); ok {
		t.Error("ParseField(music) ok = true, want false")
	}
}
