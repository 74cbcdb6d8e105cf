package record

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

// fullDetails returns entry as Details with every field present.
func fullDetails(entry Entry) Details {
	var d Details
	for _, f := range Fields {
		d.Set(f, entry.Get(f))
	}
	return d
}

const sampleRecord = `# 2024/03/05

## 技术

> 细节：refactor cache

## 健身

> 细节：5k run

## 英语

> 细节：20 new words
`

func TestEncode_Layout(t *testing.T) {
	codec := NewCodec(DefaultLayout())
	entry := Entry{
		Date:    mustDate(t, "2024-03-05"),
		Tech:    "refactor cache",
		Fitness: "5k run",
		English: "20 new words",
	}

	got := string(codec.Encode(entry))
	if diff := cmp.Diff(sampleRecord, got); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
	if first := strings.SplitN(got, "\n", 2)[0]; first != "# 2024/03/05" {
		t.Errorf("first line = %q, want %q", first, "# 2024/03/05")
	}
}

func TestEncode_Deterministic(t *testing.T) {
	codec := NewCodec(DefaultLayout())
	entry := Entry{Date: mustDate(t, "2025-12-31"), Tech: "a", Fitness: "", English: "c"}

	first := codec.Encode(entry)
	for range 3 {
		if again := codec.Encode(entry); !bytes.Equal(first, again) {
			t.Fatalf("Encode() not deterministic:\n%s\nvs\n%s", first, again)
		}
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	layouts := map[string]Layout{
		"default": DefaultLayout(),
		"english": {Tech: "Tech", Fitness: "Fitness", English: "English", Label: "Detail: "},
	}
	entries := []Entry{
		{Tech: "refactor cache", Fitness: "5k run", English: "20 new words"},
		{Tech: "read 细节：inside text", Fitness: "> quoted", English: "x"},
		{Tech: "a", Fitness: "b", English: "c"},
	}

	for name, layout := range layouts {
		codec := NewCodec(layout)
		for _, entry := range entries {
			entry.Date = mustDate(t, "2024-03-05")
			got := codec.Decode(codec.Encode(entry))
			want := fullDetails(entry)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s: Decode(Encode(%+v)) mismatch (-want +got):\n%s", name, entry, diff)
			}
		}
	}
}

func TestDecode_EmptyFieldsRoundTrip(t *testing.T) {
	codec := NewCodec(Layout{Tech: "Tech", Fitness: "Fitness", English: "English", Label: "Detail: "})
	entry := Entry{Date: mustDate(t, "2024-03-05")}

	got := codec.Decode(codec.Encode(entry))
	if diff := cmp.Diff(fullDetails(entry), got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "empty input",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "unrelated text",
			input: "hello\n> quote without heading\n",
			want:  map[string]string{},
		},
		{
			name:  "full record",
			input: sampleRecord,
			want:  map[string]string{"tech": "refactor cache", "fitness": "5k run", "english": "20 new words"},
		},
		{
			name:  "crlf line endings",
			input: strings.ReplaceAll(sampleRecord, "\n", "\r\n"),
			want:  map[string]string{"tech": "refactor cache", "fitness": "5k run", "english": "20 new words"},
		},
		{
			name:  "heading without detail line",
			input: "## 技术\n\nplain text\n\n## 健身\n\n> 细节：swim\n",
			want:  map[string]string{"fitness": "swim"},
		},
		{
			name:  "only first detail line is read",
			input: "## 技术\n> 细节：first\n> 细节：second\n",
			want:  map[string]string{"tech": "first"},
		},
		{
			name:  "detail line without label keeps raw text",
			input: "## 英语\n\n> just words\n",
			want:  map[string]string{"english": "just words"},
		},
		{
			name:  "nested quote markers are stripped",
			input: "## 英语\n\n>> 细节：deep\n",
			want:  map[string]string{"english": "deep"},
		},
		{
			name:  "heading with trailing space is not recognized",
			input: "## 技术 \n\n> 细节：ignored\n",
			want:  map[string]string{},
		},
		{
			name:  "later heading rearms before detail",
			input: "## 技术\n## 健身\n> 细节：run\n",
			want:  map[string]string{"fitness": "run"},
		},
		{
			name:  "repeated section keeps last value",
			input: "## 技术\n> 细节：one\n## 技术\n> 细节：two\n",
			want:  map[string]string{"tech": "two"},
		},
		{
			name:  "bare carriage returns end lines",
			input: "## 技术\r> 细节：cr only\r",
			want:  map[string]string{"tech": "cr only"},
		},
		{
			name:  "unicode line separator ends a line",
			input: "## 健身\u2028> 细节：run\u2029## 英语\u0085> 细节：words\n",
			want:  map[string]string{"fitness": "run", "english": "words"},
		},
		{
			name:  "empty detail is present",
			input: "## 健身\n\n> 细节：\n",
			want:  map[string]string{"fitness": ""},
		},
	}

	codec := NewCodec(DefaultLayout())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codec.Decode([]byte(tt.input)).Map()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_NormalizedTextRoundTrips(t *testing.T) {
	codec := NewCodec(DefaultLayout())
	input := Entry{
		Date:    mustDate(t, "2024-03-05"),
		Tech:    "line\u2028separated",
		Fitness: "form\ffeed\vtab",
		English: "next\u0085line\rend",
	}
	entry := Merge(Details{}, input)

	got := codec.Decode(codec.Encode(entry)).Map()
	want := map[string]string{
		"tech":    "line separated",
		"fitness": "form feed tab",
		"english": "next line end",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode(Encode(Merge())) mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_AbsentVersusEmpty(t *testing.T) {
	codec := NewCodec(DefaultLayout())
	details := codec.Decode([]byte("## 健身\n\n> 细节：\n"))

	if v := details.Get(Fitness); !v.Present || v.Text != "" {
		t.Errorf("fitness = %+v, want present empty", v)
	}
	if v := details.Get(Tech); v.Present {
		t.Errorf("tech = %+v, want absent", v)
	}
}

func TestNewCodec_FillsMissingLayout(t *testing.T) {
	codec := NewCodec(Layout{Tech: "Code"})
	got := codec.Layout()

	want := DefaultLayout()
	want.Tech = "Code"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Layout() mismatch (-want +got):\n%s", diff)
	}
}
