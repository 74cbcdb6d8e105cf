package record

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		fileDate   string
		content    string
		wantIssues []string
	}{
		{
			name:     "clean record",
			fileDate: "2024-03-05",
			content:  sampleRecord,
		},
		{
			name:       "header date disagrees with file name",
			fileDate:   "2024-03-06",
			content:    sampleRecord,
			wantIssues: []string{"heading date 2024/03/05 does not match file date 2024/03/06"},
		},
		{
			name:       "missing date heading",
			fileDate:   "2024-03-05",
			content:    strings.TrimPrefix(sampleRecord, "# 2024/03/05\n"),
			wantIssues: []string{"missing or unreadable date heading"},
		},
		{
			name:       "duplicate section",
			fileDate:   "2024-03-05",
			content:    sampleRecord + "\n## 技术\n\n> 细节：again\n",
			wantIssues: []string{"tech: section appears 2 times"},
		},
		{
			name:     "headings with stray spaces are not in standard form",
			fileDate: "2024-03-05",
			content:  "# 2024/03/05\n\n## 技术 \n\n> 细节：a\n\n##  健身\n\n> 细节：b\n\n## 英语\n\n> 细节：c\n",
			wantIssues: []string{
				"tech: heading not in standard form",
				"fitness: heading not in standard form",
			},
		},
		{
			name:       "setext heading is not in standard form",
			fileDate:   "2024-03-05",
			content:    strings.Replace(sampleRecord, "## 技术\n", "技术\n---\n", 1),
			wantIssues: []string{"tech: heading not in standard form"},
		},
		{
			name:     "crlf record is in standard form",
			fileDate: "2024-03-05",
			content:  strings.ReplaceAll(sampleRecord, "\n", "\r\n"),
		},
		{
			name:     "missing section and missing detail",
			fileDate: "2024-03-05",
			content:  "# 2024/03/05\n\n## 技术\n\nno quote here\n\n## 英语\n\n> 细节：x\n",
			wantIssues: []string{
				"tech: section has no detail line",
				"fitness: section missing",
			},
		},
	}

	codec := NewCodec(DefaultLayout())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := codec.Check(mustDate(t, tt.fileDate), []byte(tt.content))

			var got []string
			for _, issue := range issues {
				msg := issue.Message
				if issue.Field != "" {
					msg = issue.Field + ": " + msg
				}
				got = append(got, msg)
			}

			if strings.Join(got, "\n") != strings.Join(tt.wantIssues, "\n") {
				t.Errorf("Check() issues =\n%s\nwant\n%s",
					strings.Join(got, "\n"), strings.Join(tt.wantIssues, "\n"))
			}
		})
	}
}

func TestInspect_CountsSections(t *testing.T) {
	codec := NewCodec(DefaultLayout())
	ins := codec.Inspect([]byte(sampleRecord))

	if ins.HeaderDate.Format(InputLayout) != "2024-03-05" {
		t.Errorf("HeaderDate = %v", ins.HeaderDate)
	}
	for _, f := range Fields {
		if ins.Sections[f] != 1 {
			t.Errorf("Sections[%s] = %d, want 1", f, ins.Sections[f])
		}
		if ins.Misformed[f] != 0 {
			t.Errorf("Misformed[%s] = %d, want 0", f, ins.Misformed[f])
		}
		if ins.Undetailed[f] != 0 {
			t.Errorf("Undetailed[%s] = %d, want 0", f, ins.Undetailed[f])
		}
	}
}

func TestRepair(t *testing.T) {
	codec := NewCodec(DefaultLayout())
	misformed := "# 2024/03/05\n\n## 技术 \n\n> 细节：a\n\n##  健身\n\n> 细节：b\n\n## 英语\n\n> 细节：c\n"

	if got := codec.Decode([]byte(misformed)).Len(); got != 1 {
		t.Fatalf("Decode() read %d fields, want 1", got)
	}

	got := codec.Repair([]byte(misformed)).Map()
	want := map[string]string{"tech": "a", "fitness": "b", "english": "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Repair() mismatch (-want +got):\n%s", diff)
	}
}

func TestRepair_StandardRecordMatchesDecode(t *testing.T) {
	codec := NewCodec(DefaultLayout())

	if diff := cmp.Diff(codec.Decode([]byte(sampleRecord)), codec.Repair([]byte(sampleRecord))); diff != "" {
		t.Errorf("Repair() differs from Decode() (-decode +repair):\n%s", diff)
	}
}
