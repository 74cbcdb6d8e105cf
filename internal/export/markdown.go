package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/dailylog/internal/output"
	"github.com/gorewood/dailylog/internal/record"
)

// SchemaVersion identifies the markdown export format.
const SchemaVersion = "dailylog.export/v1"

// frontmatter is the YAML header of an exported page.
type frontmatter struct {
	Schema  string   `yaml:"schema"`
	Date    string   `yaml:"date"`
	Title   string   `yaml:"title"`
	Details []string `yaml:"details,flow,omitempty"`
}

// FormatMarkdown formats a single item as a markdown page with YAML
// frontmatter. Details the record lacks are left out.
func FormatMarkdown(item Item, layout record.Layout) string {
	var builder strings.Builder

	writeFrontmatter(&builder, item)
	writeBody(&builder, item, layout)

	return builder.String()
}

// writeFrontmatter writes the YAML frontmatter section.
func writeFrontmatter(builder *strings.Builder, item Item) {
	fm := frontmatter{
		Schema: SchemaVersion,
		Date:   item.Date.Format(record.InputLayout),
		Title:  item.Date.Format(record.HeaderLayout),
	}
	for _, f := range record.Fields {
		if item.Details.Get(f).Present {
			fm.Details = append(fm.Details, f.Key())
		}
	}

	// A struct of strings always marshals.
	data, _ := yaml.Marshal(fm)
	builder.WriteString("---\n")
	builder.Write(data)
	builder.WriteString("---\n\n")
}

// writeBody writes the title and one paragraph per detail.
func writeBody(builder *strings.Builder, item Item, layout record.Layout) {
	fmt.Fprintf(builder, "# %s\n", item.Date.Format(record.HeaderLayout))
	for _, f := range record.Fields {
		v := item.Details.Get(f)
		if !v.Present {
			continue
		}
		fmt.Fprintf(builder, "\n**%s:** %s\n", layout.Heading(f), v.Text)
	}
}

// WriteMarkdownFiles writes each item as a separate markdown file to the output directory.
// Files are named <YYYY-MM-DD>.md.
func WriteMarkdownFiles(items []Item, layout record.Layout, dir string) error {
	for _, item := range items {
		filename := filepath.Join(dir, item.Date.Format(record.InputLayout)+".md")

		if err := os.WriteFile(filename, []byte(FormatMarkdown(item, layout)), 0o600); err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to write file %s: %v", filename, err))
		}
	}

	return nil
}
