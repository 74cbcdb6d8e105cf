// Package export formats daily records for use outside the record directory.
//
// # Formats
//
//   - JSON: one object per day with the date and every detail present
//   - Markdown: a page per day with YAML frontmatter, suitable for static
//     site generators
//
// # JSON Export
//
//	export.FormatJSON(printer, items)           // Write to printer
//	export.WriteJSONFiles(items, "/path/to/dir") // Write individual files
//
// # Markdown Export
//
//	page := export.FormatMarkdown(item, layout)       // Get markdown string
//	export.WriteMarkdownFiles(items, layout, "/path") // Write individual files
//
// Example markdown output:
//
//	---
//	schema: dailylog.export/v1
//	date: "2024-03-05"
//	title: 2024/03/05
//	details: [tech, fitness, english]
//	---
//
//	# 2024/03/05
//
//	**技术:** refactor cache
//
//	**健身:** 5k run
//
//	**英语:** 20 new words
//
// # File Naming
//
// Files are named after the record date: 2024-03-05.json, 2024-03-05.md.
package export
