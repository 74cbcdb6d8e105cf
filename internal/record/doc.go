// Package record stores one markdown file per calendar day.
//
// A record holds three free-text details, one per Field, under fixed section
// headings:
//
//	# 2024/03/05
//
//	## 技术
//
//	> 细节：refactor cache
//
//	...
//
// The Codec maps between that text and a Details value; the Store maps a date to
// its file under the record root, loads prior details as prompt defaults and
// rewrites the whole file on Save. Writing is idempotent: saving a record with
// every field left at its default reproduces the same bytes.
package record
