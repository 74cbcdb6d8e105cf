package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorewood/dailylog/internal/output"
	"github.com/gorewood/dailylog/internal/record"
)

// FormatJSON outputs the items as a JSON array to the printer.
func FormatJSON(printer *output.Printer, items []Item) error {
	return printer.WriteJSON(items)
}

// WriteJSONFiles writes each item as a separate JSON file to the output directory.
// Files are named <YYYY-MM-DD>.json.
func WriteJSONFiles(items []Item, dir string) error {
	for _, item := range items {
		filename := filepath.Join(dir, item.Date.Format(record.InputLayout)+".json")

		data, err := json.MarshalIndent(item, "", "  ")
		if err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to marshal record %s: %v", filename, err))
		}

		if err := os.WriteFile(filename, data, 0o600); err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to write file %s: %v", filename, err))
		}
	}

	return nil
}
