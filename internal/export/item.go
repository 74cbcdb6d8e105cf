package export

import (
	"encoding/json"
	"time"

	"github.com/gorewood/dailylog/internal/record"
)

// Item is one record to export.
type Item struct {
	Date    time.Time
	Details record.Details
}

// MarshalJSON writes the date and only the details the record holds, so an
// empty detail and a missing one stay distinguishable.
func (i Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(record.Fields)+1)
	for key, text := range i.Details.Map() {
		out[key] = text
	}
	out["date"] = i.Date.Format(record.InputLayout)
	return json.Marshal(out)
}

// Between keeps the items dated within [since, until]. A zero bound is open.
func Between(items []Item, since, until time.Time) []Item {
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if !since.IsZero() && item.Date.Before(since) {
			continue
		}
		if !until.IsZero() && item.Date.After(until) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// Load reads every record in store, newest first.
func Load(store *record.Store) ([]Item, error) {
	dates, err := store.List()
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(dates))
	for _, date := range dates {
		details, err := store.LoadDefaults(date)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Date: date, Details: details})
	}
	return items, nil
}
