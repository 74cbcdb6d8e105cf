package record

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/gorewood/dailylog/internal/output"
)

// Store reads and writes records as YYYY_MM_DD.md files in a root directory.
type Store struct {
	root   string
	codec  *Codec
	logger *zap.Logger
}

// NewStore creates a Store for root using layout.
// If logger is nil, logging is disabled.
func NewStore(root string, layout Layout, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{root: root, codec: NewCodec(layout), logger: logger}
}

// Root returns the record root directory.
func (s *Store) Root() string {
	return s.root
}

// Codec returns the codec the store reads and writes with.
func (s *Store) Codec() *Codec {
	return s.codec
}

// Path returns the file path of the record for date.
func (s *Store) Path(date time.Time) string {
	return filepath.Join(s.root, FileName(date))
}

// Exists reports whether a record file exists for date.
func (s *Store) Exists(date time.Time) bool {
	info, err := os.Stat(s.Path(date))
	return err == nil && !info.IsDir()
}

// Read returns the raw content of the record for date.
// Returns a user error if there is no record for that date.
func (s *Store) Read(date time.Time) ([]byte, error) {
	path := s.Path(date)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, output.NewUserErrorf("no record for %s", date.Format(InputLayout))
		}
		return nil, output.NewSystemErrorWithCause("failed to read record: "+path, err)
	}
	return data, nil
}

// LoadDefaults returns the details already recorded for date, used to pre-fill
// prompts. A missing file yields empty Details.
func (s *Store) LoadDefaults(date time.Time) (Details, error) {
	data, err := os.ReadFile(s.Path(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("no existing record", zap.String("path", s.Path(date)))
			return Details{}, nil
		}
		return Details{}, output.NewSystemErrorWithCause("failed to read record: "+s.Path(date), err)
	}

	details := s.codec.Decode(data)
	s.logger.Debug("loaded record defaults",
		zap.String("path", s.Path(date)),
		zap.Int("fields", details.Len()))
	return details, nil
}

// Save renders entry and overwrites its record file, creating the root directory
// and the file as needed. Returns the file path.
func (s *Store) Save(entry Entry) (string, error) {
	path := s.Path(entry.Date)

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to create record directory", err)
	}

	if err := atomicWrite(path, s.codec.Encode(entry)); err != nil {
		return "", output.NewSystemErrorWithCause("failed to write record", err)
	}

	s.logger.Debug("saved record", zap.String("path", path))
	return path, nil
}

// List returns the dates of all records under the root, newest first.
// Files whose names are not record names are ignored. A missing root yields no
// dates.
func (s *Store) List() ([]time.Time, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, output.NewSystemErrorWithCause("failed to read record directory", err)
	}

	var dates []time.Time
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if d, ok := ParseFileName(de.Name()); ok {
			dates = append(dates, d)
		}
	}

	slices.SortFunc(dates, func(a, b time.Time) int {
		return b.Compare(a)
	})
	return dates, nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*"+Ext)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
