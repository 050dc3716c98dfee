// Package store persists finalized candidate records, one JSON file per
// record under a local data directory, with an optional S3 upload on top.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/talentscout/hiring-assistant/internal/candidate"
	"go.uber.org/zap"
)

const defaultDir = "data/candidates"

// StorageError wraps any persistence failure. It is surfaced to the caller
// so the in-memory record can be retried; nothing here retries automatically.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store appends records to the data directory. Existing entries are never
// rewritten: appending the same record twice produces two files.
type Store struct {
	dir       string
	anonymize bool
	logger    *zap.Logger
}

func New(dir string, anonymize bool, logger *zap.Logger) *Store {
	if dir == "" {
		dir = defaultDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, anonymize: anonymize, logger: logger}
}

// Append writes one record and returns the path of the created entry.
// In anonymize mode a record still carrying raw identifiers is refused.
func (s *Store) Append(rec *candidate.Record) (string, error) {
	if rec == nil {
		return "", &StorageError{Op: "append", Err: fmt.Errorf("record is nil")}
	}

	if s.anonymize && (rec.FullName != "" || rec.Email != "" || rec.Phone != "") {
		return "", &StorageError{Op: "append", Err: fmt.Errorf("record carries raw identifiers in anonymized mode")}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &StorageError{Op: "mkdir", Err: err}
	}

	base := fmt.Sprintf("candidate_%s_%s", time.Now().UTC().Format("20060102T150405Z"), rec.ID)

	// Appending the same record twice must produce two entries, so bump a
	// suffix instead of overwriting on a name collision.
	var file *os.File
	var path string
	for i := 0; ; i++ {
		name := base + ".json"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.json", base, i)
		}
		path = filepath.Join(s.dir, name)

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			file = f
			break
		}
		if !os.IsExist(err) {
			return "", &StorageError{Op: "create", Err: err}
		}
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", &StorageError{Op: "encode", Err: err}
	}

	s.logger.Info("candidate record stored",
		zap.String("path", path),
		zap.String("record_id", rec.ID),
		zap.Bool("anonymized", rec.Anonymized),
	)

	return path, nil
}

// Dir returns the store's data directory.
func (s *Store) Dir() string { return s.dir }
