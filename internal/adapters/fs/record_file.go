package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bft-labs/xhspost/internal/domain"
)

const recordFileName = "last_run.json"

// RecordFile stores the last RunRecord as JSON in a directory.
type RecordFile struct {
	dir string
}

// NewRecordFile creates a RecordFile for the given directory.
func NewRecordFile(dir string) *RecordFile {
	return &RecordFile{dir: dir}
}

// Load returns the last saved record.
// Returns an empty record and nil error if no record file exists.
func (r *RecordFile) Load(ctx context.Context) (domain.RunRecord, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.RunRecord{}, nil
		}
		return domain.RunRecord{}, err
	}

	var rec domain.RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.RunRecord{}, err
	}
	return rec, nil
}

// Save writes rec atomically (temp file, then rename).
func (r *RecordFile) Save(ctx context.Context, rec domain.RunRecord) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the record file.
func (r *RecordFile) Path() string {
	return filepath.Join(r.dir, recordFileName)
}
