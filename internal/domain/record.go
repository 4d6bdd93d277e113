package domain

import "time"

// RunRecord is the persisted outcome of the last run.
type RunRecord struct {
	RunID        string    `json:"run_id"`
	FilePath     string    `json:"file_path"`
	Topics       []string  `json:"topics"`
	State        string    `json:"state"`
	Strategy     string    `json:"strategy,omitempty"`
	UploadStatus string    `json:"upload_status,omitempty"`
	SoftFailures []string  `json:"soft_failures,omitempty"`
	Error        string    `json:"error,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}
