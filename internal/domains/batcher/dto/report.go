package dto

import "time"

// ProgressFunc receives the number of processed files and the batch size
// after every completed file. Calls are never concurrent.
type ProgressFunc func(current, total int)

// Report summarizes a finished batch.
type Report struct {
	RunID     string
	Format    string
	OutputDir string

	Total     int
	Succeeded int
	Failed    int
	Skipped   int

	Failures []Failure

	Started  time.Time
	Finished time.Time
}

// Failure describes a single file that could not be converted.
type Failure struct {
	Path   string
	Reason string
}

func (r *Report) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}
