package models

import (
	"time"

	"source.hodakov.me/hdkv/vid2audio/internal/domains/journal/dto"
)

// Run is a row of the runs table.
type Run struct {
	ID        string
	Format    string
	OutputDir string
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Started   time.Time
	Finished  time.Time
}

// RunFailure is a row of the run_failures table.
type RunFailure struct {
	RunID  string
	Path   string
	Reason string
}

func RunModelToDTO(run *Run, failures []*RunFailure) *dto.Run {
	paths := make([]string, 0, len(failures))
	for _, failure := range failures {
		paths = append(paths, failure.Path)
	}

	return &dto.Run{
		ID:        run.ID,
		Format:    run.Format,
		OutputDir: run.OutputDir,
		Total:     run.Total,
		Succeeded: run.Succeeded,
		Failed:    run.Failed,
		Skipped:   run.Skipped,
		Started:   run.Started,
		Finished:  run.Finished,
		Failures:  paths,
	}
}
