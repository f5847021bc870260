package dto

import "time"

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
	Failures  []string
}
