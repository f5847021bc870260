package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	batcherdto "source.hodakov.me/hdkv/vid2audio/internal/domains/batcher/dto"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/journal/dto"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/journal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	format TEXT NOT NULL,
	output_dir TEXT NOT NULL,
	total INTEGER NOT NULL,
	succeeded INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS run_failures (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL REFERENCES runs(id),
	path TEXT NOT NULL,
	reason TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS run_failures_run_id ON run_failures(run_id);
`

func (j *Journal) open() error {
	err := os.MkdirAll(filepath.Dir(j.path), 0o755)
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", j.path)
	if err != nil {
		return err
	}

	_, err = db.Exec(schema)
	if err != nil {
		_ = db.Close()

		return fmt.Errorf("%w (%w)", ErrFailedToCreateSchema, err)
	}

	j.db = db

	return nil
}

// RecordRun stores a finished batch together with its failures.
func (j *Journal) RecordRun(report *batcherdto.Report) error {
	if j.db == nil {
		return nil
	}

	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w (%w)", ErrJournal, ErrFailedToRecordRun, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(
		`INSERT INTO runs (id, format, output_dir, total, succeeded, failed, skipped, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, report.Format, report.OutputDir,
		report.Total, report.Succeeded, report.Failed, report.Skipped,
		report.Started, report.Finished,
	)
	if err != nil {
		return fmt.Errorf("%w: %w (%w)", ErrJournal, ErrFailedToRecordRun, err)
	}

	for _, failure := range report.Failures {
		_, err = tx.Exec(
			`INSERT INTO run_failures (run_id, path, reason) VALUES (?, ?, ?)`,
			report.RunID, failure.Path, failure.Reason,
		)
		if err != nil {
			return fmt.Errorf("%w: %w (%w)", ErrJournal, ErrFailedToRecordRun, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("%w: %w (%w)", ErrJournal, ErrFailedToRecordRun, err)
	}

	j.app.Logger().WithFields(logrus.Fields{
		"run":      report.RunID,
		"failures": len(report.Failures),
	}).Debug("Run recorded in journal")

	return nil
}

// ListRuns returns up to limit most recent runs, newest first.
func (j *Journal) ListRuns(limit int) ([]*dto.Run, error) {
	if j.db == nil {
		return nil, nil
	}

	rows, err := j.db.Query(
		`SELECT id, format, output_dir, total, succeeded, failed, skipped, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w (%w)", ErrJournal, ErrFailedToListRuns, err)
	}
	defer rows.Close()

	var runs []*models.Run

	for rows.Next() {
		run := new(models.Run)

		err := rows.Scan(
			&run.ID, &run.Format, &run.OutputDir,
			&run.Total, &run.Succeeded, &run.Failed, &run.Skipped,
			&run.Started, &run.Finished,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w (%w)", ErrJournal, ErrFailedToListRuns, err)
		}

		runs = append(runs, run)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("%w: %w (%w)", ErrJournal, ErrFailedToListRuns, err)
	}

	result := make([]*dto.Run, 0, len(runs))

	for _, run := range runs {
		failures, err := j.listFailures(run.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w (%w)", ErrJournal, ErrFailedToListRuns, err)
		}

		result = append(result, models.RunModelToDTO(run, failures))
	}

	return result, nil
}

func (j *Journal) listFailures(runID string) ([]*models.RunFailure, error) {
	rows, err := j.db.Query(
		`SELECT run_id, path, reason FROM run_failures WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []*models.RunFailure

	for rows.Next() {
		failure := new(models.RunFailure)

		err := rows.Scan(&failure.RunID, &failure.Path, &failure.Reason)
		if err != nil {
			return nil, err
		}

		failures = append(failures, failure)
	}

	return failures, rows.Err()
}
