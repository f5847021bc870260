package batcher

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/batcher/dto"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/batcher/models"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/converter"
	"source.hodakov.me/hdkv/vid2audio/internal/formats"
)

// outcome is the result of one file, local to the worker that produced it.
type outcome struct {
	input   string
	output  string
	skipped bool
	err     error
}

// ConvertBatch converts every file and returns how many succeeded and failed.
func (b *Batcher) ConvertBatch(
	files []string, outputDir string, format formats.Format, onProgress dto.ProgressFunc,
) (int, int) {
	report := b.Run(files, outputDir, format, onProgress)

	return report.Succeeded, report.Failed
}

// Run converts files on a bounded worker pool. A failed file never stops
// the batch. onProgress, if set, is called exactly once per file from the
// calling goroutine, with a strictly increasing count.
func (b *Batcher) Run(
	files []string, outputDir string, format formats.Format, onProgress dto.ProgressFunc,
) *dto.Report {
	report := &dto.Report{
		RunID:     uuid.NewString(),
		Format:    format.String(),
		OutputDir: outputDir,
		Total:     len(files),
		Started:   time.Now().UTC(),
	}

	if len(files) == 0 {
		report.Finished = report.Started

		return report
	}

	logger := b.app.Logger().WithField("run", report.RunID)

	logger.WithFields(logrus.Fields{
		"files":    len(files),
		"format":   format.String(),
		"parallel": b.parallel,
		"output":   outputDir,
	}).Info("Starting batch conversion")

	warnCollisions(logger, files, outputDir, format)

	tally := new(models.Tally)
	outcomes := make(chan outcome, b.parallel)

	go func() {
		var workers errgroup.Group
		workers.SetLimit(b.parallel)

		for _, file := range files {
			// Workers always return nil: a failure must not cancel siblings.
			workers.Go(func() error {
				outcomes <- b.convert(file, outputDir, format)

				return nil
			})
		}

		_ = workers.Wait()

		close(outcomes)
	}()

	for result := range outcomes {
		snapshot := tally.Record(result.err == nil, result.skipped)

		if result.err != nil {
			logger.WithError(result.err).WithField("file", result.input).Error("Failed to convert file")

			report.Failures = append(report.Failures, dto.Failure{
				Path:   result.input,
				Reason: result.err.Error(),
			})
		} else {
			logger.WithFields(logrus.Fields{
				"file":    result.input,
				"output":  result.output,
				"skipped": result.skipped,
			}).Debug("File converted")
		}

		if onProgress != nil {
			onProgress(snapshot.Processed, len(files))
		}
	}

	final := tally.Snapshot()

	report.Succeeded = final.Succeeded
	report.Failed = final.Failed
	report.Skipped = final.Skipped
	report.Finished = time.Now().UTC()

	logger.WithFields(logrus.Fields{
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
		"skipped":   report.Skipped,
		"duration":  report.Duration().String(),
	}).Info("Batch conversion finished")

	return report
}

func (b *Batcher) convert(input, outputDir string, format formats.Format) (result outcome) {
	result.input = input

	defer func() {
		if recovered := recover(); recovered != nil {
			result.output = ""
			result.skipped = false
			result.err = fmt.Errorf("%w: %w (%v)", ErrBatcher, ErrWorkerPanic, recovered)
		}
	}()

	if b.skipExisting {
		if output, ok := b.converter.Exists(input, outputDir, format); ok {
			result.output = output
			result.skipped = true

			return result
		}
	}

	result.output, result.err = b.converter.ConvertOne(input, outputDir, format)

	return result
}

// warnCollisions logs every output path claimed by more than one input.
// The files are still converted; the last writer wins.
func warnCollisions(logger *logrus.Entry, files []string, outputDir string, format formats.Format) {
	claimed := make(map[string]string, len(files))

	for _, file := range files {
		output, err := converter.ResolveOutputPath(file, outputDir, format)
		if err != nil {
			continue
		}

		if first, ok := claimed[output]; ok {
			logger.WithFields(logrus.Fields{
				"file":     file,
				"previous": first,
				"output":   output,
			}).Warn("Several files resolve to the same output, one will overwrite the other")

			continue
		}

		claimed[output] = file
	}
}
