package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"source.hodakov.me/hdkv/vid2audio/internal/application"
	"source.hodakov.me/hdkv/vid2audio/internal/domains"
	"source.hodakov.me/hdkv/vid2audio/internal/formats"
	"source.hodakov.me/hdkv/vid2audio/internal/ui"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130

	historyLimit = 20
)

// run drives a single invocation over the started domains and returns the
// process exit code.
func run(app *application.App, stdin io.Reader, stdout *os.File) int {
	config := app.Config()

	loc := app.RetrieveDomain(domains.LocatorName).(domains.Locator)
	conv := app.RetrieveDomain(domains.ConverterName).(domains.Converter)
	batch := app.RetrieveDomain(domains.BatcherName).(domains.Batcher)
	runJournal := app.RetrieveDomain(domains.JournalName).(domains.Journal)

	switch {
	case config.Runtime.ListFormats:
		ui.PrintFormats(stdout, loc.SupportedExtensions())

		return exitOK
	case config.Runtime.History:
		runs, err := runJournal.ListRuns(historyLimit)
		if err != nil {
			app.Logger().Error(err)

			return exitFailure
		}

		ui.PrintHistory(stdout, runs)

		return exitOK
	}

	if config.NeedsInteraction() {
		prompter := ui.NewPrompter(stdin, stdout)

		if config.Paths.Source == "" {
			source, err := prompter.SourceDirectory(config.RecentSources)
			if err != nil {
				app.Logger().Error(err)

				return exitFailure
			}

			config.Paths.Source = source
		}

		if config.Transcoding.Format == "" {
			format, err := prompter.Format()
			if err != nil {
				app.Logger().Error(err)

				return exitFailure
			}

			config.Transcoding.Format = format.String()
		}

		app.SetConfig(config)
	}

	format, err := formats.Parse(config.Transcoding.Format)
	if err != nil {
		app.Logger().Error(err)

		return exitFailure
	}

	files, err := loc.FindCandidates(config.Paths.Source)
	if err != nil {
		app.Logger().Error(err)

		return exitFailure
	}

	outputDir, err := filepath.Abs(config.OutputDirectory())
	if err != nil {
		app.Logger().Error(err)

		return exitFailure
	}

	logger := app.Logger().WithFields(logrus.Fields{
		"source": config.Paths.Source,
		"output": outputDir,
		"format": format.String(),
	})

	if len(files) == 0 {
		logger.Warn("No video files found")

		return exitOK
	}

	err = conv.EnsureToolAvailable()
	if err != nil {
		logger.Error(err)

		return exitFailure
	}

	err = os.MkdirAll(outputDir, 0o755)
	if err != nil {
		logger.WithError(err).Error("Failed to create output directory")

		return exitFailure
	}

	logger.WithField("files", len(files)).Info("Converting")

	progress := ui.NewProgress(stdout, ui.IsTerminal(stdout) && !config.Vid2Audio.Quiet, app.Logger())
	report := batch.Run(files, outputDir, format, progress.Update)

	err = runJournal.RecordRun(report)
	if err != nil {
		logger.Warn(err)
	}

	if !config.Vid2Audio.Quiet || report.Failed > 0 {
		ui.PrintSummary(stdout, report, config.Vid2Audio.Verbose)
	}

	source, err := filepath.Abs(config.Paths.Source)
	if err == nil {
		config.AddRecentSource(source)
	}

	if config.Runtime.SaveConfig {
		err = config.Save()
		if err != nil {
			logger.Error(err)

			return exitFailure
		}

		logger.WithField("path", config.Runtime.ConfigPath).Info("Settings saved")
	}

	if report.Failed > 0 {
		return exitFailure
	}

	return exitOK
}
