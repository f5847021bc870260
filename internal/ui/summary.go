package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	batcherdto "source.hodakov.me/hdkv/vid2audio/internal/domains/batcher/dto"
	journaldto "source.hodakov.me/hdkv/vid2audio/internal/domains/journal/dto"
	"source.hodakov.me/hdkv/vid2audio/internal/formats"
)

// PrintFormats lists the accepted video extensions and the output formats.
func PrintFormats(out io.Writer, extensions []string) {
	fmt.Fprintln(out, "Input formats (video):")

	for i, extension := range extensions {
		if i > 0 && i%5 == 0 {
			fmt.Fprintln(out)
		}

		fmt.Fprintf(out, "  %-8s", strings.ToUpper(extension))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Output formats (audio):")

	for i, format := range formats.List() {
		fmt.Fprintf(out, "  %d) %-5s %s\n", i+1, strings.ToUpper(format.Extension()), format.Description())
	}
}

// PrintSummary prints the outcome of a batch.
func PrintSummary(out io.Writer, report *batcherdto.Report, verbose bool) {
	fmt.Fprintf(out, "Processed %d files in %s, output directory: %s\n",
		report.Total, report.Duration().Round(time.Millisecond), report.OutputDir)

	if report.Failed == 0 && !verbose {
		return
	}

	fmt.Fprintf(out, "  succeeded: %d", report.Succeeded)

	if report.Skipped > 0 {
		fmt.Fprintf(out, " (%d already up to date)", report.Skipped)
	}

	fmt.Fprintln(out)

	if report.Failed == 0 {
		return
	}

	fmt.Fprintf(out, "  failed:    %d\n", report.Failed)

	for _, failure := range report.Failures {
		fmt.Fprintf(out, "    %s\n", failure.Path)
	}

	fmt.Fprintln(out, "Check that the failed files are complete and in a supported format.")
}

// PrintHistory prints journal entries, newest first.
func PrintHistory(out io.Writer, runs []*journaldto.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No conversion runs recorded yet.")

		return
	}

	for _, run := range runs {
		fmt.Fprintf(out, "%s  %-4s  %d ok / %d failed / %d total  %s  (%s)\n",
			run.Started.Local().Format(time.DateTime), run.Format,
			run.Succeeded, run.Failed, run.Total, run.OutputDir, run.ID)

		for _, path := range run.Failures {
			fmt.Fprintf(out, "    failed: %s\n", path)
		}
	}
}
