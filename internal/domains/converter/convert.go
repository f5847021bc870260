package converter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	"source.hodakov.me/hdkv/vid2audio/internal/domains"
	"source.hodakov.me/hdkv/vid2audio/internal/formats"
)

// ConvertOne extracts the audio track of input into outputDir using ffmpeg.
// On success, it returns the path of the written audio file.
func (c *Converter) ConvertOne(input, outputDir string, format formats.Format) (string, error) {
	if _, err := os.Stat(input); err != nil {
		return "", fmt.Errorf("%w: %w: %w (%w)", ErrConverter, domains.ErrInvalidPath, ErrNoSourceFile, err)
	}

	if !format.Valid() {
		return "", fmt.Errorf("%w: %w: %w (%s)", ErrConverter, domains.ErrInvalidInput, ErrUnknownFormat, format)
	}

	outputPath, err := ResolveOutputPath(input, outputDir, format)
	if err != nil {
		return "", err
	}

	err = c.EnsureToolAvailable()
	if err != nil {
		return "", err
	}

	ffmpegArgs := buildArgs(input, outputPath, format)

	c.app.Logger().WithFields(logrus.Fields{
		"source file":    input,
		"destination":    outputPath,
		"ffmpeg command": c.ffmpeg + " " + strings.Join(ffmpegArgs, " "),
	}).Debug("Extracting audio using ffmpeg...")

	ffmpeg := exec.Command(c.ffmpeg, ffmpegArgs...)

	var stdout, stderr bytes.Buffer
	ffmpeg.Stdout = &stdout
	ffmpeg.Stderr = &stderr

	err = ffmpeg.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			c.app.Logger().WithField("ffmpeg stderr", stderr.String()).Debug("Got ffmpeg stderr")

			return "", fmt.Errorf("%w: %w", ErrConverter, &ToolError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			})
		}

		return "", fmt.Errorf("%w: %w: %w (%w)", ErrConverter, domains.ErrIOFailure, ErrFailedToLaunchFFmpeg, err)
	}

	c.app.Logger().WithFields(logrus.Fields{
		"source file": input,
		"destination": outputPath,
	}).Debug("Audio extracted successfully")

	return outputPath, nil
}

// Exists reports whether an up-to-date, non-empty output for input is
// already present in outputDir.
func (c *Converter) Exists(input, outputDir string, format formats.Format) (string, bool) {
	outputPath, err := ResolveOutputPath(input, outputDir, format)
	if err != nil {
		return "", false
	}

	sourceInfo, err := os.Stat(input)
	if err != nil {
		return "", false
	}

	outputInfo, err := os.Stat(outputPath)
	if err != nil {
		return "", false
	}

	if outputInfo.Size() == 0 || outputInfo.ModTime().Before(sourceInfo.ModTime()) {
		return "", false
	}

	return outputPath, true
}

// buildArgs returns: overwrite, quiet logging, input, drop video, format
// specific args, output.
func buildArgs(input, outputPath string, format formats.Format) []string {
	ffmpegArgs := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
		"-vn",
	}

	ffmpegArgs = append(ffmpegArgs, format.Args()...)
	ffmpegArgs = append(ffmpegArgs, outputPath)

	return ffmpegArgs
}
