package converter

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"source.hodakov.me/hdkv/vid2audio/internal/domains"
	"source.hodakov.me/hdkv/vid2audio/internal/formats"
)

func sourceFile(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	return path
}

func TestEnsureToolAvailable(t *testing.T) {
	dir := t.TempDir()

	notExecutable := filepath.Join(dir, "ffmpeg-noexec")
	if err := os.WriteFile(notExecutable, []byte("#!/bin/sh\nexit 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name    string
		ffmpeg  string
		wantErr bool
	}{
		{"present", writeScript(t, "exit 0\n"), false},
		{"non-zero version exit still counts as present", writeScript(t, "exit 1\n"), false},
		{"missing", filepath.Join(dir, "does-not-exist"), true},
		{"not executable", notExecutable, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converter, _ := newTestConverter(t, tt.ffmpeg)

			err := converter.EnsureToolAvailable()
			if tt.wantErr {
				if !errors.Is(err, domains.ErrMissingDependency) {
					t.Errorf("EnsureToolAvailable() = %v, want ErrMissingDependency", err)
				}

				return
			}

			if err != nil {
				t.Errorf("EnsureToolAvailable() = %v, want nil", err)
			}
		})
	}
}

func TestConvertOne_Success(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	converter, _ := newTestConverter(t, succeedingFFmpeg(t, argsFile))

	input := sourceFile(t, "Holiday Clip.MKV")
	outputDir := t.TempDir()

	output, err := converter.ConvertOne(input, outputDir, formats.Opus)
	if err != nil {
		t.Fatalf("ConvertOne: %v", err)
	}

	if want := filepath.Join(outputDir, "Holiday Clip.opus"); output != want {
		t.Errorf("output = %q, want %q", output, want)
	}

	if _, err := os.Stat(output); err != nil {
		t.Errorf("output file missing: %v", err)
	}

	want := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", input, "-vn",
		"-c:a", "libopus", "-b:a", "192k",
		output,
	}
	if got := readLines(t, argsFile); !slices.Equal(got, want) {
		t.Errorf("ffmpeg args = %q, want %q", got, want)
	}
}

func TestConvertOne_MissingInput(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	converter, _ := newTestConverter(t, succeedingFFmpeg(t, argsFile))

	_, err := converter.ConvertOne(filepath.Join(t.TempDir(), "gone.mp4"), t.TempDir(), formats.MP3)
	if !errors.Is(err, domains.ErrInvalidPath) || !errors.Is(err, ErrNoSourceFile) {
		t.Fatalf("ConvertOne error = %v, want ErrInvalidPath", err)
	}

	if _, err := os.Stat(argsFile); !errors.Is(err, os.ErrNotExist) {
		t.Error("ffmpeg was invoked for a missing input")
	}
}

func TestConvertOne_MissingTool(t *testing.T) {
	converter, _ := newTestConverter(t, filepath.Join(t.TempDir(), "no-ffmpeg"))

	_, err := converter.ConvertOne(sourceFile(t, "a.mp4"), t.TempDir(), formats.MP3)
	if !errors.Is(err, domains.ErrMissingDependency) {
		t.Fatalf("ConvertOne error = %v, want ErrMissingDependency", err)
	}
}

func TestConvertOne_ToolFailureCarriesStderr(t *testing.T) {
	converter, hook := newTestConverter(t, failingFFmpeg(t))

	_, err := converter.ConvertOne(sourceFile(t, "broken.mp4"), t.TempDir(), formats.AACCopy)
	if !errors.Is(err, domains.ErrToolError) {
		t.Fatalf("ConvertOne error = %v, want ErrToolError", err)
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error %v does not carry a *ToolError", err)
	}

	if toolErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", toolErr.ExitCode)
	}

	if !strings.Contains(toolErr.Stderr, "Invalid data found") {
		t.Errorf("Stderr = %q", toolErr.Stderr)
	}

	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("error text %q does not include stderr", err.Error())
	}

	if len(hook.AllEntries()) == 0 {
		t.Error("stderr was not logged")
	}
}

func TestConvertOne_UnknownFormat(t *testing.T) {
	converter, _ := newTestConverter(t, writeScript(t, "exit 0\n"))

	_, err := converter.ConvertOne(sourceFile(t, "a.mp4"), t.TempDir(), formats.Format(42))
	if !errors.Is(err, domains.ErrInvalidInput) {
		t.Fatalf("ConvertOne error = %v, want ErrInvalidInput", err)
	}
}

func TestExists(t *testing.T) {
	converter, _ := newTestConverter(t, writeScript(t, "exit 0\n"))

	input := sourceFile(t, "show.mp4")
	outputDir := t.TempDir()
	output := filepath.Join(outputDir, "show.mp3")

	if _, ok := converter.Exists(input, outputDir, formats.MP3); ok {
		t.Fatal("Exists() = true before any output was written")
	}

	if err := os.WriteFile(output, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, ok := converter.Exists(input, outputDir, formats.MP3); ok {
		t.Error("Exists() = true for an empty output")
	}

	if err := os.WriteFile(output, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(input, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if path, ok := converter.Exists(input, outputDir, formats.MP3); !ok || path != output {
		t.Errorf("Exists() = %q, %v, want %q, true", path, ok, output)
	}

	newer := time.Now().Add(time.Hour)
	if err := os.Chtimes(input, newer, newer); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if _, ok := converter.Exists(input, outputDir, formats.MP3); ok {
		t.Error("Exists() = true for an output older than its source")
	}
}
