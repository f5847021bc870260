package converter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"source.hodakov.me/hdkv/vid2audio/internal/application"
	"source.hodakov.me/hdkv/vid2audio/internal/configuration"
)

// writeScript writes an executable shell script standing in for ffmpeg.
func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	return path
}

// succeedingFFmpeg writes its arguments to argsFile and creates the output file.
func succeedingFFmpeg(t *testing.T, argsFile string) string {
	t.Helper()

	return writeScript(t, `
if [ "$1" = "-version" ]; then
  echo "ffmpeg version fake"
  exit 0
fi
printf '%s\n' "$@" > "`+argsFile+`"
for last; do :; done
echo audio > "$last"
echo "some progress output"
`)
}

func failingFFmpeg(t *testing.T) string {
	t.Helper()

	return writeScript(t, `
if [ "$1" = "-version" ]; then
  exit 0
fi
echo "Invalid data found when processing input" >&2
exit 3
`)
}

func newTestConverter(t *testing.T, ffmpeg string) (*Converter, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	app := application.NewWithLogger(context.Background(), logger)

	config := configuration.Default()
	config.Transcoding.FFmpeg = ffmpeg
	app.SetConfig(config)

	return New(app), hook
}

func readLines(t *testing.T, path string) []string {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}
