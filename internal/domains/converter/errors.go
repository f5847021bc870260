package converter

import (
	"errors"
	"fmt"
	"strings"

	"source.hodakov.me/hdkv/vid2audio/internal/domains"
)

var (
	ErrConverter            = errors.New("converter")
	ErrNoSourceFile         = errors.New("source file does not exist")
	ErrNoFileName           = errors.New("can't extract file name")
	ErrUnknownFormat        = errors.New("unknown output format")
	ErrFFmpegNotFound       = errors.New("ffmpeg is not installed or not in PATH")
	ErrFailedToLaunchFFmpeg = errors.New("failed to launch ffmpeg")
)

// ToolError is returned when ffmpeg ran but exited with a non-zero status.
type ToolError struct {
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("ffmpeg exited with status %d", e.ExitCode)
	}

	return fmt.Sprintf("ffmpeg exited with status %d: %s", e.ExitCode, stderr)
}

func (e *ToolError) Is(target error) bool {
	return target == domains.ErrToolError
}
