package converter

import (
	"errors"
	"fmt"
	"os/exec"

	"source.hodakov.me/hdkv/vid2audio/internal/domains"
)

// EnsureToolAvailable checks that ffmpeg can be launched. Only a launch
// failure counts: the exit status of "ffmpeg -version" is ignored.
func (c *Converter) EnsureToolAvailable() error {
	probe := exec.Command(c.ffmpeg, "-version")

	err := probe.Run()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		c.app.Logger().WithError(err).WithField("ffmpeg", c.ffmpeg).Debug("ffmpeg probe failed")

		return fmt.Errorf("%w: %w: %w (%w)", ErrConverter, domains.ErrMissingDependency, ErrFFmpegNotFound, err)
	}

	return nil
}
