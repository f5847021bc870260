package locator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"source.hodakov.me/hdkv/vid2audio/internal/domains"
)

// FindCandidates walks root recursively and returns the absolute paths of
// all regular files with a supported video extension, sorted. Any error
// during the walk aborts the search; partial results are never returned.
func (l *Locator) FindCandidates(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w (%w)", ErrLocator, domains.ErrInvalidPath, ErrNoSource, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %w: %w (%s)", ErrLocator, domains.ErrInvalidPath, ErrSourceIsNotDir, root)
	}

	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w (%w)", ErrLocator, domains.ErrInvalidPath, err)
	}

	l.app.Logger().WithField("path", absoluteRoot).Debug("Looking for video files")

	var candidates []string

	// WalkDir does not follow symlinks, so every path is visited once.
	err = filepath.WalkDir(absoluteRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		if isVideoFile(path) {
			candidates = append(candidates, path)
		}

		return nil
	})
	if err != nil {
		l.app.Logger().WithError(err).WithField("path", absoluteRoot).Error("Failed to walk source directory")

		return nil, fmt.Errorf("%w: %w: %w (%w)", ErrLocator, domains.ErrIOFailure, ErrFailedToWalkTree, err)
	}

	slices.Sort(candidates)

	l.app.Logger().WithFields(logrus.Fields{
		"path":  absoluteRoot,
		"found": len(candidates),
	}).Debug("Video files discovery finished")

	return candidates, nil
}

func isVideoFile(path string) bool {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := videoExtensions[extension]

	return ok
}
