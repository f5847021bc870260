package converter

import (
	"fmt"
	"path/filepath"
	"strings"

	"source.hodakov.me/hdkv/vid2audio/internal/domains"
	"source.hodakov.me/hdkv/vid2audio/internal/formats"
)

// ResolveOutputPath returns outputDir/<input stem>.<format extension>.
// It does no I/O.
func ResolveOutputPath(input, outputDir string, format formats.Format) (string, error) {
	stem, ok := fileStem(input)
	if !ok {
		return "", fmt.Errorf("%w: %w: %w (%q)", ErrConverter, domains.ErrInvalidPath, ErrNoFileName, input)
	}

	return filepath.Join(outputDir, stem+"."+format.Extension()), nil
}

func fileStem(path string) (string, bool) {
	if path == "" || strings.HasSuffix(path, string(filepath.Separator)) {
		return "", false
	}

	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", false
	}

	// A dot-file like ".mp4" has no extension: the whole name is the stem.
	extension := filepath.Ext(name)
	if extension == name {
		return name, true
	}

	return strings.TrimSuffix(name, extension), true
}
