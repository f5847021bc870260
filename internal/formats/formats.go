package formats

import (
	"fmt"
	"strconv"
	"strings"
)

// Format is one of the audio encodings vid2audio can produce.
type Format int

const (
	MP3 Format = iota + 1
	AACCopy
	Opus
)

type definition struct {
	name        string
	extension   string
	description string
	args        []string
	aliases     []string
}

var definitions = map[Format]definition{
	MP3: {
		name:        "mp3",
		extension:   "mp3",
		description: "MP3 (VBR best quality, widest compatibility)",
		args:        []string{"-q:a", "0"},
		aliases:     []string{"mp3"},
	},
	AACCopy: {
		name:        "aac",
		extension:   "aac",
		description: "AAC (stream copy, fastest, lossless)",
		args:        []string{"-c:a", "copy"},
		aliases:     []string{"aac", "aac-copy"},
	},
	Opus: {
		name:        "opus",
		extension:   "opus",
		description: "Opus (modern, efficient at low bitrates)",
		args:        []string{"-c:a", "libopus", "-b:a", "192k"},
		aliases:     []string{"opus"},
	},
}

// List returns every supported format in menu order.
func List() []Format {
	return []Format{MP3, AACCopy, Opus}
}

// Parse accepts either a 1-based position in List or a case-insensitive
// format name or alias.
func Parse(input string) (Format, error) {
	selector := strings.ToLower(strings.TrimSpace(input))
	if selector == "" {
		return 0, fmt.Errorf("%w: %w (%s)", ErrFormats, ErrInvalidSelector, "empty selector")
	}

	all := List()

	if ordinal, err := strconv.Atoi(selector); err == nil {
		if ordinal < 1 || ordinal > len(all) {
			return 0, fmt.Errorf(
				"%w: %w (%s)", ErrFormats, ErrInvalidSelector,
				fmt.Sprintf("%q is out of range, choose 1-%d", input, len(all)),
			)
		}

		return all[ordinal-1], nil
	}

	for _, format := range all {
		for _, alias := range definitions[format].aliases {
			if selector == alias {
				return format, nil
			}
		}
	}

	return 0, fmt.Errorf(
		"%w: %w (%s)", ErrFormats, ErrInvalidSelector,
		fmt.Sprintf("unknown format %q, choose 1-%d or one of %s", input, len(all), strings.Join(Names(), "/")),
	)
}

// Names returns canonical format names in menu order.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for _, format := range List() {
		names = append(names, format.String())
	}

	return names
}

func (f Format) String() string {
	if def, ok := definitions[f]; ok {
		return def.name
	}

	return fmt.Sprintf("format(%d)", int(f))
}

// Extension returns the output file extension without the leading dot.
func (f Format) Extension() string {
	return definitions[f].extension
}

func (f Format) Description() string {
	return definitions[f].description
}

// Args returns the format specific ffmpeg arguments. The slice is a copy.
func (f Format) Args() []string {
	args := definitions[f].args

	return append(make([]string, 0, len(args)), args...)
}

func (f Format) Valid() bool {
	_, ok := definitions[f]

	return ok
}
