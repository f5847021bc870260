package locator

import (
	"slices"

	"source.hodakov.me/hdkv/vid2audio/internal/application"
	"source.hodakov.me/hdkv/vid2audio/internal/domains"
)

var (
	_ domains.Locator = new(Locator)
	_ domains.Domain  = new(Locator)
)

// Video container extensions accepted by FindCandidates (lowercase, no dot).
var videoExtensions = map[string]struct{}{
	"mp4":  {},
	"mkv":  {},
	"avi":  {},
	"mov":  {},
	"webm": {},
	"flv":  {},
	"wmv":  {},
	"m4v":  {},
	"3gp":  {},
	"ts":   {},
}

type Locator struct {
	app *application.App
}

func New(app *application.App) *Locator {
	return &Locator{
		app: app,
	}
}

func (l *Locator) ConnectDependencies() error {
	return nil
}

func (l *Locator) Start() error {
	return nil
}

// SupportedExtensions returns the sorted extension allow-list.
func (l *Locator) SupportedExtensions() []string {
	extensions := make([]string, 0, len(videoExtensions))
	for extension := range videoExtensions {
		extensions = append(extensions, extension)
	}

	slices.Sort(extensions)

	return extensions
}
