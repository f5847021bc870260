package batcher

import (
	"fmt"

	"source.hodakov.me/hdkv/vid2audio/internal/application"
	"source.hodakov.me/hdkv/vid2audio/internal/domains"
)

var (
	_ domains.Batcher = new(Batcher)
	_ domains.Domain  = new(Batcher)
)

type Batcher struct {
	app *application.App

	converter domains.Converter

	parallel     int
	skipExisting bool
}

func New(app *application.App) *Batcher {
	return &Batcher{
		app:          app,
		parallel:     max(app.Config().Parallel(), 1),
		skipExisting: app.Config().Transcoding.SkipExisting,
	}
}

func (b *Batcher) ConnectDependencies() error {
	converter, ok := b.app.RetrieveDomain(domains.ConverterName).(domains.Converter)
	if !ok {
		return fmt.Errorf(
			"%w: %w (%s)", ErrBatcher, ErrConnectDependencies,
			"converter domain interface conversion failed",
		)
	}

	b.converter = converter

	return nil
}

func (b *Batcher) Start() error {
	return nil
}
