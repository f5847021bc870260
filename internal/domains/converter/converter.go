package converter

import (
	"source.hodakov.me/hdkv/vid2audio/internal/application"
	"source.hodakov.me/hdkv/vid2audio/internal/domains"
)

var (
	_ domains.Converter = new(Converter)
	_ domains.Domain    = new(Converter)
)

type Converter struct {
	app    *application.App
	ffmpeg string
}

func New(app *application.App) *Converter {
	return &Converter{
		app:    app,
		ffmpeg: app.Config().Transcoding.FFmpeg,
	}
}

func (c *Converter) ConnectDependencies() error {
	return nil
}

func (c *Converter) Start() error {
	return nil
}
