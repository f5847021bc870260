package domains

import "source.hodakov.me/hdkv/vid2audio/internal/formats"

const ConverterName = "converter"

type Converter interface {
	EnsureToolAvailable() error
	ConvertOne(input, outputDir string, format formats.Format) (string, error)
	Exists(input, outputDir string, format formats.Format) (string, bool)
}
