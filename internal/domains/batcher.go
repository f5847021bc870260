package domains

import (
	"source.hodakov.me/hdkv/vid2audio/internal/domains/batcher/dto"
	"source.hodakov.me/hdkv/vid2audio/internal/formats"
)

const BatcherName = "batcher"

type Batcher interface {
	ConvertBatch(files []string, outputDir string, format formats.Format, onProgress dto.ProgressFunc) (int, int)
	Run(files []string, outputDir string, format formats.Format, onProgress dto.ProgressFunc) *dto.Report
}
