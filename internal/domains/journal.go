package domains

import (
	batcherdto "source.hodakov.me/hdkv/vid2audio/internal/domains/batcher/dto"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/journal/dto"
)

const JournalName = "journal"

type Journal interface {
	RecordRun(report *batcherdto.Report) error
	ListRuns(limit int) ([]*dto.Run, error)
}
