package models

import "sync"

// Tally counts batch outcomes. Every completed item is recorded with a
// single Record call, so Processed == Succeeded + Failed always holds.
type Tally struct {
	mutex sync.Mutex

	processed int
	succeeded int
	failed    int
	skipped   int
}

// TallySnapshot is a consistent copy of the counters.
type TallySnapshot struct {
	Processed int
	Succeeded int
	Failed    int
	Skipped   int
}

// Record accounts one completed item and returns the counters as they
// were right after the update. A skipped item counts as succeeded.
func (t *Tally) Record(succeeded, skipped bool) TallySnapshot {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.processed++

	if succeeded {
		t.succeeded++

		if skipped {
			t.skipped++
		}
	} else {
		t.failed++
	}

	return t.snapshot()
}

func (t *Tally) Snapshot() TallySnapshot {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.snapshot()
}

func (t *Tally) snapshot() TallySnapshot {
	return TallySnapshot{
		Processed: t.processed,
		Succeeded: t.succeeded,
		Failed:    t.failed,
		Skipped:   t.skipped,
	}
}
