package batcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"source.hodakov.me/hdkv/vid2audio/internal/application"
	"source.hodakov.me/hdkv/vid2audio/internal/configuration"
	"source.hodakov.me/hdkv/vid2audio/internal/domains"
	"source.hodakov.me/hdkv/vid2audio/internal/domains/converter"
	"source.hodakov.me/hdkv/vid2audio/internal/formats"
)

var errFakeTool = errors.New("fake tool failure")

// fakeConverter fails every input whose name contains "bad" and reports
// inputs containing "done" as already converted.
type fakeConverter struct {
	delay time.Duration

	probes   atomic.Int64
	calls    atomic.Int64
	inFlight atomic.Int64
	maxSeen  atomic.Int64
}

func (f *fakeConverter) EnsureToolAvailable() error {
	f.probes.Add(1)

	return nil
}

func (f *fakeConverter) ConvertOne(input, outputDir string, format formats.Format) (string, error) {
	f.calls.Add(1)

	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)

	for {
		seen := f.maxSeen.Load()
		if current <= seen || f.maxSeen.CompareAndSwap(seen, current) {
			break
		}
	}

	time.Sleep(f.delay)

	if strings.Contains(input, "panic") {
		panic("converter exploded")
	}

	if strings.Contains(input, "bad") {
		return "", errFakeTool
	}

	return converter.ResolveOutputPath(input, outputDir, format)
}

func (f *fakeConverter) Exists(input, outputDir string, format formats.Format) (string, bool) {
	if !strings.Contains(input, "done") {
		return "", false
	}

	output, err := converter.ResolveOutputPath(input, outputDir, format)

	return output, err == nil
}

func newTestBatcher(t *testing.T, conv domains.Converter, parallel int, skipExisting bool) (*Batcher, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	app := application.NewWithLogger(context.Background(), logger)

	config := configuration.Default()
	config.Transcoding.Parallel = parallel
	config.Transcoding.SkipExisting = skipExisting
	config.Transcoding.FFmpeg = filepath.Join(t.TempDir(), "no-ffmpeg")
	app.SetConfig(config)

	if conv == nil {
		conv = converter.New(app)
	}

	app.RegisterDomain(domains.ConverterName, conv)

	batcher := New(app)
	if err := batcher.ConnectDependencies(); err != nil {
		t.Fatalf("ConnectDependencies: %v", err)
	}

	return batcher, hook
}

func fileList(prefix string, n int) []string {
	files := make([]string, 0, n)
	for i := range n {
		files = append(files, fmt.Sprintf("/videos/%s-%03d.mp4", prefix, i))
	}

	return files
}

type progressRecorder struct {
	currents []int
	totals   []int
}

// record is deliberately not synchronized: the batcher must serialize calls.
func (p *progressRecorder) record(current, total int) {
	p.currents = append(p.currents, current)
	p.totals = append(p.totals, total)
}

func TestConvertBatch_EmptyList(t *testing.T) {
	fake := new(fakeConverter)
	batcher, _ := newTestBatcher(t, fake, 4, false)

	progress := new(progressRecorder)

	succeeded, failed := batcher.ConvertBatch(nil, "/out", formats.MP3, progress.record)
	if succeeded != 0 || failed != 0 {
		t.Errorf("ConvertBatch(nil) = (%d, %d), want (0, 0)", succeeded, failed)
	}

	if len(progress.currents) != 0 {
		t.Errorf("got %d progress notifications, want 0", len(progress.currents))
	}

	if fake.probes.Load() != 0 || fake.calls.Load() != 0 {
		t.Errorf("converter was used: probes=%d calls=%d", fake.probes.Load(), fake.calls.Load())
	}
}

func TestConvertBatch_AllSucceed(t *testing.T) {
	batcher, _ := newTestBatcher(t, new(fakeConverter), 3, false)

	succeeded, failed := batcher.ConvertBatch(fileList("ok", 10), "/out", formats.Opus, nil)
	if succeeded != 10 || failed != 0 {
		t.Errorf("ConvertBatch = (%d, %d), want (10, 0)", succeeded, failed)
	}
}

func TestConvertBatch_MixedOutcomes(t *testing.T) {
	batcher, hook := newTestBatcher(t, new(fakeConverter), 4, false)

	files := append(fileList("ok", 7), fileList("bad", 5)...)

	report := batcher.Run(files, "/out", formats.MP3, nil)
	if report.Succeeded != 7 || report.Failed != 5 {
		t.Fatalf("Run = %d succeeded / %d failed, want 7 / 5", report.Succeeded, report.Failed)
	}

	if len(report.Failures) != 5 {
		t.Fatalf("got %d failures, want 5", len(report.Failures))
	}

	for _, failure := range report.Failures {
		if !strings.Contains(failure.Path, "bad") || !strings.Contains(failure.Reason, errFakeTool.Error()) {
			t.Errorf("unexpected failure %+v", failure)
		}
	}

	logged := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			if file, ok := entry.Data["file"].(string); ok && strings.Contains(file, "bad") {
				logged++
			}
		}
	}

	if logged != 5 {
		t.Errorf("logged %d failures with their file, want 5", logged)
	}

	if report.RunID == "" || report.Format != "mp3" || report.Total != 12 {
		t.Errorf("report metadata = %+v", report)
	}

	if report.Finished.Before(report.Started) {
		t.Error("report finished before it started")
	}
}

func TestConvertBatch_WarnsAboutOutputCollisions(t *testing.T) {
	batcher, hook := newTestBatcher(t, new(fakeConverter), 2, false)

	files := []string{"/videos/a/clip.mp4", "/videos/b/clip.mkv", "/videos/c/other.mp4"}

	report := batcher.Run(files, "/out", formats.MP3, nil)
	if report.Succeeded != 3 || report.Failed != 0 {
		t.Fatalf("report = %d/%d, want 3/0", report.Succeeded, report.Failed)
	}

	var warnings []*logrus.Entry

	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings = append(warnings, entry)
		}
	}

	if len(warnings) != 1 {
		t.Fatalf("got %d collision warnings, want 1", len(warnings))
	}

	warning := warnings[0]
	if warning.Data["output"] != filepath.Join("/out", "clip.mp3") ||
		warning.Data["file"] != "/videos/b/clip.mkv" ||
		warning.Data["previous"] != "/videos/a/clip.mp4" {
		t.Errorf("unexpected warning fields %v", warning.Data)
	}
}

func TestConvertBatch_NoCollisionWarningForDistinctStems(t *testing.T) {
	batcher, hook := newTestBatcher(t, new(fakeConverter), 2, false)

	batcher.Run(fileList("ok", 5), "/out", formats.MP3, nil)

	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			t.Errorf("unexpected warning %q", entry.Message)
		}
	}
}

func TestConvertBatch_ProgressIsSerializedAndMonotonic(t *testing.T) {
	batcher, _ := newTestBatcher(t, &fakeConverter{delay: time.Millisecond}, 8, false)

	const n = 50

	files := append(fileList("ok", n/2), fileList("bad", n/2)...)
	progress := new(progressRecorder)

	batcher.ConvertBatch(files, "/out", formats.MP3, progress.record)

	if len(progress.currents) != n {
		t.Fatalf("got %d notifications, want %d", len(progress.currents), n)
	}

	for i, current := range progress.currents {
		if current != i+1 {
			t.Fatalf("notification %d reported current=%d, want %d", i, current, i+1)
		}

		if progress.totals[i] != n {
			t.Fatalf("notification %d reported total=%d, want %d", i, progress.totals[i], n)
		}
	}
}

func TestConvertBatch_RespectsWorkerLimit(t *testing.T) {
	fake := &fakeConverter{delay: 5 * time.Millisecond}
	batcher, _ := newTestBatcher(t, fake, 3, false)

	batcher.ConvertBatch(fileList("ok", 30), "/out", formats.MP3, nil)

	if fake.maxSeen.Load() > 3 {
		t.Errorf("saw %d conversions in flight, limit is 3", fake.maxSeen.Load())
	}

	if fake.calls.Load() != 30 {
		t.Errorf("converter called %d times, want 30", fake.calls.Load())
	}
}

func TestConvertBatch_NonexistentFilesAllFail(t *testing.T) {
	// Real converter: every source is missing, so each item fails on its own.
	batcher, _ := newTestBatcher(t, nil, 8, false)

	missing := make([]string, 0, 100)
	dir := t.TempDir()

	for i := range 100 {
		missing = append(missing, filepath.Join(dir, fmt.Sprintf("missing-%03d.mp4", i)))
	}

	for run := range 5 {
		succeeded, failed := batcher.ConvertBatch(missing, dir, formats.MP3, nil)
		if succeeded != 0 || failed != 100 {
			t.Fatalf("run %d: ConvertBatch = (%d, %d), want (0, 100)", run, succeeded, failed)
		}
	}
}

func TestConvertBatch_MissingToolFailsEveryItem(t *testing.T) {
	batcher, _ := newTestBatcher(t, nil, 2, false)

	dir := t.TempDir()
	files := make([]string, 0, 4)

	for i := range 4 {
		path := filepath.Join(dir, fmt.Sprintf("clip-%d.mp4", i))
		writeFile(t, path)
		files = append(files, path)
	}

	report := batcher.Run(files, t.TempDir(), formats.MP3, nil)
	if report.Failed != 4 {
		t.Fatalf("Failed = %d, want 4", report.Failed)
	}

	for _, failure := range report.Failures {
		if !strings.Contains(failure.Reason, domains.ErrMissingDependency.Error()) {
			t.Errorf("failure %+v is not a missing dependency", failure)
		}
	}
}

func TestConvertBatch_SkipExisting(t *testing.T) {
	fake := new(fakeConverter)
	batcher, _ := newTestBatcher(t, fake, 2, true)

	files := append(fileList("done", 4), fileList("ok", 3)...)
	files = append(files, fileList("bad", 2)...)

	report := batcher.Run(files, "/out", formats.MP3, nil)
	if report.Succeeded != 7 || report.Failed != 2 || report.Skipped != 4 {
		t.Errorf("report = %d/%d/%d (succeeded/failed/skipped), want 7/2/4",
			report.Succeeded, report.Failed, report.Skipped)
	}

	if fake.calls.Load() != 5 {
		t.Errorf("converter called %d times, want 5", fake.calls.Load())
	}
}

func TestConvertBatch_PanicIsIsolated(t *testing.T) {
	batcher, _ := newTestBatcher(t, new(fakeConverter), 2, false)

	files := append(fileList("ok", 3), "/videos/panic.mp4")

	report := batcher.Run(files, "/out", formats.MP3, nil)
	if report.Succeeded != 3 || report.Failed != 1 {
		t.Fatalf("report = %d/%d, want 3/1", report.Succeeded, report.Failed)
	}

	if !strings.Contains(report.Failures[0].Reason, ErrWorkerPanic.Error()) {
		t.Errorf("failure reason = %q", report.Failures[0].Reason)
	}
}

func TestConvertBatch_ConcurrentBatches(t *testing.T) {
	batcher, _ := newTestBatcher(t, new(fakeConverter), 4, false)

	var wg sync.WaitGroup

	for range 4 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			succeeded, failed := batcher.ConvertBatch(
				append(fileList("ok", 20), fileList("bad", 10)...), "/out", formats.MP3, nil,
			)
			if succeeded != 20 || failed != 10 {
				t.Errorf("ConvertBatch = (%d, %d), want (20, 10)", succeeded, failed)
			}
		}()
	}

	wg.Wait()
}

func TestConnectDependencies_MissingConverter(t *testing.T) {
	logger, _ := test.NewNullLogger()
	app := application.NewWithLogger(context.Background(), logger)
	app.SetConfig(configuration.Default())

	err := New(app).ConnectDependencies()
	if !errors.Is(err, ErrConnectDependencies) {
		t.Errorf("ConnectDependencies() = %v, want ErrConnectDependencies", err)
	}
}
