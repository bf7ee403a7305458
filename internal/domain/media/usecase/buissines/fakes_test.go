package buissines

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Conte777/mediabot/internal/domain/media/dto"
	"github.com/Conte777/mediabot/internal/domain/media/entities"
)

var errFakeExtraction = errors.New("fake extraction failure")

// fakeExtractor fails the first failures calls, then writes a file named
// after the output template with ext into the output directory
type fakeExtractor struct {
	failures int
	// failErr replaces errFakeExtraction when set
	failErr error
	ext     string
	// extra files written next to the result, keyed by extension
	siblings []string

	calls []entities.DownloadOptions
	dirs  []string
}

func (f *fakeExtractor) Download(ctx context.Context, url string, opts entities.DownloadOptions) (string, error) {
	f.calls = append(f.calls, opts)
	f.dirs = append(f.dirs, opts.OutputDir)

	if len(f.calls) <= f.failures {
		if f.failErr != nil {
			return "", f.failErr
		}
		return "", errFakeExtraction
	}

	base := strings.TrimSuffix(opts.OutputTemplate, ".%(ext)s")
	path := filepath.Join(opts.OutputDir, base+f.ext)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		return "", err
	}
	for _, ext := range f.siblings {
		if err := os.WriteFile(filepath.Join(opts.OutputDir, base+ext), []byte("media"), 0o644); err != nil {
			return "", err
		}
	}

	return path, nil
}

type sentMedia struct {
	chatID  int64
	file    entities.FetchedFile
	caption string
	// existed reports whether the file was on disk while being sent
	existed bool
}

type fakeSender struct {
	sendErrs []error

	sent     []sentMedia
	deleted  []int
	notices  []int
	sendCall int
}

func (f *fakeSender) SendMedia(ctx context.Context, chatID int64, file entities.FetchedFile, caption string) error {
	f.sendCall++
	if f.sendCall <= len(f.sendErrs) && f.sendErrs[f.sendCall-1] != nil {
		return f.sendErrs[f.sendCall-1]
	}

	_, err := os.Stat(file.Path)
	f.sent = append(f.sent, sentMedia{chatID: chatID, file: file, caption: caption, existed: err == nil})
	return nil
}

func (f *fakeSender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeSender) SendFailureNotice(ctx context.Context, chatID int64, messageID int) error {
	f.notices = append(f.notices, messageID)
	return nil
}

type fakeProducer struct {
	mu        sync.Mutex
	completed []dto.FetchEvent
	failed    []dto.FetchEvent
}

func (p *fakeProducer) SendFetchCompleted(ctx context.Context, event *dto.FetchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = append(p.completed, *event)
	return nil
}

func (p *fakeProducer) SendFetchFailed(ctx context.Context, event *dto.FetchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed = append(p.failed, *event)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

type fakeMetrics struct {
	matched       int
	fetched       []string
	attemptErrors []string
	failures      int
}

func (m *fakeMetrics) RecordURLsMatched(count int) { m.matched += count }

func (m *fakeMetrics) RecordFetch(kind string, attempts int, duration float64) {
	m.fetched = append(m.fetched, kind)
}

func (m *fakeMetrics) RecordAttemptError(stage string) {
	m.attemptErrors = append(m.attemptErrors, stage)
}

func (m *fakeMetrics) RecordFetchFailure(duration float64) { m.failures++ }
