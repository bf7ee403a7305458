package buissines

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/mediabot/config"
	"github.com/Conte777/mediabot/internal/domain/media/consts"
	"github.com/Conte777/mediabot/internal/domain/media/dto"
	"github.com/Conte777/mediabot/internal/domain/media/entities"
	mediaerrors "github.com/Conte777/mediabot/internal/domain/media/errors"
)

type fixture struct {
	uc        *UseCase
	extractor *fakeExtractor
	sender    *fakeSender
	producer  *fakeProducer
	metrics   *fakeMetrics
	tempDir   string
}

func newFixture(t *testing.T, extractor *fakeExtractor) *fixture {
	t.Helper()

	f := &fixture{
		extractor: extractor,
		sender:    &fakeSender{},
		producer:  &fakeProducer{},
		metrics:   &fakeMetrics{},
		tempDir:   t.TempDir(),
	}
	f.uc = NewUseCase(f.extractor, f.producer, f.metrics, &config.DownloaderConfig{TempDir: f.tempDir}, zerolog.Nop())
	f.uc.SetSender(f.sender)
	return f
}

func (f *fixture) assertNoTempDirs(t *testing.T) {
	t.Helper()

	for _, dir := range f.extractor.dirs {
		assert.NoDirExists(t, dir)
	}
	entries, err := os.ReadDir(f.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func testMessage(text string) *entities.IncomingMessage {
	return &entities.IncomingMessage{
		From:      entities.Sender{ID: 7, Username: "alice", FirstName: "Alice"},
		Text:      text,
		Date:      time.Unix(1700000000, 0),
		ChatID:    -100500,
		MessageID: 42,
	}
}

func TestFetchAndSend_SuccessFirstAttempt(t *testing.T) {
	f := newFixture(t, &fakeExtractor{ext: ".mp4"})
	msg := testMessage("check this out https://youtube.com/watch?v=ID&list=PLx")

	err := f.uc.FetchAndSend(context.Background(), msg, "https://youtube.com/watch?v=ID&list=PLx")
	require.NoError(t, err)

	require.Len(t, f.sender.sent, 1)
	sent := f.sender.sent[0]
	assert.Equal(t, int64(-100500), sent.chatID)
	assert.Equal(t, entities.MediaKindVideo, sent.file.Kind)
	assert.Equal(t, "1700000000.mp4", filepath.Base(sent.file.Path))
	assert.Equal(t, `@alice отправил сообщение с текстом "check this out"`, sent.caption)
	assert.True(t, sent.existed, "file must exist while it is being sent")

	assert.Equal(t, []int{42}, f.sender.deleted)
	assert.Empty(t, f.sender.notices)
	require.Len(t, f.producer.completed, 1)
	assert.Equal(t, "https://youtube.com/watch?v=ID", f.producer.completed[0].URL)
	assert.Equal(t, 1, f.producer.completed[0].Attempts)
	f.assertNoTempDirs(t)
}

func TestFetchAndSend_RetryThenSuccess(t *testing.T) {
	f := newFixture(t, &fakeExtractor{failures: 1, ext: ".mp4"})
	msg := testMessage("https://youtu.be/ID")

	err := f.uc.FetchAndSend(context.Background(), msg, "https://youtu.be/ID")
	require.NoError(t, err)

	assert.Len(t, f.extractor.calls, 2)
	assert.Len(t, f.sender.sent, 1)
	assert.Empty(t, f.sender.notices)
	assert.Equal(t, []string{"extract"}, f.metrics.attemptErrors)
	assert.Equal(t, 2, f.producer.completed[0].Attempts)
	f.assertNoTempDirs(t)
}

func TestFetchAndSend_ExhaustedRetries(t *testing.T) {
	f := newFixture(t, &fakeExtractor{failures: 3, ext: ".mp4"})
	msg := testMessage("https://vm.tiktok.com/ZM/")

	err := f.uc.FetchAndSend(context.Background(), msg, "https://vm.tiktok.com/ZM/")
	require.Error(t, err)
	assert.ErrorIs(t, err, mediaerrors.ErrFetchFailed)
	assert.ErrorIs(t, err, errFakeExtraction)

	assert.Len(t, f.extractor.calls, 3)
	assert.Empty(t, f.sender.sent)
	assert.Equal(t, []int{42}, f.sender.notices)
	assert.Empty(t, f.sender.deleted)
	assert.Equal(t, 1, f.metrics.failures)
	require.Len(t, f.producer.failed, 1)
	assert.Equal(t, 3, f.producer.failed[0].Attempts)
	f.assertNoTempDirs(t)
}

func TestFetchAndSend_LogsErrorKind(t *testing.T) {
	f := newFixture(t, &fakeExtractor{
		failures: 1,
		failErr:  fmt.Errorf("%w: exit status 1", mediaerrors.ErrExtraction),
		ext:      ".mp4",
	})
	var buf bytes.Buffer
	f.uc.logger = zerolog.New(&buf)

	err := f.uc.FetchAndSend(context.Background(), testMessage("https://youtu.be/ID"), "https://youtu.be/ID")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"error_kind":"unavailable"`)
	assert.Contains(t, buf.String(), `"attempt":1`)
}

func TestFetchAndSend_SendFailureIsRetriedFromScratch(t *testing.T) {
	f := newFixture(t, &fakeExtractor{ext: ".mp4"})
	f.sender.sendErrs = []error{errors.New("413 request entity too large")}
	msg := testMessage("https://youtu.be/ID")

	err := f.uc.FetchAndSend(context.Background(), msg, "https://youtu.be/ID")
	require.NoError(t, err)

	assert.Len(t, f.extractor.calls, 2, "a send failure restarts the fetch")
	assert.Len(t, f.sender.sent, 1)
	assert.Equal(t, []string{"send"}, f.metrics.attemptErrors)
	f.assertNoTempDirs(t)
}

func TestFetchAndSend_MusicPrefersTranscodedFile(t *testing.T) {
	f := newFixture(t, &fakeExtractor{ext: ".webm", siblings: []string{".mp3"}})
	msg := testMessage("https://music.youtube.com/watch?v=ID")

	err := f.uc.FetchAndSend(context.Background(), msg, "https://music.youtube.com/watch?v=ID")
	require.NoError(t, err)

	require.Len(t, f.extractor.calls, 1)
	opts := f.extractor.calls[0]
	assert.True(t, opts.AudioOnly)
	require.NotNil(t, opts.PostProcess)
	assert.Equal(t, "mp3", opts.PostProcess.Codec)

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, entities.MediaKindAudio, f.sender.sent[0].file.Kind)
	assert.Equal(t, ".mp3", f.sender.sent[0].file.Ext)
	assert.Equal(t, "@alice поделился файлом", f.sender.sent[0].caption)
	f.assertNoTempDirs(t)
}

func TestFetchAndSend_CancelledContext(t *testing.T) {
	f := newFixture(t, &fakeExtractor{ext: ".mp4"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.uc.FetchAndSend(ctx, testMessage("https://youtu.be/ID"), "https://youtu.be/ID")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.extractor.calls)
	assert.Empty(t, f.sender.notices)
}

func TestFetchAndSend_SenderNotSet(t *testing.T) {
	uc := NewUseCase(&fakeExtractor{}, &fakeProducer{}, &fakeMetrics{}, &config.DownloaderConfig{}, zerolog.Nop())

	err := uc.FetchAndSend(context.Background(), testMessage("https://youtu.be/ID"), "https://youtu.be/ID")
	assert.ErrorIs(t, err, mediaerrors.ErrSenderNotSet)
}

func TestHandleMessage_ProcessesLinksInOrder(t *testing.T) {
	f := newFixture(t, &fakeExtractor{ext: ".mp4"})
	msg := testMessage("first https://youtu.be/one second https://vm.tiktok.com/two/")

	err := f.uc.HandleMessage(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, 2, f.metrics.matched)
	require.Len(t, f.producer.completed, 2)
	assert.Equal(t, "https://youtube.com/watch?v=one", f.producer.completed[0].URL)
	assert.Equal(t, "https://vm.tiktok.com/two/", f.producer.completed[1].URL)
	assert.Len(t, f.sender.sent, 2)
	f.assertNoTempDirs(t)
}

func TestHandleMessage_NoLinks(t *testing.T) {
	f := newFixture(t, &fakeExtractor{ext: ".mp4"})

	err := f.uc.HandleMessage(context.Background(), testMessage("hello there"))
	assert.ErrorIs(t, err, mediaerrors.ErrNoURL)
	assert.Empty(t, f.extractor.calls)
	assert.Zero(t, f.metrics.matched)
}

func TestFetchToDir(t *testing.T) {
	f := newFixture(t, &fakeExtractor{ext: ".mp4"})
	dest := t.TempDir()

	path, err := f.uc.FetchToDir(context.Background(), "https://youtu.be/ID", dest)
	require.NoError(t, err)

	assert.Equal(t, dest, filepath.Dir(path))
	assert.FileExists(t, path)
	f.assertNoTempDirs(t)
}

func TestHandleStart(t *testing.T) {
	f := newFixture(t, &fakeExtractor{})

	resp, err := f.uc.HandleStart(context.Background(), &dto.StartCommandRequest{UserID: 7, Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, consts.GreetingText, resp.Message)
}
