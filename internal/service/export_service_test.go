package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/models"
	"github.com/deptsched/scheduler-api/pkg/jobs"
	"github.com/deptsched/scheduler-api/pkg/storage"
)

// syncDispatcher runs jobs inline so tests observe the final state without
// waiting on queue workers.
type syncDispatcher struct {
	svc *ExportService
}

func (d *syncDispatcher) Enqueue(job jobs.Job) error {
	return d.svc.Process(context.Background(), job)
}

type failingDispatcher struct{}

func (failingDispatcher) Enqueue(jobs.Job) error {
	return errors.New("queue full")
}

func newExportFixture(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	repo, ids := scheduleFixture(t)
	_, err := repo.AddScheduleItem(ids["math"], ids["smith"])
	require.NoError(t, err)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewExportService(repo, store, signer, ExportConfig{APIPrefix: "/api/v1", ResultTTL: time.Hour}, zap.NewNop())
	svc.UseQueue(&syncDispatcher{svc: svc})
	return svc, store
}

func TestExportJobWritesSnapshot(t *testing.T) {
	svc, store := newExportFixture(t)

	job, err := svc.CreateJob()
	require.NoError(t, err)
	require.Equal(t, ExportStatusFinished, job.Status)
	require.Equal(t, 100, job.Progress)
	require.NotNil(t, job.ResultURL)
	require.Contains(t, *job.ResultURL, "/api/v1/export/")
	require.NotNil(t, job.ExpiresAt)

	parts := strings.Split(*job.ResultURL, "/")
	token := parts[len(parts)-1]
	jobID, relPath, _, err := storage.NewSignedURLSigner("secret", time.Hour).Parse(token, false)
	require.NoError(t, err)
	require.Equal(t, job.ID, jobID)

	raw, err := os.ReadFile(store.Path(relPath))
	require.NoError(t, err)
	var doc models.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Schedule, 1)
	require.Equal(t, "MATH", doc.Courses[0].Code)
}

func TestExportDownloadRoundTrip(t *testing.T) {
	svc, _ := newExportFixture(t)

	job, err := svc.CreateJob()
	require.NoError(t, err)
	require.NotNil(t, job.ResultURL)
	parts := strings.Split(*job.ResultURL, "/")

	download, err := svc.ResolveDownload(parts[len(parts)-1])
	require.NoError(t, err)
	defer download.File.Close() //nolint:errcheck
	require.True(t, strings.HasSuffix(download.Filename, ".json"))
	require.False(t, download.ExpiresAt.IsZero())

	info, err := download.File.Stat()
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestExportDownloadRejectsBadToken(t *testing.T) {
	svc, _ := newExportFixture(t)

	_, err := svc.ResolveDownload("not-a-token")
	require.Equal(t, "FORBIDDEN", serviceErrCode(t, err))
}

func TestExportStatusUnknownJob(t *testing.T) {
	svc, _ := newExportFixture(t)

	_, err := svc.Status("missing")
	require.Equal(t, "NOT_FOUND", serviceErrCode(t, err))
}

func TestExportWithoutQueueConfigured(t *testing.T) {
	repo, _ := scheduleFixture(t)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewExportService(repo, store, signer, ExportConfig{}, zap.NewNop())

	_, err = svc.CreateJob()
	require.Equal(t, "PRECONDITION_FAILED", serviceErrCode(t, err))
}

func TestExportEnqueueFailureMarksJobFailed(t *testing.T) {
	repo, _ := scheduleFixture(t)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewExportService(repo, store, signer, ExportConfig{}, zap.NewNop())
	svc.UseQueue(failingDispatcher{})

	_, err = svc.CreateJob()
	require.Equal(t, "INTERNAL_ERROR", serviceErrCode(t, err))
}
