package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/dto"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
	"github.com/deptsched/scheduler-api/pkg/jobs"
	"github.com/deptsched/scheduler-api/pkg/storage"
)

// Export job lifecycle states.
const (
	ExportStatusQueued     = "queued"
	ExportStatusProcessing = "processing"
	ExportStatusFinished   = "finished"
	ExportStatusFailed     = "failed"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type exportDispatcher interface {
	Enqueue(job jobs.Job) error
}

// ExportConfig tunes export generation and retention.
type ExportConfig struct {
	APIPrefix  string
	ResultTTL  time.Duration
	MaxRetries int
}

// ExportDownload aggregates a resolved download.
type ExportDownload struct {
	File      *os.File
	Filename  string
	ExpiresAt time.Time
}

type exportJob struct {
	ID         string
	Status     string
	Progress   int
	RelPath    string
	Token      string
	ResultURL  string
	Error      string
	CreatedAt  time.Time
	FinishedAt time.Time
	ExpiresAt  time.Time
}

// ExportService writes document snapshots to disk in the background and hands
// out signed download tokens. Jobs are tracked in memory alongside the working
// document they describe.
type ExportService struct {
	repo    documentStore
	storage fileStorage
	signer  *storage.SignedURLSigner
	queue   exportDispatcher
	logger  *zap.Logger
	cfg     ExportConfig

	mu      sync.RWMutex
	tracked map[string]*exportJob
}

// NewExportService constructs an ExportService. The queue is attached
// separately because its handler is this service's Process method.
func NewExportService(repo documentStore, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &ExportService{
		repo:    repo,
		storage: store,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
		tracked: make(map[string]*exportJob),
	}
}

// UseQueue attaches the dispatcher that feeds Process.
func (s *ExportService) UseQueue(queue exportDispatcher) {
	s.queue = queue
}

// CreateJob registers a new snapshot export and enqueues it.
func (s *ExportService) CreateJob() (*dto.ExportJobResponse, error) {
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "export is not configured")
	}

	job := &exportJob{
		ID:        uuid.NewString(),
		Status:    ExportStatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.tracked[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "document"}); err != nil {
		s.update(job.ID, func(j *exportJob) {
			j.Status = ExportStatusFailed
			j.Progress = 100
			j.Error = "failed to enqueue export"
			j.FinishedAt = time.Now().UTC()
		})
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export job")
	}
	return s.Status(job.ID)
}

// Status reports export job progress.
func (s *ExportService) Status(id string) (*dto.ExportJobResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.tracked[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return job.response(), nil
}

// Process generates the snapshot file for a queued job. It runs on queue
// workers; a returned error makes the queue retry up to its limit.
func (s *ExportService) Process(ctx context.Context, job jobs.Job) error {
	s.mu.RLock()
	_, ok := s.tracked[job.ID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown export job %s", job.ID)
	}

	s.update(job.ID, func(j *exportJob) {
		j.Status = ExportStatusProcessing
		j.Progress = 10
	})

	doc := s.repo.Snapshot()
	revision := s.repo.Revision()
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return s.fail(job, fmt.Errorf("encode document: %w", err))
	}

	filename := fmt.Sprintf("schedule_rev%d_%s.json", revision, time.Now().UTC().Format("20060102_150405"))
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return s.fail(job, fmt.Errorf("store snapshot: %w", err))
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return s.fail(job, fmt.Errorf("sign download token: %w", err))
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	url := fmt.Sprintf("%s/export/%s", prefix, token)

	s.update(job.ID, func(j *exportJob) {
		j.Status = ExportStatusFinished
		j.Progress = 100
		j.RelPath = relPath
		j.Token = token
		j.ResultURL = url
		j.Error = ""
		j.FinishedAt = time.Now().UTC()
		j.ExpiresAt = expiresAt
	})
	s.logger.Info("document exported",
		zap.String("job_id", job.ID),
		zap.String("file", relPath),
		zap.Uint64("revision", revision))
	return nil
}

// ResolveDownload validates a token and opens the stored snapshot.
func (s *ExportService) ResolveDownload(token string) (*ExportDownload, error) {
	jobID, relPath, expiresAt, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}

	s.mu.RLock()
	job, ok := s.tracked[jobID]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	if job.Status != ExportStatusFinished || job.Token != token {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "export not ready")
	}

	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	return &ExportDownload{
		File:      file,
		Filename:  filepath.Base(relPath),
		ExpiresAt: expiresAt,
	}, nil
}

// StartCleanup boots a goroutine that purges expired exports periodically.
func (s *ExportService) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanupExpired()
			}
		}
	}()
}

func (s *ExportService) cleanupExpired() {
	now := time.Now()

	s.mu.Lock()
	expired := make([]*exportJob, 0)
	for id, job := range s.tracked {
		if job.Status != ExportStatusFinished && job.Status != ExportStatusFailed {
			continue
		}
		if job.FinishedAt.Add(s.cfg.ResultTTL).After(now) {
			continue
		}
		expired = append(expired, job)
		delete(s.tracked, id)
	}
	s.mu.Unlock()

	for _, job := range expired {
		if job.RelPath == "" {
			continue
		}
		if err := s.storage.Delete(job.RelPath); err != nil {
			s.logger.Sugar().Warnw("cleanup delete failed", "job_id", job.ID, "error", err)
		}
	}
	if _, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL); err != nil {
		s.logger.Sugar().Warnw("filesystem cleanup failed", "error", err)
	}
}

// fail records the failure. Jobs that still have retries left go back to
// queued so a later attempt can overwrite the state.
func (s *ExportService) fail(job jobs.Job, err error) error {
	msg := err.Error()
	if job.Attempt >= s.cfg.MaxRetries {
		s.update(job.ID, func(j *exportJob) {
			j.Status = ExportStatusFailed
			j.Progress = 100
			j.Error = msg
			j.FinishedAt = time.Now().UTC()
		})
	} else {
		s.update(job.ID, func(j *exportJob) {
			j.Status = ExportStatusQueued
			j.Progress = 0
			j.Error = msg
		})
	}
	return err
}

func (s *ExportService) update(id string, fn func(*exportJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.tracked[id]; ok {
		fn(job)
	}
}

func (j *exportJob) response() *dto.ExportJobResponse {
	resp := &dto.ExportJobResponse{
		ID:       j.ID,
		Status:   j.Status,
		Progress: j.Progress,
	}
	if j.ResultURL != "" {
		url := j.ResultURL
		resp.ResultURL = &url
	}
	if j.Error != "" {
		msg := j.Error
		resp.Error = &msg
	}
	if !j.ExpiresAt.IsZero() {
		exp := j.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return resp
}
