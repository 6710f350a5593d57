package service

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/merge"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

type mergeDocumentStore interface {
	Snapshot() models.Document
	Replace(doc models.Document)
	Revision() uint64
}

// MergeService previews and commits merges of an incoming document into the
// working one. Previews are held in memory under a short lived id so the
// caller can inspect the report before committing.
type MergeService struct {
	repo      mergeDocumentStore
	validator *validator.Validate
	logger    *zap.Logger
	store     *previewStore
}

// MergeConfig governs merge preview behaviour.
type MergeConfig struct {
	PreviewTTL time.Duration
}

// NewMergeService constructs a MergeService instance.
func NewMergeService(repo mergeDocumentStore, validate *validator.Validate, logger *zap.Logger, cfg MergeConfig) *MergeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PreviewTTL <= 0 {
		cfg.PreviewTTL = 30 * time.Minute
	}
	return &MergeService{
		repo:      repo,
		validator: validate,
		logger:    logger,
		store:     newPreviewStore(cfg.PreviewTTL),
	}
}

// Preview merges the incoming document against the current one without
// touching it and returns the report with an id the caller can commit with.
func (s *MergeService) Preview(req dto.MergePreviewRequest) (dto.MergePreviewResponse, error) {
	if err := validateDocument(req.Document); err != nil {
		return dto.MergePreviewResponse{}, err
	}

	baseRevision := s.repo.Revision()
	result := merge.Merge(s.repo.Snapshot(), req.Document)

	preview := mergePreview{
		PreviewID:    uuid.NewString(),
		Incoming:     req.Document,
		Result:       result,
		BaseRevision: baseRevision,
		RequestedAt:  time.Now(),
	}
	s.store.Save(preview)

	s.logger.Info("merge previewed",
		zap.String("preview", preview.PreviewID),
		zap.Int("newClasses", len(result.Report.NewClasses)),
		zap.Int("conflicts", len(result.Report.TimeConflicts)))

	return dto.MergePreviewResponse{
		PreviewID: preview.PreviewID,
		ExpiresAt: preview.RequestedAt.Add(s.store.ttl),
		Report:    result.Report,
	}, nil
}

// Commit applies a previously previewed merge. If the working document moved
// on since the preview, the merge is recomputed against the current state and
// the fresh report is returned.
func (s *MergeService) Commit(req dto.MergeCommitRequest) (dto.MergeCommitResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MergeCommitResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid merge commit payload")
	}

	preview, ok := s.store.Get(req.PreviewID)
	if !ok {
		return dto.MergeCommitResponse{}, appErrors.Clone(appErrors.ErrNotFound, "merge preview not found or expired")
	}

	result := preview.Result
	if s.repo.Revision() != preview.BaseRevision {
		s.logger.Info("document changed since preview, merging against current state",
			zap.String("preview", preview.PreviewID))
		result = merge.Merge(s.repo.Snapshot(), preview.Incoming)
	}

	s.repo.Replace(result.Document)
	s.store.Delete(req.PreviewID)

	s.logger.Info("merge committed",
		zap.String("preview", preview.PreviewID),
		zap.Int("newClasses", len(result.Report.NewClasses)))

	return dto.MergeCommitResponse{Report: result.Report, Revision: s.repo.Revision()}, nil
}

type mergePreview struct {
	PreviewID    string
	Incoming     models.Document
	Result       merge.Result
	BaseRevision uint64
	RequestedAt  time.Time
}

type previewStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]mergePreview
}

func newPreviewStore(ttl time.Duration) *previewStore {
	return &previewStore{
		ttl:   ttl,
		items: make(map[string]mergePreview),
	}
}

func (s *previewStore) Save(preview mergePreview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[preview.PreviewID] = preview
}

func (s *previewStore) Get(id string) (mergePreview, bool) {
	s.mu.RLock()
	preview, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return mergePreview{}, false
	}
	if time.Since(preview.RequestedAt) > s.ttl {
		s.Delete(id)
		return mergePreview{}, false
	}
	return preview, true
}

func (s *previewStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
