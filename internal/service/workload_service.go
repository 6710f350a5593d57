package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

type workloadDocumentSource interface {
	Snapshot() models.Document
	Revision() uint64
}

// WorkloadService computes per professor teaching loads. A class taught by
// several professors splits its workload evenly among them; tentative classes
// accumulate separately so the firm load stays visible.
type WorkloadService struct {
	repo   workloadDocumentSource
	cache  *CacheService
	logger *zap.Logger
	ttl    time.Duration
}

// NewWorkloadService constructs a WorkloadService instance.
func NewWorkloadService(repo workloadDocumentSource, cache *CacheService, logger *zap.Logger, ttl time.Duration) *WorkloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &WorkloadService{repo: repo, cache: cache, logger: logger, ttl: ttl}
}

// ForProfessor computes one professor's load.
func (s *WorkloadService) ForProfessor(id int) (dto.ProfessorWorkloadResponse, error) {
	doc := s.repo.Snapshot()
	prof, ok := doc.ProfessorByID(id)
	if !ok {
		return dto.ProfessorWorkloadResponse{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %d not found", id))
	}
	return computeWorkload(doc, prof), nil
}

// All computes every professor's load, cached per document revision.
func (s *WorkloadService) All(ctx context.Context) ([]dto.ProfessorWorkloadResponse, error) {
	revision := s.repo.Revision()
	key := fmt.Sprintf("workload:all:%d", revision)

	var cached []dto.ProfessorWorkloadResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	doc := s.repo.Snapshot()
	out := make([]dto.ProfessorWorkloadResponse, 0, len(doc.Faculty))
	for _, prof := range doc.Faculty {
		out = append(out, computeWorkload(doc, prof))
	}

	if err := s.cache.Set(ctx, key, out, s.ttl); err != nil {
		s.logger.Warn("workload cache write failed", zap.Error(err))
	}
	return out, nil
}

func computeWorkload(doc models.Document, prof models.Professor) dto.ProfessorWorkloadResponse {
	resp := dto.ProfessorWorkloadResponse{
		ProfessorID: prof.ID,
		Name:        prof.Name(),
		AnnualLoad:  doc.Options.AnnualLoad,
	}
	for _, item := range doc.Schedule {
		if !item.Teaches(prof.ID) {
			continue
		}
		course, ok := doc.CourseByID(item.CourseID)
		if !ok {
			continue
		}
		share := course.Workload / float64(len(item.ProfessorIDs))
		if item.Tentative {
			resp.TentativeLoad += share
		} else {
			resp.AssignedWorkload += share
		}
		for _, slot := range item.Slots() {
			resp.WeeklyMinutes += slot.WeeklyMinutes()
		}
	}
	if resp.AnnualLoad > 0 {
		resp.LoadFraction = resp.AssignedWorkload / resp.AnnualLoad
		resp.TentativeLoadFraction = resp.TentativeLoad / resp.AnnualLoad
	}
	return resp
}
