package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/conflict"
	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

type conflictDocumentSource interface {
	Snapshot() models.Document
	Revision() uint64
}

// ConflictService answers conflict queries over the working document. Scan
// results are cached keyed by the document revision, so every edit naturally
// invalidates them.
type ConflictService struct {
	repo      conflictDocumentSource
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	scanTTL   time.Duration
}

// NewConflictService constructs a ConflictService instance.
func NewConflictService(repo conflictDocumentSource, cache *CacheService, validate *validator.Validate, logger *zap.Logger, scanTTL time.Duration) *ConflictService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if scanTTL <= 0 {
		scanTTL = 5 * time.Minute
	}
	return &ConflictService{repo: repo, cache: cache, validator: validate, logger: logger, scanTTL: scanTTL}
}

// Check reports whether the proposed placements would collide with the rest
// of the schedule, excluding the item being edited and any explicitly listed
// items.
func (s *ConflictService) Check(req dto.ConflictCheckRequest) (dto.ConflictCheckResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ConflictCheckResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict check payload")
	}

	doc := s.repo.Snapshot()
	item, ok := doc.ItemByID(req.ItemID)
	if !ok {
		return dto.ConflictCheckResponse{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", req.ItemID))
	}

	exclude := conflict.Exclude(append([]int{req.ItemID}, req.ExcludeItemIDs...)...)
	var resp dto.ConflictCheckResponse

	placements := dto.PlacementsToModel(req.Placements)
	for _, pl := range placements {
		if conflict.RoomHasConflict(doc, pl, exclude) {
			resp.RoomConflict = true
			resp.ConflictingRooms = append(resp.ConflictingRooms, pl.RoomID)
		}
	}

	slots := make([]models.TimeSlot, 0, len(placements))
	for _, pl := range placements {
		slots = append(slots, pl.Slot)
	}
	for _, pid := range item.ProfessorIDs {
		prof, ok := doc.ProfessorByID(pid)
		if !ok {
			continue
		}
		if conflict.ProfessorHasConflict(doc, prof, slots, exclude) {
			resp.ProfessorConflict = true
		}
	}
	return resp, nil
}

// Scan sweeps the whole document for rooms and professors that are double
// booked right now.
func (s *ConflictService) Scan(ctx context.Context) (dto.ConflictScanResponse, error) {
	revision := s.repo.Revision()
	key := fmt.Sprintf("conflict:scan:%d", revision)

	var cached dto.ConflictScanResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	doc := s.repo.Snapshot()
	resp := dto.ConflictScanResponse{Revision: revision}
	for _, room := range doc.Rooms {
		if conflict.AnyConflictInRoom(doc, room) {
			resp.Rooms = append(resp.Rooms, room.Name())
		}
	}
	for _, prof := range doc.Faculty {
		if conflict.AnyConflictForProfessor(doc, prof) {
			resp.Professors = append(resp.Professors, prof.Name())
		}
	}

	if err := s.cache.Set(ctx, key, resp, s.scanTTL); err != nil {
		s.logger.Warn("conflict scan cache write failed", zap.Error(err))
	}
	return resp, nil
}
