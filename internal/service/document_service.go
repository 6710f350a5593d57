package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

type documentStore interface {
	Snapshot() models.Document
	Replace(doc models.Document)
	Reset(annualLoad float64)
	Revision() uint64
	Options() models.Options
	SetDescription(description string)
	SetAnnualLoad(hours float64) error
	Notes() string
	SetNotes(notes string)
}

type ArchiveStore interface {
	Create(ctx context.Context, entry *models.ArchiveEntry) error
	GetByID(ctx context.Context, id string) (*models.ArchiveEntry, error)
	List(ctx context.Context, filter models.ArchiveFilter) ([]models.ArchiveEntry, error)
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error
}

// DocumentService manages the working document as a whole: export and import,
// reset, options, notes, and durable snapshots in the archive.
type DocumentService struct {
	repo              documentStore
	archive           ArchiveStore
	metrics           *MetricsService
	validator         *validator.Validate
	logger            *zap.Logger
	defaultAnnualLoad float64
}

// NewDocumentService constructs a DocumentService instance.
func NewDocumentService(repo documentStore, archive ArchiveStore, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, defaultAnnualLoad float64) *DocumentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultAnnualLoad <= 0 {
		defaultAnnualLoad = 24
	}
	return &DocumentService{
		repo:              repo,
		archive:           archive,
		metrics:           metrics,
		validator:         validate,
		logger:            logger,
		defaultAnnualLoad: defaultAnnualLoad,
	}
}

// Export returns the full working document.
func (s *DocumentService) Export() dto.DocumentResponse {
	return dto.DocumentResponse{Document: s.repo.Snapshot(), Revision: s.repo.Revision()}
}

// Import replaces the working document. The incoming document is checked for
// internal consistency first; the current document is untouched when it fails.
func (s *DocumentService) Import(doc models.Document) (dto.ImportResult, error) {
	if doc.Options.AnnualLoad <= 0 {
		doc.Options.AnnualLoad = s.defaultAnnualLoad
	}
	if err := validateDocument(doc); err != nil {
		return dto.ImportResult{}, err
	}
	s.repo.Replace(doc)
	s.observeDocument()
	s.logger.Info("document imported",
		zap.Int("faculty", len(doc.Faculty)),
		zap.Int("courses", len(doc.Courses)),
		zap.Int("items", len(doc.Schedule)))
	return dto.ImportResult{
		Faculty:  len(doc.Faculty),
		Rooms:    len(doc.Rooms),
		Courses:  len(doc.Courses),
		Items:    len(doc.Schedule),
		Revision: s.repo.Revision(),
	}, nil
}

// Reset discards the working document and starts a fresh one.
func (s *DocumentService) Reset() dto.DocumentResponse {
	s.repo.Reset(s.defaultAnnualLoad)
	s.observeDocument()
	s.logger.Info("document reset")
	return s.Export()
}

// GetOptions returns the document wide settings.
func (s *DocumentService) GetOptions() models.Options {
	return s.repo.Options()
}

// UpdateOptions replaces the document wide settings.
func (s *DocumentService) UpdateOptions(req dto.OptionsRequest) (models.Options, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Options{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid options payload")
	}
	if err := s.repo.SetAnnualLoad(req.AnnualLoad); err != nil {
		return models.Options{}, err
	}
	s.repo.SetDescription(req.Description)
	return s.repo.Options(), nil
}

// GetNotes returns the free form schedule notes.
func (s *DocumentService) GetNotes() string {
	return s.repo.Notes()
}

// UpdateNotes replaces the free form schedule notes.
func (s *DocumentService) UpdateNotes(req dto.NotesRequest) {
	s.repo.SetNotes(req.Notes)
}

// ArchiveSave stores the current document as a labelled snapshot.
func (s *DocumentService) ArchiveSave(ctx context.Context, req dto.ArchiveRequest, createdBy string) (*models.ArchiveEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid archive payload")
	}
	if s.archive == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "archive storage is not configured")
	}

	doc := s.repo.Snapshot()
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode document")
	}

	entry := &models.ArchiveEntry{
		Label:       req.Label,
		Description: req.Description,
		Revision:    s.repo.Revision(),
		ItemCount:   len(doc.Schedule),
		Payload:     payload,
		CreatedBy:   createdBy,
	}

	start := time.Now()
	err = s.archive.Create(ctx, entry)
	s.metrics.ObserveDBQuery("archive_create", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store snapshot")
	}

	s.logger.Info("document archived", zap.String("id", entry.ID), zap.String("label", entry.Label))
	entry.Payload = nil
	return entry, nil
}

// ArchiveRestore loads a stored snapshot into the working document. The
// current document survives untouched when the snapshot cannot be decoded or
// fails validation.
func (s *DocumentService) ArchiveRestore(ctx context.Context, id string) (dto.ImportResult, error) {
	if s.archive == nil {
		return dto.ImportResult{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "archive storage is not configured")
	}

	start := time.Now()
	entry, err := s.archive.GetByID(ctx, id)
	s.metrics.ObserveDBQuery("archive_get", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dto.ImportResult{}, appErrors.Clone(appErrors.ErrNotFound, "snapshot not found")
		}
		return dto.ImportResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch snapshot")
	}

	var doc models.Document
	if err := json.Unmarshal(entry.Payload, &doc); err != nil {
		return dto.ImportResult{}, appErrors.Wrap(err, appErrors.ErrLoadFailed.Code, appErrors.ErrLoadFailed.Status, "snapshot payload is corrupt")
	}
	result, err := s.Import(doc)
	if err != nil {
		return dto.ImportResult{}, err
	}
	s.logger.Info("document restored", zap.String("id", id), zap.String("label", entry.Label))
	return result, nil
}

// ArchiveList returns snapshot metadata.
func (s *DocumentService) ArchiveList(ctx context.Context, filter models.ArchiveFilter) ([]models.ArchiveEntry, error) {
	if s.archive == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "archive storage is not configured")
	}
	start := time.Now()
	entries, err := s.archive.List(ctx, filter)
	s.metrics.ObserveDBQuery("archive_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list snapshots")
	}
	return entries, nil
}

// ArchiveDelete soft deletes a snapshot.
func (s *DocumentService) ArchiveDelete(ctx context.Context, id string) error {
	if s.archive == nil {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "archive storage is not configured")
	}
	start := time.Now()
	err := s.archive.SoftDelete(ctx, id, time.Now().UTC())
	s.metrics.ObserveDBQuery("archive_delete", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "snapshot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete snapshot")
	}
	s.logger.Info("snapshot deleted", zap.String("id", id))
	return nil
}

func (s *DocumentService) observeDocument() {
	s.metrics.ObserveDocument(len(s.repo.Snapshot().Schedule), s.repo.Revision())
}

// validateDocument checks a document's internal consistency: every reference
// resolves, every class has an instructor, sections are unique per course,
// and every time slot is well formed. Documents that fail cannot be loaded.
func validateDocument(doc models.Document) error {
	fail := func(format string, args ...interface{}) error {
		return appErrors.Clone(appErrors.ErrLoadFailed, fmt.Sprintf(format, args...))
	}

	profs := make(map[int]struct{}, len(doc.Faculty))
	for _, p := range doc.Faculty {
		if _, dup := profs[p.ID]; dup {
			return fail("duplicate professor id %d", p.ID)
		}
		profs[p.ID] = struct{}{}
	}
	rooms := make(map[int]struct{}, len(doc.Rooms))
	for _, r := range doc.Rooms {
		if _, dup := rooms[r.ID]; dup {
			return fail("duplicate room id %d", r.ID)
		}
		rooms[r.ID] = struct{}{}
	}
	courses := make(map[int]struct{}, len(doc.Courses))
	for _, c := range doc.Courses {
		if _, dup := courses[c.ID]; dup {
			return fail("duplicate course id %d", c.ID)
		}
		courses[c.ID] = struct{}{}
	}

	items := make(map[int]struct{}, len(doc.Schedule))
	sections := make(map[string]struct{}, len(doc.Schedule))
	for _, item := range doc.Schedule {
		if _, dup := items[item.ID]; dup {
			return fail("duplicate schedule item id %d", item.ID)
		}
		items[item.ID] = struct{}{}

		if _, ok := courses[item.CourseID]; !ok {
			return fail("schedule item %d references unknown course %d", item.ID, item.CourseID)
		}
		if len(item.ProfessorIDs) == 0 {
			return fail("schedule item %d has no instructor", item.ID)
		}
		for _, pid := range item.ProfessorIDs {
			if _, ok := profs[pid]; !ok {
				return fail("schedule item %d references unknown professor %d", item.ID, pid)
			}
		}
		for _, pl := range item.Placements {
			if _, ok := rooms[pl.RoomID]; !ok {
				return fail("schedule item %d references unknown room %d", item.ID, pl.RoomID)
			}
			if !pl.Slot.Valid() {
				return fail("schedule item %d has an invalid time slot", item.ID)
			}
		}
		sectionKey := fmt.Sprintf("%d-%s", item.CourseID, item.Section)
		if _, dup := sections[sectionKey]; dup {
			return fail("duplicate section %s for course %d", item.Section, item.CourseID)
		}
		sections[sectionKey] = struct{}{}
	}
	for _, item := range doc.Schedule {
		for _, lid := range item.LinkedItemIDs {
			if _, ok := items[lid]; !ok {
				return fail("schedule item %d links to unknown item %d", item.ID, lid)
			}
		}
	}
	return nil
}
