package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/conflict"
	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

type scheduleItemRepository interface {
	Snapshot() models.Document
	Items() []models.ScheduleItem
	ItemByID(id int) (models.ScheduleItem, error)
	AddScheduleItem(courseID, professorID int) (models.ScheduleItem, error)
	UpdateScheduleItem(id int, item models.ScheduleItem) (models.ScheduleItem, error)
	DeleteScheduleItem(id int) error
	AddPlacement(itemID int, placement models.Placement) (models.ScheduleItem, error)
	SetPlacements(itemID int, placements []models.Placement) (models.ScheduleItem, error)
	ClearPlacements(itemID int) (models.ScheduleItem, error)
	AddProfessorToItem(itemID, professorID int) (models.ScheduleItem, error)
	RemoveProfessorFromItem(itemID, professorID int) (models.ScheduleItem, error)
	SetTentative(itemID int, tentative bool) (models.ScheduleItem, error)
	LinkItems(itemID, targetID int) (models.ScheduleItem, error)
	UnlinkItems(itemID, targetID int) (models.ScheduleItem, error)
	GenerateSectionNumber(courseID int, skip ...string) string
}

// ScheduleService manages schedule items and refuses placements that would
// put a real room or a real professor in two places at once.
type ScheduleService struct {
	repo      scheduleItemRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService instance.
func NewScheduleService(repo scheduleItemRepository, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, validator: validate, logger: logger}
}

// List returns schedule items with display name and state attached, narrowed
// by the optional course/professor/room filter.
func (s *ScheduleService) List(filter dto.ScheduleFilter) []dto.ScheduleItemResponse {
	doc := s.repo.Snapshot()
	items := s.repo.Items()
	out := make([]dto.ScheduleItemResponse, 0, len(items))
	for _, item := range items {
		if !matchesFilter(item, filter) {
			continue
		}
		out = append(out, s.toResponse(doc, item))
	}
	return out
}

// matchesFilter applies the course/professor/room narrowing used by the
// roster views.
func matchesFilter(item models.ScheduleItem, filter dto.ScheduleFilter) bool {
	if filter.CourseID > 0 && item.CourseID != filter.CourseID {
		return false
	}
	if filter.ProfessorID > 0 {
		found := false
		for _, pid := range item.ProfessorIDs {
			if pid == filter.ProfessorID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.RoomID > 0 {
		found := false
		for _, pl := range item.Placements {
			if pl.RoomID == filter.RoomID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Get returns one schedule item.
func (s *ScheduleService) Get(id int) (dto.ScheduleItemResponse, error) {
	item, err := s.repo.ItemByID(id)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	return s.toResponse(s.repo.Snapshot(), item), nil
}

// Create adds an unscheduled section for a course and professor.
func (s *ScheduleService) Create(req dto.CreateScheduleItemRequest) (dto.ScheduleItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleItemResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule item payload")
	}
	item, err := s.repo.AddScheduleItem(req.CourseID, req.ProfessorID)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	doc := s.repo.Snapshot()
	s.logger.Info("schedule item created", zap.Int("id", item.ID), zap.String("name", doc.ItemName(item)))
	return s.toResponse(doc, item), nil
}

// Update replaces a section's fields after verifying the requested placements
// are conflict free. The item's own current assignments do not count against
// it.
func (s *ScheduleService) Update(id int, req dto.UpdateScheduleItemRequest) (dto.ScheduleItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleItemResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule item payload")
	}
	placements := dto.PlacementsToModel(req.Placements)
	if err := s.refuseConflicts(id, req.ProfessorIDs, placements); err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	item, err := s.repo.UpdateScheduleItem(id, models.ScheduleItem{
		CourseID:      req.CourseID,
		ProfessorIDs:  req.ProfessorIDs,
		Placements:    placements,
		Section:       req.Section,
		Tentative:     req.Tentative,
		Subtitle:      req.Subtitle,
		Designation:   req.Designation,
		LinkedItemIDs: req.LinkedItemIDs,
	})
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	s.logger.Info("schedule item updated", zap.Int("id", id))
	return s.toResponse(s.repo.Snapshot(), item), nil
}

// Delete removes a section and prunes links pointing at it.
func (s *ScheduleService) Delete(id int) error {
	if err := s.repo.DeleteScheduleItem(id); err != nil {
		return err
	}
	s.logger.Info("schedule item deleted", zap.Int("id", id))
	return nil
}

// AddPlacement assigns a room and time to a section, refusing conflicts.
func (s *ScheduleService) AddPlacement(itemID int, req dto.PlacementRequest) (dto.ScheduleItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleItemResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid placement payload")
	}
	current, err := s.repo.ItemByID(itemID)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	placement := req.ToModel()
	if err := s.refuseConflicts(itemID, current.ProfessorIDs, []models.Placement{placement}); err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	item, err := s.repo.AddPlacement(itemID, placement)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	s.logger.Info("placement added", zap.Int("item", itemID), zap.Int("room", placement.RoomID))
	return s.toResponse(s.repo.Snapshot(), item), nil
}

// SetPlacements replaces every assignment on a section, refusing conflicts.
func (s *ScheduleService) SetPlacements(itemID int, reqs []dto.PlacementRequest) (dto.ScheduleItemResponse, error) {
	for _, req := range reqs {
		if err := s.validator.Struct(req); err != nil {
			return dto.ScheduleItemResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid placement payload")
		}
	}
	current, err := s.repo.ItemByID(itemID)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	placements := dto.PlacementsToModel(reqs)
	if err := s.refuseConflicts(itemID, current.ProfessorIDs, placements); err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	item, err := s.repo.SetPlacements(itemID, placements)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	s.logger.Info("placements replaced", zap.Int("item", itemID), zap.Int("count", len(placements)))
	return s.toResponse(s.repo.Snapshot(), item), nil
}

// ClearPlacements unschedules a section.
func (s *ScheduleService) ClearPlacements(itemID int) (dto.ScheduleItemResponse, error) {
	item, err := s.repo.ClearPlacements(itemID)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	s.logger.Info("placements cleared", zap.Int("item", itemID))
	return s.toResponse(s.repo.Snapshot(), item), nil
}

// AddProfessor adds a co-instructor. The new instructor must be free at every
// time the section already meets.
func (s *ScheduleService) AddProfessor(itemID int, req dto.RosterRequest) (dto.ScheduleItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleItemResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}
	current, err := s.repo.ItemByID(itemID)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	if err := s.refuseConflicts(itemID, []int{req.ProfessorID}, current.Placements); err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	item, err := s.repo.AddProfessorToItem(itemID, req.ProfessorID)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	s.logger.Info("instructor added", zap.Int("item", itemID), zap.Int("professor", req.ProfessorID))
	return s.toResponse(s.repo.Snapshot(), item), nil
}

// RemoveProfessor drops a co-instructor from the roster.
func (s *ScheduleService) RemoveProfessor(itemID int, req dto.RosterRequest) (dto.ScheduleItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleItemResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}
	item, err := s.repo.RemoveProfessorFromItem(itemID, req.ProfessorID)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	s.logger.Info("instructor removed", zap.Int("item", itemID), zap.Int("professor", req.ProfessorID))
	return s.toResponse(s.repo.Snapshot(), item), nil
}

// SetTentative flips the tentative flag.
func (s *ScheduleService) SetTentative(itemID int, req dto.TentativeRequest) (dto.ScheduleItemResponse, error) {
	item, err := s.repo.SetTentative(itemID, req.Tentative)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	return s.toResponse(s.repo.Snapshot(), item), nil
}

// Link associates one section with another.
func (s *ScheduleService) Link(itemID int, req dto.LinkRequest) (dto.ScheduleItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleItemResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid link payload")
	}
	item, err := s.repo.LinkItems(itemID, req.TargetID)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	return s.toResponse(s.repo.Snapshot(), item), nil
}

// Unlink removes an association between two sections.
func (s *ScheduleService) Unlink(itemID int, req dto.LinkRequest) (dto.ScheduleItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleItemResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid link payload")
	}
	item, err := s.repo.UnlinkItems(itemID, req.TargetID)
	if err != nil {
		return dto.ScheduleItemResponse{}, err
	}
	return s.toResponse(s.repo.Snapshot(), item), nil
}

// NextSection returns the section number the next new section of a course
// would receive.
func (s *ScheduleService) NextSection(courseID int) string {
	return s.repo.GenerateSectionNumber(courseID)
}

// refuseConflicts rejects proposed placements colliding with the rest of the
// schedule. The item being edited is excluded so a section never conflicts
// with itself.
func (s *ScheduleService) refuseConflicts(itemID int, professorIDs []int, placements []models.Placement) error {
	if len(placements) == 0 {
		return nil
	}
	doc := s.repo.Snapshot()
	exclude := conflict.Exclude(itemID)

	for _, pl := range placements {
		if conflict.RoomHasConflict(doc, pl, exclude) {
			room, _ := doc.RoomByID(pl.RoomID)
			return appErrors.Clone(appErrors.ErrConflict, "room "+room.Name()+" is occupied at "+pl.Slot.Description())
		}
	}

	slots := make([]models.TimeSlot, 0, len(placements))
	for _, pl := range placements {
		slots = append(slots, pl.Slot)
	}
	for _, pid := range professorIDs {
		prof, ok := doc.ProfessorByID(pid)
		if !ok {
			continue
		}
		if conflict.ProfessorHasConflict(doc, prof, slots, exclude) {
			return appErrors.Clone(appErrors.ErrConflict, prof.Name()+" is already teaching at that time")
		}
	}
	return nil
}

func (s *ScheduleService) toResponse(doc models.Document, item models.ScheduleItem) dto.ScheduleItemResponse {
	contact := 0.0
	if course, ok := doc.CourseByID(item.CourseID); ok {
		contact = course.Contact
	}
	return dto.ScheduleItemResponse{
		ScheduleItem:     item,
		Name:             doc.ItemName(item),
		State:            string(item.State(contact)),
		ScheduledMinutes: item.ScheduledMinutes(),
	}
}
