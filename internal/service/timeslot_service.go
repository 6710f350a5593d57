package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

type slotRepository interface {
	StandardSlots() []models.TimeSlot
	AddStandardSlot(slot models.TimeSlot) (models.TimeSlot, error)
	DeleteStandardSlot(slot models.TimeSlot) error
}

// TimeSlotService manages the standard time slot templates.
type TimeSlotService struct {
	repo      slotRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimeSlotService constructs a TimeSlotService instance.
func NewTimeSlotService(repo slotRepository, validate *validator.Validate, logger *zap.Logger) *TimeSlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeSlotService{repo: repo, validator: validate, logger: logger}
}

// List returns the slot templates in chronological order.
func (s *TimeSlotService) List() []models.TimeSlot {
	return s.repo.StandardSlots()
}

// Create validates and stores a slot template.
func (s *TimeSlotService) Create(req dto.TimeSlotRequest) (models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.TimeSlot{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}
	slot, err := s.repo.AddStandardSlot(req.ToModel())
	if err != nil {
		return models.TimeSlot{}, err
	}
	s.logger.Info("standard slot created", zap.String("slot", slot.Description24()))
	return slot, nil
}

// Delete removes a slot template.
func (s *TimeSlotService) Delete(req dto.TimeSlotRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}
	if err := s.repo.DeleteStandardSlot(req.ToModel()); err != nil {
		return err
	}
	s.logger.Info("standard slot deleted")
	return nil
}
