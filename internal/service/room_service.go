package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/conflict"
	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

type roomRepository interface {
	Rooms() []models.Room
	RoomByID(id int) (models.Room, error)
	AddRoom(room models.Room) (models.Room, error)
	UpdateRoom(id int, room models.Room) (models.Room, error)
	DeleteRoom(id int) error
	Snapshot() models.Document
}

// RoomService manages rooms.
type RoomService struct {
	repo      roomRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs a RoomService instance.
func NewRoomService(repo roomRepository, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, validator: validate, logger: logger}
}

// List returns rooms sorted by name.
func (s *RoomService) List() []models.Room {
	return s.repo.Rooms()
}

// Get returns one room.
func (s *RoomService) Get(id int) (models.Room, error) {
	return s.repo.RoomByID(id)
}

// Create validates and stores a new room.
func (s *RoomService) Create(req dto.CreateRoomRequest) (models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Room{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	room, err := s.repo.AddRoom(models.Room{
		Building: req.Building,
		Number:   req.Number,
		Capacity: req.Capacity,
		Special:  req.Special,
		Real:     req.Real,
	})
	if err != nil {
		return models.Room{}, err
	}
	s.logger.Info("room created", zap.Int("id", room.ID), zap.String("name", room.Name()))
	return room, nil
}

// Update replaces an existing room.
func (s *RoomService) Update(id int, req dto.UpdateRoomRequest) (models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Room{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	current, err := s.repo.RoomByID(id)
	if err != nil {
		return models.Room{}, err
	}
	// A virtual room may hold overlapping bookings. Making it real would
	// legalize them, so refuse while any overlap remains.
	if !current.Real && req.Real && conflict.AnyConflictInRoom(s.repo.Snapshot(), current) {
		return models.Room{}, appErrors.Clone(appErrors.ErrConflict, "room has overlapping bookings and cannot become real")
	}
	room, err := s.repo.UpdateRoom(id, models.Room{
		Building: req.Building,
		Number:   req.Number,
		Capacity: req.Capacity,
		Special:  req.Special,
		Real:     req.Real,
	})
	if err != nil {
		return models.Room{}, err
	}
	s.logger.Info("room updated", zap.Int("id", id))
	return room, nil
}

// Delete removes a room and strips its placements from the schedule.
func (s *RoomService) Delete(id int) error {
	if err := s.repo.DeleteRoom(id); err != nil {
		return err
	}
	s.logger.Info("room deleted", zap.Int("id", id))
	return nil
}
