package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/conflict"
	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

type facultyRepository interface {
	Faculty() []models.Professor
	ProfessorByID(id int) (models.Professor, error)
	AddProfessor(prof models.Professor) (models.Professor, error)
	UpdateProfessor(id int, prof models.Professor) (models.Professor, error)
	DeleteProfessor(id int) error
	Snapshot() models.Document
}

// FacultyService manages the professor roster.
type FacultyService struct {
	repo      facultyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs a FacultyService instance.
func NewFacultyService(repo facultyRepository, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{repo: repo, validator: validate, logger: logger}
}

// List returns the faculty sorted by formal name.
func (s *FacultyService) List() []models.Professor {
	return s.repo.Faculty()
}

// Get returns one professor.
func (s *FacultyService) Get(id int) (models.Professor, error) {
	return s.repo.ProfessorByID(id)
}

// Create validates and stores a new faculty member.
func (s *FacultyService) Create(req dto.CreateProfessorRequest) (models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Professor{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	prof, err := s.repo.AddProfessor(models.Professor{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		Suffix:     req.Suffix,
		ShortDes:   req.ShortDes,
		EmployeeID: req.EmployeeID,
		Real:       req.Real,
	})
	if err != nil {
		return models.Professor{}, err
	}
	s.logger.Info("professor created", zap.Int("id", prof.ID), zap.String("name", prof.Name()))
	return prof, nil
}

// Update replaces an existing faculty member.
func (s *FacultyService) Update(id int, req dto.UpdateProfessorRequest) (models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Professor{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	current, err := s.repo.ProfessorByID(id)
	if err != nil {
		return models.Professor{}, err
	}
	// Placeholder instructors may be double booked. Promoting one to a real
	// professor is refused while any of their placements overlap.
	if !current.Real && req.Real && conflict.AnyConflictForProfessor(s.repo.Snapshot(), current) {
		return models.Professor{}, appErrors.Clone(appErrors.ErrConflict, "professor has overlapping classes and cannot become real")
	}
	prof, err := s.repo.UpdateProfessor(id, models.Professor{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		Suffix:     req.Suffix,
		ShortDes:   req.ShortDes,
		EmployeeID: req.EmployeeID,
		Real:       req.Real,
	})
	if err != nil {
		return models.Professor{}, err
	}
	s.logger.Info("professor updated", zap.Int("id", id))
	return prof, nil
}

// Delete removes a faculty member, cascading through class rosters.
func (s *FacultyService) Delete(id int) error {
	if err := s.repo.DeleteProfessor(id); err != nil {
		return err
	}
	s.logger.Info("professor deleted", zap.Int("id", id))
	return nil
}
