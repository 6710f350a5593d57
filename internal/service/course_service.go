package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

type courseRepository interface {
	Courses() []models.Course
	CourseByID(id int) (models.Course, error)
	AddCourse(course models.Course) (models.Course, error)
	UpdateCourse(id int, course models.Course) (models.Course, error)
	DeleteCourse(id int) error
}

// CourseService manages the course catalog.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// List returns the catalog sorted by name.
func (s *CourseService) List() []models.Course {
	return s.repo.Courses()
}

// Get returns one course.
func (s *CourseService) Get(id int) (models.Course, error) {
	return s.repo.CourseByID(id)
}

// Create validates and stores a new course.
func (s *CourseService) Create(req dto.CreateCourseRequest) (models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Course{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := s.repo.AddCourse(models.Course{
		Code:     req.Code,
		Number:   req.Number,
		Title:    req.Title,
		Contact:  req.Contact,
		Workload: req.Workload,
	})
	if err != nil {
		return models.Course{}, err
	}
	s.logger.Info("course created", zap.Int("id", course.ID), zap.String("name", course.Name()))
	return course, nil
}

// Update replaces an existing course.
func (s *CourseService) Update(id int, req dto.UpdateCourseRequest) (models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Course{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := s.repo.UpdateCourse(id, models.Course{
		Code:     req.Code,
		Number:   req.Number,
		Title:    req.Title,
		Contact:  req.Contact,
		Workload: req.Workload,
	})
	if err != nil {
		return models.Course{}, err
	}
	s.logger.Info("course updated", zap.Int("id", id))
	return course, nil
}

// Delete removes a course. Every section of the course goes with it.
func (s *CourseService) Delete(id int) error {
	if err := s.repo.DeleteCourse(id); err != nil {
		return err
	}
	s.logger.Info("course deleted", zap.Int("id", id))
	return nil
}
