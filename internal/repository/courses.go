package repository

import (
	"fmt"

	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

// Courses returns the catalog sorted by name.
func (r *ScheduleRepository) Courses() []models.Course {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]models.Course(nil), r.doc.Courses...)
	sortCourses(out)
	return out
}

// CourseByID returns the course with the given id.
func (r *ScheduleRepository) CourseByID(id int) (models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	course, ok := r.doc.CourseByID(id)
	if !ok {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %d not found", id))
	}
	return course, nil
}

// CourseByName returns the course with the given catalog name.
func (r *ScheduleRepository) CourseByName(name string) (models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	course, ok := r.doc.CourseByName(name)
	if !ok {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %q not found", name))
	}
	return course, nil
}

// AddCourse validates and inserts a course, issuing its id.
func (r *ScheduleRepository) AddCourse(course models.Course) (models.Course, error) {
	course.Code = cleanIdentifier(course.Code, true)
	course.Number = cleanIdentifier(course.Number, false)
	if err := validateCourse(course); err != nil {
		return models.Course{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.doc.CourseByName(course.Name()); exists {
		return models.Course{}, appErrors.Clone(appErrors.ErrDuplicate, fmt.Sprintf("course %q already exists", course.Name()))
	}

	course.ID = r.doc.NextCourseID()
	r.doc.Courses = append(r.doc.Courses, course)
	sortCourses(r.doc.Courses)
	r.revision++
	return course, nil
}

// UpdateCourse replaces the course with the given id, re-validating
// uniqueness against everyone else.
func (r *ScheduleRepository) UpdateCourse(id int, course models.Course) (models.Course, error) {
	course.Code = cleanIdentifier(course.Code, true)
	course.Number = cleanIdentifier(course.Number, false)
	if err := validateCourse(course); err != nil {
		return models.Course{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	index := -1
	for i, c := range r.doc.Courses {
		if c.ID == id {
			index = i
		} else if c.Name() == course.Name() {
			return models.Course{}, appErrors.Clone(appErrors.ErrDuplicate, fmt.Sprintf("course %q already exists", course.Name()))
		}
	}
	if index < 0 {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %d not found", id))
	}

	course.ID = id
	r.doc.Courses[index] = course
	sortCourses(r.doc.Courses)
	r.revision++
	return course, nil
}

// DeleteCourse removes a course and cascades: every schedule item for the
// course is removed, and removed item ids are pruned from the remaining
// items' linked lists.
func (r *ScheduleRepository) DeleteCourse(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := -1
	for i, c := range r.doc.Courses {
		if c.ID == id {
			index = i
		}
	}
	if index < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %d not found", id))
	}

	removed := make(map[int]struct{})
	kept := r.doc.Schedule[:0]
	for _, item := range r.doc.Schedule {
		if item.CourseID == id {
			removed[item.ID] = struct{}{}
			continue
		}
		kept = append(kept, item)
	}
	r.doc.Schedule = pruneLinks(kept, removed)

	r.doc.Courses = append(r.doc.Courses[:index], r.doc.Courses[index+1:]...)
	r.revision++
	return nil
}

func validateCourse(course models.Course) error {
	if course.Code == "" {
		return appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}
	if course.Number == "" {
		return appErrors.Clone(appErrors.ErrValidation, "course number is required")
	}
	if course.Contact < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "contact minutes must not be negative")
	}
	if course.Workload < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "workload hours must not be negative")
	}
	return nil
}

// pruneLinks strips the given ids from every item's linked list, copying any
// item it changes so callers never alias prior state.
func pruneLinks(items []models.ScheduleItem, removed map[int]struct{}) []models.ScheduleItem {
	if len(removed) == 0 {
		return items
	}
	for i, item := range items {
		var links []int
		changed := false
		for _, linked := range item.LinkedItemIDs {
			if _, gone := removed[linked]; gone {
				changed = true
				continue
			}
			links = append(links, linked)
		}
		if changed {
			updated := item.Clone()
			updated.LinkedItemIDs = links
			items[i] = updated
		}
	}
	return items
}
