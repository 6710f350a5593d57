package repository

import (
	"fmt"
	"strings"

	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

// Faculty returns the professor roster sorted by formal name.
func (r *ScheduleRepository) Faculty() []models.Professor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]models.Professor(nil), r.doc.Faculty...)
	sortFaculty(out)
	return out
}

// ProfessorByID returns the professor with the given id.
func (r *ScheduleRepository) ProfessorByID(id int) (models.Professor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prof, ok := r.doc.ProfessorByID(id)
	if !ok {
		return models.Professor{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %d not found", id))
	}
	return prof, nil
}

// ProfessorByName returns the professor with the given formal name.
func (r *ScheduleRepository) ProfessorByName(name string) (models.Professor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prof, ok := r.doc.ProfessorByName(name)
	if !ok {
		return models.Professor{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %q not found", name))
	}
	return prof, nil
}

// AddProfessor validates and inserts a faculty member, issuing the id.
// Both the formal name and the short designation must be unique.
func (r *ScheduleRepository) AddProfessor(prof models.Professor) (models.Professor, error) {
	trimProfessor(&prof)
	if err := validateProfessor(prof); err != nil {
		return models.Professor{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkFacultyUnique(r.doc.Faculty, prof, 0); err != nil {
		return models.Professor{}, err
	}

	prof.ID = r.doc.NextFacultyID()
	r.doc.Faculty = append(r.doc.Faculty, prof)
	sortFaculty(r.doc.Faculty)
	r.revision++
	return prof, nil
}

// UpdateProfessor replaces the professor with the given id.
func (r *ScheduleRepository) UpdateProfessor(id int, prof models.Professor) (models.Professor, error) {
	trimProfessor(&prof)
	if err := validateProfessor(prof); err != nil {
		return models.Professor{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	index := -1
	for i, p := range r.doc.Faculty {
		if p.ID == id {
			index = i
		}
	}
	if index < 0 {
		return models.Professor{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %d not found", id))
	}
	if err := checkFacultyUnique(r.doc.Faculty, prof, id); err != nil {
		return models.Professor{}, err
	}

	prof.ID = id
	r.doc.Faculty[index] = prof
	sortFaculty(r.doc.Faculty)
	r.revision++
	return prof, nil
}

// DeleteProfessor removes a faculty member and cascades: the id leaves every
// item's roster, items with no instructor left are removed entirely (a class
// always has at least one), and removed item ids are pruned from linked lists.
func (r *ScheduleRepository) DeleteProfessor(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := -1
	for i, p := range r.doc.Faculty {
		if p.ID == id {
			index = i
		}
	}
	if index < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %d not found", id))
	}

	removed := make(map[int]struct{})
	kept := r.doc.Schedule[:0]
	for _, item := range r.doc.Schedule {
		if !item.Teaches(id) {
			kept = append(kept, item)
			continue
		}
		updated := item.Clone()
		roster := updated.ProfessorIDs[:0]
		for _, pid := range updated.ProfessorIDs {
			if pid != id {
				roster = append(roster, pid)
			}
		}
		updated.ProfessorIDs = roster
		if len(updated.ProfessorIDs) == 0 {
			removed[updated.ID] = struct{}{}
			continue
		}
		kept = append(kept, updated)
	}
	r.doc.Schedule = pruneLinks(kept, removed)

	r.doc.Faculty = append(r.doc.Faculty[:index], r.doc.Faculty[index+1:]...)
	r.revision++
	return nil
}

func trimProfessor(prof *models.Professor) {
	prof.LastName = strings.TrimSpace(prof.LastName)
	prof.FirstName = strings.TrimSpace(prof.FirstName)
	prof.MiddleName = strings.TrimSpace(prof.MiddleName)
	prof.Suffix = strings.TrimSpace(prof.Suffix)
	prof.ShortDes = strings.TrimSpace(prof.ShortDes)
	prof.EmployeeID = strings.TrimSpace(prof.EmployeeID)
}

func validateProfessor(prof models.Professor) error {
	if prof.LastName == "" {
		return appErrors.Clone(appErrors.ErrValidation, "last name is required")
	}
	if prof.ShortDes == "" {
		return appErrors.Clone(appErrors.ErrValidation, "short designation is required")
	}
	return nil
}

func checkFacultyUnique(faculty []models.Professor, prof models.Professor, selfID int) error {
	for _, p := range faculty {
		if p.ID == selfID {
			continue
		}
		if p.Name() == prof.Name() {
			return appErrors.Clone(appErrors.ErrDuplicate, fmt.Sprintf("professor %q already exists", prof.Name()))
		}
		if p.ShortDes == prof.ShortDes {
			return appErrors.Clone(appErrors.ErrDuplicate, fmt.Sprintf("short designation %q already in use", prof.ShortDes))
		}
	}
	return nil
}
