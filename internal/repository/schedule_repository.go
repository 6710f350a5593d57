// Package repository holds the in-memory schedule document store and the
// Postgres archive for serialized documents. The ScheduleRepository owns all
// five databases exclusively; callers receive value copies and mutate through
// replace-style operations only.
package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

// ScheduleRepository is the single-document store backing every query and
// mutation. A mutex guards it so the HTTP layer may serve concurrent reads;
// the one-writer-at-a-time model of the desktop original is otherwise kept.
type ScheduleRepository struct {
	mu       sync.RWMutex
	doc      models.Document
	revision uint64
}

// NewScheduleRepository returns a repository holding an empty document.
func NewScheduleRepository(annualLoad float64) *ScheduleRepository {
	return &ScheduleRepository{doc: models.NewDocument(annualLoad)}
}

// Snapshot returns a deep copy of the current document.
func (r *ScheduleRepository) Snapshot() models.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doc.Clone()
}

// Replace swaps the whole document, e.g. after a file load or merge commit.
func (r *ScheduleRepository) Replace(doc models.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = doc.Clone()
	r.revision++
}

// Reset discards all databases and restores default options.
func (r *ScheduleRepository) Reset(annualLoad float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = models.NewDocument(annualLoad)
	r.revision++
}

// Revision increments on every mutation; read caches key off it.
func (r *ScheduleRepository) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}

// Options returns the document options.
func (r *ScheduleRepository) Options() models.Options {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doc.Options
}

// SetDescription updates the document description.
func (r *ScheduleRepository) SetDescription(description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc.Options.Description = description
	r.revision++
}

// SetAnnualLoad updates the annual full-load hours used by workload fractions.
func (r *ScheduleRepository) SetAnnualLoad(hours float64) error {
	if hours <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "annual load must be positive")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc.Options.AnnualLoad = hours
	r.revision++
	return nil
}

// Notes returns the free-form notes text.
func (r *ScheduleRepository) Notes() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doc.Notes
}

// SetNotes replaces the notes text.
func (r *ScheduleRepository) SetNotes(notes string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc.Notes = notes
	r.revision++
}

func sortCourses(courses []models.Course) {
	sort.Slice(courses, func(i, j int) bool { return courses[i].Name() < courses[j].Name() })
}

func sortFaculty(faculty []models.Professor) {
	sort.Slice(faculty, func(i, j int) bool { return faculty[i].Name() < faculty[j].Name() })
}

func sortRooms(rooms []models.Room) {
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name() < rooms[j].Name() })
}

func sortSlots(slots []models.TimeSlot) {
	sort.Slice(slots, func(i, j int) bool { return slots[i].Description24() < slots[j].Description24() })
}

// stripWhitespace removes all whitespace from a string.
func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// stripColons removes all colons from a string.
func stripColons(s string) string {
	return strings.ReplaceAll(s, ":", "")
}

// cleanIdentifier normalizes user-entered code fields: whitespace and colons
// removed, optionally uppercased.
func cleanIdentifier(s string, upper bool) string {
	s = stripColons(stripWhitespace(s))
	if upper {
		s = strings.ToUpper(s)
	}
	return s
}
