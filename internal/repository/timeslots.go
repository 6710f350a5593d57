package repository

import (
	"fmt"

	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

// StandardSlots returns the reusable time slot templates in chronological
// order.
func (r *ScheduleRepository) StandardSlots() []models.TimeSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]models.TimeSlot(nil), r.doc.StandardSlots...)
	sortSlots(out)
	return out
}

// AddStandardSlot normalizes and stores a slot template. Templates are keyed
// by their full description, so the same span cannot be added twice.
func (r *ScheduleRepository) AddStandardSlot(slot models.TimeSlot) (models.TimeSlot, error) {
	slot = slot.Normalize()
	if !slot.Valid() {
		return models.TimeSlot{}, appErrors.Clone(appErrors.ErrValidation, "time slot is not valid")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.doc.StandardSlots {
		if s.Equal(slot) {
			return models.TimeSlot{}, appErrors.Clone(appErrors.ErrDuplicate, fmt.Sprintf("standard slot %s already exists", slot.Description24()))
		}
	}

	r.doc.StandardSlots = append(r.doc.StandardSlots, slot)
	sortSlots(r.doc.StandardSlots)
	r.revision++
	return slot, nil
}

// DeleteStandardSlot removes a slot template. Templates are copied into
// placements when used, so removal never touches the schedule.
func (r *ScheduleRepository) DeleteStandardSlot(slot models.TimeSlot) error {
	slot = slot.Normalize()

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.doc.StandardSlots {
		if s.Equal(slot) {
			r.doc.StandardSlots = append(r.doc.StandardSlots[:i], r.doc.StandardSlots[i+1:]...)
			r.revision++
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("standard slot %s not found", slot.Description24()))
}
