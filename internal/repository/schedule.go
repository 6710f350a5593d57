package repository

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

// Items returns every schedule item sorted by display name
// (course code, number, section).
func (r *ScheduleRepository) Items() []models.ScheduleItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ScheduleItem, 0, len(r.doc.Schedule))
	for _, item := range r.doc.Schedule {
		out = append(out, item.Clone())
	}
	names := make(map[int]string, len(out))
	for _, item := range out {
		names[item.ID] = r.doc.ItemName(item)
	}
	sort.Slice(out, func(i, j int) bool { return names[out[i].ID] < names[out[j].ID] })
	return out
}

// ItemByID returns the schedule item with the given id.
func (r *ScheduleRepository) ItemByID(id int) (models.ScheduleItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.doc.ItemByID(id)
	if !ok {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", id))
	}
	return item.Clone(), nil
}

// AddScheduleItem creates an unscheduled section of a course taught by a
// single professor. The section number is issued automatically.
func (r *ScheduleRepository) AddScheduleItem(courseID, professorID int) (models.ScheduleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.doc.CourseByID(courseID); !ok {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %d not found", courseID))
	}
	if _, ok := r.doc.ProfessorByID(professorID); !ok {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %d not found", professorID))
	}

	item := models.ScheduleItem{
		ID:           r.doc.NextItemID(),
		CourseID:     courseID,
		ProfessorIDs: []int{professorID},
		Section:      r.generateSection(courseID),
	}
	r.doc.Schedule = append(r.doc.Schedule, item)
	r.revision++
	return item.Clone(), nil
}

// UpdateScheduleItem replaces the item with the given id after validating
// every reference it carries. Placement slots in the same room are
// consolidated before storing.
func (r *ScheduleRepository) UpdateScheduleItem(id int, item models.ScheduleItem) (models.ScheduleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.itemIndex(id)
	if index < 0 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", id))
	}
	item.ID = id
	if err := r.validateItem(item); err != nil {
		return models.ScheduleItem{}, err
	}
	section, err := r.normalizeSection(item.CourseID, item.Section, id)
	if err != nil {
		return models.ScheduleItem{}, err
	}
	item.Section = section
	item.Placements = consolidatePlacements(item.Placements)

	stored := item.Clone()
	r.doc.Schedule[index] = stored
	r.revision++
	return stored.Clone(), nil
}

// DeleteScheduleItem removes an item and prunes its id from every other
// item's linked list.
func (r *ScheduleRepository) DeleteScheduleItem(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.itemIndex(id)
	if index < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", id))
	}
	r.doc.Schedule = append(r.doc.Schedule[:index], r.doc.Schedule[index+1:]...)
	r.doc.Schedule = pruneLinks(r.doc.Schedule, map[int]struct{}{id: {}})
	r.revision++
	return nil
}

// AddPlacement appends a room and time assignment to an item. Slots already
// held in the same room are consolidated with the new one.
func (r *ScheduleRepository) AddPlacement(itemID int, placement models.Placement) (models.ScheduleItem, error) {
	placement.Slot = placement.Slot.Normalize()
	if !placement.Slot.Valid() {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrValidation, "time slot is not valid")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.itemIndex(itemID)
	if index < 0 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", itemID))
	}
	if _, ok := r.doc.RoomByID(placement.RoomID); !ok {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %d not found", placement.RoomID))
	}

	item := r.doc.Schedule[index].Clone()
	item.Placements = consolidatePlacements(append(item.Placements, placement))
	r.doc.Schedule[index] = item
	r.revision++
	return item.Clone(), nil
}

// SetPlacements replaces every placement on an item.
func (r *ScheduleRepository) SetPlacements(itemID int, placements []models.Placement) (models.ScheduleItem, error) {
	for i := range placements {
		placements[i].Slot = placements[i].Slot.Normalize()
		if !placements[i].Slot.Valid() {
			return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrValidation, "time slot is not valid")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.itemIndex(itemID)
	if index < 0 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", itemID))
	}
	for _, pl := range placements {
		if _, ok := r.doc.RoomByID(pl.RoomID); !ok {
			return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %d not found", pl.RoomID))
		}
	}

	item := r.doc.Schedule[index].Clone()
	item.Placements = consolidatePlacements(placements)
	r.doc.Schedule[index] = item
	r.revision++
	return item.Clone(), nil
}

// ClearPlacements removes every room and time assignment from an item,
// returning it to the unscheduled state.
func (r *ScheduleRepository) ClearPlacements(itemID int) (models.ScheduleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.itemIndex(itemID)
	if index < 0 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", itemID))
	}
	item := r.doc.Schedule[index].Clone()
	item.Placements = nil
	r.doc.Schedule[index] = item
	r.revision++
	return item.Clone(), nil
}

// AddProfessorToItem adds a co-instructor to an item's roster.
func (r *ScheduleRepository) AddProfessorToItem(itemID, professorID int) (models.ScheduleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.itemIndex(itemID)
	if index < 0 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", itemID))
	}
	if _, ok := r.doc.ProfessorByID(professorID); !ok {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %d not found", professorID))
	}
	if r.doc.Schedule[index].Teaches(professorID) {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrDuplicate, fmt.Sprintf("professor %d already teaches this class", professorID))
	}

	item := r.doc.Schedule[index].Clone()
	item.ProfessorIDs = append(item.ProfessorIDs, professorID)
	r.doc.Schedule[index] = item
	r.revision++
	return item.Clone(), nil
}

// RemoveProfessorFromItem drops a co-instructor from the roster. Every class
// keeps at least one instructor, so the last one cannot be removed.
func (r *ScheduleRepository) RemoveProfessorFromItem(itemID, professorID int) (models.ScheduleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.itemIndex(itemID)
	if index < 0 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", itemID))
	}
	if !r.doc.Schedule[index].Teaches(professorID) {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %d does not teach this class", professorID))
	}
	if len(r.doc.Schedule[index].ProfessorIDs) == 1 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "a class must keep at least one instructor")
	}

	item := r.doc.Schedule[index].Clone()
	roster := item.ProfessorIDs[:0]
	for _, pid := range item.ProfessorIDs {
		if pid != professorID {
			roster = append(roster, pid)
		}
	}
	item.ProfessorIDs = roster
	r.doc.Schedule[index] = item
	r.revision++
	return item.Clone(), nil
}

// SetTentative flips the tentative flag on an item.
func (r *ScheduleRepository) SetTentative(itemID int, tentative bool) (models.ScheduleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.itemIndex(itemID)
	if index < 0 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", itemID))
	}
	item := r.doc.Schedule[index].Clone()
	item.Tentative = tentative
	r.doc.Schedule[index] = item
	r.revision++
	return item.Clone(), nil
}

// LinkItems records a directed association from one item to another, used to
// group sections that move together (a lecture and its lab, for example).
func (r *ScheduleRepository) LinkItems(itemID, targetID int) (models.ScheduleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.itemIndex(itemID)
	if index < 0 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", itemID))
	}
	if itemID == targetID {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrValidation, "an item cannot link to itself")
	}
	if r.itemIndex(targetID) < 0 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", targetID))
	}
	if r.doc.Schedule[index].LinksTo(targetID) {
		return r.doc.Schedule[index].Clone(), nil
	}

	item := r.doc.Schedule[index].Clone()
	item.LinkedItemIDs = append(item.LinkedItemIDs, targetID)
	sort.Ints(item.LinkedItemIDs)
	r.doc.Schedule[index] = item
	r.revision++
	return item.Clone(), nil
}

// UnlinkItems removes a directed association between two items.
func (r *ScheduleRepository) UnlinkItems(itemID, targetID int) (models.ScheduleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.itemIndex(itemID)
	if index < 0 {
		return models.ScheduleItem{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", itemID))
	}

	item := r.doc.Schedule[index].Clone()
	links := item.LinkedItemIDs[:0]
	for _, lid := range item.LinkedItemIDs {
		if lid != targetID {
			links = append(links, lid)
		}
	}
	item.LinkedItemIDs = links
	r.doc.Schedule[index] = item
	r.revision++
	return item.Clone(), nil
}

// GenerateSectionNumber returns the smallest unused section number for a
// course as a zero padded three digit string, skipping any numbers the caller
// has already reserved.
func (r *ScheduleRepository) GenerateSectionNumber(courseID int, skip ...string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generateSection(courseID, skip...)
}

func (r *ScheduleRepository) generateSection(courseID int, skip ...string) string {
	used := make(map[string]struct{})
	for _, item := range r.doc.Schedule {
		if item.CourseID == courseID {
			used[item.Section] = struct{}{}
		}
	}
	for _, s := range skip {
		used[s] = struct{}{}
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%03d", n)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}
}

// normalizeSection reformats a section number and ensures no other section of
// the same course already uses it. Numeric sections are zero padded to three
// digits.
func (r *ScheduleRepository) normalizeSection(courseID int, section string, selfID int) (string, error) {
	section = cleanIdentifier(section, false)
	if section == "" {
		return r.generateSection(courseID), nil
	}
	if n, err := strconv.Atoi(section); err == nil {
		if n <= 0 {
			return "", appErrors.Clone(appErrors.ErrValidation, "section number must be positive")
		}
		section = fmt.Sprintf("%03d", n)
	}
	for _, item := range r.doc.Schedule {
		if item.ID != selfID && item.CourseID == courseID && item.Section == section {
			return "", appErrors.Clone(appErrors.ErrDuplicate, fmt.Sprintf("section %s already exists for this course", section))
		}
	}
	return section, nil
}

func (r *ScheduleRepository) itemIndex(id int) int {
	for i, item := range r.doc.Schedule {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (r *ScheduleRepository) validateItem(item models.ScheduleItem) error {
	if _, ok := r.doc.CourseByID(item.CourseID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %d not found", item.CourseID))
	}
	if len(item.ProfessorIDs) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "a class must have at least one instructor")
	}
	seen := make(map[int]struct{}, len(item.ProfessorIDs))
	for _, pid := range item.ProfessorIDs {
		if _, ok := r.doc.ProfessorByID(pid); !ok {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %d not found", pid))
		}
		if _, dup := seen[pid]; dup {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("professor %d listed twice", pid))
		}
		seen[pid] = struct{}{}
	}
	for _, pl := range item.Placements {
		if _, ok := r.doc.RoomByID(pl.RoomID); !ok {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %d not found", pl.RoomID))
		}
		if !pl.Slot.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, "time slot is not valid")
		}
	}
	for _, lid := range item.LinkedItemIDs {
		if lid == item.ID {
			return appErrors.Clone(appErrors.ErrValidation, "an item cannot link to itself")
		}
		if r.itemIndex(lid) < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule item %d not found", lid))
		}
	}
	return nil
}

// consolidatePlacements merges slots held in the same room, so Monday and
// Wednesday at the same hour collapse into a single MW entry. Room order of
// first appearance is preserved.
func consolidatePlacements(placements []models.Placement) []models.Placement {
	if len(placements) == 0 {
		return nil
	}
	order := make([]int, 0, len(placements))
	byRoom := make(map[int][]models.TimeSlot)
	for _, pl := range placements {
		slot := pl.Slot.Normalize()
		if _, seen := byRoom[pl.RoomID]; !seen {
			order = append(order, pl.RoomID)
		}
		byRoom[pl.RoomID] = append(byRoom[pl.RoomID], slot)
	}
	out := make([]models.Placement, 0, len(placements))
	for _, roomID := range order {
		slots := models.ConsolidateTimeSlots(byRoom[roomID])
		sortSlots(slots)
		for _, slot := range slots {
			out = append(out, models.Placement{RoomID: roomID, Slot: slot})
		}
	}
	return out
}
