// Package conflict implements the pure overlap queries run against a schedule
// document: would a proposed placement double-book a professor or a room, and
// is the current schedule self-consistent. All scans are linear over the
// schedule; realistic documents hold at most a few hundred items.
package conflict

import "github.com/deptsched/scheduler-api/internal/models"

// ExcludeSet marks schedule item ids to skip during a scan. Conflict checks
// run while an item is being edited must not flag the item's own prior state.
type ExcludeSet map[int]struct{}

// Exclude builds an ExcludeSet from ids.
func Exclude(ids ...int) ExcludeSet {
	set := make(ExcludeSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (e ExcludeSet) contains(id int) bool {
	_, ok := e[id]
	return ok
}

// ProfessorHasConflict reports whether any of the proposed slots overlaps an
// existing placement taught by the professor. Non-real professors (generic
// "Staff" placeholders) never conflict.
func ProfessorHasConflict(doc models.Document, prof models.Professor, proposed []models.TimeSlot, exclude ExcludeSet) bool {
	if !prof.Real {
		return false
	}

	for _, item := range doc.Schedule {
		if exclude.contains(item.ID) || !item.Teaches(prof.ID) {
			continue
		}
		for _, slot := range proposed {
			for _, placement := range item.Placements {
				if slot.Overlaps(placement.Slot) {
					return true
				}
			}
		}
	}
	return false
}

// RoomHasConflict reports whether the proposed placement overlaps an existing
// booking of the same room. Non-real (virtual) rooms never conflict.
func RoomHasConflict(doc models.Document, proposed models.Placement, exclude ExcludeSet) bool {
	room, ok := doc.RoomByID(proposed.RoomID)
	if !ok || !room.Real {
		return false
	}

	for _, item := range doc.Schedule {
		if exclude.contains(item.ID) {
			continue
		}
		for _, placement := range item.Placements {
			if placement.RoomID == proposed.RoomID && placement.Slot.Overlaps(proposed.Slot) {
				return true
			}
		}
	}
	return false
}

// AnyConflictInRoom scans the whole schedule for overlapping bookings of one
// room. Used to veto bulk edits such as flipping a room from virtual to real.
func AnyConflictInRoom(doc models.Document, room models.Room) bool {
	var slots []models.TimeSlot
	for _, item := range doc.Schedule {
		for _, placement := range item.Placements {
			if placement.RoomID == room.ID {
				slots = append(slots, placement.Slot)
			}
		}
	}
	return anyPairOverlaps(slots)
}

// AnyConflictForProfessor scans the whole schedule for overlaps among all
// placements taught by one professor.
func AnyConflictForProfessor(doc models.Document, prof models.Professor) bool {
	var slots []models.TimeSlot
	for _, item := range doc.Schedule {
		if !item.Teaches(prof.ID) {
			continue
		}
		for _, placement := range item.Placements {
			slots = append(slots, placement.Slot)
		}
	}
	return anyPairOverlaps(slots)
}

func anyPairOverlaps(slots []models.TimeSlot) bool {
	for i := 0; i < len(slots)-1; i++ {
		for j := i + 1; j < len(slots); j++ {
			if slots[i].Overlaps(slots[j]) {
				return true
			}
		}
	}
	return false
}
