// Package merge combines two schedule documents into one, reconciling
// entities by name and reporting everything that changed along the way.
package merge

import (
	"fmt"
	"sort"

	"github.com/deptsched/scheduler-api/internal/models"
)

// NotesSeparator joins the two documents' notes when both are non-empty.
const NotesSeparator = "\n\n------------------------\n\n"

// SectionChange records a class whose section number had to be reassigned
// because the incoming section collided with an existing one.
type SectionChange struct {
	Class      string `json:"class"`
	NewSection string `json:"newSection"`
}

// DroppedSlot is a room and time assignment that was discarded from an
// incoming class because it collided with the existing schedule.
type DroppedSlot struct {
	Room string          `json:"room"`
	Slot models.TimeSlot `json:"slot"`
}

// TimeConflict lists the assignments dropped from one incoming class.
type TimeConflict struct {
	Class string        `json:"class"`
	Slots []DroppedSlot `json:"slots"`
}

// Report summarizes a merge for review before or after committing it.
type Report struct {
	NewFaculty     []string        `json:"newFaculty"`
	NewRooms       []string        `json:"newRooms"`
	NewCourses     []string        `json:"newCourses"`
	NewSlots       []string        `json:"newSlots"`
	SectionChanges []SectionChange `json:"sectionChanges"`
	TimeConflicts  []TimeConflict  `json:"timeConflicts"`
	NewClasses     []string        `json:"newClasses"`
}

// Result carries the combined document and the report describing how the
// incoming data was folded in.
type Result struct {
	Document models.Document
	Report   Report
}

// Merge folds incoming into current and returns the combined document with a
// report. Neither input is modified; callers decide whether to commit the
// result. Faculty, rooms, and courses are matched by name. Matched entities
// keep the current document's record and id; unmatched ones receive fresh ids
// and are reported as new. Incoming classes always come across, renumbering
// their section on collision and dropping any room or instructor assignment
// that conflicts with the existing schedule. Options stay as the current
// document has them.
func Merge(current, incoming models.Document) Result {
	combined := current.Clone()
	incoming = incoming.Clone()
	var report Report

	profIDs := mergeFaculty(&combined, incoming.Faculty, &report)
	roomIDs := mergeRooms(&combined, incoming.Rooms, &report)
	courseIDs := mergeCourses(&combined, incoming.Courses, &report)
	mergeSchedule(&combined, incoming.Schedule, profIDs, roomIDs, courseIDs, &report)
	mergeStandardSlots(&combined, incoming.StandardSlots, &report)

	combined.Notes = mergeNotes(combined.Notes, incoming.Notes)

	sort.Strings(report.NewClasses)
	sort.Slice(report.SectionChanges, func(i, j int) bool { return report.SectionChanges[i].Class < report.SectionChanges[j].Class })
	sort.Slice(report.TimeConflicts, func(i, j int) bool { return report.TimeConflicts[i].Class < report.TimeConflicts[j].Class })

	return Result{Document: combined, Report: report}
}

// mergeFaculty folds incoming professors into the combined document and
// returns the id translation table for the incoming schedule.
func mergeFaculty(combined *models.Document, incoming []models.Professor, report *Report) map[int]int {
	ids := make(map[int]int, len(incoming))
	for _, prof := range incoming {
		if existing, ok := combined.ProfessorByName(prof.Name()); ok {
			ids[prof.ID] = existing.ID
			continue
		}
		oldID := prof.ID
		prof.ID = combined.NextFacultyID()
		ids[oldID] = prof.ID
		combined.Faculty = append(combined.Faculty, prof)
		report.NewFaculty = append(report.NewFaculty, prof.Name())
	}
	sort.Slice(combined.Faculty, func(i, j int) bool { return combined.Faculty[i].Name() < combined.Faculty[j].Name() })
	return ids
}

func mergeRooms(combined *models.Document, incoming []models.Room, report *Report) map[int]int {
	ids := make(map[int]int, len(incoming))
	for _, room := range incoming {
		if existing, ok := combined.RoomByName(room.Name()); ok {
			ids[room.ID] = existing.ID
			continue
		}
		oldID := room.ID
		room.ID = combined.NextRoomID()
		ids[oldID] = room.ID
		combined.Rooms = append(combined.Rooms, room)
		report.NewRooms = append(report.NewRooms, room.Name())
	}
	sort.Slice(combined.Rooms, func(i, j int) bool { return combined.Rooms[i].Name() < combined.Rooms[j].Name() })
	return ids
}

func mergeCourses(combined *models.Document, incoming []models.Course, report *Report) map[int]int {
	ids := make(map[int]int, len(incoming))
	for _, course := range incoming {
		if existing, ok := combined.CourseByName(course.Name()); ok {
			ids[course.ID] = existing.ID
			continue
		}
		oldID := course.ID
		course.ID = combined.NextCourseID()
		ids[oldID] = course.ID
		combined.Courses = append(combined.Courses, course)
		report.NewCourses = append(report.NewCourses, course.Name())
	}
	sort.Slice(combined.Courses, func(i, j int) bool { return combined.Courses[i].Name() < combined.Courses[j].Name() })
	return ids
}

// mergeSchedule brings every incoming class across. References are rewritten
// through the entity id tables, sections are renumbered on collision, and
// assignments that conflict with the schedule built so far are dropped and
// reported.
func mergeSchedule(combined *models.Document, incoming []models.ScheduleItem, profIDs, roomIDs, courseIDs map[int]int, report *Report) {
	itemIDs := make(map[int]int, len(incoming))

	for idx := range incoming {
		item := incoming[idx].Clone()

		item.CourseID = courseIDs[item.CourseID]
		roster := item.ProfessorIDs[:0]
		for _, pid := range item.ProfessorIDs {
			if mapped, ok := profIDs[pid]; ok {
				roster = append(roster, mapped)
			}
		}
		item.ProfessorIDs = roster
		for i := range item.Placements {
			item.Placements[i].RoomID = roomIDs[item.Placements[i].RoomID]
		}

		if sectionTaken(combined, item.CourseID, item.Section) {
			oldName := combined.ItemName(item)
			item.Section = freeSection(combined, item.CourseID)
			report.SectionChanges = append(report.SectionChanges, SectionChange{Class: oldName, NewSection: item.Section})
		}

		oldID := item.ID
		item.ID = combined.NextItemID()
		itemIDs[oldID] = item.ID

		kept, dropped := splitConflicting(combined, item)
		item.Placements = kept
		name := combined.ItemName(item)
		if len(dropped) > 0 {
			sort.Slice(dropped, func(i, j int) bool {
				return dropped[i].Slot.Description24() < dropped[j].Slot.Description24()
			})
			report.TimeConflicts = append(report.TimeConflicts, TimeConflict{Class: name, Slots: dropped})
		}
		report.NewClasses = append(report.NewClasses, name)
		combined.Schedule = append(combined.Schedule, item)
	}

	// Links inside incoming items follow their targets to the new ids. The
	// old numbering means nothing in the combined document, so a link whose
	// target did not come across is dropped rather than left pointing at
	// whatever current item happens to hold that id.
	incomingByNewID := make(map[int]struct{}, len(itemIDs))
	for _, newID := range itemIDs {
		incomingByNewID[newID] = struct{}{}
	}
	for i, item := range combined.Schedule {
		if _, fromIncoming := incomingByNewID[item.ID]; !fromIncoming {
			continue
		}
		if len(item.LinkedItemIDs) == 0 {
			continue
		}
		updated := item.Clone()
		links := updated.LinkedItemIDs[:0]
		for _, lid := range updated.LinkedItemIDs {
			if mapped, ok := itemIDs[lid]; ok {
				links = append(links, mapped)
			}
		}
		updated.LinkedItemIDs = links
		combined.Schedule[i] = updated
	}
}

// splitConflicting partitions an incoming item's placements into those that
// can be kept and those colliding with the combined schedule. A placement is
// dropped when its room is real and already occupied at an overlapping time,
// or when any real instructor of the item is already teaching at an
// overlapping time.
func splitConflicting(combined *models.Document, item models.ScheduleItem) (kept []models.Placement, dropped []DroppedSlot) {
	for _, pl := range item.Placements {
		if placementConflicts(combined, item, pl) {
			roomName := fmt.Sprintf("room %d", pl.RoomID)
			if room, ok := combined.RoomByID(pl.RoomID); ok {
				roomName = room.Name()
			}
			dropped = append(dropped, DroppedSlot{Room: roomName, Slot: pl.Slot})
			continue
		}
		kept = append(kept, pl)
	}
	return kept, dropped
}

func placementConflicts(combined *models.Document, item models.ScheduleItem, pl models.Placement) bool {
	room, roomKnown := combined.RoomByID(pl.RoomID)
	if roomKnown && room.Real {
		for _, other := range combined.Schedule {
			for _, opl := range other.Placements {
				if opl.RoomID == pl.RoomID && pl.Slot.Overlaps(opl.Slot) {
					return true
				}
			}
		}
	}
	for _, pid := range item.ProfessorIDs {
		prof, ok := combined.ProfessorByID(pid)
		if !ok || !prof.Real {
			continue
		}
		for _, other := range combined.Schedule {
			if !other.Teaches(pid) {
				continue
			}
			for _, opl := range other.Placements {
				if pl.Slot.Overlaps(opl.Slot) {
					return true
				}
			}
		}
	}
	return false
}

func mergeStandardSlots(combined *models.Document, incoming []models.TimeSlot, report *Report) {
	for _, slot := range incoming {
		known := false
		for _, existing := range combined.StandardSlots {
			if existing.Equal(slot) {
				known = true
			}
		}
		if known {
			continue
		}
		combined.StandardSlots = append(combined.StandardSlots, slot)
		report.NewSlots = append(report.NewSlots, slot.Description())
	}
	sort.Slice(combined.StandardSlots, func(i, j int) bool {
		return combined.StandardSlots[i].Description24() < combined.StandardSlots[j].Description24()
	})
}

func mergeNotes(current, incoming string) string {
	if incoming == current || incoming == "" {
		return current
	}
	if current == "" {
		return incoming
	}
	return current + NotesSeparator + incoming
}

func sectionTaken(doc *models.Document, courseID int, section string) bool {
	for _, item := range doc.Schedule {
		if item.CourseID == courseID && item.Section == section {
			return true
		}
	}
	return false
}

func freeSection(doc *models.Document, courseID int) string {
	used := make(map[string]struct{})
	for _, item := range doc.Schedule {
		if item.CourseID == courseID {
			used[item.Section] = struct{}{}
		}
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%03d", n)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}
}
