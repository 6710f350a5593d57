package models

// Placement binds a schedule item to a room for one recurring weekly slot.
type Placement struct {
	RoomID int      `json:"room_id"`
	Slot   TimeSlot `json:"slot"`
}

// ScheduleItem is a single scheduled section: a course, one or more
// instructors, and zero or more room/time placements. All cross-references
// are by durable integer id; the repository owns the referenced entities.
type ScheduleItem struct {
	ID            int         `json:"id"`
	CourseID      int         `json:"course_id"`
	ProfessorIDs  []int       `json:"professor_ids"`
	Placements    []Placement `json:"placements"`
	Section       string      `json:"section"`
	Tentative     bool        `json:"tentative"`
	Subtitle      string      `json:"subtitle,omitempty"`
	Designation   string      `json:"designation,omitempty"`
	LinkedItemIDs []int       `json:"linked_item_ids"`
}

// ScheduleState classifies how completely an item is scheduled against its
// course's weekly contact minutes.
type ScheduleState string

const (
	StateUnscheduled   ScheduleState = "UNSCHEDULED"
	StatePartial       ScheduleState = "PARTIALLY_SCHEDULED"
	StateFull          ScheduleState = "FULLY_SCHEDULED"
	StateOverscheduled ScheduleState = "OVERSCHEDULED"
)

// ScheduledMinutes sums the weekly minutes across all placements.
func (s ScheduleItem) ScheduledMinutes() int {
	total := 0
	for _, p := range s.Placements {
		total += p.Slot.WeeklyMinutes()
	}
	return total
}

// RemainingMinutes returns how many weekly minutes the item still needs to
// reach the course's contact target. Negative when overscheduled.
func (s ScheduleItem) RemainingMinutes(contact float64) float64 {
	return contact - float64(s.ScheduledMinutes())
}

// State derives the scheduling state from the course contact target.
// Tentative is an orthogonal overlay, not a state.
func (s ScheduleItem) State(contact float64) ScheduleState {
	minutes := float64(s.ScheduledMinutes())
	switch {
	case minutes == 0:
		return StateUnscheduled
	case minutes < contact:
		return StatePartial
	case minutes > contact:
		return StateOverscheduled
	default:
		return StateFull
	}
}

// Teaches reports whether the professor id is on the item's roster.
func (s ScheduleItem) Teaches(professorID int) bool {
	for _, id := range s.ProfessorIDs {
		if id == professorID {
			return true
		}
	}
	return false
}

// LinksTo reports whether the item lists the given id as a linked section.
func (s ScheduleItem) LinksTo(itemID int) bool {
	for _, id := range s.LinkedItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// Slots returns the item's timeslots without their rooms.
func (s ScheduleItem) Slots() []TimeSlot {
	slots := make([]TimeSlot, 0, len(s.Placements))
	for _, p := range s.Placements {
		slots = append(slots, p.Slot)
	}
	return slots
}

// Clone returns a deep copy; slices are never shared between copies.
func (s ScheduleItem) Clone() ScheduleItem {
	out := s
	out.ProfessorIDs = append([]int(nil), s.ProfessorIDs...)
	out.Placements = append([]Placement(nil), s.Placements...)
	out.LinkedItemIDs = append([]int(nil), s.LinkedItemIDs...)
	return out
}
