package dto

import "github.com/deptsched/scheduler-api/internal/models"

// CreateScheduleItemRequest creates a new section of a course.
type CreateScheduleItemRequest struct {
	CourseID    int `json:"courseId" validate:"required,min=1"`
	ProfessorID int `json:"professorId" validate:"required,min=1"`
}

// ScheduleFilter narrows a schedule listing to one course, professor, or
// room. Zero values do not filter.
type ScheduleFilter struct {
	CourseID    int
	ProfessorID int
	RoomID      int
}

// UpdateScheduleItemRequest replaces the mutable fields of a section.
type UpdateScheduleItemRequest struct {
	CourseID      int                `json:"courseId" validate:"required,min=1"`
	ProfessorIDs  []int              `json:"professorIds" validate:"required,min=1,dive,min=1"`
	Placements    []PlacementRequest `json:"placements" validate:"dive"`
	Section       string             `json:"section"`
	Tentative     bool               `json:"tentative"`
	Subtitle      string             `json:"subtitle"`
	Designation   string             `json:"designation"`
	LinkedItemIDs []int              `json:"linkedItemIds" validate:"dive,min=1"`
}

// PlacementRequest assigns a room and meeting time to a section.
type PlacementRequest struct {
	RoomID int             `json:"roomId" validate:"required,min=1"`
	Slot   TimeSlotRequest `json:"slot" validate:"required"`
}

// TentativeRequest flips the tentative flag.
type TentativeRequest struct {
	Tentative bool `json:"tentative"`
}

// RosterRequest adds or removes a co-instructor.
type RosterRequest struct {
	ProfessorID int `json:"professorId" validate:"required,min=1"`
}

// LinkRequest points one section at another so they can be reviewed together.
type LinkRequest struct {
	TargetID int `json:"targetId" validate:"required,min=1"`
}

// ScheduleItemResponse is a section enriched with its display name and
// scheduling state.
type ScheduleItemResponse struct {
	models.ScheduleItem
	Name             string `json:"name"`
	State            string `json:"state"`
	ScheduledMinutes int    `json:"scheduledMinutes"`
}

// ConflictCheckRequest asks whether proposed assignments would collide before
// they are applied. ExcludeItemIDs lists sections whose current assignments
// should not count, typically the section being edited.
type ConflictCheckRequest struct {
	ItemID         int                `json:"itemId" validate:"required,min=1"`
	Placements     []PlacementRequest `json:"placements" validate:"required,min=1,dive"`
	ExcludeItemIDs []int              `json:"excludeItemIds" validate:"dive,min=1"`
}

// ConflictCheckResponse reports the outcome per dimension.
type ConflictCheckResponse struct {
	RoomConflict      bool  `json:"roomConflict"`
	ProfessorConflict bool  `json:"professorConflict"`
	ConflictingRooms  []int `json:"conflictingRooms,omitempty"`
}

// ProfessorWorkloadResponse summarizes one professor's assigned load.
type ProfessorWorkloadResponse struct {
	ProfessorID           int     `json:"professorId"`
	Name                  string  `json:"name"`
	AssignedWorkload      float64 `json:"assignedWorkload"`
	TentativeLoad         float64 `json:"tentativeLoad"`
	AnnualLoad            float64 `json:"annualLoad"`
	LoadFraction          float64 `json:"loadFraction"`
	TentativeLoadFraction float64 `json:"tentativeLoadFraction"`
	WeeklyMinutes         int     `json:"weeklyMinutes"`
}
