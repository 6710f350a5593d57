package conflict

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/scheduler-api/internal/models"
)

func conflictFixture() models.Document {
	doc := models.NewDocument(24)
	doc.Faculty = []models.Professor{
		{ID: 1, LastName: "Smith", FirstName: "John", ShortDes: "SMITH", Real: true},
		{ID: 2, LastName: "Staff", ShortDes: "STAFF", Real: false},
	}
	doc.Rooms = []models.Room{
		{ID: 1, Building: "HS", Number: "115", Capacity: 30, Real: true},
		{ID: 2, Building: "WEB", Number: "1", Real: false},
	}
	doc.Courses = []models.Course{
		{ID: 1, Code: "MATH", Number: "201", Contact: 150, Workload: 3},
	}
	doc.Schedule = []models.ScheduleItem{{
		ID:           1,
		CourseID:     1,
		ProfessorIDs: []int{1},
		Section:      "001",
		Placements:   []models.Placement{{RoomID: 1, Slot: models.NewTimeSlot("M", 9, 0, 10, 0)}},
	}}
	return doc
}

func TestProfessorHasConflict(t *testing.T) {
	doc := conflictFixture()
	prof, _ := doc.ProfessorByID(1)

	overlapping := []models.TimeSlot{models.NewTimeSlot("M", 9, 30, 10, 0)}
	require.True(t, ProfessorHasConflict(doc, prof, overlapping, nil))

	adjacent := []models.TimeSlot{models.NewTimeSlot("M", 10, 0, 11, 0)}
	require.False(t, ProfessorHasConflict(doc, prof, adjacent, nil))

	otherDay := []models.TimeSlot{models.NewTimeSlot("T", 9, 0, 10, 0)}
	require.False(t, ProfessorHasConflict(doc, prof, otherDay, nil))
}

func TestProfessorHasConflictSkipsPlaceholders(t *testing.T) {
	doc := conflictFixture()
	doc.Schedule[0].ProfessorIDs = []int{2}
	staff, _ := doc.ProfessorByID(2)

	overlapping := []models.TimeSlot{models.NewTimeSlot("M", 9, 0, 10, 0)}
	require.False(t, ProfessorHasConflict(doc, staff, overlapping, nil))
}

func TestProfessorHasConflictHonorsExclusion(t *testing.T) {
	doc := conflictFixture()
	prof, _ := doc.ProfessorByID(1)
	overlapping := []models.TimeSlot{models.NewTimeSlot("M", 9, 30, 10, 0)}

	// Excluding the item being edited suppresses its own prior booking.
	require.False(t, ProfessorHasConflict(doc, prof, overlapping, Exclude(1)))
}

func TestRoomHasConflict(t *testing.T) {
	doc := conflictFixture()

	overlapping := models.Placement{RoomID: 1, Slot: models.NewTimeSlot("M", 9, 30, 10, 0)}
	require.True(t, RoomHasConflict(doc, overlapping, nil))
	require.False(t, RoomHasConflict(doc, overlapping, Exclude(1)))

	adjacent := models.Placement{RoomID: 1, Slot: models.NewTimeSlot("M", 10, 0, 11, 0)}
	require.False(t, RoomHasConflict(doc, adjacent, nil))
}

func TestRoomHasConflictSkipsVirtualRooms(t *testing.T) {
	doc := conflictFixture()
	doc.Schedule[0].Placements[0].RoomID = 2

	overlapping := models.Placement{RoomID: 2, Slot: models.NewTimeSlot("M", 9, 0, 10, 0)}
	require.False(t, RoomHasConflict(doc, overlapping, nil))
}

func TestRoomHasConflictUnknownRoom(t *testing.T) {
	doc := conflictFixture()
	unknown := models.Placement{RoomID: 42, Slot: models.NewTimeSlot("M", 9, 0, 10, 0)}
	require.False(t, RoomHasConflict(doc, unknown, nil))
}

func TestAnyConflictInRoom(t *testing.T) {
	doc := conflictFixture()
	room, _ := doc.RoomByID(1)
	require.False(t, AnyConflictInRoom(doc, room))

	doc.Schedule = append(doc.Schedule, models.ScheduleItem{
		ID:           2,
		CourseID:     1,
		ProfessorIDs: []int{2},
		Section:      "002",
		Placements:   []models.Placement{{RoomID: 1, Slot: models.NewTimeSlot("M", 9, 30, 10, 30)}},
	})
	require.True(t, AnyConflictInRoom(doc, room))
}

func TestAnyConflictForProfessor(t *testing.T) {
	doc := conflictFixture()
	prof, _ := doc.ProfessorByID(1)
	require.False(t, AnyConflictForProfessor(doc, prof))

	doc.Schedule = append(doc.Schedule, models.ScheduleItem{
		ID:           2,
		CourseID:     1,
		ProfessorIDs: []int{1},
		Section:      "002",
		Placements:   []models.Placement{{RoomID: 2, Slot: models.NewTimeSlot("M", 9, 30, 10, 30)}},
	})
	require.True(t, AnyConflictForProfessor(doc, prof))
}
