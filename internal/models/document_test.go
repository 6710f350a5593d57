package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextIDsReuseSmallestUnused(t *testing.T) {
	doc := NewDocument(24)
	doc.Faculty = []Professor{{ID: 1}, {ID: 2}, {ID: 4}}
	require.Equal(t, 3, doc.NextFacultyID())

	doc.Courses = []Course{{ID: 2}}
	require.Equal(t, 1, doc.NextCourseID())

	require.Equal(t, 1, doc.NextRoomID())
	require.Equal(t, 1, doc.NextItemID())
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := NewDocument(24)
	doc.Faculty = []Professor{{ID: 1, LastName: "Smith", FirstName: "John", ShortDes: "SMITH"}}
	doc.Schedule = []ScheduleItem{{
		ID:            1,
		CourseID:      1,
		ProfessorIDs:  []int{1},
		Placements:    []Placement{{RoomID: 1, Slot: NewTimeSlot("M", 9, 0, 10, 0)}},
		LinkedItemIDs: []int{2},
	}}

	clone := doc.Clone()
	clone.Faculty[0].LastName = "Jones"
	clone.Schedule[0].ProfessorIDs[0] = 99
	clone.Schedule[0].Placements[0].RoomID = 99
	clone.Schedule[0].LinkedItemIDs[0] = 99

	require.Equal(t, "Smith", doc.Faculty[0].LastName)
	require.Equal(t, 1, doc.Schedule[0].ProfessorIDs[0])
	require.Equal(t, 1, doc.Schedule[0].Placements[0].RoomID)
	require.Equal(t, 2, doc.Schedule[0].LinkedItemIDs[0])
}

func TestDocumentItemName(t *testing.T) {
	doc := NewDocument(24)
	doc.Courses = []Course{{ID: 1, Code: "MATH", Number: "201"}}
	item := ScheduleItem{ID: 1, CourseID: 1, Section: "001"}
	require.Equal(t, "MATH 201-001", doc.ItemName(item))

	orphan := ScheduleItem{ID: 2, CourseID: 9, Section: "002"}
	require.Equal(t, "?-002", doc.ItemName(orphan))
}

func TestDocumentLookupsByName(t *testing.T) {
	doc := NewDocument(24)
	doc.Faculty = []Professor{{ID: 3, LastName: "Smith", FirstName: "John", ShortDes: "SMITH"}}
	doc.Rooms = []Room{{ID: 2, Building: "HS", Number: "115"}}
	doc.Courses = []Course{{ID: 1, Code: "MATH", Number: "201"}}

	prof, ok := doc.ProfessorByName("Smith, John")
	require.True(t, ok)
	require.Equal(t, 3, prof.ID)

	_, ok = doc.ProfessorByName("Jones, Mary")
	require.False(t, ok)

	room, ok := doc.RoomByName("HS 115")
	require.True(t, ok)
	require.Equal(t, 2, room.ID)

	course, ok := doc.CourseByName("MATH 201")
	require.True(t, ok)
	require.Equal(t, 1, course.ID)
}

func TestProfessorName(t *testing.T) {
	p := Professor{LastName: "Smith", FirstName: "John"}
	require.Equal(t, "Smith, John", p.Name())

	p.MiddleName = "A"
	p.Suffix = "Jr"
	require.Equal(t, "Smith, John A Jr", p.Name())
}

func TestScheduleItemState(t *testing.T) {
	item := ScheduleItem{}
	require.Equal(t, StateUnscheduled, item.State(150))

	item.Placements = []Placement{{RoomID: 1, Slot: NewTimeSlot("MW", 9, 0, 9, 50)}}
	require.Equal(t, StatePartial, item.State(150))

	item.Placements = append(item.Placements, Placement{RoomID: 1, Slot: NewTimeSlot("F", 9, 0, 9, 50)})
	require.Equal(t, StateFull, item.State(150))
	require.Equal(t, StateOverscheduled, item.State(100))
	require.Equal(t, 150, item.ScheduledMinutes())
}

func TestNewDocumentDefaultsAnnualLoad(t *testing.T) {
	require.Equal(t, float64(24), NewDocument(0).Options.AnnualLoad)
	require.Equal(t, float64(30), NewDocument(30).Options.AnnualLoad)
}
