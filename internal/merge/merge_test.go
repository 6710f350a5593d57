package merge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/scheduler-api/internal/models"
)

func baseDocument() models.Document {
	doc := models.NewDocument(24)
	doc.Options.Description = "Fall 2026"
	doc.Faculty = []models.Professor{
		{ID: 1, LastName: "Smith", FirstName: "John", ShortDes: "SMITH", Real: true},
	}
	doc.Rooms = []models.Room{
		{ID: 1, Building: "HS", Number: "115", Capacity: 30, Real: true},
	}
	doc.Courses = []models.Course{
		{ID: 1, Code: "MATH", Number: "201", Title: "Calculus I", Contact: 150, Workload: 3},
	}
	doc.Schedule = []models.ScheduleItem{{
		ID:           1,
		CourseID:     1,
		ProfessorIDs: []int{1},
		Section:      "001",
		Placements:   []models.Placement{{RoomID: 1, Slot: models.NewTimeSlot("MWF", 9, 0, 9, 50)}},
	}}
	return doc
}

func TestMergeReconcilesEntitiesByName(t *testing.T) {
	current := baseDocument()

	incoming := models.NewDocument(24)
	// Same professor under a different internal id, plus one new colleague.
	incoming.Faculty = []models.Professor{
		{ID: 7, LastName: "Smith", FirstName: "John", ShortDes: "JSMITH", Real: true},
		{ID: 8, LastName: "Jones", FirstName: "Mary", ShortDes: "JONES", Real: true},
	}
	incoming.Rooms = []models.Room{
		{ID: 3, Building: "HS", Number: "115", Capacity: 25, Real: true},
	}
	incoming.Courses = []models.Course{
		{ID: 5, Code: "MATH", Number: "201", Title: "Calculus I", Contact: 150, Workload: 3},
	}

	result := Merge(current, incoming)

	require.Len(t, result.Document.Faculty, 2)
	smith, ok := result.Document.ProfessorByName("Smith, John")
	require.True(t, ok)
	require.Equal(t, 1, smith.ID)
	// The matched record keeps the current document's fields.
	require.Equal(t, "SMITH", smith.ShortDes)

	require.Equal(t, []string{"Jones, Mary"}, result.Report.NewFaculty)
	require.Empty(t, result.Report.NewRooms)
	require.Empty(t, result.Report.NewCourses)
	require.Len(t, result.Document.Rooms, 1)
	require.Len(t, result.Document.Courses, 1)
}

func TestMergeRewritesScheduleReferences(t *testing.T) {
	current := baseDocument()

	incoming := models.NewDocument(24)
	incoming.Faculty = []models.Professor{{ID: 7, LastName: "Jones", FirstName: "Mary", ShortDes: "JONES", Real: true}}
	incoming.Rooms = []models.Room{{ID: 3, Building: "SCI", Number: "201", Capacity: 20, Real: true}}
	incoming.Courses = []models.Course{{ID: 5, Code: "PHYS", Number: "101", Contact: 150, Workload: 3}}
	incoming.Schedule = []models.ScheduleItem{{
		ID:           9,
		CourseID:     5,
		ProfessorIDs: []int{7},
		Section:      "001",
		Placements:   []models.Placement{{RoomID: 3, Slot: models.NewTimeSlot("TR", 13, 0, 14, 15)}},
	}}

	result := Merge(current, incoming)

	item, ok := result.Document.ItemByName("PHYS 101-001")
	require.True(t, ok)

	course, ok := result.Document.CourseByID(item.CourseID)
	require.True(t, ok)
	require.Equal(t, "PHYS 101", course.Name())

	require.Len(t, item.ProfessorIDs, 1)
	prof, ok := result.Document.ProfessorByID(item.ProfessorIDs[0])
	require.True(t, ok)
	require.Equal(t, "Jones, Mary", prof.Name())

	require.Len(t, item.Placements, 1)
	room, ok := result.Document.RoomByID(item.Placements[0].RoomID)
	require.True(t, ok)
	require.Equal(t, "SCI 201", room.Name())

	require.Equal(t, []string{"PHYS 101-001"}, result.Report.NewClasses)
}

func TestMergeRenumbersCollidingSections(t *testing.T) {
	current := baseDocument()

	incoming := models.NewDocument(24)
	incoming.Faculty = []models.Professor{{ID: 7, LastName: "Jones", FirstName: "Mary", ShortDes: "JONES", Real: true}}
	incoming.Courses = []models.Course{{ID: 5, Code: "MATH", Number: "201", Contact: 150, Workload: 3}}
	incoming.Schedule = []models.ScheduleItem{{
		ID:           9,
		CourseID:     5,
		ProfessorIDs: []int{7},
		Section:      "001",
	}}

	result := Merge(current, incoming)

	require.Len(t, result.Report.SectionChanges, 1)
	change := result.Report.SectionChanges[0]
	require.Equal(t, "MATH 201-001", change.Class)
	require.Equal(t, "002", change.NewSection)

	_, ok := result.Document.ItemByName("MATH 201-002")
	require.True(t, ok)
	require.Len(t, result.Document.Schedule, 2)
}

func TestMergeDropsConflictingPlacements(t *testing.T) {
	current := baseDocument()

	incoming := models.NewDocument(24)
	incoming.Faculty = []models.Professor{{ID: 7, LastName: "Jones", FirstName: "Mary", ShortDes: "JONES", Real: true}}
	incoming.Rooms = []models.Room{{ID: 3, Building: "HS", Number: "115", Capacity: 30, Real: true}}
	incoming.Courses = []models.Course{{ID: 5, Code: "PHYS", Number: "101", Contact: 150, Workload: 3}}
	incoming.Schedule = []models.ScheduleItem{{
		ID:           9,
		CourseID:     5,
		ProfessorIDs: []int{7},
		Section:      "001",
		Placements: []models.Placement{
			// Same room, overlapping time as MATH 201-001.
			{RoomID: 3, Slot: models.NewTimeSlot("M", 9, 30, 10, 30)},
			{RoomID: 3, Slot: models.NewTimeSlot("T", 13, 0, 14, 15)},
		},
	}}

	result := Merge(current, incoming)

	item, ok := result.Document.ItemByName("PHYS 101-001")
	require.True(t, ok)
	require.Len(t, item.Placements, 1)
	require.Equal(t, "T", item.Placements[0].Slot.Days)

	require.Len(t, result.Report.TimeConflicts, 1)
	conflict := result.Report.TimeConflicts[0]
	require.Equal(t, "PHYS 101-001", conflict.Class)
	require.Len(t, conflict.Slots, 1)
	require.Equal(t, "HS 115", conflict.Slots[0].Room)
}

func TestMergeDropsProfessorDoubleBooking(t *testing.T) {
	current := baseDocument()

	incoming := models.NewDocument(24)
	// Smith comes across under another id and is already teaching MWF 9:00.
	incoming.Faculty = []models.Professor{{ID: 7, LastName: "Smith", FirstName: "John", ShortDes: "JS", Real: true}}
	incoming.Rooms = []models.Room{{ID: 3, Building: "SCI", Number: "201", Capacity: 20, Real: true}}
	incoming.Courses = []models.Course{{ID: 5, Code: "PHYS", Number: "101", Contact: 150, Workload: 3}}
	incoming.Schedule = []models.ScheduleItem{{
		ID:           9,
		CourseID:     5,
		ProfessorIDs: []int{7},
		Section:      "001",
		Placements:   []models.Placement{{RoomID: 3, Slot: models.NewTimeSlot("W", 9, 0, 9, 50)}},
	}}

	result := Merge(current, incoming)

	item, ok := result.Document.ItemByName("PHYS 101-001")
	require.True(t, ok)
	require.Empty(t, item.Placements)
	require.Len(t, result.Report.TimeConflicts, 1)
}

func TestMergePreservesWeeklyMinutesWhenNoConflicts(t *testing.T) {
	current := baseDocument()

	incoming := models.NewDocument(24)
	incoming.Faculty = []models.Professor{{ID: 7, LastName: "Jones", FirstName: "Mary", ShortDes: "JONES", Real: true}}
	incoming.Rooms = []models.Room{{ID: 3, Building: "SCI", Number: "201", Capacity: 20, Real: true}}
	incoming.Courses = []models.Course{{ID: 5, Code: "PHYS", Number: "101", Contact: 150, Workload: 3}}
	incoming.Schedule = []models.ScheduleItem{{
		ID:           9,
		CourseID:     5,
		ProfessorIDs: []int{7},
		Section:      "001",
		Placements:   []models.Placement{{RoomID: 3, Slot: models.NewTimeSlot("TR", 13, 0, 14, 15)}},
	}}

	currentMinutes := 0
	for _, item := range current.Schedule {
		currentMinutes += item.ScheduledMinutes()
	}
	incomingMinutes := 0
	for _, item := range incoming.Schedule {
		incomingMinutes += item.ScheduledMinutes()
	}

	result := Merge(current, incoming)

	total := 0
	for _, item := range result.Document.Schedule {
		total += item.ScheduledMinutes()
	}
	require.Equal(t, currentMinutes+incomingMinutes, total)
	require.Empty(t, result.Report.TimeConflicts)
}

func TestMergeRemapsLinksBetweenIncomingItems(t *testing.T) {
	current := baseDocument()
	current.Schedule = append(current.Schedule, models.ScheduleItem{
		ID:           2,
		CourseID:     1,
		ProfessorIDs: []int{1},
		Section:      "002",
	})

	incoming := models.NewDocument(24)
	incoming.Faculty = []models.Professor{{ID: 7, LastName: "Jones", FirstName: "Mary", ShortDes: "JONES", Real: true}}
	incoming.Courses = []models.Course{{ID: 5, Code: "PHYS", Number: "101", Contact: 150, Workload: 3}}
	incoming.Schedule = []models.ScheduleItem{
		{ID: 1, CourseID: 5, ProfessorIDs: []int{7}, Section: "001", LinkedItemIDs: []int{2}},
		{ID: 2, CourseID: 5, ProfessorIDs: []int{7}, Section: "002", LinkedItemIDs: []int{1, 40}},
	}

	result := Merge(current, incoming)

	lecture, ok := result.Document.ItemByName("PHYS 101-001")
	require.True(t, ok)
	lab, ok := result.Document.ItemByName("PHYS 101-002")
	require.True(t, ok)

	require.Equal(t, []int{lab.ID}, lecture.LinkedItemIDs)
	// A link whose target did not come across is dropped, and the current
	// document's own links are left untouched.
	require.Equal(t, []int{lecture.ID}, lab.LinkedItemIDs)

	existing, ok := result.Document.ItemByName("MATH 201-002")
	require.True(t, ok)
	require.Empty(t, existing.LinkedItemIDs)
}

func TestMergeStandardSlotsDeduplicated(t *testing.T) {
	current := baseDocument()
	current.StandardSlots = []models.TimeSlot{models.NewTimeSlot("MWF", 9, 0, 9, 50)}

	incoming := models.NewDocument(24)
	incoming.StandardSlots = []models.TimeSlot{
		models.NewTimeSlot("FWM", 9, 0, 9, 50),
		models.NewTimeSlot("TR", 13, 0, 14, 15),
	}

	result := Merge(current, incoming)

	require.Len(t, result.Document.StandardSlots, 2)
	require.Len(t, result.Report.NewSlots, 1)
}

func TestMergeNotes(t *testing.T) {
	current := baseDocument()
	current.Notes = "current notes"

	incoming := models.NewDocument(24)
	incoming.Notes = "incoming notes"

	result := Merge(current, incoming)
	require.Equal(t, "current notes"+NotesSeparator+"incoming notes", result.Document.Notes)

	incoming.Notes = ""
	result = Merge(current, incoming)
	require.Equal(t, "current notes", result.Document.Notes)

	incoming.Notes = "current notes"
	result = Merge(current, incoming)
	require.Equal(t, "current notes", result.Document.Notes)
}

func TestMergeKeepsCurrentOptions(t *testing.T) {
	current := baseDocument()

	incoming := models.NewDocument(30)
	incoming.Options.Description = "Spring 2027"

	result := Merge(current, incoming)
	require.Equal(t, "Fall 2026", result.Document.Options.Description)
	require.Equal(t, float64(24), result.Document.Options.AnnualLoad)
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	current := baseDocument()
	incoming := models.NewDocument(24)
	incoming.Faculty = []models.Professor{{ID: 7, LastName: "Jones", FirstName: "Mary", ShortDes: "JONES", Real: true}}
	incoming.Courses = []models.Course{{ID: 5, Code: "PHYS", Number: "101"}}
	incoming.Schedule = []models.ScheduleItem{{ID: 9, CourseID: 5, ProfessorIDs: []int{7}, Section: "001"}}

	Merge(current, incoming)

	require.Equal(t, 7, incoming.Faculty[0].ID)
	require.Equal(t, 9, incoming.Schedule[0].ID)
	require.Len(t, current.Faculty, 1)
	require.Len(t, current.Schedule, 1)
}
