package models

// Options carries the document-level settings: a free-text description and
// the annual full-load hour count used to turn workload sums into fractions.
type Options struct {
	Description string  `json:"description"`
	AnnualLoad  float64 `json:"annual_load"`
}

// Document is the full state of one schedule: the five databases plus options
// and the free-form notes text. It is the unit of serialization, snapshot and
// merge. Schedule items reference courses, professors and rooms by id only.
type Document struct {
	Options       Options        `json:"options"`
	Faculty       []Professor    `json:"faculty"`
	Rooms         []Room         `json:"rooms"`
	Courses       []Course       `json:"courses"`
	StandardSlots []TimeSlot     `json:"standard_slots"`
	Schedule      []ScheduleItem `json:"schedule"`
	Notes         string         `json:"notes"`
}

// NewDocument returns an empty document with the given annual load default.
func NewDocument(annualLoad float64) Document {
	if annualLoad <= 0 {
		annualLoad = 24
	}
	return Document{Options: Options{AnnualLoad: annualLoad}}
}

// Clone returns a deep copy. Mutating the copy never aliases the original.
func (d Document) Clone() Document {
	out := d
	out.Faculty = append([]Professor(nil), d.Faculty...)
	out.Rooms = append([]Room(nil), d.Rooms...)
	out.Courses = append([]Course(nil), d.Courses...)
	out.StandardSlots = append([]TimeSlot(nil), d.StandardSlots...)
	out.Schedule = make([]ScheduleItem, 0, len(d.Schedule))
	for _, item := range d.Schedule {
		out.Schedule = append(out.Schedule, item.Clone())
	}
	return out
}

// CourseByID looks a course up by internal id.
func (d Document) CourseByID(id int) (Course, bool) {
	for _, c := range d.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

// CourseByName looks a course up by its catalog name, e.g. "MATH 201".
func (d Document) CourseByName(name string) (Course, bool) {
	for _, c := range d.Courses {
		if c.Name() == name {
			return c, true
		}
	}
	return Course{}, false
}

// ProfessorByID looks a professor up by internal id.
func (d Document) ProfessorByID(id int) (Professor, bool) {
	for _, p := range d.Faculty {
		if p.ID == id {
			return p, true
		}
	}
	return Professor{}, false
}

// ProfessorByName looks a professor up by formal name.
func (d Document) ProfessorByName(name string) (Professor, bool) {
	for _, p := range d.Faculty {
		if p.Name() == name {
			return p, true
		}
	}
	return Professor{}, false
}

// ProfessorByShortDes looks a professor up by short designation.
func (d Document) ProfessorByShortDes(shortDes string) (Professor, bool) {
	for _, p := range d.Faculty {
		if p.ShortDes == shortDes {
			return p, true
		}
	}
	return Professor{}, false
}

// RoomByID looks a room up by internal id.
func (d Document) RoomByID(id int) (Room, bool) {
	for _, r := range d.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// RoomByName looks a room up by its name, e.g. "HS 115".
func (d Document) RoomByName(name string) (Room, bool) {
	for _, r := range d.Rooms {
		if r.Name() == name {
			return r, true
		}
	}
	return Room{}, false
}

// ItemByID looks a schedule item up by internal id.
func (d Document) ItemByID(id int) (ScheduleItem, bool) {
	for _, s := range d.Schedule {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return ScheduleItem{}, false
}

// ItemName returns the course-name-and-section label, e.g. "MATH 201-001".
func (d Document) ItemName(item ScheduleItem) string {
	course, ok := d.CourseByID(item.CourseID)
	if !ok {
		return "?-" + item.Section
	}
	return course.Name() + "-" + item.Section
}

// ItemByName looks a schedule item up by its course-name-and-section label.
func (d Document) ItemByName(name string) (ScheduleItem, bool) {
	for _, s := range d.Schedule {
		if d.ItemName(s) == name {
			return s.Clone(), true
		}
	}
	return ScheduleItem{}, false
}

// NextFacultyID returns the smallest unused positive professor id.
func (d Document) NextFacultyID() int {
	used := make(map[int]bool, len(d.Faculty))
	for _, p := range d.Faculty {
		used[p.ID] = true
	}
	return smallestUnused(used)
}

// NextRoomID returns the smallest unused positive room id.
func (d Document) NextRoomID() int {
	used := make(map[int]bool, len(d.Rooms))
	for _, r := range d.Rooms {
		used[r.ID] = true
	}
	return smallestUnused(used)
}

// NextCourseID returns the smallest unused positive course id.
func (d Document) NextCourseID() int {
	used := make(map[int]bool, len(d.Courses))
	for _, c := range d.Courses {
		used[c.ID] = true
	}
	return smallestUnused(used)
}

// NextItemID returns the smallest unused positive schedule item id.
func (d Document) NextItemID() int {
	used := make(map[int]bool, len(d.Schedule))
	for _, s := range d.Schedule {
		used[s.ID] = true
	}
	return smallestUnused(used)
}

// Ids are reused after deletion: issuance scans for the smallest free
// positive integer rather than keeping a counter. Ids are therefore only
// stable within one loaded document; merging renumbers the incoming side.
func smallestUnused(used map[int]bool) int {
	id := 1
	for used[id] {
		id++
	}
	return id
}
