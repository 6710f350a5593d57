package dto

// CreateCourseRequest carries a new catalog course.
type CreateCourseRequest struct {
	Code     string  `json:"code" validate:"required"`
	Number   string  `json:"number" validate:"required"`
	Title    string  `json:"title"`
	Contact  float64 `json:"contact" validate:"min=0"`
	Workload float64 `json:"workload" validate:"min=0"`
}

// UpdateCourseRequest replaces an existing course's fields.
type UpdateCourseRequest struct {
	Code     string  `json:"code" validate:"required"`
	Number   string  `json:"number" validate:"required"`
	Title    string  `json:"title"`
	Contact  float64 `json:"contact" validate:"min=0"`
	Workload float64 `json:"workload" validate:"min=0"`
}

// CreateProfessorRequest carries a new faculty member.
type CreateProfessorRequest struct {
	LastName   string `json:"lastName" validate:"required"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	Suffix     string `json:"suffix"`
	ShortDes   string `json:"shortDes" validate:"required"`
	EmployeeID string `json:"employeeId"`
	Real       bool   `json:"real"`
}

// UpdateProfessorRequest replaces an existing faculty member's fields.
type UpdateProfessorRequest struct {
	LastName   string `json:"lastName" validate:"required"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	Suffix     string `json:"suffix"`
	ShortDes   string `json:"shortDes" validate:"required"`
	EmployeeID string `json:"employeeId"`
	Real       bool   `json:"real"`
}

// CreateRoomRequest carries a new room.
type CreateRoomRequest struct {
	Building string `json:"building" validate:"required"`
	Number   string `json:"number" validate:"required"`
	Capacity int    `json:"capacity" validate:"min=0"`
	Special  string `json:"special"`
	Real     bool   `json:"real"`
}

// UpdateRoomRequest replaces an existing room's fields.
type UpdateRoomRequest struct {
	Building string `json:"building" validate:"required"`
	Number   string `json:"number" validate:"required"`
	Capacity int    `json:"capacity" validate:"min=0"`
	Special  string `json:"special"`
	Real     bool   `json:"real"`
}

// TimeSlotRequest carries a slot in wire form for standard slot management
// and placements.
type TimeSlotRequest struct {
	Days        string `json:"days" validate:"required"`
	StartHour   int    `json:"startHour" validate:"min=0,max=23"`
	StartMinute int    `json:"startMinute" validate:"min=0"`
	EndHour     int    `json:"endHour" validate:"min=0,max=23"`
	EndMinute   int    `json:"endMinute" validate:"min=0"`
}
