package models

// Professor is a faculty member. Real distinguishes physical people from
// placeholders such as "Staff": conflict checking skips non-real professors so
// placeholder rosters may double-book freely.
type Professor struct {
	ID         int    `json:"id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	Suffix     string `json:"suffix,omitempty"`
	ShortDes   string `json:"short_des"`
	EmployeeID string `json:"employee_id,omitempty"`
	Real       bool   `json:"real"`
}

// Name returns the formal name, e.g. "Smith, John A Jr".
// Unique across the faculty roster, as is ShortDes.
func (p Professor) Name() string {
	name := p.LastName + ", " + p.FirstName
	if p.MiddleName != "" {
		name += " " + p.MiddleName
	}
	if p.Suffix != "" {
		name += " " + p.Suffix
	}
	return name
}
