package models

import "fmt"

// Room is a meeting location. Real distinguishes physical rooms from virtual
// placements such as online sections; non-real rooms are exempt from conflict
// checking and may host overlapping meetings.
type Room struct {
	ID       int    `json:"id"`
	Building string `json:"building"`
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
	Special  string `json:"special,omitempty"`
	Real     bool   `json:"real"`
}

// Name returns the unique room name, e.g. "HS 115".
func (r Room) Name() string {
	return r.Building + " " + r.Number
}

// Description returns the room with its designation and capacity.
func (r Room) Description() string {
	desc := r.Name() + ": "
	if r.Special != "" {
		desc += r.Special
	}
	desc += fmt.Sprintf(" (%d)", r.Capacity)
	if !r.Real {
		desc += " Virtual"
	}
	return desc
}
