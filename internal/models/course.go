package models

import "fmt"

// Course is a catalog entry. Contact is the number of minutes per week the
// course meets; Workload is the hour value it contributes toward an
// instructor's annual load.
type Course struct {
	ID       int     `json:"id"`
	Code     string  `json:"code"`
	Number   string  `json:"number"`
	Title    string  `json:"title"`
	Contact  float64 `json:"contact"`
	Workload float64 `json:"workload"`
}

// Name returns the unique catalog name, e.g. "MATH 201".
func (c Course) Name() string {
	return c.Code + " " + c.Number
}

// DisplayString returns the course with title and load numbers.
func (c Course) DisplayString() string {
	return fmt.Sprintf("%s %s: %s   (%g / %g)", c.Code, c.Number, c.Title, c.Contact, c.Workload)
}
