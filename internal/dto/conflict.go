package dto

// ConflictScanResponse lists every room and professor that currently has two
// classes meeting at an overlapping time.
type ConflictScanResponse struct {
	Rooms      []string `json:"rooms"`
	Professors []string `json:"professors"`
	Revision   uint64   `json:"revision"`
}
