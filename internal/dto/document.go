package dto

import (
	"time"

	"github.com/deptsched/scheduler-api/internal/merge"
	"github.com/deptsched/scheduler-api/internal/models"
)

// OptionsRequest updates the document wide settings.
type OptionsRequest struct {
	Description string  `json:"description"`
	AnnualLoad  float64 `json:"annualLoad" validate:"required,gt=0"`
}

// NotesRequest replaces the free form schedule notes.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// DocumentResponse is the full working document plus its revision counter.
type DocumentResponse struct {
	models.Document
	Revision uint64 `json:"revision"`
}

// ImportResult reports the outcome of loading a document.
type ImportResult struct {
	Faculty  int    `json:"faculty"`
	Rooms    int    `json:"rooms"`
	Courses  int    `json:"courses"`
	Items    int    `json:"items"`
	Revision uint64 `json:"revision"`
}

// ArchiveRequest labels a snapshot before it is stored.
type ArchiveRequest struct {
	Label       string `json:"label" validate:"required"`
	Description string `json:"description"`
}

// ExportJobResponse reports async snapshot export progress.
type ExportJobResponse struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	Progress  int        `json:"progress"`
	ResultURL *string    `json:"resultUrl,omitempty"`
	Error     *string    `json:"error,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// MergePreviewRequest submits a document to be merged into the current one.
type MergePreviewRequest struct {
	Document models.Document `json:"document" validate:"required"`
}

// MergePreviewResponse holds the preview id to commit with and the report of
// what the merge would change.
type MergePreviewResponse struct {
	PreviewID string       `json:"previewId"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Report    merge.Report `json:"report"`
}

// MergeCommitRequest applies a previously previewed merge.
type MergeCommitRequest struct {
	PreviewID string `json:"previewId" validate:"required"`
}

// MergeCommitResponse confirms the applied merge.
type MergeCommitResponse struct {
	Report   merge.Report `json:"report"`
	Revision uint64       `json:"revision"`
}
