package models

import (
	"encoding/json"
	"time"
)

// ArchiveEntry is a saved snapshot of the working schedule document. The
// document itself rides along as a JSON blob; the remaining columns exist so
// snapshots can be listed and filtered without decoding each one.
type ArchiveEntry struct {
	ID          string          `db:"id" json:"id"`
	Label       string          `db:"label" json:"label"`
	Description string          `db:"description" json:"description"`
	Revision    uint64          `db:"revision" json:"revision"`
	ItemCount   int             `db:"item_count" json:"itemCount"`
	Payload     json.RawMessage `db:"payload" json:"-"`
	CreatedBy   string          `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	DeletedAt   *time.Time      `db:"deleted_at" json:"deletedAt,omitempty"`
}

// ArchiveFilter narrows archive listings.
type ArchiveFilter struct {
	Label          string
	IncludeDeleted bool
	Limit          int
	Offset         int
}
