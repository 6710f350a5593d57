package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

type archiveStoreStub struct {
	entries map[string]*models.ArchiveEntry
}

func newArchiveStoreStub() *archiveStoreStub {
	return &archiveStoreStub{entries: make(map[string]*models.ArchiveEntry)}
}

func (s *archiveStoreStub) Create(ctx context.Context, entry *models.ArchiveEntry) error {
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("snap-%d", len(s.entries)+1)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	stored := *entry
	s.entries[entry.ID] = &stored
	return nil
}

func (s *archiveStoreStub) GetByID(ctx context.Context, id string) (*models.ArchiveEntry, error) {
	entry, ok := s.entries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *entry
	return &copied, nil
}

func (s *archiveStoreStub) List(ctx context.Context, filter models.ArchiveFilter) ([]models.ArchiveEntry, error) {
	out := make([]models.ArchiveEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if !filter.IncludeDeleted && entry.DeletedAt != nil {
			continue
		}
		copied := *entry
		copied.Payload = nil
		out = append(out, copied)
	}
	return out, nil
}

func (s *archiveStoreStub) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	entry, ok := s.entries[id]
	if !ok {
		return sql.ErrNoRows
	}
	entry.DeletedAt = &deletedAt
	return nil
}

func newDocumentFixture(t *testing.T) (*DocumentService, *archiveStoreStub, *ScheduleService, map[string]int) {
	t.Helper()
	repo, ids := scheduleFixture(t)
	archive := newArchiveStoreStub()
	svc := NewDocumentService(repo, archive, NewMetricsService(), nil, nil, 24)
	return svc, archive, NewScheduleService(repo, nil, nil), ids
}

func TestDocumentExportImportRoundtrip(t *testing.T) {
	svc, _, schedule, ids := newDocumentFixture(t)

	_, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["smith"]})
	require.NoError(t, err)

	exported := svc.Export()
	require.Len(t, exported.Schedule, 1)

	result, err := svc.Import(exported.Document)
	require.NoError(t, err)
	require.Equal(t, 1, result.Items)
	require.Equal(t, 2, result.Faculty)
}

func TestDocumentImportRejectsInconsistency(t *testing.T) {
	svc, _, schedule, ids := newDocumentFixture(t)

	_, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["smith"]})
	require.NoError(t, err)
	before := svc.Export()

	broken := before.Document.Clone()
	broken.Schedule[0].ProfessorIDs = []int{99}

	_, err = svc.Import(broken)
	require.Equal(t, appErrors.ErrLoadFailed.Code, serviceErrCode(t, err))

	// A failed import leaves the working document untouched.
	after := svc.Export()
	require.Equal(t, before.Document, after.Document)
	require.Equal(t, before.Revision, after.Revision)
}

func TestDocumentImportDefaultsAnnualLoad(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(t)

	doc := models.Document{}
	_, err := svc.Import(doc)
	require.NoError(t, err)
	require.Equal(t, float64(24), svc.GetOptions().AnnualLoad)
}

func TestDocumentImportValidationCases(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(t)

	cases := map[string]models.Document{
		"duplicate professor id": {
			Options: models.Options{AnnualLoad: 24},
			Faculty: []models.Professor{{ID: 1, LastName: "A", ShortDes: "A"}, {ID: 1, LastName: "B", ShortDes: "B"}},
		},
		"item without instructor": {
			Options:  models.Options{AnnualLoad: 24},
			Courses:  []models.Course{{ID: 1, Code: "MATH", Number: "201"}},
			Schedule: []models.ScheduleItem{{ID: 1, CourseID: 1, Section: "001"}},
		},
		"duplicate section": {
			Options: models.Options{AnnualLoad: 24},
			Faculty: []models.Professor{{ID: 1, LastName: "A", ShortDes: "A"}},
			Courses: []models.Course{{ID: 1, Code: "MATH", Number: "201"}},
			Schedule: []models.ScheduleItem{
				{ID: 1, CourseID: 1, ProfessorIDs: []int{1}, Section: "001"},
				{ID: 2, CourseID: 1, ProfessorIDs: []int{1}, Section: "001"},
			},
		},
		"dangling link": {
			Options:  models.Options{AnnualLoad: 24},
			Faculty:  []models.Professor{{ID: 1, LastName: "A", ShortDes: "A"}},
			Courses:  []models.Course{{ID: 1, Code: "MATH", Number: "201"}},
			Schedule: []models.ScheduleItem{{ID: 1, CourseID: 1, ProfessorIDs: []int{1}, Section: "001", LinkedItemIDs: []int{9}}},
		},
	}

	for name, doc := range cases {
		_, err := svc.Import(doc)
		require.Equalf(t, appErrors.ErrLoadFailed.Code, serviceErrCode(t, err), "case %q", name)
	}
}

func TestDocumentReset(t *testing.T) {
	svc, _, schedule, ids := newDocumentFixture(t)

	_, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["smith"]})
	require.NoError(t, err)

	fresh := svc.Reset()
	require.Empty(t, fresh.Schedule)
	require.Empty(t, fresh.Faculty)
	require.Equal(t, float64(24), fresh.Options.AnnualLoad)
}

func TestDocumentOptionsAndNotes(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(t)

	opts, err := svc.UpdateOptions(dto.OptionsRequest{Description: "Fall 2026", AnnualLoad: 30})
	require.NoError(t, err)
	require.Equal(t, "Fall 2026", opts.Description)
	require.Equal(t, float64(30), opts.AnnualLoad)

	_, err = svc.UpdateOptions(dto.OptionsRequest{AnnualLoad: -1})
	require.Equal(t, appErrors.ErrValidation.Code, serviceErrCode(t, err))

	svc.UpdateNotes(dto.NotesRequest{Notes: "remember the lab sections"})
	require.Equal(t, "remember the lab sections", svc.GetNotes())
}

func TestDocumentArchiveSaveAndRestore(t *testing.T) {
	svc, archive, schedule, ids := newDocumentFixture(t)

	item, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["smith"]})
	require.NoError(t, err)

	entry, err := svc.ArchiveSave(context.Background(), dto.ArchiveRequest{Label: "before spring edits"}, "admin@dept.edu")
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	require.Equal(t, 1, entry.ItemCount)
	require.Equal(t, "admin@dept.edu", entry.CreatedBy)
	// The response carries metadata only.
	require.Nil(t, entry.Payload)

	// Wreck the document, then restore the snapshot.
	svc.Reset()
	require.Empty(t, svc.Export().Schedule)

	result, err := svc.ArchiveRestore(context.Background(), entry.ID)
	require.NoError(t, err)
	require.Equal(t, 1, result.Items)

	restored, err := schedule.Get(item.ID)
	require.NoError(t, err)
	require.Equal(t, "MATH 201-001", restored.Name)

	require.NotNil(t, archive.entries[entry.ID].Payload)
}

func TestDocumentArchiveRestoreErrors(t *testing.T) {
	svc, archive, _, _ := newDocumentFixture(t)

	_, err := svc.ArchiveRestore(context.Background(), "missing")
	require.Equal(t, appErrors.ErrNotFound.Code, serviceErrCode(t, err))

	archive.entries["corrupt"] = &models.ArchiveEntry{ID: "corrupt", Payload: json.RawMessage(`{"options":`)}
	_, err = svc.ArchiveRestore(context.Background(), "corrupt")
	require.Equal(t, appErrors.ErrLoadFailed.Code, serviceErrCode(t, err))
}

func TestDocumentArchiveListAndDelete(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(t)

	first, err := svc.ArchiveSave(context.Background(), dto.ArchiveRequest{Label: "one"}, "admin")
	require.NoError(t, err)
	_, err = svc.ArchiveSave(context.Background(), dto.ArchiveRequest{Label: "two"}, "admin")
	require.NoError(t, err)

	entries, err := svc.ArchiveList(context.Background(), models.ArchiveFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NoError(t, svc.ArchiveDelete(context.Background(), first.ID))
	entries, err = svc.ArchiveList(context.Background(), models.ArchiveFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	err = svc.ArchiveDelete(context.Background(), "missing")
	require.Equal(t, appErrors.ErrNotFound.Code, serviceErrCode(t, err))
}

func TestDocumentArchiveUnconfigured(t *testing.T) {
	repo, _ := scheduleFixture(t)
	svc := NewDocumentService(repo, nil, NewMetricsService(), nil, nil, 24)

	_, err := svc.ArchiveSave(context.Background(), dto.ArchiveRequest{Label: "x"}, "admin")
	require.Equal(t, appErrors.ErrPreconditionFailed.Code, serviceErrCode(t, err))

	_, err = svc.ArchiveRestore(context.Background(), "x")
	require.Equal(t, appErrors.ErrPreconditionFailed.Code, serviceErrCode(t, err))

	_, err = svc.ArchiveList(context.Background(), models.ArchiveFilter{})
	require.Equal(t, appErrors.ErrPreconditionFailed.Code, serviceErrCode(t, err))

	err = svc.ArchiveDelete(context.Background(), "x")
	require.Equal(t, appErrors.ErrPreconditionFailed.Code, serviceErrCode(t, err))
}

func TestDocumentArchiveValidation(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(t)

	_, err := svc.ArchiveSave(context.Background(), dto.ArchiveRequest{}, "admin")
	require.Equal(t, appErrors.ErrValidation.Code, serviceErrCode(t, err))
}
