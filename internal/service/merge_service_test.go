package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	"github.com/deptsched/scheduler-api/internal/repository"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

func incomingDocument() models.Document {
	doc := models.NewDocument(24)
	doc.Faculty = []models.Professor{{ID: 1, LastName: "Jones", FirstName: "Mary", ShortDes: "JONES", Real: true}}
	doc.Rooms = []models.Room{{ID: 1, Building: "SCI", Number: "201", Capacity: 20, Real: true}}
	doc.Courses = []models.Course{{ID: 1, Code: "CHEM", Number: "110", Title: "General Chemistry", Contact: 150, Workload: 3}}
	doc.Schedule = []models.ScheduleItem{{
		ID:           1,
		CourseID:     1,
		ProfessorIDs: []int{1},
		Section:      "001",
		Placements:   []models.Placement{{RoomID: 1, Slot: models.NewTimeSlot("TR", 13, 0, 14, 15)}},
	}}
	return doc
}

func TestMergeServicePreviewAndCommit(t *testing.T) {
	repo, _ := scheduleFixture(t)
	svc := NewMergeService(repo, nil, nil, MergeConfig{})

	preview, err := svc.Preview(dto.MergePreviewRequest{Document: incomingDocument()})
	require.NoError(t, err)
	require.NotEmpty(t, preview.PreviewID)
	require.Equal(t, []string{"CHEM 110-001"}, preview.Report.NewClasses)

	// The working document is untouched until commit.
	_, err = repo.CourseByName("CHEM 110")
	require.Equal(t, appErrors.ErrNotFound.Code, serviceErrCode(t, err))

	commit, err := svc.Commit(dto.MergeCommitRequest{PreviewID: preview.PreviewID})
	require.NoError(t, err)
	require.Equal(t, preview.Report, commit.Report)

	_, err = repo.CourseByName("CHEM 110")
	require.NoError(t, err)
	_, err = repo.ProfessorByName("Jones, Mary")
	require.NoError(t, err)
}

func TestMergeServiceCommitIsOneShot(t *testing.T) {
	repo, _ := scheduleFixture(t)
	svc := NewMergeService(repo, nil, nil, MergeConfig{})

	preview, err := svc.Preview(dto.MergePreviewRequest{Document: incomingDocument()})
	require.NoError(t, err)
	_, err = svc.Commit(dto.MergeCommitRequest{PreviewID: preview.PreviewID})
	require.NoError(t, err)

	_, err = svc.Commit(dto.MergeCommitRequest{PreviewID: preview.PreviewID})
	require.Equal(t, appErrors.ErrNotFound.Code, serviceErrCode(t, err))
}

func TestMergeServiceCommitRemergesAfterEdit(t *testing.T) {
	repo, ids := scheduleFixture(t)
	schedule := NewScheduleService(repo, nil, nil)
	svc := NewMergeService(repo, nil, nil, MergeConfig{})

	preview, err := svc.Preview(dto.MergePreviewRequest{Document: incomingDocument()})
	require.NoError(t, err)

	// An edit lands between preview and commit.
	added, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["smith"]})
	require.NoError(t, err)

	commit, err := svc.Commit(dto.MergeCommitRequest{PreviewID: preview.PreviewID})
	require.NoError(t, err)
	require.Equal(t, []string{"CHEM 110-001"}, commit.Report.NewClasses)

	// Both the intermediate edit and the merged class survive.
	_, err = repo.ItemByID(added.ID)
	require.NoError(t, err)
	doc := repo.Snapshot()
	_, ok := doc.ItemByName("CHEM 110-001")
	require.True(t, ok)
	_, ok = doc.ItemByName("MATH 201-001")
	require.True(t, ok)
}

func TestMergeServiceRejectsInconsistentDocument(t *testing.T) {
	repo, _ := scheduleFixture(t)
	svc := NewMergeService(repo, nil, nil, MergeConfig{})

	broken := incomingDocument()
	broken.Schedule[0].CourseID = 42

	_, err := svc.Preview(dto.MergePreviewRequest{Document: broken})
	require.Equal(t, appErrors.ErrLoadFailed.Code, serviceErrCode(t, err))
}

func TestMergeServiceCommitValidation(t *testing.T) {
	repo := repository.NewScheduleRepository(24)
	svc := NewMergeService(repo, nil, nil, MergeConfig{})

	_, err := svc.Commit(dto.MergeCommitRequest{})
	require.Equal(t, appErrors.ErrValidation.Code, serviceErrCode(t, err))

	_, err = svc.Commit(dto.MergeCommitRequest{PreviewID: "missing"})
	require.Equal(t, appErrors.ErrNotFound.Code, serviceErrCode(t, err))
}

func TestMergeServiceReconcilesSharedFaculty(t *testing.T) {
	repo, _ := scheduleFixture(t)
	svc := NewMergeService(repo, nil, nil, MergeConfig{})

	incoming := models.NewDocument(24)
	incoming.Faculty = []models.Professor{{ID: 40, LastName: "Smith", FirstName: "John", ShortDes: "JS", Real: true}}

	preview, err := svc.Preview(dto.MergePreviewRequest{Document: incoming})
	require.NoError(t, err)
	require.Empty(t, preview.Report.NewFaculty)

	_, err = svc.Commit(dto.MergeCommitRequest{PreviewID: preview.PreviewID})
	require.NoError(t, err)

	// "Smith, John" stays a single entry.
	count := 0
	for _, p := range repo.Faculty() {
		if p.Name() == "Smith, John" {
			count++
		}
	}
	require.Equal(t, 1, count)
}
