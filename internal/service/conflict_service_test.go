package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

func TestConflictCheckReportsBothDimensions(t *testing.T) {
	repo, ids := scheduleFixture(t)
	schedule := NewScheduleService(repo, nil, nil)
	svc := NewConflictService(repo, nil, nil, nil, 0)

	occupied, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["smith"]})
	require.NoError(t, err)
	_, err = schedule.AddPlacement(occupied.ID, dto.PlacementRequest{RoomID: ids["room"], Slot: slotRequest("M", 9, 0, 10, 0)})
	require.NoError(t, err)

	probe, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["phys"], ProfessorID: ids["smith"]})
	require.NoError(t, err)

	resp, err := svc.Check(dto.ConflictCheckRequest{
		ItemID:     probe.ID,
		Placements: []dto.PlacementRequest{{RoomID: ids["room"], Slot: slotRequest("M", 9, 30, 10, 0)}},
	})
	require.NoError(t, err)
	require.True(t, resp.RoomConflict)
	require.True(t, resp.ProfessorConflict)
	require.Equal(t, []int{ids["room"]}, resp.ConflictingRooms)

	// Adjacent time clears both dimensions.
	resp, err = svc.Check(dto.ConflictCheckRequest{
		ItemID:     probe.ID,
		Placements: []dto.PlacementRequest{{RoomID: ids["room"], Slot: slotRequest("M", 10, 0, 11, 0)}},
	})
	require.NoError(t, err)
	require.False(t, resp.RoomConflict)
	require.False(t, resp.ProfessorConflict)
}

func TestConflictCheckHonorsExcludeList(t *testing.T) {
	repo, ids := scheduleFixture(t)
	schedule := NewScheduleService(repo, nil, nil)
	svc := NewConflictService(repo, nil, nil, nil, 0)

	occupied, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["smith"]})
	require.NoError(t, err)
	_, err = schedule.AddPlacement(occupied.ID, dto.PlacementRequest{RoomID: ids["room"], Slot: slotRequest("M", 9, 0, 10, 0)})
	require.NoError(t, err)

	probe, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["phys"], ProfessorID: ids["staff"]})
	require.NoError(t, err)

	resp, err := svc.Check(dto.ConflictCheckRequest{
		ItemID:         probe.ID,
		Placements:     []dto.PlacementRequest{{RoomID: ids["room"], Slot: slotRequest("M", 9, 30, 10, 0)}},
		ExcludeItemIDs: []int{occupied.ID},
	})
	require.NoError(t, err)
	require.False(t, resp.RoomConflict)
	require.False(t, resp.ProfessorConflict)
}

func TestConflictCheckValidation(t *testing.T) {
	repo, _ := scheduleFixture(t)
	svc := NewConflictService(repo, nil, nil, nil, 0)

	_, err := svc.Check(dto.ConflictCheckRequest{})
	require.Equal(t, appErrors.ErrValidation.Code, serviceErrCode(t, err))

	_, err = svc.Check(dto.ConflictCheckRequest{
		ItemID:     99,
		Placements: []dto.PlacementRequest{{RoomID: 1, Slot: slotRequest("M", 9, 0, 10, 0)}},
	})
	require.Equal(t, appErrors.ErrNotFound.Code, serviceErrCode(t, err))
}

func mustItem(id, courseID, professorID, roomID int, section string) models.ScheduleItem {
	return models.ScheduleItem{
		ID:           id,
		CourseID:     courseID,
		ProfessorIDs: []int{professorID},
		Section:      section,
		Placements:   []models.Placement{{RoomID: roomID, Slot: models.NewTimeSlot("M", 9, 0, 10, 0)}},
	}
}

func TestConflictScanFindsDoubleBookings(t *testing.T) {
	repo, ids := scheduleFixture(t)
	svc := NewConflictService(repo, nil, nil, nil, 0)

	resp, err := svc.Scan(context.Background())
	require.NoError(t, err)
	require.Empty(t, resp.Rooms)
	require.Empty(t, resp.Professors)

	// Force an overlap directly into the document, as a merge of two
	// documents with placeholder instructors can.
	doc := repo.Snapshot()
	doc.Schedule = append(doc.Schedule,
		mustItem(1, ids["math"], ids["smith"], ids["room"], "001"),
		mustItem(2, ids["phys"], ids["smith"], ids["room"], "001"),
	)
	repo.Replace(doc)

	resp, err = svc.Scan(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"HS 115"}, resp.Rooms)
	require.Equal(t, []string{"Smith, John"}, resp.Professors)
	require.Equal(t, repo.Revision(), resp.Revision)
}
