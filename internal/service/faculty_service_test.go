package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/scheduler-api/internal/dto"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

func TestFacultyUpdateRefusesRealFlipWithOverlaps(t *testing.T) {
	repo, ids := scheduleFixture(t)
	schedule := NewScheduleService(repo, nil, nil)
	svc := NewFacultyService(repo, nil, nil)

	// A placeholder instructor may be double booked across rooms.
	first, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["staff"]})
	require.NoError(t, err)
	second, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["phys"], ProfessorID: ids["staff"]})
	require.NoError(t, err)
	_, err = schedule.AddPlacement(first.ID, dto.PlacementRequest{RoomID: ids["room"], Slot: slotRequest("MWF", 9, 0, 9, 50)})
	require.NoError(t, err)
	_, err = schedule.AddPlacement(second.ID, dto.PlacementRequest{RoomID: ids["online"], Slot: slotRequest("MWF", 9, 0, 9, 50)})
	require.NoError(t, err)

	_, err = svc.Update(ids["staff"], dto.UpdateProfessorRequest{LastName: "Staff", ShortDes: "STAFF", Real: true})
	require.Equal(t, appErrors.ErrConflict.Code, serviceErrCode(t, err))
}

func TestFacultyUpdateAllowsRealFlipWithoutOverlaps(t *testing.T) {
	repo, ids := scheduleFixture(t)
	schedule := NewScheduleService(repo, nil, nil)
	svc := NewFacultyService(repo, nil, nil)

	item, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["staff"]})
	require.NoError(t, err)
	_, err = schedule.AddPlacement(item.ID, dto.PlacementRequest{RoomID: ids["room"], Slot: slotRequest("MWF", 9, 0, 9, 50)})
	require.NoError(t, err)

	updated, err := svc.Update(ids["staff"], dto.UpdateProfessorRequest{LastName: "Staff", ShortDes: "STAFF", Real: true})
	require.NoError(t, err)
	require.True(t, updated.Real)
}
