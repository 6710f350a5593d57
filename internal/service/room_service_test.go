package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/scheduler-api/internal/dto"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

func TestRoomUpdateRefusesRealFlipWithOverlaps(t *testing.T) {
	repo, ids := scheduleFixture(t)
	schedule := NewScheduleService(repo, nil, nil)
	svc := NewRoomService(repo, nil, nil)

	// Overlapping bookings are legal while the room is virtual.
	first, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["smith"]})
	require.NoError(t, err)
	second, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["phys"], ProfessorID: ids["staff"]})
	require.NoError(t, err)
	_, err = schedule.AddPlacement(first.ID, dto.PlacementRequest{RoomID: ids["online"], Slot: slotRequest("MWF", 9, 0, 9, 50)})
	require.NoError(t, err)
	_, err = schedule.AddPlacement(second.ID, dto.PlacementRequest{RoomID: ids["online"], Slot: slotRequest("MWF", 9, 0, 9, 50)})
	require.NoError(t, err)

	_, err = svc.Update(ids["online"], dto.UpdateRoomRequest{Building: "WEB", Number: "1", Real: true})
	require.Equal(t, appErrors.ErrConflict.Code, serviceErrCode(t, err))

	// The room stays editable as long as it remains virtual.
	updated, err := svc.Update(ids["online"], dto.UpdateRoomRequest{Building: "WEB", Number: "1", Capacity: 10})
	require.NoError(t, err)
	require.False(t, updated.Real)
}

func TestRoomUpdateAllowsRealFlipWithoutOverlaps(t *testing.T) {
	repo, ids := scheduleFixture(t)
	schedule := NewScheduleService(repo, nil, nil)
	svc := NewRoomService(repo, nil, nil)

	item, err := schedule.Create(dto.CreateScheduleItemRequest{CourseID: ids["math"], ProfessorID: ids["smith"]})
	require.NoError(t, err)
	_, err = schedule.AddPlacement(item.ID, dto.PlacementRequest{RoomID: ids["online"], Slot: slotRequest("MWF", 9, 0, 9, 50)})
	require.NoError(t, err)

	updated, err := svc.Update(ids["online"], dto.UpdateRoomRequest{Building: "WEB", Number: "1", Real: true})
	require.NoError(t, err)
	require.True(t, updated.Real)
}
