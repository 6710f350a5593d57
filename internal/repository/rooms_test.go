package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

func TestAddRoomNormalizesAndIssuesID(t *testing.T) {
	repo := NewScheduleRepository(24)

	room, err := repo.AddRoom(models.Room{Building: " hs ", Number: " 115 ", Capacity: 30, Real: true})
	require.NoError(t, err)
	require.Equal(t, 1, room.ID)
	require.Equal(t, "HS 115", room.Name())
}

func TestAddRoomUniquenessAndValidation(t *testing.T) {
	repo, _, _, _ := seededRepo(t)

	_, err := repo.AddRoom(models.Room{Building: "hs", Number: "115"})
	require.Equal(t, appErrors.ErrDuplicate.Code, errCode(t, err))

	_, err = repo.AddRoom(models.Room{Number: "115"})
	require.Equal(t, appErrors.ErrValidation.Code, errCode(t, err))

	_, err = repo.AddRoom(models.Room{Building: "HS", Number: "120", Capacity: -1})
	require.Equal(t, appErrors.ErrValidation.Code, errCode(t, err))
}

func TestUpdateRoom(t *testing.T) {
	repo, _, _, room := seededRepo(t)

	updated, err := repo.UpdateRoom(room.ID, models.Room{Building: "HS", Number: "120", Capacity: 45, Real: true})
	require.NoError(t, err)
	require.Equal(t, room.ID, updated.ID)
	require.Equal(t, "HS 120", updated.Name())

	_, err = repo.UpdateRoom(99, updated)
	require.Equal(t, appErrors.ErrNotFound.Code, errCode(t, err))
}

func TestDeleteRoomStripsPlacements(t *testing.T) {
	repo, course, prof, room := seededRepo(t)
	other, err := repo.AddRoom(models.Room{Building: "SCI", Number: "201", Capacity: 20, Real: true})
	require.NoError(t, err)

	item, err := repo.AddScheduleItem(course.ID, prof.ID)
	require.NoError(t, err)
	_, err = repo.AddPlacement(item.ID, models.Placement{RoomID: room.ID, Slot: models.NewTimeSlot("MWF", 9, 0, 9, 50)})
	require.NoError(t, err)
	_, err = repo.AddPlacement(item.ID, models.Placement{RoomID: other.ID, Slot: models.NewTimeSlot("T", 13, 0, 14, 15)})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteRoom(room.ID))

	// The item survives with only the other room's placement.
	kept, err := repo.ItemByID(item.ID)
	require.NoError(t, err)
	require.Len(t, kept.Placements, 1)
	require.Equal(t, other.ID, kept.Placements[0].RoomID)

	_, err = repo.RoomByID(room.ID)
	require.Equal(t, appErrors.ErrNotFound.Code, errCode(t, err))
}

func TestRoomsSortedByName(t *testing.T) {
	repo := NewScheduleRepository(24)
	for _, rm := range []models.Room{
		{Building: "SCI", Number: "201"},
		{Building: "HS", Number: "115"},
	} {
		_, err := repo.AddRoom(rm)
		require.NoError(t, err)
	}

	rooms := repo.Rooms()
	require.Len(t, rooms, 2)
	require.Equal(t, "HS 115", rooms[0].Name())
	require.Equal(t, "SCI 201", rooms[1].Name())
}
