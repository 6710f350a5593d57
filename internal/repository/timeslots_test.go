package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

func TestAddStandardSlotNormalizes(t *testing.T) {
	repo := NewScheduleRepository(24)

	slot, err := repo.AddStandardSlot(models.TimeSlot{Days: "fwm", StartHour: 9, StartMinute: 0, EndHour: 8, EndMinute: 110})
	require.NoError(t, err)
	require.Equal(t, "MWF", slot.Days)
	require.Equal(t, 9, slot.EndHour)
	require.Equal(t, 50, slot.EndMinute)
}

func TestAddStandardSlotRejectsDuplicatesAndInvalid(t *testing.T) {
	repo := NewScheduleRepository(24)
	_, err := repo.AddStandardSlot(models.NewTimeSlot("MWF", 9, 0, 9, 50))
	require.NoError(t, err)

	_, err = repo.AddStandardSlot(models.NewTimeSlot("FWM", 9, 0, 9, 50))
	require.Equal(t, appErrors.ErrDuplicate.Code, errCode(t, err))

	_, err = repo.AddStandardSlot(models.NewTimeSlot("M", 10, 0, 9, 0))
	require.Equal(t, appErrors.ErrValidation.Code, errCode(t, err))
}

func TestDeleteStandardSlot(t *testing.T) {
	repo := NewScheduleRepository(24)
	slot, err := repo.AddStandardSlot(models.NewTimeSlot("MWF", 9, 0, 9, 50))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteStandardSlot(slot))
	require.Empty(t, repo.StandardSlots())

	err = repo.DeleteStandardSlot(slot)
	require.Equal(t, appErrors.ErrNotFound.Code, errCode(t, err))
}

func TestStandardSlotsSortedChronologically(t *testing.T) {
	repo := NewScheduleRepository(24)
	_, err := repo.AddStandardSlot(models.NewTimeSlot("TR", 13, 0, 14, 15))
	require.NoError(t, err)
	_, err = repo.AddStandardSlot(models.NewTimeSlot("MWF", 9, 0, 9, 50))
	require.NoError(t, err)

	slots := repo.StandardSlots()
	require.Len(t, slots, 2)
	require.Equal(t, "MWF", slots[0].Days)
	require.Equal(t, "TR", slots[1].Days)
}
