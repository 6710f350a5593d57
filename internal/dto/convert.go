package dto

import "github.com/deptsched/scheduler-api/internal/models"

// ToModel converts the wire slot into a normalized domain slot.
func (r TimeSlotRequest) ToModel() models.TimeSlot {
	return models.NewTimeSlot(r.Days, r.StartHour, r.StartMinute, r.EndHour, r.EndMinute)
}

// ToModel converts the wire placement into a domain placement.
func (r PlacementRequest) ToModel() models.Placement {
	return models.Placement{RoomID: r.RoomID, Slot: r.Slot.ToModel()}
}

// PlacementsToModel converts a list of wire placements.
func PlacementsToModel(reqs []PlacementRequest) []models.Placement {
	if len(reqs) == 0 {
		return nil
	}
	out := make([]models.Placement, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.ToModel())
	}
	return out
}
