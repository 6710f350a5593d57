package repository

import (
	"fmt"
	"strings"

	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

// Rooms returns the room list sorted by name.
func (r *ScheduleRepository) Rooms() []models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]models.Room(nil), r.doc.Rooms...)
	sortRooms(out)
	return out
}

// RoomByID returns the room with the given id.
func (r *ScheduleRepository) RoomByID(id int) (models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.doc.RoomByID(id)
	if !ok {
		return models.Room{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %d not found", id))
	}
	return room, nil
}

// RoomByName returns the room with the given building/number name.
func (r *ScheduleRepository) RoomByName(name string) (models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.doc.RoomByName(name)
	if !ok {
		return models.Room{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %q not found", name))
	}
	return room, nil
}

// AddRoom validates and inserts a room, issuing the id.
func (r *ScheduleRepository) AddRoom(room models.Room) (models.Room, error) {
	trimRoom(&room)
	if err := validateRoom(room); err != nil {
		return models.Room{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkRoomUnique(r.doc.Rooms, room, 0); err != nil {
		return models.Room{}, err
	}

	room.ID = r.doc.NextRoomID()
	r.doc.Rooms = append(r.doc.Rooms, room)
	sortRooms(r.doc.Rooms)
	r.revision++
	return room, nil
}

// UpdateRoom replaces the room with the given id.
func (r *ScheduleRepository) UpdateRoom(id int, room models.Room) (models.Room, error) {
	trimRoom(&room)
	if err := validateRoom(room); err != nil {
		return models.Room{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	index := -1
	for i, rm := range r.doc.Rooms {
		if rm.ID == id {
			index = i
		}
	}
	if index < 0 {
		return models.Room{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %d not found", id))
	}
	if err := checkRoomUnique(r.doc.Rooms, room, id); err != nil {
		return models.Room{}, err
	}

	room.ID = id
	r.doc.Rooms[index] = room
	sortRooms(r.doc.Rooms)
	r.revision++
	return room, nil
}

// DeleteRoom removes a room. Placements that referenced it are stripped from
// schedule items; the items themselves stay, dropping to a lower scheduled
// state.
func (r *ScheduleRepository) DeleteRoom(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := -1
	for i, rm := range r.doc.Rooms {
		if rm.ID == id {
			index = i
		}
	}
	if index < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %d not found", id))
	}

	for i, item := range r.doc.Schedule {
		uses := false
		for _, pl := range item.Placements {
			if pl.RoomID == id {
				uses = true
			}
		}
		if !uses {
			continue
		}
		updated := item.Clone()
		placements := updated.Placements[:0]
		for _, pl := range updated.Placements {
			if pl.RoomID != id {
				placements = append(placements, pl)
			}
		}
		updated.Placements = placements
		r.doc.Schedule[i] = updated
	}

	r.doc.Rooms = append(r.doc.Rooms[:index], r.doc.Rooms[index+1:]...)
	r.revision++
	return nil
}

func trimRoom(room *models.Room) {
	room.Building = cleanIdentifier(room.Building, true)
	room.Number = cleanIdentifier(room.Number, false)
	room.Special = strings.TrimSpace(room.Special)
}

func validateRoom(room models.Room) error {
	if room.Building == "" {
		return appErrors.Clone(appErrors.ErrValidation, "building is required")
	}
	if room.Number == "" {
		return appErrors.Clone(appErrors.ErrValidation, "room number is required")
	}
	if room.Capacity < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "capacity cannot be negative")
	}
	return nil
}

func checkRoomUnique(rooms []models.Room, room models.Room, selfID int) error {
	for _, rm := range rooms {
		if rm.ID == selfID {
			continue
		}
		if rm.Name() == room.Name() {
			return appErrors.Clone(appErrors.ErrDuplicate, fmt.Sprintf("room %q already exists", room.Name()))
		}
	}
	return nil
}
