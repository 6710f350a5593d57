package models

import (
	"fmt"
	"strings"
)

// DayOrder is the canonical ordering of weekday codes:
// M=Monday, T=Tuesday, W=Wednesday, R=Thursday, F=Friday, S=Saturday, U=Sunday.
const DayOrder = "MTWRFSU"

// TimeSlot is a recurring weekly interval: a set of weekdays plus a start and
// end time on a 24-hour clock. It is a value type; slots attached to schedule
// items are replaced wholesale on edit, never mutated in place.
type TimeSlot struct {
	Days        string `json:"days"`
	StartHour   int    `json:"start_hour"`
	StartMinute int    `json:"start_minute"`
	EndHour     int    `json:"end_hour"`
	EndMinute   int    `json:"end_minute"`
}

// NewTimeSlot builds a normalized slot from raw field values.
func NewTimeSlot(days string, startHour, startMinute, endHour, endMinute int) TimeSlot {
	slot := TimeSlot{
		Days:        days,
		StartHour:   startHour,
		StartMinute: startMinute,
		EndHour:     endHour,
		EndMinute:   endMinute,
	}
	return slot.Normalize()
}

// Normalize returns the slot in canonical form: day codes uppercased and
// ordered per DayOrder with duplicates and unknown codes dropped, and minutes
// outside [0, 60) folded into the hour fields. Idempotent.
func (t TimeSlot) Normalize() TimeSlot {
	days := strings.ToUpper(strings.TrimSpace(t.Days))
	var clean strings.Builder
	for _, code := range DayOrder {
		if strings.ContainsRune(days, code) {
			clean.WriteRune(code)
		}
	}

	t.Days = clean.String()
	t.StartHour, t.StartMinute = foldMinutes(t.StartHour, t.StartMinute)
	t.EndHour, t.EndMinute = foldMinutes(t.EndHour, t.EndMinute)
	return t
}

// foldMinutes carries whole hours out of the minute field, flooring so that
// negative minutes borrow from the hour instead of truncating toward zero.
func foldMinutes(hour, minute int) (int, int) {
	hour += minute / 60
	minute %= 60
	if minute < 0 {
		hour--
		minute += 60
	}
	return hour, minute
}

// Valid reports whether the normalized slot has in-range hours and a start
// time no later than its end time.
func (t TimeSlot) Valid() bool {
	n := t.Normalize()
	if n.StartHour < 0 || n.StartHour > 23 {
		return false
	}
	if n.EndHour < 0 || n.EndHour > 23 {
		return false
	}
	return n.startMinutes() <= n.endMinutes()
}

// Equal reports whether both the day sets and the times match exactly.
func (t TimeSlot) Equal(other TimeSlot) bool {
	a, b := t.Normalize(), other.Normalize()
	return a.Days == b.Days && a.SameTime(b)
}

// SameTime reports whether the start and end times match, ignoring days.
// Slots with the same time on different days are eligible for day-merging.
func (t TimeSlot) SameTime(other TimeSlot) bool {
	a, b := t.Normalize(), other.Normalize()
	return a.StartHour == b.StartHour && a.StartMinute == b.StartMinute &&
		a.EndHour == b.EndHour && a.EndMinute == b.EndMinute
}

// DurationMinutes returns the length of one meeting in minutes.
func (t TimeSlot) DurationMinutes() int {
	n := t.Normalize()
	return n.endMinutes() - n.startMinutes()
}

// WeeklyMinutes returns the per-meeting duration times the number of days.
func (t TimeSlot) WeeklyMinutes() int {
	n := t.Normalize()
	return n.DurationMinutes() * len(n.Days)
}

// ContainsInstant reports whether the given day/time falls inside the slot,
// boundaries included. Used for "what meets right now" style queries.
func (t TimeSlot) ContainsInstant(day string, hour, minute int) bool {
	n := t.Normalize()
	if !strings.Contains(n.Days, strings.ToUpper(day)) {
		return false
	}
	at := hour*60 + minute
	return n.startMinutes() <= at && at <= n.endMinutes()
}

// StrictlyContainsInstant reports whether the given day/time falls strictly
// inside the slot, boundaries excluded. Overlap detection builds on this so
// that back-to-back classes sharing a boundary minute are not flagged.
func (t TimeSlot) StrictlyContainsInstant(day string, hour, minute int) bool {
	n := t.Normalize()
	if !strings.Contains(n.Days, strings.ToUpper(day)) {
		return false
	}
	at := hour*60 + minute
	return n.startMinutes() < at && at < n.endMinutes()
}

// Overlaps reports whether the two slots collide. Two slots overlap when, on
// some shared day, one slot's boundary falls strictly inside the other's
// interval, or the slots have identical non-empty time ranges and share a
// day. Adjacency is not overlap.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	a, b := t.Normalize(), other.Normalize()

	exactEqual := a.SameTime(b) && a.DurationMinutes() > 0

	for _, day := range b.Days {
		d := string(day)
		if a.StrictlyContainsInstant(d, b.StartHour, b.StartMinute) {
			return true
		}
		if a.StrictlyContainsInstant(d, b.EndHour, b.EndMinute) {
			return true
		}
		if strings.Contains(a.Days, d) && exactEqual {
			return true
		}
	}

	for _, day := range a.Days {
		d := string(day)
		if b.StrictlyContainsInstant(d, a.StartHour, a.StartMinute) {
			return true
		}
		if b.StrictlyContainsInstant(d, a.EndHour, a.EndMinute) {
			return true
		}
		if strings.Contains(b.Days, d) && exactEqual {
			return true
		}
	}

	return false
}

// Merge combines two slots into one when it is safe to do so. Slots with
// identical times get their day sets unioned; slots with identical day sets
// whose ranges overlap or touch are widened to span both. The second return
// is false when no combination applies.
func (t TimeSlot) Merge(other TimeSlot) (TimeSlot, bool) {
	a, b := t.Normalize(), other.Normalize()

	if a.SameTime(b) {
		merged := TimeSlot{
			Days:        a.Days + b.Days,
			StartHour:   a.StartHour,
			StartMinute: a.StartMinute,
			EndHour:     a.EndHour,
			EndMinute:   a.EndMinute,
		}
		return merged.Normalize(), true
	}

	if a.Days != b.Days {
		return TimeSlot{}, false
	}

	// Inclusive endpoint containment: ranges that merely touch still merge.
	touching := a.containsTime(b.StartHour, b.StartMinute) ||
		a.containsTime(b.EndHour, b.EndMinute) ||
		b.containsTime(a.StartHour, a.StartMinute) ||
		b.containsTime(a.EndHour, a.EndMinute)
	if !touching {
		return TimeSlot{}, false
	}

	merged := a
	if b.startMinutes() < a.startMinutes() {
		merged.StartHour = b.StartHour
		merged.StartMinute = b.StartMinute
	}
	if b.endMinutes() > a.endMinutes() {
		merged.EndHour = b.EndHour
		merged.EndMinute = b.EndMinute
	}
	return merged, true
}

// ConsolidateTimeSlots repeatedly merges any combinable pair in the list until
// no further merge applies, returning the reduced list.
func ConsolidateTimeSlots(slots []TimeSlot) []TimeSlot {
	out := make([]TimeSlot, len(slots))
	copy(out, slots)

	for {
		merged := false
		for i := 0; i < len(out) && !merged; i++ {
			for j := i + 1; j < len(out) && !merged; j++ {
				if combined, ok := out[i].Merge(out[j]); ok {
					out[i] = combined
					out = append(out[:j], out[j+1:]...)
					merged = true
				}
			}
		}
		if !merged {
			return out
		}
	}
}

// Description returns the slot on a 12-hour clock, e.g. "MWF 9:00 AM - 9:50 AM".
func (t TimeSlot) Description() string {
	n := t.Normalize()
	return fmt.Sprintf("%s %s - %s", n.Days,
		clock12(n.StartHour, n.StartMinute), clock12(n.EndHour, n.EndMinute))
}

// Description24 returns the slot on a 24-hour clock, e.g. "MWF 9:00 - 9:50".
// Sort key for standard timeslot lists.
func (t TimeSlot) Description24() string {
	n := t.Normalize()
	return fmt.Sprintf("%s %s - %s", n.Days,
		clock24(n.StartHour, n.StartMinute), clock24(n.EndHour, n.EndMinute))
}

func (t TimeSlot) startMinutes() int {
	return t.StartHour*60 + t.StartMinute
}

func (t TimeSlot) endMinutes() int {
	return t.EndHour*60 + t.EndMinute
}

func (t TimeSlot) containsTime(hour, minute int) bool {
	at := hour*60 + minute
	return t.startMinutes() <= at && at <= t.endMinutes()
}

func clock12(hour, minute int) string {
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	h := hour
	if h > 12 {
		h -= 12
	}
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, ampm)
}

func clock24(hour, minute int) string {
	h := hour
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d", h, minute)
}
