package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeSlotNormalizeCanonicalDays(t *testing.T) {
	slot := TimeSlot{Days: "fwm", StartHour: 9, StartMinute: 0, EndHour: 9, EndMinute: 50}
	n := slot.Normalize()
	require.Equal(t, "MWF", n.Days)

	slot = TimeSlot{Days: "MMxWW", StartHour: 9, EndHour: 10}
	require.Equal(t, "MW", slot.Normalize().Days)
}

func TestTimeSlotNormalizeFoldsMinutes(t *testing.T) {
	slot := TimeSlot{Days: "T", StartHour: 8, StartMinute: 75, EndHour: 9, EndMinute: 120}
	n := slot.Normalize()
	require.Equal(t, 9, n.StartHour)
	require.Equal(t, 15, n.StartMinute)
	require.Equal(t, 11, n.EndHour)
	require.Equal(t, 0, n.EndMinute)
}

func TestTimeSlotNormalizeFoldsNegativeMinutes(t *testing.T) {
	slot := TimeSlot{Days: "T", StartHour: 9, StartMinute: -30, EndHour: 10, EndMinute: -90}
	n := slot.Normalize()
	require.Equal(t, 8, n.StartHour)
	require.Equal(t, 30, n.StartMinute)
	require.Equal(t, 8, n.EndHour)
	require.Equal(t, 30, n.EndMinute)

	// A slot that folds below midnight is still rejected.
	require.False(t, TimeSlot{Days: "T", StartHour: 0, StartMinute: -30, EndHour: 9, EndMinute: 0}.Valid())
}

func TestTimeSlotNormalizeIdempotent(t *testing.T) {
	slot := TimeSlot{Days: "ufr", StartHour: 13, StartMinute: 90, EndHour: 14, EndMinute: 75}
	once := slot.Normalize()
	require.Equal(t, once, once.Normalize())
}

func TestTimeSlotValid(t *testing.T) {
	require.True(t, NewTimeSlot("MWF", 9, 0, 9, 50).Valid())
	require.True(t, NewTimeSlot("M", 9, 0, 9, 0).Valid())
	require.False(t, NewTimeSlot("M", 10, 0, 9, 0).Valid())
	require.False(t, TimeSlot{Days: "M", StartHour: -1, EndHour: 9}.Valid())
	require.False(t, TimeSlot{Days: "M", StartHour: 9, EndHour: 24}.Valid())
}

func TestTimeSlotOverlaps(t *testing.T) {
	nine := NewTimeSlot("M", 9, 0, 10, 0)

	require.True(t, nine.Overlaps(NewTimeSlot("M", 9, 30, 10, 0)))
	require.True(t, NewTimeSlot("M", 9, 30, 10, 0).Overlaps(nine))
	require.True(t, nine.Overlaps(NewTimeSlot("M", 9, 0, 10, 0)))
	require.True(t, nine.Overlaps(NewTimeSlot("MWF", 8, 0, 12, 0)))
}

func TestTimeSlotAdjacencyIsNotOverlap(t *testing.T) {
	nine := NewTimeSlot("M", 9, 0, 10, 0)
	ten := NewTimeSlot("M", 10, 0, 11, 0)
	require.False(t, nine.Overlaps(ten))
	require.False(t, ten.Overlaps(nine))
}

func TestTimeSlotDisjointDaysNeverOverlap(t *testing.T) {
	mon := NewTimeSlot("M", 9, 0, 10, 0)
	tue := NewTimeSlot("T", 9, 0, 10, 0)
	require.False(t, mon.Overlaps(tue))
}

func TestTimeSlotZeroDurationNeverOverlaps(t *testing.T) {
	a := NewTimeSlot("M", 9, 0, 9, 0)
	b := NewTimeSlot("M", 9, 0, 9, 0)
	require.False(t, a.Overlaps(b))

	// A zero-width instant strictly inside a real interval still collides.
	require.True(t, a.Overlaps(NewTimeSlot("M", 8, 0, 10, 0)))
}

func TestTimeSlotMergeUnionsDays(t *testing.T) {
	mon := NewTimeSlot("M", 9, 0, 9, 50)
	wedFri := NewTimeSlot("WF", 9, 0, 9, 50)

	merged, ok := mon.Merge(wedFri)
	require.True(t, ok)
	require.Equal(t, "MWF", merged.Days)
	require.True(t, merged.SameTime(mon))
}

func TestTimeSlotMergeWidensTouchingRanges(t *testing.T) {
	early := NewTimeSlot("TR", 9, 0, 10, 0)
	late := NewTimeSlot("TR", 10, 0, 11, 30)

	merged, ok := early.Merge(late)
	require.True(t, ok)
	require.Equal(t, NewTimeSlot("TR", 9, 0, 11, 30), merged)

	gap := NewTimeSlot("TR", 13, 0, 14, 0)
	_, ok = early.Merge(gap)
	require.False(t, ok)
}

func TestTimeSlotMergeRejectsDifferentDaysAndTimes(t *testing.T) {
	a := NewTimeSlot("M", 9, 0, 10, 0)
	b := NewTimeSlot("W", 10, 0, 11, 0)
	_, ok := a.Merge(b)
	require.False(t, ok)
}

func TestConsolidateTimeSlots(t *testing.T) {
	slots := []TimeSlot{
		NewTimeSlot("M", 9, 0, 9, 50),
		NewTimeSlot("W", 9, 0, 9, 50),
		NewTimeSlot("F", 9, 0, 9, 50),
		NewTimeSlot("T", 13, 0, 14, 15),
	}
	out := ConsolidateTimeSlots(slots)
	require.Len(t, out, 2)
	require.Contains(t, out, NewTimeSlot("MWF", 9, 0, 9, 50))
	require.Contains(t, out, NewTimeSlot("T", 13, 0, 14, 15))
}

func TestConsolidateTimeSlotsChainsMerges(t *testing.T) {
	// The third slot only becomes mergeable after the first two combine.
	slots := []TimeSlot{
		NewTimeSlot("M", 9, 0, 10, 0),
		NewTimeSlot("M", 10, 0, 11, 0),
		NewTimeSlot("M", 11, 0, 12, 0),
	}
	out := ConsolidateTimeSlots(slots)
	require.Len(t, out, 1)
	require.Equal(t, NewTimeSlot("M", 9, 0, 12, 0), out[0])
}

func TestTimeSlotWeeklyMinutes(t *testing.T) {
	slot := NewTimeSlot("MWF", 9, 0, 9, 50)
	require.Equal(t, 50, slot.DurationMinutes())
	require.Equal(t, 150, slot.WeeklyMinutes())
}

func TestTimeSlotContainsInstant(t *testing.T) {
	slot := NewTimeSlot("MWF", 9, 0, 9, 50)
	require.True(t, slot.ContainsInstant("W", 9, 25))
	require.True(t, slot.ContainsInstant("w", 9, 0))
	require.False(t, slot.ContainsInstant("T", 9, 25))
	require.False(t, slot.ContainsInstant("M", 10, 0))

	require.False(t, slot.StrictlyContainsInstant("M", 9, 0))
	require.True(t, slot.StrictlyContainsInstant("M", 9, 1))
}

func TestTimeSlotDescriptions(t *testing.T) {
	slot := NewTimeSlot("MWF", 9, 0, 9, 50)
	require.Equal(t, "MWF 9:00 AM - 9:50 AM", slot.Description())
	require.Equal(t, "MWF 9:00 - 9:50", slot.Description24())

	afternoon := NewTimeSlot("T", 13, 30, 14, 45)
	require.Equal(t, "T 1:30 PM - 2:45 PM", afternoon.Description())
}

func TestTimeSlotEqual(t *testing.T) {
	a := NewTimeSlot("MW", 9, 0, 9, 50)
	b := TimeSlot{Days: "wm", StartHour: 9, StartMinute: 0, EndHour: 8, EndMinute: 110}
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(NewTimeSlot("MWF", 9, 0, 9, 50)))
}
