package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotStarts(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestGenerateSlots_WalksFifteenMinuteTicks(t *testing.T) {
	date := mustDate(t, "2026-03-02")
	hours := Hours{Start: "09:00", End: "11:00"}

	slots := GenerateSlots(hours, date, 60, nil)

	// 60-minute slots inside a 2-hour window, last start is 10:00
	assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45", "10:00"}, slotStarts(slots))
	for _, s := range slots {
		assert.Equal(t, 60, s.DurationMin)
	}
}

func TestGenerateSlots_SkipsBusyWindows(t *testing.T) {
	date := mustDate(t, "2026-03-02")
	hours := Hours{Start: "09:00", End: "17:00"}

	busyStart := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	busy := []Interval{{Start: busyStart, End: busyStart.Add(time.Hour)}}

	slots := GenerateSlots(hours, date, 60, busy)
	starts := slotStarts(slots)

	assert.Contains(t, starts, "09:00")
	// any 60-minute slot starting 09:15 through 10:45 would cross the booking
	assert.NotContains(t, starts, "09:15")
	assert.NotContains(t, starts, "09:45")
	assert.NotContains(t, starts, "10:00")
	assert.NotContains(t, starts, "10:45")
	// the booking ends at 11:00 and the next slot starts exactly there
	assert.Contains(t, starts, "11:00")
	// last fitting start of the day
	assert.Equal(t, "16:00", starts[len(starts)-1])
}

func TestGenerateSlots_SlotMustEndInsideWindow(t *testing.T) {
	date := mustDate(t, "2026-03-02")
	hours := Hours{Start: "09:00", End: "10:00"}

	slots := GenerateSlots(hours, date, 45, nil)

	// 09:30 + 45min would end 10:15, past the window
	assert.Equal(t, []string{"09:00", "09:15"}, slotStarts(slots))
}

func TestGenerateSlots_DefaultsTo60Minutes(t *testing.T) {
	date := mustDate(t, "2026-03-02")
	slots := GenerateSlots(Hours{Start: "09:00", End: "10:00"}, date, 0, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, 60, slots[0].DurationMin)
}

func TestGenerateSlots_EmptyOrInvertedWindow(t *testing.T) {
	date := mustDate(t, "2026-03-02")

	assert.Empty(t, GenerateSlots(Hours{Start: "10:00", End: "10:00"}, date, 30, nil))
	assert.Empty(t, GenerateSlots(Hours{Start: "17:00", End: "09:00"}, date, 30, nil))
}

func TestGenerateSlotUnion_MergesDurations(t *testing.T) {
	date := mustDate(t, "2026-03-02")
	hours := Hours{Start: "09:00", End: "10:30"}

	slots := GenerateSlotUnion(hours, date, []int{30, 60}, nil)

	// ordered by start, shorter duration first on ties
	require.NotEmpty(t, slots)
	assert.Equal(t, TimeSlot{Start: "09:00", End: "09:30", DurationMin: 30}, slots[0])
	assert.Equal(t, TimeSlot{Start: "09:00", End: "10:00", DurationMin: 60}, slots[1])

	// the 60-minute variant cannot start past 09:30
	for _, s := range slots {
		if s.DurationMin == 60 {
			assert.LessOrEqual(t, s.Start, "09:30")
		}
	}
}

func TestGenerateSlotUnion_Deduplicates(t *testing.T) {
	date := mustDate(t, "2026-03-02")
	hours := Hours{Start: "09:00", End: "10:00"}

	slots := GenerateSlotUnion(hours, date, []int{30, 30}, nil)
	assert.Equal(t, GenerateSlots(hours, date, 30, nil), slots)
}
