package booking

import "time"

// GenerateSlots walks the working window in fixed 15-minute ticks and emits
// every candidate of the requested duration that stays inside the window and
// clears the busy intervals. Durations that are not a multiple of the tick
// produce starts that do not tile the window evenly; that is accepted.
func GenerateSlots(hours Hours, date time.Time, durationMin int, busy []Interval) []TimeSlot {
	if durationMin <= 0 {
		durationMin = 60
	}

	windowStart, windowEnd := HoursWindow(hours, date)
	if !windowEnd.After(windowStart) {
		return nil
	}

	step := SlotStepMinutes * time.Minute
	duration := time.Duration(durationMin) * time.Minute

	var slots []TimeSlot
	for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(step) {
		slotStart := cur
		slotEnd := cur.Add(duration)

		if overlapsAny(slotStart, slotEnd, busy) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start:       slotStart.Format("15:04"),
			End:         slotEnd.Format("15:04"),
			DurationMin: durationMin,
		})
	}

	return slots
}

// GenerateSlotUnion runs one full pass per duration and unions the results,
// ordered by start time then duration. This backs the calendar view where a
// service offers several duration variants.
func GenerateSlotUnion(hours Hours, date time.Time, durations []int, busy []Interval) []TimeSlot {
	if len(durations) == 0 {
		durations = []int{60}
	}

	seen := make(map[TimeSlot]struct{})
	var union []TimeSlot

	for _, d := range durations {
		for _, s := range GenerateSlots(hours, date, d, busy) {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			union = append(union, s)
		}
	}

	sortSlots(union)
	return union
}

func sortSlots(slots []TimeSlot) {
	// insertion sort; slot counts are small (a day has at most a few dozen)
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0 && slotLess(slots[j], slots[j-1]); j-- {
			slots[j], slots[j-1] = slots[j-1], slots[j]
		}
	}
}

func slotLess(a, b TimeSlot) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.DurationMin < b.DurationMin
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
