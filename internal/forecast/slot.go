package forecast

import "time"

// ComputeSlot maps a requested (hour, day) and the current wall-clock
// time to an offset into the provider's hourly series, which starts at
// the current hour.
//
// When the requested hour has already passed today, the day selection is
// forced back to today regardless of what the caller asked for. The
// original behaves this way and the engine preserves it.
func ComputeSlot(hour int, day Day, now time.Time) (index int, effectiveDay Day, err error) {
	if hour < 0 || hour > 23 {
		return 0, 0, Errf(KindInvalidHour, "hour %d outside 0..23", hour)
	}

	diff := (hour - now.Hour()) % 24
	if diff < 0 {
		diff += 24
	}

	effectiveDay = day
	if hour < now.Hour() {
		effectiveDay = DayToday
	}

	return diff + 24*int(effectiveDay), effectiveDay, nil
}
