package reminder

import (
	"time"

	"github.com/drcares-ai/platform/pkg/risk"
)

const day = 24 * time.Hour

// Offsets are subtracted from the appointment time, so every planned
// slot is strictly before it. Higher tiers get earlier and denser
// nudges.
var offsetsByPriority = map[risk.Priority][]time.Duration{
	risk.PriorityHigh:   {7 * day, 3 * day, day, 3 * time.Hour},
	risk.PriorityMedium: {3 * day, day},
	risk.PriorityNormal: {day},
}

// PlanTimes computes the notification slots for an appointment given
// the patient's priority tier, ordered earliest first. Unknown tiers
// fall back to normal. Pure function.
func PlanTimes(appointmentAt time.Time, priority risk.Priority) []time.Time {
	offsets, ok := offsetsByPriority[priority]
	if !ok {
		offsets = offsetsByPriority[risk.PriorityNormal]
	}

	times := make([]time.Time, 0, len(offsets))
	for _, offset := range offsets {
		times = append(times, appointmentAt.Add(-offset))
	}
	return times
}
