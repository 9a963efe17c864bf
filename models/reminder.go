package models

// Reminder windows are day offsets before an entity's target date, sorted
// descending. Instead of one "sent" boolean per offset, each entity carries a
// single reminder_stage integer: stage k means offsets[0..k-1] have already
// fired. Firing is monotonic and order-independent, so a sweep that missed a
// day catches up with at most one notification.
var (
	ReminderOffsetsDefault = []int{5, 3, 1, 0}
	ReminderOffsetsLesson  = []int{3, 1, 0}
)

// NextReminderStage returns the stage to claim for an entity whose target date
// is daysUntil whole days away, given its current stage. The second return is
// false when nothing is due: all offsets fired, the target is still further
// out than the next offset, or the target date has passed.
func NextReminderStage(offsets []int, stage int, daysUntil int) (int, bool) {
	if stage < 0 || stage >= len(offsets) {
		return 0, false
	}
	if daysUntil < 0 || daysUntil > offsets[stage] {
		return 0, false
	}
	// Advance past every offset the current date has already reached so a
	// late sweep fires once, not once per missed window.
	next := stage
	for next < len(offsets) && offsets[next] >= daysUntil {
		next++
	}
	return next, true
}

// ReminderOffsetSent reports whether the window at the given day offset has
// fired for an entity at this stage. Used to derive the per-offset booleans
// exposed in API responses.
func ReminderOffsetSent(offsets []int, stage int, offset int) bool {
	for i, o := range offsets {
		if o == offset {
			return stage > i
		}
	}
	return false
}
