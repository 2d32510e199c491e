package services

import (
	"fmt"
	"time"

	"proflow/models"

	"github.com/google/uuid"
)

// ActivityCapacity is the fixed size of the activity log. Older entries age
// out by eviction, never by explicit deletion.
const ActivityCapacity = 20

// ActivityRecorder builds capped, newest-first activity logs. Append never
// mutates the input slice; the store swaps the returned slice in atomically.
type ActivityRecorder struct {
	capacity int
	lastTS   int64
}

func NewActivityRecorder() *ActivityRecorder {
	return &ActivityRecorder{capacity: ActivityCapacity}
}

// Append prepends a new entry and truncates to capacity. Timestamps are
// strictly increasing even when appends land on the same millisecond, so
// stored order and timestamp order never diverge.
func (r *ActivityRecorder) Append(entries []models.ActivityEntry, user, action, target, detail string, now time.Time) []models.ActivityEntry {
	ts := now.UnixMilli()
	if ts <= r.lastTS {
		ts = r.lastTS + 1
	}
	r.lastTS = ts

	entry := models.ActivityEntry{
		ID:        uuid.New().String(),
		User:      user,
		Action:    action,
		Target:    target,
		Detail:    detail,
		Time:      "Just now",
		Timestamp: ts,
	}

	out := make([]models.ActivityEntry, 0, len(entries)+1)
	out = append(out, entry)
	out = append(out, entries...)
	if len(out) > r.capacity {
		out = out[:r.capacity]
	}
	return out
}

// RelativeLabel renders an activity timestamp as a relative label for the
// read side ("5 minutes ago", "2 hours ago", "3 days ago").
func RelativeLabel(timestamp int64, now time.Time) string {
	offset := now.UnixMilli() - timestamp
	if offset < 0 {
		offset = 0
	}

	switch {
	case offset < time.Hour.Milliseconds():
		mins := offset / time.Minute.Milliseconds()
		if mins < 1 {
			mins = 1
		}
		return fmt.Sprintf("%d minute%s ago", mins, plural(mins))
	case offset < 24*time.Hour.Milliseconds():
		hours := offset / time.Hour.Milliseconds()
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	default:
		days := offset / (24 * time.Hour.Milliseconds())
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	}
}

func plural(n int64) string {
	if n == 1 {
		return ""
	}
	return "s"
}
