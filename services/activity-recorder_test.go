package services

import (
	"fmt"
	"testing"
	"time"

	"proflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRecorder_CapAndOrder(t *testing.T) {
	recorder := NewActivityRecorder()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var entries []models.ActivityEntry
	for i := 0; i < 25; i++ {
		target := fmt.Sprintf("task %d", i)
		entries = recorder.Append(entries, "t1", "created task", target, "", now.Add(time.Duration(i)*time.Second))
	}

	require.Len(t, entries, ActivityCapacity)

	// Newest first: the head is the 25th append, the tail the 6th.
	assert.Equal(t, "task 24", entries[0].Target)
	assert.Equal(t, "task 5", entries[len(entries)-1].Target)

	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Timestamp, entries[i].Timestamp,
			"stored order and timestamp order must agree")
	}
}

func TestActivityRecorder_MonotonicTimestampsOnSameInstant(t *testing.T) {
	recorder := NewActivityRecorder()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var entries []models.ActivityEntry
	for i := 0; i < 5; i++ {
		entries = recorder.Append(entries, "t1", "moved", "task", "to done", now)
	}

	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i-1].Timestamp, entries[i].Timestamp,
			"same-instant appends still get strictly increasing timestamps")
	}
}

func TestActivityRecorder_DoesNotMutateInput(t *testing.T) {
	recorder := NewActivityRecorder()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := recorder.Append(nil, "t1", "created project", "One", "", now)
	second := recorder.Append(first, "t1", "created project", "Two", "", now.Add(time.Second))

	require.Len(t, first, 1)
	assert.Equal(t, "One", first[0].Target)
	require.Len(t, second, 2)
	assert.Equal(t, "Two", second[0].Target)
}

func TestRelativeLabel(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		offset time.Duration
		want   string
	}{
		{30 * time.Second, "1 minute ago"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{3 * time.Hour, "3 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}

	for _, tc := range cases {
		ts := now.Add(-tc.offset).UnixMilli()
		assert.Equal(t, tc.want, RelativeLabel(ts, now), "offset %s", tc.offset)
	}
}
