package services

import (
	"testing"
	"time"

	"proflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeedData_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := GenerateSeedData(DefaultSeed, now)
	second := GenerateSeedData(DefaultSeed, now)

	assert.Equal(t, first, second, "same seed and reference time must reproduce the snapshot")
}

func TestGenerateSeedData_Shape(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := GenerateSeedData(DefaultSeed, now)

	assert.Equal(t, models.SnapshotSchemaVersion, snapshot.SchemaVersion)
	assert.Len(t, snapshot.Projects, SeedProjectCount)
	assert.Len(t, snapshot.Tasks, seedTaskCount)
	assert.Len(t, snapshot.Team, 6)
	assert.Len(t, snapshot.Activity, ActivityCapacity)
	assert.Nil(t, snapshot.User)

	// Referential integrity: every task points at a seeded project.
	projectIDs := make(map[string]struct{}, len(snapshot.Projects))
	for _, p := range snapshot.Projects {
		projectIDs[p.ID] = struct{}{}
	}
	for _, task := range snapshot.Tasks {
		_, ok := projectIDs[task.ProjectID]
		require.True(t, ok, "task %s references unknown project %s", task.ID, task.ProjectID)
	}

	// Activity comes presorted newest-first.
	for i := 1; i < len(snapshot.Activity); i++ {
		assert.GreaterOrEqual(t, snapshot.Activity[i-1].Timestamp, snapshot.Activity[i].Timestamp)
	}
}
