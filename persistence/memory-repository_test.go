package persistence

import (
	"context"
	"errors"
	"testing"

	"proflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Roundtrip(t *testing.T) {
	repo := NewMemorySnapshotRepository()

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded, "empty repository loads nothing")

	snapshot := &models.Snapshot{
		SchemaVersion: models.SnapshotSchemaVersion,
		Projects:      []models.Project{{ID: "p1", Name: "One"}},
	}
	require.NoError(t, repo.Save(context.Background(), snapshot))

	loaded, err = repo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snapshot.Projects, loaded.Projects)
	assert.Equal(t, 1, repo.SaveCount())
}

func TestMemoryRepository_FailSaves(t *testing.T) {
	repo := NewMemorySnapshotRepository()
	repo.FailSavesWith(errors.New("boom"))

	err := repo.Save(context.Background(), &models.Snapshot{})
	require.Error(t, err)
	assert.Equal(t, 1, repo.SaveCount(), "failed saves still count as attempts")

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded, "failed save stores nothing")
}
