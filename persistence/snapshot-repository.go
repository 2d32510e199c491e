package persistence

import (
	"context"
	"errors"
	"fmt"

	"proflow/models"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SnapshotKey is the fixed document id the whole application state lives
// under. One document, replaced wholesale on every save.
const SnapshotKey = "proflow_data"

// SnapshotRepository persists and restores the full store snapshot.
type SnapshotRepository interface {
	// Save replaces the persisted snapshot. Best-effort: callers log and
	// swallow the error, mutations never fail on it.
	Save(ctx context.Context, snapshot *models.Snapshot) error
	// Load returns the persisted snapshot, or (nil, nil) when none exists.
	// A corrupt document is reported as *models.DeserializationError.
	Load(ctx context.Context) (*models.Snapshot, error)
}

type snapshotDocument struct {
	ID       string          `bson:"_id"`
	Snapshot models.Snapshot `bson:"snapshot"`
}

// MongoSnapshotRepository stores the snapshot as a single MongoDB document.
// Writes go through a circuit breaker so a dead database does not get
// hammered by every mutation.
type MongoSnapshotRepository struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
}

func NewMongoSnapshotRepository(collection *mongo.Collection, breaker *gobreaker.CircuitBreaker) *MongoSnapshotRepository {
	return &MongoSnapshotRepository{
		collection: collection,
		breaker:    breaker,
	}
}

func (r *MongoSnapshotRepository) Save(ctx context.Context, snapshot *models.Snapshot) error {
	doc := snapshotDocument{ID: SnapshotKey, Snapshot: *snapshot}

	_, err := r.breaker.Execute(func() (interface{}, error) {
		opts := options.Replace().SetUpsert(true)
		return r.collection.ReplaceOne(ctx, bson.M{"_id": SnapshotKey}, doc, opts)
	})
	if err != nil {
		return &models.PersistenceError{Op: "save snapshot", Err: err}
	}
	return nil
}

func (r *MongoSnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	var doc snapshotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": SnapshotKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, &models.DeserializationError{Err: fmt.Errorf("failed to read snapshot document: %w", err)}
	}
	return &doc.Snapshot, nil
}
