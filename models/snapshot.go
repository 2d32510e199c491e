package models

// SnapshotSchemaVersion is bumped whenever the persisted document shape
// changes. A loaded document with a different version is discarded and the
// store reseeds.
const SnapshotSchemaVersion = 1

// Snapshot is the full consistent state of every collection at one instant.
// The store hands it to readers as an immutable view and persists it as a
// single document under a fixed key.
type Snapshot struct {
	SchemaVersion int             `json:"schemaVersion" bson:"schemaVersion"`
	Projects      []Project       `json:"projects" bson:"projects"`
	Tasks         []Task          `json:"tasks" bson:"tasks"`
	Team          []TeamMember    `json:"team" bson:"team"`
	Activity      []ActivityEntry `json:"activity" bson:"activity"`
	User          *TeamMember     `json:"user" bson:"user"`
}
