package models

type ActivityEntry struct {
	ID     string `json:"id" bson:"_id"`
	User   string `json:"user" bson:"user"`
	Action string `json:"action" bson:"action"`
	Target string `json:"target" bson:"target"`
	Detail string `json:"detail,omitempty" bson:"detail,omitempty"`
	// Time is a human-readable relative label ("Just now", "3 hours ago").
	Time string `json:"time" bson:"time"`
	// Timestamp is Unix milliseconds, strictly monotonic per recorder.
	Timestamp int64 `json:"timestamp" bson:"timestamp"`
}
