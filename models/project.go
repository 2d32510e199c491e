package models

import "time"

type Project struct {
	ID          string     `json:"id" bson:"_id"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description" bson:"description"`
	Color       string     `json:"color" bson:"color"`
	Deadline    *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	Members     []string   `json:"members" bson:"members"`
}

// ProjectPatch carries a field-level merge for UpdateProject. Nil fields are
// left untouched on the stored project.
type ProjectPatch struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Color       *string    `json:"color,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Members     *[]string  `json:"members,omitempty"`
}
