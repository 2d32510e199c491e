package models

// TeamMember is seeded reference data. The store never mutates members.
type TeamMember struct {
	ID     string `json:"id" bson:"_id"`
	Name   string `json:"name" bson:"name"`
	Role   string `json:"role" bson:"role"`
	Avatar string `json:"avatar" bson:"avatar"`
	Color  string `json:"color" bson:"color"`
}
