package models

import "time"

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

type Subtask struct {
	ID   string `json:"id" bson:"id"`
	Text string `json:"text" bson:"text"`
	Done bool   `json:"done" bson:"done"`
}

type Task struct {
	ID          string       `json:"id" bson:"_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	ProjectID   string       `json:"projectId" bson:"projectId"`
	Status      TaskStatus   `json:"status" bson:"status"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	// Assignee is a team member id; empty means unassigned.
	Assignee  string    `json:"assignee" bson:"assignee"`
	DueDate   time.Time `json:"dueDate" bson:"dueDate"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	Subtasks  []Subtask `json:"subtasks" bson:"subtasks"`
}

// TaskPatch carries a field-level merge for UpdateTask. Nil fields are left
// untouched on the stored task.
type TaskPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	ProjectID   *string       `json:"projectId,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	Assignee    *string       `json:"assignee,omitempty"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
	Subtasks    *[]Subtask    `json:"subtasks,omitempty"`
}

// ValidStatus reports whether s is one of the four board columns.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}
