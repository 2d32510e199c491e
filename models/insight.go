package models

// Insight records are derived, never persisted, and recomputed from a
// snapshot on every request. Colors are presentation tags only.

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

type PrioritySuggestion struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	TaskID      string   `json:"taskId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
}

type WorkloadEntry struct {
	Member  TeamMember `json:"member"`
	Total   int        `json:"total"`
	Active  int        `json:"active"`
	Overdue int        `json:"overdue"`
}

type WorkloadSuggestion struct {
	Type        string `json:"type"`
	MemberID    string `json:"memberId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type WorkloadReport struct {
	Workload    []WorkloadEntry      `json:"workload"`
	Suggestions []WorkloadSuggestion `json:"suggestions"`
}

type Risk struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Score       int    `json:"score"`
	Color       string `json:"color"`
}

type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type ProductivityScore struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Color string `json:"color"`
}
