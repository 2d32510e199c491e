package services

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"proflow/models"
)

// SeedProjectCount is the number of projects the seed generator produces. It
// doubles as the load heuristic threshold: a persisted snapshot with fewer
// projects is treated as stale sample data and discarded.
const SeedProjectCount = 1000

const (
	seedTaskCount     = 5000
	seedActivityCount = ActivityCapacity
	// DefaultSeed keeps generated sample data reproducible across runs.
	DefaultSeed int64 = 20240101
)

var seedColors = []string{"#7c3aed", "#3b82f6", "#06b6d4", "#10b981", "#f59e0b", "#ef4444", "#ec4899", "#f97316"}

var seedTeam = []models.TeamMember{
	{ID: "t1", Name: "Alex Morgan", Role: "Project Manager", Avatar: "AM", Color: "#7c3aed"},
	{ID: "t2", Name: "Sarah Chen", Role: "Lead Developer", Avatar: "SC", Color: "#3b82f6"},
	{ID: "t3", Name: "James Wilson", Role: "UI/UX Designer", Avatar: "JW", Color: "#06b6d4"},
	{ID: "t4", Name: "Maya Patel", Role: "Backend Dev", Avatar: "MP", Color: "#10b981"},
	{ID: "t5", Name: "Ryan Kim", Role: "QA Engineer", Avatar: "RK", Color: "#f59e0b"},
	{ID: "t6", Name: "Emma Davis", Role: "DevOps", Avatar: "ED", Color: "#ec4899"},
}

var seedTaskTitles = []string{
	"Design homepage mockup", "Set up CI/CD pipeline", "Implement responsive nav", "User authentication flow",
	"API rate limiting", "Design system components", "Performance optimization", "Write API documentation",
	"Setup analytics tracking", "Unit test coverage", "Database migration", "Build chart widgets",
	"Push notification system", "Security audit", "Create onboarding flow", "Fix memory leak",
	"Update dependency packages", "Add dark mode toggle", "Configure Webpack", "Refactor state management",
}

var seedActions = []string{"completed", "moved", "created", "commented on", "assigned", "updated priority of"}

var seedStatuses = []models.TaskStatus{models.StatusTodo, models.StatusInProgress, models.StatusReview, models.StatusDone}

var seedPriorities = []models.TaskPriority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent}

// GenerateSeedData builds a full sample snapshot. The same seed and reference
// time always produce the same snapshot, so test fixtures are reproducible.
func GenerateSeedData(seed int64, now time.Time) *models.Snapshot {
	rng := rand.New(rand.NewSource(seed))
	day := 24 * time.Hour

	team := append([]models.TeamMember(nil), seedTeam...)

	projects := make([]models.Project, 0, SeedProjectCount)
	for i := 0; i < SeedProjectCount; i++ {
		deadline := now.Add(time.Duration(rng.Float64() * 60 * float64(day)))
		created := now.Add(-time.Duration(rng.Float64() * 60 * float64(day)))
		memberCount := rng.Intn(4) + 1
		members := make([]string, 0, memberCount)
		for _, m := range team[:memberCount] {
			members = append(members, m.ID)
		}
		projects = append(projects, models.Project{
			ID:          fmt.Sprintf("p%d", i+1),
			Name:        fmt.Sprintf("Project Alpha %d", i+1),
			Description: fmt.Sprintf("This is an auto-generated description for project %d.", i+1),
			Color:       seedColors[i%len(seedColors)],
			Deadline:    &deadline,
			CreatedAt:   created,
			Members:     members,
		})
	}

	tasks := make([]models.Task, 0, seedTaskCount)
	for i := 0; i < seedTaskCount; i++ {
		id := fmt.Sprintf("tk%d", i+1)
		project := projects[rng.Intn(len(projects))]
		titleBase := seedTaskTitles[i%len(seedTaskTitles)]
		// Due between 10 days ago and 30 days out.
		dueOffset := time.Duration((rng.Float64()*40 - 10) * float64(day))

		subtaskCount := rng.Intn(4)
		subtasks := make([]models.Subtask, 0, subtaskCount)
		for j := 0; j < subtaskCount; j++ {
			subtasks = append(subtasks, models.Subtask{
				ID:   fmt.Sprintf("s%s_%d", id, j),
				Text: fmt.Sprintf("Subtask %d for %s", j+1, titleBase),
				Done: rng.Float64() > 0.5,
			})
		}

		tasks = append(tasks, models.Task{
			ID:          id,
			Title:       fmt.Sprintf("%s - %d", titleBase, i+1),
			Description: fmt.Sprintf("Detailed requirements and steps for completing task %d.", i+1),
			ProjectID:   project.ID,
			Status:      seedStatuses[rng.Intn(len(seedStatuses))],
			Priority:    seedPriorities[rng.Intn(len(seedPriorities))],
			Assignee:    team[rng.Intn(len(team))].ID,
			DueDate:     now.Add(dueOffset),
			CreatedAt:   now.Add(-time.Duration(rng.Float64() * 30 * float64(day))),
			Subtasks:    subtasks,
		})
	}

	activity := make([]models.ActivityEntry, 0, seedActivityCount)
	for i := 0; i < seedActivityCount; i++ {
		task := tasks[rng.Intn(len(tasks))]
		offset := time.Duration(rng.Int63n(int64(30 * day)))
		ts := now.Add(-offset).UnixMilli()

		action := seedActions[rng.Intn(len(seedActions))]
		detail := ""
		switch action {
		case "moved":
			detail = fmt.Sprintf("to %s", seedStatuses[rng.Intn(len(seedStatuses))])
		case "assigned":
			detail = "to themselves"
		case "updated priority of":
			detail = fmt.Sprintf("to %s", seedPriorities[rng.Intn(len(seedPriorities))])
		}

		activity = append(activity, models.ActivityEntry{
			ID:        fmt.Sprintf("a%d", i+1),
			User:      team[rng.Intn(len(team))].ID,
			Action:    action,
			Target:    task.Title,
			Detail:    detail,
			Time:      RelativeLabel(ts, now),
			Timestamp: ts,
		})
	}
	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Timestamp > activity[j].Timestamp
	})

	return &models.Snapshot{
		SchemaVersion: models.SnapshotSchemaVersion,
		Projects:      projects,
		Tasks:         tasks,
		Team:          team,
		Activity:      activity,
		User:          nil,
	}
}
