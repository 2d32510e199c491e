package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"proflow/models"
)

// The AI engine is a set of rule-based heuristics over the current snapshot.
// Every function is pure: no state between calls, recomputed in full on each
// invocation. Fine at a few thousand tasks, not designed for unbounded scale.

func daysLeft(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

func overdue(task models.Task, now time.Time) bool {
	return task.Status != models.StatusDone && task.DueDate.Before(now)
}

// GeneratePrioritySuggestions flags non-done tasks whose priority lags their
// deadline. Returns at most 5 suggestions in task order; the order is part of
// the contract, not an accident.
func GeneratePrioritySuggestions(tasks []models.Task, now time.Time) []models.PrioritySuggestion {
	suggestions := []models.PrioritySuggestion{}

	for _, task := range tasks {
		if task.Status == models.StatusDone {
			continue
		}
		left := daysLeft(task.DueDate, now)

		if left < 0 && task.Priority != models.PriorityUrgent {
			suggestions = append(suggestions, models.PrioritySuggestion{
				Type:        "priority-escalation",
				Severity:    models.SeverityCritical,
				TaskID:      task.ID,
				Title:       fmt.Sprintf("Escalate %q to Urgent", task.Title),
				Description: fmt.Sprintf("This task is %d days overdue and currently marked as %s. Consider escalating priority.", -left, task.Priority),
				Color:       "#ef4444",
			})
		} else if left >= 0 && left <= 3 && task.Priority == models.PriorityLow {
			suggestions = append(suggestions, models.PrioritySuggestion{
				Type:        "priority-escalation",
				Severity:    models.SeverityWarning,
				TaskID:      task.ID,
				Title:       fmt.Sprintf("Increase priority of %q", task.Title),
				Description: fmt.Sprintf("Due in %d days but marked as low priority. Consider bumping to medium or high.", left),
				Color:       "#f59e0b",
			})
		}
	}

	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

// AnalyzeWorkload counts non-done tasks per member and flags members far
// above the mean (overloaded) or with nothing assigned (idle). With no team
// members there is nothing to compute and the report is empty.
func AnalyzeWorkload(tasks []models.Task, team []models.TeamMember, now time.Time) models.WorkloadReport {
	report := models.WorkloadReport{
		Workload:    []models.WorkloadEntry{},
		Suggestions: []models.WorkloadSuggestion{},
	}
	if len(team) == 0 {
		return report
	}

	byMember := make(map[string]int, len(team))
	for i, m := range team {
		byMember[m.ID] = i
		report.Workload = append(report.Workload, models.WorkloadEntry{Member: m})
	}

	for _, task := range tasks {
		if task.Assignee == "" || task.Status == models.StatusDone {
			continue
		}
		idx, ok := byMember[task.Assignee]
		if !ok {
			continue
		}
		report.Workload[idx].Total++
		if task.Status == models.StatusInProgress {
			report.Workload[idx].Active++
		}
		if task.DueDate.Before(now) {
			report.Workload[idx].Overdue++
		}
	}

	sum := 0
	for _, e := range report.Workload {
		sum += e.Total
	}
	avg := float64(sum) / float64(len(report.Workload))
	if avg == 0 {
		avg = 1
	}

	for _, e := range report.Workload {
		if float64(e.Total) > avg*1.5 && e.Total >= 3 {
			report.Suggestions = append(report.Suggestions, models.WorkloadSuggestion{
				Type:        "workload-high",
				MemberID:    e.Member.ID,
				Title:       fmt.Sprintf("%s is overloaded", e.Member.Name),
				Description: fmt.Sprintf("Has %d tasks (avg: %d). Consider redistributing some tasks.", e.Total, int(math.Round(avg))),
				Color:       "#ef4444",
			})
		}
		if e.Total == 0 {
			report.Suggestions = append(report.Suggestions, models.WorkloadSuggestion{
				Type:        "workload-low",
				MemberID:    e.Member.ID,
				Title:       fmt.Sprintf("%s has no tasks", e.Member.Name),
				Description: "Available for new assignments. Consider assigning some tasks from overloaded members.",
				Color:       "#10b981",
			})
		}
	}

	if len(report.Suggestions) > 4 {
		report.Suggestions = report.Suggestions[:4]
	}
	return report
}

// DetectRisks evaluates four independent signals and returns the five
// highest-scoring ones, sorted by non-increasing score.
func DetectRisks(tasks []models.Task, projects []models.Project, now time.Time) []models.Risk {
	risks := []models.Risk{}

	overdueCount := 0
	for _, t := range tasks {
		if overdue(t, now) {
			overdueCount++
		}
	}
	if overdueCount > 0 {
		score := overdueCount*2 + 3
		if score > 10 {
			score = 10
		}
		risks = append(risks, models.Risk{
			Title:       fmt.Sprintf("%d overdue task%s", overdueCount, plural(int64(overdueCount))),
			Description: "Tasks past their deadline need immediate attention.",
			Score:       score,
			Color:       "#ef4444",
		})
	}

	for _, p := range projects {
		total := 0
		done := 0
		for _, t := range tasks {
			if t.ProjectID != p.ID {
				continue
			}
			total++
			if t.Status == models.StatusDone {
				done++
			}
		}
		if total > 2 && done == 0 {
			risks = append(risks, models.Risk{
				Title:       fmt.Sprintf("%q has no completed tasks", p.Name),
				Description: fmt.Sprintf("%d tasks created but none completed. May be blocked or deprioritized.", total),
				Score:       6,
				Color:       "#f59e0b",
			})
		}
	}

	urgentCount := 0
	for _, t := range tasks {
		if t.Priority == models.PriorityUrgent && t.Status != models.StatusDone {
			urgentCount++
		}
	}
	if urgentCount >= 3 {
		risks = append(risks, models.Risk{
			Title:       fmt.Sprintf("%d urgent tasks active", urgentCount),
			Description: "High number of urgent tasks may indicate scope issues or poor prioritization.",
			Score:       7,
			Color:       "#f97316",
		})
	}

	unassignedCount := 0
	for _, t := range tasks {
		if t.Assignee == "" && t.Status != models.StatusDone {
			unassignedCount++
		}
	}
	if unassignedCount > 0 {
		risks = append(risks, models.Risk{
			Title:       fmt.Sprintf("%d unassigned task%s", unassignedCount, plural(int64(unassignedCount))),
			Description: "Tasks without owners risk being forgotten. Assign them to team members.",
			Score:       4,
			Color:       "#06b6d4",
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Score > risks[j].Score
	})
	if len(risks) > 5 {
		risks = risks[:5]
	}
	return risks
}

// GenerateSmartSuggestions emits process hints: tasks worth breaking down,
// review bottlenecks, backlog size, and deadline clustering. Returns at most
// 6 in generation order.
func GenerateSmartSuggestions(tasks []models.Task, projects []models.Project, team []models.TeamMember) []models.Suggestion {
	suggestions := []models.Suggestion{}

	active := []models.Task{}
	for _, t := range tasks {
		if t.Status != models.StatusDone {
			active = append(active, t)
		}
	}

	for _, t := range active {
		if len(t.Subtasks) == 0 && t.Priority != models.PriorityLow {
			suggestions = append(suggestions, models.Suggestion{
				Title:       fmt.Sprintf("Break down %q", t.Title),
				Description: "This task has no subtasks. Breaking it into smaller pieces improves tracking and completion rate.",
				Icon:        "split",
				Color:       "#3b82f6",
			})
		}
	}

	reviewCount := 0
	for _, t := range tasks {
		if t.Status == models.StatusReview {
			reviewCount++
		}
	}
	if reviewCount >= 2 {
		suggestions = append(suggestions, models.Suggestion{
			Title:       "Review bottleneck detected",
			Description: fmt.Sprintf("%d tasks waiting for review. Schedule a review session to unblock progress.", reviewCount),
			Icon:        "eye",
			Color:       "#7c3aed",
		})
	}

	todoCount := 0
	for _, t := range tasks {
		if t.Status == models.StatusTodo {
			todoCount++
		}
	}
	if todoCount > 5 {
		suggestions = append(suggestions, models.Suggestion{
			Title:       "Prioritize your backlog",
			Description: fmt.Sprintf("%d tasks in Todo. Consider a planning session to prioritize and assign.", todoCount),
			Icon:        "list",
			Color:       "#06b6d4",
		})
	}

	// Group active tasks by exact due date, keeping first-seen date order so
	// the output is deterministic.
	dateOrder := []string{}
	dateCounts := map[string]int{}
	for _, t := range active {
		key := t.DueDate.Format("2006-01-02")
		if _, seen := dateCounts[key]; !seen {
			dateOrder = append(dateOrder, key)
		}
		dateCounts[key]++
	}
	for _, key := range dateOrder {
		if dateCounts[key] >= 3 {
			date, _ := time.Parse("2006-01-02", key)
			suggestions = append(suggestions, models.Suggestion{
				Title:       fmt.Sprintf("Deadline clustering on %s", date.Format("Jan 2, 2006")),
				Description: fmt.Sprintf("%d tasks due on the same day. Consider staggering deadlines to avoid crunch.", dateCounts[key]),
				Icon:        "calendar",
				Color:       "#f59e0b",
			})
		}
	}

	if len(suggestions) > 6 {
		suggestions = suggestions[:6]
	}
	return suggestions
}

// GetProductivityScore scores completion against overdue pressure on a 0-100
// scale. An empty task list yields the neutral no-data result.
func GetProductivityScore(tasks []models.Task, now time.Time) models.ProductivityScore {
	total := len(tasks)
	if total == 0 {
		return models.ProductivityScore{Score: 0, Label: "No Data", Color: "#64748b"}
	}

	done := 0
	overdueCount := 0
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			done++
		} else if t.DueDate.Before(now) {
			overdueCount++
		}
	}

	score := int(math.Round(float64(done) / float64(total) * 100))
	score -= overdueCount * 5
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var label, color string
	switch {
	case score >= 80:
		label, color = "Excellent", "#10b981"
	case score >= 60:
		label, color = "Good", "#3b82f6"
	case score >= 40:
		label, color = "Average", "#f59e0b"
	default:
		label, color = "Needs Improvement", "#ef4444"
	}

	return models.ProductivityScore{Score: score, Label: label, Color: color}
}
