package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"proflow/logging"
	"proflow/models"
	"proflow/persistence"

	"github.com/google/uuid"
)

// StoreService is the authoritative owner of all entity collections. It is
// the sole writer: every mutation builds a fresh snapshot and swaps it in
// atomically, so readers never observe a half-updated entity. Persistence is
// best-effort and fire-and-forget; a mutation succeeds whether or not the
// durable write does.
type StoreService struct {
	mu             sync.RWMutex
	snapshot       *models.Snapshot
	membersByID    map[string]models.TeamMember
	tasksByProject map[string][]models.Task
	recorder       *ActivityRecorder
	repository     persistence.SnapshotRepository
	listeners      []func(*models.Snapshot)

	now func() time.Time
}

// NewStoreService restores the persisted snapshot if one exists and is
// usable, otherwise seeds fresh sample data. A snapshot is discarded when it
// fails to decode, carries a different schema version, or holds fewer
// projects than the seed size (stale sample data from an older build).
func NewStoreService(repository persistence.SnapshotRepository) *StoreService {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot, err := repository.Load(ctx)
	if err != nil {
		logging.Logger.Warnf("Event ID: SNAPSHOT_LOAD_FAILED, Description: Failed to load persisted snapshot, reseeding: %v", err)
		snapshot = nil
	}
	if snapshot != nil && snapshot.SchemaVersion != models.SnapshotSchemaVersion {
		logging.Logger.Infof("Event ID: SNAPSHOT_DISCARDED, Description: Persisted snapshot has schema version %d, expected %d, reseeding", snapshot.SchemaVersion, models.SnapshotSchemaVersion)
		snapshot = nil
	}
	if snapshot != nil && len(snapshot.Projects) < SeedProjectCount {
		logging.Logger.Infof("Event ID: SNAPSHOT_DISCARDED, Description: Persisted snapshot holds %d projects, below seed size %d, reseeding", len(snapshot.Projects), SeedProjectCount)
		snapshot = nil
	}
	if snapshot == nil {
		snapshot = GenerateSeedData(DefaultSeed, time.Now())
	}

	return NewStoreServiceFromSnapshot(repository, snapshot)
}

// NewStoreServiceFromSnapshot starts the store from an explicit snapshot,
// bypassing the load heuristic. Tests build small fixtures through this.
func NewStoreServiceFromSnapshot(repository persistence.SnapshotRepository, snapshot *models.Snapshot) *StoreService {
	s := &StoreService{
		recorder:   NewActivityRecorder(),
		repository: repository,
		now:        time.Now,
	}
	snapshot.SchemaVersion = models.SnapshotSchemaVersion
	// Seed the recorder's clock from the newest restored entry so a skewed
	// wall clock cannot break the non-increasing timestamp order.
	if len(snapshot.Activity) > 0 {
		s.recorder.lastTS = snapshot.Activity[0].Timestamp
	}
	s.swap(snapshot)
	return s
}

// Subscribe registers a listener invoked with the new snapshot after every
// successful mutation. Listeners run outside the store lock.
func (s *StoreService) Subscribe(fn func(*models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns the current state. The returned value is an immutable
// view: mutations never touch an already-published snapshot.
func (s *StoreService) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// CreateProject validates and appends a new project, recording a
// "created project" activity entry.
func (s *StoreService) CreateProject(input models.Project) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &models.ValidationError{Field: "name", Message: "project name is required"}
	}

	s.mu.Lock()
	project := input
	project.ID = uuid.New().String()
	project.CreatedAt = s.now()
	if project.Members == nil {
		project.Members = []string{}
	}

	next := s.clone()
	next.Projects = append(next.Projects, project)
	next.Activity = s.recorder.Append(next.Activity, s.actorID(), "created project", project.Name, "", s.now())
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
	return &project, nil
}

// UpdateProject merges the patch onto the stored project field by field.
func (s *StoreService) UpdateProject(id string, patch models.ProjectPatch) (*models.Project, error) {
	s.mu.Lock()
	idx := s.projectIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, &models.NotFoundError{Kind: "project", ID: id}
	}

	next := s.clone()
	project := next.Projects[idx]
	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Color != nil {
		project.Color = *patch.Color
	}
	if patch.Deadline != nil {
		deadline := *patch.Deadline
		project.Deadline = &deadline
	}
	if patch.Members != nil {
		project.Members = append([]string(nil), (*patch.Members)...)
	}
	next.Projects[idx] = project
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
	return &project, nil
}

// DeleteProject removes the project and, in the same logical operation,
// every task that references it. No activity entry is recorded for
// deletions.
func (s *StoreService) DeleteProject(id string) error {
	s.mu.Lock()
	if s.projectIndex(id) < 0 {
		s.mu.Unlock()
		return &models.NotFoundError{Kind: "project", ID: id}
	}

	next := s.clone()
	projects := make([]models.Project, 0, len(next.Projects)-1)
	for _, p := range next.Projects {
		if p.ID != id {
			projects = append(projects, p)
		}
	}
	tasks := make([]models.Task, 0, len(next.Tasks))
	for _, t := range next.Tasks {
		if t.ProjectID != id {
			tasks = append(tasks, t)
		}
	}
	next.Projects = projects
	next.Tasks = tasks
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
	return nil
}

// CreateTask validates and appends a new task, recording a "created task"
// activity entry. The project reference must exist.
func (s *StoreService) CreateTask(input models.Task) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &models.ValidationError{Field: "title", Message: "task title is required"}
	}
	if input.Status != "" && !models.ValidStatus(input.Status) {
		return nil, &models.ValidationError{Field: "status", Message: "unknown task status"}
	}
	if err := validateSubtasks(input.Subtasks); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.projectIndex(input.ProjectID) < 0 {
		s.mu.Unlock()
		return nil, &models.NotFoundError{Kind: "project", ID: input.ProjectID}
	}

	task := input
	task.ID = uuid.New().String()
	task.CreatedAt = s.now()
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Subtasks == nil {
		task.Subtasks = []models.Subtask{}
	}

	next := s.clone()
	next.Tasks = append(next.Tasks, task)
	next.Activity = s.recorder.Append(next.Activity, s.actorID(), "created task", task.Title, "", s.now())
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
	return &task, nil
}

// UpdateTask merges the patch onto the stored task field by field. Changing
// the project reference is only allowed to an existing project.
func (s *StoreService) UpdateTask(id string, patch models.TaskPatch) (*models.Task, error) {
	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		return nil, &models.ValidationError{Field: "status", Message: "unknown task status"}
	}
	if patch.Subtasks != nil {
		if err := validateSubtasks(*patch.Subtasks); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	idx := s.taskIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, &models.NotFoundError{Kind: "task", ID: id}
	}
	if patch.ProjectID != nil && s.projectIndex(*patch.ProjectID) < 0 {
		s.mu.Unlock()
		return nil, &models.NotFoundError{Kind: "project", ID: *patch.ProjectID}
	}

	next := s.clone()
	task := next.Tasks[idx]
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.ProjectID != nil {
		task.ProjectID = *patch.ProjectID
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Assignee != nil {
		task.Assignee = *patch.Assignee
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Subtasks != nil {
		task.Subtasks = append([]models.Subtask(nil), (*patch.Subtasks)...)
	}
	next.Tasks[idx] = task
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
	return &task, nil
}

// DeleteTask removes a single task.
func (s *StoreService) DeleteTask(id string) error {
	s.mu.Lock()
	idx := s.taskIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return &models.NotFoundError{Kind: "task", ID: id}
	}

	next := s.clone()
	tasks := make([]models.Task, 0, len(next.Tasks)-1)
	for _, t := range next.Tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	next.Tasks = tasks
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
	return nil
}

// MoveTask changes the status of a task and nothing else. This is the
// drag-and-drop boundary: a (taskId, destinationStatus) pair maps straight
// onto it.
func (s *StoreService) MoveTask(id string, status models.TaskStatus) (*models.Task, error) {
	if !models.ValidStatus(status) {
		return nil, &models.ValidationError{Field: "status", Message: "unknown task status"}
	}
	return s.UpdateTask(id, models.TaskPatch{Status: &status})
}

// AddSubtask appends a subtask to the end of the task's list.
func (s *StoreService) AddSubtask(taskID, text string) (*models.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &models.ValidationError{Field: "text", Message: "subtask text is required"}
	}

	s.mu.Lock()
	idx := s.taskIndex(taskID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, &models.NotFoundError{Kind: "task", ID: taskID}
	}

	next := s.clone()
	task := next.Tasks[idx]
	subtasks := append([]models.Subtask(nil), task.Subtasks...)
	subtasks = append(subtasks, models.Subtask{
		ID:   uuid.New().String(),
		Text: strings.TrimSpace(text),
		Done: false,
	})
	task.Subtasks = subtasks
	next.Tasks[idx] = task
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
	return &task, nil
}

// ToggleSubtask flips the done flag of one subtask. The remaining subtasks
// keep their positions.
func (s *StoreService) ToggleSubtask(taskID, subtaskID string) (*models.Task, error) {
	s.mu.Lock()
	idx := s.taskIndex(taskID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, &models.NotFoundError{Kind: "task", ID: taskID}
	}

	next := s.clone()
	task := next.Tasks[idx]
	subtasks := append([]models.Subtask(nil), task.Subtasks...)
	found := false
	for i, sub := range subtasks {
		if sub.ID == subtaskID {
			subtasks[i].Done = !sub.Done
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return nil, &models.NotFoundError{Kind: "subtask", ID: subtaskID}
	}
	task.Subtasks = subtasks
	next.Tasks[idx] = task
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
	return &task, nil
}

// RemoveSubtask deletes one subtask. The remaining subtasks keep their
// relative order.
func (s *StoreService) RemoveSubtask(taskID, subtaskID string) (*models.Task, error) {
	s.mu.Lock()
	idx := s.taskIndex(taskID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, &models.NotFoundError{Kind: "task", ID: taskID}
	}

	next := s.clone()
	task := next.Tasks[idx]
	subtasks := make([]models.Subtask, 0, len(task.Subtasks))
	found := false
	for _, sub := range task.Subtasks {
		if sub.ID == subtaskID {
			found = true
			continue
		}
		subtasks = append(subtasks, sub)
	}
	if !found {
		s.mu.Unlock()
		return nil, &models.NotFoundError{Kind: "subtask", ID: subtaskID}
	}
	task.Subtasks = subtasks
	next.Tasks[idx] = task
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
	return &task, nil
}

// Login sets the current user. With an empty id the default rule applies:
// the first member whose role is "Project Manager", else the first member.
func (s *StoreService) Login(memberID string) (*models.TeamMember, error) {
	s.mu.Lock()
	var member *models.TeamMember
	if memberID == "" {
		for i := range s.snapshot.Team {
			if s.snapshot.Team[i].Role == "Project Manager" {
				m := s.snapshot.Team[i]
				member = &m
				break
			}
		}
		if member == nil && len(s.snapshot.Team) > 0 {
			m := s.snapshot.Team[0]
			member = &m
		}
		if member == nil {
			s.mu.Unlock()
			return nil, &models.NotFoundError{Kind: "member", ID: "(default)"}
		}
	} else {
		m, ok := s.membersByID[memberID]
		if !ok {
			s.mu.Unlock()
			return nil, &models.NotFoundError{Kind: "member", ID: memberID}
		}
		member = &m
	}

	next := s.clone()
	next.User = member
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
	return member, nil
}

// Logout clears the current user.
func (s *StoreService) Logout() {
	s.mu.Lock()
	next := s.clone()
	next.User = nil
	s.swapLocked(next)
	s.mu.Unlock()

	s.afterMutation(next)
}

// CurrentUser returns the logged-in member, or nil.
func (s *StoreService) CurrentUser() *models.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.User
}

// GetProjectTasks returns the tasks of one project from the per-snapshot
// index, not a scan.
func (s *StoreService) GetProjectTasks(projectID string) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasksByProject[projectID]
}

// GetTeamMember looks a member up by id.
func (s *StoreService) GetTeamMember(id string) (models.TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.membersByID[id]
	return m, ok
}

func (s *StoreService) projectIndex(id string) int {
	for i := range s.snapshot.Projects {
		if s.snapshot.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *StoreService) taskIndex(id string) int {
	for i := range s.snapshot.Tasks {
		if s.snapshot.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// actorID is the user stamped on activity entries: the logged-in member,
// else the first team member.
func (s *StoreService) actorID() string {
	if s.snapshot.User != nil {
		return s.snapshot.User.ID
	}
	if len(s.snapshot.Team) > 0 {
		return s.snapshot.Team[0].ID
	}
	return ""
}

// clone copies the snapshot and its collection slices so the mutation can
// edit freely without touching anything a reader may still hold. Team is
// immutable reference data and is shared.
func (s *StoreService) clone() *models.Snapshot {
	next := *s.snapshot
	next.Projects = append([]models.Project(nil), s.snapshot.Projects...)
	next.Tasks = append([]models.Task(nil), s.snapshot.Tasks...)
	next.Activity = append([]models.ActivityEntry(nil), s.snapshot.Activity...)
	return &next
}

func (s *StoreService) swap(next *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swapLocked(next)
}

func (s *StoreService) swapLocked(next *models.Snapshot) {
	s.snapshot = next

	membersByID := make(map[string]models.TeamMember, len(next.Team))
	for _, m := range next.Team {
		membersByID[m.ID] = m
	}
	s.membersByID = membersByID

	tasksByProject := make(map[string][]models.Task)
	for _, t := range next.Tasks {
		tasksByProject[t.ProjectID] = append(tasksByProject[t.ProjectID], t)
	}
	s.tasksByProject = tasksByProject
}

// afterMutation notifies subscribers and kicks off the durable write. The
// write is fire-and-forget: failures are logged, never surfaced, never
// retried.
func (s *StoreService) afterMutation(snapshot *models.Snapshot) {
	s.mu.RLock()
	listeners := append(([]func(*models.Snapshot))(nil), s.listeners...)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(snapshot)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repository.Save(ctx, snapshot); err != nil {
			logging.Logger.Warnf("Event ID: SNAPSHOT_SAVE_FAILED, Description: Failed to persist snapshot: %v", err)
		}
	}()
}

func validateSubtasks(subtasks []models.Subtask) error {
	seen := make(map[string]struct{}, len(subtasks))
	for _, sub := range subtasks {
		if _, dup := seen[sub.ID]; dup {
			return &models.ValidationError{Field: "subtasks", Message: "duplicate subtask id " + sub.ID}
		}
		seen[sub.ID] = struct{}{}
	}
	return nil
}
