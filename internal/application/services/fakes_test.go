package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/ports"
)

// In-memory repositories reproducing the storage layer's conditional-write
// semantics so the services can be tested without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, filter ports.UserFilter) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.User
	for _, user := range r.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		cp := *user
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context, filter ports.UserFilter) (int64, error) {
	users, _ := r.List(context.Background(), filter)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) Leaderboard(_ context.Context, orderBy ports.LeaderboardOrder, limit int) ([]*entities.User, error) {
	users, _ := r.List(context.Background(), ports.UserFilter{})
	sort.Slice(users, func(i, j int) bool {
		switch orderBy {
		case ports.LeaderboardByRating:
			return users[i].Rating > users[j].Rating
		case ports.LeaderboardByCompleted:
			return users[i].TasksCompleted > users[j].TasksCompleted
		default:
			return users[i].RewardPoints > users[j].RewardPoints
		}
	})
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

type fakeTaskRepo struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]*entities.Task
	users  *fakeUserRepo
}

func newFakeTaskRepo(users *fakeUserRepo) *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1, tasks: make(map[int]*entities.Task), users: users}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = r.nextID
	r.nextID++
	task.CreatedAt = time.Now().UTC()
	task.UpdatedAt = task.CreatedAt
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

func (r *fakeTaskRepo) List(_ context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Task
	for _, task := range r.tasks {
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.ProjectID != nil && (task.ProjectID == nil || *task.ProjectID != *filter.ProjectID) {
			continue
		}
		if filter.AssigneeID != nil && (task.AssigneeID == nil || *task.AssigneeID != *filter.AssigneeID) {
			continue
		}
		cp := *task
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTaskRepo) GetOverdue(_ context.Context, assigneeID uuid.UUID, now time.Time) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Task
	for _, task := range r.tasks {
		if task.AssigneeID == nil || *task.AssigneeID != assigneeID {
			continue
		}
		if task.IsOverdue(now) {
			cp := *task
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id int, status entities.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return entities.ErrTaskNotFound
	}
	task.Status = status
	if status != entities.TaskStatusDone {
		task.CompletedAt = nil
	}
	task.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeTaskRepo) Complete(_ context.Context, id int, completedAt time.Time, award *ports.CompletionAward) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return false, entities.ErrTaskNotFound
	}
	if task.Status == entities.TaskStatusDone {
		return false, nil
	}

	if award != nil {
		r.users.mu.Lock()
		user, ok := r.users.users[award.UserID]
		if !ok {
			r.users.mu.Unlock()
			return false, entities.ErrUserNotFound
		}
		if user.TasksCompleted != award.ExpectedTasksCompleted {
			r.users.mu.Unlock()
			return false, entities.ErrConcurrentUpdate
		}
		user.RewardPoints += award.Points
		user.TasksCompleted = award.TasksCompleted
		user.Rating = award.Rating
		r.users.mu.Unlock()
	}

	task.Status = entities.TaskStatusDone
	ts := completedAt
	task.CompletedAt = &ts
	task.UpdatedAt = completedAt
	return true, nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	nextID   int
	projects map[int]*entities.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{nextID: 1, projects: make(map[int]*entities.Project)}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *entities.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	project.ID = r.nextID
	r.nextID++
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id int) (*entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[id]
	if !ok {
		return nil, entities.ErrProjectNotFound
	}
	cp := *project
	return &cp, nil
}

func (r *fakeProjectRepo) List(_ context.Context, filter ports.ProjectFilter) ([]*entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Project
	for _, project := range r.projects {
		if filter.Status != nil && project.Status != *filter.Status {
			continue
		}
		cp := *project
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProjectRepo) IncrementTotalTasks(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[id]
	if !ok {
		return entities.ErrProjectNotFound
	}
	project.TotalTasks++
	return nil
}

func (r *fakeProjectRepo) IncrementCompletedTasks(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[id]
	if !ok {
		return entities.ErrProjectNotFound
	}
	project.CompletedTasks++
	return nil
}

type fakeRewardRepo struct {
	mu     sync.Mutex
	nextID int
	claims []*entities.ClaimedReward
	users  *fakeUserRepo
}

func newFakeRewardRepo(users *fakeUserRepo) *fakeRewardRepo {
	return &fakeRewardRepo{nextID: 1, users: users}
}

func (r *fakeRewardRepo) Claim(_ context.Context, claim *entities.ClaimedReward) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users.mu.Lock()
	user, ok := r.users.users[claim.UserID]
	if !ok || user.RewardPoints < claim.Cost {
		r.users.mu.Unlock()
		return entities.ErrInsufficientPoints
	}
	user.RewardPoints -= claim.Cost
	r.users.mu.Unlock()

	claim.ID = r.nextID
	r.nextID++
	claim.ClaimedAt = time.Now().UTC()
	cp := *claim
	r.claims = append(r.claims, &cp)
	return nil
}

func (r *fakeRewardRepo) GetUserClaims(_ context.Context, userID uuid.UUID) ([]*entities.ClaimedReward, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.ClaimedReward
	for _, claim := range r.claims {
		if claim.UserID == userID {
			cp := *claim
			out = append(out, &cp)
		}
	}
	return out, nil
}
