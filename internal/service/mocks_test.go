package service_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/goal-cascade-api/internal/domain"
)

type mockGoalRepo struct {
	goals  map[int64]*domain.Goal
	nextID int64
}

func newMockGoalRepo() *mockGoalRepo {
	return &mockGoalRepo{
		goals:  make(map[int64]*domain.Goal),
		nextID: 1,
	}
}

func (m *mockGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	goal.ID = m.nextID
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}
	m.nextID++
	stored := *goal
	m.goals[goal.ID] = &stored
	return nil
}

func (m *mockGoalRepo) GetByID(ctx context.Context, accountID, id int64) (*domain.Goal, error) {
	goal, ok := m.goals[id]
	if !ok || goal.AccountID != accountID {
		return nil, domain.ErrGoalNotFound
	}
	copied := *goal
	return &copied, nil
}

func (m *mockGoalRepo) Save(ctx context.Context, goal *domain.Goal) error {
	stored := *goal
	m.goals[goal.ID] = &stored
	return nil
}

func (m *mockGoalRepo) ActiveForEmployee(ctx context.Context, accountID, employeeID int64, asOf time.Time) ([]domain.Goal, error) {
	var result []domain.Goal
	for _, goal := range m.goals {
		if goal.AccountID != accountID {
			continue
		}
		if goal.EmployeeID == nil || *goal.EmployeeID != employeeID {
			continue
		}
		if goal.StartDate.After(asOf) || goal.DueDate.Before(asOf) {
			continue
		}
		if goal.Status == domain.StatusCancelled || goal.Weight <= 0 {
			continue
		}
		result = append(result, *goal)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockGoalRepo) ListByAccount(ctx context.Context, accountID int64) ([]domain.Goal, error) {
	var result []domain.Goal
	for _, goal := range m.goals {
		if goal.AccountID == accountID {
			result = append(result, *goal)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockGoalRepo) Orphans(ctx context.Context, accountID int64) ([]domain.Goal, error) {
	var result []domain.Goal
	for _, goal := range m.goals {
		if goal.AccountID == accountID && goal.IsOrphan && !goal.IsTerminal() {
			result = append(result, *goal)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockGoalRepo) CompanyGoalsByPeriod(ctx context.Context, accountID int64, periodYear, depth int) ([]domain.Goal, error) {
	var result []domain.Goal
	for _, goal := range m.goals {
		if goal.AccountID == accountID && goal.Level == domain.LevelCompany && goal.PeriodYear == periodYear {
			copied := *goal
			m.attachChildren(&copied, depth)
			result = append(result, copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockGoalRepo) attachChildren(goal *domain.Goal, depth int) {
	if depth <= 0 {
		return
	}
	var children []domain.Goal
	for _, candidate := range m.goals {
		if candidate.ParentID != nil && *candidate.ParentID == goal.ID {
			copied := *candidate
			m.attachChildren(&copied, depth-1)
			children = append(children, copied)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].ID < children[j].ID })
	goal.Children = children
}

var errApplyFailed = errors.New("simulated transaction failure")

type mockProgressRepo struct {
	goalRepo    *mockGoalRepo
	entries     []domain.ProgressUpdate
	nextID      int64
	failOnApply bool
}

func newMockProgressRepo(goalRepo *mockGoalRepo) *mockProgressRepo {
	return &mockProgressRepo{goalRepo: goalRepo, nextID: 1}
}

// ApplyUpdate повторяет контракт настоящего репозитория: либо фиксируются
// и запись, и цель, либо ничего
func (m *mockProgressRepo) ApplyUpdate(ctx context.Context, goal *domain.Goal, entry *domain.ProgressUpdate) error {
	if m.failOnApply {
		return errApplyFailed
	}

	entry.ID = m.nextID
	m.nextID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.entries = append(m.entries, *entry)

	stored := *goal
	m.goalRepo.goals[goal.ID] = &stored
	return nil
}

func (m *mockProgressRepo) LatestBefore(ctx context.Context, goalID int64, asOf time.Time) (*domain.ProgressUpdate, error) {
	var latest *domain.ProgressUpdate
	for i := range m.entries {
		entry := &m.entries[i]
		if entry.GoalID != goalID || entry.CreatedAt.After(asOf) {
			continue
		}
		if latest == nil || entry.CreatedAt.After(latest.CreatedAt) ||
			(entry.CreatedAt.Equal(latest.CreatedAt) && entry.ID > latest.ID) {
			latest = entry
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (m *mockProgressRepo) ListByGoal(ctx context.Context, accountID, goalID int64) ([]domain.ProgressUpdate, error) {
	var result []domain.ProgressUpdate
	for _, entry := range m.entries {
		if entry.AccountID == accountID && entry.GoalID == goalID {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
