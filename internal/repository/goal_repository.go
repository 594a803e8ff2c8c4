package repository

import (
	"context"
	"time"

	"github.com/goal-cascade-api/internal/domain"
	"gorm.io/gorm"
)

// GoalRepository определяет интерфейс для работы с хранилищем целей
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	GetByID(ctx context.Context, accountID, id int64) (*domain.Goal, error)
	Save(ctx context.Context, goal *domain.Goal) error
	ActiveForEmployee(ctx context.Context, accountID, employeeID int64, asOf time.Time) ([]domain.Goal, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Goal, error)
	Orphans(ctx context.Context, accountID int64) ([]domain.Goal, error)
	CompanyGoalsByPeriod(ctx context.Context, accountID int64, periodYear, depth int) ([]domain.Goal, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository создаёт новый экземпляр репозитория
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) GetByID(ctx context.Context, accountID, id int64) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&goal, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

// ActiveForEmployee возвращает цели сотрудника, активные на момент asOf:
// окно действия накрывает asOf, цель не отменена и участвует в оценке
// (weight > 0)
func (r *goalRepository) ActiveForEmployee(ctx context.Context, accountID, employeeID int64, asOf time.Time) ([]domain.Goal, error) {
	var goals []domain.Goal
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND employee_id = ?", accountID, employeeID).
		Where("start_date <= ? AND due_date >= ?", asOf, asOf).
		Where("status != ?", domain.StatusCancelled).
		Where("weight > 0").
		Order("id ASC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Goal, error) {
	var goals []domain.Goal
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id ASC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepository) Orphans(ctx context.Context, accountID int64) ([]domain.Goal, error) {
	var goals []domain.Goal
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND is_orphan = ?", accountID, true).
		Where("status NOT IN ?", []domain.GoalStatus{domain.StatusCompleted, domain.StatusCancelled}).
		Order("id ASC").
		Find(&goals).Error
	return goals, err
}

// CompanyGoalsByPeriod возвращает корпоративные цели периода с жадно
// загруженными детьми на ограниченную глубину
func (r *goalRepository) CompanyGoalsByPeriod(ctx context.Context, accountID int64, periodYear, depth int) ([]domain.Goal, error) {
	var goals []domain.Goal
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND level = ? AND period_year = ?", accountID, domain.LevelCompany, periodYear).
		Order("id ASC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}

	for i := range goals {
		if err := r.loadChildren(ctx, &goals[i], depth); err != nil {
			return nil, err
		}
	}

	return goals, nil
}

// loadChildren рекурсивно загружает дочерние цели до заданной глубины
func (r *goalRepository) loadChildren(ctx context.Context, goal *domain.Goal, depth int) error {
	if depth <= 0 {
		return nil
	}

	var children []domain.Goal
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND parent_id = ?", goal.AccountID, goal.ID).
		Order("id ASC").
		Find(&children).Error
	if err != nil {
		return err
	}

	for i := range children {
		if err := r.loadChildren(ctx, &children[i], depth-1); err != nil {
			return err
		}
	}

	goal.Children = children
	return nil
}
