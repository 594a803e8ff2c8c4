package repository

import (
	"context"
	"time"

	"github.com/goal-cascade-api/internal/domain"
	"gorm.io/gorm"
)

// ProgressRepository определяет интерфейс для работы с журналом прогресса.
// Журнал append-only: интерфейс намеренно не содержит операций изменения
// или удаления записей.
type ProgressRepository interface {
	ApplyUpdate(ctx context.Context, goal *domain.Goal, entry *domain.ProgressUpdate) error
	LatestBefore(ctx context.Context, goalID int64, asOf time.Time) (*domain.ProgressUpdate, error)
	ListByGoal(ctx context.Context, accountID, goalID int64) ([]domain.ProgressUpdate, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository создаёт новый экземпляр репозитория
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// ApplyUpdate атомарно добавляет запись журнала и сохраняет
// денормализованные поля цели. Либо происходит и то и другое,
// либо ничего: наблюдатель никогда не увидит запись без цели
// или цель без записи.
func (r *progressRepository) ApplyUpdate(ctx context.Context, goal *domain.Goal, entry *domain.ProgressUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Save(goal).Error
	})
}

// LatestBefore возвращает последнюю запись журнала с created_at <= asOf.
// Возвращает (nil, nil), если записей до asOf не существует.
// При равных created_at побеждает запись с большим id.
func (r *progressRepository) LatestBefore(ctx context.Context, goalID int64, asOf time.Time) (*domain.ProgressUpdate, error) {
	var entry domain.ProgressUpdate
	err := r.db.WithContext(ctx).
		Where("goal_id = ? AND created_at <= ?", goalID, asOf).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *progressRepository) ListByGoal(ctx context.Context, accountID, goalID int64) ([]domain.ProgressUpdate, error) {
	var entries []domain.ProgressUpdate
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND goal_id = ?", accountID, goalID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}
