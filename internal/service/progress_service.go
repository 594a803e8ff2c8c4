package service

import (
	"context"
	"time"

	"github.com/goal-cascade-api/internal/domain"
	"github.com/goal-cascade-api/internal/dto"
	"github.com/goal-cascade-api/internal/repository"
)

// ProgressService определяет интерфейс транзактора обновления прогресса.
// Это единственный путь, по которому меняется текущее значение цели.
type ProgressService interface {
	UpdateProgress(ctx context.Context, goalID int64, req *dto.UpdateProgressRequest) (*domain.Goal, error)
	History(ctx context.Context, accountID, goalID int64) ([]domain.ProgressUpdate, error)
}

type progressService struct {
	goalRepo     repository.GoalRepository
	progressRepo repository.ProgressRepository
}

// NewProgressService создаёт новый экземпляр сервиса
func NewProgressService(goalRepo repository.GoalRepository, progressRepo repository.ProgressRepository) ProgressService {
	return &progressService{
		goalRepo:     goalRepo,
		progressRepo: progressRepo,
	}
}

// UpdateProgress выполняет пятишаговый контракт обновления как одно целое:
// загрузка цели, расчёт прогресса, вывод статуса, добавление записи журнала
// и сохранение денормализованных полей. Запись и поля цели фиксируются
// в одной транзакции: частичное состояние не наблюдаемо.
func (s *progressService) UpdateProgress(ctx context.Context, goalID int64, req *dto.UpdateProgressRequest) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, req.AccountID, goalID)
	if err != nil {
		return nil, err
	}

	if goal.Status == domain.StatusCancelled {
		return nil, domain.ErrGoalCancelled
	}

	newValue := *req.NewValue
	newProgress := domain.CalculateProgress(goal.MetricType, goal.StartValue, goal.TargetValue, newValue)

	now := time.Now()
	newStatus := domain.DeriveStatus(newProgress, goal.StartDate, goal.DueDate, now)

	entry := &domain.ProgressUpdate{
		AccountID:        goal.AccountID,
		GoalID:           goal.ID,
		PreviousValue:    goal.CurrentValue,
		NewValue:         newValue,
		PreviousProgress: goal.Progress,
		NewProgress:      newProgress,
		Comment:          req.Comment,
		Evidence:         req.Evidence,
		UpdatedByID:      req.UpdatedByID,
		CreatedAt:        now,
	}

	// completed_at выставляется ровно при переходе в COMPLETED
	// и сбрасывается, если коррекция выводит цель из COMPLETED
	if newStatus == domain.StatusCompleted && goal.Status != domain.StatusCompleted {
		goal.CompletedAt = &now
	}
	if newStatus != domain.StatusCompleted && goal.Status == domain.StatusCompleted {
		goal.CompletedAt = nil
	}

	goal.CurrentValue = newValue
	goal.Progress = newProgress
	goal.Status = newStatus

	if err := s.progressRepo.ApplyUpdate(ctx, goal, entry); err != nil {
		return nil, err
	}

	return goal, nil
}

// History возвращает журнал прогресса цели в порядке воспроизведения
func (s *progressService) History(ctx context.Context, accountID, goalID int64) ([]domain.ProgressUpdate, error) {
	if _, err := s.goalRepo.GetByID(ctx, accountID, goalID); err != nil {
		return nil, err
	}

	return s.progressRepo.ListByGoal(ctx, accountID, goalID)
}
