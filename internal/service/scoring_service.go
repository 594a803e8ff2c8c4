package service

import (
	"context"
	"math"
	"time"

	"github.com/goal-cascade-api/internal/dto"
	"github.com/goal-cascade-api/internal/repository"
)

// ScoringService определяет интерфейс движка темпоральной реконструкции.
// Чисто читающий: никогда не изменяет ни цели, ни журнал.
type ScoringService interface {
	GetEmployeeGoalsScore(ctx context.Context, accountID, employeeID int64, asOf time.Time) (*dto.ScoreResponse, error)
}

type scoringService struct {
	goalRepo     repository.GoalRepository
	progressRepo repository.ProgressRepository
}

// NewScoringService создаёт новый экземпляр сервиса
func NewScoringService(goalRepo repository.GoalRepository, progressRepo repository.ProgressRepository) ScoringService {
	return &scoringService{
		goalRepo:     goalRepo,
		progressRepo: progressRepo,
	}
}

// GetEmployeeGoalsScore восстанавливает балл сотрудника на момент asOf,
// воспроизводя журнал прогресса. Записи, добавленные после asOf,
// на ответ не влияют: прошлый ответ никогда не меняется.
func (s *scoringService) GetEmployeeGoalsScore(ctx context.Context, accountID, employeeID int64, asOf time.Time) (*dto.ScoreResponse, error) {
	goals, err := s.goalRepo.ActiveForEmployee(ctx, accountID, employeeID, asOf)
	if err != nil {
		return nil, err
	}

	result := &dto.ScoreResponse{
		Details: []dto.GoalScoreDetail{},
	}

	var weightedSum float64
	for i := range goals {
		goal := &goals[i]

		entry, err := s.progressRepo.LatestBefore(ctx, goal.ID, asOf)
		if err != nil {
			return nil, err
		}

		// Без записей до asOf исторический прогресс равен 0:
		// отсутствие обновлений означает отсутствие зафиксированного
		// движения, независимо от номинального стартового значения
		historical := 0.0
		if entry != nil {
			historical = entry.NewProgress
		}

		weighted := historical * float64(goal.Weight) / 100

		result.Details = append(result.Details, dto.GoalScoreDetail{
			GoalID:             goal.ID,
			Name:               goal.Name,
			Weight:             goal.Weight,
			HistoricalProgress: historical,
			WeightedScore:      weighted,
		})

		result.GoalsCount++
		result.TotalWeight += goal.Weight
		if historical >= 100 {
			result.CompletedCount++
		}
		weightedSum += weighted
	}

	// Нет подходящих целей - валидное нулевое состояние, не ошибка
	if result.TotalWeight == 0 {
		return result, nil
	}

	score := int(math.Round(weightedSum / float64(result.TotalWeight) * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	result.Score = score

	return result, nil
}
