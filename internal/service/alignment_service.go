package service

import (
	"context"
	"fmt"

	"github.com/goal-cascade-api/internal/domain"
	"github.com/goal-cascade-api/internal/dto"
	"github.com/goal-cascade-api/internal/repository"
)

// Пороговые значения эвристик отчёта о выравнивании
const (
	alignmentTreeDepth     = 2
	orphanRatioThreshold   = 30.0
	alignmentRateThreshold = 70.0
)

// AlignmentService определяет интерфейс аналитики выравнивания.
// Чисто читающий: никогда не изменяет хранилище.
type AlignmentService interface {
	DetectOrphans(ctx context.Context, accountID int64) ([]domain.Goal, error)
	GetAlignmentReport(ctx context.Context, accountID int64) (*dto.AlignmentReportResponse, error)
	GetAlignmentTree(ctx context.Context, accountID int64, periodYear int) ([]domain.Goal, error)
}

type alignmentService struct {
	goalRepo repository.GoalRepository
}

// NewAlignmentService создаёт новый экземпляр сервиса
func NewAlignmentService(goalRepo repository.GoalRepository) AlignmentService {
	return &alignmentService{goalRepo: goalRepo}
}

// DetectOrphans возвращает незакрытые цели-сироты аккаунта
func (s *alignmentService) DetectOrphans(ctx context.Context, accountID int64) ([]domain.Goal, error) {
	return s.goalRepo.Orphans(ctx, accountID)
}

// GetAlignmentReport считает цели по уровням, вычисляет долю выровненных
// и формирует рекомендации
func (s *alignmentService) GetAlignmentReport(ctx context.Context, accountID int64) (*dto.AlignmentReportResponse, error) {
	goals, err := s.goalRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	report := &dto.AlignmentReportResponse{
		CountsByLevel: map[string]int{
			string(domain.LevelCompany):    0,
			string(domain.LevelArea):       0,
			string(domain.LevelIndividual): 0,
		},
		Recommendations: []string{},
	}

	for i := range goals {
		report.TotalGoals++
		report.CountsByLevel[string(goals[i].Level)]++
		if goals[i].IsAligned {
			report.AlignedGoals++
		}
		if goals[i].IsOrphan {
			report.OrphanGoals++
		}
	}

	if report.TotalGoals > 0 {
		report.AlignmentRate = float64(report.AlignedGoals) / float64(report.TotalGoals) * 100
	}

	if report.CountsByLevel[string(domain.LevelCompany)] == 0 {
		report.Recommendations = append(report.Recommendations,
			"no company-level goals defined: the cascade should start from corporate objectives")
	}

	if report.TotalGoals > 0 {
		orphanRatio := float64(report.OrphanGoals) / float64(report.TotalGoals) * 100
		if orphanRatio > orphanRatioThreshold {
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("%.0f%% of goals are orphans: link manager-created goals to the strategic cascade", orphanRatio))
		}
		if report.AlignmentRate < alignmentRateThreshold {
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("alignment rate is %.0f%%: cascade more goals from aligned parents", report.AlignmentRate))
		}
	}

	return report, nil
}

// GetAlignmentTree возвращает корпоративные цели периода с детьми,
// загруженными ровно на два уровня (AREA, затем INDIVIDUAL)
func (s *alignmentService) GetAlignmentTree(ctx context.Context, accountID int64, periodYear int) ([]domain.Goal, error) {
	return s.goalRepo.CompanyGoalsByPeriod(ctx, accountID, periodYear, alignmentTreeDepth)
}
