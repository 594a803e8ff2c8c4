package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/goal-cascade-api/internal/domain"
	"github.com/goal-cascade-api/internal/service"
)

func seedAccountGoal(repo *mockGoalRepo, level domain.GoalLevel, aligned, orphan bool, status domain.GoalStatus) *domain.Goal {
	goal := &domain.Goal{
		AccountID:   1,
		Name:        "Goal",
		Level:       level,
		OriginType:  domain.OriginStrategicCascade,
		CreatedByID: 10,
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		PeriodYear:  2025,
		MetricType:  domain.MetricPercentage,
		TargetValue: 100,
		IsAligned:   aligned,
		IsOrphan:    orphan,
		Status:      status,
	}
	repo.Create(context.Background(), goal)
	return goal
}

func TestDetectOrphans_ExcludesTerminal(t *testing.T) {
	repo := newMockGoalRepo()
	svc := service.NewAlignmentService(repo)

	// 10 целей: 4 активные сироты, 1 завершённая сирота,
	// 1 отменённая сирота, 4 выровненные
	for range 4 {
		seedAccountGoal(repo, domain.LevelIndividual, false, true, domain.StatusOnTrack)
	}
	seedAccountGoal(repo, domain.LevelIndividual, false, true, domain.StatusCompleted)
	seedAccountGoal(repo, domain.LevelIndividual, false, true, domain.StatusCancelled)
	for range 4 {
		seedAccountGoal(repo, domain.LevelIndividual, true, false, domain.StatusOnTrack)
	}

	orphans, err := svc.DetectOrphans(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(orphans) != 4 {
		t.Fatalf("expected exactly 4 orphans, got %d", len(orphans))
	}
	for _, goal := range orphans {
		if !goal.IsOrphan {
			t.Errorf("goal %d is not an orphan", goal.ID)
		}
		if goal.IsTerminal() {
			t.Errorf("terminal goal %d must not be reported", goal.ID)
		}
	}
}

func TestGetAlignmentReport_EmptyAccount(t *testing.T) {
	svc := service.NewAlignmentService(newMockGoalRepo())

	report, err := svc.GetAlignmentReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("empty account must not be an error, got %v", err)
	}

	if report.TotalGoals != 0 {
		t.Errorf("expected 0 goals, got %d", report.TotalGoals)
	}
	if report.AlignmentRate != 0 {
		t.Errorf("expected alignment rate 0 for empty account, got %v", report.AlignmentRate)
	}
	if len(report.Recommendations) == 0 {
		t.Errorf("missing company-level goals must be flagged")
	}
}

func TestGetAlignmentReport_CountsAndRate(t *testing.T) {
	repo := newMockGoalRepo()
	svc := service.NewAlignmentService(repo)

	seedAccountGoal(repo, domain.LevelCompany, true, false, domain.StatusOnTrack)
	seedAccountGoal(repo, domain.LevelArea, true, false, domain.StatusOnTrack)
	seedAccountGoal(repo, domain.LevelIndividual, true, false, domain.StatusOnTrack)
	seedAccountGoal(repo, domain.LevelIndividual, false, true, domain.StatusOnTrack)

	report, err := svc.GetAlignmentReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalGoals != 4 {
		t.Errorf("expected 4 goals, got %d", report.TotalGoals)
	}
	if report.CountsByLevel["COMPANY"] != 1 || report.CountsByLevel["AREA"] != 1 || report.CountsByLevel["INDIVIDUAL"] != 2 {
		t.Errorf("unexpected level counts: %v", report.CountsByLevel)
	}
	if report.AlignedGoals != 3 || report.OrphanGoals != 1 {
		t.Errorf("expected 3 aligned and 1 orphan, got %d and %d", report.AlignedGoals, report.OrphanGoals)
	}
	if report.AlignmentRate != 75 {
		t.Errorf("expected alignment rate 75, got %v", report.AlignmentRate)
	}
}

func TestGetAlignmentReport_Recommendations(t *testing.T) {
	repo := newMockGoalRepo()
	svc := service.NewAlignmentService(repo)

	// Здоровый каскад: корпоративная цель, высокая выровненность,
	// мало сирот - рекомендаций быть не должно
	seedAccountGoal(repo, domain.LevelCompany, true, false, domain.StatusOnTrack)
	for range 9 {
		seedAccountGoal(repo, domain.LevelIndividual, true, false, domain.StatusOnTrack)
	}

	report, err := svc.GetAlignmentReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Recommendations) != 0 {
		t.Errorf("healthy cascade must produce no recommendations, got %v", report.Recommendations)
	}

	// Добавляем сирот сверх порога 30%
	repo2 := newMockGoalRepo()
	svc2 := service.NewAlignmentService(repo2)
	seedAccountGoal(repo2, domain.LevelCompany, true, false, domain.StatusOnTrack)
	for range 4 {
		seedAccountGoal(repo2, domain.LevelIndividual, false, true, domain.StatusOnTrack)
	}

	report, err = svc2.GetAlignmentReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Recommendations) == 0 {
		t.Errorf("high orphan ratio and low alignment must be flagged")
	}
}

func TestGetAlignmentTree_BoundedDepth(t *testing.T) {
	repo := newMockGoalRepo()
	svc := service.NewAlignmentService(repo)

	company := seedAccountGoal(repo, domain.LevelCompany, true, false, domain.StatusOnTrack)
	area := seedAccountGoal(repo, domain.LevelArea, true, false, domain.StatusOnTrack)
	area.ParentID = &company.ID
	repo.Save(context.Background(), area)

	individual := seedAccountGoal(repo, domain.LevelIndividual, true, false, domain.StatusOnTrack)
	individual.ParentID = &area.ID
	repo.Save(context.Background(), individual)

	// Третий уровень вложенности за пределами обхода
	deep := seedAccountGoal(repo, domain.LevelIndividual, true, false, domain.StatusOnTrack)
	deep.ParentID = &individual.ID
	repo.Save(context.Background(), deep)

	tree, err := svc.GetAlignmentTree(context.Background(), 1, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tree) != 1 {
		t.Fatalf("expected 1 company goal, got %d", len(tree))
	}
	if len(tree[0].Children) != 1 {
		t.Fatalf("expected 1 area child, got %d", len(tree[0].Children))
	}
	if len(tree[0].Children[0].Children) != 1 {
		t.Fatalf("expected 1 individual grandchild, got %d", len(tree[0].Children[0].Children))
	}
	if len(tree[0].Children[0].Children[0].Children) != 0 {
		t.Errorf("traversal must stop two levels below company goals")
	}
}

func TestGetAlignmentTree_FiltersByPeriod(t *testing.T) {
	repo := newMockGoalRepo()
	svc := service.NewAlignmentService(repo)

	seedAccountGoal(repo, domain.LevelCompany, true, false, domain.StatusOnTrack)
	other := seedAccountGoal(repo, domain.LevelCompany, true, false, domain.StatusOnTrack)
	other.PeriodYear = 2024
	repo.Save(context.Background(), other)

	tree, err := svc.GetAlignmentTree(context.Background(), 1, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tree) != 1 {
		t.Errorf("expected only 2025 company goals, got %d", len(tree))
	}
}
