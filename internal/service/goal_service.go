package service

import (
	"context"
	"strings"
	"time"

	"github.com/goal-cascade-api/internal/domain"
	"github.com/goal-cascade-api/internal/dto"
	"github.com/goal-cascade-api/internal/repository"
)

// GoalService определяет интерфейс построителя каскада целей
type GoalService interface {
	CreateCorporateGoal(ctx context.Context, req *dto.CreateGoalRequest) (*domain.Goal, error)
	CascadeGoal(ctx context.Context, parentID int64, req *dto.CreateGoalRequest) (*domain.Goal, error)
	CreateManagerGoal(ctx context.Context, req *dto.CreateGoalRequest) (*domain.Goal, error)
	GetByID(ctx context.Context, accountID, id int64) (*domain.Goal, error)
	Cancel(ctx context.Context, accountID, id int64) (*domain.Goal, error)
}

type goalService struct {
	goalRepo repository.GoalRepository
}

// NewGoalService создаёт новый экземпляр сервиса
func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

// CreateCorporateGoal создаёт корпоративную цель: уровень COMPANY,
// всегда выровнена, без родителя
func (s *goalService) CreateCorporateGoal(ctx context.Context, req *dto.CreateGoalRequest) (*domain.Goal, error) {
	goal, err := s.buildGoal(req, domain.LevelCompany)
	if err != nil {
		return nil, err
	}

	goal.OriginType = domain.OriginStrategicCascade
	goal.IsAligned = true
	goal.IsOrphan = false

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// CascadeGoal создаёт дочернюю цель под существующим родителем.
// Выравнивание наследуется от родителя на момент создания и
// задним числом не пересчитывается.
func (s *goalService) CascadeGoal(ctx context.Context, parentID int64, req *dto.CreateGoalRequest) (*domain.Goal, error) {
	parent, err := s.goalRepo.GetByID(ctx, req.AccountID, parentID)
	if err != nil {
		if err == domain.ErrGoalNotFound {
			return nil, domain.ErrParentGoalNotFound
		}
		return nil, err
	}

	level, err := childLevel(req.Level)
	if err != nil {
		return nil, err
	}

	goal, err := s.buildGoal(req, level)
	if err != nil {
		return nil, err
	}

	goal.OriginType = domain.OriginStrategicCascade
	goal.ParentID = &parent.ID
	goal.IsAligned = parent.IsAligned
	goal.IsOrphan = false

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// CreateManagerGoal создаёт локальную цель менеджера: без родителя,
// не выровнена, всегда помечается как сирота
func (s *goalService) CreateManagerGoal(ctx context.Context, req *dto.CreateGoalRequest) (*domain.Goal, error) {
	level, err := childLevel(req.Level)
	if err != nil {
		return nil, err
	}

	goal, err := s.buildGoal(req, level)
	if err != nil {
		return nil, err
	}

	goal.OriginType = domain.OriginManagerCreated
	goal.IsAligned = false
	goal.IsOrphan = true

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *goalService) GetByID(ctx context.Context, accountID, id int64) (*domain.Goal, error) {
	return s.goalRepo.GetByID(ctx, accountID, id)
}

// Cancel логически удаляет цель. Записи журнала остаются: цель никогда
// не удаляется физически, чтобы журнал сохранял атрибуцию.
func (s *goalService) Cancel(ctx context.Context, accountID, id int64) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if goal.Status == domain.StatusCancelled {
		return nil, domain.ErrGoalCancelled
	}

	goal.Status = domain.StatusCancelled
	if err := s.goalRepo.Save(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// buildGoal - общий конструктор: нормализует необязательные поля
// и проверяет инварианты окна, метрики и владельца
func (s *goalService) buildGoal(req *dto.CreateGoalRequest, level domain.GoalLevel) (*domain.Goal, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, err
	}

	if !startDate.Before(dueDate) {
		return nil, domain.ErrInvalidTimeWindow
	}

	if req.TargetValue == nil {
		return nil, domain.ErrTargetValueRequired
	}

	if err := validateOwner(level, req.EmployeeID, req.DepartmentID); err != nil {
		return nil, err
	}

	metricType := domain.MetricPercentage
	if req.MetricType != "" {
		metricType = domain.MetricType(req.MetricType)
	}

	startValue := 0.0
	if req.StartValue != nil {
		startValue = *req.StartValue
	}

	weight := 0
	if req.Weight != nil {
		weight = *req.Weight
	}

	return &domain.Goal{
		AccountID:       req.AccountID,
		Name:            strings.TrimSpace(req.Name),
		Level:           level,
		GoalType:        strings.TrimSpace(req.GoalType),
		EmployeeID:      req.EmployeeID,
		DepartmentID:    req.DepartmentID,
		CreatedByID:     req.CreatedByID,
		StartDate:       startDate,
		DueDate:         dueDate,
		PeriodYear:      req.PeriodYear,
		PeriodQuarter:   req.PeriodQuarter,
		MetricType:      metricType,
		Unit:            req.Unit,
		StartValue:      startValue,
		TargetValue:     *req.TargetValue,
		CurrentValue:    startValue,
		Weight:          weight,
		Progress:        0,
		Status:          domain.StatusNotStarted,
		LinkedDevGoalID: req.LinkedDevGoalID,
	}, nil
}

// childLevel проверяет уровень каскадной или менеджерской цели:
// уровень COMPANY создаётся только корпоративным путём
func childLevel(level string) (domain.GoalLevel, error) {
	switch domain.GoalLevel(level) {
	case domain.LevelArea, domain.LevelIndividual:
		return domain.GoalLevel(level), nil
	default:
		return "", domain.ErrInvalidLevel
	}
}

// validateOwner проверяет соответствие владельца уровню цели:
// COMPANY - без владельца, AREA - подразделение, INDIVIDUAL - сотрудник
func validateOwner(level domain.GoalLevel, employeeID, departmentID *int64) error {
	switch level {
	case domain.LevelCompany:
		if employeeID != nil || departmentID != nil {
			return domain.ErrOwnerMismatch
		}
	case domain.LevelArea:
		if departmentID == nil || employeeID != nil {
			return domain.ErrOwnerMismatch
		}
	case domain.LevelIndividual:
		if employeeID == nil || departmentID != nil {
			return domain.ErrOwnerMismatch
		}
	default:
		return domain.ErrOwnerMismatch
	}
	return nil
}
