package dto

import (
	"time"
)

// CreateGoalRequest - запрос на создание цели (корпоративной,
// каскадной или менеджерской)
type CreateGoalRequest struct {
	AccountID       int64    `json:"account_id" validate:"required,min=1"`
	Name            string   `json:"name" validate:"required,min=1,max=300"`
	Level           string   `json:"level" validate:"omitempty,oneof=COMPANY AREA INDIVIDUAL"`
	GoalType        string   `json:"goal_type" validate:"omitempty,max=50"`
	EmployeeID      *int64   `json:"employee_id" validate:"omitempty,min=1"`
	DepartmentID    *int64   `json:"department_id" validate:"omitempty,min=1"`
	CreatedByID     int64    `json:"created_by_id" validate:"required,min=1"`
	StartDate       string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	DueDate         string   `json:"due_date" validate:"required,datetime=2006-01-02"`
	PeriodYear      int      `json:"period_year" validate:"required,min=2000,max=2100"`
	PeriodQuarter   *int     `json:"period_quarter" validate:"omitempty,min=1,max=4"`
	MetricType      string   `json:"metric_type" validate:"omitempty,oneof=PERCENTAGE BINARY NUMERIC"`
	Unit            *string  `json:"unit" validate:"omitempty,max=50"`
	StartValue      *float64 `json:"start_value"`
	TargetValue     *float64 `json:"target_value"`
	Weight          *int     `json:"weight" validate:"omitempty,min=0,max=100"`
	LinkedDevGoalID *int64   `json:"linked_dev_goal_id" validate:"omitempty,min=1"`
}

// UpdateProgressRequest - запрос на обновление прогресса цели
type UpdateProgressRequest struct {
	AccountID   int64    `json:"account_id" validate:"required,min=1"`
	NewValue    *float64 `json:"new_value" validate:"required"`
	Comment     *string  `json:"comment" validate:"omitempty,max=2000"`
	Evidence    *string  `json:"evidence" validate:"omitempty,max=500"`
	UpdatedByID int64    `json:"updated_by_id" validate:"required,min=1"`
}

// CancelGoalRequest - запрос на отмену цели (логическое удаление)
type CancelGoalRequest struct {
	AccountID int64 `json:"account_id" validate:"required,min=1"`
}

// GoalResponse - ответ с данными цели
type GoalResponse struct {
	ID              int64          `json:"id"`
	AccountID       int64          `json:"account_id"`
	Name            string         `json:"name"`
	Level           string         `json:"level"`
	OriginType      string         `json:"origin_type"`
	GoalType        string         `json:"goal_type,omitempty"`
	EmployeeID      *int64         `json:"employee_id,omitempty"`
	DepartmentID    *int64         `json:"department_id,omitempty"`
	CreatedByID     int64          `json:"created_by_id"`
	ParentID        *int64         `json:"parent_id,omitempty"`
	IsAligned       bool           `json:"is_aligned"`
	IsOrphan        bool           `json:"is_orphan"`
	StartDate       string         `json:"start_date"`
	DueDate         string         `json:"due_date"`
	PeriodYear      int            `json:"period_year"`
	PeriodQuarter   *int           `json:"period_quarter,omitempty"`
	MetricType      string         `json:"metric_type"`
	Unit            *string        `json:"unit,omitempty"`
	StartValue      float64        `json:"start_value"`
	TargetValue     float64        `json:"target_value"`
	CurrentValue    float64        `json:"current_value"`
	Weight          int            `json:"weight"`
	Progress        float64        `json:"progress"`
	Status          string         `json:"status"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	LinkedDevGoalID *int64         `json:"linked_dev_goal_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	Children        []GoalResponse `json:"children,omitempty"`
}

// ProgressUpdateResponse - ответ с записью журнала прогресса
type ProgressUpdateResponse struct {
	ID               int64     `json:"id"`
	GoalID           int64     `json:"goal_id"`
	PreviousValue    float64   `json:"previous_value"`
	NewValue         float64   `json:"new_value"`
	PreviousProgress float64   `json:"previous_progress"`
	NewProgress      float64   `json:"new_progress"`
	Comment          *string   `json:"comment,omitempty"`
	Evidence         *string   `json:"evidence,omitempty"`
	UpdatedByID      int64     `json:"updated_by_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// GoalScoreDetail - вклад одной цели в итоговый балл
type GoalScoreDetail struct {
	GoalID             int64   `json:"goal_id"`
	Name               string  `json:"name"`
	Weight             int     `json:"weight"`
	HistoricalProgress float64 `json:"historical_progress"`
	WeightedScore      float64 `json:"weighted_score"`
}

// ScoreResponse - итоговый балл сотрудника на момент as_of
type ScoreResponse struct {
	Score          int               `json:"score"`
	GoalsCount     int               `json:"goals_count"`
	CompletedCount int               `json:"completed_count"`
	TotalWeight    int               `json:"total_weight"`
	Details        []GoalScoreDetail `json:"details"`
}

// AlignmentReportResponse - отчёт о стратегическом выравнивании целей
type AlignmentReportResponse struct {
	TotalGoals      int            `json:"total_goals"`
	CountsByLevel   map[string]int `json:"counts_by_level"`
	AlignedGoals    int            `json:"aligned_goals"`
	OrphanGoals     int            `json:"orphan_goals"`
	AlignmentRate   float64        `json:"alignment_rate"`
	Recommendations []string       `json:"recommendations"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ScoreQuery - параметры запроса балла сотрудника
type ScoreQuery struct {
	AccountID int64     `validate:"required,min=1"`
	AsOf      time.Time `validate:"required"`
}

// AnalyticsQuery - параметры аналитических запросов
type AnalyticsQuery struct {
	AccountID  int64 `validate:"required,min=1"`
	PeriodYear int   `validate:"omitempty,min=2000,max=2100"`
}
