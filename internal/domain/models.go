package domain

import (
	"time"
)

// GoalLevel определяет уровень цели в каскаде
type GoalLevel string

const (
	LevelCompany    GoalLevel = "COMPANY"
	LevelArea       GoalLevel = "AREA"
	LevelIndividual GoalLevel = "INDIVIDUAL"
)

// OriginType определяет происхождение цели
type OriginType string

const (
	OriginStrategicCascade OriginType = "STRATEGIC_CASCADE"
	OriginManagerCreated   OriginType = "MANAGER_CREATED"
)

// MetricType определяет способ измерения прогресса
type MetricType string

const (
	MetricPercentage MetricType = "PERCENTAGE"
	MetricBinary     MetricType = "BINARY"
	MetricNumeric    MetricType = "NUMERIC"
)

// GoalStatus определяет статус цели
type GoalStatus string

const (
	StatusNotStarted GoalStatus = "NOT_STARTED"
	StatusOnTrack    GoalStatus = "ON_TRACK"
	StatusAtRisk     GoalStatus = "AT_RISK"
	StatusBehind     GoalStatus = "BEHIND"
	StatusCompleted  GoalStatus = "COMPLETED"
	StatusCancelled  GoalStatus = "CANCELLED"
)

// Goal представляет цель в стратегическом каскаде
type Goal struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID int64  `json:"account_id" gorm:"not null;index"`
	Name      string `json:"name" gorm:"type:varchar(300);not null"`

	Level      GoalLevel  `json:"level" gorm:"type:varchar(20);not null"`
	OriginType OriginType `json:"origin_type" gorm:"type:varchar(30);not null"`
	GoalType   string     `json:"goal_type" gorm:"type:varchar(50)"`

	EmployeeID   *int64 `json:"employee_id" gorm:"index"`
	DepartmentID *int64 `json:"department_id"`
	CreatedByID  int64  `json:"created_by_id" gorm:"not null"`

	ParentID  *int64 `json:"parent_id" gorm:"index"`
	IsAligned bool   `json:"is_aligned" gorm:"not null"`
	IsOrphan  bool   `json:"is_orphan" gorm:"not null"`

	StartDate     time.Time `json:"start_date" gorm:"not null"`
	DueDate       time.Time `json:"due_date" gorm:"not null"`
	PeriodYear    int       `json:"period_year" gorm:"not null;index"`
	PeriodQuarter *int      `json:"period_quarter"`

	MetricType   MetricType `json:"metric_type" gorm:"type:varchar(20);not null"`
	Unit         *string    `json:"unit" gorm:"type:varchar(50)"`
	StartValue   float64    `json:"start_value" gorm:"not null"`
	TargetValue  float64    `json:"target_value" gorm:"not null"`
	CurrentValue float64    `json:"current_value" gorm:"not null"`

	Weight      int        `json:"weight" gorm:"not null"`
	Progress    float64    `json:"progress" gorm:"not null"`
	Status      GoalStatus `json:"status" gorm:"type:varchar(20);not null"`
	CompletedAt *time.Time `json:"completed_at"`

	LinkedDevGoalID *int64 `json:"linked_dev_goal_id"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Parent   *Goal  `json:"-" gorm:"foreignKey:ParentID"`
	Children []Goal `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

// TableName задаёт имя таблицы для GORM
func (Goal) TableName() string {
	return "goals"
}

// IsTerminal сообщает, закрыта ли цель для дальнейшего отслеживания
func (g *Goal) IsTerminal() bool {
	return g.Status == StatusCompleted || g.Status == StatusCancelled
}

// ProgressUpdate представляет одну запись журнала прогресса.
// Журнал append-only: записи никогда не обновляются и не удаляются,
// порядок воспроизведения определяется created_at (при равенстве - id).
type ProgressUpdate struct {
	ID        int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID int64 `json:"account_id" gorm:"not null;index"`
	GoalID    int64 `json:"goal_id" gorm:"not null;index:idx_goal_created"`

	PreviousValue    float64 `json:"previous_value" gorm:"not null"`
	NewValue         float64 `json:"new_value" gorm:"not null"`
	PreviousProgress float64 `json:"previous_progress" gorm:"not null"`
	NewProgress      float64 `json:"new_progress" gorm:"not null"`

	Comment     *string `json:"comment" gorm:"type:text"`
	Evidence    *string `json:"evidence" gorm:"type:varchar(500)"`
	UpdatedByID int64   `json:"updated_by_id" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index:idx_goal_created"`
}

// TableName задаёт имя таблицы для GORM
func (ProgressUpdate) TableName() string {
	return "goal_progress_updates"
}
