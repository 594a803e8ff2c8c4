package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrParentGoalNotFound  = errors.New("parent goal not found")
	ErrInvalidTimeWindow   = errors.New("start date must be before due date")
	ErrInvalidLevel        = errors.New("goal level must be AREA or INDIVIDUAL")
	ErrTargetValueRequired = errors.New("target value is required")
	ErrOwnerMismatch       = errors.New("goal owner does not match goal level")
	ErrGoalCancelled       = errors.New("goal is cancelled")
)
