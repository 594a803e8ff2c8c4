package domain

import "time"

// Границы прогресса: перевыполнение представимо до 150%
const (
	MaxProgress = 150.0
	MinProgress = 0.0
)

// CalculateProgress вычисляет прогресс цели по текущему значению.
// Одна и та же функция используется и при живом обновлении,
// и при воспроизведении истории.
func CalculateProgress(metricType MetricType, startValue, targetValue, currentValue float64) float64 {
	if metricType == MetricBinary {
		if currentValue >= 1 {
			return 100
		}
		return 0
	}

	// Вырожденное окно: цель совпадает со стартом
	if targetValue == startValue {
		if currentValue >= targetValue {
			return 100
		}
		return 0
	}

	raw := (currentValue - startValue) / (targetValue - startValue) * 100

	if raw < MinProgress {
		return MinProgress
	}
	if raw > MaxProgress {
		return MaxProgress
	}
	return raw
}

// DeriveStatus выводит статус цели из прогресса и графика.
// CANCELLED никогда не выводится автоматически: он выставляется
// только явным действием пользователя.
func DeriveStatus(progress float64, startDate, dueDate, now time.Time) GoalStatus {
	if progress == 0 {
		return StatusNotStarted
	}
	if progress >= 100 {
		return StatusCompleted
	}

	expected := expectedProgress(startDate, dueDate, now)
	switch {
	case progress >= 0.9*expected:
		return StatusOnTrack
	case progress >= 0.7*expected:
		return StatusAtRisk
	default:
		return StatusBehind
	}
}

// expectedProgress возвращает ожидаемый прогресс по линейному графику:
// доля прошедшего времени от всего окна, в процентах [0, 100]
func expectedProgress(startDate, dueDate, now time.Time) float64 {
	total := dueDate.Sub(startDate)
	if total <= 0 {
		return 100
	}

	elapsed := now.Sub(startDate)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return 100
	}

	return float64(elapsed) / float64(total) * 100
}
