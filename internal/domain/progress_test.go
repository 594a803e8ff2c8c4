package domain

import (
	"testing"
	"time"
)

func TestCalculateProgress_Percentage(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		target  float64
		current float64
		want    float64
	}{
		{"halfway", 0, 10, 5, 50},
		{"overachievement clamped at 150", 0, 10, 15, 150},
		{"beyond clamp", 0, 10, 20, 150},
		{"exactly on target", 0, 10, 10, 100},
		{"no movement", 0, 10, 0, 0},
		{"below start clamped at 0", 0, 10, -5, 0},
		{"nonzero start", 50, 100, 75, 50},
		{"decreasing metric", 100, 50, 75, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateProgress(MetricPercentage, tt.start, tt.target, tt.current)
			if got != tt.want {
				t.Errorf("CalculateProgress(%v, %v, %v) = %v, want %v",
					tt.start, tt.target, tt.current, got, tt.want)
			}
		})
	}
}

func TestCalculateProgress_Binary(t *testing.T) {
	if got := CalculateProgress(MetricBinary, 0, 1, 1); got != 100 {
		t.Errorf("binary done: got %v, want 100", got)
	}
	if got := CalculateProgress(MetricBinary, 0, 1, 0); got != 0 {
		t.Errorf("binary not done: got %v, want 0", got)
	}
	if got := CalculateProgress(MetricBinary, 0, 1, 2); got != 100 {
		t.Errorf("binary above one: got %v, want 100", got)
	}
}

func TestCalculateProgress_DegenerateWindow(t *testing.T) {
	if got := CalculateProgress(MetricNumeric, 10, 10, 10); got != 100 {
		t.Errorf("target equals start, reached: got %v, want 100", got)
	}
	if got := CalculateProgress(MetricNumeric, 10, 10, 5); got != 0 {
		t.Errorf("target equals start, not reached: got %v, want 0", got)
	}
}

func TestDeriveStatus(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	due := start.AddDate(0, 0, 100)
	midpoint := start.AddDate(0, 0, 50) // ожидаемый прогресс 50

	tests := []struct {
		name     string
		progress float64
		now      time.Time
		want     GoalStatus
	}{
		{"zero progress", 0, midpoint, StatusNotStarted},
		{"completed", 100, midpoint, StatusCompleted},
		{"overachieved", 150, midpoint, StatusCompleted},
		{"on track at 90% of expected", 45, midpoint, StatusOnTrack},
		{"at risk at 70% of expected", 35, midpoint, StatusAtRisk},
		{"behind below 70% of expected", 30, midpoint, StatusBehind},
		{"ahead of schedule", 80, midpoint, StatusOnTrack},
		{"before window start", 10, start.AddDate(0, 0, -5), StatusOnTrack},
		{"past due date", 50, due.AddDate(0, 0, 5), StatusBehind},
		{"past due but close", 95, due.AddDate(0, 0, 5), StatusOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.progress, start, due, tt.now)
			if got != tt.want {
				t.Errorf("DeriveStatus(%v, now=%v) = %v, want %v",
					tt.progress, tt.now, got, tt.want)
			}
		})
	}
}
