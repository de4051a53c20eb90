package domain

import (
	"math"
	"time"
)

// HabitStats aggregates a user's habits for the dashboard.
type HabitStats struct {
	TotalHabits    int `json:"total_habits"`
	TotalStreak    int `json:"total_streak"`
	LongestStreak  int `json:"longest_streak"`
	CompletedToday int `json:"completed_today"`
}

// DashboardSummary is the computed top-of-dashboard view. Never stored in
// Postgres; cached in Redis with a short TTL.
type DashboardSummary struct {
	Habits              HabitStats `json:"habits"`
	FocusMinutesToday   int        `json:"focus_minutes_today"`
	TasksCompletedToday int        `json:"tasks_completed_today"`
	AvgEnergy           float64    `json:"avg_energy"`
	ProductivityScore   int        `json:"productivity_score"`
	GeneratedAt         time.Time  `json:"generated_at"`
}

// AggregateHabitStats derives totals over a habit collection. Deterministic,
// no I/O; an empty collection yields the zero value.
func AggregateHabitStats(habits []*Habit, now time.Time) HabitStats {
	stats := HabitStats{TotalHabits: len(habits)}

	for _, h := range habits {
		stats.TotalStreak += h.StreakCount
		if h.StreakCount > stats.LongestStreak {
			stats.LongestStreak = h.StreakCount
		}
		if h.CompletedOn(now) {
			stats.CompletedToday++
		}
	}

	return stats
}

// ProductivityScore is the dashboard's single derived metric:
//
//	round(focusMinutes/60*10 + tasksCompleted*5 + avgEnergy*2)
//
// Ties round half away from zero (math.Round).
func ProductivityScore(totalFocusMinutes, tasksCompletedCount int, avgEnergy float64) int {
	score := float64(totalFocusMinutes)/60*10 +
		float64(tasksCompletedCount)*5 +
		avgEnergy*2

	return int(math.Round(score))
}
