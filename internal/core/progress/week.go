package progress

import (
	"time"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

const (
	// LastBeginnerWeek is the final week of the forgiving phase: up to it the
	// week follows the calendar regardless of gaps.
	LastBeginnerWeek = 3
	// ResetWeek is where an inactive advanced user restarts.
	ResetWeek = 4
	MaxWeek   = 6

	InactivityResetDays = 14
	daysPerWeek         = 7
)

// CalculateUserWeek returns the program week (0..6) the user is on at today.
// Malformed keys are ignored; with no usable key the user is on week 0.
func CalculateUserWeek(history domain.CompletionHistory, today time.Time) int {
	dates := history.SortedDates()
	if len(dates) == 0 {
		return 0
	}

	first, _ := dates[0].Time()
	last, _ := dates[len(dates)-1].Time()

	elapsedDays := domain.DaysBetween(first, today)
	if elapsedDays < 0 {
		return 0
	}

	rawWeek := elapsedDays / daysPerWeek
	if rawWeek <= LastBeginnerWeek {
		return rawWeek
	}

	if domain.DaysBetween(last, today) >= InactivityResetDays {
		return ResetWeek
	}

	return min(rawWeek, MaxWeek)
}
