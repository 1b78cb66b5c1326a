package progress

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var ErrUnknownGranularity = errors.New("unknown streak granularity (must be week or day)")

// Granularity selects the period a streak is counted in. A deployment uses
// exactly one so users never see two different numbers.
type Granularity string

const (
	GranularityWeek Granularity = "week"
	GranularityDay  Granularity = "day"
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case "", GranularityWeek:
		return GranularityWeek, nil
	case GranularityDay:
		return GranularityDay, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
	}
}

func StreaksFor(g Granularity, history domain.CompletionHistory, today time.Time) domain.Streaks {
	if g == GranularityDay {
		return CalculateDailyStreaks(history, today)
	}
	return CalculateStreaks(history, today)
}

// CalculateStreaks counts consecutive ISO weeks with at least one recorded day.
// The current streak survives while either this week or last week is active.
func CalculateStreaks(history domain.CompletionHistory, today time.Time) domain.Streaks {
	active := make(map[domain.ISOWeek]bool)
	for _, d := range history.SortedDates() {
		t, _ := d.Time()
		active[domain.ISOWeekOf(t)] = true
	}
	if len(active) == 0 {
		return domain.Streaks{}
	}

	weeks := make([]domain.ISOWeek, 0, len(active))
	for w := range active {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	longest, run := 1, 1
	for i := 1; i < len(weeks); i++ {
		if weeks[i-1].Next() == weeks[i] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	var start domain.ISOWeek
	switch thisWeek, lastWeek := domain.ISOWeekOf(today), domain.ISOWeekOf(today.AddDate(0, 0, -7)); {
	case active[thisWeek]:
		start = thisWeek
	case active[lastWeek]:
		start = lastWeek
	default:
		return domain.Streaks{Current: 0, Longest: longest}
	}

	current := 0
	for w := start; active[w]; w = w.Prev() {
		current++
	}

	return domain.Streaks{Current: current, Longest: longest}
}

// CalculateDailyStreaks counts consecutive calendar days. A day without
// activity yet does not break the streak until it is over, so counting starts
// from yesterday when today is empty.
func CalculateDailyStreaks(history domain.CompletionHistory, today time.Time) domain.Streaks {
	dates := history.SortedDates()
	if len(dates) == 0 {
		return domain.Streaks{}
	}

	present := make(map[domain.DateKey]bool, len(dates))
	for _, d := range dates {
		present[d] = true
	}

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDays(1) == dates[i] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	day := domain.NewDateKey(today)
	if !present[day] {
		day = day.AddDays(-1)
	}

	current := 0
	for present[day] {
		current++
		day = day.AddDays(-1)
	}

	return domain.Streaks{Current: current, Longest: longest}
}
