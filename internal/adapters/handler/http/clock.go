package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

// Clock decides what "today" means for a request. Clients may pin it with a
// ?date=YYYY-MM-DD query parameter to use their own calendar day.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// Current is the wall clock in the configured zone. Background jobs use it
// too so they agree with requests on the calendar day.
func (k Clock) Current() time.Time {
	now := time.Now
	if k.Now != nil {
		now = k.Now
	}
	loc := k.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

func (k Clock) today(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return k.Current(), nil
	}

	key, err := domain.ParseDateKey(raw)
	if err != nil {
		return time.Time{}, err
	}
	t, _ := key.Time()
	return t, nil
}

func parseMonth(raw string, fallback time.Time) (int, time.Month, error) {
	if raw == "" {
		return fallback.Year(), fallback.Month(), nil
	}
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month must be YYYY-MM", domain.ErrInvalidDate)
	}
	return t.Year(), t.Month(), nil
}
