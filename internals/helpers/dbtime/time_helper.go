// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Locals set by the school scope middleware.
const (
	LocSchoolTimezone = "school_timezone" // string, e.g. "Asia/Jakarta"
	LocSchoolLoc      = "school_loc"      // *time.Location
)

var (
	mu         sync.RWMutex
	defaultLoc = time.UTC
)

// SetDefaultTimezone sets the fallback used when a request carries no timezone.
func SetDefaultTimezone(name string) error {
	loc, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return err
	}
	mu.Lock()
	defaultLoc = loc
	mu.Unlock()
	return nil
}

func DefaultLocation() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLoc
}

// GetSchoolLocation resolves the request timezone:
// 1) c.Locals("school_loc")
// 2) c.Locals("school_timezone") loaded and cached into school_loc
// 3) the configured default
func GetSchoolLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return DefaultLocation()
	}
	if loc, ok := c.Locals(LocSchoolLoc).(*time.Location); ok && loc != nil {
		return loc
	}
	if s, ok := c.Locals(LocSchoolTimezone).(string); ok && strings.TrimSpace(s) != "" {
		if loc, err := time.LoadLocation(strings.TrimSpace(s)); err == nil {
			c.Locals(LocSchoolLoc, loc)
			return loc
		}
	}
	return DefaultLocation()
}

// ToSchoolTime converts a (UTC) DB time into the school timezone. Zero stays zero.
func ToSchoolTime(c *fiber.Ctx, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(GetSchoolLocation(c))
}

func ToSchoolTimePtr(c *fiber.Ctx, t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToSchoolTime(c, *t)
	return &v
}

// DayWindow returns [start of day, start of next day) for t in loc.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
