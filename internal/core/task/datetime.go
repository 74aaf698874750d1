package task

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidDueDate is returned for a due date that fails the pattern or
// range checks, or that is not in the future. Callers re-prompt instead of
// creating a task.
var ErrInvalidDueDate = errors.New("invalid due date: use YYYY-MM-DD HH:mm with a future date")

var dueDatePattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})\s+(\d{1,2}):(\d{2})$`)

// ParseDueDate validates a user-entered due date of the form
// "YYYY-MM-DD HH:mm" and returns the parsed instant in the given location.
// Field ranges are checked individually (year 2000-2100, month 1-12, day
// 1-31, hour 0-23, minute 0-59); there is no days-in-month cross-check, so
// "2025-02-30 10:00" passes validation and normalizes forward. The instant
// must be strictly after now.
func ParseDueDate(input string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	match := dueDatePattern.FindStringSubmatch(input)
	if match == nil {
		return time.Time{}, ErrInvalidDueDate
	}

	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	hour, _ := strconv.Atoi(match[4])
	minute, _ := strconv.Atoi(match[5])

	if year < 2000 || year > 2100 {
		return time.Time{}, ErrInvalidDueDate
	}
	if month < 1 || month > 12 {
		return time.Time{}, ErrInvalidDueDate
	}
	if day < 1 || day > 31 {
		return time.Time{}, ErrInvalidDueDate
	}
	if hour < 0 || hour > 23 {
		return time.Time{}, ErrInvalidDueDate
	}
	if minute < 0 || minute > 59 {
		return time.Time{}, ErrInvalidDueDate
	}

	due := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if !due.After(now) {
		return time.Time{}, ErrInvalidDueDate
	}

	return due, nil
}
