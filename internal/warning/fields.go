// Package warning classifies jobs, employees and trucks into warning levels.
// Every function here is pure: the only time input is the now argument.
package warning

import (
	"strings"
	"time"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

// Hard reasons reported for jobs.
const (
	ReasonMissingCustomerName  = "missing customer name"
	ReasonMissingCustomerPhone = "missing customer phone"
	ReasonMissingPickup        = "missing pickup address"
	ReasonMissingDropoff       = "missing dropoff address"
	ReasonInvalidDate          = "missing/invalid scheduled date"
	ReasonPastDate             = "scheduled date is in the past"
)

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// MissingFields lists the required job fields that are blank, in a fixed
// order.
func MissingFields(job entity.Job) []string {
	var reasons []string

	if IsBlank(job.CustomerName) {
		reasons = append(reasons, ReasonMissingCustomerName)
	}
	if IsBlank(job.CustomerPhone) {
		reasons = append(reasons, ReasonMissingCustomerPhone)
	}
	if IsBlank(job.PickupAddress) {
		reasons = append(reasons, ReasonMissingPickup)
	}
	if IsBlank(job.DropoffAddress) {
		reasons = append(reasons, ReasonMissingDropoff)
	}

	return reasons
}

// StartOfDay truncates t to midnight of its calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ArrivalDay returns the local calendar day of the job's scheduled arrival,
// using now's location as local.
func ArrivalDay(job entity.Job, now time.Time) (time.Time, bool) {
	loc := now.Location()
	t, ok := job.Arrival(loc)
	if !ok {
		return time.Time{}, false
	}
	return StartOfDay(t, loc), true
}

// DateReasons validates the scheduled arrival against today's calendar day.
func DateReasons(job entity.Job, now time.Time) []string {
	day, ok := ArrivalDay(job, now)
	if !ok {
		return []string{ReasonInvalidDate}
	}
	if day.Before(StartOfDay(now, now.Location())) {
		return []string{ReasonPastDate}
	}
	return nil
}

// CompareDay returns -1, 0 or 1 when the job's arrival day is before, on or
// after today. ok is false for a missing or unparseable date.
func CompareDay(job entity.Job, now time.Time) (cmp int, ok bool) {
	day, ok := ArrivalDay(job, now)
	if !ok {
		return 0, false
	}

	today := StartOfDay(now, now.Location())
	switch {
	case day.Before(today):
		return -1, true
	case day.After(today):
		return 1, true
	default:
		return 0, true
	}
}
