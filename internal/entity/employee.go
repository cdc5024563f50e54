package entity

import (
	"strings"
	"time"
)

type CheckInStatus string

const (
	CheckInOK         CheckInStatus = "ok"
	CheckInPending    CheckInStatus = "pending"
	CheckInNotReplied CheckInStatus = "notReplied"
)

func IsValidCheckInStatus(s string) bool {
	switch CheckInStatus(s) {
	case CheckInOK, CheckInPending, CheckInNotReplied:
		return true
	}
	return false
}

type Employee struct {
	ID            string
	Name          string
	Initials      string
	Phone         string
	Rank          int
	HasLicense    bool
	ScheduledOff  bool
	CheckInStatus CheckInStatus
	UpdatedAt     time.Time
}

// HasPhone reports whether the employee is reachable for check-ins.
func (e Employee) HasPhone() bool {
	return strings.TrimSpace(e.Phone) != ""
}

func FindEmployee(employees []Employee, id string) (int, bool) {
	for i := range employees {
		if employees[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func CloneEmployees(employees []Employee) []Employee {
	if employees == nil {
		return nil
	}
	return append([]Employee(nil), employees...)
}
