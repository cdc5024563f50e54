package warning

import "github.com/mover-dashboard/dispatch/internal/entity"

const (
	NoteScheduledOffAssigned = "Scheduled off but assigned"
	NoteNoCheckInResponse    = "No check-in response"
)

type EmployeeContext struct {
	IsAssigned bool
}

type EmployeeResult struct {
	Level entity.WarningLevel
	Note  string
}

// EvaluateEmployee classifies one employee. A missing phone is not an
// employee-level warning; it is reported per truck instead.
func EvaluateEmployee(e entity.Employee, ctx EmployeeContext) EmployeeResult {
	if ctx.IsAssigned && e.ScheduledOff {
		return EmployeeResult{Level: entity.WarningHard, Note: NoteScheduledOffAssigned}
	}
	if ctx.IsAssigned && e.CheckInStatus == entity.CheckInNotReplied {
		return EmployeeResult{Level: entity.WarningHard, Note: NoteNoCheckInResponse}
	}
	return EmployeeResult{Level: entity.WarningNone}
}
