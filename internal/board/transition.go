package board

import (
	"time"

	"github.com/mover-dashboard/dispatch/internal/entity"
	"github.com/mover-dashboard/dispatch/internal/warning"
)

type ItemType string

const (
	ItemEmployee ItemType = "employee"
	ItemJob      ItemType = "job"
)

type TargetKind string

const (
	TargetTruck  TargetKind = "truck"
	TargetRoster TargetKind = "roster"
	TargetQueue  TargetKind = "queue"
)

// Item is the dragged entity. SourceTruckID is what the client believes the
// item came from; transitions locate the real source in the state.
type Item struct {
	Type          ItemType
	ID            string
	SourceTruckID string
}

type Target struct {
	Kind    TargetKind
	TruckID string
}

// Refusal reasons.
const (
	ReasonSameTruck       = "already on this truck"
	ReasonCapacity        = "truck is at capacity"
	ReasonNotAssigned     = "not on a truck"
	ReasonInvalidTarget   = "item cannot be dropped there"
	ReasonUnknownTruck    = "unknown truck"
	ReasonUnknownEmployee = "unknown employee"
	ReasonUnknownJob      = "unknown job"
	ReasonEmptyHistory    = "nothing to undo"
)

// Outcome reports whether a transition changed the board. A refused
// transition leaves the state exactly as it was.
type Outcome struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

// NotFound reports whether the transition referenced a missing entity.
func (o Outcome) NotFound() bool {
	switch o.Reason {
	case ReasonUnknownTruck, ReasonUnknownEmployee, ReasonUnknownJob:
		return true
	}
	return false
}

func applied() Outcome { return Outcome{Applied: true} }

func refused(reason string) Outcome { return Outcome{Reason: reason} }

// Drop routes a drag and drop gesture to the matching transition.
func Drop(s State, item Item, target Target, now time.Time) (State, Outcome) {
	if target.Kind == TargetTruck && item.SourceTruckID != "" && item.SourceTruckID == target.TruckID {
		return s, refused(ReasonSameTruck)
	}

	switch {
	case item.Type == ItemEmployee && target.Kind == TargetTruck:
		return AssignEmployee(s, item.ID, target.TruckID, now)
	case item.Type == ItemEmployee && target.Kind == TargetRoster:
		return UnassignEmployee(s, item.ID, now)
	case item.Type == ItemJob && target.Kind == TargetTruck:
		return AssignJob(s, item.ID, target.TruckID, now)
	case item.Type == ItemJob && target.Kind == TargetQueue:
		return UnassignJob(s, item.ID, now)
	default:
		return s, refused(ReasonInvalidTarget)
	}
}

// AssignEmployee moves an employee onto a truck's crew, taking them off any
// other crew. A full target refuses the move.
func AssignEmployee(s State, employeeID, truckID string, now time.Time) (State, Outcome) {
	ti, ok := entity.FindTruck(s.Trucks, truckID)
	if !ok {
		return s, refused(ReasonUnknownTruck)
	}

	src, onTruck := s.CrewTruck(employeeID)
	if onTruck && src == ti {
		return s, refused(ReasonSameTruck)
	}
	if s.Trucks[ti].IsFull() {
		return s, refused(ReasonCapacity)
	}

	next := s.Clone()
	if onTruck {
		removeCrewMember(&next.Trucks[src], employeeID, now)
	}

	target := &next.Trucks[ti]
	target.CrewIDs = append(target.CrewIDs, employeeID)
	target.UpdatedAt = now

	return next, applied()
}

// UnassignEmployee returns an employee to the roster.
func UnassignEmployee(s State, employeeID string, now time.Time) (State, Outcome) {
	src, ok := s.CrewTruck(employeeID)
	if !ok {
		return s, refused(ReasonNotAssigned)
	}

	next := s.Clone()
	removeCrewMember(&next.Trucks[src], employeeID, now)

	return next, applied()
}

// AssignJob puts a job on a truck and marks it ASSIGNED.
func AssignJob(s State, jobID, truckID string, now time.Time) (State, Outcome) {
	ti, ok := entity.FindTruck(s.Trucks, truckID)
	if !ok {
		return s, refused(ReasonUnknownTruck)
	}
	ji, ok := entity.FindJob(s.Jobs, jobID)
	if !ok {
		return s, refused(ReasonUnknownJob)
	}
	if s.Trucks[ti].HasJob(jobID) {
		return s, refused(ReasonSameTruck)
	}

	next := s.Clone()
	detachJob(next.Trucks, jobID, now)

	target := &next.Trucks[ti]
	target.JobIDs = append(target.JobIDs, jobID)
	target.UpdatedAt = now

	assignedTo := truckID
	job := next.Jobs[ji]
	job.Status = entity.ASSIGNED
	job.AssignedTruckID = &assignedTo
	job = warning.ApplyJob(job, now)
	job.UpdatedAt = now
	next.Jobs[ji] = job

	return next, applied()
}

// UnassignJob sends a job back to the queue as READY. A job that no truck
// lists is left alone.
func UnassignJob(s State, jobID string, now time.Time) (State, Outcome) {
	if _, ok := s.JobTruck(jobID); !ok {
		if _, known := entity.FindJob(s.Jobs, jobID); !known {
			return s, refused(ReasonUnknownJob)
		}
		return s, refused(ReasonNotAssigned)
	}

	next := s.Clone()
	detachJob(next.Trucks, jobID, now)

	if ji, ok := entity.FindJob(next.Jobs, jobID); ok {
		job := next.Jobs[ji]
		job.Status = entity.READY
		job.AssignedTruckID = nil
		job = warning.ApplyJob(job, now)
		job.UpdatedAt = now
		next.Jobs[ji] = job
	}

	return next, applied()
}

func removeCrewMember(t *entity.Truck, employeeID string, now time.Time) {
	t.CrewIDs = entity.Without(t.CrewIDs, employeeID)
	if t.PointOfContactID != nil && *t.PointOfContactID == employeeID {
		t.PointOfContactID = nil
	}
	t.UpdatedAt = now
}

// detachJob removes jobID from every truck that lists it.
func detachJob(trucks []entity.Truck, jobID string, now time.Time) {
	for i := range trucks {
		if trucks[i].HasJob(jobID) {
			trucks[i].JobIDs = entity.Without(trucks[i].JobIDs, jobID)
			trucks[i].UpdatedAt = now
		}
	}
}
