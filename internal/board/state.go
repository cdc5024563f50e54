// Package board holds the dispatch board and every transition that changes
// truck crews and job assignments.
package board

import "github.com/mover-dashboard/dispatch/internal/entity"

// State is the part of the board covered by undo.
type State struct {
	Trucks []entity.Truck
	Jobs   []entity.Job
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{
		Trucks: entity.CloneTrucks(s.Trucks),
		Jobs:   entity.CloneJobs(s.Jobs),
	}
}

// CrewTruck returns the truck whose crew holds employeeID.
func (s State) CrewTruck(employeeID string) (int, bool) {
	for i := range s.Trucks {
		if s.Trucks[i].HasCrewMember(employeeID) {
			return i, true
		}
	}
	return -1, false
}

// JobTruck returns the truck listing jobID.
func (s State) JobTruck(jobID string) (int, bool) {
	for i := range s.Trucks {
		if s.Trucks[i].HasJob(jobID) {
			return i, true
		}
	}
	return -1, false
}
