package entity

import "time"

type FuelBand string

const (
	FuelOK       FuelBand = "ok"
	FuelLow      FuelBand = "low"
	FuelCritical FuelBand = "critical"
)

// Fuel thresholds, in percent.
const (
	FuelCriticalBelow = 20
	FuelLowBelow      = 30
)

func FuelBandFor(level int) FuelBand {
	switch {
	case level < FuelCriticalBelow:
		return FuelCritical
	case level < FuelLowBelow:
		return FuelLow
	default:
		return FuelOK
	}
}

type Truck struct {
	ID        string
	Name      string
	Capacity  int
	FuelLevel int
	Ready     bool

	// CrewIDs is ordered, unique and never longer than Capacity.
	CrewIDs []string
	JobIDs  []string

	PointOfContactID *string
	WarningMuted     bool

	UpdatedAt time.Time
}

func (t Truck) IsFull() bool {
	return len(t.CrewIDs) >= t.Capacity
}

func (t Truck) HasCrewMember(employeeID string) bool {
	return contains(t.CrewIDs, employeeID)
}

func (t Truck) HasJob(jobID string) bool {
	return contains(t.JobIDs, jobID)
}

// Crew resolves CrewIDs against the roster in crew order. Unknown ids are
// skipped.
func (t Truck) Crew(employees []Employee) []Employee {
	res := make([]Employee, 0, len(t.CrewIDs))
	for _, id := range t.CrewIDs {
		if i, ok := FindEmployee(employees, id); ok {
			res = append(res, employees[i])
		}
	}
	return res
}

// Jobs resolves JobIDs against the job set in truck order.
func (t Truck) Jobs(jobs []Job) []Job {
	res := make([]Job, 0, len(t.JobIDs))
	for _, id := range t.JobIDs {
		if i, ok := FindJob(jobs, id); ok {
			res = append(res, jobs[i])
		}
	}
	return res
}

func (t Truck) Clone() Truck {
	c := t
	c.CrewIDs = append([]string{}, t.CrewIDs...)
	c.JobIDs = append([]string{}, t.JobIDs...)
	if t.PointOfContactID != nil {
		id := *t.PointOfContactID
		c.PointOfContactID = &id
	}
	return c
}

func CloneTrucks(trucks []Truck) []Truck {
	if trucks == nil {
		return nil
	}
	res := make([]Truck, len(trucks))
	for i, t := range trucks {
		res[i] = t.Clone()
	}
	return res
}

func FindTruck(trucks []Truck, id string) (int, bool) {
	for i := range trucks {
		if trucks[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns ids with every occurrence of id removed.
func Without(ids []string, id string) []string {
	res := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			res = append(res, v)
		}
	}
	return res
}
