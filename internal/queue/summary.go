package queue

import (
	"time"

	"github.com/mover-dashboard/dispatch/internal/entity"
	"github.com/mover-dashboard/dispatch/internal/warning"
)

type Summary struct {
	NeedsReview int `json:"needsReview"`
	Today       int `json:"today"`
	Waiting     int `json:"waiting"`
	Roster      int `json:"roster"`

	TruckWarnings map[entity.WarningLevel]int `json:"truckWarnings"`
	// MutedTrucks counts trucks with a warning that is currently hidden.
	MutedTrucks int `json:"mutedTrucks"`
}

// Summarize counts the board's queues, roster and truck warnings.
func Summarize(jobs []entity.Job, employees []entity.Employee, trucks []entity.Truck, now time.Time) Summary {
	q := Route(jobs, trucks, now)

	s := Summary{
		NeedsReview: len(q.NeedsReview),
		Today:       len(q.Today),
		Waiting:     len(q.Waiting),
		Roster:      len(Roster(employees, trucks)),
		TruckWarnings: map[entity.WarningLevel]int{
			entity.WarningNone: 0,
			entity.WarningSoft: 0,
			entity.WarningHard: 0,
		},
	}

	for _, t := range trucks {
		r := warning.EvaluateTruck(t, warning.TruckContext{
			Crew:      t.Crew(employees),
			JobsCount: len(t.JobIDs),
		})
		s.TruckWarnings[r.Level]++
		if r.Level != entity.WarningNone && !warning.ShowTruckWarning(t, r) {
			s.MutedTrucks++
		}
	}

	return s
}
