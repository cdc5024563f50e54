// Package queue derives the dispatcher's views of unassigned work: the three
// job queues and the employee roster. Nothing here is stored; every view is
// recomputed from the truck and job collections.
package queue

import (
	"time"

	"github.com/mover-dashboard/dispatch/internal/entity"
	"github.com/mover-dashboard/dispatch/internal/warning"
)

type Queues struct {
	NeedsReview []entity.Job
	Today       []entity.Job
	Waiting     []entity.Job

	// Stale holds unassigned jobs dated before today that did not evaluate
	// hard. It stays empty while past dates are always hard.
	Stale []entity.Job
}

// Len is the number of jobs placed in the three visible queues.
func (q Queues) Len() int {
	return len(q.NeedsReview) + len(q.Today) + len(q.Waiting)
}

// AssignedJobIDs is the union of every truck's JobIDs.
func AssignedJobIDs(trucks []entity.Truck) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, t := range trucks {
		for _, id := range t.JobIDs {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// Unassigned returns the jobs no truck lists, in job order.
func Unassigned(jobs []entity.Job, trucks []entity.Truck) []entity.Job {
	assigned := AssignedJobIDs(trucks)

	res := make([]entity.Job, 0, len(jobs))
	for _, j := range jobs {
		if _, ok := assigned[j.ID]; !ok {
			res = append(res, j)
		}
	}
	return res
}

// Route partitions the unassigned jobs. Hard jobs go to NeedsReview whatever
// their mute state; the rest are bucketed by arrival day relative to now.
// Input order is preserved inside each queue.
func Route(jobs []entity.Job, trucks []entity.Truck, now time.Time) Queues {
	var q Queues

	for _, j := range Unassigned(jobs, trucks) {
		if warning.EvaluateJob(j, now).IsHard() {
			q.NeedsReview = append(q.NeedsReview, j)
			continue
		}

		cmp, ok := warning.CompareDay(j, now)
		switch {
		case !ok || cmp < 0:
			q.Stale = append(q.Stale, j)
		case cmp == 0:
			q.Today = append(q.Today, j)
		default:
			q.Waiting = append(q.Waiting, j)
		}
	}

	return q
}
