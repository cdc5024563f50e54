package ingest

import (
	"time"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

// Reconcile merges an incoming snapshot into the local collection. For each
// id the copy with the later UpdatedAt wins, so a local change that the
// store has not caught up with survives the snapshot. Entities missing from
// the snapshot are kept only when they were changed locally at or after
// asOf, the point up to which the store is known to be complete. The result follows snapshot order, with kept
// local-only entities appended in local order.
func Reconcile[T any](local, incoming []T, asOf time.Time, id func(T) string, updatedAt func(T) time.Time) []T {
	byID := make(map[string]T, len(local))
	for _, l := range local {
		byID[id(l)] = l
	}

	res := make([]T, 0, len(incoming))
	seen := make(map[string]struct{}, len(incoming))

	for _, in := range incoming {
		key := id(in)
		seen[key] = struct{}{}

		if l, ok := byID[key]; ok && updatedAt(l).After(updatedAt(in)) {
			res = append(res, l)
			continue
		}
		res = append(res, in)
	}

	for _, l := range local {
		if _, ok := seen[id(l)]; ok {
			continue
		}
		if !updatedAt(l).Before(asOf) {
			res = append(res, l)
		}
	}

	return res
}

func ReconcileJobs(local, incoming []entity.Job, asOf time.Time) []entity.Job {
	return Reconcile(local, incoming, asOf,
		func(j entity.Job) string { return j.ID },
		func(j entity.Job) time.Time { return j.UpdatedAt },
	)
}

func ReconcileEmployees(local, incoming []entity.Employee, asOf time.Time) []entity.Employee {
	return Reconcile(local, incoming, asOf,
		func(e entity.Employee) string { return e.ID },
		func(e entity.Employee) time.Time { return e.UpdatedAt },
	)
}

func ReconcileTrucks(local, incoming []entity.Truck, asOf time.Time) []entity.Truck {
	return Reconcile(local, incoming, asOf,
		func(t entity.Truck) string { return t.ID },
		func(t entity.Truck) time.Time { return t.UpdatedAt },
	)
}
