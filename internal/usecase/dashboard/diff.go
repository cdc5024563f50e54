package dashboard

import (
	"github.com/mover-dashboard/dispatch/internal/board"
	"github.com/mover-dashboard/dispatch/internal/entity"
	"github.com/mover-dashboard/dispatch/internal/ingest"
)

// diffSnapshots returns the patches that turn before into after. Writes come
// first in employee, job, truck order, then deletes.
func diffSnapshots(before, after board.Snapshot) ([]ingest.Patch, error) {
	var writes, deletes []ingest.Patch

	w, d, err := diffCollection(ingest.KindEmployee, before.Employees, after.Employees,
		func(e entity.Employee) string { return e.ID },
		func(e entity.Employee) interface{} { return ingest.EmployeeToDocument(e) },
	)
	if err != nil {
		return nil, err
	}
	writes, deletes = append(writes, w...), append(deletes, d...)

	w, d, err = diffCollection(ingest.KindJob, before.Jobs, after.Jobs,
		func(j entity.Job) string { return j.ID },
		func(j entity.Job) interface{} { return ingest.JobToDocument(j) },
	)
	if err != nil {
		return nil, err
	}
	writes, deletes = append(writes, w...), append(deletes, d...)

	w, d, err = diffCollection(ingest.KindTruck, before.Trucks, after.Trucks,
		func(t entity.Truck) string { return t.ID },
		func(t entity.Truck) interface{} { return ingest.TruckToDocument(t) },
	)
	if err != nil {
		return nil, err
	}
	writes, deletes = append(writes, w...), append(deletes, d...)

	return append(writes, deletes...), nil
}

func diffCollection[T any](
	kind ingest.Kind,
	before, after []T,
	id func(T) string,
	doc func(T) interface{},
) (writes, deletes []ingest.Patch, err error) {
	old := make(map[string]T, len(before))
	for _, b := range before {
		old[id(b)] = b
	}

	seen := make(map[string]struct{}, len(after))
	for _, a := range after {
		key := id(a)
		seen[key] = struct{}{}

		prev, ok := old[key]
		if !ok {
			p, err := ingest.PutPatch(kind, key, doc(a))
			if err != nil {
				return nil, nil, err
			}
			writes = append(writes, p)
			continue
		}

		p, changed, err := ingest.SetPatch(kind, key, doc(prev), doc(a))
		if err != nil {
			return nil, nil, err
		}
		if changed {
			writes = append(writes, p)
		}
	}

	for _, b := range before {
		if _, ok := seen[id(b)]; !ok {
			deletes = append(deletes, ingest.DeletePatch(kind, id(b)))
		}
	}

	return writes, deletes, nil
}
