// Package memory is a process-local document store. It backs STORE_DRIVER=memory
// and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mover-dashboard/dispatch"
	"github.com/mover-dashboard/dispatch/internal/ingest"
)

type collection[T any] struct {
	order []string
	docs  map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{docs: make(map[string]T)}
}

func (c *collection[T]) list() []T {
	res := make([]T, 0, len(c.order))
	for _, id := range c.order {
		res = append(res, c.docs[id])
	}
	return res
}

func (c *collection[T]) apply(p ingest.Patch) error {
	switch p.Op {
	case ingest.OpDelete:
		if _, ok := c.docs[p.ID]; !ok {
			return dispatch.Errorf(dispatch.ENOTFOUND, "%s %q not found", p.Kind, p.ID)
		}
		delete(c.docs, p.ID)
		for i, id := range c.order {
			if id == p.ID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
		return nil
	case ingest.OpPut:
		var empty, doc T
		if err := ingest.MergeDocument(empty, p.Fields, &doc); err != nil {
			return dispatch.ErrorWithCode(err, dispatch.EINVALID)
		}
		if _, ok := c.docs[p.ID]; !ok {
			c.order = append(c.order, p.ID)
		}
		c.docs[p.ID] = doc
		return nil
	case ingest.OpSet:
		cur, ok := c.docs[p.ID]
		if !ok {
			return dispatch.Errorf(dispatch.ENOTFOUND, "%s %q not found", p.Kind, p.ID)
		}
		var doc T
		if err := ingest.MergeDocument(cur, p.Fields, &doc); err != nil {
			return dispatch.ErrorWithCode(err, dispatch.EINVALID)
		}
		c.docs[p.ID] = doc
		return nil
	default:
		return dispatch.Errorf(dispatch.EINVALID, "unknown patch op %q", p.Op)
	}
}

type Store struct {
	mu        sync.RWMutex
	jobs      *collection[ingest.JobDocument]
	employees *collection[ingest.EmployeeDocument]
	trucks    *collection[ingest.TruckDocument]
	applied   []ingest.Patch
}

func New() *Store {
	return &Store{
		jobs:      newCollection[ingest.JobDocument](),
		employees: newCollection[ingest.EmployeeDocument](),
		trucks:    newCollection[ingest.TruckDocument](),
	}
}

func (s *Store) LoadJobs(context.Context) ([]ingest.JobDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.jobs.list(), nil
}

func (s *Store) LoadEmployees(context.Context) ([]ingest.EmployeeDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.employees.list()
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Rank > docs[j].Rank
	})
	return docs, nil
}

func (s *Store) LoadTrucks(context.Context) ([]ingest.TruckDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.trucks.list(), nil
}

func (s *Store) Apply(_ context.Context, p ingest.Patch) error {
	const op = "MemoryStore.Apply"

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch p.Kind {
	case ingest.KindJob:
		err = s.jobs.apply(p)
	case ingest.KindEmployee:
		err = s.employees.apply(p)
	case ingest.KindTruck:
		err = s.trucks.apply(p)
	default:
		err = dispatch.Errorf(dispatch.EINVALID, "unknown collection %q", p.Kind)
	}
	if err != nil {
		return dispatch.OpError(op, err)
	}

	s.applied = append(s.applied, p)
	return nil
}

// Applied returns every patch written so far, oldest first.
func (s *Store) Applied() []ingest.Patch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]ingest.Patch(nil), s.applied...)
}

// SeedIfEmpty fills each empty collection with the given documents.
func (s *Store) SeedIfEmpty(
	_ context.Context,
	jobs []ingest.JobDocument,
	employees []ingest.EmployeeDocument,
	trucks []ingest.TruckDocument,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.jobs.order) == 0 {
		for _, d := range jobs {
			s.jobs.order = append(s.jobs.order, d.ID)
			s.jobs.docs[d.ID] = d
		}
	}
	if len(s.employees.order) == 0 {
		for _, d := range employees {
			s.employees.order = append(s.employees.order, d.ID)
			s.employees.docs[d.ID] = d
		}
	}
	if len(s.trucks.order) == 0 {
		for _, d := range trucks {
			s.trucks.order = append(s.trucks.order, d.ID)
			s.trucks.docs[d.ID] = d
		}
	}

	return nil
}
