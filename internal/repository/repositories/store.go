package repositories

import (
	"context"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/trm/manager"

	"github.com/mover-dashboard/dispatch"
	"github.com/mover-dashboard/dispatch/internal/ingest"
)

// Store persists the three board collections in Postgres. Every patch runs
// in its own transaction.
type Store struct {
	trm          *manager.Manager
	JobRepo      *JobRepo
	EmployeeRepo *EmployeeRepo
	TruckRepo    *TruckRepo
}

func NewStore(trm *manager.Manager, jobs *JobRepo, employees *EmployeeRepo, trucks *TruckRepo) *Store {
	return &Store{
		trm:          trm,
		JobRepo:      jobs,
		EmployeeRepo: employees,
		TruckRepo:    trucks,
	}
}

func (s *Store) LoadJobs(ctx context.Context) ([]ingest.JobDocument, error) {
	const op = "PgsqlStore.LoadJobs"

	docs, err := s.JobRepo.FetchAll(ctx)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}
	return docs, nil
}

func (s *Store) LoadEmployees(ctx context.Context) ([]ingest.EmployeeDocument, error) {
	const op = "PgsqlStore.LoadEmployees"

	docs, err := s.EmployeeRepo.FetchAll(ctx)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}
	return docs, nil
}

func (s *Store) LoadTrucks(ctx context.Context) ([]ingest.TruckDocument, error) {
	const op = "PgsqlStore.LoadTrucks"

	docs, err := s.TruckRepo.FetchAll(ctx)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}
	return docs, nil
}

// Apply writes one patch. A set patch is merged over the stored row inside
// the transaction; deleting a job also takes it off every truck.
func (s *Store) Apply(ctx context.Context, p ingest.Patch) error {
	op := fmt.Sprintf("PgsqlStore.Apply(%s %s %s)", p.Op, p.Kind, p.ID)

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		switch p.Kind {
		case ingest.KindJob:
			return s.applyJob(ctx, p)
		case ingest.KindEmployee:
			return s.applyEmployee(ctx, p)
		case ingest.KindTruck:
			return s.applyTruck(ctx, p)
		default:
			return dispatch.Errorf(dispatch.EINVALID, "unknown collection %q", p.Kind)
		}
	})
	if err != nil {
		return dispatch.OpError(op, err)
	}

	return nil
}

func (s *Store) applyJob(ctx context.Context, p ingest.Patch) error {
	switch p.Op {
	case ingest.OpDelete:
		if err := s.TruckRepo.DetachJob(ctx, p.ID); err != nil {
			return err
		}
		return s.JobRepo.Delete(ctx, p.ID)
	case ingest.OpPut:
		var doc ingest.JobDocument
		if err := ingest.MergeDocument(ingest.JobDocument{}, p.Fields, &doc); err != nil {
			return dispatch.ErrorWithCode(err, dispatch.EINVALID)
		}
		doc.ID = p.ID
		return s.JobRepo.Save(ctx, doc)
	default:
		cur, err := s.JobRepo.FindById(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := ingest.MergeDocument(*cur, p.Fields, cur); err != nil {
			return dispatch.ErrorWithCode(err, dispatch.EINVALID)
		}
		cur.ID = p.ID
		return s.JobRepo.Save(ctx, *cur)
	}
}

func (s *Store) applyEmployee(ctx context.Context, p ingest.Patch) error {
	switch p.Op {
	case ingest.OpDelete:
		return s.EmployeeRepo.Delete(ctx, p.ID)
	case ingest.OpPut:
		var doc ingest.EmployeeDocument
		if err := ingest.MergeDocument(ingest.EmployeeDocument{}, p.Fields, &doc); err != nil {
			return dispatch.ErrorWithCode(err, dispatch.EINVALID)
		}
		doc.ID = p.ID
		return s.EmployeeRepo.Save(ctx, doc)
	default:
		cur, err := s.EmployeeRepo.FindById(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := ingest.MergeDocument(*cur, p.Fields, cur); err != nil {
			return dispatch.ErrorWithCode(err, dispatch.EINVALID)
		}
		cur.ID = p.ID
		return s.EmployeeRepo.Save(ctx, *cur)
	}
}

func (s *Store) applyTruck(ctx context.Context, p ingest.Patch) error {
	switch p.Op {
	case ingest.OpDelete:
		return s.TruckRepo.Delete(ctx, p.ID)
	case ingest.OpPut:
		var doc ingest.TruckDocument
		if err := ingest.MergeDocument(ingest.TruckDocument{}, p.Fields, &doc); err != nil {
			return dispatch.ErrorWithCode(err, dispatch.EINVALID)
		}
		doc.ID = p.ID
		return s.TruckRepo.Save(ctx, doc)
	default:
		cur, err := s.TruckRepo.FindById(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := ingest.MergeDocument(*cur, p.Fields, cur); err != nil {
			return dispatch.ErrorWithCode(err, dispatch.EINVALID)
		}
		cur.ID = p.ID
		return s.TruckRepo.Save(ctx, *cur)
	}
}

// SeedIfEmpty fills each empty collection with the given documents in one
// transaction. Collections that already hold rows are left alone.
func (s *Store) SeedIfEmpty(
	ctx context.Context,
	jobs []ingest.JobDocument,
	employees []ingest.EmployeeDocument,
	trucks []ingest.TruckDocument,
) error {
	const op = "PgsqlStore.SeedIfEmpty"

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		if n, err := s.EmployeeRepo.Count(ctx); err != nil {
			return err
		} else if n == 0 {
			if err := s.EmployeeRepo.BatchSave(ctx, employees); err != nil {
				return err
			}
		}

		if n, err := s.TruckRepo.Count(ctx); err != nil {
			return err
		} else if n == 0 {
			if err := s.TruckRepo.BatchSave(ctx, trucks); err != nil {
				return err
			}
		}

		if n, err := s.JobRepo.Count(ctx); err != nil {
			return err
		} else if n == 0 {
			if err := s.JobRepo.BatchSave(ctx, jobs); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return dispatch.OpError(op, err)
	}

	return nil
}
