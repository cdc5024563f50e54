package dashboard

import (
	"context"

	"github.com/mover-dashboard/dispatch/internal/ingest"
)

// Store is the document store behind the board.
type Store interface {
	LoadJobs(ctx context.Context) ([]ingest.JobDocument, error)
	LoadEmployees(ctx context.Context) ([]ingest.EmployeeDocument, error)
	LoadTrucks(ctx context.Context) ([]ingest.TruckDocument, error)
	Apply(ctx context.Context, p ingest.Patch) error
}

// Seeder is implemented by stores that can be filled with the seed dataset.
type Seeder interface {
	SeedIfEmpty(
		ctx context.Context,
		jobs []ingest.JobDocument,
		employees []ingest.EmployeeDocument,
		trucks []ingest.TruckDocument,
	) error
}

// Feed announces writes made by other processes.
type Feed interface {
	Subscribe(ctx context.Context) (<-chan ingest.Change, error)
}
