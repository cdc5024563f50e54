package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

func TestReconcileJobsKeepsNewer(t *testing.T) {
	older, newer := now.Add(-time.Minute), now

	local := []entity.Job{
		{ID: "j1", Status: entity.ASSIGNED, UpdatedAt: newer},
		{ID: "j2", Status: entity.READY, UpdatedAt: older},
	}
	incoming := []entity.Job{
		{ID: "j2", Status: entity.LOADED, UpdatedAt: newer},
		{ID: "j1", Status: entity.READY, UpdatedAt: older},
	}

	got := ReconcileJobs(local, incoming, now)

	assert.Equal(t, []entity.Job{
		{ID: "j2", Status: entity.LOADED, UpdatedAt: newer},
		{ID: "j1", Status: entity.ASSIGNED, UpdatedAt: newer},
	}, got)
}

func TestReconcileEqualTimestampsTakeIncoming(t *testing.T) {
	local := []entity.Employee{{ID: "e1", Name: "local", UpdatedAt: now}}
	incoming := []entity.Employee{{ID: "e1", Name: "store", UpdatedAt: now}}

	got := ReconcileEmployees(local, incoming, now)

	assert.Equal(t, "store", got[0].Name)
}

func TestReconcileLocalOnlyEntities(t *testing.T) {
	asOf := now.Add(-time.Second)
	local := []entity.Truck{
		{ID: "t1"},
		{ID: "t9", UpdatedAt: now},
		{ID: "t8", UpdatedAt: asOf.Add(-time.Hour)},
	}
	incoming := []entity.Truck{{ID: "t2"}}

	got := ReconcileTrucks(local, incoming, asOf)

	ids := make([]string, 0, len(got))
	for _, tr := range got {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"t2", "t9"}, ids)
}
