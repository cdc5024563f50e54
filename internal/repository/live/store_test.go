package live

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mover-dashboard/dispatch"
	"github.com/mover-dashboard/dispatch/internal/ingest"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := New(rdb, "test")
	tick := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	return s, mr
}

func put(t *testing.T, s *Store, kind ingest.Kind, id string, doc interface{}) {
	t.Helper()

	p, err := ingest.PutPatch(kind, id, doc)
	require.NoError(t, err)
	require.NoError(t, s.Apply(context.Background(), p))
}

func TestPutAndLoadKeepsInsertionOrder(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	put(t, s, ingest.KindJob, "j2", ingest.JobDocument{ID: "j2", CustomerName: "Second", Status: "READY"})
	put(t, s, ingest.KindJob, "j1", ingest.JobDocument{ID: "j1", CustomerName: "First", Flags: []string{"PIANO"}, Status: "READY"})

	assert.True(t, mr.Exists("test:jobs:j1"))
	assert.Equal(t, `"First"`, mr.HGet("test:jobs:j1", "customerName"))

	jobs, err := s.LoadJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "j2", jobs[0].ID)
	assert.Equal(t, "j1", jobs[1].ID)
	assert.Equal(t, []string{"PIANO"}, jobs[1].Flags)
}

func TestPutReplacesWholeDocument(t *testing.T) {
	s, _ := newTestStore(t)

	put(t, s, ingest.KindJob, "j1", ingest.JobDocument{ID: "j1", Notes: "old", Status: "READY"})
	put(t, s, ingest.KindJob, "j1", ingest.JobDocument{ID: "j1", CustomerName: "Smith", Status: "ASSIGNED"})

	jobs, err := s.LoadJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Empty(t, jobs[0].Notes)
	assert.Equal(t, "Smith", jobs[0].CustomerName)
	assert.Equal(t, "ASSIGNED", jobs[0].Status)
}

func TestSetUpdatesAndClearsFields(t *testing.T) {
	s, mr := newTestStore(t)

	put(t, s, ingest.KindTruck, "t1", ingest.TruckDocument{
		ID: "t1", Name: "Truck 1", Capacity: 2, CrewIDs: []string{"e1"}, PointOfContactID: strPtr("e1"),
	})

	err := s.Apply(context.Background(), ingest.Patch{
		Kind: ingest.KindTruck,
		ID:   "t1",
		Op:   ingest.OpSet,
		Fields: map[string]json.RawMessage{
			"crewIds":          json.RawMessage(`["e1","e2"]`),
			"pointOfContactId": json.RawMessage("null"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "", mr.HGet("test:trucks:t1", "pointOfContactId"))

	trucks, err := s.LoadTrucks(context.Background())
	require.NoError(t, err)
	require.Len(t, trucks, 1)
	assert.Equal(t, "Truck 1", trucks[0].Name)
	assert.Equal(t, []string{"e1", "e2"}, trucks[0].CrewIDs)
	assert.Nil(t, trucks[0].PointOfContactID)
}

func TestSetMissingDocumentIsNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Apply(context.Background(), ingest.Patch{
		Kind:   ingest.KindJob,
		ID:     "nope",
		Op:     ingest.OpSet,
		Fields: map[string]json.RawMessage{"status": json.RawMessage(`"READY"`)},
	})

	assert.Equal(t, dispatch.ENOTFOUND, dispatch.ErrorCode(err))
}

func TestApplyRejectsBadPatch(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	err := s.Apply(ctx, ingest.Patch{Kind: "boxes", ID: "b1", Op: ingest.OpDelete})
	assert.Equal(t, dispatch.EINVALID, dispatch.ErrorCode(err))

	err = s.Apply(ctx, ingest.Patch{Kind: ingest.KindJob, Op: ingest.OpDelete})
	assert.Equal(t, dispatch.EINVALID, dispatch.ErrorCode(err))

	err = s.Apply(ctx, ingest.Patch{Kind: ingest.KindJob, ID: "j1", Op: "merge"})
	assert.Equal(t, dispatch.EINVALID, dispatch.ErrorCode(err))
}

func TestDeleteRemovesDocumentAndIndex(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	put(t, s, ingest.KindJob, "j1", ingest.JobDocument{ID: "j1", Status: "READY"})
	require.NoError(t, s.Apply(ctx, ingest.DeletePatch(ingest.KindJob, "j1")))

	assert.False(t, mr.Exists("test:jobs:j1"))

	jobs, err := s.LoadJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestLoadEmployeesByRank(t *testing.T) {
	s, _ := newTestStore(t)

	put(t, s, ingest.KindEmployee, "e1", ingest.EmployeeDocument{ID: "e1", Name: "Ann", Rank: 3})
	put(t, s, ingest.KindEmployee, "e2", ingest.EmployeeDocument{ID: "e2", Name: "Bob", Rank: 9})
	put(t, s, ingest.KindEmployee, "e3", ingest.EmployeeDocument{ID: "e3", Name: "Cy", Rank: 3})

	employees, err := s.LoadEmployees(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"e2", "e1", "e3"}, ids)
}

func TestSeedIfEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	put(t, s, ingest.KindEmployee, "e1", ingest.EmployeeDocument{ID: "e1", Name: "Existing"})

	err := s.SeedIfEmpty(ctx,
		[]ingest.JobDocument{{ID: "j1", Status: "READY"}},
		[]ingest.EmployeeDocument{{ID: "e9", Name: "Seeded"}},
		[]ingest.TruckDocument{{ID: "t1", Name: "Truck 1", Capacity: 2}},
	)
	require.NoError(t, err)

	employees, err := s.LoadEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Existing", employees[0].Name)

	jobs, err := s.LoadJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	trucks, err := s.LoadTrucks(ctx)
	require.NoError(t, err)
	assert.Len(t, trucks, 1)
}

func TestSubscribeReceivesChanges(t *testing.T) {
	s, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := s.Subscribe(ctx)
	require.NoError(t, err)

	put(t, s, ingest.KindJob, "j1", ingest.JobDocument{ID: "j1", Status: "READY"})

	select {
	case c := <-changes:
		assert.Equal(t, ingest.Change{Kind: ingest.KindJob, ID: "j1", Op: ingest.OpPut}, c)
	case <-time.After(2 * time.Second):
		t.Fatal("no change received")
	}

	cancel()
	for range changes {
	}
}

func strPtr(s string) *string {
	return &s
}
