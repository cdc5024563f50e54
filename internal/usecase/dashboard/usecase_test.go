package dashboard

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mover-dashboard/dispatch"
	"github.com/mover-dashboard/dispatch/config"
	"github.com/mover-dashboard/dispatch/internal/board"
	"github.com/mover-dashboard/dispatch/internal/entity"
	"github.com/mover-dashboard/dispatch/internal/ingest"
	"github.com/mover-dashboard/dispatch/internal/repository/memory"
	"github.com/mover-dashboard/dispatch/pkg/logger"
)

var est = time.FixedZone("EST", -5*3600)

// tickingClock advances one second per call.
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	uc     *DashboardUseCase
	store  *memory.Store
	writer *Writer
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := memory.New()
	writer := NewWriter(store, config.WriterConfig{Buffer: 64, MaxAttempts: 2, RetryDelay: time.Millisecond}, logger.NewNop())

	clock := &tickingClock{t: time.Date(2026, 10, 14, 10, 0, 0, 0, est)}
	ids := 0
	uc := New(store, writer, logger.NewNop(),
		board.WithClock(clock.Now),
		board.WithIDGenerator(func() string {
			ids++
			return "new" + string(rune('0'+ids))
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go writer.Run(ctx)
	t.Cleanup(func() {
		writer.Close()
		<-writer.Done()
		cancel()
	})

	require.NoError(t, uc.Load(context.Background()))

	return fixture{uc: uc, store: store, writer: writer}
}

func (f fixture) flush(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.writer.Flush(ctx))
}

func (f fixture) storedTruck(t *testing.T, id string) ingest.TruckDocument {
	t.Helper()

	trucks, err := f.store.LoadTrucks(context.Background())
	require.NoError(t, err)
	for _, tr := range trucks {
		if tr.ID == id {
			return tr
		}
	}
	t.Fatalf("truck %s not stored", id)
	return ingest.TruckDocument{}
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	f := newFixture(t)

	v := f.uc.Board()
	assert.Len(t, v.Trucks, 6)
	assert.Len(t, v.Roster, 14)
	assert.Len(t, v.Queues.NeedsReview, 4, "seed jobs are dated in the past")
	assert.False(t, v.CanUndo)

	jobs, err := f.store.LoadJobs(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 4)
	assert.Empty(t, f.store.Applied(), "seeding is not a patch")
}

func TestDropWritesTruckPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.uc.Drop(ctx, DropDTO{ItemType: "employee", ItemID: "e1", TargetKind: "truck", TargetTruckID: "t1"})
	require.NoError(t, err)
	assert.True(t, res.Applied)

	f.flush(t)
	assert.Equal(t, []string{"e1"}, f.storedTruck(t, "t1").CrewIDs)

	applied := f.store.Applied()
	require.Len(t, applied, 1)
	assert.Equal(t, ingest.KindTruck, applied[0].Kind)
	assert.Equal(t, ingest.OpSet, applied[0].Op)
	assert.Contains(t, applied[0].FieldNames(), "crewIds")

	v := f.uc.Board()
	assert.Len(t, v.Roster, 13)
	assert.Equal(t, "e1", *v.Trucks[0].LeadID)
	assert.True(t, v.CanUndo)
}

func TestDropRefusalsAndErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Drop(ctx, DropDTO{ItemType: "box", ItemID: "e1", TargetKind: "truck", TargetTruckID: "t1"})
	assert.Equal(t, dispatch.EINVALID, dispatch.ErrorCode(err))

	_, err = f.uc.Drop(ctx, DropDTO{ItemType: "employee", ItemID: "e1", TargetKind: "truck"})
	assert.Equal(t, dispatch.EINVALID, dispatch.ErrorCode(err))

	_, err = f.uc.Drop(ctx, DropDTO{ItemType: "employee", ItemID: "e1", TargetKind: "truck", TargetTruckID: "t99"})
	assert.Equal(t, dispatch.ENOTFOUND, dispatch.ErrorCode(err))

	res, err := f.uc.Drop(ctx, DropDTO{ItemType: "employee", ItemID: "e1", TargetKind: "roster"})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, board.ReasonNotAssigned, res.Reason)

	f.flush(t)
	assert.Empty(t, f.store.Applied())
}

func TestUndoWritesInversePatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Drop(ctx, DropDTO{ItemType: "job", ItemID: "j1", TargetKind: "truck", TargetTruckID: "t2"})
	require.NoError(t, err)

	res, err := f.uc.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, res.Applied)

	f.flush(t)
	assert.Empty(t, f.storedTruck(t, "t2").JobIDs)

	jobs, err := f.store.LoadJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "READY", jobs[0].Status)
	assert.Nil(t, jobs[0].AssignedTruckID)

	res, err = f.uc.Undo(ctx)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, board.ReasonEmptyHistory, res.Reason)
}

func TestAddUpdateDeleteJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	added, err := f.uc.AddJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, "j-new1", added.ID)
	assert.Equal(t, string(entity.WarningHard), added.WarningLevel)

	sel, ok := f.uc.Selected()
	require.True(t, ok)
	assert.Equal(t, added.ID, sel.ID)

	upd, err := f.uc.UpdateJob(ctx, added.ID, JobDTO{
		CustomerName:   "Nguyen",
		CustomerPhone:  "(904) 555-0000",
		PickupAddress:  "1 Ocean Blvd, Jacksonville Beach, FL 32250",
		DropoffAddress: "9 River Rd, Mandarin, FL 32223",
		Time:           "2:30 PM",
		Flags:          []string{"piano"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.WarningNone), upd.WarningLevel)
	assert.Equal(t, "2:30 PM", upd.Time)
	assert.Equal(t, "Jacksonville Beach, FL → Mandarin, FL", upd.FromTo)
	assert.Equal(t, "READY", upd.Status)

	require.NoError(t, f.uc.DeleteJob(ctx, added.ID))
	_, ok = f.uc.Selected()
	assert.False(t, ok)

	f.flush(t)
	ops := []ingest.PatchOp{}
	for _, p := range f.store.Applied() {
		if p.Kind == ingest.KindJob {
			ops = append(ops, p.Op)
		}
	}
	assert.Equal(t, []ingest.PatchOp{ingest.OpPut, ingest.OpSet, ingest.OpDelete}, ops)
}

func TestUpdateJobErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.UpdateJob(ctx, "j1", JobDTO{Flags: []string{"hot-tub"}})
	assert.Equal(t, dispatch.EINVALID, dispatch.ErrorCode(err))

	_, err = f.uc.UpdateJob(ctx, "j1", JobDTO{Status: "LOST"})
	assert.Equal(t, dispatch.EINVALID, dispatch.ErrorCode(err))

	_, err = f.uc.UpdateJob(ctx, "j1", JobDTO{Time: "noonish"})
	assert.Equal(t, dispatch.EINVALID, dispatch.ErrorCode(err))

	_, err = f.uc.UpdateJob(ctx, "nope", JobDTO{})
	assert.Equal(t, dispatch.ENOTFOUND, dispatch.ErrorCode(err))
}

func TestMutesContactAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.uc.ToggleJobMute(ctx, "j1")
	require.NoError(t, err)
	assert.True(t, res.Muted)

	_, err = f.uc.ToggleTruckMute(ctx, "t404")
	assert.Equal(t, dispatch.ENOTFOUND, dispatch.ErrorCode(err))

	_, err = f.uc.Drop(ctx, DropDTO{ItemType: "employee", ItemID: "e2", TargetKind: "truck", TargetTruckID: "t1"})
	require.NoError(t, err)

	e2, e3 := "e2", "e3"
	require.NoError(t, f.uc.SetPointOfContact(ctx, "t1", ContactDTO{EmployeeID: &e2}))
	err = f.uc.SetPointOfContact(ctx, "t1", ContactDTO{EmployeeID: &e3})
	assert.Equal(t, dispatch.EINVALID, dispatch.ErrorCode(err))

	fuel := 150
	err = f.uc.UpdateTruckStatus(ctx, "t1", TruckStatusDTO{FuelLevel: &fuel})
	assert.Equal(t, dispatch.EINVALID, dispatch.ErrorCode(err))

	fuel = 15
	require.NoError(t, f.uc.UpdateTruckStatus(ctx, "t1", TruckStatusDTO{FuelLevel: &fuel}))

	v := f.uc.Board()
	assert.Equal(t, "critical", v.Trucks[0].FuelBand)
	assert.Equal(t, string(entity.WarningHard), v.Trucks[0].WarningLevel)
	assert.Equal(t, "e2", *v.Trucks[0].ContactID)
	assert.Equal(t, 1, v.HistoryLen, "only the drop is undoable")

	f.flush(t)
	stored := f.storedTruck(t, "t1")
	assert.Equal(t, 15, stored.FuelLevel)
	require.NotNil(t, stored.PointOfContactID)
	assert.Equal(t, "e2", *stored.PointOfContactID)
}

func TestResetRestoresSeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Drop(ctx, DropDTO{ItemType: "employee", ItemID: "e1", TargetKind: "truck", TargetTruckID: "t1"})
	require.NoError(t, err)
	_, err = f.uc.AddJob(ctx)
	require.NoError(t, err)

	require.NoError(t, f.uc.Reset(ctx))

	v := f.uc.Board()
	assert.False(t, v.CanUndo)
	assert.Len(t, v.Roster, 14)
	assert.Len(t, v.Queues.NeedsReview, 4)

	f.flush(t)
	jobs, err := f.store.LoadJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 4)
	assert.Empty(t, f.storedTruck(t, "t1").CrewIDs)
}

func TestSelection(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SelectJob("nope")
	assert.Equal(t, dispatch.ENOTFOUND, dispatch.ErrorCode(err))

	job, err := f.uc.SelectJob("j2")
	require.NoError(t, err)
	assert.Equal(t, "j2", job.ID)
	assert.NotNil(t, f.uc.Board().Selected)

	f.uc.ClearSelection()
	_, ok := f.uc.Selected()
	assert.False(t, ok)
}

func TestRefreshKeepsNewerSide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	later := time.Date(2027, 1, 1, 0, 0, 0, 0, est)
	changed, err := json.Marshal("Changed Remotely")
	require.NoError(t, err)
	stamp, err := json.Marshal(later)
	require.NoError(t, err)

	require.NoError(t, f.store.Apply(ctx, ingest.Patch{
		Kind: ingest.KindJob,
		ID:   "j2",
		Op:   ingest.OpSet,
		Fields: map[string]json.RawMessage{
			"customerName": changed,
			"updatedAt":    stamp,
		},
	}))

	require.NoError(t, f.uc.Refresh(ctx))

	job, err := f.uc.SelectJob("j2")
	require.NoError(t, err)
	assert.Equal(t, "Changed Remotely", job.CustomerName)
}

func TestRefreshKeepsUnwrittenLocalJob(t *testing.T) {
	store := memory.New()
	writer := NewWriter(store, config.WriterConfig{Buffer: 8, MaxAttempts: 1}, logger.NewNop())
	clock := &tickingClock{t: time.Date(2026, 10, 14, 10, 0, 0, 0, est)}
	uc := New(store, writer, logger.NewNop(), board.WithClock(clock.Now))
	ctx := context.Background()
	require.NoError(t, uc.Load(ctx))

	// The writer is not running, so the new job never reaches the store.
	added, err := uc.AddJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, writer.Stats().Pending)

	require.NoError(t, uc.Refresh(ctx))

	_, err = uc.SelectJob(added.ID)
	assert.NoError(t, err)
}

type fakeFeed struct {
	ch chan ingest.Change
}

func (f *fakeFeed) Subscribe(context.Context) (<-chan ingest.Change, error) {
	return f.ch, nil
}

func TestWatchReloadsOnChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	feed := &fakeFeed{ch: make(chan ingest.Change, 4)}
	done := make(chan error, 1)
	go func() { done <- f.uc.Watch(ctx, feed) }()

	p, err := ingest.PutPatch(ingest.KindEmployee, "e99", ingest.EmployeeDocument{ID: "e99", Name: "Remote Hire", Rank: 1})
	require.NoError(t, err)
	require.NoError(t, f.store.Apply(ctx, p))

	feed.ch <- p.Change()
	close(feed.ch)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return")
	}

	assert.Len(t, f.uc.Board().Roster, 15)
}
