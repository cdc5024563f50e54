package dashboard

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/go-playground/validator.v9"

	"github.com/mover-dashboard/dispatch"
	"github.com/mover-dashboard/dispatch/internal/board"
	"github.com/mover-dashboard/dispatch/internal/entity"
	"github.com/mover-dashboard/dispatch/internal/ingest"
	"github.com/mover-dashboard/dispatch/internal/queue"
	"github.com/mover-dashboard/dispatch/internal/seed"
	"github.com/mover-dashboard/dispatch/pkg/logger"
	"github.com/mover-dashboard/dispatch/pkg/validations"
)

// DashboardUseCase owns the board of one process. Mutations run under a
// lock; every applied change is diffed into patches for the writer.
type DashboardUseCase struct {
	mu        sync.Mutex
	board     *board.Board
	store     Store
	writer    *Writer
	log       logger.Logger
	validator *validator.Validate
}

// New starts from the seed dataset; call Load to read the store.
func New(store Store, writer *Writer, log logger.Logger, opts ...board.Option) *DashboardUseCase {

	v := validator.New()
	validations.Register(v)
	_ = v.RegisterValidation("job_status", job_status)

	return &DashboardUseCase{
		board:     board.New(seed.Snapshot(time.Now()), opts...),
		store:     store,
		writer:    writer,
		log:       log,
		validator: v,
	}
}

// Load seeds an empty store when it supports seeding, then replaces the
// board with the stored collections. An empty collection keeps the seed.
func (uc *DashboardUseCase) Load(ctx context.Context) error {
	op := "DashboardUseCase.Load"

	if seeder, ok := uc.store.(Seeder); ok {
		uc.mu.Lock()
		initial := uc.board.Snapshot()
		uc.mu.Unlock()

		if err := seeder.SeedIfEmpty(ctx, jobDocs(initial.Jobs), employeeDocs(initial.Employees), truckDocs(initial.Trucks)); err != nil {
			return dispatch.OpError(op, err)
		}
	}

	snap, err := uc.loadSnapshot(ctx)
	if err != nil {
		return dispatch.OpError(op, err)
	}

	uc.mu.Lock()
	uc.board.Replace(snap)
	uc.mu.Unlock()

	uc.log.Info("board loaded",
		logger.Int("jobs", len(snap.Jobs)),
		logger.Int("employees", len(snap.Employees)),
		logger.Int("trucks", len(snap.Trucks)),
	)

	return nil
}

// Refresh reads the store again and merges it into the board, keeping local
// changes the store has not caught up with.
func (uc *DashboardUseCase) Refresh(ctx context.Context) error {
	op := "DashboardUseCase.Refresh"

	asOf := uc.now()
	if since, ok := uc.writer.PendingSince(); ok && since.Before(asOf) {
		asOf = since
	}

	snap, err := uc.loadSnapshot(ctx)
	if err != nil {
		return dispatch.OpError(op, err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	local := uc.board.Snapshot()
	merged := board.Snapshot{}
	if snap.Jobs != nil {
		merged.Jobs = ingest.ReconcileJobs(local.Jobs, snap.Jobs, asOf)
	}
	if snap.Employees != nil {
		merged.Employees = ingest.ReconcileEmployees(local.Employees, snap.Employees, asOf)
	}
	if snap.Trucks != nil {
		merged.Trucks = ingest.ReconcileTrucks(local.Trucks, snap.Trucks, asOf)
	}
	uc.board.Replace(merged)

	return nil
}

// loadSnapshot reads the three collections concurrently. Empty collections
// come back nil.
func (uc *DashboardUseCase) loadSnapshot(ctx context.Context) (board.Snapshot, error) {
	var (
		jobs      []ingest.JobDocument
		employees []ingest.EmployeeDocument
		trucks    []ingest.TruckDocument
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = uc.store.LoadJobs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = uc.store.LoadEmployees(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		trucks, err = uc.store.LoadTrucks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return board.Snapshot{}, err
	}

	now := uc.now()
	snap := board.Snapshot{}
	if len(jobs) > 0 {
		snap.Jobs = ingest.NormalizeJobs(jobs, now)
	}
	if len(employees) > 0 {
		snap.Employees = ingest.NormalizeEmployees(employees)
	}
	if len(trucks) > 0 {
		snap.Trucks = ingest.NormalizeTrucks(trucks)
	}

	return snap, nil
}

// Watch reloads the board on every change announced by feed until ctx is
// done.
func (uc *DashboardUseCase) Watch(ctx context.Context, feed Feed) error {
	op := "DashboardUseCase.Watch"

	changes, err := feed.Subscribe(ctx)
	if err != nil {
		return dispatch.OpError(op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-changes:
			if !ok {
				return nil
			}
			// Coalesce a burst of changes into one reload.
			for drained := false; !drained; {
				select {
				case _, ok = <-changes:
					if !ok {
						drained = true
					}
				default:
					drained = true
				}
			}

			if err := uc.Refresh(ctx); err != nil {
				uc.log.Error("board refresh failed",
					logger.String("kind", string(c.Kind)),
					logger.String("id", c.ID),
					logger.Err(err),
				)
			}
		}
	}
}

func (uc *DashboardUseCase) now() time.Time {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.board.Now()
}

// mutate runs fn on the board and submits the resulting patches.
func (uc *DashboardUseCase) mutate(op string, fn func(b *board.Board) error) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	at := uc.board.Now()
	before := uc.board.Snapshot()
	if err := fn(uc.board); err != nil {
		return dispatch.OpError(op, err)
	}

	patches, err := diffSnapshots(before, uc.board.Snapshot())
	if err != nil {
		return dispatch.OpError(op, err)
	}
	uc.writer.Submit(at, patches...)

	return nil
}

// invalid reports a failed DTO validation with the validator's message.
func invalid(op string, err error) error {
	return &dispatch.Error{Op: op, Code: dispatch.EINVALID, Message: err.Error(), Err: err}
}

func outcomeError(out board.Outcome) error {
	if out.NotFound() {
		return dispatch.Errorf(dispatch.ENOTFOUND, "%s", out.Reason)
	}
	return nil
}

func (uc *DashboardUseCase) Board() BoardView {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return boardView(uc.board, uc.writer.Stats())
}

func (uc *DashboardUseCase) Queues() QueuesView {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return queuesView(uc.board.Queues(), uc.board.Now())
}

func (uc *DashboardUseCase) Summary() queue.Summary {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.board.Summary()
}

// Drop applies a drag and drop gesture. A refusal that names a missing
// entity is ENOTFOUND; other refusals are reported in the result.
func (uc *DashboardUseCase) Drop(ctx context.Context, dto DropDTO) (DropResult, error) {
	op := "DashboardUseCase.Drop"

	if err := uc.validator.Struct(dto); err != nil {
		return DropResult{}, invalid(op, err)
	}
	if dto.TargetKind == string(board.TargetTruck) && strings.TrimSpace(dto.TargetTruckID) == "" {
		return DropResult{}, dispatch.OpError(op, dispatch.Errorf(dispatch.EINVALID, "targetTruckId is required for a truck target"))
	}

	var out board.Outcome
	err := uc.mutate(op, func(b *board.Board) error {
		out = b.Drop(
			board.Item{Type: board.ItemType(dto.ItemType), ID: dto.ItemID, SourceTruckID: dto.SourceTruckID},
			board.Target{Kind: board.TargetKind(dto.TargetKind), TruckID: dto.TargetTruckID},
		)
		return outcomeError(out)
	})
	if err != nil {
		return DropResult{}, err
	}

	return DropResult{Applied: out.Applied, Reason: out.Reason}, nil
}

func (uc *DashboardUseCase) Undo(ctx context.Context) (DropResult, error) {
	op := "DashboardUseCase.Undo"

	var out board.Outcome
	if err := uc.mutate(op, func(b *board.Board) error {
		out = b.Undo()
		return nil
	}); err != nil {
		return DropResult{}, err
	}

	return DropResult{Applied: out.Applied, Reason: out.Reason}, nil
}

// Reset restores the seed dataset and clears history.
func (uc *DashboardUseCase) Reset(ctx context.Context) error {
	op := "DashboardUseCase.Reset"

	return uc.mutate(op, func(b *board.Board) error {
		b.Reset()
		return nil
	})
}

func (uc *DashboardUseCase) AddJob(ctx context.Context) (JobView, error) {
	op := "DashboardUseCase.AddJob"

	var job entity.Job
	err := uc.mutate(op, func(b *board.Board) error {
		job = b.AddJob()
		return nil
	})
	if err != nil {
		return JobView{}, err
	}

	return jobView(job, uc.now()), nil
}

func (uc *DashboardUseCase) UpdateJob(ctx context.Context, id string, dto JobDTO) (JobView, error) {
	op := "DashboardUseCase.UpdateJob"

	if err := uc.validator.Struct(dto); err != nil {
		return JobView{}, invalid(op, err)
	}

	var job entity.Job
	err := uc.mutate(op, func(b *board.Board) error {
		now := b.Now()

		var cur entity.Job
		for _, j := range b.Jobs() {
			if j.ID == id {
				cur = j
			}
		}
		if cur.ID == "" {
			return dispatch.Errorf(dispatch.ENOTFOUND, "job %q not found", id)
		}

		upd := jobFromDTO(id, dto)
		if strings.TrimSpace(dto.ScheduledArrival) == "" && dto.Time != "" {
			base := now
			if t, ok := cur.Arrival(now.Location()); ok {
				base = t
			}
			if t, ok := ingest.CoerceClock(dto.Time, base, now.Location()); ok {
				upd.ScheduledArrival = t.Format(time.RFC3339)
			}
		}

		var out board.Outcome
		job, out = b.UpdateJob(upd)
		return outcomeError(out)
	})
	if err != nil {
		return JobView{}, err
	}

	return jobView(job, uc.now()), nil
}

func jobFromDTO(id string, dto JobDTO) entity.Job {
	flags := make([]entity.JobFlag, 0, len(dto.Flags))
	for _, f := range dto.Flags {
		flags = append(flags, entity.JobFlag(f))
	}

	return entity.Job{
		ID:               id,
		CustomerName:     strings.TrimSpace(dto.CustomerName),
		CustomerPhone:    strings.TrimSpace(dto.CustomerPhone),
		ScheduledArrival: strings.TrimSpace(dto.ScheduledArrival),
		Time:             strings.TrimSpace(dto.Time),
		PickupAddress:    strings.TrimSpace(dto.PickupAddress),
		DropoffAddress:   strings.TrimSpace(dto.DropoffAddress),
		FromTo:           ingest.NormalizeFromTo(dto.FromTo),
		Flags:            flags,
		Status:           entity.JobStatus(strings.ToUpper(strings.TrimSpace(dto.Status))),
		Notes:            dto.Notes,
	}
}

func (uc *DashboardUseCase) DeleteJob(ctx context.Context, id string) error {
	op := "DashboardUseCase.DeleteJob"

	return uc.mutate(op, func(b *board.Board) error {
		return outcomeError(b.DeleteJob(id))
	})
}

func (uc *DashboardUseCase) ToggleJobMute(ctx context.Context, id string) (MuteResult, error) {
	op := "DashboardUseCase.ToggleJobMute"

	res := MuteResult{ID: id}
	err := uc.mutate(op, func(b *board.Board) error {
		var out board.Outcome
		res.Muted, out = b.ToggleJobMute(id)
		return outcomeError(out)
	})

	return res, err
}

func (uc *DashboardUseCase) ToggleTruckMute(ctx context.Context, id string) (MuteResult, error) {
	op := "DashboardUseCase.ToggleTruckMute"

	res := MuteResult{ID: id}
	err := uc.mutate(op, func(b *board.Board) error {
		var out board.Outcome
		res.Muted, out = b.ToggleTruckMute(id)
		return outcomeError(out)
	})

	return res, err
}

func (uc *DashboardUseCase) SetPointOfContact(ctx context.Context, truckID string, dto ContactDTO) error {
	op := "DashboardUseCase.SetPointOfContact"

	return uc.mutate(op, func(b *board.Board) error {
		return b.SetPointOfContact(truckID, dto.EmployeeID)
	})
}

func (uc *DashboardUseCase) UpdateTruckStatus(ctx context.Context, truckID string, dto TruckStatusDTO) error {
	op := "DashboardUseCase.UpdateTruckStatus"

	if err := uc.validator.Struct(dto); err != nil {
		return invalid(op, err)
	}

	return uc.mutate(op, func(b *board.Board) error {
		return b.UpdateTruckStatus(truckID, board.TruckStatus{FuelLevel: dto.FuelLevel, Ready: dto.Ready})
	})
}

func (uc *DashboardUseCase) SelectJob(id string) (JobView, error) {
	op := "DashboardUseCase.SelectJob"

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.board.Select(id); err != nil {
		return JobView{}, dispatch.OpError(op, err)
	}
	job, _ := uc.board.Selected()

	return jobView(job, uc.board.Now()), nil
}

func (uc *DashboardUseCase) ClearSelection() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.board.ClearSelection()
}

func (uc *DashboardUseCase) Selected() (JobView, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	job, ok := uc.board.Selected()
	if !ok {
		return JobView{}, false
	}
	return jobView(job, uc.board.Now()), true
}

func jobDocs(jobs []entity.Job) []ingest.JobDocument {
	res := make([]ingest.JobDocument, 0, len(jobs))
	for _, j := range jobs {
		res = append(res, ingest.JobToDocument(j))
	}
	return res
}

func employeeDocs(employees []entity.Employee) []ingest.EmployeeDocument {
	res := make([]ingest.EmployeeDocument, 0, len(employees))
	for _, e := range employees {
		res = append(res, ingest.EmployeeToDocument(e))
	}
	return res
}

func truckDocs(trucks []entity.Truck) []ingest.TruckDocument {
	res := make([]ingest.TruckDocument, 0, len(trucks))
	for _, t := range trucks {
		res = append(res, ingest.TruckToDocument(t))
	}
	return res
}
