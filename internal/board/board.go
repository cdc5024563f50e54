package board

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mover-dashboard/dispatch"
	"github.com/mover-dashboard/dispatch/internal/entity"
	"github.com/mover-dashboard/dispatch/internal/queue"
	"github.com/mover-dashboard/dispatch/internal/warning"
)

// NewJobNote is the note placed on a freshly added job.
const NewJobNote = "Please update job details."

// Snapshot is the full content of a board.
type Snapshot struct {
	Trucks    []entity.Truck
	Jobs      []entity.Job
	Employees []entity.Employee
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Trucks:    entity.CloneTrucks(s.Trucks),
		Jobs:      entity.CloneJobs(s.Jobs),
		Employees: entity.CloneEmployees(s.Employees),
	}
}

// TruckStatus carries externally reported truck fields. Nil fields are left
// unchanged.
type TruckStatus struct {
	FuelLevel *int
	Ready     *bool
}

type Option func(*Board)

func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

func WithHistoryLimit(limit int) Option {
	return func(b *Board) { b.history = NewHistory(limit) }
}

func WithIDGenerator(newID func() string) Option {
	return func(b *Board) { b.newID = newID }
}

// Board is the in-memory dispatch board. It is not safe for concurrent use.
type Board struct {
	state     State
	employees []entity.Employee

	initial  Snapshot
	history  *History
	selected string

	now   func() time.Time
	newID func() string
}

func New(initial Snapshot, opts ...Option) *Board {
	b := &Board{
		initial: initial.Clone(),
		history: NewHistory(DefaultHistoryLimit),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.load(b.initial)

	return b
}

func (b *Board) load(s Snapshot) {
	b.state = State{
		Trucks: entity.CloneTrucks(s.Trucks),
		Jobs:   warning.ApplyJobs(s.Jobs, b.now()),
	}
	b.employees = entity.CloneEmployees(s.Employees)
}

func (b *Board) Now() time.Time { return b.now() }

// State returns a deep copy of the undoable state.
func (b *Board) State() State { return b.state.Clone() }

// Snapshot returns a deep copy of everything on the board with job warnings
// evaluated at the current time.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Trucks:    entity.CloneTrucks(b.state.Trucks),
		Jobs:      warning.ApplyJobs(b.state.Jobs, b.now()),
		Employees: entity.CloneEmployees(b.employees),
	}
}

func (b *Board) Trucks() []entity.Truck { return entity.CloneTrucks(b.state.Trucks) }

func (b *Board) Jobs() []entity.Job { return warning.ApplyJobs(b.state.Jobs, b.now()) }

func (b *Board) Employees() []entity.Employee { return entity.CloneEmployees(b.employees) }

func (b *Board) Queues() queue.Queues {
	return queue.Route(warning.ApplyJobs(b.state.Jobs, b.now()), b.state.Trucks, b.now())
}

func (b *Board) Roster() []entity.Employee {
	return entity.CloneEmployees(queue.Roster(b.employees, b.state.Trucks))
}

func (b *Board) Summary() queue.Summary {
	return queue.Summarize(b.state.Jobs, b.employees, b.state.Trucks, b.now())
}

func (b *Board) HistoryLen() int { return b.history.Len() }

func (b *Board) CanUndo() bool { return b.history.Len() > 0 }

func (b *Board) commit(next State, out Outcome) Outcome {
	if out.Applied {
		b.history.Push(b.state)
		b.state = next
	}
	return out
}

func (b *Board) hasEmployee(id string) bool {
	_, ok := entity.FindEmployee(b.employees, id)
	return ok
}

// Drop applies a drag and drop gesture.
func (b *Board) Drop(item Item, target Target) Outcome {
	if item.Type == ItemEmployee && !b.hasEmployee(item.ID) {
		return refused(ReasonUnknownEmployee)
	}
	return b.commit(Drop(b.state, item, target, b.now()))
}

func (b *Board) AssignEmployee(employeeID, truckID string) Outcome {
	if !b.hasEmployee(employeeID) {
		return refused(ReasonUnknownEmployee)
	}
	return b.commit(AssignEmployee(b.state, employeeID, truckID, b.now()))
}

func (b *Board) UnassignEmployee(employeeID string) Outcome {
	return b.commit(UnassignEmployee(b.state, employeeID, b.now()))
}

func (b *Board) AssignJob(jobID, truckID string) Outcome {
	return b.commit(AssignJob(b.state, jobID, truckID, b.now()))
}

func (b *Board) UnassignJob(jobID string) Outcome {
	return b.commit(UnassignJob(b.state, jobID, b.now()))
}

// AddJob appends a blank READY job dated now and opens it for editing.
func (b *Board) AddJob() entity.Job {
	now := b.now()

	job := warning.ApplyJob(entity.Job{
		ID:               "j-" + b.newID(),
		ScheduledArrival: now.Format(time.RFC3339),
		Time:             now.Format(entity.DisplayTimeLayout),
		Flags:            []entity.JobFlag{},
		Status:           entity.READY,
		Notes:            NewJobNote,
		UpdatedAt:        now,
	}, now)

	next := b.state.Clone()
	next.Jobs = append(next.Jobs, job)
	b.commit(next, applied())
	b.selected = job.ID

	return job.Clone()
}

// UpdateJob replaces the editable fields of a job. Identity, truck
// assignment and mute state are kept; the display time and route label are
// derived again from the new values. The label needs both addresses.
func (b *Board) UpdateJob(job entity.Job) (entity.Job, Outcome) {
	ji, ok := entity.FindJob(b.state.Jobs, job.ID)
	if !ok {
		return entity.Job{}, refused(ReasonUnknownJob)
	}
	now := b.now()
	cur := b.state.Jobs[ji]

	upd := job.Clone()
	upd.AssignedTruckID = cur.Clone().AssignedTruckID
	upd.WarningMuted = cur.WarningMuted
	if !entity.IsValidJobStatus(string(upd.Status)) {
		upd.Status = cur.Status
	}

	flags := make([]entity.JobFlag, 0, len(upd.Flags))
	for _, f := range upd.Flags {
		if n := entity.NormalizeFlag(string(f)); n != "" {
			flags = append(flags, entity.JobFlag(n))
		}
	}
	upd.Flags = flags

	if t, ok := upd.Arrival(now.Location()); ok {
		upd.Time = t.In(now.Location()).Format(entity.DisplayTimeLayout)
	}
	upd.FromTo = ""
	if !warning.IsBlank(upd.PickupAddress) && !warning.IsBlank(upd.DropoffAddress) {
		upd.FromTo = entity.FromToDisplay(upd.PickupAddress, upd.DropoffAddress)
	}

	upd = warning.ApplyJob(upd, now)
	upd.UpdatedAt = now

	next := b.state.Clone()
	next.Jobs[ji] = upd

	return upd.Clone(), b.commit(next, applied())
}

// DeleteJob removes a job and every truck reference to it.
func (b *Board) DeleteJob(jobID string) Outcome {
	ji, ok := entity.FindJob(b.state.Jobs, jobID)
	if !ok {
		return refused(ReasonUnknownJob)
	}

	next := b.state.Clone()
	detachJob(next.Trucks, jobID, b.now())
	next.Jobs = append(next.Jobs[:ji], next.Jobs[ji+1:]...)

	if b.selected == jobID {
		b.selected = ""
	}

	return b.commit(next, applied())
}

// ToggleJobMute flips a job's mute flag and returns the new value. Mutes are
// not recorded in history.
func (b *Board) ToggleJobMute(jobID string) (bool, Outcome) {
	ji, ok := entity.FindJob(b.state.Jobs, jobID)
	if !ok {
		return false, refused(ReasonUnknownJob)
	}

	job := &b.state.Jobs[ji]
	job.WarningMuted = !job.WarningMuted
	job.UpdatedAt = b.now()

	return job.WarningMuted, applied()
}

func (b *Board) ToggleTruckMute(truckID string) (bool, Outcome) {
	ti, ok := entity.FindTruck(b.state.Trucks, truckID)
	if !ok {
		return false, refused(ReasonUnknownTruck)
	}

	truck := &b.state.Trucks[ti]
	truck.WarningMuted = !truck.WarningMuted
	truck.UpdatedAt = b.now()

	return truck.WarningMuted, applied()
}

// SetPointOfContact overrides the displayed contact of a truck. A nil
// employeeID clears the override.
func (b *Board) SetPointOfContact(truckID string, employeeID *string) error {
	ti, ok := entity.FindTruck(b.state.Trucks, truckID)
	if !ok {
		return dispatch.Errorf(dispatch.ENOTFOUND, "truck %q not found", truckID)
	}

	truck := &b.state.Trucks[ti]
	if employeeID == nil || strings.TrimSpace(*employeeID) == "" {
		truck.PointOfContactID = nil
		truck.UpdatedAt = b.now()
		return nil
	}

	if !truck.HasCrewMember(*employeeID) {
		return dispatch.Errorf(dispatch.EINVALID, "employee %q is not on truck %q", *employeeID, truckID)
	}

	id := *employeeID
	truck.PointOfContactID = &id
	truck.UpdatedAt = b.now()

	return nil
}

// UpdateTruckStatus applies fuel and readiness reported from outside.
func (b *Board) UpdateTruckStatus(truckID string, st TruckStatus) error {
	ti, ok := entity.FindTruck(b.state.Trucks, truckID)
	if !ok {
		return dispatch.Errorf(dispatch.ENOTFOUND, "truck %q not found", truckID)
	}
	if st.FuelLevel != nil && (*st.FuelLevel < 0 || *st.FuelLevel > 100) {
		return dispatch.Errorf(dispatch.EINVALID, "fuel level %d out of range 0-100", *st.FuelLevel)
	}

	truck := &b.state.Trucks[ti]
	if st.FuelLevel != nil {
		truck.FuelLevel = *st.FuelLevel
	}
	if st.Ready != nil {
		truck.Ready = *st.Ready
	}
	truck.UpdatedAt = b.now()

	return nil
}

// Undo restores the state before the last recorded transition. The open job
// detail follows the restored jobs and is closed if its job is gone.
func (b *Board) Undo() Outcome {
	prev, ok := b.history.Pop()
	if !ok {
		return refused(ReasonEmptyHistory)
	}

	b.state = prev
	b.syncSelection()

	return applied()
}

// Reset reloads the initial dataset and forgets history and selection.
func (b *Board) Reset() {
	b.load(b.initial)
	b.history.Clear()
	b.selected = ""
}

// Replace swaps in collections received from the store. Nil collections are
// kept as they are. History is not touched.
func (b *Board) Replace(s Snapshot) {
	if s.Trucks != nil {
		b.state.Trucks = entity.CloneTrucks(s.Trucks)
	}
	if s.Jobs != nil {
		b.state.Jobs = warning.ApplyJobs(s.Jobs, b.now())
	}
	if s.Employees != nil {
		b.employees = entity.CloneEmployees(s.Employees)
	}
	b.syncSelection()
}

func (b *Board) Select(jobID string) error {
	if _, ok := entity.FindJob(b.state.Jobs, jobID); !ok {
		return dispatch.Errorf(dispatch.ENOTFOUND, "job %q not found", jobID)
	}
	b.selected = jobID
	return nil
}

func (b *Board) ClearSelection() { b.selected = "" }

// Selected returns the job shown in the detail view.
func (b *Board) Selected() (entity.Job, bool) {
	if b.selected == "" {
		return entity.Job{}, false
	}
	ji, ok := entity.FindJob(b.state.Jobs, b.selected)
	if !ok {
		return entity.Job{}, false
	}
	return warning.ApplyJob(b.state.Jobs[ji].Clone(), b.now()), true
}

func (b *Board) syncSelection() {
	if b.selected == "" {
		return
	}
	if _, ok := entity.FindJob(b.state.Jobs, b.selected); !ok {
		b.selected = ""
	}
}
