package dashboard

import (
	"time"

	"github.com/mover-dashboard/dispatch/internal/board"
	"github.com/mover-dashboard/dispatch/internal/entity"
	"github.com/mover-dashboard/dispatch/internal/ingest"
	"github.com/mover-dashboard/dispatch/internal/queue"
	"github.com/mover-dashboard/dispatch/internal/warning"
)

func jobView(job entity.Job, now time.Time) JobView {
	r := warning.EvaluateJob(job, now)
	job = warning.ApplyJob(job, now)

	reasons := r.Reasons
	if reasons == nil {
		reasons = []string{}
	}

	return JobView{
		JobDocument: ingest.JobToDocument(job),
		Reasons:     reasons,
		ShowWarning: warning.ShowJobWarning(job, r),
		Route:       ingest.RouteLabel(job),
	}
}

func jobViews(jobs []entity.Job, now time.Time) []JobView {
	res := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		res = append(res, jobView(j, now))
	}
	return res
}

func employeeView(e entity.Employee, truckID string) EmployeeView {
	v := EmployeeView{EmployeeDocument: ingest.EmployeeToDocument(e)}

	r := warning.EvaluateEmployee(e, warning.EmployeeContext{IsAssigned: truckID != ""})
	v.WarningLevel = string(r.Level)
	v.WarningNote = r.Note
	if truckID != "" {
		id := truckID
		v.TruckID = &id
	}

	return v
}

func truckView(t entity.Truck, employees []entity.Employee, jobs []entity.Job, now time.Time) TruckView {
	crew := t.Crew(employees)
	r := warning.EvaluateTruck(t, warning.TruckContext{Crew: crew, JobsCount: len(t.JobIDs)})

	v := TruckView{
		TruckDocument: ingest.TruckToDocument(t),
		WarningLevel:  string(r.Level),
		WarningNote:   r.Note,
		ShowWarning:   warning.ShowTruckWarning(t, r),
		Active:        r.Active,
		FuelBand:      string(r.FuelBand),
		Crew:          make([]EmployeeView, 0, len(crew)),
		Jobs:          jobViews(t.Jobs(jobs), now),
	}

	for _, e := range crew {
		v.Crew = append(v.Crew, employeeView(e, t.ID))
	}
	if lead, ok := warning.PickLead(crew); ok {
		id := lead.ID
		v.LeadID = &id
	}
	if contact, ok := warning.DisplayContact(t, crew); ok {
		id := contact.ID
		v.ContactID = &id
	}

	return v
}

func queuesView(q queue.Queues, now time.Time) QueuesView {
	return QueuesView{
		NeedsReview: jobViews(q.NeedsReview, now),
		Today:       jobViews(q.Today, now),
		Waiting:     jobViews(q.Waiting, now),
		Stale:       jobViews(q.Stale, now),
	}
}

func boardView(b *board.Board, stats WriterStats) BoardView {
	now := b.Now()
	snap := b.Snapshot()

	v := BoardView{
		Trucks:     make([]TruckView, 0, len(snap.Trucks)),
		Queues:     queuesView(b.Queues(), now),
		Roster:     []EmployeeView{},
		Summary:    b.Summary(),
		CanUndo:    b.CanUndo(),
		HistoryLen: b.HistoryLen(),
		Writer:     stats,
	}

	for _, t := range snap.Trucks {
		v.Trucks = append(v.Trucks, truckView(t, snap.Employees, snap.Jobs, now))
	}
	for _, e := range b.Roster() {
		v.Roster = append(v.Roster, employeeView(e, ""))
	}
	if job, ok := b.Selected(); ok {
		sel := jobView(job, now)
		v.Selected = &sel
	}

	return v
}
