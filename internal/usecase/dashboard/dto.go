package dashboard

import (
	"github.com/mover-dashboard/dispatch/internal/ingest"
	"github.com/mover-dashboard/dispatch/internal/queue"
)

type DropDTO struct {
	ItemType      string `json:"itemType" validate:"required,oneof=employee job"`
	ItemID        string `json:"itemId" validate:"required"`
	SourceTruckID string `json:"sourceTruckId"`
	TargetKind    string `json:"targetKind" validate:"required,oneof=truck roster queue"`
	TargetTruckID string `json:"targetTruckId"`
}

type JobDTO struct {
	CustomerName     string   `json:"customerName" validate:"max=200"`
	CustomerPhone    string   `json:"customerPhone" validate:"max=40"`
	ScheduledArrival string   `json:"scheduledArrival" validate:"max=64"`
	Time             string   `json:"time" validate:"omitempty,clock_time"`
	PickupAddress    string   `json:"pickupAddress" validate:"max=300"`
	DropoffAddress   string   `json:"dropoffAddress" validate:"max=300"`
	FromTo           string   `json:"fromTo" validate:"max=300"`
	Flags            []string `json:"flags" validate:"omitempty,unique,job_flags"`
	Status           string   `json:"status" validate:"omitempty,job_status"`
	Notes            string   `json:"notes" validate:"max=2000"`
}

type ContactDTO struct {
	EmployeeID *string `json:"employeeId"`
}

type TruckStatusDTO struct {
	FuelLevel *int  `json:"fuelLevel" validate:"omitempty,min=0,max=100"`
	Ready     *bool `json:"ready"`
}

type DropResult struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

type MuteResult struct {
	ID    string `json:"id"`
	Muted bool   `json:"muted"`
}

type JobView struct {
	ingest.JobDocument
	Reasons     []string `json:"reasons"`
	ShowWarning bool     `json:"showWarning"`
	Route       string   `json:"route"`
}

type EmployeeView struct {
	ingest.EmployeeDocument
	WarningLevel string  `json:"warningLevel"`
	WarningNote  string  `json:"warningNote,omitempty"`
	TruckID      *string `json:"truckId,omitempty"`
}

type TruckView struct {
	ingest.TruckDocument
	WarningLevel string         `json:"warningLevel"`
	WarningNote  string         `json:"warningNote,omitempty"`
	ShowWarning  bool           `json:"showWarning"`
	Active       bool           `json:"active"`
	FuelBand     string         `json:"fuelBand"`
	LeadID       *string        `json:"leadId,omitempty"`
	ContactID    *string        `json:"contactId,omitempty"`
	Crew         []EmployeeView `json:"crew"`
	Jobs         []JobView      `json:"jobs"`
}

type QueuesView struct {
	NeedsReview []JobView `json:"needsReview"`
	Today       []JobView `json:"today"`
	Waiting     []JobView `json:"waiting"`
	Stale       []JobView `json:"stale"`
}

type BoardView struct {
	Trucks     []TruckView    `json:"trucks"`
	Queues     QueuesView     `json:"queues"`
	Roster     []EmployeeView `json:"roster"`
	Selected   *JobView       `json:"selected,omitempty"`
	Summary    queue.Summary  `json:"summary"`
	CanUndo    bool           `json:"canUndo"`
	HistoryLen int            `json:"historyLen"`
	Writer     WriterStats    `json:"writer"`
}
