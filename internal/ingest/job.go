// Package ingest maps documents from the live store and the seed dataset
// onto canonical entities, and back. Legacy shapes are handled here and
// nowhere else.
package ingest

import (
	"strings"
	"time"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

// JobDocument is a job as stored by the live feed.
type JobDocument struct {
	ID string `json:"id"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	// Phone is the older name of CustomerPhone.
	Phone string `json:"phone,omitempty"`

	ScheduledArrival string `json:"scheduledArrival,omitempty"`
	// Time is a display clock string. Legacy documents carry only this.
	Time string `json:"time,omitempty"`

	PickupAddress  string `json:"pickupAddress,omitempty"`
	DropoffAddress string `json:"dropoffAddress,omitempty"`
	FromTo         string `json:"fromTo,omitempty"`

	Flags  []string `json:"flags"`
	Status string   `json:"status"`
	Notes  string   `json:"notes,omitempty"`

	WarningLevel string `json:"warningLevel,omitempty"`
	WarningNote  string `json:"warningNote,omitempty"`
	WarningMuted bool   `json:"warningMuted"`

	AssignedTruckID *string `json:"assignedTruckId,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NormalizeJob turns a stored document into a canonical job. Derived warning
// fields are not trusted and are left for the evaluator; now supplies the
// date for a clock-only arrival when the document has no timestamps.
func NormalizeJob(doc JobDocument, now time.Time) entity.Job {
	loc := now.Location()

	job := entity.Job{
		ID:              strings.TrimSpace(doc.ID),
		CustomerName:    strings.TrimSpace(doc.CustomerName),
		CustomerPhone:   firstNonBlank(doc.CustomerPhone, doc.Phone),
		PickupAddress:   strings.TrimSpace(doc.PickupAddress),
		DropoffAddress:  strings.TrimSpace(doc.DropoffAddress),
		FromTo:          NormalizeFromTo(doc.FromTo),
		Notes:           doc.Notes,
		Status:          entity.JobStatus(strings.ToUpper(strings.TrimSpace(doc.Status))),
		WarningMuted:    doc.WarningMuted,
		AssignedTruckID: nonBlankPtr(doc.AssignedTruckID),
		Flags:           normalizeFlags(doc.Flags),
	}

	if !entity.IsValidJobStatus(string(job.Status)) {
		job.Status = entity.READY
	}

	if job.PickupAddress == "" && job.DropoffAddress == "" {
		job.PickupAddress, job.DropoffAddress = SplitFromTo(job.FromTo)
	}
	if job.PickupAddress != "" && job.DropoffAddress != "" {
		job.FromTo = entity.FromToDisplay(job.PickupAddress, job.DropoffAddress)
	}

	job.ScheduledArrival, job.Time = arrival(doc, now, loc)

	if ts := docTime(doc); !ts.IsZero() {
		job.UpdatedAt = ts
	}

	return job
}

// arrival resolves the scheduled arrival and its display time. A full
// timestamp is kept verbatim. A clock string, either in scheduledArrival or
// in time, is placed on the document's date, or on now's date.
func arrival(doc JobDocument, now time.Time, loc *time.Location) (scheduled, display string) {
	raw := strings.TrimSpace(doc.ScheduledArrival)

	if t, ok := entity.ParseArrival(raw, loc); ok {
		return raw, t.In(loc).Format(entity.DisplayTimeLayout)
	}

	base := docTime(doc)
	if base.IsZero() {
		base = now
	}

	for _, clock := range []string{raw, doc.Time} {
		if t, ok := CoerceClock(clock, base, loc); ok {
			return t.Format(time.RFC3339), t.Format(entity.DisplayTimeLayout)
		}
	}

	return raw, strings.TrimSpace(doc.Time)
}

// JobToDocument is the stored form of a job.
func JobToDocument(job entity.Job) JobDocument {
	flags := make([]string, 0, len(job.Flags))
	for _, f := range job.Flags {
		flags = append(flags, string(f))
	}

	doc := JobDocument{
		ID:               job.ID,
		CustomerName:     job.CustomerName,
		CustomerPhone:    job.CustomerPhone,
		ScheduledArrival: job.ScheduledArrival,
		Time:             job.Time,
		PickupAddress:    job.PickupAddress,
		DropoffAddress:   job.DropoffAddress,
		FromTo:           job.FromTo,
		Flags:            flags,
		Status:           string(job.Status),
		Notes:            job.Notes,
		WarningLevel:     string(job.WarningLevel),
		WarningNote:      job.WarningNote,
		WarningMuted:     job.WarningMuted,
		AssignedTruckID:  job.Clone().AssignedTruckID,
	}
	if !job.UpdatedAt.IsZero() {
		ts := job.UpdatedAt
		doc.UpdatedAt = &ts
	}

	return doc
}

// NormalizeJobs normalizes a batch, dropping documents without an id.
func NormalizeJobs(docs []JobDocument, now time.Time) []entity.Job {
	res := make([]entity.Job, 0, len(docs))
	for _, d := range docs {
		if j := NormalizeJob(d, now); j.ID != "" {
			res = append(res, j)
		}
	}
	return res
}

func docTime(doc JobDocument) time.Time {
	if doc.UpdatedAt != nil && !doc.UpdatedAt.IsZero() {
		return *doc.UpdatedAt
	}
	if doc.CreatedAt != nil && !doc.CreatedAt.IsZero() {
		return *doc.CreatedAt
	}
	return time.Time{}
}

func normalizeFlags(raw []string) []entity.JobFlag {
	flags := make([]entity.JobFlag, 0, len(raw))
	for _, f := range raw {
		if n := entity.NormalizeFlag(f); n != "" {
			flags = append(flags, entity.JobFlag(n))
		}
	}
	return flags
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func nonBlankPtr(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
