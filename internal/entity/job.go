package entity

import (
	"strings"
	"time"
)

type JobStatus string

const (
	READY     JobStatus = "READY"
	ASSIGNED  JobStatus = "ASSIGNED"
	ARRIVED   JobStatus = "ARRIVED"
	LOADED    JobStatus = "LOADED"
	COMPLETED JobStatus = "COMPLETED"
	PAID      JobStatus = "PAID"
)

// JobStatusOrder is the intended forward order of the lifecycle.
var JobStatusOrder = []JobStatus{READY, ASSIGNED, ARRIVED, LOADED, COMPLETED, PAID}

func ValidJobStatuses() []string {
	res := make([]string, 0, len(JobStatusOrder))
	for _, s := range JobStatusOrder {
		res = append(res, string(s))
	}
	return res
}

func IsValidJobStatus(s string) bool {
	for _, valid := range JobStatusOrder {
		if string(valid) == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether warnings no longer apply to the job.
func (s JobStatus) IsTerminal() bool {
	return s == COMPLETED || s == PAID
}

func (s JobStatus) Label() string {
	if s == "" {
		return ""
	}
	return string(s[0]) + strings.ToLower(string(s[1:]))
}

type JobFlag string

const (
	STAIRS          JobFlag = "stairs"
	HEAVY           JobFlag = "heavy"
	STORAGE         JobFlag = "storage"
	PIANO           JobFlag = "piano"
	MULTI_STOP      JobFlag = "multi-stop"
	PACKING         JobFlag = "packing"
	MULTIPLE_TRUCKS JobFlag = "multiple-trucks"
)

func ValidJobFlags() []string {
	return []string{
		string(STAIRS),
		string(HEAVY),
		string(STORAGE),
		string(PIANO),
		string(MULTI_STOP),
		string(PACKING),
		string(MULTIPLE_TRUCKS),
	}
}

// NormalizeFlag trims and lower-cases a raw flag value.
func NormalizeFlag(f string) string {
	return strings.ToLower(strings.TrimSpace(f))
}

func IsValidJobFlag(f string) bool {
	f = NormalizeFlag(f)
	for _, valid := range ValidJobFlags() {
		if valid == f {
			return true
		}
	}
	return false
}

// ArrivalLayouts are the timestamp encodings accepted for ScheduledArrival.
var ArrivalLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DisplayTimeLayout renders the display-only Time field.
const DisplayTimeLayout = "3:04 PM"

type Job struct {
	ID string

	// ScheduledArrival is the source of truth for date bucketing. It is kept
	// as text because an unparseable value is a triage signal, not an error.
	ScheduledArrival string
	Time             string

	CustomerName   string
	CustomerPhone  string
	PickupAddress  string
	DropoffAddress string
	FromTo         string

	Flags  []JobFlag
	Status JobStatus
	Notes  string

	WarningLevel WarningLevel
	WarningNote  string
	WarningMuted bool

	AssignedTruckID *string

	UpdatedAt time.Time
}

// ParseArrival parses a ScheduledArrival value in loc. Values carrying an
// offset keep it.
func ParseArrival(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range ArrivalLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Arrival parses the job's ScheduledArrival in loc.
func (j Job) Arrival(loc *time.Location) (time.Time, bool) {
	return ParseArrival(j.ScheduledArrival, loc)
}

func (j Job) IsAssigned() bool {
	return j.AssignedTruckID != nil && *j.AssignedTruckID != ""
}

// Clone returns a deep copy of the job.
func (j Job) Clone() Job {
	c := j
	if j.Flags != nil {
		c.Flags = append([]JobFlag(nil), j.Flags...)
	}
	if j.AssignedTruckID != nil {
		id := *j.AssignedTruckID
		c.AssignedTruckID = &id
	}
	return c
}

func CloneJobs(jobs []Job) []Job {
	if jobs == nil {
		return nil
	}
	res := make([]Job, len(jobs))
	for i, j := range jobs {
		res[i] = j.Clone()
	}
	return res
}

func FindJob(jobs []Job, id string) (int, bool) {
	for i := range jobs {
		if jobs[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
