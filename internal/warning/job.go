package warning

import (
	"fmt"
	"strings"
	"time"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

// SoftThreshold is the number of recognized handling flags needed for a
// soft warning.
const SoftThreshold = 3

// SoftNoteCap limits how many flags are listed in a soft note.
const SoftNoteCap = 3

const (
	NoteDateProblem   = "Past/invalid date, needs confirmation."
	NoteMissingFields = "Missing required job details (name/phone/addresses/date)."
	NoteNeedsReview   = "Needs review."
)

var softFlagSet = map[string]struct{}{
	string(entity.STAIRS):          {},
	string(entity.HEAVY):           {},
	string(entity.PIANO):           {},
	string(entity.PACKING):         {},
	string(entity.MULTIPLE_TRUCKS): {},
	string(entity.MULTI_STOP):      {},
	string(entity.STORAGE):         {},
}

type JobResult struct {
	Level     entity.WarningLevel
	Reasons   []string
	SoftFlags []string
}

func (r JobResult) IsHard() bool { return r.Level == entity.WarningHard }
func (r JobResult) IsSoft() bool { return r.Level == entity.WarningSoft }

// EvaluateJob classifies a single job. It never consults WarningMuted.
func EvaluateJob(job entity.Job, now time.Time) JobResult {
	if job.Status.IsTerminal() {
		return JobResult{Level: entity.WarningNone}
	}

	reasons := MissingFields(job)
	reasons = append(reasons, DateReasons(job, now)...)

	if len(reasons) > 0 {
		return JobResult{Level: entity.WarningHard, Reasons: reasons}
	}

	soft := SoftFlags(job.Flags)
	if len(soft) >= SoftThreshold {
		return JobResult{Level: entity.WarningSoft, SoftFlags: soft}
	}

	return JobResult{Level: entity.WarningNone, SoftFlags: soft}
}

// SoftFlags returns the recognized handling flags in job order, normalized
// and without duplicates.
func SoftFlags(flags []entity.JobFlag) []string {
	var res []string
	seen := make(map[string]struct{}, len(flags))

	for _, f := range flags {
		n := entity.NormalizeFlag(string(f))
		if _, ok := softFlagSet[n]; !ok {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		res = append(res, n)
	}

	return res
}

// JobNote renders the human explanation for a result.
func JobNote(r JobResult) string {
	switch r.Level {
	case entity.WarningHard:
		for _, reason := range r.Reasons {
			if reason == ReasonPastDate || reason == ReasonInvalidDate {
				return NoteDateProblem
			}
		}
		if len(r.Reasons) > 0 {
			return NoteMissingFields
		}
		return NoteNeedsReview
	case entity.WarningSoft:
		shown := r.SoftFlags
		if len(shown) > SoftNoteCap {
			shown = shown[:SoftNoteCap]
		}
		note := "Heads up: " + strings.Join(shown, ", ")
		if extra := len(r.SoftFlags) - len(shown); extra > 0 {
			note += fmt.Sprintf(" +%d more", extra)
		}
		return note
	default:
		return ""
	}
}

// ApplyJob returns a copy of job with its derived warning fields recomputed.
// WarningMuted is carried over unchanged.
func ApplyJob(job entity.Job, now time.Time) entity.Job {
	r := EvaluateJob(job, now)

	job.WarningLevel = r.Level
	job.WarningNote = JobNote(r)

	return job
}

// ApplyJobs recomputes the derived warning fields of every job.
func ApplyJobs(jobs []entity.Job, now time.Time) []entity.Job {
	res := make([]entity.Job, len(jobs))
	for i, j := range jobs {
		res[i] = ApplyJob(j.Clone(), now)
	}
	return res
}

// ShowJobWarning reports whether the consuming UI highlights the job. This
// is the only place muting is looked at.
func ShowJobWarning(job entity.Job, r JobResult) bool {
	return r.Level != entity.WarningNone && !job.WarningMuted
}
