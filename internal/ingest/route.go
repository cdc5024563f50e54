package ingest

import (
	"regexp"
	"strings"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

const routeArrow = "→"

var legacyFromTo = regexp.MustCompile(`(?i)^\s*from:\s*(.*?)\s*to:\s*(.*?)\s*$`)

// SplitFromTo splits a legacy route label into pickup and dropoff parts.
// "A → B" and "A - B" are recognized; anything else is treated as the
// pickup alone.
func SplitFromTo(fromTo string) (from, to string) {
	s := NormalizeFromTo(fromTo)
	if s == "" {
		return "", ""
	}

	if parts := splitTrim(s, routeArrow); len(parts) >= 2 {
		return parts[0], strings.Join(parts[1:], " "+routeArrow+" ")
	}
	if parts := splitTrim(s, " - "); len(parts) >= 2 {
		return parts[0], strings.Join(parts[1:], " - ")
	}
	if parts := splitTrim(s, "-"); len(parts) >= 2 {
		return parts[0], strings.Join(parts[1:], " - ")
	}

	return s, ""
}

// NormalizeFromTo rewrites "From: X To: Y" as "X → Y" and trims the rest.
func NormalizeFromTo(fromTo string) string {
	s := strings.TrimSpace(fromTo)
	if m := legacyFromTo.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1] + " " + routeArrow + " " + m[2])
	}
	return s
}

// RouteLabel returns the label shown for a job: the structured addresses
// when present, the normalized legacy label otherwise.
func RouteLabel(job entity.Job) string {
	if strings.TrimSpace(job.PickupAddress) != "" || strings.TrimSpace(job.DropoffAddress) != "" {
		return entity.FromToDisplay(job.PickupAddress, job.DropoffAddress)
	}
	return NormalizeFromTo(job.FromTo)
}

func splitTrim(s, sep string) []string {
	raw := strings.Split(s, sep)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, strings.TrimSpace(p))
	}
	return parts
}
