package ingest

import (
	"strings"
	"time"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

type TruckDocument struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Capacity         int        `json:"capacity"`
	FuelLevel        int        `json:"fuelLevel"`
	Ready            bool       `json:"ready"`
	CrewIDs          []string   `json:"crewIds"`
	JobIDs           []string   `json:"jobIds"`
	PointOfContactID *string    `json:"pointOfContactId,omitempty"`
	WarningMuted     bool       `json:"warningMuted"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// NormalizeTruck clamps fuel to 0-100 and removes blank and duplicate ids.
// A crew longer than capacity is cut to capacity.
func NormalizeTruck(doc TruckDocument) entity.Truck {
	t := entity.Truck{
		ID:               strings.TrimSpace(doc.ID),
		Name:             strings.TrimSpace(doc.Name),
		Capacity:         doc.Capacity,
		FuelLevel:        clamp(doc.FuelLevel, 0, 100),
		Ready:            doc.Ready,
		CrewIDs:          uniqueIDs(doc.CrewIDs),
		JobIDs:           uniqueIDs(doc.JobIDs),
		PointOfContactID: nonBlankPtr(doc.PointOfContactID),
		WarningMuted:     doc.WarningMuted,
	}

	if t.Capacity < 0 {
		t.Capacity = 0
	}
	if len(t.CrewIDs) > t.Capacity {
		t.CrewIDs = t.CrewIDs[:t.Capacity]
	}
	if doc.UpdatedAt != nil {
		t.UpdatedAt = *doc.UpdatedAt
	}

	return t
}

// NormalizeTrucks normalizes a batch and keeps every employee on at most one
// crew; the first truck listing an employee keeps them.
func NormalizeTrucks(docs []TruckDocument) []entity.Truck {
	res := make([]entity.Truck, 0, len(docs))
	seen := make(map[string]struct{})

	for _, d := range docs {
		t := NormalizeTruck(d)
		if t.ID == "" {
			continue
		}

		crew := t.CrewIDs[:0]
		for _, id := range t.CrewIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			crew = append(crew, id)
		}
		t.CrewIDs = crew

		res = append(res, t)
	}

	return res
}

func TruckToDocument(t entity.Truck) TruckDocument {
	c := t.Clone()
	doc := TruckDocument{
		ID:               c.ID,
		Name:             c.Name,
		Capacity:         c.Capacity,
		FuelLevel:        c.FuelLevel,
		Ready:            c.Ready,
		CrewIDs:          c.CrewIDs,
		JobIDs:           c.JobIDs,
		PointOfContactID: c.PointOfContactID,
		WarningMuted:     c.WarningMuted,
	}
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		doc.UpdatedAt = &ts
	}
	return doc
}

func uniqueIDs(ids []string) []string {
	res := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
