package ingest

import (
	"strings"
	"time"
	"unicode"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

type EmployeeDocument struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Initials      string     `json:"initials,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Rank          int        `json:"rank"`
	HasLicense    bool       `json:"hasLicense"`
	ScheduledOff  bool       `json:"scheduledOff"`
	CheckInStatus string     `json:"checkInStatus,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func NormalizeEmployee(doc EmployeeDocument) entity.Employee {
	e := entity.Employee{
		ID:            strings.TrimSpace(doc.ID),
		Name:          strings.TrimSpace(doc.Name),
		Initials:      strings.TrimSpace(doc.Initials),
		Phone:         strings.TrimSpace(doc.Phone),
		Rank:          doc.Rank,
		HasLicense:    doc.HasLicense,
		ScheduledOff:  doc.ScheduledOff,
		CheckInStatus: entity.CheckInStatus(strings.TrimSpace(doc.CheckInStatus)),
	}

	if e.Initials == "" {
		e.Initials = Initials(e.Name)
	}
	if !entity.IsValidCheckInStatus(string(e.CheckInStatus)) {
		e.CheckInStatus = entity.CheckInPending
	}
	if doc.UpdatedAt != nil {
		e.UpdatedAt = *doc.UpdatedAt
	}

	return e
}

func NormalizeEmployees(docs []EmployeeDocument) []entity.Employee {
	res := make([]entity.Employee, 0, len(docs))
	for _, d := range docs {
		if e := NormalizeEmployee(d); e.ID != "" {
			res = append(res, e)
		}
	}
	return res
}

func EmployeeToDocument(e entity.Employee) EmployeeDocument {
	doc := EmployeeDocument{
		ID:            e.ID,
		Name:          e.Name,
		Initials:      e.Initials,
		Phone:         e.Phone,
		Rank:          e.Rank,
		HasLicense:    e.HasLicense,
		ScheduledOff:  e.ScheduledOff,
		CheckInStatus: string(e.CheckInStatus),
	}
	if !e.UpdatedAt.IsZero() {
		ts := e.UpdatedAt
		doc.UpdatedAt = &ts
	}
	return doc
}

// Initials takes the first letter of the first two words of name.
func Initials(name string) string {
	res := make([]rune, 0, 2)
	for _, w := range strings.Fields(name) {
		r := []rune(w)[0]
		if !unicode.IsLetter(r) {
			continue
		}
		if res = append(res, unicode.ToUpper(r)); len(res) == 2 {
			break
		}
	}
	return string(res)
}
