package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

func TestNormalizeEmployee(t *testing.T) {
	e := NormalizeEmployee(EmployeeDocument{ID: "e1", Name: " james wilson ", Phone: " (904) 555-0101 ", Rank: 9})

	assert.Equal(t, "james wilson", e.Name)
	assert.Equal(t, "JW", e.Initials)
	assert.Equal(t, "(904) 555-0101", e.Phone)
	assert.Equal(t, entity.CheckInPending, e.CheckInStatus)

	e = NormalizeEmployee(EmployeeDocument{ID: "e2", Initials: "SJ", CheckInStatus: "notReplied"})
	assert.Equal(t, "SJ", e.Initials)
	assert.Equal(t, entity.CheckInNotReplied, e.CheckInStatus)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "MT", Initials("Mike Thompson"))
	assert.Equal(t, "SJ", Initials("Scarlett J."))
	assert.Equal(t, "ZC", Initials("Zendaya  Coleman Third"))
	assert.Equal(t, "PR", Initials("Paul (2) Rudd"))
	assert.Equal(t, "", Initials(""))
}

func TestNormalizeTruck(t *testing.T) {
	poc := ""
	tr := NormalizeTruck(TruckDocument{
		ID:               "t1",
		Capacity:         2,
		FuelLevel:        140,
		CrewIDs:          []string{"e1", "", "e1", "e2", "e3"},
		JobIDs:           nil,
		PointOfContactID: &poc,
	})

	assert.Equal(t, 100, tr.FuelLevel)
	assert.Equal(t, []string{"e1", "e2"}, tr.CrewIDs)
	assert.NotNil(t, tr.JobIDs)
	assert.Empty(t, tr.JobIDs)
	assert.Nil(t, tr.PointOfContactID)
}

func TestNormalizeTrucksSingleCrewPerEmployee(t *testing.T) {
	trucks := NormalizeTrucks([]TruckDocument{
		{ID: "t1", Capacity: 3, CrewIDs: []string{"e1", "e2"}},
		{ID: ""},
		{ID: "t2", Capacity: 3, CrewIDs: []string{"e2", "e3"}},
	})

	require.Len(t, trucks, 2)
	assert.Equal(t, []string{"e1", "e2"}, trucks[0].CrewIDs)
	assert.Equal(t, []string{"e3"}, trucks[1].CrewIDs)
}

func TestTruckDocumentRoundTrip(t *testing.T) {
	poc := "e1"
	tr := entity.Truck{
		ID: "t1", Name: "Truck 1", Capacity: 6, FuelLevel: 85, Ready: true,
		CrewIDs: []string{"e1"}, JobIDs: []string{"j1"}, PointOfContactID: &poc, UpdatedAt: now,
	}

	assert.Equal(t, tr, NormalizeTruck(TruckToDocument(tr)))
}

func TestEmployeeDocumentRoundTrip(t *testing.T) {
	e := entity.Employee{
		ID: "e1", Name: "James Wilson", Initials: "JW", Phone: "1", Rank: 9,
		HasLicense: true, CheckInStatus: entity.CheckInOK, UpdatedAt: now,
	}

	assert.Equal(t, e, NormalizeEmployee(EmployeeToDocument(e)))
}
