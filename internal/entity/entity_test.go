package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArrival(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)

	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2026-01-03T09:00:00-05:00", true, time.Date(2026, 1, 3, 9, 0, 0, 0, loc)},
		{"2026-01-03T14:00:00Z", true, time.Date(2026, 1, 3, 14, 0, 0, 0, time.UTC)},
		{"2026-01-03T09:30:00.123Z", true, time.Date(2026, 1, 3, 9, 30, 0, 123000000, time.UTC)},
		{"2026-01-03T09:00", true, time.Date(2026, 1, 3, 9, 0, 0, 0, loc)},
		{"2026-01-03", true, time.Date(2026, 1, 3, 0, 0, 0, 0, loc)},
		{"  ", false, time.Time{}},
		{"9:00 AM", false, time.Time{}},
		{"tomorrow", false, time.Time{}},
	}

	for _, tt := range tests {
		got, ok := ParseArrival(tt.in, loc)
		require.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
		}
	}
}

func TestJobStatus(t *testing.T) {
	assert.True(t, COMPLETED.IsTerminal())
	assert.True(t, PAID.IsTerminal())
	assert.False(t, LOADED.IsTerminal())
	assert.Equal(t, "Assigned", ASSIGNED.Label())
	assert.True(t, IsValidJobStatus("ARRIVED"))
	assert.False(t, IsValidJobStatus("arrived"))
	assert.Len(t, ValidJobStatuses(), 6)
}

func TestIsValidJobFlag(t *testing.T) {
	assert.True(t, IsValidJobFlag(" Piano "))
	assert.True(t, IsValidJobFlag("multiple-trucks"))
	assert.False(t, IsValidJobFlag("hot-tub"))
}

func TestFuelBandFor(t *testing.T) {
	assert.Equal(t, FuelCritical, FuelBandFor(0))
	assert.Equal(t, FuelCritical, FuelBandFor(19))
	assert.Equal(t, FuelLow, FuelBandFor(20))
	assert.Equal(t, FuelLow, FuelBandFor(29))
	assert.Equal(t, FuelOK, FuelBandFor(30))
	assert.Equal(t, FuelOK, FuelBandFor(100))
}

func TestTruckCloneIsDeep(t *testing.T) {
	poc := "e1"
	orig := Truck{ID: "t1", CrewIDs: []string{"e1"}, JobIDs: []string{"j1"}, PointOfContactID: &poc}

	c := orig.Clone()
	c.CrewIDs[0] = "e2"
	c.JobIDs = append(c.JobIDs, "j2")
	*c.PointOfContactID = "e9"

	assert.Equal(t, []string{"e1"}, orig.CrewIDs)
	assert.Equal(t, []string{"j1"}, orig.JobIDs)
	assert.Equal(t, "e1", *orig.PointOfContactID)
}

func TestJobCloneIsDeep(t *testing.T) {
	truckID := "t1"
	orig := Job{ID: "j1", Flags: []JobFlag{PIANO}, AssignedTruckID: &truckID}

	c := orig.Clone()
	c.Flags[0] = HEAVY
	*c.AssignedTruckID = "t2"

	assert.Equal(t, PIANO, orig.Flags[0])
	assert.Equal(t, "t1", *orig.AssignedTruckID)
	assert.True(t, orig.IsAssigned())
}

func TestTruckCrewResolvesInCrewOrder(t *testing.T) {
	employees := []Employee{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}}
	truck := Truck{CrewIDs: []string{"e3", "missing", "e1"}}

	crew := truck.Crew(employees)

	require.Len(t, crew, 2)
	assert.Equal(t, "e3", crew[0].ID)
	assert.Equal(t, "e1", crew[1].ID)
}

func TestWithout(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, Without([]string{"a", "b", "c", "b"}, "b"))
	assert.Equal(t, []string{}, Without(nil, "b"))
}

func TestWarningSeverity(t *testing.T) {
	assert.Greater(t, WarningHard.Severity(), WarningSoft.Severity())
	assert.Greater(t, WarningSoft.Severity(), WarningNone.Severity())
	assert.True(t, IsValidWarningLevel("soft"))
	assert.False(t, IsValidWarningLevel("amber"))
}

func TestShortAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123 Main St, Jacksonville, FL 32256", "Jacksonville, FL"},
		{"Jacksonville, FL", "Jacksonville, FL"},
		{" Ponte Vedra , FL 32081 ", "Ponte Vedra, FL"},
		{"Jax Beach", "Jax Beach"},
		{"", AddressPlaceholder},
		{"   ", AddressPlaceholder},
		{"Somewhere Near The Old Lighthouse", "Somewhere Near The Old…"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortAddress(tt.in), tt.in)
	}
}

func TestFromToDisplay(t *testing.T) {
	assert.Equal(t, "Jacksonville, FL → —", FromToDisplay("1 A St, Jacksonville, FL 32256", ""))
}
