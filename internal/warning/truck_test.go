package warning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

func reachable(id string, rank int) entity.Employee {
	return entity.Employee{ID: id, Rank: rank, Phone: "(904) 555-01" + id, CheckInStatus: entity.CheckInOK}
}

func TestEvaluateTruckFuelCriticalFirst(t *testing.T) {
	truck := entity.Truck{FuelLevel: 15, Ready: true}
	crew := []entity.Employee{reachable("1", 5), reachable("2", 3)}

	r := EvaluateTruck(truck, TruckContext{Crew: crew})

	assert.Equal(t, entity.WarningHard, r.Level)
	assert.Equal(t, NoteFuelCritical, r.Note)
	assert.Equal(t, entity.FuelCritical, r.FuelBand)
}

func TestEvaluateTruckNoPhone(t *testing.T) {
	truck := entity.Truck{FuelLevel: 50, Ready: true}
	crew := []entity.Employee{{ID: "1", Rank: 5}, {ID: "2", Rank: 3}}

	r := EvaluateTruck(truck, TruckContext{Crew: crew})

	assert.Equal(t, entity.WarningHard, r.Level)
	assert.Equal(t, NoteNoPhone, r.Note)
}

func TestEvaluateTruckPrecedence(t *testing.T) {
	silent := reachable("9", 9)
	silent.CheckInStatus = entity.CheckInNotReplied

	tests := []struct {
		name  string
		truck entity.Truck
		ctx   TruckContext
		level entity.WarningLevel
		note  string
	}{
		{
			name:  "critical fuel before not ready",
			truck: entity.Truck{FuelLevel: 5, Ready: false},
			ctx:   TruckContext{JobsCount: 1},
			level: entity.WarningHard,
			note:  NoteFuelCritical,
		},
		{
			name:  "not ready before phones",
			truck: entity.Truck{FuelLevel: 25, Ready: false},
			ctx:   TruckContext{Crew: []entity.Employee{{ID: "x"}}},
			level: entity.WarningHard,
			note:  NoteTruckNotReady,
		},
		{
			name:  "jobs without crew means nobody to call",
			truck: entity.Truck{FuelLevel: 90, Ready: true},
			ctx:   TruckContext{JobsCount: 2},
			level: entity.WarningHard,
			note:  NoteNoPhone,
		},
		{
			name:  "lead not responding",
			truck: entity.Truck{FuelLevel: 90, Ready: true},
			ctx:   TruckContext{Crew: []entity.Employee{reachable("1", 1), silent}},
			level: entity.WarningHard,
			note:  NoteLeadNotReplying,
		},
		{
			name:  "lead not responding before low fuel",
			truck: entity.Truck{FuelLevel: 22, Ready: true},
			ctx:   TruckContext{Crew: []entity.Employee{silent}},
			level: entity.WarningHard,
			note:  NoteLeadNotReplying,
		},
		{
			name:  "non-lead not responding is fine",
			truck: entity.Truck{FuelLevel: 90, Ready: true},
			ctx:   TruckContext{Crew: []entity.Employee{reachable("1", 10), silent}},
			level: entity.WarningNone,
		},
		{
			name:  "low fuel is soft",
			truck: entity.Truck{FuelLevel: 29, Ready: true},
			ctx:   TruckContext{Crew: []entity.Employee{reachable("1", 1)}},
			level: entity.WarningSoft,
			note:  NoteFuelLow,
		},
		{
			name:  "healthy",
			truck: entity.Truck{FuelLevel: 30, Ready: true},
			ctx:   TruckContext{Crew: []entity.Employee{reachable("1", 1)}},
			level: entity.WarningNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EvaluateTruck(tt.truck, tt.ctx)

			assert.Equal(t, tt.level, r.Level)
			assert.Equal(t, tt.note, r.Note)
			assert.True(t, r.Active)
		})
	}
}

func TestEvaluateTruckInactiveNeverWarns(t *testing.T) {
	truck := entity.Truck{FuelLevel: 3, Ready: false}

	r := EvaluateTruck(truck, TruckContext{})

	assert.Equal(t, entity.WarningNone, r.Level)
	assert.Empty(t, r.Note)
	assert.False(t, r.Active)
	assert.Equal(t, entity.FuelCritical, r.FuelBand)
}

func TestEvaluateTruckIgnoresContactOverride(t *testing.T) {
	silent := reachable("9", 9)
	silent.CheckInStatus = entity.CheckInNotReplied
	other := reachable("1", 1)

	truck := entity.Truck{FuelLevel: 90, Ready: true, PointOfContactID: &other.ID}

	r := EvaluateTruck(truck, TruckContext{Crew: []entity.Employee{other, silent}})

	assert.Equal(t, NoteLeadNotReplying, r.Note)
}

func TestShowTruckWarning(t *testing.T) {
	truck := entity.Truck{FuelLevel: 10, Ready: true}
	r := EvaluateTruck(truck, TruckContext{JobsCount: 1})
	assert.True(t, ShowTruckWarning(truck, r))

	truck.WarningMuted = true
	assert.False(t, ShowTruckWarning(truck, r))
	assert.Equal(t, entity.WarningHard, EvaluateTruck(truck, TruckContext{JobsCount: 1}).Level)
}
