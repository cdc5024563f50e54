package warning

import "github.com/mover-dashboard/dispatch/internal/entity"

const (
	NoteFuelCritical    = "Fuel critical (<20%)"
	NoteTruckNotReady   = "Truck not ready"
	NoteNoPhone         = "No phone for check-ins"
	NoteLeadNoPhone     = "Lead has no phone"
	NoteLeadNotReplying = "Lead not responding"
	NoteFuelLow         = "Fuel low (20-29%)"
)

type TruckContext struct {
	Crew      []entity.Employee
	JobsCount int
}

type TruckResult struct {
	Level    entity.WarningLevel
	Note     string
	FuelBand entity.FuelBand
	Active   bool
}

// EvaluateTruck classifies a truck. Only active trucks (with crew or jobs)
// can warn; the fuel band is always reported. Checks run in order and the
// first match wins.
func EvaluateTruck(truck entity.Truck, ctx TruckContext) TruckResult {
	res := TruckResult{
		Level:    entity.WarningNone,
		FuelBand: entity.FuelBandFor(truck.FuelLevel),
		Active:   len(ctx.Crew) > 0 || ctx.JobsCount > 0,
	}
	if !res.Active {
		return res
	}

	hard := func(note string) TruckResult {
		res.Level = entity.WarningHard
		res.Note = note
		return res
	}

	if truck.FuelLevel < entity.FuelCriticalBelow {
		return hard(NoteFuelCritical)
	}
	if !truck.Ready {
		return hard(NoteTruckNotReady)
	}
	if len(withPhone(ctx.Crew)) == 0 {
		return hard(NoteNoPhone)
	}

	// The lead comes from the crew itself, never from the manual override.
	if lead, ok := PickLead(ctx.Crew); ok {
		if !lead.HasPhone() {
			return hard(NoteLeadNoPhone)
		}
		if lead.CheckInStatus == entity.CheckInNotReplied {
			return hard(NoteLeadNotReplying)
		}
	}

	if truck.FuelLevel < entity.FuelLowBelow {
		res.Level = entity.WarningSoft
		res.Note = NoteFuelLow
	}

	return res
}

// ShowTruckWarning reports whether the consuming UI highlights the truck.
func ShowTruckWarning(truck entity.Truck, r TruckResult) bool {
	return r.Active && r.Level != entity.WarningNone && !truck.WarningMuted
}
