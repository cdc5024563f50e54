// Package seed holds the built-in dataset used when no store is configured or
// a collection is empty. Every call returns fresh values.
package seed

import (
	"time"

	"github.com/mover-dashboard/dispatch/internal/board"
	"github.com/mover-dashboard/dispatch/internal/entity"
	"github.com/mover-dashboard/dispatch/internal/ingest"
)

func employeeDocs() []ingest.EmployeeDocument {
	return []ingest.EmployeeDocument{
		{ID: "e1", Name: "James Wilson", Initials: "JW", HasLicense: true, Phone: "(904) 555-0101", Rank: 9},
		{ID: "e2", Name: "Sarah Miller", Initials: "SM", Phone: "(904) 555-0102", Rank: 7},
		{ID: "e3", Name: "Mike Thompson", Initials: "MT", HasLicense: true, Phone: "(904) 555-0103", Rank: 10},
		{ID: "e4", Name: "David Lee", Initials: "DL", HasLicense: true, Phone: "(904) 555-0104", Rank: 8},
		{ID: "e5", Name: "Chris Evans", Initials: "CE", Phone: "(904) 555-0105", Rank: 5, ScheduledOff: true},
		{ID: "e6", Name: "Emma Watson", Initials: "EW", Phone: "(904) 555-0106", Rank: 6},
		{ID: "e7", Name: "Robert Downey", Initials: "RD", HasLicense: true, Phone: "(904) 555-0107", Rank: 9},
		{ID: "e8", Name: "Scarlett J.", Initials: "SJ", Phone: "(904) 555-0108", Rank: 7, ScheduledOff: true},
		{ID: "e9", Name: "Mark Ruffalo", Initials: "MR", HasLicense: true, Phone: "(904) 555-0109", Rank: 8},
		{ID: "e10", Name: "Jeremy Renner", Initials: "JR", HasLicense: true, Phone: "(904) 555-0110", Rank: 4},
		{ID: "e11", Name: "Paul Rudd", Initials: "PR", Phone: "(904) 555-0111", Rank: 6},
		{ID: "e12", Name: "Brie Larson", Initials: "BL", HasLicense: true, Phone: "(904) 555-0112", Rank: 8},
		{ID: "e13", Name: "Tom Holland", Initials: "TH", Phone: "(904) 555-0113", Rank: 3, ScheduledOff: true},
		{ID: "e14", Name: "Zendaya Coleman", Initials: "ZC", HasLicense: true, Phone: "(904) 555-0114", Rank: 7},
	}
}

func truckDocs() []ingest.TruckDocument {
	return []ingest.TruckDocument{
		{ID: "t1", Name: "Truck 1", Capacity: 6, FuelLevel: 85, Ready: true},
		{ID: "t2", Name: "Truck 2", Capacity: 6, FuelLevel: 92, Ready: true},
		{ID: "t3", Name: "Truck 3", Capacity: 4, FuelLevel: 45},
		{ID: "t4", Name: "Truck 4", Capacity: 6, FuelLevel: 70, Ready: true},
		{ID: "t5", Name: "Truck 5", Capacity: 4, FuelLevel: 100, Ready: true},
		{ID: "t6", Name: "Truck 6", Capacity: 6, FuelLevel: 25},
	}
}

func jobDocs() []ingest.JobDocument {
	return []ingest.JobDocument{
		{
			ID:               "j1",
			Time:             "9:00 AM",
			CustomerName:     "Anderson, Paul",
			CustomerPhone:    "(904) 123-4567",
			FromTo:           "Jax Bch → PV",
			Flags:            []string{"stairs", "heavy"},
			Notes:            "Large mahogany desk upstairs. Narrow stairs.",
			Status:           "READY",
			ScheduledArrival: "2026-01-03T09:00:00-05:00",
		},
		{
			ID:               "j2",
			Time:             "10:30 AM",
			CustomerName:     "Gomez, Maria",
			CustomerPhone:    "(904) 234-5678",
			FromTo:           "Nocatee → Mandarin",
			Flags:            []string{"storage"},
			Notes:            "Short-term storage. Fragile bins labeled.",
			Status:           "READY",
			ScheduledArrival: "2026-01-03T10:30:00-05:00",
		},
		{
			ID:               "j3",
			Time:             "11:30–1:30",
			CustomerName:     "Skyline Corp",
			CustomerPhone:    "(904) 345-6789",
			FromTo:           "Downtown → St. Johns",
			Flags:            []string{"multi-stop", "heavy", "multiple-trucks", "packing"},
			Notes:            "Commercial office move. Confirm staging & crew size.",
			Status:           "READY",
			ScheduledArrival: "2026-01-03T11:30:00-05:00",
		},
		{
			ID:               "j4",
			Time:             "12:00 PM",
			CustomerName:     "Baker Residence",
			CustomerPhone:    "(904) 456-7890",
			FromTo:           "PV → PV South",
			Flags:            []string{"piano"},
			Notes:            "Upright piano. 4-man minimum.",
			Status:           "READY",
			ScheduledArrival: "2026-01-03T12:00:00-05:00",
		},
	}
}

func Employees() []entity.Employee {
	return ingest.NormalizeEmployees(employeeDocs())
}

func Trucks() []entity.Truck {
	return ingest.NormalizeTrucks(truckDocs())
}

// Jobs returns the seed jobs. now only matters for documents without a full
// arrival timestamp.
func Jobs(now time.Time) []entity.Job {
	return ingest.NormalizeJobs(jobDocs(), now)
}

// Snapshot is the whole seed dataset.
func Snapshot(now time.Time) board.Snapshot {
	return board.Snapshot{
		Trucks:    Trucks(),
		Jobs:      Jobs(now),
		Employees: Employees(),
	}
}
