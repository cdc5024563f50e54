package queue

import "github.com/mover-dashboard/dispatch/internal/entity"

// AssignedEmployeeIDs maps every crew member to the truck carrying them.
func AssignedEmployeeIDs(trucks []entity.Truck) map[string]string {
	ids := make(map[string]string)
	for _, t := range trucks {
		for _, id := range t.CrewIDs {
			ids[id] = t.ID
		}
	}
	return ids
}

// Roster returns the employees on no truck's crew, in roster order.
func Roster(employees []entity.Employee, trucks []entity.Truck) []entity.Employee {
	assigned := AssignedEmployeeIDs(trucks)

	res := make([]entity.Employee, 0, len(employees))
	for _, e := range employees {
		if _, ok := assigned[e.ID]; !ok {
			res = append(res, e)
		}
	}
	return res
}
