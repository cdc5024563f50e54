package warning

import "github.com/mover-dashboard/dispatch/internal/entity"

// PickLead selects the crew member with the highest rank among those with a
// phone. When nobody has a phone the whole crew is ranked instead. Equal
// ranks resolve to the first member in crew order. The second result is
// false only for an empty crew.
func PickLead(crew []entity.Employee) (entity.Employee, bool) {
	if lead, ok := highestRank(withPhone(crew)); ok {
		return lead, true
	}
	return highestRank(crew)
}

// PickLeadAndContact returns the lead and a backup contact. The contact is
// the next phone-reachable member by rank, or the lead itself when only one
// member can be reached.
func PickLeadAndContact(crew []entity.Employee) (lead, contact *entity.Employee) {
	l, ok := PickLead(crew)
	if !ok {
		return nil, nil
	}
	lead = &l

	var rest []entity.Employee
	for _, e := range withPhone(crew) {
		if e.ID != l.ID {
			rest = append(rest, e)
		}
	}

	if c, ok := highestRank(rest); ok {
		contact = &c
	} else if l.HasPhone() {
		contact = lead
	}

	return lead, contact
}

// DisplayContact is the member highlighted as the truck's point of contact.
// A manual override wins while it points at a crew member with a phone;
// otherwise the computed lead is shown.
func DisplayContact(truck entity.Truck, crew []entity.Employee) (entity.Employee, bool) {
	if truck.PointOfContactID != nil {
		if i, ok := entity.FindEmployee(crew, *truck.PointOfContactID); ok && crew[i].HasPhone() {
			return crew[i], true
		}
	}
	return PickLead(crew)
}

func withPhone(crew []entity.Employee) []entity.Employee {
	res := make([]entity.Employee, 0, len(crew))
	for _, e := range crew {
		if e.HasPhone() {
			res = append(res, e)
		}
	}
	return res
}

func highestRank(crew []entity.Employee) (entity.Employee, bool) {
	if len(crew) == 0 {
		return entity.Employee{}, false
	}

	best := crew[0]
	for _, e := range crew[1:] {
		if e.Rank > best.Rank {
			best = e
		}
	}
	return best, true
}
