package entity

import "strings"

const (
	// AddressPlaceholder is shown for a blank address.
	AddressPlaceholder = "—"
	shortAddressMax    = 22
)

// ShortAddress reduces a US street address to "City, ST".
// "123 Main St, Jacksonville, FL 32256" becomes "Jacksonville, FL". A label
// without commas is kept, truncated to 22 runes.
func ShortAddress(full string) string {
	s := strings.TrimSpace(full)
	if s == "" {
		return AddressPlaceholder
	}

	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	switch {
	case len(parts) >= 3:
		return cityState(parts[1], parts[2])
	case len(parts) == 2:
		return cityState(parts[0], parts[1])
	}

	if r := []rune(s); len(r) > shortAddressMax {
		return strings.TrimRight(string(r[:shortAddressMax]), " ") + "…"
	}
	return s
}

func cityState(city, rest string) string {
	st := rest
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		st = rest[:i]
	}
	return strings.TrimSpace(city + ", " + st)
}

// FromToDisplay is the route label shown on job cards.
func FromToDisplay(pickup, dropoff string) string {
	return ShortAddress(pickup) + " → " + ShortAddress(dropoff)
}
