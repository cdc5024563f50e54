package entity

type WarningLevel string

const (
	WarningNone WarningLevel = "none"
	WarningSoft WarningLevel = "soft"
	WarningHard WarningLevel = "hard"
)

func IsValidWarningLevel(l string) bool {
	switch WarningLevel(l) {
	case WarningNone, WarningSoft, WarningHard:
		return true
	}
	return false
}

// Severity orders levels so that hard > soft > none.
func (l WarningLevel) Severity() int {
	switch l {
	case WarningHard:
		return 2
	case WarningSoft:
		return 1
	default:
		return 0
	}
}
