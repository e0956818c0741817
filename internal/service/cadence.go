package service

// EffectiveCadence resolves the expected check-ins per week for a member
// from the three-tier override chain: member override, then cohort
// override, then the system default. The first non-nil value wins; the
// result is clamped to [1, 7] so a bad override can never zero out the
// rate denominator or demand more than daily check-ins.
func EffectiveCadence(memberOverride, cohortOverride *int, systemDefault int) int {
	cadence := systemDefault
	if cohortOverride != nil {
		cadence = *cohortOverride
	}
	if memberOverride != nil {
		cadence = *memberOverride
	}

	if cadence < 1 {
		return 1
	}
	if cadence > 7 {
		return 7
	}
	return cadence
}
