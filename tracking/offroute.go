package tracking

// offRouteState is the two-threshold hysteresis over the lateral offset.
// The clear threshold sits strictly below the enter threshold; between the
// two the flag holds its last value, so small oscillations around a single
// boundary cannot flap the status.
type offRouteState struct {
	enterMeters float64
	clearMeters float64
	off         bool
}

// update feeds one lateral offset through the hysteresis and reports at
// most one edge transition.
func (s *offRouteState) update(lateralMeters float64) (entered, cleared bool) {
	if !s.off && lateralMeters > s.enterMeters {
		s.off = true
		return true, false
	}
	if s.off && lateralMeters < s.clearMeters {
		s.off = false
		return false, true
	}
	return false, false
}
