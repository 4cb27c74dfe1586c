package analytics

// Participation computes an entity's share of the system total as a
// percentage. Both totals must already be aggregated over the filtered
// interval. ok is false when the system total is zero, which callers must
// report as "no data" rather than 0.
func Participation(entityTotal, systemTotal float64) (float64, bool) {
	if systemTotal == 0 {
		return 0, false
	}
	return entityTotal / systemTotal * 100, true
}
