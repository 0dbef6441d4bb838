package booking

// HasSlotConflict reports whether the candidate slot set collides with any of
// the slot sets already held by active bookings on the same site and date.
// Pure; the caller is responsible for fetching only PENDING/CONFIRMED rows.
func HasSlotConflict(candidate SlotSet, existing []SlotSet) bool {
	for _, e := range existing {
		if candidate.Intersects(e) {
			return true
		}
	}
	return false
}
