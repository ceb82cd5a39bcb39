package pricing

// Resolve picks the tariff bracket that applies to durationMinutes from
// the given candidate rules. Rules that are not active are skipped, so
// callers may pass an unfiltered set.
//
// Brackets are not guaranteed non-overlapping at write time. When several
// brackets match, the one with the smallest DurationMin wins; among equal
// minimums the smallest DurationMax wins (open-ended counts as larger than
// any bounded maximum). This makes resolution deterministic regardless of
// input order.
func Resolve(vehicleTypeID string, rules []Rule, durationMinutes int) (Match, error) {
	if durationMinutes < 0 {
		return Match{}, ErrInvalidDuration
	}

	var best *Rule
	for i := range rules {
		r := &rules[i]
		if r.Status != RuleActive {
			continue
		}
		if !matches(r, durationMinutes) {
			continue
		}
		if best == nil || moreSpecific(r, best) {
			best = r
		}
	}

	if best == nil {
		return Match{}, &NoTariffError{VehicleTypeID: vehicleTypeID, DurationMinutes: durationMinutes}
	}
	return Match{RuleID: best.ID, Price: best.Price}, nil
}

func matches(r *Rule, durationMinutes int) bool {
	if durationMinutes < r.DurationMin {
		return false
	}
	return r.DurationMax == nil || durationMinutes <= *r.DurationMax
}

// moreSpecific reports whether a should be preferred over b: smallest
// DurationMin first, then smallest DurationMax.
func moreSpecific(a, b *Rule) bool {
	if a.DurationMin != b.DurationMin {
		return a.DurationMin < b.DurationMin
	}
	return maxLess(a.DurationMax, b.DurationMax)
}

func maxLess(a, b *int) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a < *b
}
