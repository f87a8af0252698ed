package insight

import (
	"github.com/carelens/carelens/internal/domain/record"
)

// Normalize turns a loose observation row into a typed ClinicalObservation.
// It returns nil when the row carries neither a code nor a numeric value;
// such a row can drive neither display nor analysis. It never panics on
// missing fields.
//
// A missing timestamp stays nil rather than defaulting to "now": callers must
// treat it as an unknown date and keep the point out of chronological
// ordering and freshness math.
func Normalize(raw *record.Observation) *ClinicalObservation {
	if raw == nil {
		return nil
	}

	var code string
	if raw.Code != nil {
		code = *raw.Code
	}
	if code == "" && raw.Value == nil {
		return nil
	}

	obs := &ClinicalObservation{Code: code}

	if raw.Value != nil {
		v := *raw.Value
		obs.Value = &v
	}
	if raw.Unit != nil {
		obs.Unit = *raw.Unit
	}
	if raw.EffectiveTime != nil {
		t := *raw.EffectiveTime
		obs.Timestamp = &t
	}
	if raw.ReferenceLow != nil {
		low := *raw.ReferenceLow
		obs.ReferenceLow = &low
	}
	if raw.ReferenceHigh != nil {
		high := *raw.ReferenceHigh
		obs.ReferenceHigh = &high
	}

	// Prefer the feed's display name; fall back to the reference table.
	if raw.Display != nil && *raw.Display != "" {
		obs.Name = *raw.Display
	} else if entry, ok := referenceRanges[code]; ok {
		obs.Name = entry.Name
	}

	return obs
}

// NormalizeAll maps a snapshot of raw rows, dropping the unusable ones.
func NormalizeAll(raws []*record.Observation) []ClinicalObservation {
	out := make([]ClinicalObservation, 0, len(raws))
	for _, raw := range raws {
		if obs := Normalize(raw); obs != nil {
			out = append(out, *obs)
		}
	}
	return out
}
