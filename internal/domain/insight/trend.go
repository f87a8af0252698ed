package insight

import (
	"sort"
)

// Long-run direction uses a ±10% deadband so measurement noise does not flip
// a biomarker between increasing and decreasing.
const (
	directionUpFactor   = 1.1
	directionDownFactor = 0.9
)

// deltaRule captures the short-run polarity of a metric: for lower-is-better
// metrics a drop beyond the threshold is improving, for HDL the polarity is
// inverted.
type deltaRule struct {
	LowerIsBetter bool
	Threshold     float64
}

var deltaRules = map[string]deltaRule{
	"4548-4":  {LowerIsBetter: true, Threshold: 0.5}, // HbA1c moves in tenths of a percent
	"33747-0": {LowerIsBetter: true, Threshold: 0.5},
	"8480-6":  {LowerIsBetter: true, Threshold: 5},
	"8462-4":  {LowerIsBetter: true, Threshold: 5},
	"2093-3":  {LowerIsBetter: true, Threshold: 5},
	"13457-7": {LowerIsBetter: true, Threshold: 5},
	"18262-6": {LowerIsBetter: true, Threshold: 5},
	"2085-9":  {LowerIsBetter: false, Threshold: 5}, // HDL: higher is better
	"2339-0":  {LowerIsBetter: true, Threshold: 5},
	"2571-8":  {LowerIsBetter: true, Threshold: 5},
}

// AnalyzeTrends groups observations by code, orders each group
// chronologically, and classifies the long-run direction. Points without a
// value or timestamp are dropped first; a code left with fewer than two
// points yields no TrendResult at all — absence signals insufficient data,
// not a flat trend.
//
// Results are sorted by code so identical inputs produce identical output.
func AnalyzeTrends(observations []ClinicalObservation) []TrendResult {
	groups := make(map[string][]TrendPoint)
	names := make(map[string]string)
	for _, obs := range observations {
		if obs.Code == "" || obs.Value == nil || obs.Timestamp == nil {
			continue
		}
		groups[obs.Code] = append(groups[obs.Code], TrendPoint{
			Date:  *obs.Timestamp,
			Value: *obs.Value,
		})
		if names[obs.Code] == "" {
			names[obs.Code] = obs.Name
		}
	}

	codes := make([]string, 0, len(groups))
	for code, points := range groups {
		if len(points) >= 2 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	results := make([]TrendResult, 0, len(codes))
	for _, code := range codes {
		points := groups[code]
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})

		name := names[code]
		if name == "" {
			name = ReferenceName(code)
		}

		results = append(results, TrendResult{
			Code:          code,
			Name:          name,
			OrderedValues: points,
			Direction:     classifyDirection(points[0].Value, points[len(points)-1].Value),
			Min:           minOf(points),
			Max:           maxOf(points),
			Mean:          meanOf(points),
		})
	}
	return results
}

func classifyDirection(first, last float64) Direction {
	switch {
	case last > first*directionUpFactor:
		return DirectionIncreasing
	case last < first*directionDownFactor:
		return DirectionDecreasing
	default:
		return DirectionStable
	}
}

// ClassifyDelta classifies the move between the two most recent values of a
// metric. This short-run classification feeds insight generation and is
// deliberately distinct from the long-run Direction. Codes without a polarity
// rule are always steady.
func ClassifyDelta(code string, previous, latest float64) DeltaClass {
	rule, ok := deltaRules[code]
	if !ok {
		return DeltaSteady
	}

	delta := latest - previous
	if !rule.LowerIsBetter {
		delta = -delta
	}

	switch {
	case delta <= -rule.Threshold:
		return DeltaImproving
	case delta >= rule.Threshold:
		return DeltaConcerning
	default:
		return DeltaSteady
	}
}

// ShortRun classifies the trend's two most recent points.
func (t TrendResult) ShortRun() DeltaClass {
	n := len(t.OrderedValues)
	if n < 2 {
		return DeltaSteady
	}
	return ClassifyDelta(t.Code, t.OrderedValues[n-2].Value, t.OrderedValues[n-1].Value)
}

func minOf(points []TrendPoint) float64 {
	m := points[0].Value
	for _, p := range points[1:] {
		if p.Value < m {
			m = p.Value
		}
	}
	return m
}

func maxOf(points []TrendPoint) float64 {
	m := points[0].Value
	for _, p := range points[1:] {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

func meanOf(points []TrendPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum / float64(len(points))
}
