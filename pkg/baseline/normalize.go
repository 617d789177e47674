package baseline

import "sort"

// normalizeMinMax scales raw indicator values to 0..100 across the tracked
// countries. Missing values take the median, and lower-is-better indicators
// are inverted. When all values are equal (or absent) everything gets 50.
func normalizeMinMax(values map[string]*float64, higherIsBetter bool) map[string]int {
	present := make([]float64, 0, len(values))
	for _, value := range values {
		if value != nil {
			present = append(present, *value)
		}
	}

	normalized := make(map[string]int, len(values))
	if len(present) == 0 {
		for country := range values {
			normalized[country] = 50
		}
		return normalized
	}

	sort.Float64s(present)
	min, max := present[0], present[len(present)-1]
	if max-min < 1e-9 {
		for country := range values {
			normalized[country] = 50
		}
		return normalized
	}

	mid := median(present)
	for country, value := range values {
		v := mid
		if value != nil {
			v = *value
		}
		ratio := (v - min) / (max - min)
		if !higherIsBetter {
			ratio = 1 - ratio
		}
		normalized[country] = int(ratio*100 + 0.5)
	}
	return normalized
}

// normalizeGlobal ranks each country's value against the worldwide
// distribution of the indicator and maps the percentile to 0..100.
func normalizeGlobal(values map[string]*float64, global []float64, higherIsBetter bool) map[string]int {
	if len(global) == 0 {
		return normalizeMinMax(values, higherIsBetter)
	}

	sorted := make([]float64, len(global))
	copy(sorted, global)
	sort.Float64s(sorted)

	mid := median(sorted)
	maxIndex := len(sorted) - 1
	if maxIndex < 1 {
		maxIndex = 1
	}

	normalized := make(map[string]int, len(values))
	for country, value := range values {
		v := mid
		if value != nil {
			v = *value
		}
		percentile := float64(sort.SearchFloat64s(sorted, v)) / float64(maxIndex)
		if !higherIsBetter {
			percentile = 1 - percentile
		}
		if percentile < 0 {
			percentile = 0
		}
		if percentile > 1 {
			percentile = 1
		}
		normalized[country] = int(percentile*100 + 0.5)
	}
	return normalized
}

// median expects a sorted slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
