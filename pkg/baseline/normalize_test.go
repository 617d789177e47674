package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestNormalizeMinMax(t *testing.T) {
	values := map[string]*float64{
		"A": ptr(0),
		"B": ptr(100),
		"C": nil,
	}

	scores := normalizeMinMax(values, true)
	assert.Equal(t, 0, scores["A"])
	assert.Equal(t, 100, scores["B"])
	// Missing values take the median of the present ones.
	assert.Equal(t, 50, scores["C"])

	inverted := normalizeMinMax(values, false)
	assert.Equal(t, 100, inverted["A"])
	assert.Equal(t, 0, inverted["B"])
	assert.Equal(t, 50, inverted["C"])
}

func TestNormalizeMinMaxDegenerate(t *testing.T) {
	allEqual := map[string]*float64{"A": ptr(7), "B": ptr(7)}
	for _, score := range normalizeMinMax(allEqual, true) {
		assert.Equal(t, 50, score)
	}

	allMissing := map[string]*float64{"A": nil, "B": nil}
	for _, score := range normalizeMinMax(allMissing, true) {
		assert.Equal(t, 50, score)
	}
}

func TestNormalizeGlobal(t *testing.T) {
	global := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	values := map[string]*float64{
		"top":     ptr(100),
		"bottom":  ptr(10),
		"mid":     ptr(55),
		"missing": nil,
		"beyond":  ptr(500),
	}

	scores := normalizeGlobal(values, global, true)
	assert.Equal(t, 100, scores["top"])
	assert.Equal(t, 0, scores["bottom"])
	assert.Equal(t, 56, scores["mid"])
	// Missing values take the global median (55).
	assert.Equal(t, 56, scores["missing"])
	// Out-of-distribution values clamp to the percentile bounds.
	assert.Equal(t, 100, scores["beyond"])

	inverted := normalizeGlobal(values, global, false)
	assert.Equal(t, 0, inverted["top"])
	assert.Equal(t, 100, inverted["bottom"])
}

func TestNormalizeGlobalEmptyFallsBack(t *testing.T) {
	values := map[string]*float64{"A": ptr(1), "B": ptr(3)}
	scores := normalizeGlobal(values, nil, true)
	assert.Equal(t, 0, scores["A"])
	assert.Equal(t, 100, scores["B"])
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 5.0, median([]float64{5}))
	assert.Equal(t, 2.0, median([]float64{1, 2, 3}))
	assert.Equal(t, 2.5, median([]float64{1, 2, 3, 4}))
}
