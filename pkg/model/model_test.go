package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int
	}{
		{"below range", -5, 0},
		{"lower bound", 0, 0},
		{"in range", 42, 42},
		{"upper bound", 100, 100},
		{"above range", 130, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.input))
		})
	}
}

func TestTotalScore(t *testing.T) {
	assert.Equal(t, 0, TotalScore(nil))

	scores := map[string]int{}
	for _, aspect := range Aspects {
		scores[aspect] = 50
	}
	assert.Equal(t, 50, TotalScore(scores))

	// 7 aspects summing to 355 -> mean 50.71 -> rounds to 51.
	scores[Aspects[0]] = 55
	assert.Equal(t, 51, TotalScore(scores))
}

func TestValidReferences(t *testing.T) {
	assert.True(t, ValidCountry("India"))
	assert.True(t, ValidCountry("UK"))
	assert.False(t, ValidCountry("Atlantis"))
	assert.False(t, ValidCountry("india"))

	assert.True(t, ValidAspect("Energy Security"))
	assert.False(t, ValidAspect("Space Program"))

	ok := ImpactRecord{Country: "Japan", Aspect: "Cyber Resilience & Digital Infrastructure"}
	assert.True(t, ok.Valid())
	bad := ImpactRecord{Country: "Japan", Aspect: "Morale"}
	assert.False(t, bad.Valid())
}

func TestBaselineTableComplete(t *testing.T) {
	var nilTable *BaselineTable
	assert.ErrorIs(t, nilTable.Complete(), ErrEmptyBaseline)

	table := &BaselineTable{
		AspectScores:  map[string]map[string]int{},
		CountryScores: map[string]int{},
	}
	for _, country := range Countries {
		scores := map[string]int{}
		for _, aspect := range Aspects {
			scores[aspect] = 60
		}
		table.AspectScores[country] = scores
		table.CountryScores[country] = 60
	}
	assert.NoError(t, table.Complete())

	delete(table.AspectScores["Nepal"], "Energy Security")
	assert.ErrorIs(t, table.Complete(), ErrEmptyBaseline)

	table.AspectScores["Nepal"]["Energy Security"] = 130
	assert.ErrorIs(t, table.Complete(), ErrEmptyBaseline)
}
