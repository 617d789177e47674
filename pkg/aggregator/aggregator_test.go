package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/model"
)

// flatBaseline builds a complete table with every cell at score.
func flatBaseline(score int) *model.BaselineTable {
	table := &model.BaselineTable{
		AspectScores:  map[string]map[string]int{},
		CountryScores: map[string]int{},
	}
	for _, country := range model.Countries {
		scores := map[string]int{}
		for _, aspect := range model.Aspects {
			scores[aspect] = score
		}
		table.AspectScores[country] = scores
		table.CountryScores[country] = model.TotalScore(scores)
	}
	return table
}

func TestAggregateIncompleteBaseline(t *testing.T) {
	table := flatBaseline(50)
	delete(table.AspectScores["China"], "Energy Security")

	_, _, err := Aggregate(table, nil)
	assert.ErrorIs(t, err, model.ErrEmptyBaseline)
}

func TestAggregateNoImpacts(t *testing.T) {
	table := flatBaseline(50)

	result, dropped, err := Aggregate(table, nil)
	require.NoError(t, err)
	assert.Empty(t, dropped)

	for _, country := range model.Countries {
		assert.Equal(t, 50, result.CountryScores[country])
		for _, aspect := range model.Aspects {
			assert.Equal(t, 50, result.AspectScores[country][aspect])
			assert.Equal(t, 0, result.AspectDeltas[country][aspect])
			assert.Equal(t, "no significant change", result.AspectReasons[country][aspect])
		}
		assert.Equal(t, "No significant changes.", result.Explanations[country])
	}

	assert.Empty(t, result.ImpactSummary.TopRisers)
	assert.Empty(t, result.ImpactSummary.TopFallers)
	assert.Empty(t, result.ImpactSummary.TopAspects)

	// Equal scores keep the fixed enumeration order.
	assert.Equal(t, "India", result.RankChanges[0].Country)
	assert.Equal(t, 1, result.RankChanges[0].Rank)
	assert.Equal(t, "UK", result.RankChanges[9].Country)
	assert.Equal(t, 10, result.RankChanges[9].Rank)
}

func TestAggregateAppliesDelta(t *testing.T) {
	table := flatBaseline(50)
	impacts := []model.ImpactRecord{
		{Country: "USA", Aspect: "Economic Stability", Delta: -15, Reason: "trade collapse hits exports"},
	}

	result, dropped, err := Aggregate(table, impacts)
	require.NoError(t, err)
	assert.Empty(t, dropped)

	assert.Equal(t, 35, result.AspectScores["USA"]["Economic Stability"])
	assert.Equal(t, -15, result.AspectDeltas["USA"]["Economic Stability"])
	assert.Equal(t, "trade collapse hits exports", result.AspectReasons["USA"]["Economic Stability"])
	assert.Equal(t, 50, result.BaselineAspectScores["USA"]["Economic Stability"])

	// 6 aspects at 50 plus one at 35 -> mean 47.86 -> 48.
	assert.Equal(t, 48, result.CountryScores["USA"])

	require.Len(t, result.ImpactSummary.TopFallers, 1)
	assert.Equal(t, "USA", result.ImpactSummary.TopFallers[0].Country)
	assert.Equal(t, -2, result.ImpactSummary.TopFallers[0].ScoreChange)

	require.Len(t, result.ImpactSummary.TopAspects, 1)
	assert.Equal(t, "Economic Stability", result.ImpactSummary.TopAspects[0].Aspect)
	assert.InDelta(t, 1.5, result.ImpactSummary.TopAspects[0].MeanAbsDelta, 0.001)

	assert.Contains(t, result.Explanations["USA"], "Economic Stability: -15 points")
}

func TestAggregateClampsOnceAfterSum(t *testing.T) {
	table := flatBaseline(50)
	table.AspectScores["Japan"]["Energy Security"] = 90

	impacts := []model.ImpactRecord{
		{Country: "Japan", Aspect: "Energy Security", Delta: 8, Reason: "supply shock resolved"},
		{Country: "Japan", Aspect: "Energy Security", Delta: 12},
	}

	result, _, err := Aggregate(table, impacts)
	require.NoError(t, err)

	// 90 + (8+12) clamps to 100; the effective delta reflects the clamp.
	assert.Equal(t, 100, result.AspectScores["Japan"]["Energy Security"])
	assert.Equal(t, 10, result.AspectDeltas["Japan"]["Energy Security"])
	assert.Equal(t, "supply shock resolved", result.AspectReasons["Japan"]["Energy Security"])
}

func TestAggregateFirstNonEmptyReasonWins(t *testing.T) {
	table := flatBaseline(50)
	impacts := []model.ImpactRecord{
		{Country: "India", Aspect: "Economic Stability", Delta: 3},
		{Country: "India", Aspect: "Economic Stability", Delta: 2, Reason: "remittances rise"},
		{Country: "India", Aspect: "Economic Stability", Delta: 1, Reason: "ignored"},
	}

	result, _, err := Aggregate(table, impacts)
	require.NoError(t, err)
	assert.Equal(t, 56, result.AspectScores["India"]["Economic Stability"])
	assert.Equal(t, "remittances rise", result.AspectReasons["India"]["Economic Stability"])
}

func TestAggregateDropsUnknownReferences(t *testing.T) {
	table := flatBaseline(50)
	impacts := []model.ImpactRecord{
		{Country: "Atlantis", Aspect: "Economic Stability", Delta: -10},
		{Country: "India", Aspect: "Morale", Delta: 5},
		{Country: "India", Aspect: "Economic Stability", Delta: 5, Reason: "valid"},
	}

	result, dropped, err := Aggregate(table, impacts)
	require.NoError(t, err)
	assert.Len(t, dropped, 2)
	assert.Len(t, result.Impacts, 1)
	assert.Equal(t, 55, result.AspectScores["India"]["Economic Stability"])
	assert.Equal(t, 50, result.AspectScores["Atlantis"]["Economic Stability"])
}

func TestAggregateRankMovement(t *testing.T) {
	table := flatBaseline(50)
	impacts := make([]model.ImpactRecord, 0, len(model.Aspects))
	for _, aspect := range model.Aspects {
		impacts = append(impacts, model.ImpactRecord{
			Country: "UK", Aspect: aspect, Delta: 10, Reason: "boom",
		})
	}

	result, _, err := Aggregate(table, impacts)
	require.NoError(t, err)

	assert.Equal(t, 60, result.CountryScores["UK"])
	assert.Equal(t, "UK", result.RankChanges[0].Country)
	assert.Equal(t, 1, result.RankChanges[0].Rank)
	assert.Equal(t, 10, result.RankChanges[0].PreviousRank)
	assert.Equal(t, 9, result.RankChanges[0].RankChange)

	require.Len(t, result.ImpactSummary.TopRisers, 1)
	assert.Equal(t, "UK", result.ImpactSummary.TopRisers[0].Country)
}

func TestBuildNarrative(t *testing.T) {
	empty := BuildNarrative("", model.ImpactSummary{})
	assert.Equal(t, "Scenario analyzed. No significant changes detected.", empty)

	summary := model.ImpactSummary{
		TopRisers:  []model.RankChange{{Country: "India"}},
		TopFallers: []model.RankChange{{Country: "Japan"}, {Country: "UK"}},
		TopAspects: []model.AspectImpact{{Aspect: "Energy Security"}},
	}
	text := BuildNarrative("Oil shock disrupts shipping.", summary)
	assert.Contains(t, text, "Scenario: Oil shock disrupts shipping.")
	assert.Contains(t, text, "Top risers: India")
	assert.Contains(t, text, "Top fallers: Japan, UK")
	assert.Contains(t, text, "Most affected aspects: Energy Security")
}
