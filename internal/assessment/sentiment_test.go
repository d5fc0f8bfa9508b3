package assessment_test

import (
	"testing"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sentimentRow(region string, scores map[assessment.SentimentField]float64) assessment.SentimentRespondent {
	return assessment.SentimentRespondent{
		Demographics: assessment.Demographics{Region: region, Department: "Ops", EmploymentType: "FT", AgeGroup: "30-39"},
		Scores:       scores,
	}
}

func TestDisplayScore(t *testing.T) {
	cases := []struct {
		name     string
		raw      float64
		expected float64
	}{
		{"scale floor", 1.0, 2.0},
		{"scale ceiling", 2.0, 4.0},
		{"midpoint", 1.5, 3.0},
		{"clamped below", 0.5, 2.0},
		{"clamped above", 2.7, 4.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, assessment.DisplayScore(tc.raw), 1e-9)
		})
	}

	t.Run("monotonic on the raw scale", func(t *testing.T) {
		prev := assessment.DisplayScore(1.0)
		for raw := 1.01; raw <= 2.0; raw += 0.01 {
			cur := assessment.DisplayScore(raw)
			assert.GreaterOrEqual(t, cur, prev)
			prev = cur
		}
	})
}

func TestCalculateSentimentHeatmap_EmptyInput(t *testing.T) {
	t.Run("no respondents", func(t *testing.T) {
		result := assessment.CalculateSentimentHeatmap(nil, assessment.Filters{})

		require.Len(t, result.Cells, 25)
		for _, c := range result.Cells {
			assert.Equal(t, 0.0, c.Score)
			assert.Equal(t, 0, c.Count)
			assert.Equal(t, assessment.NoDataRank, c.Rank)
			assert.Equal(t, assessment.ColorNoData, c.Color)
		}
		assert.Equal(t, 0.0, result.Stats.OverallAverage)
		assert.Equal(t, 0.0, result.Stats.StandardDeviation)
		assert.Equal(t, 0, result.Stats.TotalRespondents)
		assert.Equal(t, [5]float64{}, result.Stats.RowAverages)
		assert.Equal(t, [5]float64{}, result.Stats.ColumnAverages)
	})

	t.Run("filters exclude everything", func(t *testing.T) {
		rows := []assessment.SentimentRespondent{
			sentimentRow("EU", map[assessment.SentimentField]float64{"sentiment_1": 1.5}),
		}
		result := assessment.CalculateSentimentHeatmap(rows, assessment.Filters{Region: "US"})

		require.Len(t, result.Cells, 25)
		for _, c := range result.Cells {
			assert.Equal(t, 0, c.Count)
			assert.Equal(t, assessment.NoDataRank, c.Rank)
		}
		assert.Equal(t, 0, result.Stats.TotalRespondents)
	})
}

func TestCalculateSentimentHeatmap_SingleCell(t *testing.T) {
	rows := []assessment.SentimentRespondent{
		sentimentRow("EU", map[assessment.SentimentField]float64{"sentiment_1": 1.0}),
		sentimentRow("EU", map[assessment.SentimentField]float64{"sentiment_1": 1.5}),
	}

	result := assessment.CalculateSentimentHeatmap(rows, assessment.Filters{})

	require.Len(t, result.Cells, 25)
	first := result.Cells[0]
	assert.Equal(t, "L1_C1", first.CellID)
	assert.InDelta(t, 2.5, first.Score, 1e-9)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, assessment.CellDescriptions["L1_C1"], first.Description)

	for _, c := range result.Cells[1:] {
		assert.Equal(t, 0.0, c.Score)
		assert.Equal(t, 0, c.Count)
		assert.Equal(t, assessment.NoDataRank, c.Rank)
		assert.Equal(t, assessment.ColorNoData, c.Color)
	}

	assert.Equal(t, 2, result.Stats.TotalRespondents)
	assert.InDelta(t, 2.5, result.Stats.OverallAverage, 1e-9)
	assert.InDelta(t, 0.0, result.Stats.StandardDeviation, 1e-9)
	assert.InDelta(t, 2.5, result.Stats.RowAverages[0], 1e-9)
	assert.InDelta(t, 2.5, result.Stats.ColumnAverages[0], 1e-9)
}

func TestCalculateSentimentHeatmap_Filtering(t *testing.T) {
	rows := []assessment.SentimentRespondent{
		sentimentRow("EU", map[assessment.SentimentField]float64{"sentiment_1": 1.0}),
		sentimentRow("US", map[assessment.SentimentField]float64{"sentiment_1": 2.0}),
	}

	result := assessment.CalculateSentimentHeatmap(rows, assessment.Filters{Region: "EU"})

	assert.Equal(t, 1, result.Stats.TotalRespondents)
	first := result.Cells[0]
	assert.Equal(t, 1, first.Count)
	assert.InDelta(t, 2.0, first.Score, 1e-9)
}

func TestCalculateSentimentHeatmap_RankInvariant(t *testing.T) {
	// Three data-bearing cells with distinct scores: the lowest display
	// score ranks first, the highest ranks last (N, not 25).
	rows := []assessment.SentimentRespondent{
		sentimentRow("EU", map[assessment.SentimentField]float64{
			"sentiment_1": 1.0, // display 2.0
			"sentiment_2": 1.5, // display 3.0
			"sentiment_3": 2.0, // display 4.0
		}),
	}

	result := assessment.CalculateSentimentHeatmap(rows, assessment.Filters{})

	byCell := make(map[string]assessment.SentimentCell)
	dataBearing := 0
	for _, c := range result.Cells {
		byCell[c.CellID] = c
		if c.Count > 0 {
			dataBearing++
		}
	}

	require.Equal(t, 3, dataBearing)
	assert.Equal(t, 1, byCell["L1_C1"].Rank)
	assert.Equal(t, 2, byCell["L1_C2"].Rank)
	assert.Equal(t, 3, byCell["L1_C3"].Rank)

	// With N=3 the top-3 and bottom-3 bands overlap; the top band wins.
	assert.Equal(t, assessment.ColorTop3, byCell["L1_C1"].Color)
	assert.Equal(t, assessment.ColorTop3, byCell["L1_C3"].Color)
}

func TestCalculateSentimentHeatmap_TiedScoresShareRank(t *testing.T) {
	rows := []assessment.SentimentRespondent{
		sentimentRow("EU", map[assessment.SentimentField]float64{
			"sentiment_1": 1.2,
			"sentiment_2": 1.2,
			"sentiment_3": 1.8,
		}),
	}

	result := assessment.CalculateSentimentHeatmap(rows, assessment.Filters{})

	byCell := make(map[string]assessment.SentimentCell)
	for _, c := range result.Cells {
		byCell[c.CellID] = c
	}

	// Equal scores resolve to the first matching position.
	assert.Equal(t, 1, byCell["L1_C1"].Rank)
	assert.Equal(t, 1, byCell["L1_C2"].Rank)
	assert.Equal(t, 3, byCell["L1_C3"].Rank)
}

func TestCalculateSentimentHeatmap_Stats(t *testing.T) {
	rows := []assessment.SentimentRespondent{
		sentimentRow("EU", map[assessment.SentimentField]float64{
			"sentiment_1": 1.0, // L1_C1, display 2.0
			"sentiment_6": 2.0, // L2_C1, display 4.0
		}),
	}

	result := assessment.CalculateSentimentHeatmap(rows, assessment.Filters{})

	assert.InDelta(t, 3.0, result.Stats.OverallAverage, 1e-9)
	// Population std dev over {2.0, 4.0}.
	assert.InDelta(t, 1.0, result.Stats.StandardDeviation, 1e-9)
	assert.InDelta(t, 2.0, result.Stats.RowAverages[0], 1e-9)
	assert.InDelta(t, 4.0, result.Stats.RowAverages[1], 1e-9)
	assert.InDelta(t, 0.0, result.Stats.RowAverages[2], 1e-9)
	// Both cells sit in category 1.
	assert.InDelta(t, 3.0, result.Stats.ColumnAverages[0], 1e-9)
	assert.InDelta(t, 0.0, result.Stats.ColumnAverages[1], 1e-9)
}

func TestScoringCellSelections(t *testing.T) {
	rows := []assessment.SentimentRespondent{
		sentimentRow("EU", map[assessment.SentimentField]float64{
			"sentiment_1": 1.0, // display 2.0 — least resistance
			"sentiment_2": 1.5, // display 3.0
			"sentiment_3": 2.0, // display 4.0 — most resistance
		}),
	}
	result := assessment.CalculateSentimentHeatmap(rows, assessment.Filters{})

	t.Run("lowest means most resistance", func(t *testing.T) {
		lowest := assessment.LowestScoringCells(result.Cells, 2)
		require.Len(t, lowest, 2)
		assert.Equal(t, "L1_C3", lowest[0].CellID)
		assert.Equal(t, "L1_C2", lowest[1].CellID)
	})

	t.Run("highest means least resistance", func(t *testing.T) {
		highest := assessment.HighestScoringCells(result.Cells, 2)
		require.Len(t, highest, 2)
		assert.Equal(t, "L1_C1", highest[0].CellID)
		assert.Equal(t, "L1_C2", highest[1].CellID)
	})

	t.Run("count larger than data-bearing cells", func(t *testing.T) {
		assert.Len(t, assessment.LowestScoringCells(result.Cells, 10), 3)
	})
}

func TestSentimentFieldMapping(t *testing.T) {
	assert.Equal(t, assessment.SentimentField("sentiment_1"), assessment.SentimentFieldFor(1, 1))
	assert.Equal(t, assessment.SentimentField("sentiment_10"), assessment.SentimentFieldFor(2, 5))
	assert.Equal(t, assessment.SentimentField("sentiment_25"), assessment.SentimentFieldFor(5, 5))
	assert.Len(t, assessment.SentimentFields(), 25)
}
