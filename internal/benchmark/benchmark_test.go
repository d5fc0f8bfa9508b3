package benchmark_test

import (
	"testing"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/ainavigator/navigator-server/internal/benchmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolRow(company, region string, scores map[assessment.SentimentField]float64) assessment.SentimentRespondent {
	return assessment.SentimentRespondent{
		Demographics: assessment.Demographics{CompanyID: company, Region: region, Department: "Ops"},
		Scores:       scores,
	}
}

func capPoolRow(company, region string, scores map[assessment.CapabilityField]float64) assessment.CapabilityRespondent {
	return assessment.CapabilityRespondent{
		Demographics: assessment.Demographics{CompanyID: company, Region: region, Department: "Ops"},
		Scores:       scores,
	}
}

func TestSentiment_EmptyPool(t *testing.T) {
	result := benchmark.Sentiment(nil, nil, benchmark.Filters{})

	assert.Equal(t, 0.0, result.OverallAverage)
	assert.Empty(t, result.CellAverages)
	assert.Equal(t, 0.0, result.CompanyScore)
	assert.Equal(t, 50, result.Percentile)
}

func TestSentiment_CompanyVsPool(t *testing.T) {
	pool := []assessment.SentimentRespondent{
		poolRow("a", "EU", map[assessment.SentimentField]float64{"sentiment_1": 1.0}),
		poolRow("b", "EU", map[assessment.SentimentField]float64{"sentiment_1": 2.0}),
	}
	company := []assessment.SentimentRespondent{
		poolRow("a", "EU", map[assessment.SentimentField]float64{"sentiment_1": 1.0}),
	}

	result := benchmark.Sentiment(pool, company, benchmark.Filters{})

	// Pool cell average over raw values {1.0, 2.0}.
	assert.InDelta(t, 1.5, result.CellAverages["L1_C1"], 1e-9)
	assert.InDelta(t, 1.5, result.OverallAverage, 1e-9)
	assert.InDelta(t, 1.0, result.CompanyScore, 1e-9)
	// Negative delta: company sees less resistance than the pool.
	assert.InDelta(t, -0.5, result.CompanyVsBenchmark, 1e-9)
	// Lower is better: company a (1.0) beats company b (2.0) of the two.
	assert.Equal(t, 50, result.Percentile)
}

func TestSentiment_Filtering(t *testing.T) {
	pool := []assessment.SentimentRespondent{
		poolRow("a", "EU", map[assessment.SentimentField]float64{"sentiment_1": 1.0}),
		poolRow("b", "US", map[assessment.SentimentField]float64{"sentiment_1": 2.0}),
	}

	result := benchmark.Sentiment(pool, nil, benchmark.Filters{Region: "EU"})

	assert.InDelta(t, 1.0, result.CellAverages["L1_C1"], 1e-9)
	require.Contains(t, result.RegionAverages, "EU")
	assert.NotContains(t, result.RegionAverages, "US")
}

func TestSentiment_GroupAverages(t *testing.T) {
	pool := []assessment.SentimentRespondent{
		poolRow("a", "EU", map[assessment.SentimentField]float64{"sentiment_1": 1.0}),
		poolRow("a", "", map[assessment.SentimentField]float64{"sentiment_1": 2.0}),
	}

	result := benchmark.Sentiment(pool, nil, benchmark.Filters{})

	assert.InDelta(t, 1.0, result.RegionAverages["EU"], 1e-9)
	assert.InDelta(t, 2.0, result.RegionAverages["Unknown"], 1e-9)
	assert.InDelta(t, 1.5, result.DepartmentAverages["Ops"], 1e-9)
}

func TestCapability_EmptyPool(t *testing.T) {
	result := benchmark.Capability(nil, nil, benchmark.Filters{})

	assert.Empty(t, result.DimensionAverages)
	assert.Equal(t, 0.0, result.OverallAverage)
	assert.Empty(t, result.Percentiles)
}

func TestCapability_PerDimension(t *testing.T) {
	pool := []assessment.CapabilityRespondent{
		capPoolRow("a", "EU", map[assessment.CapabilityField]float64{"construct_1": 2.0}),
		capPoolRow("b", "EU", map[assessment.CapabilityField]float64{"construct_1": 4.0}),
	}
	company := []assessment.CapabilityRespondent{
		capPoolRow("a", "EU", map[assessment.CapabilityField]float64{"construct_1": 4.0}),
	}

	result := benchmark.Capability(pool, company, benchmark.Filters{})

	assert.InDelta(t, 3.0, result.DimensionAverages[1], 1e-9)
	assert.InDelta(t, 4.0, result.CompanyScores[1], 1e-9)
	assert.InDelta(t, 1.0, result.CompanyVsBenchmark[1], 1e-9)
	// Higher is better: the company (4.0) beats company a (2.0), ties b.
	assert.Equal(t, 50, result.Percentiles[1])
	// Dimensions without data report zero and the neutral percentile.
	assert.InDelta(t, 0.0, result.DimensionAverages[8], 1e-9)
	assert.Equal(t, 50, result.Percentiles[8])
	// Overall ignores the empty dimensions.
	assert.InDelta(t, 3.0, result.OverallAverage, 1e-9)
}
