package assessment_test

import (
	"testing"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capabilityRow(region string, scores map[assessment.CapabilityField]float64) assessment.CapabilityRespondent {
	return assessment.CapabilityRespondent{
		Demographics: assessment.Demographics{Region: region, Department: "Ops", EmploymentType: "FT", AgeGroup: "30-39"},
		Scores:       scores,
	}
}

func TestCalculateCapabilityAssessment_EmptyInput(t *testing.T) {
	t.Run("no respondents", func(t *testing.T) {
		result := assessment.CalculateCapabilityAssessment(nil, nil, assessment.Filters{})

		assert.Empty(t, result.Dimensions)
		assert.Equal(t, 0.0, result.Overall.Average)
		assert.Nil(t, result.Overall.Highest)
		assert.Nil(t, result.Overall.Lowest)
		assert.Nil(t, result.Overall.BiggestGap)
	})

	t.Run("filters exclude everything", func(t *testing.T) {
		rows := []assessment.CapabilityRespondent{
			capabilityRow("EU", map[assessment.CapabilityField]float64{"construct_1": 3.0}),
		}
		result := assessment.CalculateCapabilityAssessment(rows, nil, assessment.Filters{Region: "US"})

		assert.Empty(t, result.Dimensions)
		assert.Nil(t, result.Overall.Highest)
	})
}

func TestCalculateCapabilityAssessment_DimensionStats(t *testing.T) {
	// Dimension 1 constructs score [3, 5, -, -]: statistics consider only
	// the constructs that carry data.
	rows := []assessment.CapabilityRespondent{
		capabilityRow("EU", map[assessment.CapabilityField]float64{
			"construct_1": 3.0,
			"construct_2": 5.0,
		}),
	}

	result := assessment.CalculateCapabilityAssessment(rows, nil, assessment.Filters{})
	require.Len(t, result.Dimensions, 8)

	dim := result.Dimensions[0]
	assert.Equal(t, 1, dim.DimensionID)
	assert.Equal(t, "Strategy and Vision", dim.Name)
	assert.InDelta(t, 4.0, dim.Average, 1e-9)
	assert.InDelta(t, 5.0, dim.Max, 1e-9)
	assert.InDelta(t, 3.0, dim.Min, 1e-9)
	assert.InDelta(t, 2.0, dim.Spread, 1e-9)
	require.Len(t, dim.Constructs, 4)
	assert.InDelta(t, 3.0, dim.Constructs[0].Score, 1e-9)
	assert.InDelta(t, 0.0, dim.Constructs[2].Score, 1e-9)

	// The other seven dimensions have no data at all.
	for _, d := range result.Dimensions[1:] {
		assert.Equal(t, 0.0, d.Average)
		assert.Equal(t, 0.0, d.Spread)
	}
}

func TestCalculateCapabilityAssessment_ConstructAveraging(t *testing.T) {
	rows := []assessment.CapabilityRespondent{
		capabilityRow("EU", map[assessment.CapabilityField]float64{"construct_5": 2.0}),
		capabilityRow("EU", map[assessment.CapabilityField]float64{"construct_5": 4.0}),
		capabilityRow("EU", map[assessment.CapabilityField]float64{}), // contributes nothing
	}

	result := assessment.CalculateCapabilityAssessment(rows, nil, assessment.Filters{})

	data := result.Dimensions[1] // Data dimension holds constructs 5-8
	require.Equal(t, 2, data.DimensionID)
	assert.InDelta(t, 3.0, data.Constructs[0].Score, 1e-9)
	assert.InDelta(t, 3.0, data.Average, 1e-9)
}

func TestStatusClassificationBoundaries(t *testing.T) {
	cases := []struct {
		name      string
		average   float64
		benchmark float64
		expected  assessment.DimensionStatus
	}{
		{"well above", 4.0, 3.0, assessment.StatusAbove},
		{"exactly +0.5 is not above", 3.5, 3.0, assessment.StatusAt},
		{"just above +0.5", 3.51, 3.0, assessment.StatusAbove},
		{"small gap stays at", 2.8, 3.0, assessment.StatusAt},
		{"exactly -0.3 is at", 2.7, 3.0, assessment.StatusAt},
		{"below -0.3", 2.69, 3.0, assessment.StatusBelow},
		{"exactly -1.0 is below, not significant", 2.0, 3.0, assessment.StatusBelow},
		{"beyond -1.0", 1.99, 3.0, assessment.StatusSignificantlyBelow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := []assessment.CapabilityRespondent{
				capabilityRow("EU", map[assessment.CapabilityField]float64{
					"construct_1": tc.average,
				}),
			}
			benchmarks := map[int]float64{1: tc.benchmark}

			result := assessment.CalculateCapabilityAssessment(rows, benchmarks, assessment.Filters{})
			assert.Equal(t, tc.expected, result.Dimensions[0].Status)
		})
	}
}

func TestCalculateCapabilityAssessment_Overall(t *testing.T) {
	rows := []assessment.CapabilityRespondent{
		capabilityRow("EU", map[assessment.CapabilityField]float64{
			// Dimension 1: avg 2.0
			"construct_1": 2.0,
			// Dimension 2: avg 4.0, spread 2.0
			"construct_5": 3.0,
			"construct_6": 5.0,
			// Dimension 3: avg 3.0
			"construct_9": 3.0,
		}),
	}

	result := assessment.CalculateCapabilityAssessment(rows, nil, assessment.Filters{})

	overall := result.Overall
	require.NotNil(t, overall.Highest)
	require.NotNil(t, overall.Lowest)
	require.NotNil(t, overall.BiggestGap)

	assert.InDelta(t, 3.0, overall.Average, 1e-9)
	assert.Equal(t, 2, overall.Highest.DimensionID)
	assert.Equal(t, 1, overall.Lowest.DimensionID)
	assert.Equal(t, 2, overall.BiggestGap.DimensionID)
}

func TestCalculateCapabilityAssessment_OverallTiesKeepFirst(t *testing.T) {
	rows := []assessment.CapabilityRespondent{
		capabilityRow("EU", map[assessment.CapabilityField]float64{
			"construct_1": 3.0, // dimension 1
			"construct_5": 3.0, // dimension 2, same average
		}),
	}

	result := assessment.CalculateCapabilityAssessment(rows, nil, assessment.Filters{})

	assert.Equal(t, 1, result.Overall.Highest.DimensionID)
	assert.Equal(t, 1, result.Overall.Lowest.DimensionID)
	assert.Equal(t, 1, result.Overall.BiggestGap.DimensionID)
}

func TestWeakestDimensions(t *testing.T) {
	rows := []assessment.CapabilityRespondent{
		capabilityRow("EU", map[assessment.CapabilityField]float64{
			"construct_1":  2.0, // dim 1, gap -2.0
			"construct_5":  3.5, // dim 2, gap -0.5
			"construct_9":  4.5, // dim 3, gap +0.5
			"construct_13": 1.5, // dim 4, gap -2.5
		}),
	}
	benchmarks := map[int]float64{1: 4.0, 2: 4.0, 3: 4.0, 4: 4.0}

	result := assessment.CalculateCapabilityAssessment(rows, benchmarks, assessment.Filters{})
	weakest := assessment.WeakestDimensions(result.Dimensions, 2)

	require.Len(t, weakest, 2)
	assert.Equal(t, 4, weakest[0].DimensionID)
	assert.Equal(t, 1, weakest[1].DimensionID)
}

func TestWeakestConstructs(t *testing.T) {
	rows := []assessment.CapabilityRespondent{
		capabilityRow("EU", map[assessment.CapabilityField]float64{
			"construct_1": 4.0,
			"construct_2": 1.5,
			"construct_5": 2.5,
		}),
	}

	result := assessment.CalculateCapabilityAssessment(rows, nil, assessment.Filters{})
	weakest := assessment.WeakestConstructs(result.Dimensions, 2)

	require.Len(t, weakest, 2)
	assert.Equal(t, 2, weakest[0].ConstructID)
	assert.Equal(t, "Strategy and Vision", weakest[0].DimensionName)
	assert.Equal(t, 5, weakest[1].ConstructID)
	assert.Equal(t, "Data", weakest[1].DimensionName)
}

func TestConstructMetadata(t *testing.T) {
	assert.Len(t, assessment.CapabilityDimensions, 8)
	assert.Len(t, assessment.CapabilityConstructs, 32)

	for _, dim := range assessment.CapabilityDimensions {
		constructs := assessment.ConstructsForDimension(dim.ID)
		assert.Len(t, constructs, 4, "dimension %d", dim.ID)
		for _, c := range constructs {
			assert.Equal(t, dim.ID, c.DimensionID)
		}
	}

	assert.Nil(t, assessment.DimensionByID(42))
	require.NotNil(t, assessment.DimensionByID(8))
	assert.Equal(t, "Ethics and Responsibility", assessment.DimensionByID(8).Name)
}
