package assessment

import (
	"math"
	"sort"
)

// DimensionStatus classifies a dimension's average against its benchmark.
type DimensionStatus string

const (
	StatusAbove              DimensionStatus = "above"
	StatusAt                 DimensionStatus = "at"
	StatusBelow              DimensionStatus = "below"
	StatusSignificantlyBelow DimensionStatus = "significantly_below"
)

// Gap thresholds for status classification. The comparisons are strict.
const (
	aboveGap    = 0.5
	belowGap    = -0.3
	criticalGap = -1.0
)

// ConstructScore is the aggregated score of a single construct.
type ConstructScore struct {
	ConstructID int      `json:"constructId"`
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Benchmark   *float64 `json:"benchmark,omitempty"`
}

// DimensionScore is the aggregated view of one capability dimension.
type DimensionScore struct {
	DimensionID int              `json:"dimensionId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Average     float64          `json:"average"`
	Max         float64          `json:"max"`
	Min         float64          `json:"min"`
	Spread      float64          `json:"spread"`
	Benchmark   float64          `json:"benchmark"`
	Status      DimensionStatus  `json:"status"`
	Constructs  []ConstructScore `json:"constructs"`
}

// CapabilityOverall summarizes the dimensions that carry data. The pointer
// fields are nil when no dimension has data.
type CapabilityOverall struct {
	Average    float64         `json:"average"`
	Highest    *DimensionScore `json:"highest"`
	Lowest     *DimensionScore `json:"lowest"`
	BiggestGap *DimensionScore `json:"biggestGap"`
}

// CapabilityOverview is the full output of the capability engine.
type CapabilityOverview struct {
	Dimensions []DimensionScore  `json:"dimensions"`
	Overall    CapabilityOverall `json:"overall"`
}

// CalculateCapabilityAssessment aggregates capability-scan rows into
// per-dimension scores. Benchmarks maps dimension ID to its reference
// value; missing entries default to 0. The function never fails: an empty
// filtered set yields the explicit empty overview.
func CalculateCapabilityAssessment(respondents []CapabilityRespondent, benchmarks map[int]float64, filters Filters) CapabilityOverview {
	filtered := FilterCapability(respondents, filters)
	if len(filtered) == 0 {
		return CapabilityOverview{}
	}

	dimensions := make([]DimensionScore, 0, len(CapabilityDimensions))
	for _, dim := range CapabilityDimensions {
		constructs := make([]ConstructScore, 0, len(dim.Constructs))
		for _, constructID := range dim.Constructs {
			field := CapabilityFieldFor(constructID)
			var sum float64
			var count int
			for _, r := range filtered {
				v, ok := r.Scores[field]
				if !ok || math.IsNaN(v) {
					continue
				}
				sum += v
				count++
			}
			var avg float64
			if count > 0 {
				avg = sum / float64(count)
			}
			constructs = append(constructs, ConstructScore{
				ConstructID: constructID,
				Name:        constructName(constructID),
				Score:       avg,
			})
		}

		// Dimension statistics consider only constructs that carry data;
		// a zero construct average means no measurements, not a zero score.
		var sum, max, min float64
		var valid int
		for _, c := range constructs {
			if c.Score <= 0 {
				continue
			}
			if valid == 0 || c.Score > max {
				max = c.Score
			}
			if valid == 0 || c.Score < min {
				min = c.Score
			}
			sum += c.Score
			valid++
		}

		score := DimensionScore{
			DimensionID: dim.ID,
			Name:        dim.Name,
			Description: dim.Description,
			Benchmark:   benchmarks[dim.ID],
			Constructs:  constructs,
		}
		if valid > 0 {
			score.Average = sum / float64(valid)
			score.Max = max
			score.Min = min
			score.Spread = max - min
		}
		score.Status = classifyGap(score.Average - score.Benchmark)

		dimensions = append(dimensions, score)
	}

	return CapabilityOverview{
		Dimensions: dimensions,
		Overall:    overallStats(dimensions),
	}
}

func classifyGap(gap float64) DimensionStatus {
	switch {
	case gap > aboveGap:
		return StatusAbove
	case gap < criticalGap:
		return StatusSignificantlyBelow
	case gap < belowGap:
		return StatusBelow
	default:
		return StatusAt
	}
}

// overallStats reduces over the dimensions with data; ties keep the first
// dimension encountered.
func overallStats(dimensions []DimensionScore) CapabilityOverall {
	var overall CapabilityOverall
	var sum float64
	var valid int

	for i := range dimensions {
		d := &dimensions[i]
		if d.Average <= 0 {
			continue
		}
		sum += d.Average
		valid++
		if overall.Highest == nil || d.Average > overall.Highest.Average {
			overall.Highest = d
		}
		if overall.Lowest == nil || d.Average < overall.Lowest.Average {
			overall.Lowest = d
		}
		if overall.BiggestGap == nil || d.Spread > overall.BiggestGap.Spread {
			overall.BiggestGap = d
		}
	}
	if valid > 0 {
		overall.Average = sum / float64(valid)
	}
	return overall
}

func constructName(constructID int) string {
	for _, c := range CapabilityConstructs {
		if c.ID == constructID {
			return c.Name
		}
	}
	return ""
}

// WeakestDimensions returns the n data-bearing dimensions with the most
// negative benchmark gap, worst first.
func WeakestDimensions(dimensions []DimensionScore, n int) []DimensionScore {
	withData := make([]DimensionScore, 0, len(dimensions))
	for _, d := range dimensions {
		if d.Average > 0 {
			withData = append(withData, d)
		}
	}
	sort.SliceStable(withData, func(i, j int) bool {
		return withData[i].Average-withData[i].Benchmark < withData[j].Average-withData[j].Benchmark
	})
	if n < len(withData) {
		withData = withData[:n]
	}
	return withData
}

// WeakConstruct tags a construct score with its parent dimension.
type WeakConstruct struct {
	ConstructScore
	DimensionName string `json:"dimensionName"`
}

// WeakestConstructs flattens all constructs across dimensions and returns
// the n lowest-scoring ones that carry data.
func WeakestConstructs(dimensions []DimensionScore, n int) []WeakConstruct {
	all := make([]WeakConstruct, 0, len(dimensions)*4)
	for _, d := range dimensions {
		for _, c := range d.Constructs {
			if c.Score > 0 {
				all = append(all, WeakConstruct{ConstructScore: c, DimensionName: d.Name})
			}
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score < all[j].Score
	})
	if n < len(all) {
		all = all[:n]
	}
	return all
}
