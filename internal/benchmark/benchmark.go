// Package benchmark compares one company's survey results against the
// cross-company respondent pool. All functions are pure: they operate on
// raw measurement values (sentiment raw scale 1.0-2.0, lower = less
// resistance; capability 1-5, higher = more mature).
package benchmark

import (
	"math"

	"github.com/ainavigator/navigator-server/internal/assessment"
)

// Filters narrows the benchmark pool. Industry is accepted for forward
// compatibility but not yet backed by a respondent column, so it imposes
// no restriction.
type Filters struct {
	Region     string `json:"region,omitempty"`
	Department string `json:"department,omitempty"`
	Industry   string `json:"industry,omitempty"`
}

func (f Filters) assessmentFilters() assessment.Filters {
	return assessment.Filters{Region: f.Region, Department: f.Department}
}

// SentimentResult positions a company's sentiment scores inside the pool.
// Lower scores are better, so a negative CompanyVsBenchmark means the
// company sees less resistance than the pool average.
type SentimentResult struct {
	OverallAverage     float64            `json:"overallAverage"`
	CellAverages       map[string]float64 `json:"cellAverages"`
	CompanyScore       float64            `json:"companyScore"`
	CompanyVsBenchmark float64            `json:"companyVsBenchmark"`
	Percentile         int                `json:"percentile"`
	RegionAverages     map[string]float64 `json:"regionAverages,omitempty"`
	DepartmentAverages map[string]float64 `json:"departmentAverages,omitempty"`
}

// CapabilityResult positions a company's per-dimension capability scores
// inside the pool. Higher scores are better.
type CapabilityResult struct {
	DimensionAverages  map[int]float64 `json:"dimensionAverages"`
	OverallAverage     float64         `json:"overallAverage"`
	CompanyScores      map[int]float64 `json:"companyScores"`
	CompanyVsBenchmark map[int]float64 `json:"companyVsBenchmark"`
	Percentiles        map[int]int     `json:"percentiles"`
}

// Sentiment benchmarks companyRows against the filtered pool. An empty pool
// yields the neutral result (all zeros, 50th percentile).
func Sentiment(pool, companyRows []assessment.SentimentRespondent, f Filters) SentimentResult {
	filtered := assessment.FilterSentiment(pool, f.assessmentFilters())
	if len(filtered) == 0 {
		return SentimentResult{CellAverages: map[string]float64{}, Percentile: 50}
	}

	cellAverages := make(map[string]float64, 25)
	var poolCellScores []float64
	for _, level := range assessment.SentimentLevels {
		for _, category := range assessment.SentimentCategories {
			cellID := assessment.CellID(level.ID, category.ID)
			field := assessment.SentimentFieldFor(level.ID, category.ID)
			if avg, ok := sentimentCellAverage(filtered, field); ok {
				cellAverages[cellID] = avg
				poolCellScores = append(poolCellScores, avg)
			} else {
				cellAverages[cellID] = 0
			}
		}
	}
	overallAverage := mean(poolCellScores)

	companyScore := sentimentOverallScore(companyRows)

	return SentimentResult{
		OverallAverage:     overallAverage,
		CellAverages:       cellAverages,
		CompanyScore:       companyScore,
		CompanyVsBenchmark: companyScore - overallAverage,
		Percentile:         percentile(companyScore, perCompanySentimentScores(filtered), false),
		RegionAverages:     sentimentGroupAverages(filtered, func(r assessment.SentimentRespondent) string { return r.Region }),
		DepartmentAverages: sentimentGroupAverages(filtered, func(r assessment.SentimentRespondent) string { return r.Department }),
	}
}

// Capability benchmarks companyRows against the filtered pool per dimension.
func Capability(pool, companyRows []assessment.CapabilityRespondent, f Filters) CapabilityResult {
	filtered := assessment.FilterCapability(pool, f.assessmentFilters())
	if len(filtered) == 0 {
		return CapabilityResult{
			DimensionAverages:  map[int]float64{},
			CompanyScores:      map[int]float64{},
			CompanyVsBenchmark: map[int]float64{},
			Percentiles:        map[int]int{},
		}
	}

	result := CapabilityResult{
		DimensionAverages:  make(map[int]float64, len(assessment.CapabilityDimensions)),
		CompanyScores:      make(map[int]float64, len(assessment.CapabilityDimensions)),
		CompanyVsBenchmark: make(map[int]float64, len(assessment.CapabilityDimensions)),
		Percentiles:        make(map[int]int, len(assessment.CapabilityDimensions)),
	}

	var dimensionAverages []float64
	for _, dim := range assessment.CapabilityDimensions {
		poolScore := dimensionScore(filtered, dim)
		companyScore := dimensionScore(companyRows, dim)

		result.DimensionAverages[dim.ID] = poolScore
		result.CompanyScores[dim.ID] = companyScore
		result.CompanyVsBenchmark[dim.ID] = companyScore - poolScore
		result.Percentiles[dim.ID] = percentile(companyScore, perCompanyDimensionScores(filtered, dim), true)

		if poolScore > 0 {
			dimensionAverages = append(dimensionAverages, poolScore)
		}
	}
	result.OverallAverage = mean(dimensionAverages)

	return result
}

func sentimentCellAverage(rows []assessment.SentimentRespondent, field assessment.SentimentField) (float64, bool) {
	var sum float64
	var n int
	for _, r := range rows {
		if v, ok := r.Scores[field]; ok && !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// sentimentOverallScore is the mean over the data-bearing cell averages of
// a row set.
func sentimentOverallScore(rows []assessment.SentimentRespondent) float64 {
	var cellScores []float64
	for _, field := range assessment.SentimentFields() {
		if avg, ok := sentimentCellAverage(rows, field); ok {
			cellScores = append(cellScores, avg)
		}
	}
	return mean(cellScores)
}

// dimensionScore is the mean of a row set's data-bearing construct averages
// within one dimension.
func dimensionScore(rows []assessment.CapabilityRespondent, dim assessment.Dimension) float64 {
	var constructScores []float64
	for _, constructID := range dim.Constructs {
		field := assessment.CapabilityFieldFor(constructID)
		var sum float64
		var n int
		for _, r := range rows {
			if v, ok := r.Scores[field]; ok && !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		if n > 0 {
			constructScores = append(constructScores, sum/float64(n))
		}
	}
	return mean(constructScores)
}

func perCompanySentimentScores(rows []assessment.SentimentRespondent) []float64 {
	groups := make(map[string][]assessment.SentimentRespondent)
	var order []string
	for _, r := range rows {
		if _, ok := groups[r.CompanyID]; !ok {
			order = append(order, r.CompanyID)
		}
		groups[r.CompanyID] = append(groups[r.CompanyID], r)
	}

	scores := make([]float64, 0, len(order))
	for _, id := range order {
		if s := sentimentOverallScore(groups[id]); s > 0 {
			scores = append(scores, s)
		}
	}
	return scores
}

func perCompanyDimensionScores(rows []assessment.CapabilityRespondent, dim assessment.Dimension) []float64 {
	groups := make(map[string][]assessment.CapabilityRespondent)
	var order []string
	for _, r := range rows {
		if _, ok := groups[r.CompanyID]; !ok {
			order = append(order, r.CompanyID)
		}
		groups[r.CompanyID] = append(groups[r.CompanyID], r)
	}

	scores := make([]float64, 0, len(order))
	for _, id := range order {
		if s := dimensionScore(groups[id], dim); s > 0 {
			scores = append(scores, s)
		}
	}
	return scores
}

func sentimentGroupAverages(rows []assessment.SentimentRespondent, key func(assessment.SentimentRespondent) string) map[string]float64 {
	groups := make(map[string][]assessment.SentimentRespondent)
	for _, r := range rows {
		k := key(r)
		if k == "" {
			k = "Unknown"
		}
		groups[k] = append(groups[k], r)
	}

	out := make(map[string]float64, len(groups))
	for k, group := range groups {
		out[k] = sentimentOverallScore(group)
	}
	return out
}

// percentile is the share of pool scores the company beats, rounded to a
// whole percent. For sentiment lower is better; for capability higher is.
// An empty pool reads as the 50th percentile.
func percentile(score float64, poolScores []float64, higherIsBetter bool) int {
	if len(poolScores) == 0 {
		return 50
	}
	better := 0
	for _, s := range poolScores {
		if (higherIsBetter && s < score) || (!higherIsBetter && s > score) {
			better++
		}
	}
	return int(math.Round(float64(better) / float64(len(poolScores)) * 100))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
