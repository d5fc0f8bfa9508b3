package assessment

import (
	"math"
	"sort"
)

const (
	// NoDataRank marks a cell with no contributing respondents. It is a
	// sentinel outside the 1..N rank range.
	NoDataRank = 99

	// rankTolerance groups scores that differ by less than this into the
	// same rank position.
	rankTolerance = 0.001

	displayFloor   = 2.0
	displayCeiling = 4.0
)

// SentimentCell is one aggregated (level, category) cell of the heatmap.
type SentimentCell struct {
	LevelID      int     `json:"levelId"`
	CategoryID   int     `json:"categoryId"`
	CellID       string  `json:"cellId"`
	Score        float64 `json:"score"`
	Count        int     `json:"count"`
	Rank         int     `json:"rank"`
	Color        string  `json:"color"`
	LevelName    string  `json:"levelName"`
	CategoryName string  `json:"categoryName"`
	Description  string  `json:"description"`
}

// SentimentStats aggregates the score-bearing cells of a heatmap.
type SentimentStats struct {
	OverallAverage    float64    `json:"overallAverage"`
	StandardDeviation float64    `json:"standardDeviation"`
	TotalRespondents  int        `json:"totalRespondents"`
	RowAverages       [5]float64 `json:"rowAverages"`
	ColumnAverages    [5]float64 `json:"columnAverages"`
}

// HeatmapResult always carries exactly 25 cells in row-major order.
type HeatmapResult struct {
	Cells []SentimentCell `json:"cells"`
	Stats SentimentStats  `json:"stats"`
}

// DisplayScore maps a raw 1.0-2.0 measurement onto the 2.0-4.0 display
// scale and clamps to that range. Lower display scores mean less resistance.
func DisplayScore(raw float64) float64 {
	d := (raw-1.0)*2.0 + 2.0
	if d < displayFloor {
		return displayFloor
	}
	if d > displayCeiling {
		return displayCeiling
	}
	return d
}

// CalculateSentimentHeatmap aggregates respondent rows into the 25-cell
// heatmap. It never fails: malformed measurements were dropped at the load
// boundary, and an empty filtered set yields the all-zero result.
func CalculateSentimentHeatmap(respondents []SentimentRespondent, filters Filters) HeatmapResult {
	filtered := FilterSentiment(respondents, filters)

	cells := make([]SentimentCell, 0, 25)
	for _, level := range SentimentLevels {
		for _, category := range SentimentCategories {
			cellID := CellID(level.ID, category.ID)
			desc, ok := CellDescriptions[cellID]
			if !ok {
				desc = level.Name + " × " + category.Name + ": " + level.Description
			}
			cells = append(cells, SentimentCell{
				LevelID:      level.ID,
				CategoryID:   category.ID,
				CellID:       cellID,
				Rank:         NoDataRank,
				Color:        ColorNoData,
				LevelName:    level.Name,
				CategoryName: category.Name,
				Description:  desc,
			})
		}
	}

	if len(filtered) == 0 {
		return HeatmapResult{Cells: cells}
	}

	for i := range cells {
		field := SentimentFieldFor(cells[i].LevelID, cells[i].CategoryID)
		var sum float64
		var count int
		for _, r := range filtered {
			raw, ok := r.Scores[field]
			if !ok || math.IsNaN(raw) {
				continue
			}
			sum += DisplayScore(raw)
			count++
		}
		if count > 0 {
			cells[i].Score = sum / float64(count)
			cells[i].Count = count
		}
	}

	// Rank among data-bearing cells, ascending: the lowest display score
	// (least resistance) is rank 1.
	ranked := make([]float64, 0, len(cells))
	for _, c := range cells {
		if c.Count > 0 {
			ranked = append(ranked, c.Score)
		}
	}
	sort.Float64s(ranked)

	n := len(ranked)
	for i := range cells {
		if cells[i].Count == 0 {
			continue
		}
		rank := NoDataRank
		for j, s := range ranked {
			if math.Abs(s-cells[i].Score) < rankTolerance {
				rank = j + 1
				break
			}
		}
		cells[i].Rank = rank
		cells[i].Color = rankColor(rank, n)
	}

	return HeatmapResult{
		Cells: cells,
		Stats: heatmapStats(cells, len(filtered)),
	}
}

// rankColor bands a rank among n data-bearing cells. Top bands win over
// bottom bands when n is small enough for the ranges to overlap.
func rankColor(rank, n int) string {
	switch {
	case rank <= 3:
		return ColorTop3
	case rank <= 8:
		return ColorTop8
	case rank >= n-2:
		return ColorBottom3
	case rank >= n-7:
		return ColorBottom8
	default:
		return ColorMiddle
	}
}

func heatmapStats(cells []SentimentCell, totalRespondents int) SentimentStats {
	stats := SentimentStats{TotalRespondents: totalRespondents}

	var sum float64
	var n int
	for _, c := range cells {
		if c.Count > 0 {
			sum += c.Score
			n++
		}
	}
	if n > 0 {
		stats.OverallAverage = sum / float64(n)

		var variance float64
		for _, c := range cells {
			if c.Count > 0 {
				d := c.Score - stats.OverallAverage
				variance += d * d
			}
		}
		// Population variance: divide by n, not n-1.
		stats.StandardDeviation = math.Sqrt(variance / float64(n))
	}

	for levelIdx := range SentimentLevels {
		var rowSum float64
		var rowN int
		for _, c := range cells {
			if c.LevelID == levelIdx+1 && c.Count > 0 {
				rowSum += c.Score
				rowN++
			}
		}
		if rowN > 0 {
			stats.RowAverages[levelIdx] = rowSum / float64(rowN)
		}
	}
	for catIdx := range SentimentCategories {
		var colSum float64
		var colN int
		for _, c := range cells {
			if c.CategoryID == catIdx+1 && c.Count > 0 {
				colSum += c.Score
				colN++
			}
		}
		if colN > 0 {
			stats.ColumnAverages[catIdx] = colSum / float64(colN)
		}
	}

	return stats
}

// LowestScoringCells returns the n cells with the most resistance, i.e. the
// highest display scores. "Lowest" is the sentiment reading, not the
// numeric one.
func LowestScoringCells(cells []SentimentCell, n int) []SentimentCell {
	withData := cellsWithData(cells)
	sort.SliceStable(withData, func(i, j int) bool {
		return withData[i].Score > withData[j].Score
	})
	if n < len(withData) {
		withData = withData[:n]
	}
	return withData
}

// HighestScoringCells returns the n cells with the least resistance, i.e.
// the lowest display scores.
func HighestScoringCells(cells []SentimentCell, n int) []SentimentCell {
	withData := cellsWithData(cells)
	sort.SliceStable(withData, func(i, j int) bool {
		return withData[i].Score < withData[j].Score
	})
	if n < len(withData) {
		withData = withData[:n]
	}
	return withData
}

func cellsWithData(cells []SentimentCell) []SentimentCell {
	out := make([]SentimentCell, 0, len(cells))
	for _, c := range cells {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	return out
}
