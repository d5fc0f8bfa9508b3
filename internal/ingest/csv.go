// Package ingest parses uploaded survey CSVs into respondent rows. The
// upload contract is forgiving: unknown columns are ignored, malformed
// numeric values are dropped (not rejected), and only a missing header or
// unreadable stream fails the upload as a whole.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ainavigator/navigator-server/internal/assessment"
)

// ErrMissingHeader reports a CSV without a usable header row.
var ErrMissingHeader = errors.New("csv has no header row")

// ParseStats counts what the parser kept and dropped.
type ParseStats struct {
	Rows          int
	SkippedRows   int
	SkippedValues int
}

// ParseSentimentCSV reads header-mapped survey rows. Recognized headers
// (case-insensitive): Region, Department, Employment_type, Age, and the
// measurement columns sentiment_1..sentiment_25.
func ParseSentimentCSV(r io.Reader) ([]assessment.SentimentRespondent, ParseStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ParseStats{}, ErrMissingHeader
		}
		return nil, ParseStats{}, fmt.Errorf("read csv header: %w", err)
	}

	columns := indexHeader(header)
	if len(columns.scores) == 0 {
		return nil, ParseStats{}, ErrMissingHeader
	}

	var (
		out   []assessment.SentimentRespondent
		stats ParseStats
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed record (bad quoting etc.) drops that row only.
			stats.SkippedRows++
			continue
		}

		resp := assessment.SentimentRespondent{
			Demographics: assessment.Demographics{
				Region:         field(record, columns.region),
				Department:     field(record, columns.department),
				EmploymentType: field(record, columns.employmentType),
				AgeGroup:       field(record, columns.ageGroup),
			},
			Scores: make(map[assessment.SentimentField]float64),
		}

		for col, idx := range columns.scores {
			raw := field(record, idx)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				stats.SkippedValues++
				continue
			}
			resp.Scores[col] = v
		}

		out = append(out, resp)
		stats.Rows++
	}

	return out, stats, nil
}

type headerIndex struct {
	region         int
	department     int
	employmentType int
	ageGroup       int
	scores         map[assessment.SentimentField]int
}

func indexHeader(header []string) headerIndex {
	idx := headerIndex{
		region:         -1,
		department:     -1,
		employmentType: -1,
		ageGroup:       -1,
		scores:         make(map[assessment.SentimentField]int),
	}

	valid := make(map[assessment.SentimentField]struct{}, 25)
	for _, f := range assessment.SentimentFields() {
		valid[f] = struct{}{}
	}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "region":
			idx.region = i
		case "department":
			idx.department = i
		case "employment_type":
			idx.employmentType = i
		case "age", "age_group":
			idx.ageGroup = i
		default:
			f := assessment.SentimentField(strings.ToLower(strings.TrimSpace(name)))
			if _, ok := valid[f]; ok {
				idx.scores[f] = i
			}
		}
	}
	return idx
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
