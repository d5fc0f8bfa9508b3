package assessment

// Filters narrows a respondent set before aggregation. Empty fields impose
// no restriction; set fields must match the respondent exactly.
type Filters struct {
	Region     string `json:"region,omitempty"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role,omitempty"`
	AgeGroup   string `json:"ageGroup,omitempty"`
}

// Demographics are the identifying fields shared by both respondent kinds.
type Demographics struct {
	CompanyID      string
	Region         string
	Department     string
	EmploymentType string
	AgeGroup       string
}

func (d Demographics) matches(f Filters) bool {
	if f.Region != "" && d.Region != f.Region {
		return false
	}
	if f.Department != "" && d.Department != f.Department {
		return false
	}
	if f.Role != "" && d.EmploymentType != f.Role {
		return false
	}
	if f.AgeGroup != "" && d.AgeGroup != f.AgeGroup {
		return false
	}
	return true
}

// SentimentRespondent is one survey row. Scores holds only the measurements
// that were present and numeric; missing or malformed columns are dropped at
// the load boundary and simply do not contribute to any cell.
type SentimentRespondent struct {
	Demographics
	Scores map[SentimentField]float64
}

// CapabilityRespondent is one capability-scan row, same missing-value rule.
type CapabilityRespondent struct {
	Demographics
	Scores map[CapabilityField]float64
}

// FilterSentiment retains rows matching every set filter field.
func FilterSentiment(rows []SentimentRespondent, f Filters) []SentimentRespondent {
	out := make([]SentimentRespondent, 0, len(rows))
	for _, r := range rows {
		if r.matches(f) {
			out = append(out, r)
		}
	}
	return out
}

// FilterCapability retains rows matching every set filter field.
func FilterCapability(rows []CapabilityRespondent, f Filters) []CapabilityRespondent {
	out := make([]CapabilityRespondent, 0, len(rows))
	for _, r := range rows {
		if r.matches(f) {
			out = append(out, r)
		}
	}
	return out
}
