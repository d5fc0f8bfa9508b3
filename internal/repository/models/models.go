package models

// Company is one tenant of the platform. AccessCode is the shared secret
// used at login; it is never serialized.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	AccessCode  string `json:"-"`
}

// Intervention is one entry of the static intervention catalogue.
type Intervention struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	DimensionID int    `json:"dimensionId"`
	Description string `json:"description"`
}

// IngestSummary reports the outcome of a CSV respondent upload.
type IngestSummary struct {
	Inserted      int `json:"inserted"`
	SkippedRows   int `json:"skippedRows"`
	SkippedValues int `json:"skippedValues"`
}
