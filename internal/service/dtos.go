package service

import (
	"github.com/ainavigator/navigator-server/internal/benchmark"
	"github.com/ainavigator/navigator-server/internal/repository/models"
)

// CompanySummary is the public view of a company, without credentials.
type CompanySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

func summarize(c models.Company) CompanySummary {
	return CompanySummary{ID: c.ID, Name: c.Name, DisplayName: c.DisplayName}
}

// OverviewMetadata reports the sample sizes behind a benchmark overview so
// clients can qualify how much weight to give the comparison.
type OverviewMetadata struct {
	PoolSentimentRespondents     int `json:"poolSentimentRespondents"`
	CompanySentimentRespondents  int `json:"companySentimentRespondents"`
	PoolCapabilityRespondents    int `json:"poolCapabilityRespondents"`
	CompanyCapabilityRespondents int `json:"companyCapabilityRespondents"`
}

// BenchmarkOverview positions one company against the cross-company pool on
// both instruments. Filters echoes the pool restriction the caller asked for.
type BenchmarkOverview struct {
	Company    CompanySummary             `json:"company"`
	Sentiment  benchmark.SentimentResult  `json:"sentiment"`
	Capability benchmark.CapabilityResult `json:"capability"`
	Filters    benchmark.Filters          `json:"filters"`
	Metadata   OverviewMetadata           `json:"metadata"`
}
