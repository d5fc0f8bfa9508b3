package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/ainavigator/navigator-server/internal/benchmark"
	"github.com/ainavigator/navigator-server/internal/ingest"
	"github.com/ainavigator/navigator-server/internal/repository"
	"github.com/ainavigator/navigator-server/internal/repository/models"
)

const (
	dbTimeout = 2 * time.Second
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrInvalidUpload   = errors.New("invalid upload")
	ErrStorageFailure  = errors.New("storage failure")
)

// InsightService runs the survey analytics: heatmaps, capability assessments
// and cross-company benchmarking on top of the respondent store.
type InsightService struct {
	respondents   RespondentStore
	companies     CompanyStore
	interventions InterventionStore
	logger        *zap.Logger
}

// NewInsightService creates a new InsightService instance.
func NewInsightService(respondents RespondentStore, companies CompanyStore, interventions InterventionStore, logger *zap.Logger) *InsightService {
	if respondents == nil || companies == nil || interventions == nil {
		panic("stores must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &InsightService{
		respondents:   respondents,
		companies:     companies,
		interventions: interventions,
		logger:        logger,
	}
}

// Company looks up a company by id.
func (s *InsightService) Company(ctx context.Context, id string) (CompanySummary, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	c, err := s.companies.GetByID(dbCtx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CompanySummary{}, ErrCompanyNotFound
		}
		return CompanySummary{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return summarize(c), nil
}

// Login resolves an access code to a company.
func (s *InsightService) Login(ctx context.Context, accessCode string) (CompanySummary, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	c, err := s.companies.GetByAccessCode(dbCtx, accessCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CompanySummary{}, ErrCompanyNotFound
		}
		return CompanySummary{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("company login", zap.String("company", c.ID))
	return summarize(c), nil
}

// SentimentOverview computes the 25-cell sentiment heatmap for one company.
func (s *InsightService) SentimentOverview(ctx context.Context, companyID string, filters assessment.Filters) (assessment.HeatmapResult, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.respondents.ListSentiment(dbCtx, companyID)
	if err != nil {
		return assessment.HeatmapResult{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	result := assessment.CalculateSentimentHeatmap(rows, filters)

	s.logger.Info("computed sentiment heatmap",
		zap.String("company", companyID),
		zap.Int("respondents", result.Stats.TotalRespondents))

	return result, nil
}

// CapabilityOverview computes the capability assessment for one company,
// benchmarked against the cross-company pool's per-dimension averages.
func (s *InsightService) CapabilityOverview(ctx context.Context, companyID string, filters assessment.Filters) (assessment.CapabilityOverview, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.respondents.ListCapability(dbCtx, companyID)
	if err != nil {
		return assessment.CapabilityOverview{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	pool, err := s.respondents.ListAllCapability(dbCtx)
	if err != nil {
		return assessment.CapabilityOverview{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	benchmarks := benchmark.Capability(pool, rows, benchmark.Filters{}).DimensionAverages
	result := assessment.CalculateCapabilityAssessment(rows, benchmarks, filters)

	s.logger.Info("computed capability assessment",
		zap.String("company", companyID),
		zap.Int("respondents", len(rows)),
		zap.Int("dimensions", len(result.Dimensions)))

	return result, nil
}

// BenchmarkOverview positions one company against the filtered pool on both
// instruments.
func (s *InsightService) BenchmarkOverview(ctx context.Context, companyID string, filters benchmark.Filters) (BenchmarkOverview, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	company, err := s.companies.GetByID(dbCtx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return BenchmarkOverview{}, ErrCompanyNotFound
		}
		return BenchmarkOverview{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	sentimentPool, err := s.respondents.ListAllSentiment(dbCtx)
	if err != nil {
		return BenchmarkOverview{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	companySentiment, err := s.respondents.ListSentiment(dbCtx, companyID)
	if err != nil {
		return BenchmarkOverview{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	capabilityPool, err := s.respondents.ListAllCapability(dbCtx)
	if err != nil {
		return BenchmarkOverview{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	companyCapability, err := s.respondents.ListCapability(dbCtx, companyID)
	if err != nil {
		return BenchmarkOverview{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	overview := BenchmarkOverview{
		Company:    summarize(company),
		Sentiment:  benchmark.Sentiment(sentimentPool, companySentiment, filters),
		Capability: benchmark.Capability(capabilityPool, companyCapability, filters),
		Filters:    filters,
		Metadata: OverviewMetadata{
			PoolSentimentRespondents:     len(sentimentPool),
			CompanySentimentRespondents:  len(companySentiment),
			PoolCapabilityRespondents:    len(capabilityPool),
			CompanyCapabilityRespondents: len(companyCapability),
		},
	}

	s.logger.Info("computed benchmark overview",
		zap.String("company", companyID),
		zap.Int("sentimentPool", len(sentimentPool)),
		zap.Int("capabilityPool", len(capabilityPool)))

	return overview, nil
}

// Interventions returns the intervention catalogue.
func (s *InsightService) Interventions(ctx context.Context) ([]models.Intervention, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	items, err := s.interventions.List(dbCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return items, nil
}

// IngestSentimentCSV parses an uploaded CSV and stores the rows under the
// given company. Malformed values are dropped row-locally; only an unusable
// file fails the whole upload.
func (s *InsightService) IngestSentimentCSV(ctx context.Context, companyID string, r io.Reader) (models.IngestSummary, error) {
	respondents, stats, err := ingest.ParseSentimentCSV(r)
	if err != nil {
		return models.IngestSummary{}, fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	inserted, err := s.respondents.InsertSentimentBatch(dbCtx, companyID, respondents)
	if err != nil {
		return models.IngestSummary{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("ingested sentiment upload",
		zap.String("company", companyID),
		zap.Int("inserted", inserted),
		zap.Int("skippedRows", stats.SkippedRows),
		zap.Int("skippedValues", stats.SkippedValues))

	return models.IngestSummary{
		Inserted:      inserted,
		SkippedRows:   stats.SkippedRows,
		SkippedValues: stats.SkippedValues,
	}, nil
}
