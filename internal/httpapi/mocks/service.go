package mocks

import (
	"context"
	"errors"
	"io"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/ainavigator/navigator-server/internal/benchmark"
	"github.com/ainavigator/navigator-server/internal/chat"
	"github.com/ainavigator/navigator-server/internal/repository/models"
	"github.com/ainavigator/navigator-server/internal/service"
)

// MockInsights is a mock implementation of the Insights interface
// for testing the handler layer.
type MockInsights struct {
	CompanyFunc            func(ctx context.Context, id string) (service.CompanySummary, error)
	LoginFunc              func(ctx context.Context, accessCode string) (service.CompanySummary, error)
	SentimentOverviewFunc  func(ctx context.Context, companyID string, filters assessment.Filters) (assessment.HeatmapResult, error)
	CapabilityOverviewFunc func(ctx context.Context, companyID string, filters assessment.Filters) (assessment.CapabilityOverview, error)
	BenchmarkOverviewFunc  func(ctx context.Context, companyID string, filters benchmark.Filters) (service.BenchmarkOverview, error)
	InterventionsFunc      func(ctx context.Context) ([]models.Intervention, error)
	IngestSentimentCSVFunc func(ctx context.Context, companyID string, r io.Reader) (models.IngestSummary, error)
}

// Company implements the Insights interface
func (m *MockInsights) Company(ctx context.Context, id string) (service.CompanySummary, error) {
	if m.CompanyFunc != nil {
		return m.CompanyFunc(ctx, id)
	}
	return service.CompanySummary{}, errors.New("CompanyFunc not implemented")
}

// Login implements the Insights interface
func (m *MockInsights) Login(ctx context.Context, accessCode string) (service.CompanySummary, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, accessCode)
	}
	return service.CompanySummary{}, errors.New("LoginFunc not implemented")
}

// SentimentOverview implements the Insights interface
func (m *MockInsights) SentimentOverview(ctx context.Context, companyID string, filters assessment.Filters) (assessment.HeatmapResult, error) {
	if m.SentimentOverviewFunc != nil {
		return m.SentimentOverviewFunc(ctx, companyID, filters)
	}
	return assessment.HeatmapResult{}, errors.New("SentimentOverviewFunc not implemented")
}

// CapabilityOverview implements the Insights interface
func (m *MockInsights) CapabilityOverview(ctx context.Context, companyID string, filters assessment.Filters) (assessment.CapabilityOverview, error) {
	if m.CapabilityOverviewFunc != nil {
		return m.CapabilityOverviewFunc(ctx, companyID, filters)
	}
	return assessment.CapabilityOverview{}, errors.New("CapabilityOverviewFunc not implemented")
}

// BenchmarkOverview implements the Insights interface
func (m *MockInsights) BenchmarkOverview(ctx context.Context, companyID string, filters benchmark.Filters) (service.BenchmarkOverview, error) {
	if m.BenchmarkOverviewFunc != nil {
		return m.BenchmarkOverviewFunc(ctx, companyID, filters)
	}
	return service.BenchmarkOverview{}, errors.New("BenchmarkOverviewFunc not implemented")
}

// Interventions implements the Insights interface
func (m *MockInsights) Interventions(ctx context.Context) ([]models.Intervention, error) {
	if m.InterventionsFunc != nil {
		return m.InterventionsFunc(ctx)
	}
	return nil, errors.New("InterventionsFunc not implemented")
}

// IngestSentimentCSV implements the Insights interface
func (m *MockInsights) IngestSentimentCSV(ctx context.Context, companyID string, r io.Reader) (models.IngestSummary, error) {
	if m.IngestSentimentCSVFunc != nil {
		return m.IngestSentimentCSVFunc(ctx, companyID, r)
	}
	return models.IngestSummary{}, errors.New("IngestSentimentCSVFunc not implemented")
}

// MockAssistant is a mock implementation of the Assistant interface.
type MockAssistant struct {
	RespondFunc func(ctx context.Context, req chat.Request) (chat.Response, error)
	StreamFunc  func(ctx context.Context, req chat.Request, onDelta func(delta string) error) (chat.Response, error)
}

// Respond implements the Assistant interface
func (m *MockAssistant) Respond(ctx context.Context, req chat.Request) (chat.Response, error) {
	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, req)
	}
	return chat.Response{}, errors.New("RespondFunc not implemented")
}

// Stream implements the Assistant interface
func (m *MockAssistant) Stream(ctx context.Context, req chat.Request, onDelta func(delta string) error) (chat.Response, error) {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, req, onDelta)
	}
	return chat.Response{}, errors.New("StreamFunc not implemented")
}
