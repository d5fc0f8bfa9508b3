package httpapi

import (
	"context"
	"io"
	"time"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/ainavigator/navigator-server/internal/benchmark"
	"github.com/ainavigator/navigator-server/internal/chat"
	"github.com/ainavigator/navigator-server/internal/repository/models"
	"github.com/ainavigator/navigator-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Insights is the analytics surface the handlers expose over HTTP.
type Insights interface {
	Company(ctx context.Context, id string) (service.CompanySummary, error)
	Login(ctx context.Context, accessCode string) (service.CompanySummary, error)
	SentimentOverview(ctx context.Context, companyID string, filters assessment.Filters) (assessment.HeatmapResult, error)
	CapabilityOverview(ctx context.Context, companyID string, filters assessment.Filters) (assessment.CapabilityOverview, error)
	BenchmarkOverview(ctx context.Context, companyID string, filters benchmark.Filters) (service.BenchmarkOverview, error)
	Interventions(ctx context.Context) ([]models.Intervention, error)
	IngestSentimentCSV(ctx context.Context, companyID string, r io.Reader) (models.IngestSummary, error)
}

// Assistant runs chat turns, optionally streaming deltas.
type Assistant interface {
	Respond(ctx context.Context, req chat.Request) (chat.Response, error)
	Stream(ctx context.Context, req chat.Request, onDelta func(delta string) error) (chat.Response, error)
}
