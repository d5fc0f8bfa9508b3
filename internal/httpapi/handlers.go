// Package httpapi exposes the analytics and chat services over a chi
// REST API. Read endpoints go through a redis read-through cache keyed by
// company and filter set.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/ainavigator/navigator-server/internal/benchmark"
	"github.com/ainavigator/navigator-server/internal/service"
)

const (
	defaultCacheDuration  = 10 * time.Minute
	defaultRequestTimeout = 10 * time.Second
	chatRequestTimeout    = 90 * time.Second

	companyIDHeader = "x-company-id"
)

type cacheKeyType string

const (
	cacheKeySentimentHeatmap  cacheKeyType = "api:sentiment_heatmap"
	cacheKeyCapability        cacheKeyType = "api:capability_assessment"
	cacheKeyBenchmarkOverview cacheKeyType = "api:benchmark_overview"
	cacheKeyInterventions     cacheKeyType = "api:interventions"
)

type contextKey string

const companyIDKey contextKey = "companyID"

// Handlers wires the HTTP routes to the insight and chat services.
type Handlers struct {
	insights  Insights
	assistant Assistant
	cache     Cacher
	logger    *zap.Logger
	sfGroup   singleflight.Group
	cacheTTL  time.Duration
}

// NewHandlers initializes the HTTP handlers.
func NewHandlers(insights Insights, assistant Assistant, cache Cacher, logger *zap.Logger, ttl time.Duration) *Handlers {
	if insights == nil {
		panic("nil Insights provided to NewHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &Handlers{
		insights:  insights,
		assistant: assistant,
		cache:     cache,
		logger:    logger.Named("http-handler"),
		cacheTTL:  ttl,
	}
}

// Router builds the full route tree.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.login)
		r.Get("/interventions", h.interventions)

		r.Group(func(r chi.Router) {
			r.Use(h.requireCompany)
			r.Get("/benchmarks/overview", h.benchmarkOverview)
			r.Get("/sentiment/heatmap", h.sentimentHeatmap)
			r.Get("/capability/assessment", h.capabilityAssessment)
			r.Post("/data/respondents", h.uploadRespondents)
			r.Post("/chat", h.chat)
		})
	})

	return r
}

// requireCompany rejects requests without an x-company-id header.
func (h *Handlers) requireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID := strings.TrimSpace(r.Header.Get(companyIDHeader))
		if companyID == "" {
			writeError(w, http.StatusUnauthorized, "company id is required")
			return
		}
		ctx := context.WithValue(r.Context(), companyIDKey, companyID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func companyID(ctx context.Context) string {
	id, _ := ctx.Value(companyIDKey).(string)
	return id
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccessCode string `json:"accessCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.AccessCode) == "" {
		writeError(w, http.StatusBadRequest, "accessCode is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	company, err := h.insights.Login(ctx, body.AccessCode)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid access code")
			return
		}
		h.handleError(w, ctx, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"company": company})
}

func (h *Handlers) sentimentHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	company := companyID(ctx)
	filters := assessmentFilters(r)
	key := normalizeKey(cacheKeySentimentHeatmap, company, filterKey(filters.Region, filters.Department, filters.Role, filters.AgeGroup))

	result, err := FindAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) (assessment.HeatmapResult, error) {
		return h.insights.SentimentOverview(fetchCtx, company, filters)
	})
	if err != nil {
		h.handleError(w, ctx, "sentimentHeatmap", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) capabilityAssessment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	company := companyID(ctx)
	filters := assessmentFilters(r)
	key := normalizeKey(cacheKeyCapability, company, filterKey(filters.Region, filters.Department, filters.Role, filters.AgeGroup))

	result, err := FindAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) (assessment.CapabilityOverview, error) {
		return h.insights.CapabilityOverview(fetchCtx, company, filters)
	})
	if err != nil {
		h.handleError(w, ctx, "capabilityAssessment", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) benchmarkOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	company := companyID(ctx)
	filters := benchmarkFilters(r)
	key := normalizeKey(cacheKeyBenchmarkOverview, company, filterKey(filters.Region, filters.Department, filters.Industry))

	overview, err := FindAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.BenchmarkOverview, error) {
		return h.insights.BenchmarkOverview(fetchCtx, company, filters)
	})
	if err != nil {
		h.handleError(w, ctx, "benchmarkOverview", err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		service.BenchmarkOverview
	}{true, overview})
}

func (h *Handlers) interventions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	items, err := FindAndCache(ctx, h.cache, &h.sfGroup, string(cacheKeyInterventions), h.cacheTTL, h.logger, h.insights.Interventions)
	if err != nil {
		h.handleError(w, ctx, "interventions", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"interventions": items})
}

func (h *Handlers) uploadRespondents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	body := r.Body
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		body = file
	}

	company := companyID(ctx)
	summary, err := h.insights.IngestSentimentCSV(ctx, company, body)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUpload) {
			writeError(w, http.StatusBadRequest, "unable to parse upload: "+err.Error())
			return
		}
		h.handleError(w, ctx, "uploadRespondents", err)
		return
	}

	h.invalidateCompanyCaches(ctx, company)

	writeJSON(w, http.StatusCreated, summary)
}

// invalidateCompanyCaches drops the cached aggregates a respondent upload
// makes stale, across every filter variant. Capability keys stay: uploads
// only carry sentiment rows.
func (h *Handlers) invalidateCompanyCaches(ctx context.Context, company string) {
	for _, prefix := range []string{
		fmt.Sprintf("%s:%s:", cacheKeySentimentHeatmap, company),
		fmt.Sprintf("%s:%s:", cacheKeyBenchmarkOverview, company),
	} {
		if err := h.cache.DeleteByPrefix(ctx, prefix); err != nil {
			h.logger.Warn("cache invalidation failed",
				zap.String("prefix", prefix),
				zap.Error(err))
		}
	}
}

func (h *Handlers) handleError(w http.ResponseWriter, ctx context.Context, op string, err error) {
	switch ctx.Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		writeError(w, statusClientClosedRequest, "request canceled")
		return
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("op", op))
		writeError(w, http.StatusGatewayTimeout, "request timed out")
		return
	}

	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		h.logger.Info("company not found", zap.String("op", op))
		writeError(w, http.StatusNotFound, "company not found")
	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database error")
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, op+" failed")
	}
}

// 499, as popularized by nginx.
const statusClientClosedRequest = 499

func assessmentFilters(r *http.Request) assessment.Filters {
	q := r.URL.Query()
	return assessment.Filters{
		Region:     q.Get("region"),
		Department: q.Get("department"),
		Role:       q.Get("role"),
		AgeGroup:   q.Get("ageGroup"),
	}
}

func benchmarkFilters(r *http.Request) benchmark.Filters {
	q := r.URL.Query()
	return benchmark.Filters{
		Region:     q.Get("region"),
		Department: q.Get("department"),
		Industry:   q.Get("industry"),
	}
}

func normalizeKey(prefix cacheKeyType, companyID, filters string) string {
	return fmt.Sprintf("%s:%s:%s", prefix, companyID, filters)
}

func filterKey(values ...string) string {
	for i, v := range values {
		if v == "" {
			values[i] = "-"
		}
	}
	return strings.Join(values, "|")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
