package service

import (
	"context"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/ainavigator/navigator-server/internal/repository/models"
)

// RespondentStore defines the database operations the insight service needs
// for survey responses.
type RespondentStore interface {
	ListSentiment(ctx context.Context, companyID string) ([]assessment.SentimentRespondent, error)
	ListAllSentiment(ctx context.Context) ([]assessment.SentimentRespondent, error)
	ListCapability(ctx context.Context, companyID string) ([]assessment.CapabilityRespondent, error)
	ListAllCapability(ctx context.Context) ([]assessment.CapabilityRespondent, error)
	InsertSentimentBatch(ctx context.Context, companyID string, respondents []assessment.SentimentRespondent) (int, error)
}

// CompanyStore defines company lookups.
type CompanyStore interface {
	GetByID(ctx context.Context, id string) (models.Company, error)
	GetByAccessCode(ctx context.Context, code string) (models.Company, error)
}

// InterventionStore defines the intervention catalogue lookup.
type InterventionStore interface {
	List(ctx context.Context) ([]models.Intervention, error)
}
