package mocks

import (
	"context"
	"errors"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/ainavigator/navigator-server/internal/repository/models"
)

// MockRespondentStore is a mock implementation of the RespondentStore
// interface for testing the service layer.
type MockRespondentStore struct {
	ListSentimentFunc        func(ctx context.Context, companyID string) ([]assessment.SentimentRespondent, error)
	ListAllSentimentFunc     func(ctx context.Context) ([]assessment.SentimentRespondent, error)
	ListCapabilityFunc       func(ctx context.Context, companyID string) ([]assessment.CapabilityRespondent, error)
	ListAllCapabilityFunc    func(ctx context.Context) ([]assessment.CapabilityRespondent, error)
	InsertSentimentBatchFunc func(ctx context.Context, companyID string, respondents []assessment.SentimentRespondent) (int, error)
}

// ListSentiment implements the RespondentStore interface
func (m *MockRespondentStore) ListSentiment(ctx context.Context, companyID string) ([]assessment.SentimentRespondent, error) {
	if m.ListSentimentFunc != nil {
		return m.ListSentimentFunc(ctx, companyID)
	}
	return nil, errors.New("ListSentimentFunc not implemented")
}

// ListAllSentiment implements the RespondentStore interface
func (m *MockRespondentStore) ListAllSentiment(ctx context.Context) ([]assessment.SentimentRespondent, error) {
	if m.ListAllSentimentFunc != nil {
		return m.ListAllSentimentFunc(ctx)
	}
	return nil, errors.New("ListAllSentimentFunc not implemented")
}

// ListCapability implements the RespondentStore interface
func (m *MockRespondentStore) ListCapability(ctx context.Context, companyID string) ([]assessment.CapabilityRespondent, error) {
	if m.ListCapabilityFunc != nil {
		return m.ListCapabilityFunc(ctx, companyID)
	}
	return nil, errors.New("ListCapabilityFunc not implemented")
}

// ListAllCapability implements the RespondentStore interface
func (m *MockRespondentStore) ListAllCapability(ctx context.Context) ([]assessment.CapabilityRespondent, error) {
	if m.ListAllCapabilityFunc != nil {
		return m.ListAllCapabilityFunc(ctx)
	}
	return nil, errors.New("ListAllCapabilityFunc not implemented")
}

// InsertSentimentBatch implements the RespondentStore interface
func (m *MockRespondentStore) InsertSentimentBatch(ctx context.Context, companyID string, respondents []assessment.SentimentRespondent) (int, error) {
	if m.InsertSentimentBatchFunc != nil {
		return m.InsertSentimentBatchFunc(ctx, companyID, respondents)
	}
	return 0, errors.New("InsertSentimentBatchFunc not implemented")
}

// MockCompanyStore is a mock implementation of the CompanyStore interface.
type MockCompanyStore struct {
	GetByIDFunc         func(ctx context.Context, id string) (models.Company, error)
	GetByAccessCodeFunc func(ctx context.Context, code string) (models.Company, error)
}

// GetByID implements the CompanyStore interface
func (m *MockCompanyStore) GetByID(ctx context.Context, id string) (models.Company, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return models.Company{}, errors.New("GetByIDFunc not implemented")
}

// GetByAccessCode implements the CompanyStore interface
func (m *MockCompanyStore) GetByAccessCode(ctx context.Context, code string) (models.Company, error) {
	if m.GetByAccessCodeFunc != nil {
		return m.GetByAccessCodeFunc(ctx, code)
	}
	return models.Company{}, errors.New("GetByAccessCodeFunc not implemented")
}

// MockInterventionStore is a mock implementation of the InterventionStore interface.
type MockInterventionStore struct {
	ListFunc func(ctx context.Context) ([]models.Intervention, error)
}

// List implements the InterventionStore interface
func (m *MockInterventionStore) List(ctx context.Context) ([]models.Intervention, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, errors.New("ListFunc not implemented")
}
