package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ainavigator/navigator-server/internal/assessment"
)

type RespondentRepository struct {
	db *sql.DB
}

func NewRespondentRepository(db *sql.DB) *RespondentRepository {
	return &RespondentRepository{db: db}
}

var (
	sentimentColumns  = sentimentColumnList()
	capabilityColumns = capabilityColumnList()
)

func sentimentColumnList() []string {
	fields := assessment.SentimentFields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = string(f)
	}
	return cols
}

func capabilityColumnList() []string {
	cols := make([]string, 0, len(assessment.CapabilityConstructs))
	for _, c := range assessment.CapabilityConstructs {
		cols = append(cols, string(assessment.CapabilityFieldFor(c.ID)))
	}
	return cols
}

const demographicColumns = "company_id, region, department, employment_type, age_group"

// ListSentiment returns one company's sentiment survey rows. NULL
// measurement columns are omitted from the row's score map.
func (r *RespondentRepository) ListSentiment(ctx context.Context, companyID string) ([]assessment.SentimentRespondent, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM respondents WHERE company_id = ?",
		demographicColumns, strings.Join(sentimentColumns, ", "))
	return r.querySentiment(ctx, query, companyID)
}

// ListAllSentiment returns the cross-company sentiment pool.
func (r *RespondentRepository) ListAllSentiment(ctx context.Context) ([]assessment.SentimentRespondent, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM respondents",
		demographicColumns, strings.Join(sentimentColumns, ", "))
	return r.querySentiment(ctx, query)
}

func (r *RespondentRepository) querySentiment(ctx context.Context, query string, args ...any) ([]assessment.SentimentRespondent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sentiment respondents: %w", err)
	}
	defer rows.Close()

	var out []assessment.SentimentRespondent
	for rows.Next() {
		var resp assessment.SentimentRespondent
		var region, department, employmentType, ageGroup sql.NullString
		values := make([]sql.NullFloat64, len(sentimentColumns))

		dest := []any{&resp.CompanyID, &region, &department, &employmentType, &ageGroup}
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan sentiment respondent: %w", err)
		}

		resp.Region = region.String
		resp.Department = department.String
		resp.EmploymentType = employmentType.String
		resp.AgeGroup = ageGroup.String
		resp.Scores = make(map[assessment.SentimentField]float64, len(values))
		for i, v := range values {
			if v.Valid {
				resp.Scores[assessment.SentimentField(sentimentColumns[i])] = v.Float64
			}
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sentiment respondents: %w", err)
	}
	return out, nil
}

// ListCapability returns one company's capability-scan rows.
func (r *RespondentRepository) ListCapability(ctx context.Context, companyID string) ([]assessment.CapabilityRespondent, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM capability_scores WHERE company_id = ?",
		demographicColumns, strings.Join(capabilityColumns, ", "))
	return r.queryCapability(ctx, query, companyID)
}

// ListAllCapability returns the cross-company capability pool.
func (r *RespondentRepository) ListAllCapability(ctx context.Context) ([]assessment.CapabilityRespondent, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM capability_scores",
		demographicColumns, strings.Join(capabilityColumns, ", "))
	return r.queryCapability(ctx, query)
}

func (r *RespondentRepository) queryCapability(ctx context.Context, query string, args ...any) ([]assessment.CapabilityRespondent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query capability respondents: %w", err)
	}
	defer rows.Close()

	var out []assessment.CapabilityRespondent
	for rows.Next() {
		var resp assessment.CapabilityRespondent
		var region, department, employmentType, ageGroup sql.NullString
		values := make([]sql.NullFloat64, len(capabilityColumns))

		dest := []any{&resp.CompanyID, &region, &department, &employmentType, &ageGroup}
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan capability respondent: %w", err)
		}

		resp.Region = region.String
		resp.Department = department.String
		resp.EmploymentType = employmentType.String
		resp.AgeGroup = ageGroup.String
		resp.Scores = make(map[assessment.CapabilityField]float64, len(values))
		for i, v := range values {
			if v.Valid {
				resp.Scores[assessment.CapabilityField(capabilityColumns[i])] = v.Float64
			}
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate capability respondents: %w", err)
	}
	return out, nil
}

// InsertSentimentBatch stores uploaded survey rows in a single transaction.
// Fields absent from a row's score map are stored as NULL.
func (r *RespondentRepository) InsertSentimentBatch(ctx context.Context, companyID string, respondents []assessment.SentimentRespondent) (int, error) {
	if len(respondents) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", 5+len(sentimentColumns)), ", ")
	query := fmt.Sprintf("INSERT INTO respondents (%s, %s) VALUES (%s)",
		demographicColumns, strings.Join(sentimentColumns, ", "), placeholders)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare insert batch: %w", err)
	}
	defer stmt.Close()

	for _, resp := range respondents {
		args := []any{companyID, resp.Region, resp.Department, resp.EmploymentType, resp.AgeGroup}
		for _, col := range sentimentColumns {
			if v, ok := resp.Scores[assessment.SentimentField(col)]; ok {
				args = append(args, v)
			} else {
				args = append(args, nil)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert respondent: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert batch: %w", err)
	}
	return len(respondents), nil
}
