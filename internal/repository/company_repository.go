package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ainavigator/navigator-server/internal/repository/models"
)

// ErrNotFound reports a lookup that matched no row.
var ErrNotFound = errors.New("not found")

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (models.Company, error) {
	const query = `SELECT id, name, display_name, access_code FROM companies WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetByAccessCode resolves a login access code to its company.
func (r *CompanyRepository) GetByAccessCode(ctx context.Context, code string) (models.Company, error) {
	const query = `SELECT id, name, display_name, access_code FROM companies WHERE access_code = ?`
	return r.getOne(ctx, query, code)
}

func (r *CompanyRepository) getOne(ctx context.Context, query string, arg any) (models.Company, error) {
	var c models.Company
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name, &c.DisplayName, &c.AccessCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Company{}, ErrNotFound
		}
		return models.Company{}, fmt.Errorf("query company: %w", err)
	}
	return c, nil
}

type InterventionRepository struct {
	db *sql.DB
}

func NewInterventionRepository(db *sql.DB) *InterventionRepository {
	return &InterventionRepository{db: db}
}

// List returns the full intervention catalogue ordered by dimension.
func (r *InterventionRepository) List(ctx context.Context) ([]models.Intervention, error) {
	const query = `
		SELECT id, title, category, dimension_id, description
		FROM interventions
		ORDER BY dimension_id, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query interventions: %w", err)
	}
	defer rows.Close()

	var out []models.Intervention
	for rows.Next() {
		var iv models.Intervention
		if err := rows.Scan(&iv.ID, &iv.Title, &iv.Category, &iv.DimensionID, &iv.Description); err != nil {
			return nil, fmt.Errorf("scan intervention: %w", err)
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interventions: %w", err)
	}
	return out, nil
}
