package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"career-workers/internal/common/logger"
	"career-workers/internal/models"
)

const (
	selectCareers = `SELECT id, title, category, salary_min, salary_max, interest_profile, value_profile, work_environment FROM careers WHERE active = TRUE`

	listCareersQuery           = selectCareers + ` ORDER BY id`
	listCareersByCategoryQuery = selectCareers + ` AND category = $1 ORDER BY id`
)

// PostgresRepository reads the careers table. Profile columns are nullable
// JSONB; a NULL or unreadable column leaves the matching profile unset.
type PostgresRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresRepository(db *sql.DB, log logger.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"catalog": "postgres"}),
	}
}

func (r *PostgresRepository) ListCareers(ctx context.Context, f Filter) ([]models.Career, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if f.Category != "" {
		rows, err = r.db.QueryContext(ctx, listCareersByCategoryQuery, f.Category)
	} else {
		rows, err = r.db.QueryContext(ctx, listCareersQuery)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: query careers: %w", err)
	}
	defer rows.Close()

	careers := make([]models.Career, 0)
	for rows.Next() {
		var (
			c                        models.Career
			interest, values, envRaw []byte
		)
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Category, &c.SalaryRange.Min, &c.SalaryRange.Max,
			&interest, &values, &envRaw,
		); err != nil {
			return nil, fmt.Errorf("postgres: %w: scan career: %v", ErrQueryFailed, err)
		}

		c.InterestProfile = decodeColumn[models.RIASECProfile](r.logger, c.ID, "interest_profile", interest)
		c.ValueProfile = decodeColumn[models.ValueProfile](r.logger, c.ID, "value_profile", values)
		c.WorkEnvironment = decodeColumn[models.WorkEnvironment](r.logger, c.ID, "work_environment", envRaw)

		careers = append(careers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate careers: %w", err)
	}

	r.logger.Debug("careers loaded", map[string]interface{}{
		"count":    len(careers),
		"category": f.Category,
	})
	return careers, nil
}

func decodeColumn[T any](log logger.Logger, careerID, column string, raw []byte) *T {
	v, err := decodeProfile[T](raw)
	if err != nil {
		log.Warn("ignoring malformed profile column", map[string]interface{}{
			"careerId": careerID,
			"column":   column,
			"error":    err.Error(),
		})
		return nil
	}
	return v
}
