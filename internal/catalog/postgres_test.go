package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/common/logger"
	"career-workers/internal/models"
)

var careerColumns = []string{
	"id", "title", "category", "salary_min", "salary_max",
	"interest_profile", "value_profile", "work_environment",
}

func newMockRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db, logger.NewTestLogger(t)), mock
}

func TestPostgresRepository_ListCareers(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows(careerColumns).
		AddRow(
			"software-engineer", "Software Engineer", "technology", 90000, 150000,
			[]byte(`{"realistic":20,"investigative":95,"artistic":40,"social":30,"enterprising":35,"conventional":60}`),
			[]byte(`{"impact":50,"income":80,"autonomy":70,"balance":60,"growth":90,"stability":60}`),
			[]byte(`{"teamSize":"small","pace":"moderate"}`),
		).
		AddRow("new-career", "New Career", "technology", 0, 0, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta(listCareersQuery)).WillReturnRows(rows)

	careers, err := repo.ListCareers(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, careers, 2)

	se := careers[0]
	assert.Equal(t, "software-engineer", se.ID)
	assert.Equal(t, 150000, se.SalaryRange.Max)
	require.True(t, se.Scoreable())
	assert.Equal(t, 95.0, se.InterestProfile.Investigative)
	assert.Equal(t, 90.0, se.ValueProfile.Growth)
	assert.Equal(t, models.TeamSmall, se.WorkEnvironment.TeamSize)

	assert.False(t, careers[1].Scoreable())
	assert.Nil(t, careers[1].InterestProfile)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CategoryFilter(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(listCareersByCategoryQuery)).
		WithArgs("healthcare").
		WillReturnRows(sqlmock.NewRows(careerColumns).
			AddRow("registered-nurse", "Registered Nurse", "healthcare", 60000, 95000, nil, nil, nil))

	careers, err := repo.ListCareers(context.Background(), Filter{Category: "healthcare"})
	require.NoError(t, err)
	require.Len(t, careers, 1)
	assert.Equal(t, "registered-nurse", careers[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_MalformedProfileIsDropped(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(listCareersQuery)).
		WillReturnRows(sqlmock.NewRows(careerColumns).AddRow(
			"chef", "Chef", "hospitality", 30000, 70000,
			[]byte(`{"realistic":`),
			[]byte(`null`),
			[]byte(`{"teamSize":"large","pace":"intense"}`),
		))

	careers, err := repo.ListCareers(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, careers, 1)
	assert.Nil(t, careers[0].InterestProfile)
	assert.Nil(t, careers[0].ValueProfile)
	require.NotNil(t, careers[0].WorkEnvironment)
	assert.Equal(t, models.PaceIntense, careers[0].WorkEnvironment.Pace)
}

func TestPostgresRepository_QueryError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(listCareersQuery)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.ListCareers(context.Background(), Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPostgresRepository_EmptyCatalog(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(listCareersQuery)).
		WillReturnRows(sqlmock.NewRows(careerColumns))

	careers, err := repo.ListCareers(context.Background(), Filter{})
	require.NoError(t, err)
	assert.NotNil(t, careers)
	assert.Empty(t, careers)
}
