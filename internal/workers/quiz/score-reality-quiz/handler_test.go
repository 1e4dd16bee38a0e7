package scorerealityquiz

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/models"
	"career-workers/internal/quizbank"
	"career-workers/internal/results"
)

// ==========================
// Mocks
// ==========================

type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveQuizResult(ctx context.Context, sub results.QuizSubmission) (string, error) {
	args := m.Called(ctx, sub)
	return args.String(0), args.Error(1)
}

type MockHistoryStore struct {
	MockStore
}

func (m *MockHistoryStore) LatestQuizResult(ctx context.Context, studentID, careerID string) (*results.StoredQuizResult, error) {
	args := m.Called(ctx, studentID, careerID)
	prev, _ := args.Get(0).(*results.StoredQuizResult)
	return prev, args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifySaveFailure(ctx context.Context, f results.SaveFailure) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

type invalidSource struct{}

func (invalidSource) Get(careerID string) (*models.Quiz, error) {
	return nil, fmt.Errorf("%w: %s: results.low.min must be 0", quizbank.ErrInvalidDefinition, careerID)
}

// ==========================
// Helpers
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second, NotifyTimeout: time.Second}
}

func testQuiz() *models.Quiz {
	return &models.Quiz{
		CareerID: "lighthouse-keeper",
		Version:  3,
		Title:    "A Week at the Lighthouse",
		Questions: []models.Question{
			{
				ID:       "storm",
				Scenario: "A storm knocks out the main lamp at 2am.",
				Options: []models.Option{
					{Text: "Climb up and fix it", Scores: map[models.QuizDimension]float64{models.Technical: 10}},
					{Text: "Wait for morning", Scores: map[models.QuizDimension]float64{models.WorkLifeBalance: 5}},
				},
			},
			{
				ID:       "log",
				Scenario: "The weather log is three days behind.",
				Options: []models.Option{
					{Text: "Catch up tonight"},
					{Text: "Skip it"},
				},
			},
		},
		ScoringGuide: map[models.QuizDimension]models.GuideEntry{
			models.Technical: {Min: 0, Max: 10, Weight: 1},
		},
		Results: models.ResultTiers{
			High:   models.ResultTier{Min: 75, Title: "Ready"},
			Medium: models.ResultTier{Min: 50, Title: "Almost"},
			Low:    models.ResultTier{Min: 0, Title: "Not yet"},
		},
	}
}

func testBank(t *testing.T) *quizbank.Bank {
	bank, err := quizbank.New(testQuiz())
	require.NoError(t, err)
	return bank
}

func createMockJob(variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       21,
		Type:      TaskType,
		Retries:   3,
		Variables: string(variablesJSON),
	}}
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute_Saved(t *testing.T) {
	store := new(MockStore)
	store.On("SaveQuizResult", mock.Anything, mock.MatchedBy(func(sub results.QuizSubmission) bool {
		return sub.StudentID == "s-1" && sub.QuizVersion == 3 && sub.Result.ReadinessPercentage == 100
	})).Return("result-1", nil)

	h := NewHandler(createTestConfig(), testBank(t), store, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		StudentID: "s-1",
		CareerID:  "lighthouse-keeper",
		Answers:   map[string]int{"storm": 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 100, output.Result.ReadinessPercentage)
	assert.Equal(t, models.TierHigh, output.Result.ResultTier)
	assert.Equal(t, "Ready", output.Result.Title)
	assert.Equal(t, 1, output.AnsweredCount)
	assert.Equal(t, 2, output.QuestionCount)
	assert.True(t, output.Saved)
	assert.Equal(t, "result-1", output.ResultID)
	store.AssertExpectations(t)
}

func TestHandler_Execute_PreviousReadiness(t *testing.T) {
	store := new(MockHistoryStore)
	mock.InOrder(
		store.On("LatestQuizResult", mock.Anything, "s-1", "lighthouse-keeper").
			Return(&results.StoredQuizResult{ID: "result-0", ReadinessPercentage: 40, ResultTier: models.TierMedium}, nil),
		store.On("SaveQuizResult", mock.Anything, mock.Anything).Return("result-1", nil),
	)

	h := NewHandler(createTestConfig(), testBank(t), store, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		StudentID: "s-1",
		CareerID:  "lighthouse-keeper",
		Answers:   map[string]int{"storm": 0},
	})
	require.NoError(t, err)

	require.NotNil(t, output.PreviousReadiness)
	assert.Equal(t, 40, *output.PreviousReadiness)
	assert.Equal(t, 100, output.Result.ReadinessPercentage)
	assert.True(t, output.Saved)
	store.AssertExpectations(t)
}

func TestHandler_Execute_PreviousReadinessMissing(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"first attempt", sql.ErrNoRows},
		{"lookup failed", stderrors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockHistoryStore)
			store.On("LatestQuizResult", mock.Anything, "s-1", "lighthouse-keeper").Return(nil, tt.err)
			store.On("SaveQuizResult", mock.Anything, mock.Anything).Return("result-1", nil)

			h := NewHandler(createTestConfig(), testBank(t), store, nil, logger.NewTestLogger(t))

			output, err := h.Execute(context.Background(), &Input{
				StudentID: "s-1",
				CareerID:  "lighthouse-keeper",
				Answers:   map[string]int{"storm": 0},
			})
			require.NoError(t, err)
			assert.Nil(t, output.PreviousReadiness)
			assert.True(t, output.Saved)
			store.AssertExpectations(t)
		})
	}
}

func TestHandler_Execute_SaveFailureIsNotFatal(t *testing.T) {
	store := new(MockStore)
	store.On("SaveQuizResult", mock.Anything, mock.Anything).Return("", stderrors.New("insert failed"))

	notifier := new(MockNotifier)
	notifier.On("NotifySaveFailure", mock.Anything, mock.MatchedBy(func(f results.SaveFailure) bool {
		return f.StudentID == "s-1" && f.CareerID == "lighthouse-keeper" && f.Error == "insert failed"
	})).Return(nil)

	h := NewHandler(createTestConfig(), testBank(t), store, notifier, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		StudentID: "s-1",
		CareerID:  "lighthouse-keeper",
		Answers:   map[string]int{"storm": 1},
	})
	require.NoError(t, err)
	h.Wait()

	assert.False(t, output.Saved)
	assert.Empty(t, output.ResultID)
	assert.Equal(t, 0, output.Result.ReadinessPercentage)
	assert.Equal(t, models.TierLow, output.Result.ResultTier)
	notifier.AssertExpectations(t)
}

func TestHandler_Execute_NotificationFailureIsSwallowed(t *testing.T) {
	store := new(MockStore)
	store.On("SaveQuizResult", mock.Anything, mock.Anything).Return("", stderrors.New("insert failed"))
	notifier := new(MockNotifier)
	notifier.On("NotifySaveFailure", mock.Anything, mock.Anything).Return(stderrors.New("sns down"))

	h := NewHandler(createTestConfig(), testBank(t), store, notifier, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{StudentID: "s-1", CareerID: "lighthouse-keeper", Answers: map[string]int{}})
	require.NoError(t, err)
	h.Wait()
	assert.False(t, output.Saved)
	notifier.AssertNumberOfCalls(t, "NotifySaveFailure", 1)
}

func TestHandler_Execute_WithoutStore(t *testing.T) {
	h := NewHandler(createTestConfig(), testBank(t), nil, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		StudentID: "s-1",
		CareerID:  "lighthouse-keeper",
		Answers:   map[string]int{"storm": 0, "log": 7, "ghost": 1},
	})
	require.NoError(t, err)
	assert.False(t, output.Saved)
	assert.Equal(t, 1, output.AnsweredCount)
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := NewHandler(createTestConfig(), testBank(t), nil, nil, logger.NewTestLogger(t))

	tests := []struct {
		name  string
		input *Input
		code  errors.ErrorCode
	}{
		{"nil input", nil, errors.ErrCodeInvalidInput},
		{"missing career", &Input{StudentID: "s", Answers: map[string]int{}}, errors.ErrCodeInvalidInput},
		{"unknown career", &Input{StudentID: "s", CareerID: "astronaut", Answers: map[string]int{}}, errors.ErrCodeQuizNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			stdErr := errors.Normalize(err)
			assert.Equal(t, tt.code, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}

func TestHandler_Execute_InvalidDefinition(t *testing.T) {
	h := NewHandler(createTestConfig(), invalidSource{}, nil, nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{StudentID: "s", CareerID: "pilot", Answers: map[string]int{}})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeQuizDefinitionInvalid, errors.Normalize(err).Code)
}

func TestHandler_Execute_EmbeddedBank(t *testing.T) {
	bank, err := quizbank.Embedded()
	require.NoError(t, err)
	h := NewHandler(createTestConfig(), bank, nil, nil, logger.NewTestLogger(t))

	for _, summary := range bank.List() {
		output, err := h.Execute(context.Background(), &Input{
			StudentID: "s-1",
			CareerID:  summary.CareerID,
			Answers:   map[string]int{},
		})
		require.NoError(t, err, summary.CareerID)
		assert.GreaterOrEqual(t, output.Result.ReadinessPercentage, 0)
		assert.LessOrEqual(t, output.Result.ReadinessPercentage, 100)
		assert.NotEmpty(t, output.Result.Title)
	}
}

// ==========================
// Input parsing
// ==========================

func TestParseInput(t *testing.T) {
	tests := []struct {
		name      string
		variables map[string]interface{}
		wantCode  errors.ErrorCode
	}{
		{
			name:      "valid",
			variables: map[string]interface{}{"studentId": "s-1", "careerId": "nurse", "answers": map[string]interface{}{"q1": 1}},
		},
		{
			name:      "missing career",
			variables: map[string]interface{}{"studentId": "s-1", "answers": map[string]interface{}{}},
			wantCode:  errors.ErrCodeInvalidInput,
		},
		{
			name:      "fractional option",
			variables: map[string]interface{}{"studentId": "s-1", "careerId": "nurse", "answers": map[string]interface{}{"q1": 1.5}},
			wantCode:  errors.ErrCodeInvalidAnswers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := ParseInput(createMockJob(tt.variables))
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, map[string]int{"q1": 1}, input.Answers)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.Normalize(err).Code)
		})
	}
}
