// internal/workers/quiz/score-reality-quiz/handler.go
package scorerealityquiz

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/validation"
	"career-workers/internal/models"
	"career-workers/internal/quizbank"
	"career-workers/internal/realityquiz"
	"career-workers/internal/results"
)

const (
	TaskType = "score-reality-quiz"
)

// QuizSource looks up the authored quiz for a career.
type QuizSource interface {
	Get(careerID string) (*models.Quiz, error)
}

// ResultStore persists completed attempts.
type ResultStore interface {
	SaveQuizResult(ctx context.Context, sub results.QuizSubmission) (string, error)
}

// QuizHistory is implemented by stores that can read back earlier attempts.
// When the configured store has it, the output carries the previous readiness.
type QuizHistory interface {
	LatestQuizResult(ctx context.Context, studentID, careerID string) (*results.StoredQuizResult, error)
}

type Handler struct {
	config     *Config
	quizzes    QuizSource
	store      ResultStore
	notifier   results.Notifier
	logger     logger.Logger
	errHandler *errors.ErrorHandler

	pending sync.WaitGroup
}

// NewHandler wires the scorer. store and notifier may be nil; without a store
// every result completes with saved=false.
func NewHandler(config *Config, quizzes QuizSource, store ResultStore, notifier results.Notifier, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	if notifier == nil {
		notifier = results.NewLogNotifier(log)
	}
	return &Handler{
		config:     config,
		quizzes:    quizzes,
		store:      store,
		notifier:   notifier,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := ParseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

// ParseInput validates job variables against the input schema and decodes them.
func ParseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}

	result, err := validation.ValidateDocument(inputSchema, variables)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !result.Valid {
		details := strings.Join(result.GetErrorMessages(), "; ")
		if len(result.GetErrorsForField("answers")) > 0 {
			return nil, errors.NewInvalidAnswersError(details)
		}
		return nil, errors.NewInvalidInputError(details)
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}
	return &input, nil
}

// Execute scores the answers against the career's quiz. A failed save does
// not fail the job: the result is returned with Saved=false and a
// notification is sent in the background.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError("input cannot be nil")
	}
	if vr := validation.ValidateStruct(input); !vr.Valid {
		return nil, errors.NewInvalidInputError(strings.Join(vr.GetErrorMessages(), "; "))
	}

	quiz, err := h.quizzes.Get(input.CareerID)
	if err != nil {
		if stderrors.Is(err, quizbank.ErrQuizNotFound) {
			return nil, errors.NewQuizNotFoundError(input.CareerID)
		}
		if stderrors.Is(err, quizbank.ErrInvalidDefinition) {
			return nil, errors.NewQuizDefinitionInvalidError(err)
		}
		return nil, errors.NewInternalError(err)
	}

	result := realityquiz.Score(*quiz, input.Answers)
	metrics.RecordQuizResult(string(result.ResultTier), result.ReadinessPercentage)

	output := &Output{
		StudentID:     input.StudentID,
		CareerID:      input.CareerID,
		QuizVersion:   quiz.Version,
		Result:        result,
		AnsweredCount: answeredCount(quiz, input.Answers),
		QuestionCount: len(quiz.Questions),
	}

	output.PreviousReadiness = h.previousReadiness(ctx, input)

	if h.store != nil {
		id, err := h.store.SaveQuizResult(ctx, results.QuizSubmission{
			StudentID:   input.StudentID,
			CareerID:    input.CareerID,
			QuizVersion: quiz.Version,
			Answers:     input.Answers,
			Result:      result,
		})
		if err != nil {
			h.reportSaveFailure(input, result, err)
		} else {
			output.ResultID = id
			output.Saved = true
		}
	}

	h.logger.Info("reality quiz scored", map[string]interface{}{
		"studentId": input.StudentID,
		"careerId":  input.CareerID,
		"readiness": result.ReadinessPercentage,
		"tier":      result.ResultTier,
		"saved":     output.Saved,
	})

	return output, nil
}

// previousReadiness must run before the new attempt is saved. Lookup failures
// only cost the comparison.
func (h *Handler) previousReadiness(ctx context.Context, input *Input) *int {
	history, ok := h.store.(QuizHistory)
	if !ok {
		return nil
	}
	prev, err := history.LatestQuizResult(ctx, input.StudentID, input.CareerID)
	if err != nil {
		if !stderrors.Is(err, sql.ErrNoRows) {
			h.logger.Warn("previous quiz result lookup failed", map[string]interface{}{
				"studentId": input.StudentID,
				"careerId":  input.CareerID,
				"error":     err.Error(),
			})
		}
		return nil
	}
	readiness := prev.ReadinessPercentage
	return &readiness
}

func (h *Handler) reportSaveFailure(input *Input, result models.QuizResult, err error) {
	metrics.QuizResultSaveFailures.Inc()
	h.logger.Warn("quiz result not saved", map[string]interface{}{
		"studentId": input.StudentID,
		"careerId":  input.CareerID,
		"error":     err.Error(),
	})

	failure := results.SaveFailure{
		StudentID:  input.StudentID,
		CareerID:   input.CareerID,
		Readiness:  result.ReadinessPercentage,
		Error:      err.Error(),
		OccurredAt: time.Now().UTC(),
	}

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), h.config.NotifyTimeout)
		defer cancel()
		if nerr := h.notifier.NotifySaveFailure(ctx, failure); nerr != nil {
			stdErr := errors.NewNotificationSendFailedError(results.EventQuizResultSaveFailed, nerr)
			h.logger.Error("save failure notification not sent", map[string]interface{}{
				"errorCode": string(stdErr.Code),
				"details":   stdErr.Details,
			})
		}
	}()
}

// Wait blocks until background notifications have finished.
func (h *Handler) Wait() {
	h.pending.Wait()
}

func answeredCount(quiz *models.Quiz, answers map[string]int) int {
	n := 0
	for _, q := range quiz.Questions {
		if opt, ok := answers[q.ID]; ok && opt >= 0 && opt < len(q.Options) {
			n++
		}
	}
	return n
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.RecordJobCompleted(TaskType)
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.RecordJobFailed(TaskType, string(errors.Normalize(err).Code))
	h.errHandler.HandleJobError(ctx, client, job, err)
}
