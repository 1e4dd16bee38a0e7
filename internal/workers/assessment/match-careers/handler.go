// internal/workers/assessment/match-careers/handler.go
package matchcareers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"career-workers/internal/catalog"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/validation"
	"career-workers/internal/matcher"
	"career-workers/internal/models"
	"career-workers/internal/profile"
	"career-workers/internal/similarity"
)

const (
	TaskType = "match-careers"
)

// AssessmentStore persists a profile with its ranked matches.
type AssessmentStore interface {
	SaveAssessment(ctx context.Context, studentID string, p models.StudentProfile, matches []models.MatchResult) (string, error)
}

type Handler struct {
	config     *Config
	catalog    catalog.Repository
	store      AssessmentStore
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

// NewHandler wires the matcher to a catalog. store may be nil, in which case
// persist requests are ignored.
func NewHandler(config *Config, repo catalog.Repository, store AssessmentStore, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		catalog:    repo,
		store:      store,
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
		switch {
		case len(result.GetErrorsForField("answers")) > 0:
			return nil, errors.NewInvalidAnswersError(details)
		case len(result.GetErrorsForField("profile")) > 0:
			return nil, errors.NewProfileInvalidError(details)
		default:
			return nil, errors.NewInvalidInputError(details)
		}
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}
	return &input, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError("input cannot be nil")
	}
	if vr := validation.ValidateStruct(input); !vr.Valid {
		return nil, errors.NewInvalidInputError(strings.Join(vr.GetErrorMessages(), "; "))
	}

	student, err := h.resolveProfile(input)
	if err != nil {
		return nil, err
	}

	careers, err := h.loadCatalog(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = h.config.DefaultLimit
	}

	matches, err := matcher.MatchStudentToCareers(ctx, student, careers, limit, matcher.Options{
		Parallelism: h.config.Parallelism,
	})
	if err != nil {
		if stderrors.Is(err, similarity.ErrDimensionMismatch) {
			return nil, errors.NewDimensionMismatchError(err)
		}
		return nil, errors.NewInternalError(err)
	}

	metrics.RecordMatches(len(careers), countDegenerate(careers))

	output := &Output{
		StudentID:   input.StudentID,
		Matches:     matches,
		TopRIASEC:   profile.Top3RIASEC(student.RIASEC),
		CatalogSize: len(careers),
	}

	if input.Persist && h.store != nil {
		id, err := h.store.SaveAssessment(ctx, input.StudentID, student, matches)
		if err != nil {
			return nil, errors.NewResultSaveFailedError("assessment", err)
		}
		output.AssessmentID = id
	}

	h.logger.Info("careers matched", map[string]interface{}{
		"studentId":   input.StudentID,
		"catalogSize": len(careers),
		"returned":    len(matches),
		"category":    input.Category,
	})

	return output, nil
}

func (h *Handler) resolveProfile(input *Input) (models.StudentProfile, error) {
	if input.Profile != nil {
		if vr := validation.ValidateStruct(input.Profile); !vr.Valid {
			return models.StudentProfile{}, errors.NewProfileInvalidError(strings.Join(vr.GetErrorMessages(), "; "))
		}
		return *input.Profile, nil
	}
	if input.Answers == nil {
		return models.StudentProfile{}, errors.NewInvalidAnswersError("answers or profile is required")
	}
	return profile.Build(input.Answers), nil
}

func (h *Handler) loadCatalog(ctx context.Context, category string) ([]models.Career, error) {
	catalogCtx := ctx
	if h.config.CatalogTimeout > 0 {
		var cancel context.CancelFunc
		catalogCtx, cancel = context.WithTimeout(ctx, h.config.CatalogTimeout)
		defer cancel()
	}

	careers, err := h.catalog.ListCareers(catalogCtx, catalog.Filter{Category: category})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || catalogCtx.Err() == context.DeadlineExceeded {
			return nil, errors.NewCatalogTimeoutError(h.config.CatalogSource)
		}
		if stderrors.Is(err, catalog.ErrQueryFailed) {
			return nil, errors.NewCatalogQueryFailedError(h.config.CatalogSource, err)
		}
		return nil, errors.NewCatalogUnavailableError(h.config.CatalogSource, err)
	}
	return careers, nil
}

func countDegenerate(careers []models.Career) int {
	n := 0
	for _, c := range careers {
		if !c.Scoreable() {
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
