// internal/workers/assessment/build-student-profile/handler.go
package buildstudentprofile

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/validation"
	"career-workers/internal/profile"
)

const (
	TaskType = "build-student-profile"
)

type Handler struct {
	config     *Config
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
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

// Execute folds the answers into a student profile. Unknown question ids and
// out-of-range options are skipped.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError("input cannot be nil")
	}
	if vr := validation.ValidateStruct(input); !vr.Valid {
		return nil, errors.NewInvalidAnswersError(strings.Join(vr.GetErrorMessages(), "; "))
	}

	p := profile.Build(input.Answers)
	top := profile.Top3RIASEC(p.RIASEC)

	h.logger.Info("student profile built", map[string]interface{}{
		"studentId":   input.StudentID,
		"answerCount": len(input.Answers),
		"topRIASEC":   top,
	})

	return &Output{
		StudentID: input.StudentID,
		Profile:   p,
		TopRIASEC: top,
		TopValue:  profile.TopValue(p.Values),
	}, nil
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
