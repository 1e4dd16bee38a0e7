// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput          ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidAnswers        ErrorCode = "INVALID_ANSWERS"
	ErrCodeProfileInvalid        ErrorCode = "PROFILE_INVALID"
	ErrCodeDimensionMismatch     ErrorCode = "DIMENSION_MISMATCH"
	ErrCodeQuizNotFound          ErrorCode = "QUIZ_NOT_FOUND"
	ErrCodeQuizDefinitionInvalid ErrorCode = "QUIZ_DEFINITION_INVALID"

	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeCatalogQueryFailed ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeCatalogTimeout     ErrorCode = "CATALOG_TIMEOUT"

	ErrCodeResultSaveFailed       ErrorCode = "RESULT_SAVE_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeBrokerUnavailable ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeBrokerTimeout     ErrorCode = "BROKER_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.cause }

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Job variables could not be parsed or validated", details, false, nil)
}

func NewInvalidAnswersError(details string) *StandardError {
	return newError(ErrCodeInvalidAnswers, "Assessment answers are missing or malformed", details, false, nil)
}

func NewProfileInvalidError(details string) *StandardError {
	return newError(ErrCodeProfileInvalid, "Student profile is invalid", details, false, nil)
}

// NewDimensionMismatchError signals student and career vectors with different
// key sets. This is a data-model bug, never retried.
func NewDimensionMismatchError(err error) *StandardError {
	return newError(ErrCodeDimensionMismatch, "Profile dimensions do not match", err.Error(), false, err)
}

func NewQuizNotFoundError(careerID string) *StandardError {
	return newError(ErrCodeQuizNotFound, "No reality quiz defined for career",
		fmt.Sprintf("careerId: %s", careerID), false, nil)
}

func NewQuizDefinitionInvalidError(err error) *StandardError {
	return newError(ErrCodeQuizDefinitionInvalid, "Quiz definition failed validation", err.Error(), false, err)
}

func NewCatalogUnavailableError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogUnavailable, "Career catalog unavailable",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true, err)
}

func NewCatalogQueryFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogQueryFailed, "Career catalog query failed",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true, err)
}

func NewCatalogTimeoutError(source string) *StandardError {
	return newError(ErrCodeCatalogTimeout, "Career catalog query timeout",
		fmt.Sprintf("source: %s", source), true, nil)
}

func NewResultSaveFailedError(kind string, err error) *StandardError {
	return newError(ErrCodeResultSaveFailed, "Failed to persist result",
		fmt.Sprintf("kind: %s, error: %s", kind, err.Error()), true, err)
}

func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Failed to send notification",
		fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()), true, err)
}

func NewBrokerUnavailableError(err error) *StandardError {
	return newError(ErrCodeBrokerUnavailable, "Workflow broker unavailable", err.Error(), true, err)
}

func NewBrokerTimeoutError(err error) *StandardError {
	return newError(ErrCodeBrokerTimeout, "Workflow broker request timeout", err.Error(), true, err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes caught by
// boundary events in the career assessment process.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:           "INVALID_INPUT",
	ErrCodeInvalidAnswers:         "INVALID_ANSWERS",
	ErrCodeProfileInvalid:         "PROFILE_INVALID",
	ErrCodeDimensionMismatch:      "DIMENSION_MISMATCH",
	ErrCodeQuizNotFound:           "QUIZ_NOT_FOUND",
	ErrCodeQuizDefinitionInvalid:  "QUIZ_DEFINITION_INVALID",
	ErrCodeCatalogUnavailable:     "CATALOG_UNAVAILABLE",
	ErrCodeCatalogQueryFailed:     "CATALOG_UNAVAILABLE",
	ErrCodeCatalogTimeout:         "CATALOG_UNAVAILABLE",
	ErrCodeResultSaveFailed:       "RESULT_SAVE_FAILED",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogUnavailable,
		ErrCodeCatalogQueryFailed,
		ErrCodeResultSaveFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeBrokerUnavailable:
		return 3

	case ErrCodeCatalogTimeout, ErrCodeBrokerTimeout:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "QUIZ"):
		return "QUIZ"
	case strings.HasPrefix(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.HasPrefix(codeStr, "RESULT"):
		return "PERSISTENCE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.HasPrefix(codeStr, "BROKER"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "MISMATCH"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
