// Package errors provides standardized error handling for the scenario services.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeScenarioNotFound     ErrorCode = "SCENARIO_NOT_FOUND"
	ErrCodeCriterionNotFound    ErrorCode = "CRITERION_NOT_FOUND"
	ErrCodeLastScenarioDelete   ErrorCode = "LAST_SCENARIO_DELETE_FORBIDDEN"
	ErrCodeInvalidScoreValue    ErrorCode = "INVALID_SCORE_VALUE"
	ErrCodeInvalidArea          ErrorCode = "INVALID_AREA"
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeEndpointUnreachable  ErrorCode = "SCORING_ENDPOINT_UNREACHABLE"
	ErrCodeEndpointRejected     ErrorCode = "SCORING_ENDPOINT_REJECTED"
	ErrCodeMalformedResponse    ErrorCode = "SCORING_RESPONSE_MALFORMED"
	ErrCodeJudgeCallFailed      ErrorCode = "JUDGE_CALL_FAILED"
	ErrCodeJudgeTimeout         ErrorCode = "JUDGE_TIMEOUT"
	ErrCodeDatabaseConnection   ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeDatabaseInsertFailed ErrorCode = "DATABASE_INSERT_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewScenarioNotFoundError creates a non-retryable lookup error.
func NewScenarioNotFoundError(scenarioID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScenarioNotFound,
		Message:   "Scenario not found",
		Details:   fmt.Sprintf("scenarioId: %s", scenarioID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCriterionNotFoundError creates a non-retryable lookup error.
func NewCriterionNotFoundError(criterionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCriterionNotFound,
		Message:   "Criterion not found",
		Details:   fmt.Sprintf("criterionId: %s", criterionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLastScenarioDeleteError creates a non-retryable business rule error.
func NewLastScenarioDeleteError(scenarioID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLastScenarioDelete,
		Message:   "At least one scenario must remain",
		Details:   fmt.Sprintf("scenarioId: %s", scenarioID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidScoreValueError creates a non-retryable validation error.
func NewInvalidScoreValueError(value int) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidScoreValue,
		Message:   "Score is not zero or a member of the allowed scale",
		Details:   fmt.Sprintf("value: %d", value),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidAreaError creates a non-retryable validation error.
func NewInvalidAreaError(area string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidArea,
		Message:   "Unknown SWOT area",
		Details:   fmt.Sprintf("area: %s", area),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable input validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEndpointUnreachableError creates a transport-level scoring error.
// Scoring attempts are single-shot, so this is never retried automatically.
func NewEndpointUnreachableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEndpointUnreachable,
		Message:   "Scoring endpoint unreachable",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEndpointRejectedError creates a scoring error carrying the endpoint's
// status code, status text and response body.
func NewEndpointRejectedError(statusCode int, status, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEndpointRejected,
		Message:   fmt.Sprintf("Scoring endpoint rejected the request: %s", status),
		Details:   body,
		Retryable: false,
		Metadata: map[string]interface{}{
			"statusCode": statusCode,
			"status":     status,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedResponseError creates a scoring error for an undecodable or
// shape-invalid endpoint response.
func NewMalformedResponseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedResponse,
		Message:   "Scoring endpoint returned a malformed response",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewJudgeCallFailedError creates a per-criterion judgment error.
func NewJudgeCallFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeJudgeCallFailed,
		Message:   "Text judge call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewJudgeTimeoutError creates a per-criterion judgment timeout error.
func NewJudgeTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeJudgeTimeout,
		Message:   "Text judge call timed out",
		Details:   "judgment exceeded the configured timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnection,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Integration
// ==========================

// httpStatusMapping maps internal error codes to HTTP response codes.
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeScenarioNotFound:     http.StatusNotFound,
	ErrCodeCriterionNotFound:    http.StatusNotFound,
	ErrCodeLastScenarioDelete:   http.StatusConflict,
	ErrCodeInvalidScoreValue:    http.StatusBadRequest,
	ErrCodeInvalidArea:          http.StatusBadRequest,
	ErrCodeValidationFailed:     http.StatusBadRequest,
	ErrCodeEndpointUnreachable:  http.StatusBadGateway,
	ErrCodeEndpointRejected:     http.StatusBadGateway,
	ErrCodeMalformedResponse:    http.StatusBadGateway,
	ErrCodeJudgeCallFailed:      http.StatusBadGateway,
	ErrCodeJudgeTimeout:         http.StatusGatewayTimeout,
	ErrCodeDatabaseConnection:   http.StatusServiceUnavailable,
	ErrCodeQueryExecutionFailed: http.StatusInternalServerError,
	ErrCodeDatabaseInsertFailed: http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status for an error code.
func HTTPStatus(code ErrorCode) int {
	if status, exists := httpStatusMapping[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// ==========================
// 4. Utility Functions
// ==========================

// AsStandardError converts any error into a StandardError, wrapping unknown
// errors under a generic code.
func AsStandardError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected internal error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SCENARIO") || strings.Contains(codeStr, "CRITERION"):
		return "STORE"
	case strings.Contains(codeStr, "SCORING") || strings.Contains(codeStr, "JUDGE"):
		return "SCORING"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
