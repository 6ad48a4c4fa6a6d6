package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies failures so handlers can pick a response status.
type ErrorCode string

const (
	ErrorInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrorUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrorNotFound          ErrorCode = "NOT_FOUND"
	ErrorConflict          ErrorCode = "CONFLICT"
	ErrorOCRFailed         ErrorCode = "OCR_FAILED"
	ErrorLLMFailed         ErrorCode = "LLM_FAILED"
	ErrorTTSFailed         ErrorCode = "TTS_FAILED"
	ErrorStorageFailed     ErrorCode = "STORAGE_FAILED"
)

// AppError is a coded error carrying an optional cause and details.
type AppError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewInvalidInputError(message string) *AppError {
	return &AppError{Code: ErrorInvalidInput, Message: message}
}

func NewUnsupportedFormatError(filename string) *AppError {
	return &AppError{
		Code:    ErrorUnsupportedFormat,
		Message: "Invalid file type. Only PDF, JPG, JPEG, and PNG are allowed",
		Details: map[string]interface{}{"filename": filename},
	}
}

func NewNotFoundError(resource string, cause error) *AppError {
	return &AppError{
		Code:    ErrorNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Cause:   cause,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: ErrorConflict, Message: message}
}

func NewOCRFailedError(stage string, cause error) *AppError {
	return &AppError{
		Code:    ErrorOCRFailed,
		Message: fmt.Sprintf("OCR failed at stage: %s", stage),
		Details: map[string]interface{}{"stage": stage},
		Cause:   cause,
	}
}

func NewLLMFailedError(operation string, cause error) *AppError {
	return &AppError{
		Code:    ErrorLLMFailed,
		Message: fmt.Sprintf("language model call failed: %s", operation),
		Cause:   cause,
	}
}

// NewTTSFailedError records an upstream text-to-speech failure with its HTTP status.
func NewTTSFailedError(status int, body string) *AppError {
	return &AppError{
		Code:    ErrorTTSFailed,
		Message: fmt.Sprintf("ElevenLabs API error: %d - %s", status, body),
		Details: map[string]interface{}{"upstream_status": status},
	}
}

func NewStorageFailedError(cause error) *AppError {
	return &AppError{Code: ErrorStorageFailed, Message: "failed to store file", Cause: cause}
}

// Is reports whether any error in err's chain is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Code {
	case ErrorInvalidInput, ErrorUnsupportedFormat:
		return http.StatusBadRequest
	case ErrorNotFound:
		return http.StatusNotFound
	case ErrorConflict:
		return http.StatusConflict
	case ErrorTTSFailed:
		if status, ok := appErr.Details["upstream_status"].(int); ok && status >= 400 {
			return status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
