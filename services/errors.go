package services

import "errors"

// Общие ошибки, используемые в сервисах и маппинге HTTP.
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrRaceNotFound       = errors.New("race not found")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	ErrRaceAlreadyExists  = errors.New("race already exists")

	ErrForbiddenOperation = errors.New("operation not allowed for the current user")
	ErrStorageFailed      = errors.New("failed to save data, please try again")
	ErrExportFailed       = errors.New("failed to export event")
	ErrNoExportSinks      = errors.New("no export destinations configured")
)

// ValidationError описывает исправимую пользователем ошибку ввода. Message показывается как есть.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Ошибки валидации формы соревнования и КП.
var (
	ErrRaceNameRequired         = newValidationError("name", "empty name")
	ErrRaceDateRequired         = newValidationError("date", "empty date")
	ErrRaceDateFormat           = newValidationError("date", "bad date format")
	ErrCheckpointNumberRequired = newValidationError("number", "missing number")
	ErrCheckpointCodeRequired   = newValidationError("code", "missing code")
	ErrCoordinatesRequired      = newValidationError("coordinates", "missing coordinates")
	ErrCoordinatesInvalid       = newValidationError("coordinates", "invalid coordinates")
)
