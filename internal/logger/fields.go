package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldVacancyID is the structured log field key for a vacancy.
	FieldVacancyID = "vacancy_id"
	// FieldJobFamily is the structured log field key for a job family tag.
	FieldJobFamily = "job_family"
	// FieldRequestID is the structured log field key for an HTTP request.
	FieldRequestID = "request_id"
)

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// VacancyFields describes a vacancy in log entries. A zero ID or an empty
// family is left out.
func VacancyFields(vacancyID int64, family string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if vacancyID != 0 {
		fields = append(fields, zap.Int64(FieldVacancyID, vacancyID))
	}
	if family = strings.TrimSpace(family); family != "" {
		fields = append(fields, zap.String(FieldJobFamily, family))
	}
	return fields
}

// Truncate shortens s to limit runes, appending an ellipsis when cut.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
