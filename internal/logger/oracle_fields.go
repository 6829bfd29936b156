package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the oracle provider name.
	FieldProvider = "oracle_provider"
	// FieldModel is the structured log field key for the oracle model identifier.
	FieldModel = "oracle_model"
)

// OracleFields returns the standard fields describing the skill-match oracle
// backing a logger. Empty values are dropped to keep entries compact.
func OracleFields(provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if provider = strings.TrimSpace(provider); provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}
	return fields
}

// WithOracleFields attaches the oracle fields to the provided logger. A nil
// logger is replaced with a no-op one so callers never have to check.
func WithOracleFields(logger *zap.Logger, provider, model string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := OracleFields(provider, model)
	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}
