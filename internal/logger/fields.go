package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hiring-slate/internal/scoring"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"

	FieldCategory  = "category"
	FieldCandidate = "candidate"
	FieldLocation  = "location"
	FieldScore     = "score"
	FieldSalary    = "salary"
	FieldNudge     = "diversity_nudge"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, falling back to a no-op logger when
// logger is nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the fields describing the AI provider and model.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// RowFields describes one ranked row. Empty location and absent salary are
// left out.
func RowFields(row scoring.EvaluationRow) []zap.Field {
	fields := StringFields(
		StringField{Key: FieldCategory, Value: row.Category.String()},
		StringField{Key: FieldCandidate, Value: row.Name},
		StringField{Key: FieldLocation, Value: row.Location},
	)

	fields = append(fields, zap.Float64(FieldScore, row.Score))
	if row.Salary.Valid {
		fields = append(fields, zap.Int(FieldSalary, row.Salary.Amount))
	}

	return fields
}

// PickFields describes a slate pick.
func PickFields(row scoring.EvaluationRow, nudged bool) []zap.Field {
	return append(RowFields(row), zap.Bool(FieldNudge, nudged))
}
