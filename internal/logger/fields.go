package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldResume = "resume"
	FieldJD     = "jd"
	FieldModel  = "ai_model"
	FieldKind   = "kind"
)

// PairFields describes a (resume, jd) scoring pair. Blank values are omitted.
func PairFields(resume, jd string) []zap.Field {
	return nonEmpty(FieldResume, resume, FieldJD, jd)
}

// DocumentFields describes a stored document.
func DocumentFields(kind, name string) []zap.Field {
	return nonEmpty(FieldKind, kind, "document", name)
}

// WithModel tags l with the generation model name.
func WithModel(l *zap.Logger, model string) *zap.Logger {
	fields := nonEmpty(FieldModel, model)
	if len(fields) == 0 {
		return OrNop(l)
	}
	return OrNop(l).With(fields...)
}

func nonEmpty(kv ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		value := strings.TrimSpace(kv[i+1])
		if value == "" {
			continue
		}
		fields = append(fields, zap.String(kv[i], value))
	}
	return fields
}
