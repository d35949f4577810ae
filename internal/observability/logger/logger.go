package logger

import (
	"context"
	"fmt"
	"strings"

	"driftboard-client/internal/observability/requestid"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Context keys for extracting values from context
type contextKey string

const (
	workspaceSlugContextKey contextKey = "workspace_slug"
	projectIDContextKey     contextKey = "project_id"
	userIDContextKey        contextKey = "user_id"
)

// Logger wraps zap.Logger to enforce structured logging standards
type Logger struct {
	zap         *zap.Logger
	serviceName string
}

// Field represents a structured log field
type Field = zapcore.Field

// New creates a new Logger instance with required base fields, emitting
// JSON with RFC3339Nano timestamps.
// level: "debug", "info", "warn", "error"
func New(serviceName string, level string) (*Logger, error) {
	return build(serviceName, level, "json")
}

// NewCLI creates a Logger for interactive use: console encoding on stderr,
// keeping stdout free for command output.
func NewCLI(serviceName string, level string) (*Logger, error) {
	return build(serviceName, level, "console")
}

func build(serviceName, level, encoding string) (*Logger, error) {
	if serviceName == "" {
		return nil, fmt.Errorf("serviceName is required")
	}

	zapLevel := parseLevel(level)

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Encoding:         encoding,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}

	z, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	// Add service name as base field on all logs
	z = z.With(zap.String("service", serviceName))

	return &Logger{
		zap:         z,
		serviceName: serviceName,
	}, nil
}

// WithContext returns a logger that includes context values
// (request_id, workspace_slug, project_id, user_id)
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := contextFields(ctx)
	if len(fields) == 0 {
		return l
	}

	return &Logger{
		zap:         l.zap.With(fields...),
		serviceName: l.serviceName,
	}
}

// Module returns a field for the module/component
func Module(name string) Field {
	return zap.String("module", name)
}

// Action returns a field for the action/operation
func Action(name string) Field {
	return zap.String("action", name)
}

// Info logs an info message with mandatory module and action
// WHY this design: module and action are enforced by convention, not by
// panic. A missing module/action degrades to defaults instead of crashing.
func (l *Logger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.InfoLevel, msg, fields...)
}

// Warn logs a warning message with mandatory module and action
func (l *Logger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.WarnLevel, msg, fields...)
}

// Error logs an error message with mandatory module and action
func (l *Logger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.ErrorLevel, msg, fields...)
}

// Debug logs a debug message with mandatory module and action
func (l *Logger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.DebugLevel, msg, fields...)
}

// log is the internal logging implementation
func (l *Logger) log(ctx context.Context, level zapcore.Level, msg string, fields ...Field) {
	// Sanitize fields to prevent logging secrets
	sanitizedFields := sanitizeFields(fields)

	// Ensure module and action are present
	hasModule := false
	hasAction := false
	for _, f := range sanitizedFields {
		if f.Key == "module" {
			hasModule = true
		}
		if f.Key == "action" {
			hasAction = true
		}
	}

	if !hasModule {
		sanitizedFields = append(sanitizedFields, zap.String("module", "unknown"))
	}
	if !hasAction {
		sanitizedFields = append(sanitizedFields, zap.String("action", "unknown"))
	}

	allFields := append(contextFields(ctx), sanitizedFields...)

	switch level {
	case zapcore.DebugLevel:
		l.zap.Debug(msg, allFields...)
	case zapcore.InfoLevel:
		l.zap.Info(msg, allFields...)
	case zapcore.WarnLevel:
		l.zap.Warn(msg, allFields...)
	case zapcore.ErrorLevel:
		l.zap.Error(msg, allFields...)
	}
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

func contextFields(ctx context.Context) []Field {
	fields := []Field{}

	if requestID := GetRequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	if slug := GetWorkspaceSlugFromContext(ctx); slug != "" {
		fields = append(fields, zap.String("workspace_slug", slug))
	}

	if projectID := GetProjectIDFromContext(ctx); projectID != "" {
		fields = append(fields, zap.String("project_id", projectID))
	}

	if userID := GetUserIDFromContext(ctx); userID != "" {
		fields = append(fields, zap.String("user_id", userID))
	}

	return fields
}

// sanitizeFields removes forbidden keys to prevent leaking secrets
// SECURITY GUARDRAIL: blocks authorization, token, password, etc.
func sanitizeFields(fields []Field) []Field {
	forbiddenKeys := map[string]bool{
		"authorization": true,
		"token":         true,
		"password":      true,
		"secret":        true,
		"api_key":       true,
		"jwt":           true,
		"bearer":        true,
		"credential":    true,
		// PII that should never be logged directly
		"email":     true,
		"phone":     true,
		"full_name": true,
	}

	sanitized := make([]Field, 0, len(fields))
	for _, field := range fields {
		keyLower := strings.ToLower(field.Key)
		if forbiddenKeys[keyLower] {
			sanitized = append(sanitized, zap.String(field.Key, "[REDACTED]"))
		} else {
			sanitized = append(sanitized, field)
		}
	}
	return sanitized
}

// parseLevel converts string level to zapcore.Level
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Context value getters

func GetRequestIDFromContext(ctx context.Context) string {
	return requestid.GetRequestID(ctx)
}

func GetWorkspaceSlugFromContext(ctx context.Context) string {
	if v := ctx.Value(workspaceSlugContextKey); v != nil {
		if slug, ok := v.(string); ok {
			return slug
		}
	}
	return ""
}

func GetProjectIDFromContext(ctx context.Context) string {
	if v := ctx.Value(projectIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func GetUserIDFromContext(ctx context.Context) string {
	if v := ctx.Value(userIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// Context value setters

func SetRequestIDInContext(ctx context.Context, requestID string) context.Context {
	return requestid.SetRequestID(ctx, requestID)
}

func SetWorkspaceSlugInContext(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, workspaceSlugContextKey, slug)
}

func SetProjectIDInContext(ctx context.Context, projectID string) context.Context {
	return context.WithValue(ctx, projectIDContextKey, projectID)
}

func SetUserIDInContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
