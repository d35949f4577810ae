package logger_test

import (
	"context"
	"testing"

	"driftboard-client/internal/observability/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_New(t *testing.T) {
	log, err := logger.New("test-service", "info")
	require.NoError(t, err)
	defer log.Sync()

	ctx := context.Background()

	// Verify the methods don't panic with and without module/action
	log.Info(ctx, "test info message",
		logger.Module("test"),
		logger.Action("test_action"),
	)
	log.Warn(ctx, "test warn message")
	log.Error(ctx, "test error message")
	log.Debug(ctx, "test debug message")
}

func TestLogger_New_RequiresServiceName(t *testing.T) {
	_, err := logger.New("", "info")
	assert.Error(t, err)
}

func TestLogger_NewCLI(t *testing.T) {
	log, err := logger.NewCLI("driftboard", "debug")
	require.NoError(t, err)
	defer log.Sync()

	log.Debug(context.Background(), "console output goes to stderr",
		logger.Module("cli"),
		logger.Action("test"),
	)
}

func TestLogger_ContextFields(t *testing.T) {
	log, err := logger.New("test-service", "info")
	require.NoError(t, err)
	defer log.Sync()

	ctx := context.Background()
	ctx = logger.SetRequestIDInContext(ctx, "test-req-123")
	ctx = logger.SetWorkspaceSlugInContext(ctx, "ws1")
	ctx = logger.SetProjectIDInContext(ctx, "proj-1")
	ctx = logger.SetUserIDInContext(ctx, "user-789")

	assert.Equal(t, "test-req-123", logger.GetRequestIDFromContext(ctx))
	assert.Equal(t, "ws1", logger.GetWorkspaceSlugFromContext(ctx))
	assert.Equal(t, "proj-1", logger.GetProjectIDFromContext(ctx))
	assert.Equal(t, "user-789", logger.GetUserIDFromContext(ctx))

	// WithContext must not panic and must return a usable logger
	log.WithContext(ctx).Info(ctx, "with context fields",
		logger.Module("test"),
		logger.Action("context_fields"),
	)
}
