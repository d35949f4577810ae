package requestid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestID_Unique(t *testing.T) {
	a := NewRequestID()
	b := NewRequestID()

	require.NotEmpty(t, a)
	require.NotEmpty(t, b)
	assert.NotEqual(t, a, b)
}

func TestGetRequestID_EmptyContext(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestSetAndGetRequestID(t *testing.T) {
	ctx := SetRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestEnsureRequestID_PreservesExisting(t *testing.T) {
	ctx := SetRequestID(context.Background(), "req-123")
	ctx = EnsureRequestID(ctx)
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestEnsureRequestID_GeneratesWhenMissing(t *testing.T) {
	ctx := EnsureRequestID(context.Background())
	assert.NotEmpty(t, GetRequestID(ctx))
}
