package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	newCtx := WithContext(ctx, logger)

	retrieved := FromContext(newCtx)
	assert.Equal(t, logger, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()

	logger := FromContext(ctx)

	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("should not panic")
	})
}

func TestWithRequestID(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
	assert.Equal(t, newLogger, FromContext(newCtx))
}

func TestWithTenantID(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	tenantID := "tenant-456"

	newCtx, newLogger := WithTenantID(ctx, logger, tenantID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, tenantID, GetTenantID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetRequestID(ctx))
}

func TestGetTenantID_NotFound(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetTenantID(ctx))
}

func TestChainedContextEnrichment(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx, logger = WithTenantID(ctx, logger, "tenant-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "tenant-1", GetTenantID(ctx))
	assert.NotNil(t, logger)
}

func TestContextKeys_AreDistinct(t *testing.T) {
	assert.NotEqual(t, LoggerKey, RequestIDKey)
	assert.NotEqual(t, LoggerKey, TenantIDKey)
	assert.NotEqual(t, RequestIDKey, TenantIDKey)
}

func TestL_InjectsContextFields(t *testing.T) {
	core, recorded := observer.New(zap.InfoLevel)
	baseLogger := zap.New(core)

	ctx := context.Background()
	ctx = context.WithValue(ctx, RequestIDKey, "req-abc")
	ctx = context.WithValue(ctx, TenantIDKey, "tenant-abc")
	ctx = WithContext(ctx, baseLogger)

	L(ctx).Info("resolved tariff codes")

	entries := recorded.All()
	assert.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-abc", fields["request_id"])
	assert.Equal(t, "tenant-abc", fields["tenant_id"])
}

func TestL_NoLoggerInContext(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		L(ctx).Info("no logger attached")
		L(ctx).Debug("still fine")
	})
}

func TestWithLogger_UsesProvidedLogger(t *testing.T) {
	core, recorded := observer.New(zap.InfoLevel)
	baseLogger := zap.New(core)

	ctx := context.Background()
	cl := WithLogger(ctx, baseLogger)
	cl.Info("direct logger")

	assert.Len(t, recorded.All(), 1)
}

func TestContextLogger_With(t *testing.T) {
	core, recorded := observer.New(zap.InfoLevel)
	baseLogger := zap.New(core)

	cl := WithLogger(context.Background(), baseLogger).With(zap.String("component", "resolver"))
	cl.Info("message")

	entries := recorded.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "resolver", entries[0].ContextMap()["component"])
}

func TestContextLogger_Zap(t *testing.T) {
	ctx := context.Background()
	cl := WithLogger(ctx, zap.NewNop())

	zl := cl.Zap()
	assert.NotNil(t, zl)
	assert.NotPanics(t, func() {
		zl.Info("from zap")
	})
}
