package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gecapi/internal/config"
	"gecapi/internal/logging"
)

func TestRun_StartupFailureReturnsError(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	var buf bytes.Buffer
	logger := logging.New(&buf, time.UTC, nil)
	cfg := &config.AppConfig{Port: "0", Timezone: "UTC"}

	err := run(context.Background(), cfg, logger)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect database")
	assert.Contains(t, buf.String(), "tracing_configured")
}
