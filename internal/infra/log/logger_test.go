package log

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

var output bytes.Buffer

func TestMain(m *testing.M) {
	Configure(Config{Level: "debug", Output: &output, Service: "psytest-test"})
	os.Exit(m.Run())
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(nil)) //nolint:staticcheck
}

func TestFromContextAddsRequestID(t *testing.T) {
	output.Reset()
	ctx := ContextWithRequestID(context.Background(), "req-7")
	FromContext(ctx).Info().Msg("handled")
	assert.Contains(t, output.String(), `"request_id":"req-7"`)
	assert.Contains(t, output.String(), `"service":"psytest-test"`)

	output.Reset()
	FromContext(context.Background()).Warn().Msg("no id")
	assert.NotContains(t, output.String(), "request_id")
	assert.Contains(t, output.String(), `"level":"warn"`)
}

func TestWithComponent(t *testing.T) {
	output.Reset()
	logger := WithComponent("db")
	logger.Info().Msg("connected")
	assert.Contains(t, output.String(), `"component":"db"`)
}
