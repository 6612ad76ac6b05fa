package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerTo_WritesRoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "packsync")

	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"role":"packsync"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestWithStr_AddsFieldToChildOnly(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerTo(&buf, "test")
	child := parent.WithStr("scope", "lobby")

	child.Info().Msg("child")
	assert.Contains(t, buf.String(), `"scope":"lobby"`)

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, buf.String(), `"scope"`)
}

func TestApplyLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	require.NoError(t, ApplyLevel("WARN"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	require.NoError(t, ApplyLevel(""))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	assert.Error(t, ApplyLevel("loud"))
}

func TestFromContext_NeverNil(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, Nop())
}
