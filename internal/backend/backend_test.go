package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("echo", func(t *testing.T) {
		b, err := Open("echo")
		require.NoError(t, err)
		assert.Equal(t, "echo", b.Name())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := Open("cohere")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownBackend)
		assert.Contains(t, err.Error(), "cohere")
	})
}

func TestEchoComplete(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "line one\nline two\nline three"},
		{Role: RoleUser, Content: "add a quiz module"},
	}

	first, err := NewEcho().Complete(context.Background(), messages, Options{})
	require.NoError(t, err)
	assert.Contains(t, first, "# Plan (echo backend)")
	assert.Contains(t, first, "Goal: add a quiz module")
	assert.Contains(t, first, "Context received: 3 lines")

	second, err := NewEcho().Complete(context.Background(), messages, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
