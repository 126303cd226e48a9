//go:build integration

package gemini

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateText_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := NewClient(ctx, apiKey)
	require.NoError(t, err)

	answer, usage, err := c.GenerateText(ctx, "gemini-2.5-flash-lite", "Reply with the single word: pong")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Greater(t, usage.PromptTokens, int64(0))
}
