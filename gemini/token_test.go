package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", tc.Model())

	t.Run("counts tokens in a rendered section", func(t *testing.T) {
		t.Parallel()

		section := &anydocs.Section{
			Title:   "Install",
			Level:   2,
			Path:    []string{"Guide"},
			Content: "Run the installer.\n\n" + anydocs.CodeBlockMarker,
			CodeBlocks: []anydocs.CodeBlock{
				{Language: "bash", Code: "npm install foo"},
			},
		}

		count, err := tc.CountTokens(context.Background(), anydocs.FormatSection(section))

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		shortCount, err := tc.CountTokens(ctx, "Install")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(ctx, "Install the package, then configure hooks in the settings file before running the server.")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(ctx, "Install")

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("not-a-model")

	require.Error(t, err)
	assert.Equal(t, anydocs.EINVALID, anydocs.ErrorCode(err))
}
