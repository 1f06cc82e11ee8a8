package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lexiscan/lexiscan/internal/source"
	"github.com/lexiscan/lexiscan/pkg/config"
)

func TestPickSourceRequiresExactlyOneInput(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	settings := config.Settings{}

	_, err := pickSource(analyzeFlags{}, settings, logger)
	assert.ErrorContains(t, err, "exactly one")

	_, err = pickSource(analyzeFlags{url: "http://example.com", stdin: true}, settings, logger)
	assert.ErrorContains(t, err, "exactly one")
}

func TestPickSourceSelectsByFlag(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	settings := config.Settings{TimeoutSeconds: 5}

	src, err := pickSource(analyzeFlags{url: "http://example.com"}, settings, logger)
	require.NoError(t, err)
	assert.IsType(t, &source.WebSource{}, src)

	src, err = pickSource(analyzeFlags{file: "/tmp/x.txt"}, settings, logger)
	require.NoError(t, err)
	assert.IsType(t, &source.FileSource{}, src)

	src, err = pickSource(analyzeFlags{stdin: true}, settings, logger)
	require.NoError(t, err)
	assert.IsType(t, &source.ReaderSource{}, src)
}
