package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduction(t *testing.T) {
	t.Parallel()
	logger, err := New(false, "warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(0), "info should be filtered at warn level")
}

func TestNewDevelopment(t *testing.T) {
	t.Parallel()
	logger, err := New(true, "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1), "debug should be enabled")
}

func TestNewBadLevel(t *testing.T) {
	t.Parallel()
	_, err := New(false, "loud")
	assert.Error(t, err)
}
