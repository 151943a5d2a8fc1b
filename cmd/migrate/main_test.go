package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-guide/internal/config"
	"github.com/vibe-guide/internal/logging"
)

func TestRunPostgresMigrations_UnknownAction(t *testing.T) {
	err := runPostgresMigrations(logging.NewNopLogger(), &config.Config{}, "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action: sideways")
}
