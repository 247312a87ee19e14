package glog

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestComponentTagsOutput(t *testing.T) {
	orig := logger
	defer func() { logger = orig }()

	var buf bytes.Buffer
	Set(zerolog.New(&buf))

	Component("constants").Info().Msg("derived")

	require.Contains(t, buf.String(), `"component":"constants"`)
}

func TestDisableSilencesOutput(t *testing.T) {
	orig := logger
	defer func() { logger = orig }()

	var buf bytes.Buffer
	SetOutput(&buf)
	Disable()
	Logger().Info().Msg("should not appear")

	require.Empty(t, buf.String())
}

func TestLevelFromEnvDefaultsToInfo(t *testing.T) {
	require.Equal(t, zerolog.InfoLevel, levelFromEnv())
}
