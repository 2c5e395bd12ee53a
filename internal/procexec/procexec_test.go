package procexec

import (
	"context"
	"testing"

	"github.com/catalystbuild/catalyst/internal/cbeerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Success(t *testing.T) {
	code, err := Run(context.Background(), []string{"true"}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestRun_NonZeroExit(t *testing.T) {
	code, err := Run(context.Background(), []string{"false"}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestRun_SpawnFailure(t *testing.T) {
	_, err := Run(context.Background(), []string{"catalyst-nonexistent-binary-xyz"}, "", nil)
	require.Error(t, err)
	var cerr *cbeerrors.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, cbeerrors.SubprocessSpawnFailed, cerr.Kind)
}

func TestRun_EmptyArgv(t *testing.T) {
	_, err := Run(context.Background(), nil, "", nil)
	require.Error(t, err)
}
