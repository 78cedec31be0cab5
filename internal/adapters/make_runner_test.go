package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cos-mkimg/internal/core"
)

func TestMakeRunnerAdapterCapturesOutput(t *testing.T) {
	inv := core.Invocation{Program: "sh", Args: []string{"-c", "echo built; echo warning >&2"}}

	result, err := NewMakeRunnerAdapter().Run(t.Context(), "pong", inv)
	require.NoError(t, err)
	assert.Equal(t, "built\n", result.Stdout)
	assert.Equal(t, "warning\n", result.Stderr)
}

func TestMakeRunnerAdapterPassesArgsWithoutShell(t *testing.T) {
	inv := core.Invocation{Program: "printf", Args: []string{"%s|", `COMP_INTERFACES="a/b"`, "x y"}}

	result, err := NewMakeRunnerAdapter().Run(t.Context(), "pong", inv)
	require.NoError(t, err)
	assert.Equal(t, `COMP_INTERFACES="a/b"|x y|`, result.Stdout)
}

func TestMakeRunnerAdapterNonZeroExit(t *testing.T) {
	inv := core.Invocation{Program: "sh", Args: []string{"-c", "echo partial; echo 'no rule to make target' >&2; exit 2"}}

	result, err := NewMakeRunnerAdapter().Run(t.Context(), "pong", inv)
	require.Error(t, err)
	assert.Equal(t, core.KindToolFailure, core.KindOf(err))
	assert.Equal(t, "partial\n", result.Stdout)

	var typed *core.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "pong", typed.Component)
	assert.Equal(t, "no rule to make target", typed.Msg)
}

func TestMakeRunnerAdapterMissingProgram(t *testing.T) {
	inv := core.Invocation{Program: "cos-mkimg-no-such-tool"}

	_, err := NewMakeRunnerAdapter().Run(t.Context(), "pong", inv)
	require.Error(t, err)
	assert.Equal(t, core.KindToolFailure, core.KindOf(err))
}
