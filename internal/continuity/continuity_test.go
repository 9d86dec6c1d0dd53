package continuity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChain_AllSucceed(t *testing.T) {
	var calls []string
	err := New().
		Thenf("a", func() error { calls = append(calls, "a"); return nil }).
		Thenf("b", func() error { calls = append(calls, "b"); return nil }).
		Err()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, calls)
}

func TestChain_StopsAtFirstFailure(t *testing.T) {
	var calls []string
	err := New().
		Thenf("a", func() error { calls = append(calls, "a"); return errors.New("boom") }).
		Thenf("b", func() error { calls = append(calls, "b"); return nil }).
		Err()
	require.Error(t, err)
	require.Equal(t, "boom", err.Error())
	require.Equal(t, []string{"a"}, calls)
}

func TestChain_NoSteps(t *testing.T) {
	require.NoError(t, New().Err())
}
