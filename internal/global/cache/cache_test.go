package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDisabledCacheIsPassThrough(t *testing.T) {
	Client = nil
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, KeyRankings, []int{1, 2}, time.Minute))

	var got []int
	require.ErrorIs(t, GetJSON(ctx, KeyRankings, &got), ErrMiss)
	require.Nil(t, got)

	require.NoError(t, Del(ctx, KeyRankings))

	require.NoError(t, Incr(ctx, KeyRankingsGen))
	gen, err := GetInt(ctx, KeyRankingsGen)
	require.NoError(t, err)
	require.Zero(t, gen)
}
