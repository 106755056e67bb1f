package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/FC-OSP-6/trust-center-sub001"
)

func TestInvalidator_Invalidate(t *testing.T) {
	ctx := context.Background()

	c := cache.NewLRU(cache.Config{MaxItems: 10})
	defer c.Close()

	i := &cache.Invalidator{SkipInterval: time.Minute}

	err := i.Invalidate(ctx)
	assert.True(t, errors.Is(err, cache.ErrNothingToInvalidate))

	// Mutation of controls drops every cached view of controls.
	i.Callbacks = append(i.Callbacks, func(ctx context.Context) {
		_ = c.InvalidatePrefix(ctx, cache.EntityPrefix("controls"))
	})

	require.NoError(t, c.Write(ctx, cache.Key("controls", "list", "security", "1"), 1, time.Minute))
	require.NoError(t, c.Write(ctx, cache.Key("controls", "list", "privacy", "1"), 2, time.Minute))
	require.NoError(t, c.Write(ctx, cache.Key("faqs", "1"), 3, time.Minute))

	require.NoError(t, i.Invalidate(ctx))

	_, err = c.Read(ctx, cache.Key("controls", "list", "security", "1"))
	assert.EqualError(t, err, cache.ErrNotFound.Error())

	_, err = c.Read(ctx, cache.Key("controls", "list", "privacy", "1"))
	assert.EqualError(t, err, cache.ErrNotFound.Error())

	val, err := c.Read(ctx, cache.Key("faqs", "1"))
	assert.NoError(t, err)
	assert.Equal(t, 3, val)

	// Flood protection.
	err = i.Invalidate(ctx)
	assert.True(t, errors.Is(err, cache.ErrAlreadyInvalidated))
}
