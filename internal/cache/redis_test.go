package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/massage-club/internal/config"
	"github.com/magabrotheeeer/massage-club/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := []*models.Plan{{
		ID:               1,
		Name:             "Wellness",
		PriceMonthly:     159.00,
		MassagesPerMonth: 2,
		DurationMinutes:  60,
		Features:         []string{"2 x 60-minute massages per month"},
		IsActive:         true,
	}}
	err := cache.Set("plans:active", expected, time.Minute)
	require.NoError(t, err)

	var actual []*models.Plan
	found, err := cache.Get("plans:active", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out []*models.Plan
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
