// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jmcomic-api/internal/comic"
	"github.com/taibuivan/jmcomic-api/internal/jm"
)

// fakeRedis keeps values in a map and answers like go-redis does.
type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

/*
TestRedisDetailCache_RoundTrip stores views per client kind with the TTL.
*/
func TestRedisDetailCache_RoundTrip(t *testing.T) {
	store := newFakeRedis()
	cache := comic.NewRedisDetailCache(store, time.Hour)
	ctx := context.Background()

	view := &comic.DetailView{
		ID:       "123",
		Title:    "Tom",
		Chapters: []comic.ChapterView{{ID: "1", Title: "c", Index: "1", PageCount: 3}},
	}
	require.NoError(t, cache.Set(ctx, jm.KindAPI, "123", view))

	assert.Contains(t, store.values, "jm:detail:api:123")
	assert.Equal(t, time.Hour, store.ttls["jm:detail:api:123"])

	cached, ok, err := cache.Get(ctx, jm.KindAPI, "123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, view, cached)

	_, ok, err = cache.Get(ctx, jm.KindHTML, "123")
	require.NoError(t, err)
	assert.False(t, ok)
}

/*
TestRedisDetailCache_Failures reports connectivity and decoding errors but not misses.
*/
func TestRedisDetailCache_Failures(t *testing.T) {
	ctx := context.Background()

	store := newFakeRedis()
	store.values["jm:detail:html:9"] = "{not json"
	cache := comic.NewRedisDetailCache(store, time.Minute)

	_, ok, err := cache.Get(ctx, jm.KindHTML, "9")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "redis_detail_decode_failed")

	store.err = errors.New("connection refused")
	_, ok, err = cache.Get(ctx, jm.KindHTML, "1")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "connection refused")

	err = cache.Set(ctx, jm.KindHTML, "1", &comic.DetailView{ID: "1"})
	assert.ErrorContains(t, err, "redis_detail_set_failed")
}
