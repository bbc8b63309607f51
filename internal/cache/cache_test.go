// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, responseKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

func TestResponseCacheRoundtrip(t *testing.T) {
	rc := NewResponseCache(testClient(t), time.Minute)
	ctx := context.Background()

	if _, ok := rc.Get(ctx, "missing"); ok {
		t.Fatal("hit on a key that was never set")
	}

	body := []byte(`{"categories":[]}`)
	rc.Set(ctx, TaxonomyKey(""), body)

	got, ok := rc.Get(ctx, TaxonomyKey(""))
	if !ok {
		t.Fatal("miss after Set")
	}
	if string(got) != string(body) {
		t.Errorf("cached body = %q, want %q", got, body)
	}

	rc.Invalidate(ctx, TaxonomyKey(""))
	if _, ok := rc.Get(ctx, TaxonomyKey("")); ok {
		t.Error("hit after Invalidate")
	}
}

func TestResponseCacheInvalidateAll(t *testing.T) {
	rc := NewResponseCache(testClient(t), time.Minute)
	ctx := context.Background()

	keys := []string{TaxonomyKey(""), TaxonomyKey("tutorials"), ListKey("article"), ListKey("news")}
	for _, k := range keys {
		rc.Set(ctx, k, []byte("[]"))
	}

	rc.InvalidateAll(ctx)

	for _, k := range keys {
		if _, ok := rc.Get(ctx, k); ok {
			t.Errorf("key %q survived InvalidateAll", k)
		}
	}
}

func TestCacheKeys(t *testing.T) {
	if got := TaxonomyKey(""); got != "taxonomy:all" {
		t.Errorf("TaxonomyKey(\"\") = %q", got)
	}
	if got := TaxonomyKey("news"); got != "taxonomy:news" {
		t.Errorf("TaxonomyKey(\"news\") = %q", got)
	}
	if got := ListKey("lab_exercise"); got != "list:lab_exercise" {
		t.Errorf("ListKey = %q", got)
	}
}
