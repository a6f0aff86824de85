package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyurl.local/internal/app/tinyurl"
	"tinyurl.local/internal/platform/kv"
)

// replyErr stands in for a server error reply.
type replyErr string

func (e replyErr) Error() string { return string(e) }
func (replyErr) RedisError()     {}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRedisFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantName string
		wantMsg  string
	}{
		{"wrong type", replyErr("WRONGTYPE Operation against a key holding the wrong kind of value"), http.StatusBadRequest, "WRONGTYPE", "Operation against a key holding the wrong kind of value"},
		{"auth", replyErr("NOAUTH Authentication required."), http.StatusBadRequest, "NOAUTH", "Authentication required."},
		{"loading", replyErr("LOADING Redis is loading the dataset in memory"), http.StatusServiceUnavailable, "LOADING", "Redis is loading the dataset in memory"},
		{"readonly", replyErr("READONLY You can't write against a read only replica."), http.StatusServiceUnavailable, "READONLY", "You can't write against a read only replica."},
		{"single word", replyErr("ERR"), http.StatusBadRequest, "ERR", "ERR"},
		{"wrapped reply", fmt.Errorf("set: %w", replyErr("OOM command not allowed")), http.StatusBadRequest, "OOM", "command not allowed"},
		{"net timeout", timeoutErr{}, http.StatusGatewayTimeout, "Timeout", "i/o timeout"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "Timeout", context.DeadlineExceeded.Error()},
		{"canceled", context.Canceled, 499, "RequestCanceled", context.Canceled.Error()},
		{"closed", redis.ErrClosed, http.StatusServiceUnavailable, "ClientClosed", redis.ErrClosed.Error()},
		{"refused", errors.New("dial tcp 127.0.0.1:6379: connect: connection refused"), http.StatusServiceUnavailable, "ConnectionError", "dial tcp 127.0.0.1:6379: connect: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := redisFailure(tt.err)
			assert.Equal(t, RedisName, f.Store)
			assert.Equal(t, tt.wantCode, f.Code)
			assert.Equal(t, tt.wantName, f.Name)
			assert.Equal(t, tt.wantMsg, f.Message)
		})
	}
}

func TestRedis_Key(t *testing.T) {
	r := NewRedis(nil, "tinyurl", time.Second)
	assert.Equal(t, "tinyurl:abc", r.key("abc"))
}

func TestRedis_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	client, err := kv.NewRedisClient(addr, os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		t.Skipf("skip: redis not reachable at %s: %v", addr, err)
	}
	defer client.Close()

	ctx := context.Background()
	r := NewRedis(client, "tinyurl_test", time.Second)
	id := tinyurl.NewID()
	t.Cleanup(func() { _ = client.Del(context.Background(), r.key(id)).Err() })

	require.NoError(t, r.Ping(ctx))
	assert.Equal(t, tinyurl.OutcomeNotFound, r.Get(ctx, id).Outcome)

	require.Equal(t, tinyurl.OutcomeOK, r.Put(ctx, tinyurl.Mapping{ID: id, URL: "http://example.com/a"}).Outcome)
	res := r.Get(ctx, id)
	require.Equal(t, tinyurl.OutcomeOK, res.Outcome)
	assert.Equal(t, "http://example.com/a", res.URL)

	ttl, err := client.TTL(ctx, r.key(id)).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl, "mappings never expire")

	// Wrong value type under the key surfaces as a classified failure.
	require.NoError(t, client.Del(ctx, r.key(id)).Err())
	require.NoError(t, client.LPush(ctx, r.key(id), "x").Err())
	res = r.Get(ctx, id)
	require.Equal(t, tinyurl.OutcomeFailure, res.Outcome)
	assert.Equal(t, "WRONGTYPE", res.Failure.Name)
	assert.Equal(t, http.StatusBadRequest, res.Failure.Code)
}
