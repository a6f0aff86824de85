package store

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tinyurl.local/internal/app/tinyurl"
)

// Redis keeps one string key per mapping: "<prefix>:<id>" -> url, no TTL.
type Redis struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

var _ tinyurl.MappingStore = (*Redis)(nil)

func NewRedis(client *redis.Client, prefix string, timeout time.Duration) *Redis {
	return &Redis{
		client:  client,
		prefix:  prefix,
		timeout: timeout,
	}
}

func (r *Redis) Name() string { return RedisName }

func (r *Redis) key(id string) string {
	return r.prefix + ":" + id
}

func (r *Redis) Put(ctx context.Context, m tinyurl.Mapping) tinyurl.Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	// 0 = 永不过期，映射一旦写入就不会消失
	if err := r.client.Set(ctx, r.key(m.ID), m.URL, 0).Err(); err != nil {
		return tinyurl.Failed(redisFailure(err))
	}
	return tinyurl.OK("")
}

func (r *Redis) Get(ctx context.Context, id string) tinyurl.Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	url, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return tinyurl.NotFound()
	}
	if err != nil {
		return tinyurl.Failed(redisFailure(err))
	}
	if url == "" {
		return tinyurl.NotFound()
	}
	return tinyurl.OK(url)
}

func (r *Redis) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.client.Ping(ctx).Err(); err != nil {
		return redisFailure(err)
	}
	return nil
}

// Server-side replies that mean "try again later" rather than "bad command".
var redisUnavailable = map[string]bool{
	"LOADING":     true,
	"READONLY":    true,
	"MASTERDOWN":  true,
	"CLUSTERDOWN": true,
	"BUSY":        true,
	"TRYAGAIN":    true,
}

// redisFailure maps a reply error to its leading word (WRONGTYPE, NOAUTH, ...)
// and everything that never got a reply to a connection-level failure.
func redisFailure(err error) *tinyurl.Failure {
	if f, ok := contextFailure(RedisName, err); ok {
		return f
	}

	var replyErr redis.Error
	if errors.As(err, &replyErr) {
		msg := replyErr.Error()
		name, rest, found := strings.Cut(msg, " ")
		if !found {
			rest = msg
		}
		code := http.StatusBadRequest
		if redisUnavailable[name] {
			code = http.StatusServiceUnavailable
		}
		return &tinyurl.Failure{Store: RedisName, Code: code, Name: name, Message: rest}
	}

	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		return &tinyurl.Failure{Store: RedisName, Code: http.StatusGatewayTimeout, Name: "Timeout", Message: err.Error()}
	case errors.Is(err, redis.ErrClosed):
		return &tinyurl.Failure{Store: RedisName, Code: http.StatusServiceUnavailable, Name: "ClientClosed", Message: err.Error()}
	default:
		return &tinyurl.Failure{Store: RedisName, Code: http.StatusServiceUnavailable, Name: "ConnectionError", Message: err.Error()}
	}
}
