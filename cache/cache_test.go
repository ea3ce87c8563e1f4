package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"furniture-catalog/logger"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// closedAddr returns a local address with nothing listening on it.
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func TestNopAlwaysMisses(t *testing.T) {
	var c ProductListCache = Nop{}
	ctx := context.Background()
	c.Set(ctx, 0, []byte(`[]`))
	if _, _, ok := c.Get(ctx); ok {
		t.Error("Nop cache should never hit")
	}
	c.Invalidate(ctx)
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	if _, err := NewRedis(context.Background(), "not a url", time.Minute, logger.Nop()); err == nil {
		t.Error("expected error for malformed redis url")
	}
}

func TestNewRedisFailsWhenUnreachable(t *testing.T) {
	url := "redis://" + closedAddr(t) + "/0"
	if _, err := NewRedis(context.Background(), url, time.Minute, logger.Nop()); err == nil {
		t.Error("expected ping error for unreachable redis")
	}
}

func TestRedisFailuresDegradeToMiss(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rdb := goredis.NewClient(&goredis.Options{
		Addr:       closedAddr(t),
		MaxRetries: -1,
	})
	defer rdb.Close()

	c := NewRedisFromClient(rdb, time.Minute, logger.FromZap(zap.New(core)))
	ctx := context.Background()

	c.Set(ctx, 0, []byte(`[]`))
	_, generation, ok := c.Get(ctx)
	if ok {
		t.Error("expected miss when redis is unreachable")
	}
	if generation >= 0 {
		t.Errorf("expected negative generation on read failure, got %d", generation)
	}
	c.Invalidate(ctx)

	if got := logs.FilterLevelExact(zapcore.WarnLevel).Len(); got != 3 {
		t.Errorf("expected 3 warnings, got %d", got)
	}

	// a failed read must not lead to a write
	c.Set(ctx, generation, []byte(`[]`))
	if got := logs.FilterLevelExact(zapcore.WarnLevel).Len(); got != 3 {
		t.Errorf("expected Set to skip after a failed read, got %d warnings", got)
	}
}

func TestParseGeneration(t *testing.T) {
	cases := []struct {
		in      interface{}
		want    int64
		wantErr bool
	}{
		{nil, 0, false},
		{"", 0, false},
		{"7", 7, false},
		{"seven", 0, true},
		{int64(7), 0, true},
	}
	for _, tc := range cases {
		got, err := parseGeneration(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("%v: unexpected error %v", tc.in, err)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.in, tc.want, got)
		}
	}
}
