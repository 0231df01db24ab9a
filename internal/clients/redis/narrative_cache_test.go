package redis

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestNewNarrativeCacheRequiresAddr(t *testing.T) {
	if _, err := NewNarrativeCache(testLogger(t), Config{}); err == nil {
		t.Fatalf("expected error without an address")
	}
	if _, err := NewNarrativeCache(nil, Config{Addr: "127.0.0.1:6379"}); err == nil {
		t.Fatalf("expected error without a logger")
	}
}

func TestNewNarrativeCacheFailsWhenUnreachable(t *testing.T) {
	_, err := NewNarrativeCache(testLogger(t), Config{Addr: "127.0.0.1:1"})
	if err == nil || !strings.Contains(err.Error(), "redis ping") {
		t.Fatalf("expected ping failure, got %v", err)
	}
}

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestNarrativeCacheRoundTripIntegration(t *testing.T) {
	addr := strings.TrimSpace(os.Getenv("REDIS_TEST_ADDR"))
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	cache, err := NewNarrativeCache(testLogger(t), Config{Addr: addr, Prefix: "lifetwin-test:" + uuid.NewString()})
	if err != nil {
		t.Fatalf("NewNarrativeCache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	ctx := context.Background()
	if _, ok, err := cache.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}
	if err := cache.Set(ctx, "k", []byte(`{"summary_text":"hi"}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := cache.Get(ctx, "k")
	if err != nil || !ok || string(got) != `{"summary_text":"hi"}` {
		t.Fatalf("hit: %q ok=%v err=%v", got, ok, err)
	}
}
