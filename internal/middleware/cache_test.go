package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/food-donation-platform/internal/config"
)

func cacheContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/donations/available")
	return c
}

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`[{"id":1,"title":"Veg Biryani"}]`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decode rejected its own encoding")
	}
	if status != http.StatusOK {
		t.Fatalf("status %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Fatalf("header lost: %v", gotHdr)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body %q", gotBody)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 8)} {
		if _, _, _, ok := decodePayload(bs); ok && len(bs) < 8 {
			t.Fatalf("garbage %v accepted", bs)
		}
	}
	// Header length pointing past the buffer must not panic.
	bs, _ := encodePayload(200, http.Header{}, nil)
	bs[7] = 0xFF
	if _, _, _, ok := decodePayload(bs); ok {
		t.Fatal("oversized header length accepted")
	}
}

func TestCaptureWriterSkipsOversizedBodies(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 16}

	// Within the limit: the full body is buffered and storable.
	if _, err := cw.Write([]byte("0123456789")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !cw.cacheable() || cw.buf.String() != "0123456789" {
		t.Fatalf("small body not captured: cacheable=%v buf=%q", cw.cacheable(), cw.buf.String())
	}

	// Crossing the limit: the response must become uncacheable and the
	// partial buffer must be dropped — a hit served later from a truncated
	// body would be corrupt.
	if _, err := cw.Write([]byte("0123456789")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if cw.cacheable() {
		t.Fatal("oversized body still marked cacheable")
	}
	if cw.buf.Len() != 0 {
		t.Fatalf("truncated buffer retained: %q", cw.buf.String())
	}
	if cw.size != 20 {
		t.Fatalf("size %d, want full written total 20", cw.size)
	}

	// The client still received everything regardless of caching.
	if rec.Body.String() != "01234567890123456789" {
		t.Fatalf("client body %q", rec.Body.String())
	}
}

func TestCaptureWriterUnlimitedBuffersAll(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 0}
	for i := 0; i < 100; i++ {
		if _, err := cw.Write([]byte("chunk-")); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if !cw.cacheable() || cw.buf.Len() != 600 {
		t.Fatalf("unlimited writer dropped data: cacheable=%v len=%d", cw.cacheable(), cw.buf.Len())
	}
}

func TestCacheKeyVariesWithQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	all := cacheKeyFrom(cfg, cacheContext("/v1/donations/available"))
	veg := cacheKeyFrom(cfg, cacheContext("/v1/donations/available?type=Veg"))
	vegAgain := cacheKeyFrom(cfg, cacheContext("/v1/donations/available?type=Veg"))

	if all == veg {
		t.Fatal("different queries share one cache entry")
	}
	if veg != vegAgain {
		t.Fatal("identical requests produce different keys")
	}

	// With the route-only strategy the query must not matter.
	cfg.KeyStrategy = "route"
	if cacheKeyFrom(cfg, cacheContext("/v1/donations/available")) !=
		cacheKeyFrom(cfg, cacheContext("/v1/donations/available?type=Veg")) {
		t.Fatal("route strategy unexpectedly varies with query")
	}
}

func TestBuildRateKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	c := cacheContext("/v1/donations/available")
	c.Set("user_id", float64(42))

	if got := buildRateKey(cfg, c); got != "rl:user:42" {
		t.Fatalf("user key %q", got)
	}

	cfg.KeyStrategy = "route"
	if got := buildRateKey(cfg, c); got != "rl:route:GET /v1/donations/available" {
		t.Fatalf("route key %q", got)
	}

	// Unauthenticated callers collapse into a shared anon bucket.
	anon := cacheContext("/v1/donations/available")
	cfg.KeyStrategy = "user"
	if got := buildRateKey(cfg, anon); got != "rl:user:anon" {
		t.Fatalf("anon key %q", got)
	}
}
