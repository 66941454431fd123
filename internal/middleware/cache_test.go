package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/saniya-gs/health-recommendation-system/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`[{"id":"q1"}]`))
    require.NoError(t, err)

    status, gotHdr, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
    assert.Equal(t, `[{"id":"q1"}]`, string(body))
}

func TestDecodePayloadRejectsShortOrCorrupt(t *testing.T) {
    _, _, _, ok := decodePayload([]byte{0, 1})
    assert.False(t, ok)
    _, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0})
    assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/api/mental-health/questions?lang=en", nil)
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/api/mental-health/questions")

    withQuery := cacheKeyFrom(config.CacheConfig{Prefix: "p", KeyStrategy: "route_query"}, c)
    routeOnly := cacheKeyFrom(config.CacheConfig{Prefix: "p", KeyStrategy: "route"}, c)
    assert.NotEqual(t, withQuery, routeOnly)
    assert.Regexp(t, `^p:[0-9a-f]{40}$`, withQuery)
}

func TestNewRedisCacheDisabledPassesThrough(t *testing.T) {
    e := echo.New()
    rec := httptest.NewRecorder()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
    h := NewRedisCache(config.CacheConfig{Enabled: true}, nil)(func(c echo.Context) error {
        return c.String(http.StatusOK, "ok")
    })
    require.NoError(t, h(c))
    assert.Empty(t, rec.Header().Get("X-Cache"))
    assert.Equal(t, "ok", rec.Body.String())
}
