package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCoordinates(t *testing.T) {
	fallback := Config{Latitude: 19.076, Longitude: 72.8777}

	t.Run("uses detected coordinates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"latitude":51.5074,"longitude":-0.1278,"city":"London","region":"England","country_name":"United Kingdom"}`))
		}))
		defer srv.Close()

		r := NewResolver(fallback, zap.NewNop()).WithLookupURL(srv.URL)
		lat, lon := r.Coordinates(context.Background())
		assert.InDelta(t, 51.5074, lat, 0.0001)
		assert.InDelta(t, -0.1278, lon, 0.0001)
	})

	t.Run("falls back when fields are missing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"city":"London"}`))
		}))
		defer srv.Close()

		r := NewResolver(fallback, zap.NewNop()).WithLookupURL(srv.URL)
		lat, lon := r.Coordinates(context.Background())
		assert.Equal(t, fallback.Latitude, lat)
		assert.Equal(t, fallback.Longitude, lon)
	})

	t.Run("falls back on server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		r := NewResolver(fallback, zap.NewNop()).WithLookupURL(srv.URL)
		lat, lon := r.Coordinates(context.Background())
		assert.Equal(t, fallback.Latitude, lat)
		assert.Equal(t, fallback.Longitude, lon)
	})

	t.Run("falls back when endpoint is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // closed on purpose

		r := NewResolver(fallback, zap.NewNop()).WithLookupURL(srv.URL)
		lat, lon := r.Coordinates(context.Background())
		assert.Equal(t, fallback.Latitude, lat)
		assert.Equal(t, fallback.Longitude, lon)
	})
}
