package geo

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultLookupURL is the IP-geolocation document fetched for coordinates.
const DefaultLookupURL = "https://ipapi.co/json/"

// Config holds the static fallback coordinates. They are used whenever the
// external lookup fails or returns an incomplete document.
type Config struct {
	// Latitude is the fallback latitude.
	Latitude float64 `mapstructure:"latitude" default:"0.0"`
	// Longitude is the fallback longitude.
	Longitude float64 `mapstructure:"longitude" default:"0.0"`
}

// lookupResponse models the subset of the ipapi.co document we read.
// Pointers distinguish missing fields from zero coordinates.
type lookupResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      string   `json:"city"`
	Region    string   `json:"region"`
	Country   string   `json:"country_name"`
}

// Resolver performs a best-effort coordinate lookup. Country and state
// names never come from the lookup; they must match pre-existing catalog
// entities byte for byte, so they always come from configuration.
type Resolver struct {
	http     *resty.Client
	lookup   string
	fallback Config
	logger   *zap.Logger
}

// NewResolver creates a Resolver with the given fallback coordinates.
func NewResolver(cfg Config, logger *zap.Logger) *Resolver {
	return &Resolver{
		http:     resty.New().SetTimeout(10 * time.Second),
		lookup:   DefaultLookupURL,
		fallback: cfg,
		logger:   logger,
	}
}

// WithLookupURL overrides the geolocation endpoint. Used by tests.
func (r *Resolver) WithLookupURL(url string) *Resolver {
	r.lookup = url
	return r
}

// Coordinates returns the detected latitude/longitude, falling back to the
// configured static coordinates on any network failure or missing field.
// It never fails.
func (r *Resolver) Coordinates(ctx context.Context) (lat, lon float64) {
	var doc lookupResponse
	resp, err := r.http.R().
		SetContext(ctx).
		SetResult(&doc).
		Get(r.lookup)
	if err != nil || !resp.IsSuccess() || doc.Latitude == nil || doc.Longitude == nil {
		r.logger.Warn("location lookup unavailable, using configured coordinates",
			zap.Float64("latitude", r.fallback.Latitude),
			zap.Float64("longitude", r.fallback.Longitude),
			zap.Error(err))
		return r.fallback.Latitude, r.fallback.Longitude
	}

	r.logger.Info("location detected",
		zap.String("city", doc.City),
		zap.String("region", doc.Region),
		zap.String("country", doc.Country),
		zap.Float64("latitude", *doc.Latitude),
		zap.Float64("longitude", *doc.Longitude))
	return *doc.Latitude, *doc.Longitude
}
