package geocode

import (
	"context"
	"fmt"
	"strings"

	"go-attackboard/types"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// Geocoder is the subset of *maps.Client used for backfill.
type Geocoder interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewMapsClient creates a Google Maps client from an API key.
func NewMapsClient(apiKey string) (*maps.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
	}
	return maps.NewClient(maps.WithAPIKey(apiKey))
}

// Query is the address string looked up for a record, or "" when the record has no city.
func Query(r types.AttackRecord) string {
	city := strings.TrimSpace(r.City)
	if city == "" || strings.EqualFold(city, types.UnknownCategory) {
		return ""
	}
	if country := strings.TrimSpace(r.Country); country != "" {
		return city + ", " + country
	}
	return city
}

// Backfill returns a copy of records where rows missing coordinates get the
// first geocoding result for their city. Each distinct query is looked up once.
// Lookup failures leave the row without coordinates.
func Backfill(ctx context.Context, client Geocoder, records []types.AttackRecord, logger *zap.Logger) ([]types.AttackRecord, int) {
	type point struct {
		lat, long float64
		ok        bool
	}
	cache := make(map[string]point)
	filled := 0

	out := make([]types.AttackRecord, len(records))
	copy(out, records)

	for i := range out {
		if _, _, ok := out[i].Coordinates(); ok {
			continue
		}
		q := Query(out[i])
		if q == "" {
			continue
		}

		p, seen := cache[q]
		if !seen {
			results, err := client.Geocode(ctx, &maps.GeocodingRequest{Address: q})
			switch {
			case err != nil:
				logger.Warn("Failed to geocode", zap.String("query", q), zap.Error(err))
			case len(results) == 0:
				logger.Debug("No geocode results", zap.String("query", q))
			default:
				loc := results[0].Geometry.Location
				p = point{lat: loc.Lat, long: loc.Lng, ok: true}
			}
			cache[q] = p
		}
		if !p.ok {
			continue
		}

		out[i].Latitude = types.FloatPtr(p.lat)
		out[i].Longitude = types.FloatPtr(p.long)
		filled++
	}

	logger.Info("Geocode backfill finished", zap.Int("filled", filled), zap.Int("lookups", len(cache)))
	return out, filled
}
