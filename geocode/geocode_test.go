package geocode

import (
	"context"
	"errors"
	"testing"

	"go-attackboard/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

type fakeGeocoder struct {
	calls   map[string]int
	results map[string]maps.LatLng
}

func (f *fakeGeocoder) Geocode(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	f.calls[r.Address]++
	loc, ok := f.results[r.Address]
	if r.Address == "Baidoa, Somalia" {
		return nil, errors.New("quota exceeded")
	}
	if !ok {
		return nil, nil
	}
	res := maps.GeocodingResult{FormattedAddress: r.Address}
	res.Geometry.Location = loc
	return []maps.GeocodingResult{res}, nil
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "Mogadishu, Somalia", Query(types.AttackRecord{City: "Mogadishu", Country: "Somalia"}))
	assert.Equal(t, "Lamu", Query(types.AttackRecord{City: " Lamu "}))
	assert.Equal(t, "", Query(types.AttackRecord{City: "Unknown", Country: "Kenya"}))
	assert.Equal(t, "", Query(types.AttackRecord{}))
}

func TestBackfill(t *testing.T) {
	fake := &fakeGeocoder{
		calls: map[string]int{},
		results: map[string]maps.LatLng{
			"Mogadishu, Somalia": {Lat: 2.0469, Lng: 45.3182},
		},
	}
	records := []types.AttackRecord{
		{EventID: "1", City: "Mogadishu", Country: "Somalia"},
		{EventID: "2", City: "Mogadishu", Country: "Somalia"},
		{EventID: "3", City: "Baidoa", Country: "Somalia"},
		{EventID: "4", City: "Nowhere", Country: "Somalia"},
		{EventID: "5", City: "Kismayo", Latitude: types.FloatPtr(-0.35), Longitude: types.FloatPtr(42.54)},
		{EventID: "6"},
	}

	out, filled := Backfill(context.Background(), fake, records, zap.NewNop())

	assert.Equal(t, 2, filled)
	assert.Equal(t, 1, fake.calls["Mogadishu, Somalia"], "cached per query")
	assert.NotContains(t, fake.calls, "Kismayo")

	lat, long, ok := out[1].Coordinates()
	require.True(t, ok)
	assert.InDelta(t, 2.0469, lat, 1e-9)
	assert.InDelta(t, 45.3182, long, 1e-9)

	_, _, ok = out[2].Coordinates()
	assert.False(t, ok, "lookup error leaves row unplaced")
	_, _, ok = out[3].Coordinates()
	assert.False(t, ok)

	_, _, ok = records[0].Coordinates()
	assert.False(t, ok, "input is not modified")
}
