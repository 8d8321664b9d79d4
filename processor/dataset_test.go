package processor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go-attackboard/config"
	"go-attackboard/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const csvBody = `eventid,date,city,latitude,longitude,targtype1_txt,targsubtype1_txt,weaptype1_txt,weapsubtype1_txt,ncasualities,scite1
1,2018-01-01,Mogadishu,2.04,45.34,Military,Checkpoint,Explosives,Vehicle,12,a
1,2018-01-01,Mogadishu,2.04,45.34,Military,Checkpoint,Explosives,Vehicle,3,a
2,2018-01-05,Afgooye,,,Police,,Firearms,,,b
`

func testConfig(t *testing.T, body string) config.AttackboardConfig {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attacks.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg := &config.Config{}
	cfg.Attackboard.Source.Path = path
	config.ApplyDefaults(cfg)
	return cfg.Attackboard
}

func TestLoadDashboard(t *testing.T) {
	cfg := testConfig(t, csvBody)

	d, err := LoadDashboard(context.Background(), cfg, zap.NewNop(), metrics.New())
	require.NoError(t, err)

	assert.Equal(t, 3, d.Summary.TotalAttacks)
	assert.Equal(t, 15, d.Summary.TotalCasualties)
	assert.Equal(t, "Explosives", d.Summary.MostUsedWeaponType)
	require.Len(t, d.Map.Markers, 1)
	assert.Equal(t, 15, d.Map.Markers[0].Casualties)
	assert.Equal(t, "#ffb84d", d.Map.Markers[0].Color)
	assert.Equal(t, 1, d.MergedEvents)
	assert.Equal(t, cfg.Dashboard.Title, d.Title)
}

func TestLoadDashboard_HeaderOnly(t *testing.T) {
	cfg := testConfig(t, "eventid,date,ncasualities\n")

	d, err := LoadDashboard(context.Background(), cfg, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Zero(t, d.Summary.TotalAttacks)
	assert.Zero(t, d.Summary.TotalCasualties)
	assert.Empty(t, d.Summary.MostUsedWeaponType)
	assert.Empty(t, d.Map.Markers)
}

func TestLoadDashboard_SourceFailure(t *testing.T) {
	cfg := testConfig(t, csvBody)
	cfg.Source.Path = filepath.Join(t.TempDir(), "gone.csv")

	_, err := LoadDashboard(context.Background(), cfg, zap.NewNop(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading attack records")
}

func TestLoadRecords_GeocodeWithoutKey(t *testing.T) {
	cfg := testConfig(t, csvBody)
	cfg.Geocode.Enabled = true
	cfg.Geocode.APIKey = ""

	records, err := LoadRecords(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
