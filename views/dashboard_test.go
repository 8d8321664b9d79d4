package views

import (
	"testing"

	"go-attackboard/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOptions = Options{
	Title:     "Test Dashboard",
	PageSize:  10,
	MapCenter: [2]float64{5.152149, 46.199616},
	MapZoom:   6,
}

func sampleRecords() []types.AttackRecord {
	return []types.AttackRecord{
		{
			EventID: "201701010001", Date: "2017-01-01", City: "Mogadishu",
			TargetType: "Military", TargetSubtype: "Military Barracks/Base/Headquarters/Checkpost",
			WeaponType: "Explosives", WeaponSubtype: "Vehicle",
			Latitude: types.FloatPtr(2.04), Longitude: types.FloatPtr(45.34),
			Casualties: types.IntPtr(40), Citation: "Source A",
		},
		{
			EventID: "201701020001", Date: "2017-01-02", City: "Kismayo",
			TargetType: "Police", TargetSubtype: "Police Checkpoint",
			WeaponType: "Firearms", WeaponSubtype: "",
			Latitude: types.FloatPtr(-0.35), Longitude: types.FloatPtr(42.54),
			Casualties: types.IntPtr(0), Citation: "Source B",
		},
		{
			EventID: "201701030001", Date: "2017-01-03", City: "Baidoa",
			TargetType: "Military", WeaponType: "Explosives", WeaponSubtype: "Vehicle",
			Casualties: types.IntPtr(8),
		},
		{
			EventID: "201701040001", Date: "2017-01-04", City: "Lamu",
			TargetType: "", WeaponType: "Explosives", WeaponSubtype: "Grenade",
			Latitude: types.FloatPtr(-2.27), Longitude: types.FloatPtr(40.9),
		},
	}
}

func TestBuild(t *testing.T) {
	d := Build(sampleRecords(), testOptions)

	assert.Equal(t, "Test Dashboard", d.Title)
	assert.Equal(t, Summary{TotalCasualties: 48, TotalAttacks: 4, MostUsedWeaponType: "Explosives"}, d.Summary)

	require.Len(t, d.TargetChart.Bars, 3)
	assert.Equal(t, ChartBar{Label: "Military", Casualties: 48, Ratio: 24, Occurrences: 2}, d.TargetChart.Bars[0])

	require.Len(t, d.WeaponChart.Bars, 3)
	assert.Equal(t, "Vehicle", d.WeaponChart.Bars[0].Label)

	assert.Len(t, d.Map.Markers, 3, "record without coordinates has no marker")
	assert.Equal(t, 4, d.Table.Len())
	assert.Zero(t, d.MergedEvents)
}

func TestBuild_Empty(t *testing.T) {
	d := Build(nil, testOptions)

	assert.Equal(t, Summary{}, d.Summary)
	assert.Empty(t, d.TargetChart.Bars)
	assert.Empty(t, d.WeaponChart.Bars)
	assert.NotNil(t, d.Map.Markers)
	assert.Empty(t, d.Map.Markers)
	assert.Len(t, d.Map.Legend, 5)
	assert.Zero(t, d.Table.Len())

	page, err := d.Table.Query(Query{})
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Zero(t, page.PageCount)
}

func TestBuild_NegativeCasualtiesExcluded(t *testing.T) {
	records := []types.AttackRecord{
		{TargetType: "Police", Casualties: types.IntPtr(10)},
		{TargetType: "Police", Casualties: types.IntPtr(-7)},
	}

	d := Build(records, testOptions)

	assert.Equal(t, 10, d.Summary.TotalCasualties)
	require.Len(t, d.TargetChart.Bars, 1)
	assert.Equal(t, ChartBar{Label: "Police", Casualties: 10, Ratio: 5, Occurrences: 2}, d.TargetChart.Bars[0])

	rows := d.Table.Rows()
	require.Len(t, rows, 2)
	assert.Nil(t, rows[1].Casualties)
}
