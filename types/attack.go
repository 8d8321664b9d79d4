package types

import "strings"

// UnknownCategory replaces missing categorical values so no record is dropped from a grouping.
const UnknownCategory = "Unknown"

// Column names a field of the source dataset by its CSV header.
type Column string

const (
	ColumnEventID       Column = "eventid"
	ColumnDate          Column = "date"
	ColumnCity          Column = "city"
	ColumnCountry       Column = "country_txt"
	ColumnLatitude      Column = "latitude"
	ColumnLongitude     Column = "longitude"
	ColumnTargetType    Column = "targtype1_txt"
	ColumnTargetSubtype Column = "targsubtype1_txt"
	ColumnWeaponType    Column = "weaptype1_txt"
	ColumnWeaponSubtype Column = "weapsubtype1_txt"
	ColumnCasualties    Column = "ncasualities"
	ColumnCitation      Column = "scite1"
)

// AttackRecord is one row of the source dataset.
// Optional numeric fields are nil when the source cell was empty.
type AttackRecord struct {
	EventID       string   `firestore:"eventid" json:"eventid"`
	Date          string   `firestore:"date" json:"date"`
	City          string   `firestore:"city" json:"city"`
	Country       string   `firestore:"country_txt" json:"country"`
	Latitude      *float64 `firestore:"latitude" json:"latitude"`
	Longitude     *float64 `firestore:"longitude" json:"longitude"`
	TargetType    string   `firestore:"targtype1_txt" json:"targetType"`
	TargetSubtype string   `firestore:"targsubtype1_txt" json:"targetSubtype"`
	WeaponType    string   `firestore:"weaptype1_txt" json:"weaponType"`
	WeaponSubtype string   `firestore:"weapsubtype1_txt" json:"weaponSubtype"`
	Casualties    *int     `firestore:"ncasualities" json:"casualties"`
	Citation      string   `firestore:"scite1" json:"citation"`
}

// Category returns the value of a categorical column, or UnknownCategory when it is blank.
// Non-categorical columns return "".
func (r AttackRecord) Category(col Column) string {
	var v string
	switch col {
	case ColumnEventID:
		v = r.EventID
	case ColumnDate:
		v = r.Date
	case ColumnCity:
		v = r.City
	case ColumnCountry:
		v = r.Country
	case ColumnTargetType:
		v = r.TargetType
	case ColumnTargetSubtype:
		v = r.TargetSubtype
	case ColumnWeaponType:
		v = r.WeaponType
	case ColumnWeaponSubtype:
		v = r.WeaponSubtype
	case ColumnCitation:
		v = r.Citation
	default:
		return ""
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return UnknownCategory
	}
	return v
}

// CasualtyCount returns the casualty count and whether it is usable. Negative
// counts are treated like missing ones whatever the source.
func (r AttackRecord) CasualtyCount() (int, bool) {
	if r.Casualties == nil || *r.Casualties < 0 {
		return 0, false
	}
	return *r.Casualties, true
}

// Coordinates reports the record's position; ok is false unless both are present.
func (r AttackRecord) Coordinates() (lat, long float64, ok bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return 0, 0, false
	}
	return *r.Latitude, *r.Longitude, true
}

// IntPtr and FloatPtr are shorthands for building optional fields.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
