package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCasualtyCount(t *testing.T) {
	tests := []struct {
		name   string
		in     *int
		want   int
		wantOK bool
	}{
		{"missing", nil, 0, false},
		{"zero", IntPtr(0), 0, true},
		{"positive", IntPtr(17), 17, true},
		{"negative", IntPtr(-7), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := AttackRecord{Casualties: tt.in}.CasualtyCount()
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestCategory_Unknown(t *testing.T) {
	r := AttackRecord{City: "  ", TargetType: "Police"}
	assert.Equal(t, UnknownCategory, r.Category(ColumnCity))
	assert.Equal(t, "Police", r.Category(ColumnTargetType))
	assert.Equal(t, "", r.Category(ColumnCasualties))
}
