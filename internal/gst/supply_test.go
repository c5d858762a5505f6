package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"onebill/internal/gst"
)

func TestResolvePlaceOfSupply_GSTINTier(t *testing.T) {
	t.Run("same prefix overrides state names", func(t *testing.T) {
		got := gst.ResolvePlaceOfSupply(gst.SupplyParties{
			BusinessGSTIN: "27AAAAA0000A1Z5",
			ClientGSTIN:   "27BBBBB1111B1Z5",
			BusinessState: "Karnataka",
			ClientState:   "Delhi",
		})
		assert.True(t, got.IsIntraState)
		assert.Equal(t, "Maharashtra", got.PlaceOfSupply)
		assert.Equal(t, "27", got.PlaceOfSupplyCode)
		assert.Equal(t, "Maharashtra", got.BusinessStateName)
		assert.Equal(t, "Maharashtra", got.ClientStateName)
	})

	t.Run("different prefixes", func(t *testing.T) {
		got := gst.ResolvePlaceOfSupply(gst.SupplyParties{
			BusinessGSTIN: "27AAAAA0000A1Z5",
			ClientGSTIN:   "29BBBBB1111B1Z5",
			BusinessState: "Maharashtra",
			ClientState:   "Maharashtra",
		})
		assert.False(t, got.IsIntraState)
		assert.Equal(t, "Karnataka", got.PlaceOfSupply)
		assert.Equal(t, "29", got.PlaceOfSupplyCode)
	})

	t.Run("unregistered client code falls back to state text", func(t *testing.T) {
		got := gst.ResolvePlaceOfSupply(gst.SupplyParties{
			BusinessGSTIN: "27AAAAA0000A1Z5",
			ClientGSTIN:   "99BBBBB1111B1Z5",
			ClientState:   "Somewhere",
		})
		assert.False(t, got.IsIntraState)
		assert.Equal(t, "Somewhere", got.PlaceOfSupply)
		assert.Equal(t, "99", got.PlaceOfSupplyCode)
	})

	t.Run("unregistered client code without state text", func(t *testing.T) {
		got := gst.ResolvePlaceOfSupply(gst.SupplyParties{
			BusinessGSTIN: "27AAAAA0000A1Z5",
			ClientGSTIN:   "99BBBBB1111B1Z5",
		})
		assert.Equal(t, gst.UnknownPlace, got.PlaceOfSupply)
	})
}

func TestResolvePlaceOfSupply_NameTier(t *testing.T) {
	tests := []struct {
		name      string
		parties   gst.SupplyParties
		wantIntra bool
		wantPlace string
	}{
		{
			name:      "case insensitive match",
			parties:   gst.SupplyParties{BusinessState: "Karnataka", ClientState: "karnataka"},
			wantIntra: true,
			wantPlace: "karnataka",
		},
		{
			name:      "different states",
			parties:   gst.SupplyParties{BusinessState: "Karnataka", ClientState: "Kerala"},
			wantIntra: false,
			wantPlace: "Kerala",
		},
		{
			name:      "missing client state defaults intra",
			parties:   gst.SupplyParties{BusinessState: "Karnataka"},
			wantIntra: true,
			wantPlace: gst.UnknownPlace,
		},
		{
			name:      "only one GSTIN present",
			parties:   gst.SupplyParties{BusinessGSTIN: "27AAAAA0000A1Z5", BusinessState: "Maharashtra", ClientState: "Goa"},
			wantIntra: false,
			wantPlace: "Goa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gst.ResolvePlaceOfSupply(tt.parties)
			assert.Equal(t, tt.wantIntra, got.IsIntraState)
			assert.Equal(t, tt.wantPlace, got.PlaceOfSupply)
			assert.Empty(t, got.PlaceOfSupplyCode)
			assert.Equal(t, tt.parties.BusinessState, got.BusinessStateName)
			assert.Equal(t, tt.parties.ClientState, got.ClientStateName)
		})
	}
}

func TestIsIntraState(t *testing.T) {
	assert.True(t, gst.IsIntraState("", ""))
	assert.True(t, gst.IsIntraState("Goa", ""))
	assert.True(t, gst.IsIntraState("GOA", "goa"))
	assert.False(t, gst.IsIntraState("Goa", "Kerala"))
}
