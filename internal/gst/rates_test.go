package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onebill/internal/gst"
)

func TestGSTRates(t *testing.T) {
	rates := gst.GSTRates()
	require.Len(t, rates, 5)
	assert.Equal(t, "28", rates[4].String())

	assert.True(t, gst.IsStandardRate(d("18.00")))
	assert.False(t, gst.IsStandardRate(d("3")))
}

func TestCommonHSNSAC(t *testing.T) {
	entries := gst.CommonHSNSAC()
	require.Len(t, entries, 22)

	byCode := map[string]gst.HSNEntry{}
	for _, e := range entries {
		assert.True(t, gst.IsStandardRate(e.DefaultRate), e.Code)
		assert.Contains(t, []string{gst.SupplyGoods, gst.SupplyService}, e.Type)
		byCode[e.Code] = e
	}
	assert.Equal(t, "Mobile phones", byCode["8517"].Description)
	assert.True(t, byCode["997212"].DefaultRate.IsZero())
}
