package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		def  float64
		want float64
	}{
		{"nil uses default", nil, 1.5, 1.5},
		{"float64 passthrough", 12.3, 0, 12.3},
		{"int", 42, 0, 42},
		{"int64", int64(7), 0, 7},
		{"plain string", "12.5", 0, 12.5},
		{"string with commas", "1,234,567", 0, 1234567},
		{"percent string", "12.3%", 0, 12.3},
		{"empty string uses default", "", 3, 3},
		{"dash placeholder uses default", "-", 3, 3},
		{"garbage uses default", "n/a", 0, 0},
		{"unknown type uses default", struct{}{}, 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFloat(tt.in, tt.def))
		})
	}
}

func TestScreeningRequest_Validate(t *testing.T) {
	req := DefaultScreeningRequest()
	assert.NoError(t, req.Validate())

	bad := DefaultScreeningRequest()
	bad.MinScore = 120
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRequest)

	bad = DefaultScreeningRequest()
	bad.MaxResults = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRequest)

	bad = DefaultScreeningRequest()
	bad.MarketSegment = "NYSE"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRequest)
}

func TestScreeningRequest_CacheKey(t *testing.T) {
	a := DefaultScreeningRequest()
	a.Sectors = []string{"반도체", "바이오"}

	b := DefaultScreeningRequest()
	b.Sectors = []string{"바이오", "반도체"}

	// 섹터 순서와 무관하게 동일 키
	assert.Equal(t, a.CacheKey(), b.CacheKey())

	c := DefaultScreeningRequest()
	c.MinScore = 70
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
}

func TestPortfolioOptimization_TotalWeight(t *testing.T) {
	p := PortfolioOptimization{
		Weights: map[string]float64{"005930": 0.6, "000660": 0.4},
	}
	assert.InDelta(t, 1.0, p.TotalWeight(), 1e-9)
}
