package universe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/buffett/backend/pkg/logger"
)

func TestMockUniverseShape(t *testing.T) {
	p := NewMockProvider(logger.NewNop())

	stocks, err := p.Universe(context.Background(), "KOSPI", nil)
	require.NoError(t, err)
	require.Len(t, stocks, 15)

	for _, s := range stocks {
		assert.NotEmpty(t, s.Symbol)
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Sector)
		assert.Greater(t, s.MarketCap, 0.0)
		assert.Greater(t, s.CurrentPrice, 0.0)
		assert.Greater(t, s.ROE3YAvg, 0.0)
		assert.Greater(t, s.Revenue, 0.0)
		assert.Greater(t, s.FCFProjection5YSum, 0.0)
		assert.Greater(t, s.PER, 0.0)
		assert.Greater(t, s.PBR, 0.0)
	}
}

func TestMockUniverseDeterministic(t *testing.T) {
	p := NewMockProvider(logger.NewNop())

	first, err := p.Universe(context.Background(), "KOSPI", nil)
	require.NoError(t, err)
	second, err := p.Universe(context.Background(), "KOSPI", nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMockUniverseSectorFilter(t *testing.T) {
	p := NewMockProvider(logger.NewNop())

	stocks, err := p.Universe(context.Background(), "KOSPI", []string{"반도체", "인터넷"})
	require.NoError(t, err)
	require.Len(t, stocks, 4)

	for _, s := range stocks {
		assert.Contains(t, []string{"반도체", "인터넷"}, s.Sector)
	}
}

func TestMockUniverseUnknownSectorIsEmpty(t *testing.T) {
	p := NewMockProvider(logger.NewNop())

	stocks, err := p.Universe(context.Background(), "KOSPI", []string{"없는업종"})
	require.NoError(t, err)
	assert.Empty(t, stocks)
}

func TestMockFinancialsScalesWithMarketCap(t *testing.T) {
	small := mockFinancials("005930", 1_000_000, 1_000_000)
	large := mockFinancials("005930", 100_000_000, 1_000_000)

	// 같은 시드 → 같은 비율, 시총에 비례하는 절대값
	assert.InDelta(t, small.Revenue*100, large.Revenue, 1e-3)
	assert.InDelta(t, small.NetProfitMargin, large.NetProfitMargin, 1e-9)
	assert.Equal(t, small.ROE3YAvg, large.ROE3YAvg)
}
