package naver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStockHTML = `
<html>
<body>
<div class="trade_compare">
  <a href="/sise/sise_group_detail.naver?type=upjong&no=278">반도체와반도체장비</a>
</div>
<table>
  <tr><th>PER</th><td><em>12.34</em>배</td></tr>
  <tr><th>PBR</th><td><em>1.25</em>배</td></tr>
  <tr><th>배당수익률</th><td><em>2.10</em>%</td></tr>
</table>
</body>
</html>`

func TestParseFundamentals(t *testing.T) {
	got, err := parseFundamentals(sampleStockHTML, "005930")
	require.NoError(t, err)

	assert.Equal(t, "005930", got.Symbol)
	assert.Equal(t, "반도체와반도체장비", got.Sector)
	assert.InDelta(t, 12.34, got.PER, 1e-9)
	assert.InDelta(t, 1.25, got.PBR, 1e-9)
	assert.InDelta(t, 2.10, got.DividendYield, 1e-9)
}

func TestParseFundamentalsNoData(t *testing.T) {
	_, err := parseFundamentals("<html><body><p>점검 중입니다</p></body></html>", "005930")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valuation data")
}
