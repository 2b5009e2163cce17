package universe

import (
	"context"
	"math"
	"math/rand"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/logger"
	"github.com/wonny/buffett/backend/pkg/seed"
)

// stockPool is the built-in mock universe of major KRX listings.
var stockPool = []struct {
	symbol string
	name   string
	sector string
}{
	{"005930", "삼성전자", "반도체"},
	{"000660", "SK하이닉스", "반도체"},
	{"035420", "NAVER", "인터넷"},
	{"005380", "현대차", "자동차"},
	{"006400", "삼성SDI", "배터리"},
	{"207940", "삼성바이오로직스", "바이오"},
	{"068270", "셀트리온", "바이오"},
	{"035720", "카카오", "인터넷"},
	{"051910", "LG화학", "화학"},
	{"012330", "현대모비스", "자동차부품"},
	{"028260", "삼성물산", "종합상사"},
	{"066570", "LG전자", "가전"},
	{"003550", "LG", "지주회사"},
	{"096770", "SK이노베이션", "정유화학"},
	{"017670", "SK텔레콤", "통신"},
}

// MockProvider generates a deterministic universe per symbol seed
// ⭐ SSOT: mock 시장/재무 데이터 생성은 여기서만
type MockProvider struct {
	logger *logger.Logger
}

// NewMockProvider creates a mock universe provider
func NewMockProvider(log *logger.Logger) *MockProvider {
	return &MockProvider{logger: log}
}

// Universe builds the 15-stock mock universe. 같은 종목은 프로세스와 무관하게
// 항상 같은 데이터를 받는다.
func (p *MockProvider) Universe(_ context.Context, segment string, sectors []string) ([]contracts.StockRecord, error) {
	stocks := make([]contracts.StockRecord, 0, len(stockPool))
	for _, entry := range stockPool {
		stocks = append(stocks, generateStock(entry.symbol, entry.name, entry.sector))
	}

	p.logger.WithFields(map[string]interface{}{
		"segment": segment,
		"count":   len(stocks),
	}).Debug("Generated mock universe")

	return filterSectors(stocks, sectors), nil
}

// mockFinancials derives a deterministic financial profile from real market
// fields. 실데이터 경로에서 재무 보강이 실패했을 때 쓰인다.
func mockFinancials(symbol string, marketCap, shares float64) contracts.FinancialRecord {
	rng := rand.New(rand.NewSource(seed.ForSymbol(symbol)))

	uniform := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}

	roeY3 := uniform(5, 25)
	roeY2 := roeY3 * uniform(0.8, 1.3)
	roeY1 := roeY2 * uniform(0.8, 1.3)

	revenue := marketCap * uniform(0.5, 3.0)
	netIncome := revenue * uniform(0.03, 0.25)
	fcf := netIncome * uniform(0.7, 1.5)

	marketCap3YAgo := marketCap / uniform(1.1, 2.5)
	equity3YAgo := marketCap * 0.6 / uniform(1.0, 2.0)
	bookValue := marketCap * uniform(0.4, 1.2)

	record := contracts.FinancialRecord{
		ROE3YAvg:          roeY1*0.5 + roeY2*0.3 + roeY3*0.2,
		ROEYear1:          roeY1,
		ROEYear2:          roeY2,
		ROEYear3:          roeY3,
		Revenue:           revenue,
		NetIncome:         netIncome,
		NetProfitMargin:   netIncome / revenue * 100,
		FCF:               fcf,
		MarketCapGrowth3Y: (math.Pow(marketCap/marketCap3YAgo, 1.0/3) - 1) * 100,
		EquityGrowth3Y:    (math.Pow(bookValue/equity3YAgo, 1.0/3) - 1) * 100,
		DebtToEquity:      uniform(0.1, 1.5),
	}
	if shares > 0 {
		record.FCFPerShare = fcf / shares
	}

	fcfGrowth := uniform(3, 12)
	projected := 0.0
	for year := 1; year <= 5; year++ {
		projected += fcf * math.Pow(1+fcfGrowth/100, float64(year))
	}
	record.FCFProjection5YSum = projected

	return record
}

// generateStock draws one stock's market and financial profile from its seed.
// 단위: 시가총액은 백만원 (50억~5000억 범위).
func generateStock(symbol, name, sector string) contracts.StockRecord {
	rng := rand.New(rand.NewSource(seed.ForSymbol(symbol)))

	uniform := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}

	marketCap := uniform(5_000_000, 500_000_000)
	currentPrice := uniform(10_000, 80_000)
	shares := marketCap * 1_000_000 / currentPrice

	// 최근 연도에 가중치를 둔 3개년 ROE
	roeY3 := uniform(5, 25)
	roeY2 := roeY3 * uniform(0.8, 1.3)
	roeY1 := roeY2 * uniform(0.8, 1.3)

	revenue := marketCap * uniform(0.5, 3.0)
	netIncome := revenue * uniform(0.03, 0.25)
	fcf := netIncome * uniform(0.7, 1.5)

	marketCap3YAgo := marketCap / uniform(1.1, 2.5)
	equity3YAgo := marketCap * 0.6 / uniform(1.0, 2.0)
	bookValue := marketCap * uniform(0.4, 1.2)

	market := contracts.MarketRecord{
		Symbol:            symbol,
		Name:              name,
		Sector:            sector,
		MarketCap:         marketCap,
		CurrentPrice:      currentPrice,
		SharesOutstanding: shares,
		Volume:            uniform(100_000, 10_000_000),
		PER:               uniform(8, 35),
		PBR:               uniform(0.5, 3.0),
		DividendYield:     uniform(0.5, 5.0),
	}

	financial := contracts.FinancialRecord{
		ROE3YAvg:          roeY1*0.5 + roeY2*0.3 + roeY3*0.2,
		ROEYear1:          roeY1,
		ROEYear2:          roeY2,
		ROEYear3:          roeY3,
		Revenue:           revenue,
		NetIncome:         netIncome,
		NetProfitMargin:   netIncome / revenue * 100,
		FCF:               fcf,
		FCFPerShare:       fcf / shares,
		MarketCapGrowth3Y: (math.Pow(marketCap/marketCap3YAgo, 1.0/3) - 1) * 100,
		EquityGrowth3Y:    (math.Pow(bookValue/equity3YAgo, 1.0/3) - 1) * 100,
		DebtToEquity:      uniform(0.1, 1.5),
	}

	// 5년 FCF 예측: 단순 성장률 복리 합산
	fcfGrowth := uniform(3, 12)
	projected := 0.0
	for year := 1; year <= 5; year++ {
		projected += fcf * math.Pow(1+fcfGrowth/100, float64(year))
	}
	financial.FCFProjection5YSum = projected

	return contracts.Join(market, financial)
}
