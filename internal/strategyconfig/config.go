package strategyconfig

// Config는 스크리닝 전략(가중치) 설정
// ⭐ SSOT: 종합 점수 가중치는 여기서만 정의
// 버킷 래더 임계값은 동작 동일성을 위해 scoring 패키지의 상수 테이블로 고정.
type Config struct {
	Meta    Meta    `yaml:"meta" json:"meta"`
	Weights Weights `yaml:"weights" json:"weights"`
	Slices  Slices  `yaml:"optional_slices" json:"optional_slices"`
}

// Meta 메타 정보
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// Weights are the base weights of the six criterion scores.
// 합이 1.0이어야 하며, 선택 팩터 추가 후 전체가 다시 정규화된다.
type Weights struct {
	MarketCap     float64 `yaml:"market_cap" json:"market_cap"`
	ROE           float64 `yaml:"roe" json:"roe"`
	Profitability float64 `yaml:"profitability" json:"profitability"`
	Growth        float64 `yaml:"growth" json:"growth"`
	FCFProjection float64 `yaml:"fcf_projection" json:"fcf_projection"`
	Valuation     float64 `yaml:"valuation" json:"valuation"`
}

// Slices are the weight slices added for optional factors.
// Both: ESG와 리스크가 모두 켜진 경우 각각에 더해지는 조각.
// Single: 둘 중 하나만 켜진 경우 그 팩터에 더해지는 조각.
type Slices struct {
	Both   float64 `yaml:"both" json:"both"`
	Single float64 `yaml:"single" json:"single"`
}

// Sum returns the base weight total.
func (w Weights) Sum() float64 {
	return w.MarketCap + w.ROE + w.Profitability + w.Growth + w.FCFProjection + w.Valuation
}

// Default returns the weight set used when no YAML file is configured.
// 원 시스템의 두 리비전 중 simple 버전 세트를 채택 (DESIGN.md 결정 1).
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "buffett_8step_v1",
			Version:    "1.0",
		},
		Weights: Weights{
			MarketCap:     0.15,
			ROE:           0.20,
			Profitability: 0.20,
			Growth:        0.15,
			FCFProjection: 0.20,
			Valuation:     0.10,
		},
		Slices: Slices{
			Both:   0.05,
			Single: 0.10,
		},
	}
}
