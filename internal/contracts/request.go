package contracts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ScreeningRequest holds input parameters for one screening pass
// ⭐ SSOT: 스크리닝 요청 파라미터는 이 타입으로만 전달
type ScreeningRequest struct {
	MarketSegment       string   `json:"market_segment"`
	MinScore            float64  `json:"min_score"`   // 0~100
	MaxResults          int      `json:"max_results"` // top-N cap
	IncludeESG          bool     `json:"include_esg"`
	IncludeRiskAnalysis bool     `json:"include_risk_analysis"`
	Sectors             []string `json:"sectors,omitempty"`
	UseRealData         bool     `json:"use_real_data"`
	IncludePortfolio    bool     `json:"include_portfolio"`
}

// ErrInvalidRequest is returned for out-of-range request parameters.
var ErrInvalidRequest = errors.New("invalid screening request")

// DefaultScreeningRequest returns the defaults of the original tool.
func DefaultScreeningRequest() ScreeningRequest {
	return ScreeningRequest{
		MarketSegment:       "KOSPI",
		MinScore:            60,
		MaxResults:          10,
		IncludeESG:          true,
		IncludeRiskAnalysis: true,
		IncludePortfolio:    true,
	}
}

// Validate checks parameter ranges.
func (r *ScreeningRequest) Validate() error {
	if r.MinScore < 0 || r.MinScore > 100 {
		return fmt.Errorf("%w: min_score must be in [0,100], got %.1f", ErrInvalidRequest, r.MinScore)
	}
	if r.MaxResults <= 0 {
		return fmt.Errorf("%w: max_results must be > 0, got %d", ErrInvalidRequest, r.MaxResults)
	}
	switch r.MarketSegment {
	case "KOSPI", "KOSDAQ", "ALL":
	default:
		return fmt.Errorf("%w: market_segment must be KOSPI, KOSDAQ or ALL, got %q", ErrInvalidRequest, r.MarketSegment)
	}
	return nil
}

// CacheKey derives a stable cache key from the request parameters.
// 섹터 목록은 정렬해서 순서와 무관하게 동일 키가 나온다.
func (r *ScreeningRequest) CacheKey() string {
	sectors := append([]string(nil), r.Sectors...)
	sort.Strings(sectors)

	return fmt.Sprintf("screen:%s:%.1f:%d:%t:%t:%t:%t:%s",
		r.MarketSegment, r.MinScore, r.MaxResults,
		r.IncludeESG, r.IncludeRiskAnalysis, r.IncludePortfolio,
		r.UseRealData, strings.Join(sectors, ","))
}
