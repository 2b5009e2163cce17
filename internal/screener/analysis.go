package screener

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/buffett/backend/internal/contracts"
)

// ErrUnknownSymbol is returned when the requested symbol is not in the
// screening universe.
var ErrUnknownSymbol = errors.New("symbol not in universe")

// AnalyzeStock runs the full scoring pipeline for one symbol.
// 유니버스 전체가 필요하다 — 시총 백분위와 업종 평균이 상대 평가라서.
func (s *Screener) AnalyzeStock(ctx context.Context, symbol string, useRealData bool) (*contracts.SingleStockAnalysis, error) {
	req := contracts.DefaultScreeningRequest()
	req.UseRealData = useRealData

	stocks, err := s.fetchUniverse(ctx, &req)
	if err != nil {
		return nil, err
	}

	var target *contracts.StockRecord
	for i := range stocks {
		if stocks[i].Symbol == symbol {
			target = &stocks[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	s.engine.ScoreAll(target, stocks)

	analysis := &contracts.SingleStockAnalysis{}

	esgAssessment, err := s.esg.Analyze(ctx, target.Symbol, target.Sector)
	if err != nil {
		target.ESGScore = esgScoreDefault
	} else {
		target.ESGScore = esgAssessment.OverallScore
		analysis.ESG = esgAssessment
	}

	riskAssessment, err := s.risk.Analyze(ctx, target.Symbol)
	if err != nil {
		target.RiskScore = riskScoreDefault
	} else {
		target.RiskScore = riskScoreFor(riskAssessment.RiskGrade)
		analysis.Risk = riskAssessment
	}

	s.compositor.Compose(target, true, true)
	analysis.Stock = *target

	s.logger.WithFields(map[string]interface{}{
		"symbol":      symbol,
		"total_score": target.TotalScore,
	}).Debug("Single stock analysis completed")

	return analysis, nil
}
