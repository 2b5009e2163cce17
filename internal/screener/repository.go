package screener

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/database"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// Repository persists screening runs to PostgreSQL
// ⭐ SSOT: 스크리닝 결과 영속화는 여기서만
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a screening run repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{db: db, logger: log}
}

// SaveRun writes one completed screening run. 결과 전문은 jsonb로 보관.
func (r *Repository) SaveRun(ctx context.Context, req *contracts.ScreeningRequest, result *contracts.ScreeningResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal screening result: %w", err)
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO screening_runs (
			market_segment, min_score, max_results,
			include_esg, include_risk, use_real_data,
			total_analyzed, qualified_count, no_qualifying, partial,
			result, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		req.MarketSegment, req.MinScore, req.MaxResults,
		req.IncludeESG, req.IncludeRiskAnalysis, req.UseRealData,
		result.FilterCriteria.TotalAnalyzed, result.FilterCriteria.QualifiedCount,
		result.NoQualifying, result.Partial,
		payload, result.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("insert screening run: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"segment":   req.MarketSegment,
		"qualified": result.FilterCriteria.QualifiedCount,
	}).Debug("Screening run persisted")

	return nil
}

// PruneRuns deletes persisted runs generated before the cutoff.
func (r *Repository) PruneRuns(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		DELETE FROM screening_runs
		WHERE generated_at < $1`,
		before,
	)
	if err != nil {
		return 0, fmt.Errorf("prune screening runs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RecentRuns loads the latest persisted results for a market segment.
func (r *Repository) RecentRuns(ctx context.Context, segment string, limit int) ([]contracts.ScreeningResult, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT result
		FROM screening_runs
		WHERE market_segment = $1
		ORDER BY generated_at DESC
		LIMIT $2`,
		segment, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query screening runs: %w", err)
	}
	defer rows.Close()

	var results []contracts.ScreeningResult
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan screening run: %w", err)
		}
		var result contracts.ScreeningResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("unmarshal screening run: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
