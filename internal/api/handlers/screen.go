package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/internal/screener"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// ScreeningService runs the screening pipeline.
type ScreeningService interface {
	Screen(ctx context.Context, req *contracts.ScreeningRequest) (*contracts.ScreeningResult, error)
	AnalyzeStock(ctx context.Context, symbol string, useRealData bool) (*contracts.SingleStockAnalysis, error)
}

// RunReader loads persisted screening runs.
type RunReader interface {
	RecentRuns(ctx context.Context, segment string, limit int) ([]contracts.ScreeningResult, error)
}

// ScreenHandler handles screening API endpoints
// ⭐ SSOT: 스크리닝 API 핸들러는 이 구조체에서만
type ScreenHandler struct {
	service ScreeningService
	runs    RunReader // nil이면 이력 조회 비활성
	logger  *logger.Logger
}

// NewScreenHandler creates a new screening handler
func NewScreenHandler(service ScreeningService, runs RunReader, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		service: service,
		runs:    runs,
		logger:  log,
	}
}

// Screen runs a screening pass
// POST /api/screen
// 본문이 비어 있으면 기본 파라미터로 실행. 보낸 필드만 기본값을 덮어쓴다.
func (h *ScreenHandler) Screen(w http.ResponseWriter, r *http.Request) {
	req := contracts.DefaultScreeningRequest()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Screen(r.Context(), &req)
	if err != nil {
		if errors.Is(err, contracts.ErrInvalidRequest) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Screening failed")
		respondError(w, http.StatusInternalServerError, "Screening failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// Analyze runs the full analysis for one symbol
// GET /api/stocks/{symbol}/analysis?use_real_data=true
func (h *ScreenHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	useRealData, _ := strconv.ParseBool(r.URL.Query().Get("use_real_data"))

	analysis, err := h.service.AnalyzeStock(r.Context(), symbol, useRealData)
	if err != nil {
		if errors.Is(err, screener.ErrUnknownSymbol) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.WithError(err).WithField("symbol", symbol).Error("Stock analysis failed")
		respondError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    analysis,
	})
}

// RecentRuns returns persisted screening results
// GET /api/screen/runs?segment=KOSPI&limit=10
func (h *ScreenHandler) RecentRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		respondError(w, http.StatusServiceUnavailable, "Run history is not configured")
		return
	}

	segment := r.URL.Query().Get("segment")
	if segment == "" {
		segment = "KOSPI"
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	results, err := h.runs.RecentRuns(r.Context(), segment, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load screening runs")
		respondError(w, http.StatusInternalServerError, "Failed to load screening runs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"segment": segment,
			"count":   len(results),
			"runs":    results,
		},
	})
}
