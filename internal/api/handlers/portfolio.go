package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/internal/portfolio"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// PortfolioService computes weights over a set of stocks.
type PortfolioService interface {
	Optimize(stocks []contracts.StockRecord) (*contracts.PortfolioOptimization, error)
}

// PortfolioHandler handles portfolio API endpoints
type PortfolioHandler struct {
	service PortfolioService
	logger  *logger.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(service PortfolioService, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		service: service,
		logger:  log,
	}
}

// optimizeRequest is the POST body for portfolio optimization.
type optimizeRequest struct {
	Stocks []contracts.StockRecord `json:"stocks"`
}

// Optimize computes minimum-variance weights for the given stocks
// POST /api/portfolio/optimize
func (h *PortfolioHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	for _, stock := range req.Stocks {
		if stock.Symbol == "" {
			respondError(w, http.StatusBadRequest, "Every stock needs a symbol")
			return
		}
	}

	result, err := h.service.Optimize(req.Stocks)
	if err != nil {
		if errors.Is(err, portfolio.ErrEmptyPortfolio) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Portfolio optimization failed")
		respondError(w, http.StatusInternalServerError, "Optimization failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}
