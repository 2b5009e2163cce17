package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/buffett/backend/internal/api/handlers"
	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/logger"
)

type routeScreeningService struct{}

func (routeScreeningService) Screen(_ context.Context, req *contracts.ScreeningRequest) (*contracts.ScreeningResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &contracts.ScreeningResult{Summary: "ok"}, nil
}

func (routeScreeningService) AnalyzeStock(_ context.Context, symbol string, _ bool) (*contracts.SingleStockAnalysis, error) {
	return &contracts.SingleStockAnalysis{
		Stock: contracts.StockRecord{Symbol: symbol},
	}, nil
}

type panickingPortfolioService struct{}

func (panickingPortfolioService) Optimize(_ []contracts.StockRecord) (*contracts.PortfolioOptimization, error) {
	panic("optimizer blew up")
}

func newTestRouter() http.Handler {
	log := logger.NewNop()
	screenHandler := handlers.NewScreenHandler(routeScreeningService{}, nil, log)
	portfolioHandler := handlers.NewPortfolioHandler(panickingPortfolioService{}, log)
	return NewRouter(screenHandler, portfolioHandler, log)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestScreenRouteDispatches(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/screen", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestScreenRouteRejectsGet(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/screen", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAnalysisRouteExtractsSymbol(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/stocks/005930/analysis", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "005930")
}

func TestRecoveryMiddlewareCatchesPanics(t *testing.T) {
	router := newTestRouter()

	payload := `{"stocks":[{"symbol":"005930"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/optimize", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
