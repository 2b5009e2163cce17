package commands

import (
	"fmt"

	"github.com/wonny/buffett/backend/internal/esg"
	"github.com/wonny/buffett/backend/internal/external/dart"
	"github.com/wonny/buffett/backend/internal/external/krx"
	"github.com/wonny/buffett/backend/internal/external/naver"
	"github.com/wonny/buffett/backend/internal/portfolio"
	"github.com/wonny/buffett/backend/internal/risk"
	"github.com/wonny/buffett/backend/internal/scoring"
	"github.com/wonny/buffett/backend/internal/screener"
	"github.com/wonny/buffett/backend/internal/strategyconfig"
	"github.com/wonny/buffett/backend/internal/universe"
	"github.com/wonny/buffett/backend/pkg/cache"
	"github.com/wonny/buffett/backend/pkg/config"
	"github.com/wonny/buffett/backend/pkg/database"
	"github.com/wonny/buffett/backend/pkg/httputil"
	"github.com/wonny/buffett/backend/pkg/logger"
	"github.com/wonny/buffett/backend/pkg/redis"
)

// app bundles the wired screening stack for the CLI commands.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	screener  *screener.Screener
	optimizer *portfolio.Optimizer
	repo      *screener.Repository // nil if DB disabled
	closers   []func()
}

// close releases DB/Redis connections in reverse wiring order.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp wires the full screening stack from configuration.
// ⭐ SSOT: 컴포넌트 조립은 이 함수에서만
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	strategy := strategyconfig.Default()
	if cfg.Screening.StrategyFile != "" {
		strategy, err = strategyconfig.Load(cfg.Screening.StrategyFile)
		if err != nil {
			return nil, fmt.Errorf("load strategy config: %w", err)
		}
	}

	engine := scoring.NewEngine(log)
	compositor := scoring.NewCompositor(strategy, log)

	httpClient := httputil.New(log)
	krxClient := krx.NewClient(httpClient, cfg.KRX.BaseURL, log)
	naverClient := naver.NewClient(httpClient, cfg.Naver.BaseURL, log)
	dartClient := dart.NewClient(cfg.DART.APIKey, cfg.DART.BaseURL, log)

	esgAnalyzer := esg.NewAnalyzer(dartClient, log)
	riskAnalyzer := risk.NewAnalyzer(nil, log) // 시세 이력 소스 미연결 → 합성 수익률
	optimizer := portfolio.NewOptimizer(nil, log)

	mockProvider := universe.NewMockProvider(log)
	liveProvider := universe.NewLiveProvider(
		krxClient, naverClient, dartClient,
		universe.DefaultCorpCodes(), cfg.Screening.FetchWorkers, log,
	)

	a := &app{cfg: cfg, log: log, optimizer: optimizer}
	opts := screener.Options{LiveUniverse: liveProvider}

	if cfg.Database.Enabled {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.repo = screener.NewRepository(db, log)
		opts.Store = a.repo
	}

	if cfg.Redis.Enabled {
		redisClient, err := redis.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		opts.Cache = screener.NewRedisCache(redisClient, log)
	} else {
		opts.Cache = screener.NewMemoryCache(cache.NewWithTTL(cfg.Screening.CacheTTL))
	}

	a.screener = screener.New(
		mockProvider, engine, compositor,
		esgAnalyzer, riskAnalyzer, optimizer,
		cfg.Screening, log, opts,
	)

	return a, nil
}
