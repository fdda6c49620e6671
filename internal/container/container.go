package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"jurimetrics/adapters/excel"
	"jurimetrics/adapters/llm"
	"jurimetrics/adapters/postgres"
	"jurimetrics/adapters/rediscache"
	"jurimetrics/app"
	"jurimetrics/internal/augment"
	"jurimetrics/internal/baseline"
	"jurimetrics/internal/cache"
	"jurimetrics/internal/config"
	"jurimetrics/internal/logging"
	"jurimetrics/internal/narrative"
	"jurimetrics/ports"
)

// Container holds all application dependencies and manages their lifecycle.
type Container struct {
	Config *config.Config
	Log    *logging.Logger

	// Infrastructure
	DB    *sqlx.DB
	Redis *rediscache.BaselineCache

	// Repositories (data access layer)
	CaseRepo      ports.CaseSource
	BaselineStore ports.BaselineStore

	// Pipeline services
	BaselineService *baseline.Service
	AugmentEngine   *augment.Engine
	ReportService   *app.ReportService

	// Export formatters keyed by format query value
	Formatters map[string]ports.ReportFormatter
}

// New creates a dependency injection container.
func New(cfg *config.Config, log *logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{Config: cfg, Log: log}, nil
}

// InitWithDatabase wires every component that sits behind the database.
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	c.DB = db

	c.CaseRepo = postgres.NewCaseRepository(db)
	c.BaselineStore = postgres.NewBaselineRepository(db)
	c.Redis = rediscache.New(c.Config.Redis.Addr, c.Config.Redis.Password, c.Config.Redis.DB, c.Log)

	c.BaselineService = baseline.NewService(
		c.CaseRepo,
		c.Redis,
		cache.NewBaselineCache(),
		c.BaselineStore,
		c.Log,
		c.Config.Analytics.BaselineTTL,
		c.Config.Analytics.BaselineWindow,
	)

	providers := llm.NewProviderChain(c.Config.AI, c.Log)
	c.AugmentEngine = augment.NewEngine(providers, c.Log, c.Config.Analytics.MaxAIDocuments)

	c.ReportService = app.NewReportService(
		c.CaseRepo,
		c.BaselineService,
		c.AugmentEngine,
		c.Log,
		c.Config.Analytics.DecayRate,
		c.Config.Analytics.MinWeight,
	)

	c.Formatters = map[string]ports.ReportFormatter{
		"text": narrative.NewTextFormatter(),
		"html": narrative.NewHTMLFormatter(),
		"xlsx": excel.NewReportWriter(),
	}
	return nil
}

// Close releases held connections.
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("close redis: %v", err)
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
