// internal/workers/assessment/match-careers/config.go
package matchcareers

import (
	"time"

	"career-workers/internal/common/config"
	"career-workers/internal/matcher"
)

type Config struct {
	Timeout        time.Duration
	CatalogTimeout time.Duration
	CatalogSource  string
	DefaultLimit   int
	Parallelism    int
}

func LoadConfig(appCfg *config.Config) *Config {
	if appCfg == nil {
		return &Config{
			Timeout:        30 * time.Second,
			CatalogTimeout: 5 * time.Second,
			CatalogSource:  config.CatalogSourcePostgres,
			DefaultLimit:   matcher.DefaultLimit,
			Parallelism:    1,
		}
	}
	return &Config{
		Timeout:        config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout),
		CatalogTimeout: config.GetDuration(appCfg.Catalog.Timeout),
		CatalogSource:  appCfg.Catalog.Source,
		DefaultLimit:   appCfg.Matching.DefaultLimit,
		Parallelism:    appCfg.Matching.Parallelism,
	}
}
