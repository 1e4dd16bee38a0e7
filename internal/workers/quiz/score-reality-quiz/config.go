// internal/workers/quiz/score-reality-quiz/config.go
package scorerealityquiz

import (
	"time"

	"career-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// NotifyTimeout bounds the background save-failure notification.
	NotifyTimeout time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		Timeout:       30 * time.Second,
		NotifyTimeout: 10 * time.Second,
	}
	if appCfg != nil {
		cfg.Timeout = config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout)
	}
	return cfg
}
