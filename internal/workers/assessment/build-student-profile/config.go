// internal/workers/assessment/build-student-profile/config.go
package buildstudentprofile

import (
	"time"

	"career-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	if appCfg == nil {
		return &Config{Timeout: 30 * time.Second}
	}
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout),
	}
}
