// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Find returns the activity bound to taskType.
func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// Validate checks every activity and returns all problems found.
func (r *ActivityRegistry) Validate() []error {
	var errs []error
	ids := map[string]bool{}
	taskTypes := map[string]bool{}

	for i, a := range r.Activities {
		where := fmt.Sprintf("activity[%d]", i)
		if a.ID != "" {
			where = a.ID
		}

		if a.ID == "" {
			errs = append(errs, fmt.Errorf("%s: id is required", where))
		} else if ids[a.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id", where))
		}
		ids[a.ID] = true

		if a.TaskType == "" {
			errs = append(errs, fmt.Errorf("%s: taskType is required", where))
		} else if taskTypes[a.TaskType] {
			errs = append(errs, fmt.Errorf("%s: duplicate taskType %s", where, a.TaskType))
		}
		taskTypes[a.TaskType] = true

		switch a.ImplementationStatus {
		case StatusPlanned, StatusInProgress, StatusCompleted, StatusVerified:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown implementationStatus %q", where, a.ImplementationStatus))
		}

		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid timeout %q", where, a.Timeout))
			}
		}
		if a.Retries < 0 {
			errs = append(errs, fmt.Errorf("%s: retries must not be negative", where))
		}
	}
	return errs
}
