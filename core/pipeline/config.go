package pipeline

import (
	"fmt"
	"time"

	"scrapper/core/retry"
)

const (
	ConflictUpdate    = "update"
	ConflictSkip      = "skip"
	ConflictDuplicate = "duplicate"
	ConflictError     = "error"

	ClassifierLists    = "lists"
	ClassifierRegistry = "registry"
	ClassifierCombined = "combined"
)

// Config holds configuration for the import pipeline.
type Config struct {
	// Concurrency bounds the work running at once.
	Concurrency ConcurrencyBudget `mapstructure:"concurrency"`
	// Timeouts bounds each phase and the whole job.
	Timeouts Timeouts `mapstructure:"timeouts"`
	// Retry holds one policy per failure class.
	Retry retry.Config `mapstructure:"retry"`
	// ConflictStrategy is applied when a record already exists (update, skip, duplicate, error).
	ConflictStrategy string `mapstructure:"conflict_strategy" default:"update"`
	// Classifier selects the authority for polymorphic item types.
	Classifier Classifier `mapstructure:"classifier"`
	// LimitsFile is a YAML file of characteristic limits. Empty uses built-in limits.
	LimitsFile string `mapstructure:"limits_file" default:""`
	// LimitsFromDB loads characteristic limits from the database instead.
	LimitsFromDB bool `mapstructure:"limits_from_db" default:"false"`
	// ErrorRate configures the high error rate notification.
	ErrorRate ErrorRate `mapstructure:"error_rate"`
}

// ConcurrencyBudget bounds concurrent work.
type ConcurrencyBudget struct {
	// MaxConcurrentProcesses bounds entity pipelines across all jobs.
	MaxConcurrentProcesses int `mapstructure:"max_concurrent_processes" default:"4"`
	// MaxConcurrentEntities bounds entity pipelines within one job.
	MaxConcurrentEntities int `mapstructure:"max_concurrent_entities" default:"4"`
	// MaxConcurrentBatches bounds category sub-batches in flight.
	MaxConcurrentBatches int `mapstructure:"max_concurrent_batches" default:"2"`
	// Resources caps the size of a single job.
	Resources ResourceLimits `mapstructure:"resources"`
}

// ResourceLimits caps the size of a job. Zero means unbounded.
type ResourceLimits struct {
	MaxRecordsPerJob    int `mapstructure:"max_records_per_job" default:"0"`
	MaxPagesPerCategory int `mapstructure:"max_pages_per_category" default:"0"`
}

// Timeouts bounds each phase and the job.
type Timeouts struct {
	Collection  time.Duration `mapstructure:"collection" default:"30s"`
	Conversion  time.Duration `mapstructure:"conversion" default:"5s"`
	Integration time.Duration `mapstructure:"integration" default:"30s"`
	Job         time.Duration `mapstructure:"job" default:"30m"`
}

// Classifier configures type classification of polymorphic items.
type Classifier struct {
	// Mode is lists, registry or combined.
	Mode string `mapstructure:"mode" default:"lists"`
	// ResourceAllow lists source type ids that are resources.
	ResourceAllow []int `mapstructure:"resource_allow" default:""`
	// ResourceDeny lists source type ids that are never resources.
	ResourceDeny []int `mapstructure:"resource_deny" default:""`
	// ConsumableAllow lists source type ids that are consumables.
	ConsumableAllow []int `mapstructure:"consumable_allow" default:""`
	// ConsumableDeny lists source type ids that are never consumables.
	ConsumableDeny []int `mapstructure:"consumable_deny" default:""`
	// ListsFile is a YAML file with the same lists; it extends the ones above.
	ListsFile string `mapstructure:"lists_file" default:""`
}

// ErrorRate configures the high error rate notification.
type ErrorRate struct {
	// Threshold is the failed/processed ratio that triggers the event.
	Threshold float64 `mapstructure:"threshold" default:"0.5"`
	// MinSamples is the number of processed entities before the ratio is checked.
	MinSamples int `mapstructure:"min_samples" default:"10"`
}

// Default returns the configuration used when nothing is loaded.
func Default() Config {
	policies := retry.DefaultPolicies()
	return Config{
		Concurrency: ConcurrencyBudget{
			MaxConcurrentProcesses: 4,
			MaxConcurrentEntities:  4,
			MaxConcurrentBatches:   2,
		},
		Timeouts: Timeouts{
			Collection:  30 * time.Second,
			Conversion:  5 * time.Second,
			Integration: 30 * time.Second,
			Job:         30 * time.Minute,
		},
		Retry: retry.Config{
			Collection:  policies[retry.ClassCollection],
			Conversion:  policies[retry.ClassConversion],
			Integration: policies[retry.ClassIntegration],
		},
		ConflictStrategy: ConflictUpdate,
		Classifier:       Classifier{Mode: ClassifierLists},
		ErrorRate:        ErrorRate{Threshold: 0.5, MinSamples: 10},
	}
}

// Validate checks enumerations and positive bounds.
func (c Config) Validate() error {
	switch c.ConflictStrategy {
	case ConflictUpdate, ConflictSkip, ConflictDuplicate, ConflictError:
	default:
		return fmt.Errorf("invalid conflict strategy: %q", c.ConflictStrategy)
	}
	switch c.Classifier.Mode {
	case ClassifierLists, ClassifierRegistry, ClassifierCombined:
	default:
		return fmt.Errorf("invalid classifier mode: %q", c.Classifier.Mode)
	}
	if c.Concurrency.MaxConcurrentProcesses < 1 {
		return fmt.Errorf("max_concurrent_processes must be at least 1")
	}
	if c.Concurrency.MaxConcurrentEntities < 1 {
		return fmt.Errorf("max_concurrent_entities must be at least 1")
	}
	if c.Concurrency.MaxConcurrentBatches < 1 {
		return fmt.Errorf("max_concurrent_batches must be at least 1")
	}
	if c.ErrorRate.Threshold < 0 || c.ErrorRate.Threshold > 1 {
		return fmt.Errorf("error_rate threshold must be within [0,1]")
	}
	return nil
}
