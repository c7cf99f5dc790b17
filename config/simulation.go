package config

import (
	"fmt"

	"github.com/courierlab/dispatchsim/core/simerr"
)

// Calibrated defaults from the historical trace: the median
// assignment-to-delivery duration and the observed grab-refusal rate.
const (
	DefaultTaskDurationSeconds  = 1451
	DefaultRejectionProbability = 0.1311
	DefaultRandomSeed           = 42
)

// SimulationConfig selects the strategy and cost function and carries the
// calibration constants of the run.
type SimulationConfig struct {
	// Strategy is one of bipartite, cluster_bundle, greedy_online.
	Strategy string `json:"strategy"`
	// CostFunction names the pair-scoring function, e.g. distance_to_pickup.
	CostFunction string `json:"cost_function"`
	// TaskDurationSeconds is how long one accepted order keeps a courier busy.
	TaskDurationSeconds int64 `json:"task_duration_seconds"`
	// RejectionProbability is the chance a courier refuses a proposal.
	// Nil selects the calibrated default; zero is a valid value and means
	// couriers always accept.
	RejectionProbability *float64 `json:"rejection_probability"`
	// RandomSeed drives both the acceptance draws and bundle clustering.
	RandomSeed int64 `json:"random_seed"`
	// KMeansMaxIterations caps the cluster_bundle centroid refinement.
	KMeansMaxIterations int `json:"kmeans_max_iterations"`
}

func (c *SimulationConfig) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = "bipartite"
	}
	if c.CostFunction == "" {
		c.CostFunction = "distance_to_pickup"
	}
	if c.TaskDurationSeconds == 0 {
		c.TaskDurationSeconds = DefaultTaskDurationSeconds
	}
	if c.RejectionProbability == nil {
		p := DefaultRejectionProbability
		c.RejectionProbability = &p
	}
	if c.RandomSeed == 0 {
		c.RandomSeed = DefaultRandomSeed
	}
}

func (c SimulationConfig) Validate() error {
	if c.TaskDurationSeconds <= 0 {
		return fmt.Errorf("config: task_duration_seconds %d must be positive: %w", c.TaskDurationSeconds, simerr.ErrConfiguration)
	}
	if p := c.RejectionProbability; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("config: rejection_probability %v outside [0,1]: %w", *p, simerr.ErrConfiguration)
	}
	return nil
}
