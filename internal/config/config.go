// Package config holds the ambient tuning knobs for the ProMis core: the
// variance floor, Monte-Carlo sample count, empty-map sentinels, Gaussian
// process defaults and solver invocation parameters. Fields are optional
// pointers so a partial JSON document only overrides what it mentions; the
// GetX accessors supply the documented default otherwise.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration for a ProMis deployment. The schema
// mirrors what a caller would hand-edit in a JSON file: every field is
// optional, every default is named on its accessor.
type Config struct {
	// VarianceFloor is the minimum variance ε enforced on every
	// ScalarRelation after construction.
	VarianceFloor *float64 `json:"variance_floor,omitempty"`

	// MonteCarloSamples is the default K used by support-point estimation
	// when the caller does not specify one explicitly.
	MonteCarloSamples *int `json:"monte_carlo_samples,omitempty"`

	// EmptyMapDistanceMean/Variance are the sentinel (mean, variance) used
	// for the distance relation when the filtered map has no features.
	EmptyMapDistanceMean     *float64 `json:"empty_map_distance_mean,omitempty"`
	EmptyMapDistanceVariance *float64 `json:"empty_map_distance_variance,omitempty"`

	// EmptyMapOverMean/Variance are the sentinel for the over relation.
	EmptyMapOverMean     *float64 `json:"empty_map_over_mean,omitempty"`
	EmptyMapOverVariance *float64 `json:"empty_map_over_variance,omitempty"`

	// EmptyMapDepthMean/Variance are the sentinel for the depth relation.
	EmptyMapDepthMean     *float64 `json:"empty_map_depth_mean,omitempty"`
	EmptyMapDepthVariance *float64 `json:"empty_map_depth_variance,omitempty"`

	// DepthRelevantLocationTypes lists the feature types considered when
	// computing the depth relation over the whole UAM.
	DepthRelevantLocationTypes []string `json:"depth_relevant_location_types,omitempty"`

	// GPLengthScaleEast/North and GPRestarts and GPNoiseFloor parameterise
	// the Gaussian-process approximator's RBF + white-noise kernel.
	GPLengthScaleEast *float64 `json:"gp_length_scale_east,omitempty"`
	GPLengthScaleNorth *float64 `json:"gp_length_scale_north,omitempty"`
	GPRestarts         *int     `json:"gp_restarts,omitempty"`
	GPNoiseFloor       *float64 `json:"gp_noise_floor,omitempty"`

	// SolverExecutable/Args/Timeout configure the external inference
	// process the ProcessSolver shells out to.
	SolverExecutable *string  `json:"solver_executable,omitempty"`
	SolverArgs       []string `json:"solver_args,omitempty"`
	SolverTimeout    *string  `json:"solver_timeout,omitempty"` // duration string like "30s"
	SolverNSamples   *int     `json:"solver_n_samples,omitempty"`
	SolverDType      *string  `json:"solver_dtype,omitempty"`
	SolverDevice     *string  `json:"solver_device,omitempty"`

	// MasterSeed seeds all per-(relation, type) Monte-Carlo sample streams.
	MasterSeed *int64 `json:"master_seed,omitempty"`
}

// Default returns a Config with every field unset, so every GetX accessor
// falls back to its documented default.
func Default() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file. The path must end in .json and be
// under 1MB. Fields omitted from the file keep their defaults.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that any set fields hold sane values.
func (c *Config) Validate() error {
	if c.VarianceFloor != nil && *c.VarianceFloor <= 0 {
		return fmt.Errorf("variance_floor must be positive, got %g", *c.VarianceFloor)
	}
	if c.MonteCarloSamples != nil && *c.MonteCarloSamples < 1 {
		return fmt.Errorf("monte_carlo_samples must be >= 1, got %d", *c.MonteCarloSamples)
	}
	if c.SolverTimeout != nil && *c.SolverTimeout != "" {
		if _, err := time.ParseDuration(*c.SolverTimeout); err != nil {
			return fmt.Errorf("invalid solver_timeout %q: %w", *c.SolverTimeout, err)
		}
	}
	if c.GPRestarts != nil && *c.GPRestarts < 1 {
		return fmt.Errorf("gp_restarts must be >= 1, got %d", *c.GPRestarts)
	}
	return nil
}

// GetVarianceFloor returns the variance floor ε, defaulting to 1e-3.
func (c *Config) GetVarianceFloor() float64 {
	if c == nil || c.VarianceFloor == nil {
		return 1e-3
	}
	return *c.VarianceFloor
}

// GetMonteCarloSamples returns the default Monte-Carlo sample count K.
func (c *Config) GetMonteCarloSamples() int {
	if c == nil || c.MonteCarloSamples == nil {
		return 100
	}
	return *c.MonteCarloSamples
}

// GetEmptyMapDistance returns the (mean, variance) sentinel for distance
// relations computed over an empty filtered map. Chosen per spec §9 as a
// large-but-finite mean so downstream normal-CDF evaluation stays safe.
func (c *Config) GetEmptyMapDistance() (mean, variance float64) {
	mean, variance = 1e9, 1e-3
	if c == nil {
		return
	}
	if c.EmptyMapDistanceMean != nil {
		mean = *c.EmptyMapDistanceMean
	}
	if c.EmptyMapDistanceVariance != nil {
		variance = *c.EmptyMapDistanceVariance
	}
	return
}

// GetEmptyMapOver returns the (mean, variance) sentinel for the over
// relation computed over an empty filtered map.
func (c *Config) GetEmptyMapOver() (mean, variance float64) {
	mean, variance = 0, 0
	if c == nil {
		return
	}
	if c.EmptyMapOverMean != nil {
		mean = *c.EmptyMapOverMean
	}
	if c.EmptyMapOverVariance != nil {
		variance = *c.EmptyMapOverVariance
	}
	return
}

// GetEmptyMapDepth returns the (mean, variance) sentinel for the depth
// relation computed over an empty UAM.
func (c *Config) GetEmptyMapDepth() (mean, variance float64) {
	mean, variance = 0, 0
	if c == nil {
		return
	}
	if c.EmptyMapDepthMean != nil {
		mean = *c.EmptyMapDepthMean
	}
	if c.EmptyMapDepthVariance != nil {
		variance = *c.EmptyMapDepthVariance
	}
	return
}

// GetDepthRelevantLocationTypes returns the feature types considered by the
// depth kernel. An empty default means "every feature in the UAM".
func (c *Config) GetDepthRelevantLocationTypes() []string {
	if c == nil {
		return nil
	}
	return c.DepthRelevantLocationTypes
}

// GetGPLengthScales returns the initial RBF length scales (east, north).
func (c *Config) GetGPLengthScales() (east, north float64) {
	east, north = 1.0, 1.0
	if c == nil {
		return
	}
	if c.GPLengthScaleEast != nil {
		east = *c.GPLengthScaleEast
	}
	if c.GPLengthScaleNorth != nil {
		north = *c.GPLengthScaleNorth
	}
	return
}

// GetGPRestarts returns the number of randomised restarts used when fitting
// the Gaussian-process approximator's hyperparameters.
func (c *Config) GetGPRestarts() int {
	if c == nil || c.GPRestarts == nil {
		return 5
	}
	return *c.GPRestarts
}

// GetGPNoiseFloor returns the minimum white-noise variance added to the GP
// kernel diagonal for numerical stability.
func (c *Config) GetGPNoiseFloor() float64 {
	if c == nil || c.GPNoiseFloor == nil {
		return 1e-6
	}
	return *c.GPNoiseFloor
}

// GetSolverExecutable returns the external inference executable path.
func (c *Config) GetSolverExecutable() string {
	if c == nil || c.SolverExecutable == nil {
		return "hplp-infer"
	}
	return *c.SolverExecutable
}

// GetSolverArgs returns extra arguments passed to the solver executable.
func (c *Config) GetSolverArgs() []string {
	if c == nil {
		return nil
	}
	return c.SolverArgs
}

// GetSolverTimeout returns how long the engine waits for one solver
// invocation before treating it as failed.
func (c *Config) GetSolverTimeout() time.Duration {
	if c == nil || c.SolverTimeout == nil || *c.SolverTimeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(*c.SolverTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetSolverNSamples returns the sample count for the sampling-based
// algebraic inference backend.
func (c *Config) GetSolverNSamples() int {
	if c == nil || c.SolverNSamples == nil {
		return 50
	}
	return *c.SolverNSamples
}

// GetSolverDType returns the numeric dtype requested of the solver backend.
func (c *Config) GetSolverDType() string {
	if c == nil || c.SolverDType == nil {
		return "float32"
	}
	return *c.SolverDType
}

// GetSolverDevice returns the compute device requested of the solver
// backend.
func (c *Config) GetSolverDevice() string {
	if c == nil || c.SolverDevice == nil {
		return "cpu"
	}
	return *c.SolverDevice
}

// GetMasterSeed returns the master seed used to derive per-(relation, type)
// sampling streams.
func (c *Config) GetMasterSeed() int64 {
	if c == nil || c.MasterSeed == nil {
		return 0
	}
	return *c.MasterSeed
}
