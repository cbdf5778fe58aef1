package abstraction

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config controls where the persisted datasets live and how the offline
// builds behave. Bucket counts and the seed must match between the build
// that produced a dataset and the solver consuming it.
type Config struct {
	// DataDir is the directory holding the persisted datasets.
	DataDir string

	// FlopBuckets and TurnBuckets are the k-means cluster counts for the
	// persisted street abstractions.
	FlopBuckets int
	TurnBuckets int

	// RiverBuckets is the quantization of the equity table into river
	// abstraction ids; no separate dataset is persisted for the river.
	RiverBuckets int

	// ClusterIterations caps the k-means refinement loop.
	ClusterIterations int

	// Seed drives cluster initialization; rebuilds with the same seed and
	// inputs produce identical bucket ids.
	Seed int64

	// Workers sizes the build worker pool; 0 uses all CPUs.
	Workers int

	// BatchSize is the number of hands between build checkpoints.
	BatchSize int
}

// configFile mirrors Config with pointer fields so an attribute the file
// leaves out can be told apart from one explicitly set to zero.
type configFile struct {
	DataDir           *string `hcl:"data_dir,optional"`
	FlopBuckets       *int    `hcl:"flop_buckets,optional"`
	TurnBuckets       *int    `hcl:"turn_buckets,optional"`
	RiverBuckets      *int    `hcl:"river_buckets,optional"`
	ClusterIterations *int    `hcl:"cluster_iterations,optional"`
	Seed              *int64  `hcl:"seed,optional"`
	Workers           *int    `hcl:"workers,optional"`
	BatchSize         *int    `hcl:"batch_size,optional"`
}

// DefaultConfig returns the default build configuration.
func DefaultConfig() Config {
	return Config{
		DataDir:           "products",
		FlopBuckets:       200,
		TurnBuckets:       200,
		RiverBuckets:      200,
		ClusterIterations: 100,
		Seed:              1,
		Workers:           0,
		BatchSize:         100000,
	}
}

// LoadConfig reads configuration from an HCL file, filling unset values
// with defaults. A missing file yields the defaults.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("parse config %s: %s", filename, diags.Error())
	}

	var loaded configFile
	if diags := gohcl.DecodeBody(file.Body, nil, &loaded); diags.HasErrors() {
		return cfg, fmt.Errorf("decode config %s: %s", filename, diags.Error())
	}
	cfg.apply(loaded)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

func (c *Config) apply(loaded configFile) {
	if loaded.DataDir != nil {
		c.DataDir = *loaded.DataDir
	}
	if loaded.FlopBuckets != nil {
		c.FlopBuckets = *loaded.FlopBuckets
	}
	if loaded.TurnBuckets != nil {
		c.TurnBuckets = *loaded.TurnBuckets
	}
	if loaded.RiverBuckets != nil {
		c.RiverBuckets = *loaded.RiverBuckets
	}
	if loaded.ClusterIterations != nil {
		c.ClusterIterations = *loaded.ClusterIterations
	}
	if loaded.Seed != nil {
		c.Seed = *loaded.Seed
	}
	if loaded.Workers != nil {
		c.Workers = *loaded.Workers
	}
	if loaded.BatchSize != nil {
		c.BatchSize = *loaded.BatchSize
	}
}

// Validate ensures the configuration is well-formed before a build begins.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data dir must be set")
	}
	if c.FlopBuckets <= 0 {
		return errors.New("flop bucket count must be > 0")
	}
	if c.TurnBuckets <= 0 {
		return errors.New("turn bucket count must be > 0")
	}
	if c.RiverBuckets <= 0 {
		return errors.New("river bucket count must be > 0")
	}
	if c.ClusterIterations <= 0 {
		return errors.New("cluster iterations must be > 0")
	}
	if c.Workers < 0 {
		return errors.New("workers must be >= 0")
	}
	if c.BatchSize < 0 {
		return errors.New("batch size must be >= 0")
	}
	return nil
}

// Dataset paths within DataDir.

func (c Config) StrengthPath() string {
	return filepath.Join(c.DataDir, "strengths.json")
}

func (c Config) EquityPath() string {
	return filepath.Join(c.DataDir, "river_equities.json")
}

func (c Config) FlopPath() string {
	return filepath.Join(c.DataDir, "flop_abstraction.json")
}

func (c Config) TurnPath() string {
	return filepath.Join(c.DataDir, "turn_abstraction.json")
}

func (c Config) FlopDistributionPath() string {
	return filepath.Join(c.DataDir, "flop_equity_distributions.json")
}

func (c Config) TurnDistributionPath() string {
	return filepath.Join(c.DataDir, "turn_equity_distributions.json")
}
