// Package config loads the CLI configuration for the reciprocal analysis
// tool from file, environment, and flags.
package config

// Default configuration values.
const (
	DefaultOutDir      = "reciprocal_analysis_out"
	DefaultStateFile   = ".reciprocal/state.db"
	DefaultImageColumn = "rlnImageName"
	DefaultClassColumn = "rlnClassNumber"
	DefaultOutput      = "table"
)

// Config holds all CLI configuration options.
type Config struct {
	RelionDir    string `koanf:"relion_dir"` // RELION project dir; Class3D is appended
	OutDir       string `koanf:"out_dir"`
	StatePath    string `koanf:"state_path"`
	ImageColumn  string `koanf:"image_column"`
	ClassColumn  string `koanf:"class_column"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"` // table, csv, json
}
