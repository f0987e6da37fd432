package model

// Config holds all runtime configuration for the scanner
type Config struct {
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// ScanConfig controls traversal and error policy
type ScanConfig struct {
	Pattern    string   `yaml:"pattern" mapstructure:"pattern"`         // glob matched against file base names
	Exclude    []string `yaml:"exclude" mapstructure:"exclude"`         // directory names pruned from traversal
	SkipErrors bool     `yaml:"skip_errors" mapstructure:"skip_errors"` // log per-file failures instead of halting
}

// OutputConfig controls where the per-directory summaries go
type OutputConfig struct {
	TableName string `yaml:"table_name" mapstructure:"table_name"` // tabular summary filename
	JSONName  string `yaml:"json_name" mapstructure:"json_name"`   // JSON summary filename
	Verbose   bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the stock configuration: scan for *.hmm files,
// prune "data" directories (reserved for aggregated profile collections),
// halt on the first error.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Pattern:    "*.hmm",
			Exclude:    []string{"data"},
			SkipErrors: false,
		},
		Output: OutputConfig{
			TableName: "hmm-meta-tab.txt",
			JSONName:  "hmm-meta.json",
			Verbose:   false,
		},
	}
}
