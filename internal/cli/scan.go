package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tilmweber/antismash-hmm-meta/internal/model"
	"github.com/tilmweber/antismash-hmm-meta/internal/pipeline"
)

var (
	tableName   string
	jsonName    string
	excludeDirs []string
	skipErrors  bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Scan a directory tree and write per-directory metadata summaries",
	Long: `Scan walks the tree below root (default: the current directory),
parses the header of every *.hmm profile file and writes two summaries
into the file's directory:
- hmm-meta-tab.txt: tab-separated keys and values
- hmm-meta.json: the same record as a JSON object

Directories named "data" are skipped; they hold the aggregated profile
collections and are not a source of candidate files.

Example:
  hmm-meta scan
  hmm-meta scan ./detection/hmm_detection
  hmm-meta scan --skip-errors --exclude data --exclude tmp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	defaults := model.DefaultConfig()

	// Output flags
	scanCmd.Flags().StringVar(&tableName, "tab-name", defaults.Output.TableName, "tabular summary filename")
	scanCmd.Flags().StringVar(&jsonName, "json-name", defaults.Output.JSONName, "JSON summary filename")

	// Traversal flags
	scanCmd.Flags().StringSliceVar(&excludeDirs, "exclude", defaults.Scan.Exclude, "directory names excluded from traversal")
	scanCmd.Flags().BoolVar(&skipErrors, "skip-errors", defaults.Scan.SkipErrors, "log per-file failures and continue instead of halting")

	// Bind flags to viper so config file and HMMMETA_* env vars apply
	_ = viper.BindPFlag("output.table_name", scanCmd.Flags().Lookup("tab-name"))
	_ = viper.BindPFlag("output.json_name", scanCmd.Flags().Lookup("json-name"))
	_ = viper.BindPFlag("scan.exclude", scanCmd.Flags().Lookup("exclude"))
	_ = viper.BindPFlag("scan.skip_errors", scanCmd.Flags().Lookup("skip-errors"))
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	// Build configuration from flags/env/config file
	cfg := model.DefaultConfig()
	cfg.Output.TableName = viper.GetString("output.table_name")
	cfg.Output.JSONName = viper.GetString("output.json_name")
	cfg.Output.Verbose = verbose
	cfg.Scan.Exclude = viper.GetStringSlice("scan.exclude")
	cfg.Scan.SkipErrors = viper.GetBool("scan.skip_errors")

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", root)
		fmt.Fprintf(os.Stderr, "Pattern: %s\n", cfg.Scan.Pattern)
		fmt.Fprintf(os.Stderr, "Excluded dirs: %v\n", cfg.Scan.Exclude)
		fmt.Fprintln(os.Stderr)
	}

	// Create pipeline
	p := pipeline.NewPipeline(afero.NewOsFs(), cfg)

	// Walk the tree
	if err := p.Run(root); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return nil
}
