package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nieomylnieja/docwalk/internal/goload"
	"github.com/nieomylnieja/docwalk/internal/interpload"
	"github.com/nieomylnieja/docwalk/pkg/docwalk"
	"github.com/nieomylnieja/docwalk/pkg/obj"
)

var (
	// Global flags
	verbose    bool
	configPath string
	filters    []string
	style      string
	inherited  bool
	packages   []string
	sourceFile string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docwalk [flags] PATH...",
	Short: "docwalk - documentation trees from live object graphs",
	Long: `docwalk resolves dotted object paths against a registry of live objects
and prints the resulting documentation trees as JSON.

The registry is populated from compiled Go packages (--packages), from
interpreted Go source files (--source), or both. Each PATH argument is a
dotted path such as "sample.models.Dog".`,
	Args: cobra.MinimumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// output is the document printed per resolved path.
type output struct {
	Object        *docwalk.Object `json:"object"`
	LoadingErrors []string        `json:"loading_errors"`
}

func run(cmd *cobra.Command, args []string) error {
	registry := obj.NewRegistry()
	if len(packages) == 0 && sourceFile == "" {
		if err := goload.Load(registry); err != nil {
			return err
		}
	}
	for _, dir := range packages {
		if err := goload.LoadDir(registry, dir); err != nil {
			return err
		}
	}
	if sourceFile != "" {
		if err := loadSourceFile(registry, sourceFile); err != nil {
			return err
		}
	}

	opts := []docwalk.LoaderOption{docwalk.WithLogger(logger)}
	if configPath != "" {
		cfg, err := docwalk.LoadConfig(configPath)
		if err != nil {
			return err
		}
		opts = append(opts, docwalk.WithConfig(cfg))
	}
	if len(filters) > 0 {
		opts = append(opts, docwalk.WithFilters(filters...))
	}
	if style != "" {
		opts = append(opts, docwalk.WithDocstringStyle(style, nil))
	}
	if inherited {
		opts = append(opts, docwalk.WithInheritedMembers())
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	for _, path := range args {
		loader, err := docwalk.NewLoader(registry, opts...)
		if err != nil {
			return err
		}
		root, err := loader.Load(path, docwalk.AllMembers())
		if err != nil {
			return err
		}
		doc := output{Object: root, LoadingErrors: loader.Errors()}
		if doc.LoadingErrors == nil {
			doc.LoadingErrors = []string{}
		}
		if err := encoder.Encode(doc); err != nil {
			return err
		}
	}
	return nil
}

// loadSourceFile interprets a Go source file and registers it under its
// base file name.
func loadSourceFile(registry *obj.Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mod, err := interpload.LoadSource(registry, name, string(data))
	if err != nil {
		return err
	}
	mod.FilePath = path
	return nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.Flags().StringArrayVarP(&filters, "filters", "f", nil, `member name filters, "!" re-includes`)
	rootCmd.Flags().StringVarP(&style, "style", "s", "", "docstring style (google, markdown)")
	rootCmd.Flags().BoolVar(&inherited, "inherited", false, "document inherited class members")
	rootCmd.Flags().StringArrayVarP(&packages, "packages", "p", nil, "directories of Go packages to load")
	rootCmd.Flags().StringVar(&sourceFile, "source", "", "Go source file to interpret and load")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
