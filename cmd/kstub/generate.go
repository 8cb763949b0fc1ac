package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/kotlinpoet/internal/logger"
	"github.com/viant/kotlinpoet/stub"
)

const defaultConfig = "stubgen.yaml"

var (
	configURL        string
	sourceURL        string
	outputURL        string
	kotlinVersion    string
	packages         []string
	includeNonPublic bool
	dryRun           bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Kotlin stubs",
	Long: `Generate Kotlin stubs for every Java source under the source root.

Flags override values loaded from the config file. Stubs whose content did
not change are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&configURL, "config", "c", defaultConfig, "Config file")
	generateCmd.Flags().StringVarP(&sourceURL, "source", "s", "", "Java source root or project directory")
	generateCmd.Flags().StringVarP(&outputURL, "output", "o", "", "Stub output directory (default: "+stub.DefaultOutput+")")
	generateCmd.Flags().StringVar(&kotlinVersion, "kotlin-version", "", "Target Kotlin version (default: "+stub.DefaultKotlinVersion+")")
	generateCmd.Flags().StringSliceVarP(&packages, "package", "p", nil, "Package mapping java=kotlin, repeatable")
	generateCmd.Flags().BoolVar(&includeNonPublic, "include-non-public", false, "Stub package-private types and members as internal")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render stubs without writing them")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fs := afs.New()
	config, err := loadConfig(ctx, cmd, fs)
	if err != nil {
		return err
	}
	if err = applyFlags(cmd, config); err != nil {
		return err
	}

	options := []stub.Option{stub.WithFs(fs), stub.WithLogger(logger.Logger)}
	if dryRun {
		options = append(options, stub.WithDryRun())
	}
	generator, err := stub.NewGenerator(config, options...)
	if err != nil {
		return err
	}
	report, err := generator.Generate(ctx)
	if report != nil {
		for _, failure := range report.Failed {
			logger.Logger.Errorw("stub failed", "source", failure.Source, "error", failure.Err)
		}
	}
	return err
}

// loadConfig reads the config file, a missing default file yields an empty config
func loadConfig(ctx context.Context, cmd *cobra.Command, fs afs.Service) (*stub.Config, error) {
	location := configURL
	if !strings.Contains(location, "://") {
		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, err
		}
		location = abs
	}
	if ok, _ := fs.Exists(ctx, location); !ok {
		if cmd.Flags().Changed("config") {
			return nil, fmt.Errorf("config %s was not found", configURL)
		}
		return &stub.Config{}, nil
	}
	logger.Logger.Debugw("loading config", "config", location)
	return stub.LoadConfig(ctx, fs, location)
}

func applyFlags(cmd *cobra.Command, config *stub.Config) error {
	flags := cmd.Flags()
	if flags.Changed("source") {
		config.Source = sourceURL
	}
	if flags.Changed("output") {
		config.Output = outputURL
	}
	if flags.Changed("kotlin-version") {
		config.KotlinVersion = kotlinVersion
	}
	if flags.Changed("include-non-public") {
		config.IncludeNonPublic = includeNonPublic
	}
	for _, mapping := range packages {
		from, to, ok := strings.Cut(mapping, "=")
		if !ok {
			return fmt.Errorf("invalid package mapping %q, expected java=kotlin", mapping)
		}
		if config.Packages == nil {
			config.Packages = map[string]string{}
		}
		config.Packages[strings.TrimSpace(from)] = strings.TrimSpace(to)
	}
	return nil
}
