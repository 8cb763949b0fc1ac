package stub

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/kotlinpoet/inspector/graph"
	"github.com/viant/kotlinpoet/inspector/java"
	"github.com/viant/kotlinpoet/inspector/repository"
	"go.uber.org/zap"
)

// Generator writes Kotlin stubs for every Java source under the configured source root
type Generator struct {
	config    *Config
	fs        afs.Service
	logger    *zap.SugaredLogger
	dryRun    bool
	detector  *repository.Detector
	inspector *java.Inspector
	builder   *Builder
}

// Report summarises a generation run
type Report struct {
	Generated []string   // URLs of written stubs
	Unchanged []string   // URLs of stubs whose content did not change
	Skipped   []string   // Java sources without stubbable types
	Failed    []*Failure // Java sources that could not be stubbed
}

// Failure records the error of one Java source
type Failure struct {
	Source string
	Err    error
}

func (f *Failure) Error() string {
	return f.Source + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewGenerator creates a generator for a validated config
func NewGenerator(config *Config, options ...Option) (*Generator, error) {
	config.Init()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	g := &Generator{
		config:   config,
		fs:       afs.New(),
		logger:   zap.NewNop().Sugar(),
		detector: repository.New(),
		builder:  NewBuilder(config),
	}
	for _, option := range options {
		option(g)
	}
	g.inspector = java.NewInspector(&graph.Config{IncludeNonPublic: config.IncludeNonPublic, SkipTests: true})
	return g, nil
}

// Generate stubs every Java source and reports the outcome per file
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	outputURL, err := normalize(g.config.Output)
	if err != nil {
		return nil, err
	}
	roots, err := g.detector.SourceRoots(ctx, g.config.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to detect source roots of %s: %w", g.config.Source, err)
	}
	report := &Report{}
	for _, root := range roots {
		g.logger.Debugw("scanning source root", "root", root)
		URLs, err := g.inspector.SourceURLs(ctx, root)
		if err != nil {
			return report, err
		}
		for _, URL := range URLs {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			g.generateFile(ctx, URL, outputURL, report)
		}
	}
	g.logger.Infow("stubs generated",
		"generated", len(report.Generated),
		"unchanged", len(report.Unchanged),
		"skipped", len(report.Skipped),
		"failed", len(report.Failed))
	if len(report.Failed) > 0 {
		return report, fmt.Errorf("failed to generate %d stub(s): %w", len(report.Failed), report.Failed[0])
	}
	return report, nil
}

func (g *Generator) generateFile(ctx context.Context, sourceURL, outputURL string, report *Report) {
	fail := func(err error) {
		g.logger.Warnw("failed to generate stub", "source", sourceURL, "error", err)
		report.Failed = append(report.Failed, &Failure{Source: sourceURL, Err: err})
	}
	aFile, err := g.inspector.InspectFile(ctx, sourceURL)
	if err != nil {
		fail(err)
		return
	}
	_, hash, err := aFile.Fingerprint(g.builder)
	if errors.Is(err, ErrEmpty) {
		g.logger.Debugw("skipping source without types", "source", sourceURL)
		report.Skipped = append(report.Skipped, sourceURL)
		return
	}
	if err != nil {
		fail(err)
		return
	}
	destURL := url.Join(outputURL, g.builder.RelativePath(aFile))
	if g.isUnchanged(ctx, destURL, hash) {
		g.logger.Debugw("stub unchanged", "stub", destURL)
		report.Unchanged = append(report.Unchanged, destURL)
		return
	}
	if !g.dryRun {
		if destURL, err = g.write(ctx, aFile, outputURL); err != nil {
			fail(err)
			return
		}
	}
	g.logger.Debugw("stub generated", "source", sourceURL, "stub", destURL)
	report.Generated = append(report.Generated, destURL)
}

// write uploads the stub of aFile under outputURL and returns its URL
func (g *Generator) write(ctx context.Context, aFile *graph.File, outputURL string) (string, error) {
	spec, err := g.builder.Build(aFile)
	if err != nil {
		return "", err
	}
	return spec.WriteToDir(ctx, g.fs, outputURL)
}

// isUnchanged returns true if the stub at URL has the fingerprint hash
func (g *Generator) isUnchanged(ctx context.Context, URL string, hash uint64) bool {
	if ok, _ := g.fs.Exists(ctx, URL); !ok {
		return false
	}
	existing, err := g.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return false
	}
	existingHash, err := graph.Hash(existing)
	return err == nil && existingHash == hash
}

func normalize(location string) (string, error) {
	location = strings.TrimRight(location, "/")
	if strings.Contains(location, "://") {
		return location, nil
	}
	return filepath.Abs(location)
}
