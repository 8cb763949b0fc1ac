package stub

import (
	"github.com/viant/afs"
	"go.uber.org/zap"
)

// Option configures a Generator
type Option func(*Generator)

// WithFs sets the file system used to read existing stubs and write new ones
func WithFs(fs afs.Service) Option {
	return func(g *Generator) {
		g.fs = fs
	}
}

// WithLogger sets the progress logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithDryRun renders stubs without writing them
func WithDryRun() Option {
	return func(g *Generator) {
		g.dryRun = true
	}
}
