package claire

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type Option func(*Generator) error

// WithSamples sets the number of points of every variant. no_structure
// ignores it when its parameters carry n_samples.
func WithSamples(n int) Option {
	return func(g *Generator) error {
		if n <= 0 {
			return fmt.Errorf("%w: sample count must be positive, got %d", ErrUsage, n)
		}
		g.samples = n
		return nil
	}
}

// WithRandomState sets the seed of the aniso and varied variants.
func WithRandomState(seed int64) Option {
	return func(g *Generator) error {
		g.randomState = seed
		return nil
	}
}

// WithGlobalSeed sets the seed of the random source shared by the
// variants without a random_state of their own.
func WithGlobalSeed(seed int64) Option {
	return func(g *Generator) error {
		g.globalSeed = seed
		return nil
	}
}

// WithOutputDir sets the base directory. Each variant is written to
// <dir>/<variant>/<variant>.csv.
func WithOutputDir(dir string) Option {
	return func(g *Generator) error {
		if dir == "" {
			return fmt.Errorf("%w: empty output directory", ErrUsage)
		}
		g.outDir = dir
		return nil
	}
}

// WithFs writes the artifacts to fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(g *Generator) error {
		if fs == nil {
			return fmt.Errorf("%w: nil filesystem", ErrUsage)
		}
		g.fs = fs
		return nil
	}
}

// WithPlot also writes a PNG scatter plot next to each artifact.
func WithPlot(enabled bool) Option {
	return func(g *Generator) error {
		g.plot = enabled
		return nil
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) error {
		if l == nil {
			l = zap.NewNop()
		}
		g.logger = l
		return nil
	}
}
