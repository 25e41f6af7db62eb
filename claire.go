package claire

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/Manuelfjr/claire-clustering/internal/config"
	"github.com/Manuelfjr/claire-clustering/internal/datasets"
	"github.com/Manuelfjr/claire-clustering/internal/preview"
	"github.com/Manuelfjr/claire-clustering/internal/scale"
	"github.com/Manuelfjr/claire-clustering/internal/store"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	// ErrConfig: the parameters file is missing, malformed or lacks a variant.
	ErrConfig = config.ErrConfig
	// ErrParameter: a variant names a parameter its generator does not
	// support, or gives it an unusable value.
	ErrParameter = config.ErrParameter
	// ErrUsage: an option or command-line value is invalid.
	ErrUsage = errors.New("usage error")
	// ErrNumeric: a dataset cannot be standardized.
	ErrNumeric = errors.New("numeric error")
	// ErrIO: an output directory or file cannot be written.
	ErrIO = store.ErrIO
)

const (
	DefaultSamples     = 500
	DefaultRandomState = 170
	// DefaultGlobalSeed seeds the random source shared by the variants
	// that have no seed of their own.
	DefaultGlobalSeed = 0
	DefaultOutputDir  = "data"
)

type (
	Parameters = config.Parameters
	Dataset    = datasets.Dataset

	// Variant is a generated dataset and its name.
	Variant struct {
		Name    string
		Dataset Dataset
	}

	// Artifact describes the files written for one variant.
	Artifact struct {
		Name string
		Path string
		Rows int
		// Plot is empty unless plots are enabled.
		Plot string
	}
)

// LoadParameters reads and validates a parameters file.
func LoadParameters(path string) (*Parameters, error) {
	return config.Load(path)
}

// Run loads the parameters file at path and writes every variant.
// This is a convenience function that creates a Generator and calls its Run method.
func Run(ctx context.Context, path string, opts ...Option) ([]Artifact, error) {
	g, err := New(opts...)
	if err != nil {
		return nil, err
	}
	p, err := LoadParameters(path)
	if err != nil {
		return nil, err
	}
	return g.Run(ctx, p)
}

type Generator struct {
	samples     int
	randomState int64
	globalSeed  int64
	outDir      string
	fs          afero.Fs
	plot        bool
	logger      *zap.Logger
}

// New initializes a generator. Without options it makes DefaultSamples
// points per variant, seeds aniso and varied with DefaultRandomState and
// writes to DefaultOutputDir on the OS filesystem.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		samples:     DefaultSamples,
		randomState: DefaultRandomState,
		globalSeed:  DefaultGlobalSeed,
		outDir:      DefaultOutputDir,
		fs:          afero.NewOsFs(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Generate makes the raw dataset of every variant, in the order of
// config.Variants.
//
// Random sources:
//   - aniso and varied each get a fresh source seeded with the random state.
//   - a variant with its own random_state gets a fresh source from it.
//   - every other variant draws, in order, from one source seeded once
//     with the global seed, so adding or removing draws upstream shifts
//     what no_structure receives.
func (g *Generator) Generate(ctx context.Context, p *Parameters) ([]Variant, error) {
	shared := datasets.NewRand(g.globalSeed)
	own := func(state *int64) *rand.Rand {
		if state != nil {
			return datasets.NewRand(*state)
		}
		return shared
	}

	steps := []struct {
		name string
		gen  func() (Dataset, error)
	}{
		{config.NoisyCircles, func() (Dataset, error) {
			return datasets.Circles(g.samples, p.NoisyCircles, own(p.NoisyCircles.RandomState))
		}},
		{config.NoisyMoons, func() (Dataset, error) {
			return datasets.Moons(g.samples, p.NoisyMoons, own(p.NoisyMoons.RandomState))
		}},
		{config.Blobs, func() (Dataset, error) {
			return datasets.Blobs(g.samples, p.Blobs.BlobShape, own(p.Blobs.RandomState))
		}},
		{config.NoStructure, func() (Dataset, error) {
			return datasets.Uniform(g.samples, p.NoStructure, shared)
		}},
		{config.Aniso, func() (Dataset, error) {
			return datasets.Aniso(g.samples, p.Aniso, datasets.NewRand(g.randomState))
		}},
		{config.Varied, func() (Dataset, error) {
			return datasets.Varied(g.samples, p.Varied, datasets.NewRand(g.randomState))
		}},
	}

	variants := make([]Variant, 0, len(steps))
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ds, err := s.gen()
		if err != nil {
			return nil, errors.Wrapf(err, "generate %s", s.name)
		}
		g.logger.Debug("generated dataset",
			zap.String("variant", s.name),
			zap.Int("rows", ds.Len()),
			zap.Bool("labelled", ds.HasLabels()))
		variants = append(variants, Variant{Name: s.name, Dataset: ds})
	}
	return variants, nil
}

// Run generates every variant, standardizes its features and writes it
// under the output directory.
//
// Variants are written one at a time; on error, the variants already
// written stay on disk.
func (g *Generator) Run(ctx context.Context, p *Parameters) ([]Artifact, error) {
	variants, err := g.Generate(ctx, p)
	if err != nil {
		return nil, err
	}

	st := store.New(g.fs, g.outDir)
	artifacts := make([]Artifact, 0, len(variants))
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}
		a, err := g.write(st, v)
		if err != nil {
			return artifacts, err
		}
		g.logger.Info("wrote dataset",
			zap.String("variant", a.Name),
			zap.Int("rows", a.Rows),
			zap.String("path", a.Path))
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

func (g *Generator) write(st *store.Store, v Variant) (Artifact, error) {
	x, err := scale.Standardize(v.Dataset.X)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: standardize %s: %w", ErrNumeric, v.Name, err)
	}
	ds := Dataset{X: x, Labels: v.Dataset.Labels}

	path, err := st.Write(v.Name, ds)
	if err != nil {
		return Artifact{}, errors.Wrapf(err, "write %s", v.Name)
	}
	a := Artifact{Name: v.Name, Path: path, Rows: ds.Len()}

	if g.plot {
		w, err := preview.Scatter(v.Name, ds)
		if err != nil {
			return Artifact{}, errors.Wrapf(err, "plot %s", v.Name)
		}
		if a.Plot, err = st.WriteFile(v.Name, v.Name+".png", w); err != nil {
			return Artifact{}, errors.Wrapf(err, "write %s plot", v.Name)
		}
	}
	return a, nil
}
