package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Variant names, in the order the datasets are generated.
const (
	NoisyCircles = "noisy_circles"
	NoisyMoons   = "noisy_moons"
	Blobs        = "blobs"
	NoStructure  = "no_structure"
	Aniso        = "aniso"
	Varied       = "varied"
)

// Variants lists every variant a parameters file must describe.
var Variants = []string{NoisyCircles, NoisyMoons, Blobs, NoStructure, Aniso, Varied}

// Dims is the feature count of every generated dataset.
const Dims = 2

type (
	// Parameters holds one validated parameter set per variant.
	Parameters struct {
		NoisyCircles CirclesParams
		NoisyMoons   MoonsParams
		Blobs        BlobsParams
		NoStructure  UniformParams
		Aniso        AnisoParams
		Varied       VariedParams
	}

	CirclesParams struct {
		// Factor is the scale of the inner circle relative to the outer one.
		Factor      float64 `yaml:"factor"`
		Noise       float64 `yaml:"noise"`
		RandomState *int64  `yaml:"random_state"`
		Shuffle     bool    `yaml:"shuffle"`
	}

	MoonsParams struct {
		Noise       float64 `yaml:"noise"`
		RandomState *int64  `yaml:"random_state"`
		Shuffle     bool    `yaml:"shuffle"`
	}

	// BlobShape describes isotropic Gaussian clusters.
	BlobShape struct {
		NFeatures  int       `yaml:"n_features"`
		Centers    Centers   `yaml:"centers"`
		ClusterStd Spread    `yaml:"cluster_std"`
		CenterBox  []float64 `yaml:"center_box"`
		Shuffle    bool      `yaml:"shuffle"`
	}

	BlobsParams struct {
		BlobShape   `yaml:",inline"`
		RandomState *int64 `yaml:"random_state"`
	}

	// AnisoParams are blobs seeded by the run's random state and
	// then multiplied by Rotation.
	AnisoParams struct {
		BlobShape `yaml:",inline"`
		Rotation  [][]float64 `yaml:"rotation"`
	}

	// VariedParams are blobs seeded by the run's random state.
	VariedParams struct {
		BlobShape `yaml:",inline"`
	}

	// UniformParams describe unstructured noise. NSamples, when set,
	// takes precedence over the run's sample count.
	UniformParams struct {
		NSamples  *int      `yaml:"n_samples"`
		NFeatures int       `yaml:"n_features"`
		Low       []float64 `yaml:"low"`
		High      []float64 `yaml:"high"`
	}
)

// Centers is either a cluster count or a list of explicit center points.
type Centers struct {
	Count  int
	Points [][]float64
}

// Len returns the number of clusters.
func (c Centers) Len() int {
	if c.Points != nil {
		return len(c.Points)
	}
	return c.Count
}

func (c *Centers) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var n int
		if err := value.Decode(&n); err != nil {
			return err
		}
		*c = Centers{Count: n}
		return nil
	case yaml.SequenceNode:
		var points [][]float64
		if err := value.Decode(&points); err != nil {
			return err
		}
		*c = Centers{Points: points}
		return nil
	}
	return fmt.Errorf("line %d: centers must be an integer or a list of points", value.Line)
}

// Spread is a per-cluster standard deviation. A single value applies
// to every cluster.
type Spread []float64

func (s *Spread) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		*s = Spread{v}
		return nil
	}
	var vs []float64
	if err := value.Decode(&vs); err != nil {
		return err
	}
	*s = vs
	return nil
}

// At returns the deviation of cluster i.
func (s Spread) At(i int) float64 {
	if len(s) == 1 {
		return s[0]
	}
	return s[i]
}

func defaultBlobShape() BlobShape {
	return BlobShape{
		NFeatures:  Dims,
		Centers:    Centers{Count: 3},
		ClusterStd: Spread{1.0},
		CenterBox:  []float64{-10, 10},
		Shuffle:    true,
	}
}

func (b BlobShape) validate() error {
	if b.NFeatures != Dims {
		return fmt.Errorf("n_features must be %d, got %d", Dims, b.NFeatures)
	}
	k := b.Centers.Len()
	if k <= 0 {
		return fmt.Errorf("centers must be positive, got %d", k)
	}
	for i, p := range b.Centers.Points {
		if len(p) != Dims {
			return fmt.Errorf("center %d has %d coordinates, want %d", i, len(p), Dims)
		}
	}
	if len(b.ClusterStd) == 0 {
		return fmt.Errorf("cluster_std is empty")
	}
	if len(b.ClusterStd) != 1 && len(b.ClusterStd) != k {
		return fmt.Errorf("cluster_std has %d values for %d centers", len(b.ClusterStd), k)
	}
	for _, v := range b.ClusterStd {
		if v < 0 {
			return fmt.Errorf("cluster_std must not be negative, got %g", v)
		}
	}
	if len(b.CenterBox) != 2 || b.CenterBox[0] > b.CenterBox[1] {
		return fmt.Errorf("center_box must be [min, max], got %v", b.CenterBox)
	}
	return nil
}

func (p CirclesParams) validate() error {
	if p.Factor < 0 || p.Factor >= 1 {
		return fmt.Errorf("factor must be in [0, 1), got %g", p.Factor)
	}
	if p.Noise < 0 {
		return fmt.Errorf("noise must not be negative, got %g", p.Noise)
	}
	return nil
}

func (p MoonsParams) validate() error {
	if p.Noise < 0 {
		return fmt.Errorf("noise must not be negative, got %g", p.Noise)
	}
	return nil
}

func (p AnisoParams) validate() error {
	if err := p.BlobShape.validate(); err != nil {
		return err
	}
	if len(p.Rotation) != Dims {
		return fmt.Errorf("rotation must be a %dx%d matrix, got %d rows", Dims, Dims, len(p.Rotation))
	}
	for i, row := range p.Rotation {
		if len(row) != Dims {
			return fmt.Errorf("rotation row %d has %d values, want %d", i, len(row), Dims)
		}
	}
	return nil
}

func (p *UniformParams) normalize() error {
	if p.NSamples != nil && *p.NSamples <= 0 {
		return fmt.Errorf("n_samples must be positive, got %d", *p.NSamples)
	}
	if p.NFeatures != Dims {
		return fmt.Errorf("n_features must be %d, got %d", Dims, p.NFeatures)
	}
	if p.Low == nil {
		p.Low = make([]float64, p.NFeatures)
	}
	if p.High == nil {
		p.High = make([]float64, p.NFeatures)
		for j := range p.High {
			p.High[j] = 1
		}
	}
	if len(p.Low) != p.NFeatures || len(p.High) != p.NFeatures {
		return fmt.Errorf("low and high need %d values each", p.NFeatures)
	}
	for j := range p.Low {
		if p.Low[j] > p.High[j] {
			return fmt.Errorf("low[%d]=%g is above high[%d]=%g", j, p.Low[j], j, p.High[j])
		}
	}
	return nil
}
