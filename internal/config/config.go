package config

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfig reports a missing, malformed or incomplete parameters file.
	ErrConfig = errors.New("configuration error")
	// ErrParameter reports a parameter the generator does not support,
	// or a supported parameter with an unusable value.
	ErrParameter = errors.New("parameter error")
)

// Load reads the parameters file at path.
func Load(path string) (*Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, errors.Wrap(err, "open parameters"))
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return p, nil
}

// Parse decodes a YAML parameters document. The document must hold a
// generation_params mapping with exactly one entry per name in Variants.
// Other top-level keys are ignored.
func Parse(r io.Reader) (*Parameters, error) {
	var doc struct {
		GenerationParams yaml.Node `yaml:"generation_params"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrConfig)
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	root := resolve(&doc.GenerationParams)
	if root.Kind == 0 || isNull(root) {
		return nil, fmt.Errorf("%w: missing key %q", ErrConfig, "generation_params")
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: generation_params must be a mapping", ErrConfig, root.Line)
	}

	nodes := make(map[string]*yaml.Node, len(Variants))
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if _, dup := nodes[key.Value]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate variant %q", ErrConfig, key.Line, key.Value)
		}
		if !slices.Contains(Variants, key.Value) {
			return nil, fmt.Errorf("%w: line %d: unknown variant %q", ErrConfig, key.Line, key.Value)
		}
		nodes[key.Value] = resolve(root.Content[i+1])
	}
	for _, name := range Variants {
		if n, ok := nodes[name]; !ok || isNull(n) {
			return nil, fmt.Errorf("%w: missing key %q in generation_params", ErrConfig, name)
		}
	}

	p := &Parameters{
		NoisyCircles: CirclesParams{Factor: 0.8, Shuffle: true},
		NoisyMoons:   MoonsParams{Shuffle: true},
		Blobs:        BlobsParams{BlobShape: defaultBlobShape()},
		NoStructure:  UniformParams{NFeatures: Dims},
		Aniso:        AnisoParams{BlobShape: defaultBlobShape()},
		Varied:       VariedParams{BlobShape: defaultBlobShape()},
	}
	targets := map[string]any{
		NoisyCircles: &p.NoisyCircles,
		NoisyMoons:   &p.NoisyMoons,
		Blobs:        &p.Blobs,
		NoStructure:  &p.NoStructure,
		Aniso:        &p.Aniso,
		Varied:       &p.Varied,
	}
	for _, name := range Variants {
		if err := decodeVariant(name, nodes[name], targets[name]); err != nil {
			return nil, err
		}
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parameters) validate() error {
	checks := []struct {
		name  string
		check func() error
	}{
		{NoisyCircles, p.NoisyCircles.validate},
		{NoisyMoons, p.NoisyMoons.validate},
		{Blobs, p.Blobs.validate},
		{NoStructure, p.NoStructure.normalize},
		{Aniso, p.Aniso.validate},
		{Varied, p.Varied.validate},
	}
	for _, c := range checks {
		if err := c.check(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrParameter, c.name, err)
		}
	}
	return nil
}

func decodeVariant(name string, node *yaml.Node, out any) error {
	// no_structure also accepts the shape form [n_samples, n_features].
	if u, ok := out.(*UniformParams); ok && node.Kind == yaml.SequenceNode {
		var shape []int
		if err := node.Decode(&shape); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrParameter, name, err)
		}
		if len(shape) != 2 {
			return fmt.Errorf("%w: %s: shape must be [n_samples, n_features], got %v", ErrParameter, name, shape)
		}
		u.NSamples, u.NFeatures = &shape[0], shape[1]
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: %s must be a mapping", ErrConfig, node.Line, name)
	}
	known := fieldNames(reflect.TypeOf(out).Elem())
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i]
		if !known[key.Value] {
			return fmt.Errorf("%w: line %d: %s: unsupported parameter %q", ErrParameter, key.Line, name, key.Value)
		}
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParameter, name, err)
	}
	return nil
}

// fieldNames returns the yaml keys a struct type accepts.
func fieldNames(t reflect.Type) map[string]bool {
	names := make(map[string]bool)
	for i := range t.NumField() {
		f := t.Field(i)
		name, opts, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			continue
		}
		if strings.Contains(opts, "inline") {
			for k := range fieldNames(f.Type) {
				names[k] = true
			}
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		names[name] = true
	}
	return names
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
