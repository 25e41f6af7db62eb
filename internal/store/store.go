package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Manuelfjr/claire-clustering/internal/config"
	"github.com/Manuelfjr/claire-clustering/internal/datasets"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrIO reports a directory or file that could not be created,
	// written or read.
	ErrIO = errors.New("i/o error")
	// ErrFormat reports an artifact whose content does not match the
	// 0,1,labels layout.
	ErrFormat = errors.New("malformed artifact")
)

// record is one row of an artifact. The header is 0,1,labels; an empty
// labels cell marks an unlabelled point.
type record struct {
	X0     float64 `csv:"0"`
	X1     float64 `csv:"1"`
	Labels string  `csv:"labels"`
}

// Store keeps one directory per variant under root, each holding
// <variant>.csv and any auxiliary files.
type Store struct {
	fs   afero.Fs
	root string
}

func New(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

// Dir returns the directory of variant name.
func (s *Store) Dir(name string) string { return filepath.Join(s.root, name) }

// Path returns the artifact path of variant name.
func (s *Store) Path(name string) string { return filepath.Join(s.Dir(name), name+".csv") }

// Write stores ds as the artifact of variant name, replacing any previous
// one, and returns its path.
func (s *Store) Write(name string, ds datasets.Dataset) (string, error) {
	if ds.Dims() != config.Dims {
		return "", fmt.Errorf("%w: %s has %d feature columns, want %d", ErrFormat, name, ds.Dims(), config.Dims)
	}
	if ds.HasLabels() && len(ds.Labels) != ds.Len() {
		return "", fmt.Errorf("%w: %s has %d labels for %d rows", ErrFormat, name, len(ds.Labels), ds.Len())
	}
	rows := make([]*record, ds.Len())
	for i := range rows {
		rows[i] = &record{X0: ds.X.At(i, 0), X1: ds.X.At(i, 1)}
		if ds.HasLabels() {
			rows[i].Labels = strconv.Itoa(ds.Labels[i])
		}
	}
	return s.create(name, name+".csv", func(w io.Writer) error {
		return gocsv.Marshal(rows, w)
	})
}

// WriteFile stores an auxiliary file next to the artifact of variant name.
func (s *Store) WriteFile(name, filename string, src io.WriterTo) (string, error) {
	return s.create(name, filename, func(w io.Writer) error {
		_, err := src.WriteTo(w)
		return err
	})
}

func (s *Store) create(name, filename string, write func(io.Writer) error) (string, error) {
	dir := s.Dir(name)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, errors.Wrapf(err, "create directory %s", dir))
	}
	path := filepath.Join(dir, filename)
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, errors.Wrapf(err, "create %s", path))
	}
	if err := write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: %w", ErrIO, errors.Wrapf(err, "write %s", path))
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, errors.Wrapf(err, "close %s", path))
	}
	return path, nil
}

// Read loads the artifact of variant name. Labels is nil when every
// labels cell is empty.
func (s *Store) Read(name string) (datasets.Dataset, error) {
	path := s.Path(name)
	f, err := s.fs.Open(path)
	if err != nil {
		return datasets.Dataset{}, fmt.Errorf("%w: %w", ErrIO, errors.Wrapf(err, "open %s", path))
	}
	defer f.Close()

	var rows []*record
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return datasets.Dataset{}, fmt.Errorf("%w: %w", ErrFormat, errors.Wrapf(err, "parse %s", path))
	}
	if len(rows) == 0 {
		return datasets.Dataset{}, fmt.Errorf("%w: %s has no rows", ErrFormat, path)
	}

	ds := datasets.Dataset{X: mat.NewDense(len(rows), config.Dims, nil)}
	labelled := rows[0].Labels != ""
	if labelled {
		ds.Labels = make([]int, len(rows))
	}
	for i, r := range rows {
		ds.X.SetRow(i, []float64{r.X0, r.X1})
		if (r.Labels != "") != labelled {
			return datasets.Dataset{}, fmt.Errorf("%w: %s row %d: labels must be all set or all empty", ErrFormat, path, i+1)
		}
		if !labelled {
			continue
		}
		if ds.Labels[i], err = strconv.Atoi(r.Labels); err != nil {
			return datasets.Dataset{}, fmt.Errorf("%w: %s row %d: %w", ErrFormat, path, i+1, err)
		}
	}
	return ds, nil
}
