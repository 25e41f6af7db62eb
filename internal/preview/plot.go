package preview

import (
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/Manuelfjr/claire-clustering/internal/datasets"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const size = 4 * vg.Inch

// Scatter renders the first two features of ds as a PNG, one colour per
// label. Unlabelled points share a single series.
func Scatter(title string, ds datasets.Dataset) (io.WriterTo, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "0"
	p.Y.Label.Text = "1"

	groups := make(map[int]plotter.XYs)
	for i := range ds.Len() {
		label := 0
		if ds.HasLabels() {
			label = ds.Labels[i]
		}
		groups[label] = append(groups[label], plotter.XY{X: ds.X.At(i, 0), Y: ds.X.At(i, 1)})
	}

	for i, label := range slices.Sorted(maps.Keys(groups)) {
		s, err := plotter.NewScatter(groups[label])
		if err != nil {
			return nil, err
		}
		s.Color = plotutil.Color(i)
		s.Shape = draw.CircleGlyph{}
		s.Radius = vg.Points(1.5)
		p.Add(s)
		if ds.HasLabels() {
			p.Legend.Add(strconv.Itoa(label), s)
		}
	}
	return p.WriterTo(size, size, "png")
}
