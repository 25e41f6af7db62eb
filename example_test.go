package claire_test

import (
	"context"
	"fmt"

	claire "github.com/Manuelfjr/claire-clustering"
	"github.com/spf13/afero"
)

func Example_run() {
	// Write into memory instead of ./data
	fs := afero.NewMemMapFs()

	artifacts, err := claire.Run(context.Background(), "conf/parameters.yml",
		claire.WithFs(fs),
		claire.WithOutputDir("/data"),
		claire.WithSamples(100),
		claire.WithRandomState(170),
	)
	if err != nil {
		fmt.Printf("Error generating datasets: %v\n", err)
		return
	}

	for _, a := range artifacts {
		fmt.Println(a.Path, a.Rows)
	}

	// Output:
	// /data/noisy_circles/noisy_circles.csv 100
	// /data/noisy_moons/noisy_moons.csv 100
	// /data/blobs/blobs.csv 100
	// /data/no_structure/no_structure.csv 100
	// /data/aniso/aniso.csv 100
	// /data/varied/varied.csv 100
}
