package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	claire "github.com/Manuelfjr/claire-clustering"
	"github.com/alexflint/go-arg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type args struct {
	NSample        int    `arg:"positional" placeholder:"N_SAMPLE" help:"number of points in each generated dataset"`
	ParametersPath string `arg:"positional" placeholder:"PARAMETERS_PATH" help:"path to the parameters file"`
	RandomState    int64  `arg:"positional" placeholder:"RANDOM_STATE" help:"seed of the aniso and varied datasets"`
	Out            string `arg:"--out" placeholder:"DIR" help:"base output directory"`
	Plot           bool   `arg:"--plot" help:"also write a scatter plot of each dataset"`
	Verbose        bool   `arg:"-v,--verbose" help:"log every generation step"`
}

func (args) Description() string {
	return "Generates synthetic 2D clustering datasets, standardizes their features " +
		"and writes each one to <out>/<variant>/<variant>.csv."
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	a, code, ok := parseArgs(argv, stdout, stderr)
	if !ok {
		return code
	}

	logger := newLogger(stderr, a.Verbose)
	defer logger.Sync()

	logger.Debug("starting",
		zap.Int("samples", a.NSample),
		zap.String("parameters", a.ParametersPath),
		zap.Int64("random_state", a.RandomState),
		zap.String("out", a.Out))

	_, err := claire.Run(context.Background(), a.ParametersPath,
		claire.WithSamples(a.NSample),
		claire.WithRandomState(a.RandomState),
		claire.WithOutputDir(a.Out),
		claire.WithPlot(a.Plot),
		claire.WithLogger(logger),
	)
	if err != nil {
		logger.Error("dataset generation failed", zap.Error(err))
		if errors.Is(err, claire.ErrUsage) {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}

// parseArgs returns ok=false with the exit code when the program should
// stop, either after printing help or on a usage error.
func parseArgs(argv []string, stdout, stderr io.Writer) (args, int, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	a := args{
		NSample:        claire.DefaultSamples,
		ParametersPath: filepath.Join(cwd, "conf", "parameters.yml"),
		RandomState:    claire.DefaultRandomState,
		Out:            filepath.Join(cwd, claire.DefaultOutputDir),
	}

	p, err := arg.NewParser(arg.Config{Program: "claire-datagen"}, &a)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return a, exitError, false
	}
	err = p.Parse(argv)
	switch {
	case err == arg.ErrHelp:
		p.WriteHelp(stdout)
		return a, exitOK, false
	case err != nil:
		p.WriteUsage(stderr)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return a, exitUsage, false
	case a.NSample <= 0:
		p.WriteUsage(stderr)
		fmt.Fprintf(stderr, "error: N_SAMPLE must be a positive integer, got %d\n", a.NSample)
		return a, exitUsage, false
	}
	return a, exitOK, true
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.RFC3339TimeEncoder
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w), level)
	return zap.New(core)
}
