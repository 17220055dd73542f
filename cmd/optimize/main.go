package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/mine/config"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval      int     `csv:"eval"`
	Fitness   float64 `csv:"fitness"`
	Peak      float64 `csv:"peak"`
	Duration  float64 `csv:"duration_s"`
	Settled   bool    `csv:"settled"`
	KickSpeed float64 `csv:"kick_speed"`
	Gravity   float64 `csv:"gravity"`
	MaxSpeed  float64 `csv:"max_speed"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	peak := flag.Float64("peak", 0.05, "Target scale pulse at the top of a hop (0.05 = 5% larger)")
	duration := flag.Duration("duration", 250*time.Millisecond, "Target time from click to rest")
	maxTicks := flag.Int("max-ticks", 600, "Frames simulated per hop before giving up")
	maxEvals := flag.Int("max-evals", 300, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if *outputDir == "" {
		slog.Error("-output is required")
		os.Exit(2)
	}
	if *peak <= 0 || *duration <= 0 {
		slog.Error("targets must be positive", "peak", *peak, "duration", *duration)
		os.Exit(2)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg)
	evaluator := NewFitnessEvaluator(params, baseCfg, Target{Peak: *peak, Duration: *duration}, *maxTicks)

	var rows []evalRow
	bestFitness := evaluator.Evaluate(params.DefaultVector())
	bestParams := params.DefaultVector()
	slog.Info("baseline", "fitness", bestFitness, "peak", evaluator.Last().Peak, "duration", evaluator.Last().Duration)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			hop := evaluator.Last()

			rows = append(rows, evalRow{
				Eval:      len(rows) + 1,
				Fitness:   fitness,
				Peak:      hop.Peak,
				Duration:  hop.Duration.Seconds(),
				Settled:   hop.Settled,
				KickSpeed: raw[0],
				Gravity:   raw[1],
				MaxSpeed:  raw[2],
			})
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}
			return fitness
		},
	}

	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   4 + 3*params.Dim()/2,
	}

	start := time.Now()
	if _, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method); err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	if err := writeRows(logPath, rows); err != nil {
		slog.Error("failed to write log", "error", err)
	}

	bestCfg, _ := config.Load(*configPath)
	params.ApplyToConfig(bestCfg, bestParams)
	hop := SimulateHop(bestCfg, *maxTicks)

	slog.Info("optimization complete",
		"evals", len(rows),
		"elapsed", time.Since(start).Round(time.Millisecond),
		"fitness", bestFitness,
		"peak", hop.Peak,
		"duration", hop.Duration,
	)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, bestParams[i])
	}

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		slog.Error("failed to write best config", "error", err)
		os.Exit(1)
	}
	slog.Info("best config saved", "path", configOutPath)
}

func writeRows(path string, rows []evalRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
