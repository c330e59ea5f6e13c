// Package main tunes the ripple engine coefficients with gonum's optimizers so a
// drop spreads a visible ring and settles in a chosen time.
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

	"github.com/pthm-cable/ripples/config"
)

// evalRecord is one row of tune_log.csv.
type evalRecord struct {
	Eval         int     `csv:"eval"`
	Fitness      float64 `csv:"fitness"`
	DecayError   float64 `csv:"decay_error"`
	Reached      float64 `csv:"reached"`
	GradientGain float64 `csv:"gradient_gain"`
	HeightGain   float64 `csv:"height_gain"`
	Damping      float64 `csv:"damping"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 4, "Number of drop positions per evaluation")
	maxEvals := flag.Int("max-evals", 150, "Maximum number of evaluations")
	method := flag.String("method", "cmaes", "Optimizer: cmaes or neldermead")
	settle := flag.Duration("settle", 3*time.Second, "Time for a drop to settle")
	fraction := flag.Float64("settle-fraction", 0.03, "Remaining sum |h| relative to peak after -settle")
	reach := flag.Int("reach", 16, "Cells a ripple should travel")
	reachHeight := flag.Float64("reach-height", 0.01, "Minimum |h| at -reach cells")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *outputDir == "" {
		slog.Error("--output is required")
		os.Exit(1)
	}
	if err := run(*configPath, *outputDir, *method, *seeds, *maxEvals, *settle, *fraction, *reach, *reachHeight); err != nil {
		slog.Error("tuning failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir, methodName string, seeds, maxEvals int, settle time.Duration, fraction float64, reach int, reachHeight float64) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	target := Target{
		SettleTicks:    int(settle.Seconds() * float64(baseCfg.Screen.TargetFPS)),
		SettleFraction: fraction,
		ReachCells:     reach,
		ReachHeight:    reachHeight,
	}

	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, baseCfg.Engine, target, evalSeeds)

	var m optimize.Method
	switch methodName {
	case "cmaes":
		m = &optimize.CmaEsChol{InitStepSize: 0.2, Population: 4 + 3*params.Dim()}
	case "neldermead":
		m = &optimize.NelderMead{}
	default:
		return fmt.Errorf("unknown method %q", methodName)
	}

	logFile, err := os.Create(filepath.Join(outputDir, "tune_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e18
	var bestParams []float64
	start := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}

			decay, reached := evaluator.LastScores()
			rec := []evalRecord{{
				Eval:         evalCount,
				Fitness:      fitness,
				DecayError:   decay,
				Reached:      reached,
				GradientGain: raw[0],
				HeightGain:   raw[1],
				Damping:      raw[2],
			}}
			var werr error
			if evalCount == 1 {
				werr = gocsv.Marshal(rec, logFile)
			} else {
				werr = gocsv.MarshalWithoutHeaders(rec, logFile)
			}
			if werr != nil {
				slog.Error("failed to write tune log", "error", werr)
			}

			slog.Info("eval",
				"n", evalCount,
				"fitness", fitness,
				"decay_error", decay,
				"reached", reached,
				"best", bestFitness,
				"elapsed", time.Since(start).Round(time.Second).String(),
			)
			return fitness
		},
	}

	settings := &optimize.Settings{FuncEvaluations: maxEvals}

	slog.Info("starting tuning",
		"method", methodName,
		"params", params.Dim(),
		"settle_ticks", target.SettleTicks,
		"max_evals", maxEvals,
	)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, m)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return fmt.Errorf("no evaluations completed")
	}

	bestCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	params.ApplyToConfig(&bestCfg.Engine, bestParams)

	outPath := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(outPath); err != nil {
		return err
	}

	attrs := []any{"evals", evalCount, "fitness", bestFitness, "path", outPath}
	for i, spec := range params.Specs {
		attrs = append(attrs, spec.Name, bestParams[i])
	}
	slog.Info("tuning complete", attrs...)
	return nil
}
