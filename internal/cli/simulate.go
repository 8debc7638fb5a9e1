package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"cloze/internal/config"
	"cloze/internal/duckdb"
	"cloze/internal/simulate"
	"cloze/internal/ui/form"
)

// runSimulate builds the handler for the simulate command.
func runSimulate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		filePath := fs.String("file", "", "Path to trials file (default: search for .cloze/trials.yml)")
		modeName := fs.String("mode", "", "Simulation mode: headless or interactive (default: from trials file)")
		seed := fs.Uint64("seed", 0, "Random seed (default: from trials file)")
		realtime := fs.Bool("realtime", false, "Pace interactive timelines on the wall clock")
		uiMode := fs.String("ui", "plain", "Interactive replay UI: auto, live or plain")
		dbPath := fs.String("db", "", "DuckDB file to store results in")
		verbose := fs.Bool("verbose", false, "Enable debug logging")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		seedSet := false
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "seed" {
				seedSet = true
			}
		})

		file, selected, err := loadTrials(*filePath, fs.Args())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load trials: %v\n", err)
			return ExitError
		}
		name := *modeName
		if name == "" {
			name = file.Simulation.Mode
		}
		mode, err := simulate.ParseMode(name)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid options: %v\n", err)
			return ExitUsage
		}
		decision, err := resolveUIMode(*uiMode, *verbose, os.Stdin, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid options: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}
		if !seedSet {
			*seed = file.Simulation.Seed
		}

		ctx, cancel := commandContext()
		defer cancel()
		logger := newLogger(stderr, *verbose)
		defer func() { _ = logger.Sync() }()

		store, err := openStore(ctx, *dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open results store: %v\n", err)
			return ExitError
		}
		defer store.Close()

		rng := simulate.NewRand(*seed)
		unfinished := 0
		for _, ts := range selected {
			cfg := config.TrialConfig(ts)
			capture := &captureFinisher{}
			svc := simulate.Services{
				Rand:     rng,
				Words:    simulate.NewWordList(rng, file.Simulation.Words),
				Latency:  simulate.DefaultLatency(rng),
				Finisher: capture,
				Logger:   logger.With(zap.String("trial_id", ts.ID)),
			}
			trialMode := mode
			if interactive, ok := mode.(simulate.Interactive); ok {
				if *realtime {
					interactive.Wait = simulate.RealTime
				}
				if decision.useLive {
					interactive.Player = form.Player(form.RunOptions{
						Options: form.Options{MistakeMessage: mistakeMessage(ts), Realtime: *realtime},
						Output:  stdout,
					})
				}
				trialMode = interactive
			}
			report, err := simulate.Simulate(ctx, trialMode, cfg, svc)
			if err != nil {
				fmt.Fprintf(stderr, "Trial %s failed: %v\n", ts.ID, err)
				return ExitError
			}
			if !report.Finished {
				logger.Warn("simulated trial did not finish",
					zap.String("trial_id", ts.ID),
					zap.Ints("incorrect", report.Outcome.Incorrect),
					zap.Ints("empty", report.Outcome.Empty))
				fmt.Fprintf(stderr, "Trial %s did not finish\n", ts.ID)
				unfinished++
				continue
			}
			blanks := len(report.Answers)
			if err := writeResult(stdout, ts.ID, report.Result, blanks); err != nil {
				fmt.Fprintf(stderr, "Trial %s failed: %v\n", ts.ID, err)
				return ExitError
			}
			attempts, mistakes := 1, 0
			if report.Outcome.Attempt > 0 {
				attempts = report.Outcome.Attempt
				mistakes = attempts - 1
			}
			err = store.save(ctx, duckdb.Record{
				TrialID:   ts.ID,
				Template:  duckdb.TemplateInput{Text: cfg.Text, CaseSensitive: cfg.CaseSensitive},
				Response:  report.Result.Response,
				Attempts:  attempts,
				Mistakes:  mistakes,
				Simulated: true,
				Mode:      report.Mode,
			})
			if err != nil {
				fmt.Fprintf(stderr, "Failed to store result for %s: %v\n", ts.ID, err)
				return ExitError
			}
		}
		if unfinished > 0 {
			return ExitError
		}
		return ExitOK
	}
}
