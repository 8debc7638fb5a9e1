package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"cloze/internal/config"
	"cloze/internal/duckdb"
	"cloze/internal/trial"
	"cloze/internal/ui/form"
)

// runLive is a test seam for the terminal form.
var runLive = form.Run

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		filePath := fs.String("file", "", "Path to trials file (default: search for .cloze/trials.yml)")
		uiMode := fs.String("ui", "auto", "Input UI: auto, live or plain")
		dbPath := fs.String("db", "", "DuckDB file to store results in")
		noColor := fs.Bool("no-color", false, "Disable colors in the live UI")
		verbose := fs.Bool("verbose", false, "Enable debug logging")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		in := answerInput
		if in == nil {
			in = os.Stdin
		}
		decision, err := resolveUIMode(*uiMode, *verbose, in, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid options: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		_, selected, err := loadTrials(*filePath, fs.Args())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load trials: %v\n", err)
			return ExitError
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

		modeName := "plain"
		if decision.useLive {
			modeName = "live"
		}
		reader := bufio.NewReader(in)
		for _, ts := range selected {
			cfg := config.TrialConfig(ts)
			capture := &captureFinisher{}
			tr, err := trial.New(cfg, trial.Options{
				Finisher: capture,
				Logger:   logger.With(zap.String("trial_id", ts.ID)),
			})
			if err != nil {
				fmt.Fprintf(stderr, "Trial %s failed: %v\n", ts.ID, err)
				return ExitError
			}
			if decision.useLive {
				_, err = runLive(ctx, tr, form.RunOptions{
					Options: form.Options{NoColor: *noColor, MistakeMessage: mistakeMessage(ts)},
					Output:  stdout,
				})
			} else {
				_, err = runPlain(tr, reader, stdout, mistakeMessage(ts))
			}
			if err != nil {
				fmt.Fprintf(stderr, "Trial %s failed: %v\n", ts.ID, err)
				return ExitError
			}
			if !capture.finished {
				fmt.Fprintf(stderr, "Trial %s did not finish\n", ts.ID)
				return ExitError
			}
			if err := writeResult(stdout, ts.ID, capture.result, tr.Template().Blanks()); err != nil {
				fmt.Fprintf(stderr, "Trial %s failed: %v\n", ts.ID, err)
				return ExitError
			}
			err = store.save(ctx, duckdb.Record{
				TrialID:   ts.ID,
				Template:  duckdb.TemplateInput{Text: cfg.Text, CaseSensitive: cfg.CaseSensitive},
				Response:  capture.result.Response,
				Attempts:  tr.Attempts(),
				Mistakes:  tr.Mistakes(),
				Simulated: false,
				Mode:      modeName,
			})
			if err != nil {
				fmt.Fprintf(stderr, "Failed to store result for %s: %v\n", ts.ID, err)
				return ExitError
			}
			logger.Info("trial recorded", zap.String("trial_id", ts.ID), zap.Int("attempts", tr.Attempts()))
		}
		return ExitOK
	}
}
