package cli

import (
	"flag"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"cloze/internal/config"
	"cloze/internal/duckdb"
	"cloze/internal/formserver"
	"cloze/internal/trial"
)

// serveForm is a test seam for running the form server.
var serveForm = formserver.Serve

// lockedFinisher captures the delivered result across server goroutines.
type lockedFinisher struct {
	mu       sync.Mutex
	result   trial.Result
	finished bool
	mistakes int
}

func (f *lockedFinisher) Finish(result trial.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result = result
	f.finished = true
	return nil
}

func (f *lockedFinisher) mistake() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mistakes++
}

func (f *lockedFinisher) snapshot() (trial.Result, bool, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result, f.finished, f.mistakes
}

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		filePath := fs.String("file", "", "Path to trials file (default: search for .cloze/trials.yml)")
		addr := fs.String("addr", "127.0.0.1:5000", "Address to listen on")
		assetsBaseURL := fs.String("assets-base-url", "", "Base URL for form assets")
		dbPath := fs.String("db", "", "DuckDB file to store results in")
		verbose := fs.Bool("verbose", false, "Enable debug logging")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		trialID := fs.Arg(0)
		if trialID == "" {
			fmt.Fprintln(stderr, "Missing <trial-id>")
			return ExitUsage
		}
		if fs.NArg() > 1 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		_, selected, err := loadTrials(*filePath, []string{trialID})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load trials: %v\n", err)
			return ExitError
		}
		ts := selected[0]

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

		finisher := &lockedFinisher{}
		trialCfg := config.TrialConfig(ts)
		trialCfg.Mistake = finisher.mistake
		cfg := formserver.Config{
			Addr:           *addr,
			Trial:          trialCfg,
			Finisher:       finisher,
			MistakeMessage: ts.MistakeMessage,
			Title:          ts.ID,
			AssetsBaseURL:  *assetsBaseURL,
			Logger:         logger.With(zap.String("trial_id", ts.ID)),
			Ready: func(bound string) {
				fmt.Fprintf(stderr, "Serving trial %s at http://%s\n", ts.ID, bound)
			},
		}
		if err := serveForm(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}

		result, finished, mistakes := finisher.snapshot()
		if !finished {
			fmt.Fprintf(stderr, "Trial %s did not finish\n", ts.ID)
			return ExitError
		}
		blanks := len(result.Response)
		if err := writeResult(stdout, ts.ID, result, blanks); err != nil {
			fmt.Fprintf(stderr, "Trial %s failed: %v\n", ts.ID, err)
			return ExitError
		}
		err = store.save(ctx, duckdb.Record{
			TrialID:  ts.ID,
			Template: duckdb.TemplateInput{Text: trialCfg.Text, CaseSensitive: trialCfg.CaseSensitive},
			Response: result.Response,
			Attempts: mistakes + 1,
			Mistakes: mistakes,
			Mode:     "http",
		})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to store result for %s: %v\n", ts.ID, err)
			return ExitError
		}
		return ExitOK
	}
}
