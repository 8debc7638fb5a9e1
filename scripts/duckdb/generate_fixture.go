package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"cloze/internal/duckdb"
	"cloze/internal/simulate"
	"cloze/internal/trial"
)

// fixtureConfig defines the JSON config for generating a results fixture.
type fixtureConfig struct {
	Name          string `json:"name"`
	Text          string `json:"text"`
	CheckAnswers  bool   `json:"check_answers"`
	CaseSensitive bool   `json:"case_sensitive"`
	Runs          int    `json:"runs"`
	Seed          uint64 `json:"seed"`
	Mode          string `json:"mode"`
}

func main() {
	configPath := flag.String("config", "", "path to fixture config JSON")
	outPath := flag.String("out", "", "output duckdb file path")
	flag.Parse()
	if *configPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_fixture --config <path> --out <duckdb file>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(dirOf(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir output dir: %v\n", err)
		os.Exit(1)
	}
	if err := removeIfExists(*outPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := generateFixture(ctx, *outPath, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "generate fixture: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (fixtureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureConfig{}, err
	}
	var cfg fixtureConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fixtureConfig{}, err
	}
	if cfg.Text == "" {
		return fixtureConfig{}, fmt.Errorf("text is required")
	}
	if cfg.Name == "" {
		cfg.Name = "fixture"
	}
	return cfg, nil
}

// generateFixture simulates cfg.Runs responses and bulk-loads them as simulated results.
func generateFixture(ctx context.Context, path string, cfg fixtureConfig) error {
	mode, err := simulate.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	templateID, err := duckdb.UpsertTemplate(ctx, db, duckdb.TemplateInput{Text: cfg.Text, CaseSensitive: cfg.CaseSensitive})
	if err != nil {
		return err
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	appender, err := newResultAppender(conn)
	if err != nil {
		return err
	}

	trialCfg := trial.DefaultConfig(cfg.Text)
	trialCfg.CheckAnswers = cfg.CheckAnswers
	trialCfg.CaseSensitive = cfg.CaseSensitive
	startTime := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var sink resultSink
	svc := simulate.NewServices(cfg.Seed, &sink)
	for i := 0; i < cfg.Runs; i++ {
		report, err := simulate.Simulate(ctx, mode, trialCfg, svc)
		if err != nil {
			_ = appender.Close()
			return err
		}
		if !report.Finished {
			continue
		}
		response, err := json.Marshal(report.Result.Response)
		if err != nil {
			_ = appender.Close()
			return err
		}
		attempts := max(report.Outcome.Attempt, 1)
		err = appender.AppendRow(
			deterministicID(cfg.Name, i),
			cfg.Name,
			templateID,
			string(response),
			int32(attempts),
			int32(attempts-1),
			true,
			report.Mode,
			startTime.Add(time.Duration(i)*time.Second),
		)
		if err != nil {
			_ = appender.Close()
			return fmt.Errorf("append result %d: %w", i, err)
		}
	}
	return appender.Close()
}

// resultSink discards delivered results; the report carries them.
type resultSink struct{}

func (*resultSink) Finish(trial.Result) error { return nil }
