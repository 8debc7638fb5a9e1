package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"cloze/internal/duckdb"
)

// storedLine is one stored result as printed by the results command.
type storedLine struct {
	RecordID   string   `json:"record_id"`
	TrialID    string   `json:"trial_id"`
	Response   []string `json:"response"`
	Attempts   int      `json:"attempts"`
	Mistakes   int      `json:"mistakes"`
	Simulated  bool     `json:"simulated"`
	Mode       string   `json:"mode"`
	FinishedAt string   `json:"finished_at"`
}

// runResults builds the handler for the results command.
func runResults(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		dbPath := fs.String("db", "", "DuckDB file with stored results")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if *dbPath == "" {
			fmt.Fprintln(stderr, "Missing --db")
			return ExitUsage
		}
		if fs.NArg() > 1 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}
		if _, err := os.Stat(*dbPath); err != nil {
			fmt.Fprintf(stderr, "Database not found: %v\n", err)
			return ExitError
		}

		ctx, cancel := commandContext()
		defer cancel()
		store, err := openStore(ctx, *dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open results store: %v\n", err)
			return ExitError
		}
		defer store.Close()

		stored, err := duckdb.ListResults(ctx, store.db, fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to list results: %v\n", err)
			return ExitError
		}
		encoder := json.NewEncoder(stdout)
		for _, item := range stored {
			line := storedLine{
				RecordID:   item.RecordID,
				TrialID:    item.TrialID,
				Response:   item.Response,
				Attempts:   item.Attempts,
				Mistakes:   item.Mistakes,
				Simulated:  item.Simulated,
				Mode:       item.Mode,
				FinishedAt: item.FinishedAt.UTC().Format(time.RFC3339),
			}
			if err := encoder.Encode(line); err != nil {
				fmt.Fprintf(stderr, "Failed to write results: %v\n", err)
				return ExitError
			}
		}
		return ExitOK
	}
}
