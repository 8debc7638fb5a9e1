package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cloze/internal/duckdb"
	"cloze/internal/trial"
)

// now is a test seam for result timestamps.
var now = time.Now

// resultLine is one line of command output.
type resultLine struct {
	TrialID string          `json:"trial_id"`
	Result  json.RawMessage `json:"result"`
}

// writeResult prints a finished trial as a JSON line.
func writeResult(out io.Writer, trialID string, result trial.Result, blanks int) error {
	payload, err := trial.EncodeResult(result, blanks)
	if err != nil {
		return err
	}
	line, err := json.Marshal(resultLine{TrialID: trialID, Result: payload})
	if err != nil {
		return fmt.Errorf("encode result line: %w", err)
	}
	_, err = fmt.Fprintln(out, string(line))
	return err
}

// captureFinisher keeps the delivered result for printing once the trial is over.
type captureFinisher struct {
	result   trial.Result
	finished bool
}

func (c *captureFinisher) Finish(result trial.Result) error {
	c.result = result
	c.finished = true
	return nil
}

// resultStore persists finished trials when --db is set.
type resultStore struct {
	db *sql.DB
}

// openStore opens the DuckDB store at path, or returns a no-op store when path is empty.
func openStore(ctx context.Context, path string) (*resultStore, error) {
	if path == "" {
		return &resultStore{}, nil
	}
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return &resultStore{db: db}, nil
}

// save stores record when the store is backed by a database.
func (s *resultStore) save(ctx context.Context, record duckdb.Record) error {
	if s == nil || s.db == nil {
		return nil
	}
	if record.FinishedAt.IsZero() {
		record.FinishedAt = now()
	}
	_, err := duckdb.InsertResult(ctx, s.db, record)
	return err
}

// Close releases the database handle.
func (s *resultStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
