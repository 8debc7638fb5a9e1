package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TemplateInput identifies a cloze template by its raw text and matching mode.
type TemplateInput struct {
	Text          string `json:"text"`
	CaseSensitive bool   `json:"case_sensitive"`
}

// Record is one finished trial to persist.
type Record struct {
	TrialID    string
	Template   TemplateInput
	Response   []string
	Attempts   int
	Mistakes   int
	Simulated  bool
	Mode       string
	FinishedAt time.Time
}

// StoredResult is a persisted trial result.
type StoredResult struct {
	RecordID   string
	TrialID    string
	TemplateID string
	Response   []string
	Attempts   int
	Mistakes   int
	Simulated  bool
	Mode       string
	FinishedAt time.Time
}

// TemplateKey returns the deterministic key for a template.
func TemplateKey(input TemplateInput) (string, error) {
	return FingerprintJSON(input)
}

// UpsertTemplate inserts a template if missing and returns its id.
func UpsertTemplate(ctx context.Context, db *sql.DB, input TemplateInput) (string, error) {
	if ctx == nil {
		return "", ErrNilContext
	}
	if db == nil {
		return "", ErrNilDB
	}
	spec, err := CanonicalJSON(input)
	if err != nil {
		return "", fmt.Errorf("canonical template: %w", err)
	}
	key := fingerprintBytes(spec)
	templateID := uuid.NewString()
	_, err = db.ExecContext(ctx, `INSERT INTO templates (template_id, template_key, spec, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (template_key) DO NOTHING`,
		templateID, key, string(spec), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert template: %w", err)
	}
	return lookupID(ctx, db, "templates", "template_id", "template_key", key)
}

// InsertResult stores a finished trial and returns the new record id.
func InsertResult(ctx context.Context, db *sql.DB, record Record) (string, error) {
	if ctx == nil {
		return "", ErrNilContext
	}
	if db == nil {
		return "", ErrNilDB
	}
	if strings.TrimSpace(record.TrialID) == "" {
		return "", errors.New("duckdb: trial id is required")
	}
	templateID, err := UpsertTemplate(ctx, db, record.Template)
	if err != nil {
		return "", err
	}
	response := record.Response
	if response == nil {
		response = []string{}
	}
	payload, err := json.Marshal(response)
	if err != nil {
		return "", fmt.Errorf("encode response: %w", err)
	}
	finishedAt := record.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}
	recordID := uuid.NewString()
	_, err = db.ExecContext(ctx, `INSERT INTO trial_results
(record_id, trial_id, template_id, response, attempts, mistakes, simulated, mode, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordID, record.TrialID, templateID, string(payload),
		record.Attempts, record.Mistakes, record.Simulated, record.Mode, finishedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert result: %w", err)
	}
	return recordID, nil
}

// ListResults returns stored results for trialID, or all results when empty,
// oldest first.
func ListResults(ctx context.Context, db *sql.DB, trialID string) ([]StoredResult, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if db == nil {
		return nil, ErrNilDB
	}
	query := `SELECT record_id, trial_id, template_id, response, attempts, mistakes, simulated, mode, finished_at
FROM trial_results`
	var args []interface{}
	if trialID != "" {
		query += " WHERE trial_id = ?"
		args = append(args, trialID)
	}
	query += " ORDER BY finished_at, record_id"
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var stored StoredResult
		var response string
		if err := rows.Scan(&stored.RecordID, &stored.TrialID, &stored.TemplateID, &response,
			&stored.Attempts, &stored.Mistakes, &stored.Simulated, &stored.Mode, &stored.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(response), &stored.Response); err != nil {
			return nil, fmt.Errorf("decode response %s: %w", stored.RecordID, err)
		}
		out = append(out, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

func lookupID(ctx context.Context, db *sql.DB, table, idColumn, keyColumn, key string) (string, error) {
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s WHERE %s = ?", idColumn, table, keyColumn)
	var id string
	if err := db.QueryRowContext(ctx, query, key).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
