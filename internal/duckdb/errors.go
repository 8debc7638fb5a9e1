package duckdb

import "errors"

// ErrNilDB indicates a nil database handle.
var ErrNilDB = errors.New("duckdb: db is nil")

// ErrNilContext indicates a nil context.
var ErrNilContext = errors.New("duckdb: context is nil")
