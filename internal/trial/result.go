package trial

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ResultKey is the payload field holding the response vector.
const ResultKey = "response"

// Result is the payload delivered to the host when a trial finishes.
type Result struct {
	Response []string `json:"response"`
}

// Finisher receives the result of a finished trial.
type Finisher interface {
	Finish(Result) error
}

// FinishFunc adapts a function to the Finisher interface.
type FinishFunc func(Result) error

// Finish calls fn.
func (fn FinishFunc) Finish(result Result) error {
	return fn(result)
}

const resultSchemaURL = "result.schema.json"

//go:embed result.schema.json
var resultSchemaJSON string

var (
	resultSchemaOnce sync.Once
	resultSchema     *jsonschema.Schema
	resultSchemaErr  error
)

// compiledResultSchema compiles the embedded result schema once.
func compiledResultSchema() (*jsonschema.Schema, error) {
	resultSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(resultSchemaURL, strings.NewReader(resultSchemaJSON)); err != nil {
			resultSchemaErr = fmt.Errorf("load result schema: %w", err)
			return
		}
		resultSchema, resultSchemaErr = compiler.Compile(resultSchemaURL)
		if resultSchemaErr != nil {
			resultSchemaErr = fmt.Errorf("compile result schema: %w", resultSchemaErr)
		}
	})
	return resultSchema, resultSchemaErr
}

// ValidatePayload checks an encoded result against the result schema and
// verifies it holds one answer per blank.
func ValidatePayload(data []byte, blanks int) error {
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	schema, err := compiledResultSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	response := decoded.(map[string]interface{})[ResultKey].([]interface{})
	if len(response) != blanks {
		return fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidResult, blanks, len(response))
	}
	return nil
}

// EncodeResult marshals a result and validates the encoded payload.
func EncodeResult(result Result, blanks int) ([]byte, error) {
	if result.Response == nil {
		result.Response = []string{}
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	if err := ValidatePayload(data, blanks); err != nil {
		return nil, err
	}
	return data, nil
}
