package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseTrialFile decodes a trials file, choosing JSON for .json paths and YAML otherwise.
func ParseTrialFile(data []byte, path string) (TrialFile, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseJSON(data []byte) (TrialFile, error) {
	var file TrialFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return TrialFile{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return TrialFile{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return TrialFile{}, fmt.Errorf("parse json: %w", err)
	}
	return file, nil
}

func parseYAML(data []byte) (TrialFile, error) {
	var file TrialFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return TrialFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return TrialFile{}, fmt.Errorf("parse yaml: multiple YAML documents are not supported")
		}
		return TrialFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	return file, nil
}
