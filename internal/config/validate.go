package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/aitasks/internal/logging"
	"github.com/nibzard/aitasks/internal/utils"
)

//go:embed tables.schema.json
var tablesSchema []byte

const tablesSchemaURL = "https://github.com/nibzard/aitasks/tables.schema.json"

// ValidationError represents a single configuration problem.
type ValidationError struct {
	Path string
	Err  error
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult holds the result of validating a configuration.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Err joins all validation errors, or returns nil when the config is valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// Validate checks log settings and the keyword tables.
func Validate(cfg *Config) ValidationResult {
	result := ValidationResult{Valid: true}
	add := func(path string, err error) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Path: path, Err: err})
	}

	if cfg == nil {
		add("", errors.New("config is nil"))
		return result
	}

	if !logging.ValidLevel(cfg.LogLevel) {
		add("log_level", fmt.Errorf("invalid level %q (expected debug, info, warn or error)", cfg.LogLevel))
	}
	if !logging.ValidFormat(cfg.LogFormat) {
		add("log_format", fmt.Errorf("invalid format %q (expected text, json or logfmt)", cfg.LogFormat))
	}
	if strings.TrimSpace(cfg.LogDir) == "" {
		add("log_dir", errors.New("must not be empty"))
	}

	for _, e := range validateTables(cfg) {
		add(e.Path, e.Err)
	}
	return result
}

// validateTables validates keywords and triggers against the embedded schema.
func validateTables(cfg *Config) []ValidationError {
	if cfg.Keywords == nil && cfg.Triggers == nil {
		return nil
	}

	schema, err := compileTablesSchema()
	if err != nil {
		return []ValidationError{{Path: "", Err: fmt.Errorf("compile schema: %w", err)}}
	}

	doc := map[string]interface{}{}
	if cfg.Keywords != nil {
		doc["keywords"] = cfg.Keywords
	}
	if cfg.Triggers != nil {
		doc["triggers"] = cfg.Triggers
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return []ValidationError{{Err: fmt.Errorf("marshal tables: %w", err)}}
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return []ValidationError{{Err: fmt.Errorf("unmarshal tables: %w", err)}}
	}

	if err := schema.Validate(obj); err != nil {
		return schemaErrors(err)
	}
	return nil
}

func compileTablesSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(tablesSchemaURL, bytes.NewReader(tablesSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(tablesSchemaURL)
}

// schemaErrors flattens a jsonschema error tree into leaf errors.
func schemaErrors(err error) []ValidationError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []ValidationError{{Err: err}}
	}

	var out []ValidationError
	collectSchemaErrors(ve, &out)
	if len(out) == 0 {
		out = append(out, ValidationError{Path: utils.JSONPointerToPath(ve.InstanceLocation), Err: errors.New(ve.Message)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func collectSchemaErrors(err *jsonschema.ValidationError, out *[]ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*out = append(*out, ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, out)
	}
}
