package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/manifest.schema.json
var schemaJSON []byte

const schemaURL = "manifest.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	messages = message.NewPrinter(language.English)
)

// Issue is one schema violation.
type Issue struct {
	Path    string // JSON pointer into the manifest, e.g. /files/0/dest
	Keyword string // failing schema keyword, e.g. required
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Result lists the violations found by Validate.
type Result struct {
	Issues []Issue
}

// Valid reports whether the manifest matched the schema.
func (r *Result) Valid() bool { return len(r.Issues) == 0 }

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("decoding manifest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("registering manifest schema: %w", err)
			return
		}
		if schema, err = c.Compile(schemaURL); err != nil {
			schemaErr = fmt.Errorf("compiling manifest schema: %w", err)
		}
	})
	return schema, schemaErr
}

// Validate checks raw manifest YAML against the embedded schema. The error
// is reserved for malformed YAML and a broken schema; violations are
// returned in the Result.
func Validate(data []byte) (*Result, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest YAML: %w", err)
	}

	sch, err := compiled()
	if err != nil {
		return nil, err
	}

	// The validator expects the shapes encoding/json produces.
	buf, err := json.Marshal(jsonValue(doc))
	if err != nil {
		return nil, fmt.Errorf("converting manifest to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("converting manifest to JSON: %w", err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return &Result{}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
	return &Result{Issues: leafIssues(ve)}, nil
}

// leafIssues flattens the cause tree into its most specific violations,
// without duplicates. allOf and $ref only wrap other causes.
func leafIssues(root *jsonschema.ValidationError) []Issue {
	var out []Issue
	seen := make(map[Issue]bool)

	var walk func(ve *jsonschema.ValidationError)
	walk = func(ve *jsonschema.ValidationError) {
		if len(ve.Causes) > 0 {
			for _, c := range ve.Causes {
				walk(c)
			}
			return
		}
		if ve.ErrorKind == nil {
			return
		}
		kw := ve.ErrorKind.KeywordPath()
		if len(kw) == 0 {
			return
		}
		issue := Issue{Keyword: kw[len(kw)-1], Message: ve.ErrorKind.LocalizedString(messages)}
		if issue.Keyword == "allOf" || issue.Keyword == "$ref" {
			return
		}
		if len(ve.InstanceLocation) > 0 {
			issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		if !seen[issue] {
			seen[issue] = true
			out = append(out, issue)
		}
	}
	walk(root)

	if len(out) == 0 {
		out = append(out, Issue{Message: root.Error()})
	}
	return out
}

// jsonValue rewrites YAML-decoded maps so encoding/json can marshal them.
// Non-string keys such as "1: x" are stringified.
func jsonValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = jsonValue(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = jsonValue(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = jsonValue(e)
		}
		return t
	}
	return v
}
